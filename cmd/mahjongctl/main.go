// Command mahjongctl is the peripheral CLI of spec.md §6: single-game
// run, multi-game batch runner, a hand calculator, and the external mjai
// bridge listener, all driving internal/engine directly rather than
// through a network service. Grounded on the teacher's per-node main.go
// convention (a cobra rootCmd wired to config.Load, internal/logging,
// and internal/metrics.Serve) collapsed into one binary with subcommands,
// since this module has one embeddable engine rather than one process per
// microservice.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mahjongcore/internal/logging"
)

var log = logging.New("mahjongctl")

var rootCmd = &cobra.Command{
	Use:   "mahjongctl",
	Short: "mahjongctl drives the riichi engine from the command line",
	Long:  "mahjongctl runs single games and batches, scores a hand expression, and bridges an external mjai client into a live match.",
}

func main() {
	rootCmd.AddCommand(runCmd, batchCmd, calcCmd, bridgeCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
