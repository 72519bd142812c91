package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mahjongcore/internal/config"
	"mahjongcore/internal/engine"
	"mahjongcore/internal/persistence"
)

var (
	runConfigFile string
	runAgentKinds string
	runSeed       int64
	runOutFile    string
	runNames      string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "run a single hanchan and print the final result",
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&runConfigFile, "config", "", "path to a rule/ambient-stack config file (defaults to engine.DefaultRule)")
	runCmd.Flags().StringVar(&runAgentKinds, "agents", "random,random,random,random", "comma-separated agent kind per seat: null|random|rule|interactive")
	runCmd.Flags().Int64Var(&runSeed, "seed", 1, "wall shuffle seed")
	runCmd.Flags().StringVar(&runOutFile, "out", "", "write the tenhou-format log to this path instead of stdout")
	runCmd.Flags().StringVar(&runNames, "names", "East,South,West,North", "comma-separated seat names")
}

func runRun(cmd *cobra.Command, args []string) error {
	rule := engine.DefaultRule()
	if runConfigFile != "" {
		cfg, err := config.Load(runConfigFile)
		if err != nil {
			return err
		}
		rule = engine.RuleFromConfig(cfg.Rule)
	}

	agents, err := buildAgents(strings.Split(runAgentKinds, ","), runSeed)
	if err != nil {
		return err
	}
	names, err := parseNames(runNames)
	if err != nil {
		return err
	}

	result, err := engine.RunMatch(context.Background(), rule, names, agents, runSeed)
	if err != nil {
		return fmt.Errorf("mahjongctl: run match: %w", err)
	}

	log.Info("match complete: scores=%v ranks=%v rounds=%d", result.Scores, result.Ranks, len(result.Rounds))

	tenhouLog := persistence.BuildTenhouLog("hanchan", names, result)
	data, err := tenhouLog.Marshal()
	if err != nil {
		return fmt.Errorf("mahjongctl: encode tenhou log: %w", err)
	}
	if runOutFile == "" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(runOutFile, data, 0o644)
}

func parseNames(s string) ([4]string, error) {
	var out [4]string
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return out, fmt.Errorf("mahjongctl: need exactly 4 names, got %d", len(parts))
	}
	copy(out[:], parts)
	return out, nil
}
