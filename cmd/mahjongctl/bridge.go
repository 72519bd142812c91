package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"mahjongcore/internal/agent"
	"mahjongcore/internal/config"
	"mahjongcore/internal/engine"
	"mahjongcore/internal/mjai"
	"mahjongcore/internal/persistence"
)

var (
	bridgeConfigFile string
	bridgeAddr       string
	bridgeExternal   string
	bridgeAgentKinds string
	bridgeSeed       int64
	bridgeOutFile    string
	bridgeNames      string
)

var bridgeCmd = &cobra.Command{
	Use:   "bridge",
	Short: "accept external mjai clients over TCP and play one hanchan against them",
	Long: "bridge starts an internal/mjai.Listener and waits for one external " +
		"mjai client per seat named in --external, filling the remaining seats " +
		"from --agents, then runs a single hanchan once every external seat " +
		"has connected.",
	RunE: runBridge,
}

func init() {
	bridgeCmd.Flags().StringVar(&bridgeConfigFile, "config", "", "path to a rule/ambient-stack config file (defaults to engine.DefaultRule); --addr overrides its mjai.addr")
	bridgeCmd.Flags().StringVar(&bridgeAddr, "addr", "", "address to listen on, e.g. :11600 (defaults to the config's mjai.addr)")
	bridgeCmd.Flags().StringVar(&bridgeExternal, "external", "0", "comma-separated seat indices driven by external mjai clients")
	bridgeCmd.Flags().StringVar(&bridgeAgentKinds, "agents", "random,random,random", "comma-separated agent kind for each non-external seat, in seat order: null|random|rule|interactive")
	bridgeCmd.Flags().Int64Var(&bridgeSeed, "seed", 1, "wall shuffle seed")
	bridgeCmd.Flags().StringVar(&bridgeOutFile, "out", "", "write the tenhou-format log to this path instead of stdout")
	bridgeCmd.Flags().StringVar(&bridgeNames, "names", "East,South,West,North", "comma-separated seat names")
}

func runBridge(cmd *cobra.Command, args []string) error {
	rule := engine.DefaultRule()
	addr := bridgeAddr
	if bridgeConfigFile != "" {
		cfg, err := config.Load(bridgeConfigFile)
		if err != nil {
			return err
		}
		rule = engine.RuleFromConfig(cfg.Rule)
		if addr == "" {
			addr = cfg.Mjai.Addr
		}
	}
	if addr == "" {
		return fmt.Errorf("mahjongctl: bridge needs --addr or a config file's mjai.addr")
	}

	externalSeats, err := parseSeatList(bridgeExternal)
	if err != nil {
		return fmt.Errorf("mahjongctl: --external: %w", err)
	}
	names, err := parseNames(bridgeNames)
	if err != nil {
		return err
	}

	ln, err := mjai.Listen(addr)
	if err != nil {
		return fmt.Errorf("mahjongctl: listen on %s: %w", addr, err)
	}
	defer ln.Close()
	log.Info("mjai: listening on %s for %d external seat(s)", addr, len(externalSeats))

	var agents [4]agent.Agent
	kinds := strings.Split(bridgeAgentKinds, ",")
	isExternal := make(map[int]bool, len(externalSeats))
	for _, s := range externalSeats {
		isExternal[s] = true
	}
	kindIdx := 0
	for seat := 0; seat < 4; seat++ {
		if isExternal[seat] {
			continue
		}
		if kindIdx >= len(kinds) {
			return fmt.Errorf("mahjongctl: --agents needs one kind per non-external seat, got %d for %d seats", len(kinds), 4-len(externalSeats))
		}
		a, err := newAgent(kinds[kindIdx], bridgeSeed+int64(seat))
		if err != nil {
			return err
		}
		agents[seat] = a
		kindIdx++
	}

	connected := make(chan struct {
		seat   int
		bridge *mjai.Bridge
	})
	go ln.Serve(func(b *mjai.Bridge, name, room string) {
		log.Info("mjai: client %q joined room %q", name, room)
		connected <- struct {
			seat   int
			bridge *mjai.Bridge
		}{bridge: b}
	})

	remaining := append([]int(nil), externalSeats...)
	for len(remaining) > 0 {
		conn := <-connected
		seat := remaining[0]
		remaining = remaining[1:]
		conn.bridge.Init(seat, nil)
		agents[seat] = conn.bridge
		log.Info("mjai: seat %d bound to external client", seat)
	}

	result, err := engine.RunMatch(context.Background(), rule, names, agents, bridgeSeed)
	if err != nil {
		return fmt.Errorf("mahjongctl: run match: %w", err)
	}
	log.Info("match complete: scores=%v ranks=%v rounds=%d", result.Scores, result.Ranks, len(result.Rounds))

	tenhouLog := persistence.BuildTenhouLog("hanchan", names, result)
	data, err := tenhouLog.Marshal()
	if err != nil {
		return fmt.Errorf("mahjongctl: encode tenhou log: %w", err)
	}
	if bridgeOutFile == "" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(bridgeOutFile, data, 0o644)
}

func parseSeatList(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 || n > 3 {
			return nil, fmt.Errorf("invalid seat %q (want 0-3)", p)
		}
		out = append(out, n)
	}
	return out, nil
}
