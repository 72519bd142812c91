package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"mahjongcore/internal/config"
	"mahjongcore/internal/engine"
	"mahjongcore/internal/persistence"
)

var (
	batchConfigFile string
	batchAgentKinds string
	batchCount      int
	batchSeed       int64
	batchOutDir     string
	batchNames      string
	batchConcurrent int
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "run many hanchans and report aggregate rank/score statistics",
	RunE:  runBatch,
}

func init() {
	batchCmd.Flags().StringVar(&batchConfigFile, "config", "", "path to a rule/ambient-stack config file (defaults to engine.DefaultRule)")
	batchCmd.Flags().StringVar(&batchAgentKinds, "agents", "random,random,random,random", "comma-separated agent kind per seat: null|random|rule|interactive")
	batchCmd.Flags().IntVar(&batchCount, "count", 100, "number of matches to run")
	batchCmd.Flags().Int64Var(&batchSeed, "seed", 1, "base wall shuffle seed; match i uses seed+i")
	batchCmd.Flags().StringVar(&batchOutDir, "out-dir", "", "write each match's tenhou-format log into this directory")
	batchCmd.Flags().StringVar(&batchNames, "names", "East,South,West,North", "comma-separated seat names")
	batchCmd.Flags().IntVar(&batchConcurrent, "concurrency", 4, "number of matches to run in parallel")
}

// batchStats accumulates per-seat totals across a batch run, the
// aggregate report this subcommand exists to produce rather than each
// match's own full event history.
type batchStats struct {
	mu         sync.Mutex
	matches    int
	rankCounts [4][4]int // rankCounts[seat][rank-1]
	scoreSum   [4]int
}

func (s *batchStats) add(result *engine.MatchResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches++
	for seat := 0; seat < 4; seat++ {
		s.rankCounts[seat][result.Ranks[seat]-1]++
		s.scoreSum[seat] += result.Scores[seat]
	}
}

func runBatch(cmd *cobra.Command, args []string) error {
	rule := engine.DefaultRule()
	if batchConfigFile != "" {
		cfg, err := config.Load(batchConfigFile)
		if err != nil {
			return err
		}
		rule = engine.RuleFromConfig(cfg.Rule)
	}

	names, err := parseNames(batchNames)
	if err != nil {
		return err
	}
	if batchOutDir != "" {
		if err := os.MkdirAll(batchOutDir, 0o755); err != nil {
			return err
		}
	}

	stats := &batchStats{}
	sem := make(chan struct{}, batchConcurrent)
	var wg sync.WaitGroup
	errs := make(chan error, batchCount)

	for i := 0; i < batchCount; i++ {
		i := i
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			seed := batchSeed + int64(i)
			agents, err := buildAgents(strings.Split(batchAgentKinds, ","), seed)
			if err != nil {
				errs <- err
				return
			}
			result, err := engine.RunMatch(context.Background(), rule, names, agents, seed)
			if err != nil {
				errs <- fmt.Errorf("match %d: %w", i, err)
				return
			}
			stats.add(result)

			if batchOutDir != "" {
				tenhouLog := persistence.BuildTenhouLog("hanchan", names, result)
				data, err := tenhouLog.Marshal()
				if err != nil {
					errs <- fmt.Errorf("match %d: encode tenhou log: %w", i, err)
					return
				}
				path := filepath.Join(batchOutDir, fmt.Sprintf("match-%04d.json", i))
				if err := os.WriteFile(path, data, 0o644); err != nil {
					errs <- fmt.Errorf("match %d: write log: %w", i, err)
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		log.Warn("batch: %v", err)
	}

	printBatchReport(names, stats)
	return nil
}

func printBatchReport(names [4]string, stats *batchStats) {
	fmt.Printf("%d matches completed\n", stats.matches)
	for seat := 0; seat < 4; seat++ {
		avg := 0
		if stats.matches > 0 {
			avg = stats.scoreSum[seat] / stats.matches
		}
		fmt.Printf("seat %d (%s): avg score %d, ranks 1st/2nd/3rd/4th = %d/%d/%d/%d\n",
			seat, names[seat], avg,
			stats.rankCounts[seat][0], stats.rankCounts[seat][1],
			stats.rankCounts[seat][2], stats.rankCounts[seat][3])
	}
}
