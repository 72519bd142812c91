package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mahjongcore/internal/hand"
	"mahjongcore/internal/score"
	"mahjongcore/internal/tile"
	"mahjongcore/internal/yaku"
)

var (
	calcHand      string
	calcWinTile   string
	calcTsumo     bool
	calcDealer    bool
	calcRiichi    bool
	calcIppatsu   bool
	calcRoundWind int
	calcSeatWind  int
	calcDora      string
	calcUraDora   string
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "score one closed 14-tile hand expression",
	RunE:  runCalc,
}

func init() {
	calcCmd.Flags().StringVar(&calcHand, "hand", "", "comma-separated 13-tile closed hand, e.g. 1m,2m,3m,4p,5p,6p,7s,8s,9s,1z,1z,1z,2z (required)")
	calcCmd.Flags().StringVar(&calcWinTile, "win", "", "the winning tile, e.g. 2z (required)")
	calcCmd.Flags().BoolVar(&calcTsumo, "tsumo", false, "self-drawn win (default: ron)")
	calcCmd.Flags().BoolVar(&calcDealer, "dealer", false, "winner is the dealer")
	calcCmd.Flags().BoolVar(&calcRiichi, "riichi", false, "riichi was declared")
	calcCmd.Flags().BoolVar(&calcIppatsu, "ippatsu", false, "ippatsu window")
	calcCmd.Flags().IntVar(&calcRoundWind, "round-wind", 0, "0=East 1=South 2=West 3=North")
	calcCmd.Flags().IntVar(&calcSeatWind, "seat-wind", 0, "0=East 1=South 2=West 3=North")
	calcCmd.Flags().StringVar(&calcDora, "dora", "", "comma-separated dora indicator tiles")
	calcCmd.Flags().StringVar(&calcUraDora, "uradora", "", "comma-separated ura-dora indicator tiles (only scored with --riichi)")
	calcCmd.MarkFlagRequired("hand")
	calcCmd.MarkFlagRequired("win")
}

func runCalc(cmd *cobra.Command, args []string) error {
	closedTiles, err := parseTileList(calcHand)
	if err != nil {
		return fmt.Errorf("mahjongctl: --hand: %w", err)
	}
	winTile, err := tile.Parse(calcWinTile)
	if err != nil {
		return fmt.Errorf("mahjongctl: --win: %w", err)
	}
	doraIndicators, err := parseTileList(calcDora)
	if err != nil && calcDora != "" {
		return fmt.Errorf("mahjongctl: --dora: %w", err)
	}
	uraDoraIndicators, err := parseTileList(calcUraDora)
	if err != nil && calcUraDora != "" {
		return fmt.Errorf("mahjongctl: --uradora: %w", err)
	}

	full := append(append([]tile.Tile(nil), closedTiles...), winTile)
	if len(full) != 14 {
		return fmt.Errorf("mahjongctl: hand + win tile must total 14 tiles, got %d", len(full))
	}
	tbl := tile.NewTable(full)
	redFiveCount := 0
	for _, t := range full {
		if t.IsRed() {
			redFiveCount++
		}
	}

	situation := yaku.Situation{
		RoundWind:         yaku.Wind(calcRoundWind),
		SeatWind:          yaku.Wind(calcSeatWind),
		IsDealer:          calcDealer,
		Riichi:            calcRiichi,
		Ippatsu:           calcIppatsu,
		IsTsumo:           calcTsumo,
		DoraIndicators:    doraIndicators,
		UraDoraIndicators: uraDoraIndicators,
	}

	detail, err := bestDetail(tbl, winTile, situation, calcTsumo, calcDealer, redFiveCount)
	if err != nil {
		return err
	}
	printDetail(detail)
	return nil
}

// bestDetail tries every standard decomposition (plus chiitoitsu, if the
// shape allows it) and keeps the highest-scoring one, mirroring
// internal/engine/score.go's own best-of-decompositions search over a
// closed hand with no melds.
func bestDetail(tbl *tile.Table, winTile tile.Tile, situation yaku.Situation, isTsumo, isDealer bool, redFiveCount int) (score.Detail, error) {
	full := hand.FromTable(tbl)
	winIdx := winTile.Normalize().Index34()

	var best score.Detail
	found := false

	consider := func(d score.Detail) {
		if !found || d.Fan > best.Fan || (d.Fan == best.Fan && d.Fu > best.Fu) || d.Yakuman > best.Yakuman {
			best = d
			found = true
		}
	}

	if hand.IsChiitoitsu(full) {
		in := score.Input{
			Concealed: full, WinTile: winTile, IsTsumo: isTsumo, IsDealer: isDealer,
			IsChiitoitsu: true, Situation: situation, RedFiveCount: redFiveCount,
		}
		consider(score.Evaluate(in))
	}

	for _, d := range hand.DecomposeStandard(full, 0) {
		wait := hand.ClassifyWait(d, winIdx)
		in := score.Input{
			Concealed: full, WinTile: winTile, Decomp: d, Wait: wait,
			IsTsumo: isTsumo, IsDealer: isDealer, Situation: situation, RedFiveCount: redFiveCount,
		}
		consider(score.Evaluate(in))
	}

	if !found {
		return score.Detail{}, fmt.Errorf("mahjongctl: hand is not a valid winning shape")
	}
	return best, nil
}

func printDetail(d score.Detail) {
	for _, y := range d.Yakus {
		fmt.Printf("%-24s %d han\n", y.Name, y.Han)
	}
	if d.Yakuman > 0 {
		fmt.Printf("yakuman x%d\n", d.Yakuman)
	} else {
		fmt.Printf("fu: %d  fan: %d\n", d.Fu, d.Fan)
	}
	if d.Points.Title != "" {
		fmt.Printf("title: %s\n", d.Points.Title)
	}
	fmt.Printf("ron: %d  tsumo non-dealer pays: %d  tsumo dealer pays: %d\n",
		d.Points.Ron, d.Points.NonDealerTsumo, d.Points.DealerTsumo)
}

func parseTileList(s string) ([]tile.Tile, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]tile.Tile, 0, len(parts))
	for _, p := range parts {
		t, err := tile.Parse(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
