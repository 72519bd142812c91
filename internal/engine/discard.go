package engine

import (
	"mahjongcore/internal/action"
	"mahjongcore/internal/hand"
	"mahjongcore/internal/tile"
)

// discardCandidates enumerates one Discard Option per distinct physical
// tile (identity + red-5 status) currently in the hand -- the concrete
// second-stage choice once an agent has picked action.Discard or
// action.Riichi from TurnOptions, which itself only signals "I will
// discard" without committing to a specific tile. Grounded on the
// teacher's push.go broadcasting one operation per concrete tile rather
// than a bare action kind.
func discardCandidates(tbl *tile.Table) []action.Option {
	var out []action.Option
	seen := map[[2]int]bool{}
	for _, t := range tbl.Tiles() {
		key := [2]int{t.Normalize().Index34(), boolToInt(t.IsRed())}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, action.Option{Kind: action.Discard, Tiles: []tile.Tile{t}})
	}
	return out
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// riichiDiscardCandidates restricts discardCandidates to the tiles whose
// removal leaves the seat tenpai, per spec.md §5's riichi discard legality.
func riichiDiscardCandidates(tbl *tile.Table, searcher *hand.Searcher) []action.Option {
	full := hand.FromTable(tbl)
	var out []action.Option
	for i := 0; i < 34; i++ {
		if full[i] == 0 {
			continue
		}
		full[i]--
		sh := 0
		if searcher != nil {
			sh = searcher.Shanten(full, 0)
		} else {
			sh = hand.ShantenAll(full, 0)
		}
		full[i]++
		if sh != 0 {
			continue
		}
		t := tile.FromIndex34(i)
		reds := 0
		if t.IsSuit() && t.Number == 5 {
			reds = tbl.RedCount(t.Suit)
		}
		if full[i] > reds {
			out = append(out, action.Option{Kind: action.Riichi, Tiles: []tile.Tile{t}})
		}
		if reds > 0 {
			out = append(out, action.Option{Kind: action.Riichi, Tiles: []tile.Tile{{Suit: t.Suit, Number: 0}}})
		}
	}
	return out
}
