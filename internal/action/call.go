package action

import (
	"mahjongcore/internal/tile"
)

// CallOptions enumerates every Pon/Minkan/Chi/Ron reaction `v` may take
// against `discarded`, thrown by `fromSeat`; `seat` is the reacting seat
// (0-3), needed only to restrict Chi to the downstream seat. This is the
// generalized replacement for the teacher's
// calculateAvailableOperations/getPengOptions/getGangOptions/getChiOptions,
// whose findChiCombinations was an unconditional empty-slice stub.
func CallOptions(v HandView, seat, fromSeat int, discarded tile.Tile, isRonLegal bool) []Option {
	var out []Option
	if isRonLegal {
		out = append(out, Option{Kind: Ron, Tiles: []tile.Tile{discarded}})
	}
	out = append(out, ponOptions(v, discarded)...)
	out = append(out, minkanOptions(v, discarded)...)
	if (fromSeat+1)%4 == seat {
		out = append(out, chiOptions(v, discarded)...)
	}
	return out
}

// ponOptions enumerates every distinct (by red-5 status) pair of matching
// tiles the seat could use to pon the discard.
func ponOptions(v HandView, discarded tile.Tile) []Option {
	idx := discarded.Normalize().Index34()
	avail := v.Table.TilesOf(idx)
	if len(avail) < 2 {
		return nil
	}
	var out []Option
	seen := map[[2]bool]bool{}
	for i := 0; i < len(avail); i++ {
		for j := i + 1; j < len(avail); j++ {
			key := [2]bool{avail[i].IsRed(), avail[j].IsRed()}
			if key[0] && !key[1] {
				key[0], key[1] = key[1], key[0] // normalize ordering
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, Option{Kind: Pon, Tiles: []tile.Tile{avail[i], avail[j]}})
		}
	}
	return out
}

// minkanOptions reports the single combination (all three remaining
// copies) that completes an open kan against the discard.
func minkanOptions(v HandView, discarded tile.Tile) []Option {
	idx := discarded.Normalize().Index34()
	avail := v.Table.TilesOf(idx)
	if len(avail) != 3 {
		return nil
	}
	return []Option{{Kind: Minkan, Tiles: avail}}
}

// chiOptions enumerates every contiguous-run completion of the discard,
// per spec.md §5: downstream only (enforced by the caller), non-honor,
// every viable red-5/plain-5 substitution for each of the up to three
// sequence alignments (discard low/middle/high).
func chiOptions(v HandView, discarded tile.Tile) []Option {
	n := discarded.Normalize()
	if n.Suit == tile.Honor {
		return nil
	}
	var out []Option
	for _, shape := range [][2]int{{1, 2}, {-1, 1}, {-2, -1}} {
		a, b := n.Number+shape[0], n.Number+shape[1]
		if a < 1 || b > 9 {
			continue
		}
		out = append(out, chiCombinationsFor(v, n.Suit, a, b)...)
	}
	return out
}

// chiCombinationsFor cross-products every red/plain variant available at
// positions a and b of the suit, replacing the teacher's
// findChiCombinations stub.
func chiCombinationsFor(v HandView, suit tile.Suit, a, b int) []Option {
	ta := v.Table.TilesOf(tile.Tile{Suit: suit, Number: a}.Index34())
	tb := v.Table.TilesOf(tile.Tile{Suit: suit, Number: b}.Index34())
	if len(ta) == 0 || len(tb) == 0 {
		return nil
	}
	seen := map[[2]bool]bool{}
	var out []Option
	for _, x := range uniqueByRed(ta) {
		for _, y := range uniqueByRed(tb) {
			key := [2]bool{x.IsRed(), y.IsRed()}
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, Option{Kind: Chi, Tiles: []tile.Tile{x, y}})
		}
	}
	return out
}

// uniqueByRed collapses a TilesOf() expansion down to at most one plain and
// one red representative, since within a suit-number slot every plain copy
// is interchangeable.
func uniqueByRed(ts []tile.Tile) []tile.Tile {
	var plain, red *tile.Tile
	for i := range ts {
		if ts[i].IsRed() {
			red = &ts[i]
		} else if plain == nil {
			plain = &ts[i]
		}
	}
	var out []tile.Tile
	if plain != nil {
		out = append(out, *plain)
	}
	if red != nil {
		out = append(out, *red)
	}
	return out
}

// IsKuikaeForbidden reports whether, having just called `chi` to complete
// a run with `discarded`, the seat's proposed next discard `candidate` is
// disallowed: either the exact tile just called (sujigiri of the identical
// tile), or -- for an edge/closed two-sided run -- the other tile that
// would have completed the same wait (e.g. calling 4-5 chi on a 3 and then
// discarding the drawn 6 that the same run also accepted).
func IsKuikaeForbidden(chi Option, discarded, candidate tile.Tile) bool {
	cIdx := candidate.Normalize().Index34()
	if cIdx == discarded.Normalize().Index34() {
		return true
	}
	if len(chi.Tiles) != 2 {
		return false
	}
	a, b := chi.Tiles[0].Normalize(), chi.Tiles[1].Normalize()
	if a.Suit != b.Suit || a.Suit != discarded.Suit {
		return false
	}
	lo, hi := a.Number, b.Number
	if lo > hi {
		lo, hi = hi, lo
	}
	d := discarded.Normalize().Number
	// only the "middle tile absorbed, two possible outer closures remain
	// equivalent" shape triggers suji-kuikae: a run using (lo,lo+1) or
	// (hi-1,hi) around the discard's position.
	switch {
	case d == lo-1 && candidate.Suit == discarded.Suit && candidate.Normalize().Number == hi+1:
		return true
	case d == hi+1 && candidate.Suit == discarded.Suit && candidate.Normalize().Number == lo-1:
		return true
	}
	return false
}
