package stage

import "mahjongcore/internal/tile"

// IsFuriten reports the combined furiten state spec.md §4.6 describes: a
// seat may not ron while either its permanent own-discard furiten or its
// temporary missed-ron furiten is active.
func (p *Player) IsFuriten() bool { return p.Furiten || p.FuritenOther }

// IsTenpai reports whether p currently has any cached wait.
func (p *Player) IsTenpai() bool { return len(p.WinningTiles) > 0 }

// TenpaiMask returns the per-seat tenpai flags, used for exhaustive-draw
// noten-bappu settlement and the Draw event's hands_tenpai field.
func (s *Stage) TenpaiMask() [4]bool {
	var mask [4]bool
	for seat, p := range s.Players {
		mask[seat] = p.IsTenpai()
	}
	return mask
}

// TotalTiles sums every tracked tile across hands, melds, discards, and dora
// indicators, for the tile-conservation invariant of spec.md §8.1 (the wall
// portion is added by the caller, which alone knows the dead-wall split).
func (s *Stage) TotalTiles() int {
	n := 0
	for _, p := range s.Players {
		n += p.Table.Total()
		for _, m := range p.Melds {
			n += len(m.Tiles)
		}
		n += len(p.Discards)
	}
	n += len(s.Doras)
	return n
}

// NagashimanganEligible reports whether seat's discards so far are every one
// a terminal/honor and none were claimed -- the running predicate the
// reducer also tracks incrementally via Player.Nagashimangan, exposed here
// for a full recheck (e.g. after loading a persisted log).
func NagashimanganEligible(p *Player) bool {
	if len(p.Discards) == 0 {
		return true
	}
	for _, d := range p.Discards {
		if d.IsClaimed || !d.Tile.IsTerminalOrHonor() {
			return false
		}
	}
	return true
}

// DoraTile returns the dora tile corresponding to one revealed indicator,
// per spec.md GLOSSARY: "the tile following the indicator in each suit's
// cyclic order."
func DoraTile(indicator tile.Tile) tile.Tile {
	n := indicator.Normalize()
	if n.Suit == tile.Honor {
		switch n.Number {
		case tile.East, tile.South, tile.West, tile.North:
			next := n.Number + 1
			if next > tile.North {
				next = tile.East
			}
			return tile.Tile{Suit: tile.Honor, Number: next}
		default: // White, Green, Red cycle among themselves
			next := n.Number + 1
			if next > tile.Red {
				next = tile.White
			}
			return tile.Tile{Suit: tile.Honor, Number: next}
		}
	}
	next := n.Number + 1
	if next > 9 {
		next = 1
	}
	return tile.Tile{Suit: n.Suit, Number: next}
}
