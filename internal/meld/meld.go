// Package meld models exposed (and concealed-kan) groups, generalizing the
// teacher's runtime/game/engines/mahjong/material.go Meld{Type, Tiles, From}
// into a typed Kind over tile.Tile, with the ankan/minkan/kakan distinction
// the teacher's plain string tag does not carry but spec.md §5 requires for
// fu calculation and kan-related yaku (sankantsu/suukantsu, rinshan, chankan).
package meld

import "mahjongcore/internal/tile"

// Kind distinguishes the five meld shapes a player can expose.
type Kind int

const (
	Chi     Kind = iota // sequence claimed from the left discard
	Pon                 // triplet claimed from any discard
	Minkan              // quad claimed from any discard (open kan)
	Ankan               // concealed quad, self-declared
	Kakan               // added kan: a prior pon upgraded with the drawn 4th tile
)

func (k Kind) String() string {
	switch k {
	case Chi:
		return "chi"
	case Pon:
		return "pon"
	case Minkan:
		return "minkan"
	case Ankan:
		return "ankan"
	case Kakan:
		return "kakan"
	default:
		return "?"
	}
}

// IsKan reports whether this meld occupies a kan slot (affects dead-wall
// draw, dora-indicator reveal count, and rinshan/sankantsu/suukantsu yaku).
func (k Kind) IsKan() bool { return k == Minkan || k == Ankan || k == Kakan }

// IsConcealed reports whether the meld counts toward menzen for fu/yaku
// purposes. Ankan is the sole exposed-but-concealed exception (spec.md §4.3:
// suuankou and other concealed-only yaku still permit ankan).
func (k Kind) IsConcealed() bool { return k == Ankan }

// Meld is one exposed (or ankan) group belonging to a seat.
type Meld struct {
	Kind Kind
	// Tiles holds every physical tile in the meld, including the claimed
	// one; for Kakan it is the full 4-tile group after upgrade.
	Tiles []tile.Tile
	// From is the seat the claimed tile was taken from; for Ankan, which
	// claims nothing, the reducer sets it to the declaring seat.
	From int
	// IsPao marks a meld that triggers sole-liability scoring when it
	// completes a liable yakuman (daisangen/daisuushii third set, per
	// spec.md §4.3 pao).
	IsPao bool
}

// Low34 returns the normalized 34-index of the meld's lowest/representative
// tile (for Sequence: the lowest member; otherwise: the repeated tile).
func (m Meld) Low34() int {
	low := m.Tiles[0].Normalize()
	for _, t := range m.Tiles[1:] {
		n := t.Normalize()
		if n.Suit == low.Suit && n.Number < low.Number {
			low = n
		}
	}
	return low.Index34()
}

// IsTriplet reports whether the meld is a triplet/quad (as opposed to a
// sequence), relevant to toitoi/sanankou/honroutou-family yaku.
func (m Meld) IsTriplet() bool { return m.Kind != Chi }

// IsSimpleOnly reports whether every tile in the meld is a 2-8 simple
// (tanyao gating).
func (m Meld) IsSimpleOnly() bool {
	for _, t := range m.Tiles {
		if t.IsTerminalOrHonor() {
			return false
		}
	}
	return true
}

// HasTerminalOrHonor reports whether any tile in the meld is a terminal or
// honor (chanta/junchan/honroutou-family gating).
func (m Meld) HasTerminalOrHonor() bool {
	for _, t := range m.Tiles {
		if t.IsTerminalOrHonor() {
			return true
		}
	}
	return false
}

// RedCount counts red-5 tiles within the meld (aka-dora fan contribution).
func (m Meld) RedCount() int {
	n := 0
	for _, t := range m.Tiles {
		if t.IsRed() {
			n++
		}
	}
	return n
}
