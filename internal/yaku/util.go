package yaku

import (
	"mahjongcore/internal/hand"
	"mahjongcore/internal/tile"
)

func idxIsHonor(i int) bool    { return i >= 27 }
func idxIsTerminal(i int) bool { return i < 27 && (i%9 == 0 || i%9 == 8) }
func idxIsTerminalOrHonor(i int) bool {
	return idxIsHonor(i) || idxIsTerminal(i)
}
func idxIsSimple(i int) bool { return !idxIsTerminalOrHonor(i) }

func idxIsDragon(i int) bool { return i >= 31 && i <= 33 }
func idxIsWind(i int) bool   { return i >= 27 && i <= 30 }

func windIdx(w Wind) int { return 27 + int(w) }

func setHasTerminalOrHonor(s hand.Set) bool {
	for _, i := range s.Indices34() {
		if idxIsTerminalOrHonor(i) {
			return true
		}
	}
	return false
}

func setHasHonor(s hand.Set) bool {
	for _, i := range s.Indices34() {
		if idxIsHonor(i) {
			return true
		}
	}
	return false
}

func setAllSimple(s hand.Set) bool {
	for _, i := range s.Indices34() {
		if !idxIsSimple(i) {
			return false
		}
	}
	return true
}

// openAdjust returns closedHan when the hand is menzen, else openHan; used
// by the handful of yaku whose fan drops by one when any meld is exposed.
func openAdjust(ctx *Context, closedHan, openHan int) int {
	if ctx.IsMenzen() {
		return closedHan
	}
	return openHan
}

// suitsUsed returns the set of numbered suits (and whether honors) present
// in the full 14-tile hand.
func suitsUsed(full hand.Hand34) (suits map[tile.Suit]bool, honors bool) {
	suits = map[tile.Suit]bool{}
	for i := 0; i < 34; i++ {
		if full[i] == 0 {
			continue
		}
		if idxIsHonor(i) {
			honors = true
			continue
		}
		suits[tile.FromIndex34(i).Suit] = true
	}
	return
}

// sequenceKey identifies a sequence by (suit, low) for duplicate detection.
func sequenceKey(s hand.Set) (tile.Suit, int) { return s.Suit, s.Low }

// hasStandardShape reports whether ctx carries an actual standard
// (pair + 4 sets) decomposition, as opposed to a chiitoitsu or kokushi win
// where Decomp is left unpopulated. Every yaku predicate that reasons over
// Decomp.Sets/AllSets() must guard on this first: an empty Sets slice would
// otherwise vacuously satisfy "every set is X" checks like toitoi or chanta.
func hasStandardShape(ctx *Context) bool {
	return len(ctx.Decomp.Sets)+len(ctx.Melds) == 4
}
