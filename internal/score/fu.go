// Package score computes fu (minor points), fan (doublings), and the final
// (ron, non-dealer-tsumo, dealer-tsumo) payout triple, per spec.md §4.3-4.4.
// Grounded on the teacher's runtime/game/engines/mahjong/score_calculator.go
// callHuPoints/calculateFu/calculateBasePoints/getFixedPoints, with real
// bodies replacing checkPinfu/calculatePairFu/calculateWaitFu/
// calculateMeldFu's "TODO, simplified" stubs by reusing the internal/hand
// decomposition and internal/yaku wait classification this repo now has
// (which the teacher's RiichiMahjong4p engine never built out).
package score

import (
	"mahjongcore/internal/hand"
	"mahjongcore/internal/meld"
	"mahjongcore/internal/yaku"
)

// FuInput is everything fu calculation needs about the winning hand.
type FuInput struct {
	Decomp    hand.Decomposition
	Melds     []meld.Meld
	Wait      hand.WaitKind
	WinIdx34  int
	IsTsumo   bool
	IsMenzen  bool
	RoundWind yaku.Wind
	SeatWind  yaku.Wind
}

func isYaochuIdx(i int) bool {
	return i >= 27 || i%9 == 0 || i%9 == 8
}

// Fu computes the fu total, per spec.md §4.3: base 20, +10 menzen ron, +2
// tsumo, per-set bonuses, pair yakuhai bonus, wait bonus, pinfu fixed
// 20/30, rounded up to the next 10 (except chiitoitsu, handled by its own
// FuChiitoitsu constant).
func Fu(in FuInput) int {
	if isPinfuShape(in) {
		if in.IsTsumo {
			return 20
		}
		return 30
	}

	fu := 20
	if in.IsTsumo {
		fu += 2
	} else if in.IsMenzen {
		fu += 10
	}

	fu += pairFu(in)
	fu += meldFu(in)
	fu += waitFu(in)

	// The "open-pinfu" shape (all sequences, non-value pair, ryanmen wait,
	// but open so isPinfuShape's menzen requirement fails) bottoms out at
	// the same 20 fu a closed pinfu tsumo gets -- but it carries no yaku of
	// its own to excuse the non-standard total, so spec.md §4.3 floors it
	// to 30 instead.
	if fu == 20 {
		fu = 30
	}

	return roundUpTo10(fu)
}

// FuChiitoitsu is the fixed fu value for a seven-pairs win.
const FuChiitoitsu = 25

func roundUpTo10(x int) int { return (x + 9) / 10 * 10 }

// isPinfuShape mirrors yaku.checkPinfu's condition (duplicated here, not
// imported, since fu calculation must apply even when the caller evaluates
// yaku separately -- both read the same Decomp/Wait facts).
func isPinfuShape(in FuInput) bool {
	if !in.IsMenzen || len(in.Melds) != 0 {
		return false
	}
	for _, s := range in.Decomp.Sets {
		if s.Kind != hand.Sequence {
			return false
		}
	}
	if in.Wait != hand.Ryanmen {
		return false
	}
	pairIdx := in.Decomp.Pair34
	if pairIdx >= 31 && pairIdx <= 33 { // dragon
		return false
	}
	if pairIdx == 27+int(in.RoundWind) || pairIdx == 27+int(in.SeatWind) {
		return false
	}
	return true
}

func pairFu(in FuInput) int {
	i := in.Decomp.Pair34
	isRoundWind := i == 27+int(in.RoundWind)
	isSeatWind := i == 27+int(in.SeatWind)
	isDragon := i >= 31 && i <= 33
	if !isDragon && !isRoundWind && !isSeatWind {
		return 0
	}
	fu := 2
	if isRoundWind && isSeatWind {
		fu += 2 // double wind pair (dealer's seat wind == round wind)
	}
	return fu
}

func meldFu(in FuInput) int {
	fu := 0

	// Concealed sets: sequences contribute nothing; triplets are ankou
	// unless they are the set completed by a ron on a shanpon wait (then
	// scored as if open, per spec.md §4.3).
	ronShanpon := !in.IsTsumo && in.Wait == hand.Shanpon
	for _, s := range in.Decomp.Sets {
		if s.Kind != hand.Triplet {
			continue
		}
		idx := s.Indices34()[0]
		yaochu := isYaochuIdx(idx)
		if ronShanpon && idx == in.WinIdx34 {
			if yaochu {
				fu += 4
			} else {
				fu += 2
			}
			continue
		}
		if yaochu {
			fu += 8
		} else {
			fu += 4
		}
	}

	for _, m := range in.Melds {
		idx := m.Low34()
		yaochu := isYaochuIdx(idx)
		switch m.Kind {
		case meld.Chi:
			// sequences never contribute meld fu
		case meld.Pon:
			if yaochu {
				fu += 4
			} else {
				fu += 2
			}
		case meld.Minkan:
			if yaochu {
				fu += 16
			} else {
				fu += 8
			}
		case meld.Ankan:
			if yaochu {
				fu += 32
			} else {
				fu += 16
			}
		case meld.Kakan:
			if yaochu {
				fu += 16
			} else {
				fu += 8
			}
		}
	}

	return fu
}

func waitFu(in FuInput) int {
	switch in.Wait {
	case hand.Kanchan, hand.Penchan, hand.Tanki:
		return 2
	default:
		return 0
	}
}
