// Package action computes the legal turn-actions and call-actions available
// to a seat, per spec.md §5. Grounded on the teacher's
// runtime/game/engines/mahjong/checker.go (canHu/canGang/canPeng/canChi)
// and opt_selector.go (calculateAvailableOperations/getPengOptions/
// getGangOptions/getChiOptions/findChiCombinations), with real bodies
// replacing the "fixme: implement" and "TODO: implement chi combination
// lookup" stubs -- canHu and canChi in particular were unconditional
// `return false` in the teacher, and findChiCombinations returned an empty
// slice unconditionally.
package action

import (
	"mahjongcore/internal/hand"
	"mahjongcore/internal/meld"
	"mahjongcore/internal/tile"
	"mahjongcore/internal/yaku"
)

// Kind enumerates every action a seat may take, merging the teacher's
// string-tagged "HU"/"GANG"/"PENG"/"CHI" operations with the turn-phase
// actions (riichi, kyushukyuhai, nukidora) spec.md §5 adds.
type Kind int

const (
	Discard Kind = iota
	Riichi
	Ankan
	Kakan
	Tsumo
	Kyushukyuhai
	Nukidora
	Chi
	Pon
	Minkan
	Ron
)

// Option is one concrete, fully-specified action choice: which physical
// tiles (red-5 status preserved) it consumes from the seat's own hand,
// distinct from the teacher's PlayerOperation in that it is produced pre-
// enumerated rather than left to a "TODO" combination search.
type Option struct {
	Kind  Kind
	Tiles []tile.Tile // hand tiles consumed, not including the claimed/drawn tile
}

// HandView is the read-only facts an action calculator needs about one
// seat: its concealed table, exposed melds, and whether it is currently
// riichi-locked (which freezes hand shape to discard-the-draw only, except
// for a non-wait-changing ankan).
type HandView struct {
	Table    *tile.Table
	Melds    []meld.Meld
	IsRiichi bool
}

func (v HandView) isMenzen() bool {
	for _, m := range v.Melds {
		if !m.Kind.IsConcealed() {
			return false
		}
	}
	return true
}

// TurnOptions enumerates the self-drawn-turn actions available once `drawn`
// has been added to the hand (the 14-tile state), per spec.md §5: discard
// is always legal; riichi/ankan/kakan/tsumo/kyushukyuhai/nukidora are
// conditional.
func TurnOptions(v HandView, drawn tile.Tile, searcher *hand.Searcher, firstDrawNoCalls bool) []Option {
	var out []Option
	out = append(out, Option{Kind: Discard})

	full := hand.FromTable(v.Table)
	meldsCount := len(v.Melds)

	if canTsumo(full, v.Melds, drawn, meldsCount) {
		out = append(out, Option{Kind: Tsumo, Tiles: []tile.Tile{drawn}})
	}

	if t, ok := canAnkan(v, drawn); ok {
		out = append(out, Option{Kind: Ankan, Tiles: t})
	}

	if t, ok := canKakan(v, drawn); ok {
		out = append(out, Option{Kind: Kakan, Tiles: t})
	}

	if !v.IsRiichi && v.isMenzen() && canDeclareRiichi(full, meldsCount, searcher) {
		out = append(out, Option{Kind: Riichi})
	}

	if firstDrawNoCalls && canKyushukyuhai(full) {
		out = append(out, Option{Kind: Kyushukyuhai})
	}

	if drawn.Suit == tile.Honor && drawn.Number == tile.North {
		out = append(out, Option{Kind: Nukidora, Tiles: []tile.Tile{drawn}})
	}

	return out
}

// canTsumo reports whether the 14-tile hand (concealed + melds) is a legal
// agari shape. It does not check for a yaku; the round engine drops a Tsumo
// option whose hand carries no real yaku (dora alone never qualifies).
func canTsumo(full hand.Hand34, melds []meld.Meld, drawn tile.Tile, meldsCount int) bool {
	if !hand.IsAgariAny(full, meldsCount) {
		return false
	}
	return true // yaku presence is checked by the engine's actOnDraw via yaku.Evaluate
}

// canAnkan reports whether the seat holds all 4 copies of some tile
// (usually the just-drawn one) and, if already riichi, that declaring the
// kan would not change the hand's waits (spec.md §5). Outside riichi, when the
// drawn tile is not a four of a kind, the lowest-indexed four of a kind held
// is offered; only one Ankan set is offered per turn.
func canAnkan(v HandView, drawn tile.Tile) ([]tile.Tile, bool) {
	idx := drawn.Normalize().Index34()
	if v.Table.Count34(idx) != 4 && !v.IsRiichi {
		for i := 0; i < 34; i++ {
			if v.Table.Count34(i) == 4 {
				idx = i
				break
			}
		}
	}
	if v.Table.Count34(idx) != 4 {
		return nil, false
	}
	if v.IsRiichi && waitsChangeAfterAnkan(v, idx) {
		return nil, false
	}
	return v.Table.TilesOf(idx), true
}

// waitsChangeAfterAnkan reports whether removing all 4 copies of idx from
// the concealed hand (replacing them with an ankan meld) changes the
// seat's waits -- only riichi-declared ankan is restricted by this.
func waitsChangeAfterAnkan(v HandView, idx int) bool {
	before := hand.FromTable(v.Table)
	beforeWaits := hand.Waits(before, len(v.Melds))

	after := before
	after[idx] = 0
	afterWaits := hand.Waits(after, len(v.Melds)+1)

	if len(beforeWaits) != len(afterWaits) {
		return true
	}
	seen := make(map[int]bool, len(beforeWaits))
	for _, w := range beforeWaits {
		seen[w] = true
	}
	for _, w := range afterWaits {
		if !seen[w] {
			return true
		}
	}
	return false
}

// canKakan reports whether the seat has an existing Pon meld matching the
// drawn tile's identity, upgradeable to a kan.
func canKakan(v HandView, drawn tile.Tile) ([]tile.Tile, bool) {
	idx := drawn.Normalize().Index34()
	for _, m := range v.Melds {
		if m.Kind == meld.Pon && m.Low34() == idx {
			return []tile.Tile{drawn}, true
		}
	}
	return nil, false
}

// canDeclareRiichi reports whether some discard from the 14-tile hand
// leaves the seat concealed-tenpai.
func canDeclareRiichi(full hand.Hand34, meldsCount int, searcher *hand.Searcher) bool {
	if meldsCount != 0 {
		return false
	}
	for i := 0; i < 34; i++ {
		if full[i] == 0 {
			continue
		}
		full[i]--
		sh := 0
		if searcher != nil {
			sh = searcher.Shanten(full, meldsCount)
		} else {
			sh = hand.ShantenAll(full, meldsCount)
		}
		full[i]++
		if sh == 0 {
			return true
		}
	}
	return false
}

var kokushiTypes = [13]int{0, 8, 9, 17, 18, 26, 27, 28, 29, 30, 31, 32, 33}

// canKyushukyuhai reports the nine-kinds-nine-terminals abortive-draw
// eligibility: nine or more distinct terminal/honor types on the very
// first, uncalled draw.
func canKyushukyuhai(full hand.Hand34) bool {
	distinct := 0
	for _, idx := range kokushiTypes {
		if full[idx] > 0 {
			distinct++
		}
	}
	return distinct >= 9
}

// EvaluateRonEligibility decides ron legality given the decomposition the
// caller intends to score: agari shape, at least one real yaku, and not
// furiten.
func EvaluateRonEligibility(ctx *yaku.Context, isFuriten bool) bool {
	if isFuriten {
		return false
	}
	return len(yaku.Evaluate(ctx)) > 0
}
