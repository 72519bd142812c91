package engine

import (
	"mahjongcore/internal/eventschema"
	"mahjongcore/internal/hand"
	"mahjongcore/internal/meld"
	"mahjongcore/internal/stage"
	"mahjongcore/internal/tile"
	"mahjongcore/internal/yaku"

	"mahjongcore/internal/score"
)

// roundWindOf maps a 0-based round counter (E1..E4=0-3, S1..S4=4-7, ...) to
// its round wind, per the usual hanchan/tonpuusen convention.
func roundWindOf(round int) yaku.Wind { return yaku.Wind((round / 4) % 4) }

// seatWindOf maps a seat to its wind relative to the current dealer.
func seatWindOf(seat, dealer int) yaku.Wind { return yaku.Wind((seat - dealer + 4) % 4) }

// winFlags collects every situational flag score.Input needs for one
// seat's win, grounded on spec.md §4.3's situational-yaku table.
type winFlags struct {
	isTsumo, isDealer                     bool
	haitei, houtei, rinshan, chankan      bool
	tenhou, chiihou                       bool
}

func (rs *roundState) buildSituation(seat int, flags winFlags) yaku.Situation {
	p := rs.stage.Players[seat]
	return yaku.Situation{
		RoundWind:         roundWindOf(rs.stage.Round),
		SeatWind:          seatWindOf(seat, rs.stage.Dealer),
		IsDealer:          flags.isDealer,
		Riichi:            p.Riichi,
		DoubleRiichi:      p.DoubleRiichi,
		Ippatsu:           p.Ippatsu,
		IsTsumo:           flags.isTsumo,
		Haitei:            flags.haitei,
		Houtei:            flags.houtei,
		Rinshan:           flags.rinshan,
		Chankan:           flags.chankan,
		Tenhou:            flags.tenhou,
		Chiihou:           flags.chiihou,
		DoraIndicators:    rs.wall.RevealedDoraIndicators(),
		UraDoraIndicators: rs.wall.UraDoraIndicators(),
	}
}

// redFiveCount counts red-5 tiles across a seat's concealed table and melds.
func redFiveCount(tbl *tile.Table, melds []meld.Meld) int {
	n := tbl.RedCount(tile.Man) + tbl.RedCount(tile.Pin) + tbl.RedCount(tile.Sou)
	for _, m := range melds {
		n += m.RedCount()
	}
	return n
}

// scoreWin picks the highest-scoring legal decomposition of seat's 14-tile
// hand (concealed tiles + winTile, plus melds) and evaluates it, per
// spec.md §4.2's "multiple interpretations; score the highest" rule.
// Grounded on the teacher's score_calculator.go callHuPoints entry point,
// generalized to search every hand.DecomposeStandard result instead of
// trusting a single caller-supplied partition.
func scoreWin(v *tile.Table, melds []meld.Meld, winTile tile.Tile, situation yaku.Situation, isTsumo bool) score.Detail {
	full := hand.FromTable(v)
	meldsCount := len(melds)
	reds := redFiveCount(v, melds)

	if meldsCount == 0 && hand.IsChiitoitsu(full) {
		in := score.Input{
			Concealed: full, Melds: melds, WinTile: winTile,
			IsTsumo: isTsumo, IsChiitoitsu: true, IsDealer: situation.IsDealer,
			Situation: situation, RedFiveCount: reds,
		}
		best := score.Evaluate(in)
		if meldsCount == 0 && hand.IsKokushi(full) {
			if kok := score.Evaluate(score.Input{
				Concealed: full, WinTile: winTile, IsTsumo: isTsumo, IsDealer: situation.IsDealer,
				Situation: situation, RedFiveCount: 0,
			}); better(kok, best) {
				best = kok
			}
		}
		return best
	}
	if meldsCount == 0 && hand.IsKokushi(full) {
		return score.Evaluate(score.Input{
			Concealed: full, WinTile: winTile, IsTsumo: isTsumo, IsDealer: situation.IsDealer,
			Situation: situation, RedFiveCount: 0,
		})
	}

	decomps := hand.DecomposeStandard(full, meldsCount)
	var best score.Detail
	haveBest := false
	winIdx := winTile.Normalize().Index34()
	for _, d := range decomps {
		wait := hand.ClassifyWait(d, winIdx)
		in := score.Input{
			Concealed: full, Melds: melds, WinTile: winTile,
			Decomp: d, Wait: wait, IsTsumo: isTsumo, IsDealer: situation.IsDealer,
			Situation: situation, RedFiveCount: reds,
		}
		detail := score.Evaluate(in)
		if !haveBest || better(detail, best) {
			best = detail
			haveBest = true
		}
	}
	return best
}

// better reports whether a outranks b: yakuman multiplier first, then fan,
// then fu -- matching the standard "always score the winner's best legal
// reading" tie-break.
func better(a, b score.Detail) bool {
	if a.Yakuman != b.Yakuman {
		return a.Yakuman > b.Yakuman
	}
	if a.Fan != b.Fan {
		return a.Fan > b.Fan
	}
	return a.Fu > b.Fu
}

// toYakuLines converts a score.Detail's yaku hits into the wire-schema shape.
func toYakuLines(results []yaku.Result) []eventschema.YakuLine {
	out := make([]eventschema.YakuLine, 0, len(results))
	for _, r := range results {
		fan := r.Han
		if r.Yakuman > 0 {
			fan = r.Yakuman * 13
		}
		out = append(out, eventschema.YakuLine{Name: string(r.Name), Fan: fan})
	}
	return out
}

// fullHandForPlayer rebuilds a seat's 14-tile concealed table including a
// claimed ron tile that is not yet reflected in p.Table.
func fullHandForPlayer(p *stage.Player, ronTile tile.Tile, isTsumo bool) *tile.Table {
	if isTsumo {
		return p.Table
	}
	cloned := p.Table.Clone()
	cloned.Add(ronTile)
	return cloned
}

// bestYakuContext picks, among every legal decomposition of the 14-tile
// hand, the first one whose yaku set is non-empty (or the first one tried,
// if none qualifies) -- exactly the reading action.EvaluateRonEligibility
// needs to decide ron legality without fully scoring the hand.
func bestYakuContext(v *tile.Table, melds []meld.Meld, winTile tile.Tile, situation yaku.Situation) *yaku.Context {
	full := hand.FromTable(v)
	meldsCount := len(melds)

	if meldsCount == 0 && (hand.IsChiitoitsu(full) || hand.IsKokushi(full)) {
		return &yaku.Context{Concealed: full, Melds: melds, WinTile: winTile, Situation: situation}
	}

	decomps := hand.DecomposeStandard(full, meldsCount)
	if len(decomps) == 0 {
		return &yaku.Context{Concealed: full, Melds: melds, WinTile: winTile, Situation: situation}
	}
	winIdx := winTile.Normalize().Index34()
	var fallback *yaku.Context
	for _, d := range decomps {
		ctx := &yaku.Context{
			Concealed: full, Melds: melds, WinTile: winTile,
			Decomp: d, Wait: hand.ClassifyWait(d, winIdx), Situation: situation,
		}
		if fallback == nil {
			fallback = ctx
		}
		if len(yaku.Evaluate(ctx)) > 0 {
			return ctx
		}
	}
	return fallback
}
