package engine

import (
	"context"
	"sort"

	"mahjongcore/internal/action"
	"mahjongcore/internal/agent"
	"mahjongcore/internal/eventschema"
	"mahjongcore/internal/meld"
	"mahjongcore/internal/score"
	"mahjongcore/internal/stage"
	"mahjongcore/internal/tile"
	"mahjongcore/internal/yaku"
)

// resolveTsumo scores and applies a self-drawn win, splitting the payout
// across the other three seats per spec.md §4.4 (dealer pays double when
// the winner is a non-dealer; a dealer's win is split evenly three ways).
func (rs *roundState) resolveTsumo(seat int, winTile tile.Tile, haitei, rinshan, tenhouChiihou bool) *Outcome {
	p := rs.stage.Players[seat]
	isDealer := seat == rs.stage.Dealer
	situation := rs.buildSituation(seat, winFlags{
		isTsumo: true, isDealer: isDealer, haitei: haitei, rinshan: rinshan,
		tenhou: tenhouChiihou && isDealer, chiihou: tenhouChiihou && !isDealer,
	})
	detail := scoreWin(p.Table, p.Melds, winTile, situation, true)

	honbaBonus := 100 * rs.stage.Honba
	paoSeat := paoSeatFor(p.Melds, detail)

	var delta [4]int
	switch {
	case paoSeat >= 0:
		total := tsumoTotal(detail, isDealer) + 3*honbaBonus
		delta[paoSeat] -= total
		delta[seat] += total
	case isDealer:
		each := detail.Points.NonDealerTsumo + honbaBonus
		for s := 0; s < 4; s++ {
			if s == seat {
				continue
			}
			delta[s] -= each
			delta[seat] += each
		}
	default:
		dealerPay := detail.Points.DealerTsumo + honbaBonus
		otherPay := detail.Points.NonDealerTsumo + honbaBonus
		for s := 0; s < 4; s++ {
			switch {
			case s == seat:
			case s == rs.stage.Dealer:
				delta[s] -= dealerPay
				delta[seat] += dealerPay
			default:
				delta[s] -= otherPay
				delta[seat] += otherPay
			}
		}
	}
	delta[seat] += rs.stage.Sticks * 1000

	ev := eventschema.Event{
		Type: eventschema.EvWin, Seat: seat, Tile: winTile,
		UraDoras: rs.wall.UraDoraIndicators(), DeltaScores: delta, Honba: rs.stage.Honba, Sticks: 0,
		Contexts: []eventschema.WinContext{winContext(seat, winTile, isDealer, true, p.Riichi, paoSeat, detail)},
	}
	rs.emit(ev)
	return &Outcome{Stage: rs.stage, Events: rs.events, IsWin: true, WinnerSeats: []int{seat}, DealerWon: isDealer}
}

// tsumoTotal is what a tsumo win would have collected in total across all
// three payers, absent pao -- the amount a sole pao-liable seat instead
// pays outright.
func tsumoTotal(d score.Detail, isDealer bool) int {
	if isDealer {
		return 3 * d.Points.NonDealerTsumo
	}
	return d.Points.DealerTsumo + 2*d.Points.NonDealerTsumo
}

// paoSeatFor reports the liable seat, if any, when a yakuman win was
// completed by a meld carrying pao (daisangen/daisuushii's triggering
// call), per spec.md §4.3.
func paoSeatFor(melds []meld.Meld, d score.Detail) int {
	if d.Yakuman == 0 {
		return -1
	}
	for _, m := range melds {
		if m.IsPao {
			return m.From
		}
	}
	return -1
}

// resolveRon scores and applies a (possibly multi-seat) ron win against
// discardedTile thrown by fromSeat. All seats in winners are assumed
// already head-bump-resolved and ron-legal.
func (rs *roundState) resolveRon(winners []int, fromSeat int, winTile tile.Tile, chankan bool) *Outcome {
	contexts := make([]eventschema.WinContext, 0, len(winners))
	var delta [4]int
	headPayer := fromSeat

	for _, seat := range winners {
		p := rs.stage.Players[seat]
		isDealer := seat == rs.stage.Dealer
		situation := rs.buildSituation(seat, winFlags{
			isTsumo: false, isDealer: isDealer, chankan: chankan,
			houtei: !chankan && rs.wall.LiveCount() == 0,
		})
		concealed := fullHandForPlayer(p, winTile, false)
		detail := scoreWin(concealed, p.Melds, winTile, situation, false)

		paoSeat := paoSeatFor(p.Melds, detail)
		payer := fromSeat
		if paoSeat >= 0 {
			payer = paoSeat
		}
		amount := detail.Points.Ron
		delta[payer] -= amount
		delta[seat] += amount
		if seat == winners[0] {
			headPayer = payer
		}

		contexts = append(contexts, winContext(seat, winTile, isDealer, false, p.Riichi, paoSeat, detail))
	}
	// Only the head-bump winner (nearest clockwise of the discarder)
	// collects the riichi-stick pool and the honba bonus; other
	// simultaneous ron winners collect hand value only, per spec.md §4.7.
	if len(winners) > 0 {
		honbaBonus := 300 * rs.stage.Honba
		delta[headPayer] -= honbaBonus
		delta[winners[0]] += honbaBonus
		delta[winners[0]] += rs.stage.Sticks * 1000
	}

	ev := eventschema.Event{
		Type: eventschema.EvWin, Seat: winners[0], Tile: winTile,
		UraDoras: rs.wall.UraDoraIndicators(), DeltaScores: delta, Honba: rs.stage.Honba, Sticks: 0,
		Contexts: contexts,
	}
	rs.emit(ev)
	dealerWon := false
	for _, s := range winners {
		if s == rs.stage.Dealer {
			dealerWon = true
		}
	}
	return &Outcome{Stage: rs.stage, Events: rs.events, IsWin: true, WinnerSeats: winners, DealerWon: dealerWon}
}

func winContext(seat int, winTile tile.Tile, isDealer, isTsumo, riichi bool, paoSeat int, d score.Detail) eventschema.WinContext {
	return eventschema.WinContext{
		Seat: seat, WinningTile: winTile, IsDealer: isDealer, IsDrawn: isTsumo, Riichi: riichi,
		PaoSeat: paoSeat, HasPao: paoSeat >= 0,
		Yakus: toYakuLines(d.Yakus), Fu: d.Fu, Fan: d.Fan, Yakuman: d.Yakuman,
		Points: [3]int{d.Points.Ron, d.Points.NonDealerTsumo, d.Points.DealerTsumo},
		Title:  d.Points.Title,
	}
}

// headBump orders simultaneous ron winners by clockwise distance from the
// discarder -- the atama-hane convention spec.md §4.7 names -- without
// dropping any of them: "pay stacks accumulate", every ron-legal winner
// still collects hand value from the discarder. Only the nearest seat
// (winners[0] after this reorder) goes on to collect the riichi-stick
// pool and honba bonus in resolveRon.
func (rs *roundState) headBump(fromSeat int, winners []int) []int {
	if len(winners) <= 1 {
		return winners
	}
	ordered := append([]int(nil), winners...)
	dist := func(s int) int { return (s - fromSeat + 4) % 4 }
	sort.Slice(ordered, func(i, j int) bool { return dist(ordered[i]) < dist(ordered[j]) })
	return ordered
}

// runCallPhase offers every other seat a reaction to discardedTile, honors
// priority (ron > minkan > pon > chi), applies the winning meld (if any)
// and that seat's forced follow-up discard, and reports which seat should
// discard next (-1 if the turn simply advances to the discarder's right).
func (rs *roundState) runCallPhase(ctx context.Context, fromSeat int, discarded tile.Tile) (*Outcome, int, error) {
	var futures []*agent.Future
	var seats []int
	var opts [4][]action.Option

	for s := 0; s < 4; s++ {
		if s == fromSeat {
			continue
		}
		p := rs.stage.Players[s]
		view := action.HandView{Table: p.Table, Melds: p.Melds, IsRiichi: p.Riichi}
		ronLegal := !p.IsFuriten() && containsWait(p.WinningTiles, discarded) &&
			action.EvaluateRonEligibility(rs.ronContext(s, discarded), p.IsFuriten())
		choices := action.CallOptions(view, s, fromSeat, discarded, ronLegal)
		if p.Riichi {
			choices = filterRiichiCalls(choices)
		}
		if len(choices) == 0 {
			continue
		}
		choices = append(choices, action.Option{Kind: action.Discard})
		dctx, cancel := context.WithDeadline(ctx, rs.deadline())
		defer cancel()
		f := rs.agents[s].Select(dctx, choices, agent.TenpaiInfo{})
		futures = append(futures, f)
		seats = append(seats, s)
		opts[s] = choices
	}

	if len(futures) == 0 {
		return nil, -1, nil
	}

	results := agent.ResolveCallPhase(ctx, futures, rs.deadline())
	best := agent.BestReaction(results)
	if len(best) == 0 {
		return nil, -1, nil
	}

	if best[0].Choice.Kind == action.Ron {
		var winners []int
		for _, r := range best {
			winners = append(winners, r.Seat)
		}
		if rs.rule.TripleRonAbortOn && len(winners) >= 3 {
			return rs.drawOutcome(DrawTripleRon), -1, nil
		}
		winners = rs.headBump(fromSeat, winners)
		rs.anyCallMade = true
		return rs.resolveRon(winners, fromSeat, discarded, false), -1, nil
	}

	winner := best[0]
	rs.anyCallMade = true
	seat := winner.Seat
	kind := meldKindFromAction(winner.Choice.Kind)
	rs.kanSeats[seat] += boolToInt(kind == meld.Minkan)

	rs.emit(eventschema.Event{Type: eventschema.EvMeld, Seat: seat, MeldType: meldTagOf(kind), Tile: discarded, Consumed: winner.Choice.Tiles})

	if kind == meld.Minkan {
		if ind, ok := rs.wall.RevealNextDora(); ok {
			rs.emit(eventschema.Event{Type: eventschema.EvDora, Tile: ind})
		}
		next, ok := rs.wall.DrawReplacement()
		if !ok {
			return rs.drawOutcome(DrawExhaustive), -1, nil
		}
		rs.emit(eventschema.Event{Type: eventschema.EvDeal, Seat: seat, Tile: next, IsReplacement: true})
		out, err := rs.actOnDraw(ctx, seat, next, false, false, true)
		if err != nil {
			return nil, -1, err
		}
		if out != nil {
			return out, -1, nil
		}
		return nil, seat, nil
	}

	// Chi/Pon: an immediate forced discard, restricted by kuikae.
	p := rs.stage.Players[seat]
	candidates := discardCandidates(p.Table)
	if kind == meld.Chi {
		candidates = filterKuikae(candidates, winner.Choice, discarded)
	}
	choice := requestChoice(ctx, rs, seat, candidates, agent.TenpaiInfo{})
	discard := choice.Tiles[0]
	rs.emit(eventschema.Event{Type: eventschema.EvDiscard, Seat: seat, Tile: discard})
	return nil, seat, nil
}

func meldKindFromAction(k action.Kind) meld.Kind {
	switch k {
	case action.Pon:
		return meld.Pon
	case action.Minkan:
		return meld.Minkan
	default:
		return meld.Chi
	}
}

// meldTagOf renders a meld.Kind as the capitalized wire tag
// stage/reduce.go's meldKindOf expects ("Chi"/"Pon"/"Minkan"/"Ankan"/
// "Kakan"), distinct from meld.Kind.String()'s lowercase display form.
func meldTagOf(k meld.Kind) string {
	switch k {
	case meld.Chi:
		return "Chi"
	case meld.Pon:
		return "Pon"
	case meld.Minkan:
		return "Minkan"
	case meld.Ankan:
		return "Ankan"
	default:
		return "Kakan"
	}
}

// filterRiichiCalls strips Chi/Pon/Minkan options for a riichi-locked seat
// evaluating someone else's discard -- riichi freezes hand shape, but ron
// remains available.
func filterRiichiCalls(opts []action.Option) []action.Option {
	var out []action.Option
	for _, o := range opts {
		if o.Kind == action.Ron {
			out = append(out, o)
		}
	}
	return out
}

func filterKuikae(candidates []action.Option, chi action.Option, discarded tile.Tile) []action.Option {
	var out []action.Option
	for _, c := range candidates {
		if action.IsKuikaeForbidden(chi, discarded, c.Tiles[0]) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// ronContext builds the yaku.Context this seat's ron legality check needs,
// picking the decomposition most likely to carry a real yaku -- ron is
// legal only if some legal reading of the hand carries at least one.
func (rs *roundState) ronContext(seat int, winTile tile.Tile) *yaku.Context {
	p := rs.stage.Players[seat]
	isDealer := seat == rs.stage.Dealer
	situation := rs.buildSituation(seat, winFlags{isTsumo: false, isDealer: isDealer})
	concealed := fullHandForPlayer(p, winTile, false)
	return bestYakuContext(concealed, p.Melds, winTile, situation)
}

// checkAbortiveDraws reports which table-wide abortive draw condition (if
// any) fires after the most recent discard/call settled, per spec.md §4.7.
func (rs *roundState) checkAbortiveDraws() DrawType {
	if rs.rule.SuukansanraOn {
		distinctKanSeats := 0
		totalKans := 0
		for _, n := range rs.kanSeats {
			if n > 0 {
				distinctKanSeats++
			}
			totalKans += n
		}
		if totalKans >= 4 && distinctKanSeats > 1 {
			return DrawSuukansanra
		}
	}
	if rs.rule.SuuchariichiOn {
		allRiichi := true
		for _, p := range rs.stage.Players {
			if !p.Riichi {
				allRiichi = false
				break
			}
		}
		if allRiichi {
			return DrawSuuchariichi
		}
	}
	if rs.rule.SuufuurendaOn && !rs.anyCallMade && len(rs.stage.Players[0].Discards) == 1 {
		firstWind := tile.Tile{}
		sameWind := true
		for s := 0; s < 4; s++ {
			discards := rs.stage.Players[s].Discards
			if len(discards) == 0 || !discards[0].Tile.IsHonor() || !discards[0].Tile.IsWind() {
				sameWind = false
				break
			}
			if s == 0 {
				firstWind = discards[0].Tile
			} else if discards[0].Tile.Normalize() != firstWind.Normalize() {
				sameWind = false
				break
			}
		}
		if sameWind {
			return DrawSuufuurenda
		}
	}
	return ""
}

// drawOutcome applies an exhaustive/abortive Draw event: noten-bappu
// settlement for exhaustive draws (nagashimangan overrides normal scoring
// when triggered), no score movement for abortive draws.
func (rs *roundState) drawOutcome(dt DrawType) *Outcome {
	var delta [4]int
	var nagashi [4]int

	if dt == DrawExhaustive {
		for s, p := range rs.stage.Players {
			if !stage.NagashimanganEligible(p) || len(p.Discards) == 0 {
				continue
			}
			// Scored as a mangan tsumo: the dealer pays 4000, non-dealers
			// pay 2000 each when a non-dealer nagashimangans; every seat
			// pays 4000 when the dealer does.
			for other := 0; other < 4; other++ {
				if other == s {
					continue
				}
				amount := 2000
				if s == rs.stage.Dealer || other == rs.stage.Dealer {
					amount = 4000
				}
				nagashi[other] -= amount
				nagashi[s] += amount
			}
		}
		if allZero(nagashi) {
			delta = notenBappu(rs.stage)
		}
	}

	mask := rs.stage.TenpaiMask()
	ev := eventschema.Event{
		Type: eventschema.EvDraw, DrawType: string(dt), TenpaiMask: mask,
		DeltaScores: delta, NagashimanganScores: nagashi,
	}
	rs.emit(ev)
	return &Outcome{Stage: rs.stage, Events: rs.events, IsWin: false, DrawType: dt, TenpaiMask: mask}
}

func allZero(d [4]int) bool {
	for _, v := range d {
		if v != 0 {
			return false
		}
	}
	return true
}

// notenBappu splits 3000 points from the noten (not-tenpai) seats to the
// tenpai seats, per spec.md §4.7's standard exhaustive-draw settlement.
func notenBappu(st *stage.Stage) [4]int {
	var delta [4]int
	tenpaiSeats, notenSeats := 0, 0
	for _, p := range st.Players {
		if p.IsTenpai() {
			tenpaiSeats++
		} else {
			notenSeats++
		}
	}
	if tenpaiSeats == 0 || notenSeats == 0 {
		return delta
	}
	pool := 3000
	perNoten := pool / notenSeats
	perTenpai := pool / tenpaiSeats
	for s, p := range st.Players {
		if p.IsTenpai() {
			delta[s] += perTenpai
		} else {
			delta[s] -= perNoten
		}
	}
	return delta
}
