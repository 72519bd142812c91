package engine

import (
	"context"
	"time"

	"mahjongcore/internal/action"
	"mahjongcore/internal/agent"
	"mahjongcore/internal/eventschema"
	"mahjongcore/internal/hand"
	"mahjongcore/internal/meld"
	"mahjongcore/internal/stage"
	"mahjongcore/internal/tile"
	"mahjongcore/internal/yaku"
)

// DrawType enumerates the exhaustive/abortive draw reasons of spec.md §4.7.
type DrawType string

const (
	DrawExhaustive   DrawType = "exhaustive"
	DrawSuufuurenda  DrawType = "suufuurenda"
	DrawSuukansanra  DrawType = "suukansanra"
	DrawSuuchariichi DrawType = "suuchariichi"
	DrawTripleRon    DrawType = "triple_ron"
	DrawKyushukyuhai DrawType = "kyushukyuhai"
)

// Outcome is what one round resolves to: a win (possibly multi-ron) or a
// draw, carrying everything the Match loop needs to advance dealer/honba
// and settle scores, per spec.md §4.7.
type Outcome struct {
	Stage       *stage.Stage
	Events      []eventschema.Event
	IsWin       bool
	WinnerSeats []int
	DealerWon   bool
	DrawType    DrawType
	TenpaiMask  [4]bool
}

// roundState bundles everything one round's loop threads through its
// helper functions, grounded on the teacher's RiichiMahjong4p struct
// (Wall + Players + per-round bookkeeping), generalized into a plain value
// driven synchronously instead of by a network actor loop.
type roundState struct {
	rule     Rule
	wall     *Wall
	stage    *stage.Stage
	agents   [4]agent.Agent
	searcher *hand.Searcher
	events   []eventschema.Event

	anyCallMade bool        // clears tenhou/chiihou eligibility
	kanSeats    map[int]int // seat -> kan count, for suukansanra
}

func (rs *roundState) emit(ev eventschema.Event) {
	rs.stage.Apply(ev)
	rs.events = append(rs.events, ev)
	for seat := range rs.agents {
		if rs.agents[seat] != nil {
			rs.agents[seat].NotifyEvent(ev)
		}
	}
}

func (rs *roundState) deadline() time.Time {
	return time.Now().Add(time.Duration(rs.rule.AgentTimeoutMS) * time.Millisecond)
}

// requestChoice asks one seat's agent to choose among opts, substituting
// the zero-value (Discard/pass) option on timeout or context cancellation,
// per spec.md §7's Timeout policy.
func requestChoice(ctx context.Context, rs *roundState, seat int, opts []action.Option, info agent.TenpaiInfo) action.Option {
	dctx, cancel := context.WithDeadline(ctx, rs.deadline())
	defer cancel()
	f := rs.agents[seat].Select(dctx, opts, info)
	choice, err := f.Wait(dctx)
	if err != nil {
		return action.Option{Kind: action.Discard}
	}
	return choice
}

// PlayRound runs one complete round (New → deals/turns/calls → Win/Draw),
// grounded on the teacher's riichi_mahjong_4p_engine.go top-level actor
// loop, generalized into a synchronous function returning an Outcome
// instead of pushing terminal events to connectors.
func PlayRound(ctx context.Context, rule Rule, wall *Wall, round, dealer, honba, sticks int, scores [4]int, names [4]string, agents [4]agent.Agent, searcher *hand.Searcher) (*Outcome, error) {
	hands := wall.DealHands()
	newEv := eventschema.Event{
		Type: eventschema.EvNew, Round: round, Dealer: dealer, Honba: honba, Sticks: sticks,
		Doras: wall.RevealedDoraIndicators(), Names: names, Scores: scores, Hands: hands,
		WallCount: wall.LiveCount(),
	}
	st := stage.New(newEv)

	rs := &roundState{rule: rule, wall: wall, stage: st, agents: agents, searcher: searcher, kanSeats: map[int]int{}}
	rs.events = append(rs.events, newEv)
	for seat := range agents {
		if agents[seat] != nil {
			agents[seat].Init(seat, st.Clone())
			agents[seat].NotifyEvent(newEv)
		}
	}

	cur := dealer
	firstGoAround := true // clears once any seat's second turn begins or any call is made

	for {
		outcome, err := rs.drawAndAct(ctx, cur, firstGoAround)
		if err != nil {
			return nil, err
		}
		if outcome != nil {
			return outcome, nil
		}

		discardedBy := rs.stage.LastTile.Seat
		discarded := rs.stage.LastTile.Tile

		callOutcome, claimedBy, err := rs.runCallPhase(ctx, discardedBy, discarded)
		if err != nil {
			return nil, err
		}
		if callOutcome != nil {
			return callOutcome, nil
		}

		if draw := rs.checkAbortiveDraws(); draw != "" {
			return rs.drawOutcome(draw), nil
		}

		if claimedBy >= 0 {
			cur = claimedBy
			firstGoAround = false
			continue
		}

		if rs.wall.LiveCount() == 0 {
			return rs.drawOutcome(DrawExhaustive), nil
		}

		cur = stage.NextSeat(discardedBy)
		if cur == dealer {
			firstGoAround = false
		}
	}
}

// drawAndAct draws a tile for seat from the live wall, applies the Deal
// event, and drives that seat's turn-phase decision.
func (rs *roundState) drawAndAct(ctx context.Context, seat int, firstDrawNoCalls bool) (*Outcome, error) {
	drawn, ok := rs.wall.DrawLive()
	if !ok {
		return rs.drawOutcome(DrawExhaustive), nil
	}
	rs.emit(eventschema.Event{Type: eventschema.EvDeal, Seat: seat, Tile: drawn})
	haitei := rs.wall.LiveCount() == 0
	return rs.actOnDraw(ctx, seat, drawn, firstDrawNoCalls && !rs.anyCallMade, haitei, false)
}

// actOnDraw resolves one seat's decision after a tile lands in hand,
// whether from the live wall or a kan replacement, recursing through
// further ankan/kakan/nukidora replacement draws as needed.
func (rs *roundState) actOnDraw(ctx context.Context, seat int, drawn tile.Tile, firstDrawNoCalls, haitei, rinshan bool) (*Outcome, error) {
	p := rs.stage.Players[seat]
	view := action.HandView{Table: p.Table, Melds: p.Melds, IsRiichi: p.Riichi}

	var opts []action.Option
	if p.Riichi {
		opts = []action.Option{{Kind: action.Discard, Tiles: []tile.Tile{drawn}}}
		if t, ok := canAnkanRiichiLocked(view, drawn); ok {
			opts = append(opts, action.Option{Kind: action.Ankan, Tiles: t})
		}
		if hand.IsAgariAny(hand.FromTable(p.Table), len(p.Melds)) {
			opts = append(opts, action.Option{Kind: action.Tsumo, Tiles: []tile.Tile{drawn}})
		}
	} else {
		opts = action.TurnOptions(view, drawn, rs.searcher, firstDrawNoCalls)
		isDealer := seat == rs.stage.Dealer
		sit := rs.buildSituation(seat, winFlags{isTsumo: true, isDealer: isDealer, haitei: haitei, rinshan: rinshan,
			tenhou: firstDrawNoCalls && isDealer, chiihou: firstDrawNoCalls && !isDealer})
		if len(yaku.Evaluate(bestYakuContext(p.Table, p.Melds, drawn, sit))) == 0 {
			kept := opts[:0]
			for _, o := range opts {
				if o.Kind != action.Tsumo {
					kept = append(kept, o)
				}
			}
			opts = kept
		}
	}

	choice := requestChoice(ctx, rs, seat, opts, agent.TenpaiInfo{})

	switch choice.Kind {
	case action.Tsumo:
		return rs.resolveTsumo(seat, drawn, haitei, rinshan, firstDrawNoCalls), nil

	case action.Kyushukyuhai:
		return rs.drawOutcome(DrawKyushukyuhai), nil

	case action.Ankan:
		return rs.resolveKan(ctx, seat, meld.Ankan, choice.Tiles, tile.Tile{})

	case action.Kakan:
		return rs.resolveKan(ctx, seat, meld.Kakan, choice.Tiles, choice.Tiles[0])

	case action.Nukidora:
		rs.emit(eventschema.Event{Type: eventschema.EvNukidora, Seat: seat, Tile: choice.Tiles[0], IsDrawn: true})
		next, ok := rs.wall.DrawReplacement()
		if !ok {
			return rs.drawOutcome(DrawExhaustive), nil
		}
		rs.emit(eventschema.Event{Type: eventschema.EvDeal, Seat: seat, Tile: next, IsReplacement: true})
		return rs.actOnDraw(ctx, seat, next, false, rs.wall.LiveCount() == 0, false)

	case action.Riichi:
		return rs.resolveRiichiDiscard(ctx, seat)

	default: // Discard
		discard := drawn
		if len(choice.Tiles) == 1 {
			discard = choice.Tiles[0]
		} else if !p.Riichi {
			// action.TurnOptions' Discard option carries no specific tile --
			// it only signals "I will discard" -- so a non-riichi-locked
			// seat gets a second-stage choice among every physical tile in
			// hand (tedashi as well as tsumogiri).
			tileChoice := requestChoice(ctx, rs, seat, discardCandidates(p.Table), agent.TenpaiInfo{})
			if len(tileChoice.Tiles) == 1 {
				discard = tileChoice.Tiles[0]
			}
		}
		isDrawn := discard.Normalize() == drawn.Normalize() && discard.IsRed() == drawn.IsRed()
		rs.emit(eventschema.Event{Type: eventschema.EvDiscard, Seat: seat, Tile: discard, IsDrawn: isDrawn})
		return nil, nil
	}
}

// canAnkanRiichiLocked mirrors action.canAnkan's wait-preservation rule for
// the riichi-locked path (the action package's helper is unexported and
// already covers the non-riichi case via TurnOptions itself).
func canAnkanRiichiLocked(v action.HandView, drawn tile.Tile) ([]tile.Tile, bool) {
	idx := drawn.Normalize().Index34()
	if v.Table.Count34(idx) != 4 {
		return nil, false
	}
	before := hand.FromTable(v.Table)
	beforeWaits := hand.Waits(before, len(v.Melds))
	after := before
	after[idx] = 0
	afterWaits := hand.Waits(after, len(v.Melds)+1)
	if len(beforeWaits) != len(afterWaits) {
		return nil, false
	}
	seen := make(map[int]bool, len(beforeWaits))
	for _, w := range beforeWaits {
		seen[w] = true
	}
	for _, w := range afterWaits {
		if !seen[w] {
			return nil, false
		}
	}
	return v.Table.TilesOf(idx), true
}

// resolveRiichiDiscard asks seat which tenpai-preserving tile to discard
// alongside its riichi declaration, per spec.md §5.
func (rs *roundState) resolveRiichiDiscard(ctx context.Context, seat int) (*Outcome, error) {
	p := rs.stage.Players[seat]
	candidates := riichiDiscardCandidates(p.Table, rs.searcher)
	choice := requestChoice(ctx, rs, seat, candidates, agent.TenpaiInfo{})
	discard := choice.Tiles[0]
	rs.emit(eventschema.Event{Type: eventschema.EvDiscard, Seat: seat, Tile: discard, IsRiichi: true})
	return nil, nil
}

// resolveKan offers a chankan window first on Kakan, then applies the
// Ankan/Kakan meld declaration, reveals its dora indicator immediately (see
// DESIGN.md's Open Question on kan-dora timing), then draws the rinshan
// replacement tile.
func (rs *roundState) resolveKan(ctx context.Context, seat int, kind meld.Kind, consumed []tile.Tile, kakanTile tile.Tile) (*Outcome, error) {
	target := consumed[0]
	if kind == meld.Kakan {
		target = kakanTile
	}

	rs.kanSeats[seat]++

	if kind == meld.Kakan {
		if win := rs.offerChankan(ctx, seat, target); win != nil {
			return win, nil
		}
	}

	rs.emit(eventschema.Event{Type: eventschema.EvMeld, Seat: seat, MeldType: meldTagOf(kind), Tile: target, Consumed: consumed})
	if ind, ok := rs.wall.RevealNextDora(); ok {
		rs.emit(eventschema.Event{Type: eventschema.EvDora, Tile: ind})
	}

	next, ok := rs.wall.DrawReplacement()
	if !ok {
		return rs.drawOutcome(DrawExhaustive), nil
	}
	rs.emit(eventschema.Event{Type: eventschema.EvDeal, Seat: seat, Tile: next, IsReplacement: true})
	return rs.actOnDraw(ctx, seat, next, false, false, true)
}

// offerChankan lets every other tenpai seat ron the tile a kakan is about
// to absorb, per spec.md §4.3's chankan yaku.
func (rs *roundState) offerChankan(ctx context.Context, seat int, target tile.Tile) *Outcome {
	var futures []*agent.Future
	for s := 0; s < 4; s++ {
		if s == seat {
			continue
		}
		p := rs.stage.Players[s]
		if p.IsFuriten() || !containsWait(p.WinningTiles, target) {
			continue
		}
		dctx, cancel := context.WithDeadline(ctx, rs.deadline())
		defer cancel()
		f := rs.agents[s].Select(dctx, []action.Option{{Kind: action.Ron}, {Kind: action.Discard}}, agent.TenpaiInfo{})
		futures = append(futures, f)
	}
	if len(futures) == 0 {
		return nil
	}
	results := agent.ResolveCallPhase(ctx, futures, rs.deadline())
	var winners []int
	for _, r := range agent.BestReaction(results) {
		if r.Choice.Kind == action.Ron {
			winners = append(winners, r.Seat)
		}
	}
	if len(winners) == 0 {
		return nil
	}
	winners = rs.headBump(seat, winners)
	return rs.resolveRon(winners, seat, target, true)
}

func containsWait(waits []tile.Tile, t tile.Tile) bool {
	n := t.Normalize()
	for _, w := range waits {
		if w.Normalize() == n {
			return true
		}
	}
	return false
}
