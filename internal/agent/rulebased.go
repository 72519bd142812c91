package agent

import (
	"context"

	"mahjongcore/internal/action"
	"mahjongcore/internal/eventschema"
	"mahjongcore/internal/tile"
)

// RuleBasedAgent always takes a free win, always declares riichi once
// eligible, prefers discarding an honor or terminal tile over a simple
// one, and otherwise declines every open call. Per spec.md §1's exclusion
// of "random bot heuristics" from the CORE's scope, this is a second
// minimal reference implementation of the same Agent contract as
// RandomAgent -- a fixed greedy rule rather than a tuned strategy -- named
// because spec.md §9 lists "rule-based bot" among the Agent protocol's
// concrete kinds.
type RuleBasedAgent struct {
	seat int
}

func NewRuleBasedAgent() *RuleBasedAgent { return &RuleBasedAgent{} }

func (a *RuleBasedAgent) Init(seat int, _ any) { a.seat = seat }

func (a *RuleBasedAgent) Select(_ context.Context, opts []action.Option, _ TenpaiInfo) *Future {
	f, ch := NewFuture(a.seat, func() {})
	ch <- a.choose(opts)
	return f
}

func (a *RuleBasedAgent) choose(opts []action.Option) action.Option {
	if len(opts) == 0 {
		return action.Option{Kind: action.Discard}
	}
	for _, o := range opts {
		if o.Kind == action.Tsumo || o.Kind == action.Ron {
			return o
		}
	}
	for _, o := range opts {
		if o.Kind == action.Riichi && len(o.Tiles) == 0 {
			return o
		}
	}

	var discardLike []action.Option
	for _, o := range opts {
		if o.Kind == action.Discard || (o.Kind == action.Riichi && len(o.Tiles) == 1) {
			discardLike = append(discardLike, o)
		}
	}
	if len(discardLike) > 0 {
		return preferTerminalOrHonor(discardLike)
	}

	// Call phase: decline every chi/pon/kan offer rather than evaluate one.
	for _, o := range opts {
		if o.Kind == action.Discard {
			return o
		}
	}
	return opts[0]
}

// preferTerminalOrHonor picks the first candidate discarding a terminal or
// honor tile, falling back to the first candidate overall.
func preferTerminalOrHonor(opts []action.Option) action.Option {
	for _, o := range opts {
		if len(o.Tiles) == 1 && isTerminalOrHonor(o.Tiles[0]) {
			return o
		}
	}
	return opts[0]
}

func isTerminalOrHonor(t tile.Tile) bool {
	n := t.Normalize()
	if n.Suit == tile.Honor {
		return true
	}
	return n.Number == 1 || n.Number == 9
}

func (a *RuleBasedAgent) Expire(_ *Future) {}

func (a *RuleBasedAgent) NotifyEvent(_ eventschema.Event) {}
