package agent

import (
	"context"
	"math/rand"

	"mahjongcore/internal/action"
	"mahjongcore/internal/eventschema"
)

// RandomAgent resolves to a uniformly random legal option, deferring to
// Tsumo/Ron whenever they're offered (a random bot that declines a free
// win would make test fixtures nondeterministic in ways unrelated to what
// is actually being exercised). Per spec.md §1's explicit exclusion of
// "random bot heuristics" from the CORE's scope, this is the minimal
// reference implementation satisfying the Agent contract (§1: "any
// strategy may be plugged in; contract is select one action from a
// supplied set"), not a strategy the CORE depends on.
type RandomAgent struct {
	seat int
	rng  *rand.Rand
}

func NewRandomAgent(seed int64) *RandomAgent {
	return &RandomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *RandomAgent) Init(seat int, _ any) { a.seat = seat }

func (a *RandomAgent) Select(_ context.Context, opts []action.Option, _ TenpaiInfo) *Future {
	f, ch := NewFuture(a.seat, func() {})
	ch <- a.choose(opts)
	return f
}

func (a *RandomAgent) choose(opts []action.Option) action.Option {
	if len(opts) == 0 {
		return action.Option{Kind: action.Discard}
	}
	for _, o := range opts {
		if o.Kind == action.Tsumo || o.Kind == action.Ron {
			return o
		}
	}
	return opts[a.rng.Intn(len(opts))]
}

func (a *RandomAgent) Expire(_ *Future) {}

func (a *RandomAgent) NotifyEvent(_ eventschema.Event) {}
