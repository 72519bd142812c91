package agent

import (
	"context"

	"mahjongcore/internal/action"
	"mahjongcore/internal/eventschema"
)

// NullAgent always resolves to Nop immediately; grounded on the teacher's
// timeout substitution (handleDropTimeout/handleReactionTimeout always
// falling back to a no-op reaction), made into a first-class agent kind
// per spec.md §9's "concrete kinds include {null, random, rule-based bot,
// mjai-bridge, interactive}" rather than an inline fallback path.
type NullAgent struct {
	seat int
}

func NewNullAgent() *NullAgent { return &NullAgent{} }

func (a *NullAgent) Init(seat int, _ any) { a.seat = seat }

func (a *NullAgent) Select(_ context.Context, _ []action.Option, _ TenpaiInfo) *Future {
	f, ch := NewFuture(a.seat, func() {})
	ch <- action.Option{Kind: action.Discard}
	return f
}

func (a *NullAgent) Expire(_ *Future) {}

func (a *NullAgent) NotifyEvent(_ eventschema.Event) {}
