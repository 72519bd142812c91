// Package agent implements the cooperative, futures-based decision
// protocol of spec.md §4.8/§5: four pluggable Agents, each exposing
// init/select/expire/notify_event, polled by a single-threaded mini
// scheduler rather than OS threads. Grounded on the teacher's
// riichi_mahjong_4p_engine.go actor loop (NotifyEvent/processEvent,
// waitReaction/isReactionComplete/selectBestReaction), generalized from a
// network-actor tied to share.GameEvent/connectors into an in-process
// Agent interface plus a channel-backed Future, since this repo's Agent
// protocol is a library contract, not a service boundary.
package agent

import (
	"context"

	"mahjongcore/internal/action"
	"mahjongcore/internal/eventschema"
)

// TenpaiInfo is the per-discard tenpai/wait annotation spec.md §4.6's
// query_action(seat, actions, tenpai_info) passes alongside the legal
// action set -- which discards (if any) leave the seat tenpai, and what
// each leaves waiting on, so an agent can choose a riichi discard without
// re-deriving shanten itself.
type TenpaiInfo struct {
	TenpaiDiscards map[int][]int // discarded tile's 34-index -> resulting waits (34-indices)
}

// Agent is the decision-making contract every seat is driven through, per
// spec.md §4.8. The Stage handle passed to Init/NotifyEvent is always
// read-only: an Agent must never mutate shared state, matching §5's
// "Stage is shared read-only with agents through cloned handles."
type Agent interface {
	// Init is called once per round at New.
	Init(seat int, snapshot any)
	// Select asks the agent to choose one of opts; it returns immediately
	// with a Future the engine polls, per §5's single suspension point.
	Select(ctx context.Context, opts []action.Option, info TenpaiInfo) *Future
	// Expire signals that an outstanding Select is no longer needed (a
	// higher-priority action already resolved this phase). The Future must
	// resolve to Nop or be abandoned without any Stage side effect.
	Expire(f *Future)
	// NotifyEvent broadcasts one applied Event to the agent.
	NotifyEvent(ev eventschema.Event)
}

// Future is a single outstanding Select call's eventual Action, modeled as
// a one-shot channel rather than a goroutine-per-agent promise library,
// matching §5's "single reader/writer... mini-executor polls futures in a
// loop."
type Future struct {
	seat   int
	done   chan action.Option
	cancel context.CancelFunc
}

// NewFuture constructs a Future bound to ctx; cancel ends the wait early
// (used by Expire) without the agent needing to observe cancellation
// itself if it chooses not to.
func NewFuture(seat int, cancel context.CancelFunc) (*Future, chan<- action.Option) {
	f := &Future{seat: seat, done: make(chan action.Option, 1), cancel: cancel}
	return f, f.done
}

// Seat reports which seat this Future resolves an action for.
func (f *Future) Seat() int { return f.seat }

// Poll returns the resolved action and true if Select has already
// completed, without blocking -- the mini-scheduler's basic primitive.
func (f *Future) Poll() (action.Option, bool) {
	select {
	case a, ok := <-f.done:
		if !ok {
			return action.Option{Kind: action.Discard}, false
		}
		f.done <- a // put back so a second Poll (or Wait) still observes it
		return a, true
	default:
		return action.Option{}, false
	}
}

// Wait blocks until Select resolves or ctx is cancelled, returning the
// resolved action or the context's error.
func (f *Future) Wait(ctx context.Context) (action.Option, error) {
	select {
	case a := <-f.done:
		return a, nil
	case <-ctx.Done():
		return action.Option{}, ctx.Err()
	}
}

// Cancel aborts the Future's wait, per Agent.Expire's contract.
func (f *Future) Cancel() {
	if f.cancel != nil {
		f.cancel()
	}
}
