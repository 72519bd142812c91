package agent

import (
	"context"

	"mahjongcore/internal/action"
	"mahjongcore/internal/eventschema"
)

// InteractiveAgent bridges a human-driven front end (CLI prompt, a UI, a
// wsbridge listener) into the Agent protocol: Select blocks on an external
// channel the front end feeds, and NotifyEvent forwards broadcasts to a
// second channel for display. Grounded on the teacher's handleDropTimeout/
// handleReactionTimeout distinction between a live client and a disconnect
// fallback, generalized into a plain channel handoff since this repo's
// Agent boundary has no network framing of its own (that's internal/mjai
// and internal/wsbridge's job).
type InteractiveAgent struct {
	seat    int
	choices chan action.Option
	events  chan eventschema.Event
}

func NewInteractiveAgent() *InteractiveAgent {
	return &InteractiveAgent{
		choices: make(chan action.Option, 1),
		events:  make(chan eventschema.Event, 16),
	}
}

func (a *InteractiveAgent) Init(seat int, _ any) { a.seat = seat }

// Submit is called by the front end once the human has chosen.
func (a *InteractiveAgent) Submit(choice action.Option) { a.choices <- choice }

// Events exposes the broadcast channel for a front end to drain and render.
func (a *InteractiveAgent) Events() <-chan eventschema.Event { return a.events }

func (a *InteractiveAgent) Select(ctx context.Context, _ []action.Option, _ TenpaiInfo) *Future {
	ctx, cancel := context.WithCancel(ctx)
	f, ch := NewFuture(a.seat, cancel)
	go func() {
		select {
		case choice := <-a.choices:
			select {
			case ch <- choice:
			default:
			}
		case <-ctx.Done():
		}
	}()
	return f
}

func (a *InteractiveAgent) Expire(f *Future) { f.Cancel() }

func (a *InteractiveAgent) NotifyEvent(ev eventschema.Event) {
	select {
	case a.events <- ev:
	default: // a slow/absent front end must never block the engine thread
	}
}
