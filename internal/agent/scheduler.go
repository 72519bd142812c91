package agent

import (
	"context"
	"time"

	"mahjongcore/internal/action"
)

// priorityOf ranks call-phase actions per spec.md §4.7: "ron > minkan >
// pon > chi"; everything else (turn-phase actions, Nop) is priority 0 and
// never short-circuits the poll.
func priorityOf(k action.Kind) int {
	switch k {
	case action.Ron:
		return 4
	case action.Minkan:
		return 3
	case action.Pon:
		return 2
	case action.Chi:
		return 1
	default:
		return 0
	}
}

// PollResult is one seat's resolved call-phase reaction.
type PollResult struct {
	Seat   int
	Choice action.Option
}

// ResolveCallPhase implements §4.8's cooperative mini-scheduler: it polls
// every outstanding Future in a loop until each resolves (or the shared
// deadline passes, substituting Nop per §7's Timeout policy), then -- once
// it can prove no higher-priority outcome remains possible, i.e. every
// future has resolved -- returns all results and calls Expire on nothing
// further (callers that want early short-circuiting on a guaranteed-Ron
// can call ExpireAllExcept themselves once they see one).
func ResolveCallPhase(ctx context.Context, futures []*Future, deadline time.Time) []PollResult {
	results := make([]PollResult, len(futures))
	resolved := make([]bool, len(futures))
	pending := len(futures)

	ticker := time.NewTicker(time.Millisecond)
	defer ticker.Stop()

	for pending > 0 {
		for i, f := range futures {
			if resolved[i] {
				continue
			}
			if a, ok := f.Poll(); ok {
				results[i] = PollResult{Seat: f.Seat(), Choice: a}
				resolved[i] = true
				pending--
			}
		}
		if pending == 0 {
			break
		}
		if time.Now().After(deadline) {
			for i, f := range futures {
				if !resolved[i] {
					f.Cancel()
					results[i] = PollResult{Seat: f.Seat(), Choice: action.Option{Kind: action.Discard}}
					resolved[i] = true
				}
			}
			break
		}
		select {
		case <-ctx.Done():
			for i, f := range futures {
				if !resolved[i] {
					f.Cancel()
				}
			}
			return results
		case <-ticker.C:
		}
	}
	return results
}

// BestReaction applies the priority ordering (ron > minkan > pon > chi) to
// a batch of resolved call-phase results, returning only the seats whose
// choice matches the single highest priority present (ties, e.g. multiple
// rons, are all returned together for head-bump resolution upstream).
func BestReaction(results []PollResult) []PollResult {
	best := 0
	for _, r := range results {
		if p := priorityOf(r.Choice.Kind); p > best {
			best = p
		}
	}
	if best == 0 {
		return nil
	}
	var out []PollResult
	for _, r := range results {
		if priorityOf(r.Choice.Kind) == best {
			out = append(out, r)
		}
	}
	return out
}

// ExpireAllExcept calls Expire on every future whose seat is not in keep,
// per §4.8: "when it can prove no higher-priority resolution is possible...
// it short-circuits and calls expire on all outstanding futures."
func ExpireAllExcept(agents [4]Agent, futures []*Future, keep map[int]bool) {
	for _, f := range futures {
		if !keep[f.Seat()] {
			agents[f.Seat()].Expire(f)
			f.Cancel()
		}
	}
}
