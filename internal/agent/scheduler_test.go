package agent

import (
	"context"
	"testing"
	"time"

	"mahjongcore/internal/action"
)

func resolvedFuture(seat int, opt action.Option) *Future {
	f, ch := NewFuture(seat, func() {})
	ch <- opt
	return f
}

func TestBestReactionPrefersRonOverMinkan(t *testing.T) {
	results := []PollResult{
		{Seat: 1, Choice: action.Option{Kind: action.Minkan}},
		{Seat: 2, Choice: action.Option{Kind: action.Ron}},
		{Seat: 3, Choice: action.Option{Kind: action.Discard}},
	}
	best := BestReaction(results)
	if len(best) != 1 || best[0].Seat != 2 {
		t.Fatalf("expected only seat 2's ron to survive, got %+v", best)
	}
}

func TestBestReactionKeepsMultipleRonsForHeadBump(t *testing.T) {
	results := []PollResult{
		{Seat: 1, Choice: action.Option{Kind: action.Ron}},
		{Seat: 2, Choice: action.Option{Kind: action.Ron}},
	}
	best := BestReaction(results)
	if len(best) != 2 {
		t.Fatalf("expected both rons to survive for head-bump resolution, got %d", len(best))
	}
}

func TestBestReactionNilWhenNothingButPassives(t *testing.T) {
	results := []PollResult{
		{Seat: 0, Choice: action.Option{Kind: action.Discard}},
	}
	if got := BestReaction(results); got != nil {
		t.Fatalf("expected no reaction above Discard priority, got %+v", got)
	}
}

func TestResolveCallPhaseCollectsAllResolvedFutures(t *testing.T) {
	futures := []*Future{
		resolvedFuture(0, action.Option{Kind: action.Chi}),
		resolvedFuture(1, action.Option{Kind: action.Pon}),
	}
	results := ResolveCallPhase(context.Background(), futures, time.Now().Add(time.Second))
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
}

func TestResolveCallPhaseSubstitutesNopOnDeadline(t *testing.T) {
	f, _ := NewFuture(0, func() {}) // never resolved
	results := ResolveCallPhase(context.Background(), []*Future{f}, time.Now().Add(2*time.Millisecond))
	if len(results) != 1 || results[0].Choice.Kind != action.Discard {
		t.Fatalf("expected the unresolved future to substitute a Nop/Discard choice, got %+v", results)
	}
}

func TestNullAgentAlwaysResolvesImmediately(t *testing.T) {
	a := NewNullAgent()
	a.Init(2, nil)
	f := a.Select(context.Background(), nil, TenpaiInfo{})
	choice, ok := f.Poll()
	if !ok || choice.Kind != action.Discard {
		t.Fatalf("expected NullAgent to resolve Discard immediately, got %+v ok=%v", choice, ok)
	}
}

func TestRandomAgentPrefersWinWhenOffered(t *testing.T) {
	a := NewRandomAgent(1)
	a.Init(0, nil)
	opts := []action.Option{
		{Kind: action.Discard},
		{Kind: action.Ron},
	}
	f := a.Select(context.Background(), opts, TenpaiInfo{})
	choice, err := f.Wait(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if choice.Kind != action.Ron {
		t.Fatalf("expected RandomAgent to take the free win, got %+v", choice)
	}
}
