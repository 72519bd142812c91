package engine

import (
	"context"
	"math/rand"
	"testing"

	"mahjongcore/internal/agent"
	"mahjongcore/internal/hand"
)

// TestPlayRoundSettlesWithZeroSumDelta drives one full round end to end with
// four RandomAgents and checks the invariant every settlement path must
// hold: points only ever move between seats and the riichi-stick pot, never
// created or destroyed.
func TestPlayRoundSettlesWithZeroSumDelta(t *testing.T) {
	searcher, err := hand.NewSearcher()
	if err == nil {
		defer searcher.Close()
	} else {
		searcher = nil
	}

	rule := DefaultRule()
	names := [4]string{"East", "South", "West", "North"}
	scores := [4]int{25000, 25000, 25000, 25000}

	for seed := int64(1); seed <= 5; seed++ {
		var agents [4]agent.Agent
		for s := 0; s < 4; s++ {
			agents[s] = agent.NewRandomAgent(seed*10 + int64(s))
		}
		wall := NewWall(rule, rand.New(rand.NewSource(seed)))
		outcome, err := PlayRound(context.Background(), rule, wall, 0, 0, 0, 0, scores, names, agents, searcher)
		if err != nil {
			t.Fatalf("seed %d: PlayRound returned an error: %v", seed, err)
		}
		if outcome == nil {
			t.Fatalf("seed %d: expected a non-nil outcome", seed)
		}
		sum := 0
		for _, p := range outcome.Stage.Players {
			sum += p.Score
		}
		sum += outcome.Stage.Sticks * 1000
		if sum != 4*25000 {
			t.Fatalf("seed %d: expected total points to remain %d, got %d", seed, 4*25000, sum)
		}
		if outcome.IsWin && len(outcome.WinnerSeats) == 0 {
			t.Fatalf("seed %d: IsWin set but no winner seats recorded", seed)
		}
	}
}
