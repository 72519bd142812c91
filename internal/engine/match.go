package engine

import (
	"context"
	"math/rand"

	"mahjongcore/internal/agent"
	"mahjongcore/internal/hand"
	"mahjongcore/internal/stage"
)

// MatchResult is the final settlement of a complete match: final scores and
// per-seat rank, per spec.md §4.7's game-end condition.
type MatchResult struct {
	Scores [4]int
	Ranks  [4]int
	Rounds []*Outcome
}

// RunMatch drives repeated PlayRound calls to completion, advancing
// dealer/honba/sticks the standard way: a dealer who wins or ends an
// exhaustive draw tenpai retains the seat and honba increments, and an
// abortive draw replays the hand the same way (same dealer, honba
// increments); otherwise the dealer rotates clockwise and honba resets to
// zero. Grounded on the
// teacher's finalizeRound (dealer/honba advancement, busting check,
// RoundNumber > 4 + maxPoints >= settlement threshold game-end test),
// generalized from the teacher's event-driven StartRoundEvent loop into a
// synchronous function returning the whole match's history.
func RunMatch(ctx context.Context, rule Rule, names [4]string, agents [4]agent.Agent, seed int64) (*MatchResult, error) {
	searcher, err := hand.NewSearcher()
	if err != nil {
		searcher = nil // degrade to the uncached shanten search
	}
	if searcher != nil {
		defer searcher.Close()
	}

	rng := rand.New(rand.NewSource(seed))
	scores := [4]int{25000, 25000, 25000, 25000}
	round, dealer, honba, sticks := 0, 0, 0, 0

	var rounds []*Outcome

	for {
		wall := NewWall(rule, rng)
		outcome, err := PlayRound(ctx, rule, wall, round, dealer, honba, sticks, scores, names, agents, searcher)
		if err != nil {
			return nil, err
		}
		rounds = append(rounds, outcome)
		scores = finalScores(outcome.Stage)
		sticks = outcome.Stage.Sticks

		dealerContinues := outcome.DealerWon
		if !outcome.IsWin && outcome.DrawType == DrawExhaustive && outcome.TenpaiMask[dealer] {
			dealerContinues = true
		}
		if !outcome.IsWin && outcome.DrawType != DrawExhaustive && outcome.DrawType != "" {
			dealerContinues = true // abortive draws replay the same hand
		}

		if dealerContinues {
			honba++
		} else {
			honba = 0
			dealer = stage.NextSeat(dealer)
			if dealer == 0 {
				round++
			}
		}

		if rule.BustingEnabled && anyBust(scores) {
			break
		}
		if matchComplete(rule, round, scores) {
			break
		}
	}

	return &MatchResult{Scores: scores, Ranks: ranksOf(scores), Rounds: rounds}, nil
}

func finalScores(st *stage.Stage) [4]int {
	var out [4]int
	for s, p := range st.Players {
		out[s] = p.Score
	}
	return out
}

func anyBust(scores [4]int) bool {
	for _, s := range scores {
		if s < 0 {
			return true
		}
	}
	return false
}

// matchComplete reports game-end once RequiredRounds have elapsed and some
// seat has reached SettlementScore, extending play up to MaxExtendedRound
// otherwise (the "west round" extension of a hanchan that runs long).
func matchComplete(rule Rule, round int, scores [4]int) bool {
	if round < rule.RequiredRounds {
		return false
	}
	max := scores[0]
	for _, s := range scores[1:] {
		if s > max {
			max = s
		}
	}
	if max >= rule.SettlementScore {
		return true
	}
	return round >= rule.RequiredRounds+rule.MaxExtendedRound
}

// ranksOf assigns 1-4 by descending score, breaking ties by seat order
// (the standard riichi convention: the earlier seat in turn order outranks
// an equal score).
func ranksOf(scores [4]int) [4]int {
	order := [4]int{0, 1, 2, 3}
	for i := 1; i < 4; i++ {
		for j := i; j > 0 && scores[order[j]] > scores[order[j-1]]; j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}
	var ranks [4]int
	for rank, seat := range order {
		ranks[seat] = rank + 1
	}
	return ranks
}
