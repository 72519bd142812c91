// Grounded on the teacher's runtime/game/engines/mahjong/persist.go
// GamePersister: a recorder held alongside a running match that turns
// each round's outcome into a persisted document and, at match end,
// writes the match-level summary -- generalized from the teacher's many
// Record<ActionKind> methods (one per mjai-style action) into a single
// RecordRound call, since this repo's engine.Outcome already carries its
// round's full event log rather than requiring the caller to record each
// action individually as it happens.
package persistence

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"mahjongcore/internal/engine"
)

// MatchRecorder accumulates one match's round records against a
// Repository, matching the teacher's GamePersister holding a
// GameRecordRepository and flushing at CompleteRound/FinalizeGame.
type MatchRecorder struct {
	repo   Repository
	record *GameRecord
	honba  int
}

// NewMatchRecorder opens a GameRecord for a new match and persists it,
// per the teacher's GamePersister construction plus its initial save.
func NewMatchRecorder(ctx context.Context, repo Repository, tableID string, names [4]string) (*MatchRecorder, error) {
	players := make([]PlayerInfo, 4)
	for i, name := range names {
		players[i] = PlayerInfo{SeatIndex: i, Name: name}
	}
	rec := NewGameRecord(tableID, players)
	if err := repo.SaveGameRecord(ctx, rec); err != nil {
		return nil, err
	}
	return &MatchRecorder{repo: repo, record: rec}, nil
}

// RecordRound persists one round's outcome, per the teacher's
// CompleteRound/SaveCurrentRound.
func (mr *MatchRecorder) RecordRound(ctx context.Context, roundNumber, dealerSeat int, out *engine.Outcome) error {
	rr := NewRoundRecord(mr.record.ID, roundNumber, dealerSeat, mr.honba)
	for _, ev := range out.Events {
		if err := rr.AddEvent(ev); err != nil {
			return err
		}
	}
	rr.DrawType = string(out.DrawType)
	rr.WinnerSeats = append([]int(nil), out.WinnerSeats...)
	rr.DeltaScores = deltaFromStage(out)

	if out.DealerWon || (!out.IsWin && out.DrawType != "" && out.DrawType != engine.DrawExhaustive) {
		mr.honba++
	} else {
		mr.honba = 0
	}

	return mr.repo.SaveRoundRecord(ctx, rr)
}

// Finalize settles the match-level result and persists the completed
// GameRecord, per the teacher's FinalizeGame.
func (mr *MatchRecorder) Finalize(ctx context.Context, result *engine.MatchResult) error {
	rankings := make([]PlayerRanking, 4)
	for seat := 0; seat < 4; seat++ {
		rankings[seat] = PlayerRanking{
			SeatIndex: seat,
			Points:    result.Scores[seat],
			Rank:      result.Ranks[seat],
		}
	}
	mr.record.Complete(&GameFinalResult{Rankings: rankings, Points: result.Scores})
	return mr.repo.SaveGameRecord(ctx, mr.record)
}

// GameRecordID exposes the match's aggregate id for later lookups.
func (mr *MatchRecorder) GameRecordID() primitive.ObjectID {
	return mr.record.ID
}

func deltaFromStage(out *engine.Outcome) [4]int {
	var delta [4]int
	if out.Stage == nil {
		return delta
	}
	for seat, p := range out.Stage.Players {
		delta[seat] = p.Score
	}
	return delta
}
