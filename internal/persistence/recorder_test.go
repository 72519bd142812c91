package persistence

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"mahjongcore/internal/engine"
	"mahjongcore/internal/enginerr"
	"mahjongcore/internal/eventschema"
	"mahjongcore/internal/stage"
)

// fakeRepository is an in-memory Repository stand-in so MatchRecorder's
// logic can be exercised without a live Mongo instance.
type fakeRepository struct {
	games  map[primitive.ObjectID]*GameRecord
	rounds map[primitive.ObjectID][]*RoundRecord
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		games:  make(map[primitive.ObjectID]*GameRecord),
		rounds: make(map[primitive.ObjectID][]*RoundRecord),
	}
}

func (f *fakeRepository) SaveGameRecord(_ context.Context, rec *GameRecord) error {
	f.games[rec.ID] = rec
	return nil
}

func (f *fakeRepository) FindGameRecord(_ context.Context, id primitive.ObjectID) (*GameRecord, error) {
	rec, ok := f.games[id]
	if !ok {
		return nil, enginerr.ErrRecordNotFound
	}
	return rec, nil
}

func (f *fakeRepository) FindGameRecordsByTable(_ context.Context, tableID string, _ int64) ([]*GameRecord, error) {
	var out []*GameRecord
	for _, rec := range f.games {
		if rec.TableID == tableID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeRepository) SaveRoundRecord(_ context.Context, rec *RoundRecord) error {
	f.rounds[rec.GameRecordID] = append(f.rounds[rec.GameRecordID], rec)
	return nil
}

func (f *fakeRepository) SaveRoundRecords(ctx context.Context, recs []*RoundRecord) error {
	for _, rec := range recs {
		if err := f.SaveRoundRecord(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeRepository) FindRoundRecords(_ context.Context, gameRecordID primitive.ObjectID) ([]*RoundRecord, error) {
	return f.rounds[gameRecordID], nil
}

func (f *fakeRepository) FindRoundRecord(_ context.Context, gameRecordID primitive.ObjectID, roundNumber int) (*RoundRecord, error) {
	for _, rec := range f.rounds[gameRecordID] {
		if rec.RoundNumber == roundNumber {
			return rec, nil
		}
	}
	return nil, enginerr.ErrRecordNotFound
}

func newTestOutcomeStage() *stage.Stage {
	ev := eventschema.Event{Type: eventschema.EvNew, Round: 0, Dealer: 0, Honba: 0, Sticks: 0}
	return stage.New(ev)
}

func TestMatchRecorderRecordsRoundEventsAndScores(t *testing.T) {
	repo := newFakeRepository()
	ctx := context.Background()

	mr, err := NewMatchRecorder(ctx, repo, "table-1", [4]string{"east", "south", "west", "north"})
	if err != nil {
		t.Fatalf("NewMatchRecorder: %v", err)
	}

	st := newTestOutcomeStage()
	out := &engine.Outcome{
		Stage:       st,
		Events:      []eventschema.Event{{Type: eventschema.EvNew, Round: 0, Dealer: 0}},
		IsWin:       true,
		WinnerSeats: []int{0},
		DealerWon:   true,
	}

	if err := mr.RecordRound(ctx, 0, 0, out); err != nil {
		t.Fatalf("RecordRound: %v", err)
	}

	rounds, err := repo.FindRoundRecords(ctx, mr.GameRecordID())
	if err != nil {
		t.Fatalf("FindRoundRecords: %v", err)
	}
	if len(rounds) != 1 {
		t.Fatalf("expected 1 round record, got %d", len(rounds))
	}
	if len(rounds[0].EventLines) != 1 {
		t.Fatalf("expected 1 event line, got %d", len(rounds[0].EventLines))
	}
	if len(rounds[0].WinnerSeats) != 1 || rounds[0].WinnerSeats[0] != 0 {
		t.Fatalf("unexpected winner seats: %v", rounds[0].WinnerSeats)
	}
}

func TestMatchRecorderFinalizeCompletesGameRecord(t *testing.T) {
	repo := newFakeRepository()
	ctx := context.Background()

	mr, err := NewMatchRecorder(ctx, repo, "table-1", [4]string{"a", "b", "c", "d"})
	if err != nil {
		t.Fatalf("NewMatchRecorder: %v", err)
	}

	result := &engine.MatchResult{
		Scores: [4]int{40000, 25000, 20000, 15000},
		Ranks:  [4]int{1, 2, 3, 4},
	}
	if err := mr.Finalize(ctx, result); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	rec, err := repo.FindGameRecord(ctx, mr.GameRecordID())
	if err != nil {
		t.Fatalf("FindGameRecord: %v", err)
	}
	if rec.Status != "completed" {
		t.Fatalf("expected status completed, got %q", rec.Status)
	}
	if rec.FinalResult == nil || rec.FinalResult.Points != result.Scores {
		t.Fatalf("unexpected final result: %+v", rec.FinalResult)
	}
}
