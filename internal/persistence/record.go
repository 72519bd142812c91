// Package persistence stores completed matches for replay/review, per
// SPEC_FULL.md's persistence section. Grounded on the teacher's
// core/domain/entity/game_record.go and round_record.go (GameRecord as the
// match-level aggregate, RoundRecord as one per-round document carrying an
// ordered event log plus its settlement), generalized from the teacher's
// ad hoc map[string]interface{} per-event payload into this repo's own
// eventschema.Event, line-delimited JSON-encoded per round -- this repo
// already has a canonical, round-trippable event shape (internal/
// eventschema), so there is no need to re-derive a second bespoke schema
// the way the teacher's EventTypeDrawTile/EventTypeDiscardTile/... map
// payloads did.
package persistence

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"mahjongcore/internal/eventschema"
)

// PlayerInfo mirrors the teacher's entity.PlayerInfo.
type PlayerInfo struct {
	SeatIndex int    `bson:"seat_index"`
	Name      string `bson:"name,omitempty"`
}

// PlayerRanking mirrors the teacher's entity.PlayerRanking.
type PlayerRanking struct {
	SeatIndex int `bson:"seat_index"`
	Points    int `bson:"points"`
	Rank      int `bson:"rank"`
}

// GameFinalResult mirrors the teacher's entity.GameFinalResult.
type GameFinalResult struct {
	Rankings []PlayerRanking `bson:"rankings"`
	Points   [4]int          `bson:"points"`
}

// GameRecord is the match-level aggregate root, one document per match.
type GameRecord struct {
	ID          primitive.ObjectID `bson:"_id"`
	TableID     string             `bson:"table_id"`
	GameType    string             `bson:"game_type"`
	Players     []PlayerInfo       `bson:"players"`
	StartTime   time.Time          `bson:"start_time"`
	EndTime     time.Time          `bson:"end_time"`
	FinalResult *GameFinalResult   `bson:"final_result"`
	Status      string             `bson:"status"` // "in_progress", "completed", "aborted"
	CreatedAt   time.Time          `bson:"created_at"`
}

// NewGameRecord starts a new match-level record, per the teacher's
// NewGameRecord constructor.
func NewGameRecord(tableID string, players []PlayerInfo) *GameRecord {
	return &GameRecord{
		ID:        primitive.NewObjectID(),
		TableID:   tableID,
		GameType:  "riichi_mahjong_4p",
		Players:   players,
		StartTime: time.Now(),
		Status:    "in_progress",
		CreatedAt: time.Now(),
	}
}

// Complete sets the match's final result, per the teacher's CompleteGame.
func (gr *GameRecord) Complete(result *GameFinalResult) {
	gr.EndTime = time.Now()
	gr.FinalResult = result
	gr.Status = "completed"
}

// RoundRecord is one round's document: its ordered event log (JSON-encoded
// via eventschema.Encode, one line per event) plus a settlement summary.
type RoundRecord struct {
	ID           primitive.ObjectID `bson:"_id"`
	GameRecordID primitive.ObjectID `bson:"game_record_id"`
	RoundNumber  int                `bson:"round_number"`
	DealerSeat   int                `bson:"dealer_seat"`
	Honba        int                `bson:"honba"`
	EventLines   []string           `bson:"event_lines"` // one eventschema.Encode line per event
	DrawType     string             `bson:"draw_type,omitempty"`
	WinnerSeats  []int              `bson:"winner_seats,omitempty"`
	DeltaScores  [4]int             `bson:"delta_scores"`
	StartTime    time.Time          `bson:"start_time"`
	EndTime      time.Time          `bson:"end_time"`
	CreatedAt    time.Time          `bson:"created_at"`
}

// NewRoundRecord starts a round's record, per the teacher's
// NewRoundRecord constructor.
func NewRoundRecord(gameRecordID primitive.ObjectID, roundNumber, dealerSeat, honba int) *RoundRecord {
	return &RoundRecord{
		ID:           primitive.NewObjectID(),
		GameRecordID: gameRecordID,
		RoundNumber:  roundNumber,
		DealerSeat:   dealerSeat,
		Honba:        honba,
		StartTime:    time.Now(),
		CreatedAt:    time.Now(),
	}
}

// AddEvent appends one applied event's JSON-encoded line, per the
// teacher's RoundRecord.AddEvent.
func (rr *RoundRecord) AddEvent(ev eventschema.Event) error {
	line, err := eventschema.Encode(ev)
	if err != nil {
		return err
	}
	rr.EventLines = append(rr.EventLines, string(line))
	return nil
}
