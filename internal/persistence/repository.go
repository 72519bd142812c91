package persistence

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository is the persistence boundary for match/round history, per the
// teacher's core/domain/repository.GameRecordRepository interface --
// generalized to this repo's GameRecord/RoundRecord shapes.
type Repository interface {
	SaveGameRecord(ctx context.Context, rec *GameRecord) error
	FindGameRecord(ctx context.Context, id primitive.ObjectID) (*GameRecord, error)
	FindGameRecordsByTable(ctx context.Context, tableID string, limit int64) ([]*GameRecord, error)

	SaveRoundRecord(ctx context.Context, rec *RoundRecord) error
	SaveRoundRecords(ctx context.Context, recs []*RoundRecord) error
	FindRoundRecords(ctx context.Context, gameRecordID primitive.ObjectID) ([]*RoundRecord, error)
	FindRoundRecord(ctx context.Context, gameRecordID primitive.ObjectID, roundNumber int) (*RoundRecord, error)
}
