// Grounded on the teacher's core/infrastructure/persistence/
// game_record_persist.go: a mongo.Client-backed repository, one
// collection per aggregate, mongo.ErrNoDocuments mapped to a sentinel
// not-found error, cursor results decoded with cursor.All. Generalized
// from the teacher's manual bson.M field-by-field marshaling (it never
// used struct tags) into this repo's tagged GameRecord/RoundRecord
// structs, since mongo-driver's default bsoncodec already round-trips
// tagged structs without hand-written conversion helpers.
package persistence

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mahjongcore/internal/enginerr"
)

const (
	gameRecordsCollection  = "game_records"
	roundRecordsCollection = "round_records"
)

// MongoRepository implements Repository over go.mongodb.org/mongo-driver.
type MongoRepository struct {
	db *mongo.Database
}

// NewMongoRepository connects to uri and selects db, matching the
// teacher's client-construction pattern (mongo.Connect + Ping).
func NewMongoRepository(ctx context.Context, uri, db string) (*MongoRepository, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("persistence: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("persistence: ping: %w", err)
	}
	return &MongoRepository{db: client.Database(db)}, nil
}

func (r *MongoRepository) Close(ctx context.Context) error {
	return r.db.Client().Disconnect(ctx)
}

func (r *MongoRepository) SaveGameRecord(ctx context.Context, rec *GameRecord) error {
	coll := r.db.Collection(gameRecordsCollection)
	_, err := coll.ReplaceOne(ctx, bson.M{"_id": rec.ID}, rec, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("persistence: save game record: %w", err)
	}
	return nil
}

func (r *MongoRepository) FindGameRecord(ctx context.Context, id primitive.ObjectID) (*GameRecord, error) {
	coll := r.db.Collection(gameRecordsCollection)
	var rec GameRecord
	err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, enginerr.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("persistence: find game record: %w", err)
	}
	return &rec, nil
}

func (r *MongoRepository) FindGameRecordsByTable(ctx context.Context, tableID string, limit int64) ([]*GameRecord, error) {
	coll := r.db.Collection(gameRecordsCollection)
	opts := options.Find().SetSort(bson.M{"start_time": -1})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := coll.Find(ctx, bson.M{"table_id": tableID}, opts)
	if err != nil {
		return nil, fmt.Errorf("persistence: find game records by table: %w", err)
	}
	defer cur.Close(ctx)

	var recs []*GameRecord
	if err := cur.All(ctx, &recs); err != nil {
		return nil, fmt.Errorf("persistence: decode game records: %w", err)
	}
	return recs, nil
}

func (r *MongoRepository) SaveRoundRecord(ctx context.Context, rec *RoundRecord) error {
	coll := r.db.Collection(roundRecordsCollection)
	_, err := coll.ReplaceOne(ctx, bson.M{"_id": rec.ID}, rec, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("persistence: save round record: %w", err)
	}
	return nil
}

func (r *MongoRepository) SaveRoundRecords(ctx context.Context, recs []*RoundRecord) error {
	if len(recs) == 0 {
		return nil
	}
	coll := r.db.Collection(roundRecordsCollection)
	docs := make([]interface{}, len(recs))
	for i, rec := range recs {
		docs[i] = rec
	}
	_, err := coll.InsertMany(ctx, docs)
	if err != nil {
		return fmt.Errorf("persistence: save round records: %w", err)
	}
	return nil
}

func (r *MongoRepository) FindRoundRecords(ctx context.Context, gameRecordID primitive.ObjectID) ([]*RoundRecord, error) {
	coll := r.db.Collection(roundRecordsCollection)
	cur, err := coll.Find(ctx, bson.M{"game_record_id": gameRecordID}, options.Find().SetSort(bson.M{"round_number": 1}))
	if err != nil {
		return nil, fmt.Errorf("persistence: find round records: %w", err)
	}
	defer cur.Close(ctx)

	var recs []*RoundRecord
	if err := cur.All(ctx, &recs); err != nil {
		return nil, fmt.Errorf("persistence: decode round records: %w", err)
	}
	return recs, nil
}

func (r *MongoRepository) FindRoundRecord(ctx context.Context, gameRecordID primitive.ObjectID, roundNumber int) (*RoundRecord, error) {
	coll := r.db.Collection(roundRecordsCollection)
	var rec RoundRecord
	filter := bson.M{"game_record_id": gameRecordID, "round_number": roundNumber}
	err := coll.FindOne(ctx, filter).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, enginerr.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("persistence: find round record: %w", err)
	}
	return &rec, nil
}
