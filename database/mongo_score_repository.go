package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"puzzle-scoreboard-go/logging"
	"puzzle-scoreboard-go/models"
)

// MongoScoreRepository stores one DayRecord per calendar date in the
// scores collection, keyed by the YYYY-MM-DD date string.
type MongoScoreRepository struct {
	collection *mongo.Collection
	logger     *logging.Logger
}

func NewMongoScoreRepository(db *MongoDB) *MongoScoreRepository {
	return &MongoScoreRepository{
		collection: db.GetCollection("scores"),
		logger:     logging.WithPrefix("mongo_score_repo"),
	}
}

// UpsertDayRecord replaces the record stored for its date, creating it if
// absent. Concurrent submissions for the same date resolve last-writer-wins;
// there is no merge.
func (r *MongoScoreRepository) UpsertDayRecord(ctx context.Context, record *models.DayRecord) error {
	ctx, cancel := context.WithTimeout(ctx, ShortTimeout)
	defer cancel()

	filter := bson.M{"_id": record.Date}
	opts := options.Replace().SetUpsert(true)

	if _, err := r.collection.ReplaceOne(ctx, filter, record, opts); err != nil {
		return fmt.Errorf("failed to upsert day record %s: %w", record.Date, err)
	}

	r.logger.Debugf("Upserted day record %s (%d results)", record.Date, len(record.Results))
	return nil
}

// GetDayRecord returns the record for a date, or nil when none is stored
func (r *MongoScoreRepository) GetDayRecord(ctx context.Context, date string) (*models.DayRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, ShortTimeout)
	defer cancel()

	var record models.DayRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": date}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find day record %s: %w", date, err)
	}

	return &record, nil
}

// GetAllScores loads the full scores collection as a snapshot keyed by date
func (r *MongoScoreRepository) GetAllScores(ctx context.Context) (models.ScoreSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, MediumTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find scores: %w", err)
	}
	defer cursor.Close(ctx)

	snapshot := make(models.ScoreSnapshot)
	for cursor.Next(ctx) {
		var record models.DayRecord
		if err := cursor.Decode(&record); err != nil {
			return nil, fmt.Errorf("failed to decode day record: %w", err)
		}
		snapshot[record.Date] = record
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate scores: %w", err)
	}

	return snapshot, nil
}
