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

// rosterDocID is the single config document holding the player list
const rosterDocID = "players"

// MongoRosterRepository stores the active player roster as one document
// in the config collection.
type MongoRosterRepository struct {
	collection *mongo.Collection
	logger     *logging.Logger
}

func NewMongoRosterRepository(db *MongoDB) *MongoRosterRepository {
	return &MongoRosterRepository{
		collection: db.GetCollection("config"),
		logger:     logging.WithPrefix("mongo_roster_repo"),
	}
}

// GetRoster returns the stored roster, or nil when no roster has been set
// up yet. A nil roster is the first-run state, not an error.
func (r *MongoRosterRepository) GetRoster(ctx context.Context) (*models.Roster, error) {
	ctx, cancel := context.WithTimeout(ctx, ShortTimeout)
	defer cancel()

	var roster models.Roster
	err := r.collection.FindOne(ctx, bson.M{"_id": rosterDocID}).Decode(&roster)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find roster: %w", err)
	}

	return &roster, nil
}

// SaveRoster replaces the player list document
func (r *MongoRosterRepository) SaveRoster(ctx context.Context, roster *models.Roster) error {
	ctx, cancel := context.WithTimeout(ctx, ShortTimeout)
	defer cancel()

	doc := bson.M{"_id": rosterDocID, "names": roster.Names}
	opts := options.Replace().SetUpsert(true)

	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": rosterDocID}, doc, opts); err != nil {
		return fmt.Errorf("failed to save roster: %w", err)
	}

	r.logger.Infof("Saved roster with %d players", len(roster.Names))
	return nil
}
