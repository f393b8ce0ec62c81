package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"puzzle-scoreboard-go/database"
	"puzzle-scoreboard-go/logging"
)

// ChangeEvent describes a change to one of the watched collections. Date
// is set for score changes (the day that was written), DocID for config
// changes (the players roster document).
type ChangeEvent struct {
	Collection string `json:"collection"`
	Operation  string `json:"operation"`
	Date       string `json:"date,omitempty"`
	DocID      string `json:"docId,omitempty"`
}

// ChangeStreamWatcher watches the scores and config collections and
// triggers a callback for every meaningful change. The SSE handler uses
// it to push fresh podiums to connected clients the moment a score lands.
type ChangeStreamWatcher struct {
	db       *database.MongoDB
	onUpdate func(event ChangeEvent)
	logger   *logging.Logger
}

// NewChangeStreamWatcher creates a new change stream watcher
func NewChangeStreamWatcher(db *database.MongoDB, onUpdate func(event ChangeEvent)) *ChangeStreamWatcher {
	return &ChangeStreamWatcher{
		db:       db,
		onUpdate: onUpdate,
		logger:   logging.WithPrefix("ChangeStream"),
	}
}

// StartWatching begins watching the scores and config collections
func (w *ChangeStreamWatcher) StartWatching() {
	go w.watchCollection("scores")
	go w.watchCollection("config")
}

// watchCollection watches one collection, reconnecting on stream errors
func (w *ChangeStreamWatcher) watchCollection(collectionName string) {
	w.logger.Infof("Starting to watch %s collection for changes", collectionName)

	collection := w.db.GetCollection(collectionName)

	// inserts, replaces (upserts land here) and updates; deletes are not
	// part of the application's write path but harmless to forward
	pipeline := mongo.Pipeline{}

	for {
		ctx := context.Background()

		changeStream, err := collection.Watch(ctx, pipeline)
		if err != nil {
			w.logger.Errorf("Error creating change stream for %s: %v", collectionName, err)
			time.Sleep(5 * time.Second)
			continue
		}

		w.logger.Infof("Connected to %s collection", collectionName)

		for changeStream.Next(ctx) {
			var event bson.M
			if err := changeStream.Decode(&event); err != nil {
				w.logger.Errorf("Error decoding change event from %s: %v", collectionName, err)
				continue
			}

			operationType, ok := event["operationType"].(string)
			if !ok {
				continue
			}

			changeEvent := w.extractChangeInfo(event, collectionName, operationType)
			w.logger.Debugf("%s %s (date=%s doc=%s)",
				changeEvent.Collection, changeEvent.Operation, changeEvent.Date, changeEvent.DocID)

			if w.onUpdate != nil {
				w.onUpdate(changeEvent)
			}
		}

		if err := changeStream.Err(); err != nil {
			w.logger.Errorf("Change stream error for %s: %v", collectionName, err)
		}

		changeStream.Close(ctx)
		w.logger.Warnf("Connection to %s closed, reconnecting in 5 seconds...", collectionName)
		time.Sleep(5 * time.Second)
	}
}

// extractChangeInfo pulls the document key out of a change stream event.
// Both watched collections use string _id values (date keys for scores,
// "players" for the roster document).
func (w *ChangeStreamWatcher) extractChangeInfo(event bson.M, collection, operation string) ChangeEvent {
	changeEvent := ChangeEvent{
		Collection: collection,
		Operation:  operation,
	}

	docKey, ok := event["documentKey"].(bson.M)
	if !ok {
		return changeEvent
	}
	id, ok := docKey["_id"].(string)
	if !ok {
		return changeEvent
	}

	if collection == "scores" {
		changeEvent.Date = id
	} else {
		changeEvent.DocID = id
	}
	return changeEvent
}
