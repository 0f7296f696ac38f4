package database

import (
	"context"
	"fmt"
	"time"

	"auramind/pkg/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoHistoryStore reads recent mood logs for context building.
type MongoHistoryStore struct {
	collection *mongo.Collection
}

// NewMongoHistoryStore creates a history store backed by the mood_logs collection.
func NewMongoHistoryStore(mongodb *MongoDB) *MongoHistoryStore {
	return &MongoHistoryStore{
		collection: mongodb.Collection(CollectionMoodLogs),
	}
}

// QueryRecent returns the user's mood log entries created at or after since,
// newest first. Only the fields needed for context derivation are fetched.
func (s *MongoHistoryStore) QueryRecent(ctx context.Context, userID string, since time.Time) ([]models.HistoryEntry, error) {
	filter := bson.M{
		"userId":    userID,
		"createdAt": bson.M{"$gte": since},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetProjection(bson.M{"createdAt": 1, "moodScore": 1})

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent mood logs: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []models.HistoryEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode mood log history: %w", err)
	}

	return entries, nil
}
