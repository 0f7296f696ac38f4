package database

import (
	"context"
	"errors"
	"fmt"

	"auramind/pkg/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateBadge is returned when a badge record already exists for the
// (user, code) pair. The unique index on user_achievements enforces this even
// under concurrent evaluations for the same user.
var ErrDuplicateBadge = errors.New("badge already awarded")

// MongoAwardStore persists and looks up earned badge records.
type MongoAwardStore struct {
	collection *mongo.Collection
}

// NewMongoAwardStore creates an award store backed by the user_achievements collection.
func NewMongoAwardStore(mongodb *MongoDB) *MongoAwardStore {
	return &MongoAwardStore{
		collection: mongodb.Collection(CollectionAchievements),
	}
}

// ListCodes returns the set of badge codes already recorded for a user.
func (s *MongoAwardStore) ListCodes(ctx context.Context, userID string) (map[string]struct{}, error) {
	opts := options.Find().SetProjection(bson.M{"badgeCode": 1})
	cursor, err := s.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list badge codes: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.BadgeRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode badge records: %w", err)
	}

	codes := make(map[string]struct{}, len(records))
	for _, rec := range records {
		codes[rec.BadgeCode] = struct{}{}
	}
	return codes, nil
}

// Insert appends a new badge record. Returns ErrDuplicateBadge when the
// uniqueness invariant rejects the write.
func (s *MongoAwardStore) Insert(ctx context.Context, record models.BadgeRecord) error {
	_, err := s.collection.InsertOne(ctx, record)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateBadge
		}
		return fmt.Errorf("failed to insert badge record: %w", err)
	}
	return nil
}
