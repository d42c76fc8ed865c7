// internal/app/store/preferences/prefstore.go
package prefstore

import (
	"context"
	"time"

	"github.com/chalix/coursehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("user_preferences")}
}

// Get returns the stored value for (user, key), or ("", ErrNoDocuments).
func (s *Store) Get(ctx context.Context, userID primitive.ObjectID, key string) (string, error) {
	var pref models.UserPreference
	err := s.c.FindOne(ctx, bson.M{"user_id": userID, "key": key}).Decode(&pref)
	if err != nil {
		return "", err
	}
	return pref.Value, nil
}

// Has reports whether the user already has any value stored under key.
func (s *Store) Has(ctx context.Context, userID primitive.ObjectID, key string) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"user_id": userID, "key": key},
		options.Count().SetLimit(1))
	return n > 0, err
}

// SetIfAbsent stores value under (user, key) only when no value exists
// yet, and reports whether a write happened. Implemented as an upsert
// with $setOnInsert so concurrent callers cannot clobber a value the
// user already chose.
func (s *Store) SetIfAbsent(ctx context.Context, userID primitive.ObjectID, key, value string) (bool, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"user_id": userID, "key": key},
		bson.M{"$setOnInsert": bson.M{
			"_id":        primitive.NewObjectID(),
			"user_id":    userID,
			"key":        key,
			"value":      value,
			"created_at": time.Now(),
		}},
		options.Update().SetUpsert(true))
	if err != nil {
		return false, err
	}
	return res.UpsertedCount > 0, nil
}

// Set stores value unconditionally, overwriting any existing one.
func (s *Store) Set(ctx context.Context, userID primitive.ObjectID, key, value string) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"user_id": userID, "key": key},
		bson.M{
			"$set": bson.M{"value": value},
			"$setOnInsert": bson.M{
				"_id":        primitive.NewObjectID(),
				"user_id":    userID,
				"key":        key,
				"created_at": time.Now(),
			},
		},
		options.Update().SetUpsert(true))
	return err
}
