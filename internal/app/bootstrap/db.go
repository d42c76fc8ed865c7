// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/chalix/coursehub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB establishes the MongoDB connection used by the whole app.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}

	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase))

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
	}, nil
}

// EnsureSchema creates the indexes the stores rely on. Mongo index
// creation is idempotent, so this runs on every startup.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.MongoDatabase

	type collIndexes struct {
		coll    string
		indexes []mongo.IndexModel
	}

	specs := []collIndexes{
		{
			coll: "users",
			indexes: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "username_ci", Value: 1}},
					Options: options.Index().SetUnique(true),
				},
				{
					// Partial: legacy records with blank emails predate
					// the email guard and must not collide with each other.
					Keys: bson.D{{Key: "email", Value: 1}},
					Options: options.Index().SetUnique(true).
						SetPartialFilterExpression(bson.D{{Key: "email", Value: bson.D{{Key: "$gt", Value: ""}}}}),
				},
				{Keys: bson.D{{Key: "is_active", Value: 1}, {Key: "email", Value: 1}}},
			},
		},
		{
			coll: "user_preferences",
			indexes: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "key", Value: 1}},
					Options: options.Index().SetUnique(true),
				},
			},
		},
		{
			coll: "course_overviews",
			indexes: []mongo.IndexModel{
				{Keys: bson.D{{Key: "org", Value: 1}}},
				{Keys: bson.D{{Key: "catalog_visibility", Value: 1}, {Key: "modified", Value: -1}}},
			},
		},
		{
			coll: "course_enrollments",
			indexes: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "course_id", Value: 1}},
					Options: options.Index().SetUnique(true),
				},
				{Keys: bson.D{{Key: "course_id", Value: 1}, {Key: "is_active", Value: 1}}},
			},
		},
		{
			coll: "course_access_roles",
			indexes: []mongo.IndexModel{
				{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "role", Value: 1}}},
				{Keys: bson.D{{Key: "org", Value: 1}, {Key: "course_id", Value: 1}}},
			},
		},
	}

	for _, spec := range specs {
		if _, err := db.Collection(spec.coll).Indexes().CreateMany(ctx, spec.indexes); err != nil {
			return fmt.Errorf("create indexes for %s: %w", spec.coll, err)
		}
	}

	logger.Info("schema ensured")
	return nil
}
