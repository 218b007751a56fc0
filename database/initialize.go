package database

import (
	"context"
	"time"

	"blog-service/config"

	"github.com/umakantv/go-utils/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	connectTimeout = 5 * time.Second
	retryDelay     = 5 * time.Second
)

// InitializeDatabase connects to MongoDB and prepares indexes. The store
// may come up after the service does, so connection failures retry with a
// fixed delay instead of killing the process.
func InitializeDatabase(ctx context.Context, cfg *config.Config) *mongo.Database {
	for {
		db, err := connect(ctx, cfg)
		if err == nil {
			logger.Info("Database initialized successfully")
			return db
		}

		logger.Error("MongoDB connection failed, retrying",
			zap.Error(err), zap.Duration("retry_in", retryDelay))
		time.Sleep(retryDelay)
	}
}

func connect(ctx context.Context, cfg *config.Config) (*mongo.Database, error) {
	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetServerSelectionTimeout(connectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, err
	}

	db := client.Database(cfg.MongoDB)
	if err := ensureIndexes(ctx, db); err != nil {
		client.Disconnect(ctx)
		return nil, err
	}
	return db, nil
}

// ensureIndexes enforces email uniqueness at the storage layer, so two
// concurrent registrations with the same email cannot both win the
// application-level existence check.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "emailID", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
