package store

import (
	"context"
	"fmt"

	"github.com/dcastillo/iot-telemetry/internal/config"
	"github.com/dcastillo/iot-telemetry/internal/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Storages bundles every repository backed by the document store together
// with the store connection itself.
type Storages struct {
	UserRepository    UserRepository
	ReadingRepository ReadingRepository

	db *DB
}

// NewStorages connects to the document store described by cfg and constructs
// all repositories on top of it.
//
// A unique index on the user email field is ensured at startup so that two
// concurrent registrations for the same normalized email cannot both succeed.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	db, err := NewDB(ctx, cfg.Mongo, logger)
	if err != nil {
		return nil, err
	}

	usersCollection := db.Collection(cfg.Mongo.UsersCollection)
	readingsCollection := db.Collection(cfg.Mongo.ReadingsCollection)

	if err := ensureUserIndexes(ctx, usersCollection); err != nil {
		return nil, fmt.Errorf("error ensuring user indexes: %w", err)
	}

	return &Storages{
		UserRepository:    NewUserRepository(usersCollection, logger),
		ReadingRepository: NewReadingRepository(readingsCollection, logger),
		db:                db,
	}, nil
}

// Close releases the underlying store connection.
func (s *Storages) Close(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	return s.db.Close(ctx)
}

// ensureUserIndexes creates the unique email index backing the
// one-user-per-normalized-email invariant.
func ensureUserIndexes(ctx context.Context, users *mongo.Collection) error {
	_, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
