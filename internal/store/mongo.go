package store

import (
	"context"
	"fmt"

	"github.com/dcastillo/iot-telemetry/internal/config"
	"github.com/dcastillo/iot-telemetry/internal/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DB wraps the MongoDB client and the application database handle.
//
// The underlying driver client maintains its own connection pool and is safe
// for concurrent use by many simultaneous requests.
type DB struct {
	client   *mongo.Client
	database *mongo.Database
	logger   *logger.Logger
}

// NewDB connects to the MongoDB deployment described by cfg and verifies the
// connection with a ping bounded by cfg.ConnectTimeout.
//
// Returns a *DB ready to hand out collection handles, or a wrapped error if
// the connection or the ping fails.
func NewDB(ctx context.Context, cfg config.Mongo, logger *logger.Logger) (*DB, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("error connecting to document store: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("error pinging document store: %w", err)
	}

	logger.Info().Str("database", cfg.Database).Msg("connected to document store")

	return &DB{
		client:   client,
		database: client.Database(cfg.Database),
		logger:   logger,
	}, nil
}

// Collection returns a handle to the named collection in the application
// database.
func (db *DB) Collection(name string) *mongo.Collection {
	return db.database.Collection(name)
}

// Close disconnects the underlying client, releasing all pooled connections.
func (db *DB) Close(ctx context.Context) error {
	if db.client == nil {
		return nil
	}
	return db.client.Disconnect(ctx)
}
