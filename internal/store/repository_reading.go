package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dcastillo/iot-telemetry/internal/logger"
	"github.com/dcastillo/iot-telemetry/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// queryLimit caps every range query at the most recent matches after
// filtering and ordering. This is a hard ceiling, not a page size.
const queryLimit = 100

// readingRepository is the MongoDB-backed implementation of
// [ReadingRepository]. It handles batch inserts and filtered, timestamp-
// ordered lookups against the readings collection.
type readingRepository struct {
	logger *logger.Logger
	col    *mongo.Collection
}

// NewReadingRepository constructs a [ReadingRepository] backed by the
// provided collection handle and logger.
func NewReadingRepository(col *mongo.Collection, logger *logger.Logger) ReadingRepository {
	logger.Debug().Msg("creating reading repository")
	return &readingRepository{
		col:    col,
		logger: logger,
	}
}

// InsertReadings persists all readings in a single batch insert and returns
// the number of inserted documents.
//
// The insert runs with the driver's default ordered behavior: documents are
// inserted in order and the batch stops at the first failure, without
// rolling back documents inserted before it.
func (r *readingRepository) InsertReadings(ctx context.Context, readings []models.Reading) (int, error) {
	log := logger.FromContext(ctx)

	documents := make([]any, 0, len(readings))
	for _, reading := range readings {
		documents = append(documents, reading)
	}

	result, err := r.col.InsertMany(ctx, documents)
	if err != nil {
		log.Err(err).Int("count", len(readings)).Msg("error inserting readings")
		return 0, fmt.Errorf("unexpected store error: %w", err)
	}

	return len(result.InsertedIDs), nil
}

// FindLatestByDevice returns the single most recent reading for the given
// device, ordered by timestamp descending.
//
// Error handling:
//   - No matching document → [ErrNoReadingsFound].
//   - Any other driver-level error → wrapped as "unexpected store error".
func (r *readingRepository) FindLatestByDevice(ctx context.Context, deviceID string) (models.Reading, error) {
	log := logger.FromContext(ctx)

	opts := options.FindOne().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	var reading models.Reading
	err := r.col.FindOne(ctx, bson.M{"device_id": deviceID}, opts).Decode(&reading)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Reading{}, ErrNoReadingsFound
		}

		log.Err(err).Str("deviceID", deviceID).Msg("error finding latest reading")
		return models.Reading{}, fmt.Errorf("unexpected store error: %w", err)
	}

	return reading, nil
}

// FindReadings returns the readings matching the given filter, ordered by
// timestamp descending and capped at the 100 most recent matches.
//
// An empty result is returned as an empty slice; the caller decides whether
// that constitutes a not-found condition.
func (r *readingRepository) FindReadings(ctx context.Context, filter models.ReadingFilter) ([]models.Reading, error) {
	log := logger.FromContext(ctx)

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(queryLimit)

	cursor, err := r.col.Find(ctx, buildReadingFilter(filter), opts)
	if err != nil {
		log.Err(err).Msg("error querying readings")
		return nil, fmt.Errorf("unexpected store error: %w", err)
	}

	var readings []models.Reading
	if err := cursor.All(ctx, &readings); err != nil {
		log.Err(err).Msg("error decoding readings")
		return nil, fmt.Errorf("unexpected store error: %w", err)
	}

	return readings, nil
}

// buildReadingFilter translates a [models.ReadingFilter] into a bson filter
// document. All set fields are combined with logical AND; both timestamp
// bounds are inclusive.
func buildReadingFilter(filter models.ReadingFilter) bson.M {
	query := bson.M{}

	if filter.DeviceID != "" {
		query["device_id"] = filter.DeviceID
	}

	timestamp := bson.M{}
	if filter.Start != nil {
		timestamp["$gte"] = *filter.Start
	}
	if filter.End != nil {
		timestamp["$lte"] = *filter.End
	}
	if len(timestamp) > 0 {
		query["timestamp"] = timestamp
	}

	return query
}
