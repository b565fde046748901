package service

import (
	"context"
	"fmt"

	"github.com/dcastillo/iot-telemetry/internal/logger"
	"github.com/dcastillo/iot-telemetry/internal/store"
	"github.com/dcastillo/iot-telemetry/models"
)

// telemetryService is the concrete implementation of TelemetryService.
// It is a thin validation layer over the ReadingRepository: every operation
// performs at most one store round trip.
type telemetryService struct {
	readingRepository store.ReadingRepository
}

// NewTelemetryService constructs a new TelemetryService wired to the given
// ReadingRepository.
func NewTelemetryService(readingRepository store.ReadingRepository, logger *logger.Logger) TelemetryService {
	logger.Debug().Msg("creating telemetry service")
	return &telemetryService{
		readingRepository: readingRepository,
	}
}

// Ingest persists all readings in a single batch operation and returns the
// inserted count.
//
// No per-record validation is applied: device ids are free-form,
// temperatures are not range-checked, and timestamps are taken as supplied.
//
// Returns ErrInvalidDataProvided when the list is nil or empty, or a wrapped
// storage error if the batch insert fails.
func (t *telemetryService) Ingest(ctx context.Context, readings []models.Reading) (int, error) {
	log := logger.FromContext(ctx)

	if len(readings) == 0 {
		log.Error().Msg("empty readings list provided")
		return 0, ErrInvalidDataProvided
	}

	inserted, err := t.readingRepository.InsertReadings(ctx, readings)
	if err != nil {
		log.Err(err).Int("count", len(readings)).Msg("readings insert ended with error")
		return 0, fmt.Errorf("readings insert ended with error: %w", err)
	}

	return inserted, nil
}

// Latest returns the most recent reading for the given device.
//
// A missing device id is reported as ErrDeviceIDMissing, which the transport
// layer maps to the same not-found response as an empty result — the two
// conditions are deliberately unified.
func (t *telemetryService) Latest(ctx context.Context, deviceID string) (models.Reading, error) {
	log := logger.FromContext(ctx)

	if deviceID == "" {
		log.Error().Msg("missing device id")
		return models.Reading{}, ErrDeviceIDMissing
	}

	reading, err := t.readingRepository.FindLatestByDevice(ctx, deviceID)
	if err != nil {
		log.Err(err).Str("deviceID", deviceID).Msg("latest reading lookup ended with error")
		return models.Reading{}, fmt.Errorf("latest reading lookup ended with error: %w", err)
	}

	return reading, nil
}

// Query returns the readings matching the given optional filters, newest
// first, capped at the 100 most recent matches.
//
// An empty result set is reported as store.ErrNoReadingsFound.
func (t *telemetryService) Query(ctx context.Context, filter models.ReadingFilter) ([]models.Reading, error) {
	log := logger.FromContext(ctx)

	readings, err := t.readingRepository.FindReadings(ctx, filter)
	if err != nil {
		log.Err(err).Msg("readings query ended with error")
		return nil, fmt.Errorf("readings query ended with error: %w", err)
	}

	if len(readings) == 0 {
		return nil, store.ErrNoReadingsFound
	}

	return readings, nil
}
