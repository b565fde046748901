package store

import (
	"context"

	"github.com/dcastillo/iot-telemetry/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
}

type ReadingRepository interface {
	InsertReadings(ctx context.Context, readings []models.Reading) (int, error)
	FindLatestByDevice(ctx context.Context, deviceID string) (models.Reading, error)
	FindReadings(ctx context.Context, filter models.ReadingFilter) ([]models.Reading, error)
}
