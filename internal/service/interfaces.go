package service

import (
	"context"

	"github.com/dcastillo/iot-telemetry/models"
)

type AuthService interface {
	RegisterUser(ctx context.Context, email, password string) (models.User, error)
	Login(ctx context.Context, email, password string) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type TelemetryService interface {
	Ingest(ctx context.Context, readings []models.Reading) (int, error)
	Latest(ctx context.Context, deviceID string) (models.Reading, error)
	Query(ctx context.Context, filter models.ReadingFilter) ([]models.Reading, error)
}
