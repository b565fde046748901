package service

import (
	"github.com/dcastillo/iot-telemetry/internal/config"
	"github.com/dcastillo/iot-telemetry/internal/logger"
	"github.com/dcastillo/iot-telemetry/internal/store"
)

type Services struct {
	AuthService      AuthService
	TelemetryService TelemetryService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:      NewAuthService(storages.UserRepository, cfg.App, logger),
		TelemetryService: NewTelemetryService(storages.ReadingRepository, logger),
	}
}
