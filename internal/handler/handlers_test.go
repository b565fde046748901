package handler

import (
	"testing"

	"github.com/dcastillo/iot-telemetry/internal/config"
	"github.com/dcastillo/iot-telemetry/internal/logger"
	"github.com/dcastillo/iot-telemetry/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHandlers_HTTPEnabled(t *testing.T) {
	handlers, err := NewHandlers(&service.Services{}, config.Server{HTTPAddress: "localhost:8080"}, logger.Nop())

	require.NoError(t, err)
	assert.NotNil(t, handlers.HTTP)
}

func TestNewHandlers_NoTransportConfigured(t *testing.T) {
	_, err := NewHandlers(&service.Services{}, config.Server{}, logger.Nop())

	assert.ErrorIs(t, err, errNoHandlersAreCreated)
}
