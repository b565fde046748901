// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Diego Castillo

// Package adapter provides transport-layer abstractions for communicating with
// the telemetry server.
//
// The primary abstraction is [ServerAdapter], which decouples callers from the
// underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPServerAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrNotFound] for 404, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/dcastillo/iot-telemetry/models"
)

// ServerAdapter defines transport-agnostic communication with the telemetry
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel values
// defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all subsequent
	// authenticated requests. It is called automatically after a successful
	// Login.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Register creates a new account with the provided credentials. Returns
	// an error if the request fails or the server responds with a non-2xx
	// status ([ErrBadRequest] wrapped for duplicate or missing credentials).
	Register(ctx context.Context, email string, password string) error

	// Login authenticates with the server. On success it stores the returned
	// bearer token via SetToken and returns the signed token string.
	Login(ctx context.Context, email string, password string) (string, error)

	// SendReadings uploads a batch of temperature readings in a single
	// request. Returns the server's confirmation message.
	SendReadings(ctx context.Context, readings []models.Reading) (string, error)

	// Latest fetches the most recent reading recorded for the given device.
	// Returns [ErrNotFound] (wrapped) if the device has no readings.
	Latest(ctx context.Context, deviceID string) (models.Reading, error)

	// Query fetches readings matching the given filter, newest first.
	// Returns [ErrNotFound] (wrapped) if nothing matches.
	Query(ctx context.Context, filter models.ReadingFilter) ([]models.Reading, error)
}
