// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Diego Castillo

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// iot-telemetry application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the token signing key
	// and token claim parameters.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the document store backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control token
// issuance and verification.
type App struct {
	// TokenSignKey is the secret key used to sign and verify JWT tokens
	// with HMAC-SHA256. Must be kept confidential.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// It identifies the service that issued the token and is validated on
	// every authenticated request.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenAudience is the "aud" claim embedded in every issued JWT token
	// and validated on every authenticated request.
	// Env: APP_TOKEN_AUDIENCE
	TokenAudience string `env:"TOKEN_AUDIENCE"`

	// TokenExpiryMinutes specifies how long a JWT token remains valid after
	// issuance, expressed in whole minutes.
	// Env: APP_TOKEN_EXPIRY_MINUTES
	TokenExpiryMinutes int `env:"TOKEN_EXPIRY_MINUTES"`
}

// Storage groups the configuration for the persistence backend.
type Storage struct {
	// Mongo holds the document store connection settings.
	Mongo Mongo `envPrefix:"MONGO_"`
}

// Mongo holds connection settings for the MongoDB document store.
type Mongo struct {
	// URI is the MongoDB connection string
	// (e.g. "mongodb://localhost:27017").
	// Env: STORAGE_MONGO_URI
	URI string `env:"URI"`

	// Database is the name of the database holding both collections.
	// Env: STORAGE_MONGO_DATABASE
	Database string `env:"DATABASE"`

	// UsersCollection is the name of the user credential collection.
	// Defaults to "users" when empty.
	// Env: STORAGE_MONGO_USERS_COLLECTION
	UsersCollection string `env:"USERS_COLLECTION"`

	// ReadingsCollection is the name of the telemetry reading collection.
	// Defaults to "readings" when empty.
	// Env: STORAGE_MONGO_READINGS_COLLECTION
	ReadingsCollection string `env:"READINGS_COLLECTION"`

	// ConnectTimeout bounds the initial connect-and-ping performed at
	// startup (e.g. "10s"). Defaults to 10 seconds when zero.
	// Env: STORAGE_MONGO_CONNECT_TIMEOUT
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (first source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
