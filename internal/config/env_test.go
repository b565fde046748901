// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Diego Castillo

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setEnvVars registers all given variables for the duration of the test.
func setEnvVars(t *testing.T, envVars map[string]string) {
	t.Helper()
	for key, value := range envVars {
		t.Setenv(key, value)
	}
}

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_TOKEN_SIGN_KEY":       "jwt_secret",
		"APP_TOKEN_ISSUER":         "test_issuer",
		"APP_TOKEN_AUDIENCE":       "test_audience",
		"APP_TOKEN_EXPIRY_MINUTES": "30",

		"SERVER_ADDRESS":         "localhost:8080",
		"SERVER_REQUEST_TIMEOUT": "30s",

		// Storage has nested prefixes: STORAGE_ + MONGO_
		"STORAGE_MONGO_URI":                 "mongodb://localhost:27017",
		"STORAGE_MONGO_DATABASE":            "iot",
		"STORAGE_MONGO_USERS_COLLECTION":    "accounts",
		"STORAGE_MONGO_READINGS_COLLECTION": "telemetry",
		"STORAGE_MONGO_CONNECT_TIMEOUT":     "5s",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)

	assert.Equal(t, "jwt_secret", cfg.App.TokenSignKey)
	assert.Equal(t, "test_issuer", cfg.App.TokenIssuer)
	assert.Equal(t, "test_audience", cfg.App.TokenAudience)
	assert.Equal(t, 30, cfg.App.TokenExpiryMinutes)

	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)

	assert.Equal(t, "mongodb://localhost:27017", cfg.Storage.Mongo.URI)
	assert.Equal(t, "iot", cfg.Storage.Mongo.Database)
	assert.Equal(t, "accounts", cfg.Storage.Mongo.UsersCollection)
	assert.Equal(t, "telemetry", cfg.Storage.Mongo.ReadingsCollection)
	assert.Equal(t, 5*time.Second, cfg.Storage.Mongo.ConnectTimeout)
}

func TestParseEnv_PartialFields(t *testing.T) {
	setEnvVars(t, map[string]string{
		"APP_TOKEN_SIGN_KEY": "jwt_secret",
		"STORAGE_MONGO_URI":  "mongodb://localhost:27017",
	})

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	require.NoError(t, err)
	assert.Equal(t, "jwt_secret", cfg.App.TokenSignKey)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Storage.Mongo.URI)

	// untouched fields keep their zero values
	assert.Empty(t, cfg.App.TokenIssuer)
	assert.Empty(t, cfg.Server.HTTPAddress)
	assert.Zero(t, cfg.Storage.Mongo.ConnectTimeout)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	setEnvVars(t, map[string]string{
		"STORAGE_MONGO_CONNECT_TIMEOUT": "not-a-duration",
	})

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	assert.Error(t, err)
}
