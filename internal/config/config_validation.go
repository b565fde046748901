// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Diego Castillo

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error
// otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" ||
		cfg.App.TokenAudience == "" || cfg.App.TokenExpiryMinutes <= 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Storage.Mongo.URI == "" || cfg.Storage.Mongo.Database == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	return nil
}
