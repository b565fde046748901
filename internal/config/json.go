package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Duration is a time.Duration that unmarshals from a JSON string in the
// usual Go duration syntax (e.g. "30s", "1m").
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value, err)
	}

	*d = Duration(parsed)
	return nil
}

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-based durations so that a configuration file can be written by hand.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey       string `json:"token_sign_key"`
		TokenIssuer        string `json:"token_issuer"`
		TokenAudience      string `json:"token_audience"`
		TokenExpiryMinutes int    `json:"token_expiry_minutes"`
	} `json:"app,omitempty"`

	Storage struct {
		Mongo struct {
			URI                string   `json:"uri"`
			Database           string   `json:"database"`
			UsersCollection    string   `json:"users_collection"`
			ReadingsCollection string   `json:"readings_collection"`
			ConnectTimeout     Duration `json:"connect_timeout"`
		} `json:"mongo,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`
}

// parseJSON reads and decodes the JSON configuration file at jsonFilePath
// and converts it into a *StructuredConfig suitable for merging.
func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding a json file: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:       jsonCfg.App.TokenSignKey,
			TokenIssuer:        jsonCfg.App.TokenIssuer,
			TokenAudience:      jsonCfg.App.TokenAudience,
			TokenExpiryMinutes: jsonCfg.App.TokenExpiryMinutes,
		},
		Storage: Storage{
			Mongo: Mongo{
				URI:                jsonCfg.Storage.Mongo.URI,
				Database:           jsonCfg.Storage.Mongo.Database,
				UsersCollection:    jsonCfg.Storage.Mongo.UsersCollection,
				ReadingsCollection: jsonCfg.Storage.Mongo.ReadingsCollection,
				ConnectTimeout:     time.Duration(jsonCfg.Storage.Mongo.ConnectTimeout),
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
	}, nil
}
