package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/mkazymov/dealerdesk/internal/flagx"
	"github.com/mkazymov/dealerdesk/internal/timex"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// may be given as strings like "10s" or as integer nanoseconds.
type jsonConfig struct {
	APIBaseURL    string         `json:"api_base_url"`
	APIToken      string         `json:"api_token"`
	SigningSecret string         `json:"signing_secret"`
	MapsAPIKey    string         `json:"maps_api_key"`
	TokenFile     string         `json:"token_file"`
	CheckBound    timex.Duration `json:"check_bound"`
	LogLevel      string         `json:"log_level"`
}

// parseJSON overlays cfg with the file named by -c/-config, when given.
func parseJSON(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}
	if err := applyJSONFile(cfg, path); err != nil {
		panic(err)
	}
}

func applyJSONFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.APIToken != "" {
		cfg.APIToken = jc.APIToken
	}
	if jc.SigningSecret != "" {
		cfg.SigningSecret = jc.SigningSecret
	}
	if jc.MapsAPIKey != "" {
		cfg.MapsAPIKey = jc.MapsAPIKey
	}
	if jc.TokenFile != "" {
		cfg.TokenFile = jc.TokenFile
	}
	if jc.CheckBound.Duration > 0 {
		cfg.CheckBound = time.Duration(jc.CheckBound.Duration)
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	return nil
}
