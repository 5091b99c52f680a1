package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names. A .env file in the working directory is
// loaded first and never overrides variables already set in the process
// environment.
const (
	envAPIBaseURL    = "DEALERDESK_API_URL"
	envAPIToken      = "DEALERDESK_API_TOKEN"
	envSigningSecret = "DEALERDESK_JWT_SECRET"
	envMapsAPIKey    = "DEALERDESK_MAPS_API_KEY"
	envTokenFile     = "DEALERDESK_TOKEN_FILE"
	envCheckBound    = "DEALERDESK_CHECK_BOUND"
	envLogLevel      = "DEALERDESK_LOG_LEVEL"
)

func parseEnv(cfg *Config) {
	// missing .env is the normal case
	_ = godotenv.Load()

	setString(&cfg.APIBaseURL, envAPIBaseURL)
	setString(&cfg.APIToken, envAPIToken)
	setString(&cfg.SigningSecret, envSigningSecret)
	setString(&cfg.MapsAPIKey, envMapsAPIKey)
	setString(&cfg.TokenFile, envTokenFile)
	setString(&cfg.LogLevel, envLogLevel)

	if v := os.Getenv(envCheckBound); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.CheckBound = d
		}
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
