// Package config assembles the client's runtime settings. Sources are
// layered: built-in defaults, then a .env file / process environment, then
// an optional JSON config file, then command-line flags. Later sources win.
package config

import "time"

// Config holds runtime settings for the dealerdesk client.
type Config struct {
	// APIBaseURL is the backend's base URL, e.g. http://127.0.0.1:1337.
	APIBaseURL string
	// APIToken is an optional static backend token used when no user
	// credential is stored.
	APIToken string
	// SigningSecret, when present, enables local verification of the
	// stored credential's signature and expiry.
	SigningSecret string
	// MapsAPIKey signs static-map links in the sales view.
	MapsAPIKey string
	// TokenFile overrides where the credential is persisted. Empty means
	// the per-user default location.
	TokenFile string
	// CheckBound limits the startup identity check.
	CheckBound time.Duration
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:1337"
	c.CheckBound = 10 * time.Second
	c.LogLevel = "info"
}

// Load constructs a Config by applying all sources in order.
func Load() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
