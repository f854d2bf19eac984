// Package config loads runtime settings for the SkyVault CLI. Sources are
// layered: built-in defaults, then a JSON file, then environment variables
// (optionally from .env), then command-line flags. Later sources win.
package config

import "time"

// Config holds runtime settings for the SkyVault CLI.
//
// Fields:
//   - APIEndpoint: base URL of the drive API.
//   - DatabasePath: path of the local SQLite cache database.
//   - MetadataCacheTTL: lifetime of in-memory decrypted-metadata entries.
//   - EventsFilter: server-side filter for the events feed ("all" keeps
//     everything).
//   - Lang: UI language code.
type Config struct {
	APIEndpoint      string
	DatabasePath     string
	MetadataCacheTTL time.Duration
	EventsFilter     string
	Lang             string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIEndpoint = "https://api.skyvault.local"
	c.DatabasePath = "skyvault.db"
	c.MetadataCacheTTL = time.Hour
	c.EventsFilter = "all"
	c.Lang = "en"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), the environment, and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
