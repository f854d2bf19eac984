package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays cfg with environment variables, loading a .env file
// first when one exists. Unset variables leave the current value
// untouched.
//
// Recognized variables:
//
//	SKYVAULT_API_ENDPOINT
//	SKYVAULT_DATABASE_PATH
//	SKYVAULT_METADATA_CACHE_TTL  (a time.Duration string, e.g. "30m")
//	SKYVAULT_EVENTS_FILTER
//	SKYVAULT_LANG
func parseEnv(cfg *Config) {
	// Absent .env is the normal case.
	_ = godotenv.Load()

	if v := os.Getenv("SKYVAULT_API_ENDPOINT"); v != "" {
		cfg.APIEndpoint = v
	}
	if v := os.Getenv("SKYVAULT_DATABASE_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("SKYVAULT_METADATA_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.MetadataCacheTTL = d
		}
	}
	if v := os.Getenv("SKYVAULT_EVENTS_FILTER"); v != "" {
		cfg.EventsFilter = v
	}
	if v := os.Getenv("SKYVAULT_LANG"); v != "" {
		cfg.Lang = v
	}
}
