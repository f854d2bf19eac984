package config

import (
	"encoding/json"
	"os"

	"github.com/dkrasnovs/skyvault/internal/flagx"
	"github.com/dkrasnovs/skyvault/internal/timex"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the TTL either as a string like "1h"
// or as integer nanoseconds.
type jsonConfig struct {
	APIEndpoint      string         `json:"api_endpoint"`
	DatabasePath     string         `json:"database_path"`
	MetadataCacheTTL timex.Duration `json:"metadata_cache_ttl"`
	EventsFilter     string         `json:"events_filter"`
	Lang             string         `json:"lang"`
}

// parseJSON overlays cfg with values loaded from the JSON file given via
// -c/-config. Missing flag means no JSON stage. Empty JSON fields leave
// the current value untouched. Read or unmarshal errors panic; config is
// resolved once at startup and a broken file should stop the program.
func parseJSON(cfg *Config) {
	path := flagx.JSONConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIEndpoint != "" {
		cfg.APIEndpoint = jc.APIEndpoint
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.MetadataCacheTTL.Duration > 0 {
		cfg.MetadataCacheTTL = jc.MetadataCacheTTL.Duration
	}
	if jc.EventsFilter != "" {
		cfg.EventsFilter = jc.EventsFilter
	}
	if jc.Lang != "" {
		cfg.Lang = jc.Lang
	}
}
