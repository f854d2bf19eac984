package config

import (
	"flag"
	"os"

	"github.com/dkrasnovs/skyvault/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the drive API (default from Config)
//	-d string   path of the local cache database
//	-f string   events feed filter
//	-l string   UI language code
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-f", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIEndpoint, "a", cfg.APIEndpoint, "base URL of the drive API")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local cache database")
	fs.StringVar(&cfg.EventsFilter, "f", cfg.EventsFilter, "events feed filter")
	fs.StringVar(&cfg.Lang, "l", cfg.Lang, "UI language code")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
