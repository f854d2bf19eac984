package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/dkrasnovs/skyvault/internal/buildinfo"
	"github.com/dkrasnovs/skyvault/internal/client/cli"
	"github.com/dkrasnovs/skyvault/internal/client/config"
	"github.com/dkrasnovs/skyvault/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewText(os.Stderr, slog.LevelInfo)

	app, err := cli.NewApp(ctx, cfg, logger)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Root(ctx)

}
