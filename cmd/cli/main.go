package main

import (
	"context"
	"log/slog"

	"github.com/aptrent/aptrent/internal/cli"
	"github.com/aptrent/aptrent/internal/config"
	"github.com/aptrent/aptrent/internal/logging"
)

func main() {
	cfg := config.LoadConfig()

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	log := logging.NewDefault(level)

	app := cli.NewApp(cfg, log)
	app.Run(context.Background())
}
