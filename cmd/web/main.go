package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"fuelmx/internal/app"
	"fuelmx/internal/config"
	"fuelmx/internal/infrastructure"
)

func main() {
	configFile := flag.String("config", "", "optional YAML config file")
	recompute := flag.Bool("recompute", false, "run the pipeline at startup even if a results artifact exists")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("failed to initialize logger", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	pipeline := app.NewPipeline(cfg, logger)
	results, err := pipeline.Results(ctx, *recompute)
	if err != nil {
		logger.Error("failed to obtain results", "error", err)
		os.Exit(1)
	}

	server := app.NewServer(cfg.Server, results, logger)
	if err := server.Run(ctx); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}
