package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"fuelmx/internal/app"
	"fuelmx/internal/config"
	"fuelmx/internal/infrastructure"
)

func main() {
	configFile := flag.String("config", "", "optional YAML config file")
	stationsFile := flag.String("stations", "", "stations dataset (overrides config)")
	populationFile := flag.String("population", "", "population dataset (overrides config)")
	volumesFile := flag.String("volumes", "", "sales volume dataset (overrides config)")
	outDir := flag.String("out", "", "report output directory (overrides config)")
	force := flag.Bool("force", false, "recompute even if a valid results artifact exists")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *stationsFile != "" {
		cfg.Paths.StationsFile = *stationsFile
	}
	if *populationFile != "" {
		cfg.Paths.PopulationFile = *populationFile
	}
	if *volumesFile != "" {
		cfg.Paths.VolumesFile = *volumesFile
	}
	if *outDir != "" {
		cfg.Paths.OutputDir = *outDir
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("failed to initialize logger", "error", err)
		os.Exit(1)
	}

	pipeline := app.NewPipeline(cfg, logger)
	results, err := pipeline.Results(context.Background(), *force)
	if err != nil {
		logger.Error("pipeline failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Results for %d generated at %s\n",
		results.ReferenceYear, results.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Printf("  artifact: %s\n", cfg.Paths.ResultsFile)
	fmt.Printf("  reports:  %s\n", cfg.Paths.OutputDir)
	if results.MarketValue.FormattedTotal != "" {
		fmt.Printf("  estimated market value: %s\n", results.MarketValue.FormattedTotal)
	}
}
