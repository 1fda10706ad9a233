package app

import (
	"context"
	"log/slog"
	"time"

	"fuelmx/internal/analytics"
	"fuelmx/internal/config"
	"fuelmx/internal/dataload"
	"fuelmx/internal/dataprocessing"
	apperrors "fuelmx/internal/errors"
	"fuelmx/internal/exporter"
	"fuelmx/pkg/contracts/domain"
)

// Pipeline runs the full aggregation flow: load the three datasets, clean
// them, compute every aggregate, decorate, and persist the results.
type Pipeline struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *exporter.ResultStore
}

// NewPipeline creates a pipeline from configuration
func NewPipeline(cfg *config.Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "pipeline")),
		store:  exporter.NewResultStore(cfg.Paths.ResultsFile, logger),
	}
}

// Results returns the current result set, reusing a valid saved artifact
// when one exists. Set force to recompute regardless.
func (p *Pipeline) Results(ctx context.Context, force bool) (*domain.ResultSet, error) {
	if !force {
		if results, err := p.store.Load(ctx); err == nil {
			p.logger.InfoContext(ctx, "reusing saved results",
				slog.Time("generated_at", results.GeneratedAt))
			return results, nil
		} else if !apperrors.IsType(err, apperrors.ErrTypeNotFound) {
			p.logger.WarnContext(ctx, "results artifact unusable, recomputing",
				slog.String("error", err.Error()))
		}
	}
	return p.Run(ctx)
}

// Run executes the pipeline end to end and saves the artifact and CSV
// reports
func (p *Pipeline) Run(ctx context.Context) (*domain.ResultSet, error) {
	start := time.Now()
	p.logger.InfoContext(ctx, "pipeline starting",
		slog.String("stations_file", p.cfg.Paths.StationsFile),
		slog.String("population_file", p.cfg.Paths.PopulationFile),
		slog.String("volumes_file", p.cfg.Paths.VolumesFile))

	loader := dataload.NewLoader(p.logger)

	stations, err := loader.LoadStations(ctx, p.cfg.Paths.StationsFile)
	if err != nil {
		return nil, err
	}
	populations, err := loader.LoadPopulation(ctx, p.cfg.Paths.PopulationFile)
	if err != nil {
		return nil, err
	}
	volumes, err := loader.LoadVolumes(ctx, p.cfg.Paths.VolumesFile)
	if err != nil {
		return nil, err
	}

	roster := domain.NewStateRoster(populations)
	if roster.Len() == 0 {
		return nil, apperrors.NewValidationError("population dataset contains no states")
	}

	stations, reconcile := dataprocessing.ReconcileStations(ctx, p.logger, stations, roster)
	p.logger.InfoContext(ctx, "stations reconciled",
		slog.Int("stations", len(stations)),
		slog.Int("duplicates_removed", reconcile.DuplicatesRemoved),
		slog.Int("unknown_state_rows", reconcile.UnknownStateRows),
		slog.Int("placeholder_states", len(reconcile.PlaceholderStates)))

	policy := dataprocessing.OutlierPolicy{
		LowerPercentile: p.cfg.Analysis.LowerPercentile,
		UpperPercentile: p.cfg.Analysis.UpperPercentile,
		MinPrice:        p.cfg.Analysis.MinPrice,
		MaxPrice:        p.cfg.Analysis.MaxPrice,
	}
	stations = dataprocessing.CleanPrices(ctx, p.logger, stations, policy)

	volumes, normalize := dataprocessing.NormalizeVolumes(ctx, p.logger, volumes)
	p.logger.InfoContext(ctx, "volumes normalized",
		slog.Int("records", len(volumes)),
		slog.Int("unmapped_rows", normalize.UnmappedRows))

	analyzer := analytics.NewAnalyzer(p.logger, analytics.Options{
		ReferenceYear:   p.cfg.Analysis.ReferenceYear,
		TopN:            p.cfg.Analysis.TopN,
		USDExchangeRate: p.cfg.Analysis.USDExchangeRate,
	})
	results, err := analyzer.ComputeAll(ctx, analytics.Inputs{
		Stations:    stations,
		Populations: populations,
		Roster:      roster,
		Volumes:     volumes,
	})
	if err != nil {
		return nil, err
	}

	exporter.Decorate(results)

	if err := p.store.Save(ctx, results); err != nil {
		return nil, err
	}
	writer := exporter.NewCSVWriter(p.cfg.Paths.OutputDir, p.logger)
	if err := writer.WriteAll(ctx, results); err != nil {
		return nil, err
	}

	p.logger.InfoContext(ctx, "pipeline complete",
		slog.Duration("elapsed", time.Since(start)))
	return results, nil
}
