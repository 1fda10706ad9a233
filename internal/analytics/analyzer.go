package analytics

import (
	"log/slog"

	"fuelmx/pkg/contracts/domain"
)

// Inputs bundles the cleaned tables the aggregator works on. All slices
// are treated as immutable snapshots.
type Inputs struct {
	Stations    []domain.Station         // reconciled and price-cleaned
	Populations []domain.StatePopulation // canonical roster source
	Roster      *domain.StateRoster
	Volumes     []domain.VolumeRecord // normalized
}

// Options holds the tunable parameters of the aggregation
type Options struct {
	// ReferenceYear selects the volume year for totals, market value and
	// ratios. Later years are excluded from the historical series.
	ReferenceYear int
	// TopN is the ranking cutoff for municipality tables
	TopN int
	// USDExchangeRate is MXN per USD, an approximation from configuration
	USDExchangeRate float64
}

// DefaultOptions mirrors the source analysis: 2024, top 15, 20 MXN/USD
func DefaultOptions() Options {
	return Options{ReferenceYear: 2024, TopN: 15, USDExchangeRate: 20}
}

// Analyzer computes result tables from cleaned inputs
type Analyzer struct {
	logger *slog.Logger
	opts   Options
}

// NewAnalyzer creates an analyzer. A nil logger falls back to slog.Default.
func NewAnalyzer(logger *slog.Logger, opts Options) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.TopN <= 0 {
		opts.TopN = DefaultOptions().TopN
	}
	if opts.ReferenceYear == 0 {
		opts.ReferenceYear = DefaultOptions().ReferenceYear
	}
	if opts.USDExchangeRate <= 0 {
		opts.USDExchangeRate = DefaultOptions().USDExchangeRate
	}
	return &Analyzer{
		logger: logger.With(slog.String("component", "analytics")),
		opts:   opts,
	}
}
