package dataprocessing

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"fuelmx/pkg/contracts/domain"
)

// OutlierPolicy is the price acceptance rule: the accepted range is always
// at least [MinPrice, MaxPrice] (realistic peso bounds) but widens to the
// percentile bounds when those are wider. This is a deliberate business
// rule, not a statistical default.
type OutlierPolicy struct {
	LowerPercentile float64 // e.g. 0.1 (of 100)
	UpperPercentile float64 // e.g. 99.9 (of 100)
	MinPrice        float64
	MaxPrice        float64
}

// DefaultOutlierPolicy returns the policy used by the source analysis:
// 0.1/99.9 percentiles with 12-35 peso bounds.
func DefaultOutlierPolicy() OutlierPolicy {
	return OutlierPolicy{
		LowerPercentile: 0.1,
		UpperPercentile: 99.9,
		MinPrice:        12,
		MaxPrice:        35,
	}
}

// Bounds computes the effective acceptance range for one fuel column.
// When the column has no valid values the percentiles are undefined and
// the bounds fall back to the fixed peso range.
func (p OutlierPolicy) Bounds(values []float64) (lower, upper float64) {
	if len(values) == 0 {
		return p.MinPrice, p.MaxPrice
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	lower = math.Min(percentileValue(sorted, p.LowerPercentile/100), p.MinPrice)
	upper = math.Max(percentileValue(sorted, p.UpperPercentile/100), p.MaxPrice)
	return lower, upper
}

// CleanPrices applies the outlier policy to every fuel column
// independently. Out-of-range prices become missing; the station row
// survives for its other fuel types. The input is not mutated.
func CleanPrices(ctx context.Context, logger *slog.Logger, stations []domain.Station, policy OutlierPolicy) []domain.Station {
	if logger == nil {
		logger = slog.Default()
	}

	out := make([]domain.Station, len(stations))
	copy(out, stations)

	for _, fuel := range domain.AllFuelTypes {
		values := make([]float64, 0, len(out))
		for i := range out {
			if price := out[i].Price(fuel); price.Valid {
				values = append(values, price.Float64)
			}
		}

		lower, upper := policy.Bounds(values)

		filtered := 0
		for i := range out {
			price := out[i].Price(fuel)
			if price.Valid && (price.Float64 < lower || price.Float64 > upper) {
				out[i].SetPrice(fuel, domain.NullFloat())
				filtered++
			}
		}

		logger.InfoContext(ctx, "applied price outlier policy",
			slog.String("fuel", fuel.String()),
			slog.Float64("effective_lower", lower),
			slog.Float64("effective_upper", upper),
			slog.Int("valid_prices", len(values)),
			slog.Int("filtered", filtered))
	}

	return out
}

// percentileValue returns the value at the given fraction (0-1) of a
// sorted slice, with linear interpolation between adjacent ranks.
func percentileValue(sorted []float64, fraction float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if fraction <= 0 {
		return sorted[0]
	}
	if fraction >= 1 {
		return sorted[n-1]
	}

	index := fraction * float64(n-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return sorted[lower]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}
