package dataprocessing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fuelmx/pkg/contracts/domain"
)

func pricedStation(id string, regular float64) domain.Station {
	return domain.Station{
		PlaceID:      id,
		StateName:    "Jalisco",
		RegularPrice: domain.Float(regular),
	}
}

func TestCleanPrices_TinySampleUsesBusinessBounds(t *testing.T) {
	// With five values the 0.1/99.9 percentiles sit inside [12, 35], so the
	// effective bounds are exactly the business range: 5 and 40 become
	// missing, 20/21/22 survive.
	stations := []domain.Station{
		pricedStation("S1", 5),
		pricedStation("S2", 20),
		pricedStation("S3", 21),
		pricedStation("S4", 22),
		pricedStation("S5", 40),
	}

	out := CleanPrices(context.Background(), nil, stations, DefaultOutlierPolicy())

	assert.False(t, out[0].RegularPrice.Valid)
	assert.Equal(t, domain.Float(20), out[1].RegularPrice)
	assert.Equal(t, domain.Float(21), out[2].RegularPrice)
	assert.Equal(t, domain.Float(22), out[3].RegularPrice)
	assert.False(t, out[4].RegularPrice.Valid)
}

func TestCleanPrices_RowSurvivesForOtherFuels(t *testing.T) {
	// The in-range Regular values keep the lower bound above 5, so S1's
	// Regular is dropped while its Premium and Diesel prices survive.
	stations := []domain.Station{
		{
			PlaceID:      "S1",
			StateName:    "Jalisco",
			RegularPrice: domain.Float(5), // outlier
			PremiumPrice: domain.Float(24),
			DieselPrice:  domain.Float(25),
		},
		pricedStation("S2", 20),
		pricedStation("S3", 21),
		pricedStation("S4", 22),
	}

	out := CleanPrices(context.Background(), nil, stations, DefaultOutlierPolicy())

	require.Len(t, out, 4)
	assert.False(t, out[0].RegularPrice.Valid)
	assert.Equal(t, domain.Float(24), out[0].PremiumPrice)
	assert.Equal(t, domain.Float(25), out[0].DieselPrice)
	assert.Equal(t, domain.Float(20), out[1].RegularPrice)
}

func TestCleanPrices_EntirelyMissingColumn(t *testing.T) {
	// Percentiles over an empty column are undefined; the policy must not
	// crash and must fall back to the fixed peso range.
	stations := []domain.Station{
		{PlaceID: "S1", StateName: "Jalisco", PremiumPrice: domain.Float(30)},
		{PlaceID: "S2", StateName: "Jalisco", PremiumPrice: domain.Float(10)},
	}

	out := CleanPrices(context.Background(), nil, stations, DefaultOutlierPolicy())

	// Regular column stays entirely missing
	assert.False(t, out[0].RegularPrice.Valid)
	assert.False(t, out[1].RegularPrice.Valid)

	// Premium applies the fallback-widened bounds normally
	assert.Equal(t, domain.Float(30), out[0].PremiumPrice)
	assert.False(t, out[1].PremiumPrice.Valid)
}

func TestCleanPrices_PercentileBoundsWidenRange(t *testing.T) {
	// A wide spread pushes the 99.9th percentile above 35; the accepted
	// range widens to include it rather than clamping to the peso bound.
	stations := make([]domain.Station, 0, 100)
	for i := 0; i < 100; i++ {
		stations = append(stations, pricedStation("S", 20+float64(i)))
	}

	lower, upper := DefaultOutlierPolicy().Bounds(collectRegular(stations))

	assert.Equal(t, 12.0, lower)
	assert.Greater(t, upper, 35.0)
}

func TestCleanPrices_InputNotMutated(t *testing.T) {
	stations := []domain.Station{pricedStation("S1", 5)}

	_ = CleanPrices(context.Background(), nil, stations, DefaultOutlierPolicy())

	assert.Equal(t, domain.Float(5), stations[0].RegularPrice)
}

func TestPercentileValue(t *testing.T) {
	tests := []struct {
		name     string
		sorted   []float64
		fraction float64
		expected float64
	}{
		{name: "empty slice", sorted: nil, fraction: 0.5, expected: 0},
		{name: "single value", sorted: []float64{7}, fraction: 0.5, expected: 7},
		{name: "zero fraction", sorted: []float64{1, 2, 3}, fraction: 0, expected: 1},
		{name: "full fraction", sorted: []float64{1, 2, 3}, fraction: 1, expected: 3},
		{name: "median of even count interpolates", sorted: []float64{1, 2, 3, 4}, fraction: 0.5, expected: 2.5},
		{name: "quarter point", sorted: []float64{0, 10, 20, 30, 40}, fraction: 0.25, expected: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, percentileValue(tt.sorted, tt.fraction), 1e-9)
		})
	}
}

func collectRegular(stations []domain.Station) []float64 {
	values := make([]float64, 0, len(stations))
	for _, s := range stations {
		if s.RegularPrice.Valid {
			values = append(values, s.RegularPrice.Float64)
		}
	}
	return values
}
