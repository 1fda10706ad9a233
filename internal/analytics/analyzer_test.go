package analytics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fuelmx/pkg/contracts/domain"
)

func testRoster(t *testing.T) (*domain.StateRoster, []domain.StatePopulation) {
	t.Helper()
	populations := []domain.StatePopulation{
		{StateName: "Jalisco", Population: 8_000_000, Valid: true},
		{StateName: "Sonora", Population: 3_000_000, Valid: true},
		{StateName: "Colima", Population: 0, Valid: true},
	}
	return domain.NewStateRoster(populations), populations
}

func station(id, state, municipality string, regular, premium, diesel domain.NullFloat64) domain.Station {
	return domain.Station{
		PlaceID:          id,
		StateName:        state,
		MunicipalityName: municipality,
		RegularPrice:     regular,
		PremiumPrice:     premium,
		DieselPrice:      diesel,
	}
}

func testInputs(t *testing.T) Inputs {
	t.Helper()
	roster, populations := testRoster(t)
	missing := domain.NullFloat()
	return Inputs{
		Roster:      roster,
		Populations: populations,
		Stations: []domain.Station{
			station("S1", "Jalisco", "Guadalajara", domain.Float(22), domain.Float(24), missing),
			station("S2", "Jalisco", "Guadalajara", domain.Float(24), missing, domain.Float(25)),
			station("S3", "Jalisco", "Zapopan", domain.Float(20), missing, missing),
			station("S4", "Sonora", "Hermosillo", domain.Float(26), domain.Float(28), domain.Float(27)),
			{StateName: "Colima"}, // placeholder from reconciliation
		},
		Volumes: []domain.VolumeRecord{
			{Year: 2024, StateName: "Jalisco", Fuel: domain.FuelRegular, Liters: domain.Float(1_000_000)},
			{Year: 2024, StateName: "Jalisco", Fuel: domain.FuelDiesel, Liters: domain.Float(500_000)},
			{Year: 2024, StateName: "Sonora", Fuel: domain.FuelRegular, Liters: domain.Float(3_000_000)},
			{Year: 2023, StateName: "Jalisco", Fuel: domain.FuelRegular, Liters: domain.Float(800_000)},
			{Year: 2023, StateName: "Sonora", Fuel: domain.FuelRegular, Liters: domain.Float(3_200_000)},
			{Year: 2025, StateName: "Jalisco", Fuel: domain.FuelRegular, Liters: domain.Float(9_999_999)}, // beyond reference year
			{Year: 2024, StateName: "Jalisco", Fuel: domain.FuelPremium, Liters: domain.NullFloat()},      // invalid liters
		},
	}
}

func testAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	return NewAnalyzer(nil, Options{ReferenceYear: 2024, TopN: 2, USDExchangeRate: 20})
}

func TestStationsPerState(t *testing.T) {
	a := testAnalyzer(t)
	rows := a.StationsPerState(testInputs(t))

	require.Len(t, rows, 3, "every roster state must appear exactly once")
	byState := make(map[string]int)
	for _, r := range rows {
		byState[r.StateName] = r.Stations
	}
	assert.Equal(t, 3, byState["Jalisco"])
	assert.Equal(t, 1, byState["Sonora"])
	assert.Equal(t, 0, byState["Colima"], "placeholder stations do not count")
}

func TestStationsPerState_DuplicatePlaceID(t *testing.T) {
	a := testAnalyzer(t)
	in := testInputs(t)
	in.Stations = append(in.Stations, station("S1", "Jalisco", "Guadalajara",
		domain.Float(30), domain.NullFloat(), domain.NullFloat()))

	rows := a.StationsPerState(in)
	for _, r := range rows {
		if r.StateName == "Jalisco" {
			assert.Equal(t, 3, r.Stations, "counts are over distinct station IDs")
		}
	}
}

func TestNationalAveragePrices(t *testing.T) {
	a := testAnalyzer(t)
	rows := a.NationalAveragePrices(testInputs(t))

	byFuel := make(map[domain.FuelType]domain.FuelAveragePrice)
	for _, r := range rows {
		byFuel[r.Fuel] = r
	}

	// Unweighted mean over stations: (22+24+20+26)/4, not a mean of state means.
	regular := byFuel[domain.FuelRegular]
	require.True(t, regular.AveragePrice.Valid)
	assert.InDelta(t, 23.0, regular.AveragePrice.Float64, 1e-9)
	assert.Equal(t, 4, regular.Stations)

	premium := byFuel[domain.FuelPremium]
	require.True(t, premium.AveragePrice.Valid)
	assert.InDelta(t, 26.0, premium.AveragePrice.Float64, 1e-9)
	assert.Equal(t, 2, premium.Stations)
}

func TestNationalAveragePrice_NoEligibleStations(t *testing.T) {
	a := testAnalyzer(t)
	roster, populations := testRoster(t)
	in := Inputs{Roster: roster, Populations: populations}

	avg, count := a.NationalAveragePrice(in, domain.FuelDiesel)
	assert.False(t, avg.Valid, "no stations means no data, not zero")
	assert.Zero(t, count)
}

func TestStatePriceStats(t *testing.T) {
	a := testAnalyzer(t)
	in := testInputs(t)
	rows := a.StatePriceStats(in)

	require.Len(t, rows, 3*len(domain.AllFuelTypes), "full roster-by-fuel grid")

	var jalisco, colima domain.StatePriceStats
	for _, r := range rows {
		if r.Fuel != domain.FuelRegular {
			continue
		}
		switch r.StateName {
		case "Jalisco":
			jalisco = r
		case "Colima":
			colima = r
		}
	}

	require.True(t, jalisco.AveragePrice.Valid)
	assert.InDelta(t, 22.0, jalisco.AveragePrice.Float64, 1e-9)
	require.True(t, jalisco.Deviation.Valid)
	assert.InDelta(t, -1.0, jalisco.Deviation.Float64, 1e-9)

	assert.False(t, colima.AveragePrice.Valid, "zero eligible stations is no data")
	assert.False(t, colima.Deviation.Valid)
	assert.Zero(t, colima.Stations)
}

// Station-weighted state deviations must cancel out: the national average
// is a mean over stations, so sum(stations_i * deviation_i) == 0.
func TestStatePriceStats_WeightedDeviationsSumToZero(t *testing.T) {
	a := testAnalyzer(t)
	rows := a.StatePriceStats(testInputs(t))

	for _, fuel := range domain.AllFuelTypes {
		var weighted float64
		for _, r := range rows {
			if r.Fuel == fuel && r.Deviation.Valid {
				weighted += float64(r.Stations) * r.Deviation.Float64
			}
		}
		assert.InDelta(t, 0.0, weighted, 1e-9, "fuel %s", fuel)
	}
}

func TestTopMunicipalityPrices(t *testing.T) {
	a := testAnalyzer(t)
	rows := a.TopMunicipalityPrices(testInputs(t))

	var regular []domain.MunicipalityPriceStats
	for _, r := range rows {
		if r.Fuel == domain.FuelRegular {
			regular = append(regular, r)
		}
	}
	require.Len(t, regular, 2)
	assert.Equal(t, "Hermosillo", regular[0].MunicipalityName)
	assert.Equal(t, "Guadalajara", regular[1].MunicipalityName)
}

func TestTopN_TieBreakIsLexicographic(t *testing.T) {
	type row struct {
		name  string
		value float64
	}
	rows := []row{
		{"Zapopan", 5},
		{"Ahome", 5},
		{"Mérida", 9},
		{"Centro", 5},
	}

	got := TopN(rows, 3,
		func(r row) float64 { return r.value },
		func(r row) string { return r.name })

	require.Len(t, got, 3)
	assert.Equal(t, "Mérida", got[0].name)
	assert.Equal(t, "Ahome", got[1].name, "ties resolve by key ascending")
	assert.Equal(t, "Centro", got[2].name)
}

func TestTopN_FewerRowsThanN(t *testing.T) {
	got := TopN([]int{3, 1}, 10,
		func(v int) float64 { return float64(v) },
		func(v int) string { return "" })
	assert.Equal(t, []int{3, 1}, got)
}

func TestVolumeByFuel(t *testing.T) {
	a := testAnalyzer(t)
	rows := a.VolumeByFuel(testInputs(t))

	require.Len(t, rows, len(domain.AllFuelTypes))
	assert.Equal(t, domain.FuelRegular, rows[0].Fuel, "sorted by volume descending")
	assert.InDelta(t, 4_000_000, rows[0].Liters, 1e-9, "year 2025 and invalid rows excluded")
	assert.InDelta(t, 4_000_000.0/4_500_000.0*100, rows[0].SharePct, 1e-9)

	var totalShare float64
	for _, r := range rows {
		totalShare += r.SharePct
	}
	assert.InDelta(t, 100.0, totalShare, 1e-9)
}

func TestVolumeByStateFuel(t *testing.T) {
	a := testAnalyzer(t)
	rows := a.VolumeByStateFuel(testInputs(t))

	require.Len(t, rows, 3*len(domain.AllFuelTypes), "full grid, zero-filled")

	for _, r := range rows {
		if r.StateName == "Jalisco" && r.Fuel == domain.FuelDiesel {
			assert.InDelta(t, 500_000, r.Liters, 1e-9)
			assert.InDelta(t, 500_000.0/1_500_000.0*100, r.StateSharePct, 1e-9)
		}
		if r.StateName == "Colima" {
			assert.Zero(t, r.Liters)
			assert.Zero(t, r.StateSharePct)
		}
	}
}

func TestHistoricalVolume(t *testing.T) {
	a := testAnalyzer(t)
	rows := a.HistoricalVolume(testInputs(t))

	var national []domain.YearVolume
	for _, r := range rows {
		require.LessOrEqual(t, r.Year, 2024, "years beyond the reference year are excluded")
		if r.StateName == "National Total" {
			national = append(national, r)
		}
	}

	require.Len(t, national, 2)
	assert.Equal(t, 2023, national[0].Year)
	assert.False(t, national[0].YoYPct.Valid, "first year has no prior point")
	assert.Equal(t, 2024, national[1].Year)
	require.True(t, national[1].YoYPct.Valid)
	assert.InDelta(t, (4_500_000.0-4_000_000.0)/4_000_000.0*100, national[1].YoYPct.Float64, 1e-9)
}

// A volume record for a state outside the canonical roster still counts
// toward the national series, so the reference-year point agrees with the
// nationwide per-fuel totals.
func TestHistoricalVolume_NonRosterStateInNationalTotal(t *testing.T) {
	a := testAnalyzer(t)
	in := testInputs(t)
	in.Volumes = append(in.Volumes,
		domain.VolumeRecord{Year: 2024, StateName: "Desconocido", Fuel: domain.FuelRegular, Liters: domain.Float(250_000)})

	var nationwide float64
	for _, r := range a.VolumeByFuel(in) {
		nationwide += r.Liters
	}
	require.InDelta(t, 4_750_000, nationwide, 1e-9)

	for _, r := range a.HistoricalVolume(in) {
		if r.StateName == "National Total" && r.Year == 2024 {
			assert.InDelta(t, nationwide, r.Liters, 1e-9)
		}
		assert.NotEqual(t, "Desconocido", r.StateName, "per-state series stay on the roster")
	}
}

func TestVolumePerCapita(t *testing.T) {
	a := testAnalyzer(t)
	rows := a.VolumePerCapita(testInputs(t))

	require.Len(t, rows, 3)
	byState := make(map[string]domain.StatePerCapita)
	for _, r := range rows {
		byState[r.StateName] = r
	}

	jalisco := byState["Jalisco"]
	require.True(t, jalisco.PerCapita.Valid)
	assert.InDelta(t, 1_500_000.0/8_000_000.0, jalisco.PerCapita.Float64, 1e-9)

	colima := byState["Colima"]
	assert.False(t, colima.PerCapita.Valid, "zero population cannot yield a ratio")
}

func TestVolumePerStation(t *testing.T) {
	a := testAnalyzer(t)
	rows := a.VolumePerStation(testInputs(t))

	byState := make(map[string]domain.StatePerStation)
	for _, r := range rows {
		byState[r.StateName] = r
	}

	jalisco := byState["Jalisco"]
	assert.Equal(t, 3, jalisco.Stations)
	assert.InDelta(t, 1_500_000.0/3.0, jalisco.PerStation, 1e-9)

	colima := byState["Colima"]
	assert.Zero(t, colima.Stations)
	assert.Zero(t, colima.PerStation, "zero stations yields zero, not no data")
}

func TestMarketValue(t *testing.T) {
	a := testAnalyzer(t)
	report := a.MarketValue(testInputs(t))

	assert.Equal(t, 20.0, report.USDExchangeRate)

	byFuel := make(map[domain.FuelType]domain.FuelMarketValue)
	for _, r := range report.PerFuel {
		byFuel[r.Fuel] = r
	}

	regular := byFuel[domain.FuelRegular]
	require.True(t, regular.Value.Valid)
	assert.InDelta(t, 4_000_000*23.0, regular.Value.Float64, 1e-6)

	diesel := byFuel[domain.FuelDiesel]
	require.True(t, diesel.Value.Valid)
	assert.InDelta(t, 500_000*26.0, diesel.Value.Float64, 1e-6)

	require.True(t, report.Total.Valid)
	assert.InDelta(t, 4_000_000*23.0+500_000*26.0, report.Total.Float64, 1e-6)

	require.NotEmpty(t, report.PerState)
	assert.Equal(t, "Sonora", report.PerState[0].StateName, "sorted by value descending")
}

func TestProductAvailability(t *testing.T) {
	a := testAnalyzer(t)
	avail := a.ProductAvailability(testInputs(t))

	assert.Equal(t, 4, avail.TotalStations, "placeholders are not stations")
	byFuel := make(map[domain.FuelType]domain.FuelAvailability)
	for _, r := range avail.PerFuel {
		byFuel[r.Fuel] = r
	}
	assert.Equal(t, 4, byFuel[domain.FuelRegular].Stations)
	assert.InDelta(t, 100.0, byFuel[domain.FuelRegular].CoveragePct, 1e-9)
	assert.Equal(t, 2, byFuel[domain.FuelDiesel].Stations)
	assert.InDelta(t, 50.0, byFuel[domain.FuelDiesel].CoveragePct, 1e-9)
}

func TestComputeAll(t *testing.T) {
	a := testAnalyzer(t)
	results, err := a.ComputeAll(context.Background(), testInputs(t))
	require.NoError(t, err)
	require.NotNil(t, results)

	assert.Equal(t, domain.ResultSetFormat, results.Format)
	assert.Equal(t, 2024, results.ReferenceYear)
	assert.False(t, results.GeneratedAt.IsZero())

	assert.Len(t, results.StationsPerState, 3)
	assert.NotEmpty(t, results.StationsPerMunicipality)
	assert.NotEmpty(t, results.NationalAveragePrices)
	assert.Len(t, results.StatePrices, 3*len(domain.AllFuelTypes))
	assert.NotEmpty(t, results.VolumeByFuel)
	assert.Len(t, results.VolumeByStateFuel, 3*len(domain.AllFuelTypes))
	assert.NotEmpty(t, results.HistoricalVolume)
	assert.NotEmpty(t, results.MarketValue.PerFuel)
}

func TestComputeAll_CancelledContext(t *testing.T) {
	a := testAnalyzer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.ComputeAll(ctx, testInputs(t))
	assert.Error(t, err)
}
