// Package dataload reads the three raw datasets (station prices, state
// population, sales volumes) into typed records. Cell-level coercion is
// lenient (non-numeric values become missing); file-level problems are
// fatal storage errors.
package dataload

import (
	"context"
	"log/slog"
	"strconv"

	"fuelmx/pkg/contracts/domain"
)

// Column names of the station/price dataset
const (
	colPlaceID      = "place_id"
	colStateName    = "state_name"
	colMunicipality = "municipality_name"
	colRegularPrice = "regular_price"
	colPremiumPrice = "premium_price"
	colDieselPrice  = "diesel_price"
)

// Column names of the population and volume datasets (CRE/CONAPO exports)
const (
	colEntidad    = "entidad federativa"
	colPopulation = "2024 population"
	colYear       = "año"
	colVolState   = "entidadfederativa"
	colSubProduct = "subproducto"
	colLiters     = "volumen vendido (litros)"
)

// Loader reads the raw input datasets into typed records
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a loader. A nil logger falls back to slog.Default.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger.With(slog.String("component", "dataload"))}
}

// LoadStations reads the station/price dataset. Price cells are coerced to
// optional numerics; outlier filtering is left to the price cleaner.
func (l *Loader) LoadStations(ctx context.Context, path string) ([]domain.Station, error) {
	rows, err := readTable(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []domain.Station{}, nil
	}

	cm := mapColumns(rows[0])
	if err := cm.require(colPlaceID, colStateName, colMunicipality); err != nil {
		return nil, err
	}

	stations := make([]domain.Station, 0, len(rows)-1)
	for _, row := range rows[1:] {
		station := domain.Station{
			PlaceID:          cm.cell(row, colPlaceID),
			StateName:        cm.cell(row, colStateName),
			MunicipalityName: cm.cell(row, colMunicipality),
			RegularPrice:     domain.ParseNullFloat(cm.cell(row, colRegularPrice)),
			PremiumPrice:     domain.ParseNullFloat(cm.cell(row, colPremiumPrice)),
			DieselPrice:      domain.ParseNullFloat(cm.cell(row, colDieselPrice)),
		}
		if station.PlaceID == "" {
			continue
		}
		stations = append(stations, station)
	}

	l.logger.InfoContext(ctx, "loaded station dataset",
		slog.String("path", path),
		slog.Int("stations", len(stations)))

	return stations, nil
}

// LoadPopulation reads the population dataset. The state names found here
// form the canonical state roster. Population cells may carry thousands
// separators; non-numeric cells yield an invalid population.
func (l *Loader) LoadPopulation(ctx context.Context, path string) ([]domain.StatePopulation, error) {
	rows, err := readTable(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []domain.StatePopulation{}, nil
	}

	cm := mapColumns(rows[0])
	if err := cm.require(colEntidad, colPopulation); err != nil {
		return nil, err
	}

	populations := make([]domain.StatePopulation, 0, len(rows)-1)
	for _, row := range rows[1:] {
		stateName := cm.cell(row, colEntidad)
		if stateName == "" {
			continue
		}
		record := domain.StatePopulation{StateName: stateName}
		if v := domain.ParseNullFloat(cm.cell(row, colPopulation)); v.Valid && v.Float64 >= 0 {
			record.Population = int64(v.Float64)
			record.Valid = true
		}
		populations = append(populations, record)
	}

	l.logger.InfoContext(ctx, "loaded population dataset",
		slog.String("path", path),
		slog.Int("states", len(populations)))

	return populations, nil
}

// LoadVolumes reads the sales-volume dataset. Liters are coerced to
// optional numerics; sub-product collapse to fuel types is left to the
// volume normalizer.
func (l *Loader) LoadVolumes(ctx context.Context, path string) ([]domain.VolumeRecord, error) {
	rows, err := readTable(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []domain.VolumeRecord{}, nil
	}

	cm := mapColumns(rows[0])
	if err := cm.require(colYear, colVolState, colSubProduct, colLiters); err != nil {
		return nil, err
	}

	records := make([]domain.VolumeRecord, 0, len(rows)-1)
	skipped := 0
	for _, row := range rows[1:] {
		year, err := strconv.Atoi(cm.cell(row, colYear))
		if err != nil {
			skipped++
			continue
		}
		records = append(records, domain.VolumeRecord{
			Year:       year,
			StateName:  cm.cell(row, colVolState),
			SubProduct: cm.cell(row, colSubProduct),
			Liters:     domain.ParseNullFloat(cm.cell(row, colLiters)),
		})
	}

	if skipped > 0 {
		l.logger.WarnContext(ctx, "skipped volume rows with unparseable year",
			slog.String("path", path),
			slog.Int("skipped", skipped))
	}
	l.logger.InfoContext(ctx, "loaded volume dataset",
		slog.String("path", path),
		slog.Int("records", len(records)))

	return records, nil
}
