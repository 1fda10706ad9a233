package exporter

import (
	"context"
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	apperrors "fuelmx/internal/errors"
	"fuelmx/pkg/contracts/domain"
)

// CSVWriter writes the result tables as CSV reports under an output
// directory. Files carry a UTF-8 BOM so Excel opens the accented state and
// municipality names correctly.
type CSVWriter struct {
	outputDir string
	logger    *slog.Logger
}

// NewCSVWriter creates a writer targeting the given output directory
func NewCSVWriter(outputDir string, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{
		outputDir: outputDir,
		logger:    logger.With(slog.String("component", "csv_writer")),
	}
}

// WriteAll writes one CSV report per result table
func (w *CSVWriter) WriteAll(ctx context.Context, results *domain.ResultSet) error {
	reports := []struct {
		name    string
		headers []string
		records [][]string
	}{
		{"stations_per_state.csv",
			[]string{"state", "stations"},
			stationsPerStateRecords(results.StationsPerState)},
		{"stations_per_municipality.csv",
			[]string{"municipality", "state", "stations"},
			municipalityStationRecords(results.StationsPerMunicipality)},
		{"top_municipalities.csv",
			[]string{"municipality", "state", "stations"},
			municipalityStationRecords(results.TopMunicipalities)},
		{"national_average_prices.csv",
			[]string{"fuel", "average_price", "stations"},
			nationalPriceRecords(results.NationalAveragePrices)},
		{"state_prices.csv",
			[]string{"state", "fuel", "average_price", "deviation", "deviation_pct", "stations"},
			statePriceRecords(results.StatePrices)},
		{"top_municipality_prices.csv",
			[]string{"municipality", "state", "fuel", "average_price", "deviation", "deviation_pct", "stations"},
			municipalityPriceRecords(results.TopMunicipalityPrices)},
		{"volume_by_fuel.csv",
			[]string{"fuel", "liters", "share_pct"},
			fuelVolumeRecords(results.VolumeByFuel)},
		{"volume_by_state_fuel.csv",
			[]string{"state", "fuel", "liters", "state_share_pct"},
			stateFuelVolumeRecords(results.VolumeByStateFuel)},
		{"market_value.csv",
			[]string{"fuel", "liters", "average_price", "value_mxn"},
			marketValueRecords(results.MarketValue)},
		{"volume_per_capita.csv",
			[]string{"state", "liters", "population", "liters_per_capita"},
			perCapitaRecords(results.VolumePerCapita)},
		{"volume_per_station.csv",
			[]string{"state", "liters", "stations", "liters_per_station"},
			perStationRecords(results.VolumePerStation)},
		{"historical_volume.csv",
			[]string{"year", "state", "liters", "yoy_pct"},
			historicalRecords(results.HistoricalVolume)},
	}

	for _, report := range reports {
		if err := w.write(ctx, report.name, report.headers, report.records); err != nil {
			return err
		}
	}
	return nil
}

func (w *CSVWriter) write(ctx context.Context, name string, headers []string, records [][]string) error {
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return apperrors.NewStorageError("create output directory", err)
	}
	path := filepath.Join(w.outputDir, name)

	file, err := os.Create(path)
	if err != nil {
		return apperrors.NewStorageError("create report file", err).WithContext("path", path)
	}
	defer file.Close()

	// UTF-8 BOM for Excel
	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return apperrors.NewStorageError("write BOM", err).WithContext("path", path)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(headers); err != nil {
		return apperrors.NewStorageError("write headers", err).WithContext("path", path)
	}
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return apperrors.NewStorageError("write record", err).WithContext("path", path)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperrors.NewStorageError("flush report", err).WithContext("path", path)
	}

	w.logger.InfoContext(ctx, "report written",
		slog.String("file", name),
		slog.Int("rows", len(records)))
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func formatNullFloat(n domain.NullFloat64) string {
	if !n.Valid {
		return ""
	}
	return formatFloat(n.Float64)
}

func stationsPerStateRecords(rows []domain.StateStationCount) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{r.StateName, strconv.Itoa(r.Stations)})
	}
	return out
}

func municipalityStationRecords(rows []domain.MunicipalityStationCount) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{r.MunicipalityName, r.StateName, strconv.Itoa(r.Stations)})
	}
	return out
}

func nationalPriceRecords(rows []domain.FuelAveragePrice) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{r.Fuel.String(), formatNullFloat(r.AveragePrice), strconv.Itoa(r.Stations)})
	}
	return out
}

func statePriceRecords(rows []domain.StatePriceStats) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.StateName, r.Fuel.String(),
			formatNullFloat(r.AveragePrice),
			formatNullFloat(r.Deviation),
			formatNullFloat(r.DeviationPct),
			strconv.Itoa(r.Stations),
		})
	}
	return out
}

func municipalityPriceRecords(rows []domain.MunicipalityPriceStats) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.MunicipalityName, r.StateName, r.Fuel.String(),
			formatNullFloat(r.AveragePrice),
			formatNullFloat(r.Deviation),
			formatNullFloat(r.DeviationPct),
			strconv.Itoa(r.Stations),
		})
	}
	return out
}

func fuelVolumeRecords(rows []domain.FuelVolume) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{r.Fuel.String(), formatFloat(r.Liters), formatFloat(r.SharePct)})
	}
	return out
}

func stateFuelVolumeRecords(rows []domain.StateFuelVolume) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{r.StateName, r.Fuel.String(), formatFloat(r.Liters), formatFloat(r.StateSharePct)})
	}
	return out
}

func marketValueRecords(report domain.MarketValueReport) [][]string {
	out := make([][]string, 0, len(report.PerFuel))
	for _, r := range report.PerFuel {
		out = append(out, []string{
			r.Fuel.String(), formatFloat(r.Liters),
			formatNullFloat(r.AveragePrice),
			formatNullFloat(r.Value),
		})
	}
	return out
}

func perCapitaRecords(rows []domain.StatePerCapita) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.StateName, formatFloat(r.Liters),
			strconv.FormatInt(r.Population, 10),
			formatNullFloat(r.PerCapita),
		})
	}
	return out
}

func perStationRecords(rows []domain.StatePerStation) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.StateName, formatFloat(r.Liters),
			strconv.Itoa(r.Stations),
			formatFloat(r.PerStation),
		})
	}
	return out
}

func historicalRecords(rows []domain.YearVolume) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			strconv.Itoa(r.Year), r.StateName,
			formatFloat(r.Liters),
			formatNullFloat(r.YoYPct),
		})
	}
	return out
}
