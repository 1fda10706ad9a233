package dataprocessing

import (
	"context"
	"log/slog"

	"fuelmx/pkg/contracts/domain"
)

// NormalizeReport records what volume normalization changed
type NormalizeReport struct {
	InputRows           int      `json:"input_rows"`
	UnmappedRows        int      `json:"unmapped_rows"`
	UnmappedSubProducts []string `json:"unmapped_sub_products,omitempty"`
	InvalidLiters       int      `json:"invalid_liters"`
}

// NormalizeVolumes collapses raw sub-product labels into the three fuel
// types. Rows with sub-products outside the fixed mapping are dropped and
// reported. Liters stay as loaded: invalid cells remain missing and are
// excluded from sums later, never treated as zero. No outlier filtering is
// applied to volumes.
func NormalizeVolumes(ctx context.Context, logger *slog.Logger, records []domain.VolumeRecord) ([]domain.VolumeRecord, NormalizeReport) {
	if logger == nil {
		logger = slog.Default()
	}

	report := NormalizeReport{InputRows: len(records)}
	unmapped := make(map[string]bool)

	out := make([]domain.VolumeRecord, 0, len(records))
	for _, record := range records {
		fuel, ok := domain.FuelTypeFromSubProduct(record.SubProduct)
		if !ok {
			report.UnmappedRows++
			if !unmapped[record.SubProduct] {
				unmapped[record.SubProduct] = true
				report.UnmappedSubProducts = append(report.UnmappedSubProducts, record.SubProduct)
			}
			continue
		}
		if !record.Liters.Valid {
			report.InvalidLiters++
		}
		record.Fuel = fuel
		out = append(out, record)
	}

	if report.UnmappedRows > 0 {
		logger.WarnContext(ctx, "dropped volume rows with unmapped sub-products",
			slog.Int("rows", report.UnmappedRows),
			slog.Any("sub_products", report.UnmappedSubProducts))
	}
	logger.InfoContext(ctx, "normalized volume records",
		slog.Int("records", len(out)),
		slog.Int("invalid_liters", report.InvalidLiters))

	return out, report
}
