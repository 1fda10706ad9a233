package dataprocessing

import (
	"context"
	"log/slog"

	"fuelmx/pkg/contracts/domain"
)

// ReconcileReport records what station reconciliation changed
type ReconcileReport struct {
	InputRows         int      `json:"input_rows"`
	DuplicatesRemoved int      `json:"duplicates_removed"`
	UnknownStateRows  int      `json:"unknown_state_rows"`
	UnknownStates     []string `json:"unknown_states,omitempty"`
	PlaceholderStates []string `json:"placeholder_states,omitempty"`
}

// ReconcileStations deduplicates station rows and completes them against
// the canonical state roster so downstream state-level aggregates never
// silently drop a state.
//
// Deduplication keeps the first occurrence per place ID, in input order.
// Stations referencing a state outside the roster are dropped and reported
// as a data-quality issue, not a failure. States with no stations get a
// single placeholder row with all fields absent. The function is
// idempotent: placeholder rows in the input are discarded and re-derived.
func ReconcileStations(ctx context.Context, logger *slog.Logger, stations []domain.Station, roster *domain.StateRoster) ([]domain.Station, ReconcileReport) {
	if logger == nil {
		logger = slog.Default()
	}

	report := ReconcileReport{InputRows: len(stations)}

	seen := make(map[string]bool, len(stations))
	unknownStates := make(map[string]bool)
	statesCovered := make(map[string]bool, roster.Len())

	out := make([]domain.Station, 0, len(stations))
	for _, station := range stations {
		if station.IsPlaceholder() {
			continue
		}
		if seen[station.PlaceID] {
			report.DuplicatesRemoved++
			continue
		}
		seen[station.PlaceID] = true

		if !roster.Contains(station.StateName) {
			report.UnknownStateRows++
			if !unknownStates[station.StateName] {
				unknownStates[station.StateName] = true
				report.UnknownStates = append(report.UnknownStates, station.StateName)
			}
			continue
		}

		statesCovered[station.StateName] = true
		out = append(out, station)
	}

	// Placeholder rows keep zero-station states in every state-level table
	for _, stateName := range roster.States() {
		if !statesCovered[stateName] {
			report.PlaceholderStates = append(report.PlaceholderStates, stateName)
			out = append(out, domain.Station{StateName: stateName})
		}
	}

	if report.DuplicatesRemoved > 0 {
		logger.InfoContext(ctx, "removed duplicate station rows",
			slog.Int("duplicates", report.DuplicatesRemoved))
	}
	if report.UnknownStateRows > 0 {
		logger.WarnContext(ctx, "dropped stations referencing unknown states",
			slog.Int("rows", report.UnknownStateRows),
			slog.Any("states", report.UnknownStates))
	}
	logger.InfoContext(ctx, "reconciled stations against state roster",
		slog.Int("stations", len(out)-len(report.PlaceholderStates)),
		slog.Int("placeholder_states", len(report.PlaceholderStates)))

	return out, report
}
