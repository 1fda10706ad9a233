package dataprocessing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fuelmx/pkg/contracts/domain"
)

func testRoster(states ...string) *domain.StateRoster {
	populations := make([]domain.StatePopulation, len(states))
	for i, s := range states {
		populations[i] = domain.StatePopulation{StateName: s, Population: 1000, Valid: true}
	}
	return domain.NewStateRoster(populations)
}

func station(id, state, municipality string) domain.Station {
	return domain.Station{PlaceID: id, StateName: state, MunicipalityName: municipality}
}

func TestReconcileStations_Deduplication(t *testing.T) {
	roster := testRoster("Jalisco", "Oaxaca")
	input := []domain.Station{
		{PlaceID: "S1", StateName: "Jalisco", MunicipalityName: "Guadalajara", RegularPrice: domain.Float(22)},
		{PlaceID: "S1", StateName: "Jalisco", MunicipalityName: "Zapopan", RegularPrice: domain.Float(99)},
		station("S2", "Oaxaca", "Oaxaca de Juárez"),
	}

	out, report := ReconcileStations(context.Background(), nil, input, roster)

	assert.Equal(t, 1, report.DuplicatesRemoved)
	require.Len(t, out, 2)

	// First occurrence wins, in input order
	assert.Equal(t, "Guadalajara", out[0].MunicipalityName)
	assert.Equal(t, domain.Float(22), out[0].RegularPrice)
}

func TestReconcileStations_UnknownStateDropped(t *testing.T) {
	roster := testRoster("Jalisco")
	input := []domain.Station{
		station("S1", "Jalisco", "Guadalajara"),
		station("S2", "Atlantis", "Lost City"),
	}

	out, report := ReconcileStations(context.Background(), nil, input, roster)

	require.Len(t, out, 1)
	assert.Equal(t, 1, report.UnknownStateRows)
	assert.Equal(t, []string{"Atlantis"}, report.UnknownStates)
}

func TestReconcileStations_PlaceholdersForEmptyStates(t *testing.T) {
	roster := testRoster("Jalisco", "Colima", "Tlaxcala")
	input := []domain.Station{station("S1", "Jalisco", "Guadalajara")}

	out, report := ReconcileStations(context.Background(), nil, input, roster)

	require.Len(t, out, 3)
	assert.ElementsMatch(t, []string{"Colima", "Tlaxcala"}, report.PlaceholderStates)

	placeholders := 0
	for _, s := range out {
		if s.IsPlaceholder() {
			placeholders++
			assert.Empty(t, s.MunicipalityName)
			assert.False(t, s.RegularPrice.Valid)
		}
	}
	assert.Equal(t, 2, placeholders)
}

func TestReconcileStations_Idempotent(t *testing.T) {
	roster := testRoster("Jalisco", "Colima")
	input := []domain.Station{
		station("S1", "Jalisco", "Guadalajara"),
		station("S1", "Jalisco", "Guadalajara"),
		station("S2", "Jalisco", "Zapopan"),
	}

	first, _ := ReconcileStations(context.Background(), nil, input, roster)
	second, report := ReconcileStations(context.Background(), nil, first, roster)

	assert.Equal(t, first, second)
	assert.Zero(t, report.DuplicatesRemoved)
	assert.Zero(t, report.UnknownStateRows)
}

func TestReconcileStations_EmptyInput(t *testing.T) {
	roster := testRoster("Jalisco", "Colima")

	out, report := ReconcileStations(context.Background(), nil, nil, roster)

	// Every canonical state still appears
	require.Len(t, out, 2)
	assert.Len(t, report.PlaceholderStates, 2)
}
