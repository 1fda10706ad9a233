package analytics

import (
	"sort"

	"fuelmx/pkg/contracts/domain"
)

// StationsPerState counts distinct stations per canonical state, in roster
// order. States with zero stations report 0, never disappear.
func (a *Analyzer) StationsPerState(in Inputs) []domain.StateStationCount {
	counts := make(map[string]map[string]bool, in.Roster.Len())
	for _, s := range in.Stations {
		if s.IsPlaceholder() {
			continue
		}
		if counts[s.StateName] == nil {
			counts[s.StateName] = make(map[string]bool)
		}
		counts[s.StateName][s.PlaceID] = true
	}

	out := make([]domain.StateStationCount, 0, in.Roster.Len())
	for _, stateName := range in.Roster.States() {
		out = append(out, domain.StateStationCount{
			StateName: stateName,
			Stations:  len(counts[stateName]),
		})
	}
	return out
}

// StationsPerMunicipality counts distinct stations per (municipality,
// state) pair, the pair because municipality names are not globally
// unique. Rows are ordered by state then municipality.
func (a *Analyzer) StationsPerMunicipality(in Inputs) []domain.MunicipalityStationCount {
	type munKey struct{ municipality, state string }
	counts := make(map[munKey]map[string]bool)
	for _, s := range in.Stations {
		if s.IsPlaceholder() {
			continue
		}
		key := munKey{s.MunicipalityName, s.StateName}
		if counts[key] == nil {
			counts[key] = make(map[string]bool)
		}
		counts[key][s.PlaceID] = true
	}

	out := make([]domain.MunicipalityStationCount, 0, len(counts))
	for key, ids := range counts {
		out = append(out, domain.MunicipalityStationCount{
			MunicipalityName: key.municipality,
			StateName:        key.state,
			Stations:         len(ids),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StateName != out[j].StateName {
			return out[i].StateName < out[j].StateName
		}
		return out[i].MunicipalityName < out[j].MunicipalityName
	})
	return out
}

// TopMunicipalitiesByStations ranks municipalities by station count
func (a *Analyzer) TopMunicipalitiesByStations(in Inputs) []domain.MunicipalityStationCount {
	rows := a.StationsPerMunicipality(in)
	return TopN(rows, a.opts.TopN,
		func(r domain.MunicipalityStationCount) float64 { return float64(r.Stations) },
		func(r domain.MunicipalityStationCount) string { return r.MunicipalityName + "\x00" + r.StateName },
	)
}

// ProductAvailability reports how many stations sell each fuel type and
// the coverage percentage over all stations.
func (a *Analyzer) ProductAvailability(in Inputs) domain.ProductAvailability {
	total := make(map[string]bool)
	perFuel := make(map[domain.FuelType]map[string]bool, len(domain.AllFuelTypes))
	for _, fuel := range domain.AllFuelTypes {
		perFuel[fuel] = make(map[string]bool)
	}

	for _, s := range in.Stations {
		if s.IsPlaceholder() {
			continue
		}
		total[s.PlaceID] = true
		for _, fuel := range domain.AllFuelTypes {
			if s.Price(fuel).Valid {
				perFuel[fuel][s.PlaceID] = true
			}
		}
	}

	availability := domain.ProductAvailability{TotalStations: len(total)}
	for _, fuel := range domain.AllFuelTypes {
		row := domain.FuelAvailability{Fuel: fuel, Stations: len(perFuel[fuel])}
		if availability.TotalStations > 0 {
			row.CoveragePct = float64(row.Stations) / float64(availability.TotalStations) * 100
		}
		availability.PerFuel = append(availability.PerFuel, row)
	}
	return availability
}

// StationsPerMunicipalityAverage reports, per state, total stations
// divided by the number of municipalities with stations. States with no
// municipalities report "no data", not zero.
func (a *Analyzer) StationsPerMunicipalityAverage(in Inputs) []domain.StateMunicipalityRatio {
	stations := make(map[string]map[string]bool, in.Roster.Len())
	municipalities := make(map[string]map[string]bool, in.Roster.Len())
	for _, s := range in.Stations {
		if s.IsPlaceholder() {
			continue
		}
		if stations[s.StateName] == nil {
			stations[s.StateName] = make(map[string]bool)
			municipalities[s.StateName] = make(map[string]bool)
		}
		stations[s.StateName][s.PlaceID] = true
		municipalities[s.StateName][s.MunicipalityName] = true
	}

	out := make([]domain.StateMunicipalityRatio, 0, in.Roster.Len())
	for _, stateName := range in.Roster.States() {
		row := domain.StateMunicipalityRatio{
			StateName:      stateName,
			Stations:       len(stations[stateName]),
			Municipalities: len(municipalities[stateName]),
		}
		if row.Municipalities > 0 {
			row.Average = domain.Float(float64(row.Stations) / float64(row.Municipalities))
		}
		out = append(out, row)
	}
	return out
}
