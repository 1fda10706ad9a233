package analytics

import (
	"sort"

	"fuelmx/pkg/contracts/domain"
)

// referenceYearLiters sums valid liters per (state, fuel) for the
// reference year only
func (a *Analyzer) referenceYearLiters(in Inputs) map[string]map[domain.FuelType]float64 {
	out := make(map[string]map[domain.FuelType]float64, in.Roster.Len())
	for _, v := range in.Volumes {
		if v.Year != a.opts.ReferenceYear || !v.Liters.Valid {
			continue
		}
		byFuel, ok := out[v.StateName]
		if !ok {
			byFuel = make(map[domain.FuelType]float64, len(domain.AllFuelTypes))
			out[v.StateName] = byFuel
		}
		byFuel[v.Fuel] += v.Liters.Float64
	}
	return out
}

// VolumeByFuel totals reference-year liters per fuel nationwide, with each
// fuel's share of the national total. Rows are sorted by volume descending.
func (a *Analyzer) VolumeByFuel(in Inputs) []domain.FuelVolume {
	totals := make(map[domain.FuelType]float64, len(domain.AllFuelTypes))
	var national float64
	for _, byFuel := range a.referenceYearLiters(in) {
		for fuel, liters := range byFuel {
			totals[fuel] += liters
			national += liters
		}
	}

	out := make([]domain.FuelVolume, 0, len(domain.AllFuelTypes))
	for _, fuel := range domain.AllFuelTypes {
		row := domain.FuelVolume{Fuel: fuel, Liters: totals[fuel]}
		if national > 0 {
			row.SharePct = totals[fuel] / national * 100
		}
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Liters > out[j].Liters })
	return out
}

// VolumeByStateFuel reports reference-year liters per (state, fuel) over the
// full roster-by-fuel grid, zero-filling combinations with no sales.
// StateSharePct is each fuel's share of its state's total.
func (a *Analyzer) VolumeByStateFuel(in Inputs) []domain.StateFuelVolume {
	byState := a.referenceYearLiters(in)

	out := make([]domain.StateFuelVolume, 0, in.Roster.Len()*len(domain.AllFuelTypes))
	for _, stateName := range in.Roster.States() {
		var stateTotal float64
		for _, liters := range byState[stateName] {
			stateTotal += liters
		}
		for _, fuel := range domain.AllFuelTypes {
			row := domain.StateFuelVolume{
				StateName: stateName,
				Fuel:      fuel,
				Liters:    byState[stateName][fuel],
			}
			if stateTotal > 0 {
				row.StateSharePct = row.Liters / stateTotal * 100
			}
			out = append(out, row)
		}
	}
	return out
}

// HistoricalVolume builds the year-over-year volume series: one national
// series followed by one series per roster state, each in ascending year
// order with YoY growth against the previous year present in the series.
// Years after the reference year are excluded. The first year of each
// series has no prior point, so its growth is "no data".
func (a *Analyzer) HistoricalVolume(in Inputs) []domain.YearVolume {
	type yearState struct {
		year  int
		state string
	}
	totals := make(map[yearState]float64)
	// National totals sum every record, including states absent from the
	// roster, so they agree with the nationwide fuel totals.
	national := make(map[int]float64)
	years := make(map[int]struct{})
	for _, v := range in.Volumes {
		if v.Year > a.opts.ReferenceYear || !v.Liters.Valid {
			continue
		}
		totals[yearState{v.Year, v.StateName}] += v.Liters.Float64
		national[v.Year] += v.Liters.Float64
		years[v.Year] = struct{}{}
	}

	sortedYears := make([]int, 0, len(years))
	for year := range years {
		sortedYears = append(sortedYears, year)
	}
	sort.Ints(sortedYears)

	series := func(stateName string, liters func(year int) float64) []domain.YearVolume {
		rows := make([]domain.YearVolume, 0, len(sortedYears))
		prev := domain.NullFloat()
		for _, year := range sortedYears {
			row := domain.YearVolume{Year: year, StateName: stateName, Liters: liters(year)}
			if prev.Valid && prev.Float64 > 0 {
				row.YoYPct = domain.Float((row.Liters - prev.Float64) / prev.Float64 * 100)
			}
			prev = domain.Float(row.Liters)
			rows = append(rows, row)
		}
		return rows
	}

	out := series(nationalSeriesName, func(year int) float64 {
		return national[year]
	})
	for _, stateName := range in.Roster.States() {
		name := stateName
		out = append(out, series(name, func(year int) float64 {
			return totals[yearState{year, name}]
		})...)
	}
	return out
}

// nationalSeriesName labels the nationwide row group in historical series
const nationalSeriesName = "National Total"

// VolumePerCapita reports reference-year liters per inhabitant per state.
// Per-capita is "no data" when the state's population is zero or missing;
// division never produces an infinity.
func (a *Analyzer) VolumePerCapita(in Inputs) []domain.StatePerCapita {
	byState := a.referenceYearLiters(in)
	populations := make(map[string]domain.StatePopulation, len(in.Populations))
	for _, p := range in.Populations {
		populations[p.StateName] = p
	}

	out := make([]domain.StatePerCapita, 0, in.Roster.Len())
	for _, stateName := range in.Roster.States() {
		var liters float64
		for _, v := range byState[stateName] {
			liters += v
		}
		row := domain.StatePerCapita{StateName: stateName, Liters: liters}
		if p, ok := populations[stateName]; ok && p.Valid && p.Population > 0 {
			row.Population = p.Population
			row.PerCapita = domain.Float(liters / float64(p.Population))
		}
		out = append(out, row)
	}
	return out
}

// VolumePerStation reports reference-year liters per station per state.
// A state with zero stations reports 0, not "no data": no stations means
// no retail channel, which is a defined fact.
func (a *Analyzer) VolumePerStation(in Inputs) []domain.StatePerStation {
	byState := a.referenceYearLiters(in)

	stations := make(map[string]int, in.Roster.Len())
	seen := make(map[string]struct{}, len(in.Stations))
	for _, s := range in.Stations {
		if s.IsPlaceholder() {
			continue
		}
		if _, dup := seen[s.PlaceID]; dup {
			continue
		}
		seen[s.PlaceID] = struct{}{}
		stations[s.StateName]++
	}

	out := make([]domain.StatePerStation, 0, in.Roster.Len())
	for _, stateName := range in.Roster.States() {
		var liters float64
		for _, v := range byState[stateName] {
			liters += v
		}
		row := domain.StatePerStation{
			StateName: stateName,
			Liters:    liters,
			Stations:  stations[stateName],
		}
		if row.Stations > 0 {
			row.PerStation = liters / float64(row.Stations)
		}
		out = append(out, row)
	}
	return out
}
