package analytics

import (
	"sort"

	"fuelmx/pkg/contracts/domain"
)

// MarketValue estimates the retail market value for the reference year:
// per fuel, total liters times the unweighted national average price.
// Fuels whose national average is "no data" contribute no value, and the
// missing contribution stays missing rather than collapsing to zero.
// Per-state values apply the same national averages to state volumes;
// state rows are sorted by value descending.
func (a *Analyzer) MarketValue(in Inputs) domain.MarketValueReport {
	byState := a.referenceYearLiters(in)

	averages := make(map[domain.FuelType]domain.NullFloat64, len(domain.AllFuelTypes))
	for _, fuel := range domain.AllFuelTypes {
		avg, _ := a.NationalAveragePrice(in, fuel)
		averages[fuel] = avg
	}

	report := domain.MarketValueReport{
		USDExchangeRate: a.opts.USDExchangeRate,
		PerFuel:         make([]domain.FuelMarketValue, 0, len(domain.AllFuelTypes)),
		PerState:        make([]domain.StateMarketValue, 0, in.Roster.Len()),
	}

	var total float64
	totalValid := false
	for _, fuel := range domain.AllFuelTypes {
		var liters float64
		for _, byFuel := range byState {
			liters += byFuel[fuel]
		}
		row := domain.FuelMarketValue{
			Fuel:         fuel,
			Liters:       liters,
			AveragePrice: averages[fuel],
		}
		if averages[fuel].Valid {
			row.Value = domain.Float(liters * averages[fuel].Float64)
			total += row.Value.Float64
			totalValid = true
		}
		report.PerFuel = append(report.PerFuel, row)
	}
	if totalValid {
		report.Total = domain.Float(total)
		if total > 0 {
			for i := range report.PerFuel {
				if report.PerFuel[i].Value.Valid {
					report.PerFuel[i].SharePct = domain.Float(report.PerFuel[i].Value.Float64 / total * 100)
				}
			}
		}
	}

	for _, stateName := range in.Roster.States() {
		row := domain.StateMarketValue{StateName: stateName}
		var value float64
		valid := false
		for fuel, liters := range byState[stateName] {
			if avg := averages[fuel]; avg.Valid {
				value += liters * avg.Float64
				valid = true
			}
		}
		if valid {
			row.Value = domain.Float(value)
		}
		report.PerState = append(report.PerState, row)
	}
	sort.SliceStable(report.PerState, func(i, j int) bool {
		return report.PerState[i].Value.Float64 > report.PerState[j].Value.Float64
	})

	return report
}
