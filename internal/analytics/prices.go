package analytics

import (
	"math"
	"sort"

	"fuelmx/pkg/contracts/domain"
)

// NationalAveragePrice is the unweighted mean price of one fuel over all
// stations selling it nationwide — a mean over stations, never a mean of
// per-state means. With zero eligible stations the average is "no data",
// not zero.
func (a *Analyzer) NationalAveragePrice(in Inputs, fuel domain.FuelType) (domain.NullFloat64, int) {
	var sum float64
	var count int
	for _, s := range in.Stations {
		if price := s.Price(fuel); price.Valid {
			sum += price.Float64
			count++
		}
	}
	if count == 0 {
		return domain.NullFloat(), 0
	}
	return domain.Float(sum / float64(count)), count
}

// NationalAveragePrices computes the national average for every fuel type
func (a *Analyzer) NationalAveragePrices(in Inputs) []domain.FuelAveragePrice {
	out := make([]domain.FuelAveragePrice, 0, len(domain.AllFuelTypes))
	for _, fuel := range domain.AllFuelTypes {
		avg, count := a.NationalAveragePrice(in, fuel)
		out = append(out, domain.FuelAveragePrice{
			Fuel:         fuel,
			AveragePrice: avg,
			Stations:     count,
		})
	}
	return out
}

// StatePriceStats computes, per canonical state and fuel, the average
// price and its deviation from the national average. Groups with zero
// eligible stations report "no data" for the average and deviations —
// an average of zero and a missing average are different facts.
// Rows are grouped by fuel in canonical order, states in roster order.
func (a *Analyzer) StatePriceStats(in Inputs) []domain.StatePriceStats {
	out := make([]domain.StatePriceStats, 0, in.Roster.Len()*len(domain.AllFuelTypes))

	for _, fuel := range domain.AllFuelTypes {
		national, _ := a.NationalAveragePrice(in, fuel)

		sums := make(map[string]float64, in.Roster.Len())
		counts := make(map[string]int, in.Roster.Len())
		for _, s := range in.Stations {
			if price := s.Price(fuel); price.Valid {
				sums[s.StateName] += price.Float64
				counts[s.StateName]++
			}
		}

		for _, stateName := range in.Roster.States() {
			row := domain.StatePriceStats{
				StateName: stateName,
				Fuel:      fuel,
				Stations:  counts[stateName],
			}
			if counts[stateName] > 0 {
				avg := sums[stateName] / float64(counts[stateName])
				row.AveragePrice = domain.Float(avg)
				row.Deviation, row.DeviationPct = deviationFrom(avg, national)
			}
			out = append(out, row)
		}
	}
	return out
}

// MunicipalityPriceStats is the municipality-level analogue of
// StatePriceStats, keyed by (municipality, state). Only pairs with at
// least one eligible station appear; the canonical completeness guarantee
// is a state-level contract.
func (a *Analyzer) MunicipalityPriceStats(in Inputs) []domain.MunicipalityPriceStats {
	type munKey struct{ municipality, state string }

	out := make([]domain.MunicipalityPriceStats, 0)
	for _, fuel := range domain.AllFuelTypes {
		national, _ := a.NationalAveragePrice(in, fuel)

		sums := make(map[munKey]float64)
		counts := make(map[munKey]int)
		for _, s := range in.Stations {
			if price := s.Price(fuel); price.Valid {
				key := munKey{s.MunicipalityName, s.StateName}
				sums[key] += price.Float64
				counts[key]++
			}
		}

		rows := make([]domain.MunicipalityPriceStats, 0, len(counts))
		for key, count := range counts {
			avg := sums[key] / float64(count)
			row := domain.MunicipalityPriceStats{
				MunicipalityName: key.municipality,
				StateName:        key.state,
				Fuel:             fuel,
				AveragePrice:     domain.Float(avg),
				Stations:         count,
			}
			row.Deviation, row.DeviationPct = deviationFrom(avg, national)
			rows = append(rows, row)
		}
		sort.Slice(rows, func(i, j int) bool {
			if rows[i].StateName != rows[j].StateName {
				return rows[i].StateName < rows[j].StateName
			}
			return rows[i].MunicipalityName < rows[j].MunicipalityName
		})
		out = append(out, rows...)
	}
	return out
}

// TopMunicipalityPrices ranks municipalities by average price, per fuel
func (a *Analyzer) TopMunicipalityPrices(in Inputs) []domain.MunicipalityPriceStats {
	return a.topMunicipalityStats(in, func(r domain.MunicipalityPriceStats) float64 {
		return r.AveragePrice.Float64
	})
}

// TopMunicipalityDeviations ranks municipalities by absolute deviation
// from the national average, per fuel
func (a *Analyzer) TopMunicipalityDeviations(in Inputs) []domain.MunicipalityPriceStats {
	return a.topMunicipalityStats(in, func(r domain.MunicipalityPriceStats) float64 {
		return math.Abs(r.Deviation.Float64)
	})
}

func (a *Analyzer) topMunicipalityStats(in Inputs, metric func(domain.MunicipalityPriceStats) float64) []domain.MunicipalityPriceStats {
	all := a.MunicipalityPriceStats(in)

	out := make([]domain.MunicipalityPriceStats, 0, a.opts.TopN*len(domain.AllFuelTypes))
	for _, fuel := range domain.AllFuelTypes {
		rows := make([]domain.MunicipalityPriceStats, 0)
		for _, r := range all {
			if r.Fuel == fuel && r.AveragePrice.Valid {
				rows = append(rows, r)
			}
		}
		out = append(out, TopN(rows, a.opts.TopN, metric,
			func(r domain.MunicipalityPriceStats) string {
				return r.MunicipalityName + "\x00" + r.StateName
			})...)
	}
	return out
}

// deviationFrom computes groupAverage minus the national average, and the
// same as a percentage of the national average. Both are "no data" when
// the national average is (zero eligible stations nationwide would make
// the group average missing too).
func deviationFrom(groupAvg float64, national domain.NullFloat64) (domain.NullFloat64, domain.NullFloat64) {
	if !national.Valid {
		return domain.NullFloat(), domain.NullFloat()
	}
	deviation := groupAvg - national.Float64
	if national.Float64 == 0 {
		return domain.Float(deviation), domain.NullFloat()
	}
	return domain.Float(deviation), domain.Float(deviation / national.Float64 * 100)
}
