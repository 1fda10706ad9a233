package exporter

import (
	"fuelmx/pkg/contracts/domain"
)

// Decorate fills every Formatted* companion field of the result set in
// place. Numeric fields keep full precision; the formatted strings are what
// reports and the API surface to readers. Missing values render as N/A.
func Decorate(results *domain.ResultSet) {
	for i := range results.StationsPerState {
		r := &results.StationsPerState[i]
		r.FormattedStations = FormatCount(int64(r.Stations))
	}
	for i := range results.StationsPerMunicipality {
		r := &results.StationsPerMunicipality[i]
		r.FormattedStations = FormatCount(int64(r.Stations))
	}
	for i := range results.TopMunicipalities {
		r := &results.TopMunicipalities[i]
		r.FormattedStations = FormatCount(int64(r.Stations))
	}
	for i := range results.Availability.PerFuel {
		r := &results.Availability.PerFuel[i]
		r.Formatted = FormatCount(int64(r.Stations)) + " stations (" + FormatPercent(r.CoveragePct) + ")"
	}

	decoratePrices(results.NationalAveragePrices)
	decorateStatePrices(results.StatePrices)
	decorateMunicipalityPrices(results.MunicipalityPrices)
	decorateMunicipalityPrices(results.TopMunicipalityPrices)
	decorateMunicipalityPrices(results.TopMunicipalityDeviations)

	for i := range results.VolumeByFuel {
		r := &results.VolumeByFuel[i]
		r.FormattedVolume = FormatVolume(r.Liters)
	}
	for i := range results.VolumeByStateFuel {
		r := &results.VolumeByStateFuel[i]
		r.FormattedVolume = FormatVolume(r.Liters)
	}
	for i := range results.HistoricalVolume {
		r := &results.HistoricalVolume[i]
		r.FormattedVolume = FormatVolume(r.Liters)
	}

	for i := range results.VolumePerCapita {
		r := &results.VolumePerCapita[i]
		if r.PerCapita.Valid {
			r.FormattedPerCapita = FormatRatio(r.PerCapita.Float64) + " liters/person"
		} else {
			r.FormattedPerCapita = noData
		}
	}
	for i := range results.VolumePerStation {
		r := &results.VolumePerStation[i]
		r.FormattedPerStation = FormatVolume(r.PerStation)
	}

	decorateMarketValue(&results.MarketValue)
}

func decoratePrices(rows []domain.FuelAveragePrice) {
	for i := range rows {
		if rows[i].AveragePrice.Valid {
			rows[i].FormattedPrice = FormatPrice(rows[i].AveragePrice.Float64)
		} else {
			rows[i].FormattedPrice = noData
		}
	}
}

func decorateStatePrices(rows []domain.StatePriceStats) {
	for i := range rows {
		r := &rows[i]
		r.FormattedPrice, r.FormattedDeviation, r.FormattedPct = formatPriceStats(r.AveragePrice, r.Deviation, r.DeviationPct)
	}
}

func decorateMunicipalityPrices(rows []domain.MunicipalityPriceStats) {
	for i := range rows {
		r := &rows[i]
		r.FormattedPrice, r.FormattedDeviation, r.FormattedPct = formatPriceStats(r.AveragePrice, r.Deviation, r.DeviationPct)
	}
}

func formatPriceStats(avg, deviation, pct domain.NullFloat64) (string, string, string) {
	price, dev, devPct := noData, noData, noData
	if avg.Valid {
		price = FormatPrice(avg.Float64)
	}
	if deviation.Valid {
		dev = FormatSignedPrice(deviation.Float64)
	}
	if pct.Valid {
		devPct = FormatSignedPercent(pct.Float64)
	}
	return price, dev, devPct
}

func decorateMarketValue(report *domain.MarketValueReport) {
	if report.Total.Valid {
		report.FormattedTotal = FormatCurrencyWithUSD(report.Total.Float64, report.USDExchangeRate)
	} else {
		report.FormattedTotal = noData
	}
	for i := range report.PerFuel {
		r := &report.PerFuel[i]
		r.FormattedVolume = FormatVolume(r.Liters)
		if r.AveragePrice.Valid {
			r.FormattedPrice = FormatPrice(r.AveragePrice.Float64)
		} else {
			r.FormattedPrice = noData
		}
		if r.Value.Valid {
			r.FormattedValue = FormatCurrencyWithUSD(r.Value.Float64, report.USDExchangeRate)
		} else {
			r.FormattedValue = noData
		}
	}
	for i := range report.PerState {
		r := &report.PerState[i]
		if r.Value.Valid {
			r.FormattedValue = FormatCurrency(r.Value.Float64, true)
		} else {
			r.FormattedValue = noData
		}
	}
}
