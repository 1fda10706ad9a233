package domain

import "time"

// ResultSet is the output contract of the analytics pipeline: every computed
// result table keyed by analysis name, plus formatted-string companions
// filled in by the exporter. It is produced once per run, treated as
// immutable afterward, and serializes to the results artifact that can
// short-circuit the pipeline on later runs.
type ResultSet struct {
	GeneratedAt   time.Time `json:"generated_at"`
	ReferenceYear int       `json:"reference_year"`
	Format        string    `json:"format"`

	StationsPerState               []StateStationCount        `json:"stations_per_state"`
	StationsPerMunicipality        []MunicipalityStationCount `json:"stations_per_municipality"`
	TopMunicipalities              []MunicipalityStationCount `json:"top_municipalities"`
	Availability                   ProductAvailability        `json:"product_availability"`
	StationsPerMunicipalityAverage []StateMunicipalityRatio   `json:"stations_per_municipality_average"`

	NationalAveragePrices     []FuelAveragePrice       `json:"national_average_prices"`
	StatePrices               []StatePriceStats        `json:"state_prices"`
	MunicipalityPrices        []MunicipalityPriceStats `json:"municipality_prices"`
	TopMunicipalityPrices     []MunicipalityPriceStats `json:"top_municipality_prices"`
	TopMunicipalityDeviations []MunicipalityPriceStats `json:"top_municipality_deviations"`

	VolumeByFuel      []FuelVolume      `json:"volume_by_fuel"`
	VolumeByStateFuel []StateFuelVolume `json:"volume_by_state_fuel"`
	MarketValue       MarketValueReport `json:"market_value"`
	VolumePerCapita   []StatePerCapita  `json:"volume_per_capita"`
	VolumePerStation  []StatePerStation `json:"volume_per_station"`
	HistoricalVolume  []YearVolume      `json:"historical_volume"`
}

// ResultSetFormat identifies the artifact schema version
const ResultSetFormat = "fuelmx_results_v1"

// StateStationCount is one row of a state-level station count table.
// Counting contexts zero-fill states with no stations.
type StateStationCount struct {
	StateName         string `json:"state_name"`
	Stations          int    `json:"stations"`
	FormattedStations string `json:"formatted_stations,omitempty"`
}

// MunicipalityStationCount is keyed by (municipality, state) because
// municipality names are not globally unique.
type MunicipalityStationCount struct {
	MunicipalityName  string `json:"municipality_name"`
	StateName         string `json:"state_name"`
	Stations          int    `json:"stations"`
	FormattedStations string `json:"formatted_stations,omitempty"`
}

// FuelAvailability counts stations selling one fuel type nationwide
type FuelAvailability struct {
	Fuel        FuelType `json:"fuel"`
	Stations    int      `json:"stations"`
	CoveragePct float64  `json:"coverage_pct"`
	Formatted   string   `json:"formatted,omitempty"`
}

// ProductAvailability summarizes fuel coverage across all stations
type ProductAvailability struct {
	TotalStations int                `json:"total_stations"`
	PerFuel       []FuelAvailability `json:"per_fuel"`
}

// StateMunicipalityRatio reports stations per municipality for one state
type StateMunicipalityRatio struct {
	StateName      string      `json:"state_name"`
	Stations       int         `json:"stations"`
	Municipalities int         `json:"municipalities"`
	Average        NullFloat64 `json:"average"`
}

// FuelAveragePrice is the unweighted national mean over all stations
// selling the fuel. Invalid when no station sells it.
type FuelAveragePrice struct {
	Fuel           FuelType    `json:"fuel"`
	AveragePrice   NullFloat64 `json:"average_price"`
	Stations       int         `json:"stations"`
	FormattedPrice string      `json:"formatted_price,omitempty"`
}

// StatePriceStats holds a state's average price for one fuel and its
// deviation from the national average. Averages over zero eligible
// stations are invalid ("no data"), never zero.
type StatePriceStats struct {
	StateName          string      `json:"state_name"`
	Fuel               FuelType    `json:"fuel"`
	AveragePrice       NullFloat64 `json:"average_price"`
	Deviation          NullFloat64 `json:"deviation"`
	DeviationPct       NullFloat64 `json:"deviation_pct"`
	Stations           int         `json:"stations"`
	FormattedPrice     string      `json:"formatted_price,omitempty"`
	FormattedDeviation string      `json:"formatted_deviation,omitempty"`
	FormattedPct       string      `json:"formatted_pct,omitempty"`
}

// MunicipalityPriceStats is the municipality-level analogue of StatePriceStats
type MunicipalityPriceStats struct {
	MunicipalityName   string      `json:"municipality_name"`
	StateName          string      `json:"state_name"`
	Fuel               FuelType    `json:"fuel"`
	AveragePrice       NullFloat64 `json:"average_price"`
	Deviation          NullFloat64 `json:"deviation"`
	DeviationPct       NullFloat64 `json:"deviation_pct"`
	Stations           int         `json:"stations"`
	FormattedPrice     string      `json:"formatted_price,omitempty"`
	FormattedDeviation string      `json:"formatted_deviation,omitempty"`
	FormattedPct       string      `json:"formatted_pct,omitempty"`
}

// FuelVolume is total liters sold of one fuel in the reference year
type FuelVolume struct {
	Fuel            FuelType `json:"fuel"`
	Liters          float64  `json:"liters"`
	SharePct        float64  `json:"share_pct"`
	FormattedVolume string   `json:"formatted_volume,omitempty"`
}

// StateFuelVolume is liters sold of one fuel in one state, with the fuel's
// share of the state total
type StateFuelVolume struct {
	StateName       string   `json:"state_name"`
	Fuel            FuelType `json:"fuel"`
	Liters          float64  `json:"liters"`
	StateSharePct   float64  `json:"state_share_pct"`
	FormattedVolume string   `json:"formatted_volume,omitempty"`
}

// FuelMarketValue estimates one fuel's market value: reference-year volume
// times the national average price
type FuelMarketValue struct {
	Fuel            FuelType    `json:"fuel"`
	Liters          float64     `json:"liters"`
	AveragePrice    NullFloat64 `json:"average_price"`
	Value           NullFloat64 `json:"value"`
	SharePct        NullFloat64 `json:"share_pct"`
	FormattedVolume string      `json:"formatted_volume,omitempty"`
	FormattedPrice  string      `json:"formatted_price,omitempty"`
	FormattedValue  string      `json:"formatted_value,omitempty"`
}

// MarketValueReport is the market-value estimate for the reference year.
// USDExchangeRate records the MXN-per-USD rate used; it is an approximation
// taken from configuration, not inferred precision.
type MarketValueReport struct {
	Total           NullFloat64        `json:"total"`
	USDExchangeRate float64            `json:"usd_exchange_rate"`
	PerFuel         []FuelMarketValue  `json:"per_fuel"`
	PerState        []StateMarketValue `json:"per_state"`
	FormattedTotal  string             `json:"formatted_total,omitempty"`
}

// StateMarketValue is one state's estimated market value across fuels
type StateMarketValue struct {
	StateName      string      `json:"state_name"`
	Value          NullFloat64 `json:"value"`
	FormattedValue string      `json:"formatted_value,omitempty"`
}

// StatePerCapita reports liters sold per inhabitant. PerCapita is invalid
// when the population is zero or missing, never infinite.
type StatePerCapita struct {
	StateName          string      `json:"state_name"`
	Liters             float64     `json:"liters"`
	Population         int64       `json:"population"`
	PerCapita          NullFloat64 `json:"per_capita"`
	FormattedPerCapita string      `json:"formatted_per_capita,omitempty"`
}

// StatePerStation reports liters sold per station. Unlike per-capita, zero
// stations yields a defined value of 0.
type StatePerStation struct {
	StateName           string  `json:"state_name"`
	Liters              float64 `json:"liters"`
	Stations            int     `json:"stations"`
	PerStation          float64 `json:"per_station"`
	FormattedPerStation string  `json:"formatted_per_station,omitempty"`
}

// YearVolume is one point of the historical volume series. StateName is
// "National Total" for the nationwide series. YoYPct is invalid for the
// first year of a series.
type YearVolume struct {
	Year            int         `json:"year"`
	StateName       string      `json:"state_name"`
	Liters          float64     `json:"liters"`
	YoYPct          NullFloat64 `json:"yoy_pct"`
	FormattedVolume string      `json:"formatted_volume,omitempty"`
}
