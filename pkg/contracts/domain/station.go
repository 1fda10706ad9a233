package domain

// Station represents a retail fuel outlet. A station is uniquely identified
// by its place ID and belongs to exactly one state and one municipality.
// A missing price means the station does not sell that fuel; it is excluded
// from that fuel's statistics, never treated as zero.
type Station struct {
	PlaceID          string      `json:"place_id"`
	StateName        string      `json:"state_name"`
	MunicipalityName string      `json:"municipality_name"`
	RegularPrice     NullFloat64 `json:"regular_price"`
	PremiumPrice     NullFloat64 `json:"premium_price"`
	DieselPrice      NullFloat64 `json:"diesel_price"`
}

// Price returns the station's price for the given fuel type
func (s *Station) Price(fuel FuelType) NullFloat64 {
	switch fuel {
	case FuelRegular:
		return s.RegularPrice
	case FuelPremium:
		return s.PremiumPrice
	case FuelDiesel:
		return s.DieselPrice
	}
	return NullFloat64{}
}

// SetPrice sets the station's price for the given fuel type
func (s *Station) SetPrice(fuel FuelType, price NullFloat64) {
	switch fuel {
	case FuelRegular:
		s.RegularPrice = price
	case FuelPremium:
		s.PremiumPrice = price
	case FuelDiesel:
		s.DieselPrice = price
	}
}

// IsPlaceholder reports whether the station is a roster placeholder for a
// state with zero stations. Placeholders keep every canonical state present
// in state-level tables; they carry no station identity and no prices.
func (s *Station) IsPlaceholder() bool {
	return s.PlaceID == ""
}
