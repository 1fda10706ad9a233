package domain

// VolumeRecord is one row of the CRE sales-volume dataset: liters sold of a
// fuel sub-product in a state during a year. Liters is invalid when the raw
// cell could not be coerced to a number.
type VolumeRecord struct {
	Year       int         `json:"year"`
	StateName  string      `json:"state_name"`
	SubProduct string      `json:"sub_product"`
	Fuel       FuelType    `json:"fuel"`
	Liters     NullFloat64 `json:"liters"`
}
