package domain

// FuelType represents one of the three retail fuel categories
type FuelType string

const (
	FuelRegular FuelType = "Regular"
	FuelPremium FuelType = "Premium"
	FuelDiesel  FuelType = "Diesel"
)

// AllFuelTypes lists the fuel types in canonical display order
var AllFuelTypes = []FuelType{FuelRegular, FuelPremium, FuelDiesel}

// subProductMap collapses the raw CRE sub-product labels into fuel types.
// The diesel variants all map to a single Diesel category.
var subProductMap = map[string]FuelType{
	"Regular":                FuelRegular,
	"Premium":                FuelPremium,
	"Diesel":                 FuelDiesel,
	"Diésel Automotriz":      FuelDiesel,
	"DUBA":                   FuelDiesel,
	"Diésel Agricola-Marino": FuelDiesel,
}

// FuelTypeFromSubProduct maps a raw sub-product label to its fuel type.
// Returns false for labels outside the fixed mapping.
func FuelTypeFromSubProduct(subProduct string) (FuelType, bool) {
	fuel, ok := subProductMap[subProduct]
	return fuel, ok
}

// IsValid reports whether the fuel type is one of the three categories
func (f FuelType) IsValid() bool {
	switch f {
	case FuelRegular, FuelPremium, FuelDiesel:
		return true
	}
	return false
}

// String implements fmt.Stringer
func (f FuelType) String() string {
	return string(f)
}
