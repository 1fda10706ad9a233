package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// NullFloat64 is an explicit optional numeric value. It replaces the
// NaN-propagation of the source data with a type the aggregator and
// formatter can reason about: Valid distinguishes "value is zero" from
// "no data", and the two must never be conflated in a mean.
type NullFloat64 struct {
	Float64 float64
	Valid   bool
}

// Float returns a valid NullFloat64 holding v
func Float(v float64) NullFloat64 {
	return NullFloat64{Float64: v, Valid: true}
}

// NullFloat returns the invalid ("no data") value
func NullFloat() NullFloat64 {
	return NullFloat64{}
}

// ParseNullFloat coerces a raw cell to a numeric value. Thousands-separator
// commas are stripped first; anything non-numeric (including empty cells,
// NaN and infinities) coerces to the invalid value, never to an error.
func ParseNullFloat(raw string) NullFloat64 {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if s == "" {
		return NullFloat64{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return NullFloat64{}
	}
	return NullFloat64{Float64: v, Valid: true}
}

// MarshalJSON renders invalid values as JSON null
func (n NullFloat64) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Float64)
}

// UnmarshalJSON accepts a number or null
func (n *NullFloat64) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = NullFloat64{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = NullFloat64{Float64: v, Valid: true}
	return nil
}
