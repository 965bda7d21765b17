package dataset

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Value is a numeric cell that may be missing.
type Value struct {
	Float float64
	Valid bool
}

// Missing is the zero Value.
var Missing = Value{}

// Float returns a present Value. NaN and ±Inf are treated as missing.
func Float(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Missing
	}
	return Value{Float: f, Valid: true}
}

func (v Value) String() string {
	if !v.Valid {
		return "NaN"
	}
	return strconv.FormatFloat(v.Float, 'f', -1, 64)
}

// MarshalJSON encodes a missing value as null so charting layers break the line there.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.Float)
}

// UnmarshalJSON accepts a number or null.
func (v *Value) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*v = Missing
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*v = Float(f)
	return nil
}

var missingTokens = map[string]bool{
	"":     true,
	"nan":  true,
	"na":   true,
	"n/a":  true,
	"null": true,
	"none": true,
	"-":    true,
}

// ParseValue parses a numeric cell. Missing markers yield Missing with ok == true; a
// non-numeric cell, including infinities, yields Missing with ok == false.
func ParseValue(s string) (v Value, ok bool) {
	s = strings.TrimSpace(s)
	if missingTokens[strings.ToLower(s)] {
		return Missing, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		return Missing, false
	}
	return Float(f), true
}
