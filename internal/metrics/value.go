package metrics

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// NotAvailable is how an unavailable value is rendered.
const NotAvailable = "n/a"

// Value is a single aggregate result. It is either a number or
// unavailable, which lets one malformed cell be shown as "n/a" without
// failing the rest of a comparison table.
type Value struct {
	number    float64
	available bool
}

// Numeric wraps a computed number.
func Numeric(v float64) Value {
	if !isNumeric(v) {
		return Unavailable()
	}
	return Value{number: v, available: true}
}

// Unavailable is the value of an aggregate that could not be computed.
func Unavailable() Value {
	return Value{}
}

// Float returns the number and whether it is available.
func (v Value) Float() (float64, bool) {
	return v.number, v.available
}

// IsAvailable reports whether v holds a number.
func (v Value) IsAvailable() bool {
	return v.available
}

// String formats the number in its shortest form, or "n/a".
func (v Value) String() string {
	if !v.available {
		return NotAvailable
	}
	return strconv.FormatFloat(v.number, 'f', -1, 64)
}

// MarshalJSON encodes a number, or the string "n/a".
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.available {
		return json.Marshal(NotAvailable)
	}
	return json.Marshal(v.number)
}

// UnmarshalJSON accepts a number or the string "n/a".
func (v *Value) UnmarshalJSON(b []byte) error {
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		*v = Numeric(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s != NotAvailable {
		return fmt.Errorf("invalid value %q", s)
	}
	*v = Unavailable()
	return nil
}
