package metrics

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

var (
	// ErrMissingField is returned when a document lacks a metric field.
	ErrMissingField = errors.New("missing metric field")

	// ErrMalformedField is returned when a composite field does not have
	// the expected shape.
	ErrMalformedField = errors.New("malformed metric field")
)

// Document is one test run's result record, keyed by metric id.
//
// Values are expected to be numbers. Anything else that is present (the
// upstream data uses "n/a" for metrics the browser could not measure) is
// kept as a non-numeric sample and turns into an unavailable aggregate.
type Document map[string]any

// Sample extracts the value of metric m. Non-numeric values are returned
// as NaN.
func (d Document) Sample(m Descriptor) (float64, error) {
	raw, ok := d[m.ID]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingField, m.ID)
	}

	if m.ID == PageSpeedScore {
		scores, ok := raw.(map[string]any)
		if !ok {
			return 0, fmt.Errorf("%w: %s is %T, want an object", ErrMalformedField, m.ID, raw)
		}
		raw, ok = scores[pageSpeedTotalField]
		if !ok {
			return 0, fmt.Errorf("%w: %s[%q]", ErrMissingField, m.ID, pageSpeedTotalField)
		}
	}

	return toFloat(raw), nil
}

// toFloat converts decoded JSON, YAML or SQL values to float64.
func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

// isNumeric reports whether v is a usable sample value.
func isNumeric(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
