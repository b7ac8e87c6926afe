package metrics

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/aclements/go-moremath/stats"
)

// DefaultSlack is the tolerance, in sample units, applied when a sample
// lies just above a bin's upper bound.
const DefaultSlack = 1.0

var (
	// ErrNoSamples is returned when a histogram is built from no data.
	ErrNoSamples = errors.New("no samples")

	// ErrNonNumericSample is returned when a sample is NaN or infinite.
	ErrNonNumericSample = errors.New("non-numeric sample")
)

// Histogram is a frequency distribution of one sample list. The number of
// bins follows Sturges' rule.
type Histogram struct {
	data    []float64
	size    int
	min     float64
	max     float64
	classes int
	step    float64
	slack   float64
}

// HistogramOption configures a Histogram.
type HistogramOption func(*Histogram)

// WithSlack overrides DefaultSlack.
func WithSlack(slack float64) HistogramOption {
	return func(h *Histogram) {
		h.slack = slack
	}
}

// NewHistogram bins samples. samples is not modified.
func NewHistogram(samples []float64, opts ...HistogramOption) (*Histogram, error) {
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}
	for i, v := range samples {
		if !isNumeric(v) {
			return nil, fmt.Errorf("%w at index %d", ErrNonNumericSample, i)
		}
	}

	lo, hi := stats.Bounds(samples)

	data := make([]float64, len(samples))
	copy(data, samples)
	sort.Float64s(data)

	h := &Histogram{
		data:  data,
		size:  len(data),
		min:   lo,
		max:   hi,
		slack: DefaultSlack,
	}

	if h.min != h.max {
		h.classes = int(math.Round(1 + 3.32*math.Log10(float64(h.size))))
	} else {
		h.classes = 1
	}
	h.step = (h.max - h.min) / float64(h.classes)

	for _, opt := range opts {
		opt(h)
	}

	return h, nil
}

// Size returns the number of samples.
func (h *Histogram) Size() int { return h.size }

// Min returns the smallest sample.
func (h *Histogram) Min() float64 { return h.min }

// Max returns the largest sample.
func (h *Histogram) Max() float64 { return h.max }

// Classes returns the number of bins.
func (h *Histogram) Classes() int { return h.classes }

// Step returns the bin width.
func (h *Histogram) Step() float64 { return h.step }

// Ranges returns one "<left> - <right>" label per bin. Bounds are
// truncated to integers. When reduced is set the bounds are divided by
// 1000 (milliseconds shown as seconds) and rounded to a precision that
// grows as the bins get narrower.
func (h *Histogram) Ranges(reduced bool) []string {
	ranges := make([]string, 0, h.classes)

	order := 1
	if h.step != 0 {
		// Anything past float64 precision rounds to the value itself.
		order = 1 + int(math.Min(100/h.step, 100))
	}

	for k := 0; k < h.classes; k++ {
		left := math.Trunc(h.min+h.step*float64(k)) + 0
		right := math.Trunc(h.min+h.step*float64(k+1)) + 0

		if reduced {
			ranges = append(ranges, formatReduced(left/1000, order)+" - "+formatReduced(right/1000, order))
			continue
		}
		ranges = append(ranges, strconv.FormatFloat(left, 'f', 0, 64)+" - "+strconv.FormatFloat(right, 'f', 0, 64))
	}

	return ranges
}

// Frequencies returns the share of samples in each bin as a percentage
// rounded to one decimal.
//
// Samples are walked in ascending order against a moving upper bound. A
// sample above the bound moves the bound forward while it still exceeds
// bound+slack, and is then counted in the bin after the current one, or
// in the last bin when there is none. The slack decides where samples
// sitting right on a boundary land; keep it when comparing against
// previously published results.
func (h *Histogram) Frequencies() []float64 {
	counts := make([]int, h.classes)

	bound := h.min + h.step
	index := 0

	for _, v := range h.data {
		if v <= bound {
			counts[index]++
			continue
		}
		for v > bound+h.slack && index < h.classes-1 {
			bound += h.step
			index++
		}
		if index+1 < h.classes {
			counts[index+1]++
		} else {
			counts[index]++
		}
	}

	frequencies := make([]float64, h.classes)
	for i, c := range counts {
		frequencies[i] = roundTo(float64(c)*100/float64(h.size), 1)
	}
	return frequencies
}

// roundTo rounds v half away from zero to the given number of decimals.
func roundTo(v float64, decimals int) float64 {
	if decimals >= 10 {
		return v
	}
	p := math.Pow10(decimals)
	return math.Round(v*p) / p
}

// formatReduced rounds v and prints it in its shortest form, always
// keeping a fractional digit.
func formatReduced(v float64, decimals int) string {
	s := strconv.FormatFloat(roundTo(v, decimals), 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
