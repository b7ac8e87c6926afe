package metrics

import (
	"fmt"
	"math"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// summaryScale keeps three decimals when samples are recorded as integers.
const summaryScale = 1000

// Summary describes the spread of a sample list.
type Summary struct {
	Count  int64   `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stdDev"`
}

// Summarize records samples into an HDR histogram (3 significant figures)
// and reports its count, bounds, mean and standard deviation.
func Summarize(samples []float64) (Summary, error) {
	if len(samples) == 0 {
		return Summary{}, ErrNoSamples
	}

	lowest, highest := math.Inf(1), math.Inf(-1)
	for i, v := range samples {
		if !isNumeric(v) {
			return Summary{}, fmt.Errorf("%w at index %d", ErrNonNumericSample, i)
		}
		lowest = math.Min(lowest, v)
		highest = math.Max(highest, v)
	}

	// Shift so the smallest sample records as 1, the lowest value an HDR
	// histogram can discern.
	offset := lowest
	maxValue := int64(math.Ceil((highest-offset)*summaryScale)) + 2

	hist := hdrhistogram.New(1, maxValue, 3)
	for _, v := range samples {
		if err := hist.RecordValue(int64(math.Round((v-offset)*summaryScale)) + 1); err != nil {
			return Summary{}, fmt.Errorf("record sample %v: %w", v, err)
		}
	}

	return Summary{
		Count:  hist.TotalCount(),
		Min:    lowest,
		Max:    highest,
		Mean:   roundTo((hist.Mean()-1)/summaryScale+offset, 3),
		StdDev: roundTo(hist.StdDev()/summaryScale, 3),
	}, nil
}
