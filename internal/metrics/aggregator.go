package metrics

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// AggregationType is one of the statistical summaries applied to a
// sample list.
type AggregationType string

const (
	Average      AggregationType = "Average"
	Minimum      AggregationType = "Minimum"
	Maximum      AggregationType = "Maximum"
	Median       AggregationType = "Median"
	Percentile90 AggregationType = "90th Percentile"
	Percentile95 AggregationType = "95th Percentile"
	Percentile99 AggregationType = "99th Percentile"
)

var (
	// ErrUnknownAggregation is returned for aggregation types outside the
	// enumerated set.
	ErrUnknownAggregation = errors.New("unknown aggregation type")

	// ErrStepRegistered is returned when a step index is registered twice.
	ErrStepRegistered = errors.New("step already registered")
)

// AggregationTypes returns every aggregation type in presentation order.
func AggregationTypes() []AggregationType {
	return []AggregationType{
		Average,
		Median,
		Minimum,
		Percentile90,
		Percentile95,
		Percentile99,
		Maximum,
	}
}

// ParseAggregationType converts a display name to an AggregationType.
func ParseAggregationType(s string) (AggregationType, error) {
	for _, t := range AggregationTypes() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAggregation, s)
}

// Aggregator accumulates per-step sample lists for a set of metrics and
// computes aggregates over them.
//
// Step indices are chosen by the caller and are expected to be contiguous
// from zero. A skipped index leaves an empty step behind; reusing an index
// is rejected.
//
// An Aggregator is not safe for concurrent use.
type Aggregator struct {
	metrics []Descriptor

	// samples[metricID][step] is the list of values for that step, one per
	// registered document, in document order.
	samples    map[string][][]float64
	labels     []string
	registered []bool
}

// NewAggregator creates an Aggregator tracking the given metric ids.
// An empty list tracks the whole catalog.
func NewAggregator(metricIDs []string) *Aggregator {
	selected := Select(metricIDs)

	samples := make(map[string][][]float64, len(selected))
	for _, m := range selected {
		samples[m.ID] = make([][]float64, 0)
	}

	return &Aggregator{
		metrics: selected,
		samples: samples,
		labels:  make([]string, 0),
	}
}

// Metrics returns the tracked metrics in catalog order.
func (a *Aggregator) Metrics() []Descriptor {
	result := make([]Descriptor, len(a.metrics))
	copy(result, a.metrics)
	return result
}

// RegisterStep extracts every tracked metric from docs and stores the
// values under step. The dataset is left untouched when an error is
// returned.
func (a *Aggregator) RegisterStep(label string, step int, docs []Document) error {
	if step < 0 {
		return fmt.Errorf("invalid step index %d", step)
	}
	if step < len(a.registered) && a.registered[step] {
		return fmt.Errorf("%w: step %d (%s)", ErrStepRegistered, step, a.labels[step])
	}

	// Extract everything first so a bad document cannot leave a half
	// registered step behind.
	extracted := make(map[string][]float64, len(a.metrics))
	for _, m := range a.metrics {
		values := make([]float64, 0, len(docs))
		for i, doc := range docs {
			v, err := doc.Sample(m)
			if err != nil {
				return fmt.Errorf("step %d (%s), document %d: %w", step, label, i, err)
			}
			values = append(values, v)
		}
		extracted[m.ID] = values
	}

	a.grow(step + 1)
	a.labels[step] = label
	a.registered[step] = true
	for id, values := range extracted {
		a.samples[id][step] = values
	}

	return nil
}

// grow extends every per-step slice to hold n steps.
func (a *Aggregator) grow(n int) {
	for len(a.labels) < n {
		a.labels = append(a.labels, "")
		a.registered = append(a.registered, false)
	}
	for id, steps := range a.samples {
		for len(steps) < n {
			steps = append(steps, []float64{})
		}
		a.samples[id] = steps
	}
}

// Steps returns the number of step slots, including unregistered gaps.
func (a *Aggregator) Steps() int {
	return len(a.labels)
}

// Label returns the label registered for step.
func (a *Aggregator) Label(step int) string {
	if step < 0 || step >= len(a.labels) {
		return ""
	}
	return a.labels[step]
}

// Labels returns the step labels indexed by step.
func (a *Aggregator) Labels() []string {
	result := make([]string, len(a.labels))
	copy(result, a.labels)
	return result
}

// Samples returns the values recorded for metricID at step. It returns
// nil for untracked metrics and unknown steps.
func (a *Aggregator) Samples(metricID string, step int) []float64 {
	steps, ok := a.samples[metricID]
	if !ok || step < 0 || step >= len(steps) {
		return nil
	}
	return steps[step]
}

// Aggregate computes aggregation t over samples. metricID is not used by
// any computation; it identifies the column the value belongs to.
func (a *Aggregator) Aggregate(samples []float64, t AggregationType, metricID string) (Value, error) {
	switch t {
	case Average:
		return Mean(samples), nil
	case Minimum:
		return Min(samples), nil
	case Maximum:
		return Max(samples), nil
	case Median:
		return Percentile(samples, 0.5), nil
	case Percentile90:
		return Percentile(samples, 0.9), nil
	case Percentile95:
		return Percentile(samples, 0.95), nil
	case Percentile99:
		return Percentile(samples, 0.99), nil
	default:
		return Unavailable(), fmt.Errorf("%w: %q for %s", ErrUnknownAggregation, t, metricID)
	}
}

// Mean returns the arithmetic mean rounded half away from zero to an
// integer.
func Mean(samples []float64) Value {
	if len(samples) == 0 {
		return Unavailable()
	}
	sum := 0.0
	for _, v := range samples {
		if !isNumeric(v) {
			return Unavailable()
		}
		sum += v
	}
	return Numeric(math.Round(sum / float64(len(samples))))
}

// Min returns the smallest sample.
func Min(samples []float64) Value {
	if len(samples) == 0 {
		return Unavailable()
	}
	return Numeric(sorted(samples)[0])
}

// Max returns the largest sample. Non-numeric samples sort above every
// number, so any of them makes the maximum unavailable.
func Max(samples []float64) Value {
	if len(samples) == 0 {
		return Unavailable()
	}
	data := sorted(samples)
	return Numeric(data[len(data)-1])
}

// Percentile returns the p-th percentile (0 <= p <= 1) using linear
// interpolation between the closest ranks of the sorted samples.
func Percentile(samples []float64, p float64) Value {
	if len(samples) == 0 || math.IsNaN(p) || p < 0 || p > 1 {
		return Unavailable()
	}

	data := sorted(samples)

	k := float64(len(data)-1) * p
	f := math.Floor(k)
	c := math.Ceil(k)

	if f == c {
		return Numeric(data[int(k)])
	}
	return Numeric(data[int(f)]*(c-k) + data[int(c)]*(k-f))
}

// sorted returns an ascending copy of samples with non-numeric values last.
func sorted(samples []float64) []float64 {
	data := make([]float64, len(samples))
	copy(data, samples)
	sort.SliceStable(data, func(i, j int) bool {
		ni, nj := isNumeric(data[i]), isNumeric(data[j])
		if ni != nj {
			return ni
		}
		return ni && data[i] < data[j]
	})
	return data
}
