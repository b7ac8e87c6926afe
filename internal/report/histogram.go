package report

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/wesleyorama2/harstat/internal/metrics"
	"github.com/wesleyorama2/harstat/internal/store"
)

// InsufficientData is shown when no metric of a label could be charted.
const InsufficientData = "Sorry! You haven't enough data."

// Chart is the histogram of one metric.
type Chart struct {
	Metric      metrics.Descriptor `json:"metric"`
	Ranges      []string           `json:"ranges"`
	Frequencies []float64          `json:"frequencies"`
	Summary     metrics.Summary    `json:"summary"`
}

// Skipped names a metric that could not be charted and why.
type Skipped struct {
	Metric metrics.Descriptor `json:"metric"`
	Reason string             `json:"reason"`
}

// HistogramReport holds the charts of every usable metric of one label.
type HistogramReport struct {
	Label     string    `json:"label"`
	Requested int       `json:"requested"`
	Charts    []Chart   `json:"charts"`
	Skipped   []Skipped `json:"skipped,omitempty"`
}

// Insufficient reports whether every requested metric was skipped.
func (r *HistogramReport) Insufficient() bool {
	return len(r.Skipped) >= r.Requested
}

// Chart returns the chart of metricID.
func (r *HistogramReport) Chart(metricID string) (Chart, bool) {
	for _, c := range r.Charts {
		if c.Metric.ID == metricID {
			return c, true
		}
	}
	return Chart{}, false
}

// Histograms fetches every result of label and builds one histogram per
// selected metric. An empty metricIDs selects the whole catalog. Metrics
// whose samples cannot be binned are skipped with a reason; millisecond
// metrics get their ranges in seconds.
func (b *Builder) Histograms(ctx context.Context, label string, metricIDs []string) (*HistogramReport, error) {
	descs := metrics.Select(metricIDs)
	if len(descs) == 0 {
		return nil, ErrNoMetrics
	}

	docs, err := b.src.Documents(ctx, store.Query{Label: label, Fields: metrics.IDs(descs)})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", label, err)
	}

	report := &HistogramReport{Label: label, Requested: len(descs), Charts: []Chart{}}
	for _, d := range descs {
		chart, err := buildChart(d, docs)
		if err != nil {
			b.log.Debug("metric skipped",
				zap.String("label", label),
				zap.String("metric", d.ID),
				zap.Error(err))
			report.Skipped = append(report.Skipped, Skipped{Metric: d, Reason: err.Error()})
			continue
		}
		report.Charts = append(report.Charts, chart)
	}

	b.log.Debug("histograms built",
		zap.String("label", label),
		zap.Int("documents", len(docs)),
		zap.Int("charts", len(report.Charts)),
		zap.Int("skipped", len(report.Skipped)))
	return report, nil
}

func buildChart(d metrics.Descriptor, docs []metrics.Document) (Chart, error) {
	samples := make([]float64, 0, len(docs))
	for i, doc := range docs {
		v, err := doc.Sample(d)
		if err != nil {
			return Chart{}, fmt.Errorf("document %d: %w", i, err)
		}
		samples = append(samples, v)
	}

	h, err := metrics.NewHistogram(samples)
	if err != nil {
		return Chart{}, err
	}

	summary, err := metrics.Summarize(samples)
	if err != nil {
		return Chart{}, err
	}

	return Chart{
		Metric:      d,
		Ranges:      h.Ranges(d.Unit == metrics.UnitMillis),
		Frequencies: h.Frequencies(),
		Summary:     summary,
	}, nil
}
