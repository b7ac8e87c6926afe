package report

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/wesleyorama2/harstat/internal/config"
	"github.com/wesleyorama2/harstat/internal/metrics"
	"github.com/wesleyorama2/harstat/internal/store"
)

// ErrNoMetrics is returned when a request selects no known metric.
var ErrNoMetrics = errors.New("no known metrics selected")

// Builder turns stored results into report views.
type Builder struct {
	src store.Source
	log *zap.Logger
}

// New returns a Builder reading from src. A nil logger discards logs.
func New(src store.Source, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{src: src, log: log}
}

// Compare builds the comparison table for plan using a Builder without
// logging.
func Compare(ctx context.Context, src store.Source, plan *config.Plan) (*Table, error) {
	return New(src, nil).Compare(ctx, plan)
}

// Histograms builds the histogram view for label using a Builder without
// logging.
func Histograms(ctx context.Context, src store.Source, label string, metricIDs []string) (*HistogramReport, error) {
	return New(src, nil).Histograms(ctx, label, metricIDs)
}

// Column is one (metric, aggregation) pair with one value per step.
type Column struct {
	Metric      metrics.Descriptor      `json:"metric"`
	Aggregation metrics.AggregationType `json:"aggregation"`
	Values      []metrics.Value         `json:"values"`
}

// Header returns the column title, e.g. "Full Load Time (ms) (Average)".
func (c Column) Header() string {
	return fmt.Sprintf("%s (%s)", c.Metric.Title, c.Aggregation)
}

// Table is the side-by-side comparison of several steps.
type Table struct {
	Headers []string `json:"headers"`
	Labels  []string `json:"labels"`
	Columns []Column `json:"columns"`
}

// Rows returns the table as strings, one row per step, each starting with
// the step label.
func (t *Table) Rows() [][]string {
	rows := make([][]string, len(t.Labels))
	for i, label := range t.Labels {
		row := make([]string, 0, len(t.Columns)+1)
		row = append(row, label)
		for _, c := range t.Columns {
			row = append(row, c.Values[i].String())
		}
		rows[i] = row
	}
	return rows
}

// Compare fetches every step of plan and aggregates the selected metrics.
// Columns run over metrics by id descending, then over the plan's
// aggregation types in order.
func (b *Builder) Compare(ctx context.Context, plan *config.Plan) (*Table, error) {
	p := *plan
	p.ApplyDefaults()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	types, err := p.AggregationTypes()
	if err != nil {
		return nil, err
	}

	descs := p.Descriptors()
	if len(descs) == 0 {
		return nil, ErrNoMetrics
	}
	ids := metrics.IDs(descs)

	agg := metrics.NewAggregator(ids)
	for i, step := range p.Steps {
		docs, err := b.src.Documents(ctx, store.Query{
			Label:  step.Label,
			From:   step.From,
			To:     step.To,
			Fields: ids,
		})
		if err != nil {
			return nil, fmt.Errorf("fetch step %d (%s): %w", i, step.Label, err)
		}

		if err := agg.RegisterStep(step.Label, i, docs); err != nil {
			b.log.Warn("step registration failed",
				zap.Int("step", i),
				zap.String("label", step.Label),
				zap.Error(err))
			return nil, fmt.Errorf("register step %d (%s): %w", i, step.Label, err)
		}

		b.log.Debug("step registered",
			zap.Int("step", i),
			zap.String("label", step.Label),
			zap.Int("documents", len(docs)))
	}

	sort.Slice(descs, func(i, j int) bool { return descs[i].ID > descs[j].ID })

	table := &Table{
		Headers: []string{"Label"},
		Labels:  agg.Labels(),
	}
	for _, d := range descs {
		for _, t := range types {
			col := Column{Metric: d, Aggregation: t, Values: make([]metrics.Value, agg.Steps())}
			for step := range col.Values {
				v, err := agg.Aggregate(agg.Samples(d.ID, step), t, d.ID)
				if err != nil {
					return nil, err
				}
				col.Values[step] = v
			}
			table.Columns = append(table.Columns, col)
			table.Headers = append(table.Headers, col.Header())
		}
	}

	return table, nil
}
