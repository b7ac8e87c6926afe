package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/duke-git/lancet/v2/slice"
	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/harstat/internal/metrics"
)

// Plan describes one comparison: the steps to put side by side, the
// metrics to read and the aggregations to apply to each metric.
type Plan struct {
	// Metrics lists metric ids. Empty selects the whole catalog.
	Metrics []string `yaml:"metrics,omitempty" json:"metrics,omitempty"`

	// Aggregations lists aggregation type names. Defaults to Average.
	Aggregations []string `yaml:"aggregations,omitempty" json:"aggregations,omitempty"`

	Steps []Step `yaml:"steps" json:"steps"`
}

// Step selects the results of one label inside an optional timestamp
// window. Both bounds are inclusive.
type Step struct {
	Label string `yaml:"label" json:"label"`
	From  string `yaml:"from,omitempty" json:"from,omitempty"`
	To    string `yaml:"to,omitempty" json:"to,omitempty"`
}

// LoadPlan loads a comparison plan from a file.
//
// The file format is determined by extension:
//   - .yaml, .yml -> YAML
//   - .json -> JSON
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	return ParsePlan(data, path)
}

// ParsePlan parses plan data. The format is taken from the extension of
// path and defaults to YAML.
func ParsePlan(data []byte, path string) (*Plan, error) {
	var plan Plan

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &plan); err != nil {
			return nil, fmt.Errorf("failed to parse JSON plan: %w", err)
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(data, &plan); err != nil {
			return nil, fmt.Errorf("failed to parse YAML plan: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &plan); err != nil {
			return nil, fmt.Errorf("failed to parse plan (unknown format %s): %w", ext, err)
		}
	}

	return &plan, nil
}

// ParseStep parses the command-line form label[,from[,to]].
func ParseStep(s string) (Step, error) {
	parts := strings.Split(s, ",")
	if len(parts) > 3 {
		return Step{}, fmt.Errorf("invalid step %q: want label[,from[,to]]", s)
	}

	var step Step
	step.Label = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		step.From = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		step.To = strings.TrimSpace(parts[2])
	}

	if step.Label == "" {
		return Step{}, fmt.Errorf("invalid step %q: label is required", s)
	}
	return step, nil
}

// ApplyDefaults fills in the aggregation list when none was given.
func (p *Plan) ApplyDefaults() {
	if len(p.Aggregations) == 0 {
		p.Aggregations = []string{string(metrics.Average)}
	}
}

// Descriptors returns the selected catalog entries in catalog order.
func (p *Plan) Descriptors() []metrics.Descriptor {
	return metrics.Select(p.Metrics)
}

// UnknownMetrics returns the requested metric ids the catalog does not
// know. They are ignored when the plan runs.
func (p *Plan) UnknownMetrics() []string {
	return slice.Filter(p.Metrics, func(_ int, id string) bool {
		_, ok := metrics.Lookup(id)
		return !ok
	})
}

// AggregationTypes parses the aggregation names in plan order.
func (p *Plan) AggregationTypes() ([]metrics.AggregationType, error) {
	types := make([]metrics.AggregationType, 0, len(p.Aggregations))
	for _, name := range p.Aggregations {
		t, err := metrics.ParseAggregationType(name)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}
