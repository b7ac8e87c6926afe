package config

import (
	"fmt"
	"strings"

	"github.com/wesleyorama2/harstat/internal/metrics"
)

// ValidationError represents a plan validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors struct {
	Errors []*ValidationError
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Add adds an error to the collection.
func (e *ValidationErrors) Add(field, message string) {
	e.Errors = append(e.Errors, &ValidationError{Field: field, Message: message})
}

// HasErrors returns true if there are any errors.
func (e *ValidationErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

// Validate checks the whole plan.
//
// Returns nil if valid, or a *ValidationErrors holding every problem found.
// Unknown metric ids are not errors; see UnknownMetrics.
func (p *Plan) Validate() error {
	errs := &ValidationErrors{}

	if len(p.Steps) == 0 {
		errs.Add("steps", "at least one step is required")
	}

	for i, step := range p.Steps {
		field := fmt.Sprintf("steps[%d]", i)

		if strings.TrimSpace(step.Label) == "" {
			errs.Add(field+".label", "label is required")
		}
		if step.From != "" && step.To != "" && step.From > step.To {
			errs.Add(field, fmt.Sprintf("from %q is after to %q", step.From, step.To))
		}
	}

	for i, name := range p.Aggregations {
		if _, err := metrics.ParseAggregationType(name); err != nil {
			errs.Add(fmt.Sprintf("aggregations[%d]", i), fmt.Sprintf("unknown aggregation type %q", name))
		}
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
