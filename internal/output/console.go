// Package output renders comparison tables and histogram charts for the
// terminal, and both views as JSON.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/wesleyorama2/harstat/internal/metrics"
	"github.com/wesleyorama2/harstat/internal/report"
)

const (
	barFilled = "█"
	barWidth  = 40
)

// ErrUnknownChart is returned when the requested chart is not in a report.
var ErrUnknownChart = errors.New("no chart for metric")

// ConsoleConfig contains configuration for Console.
type ConsoleConfig struct {
	Writer     io.Writer
	NoColor    bool
	ForceColor bool
}

// Console writes human-readable views.
type Console struct {
	w       io.Writer
	colors  *ColorScheme
	noColor bool
}

// NewConsole creates a console. Colors are used when forced, or when the
// writer is a terminal and neither NoColor nor NO_COLOR asks otherwise.
func NewConsole(config ConsoleConfig) *Console {
	if config.Writer == nil {
		config.Writer = os.Stdout
	}

	useColors := !config.NoColor && (config.ForceColor || (isTerminal(config.Writer) && supportsColors()))

	scheme := NoColorScheme()
	if useColors {
		scheme = forcedColorScheme()
	}

	return &Console{w: config.Writer, colors: scheme, noColor: !useColors}
}

// PrintTable prints a comparison with one line per (metric, aggregation)
// column and one column per step.
func (c *Console) PrintTable(t *report.Table) {
	header := make([]string, 0, len(t.Labels)+1)
	header = append(header, "Metric")
	header = append(header, t.Labels...)

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = width(h)
	}
	for _, col := range t.Columns {
		widths[0] = max(widths[0], width(col.Header()))
		for i, v := range col.Values {
			widths[i+1] = max(widths[i+1], width(v.String()))
		}
	}

	cells := make([]string, len(header))
	for i, h := range header {
		cells[i] = c.colors.Header.Sprint(pad(h, widths[i], i > 0))
	}
	c.writeln(strings.Join(cells, "  "))

	for _, col := range t.Columns {
		cells[0] = c.colors.Label.Sprint(pad(col.Header(), widths[0], false))
		for i, v := range col.Values {
			text := pad(v.String(), widths[i+1], true)
			if v.IsAvailable() {
				cells[i+1] = c.colors.Value.Sprint(text)
			} else {
				cells[i+1] = c.colors.Unavailable.Sprint(text)
			}
		}
		c.writeln(strings.Join(cells, "  "))
	}
}

// PrintHistograms prints the list of chartable metrics followed by the
// chart of selected, or of the first metric when selected is empty.
func (c *Console) PrintHistograms(r *report.HistogramReport, selected string) error {
	if r.Insufficient() || len(r.Charts) == 0 {
		c.writeln(c.colors.Warning.Sprint(report.InsufficientData))
		return nil
	}

	chart := r.Charts[0]
	if selected != "" {
		var ok bool
		if chart, ok = r.Chart(selected); !ok {
			return fmt.Errorf("%w %q in %s", ErrUnknownChart, selected, r.Label)
		}
	}

	c.writeln(c.colors.Title.Sprintf("%s: %d metrics", r.Label, len(r.Charts)))
	for _, ch := range r.Charts {
		marker := " "
		if ch.Metric.ID == chart.Metric.ID {
			marker = "*"
		}
		c.writeln(fmt.Sprintf(" %s %s %s", marker, pad(ch.Metric.ID, 20, false), c.colors.Muted.Sprint(ch.Metric.Title)))
	}
	for _, s := range r.Skipped {
		c.writeln(c.colors.Muted.Sprintf("   %s skipped: %s", pad(s.Metric.ID, 20, false), s.Reason))
	}
	c.writeln("")

	c.PrintChart(chart)
	return nil
}

// PrintChart prints one histogram as horizontal bars.
func (c *Console) PrintChart(chart report.Chart) {
	s := chart.Summary
	c.writeln(c.colors.Title.Sprint(chart.Metric.Title))
	c.writeln(c.colors.Muted.Sprintf("n=%d  min=%s  max=%s  mean=%s  stddev=%s",
		s.Count, number(s.Min), number(s.Max), number(s.Mean), number(s.StdDev)))

	rangeWidth := 0
	for _, r := range chart.Ranges {
		rangeWidth = max(rangeWidth, width(r))
	}

	for i, r := range chart.Ranges {
		freq := chart.Frequencies[i]
		bar := strings.Repeat(barFilled, barLength(freq))
		c.writeln(fmt.Sprintf("  %s  %s %5.1f%%",
			c.colors.Label.Sprint(pad(r, rangeWidth, true)),
			c.colors.Bar.Sprint(pad(bar, barWidth, false)),
			freq))
	}
}

// PrintMetrics prints the metric catalog.
func (c *Console) PrintMetrics(descs []metrics.Descriptor) {
	idWidth, titleWidth := width("ID"), width("Title")
	for _, d := range descs {
		idWidth = max(idWidth, width(d.ID))
		titleWidth = max(titleWidth, width(d.Title))
	}

	c.writeln(c.colors.Header.Sprintf("%s  %s  %s", pad("ID", idWidth, false), pad("Title", titleWidth, false), "Unit"))
	for _, d := range descs {
		c.writeln(fmt.Sprintf("%s  %s  %s",
			c.colors.Label.Sprint(pad(d.ID, idWidth, false)),
			pad(d.Title, titleWidth, false),
			c.colors.Muted.Sprint(d.Unit)))
	}
}

// PrintList prints items one per line, or a muted note when there are
// none.
func (c *Console) PrintList(items []string, empty string) {
	if len(items) == 0 {
		c.writeln(c.colors.Muted.Sprint(empty))
		return
	}
	for _, item := range items {
		c.writeln(item)
	}
}

// Warn prints a warning line.
func (c *Console) Warn(format string, args ...any) {
	c.writeln(WarningIcon(c.noColor) + " " + c.colors.Warning.Sprintf(format, args...))
}

func (c *Console) writeln(s string) {
	fmt.Fprintln(c.w, s)
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

// barLength scales a percentage to the bar width, keeping any non-zero
// share visible.
func barLength(freq float64) int {
	n := int(freq / 100 * barWidth)
	if n == 0 && freq > 0 {
		n = 1
	}
	return min(n, barWidth)
}

// pad fills s with spaces to w runes, on the left when right is set.
func pad(s string, w int, right bool) string {
	n := w - width(s)
	if n <= 0 {
		return s
	}
	if right {
		return strings.Repeat(" ", n) + s
	}
	return s + strings.Repeat(" ", n)
}

func width(s string) int {
	return utf8.RuneCountInString(s)
}

func number(v float64) string {
	return metrics.Numeric(v).String()
}
