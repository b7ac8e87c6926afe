package output

import (
	"github.com/fatih/color"
)

// ColorScheme defines the colors used for different elements in the output
type ColorScheme struct {
	Title       *color.Color
	Header      *color.Color
	Label       *color.Color
	Value       *color.Color
	Unavailable *color.Color
	Bar         *color.Color
	Muted       *color.Color
	Warning     *color.Color
	Error       *color.Color
}

// DefaultColorScheme returns the default color scheme
func DefaultColorScheme() *ColorScheme {
	return &ColorScheme{
		Title:       color.New(color.FgCyan, color.Bold),
		Header:      color.New(color.FgYellow),
		Label:       color.New(color.FgBlue, color.Bold),
		Value:       color.New(color.FgWhite),
		Unavailable: color.New(color.Faint),
		Bar:         color.New(color.FgGreen),
		Muted:       color.New(color.Faint),
		Warning:     color.New(color.FgYellow, color.Bold),
		Error:       color.New(color.FgRed, color.Bold),
	}
}

// NoColorScheme returns a color scheme with all colors disabled
func NoColorScheme() *ColorScheme {
	scheme := DefaultColorScheme()
	for _, c := range scheme.all() {
		c.DisableColor()
	}
	return scheme
}

// forcedColorScheme returns the default scheme with colors on even when
// fatih/color decided stdout cannot show them.
func forcedColorScheme() *ColorScheme {
	scheme := DefaultColorScheme()
	for _, c := range scheme.all() {
		c.EnableColor()
	}
	return scheme
}

func (s *ColorScheme) all() []*color.Color {
	return []*color.Color{
		s.Title,
		s.Header,
		s.Label,
		s.Value,
		s.Unavailable,
		s.Bar,
		s.Muted,
		s.Warning,
		s.Error,
	}
}

// WarningIcon returns a warning symbol with appropriate color
func WarningIcon(noColor bool) string {
	if noColor {
		return "⚠"
	}
	return color.New(color.FgYellow).Sprint("⚠")
}

// ErrorIcon returns an X symbol with appropriate color
func ErrorIcon(noColor bool) string {
	if noColor {
		return "✗"
	}
	return color.New(color.FgRed).Sprint("✗")
}
