package ui

import (
	"sort"

	tint "github.com/lrstanley/bubbletint"

	"github.com/xolan/nutritrack/internal/config"
)

// DefaultTheme is the theme used when none is configured
const DefaultTheme = config.DefaultTheme

// ThemeProvider manages TUI themes using bubbletint
type ThemeProvider struct {
	registry *tint.Registry
}

// NewThemeProvider creates a ThemeProvider starting at initialTheme.
// Empty or unknown names fall back to DefaultTheme.
func NewThemeProvider(initialTheme string) *ThemeProvider {
	tints := tint.DefaultTints()

	var fallback tint.Tint
	for _, t := range tints {
		if t.ID() == DefaultTheme {
			fallback = t
			break
		}
	}
	if fallback == nil && len(tints) > 0 {
		fallback = tints[0]
	}

	tp := &ThemeProvider{registry: tint.NewRegistry(fallback, tints...)}
	if initialTheme != "" {
		tp.SetTheme(initialTheme)
	}
	return tp
}

// SetTheme switches to the named theme and reports whether it exists.
func (tp *ThemeProvider) SetTheme(name string) bool {
	return tp.registry.SetTintID(name)
}

// CurrentName returns the ID of the current theme.
func (tp *ThemeProvider) CurrentName() string {
	return tp.registry.ID()
}

// CurrentDisplayName returns the display name of the current theme.
func (tp *ThemeProvider) CurrentDisplayName() string {
	return tp.registry.DisplayName()
}

// AvailableThemes returns every theme ID, sorted.
func (tp *ThemeProvider) AvailableThemes() []string {
	ids := tp.registry.TintIDs()
	sort.Strings(ids)
	return ids
}

// Styles returns a Styles struct configured for the current theme.
func (tp *ThemeProvider) Styles() Styles {
	return NewStylesFromRegistry(tp.registry)
}
