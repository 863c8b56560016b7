package ui

import (
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
)

// Styles contains all the styles used in the TUI
type Styles struct {
	App lipgloss.Style

	// Tab bar
	TabBar      lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	ViewTitle lipgloss.Style

	// Status bar
	StatusBar  lipgloss.Style
	StatusKey  lipgloss.Style
	StatusHelp lipgloss.Style

	// Entry list
	EntrySelected lipgloss.Style
	EntryNormal   lipgloss.Style
	EntryTime     lipgloss.Style
	EntryName     lipgloss.Style
	EntryCategory lipgloss.Style
	EntryCalories lipgloss.Style
	EntryMacros   lipgloss.Style

	// Totals
	Card      lipgloss.Style
	CardLabel lipgloss.Style
	CardValue lipgloss.Style
	StatLabel lipgloss.Style
	Hint      lipgloss.Style
	StatValue lipgloss.Style

	// Filter bar
	FilterLabel  lipgloss.Style
	FilterActive lipgloss.Style

	// Form
	Input        lipgloss.Style
	InputFocused lipgloss.Style
	FieldLabel   lipgloss.Style

	Dialog lipgloss.Style

	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
}

// palette holds the semantic colors a Styles is built from.
type palette struct {
	primary    lipgloss.TerminalColor // tabs, titles, focused inputs
	secondary  lipgloss.TerminalColor // times, keys, categories
	accent     lipgloss.TerminalColor // calories
	muted      lipgloss.TerminalColor // labels, inactive elements
	success    lipgloss.TerminalColor
	warning    lipgloss.TerminalColor
	errorColor lipgloss.TerminalColor
	fg         lipgloss.TerminalColor
	bg         lipgloss.TerminalColor
	selection  lipgloss.TerminalColor
}

// DefaultStyles returns the styles used without a bubbletint theme
func DefaultStyles() Styles {
	return newStyles(palette{
		primary:    lipgloss.Color("99"),  // Purple
		secondary:  lipgloss.Color("39"),  // Cyan
		accent:     lipgloss.Color("212"), // Pink
		muted:      lipgloss.Color("240"), // Gray
		success:    lipgloss.Color("82"),
		warning:    lipgloss.Color("214"),
		errorColor: lipgloss.Color("196"),
		fg:         lipgloss.Color("252"),
		bg:         lipgloss.Color("236"),
		selection:  lipgloss.Color("237"),
	})
}

// NewStylesFromRegistry creates a Styles struct using colors from a bubbletint registry.
// Theme colors map to UI elements as follows:
// - Primary: Purple (tabs, titles, focused inputs)
// - Secondary: Cyan (times, categories, keys)
// - Accent: BrightPurple (calories)
// - Muted: BrightBlack (inactive elements, labels, selection)
// - Success/Warning/Error: Green/Yellow/Red
func NewStylesFromRegistry(r *tint.Registry) Styles {
	return newStyles(palette{
		primary:    r.Purple(),
		secondary:  r.Cyan(),
		accent:     r.BrightPurple(),
		muted:      r.BrightBlack(),
		success:    r.Green(),
		warning:    r.Yellow(),
		errorColor: r.Red(),
		fg:         r.Fg(),
		bg:         r.Bg(),
		selection:  r.BrightBlack(),
	})
}

func newStyles(p palette) Styles {
	input := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(p.muted).
		Padding(0, 1)

	return Styles{
		App: lipgloss.NewStyle().Padding(1, 2),

		TabBar: lipgloss.NewStyle().
			MarginBottom(1).
			BorderBottom(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(p.muted),
		TabActive: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(p.muted).
			Padding(0, 2),

		ViewTitle: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			MarginBottom(1),

		StatusBar: lipgloss.NewStyle().
			Foreground(p.fg).
			Background(p.bg).
			Padding(0, 1),
		StatusKey: lipgloss.NewStyle().
			Foreground(p.secondary).
			Bold(true),
		StatusHelp: lipgloss.NewStyle().
			Foreground(p.muted),

		EntrySelected: lipgloss.NewStyle().
			Background(p.selection).
			Bold(true),
		EntryNormal: lipgloss.NewStyle(),
		EntryTime: lipgloss.NewStyle().
			Foreground(p.muted),
		EntryName: lipgloss.NewStyle().
			Foreground(p.fg),
		EntryCategory: lipgloss.NewStyle().
			Foreground(p.secondary),
		EntryCalories: lipgloss.NewStyle().
			Foreground(p.accent).
			Align(lipgloss.Right),
		EntryMacros: lipgloss.NewStyle().
			Foreground(p.muted),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.primary).
			Padding(0, 2).
			MarginRight(1),
		CardLabel: lipgloss.NewStyle().
			Foreground(p.muted),
		CardValue: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true),
		StatLabel: lipgloss.NewStyle().
			Foreground(p.muted).
			Width(20),
		Hint: lipgloss.NewStyle().
			Foreground(p.muted),
		StatValue: lipgloss.NewStyle().
			Foreground(p.fg).
			Bold(true),

		FilterLabel: lipgloss.NewStyle().
			Foreground(p.muted),
		FilterActive: lipgloss.NewStyle().
			Foreground(p.warning).
			Bold(true),

		Input:        input,
		InputFocused: input.BorderForeground(p.primary),
		FieldLabel: lipgloss.NewStyle().
			Foreground(p.muted).
			Width(14),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.primary).
			Padding(1, 2).
			Width(50),

		Error: lipgloss.NewStyle().
			Foreground(p.errorColor),
		Warning: lipgloss.NewStyle().
			Foreground(p.warning),
		Success: lipgloss.NewStyle().
			Foreground(p.success),
	}
}
