package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap contains all key bindings for the TUI
type KeyMap struct {
	// Navigation
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// Tab navigation
	NextTab key.Binding
	PrevTab key.Binding
	Tab1    key.Binding
	Tab2    key.Binding
	Tab3    key.Binding

	// Actions
	Select    key.Binding
	Back      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
	Help      key.Binding
	Refresh   key.Binding

	// Log view
	New          key.Binding
	Delete       key.Binding
	Search       key.Binding
	NextCategory key.Binding
	PrevCategory key.Binding
	ClearFilter  key.Binding

	// Form fields
	NextField key.Binding
	PrevField key.Binding

	// Totals periods
	AllTime  key.Binding
	Today    key.Binding
	LastWeek key.Binding

	// Config view
	Themes key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation (vim + arrows)
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "previous"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", " "),
			key.WithHelp("→/space", "next"),
		),

		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next view"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev view"),
		),
		Tab1: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "log"),
		),
		Tab2: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "totals"),
		),
		Tab3: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "config"),
		),

		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),

		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new entry"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Search: key.NewBinding(
			key.WithKeys("/", "s"),
			key.WithHelp("/", "search"),
		),
		NextCategory: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "next category"),
		),
		PrevCategory: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "prev category"),
		),
		ClearFilter: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear filter"),
		),

		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "prev field"),
		),

		AllTime: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "all time"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
		LastWeek: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "last 7 days"),
		),

		Themes: key.NewBinding(
			key.WithKeys("t", "enter"),
			key.WithHelp("t/enter", "themes"),
		),
	}
}
