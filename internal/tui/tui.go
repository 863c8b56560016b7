// Package tui provides the Terminal User Interface for the nutri application.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xolan/nutritrack/internal/service"
	"github.com/xolan/nutritrack/internal/tui/ui"
	"github.com/xolan/nutritrack/internal/tui/views"
)

// Tab represents a view tab
type Tab int

const (
	TabLog Tab = iota
	TabTotals
	TabConfig
)

var tabNames = []string{"Log", "Totals", "Config"}

// Model is the root TUI model
type Model struct {
	// Services
	services *service.Services

	// UI state
	activeTab Tab
	width     int
	height    int
	showHelp  bool
	err       error

	// View models
	logView    views.LogModel
	totalsView views.TotalsModel
	configView views.ConfigModel

	// Theme and styles
	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap
}

// themeSavedMsg reports the result of persisting the theme
type themeSavedMsg struct {
	err error
}

// New creates a new TUI model
func New(services *service.Services) Model {
	themeProvider := ui.NewThemeProvider(services.Config.Get().Theme)
	styles := themeProvider.Styles()
	keys := ui.DefaultKeyMap()

	return Model{
		services:      services,
		activeTab:     TabLog,
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
		logView:       views.NewLogModel(services, styles, keys),
		totalsView:    views.NewTotalsModel(services, styles, keys),
		configView:    views.NewConfigModel(services, themeProvider, styles, keys),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return m.logView.Init()
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// The entry form and the search box capture every key except ctrl+c.
		inputMode := m.isModalInputMode()

		switch {
		case key.Matches(msg, m.keys.ForceQuit):
			return m, tea.Quit

		case inputMode:
			// handled by the active view below

		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.NextTab):
			return m.switchTab(Tab((int(m.activeTab) + 1) % len(tabNames)))

		case key.Matches(msg, m.keys.PrevTab):
			return m.switchTab(Tab((int(m.activeTab) - 1 + len(tabNames)) % len(tabNames)))

		case key.Matches(msg, m.keys.Tab1):
			return m.switchTab(TabLog)

		case key.Matches(msg, m.keys.Tab2):
			return m.switchTab(TabTotals)

		case key.Matches(msg, m.keys.Tab3):
			return m.switchTab(TabConfig)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		contentHeight := m.height - 4 // tabs and status bar
		m.logView.SetSize(m.width, contentHeight)
		m.totalsView.SetSize(m.width, contentHeight)
		m.configView.SetSize(m.width, contentHeight)
		return m, nil

	case ui.ThemeChangeRequestMsg:
		m.themeProvider.SetTheme(msg.ThemeName)
		newTheme := m.themeProvider.CurrentName()
		m.styles = m.themeProvider.Styles()

		themeMsg := ui.ThemeChangedMsg{
			ThemeName: newTheme,
			Styles:    m.styles,
		}
		m.logView, _ = m.logView.Update(themeMsg)
		m.totalsView, _ = m.totalsView.Update(themeMsg)
		m.configView, _ = m.configView.Update(themeMsg)

		return m, m.saveTheme(newTheme)

	case themeSavedMsg:
		m.err = msg.err
		return m, nil
	}

	switch m.activeTab {
	case TabLog:
		m.logView, cmd = m.logView.Update(msg)
	case TabTotals:
		m.totalsView, cmd = m.totalsView.Update(msg)
	case TabConfig:
		m.configView, cmd = m.configView.Update(msg)
	}

	return m, cmd
}

// switchTab activates tab and reloads its data
func (m Model) switchTab(tab Tab) (tea.Model, tea.Cmd) {
	m.activeTab = tab
	m.showHelp = false
	return m, m.initCurrentView()
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	switch m.activeTab {
	case TabLog:
		b.WriteString(m.logView.View())
	case TabTotals:
		b.WriteString(m.totalsView.View())
	case TabConfig:
		b.WriteString(m.configView.View())
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	return m.styles.App.Render(b.String())
}

// renderTabs renders the tab bar
func (m Model) renderTabs() string {
	var tabs []string
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if Tab(i) == m.activeTab {
			tabs = append(tabs, m.styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(label))
		}
	}
	return m.styles.TabBar.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

// renderStatusBar renders the status bar at the bottom
func (m Model) renderStatusBar() string {
	var parts []string

	if m.isModalInputMode() {
		if m.isSearching() {
			parts = append(parts, m.renderKeyHelp("Enter", "keep"))
			parts = append(parts, m.renderKeyHelp("Esc", "clear"))
		} else {
			parts = append(parts, m.renderKeyHelp("Tab", "next field"))
			parts = append(parts, m.renderKeyHelp("Enter", "log"))
			parts = append(parts, m.renderKeyHelp("Esc", "cancel"))
		}
	} else {
		switch m.activeTab {
		case TabLog:
			parts = append(parts, m.renderKeyHelp("n", "new"))
			parts = append(parts, m.renderKeyHelp("d", "delete"))
			parts = append(parts, m.renderKeyHelp("/", "search"))
			parts = append(parts, m.renderKeyHelp("c/C", "category"))
			parts = append(parts, m.renderKeyHelp("x", "clear"))
		case TabTotals:
			parts = append(parts, m.renderKeyHelp("a", "all"))
			parts = append(parts, m.renderKeyHelp("t", "today"))
			parts = append(parts, m.renderKeyHelp("w", "week"))
		case TabConfig:
			parts = append(parts, m.renderKeyHelp("t", "themes"))
		}

		parts = append(parts, m.renderKeyHelp("1-3", "views"))
		parts = append(parts, m.renderKeyHelp("?", "help"))
		parts = append(parts, m.renderKeyHelp("q", "quit"))
	}

	content := strings.Join(parts, "  ")

	padding := m.width - lipgloss.Width(content)
	if padding > 0 {
		content += strings.Repeat(" ", padding)
	}

	return m.styles.StatusBar.Render(content)
}

// renderKeyHelp renders a single key help item
func (m Model) renderKeyHelp(key, desc string) string {
	return fmt.Sprintf("%s %s",
		m.styles.StatusKey.Render(key),
		m.styles.StatusHelp.Render(desc))
}

// isModalInputMode checks if the current view is capturing keyboard input
// (entry form or search box)
func (m Model) isModalInputMode() bool {
	return m.activeTab == TabLog && m.logView.IsInputMode()
}

func (m Model) isSearching() bool {
	return m.activeTab == TabLog && m.logView.IsSearching()
}

// initCurrentView initializes the current view when switching tabs
func (m Model) initCurrentView() tea.Cmd {
	switch m.activeTab {
	case TabLog:
		return m.logView.Init()
	case TabTotals:
		return m.totalsView.Init()
	case TabConfig:
		return m.configView.Init()
	}
	return nil
}

// saveTheme persists the theme to the config file
func (m Model) saveTheme(themeName string) tea.Cmd {
	return func() tea.Msg {
		return themeSavedMsg{err: m.services.Config.SetTheme(themeName)}
	}
}

// renderHelpOverlay renders the keyboard shortcuts of the active tab
func (m Model) renderHelpOverlay() string {
	var help strings.Builder

	help.WriteString(m.styles.ViewTitle.Render("Keyboard Shortcuts"))
	help.WriteString("\n\n")

	help.WriteString(m.styles.StatLabel.Render("Global:"))
	help.WriteString("\n")
	help.WriteString("  Tab/1-3    Switch views\n")
	help.WriteString("  ?          Toggle help\n")
	help.WriteString("  q          Quit\n")
	help.WriteString("  ctrl+c     Quit from anywhere\n")
	help.WriteString("\n")

	switch m.activeTab {
	case TabLog:
		help.WriteString(m.styles.StatLabel.Render("Log:"))
		help.WriteString("\n")
		help.WriteString("  j/k        Navigate up/down\n")
		help.WriteString("  n          Log food\n")
		help.WriteString("  d          Delete entry\n")
		help.WriteString("  / or s     Search by name\n")
		help.WriteString("  c/C        Next/Previous category filter\n")
		help.WriteString("  x          Clear filter\n")
		help.WriteString("  r          Refresh\n")
		help.WriteString("\n")
		help.WriteString(m.styles.StatLabel.Render("Form:"))
		help.WriteString("\n")
		help.WriteString("  Tab/↑↓     Move between fields\n")
		help.WriteString("  ←/→        Change category\n")
		help.WriteString("  Enter      Log the entry\n")
		help.WriteString("  Esc        Cancel\n")
	case TabTotals:
		help.WriteString(m.styles.StatLabel.Render("Totals:"))
		help.WriteString("\n")
		help.WriteString("  a          All time\n")
		help.WriteString("  t          Today\n")
		help.WriteString("  w          Last 7 days\n")
		help.WriteString("  r          Refresh\n")
	case TabConfig:
		help.WriteString(m.styles.StatLabel.Render("Config:"))
		help.WriteString("\n")
		help.WriteString("  t/Enter    Open theme selector\n")
		help.WriteString("  j/k        Navigate themes\n")
		help.WriteString("  Enter      Select theme\n")
		help.WriteString("  Esc        Cancel\n")
		help.WriteString("  r          Reload config file\n")
	}

	help.WriteString("\n")
	help.WriteString(m.styles.Hint.Render("Press ? to close"))

	return m.styles.App.Render(m.styles.Dialog.Render(help.String()))
}

// Run starts the TUI application
func Run(services *service.Services) error {
	p := tea.NewProgram(New(services), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
