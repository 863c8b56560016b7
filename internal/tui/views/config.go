package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xolan/nutritrack/internal/config"
	"github.com/xolan/nutritrack/internal/service"
	"github.com/xolan/nutritrack/internal/storage"
	"github.com/xolan/nutritrack/internal/tui/ui"
)

// pickerHeight is the number of themes listed at once
const pickerHeight = 10

// settings is what the config view shows about the running setup
type settings struct {
	config   config.Config
	path     string
	exists   bool
	location string
	health   storage.Health
}

// settingsLoadedMsg carries a fresh settings snapshot
type settingsLoadedMsg struct {
	settings settings
	err      error
}

// themePicker is a scrolling list of theme names
type themePicker struct {
	open   bool
	names  []string
	cursor int
	offset int
}

func (p *themePicker) move(delta int) {
	p.cursor = max(0, min(p.cursor+delta, len(p.names)-1))
	p.offset = followCursor(p.cursor, p.offset, pickerHeight, len(p.names))
}

// pointAt moves the cursor onto name, if it is listed
func (p *themePicker) pointAt(name string) {
	for i, n := range p.names {
		if n == name {
			p.cursor = i
			p.offset = followCursor(i, p.offset, pickerHeight, len(p.names))
			return
		}
	}
}

func (p themePicker) selected() string {
	return p.names[p.cursor]
}

// ConfigModel shows the configuration and lets the user pick a theme
type ConfigModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	width    int
	height   int
	settings settings
	theme    string
	err      error
	picker   themePicker
}

// NewConfigModel creates a new config view model
func NewConfigModel(services *service.Services, themeProvider *ui.ThemeProvider, styles ui.Styles, keys ui.KeyMap) ConfigModel {
	m := ConfigModel{
		services: services,
		styles:   styles,
		keys:     keys,
		theme:    themeProvider.CurrentName(),
		picker:   themePicker{names: themeProvider.AvailableThemes()},
	}
	m.picker.pointAt(m.theme)
	return m
}

// Init implements tea.Model
func (m ConfigModel) Init() tea.Cmd {
	return m.loadSettings(false)
}

// Update implements tea.Model
func (m ConfigModel) Update(msg tea.Msg) (ConfigModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.picker.open {
			return m.updatePicker(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadSettings(true)
		case key.Matches(msg, m.keys.Themes):
			m.picker.open = true
			m.picker.pointAt(m.theme)
		}

	case settingsLoadedMsg:
		m.err = msg.err
		m.settings = msg.settings
		m.theme = orDefault(msg.settings.config.Theme, ui.DefaultTheme)
		m.picker.pointAt(m.theme)

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		m.theme = msg.ThemeName
	}

	return m, nil
}

func (m ConfigModel) updatePicker(msg tea.KeyMsg) (ConfigModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.picker.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.picker.move(1)
	case key.Matches(msg, m.keys.Select):
		m.picker.open = false
		name := m.picker.selected()
		return m, func() tea.Msg {
			return ui.ThemeChangeRequestMsg{ThemeName: name}
		}
	case key.Matches(msg, m.keys.Back):
		m.picker.open = false
		m.picker.pointAt(m.theme)
	}
	return m, nil
}

// loadSettings snapshots the config and the food log health. With reload
// set the config file is read again first.
func (m ConfigModel) loadSettings(reload bool) tea.Cmd {
	return func() tea.Msg {
		var err error
		if reload {
			err = m.services.Config.Reload()
		}
		health, healthErr := m.services.Log.Validate()
		if err == nil {
			err = healthErr
		}
		return settingsLoadedMsg{
			settings: settings{
				config:   m.services.Config.Get(),
				path:     m.services.Config.GetPath(),
				exists:   m.services.Config.Exists(),
				location: m.services.StorageLocation(),
				health:   health,
			},
			err: err,
		}
	}
}

// View implements tea.Model
func (m ConfigModel) View() string {
	var b strings.Builder
	s := m.settings

	b.WriteString(m.styles.ViewTitle.Render("Configuration"))
	b.WriteString("\n\n")

	fileStatus := m.styles.Warning.Render("Using defaults (no config file)")
	if s.exists {
		fileStatus = m.styles.Success.Render("File exists")
	}
	b.WriteString(m.row("Config file", m.styles.StatValue.Render(s.path)))
	b.WriteString(m.row("Status", fileStatus))

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString(m.section("Storage"))
	b.WriteString(m.row("storage_backend", m.styles.StatValue.Render(s.config.StorageBackend)))
	b.WriteString(m.row("data_dir", m.styles.StatValue.Render(orDefault(s.config.DataDir, "(default)"))))
	b.WriteString(m.row("food log", m.styles.StatValue.Render(s.location)))
	b.WriteString(m.row("log health", m.renderHealth(s.health)))

	b.WriteString(m.section("Display"))
	b.WriteString(m.row("timezone", m.styles.StatValue.Render(s.config.Timezone)))
	if m.picker.open {
		b.WriteString(m.row("theme", m.styles.StatValue.Render("Select a theme")))
		b.WriteString("\n")
		b.WriteString(m.renderPicker())
		return b.String()
	}
	b.WriteString(m.row("theme", m.styles.StatValue.Render(m.theme)))
	b.WriteString("\n")
	b.WriteString(m.styles.Hint.Render("Press Enter or 't' to change theme, 'r' to reload the config file"))

	return b.String()
}

func (m ConfigModel) section(title string) string {
	rule := strings.Repeat("─", max(0, min(50, m.width)-len(title)-1))
	return "\n" + m.styles.FilterLabel.Render(title+" "+rule) + "\n"
}

func (m ConfigModel) row(label, rendered string) string {
	return m.styles.StatLabel.Render(label+":") + " " + rendered + "\n"
}

func (m ConfigModel) renderHealth(h storage.Health) string {
	switch {
	case !h.Exists:
		return m.styles.StatValue.Render("empty")
	case h.IsHealthy():
		return m.styles.Success.Render(fmt.Sprintf("ok, %d %s", h.TotalEntries, pluralize("entry", h.TotalEntries)))
	case !h.Readable:
		return m.styles.Error.Render("unreadable, run 'nutri validate'")
	default:
		return m.styles.Warning.Render(fmt.Sprintf("%d of %d entries have problems", len(h.Issues), h.TotalEntries))
	}
}

func (m ConfigModel) renderPicker() string {
	var b strings.Builder
	p := m.picker
	end := min(p.offset+pickerHeight, len(p.names))

	if p.offset > 0 {
		b.WriteString(m.styles.Hint.Render("  ↑ more themes above"))
		b.WriteString("\n")
	}
	for i, name := range p.names[p.offset:end] {
		label := name
		if name == m.theme {
			label += " (current)"
		}
		if p.offset+i == p.cursor {
			b.WriteString(m.styles.EntrySelected.Render("▸ " + label))
		} else {
			b.WriteString("  " + m.styles.StatValue.Render(label))
		}
		b.WriteString("\n")
	}
	if end < len(p.names) {
		b.WriteString(m.styles.Hint.Render("  ↓ more themes below"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Hint.Render("↑/↓ navigate  Enter select  Esc cancel"))
	return b.String()
}

// SetSize sets the view dimensions
func (m *ConfigModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
