package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xolan/nutritrack/internal/service"
	"github.com/xolan/nutritrack/internal/stats"
	"github.com/xolan/nutritrack/internal/timeutil"
	"github.com/xolan/nutritrack/internal/tui/ui"
)

// totalsPeriod selects the range summarised by the totals view
type totalsPeriod int

const (
	periodAllTime totalsPeriod = iota
	periodToday
	periodLastWeek
)

// maxDays is the number of days listed in the per-day breakdown
const maxDays = 7

// TotalsModel is the model for the totals view
type TotalsModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	// UI state
	width   int
	height  int
	summary *service.Summary
	loading bool
	err     error
	period  totalsPeriod
}

// NewTotalsModel creates a new totals view model
func NewTotalsModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) TotalsModel {
	return TotalsModel{
		services: services,
		styles:   styles,
		keys:     keys,
		loading:  true,
	}
}

// totalsLoadedMsg is sent when the summary is loaded
type totalsLoadedMsg struct {
	summary *service.Summary
	err     error
}

// Init implements tea.Model
func (m TotalsModel) Init() tea.Cmd {
	return m.loadTotals()
}

// Update implements tea.Model
func (m TotalsModel) Update(msg tea.Msg) (TotalsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.AllTime):
			m.period = periodAllTime
			return m, m.loadTotals()
		case key.Matches(msg, m.keys.Today):
			m.period = periodToday
			return m, m.loadTotals()
		case key.Matches(msg, m.keys.LastWeek):
			m.period = periodLastWeek
			return m, m.loadTotals()
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadTotals()
		}

	case totalsLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.summary = msg.summary

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	return m, nil
}

// View implements tea.Model
func (m TotalsModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render(m.title()))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString("Loading...")
		return b.String()
	}

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		return b.String()
	}

	if m.summary == nil || m.summary.EntryCount == 0 {
		b.WriteString(m.styles.Hint.Render("No entries in this period"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Hint.Render("a all time  t today  w last 7 days"))
		return b.String()
	}

	s := m.summary
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderCard("Calories", stats.Format(s.Totals.Calories)+" kcal"),
		m.renderCard("Protein", stats.Format(s.Totals.Protein)+" g"),
		m.renderCard("Carbs", stats.Format(s.Totals.Carbs)+" g"),
		m.renderCard("Fat", stats.Format(s.Totals.Fat)+" g"),
	))
	b.WriteString("\n\n")

	b.WriteString(m.renderStatLine("Entries:", fmt.Sprintf("%d %s", s.EntryCount, pluralize("entry", s.EntryCount))))
	b.WriteString(m.renderStatLine("Days logged:", fmt.Sprintf("%d %s", len(s.Days), pluralize("day", len(s.Days)))))
	b.WriteString(m.renderStatLine("Daily average:", formatCalories(s.DailyAvg.Calories)+"  "+formatMacros(s.DailyAvg)))

	if len(s.Categories) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.ViewTitle.Render("By Category"))
		b.WriteString("\n")
		for _, c := range s.Categories {
			b.WriteString(fmt.Sprintf("  %-10s %3d  %12s  %s\n",
				c.Category, c.EntryCount, formatCalories(c.Totals.Calories), formatMacros(c.Totals)))
		}
	}

	if m.period != periodToday && len(s.Days) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.ViewTitle.Render("By Day"))
		b.WriteString("\n")
		for _, d := range s.Days[:min(maxDays, len(s.Days))] {
			b.WriteString(fmt.Sprintf("  %-10s %3d  %12s  %s\n",
				d.Day, d.EntryCount, formatCalories(d.Totals.Calories), formatMacros(d.Totals)))
		}
	}

	return b.String()
}

func (m TotalsModel) title() string {
	switch m.period {
	case periodToday:
		return "Totals for Today"
	case periodLastWeek:
		return "Totals for the Last 7 Days"
	default:
		return "Totals for All Time"
	}
}

// SetSize sets the view dimensions
func (m *TotalsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Range returns the time range of the selected period
func (m TotalsModel) Range() timeutil.Range {
	now := m.services.Log.Now().In(m.services.Log.Location())
	switch m.period {
	case periodToday:
		return timeutil.Range{Start: timeutil.StartOfDay(now), End: timeutil.EndOfDay(now)}
	case periodLastWeek:
		return timeutil.Range{Start: timeutil.StartOfDay(now.AddDate(0, 0, -6)), End: timeutil.EndOfDay(now)}
	default:
		return timeutil.Range{End: timeutil.EndOfDay(now)}
	}
}

// loadTotals creates a command to load the summary
func (m TotalsModel) loadTotals() tea.Cmd {
	r := m.Range()
	return func() tea.Msg {
		summary, err := m.services.Stats.ForRange(r)
		return totalsLoadedMsg{summary: summary, err: err}
	}
}

func (m TotalsModel) renderCard(label, value string) string {
	return m.styles.Card.Render(m.styles.CardLabel.Render(label) + "\n" + m.styles.CardValue.Render(value))
}

func (m TotalsModel) renderStatLine(label, value string) string {
	return m.styles.StatLabel.Render(label) + " " + m.styles.StatValue.Render(value) + "\n"
}
