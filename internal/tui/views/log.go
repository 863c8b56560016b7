package views

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xolan/nutritrack/internal/filter"
	"github.com/xolan/nutritrack/internal/food"
	"github.com/xolan/nutritrack/internal/form"
	"github.com/xolan/nutritrack/internal/service"
	"github.com/xolan/nutritrack/internal/tui/ui"
)

// logMode represents the current mode of the log view
type logMode int

const (
	logModeNormal logMode = iota
	logModeSearch
	logModeForm
	logModeDelete
)

// formField identifies a field of the entry form
type formField int

const (
	fieldName formField = iota
	fieldCategory
	fieldCalories
	fieldProtein
	fieldCarbs
	fieldFat
	formFieldCount
)

var formLabels = [formFieldCount]string{"Name", "Category", "Calories", "Protein (g)", "Carbs (g)", "Fat (g)"}

var formFieldNames = [formFieldCount]string{
	form.FieldName, form.FieldCategory, form.FieldCalories,
	form.FieldProtein, form.FieldCarbs, form.FieldFat,
}

// LogModel is the model for the food log view: totals header, filter bar,
// entry list and the entry form
type LogModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	// UI state
	width   int
	height  int
	cursor  int
	offset  int
	entries []food.Entry // whole log, newest first
	visible []food.Entry // entries matching query
	totals  food.Macros  // totals of the whole log
	loading bool
	err     error
	status  string

	mode        logMode
	query       filter.Query
	searchInput textinput.Model

	// Form state. inputs[fieldCategory] is unused; the category is a selector.
	inputs   [formFieldCount]textinput.Model
	category food.Category
	focus    formField
	formErr  string
}

// NewLogModel creates a new log view model
func NewLogModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) LogModel {
	searchInput := textinput.New()
	searchInput.Placeholder = "Search by name..."
	searchInput.Prompt = ""
	searchInput.CharLimit = 100
	searchInput.Width = 30

	m := LogModel{
		services:    services,
		styles:      styles,
		keys:        keys,
		loading:     true,
		query:       filter.NewQuery("", food.CategoryAll),
		searchInput: searchInput,
	}

	for f := range formFieldCount {
		if f == fieldCategory {
			continue
		}
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 12
		in.Width = 12
		in.Placeholder = "0"
		if f == fieldName {
			in.CharLimit = 100
			in.Width = 40
			in.Placeholder = "e.g. Apple"
		}
		m.inputs[f] = in
	}
	m.resetForm()

	return m
}

// logLoadedMsg is sent when the log is loaded
type logLoadedMsg struct {
	entries []food.Entry
	totals  food.Macros
	status  string
	err     error
}

// entryAddedMsg is sent after the form was submitted
type entryAddedMsg struct {
	entry  *food.Entry
	err    error
	loaded logLoadedMsg
}

// Init implements tea.Model
func (m LogModel) Init() tea.Cmd {
	return m.loadLog()
}

// Update implements tea.Model
func (m LogModel) Update(msg tea.Msg) (LogModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case logModeForm:
			return m.handleFormMode(msg)
		case logModeDelete:
			return m.handleDeleteMode(msg)
		case logModeSearch:
			return m.handleSearchMode(msg)
		}
		return m.handleNormalMode(msg)

	case logLoadedMsg:
		m.applyLoaded(msg)
		return m, nil

	case entryAddedMsg:
		if msg.err != nil {
			var fieldErr *form.FieldError
			switch {
			case errors.Is(msg.err, form.ErrIncomplete):
				// Missing name or calories is not worth a message.
			case errors.As(msg.err, &fieldErr):
				m.formErr = fieldErr.Error()
				return m, m.focusField(fieldByName(fieldErr.Field))
			default:
				m.formErr = msg.err.Error()
			}
			return m, nil
		}
		m.resetForm()
		m.mode = logModeNormal
		msg.loaded.status = fmt.Sprintf("Logged %s (%s)", msg.entry.Name, formatCalories(msg.entry.Calories))
		m.applyLoaded(msg.loaded)
		return m, nil

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	return m, nil
}

func (m *LogModel) applyLoaded(msg logLoadedMsg) {
	m.loading = false
	m.err = msg.err
	if msg.err != nil {
		return
	}
	m.entries = msg.entries
	m.totals = msg.totals
	m.status = msg.status
	m.applyFilter()
}

// handleNormalMode handles key events when browsing the list
func (m LogModel) handleNormalMode(msg tea.KeyMsg) (LogModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.scrollToCursor()
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
			m.scrollToCursor()
		}
	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadLog()
	case key.Matches(msg, m.keys.New):
		m.resetForm()
		m.mode = logModeForm
		m.status = ""
		return m, m.focusField(fieldName)
	case key.Matches(msg, m.keys.Delete):
		if m.cursor < len(m.visible) {
			m.mode = logModeDelete
		}
	case key.Matches(msg, m.keys.Search):
		m.mode = logModeSearch
		m.searchInput.SetValue(m.query.Search)
		m.searchInput.CursorEnd()
		m.searchInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.NextCategory):
		m.query.Category = food.Next(food.FilterCategories(), m.query.Category)
		m.applyFilter()
	case key.Matches(msg, m.keys.PrevCategory):
		m.query.Category = food.Prev(food.FilterCategories(), m.query.Category)
		m.applyFilter()
	case key.Matches(msg, m.keys.ClearFilter):
		m.query = filter.NewQuery("", food.CategoryAll)
		m.searchInput.SetValue("")
		m.applyFilter()
	}
	return m, nil
}

// handleSearchMode filters the list on every keystroke
func (m LogModel) handleSearchMode(msg tea.KeyMsg) (LogModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		m.mode = logModeNormal
		m.searchInput.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Back):
		m.mode = logModeNormal
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.query.Search = ""
		m.applyFilter()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.query.Search = m.searchInput.Value()
	m.applyFilter()
	return m, cmd
}

// handleFormMode handles key events while the entry form is open
func (m LogModel) handleFormMode(msg tea.KeyMsg) (LogModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.mode = logModeNormal
		m.blurInputs()
		m.formErr = ""
		return m, nil
	case key.Matches(msg, m.keys.Select):
		m.formErr = ""
		return m, m.addEntry(m.formFields())
	case key.Matches(msg, m.keys.NextField):
		return m, m.focusField((m.focus + 1) % formFieldCount)
	case key.Matches(msg, m.keys.PrevField):
		return m, m.focusField((m.focus - 1 + formFieldCount) % formFieldCount)
	}

	if m.focus == fieldCategory {
		switch {
		case key.Matches(msg, m.keys.Left):
			m.category = food.Prev(food.Categories(), m.category)
		case key.Matches(msg, m.keys.Right):
			m.category = food.Next(food.Categories(), m.category)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// handleDeleteMode handles key events when in delete confirmation mode
func (m LogModel) handleDeleteMode(msg tea.KeyMsg) (LogModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = logModeNormal
		if m.cursor < len(m.visible) {
			return m, m.deleteEntry(m.visible[m.cursor])
		}
	case "n", "N", "esc":
		m.mode = logModeNormal
	}
	return m, nil
}

// applyFilter recomputes the visible entries from the cached log
func (m *LogModel) applyFilter() {
	m.visible = filter.Apply(m.entries, m.query)
	if m.cursor >= len(m.visible) {
		m.cursor = max(0, len(m.visible)-1)
	}
	m.scrollToCursor()
}

func (m *LogModel) scrollToCursor() {
	m.offset = followCursor(m.cursor, m.offset, m.listHeight(), len(m.visible))
}

func (m LogModel) listHeight() int {
	// title, totals, filter bar, blank, status and separators
	return max(3, m.height-8)
}

func (m *LogModel) resetForm() {
	defaults := form.DefaultFields()
	for f := range formFieldCount {
		if f != fieldCategory {
			m.inputs[f].SetValue("")
		}
	}
	m.category = food.Category(defaults.Category)
	m.focus = fieldName
	m.formErr = ""
}

func (m *LogModel) blurInputs() {
	for f := range formFieldCount {
		if f != fieldCategory {
			m.inputs[f].Blur()
		}
	}
}

func (m *LogModel) focusField(f formField) tea.Cmd {
	m.blurInputs()
	m.focus = f
	if f == fieldCategory {
		return nil
	}
	m.inputs[f].Focus()
	return textinput.Blink
}

func fieldByName(name string) formField {
	for f, n := range formFieldNames {
		if n == name {
			return formField(f)
		}
	}
	return fieldName
}

func (m LogModel) formFields() form.Fields {
	return form.Fields{
		Name:     m.inputs[fieldName].Value(),
		Category: string(m.category),
		Calories: m.inputs[fieldCalories].Value(),
		Protein:  m.inputs[fieldProtein].Value(),
		Carbs:    m.inputs[fieldCarbs].Value(),
		Fat:      m.inputs[fieldFat].Value(),
	}
}

// View implements tea.Model
func (m LogModel) View() string {
	switch m.mode {
	case logModeForm:
		return m.renderForm()
	case logModeDelete:
		return m.renderDeleteConfirm()
	}

	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render("Food Log"))
	b.WriteString("\n")

	if m.loading {
		b.WriteString("Loading...")
		return b.String()
	}

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		return b.String()
	}

	b.WriteString(m.renderTotals())
	b.WriteString("\n")
	b.WriteString(m.renderFilterBar())
	b.WriteString("\n\n")

	switch {
	case len(m.entries) == 0:
		b.WriteString(m.styles.Hint.Render("No entries yet"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Hint.Render("Press 'n' to log some food"))
	case len(m.visible) == 0:
		b.WriteString(m.styles.Hint.Render("No entries match the filter"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Hint.Render("Press 'x' to clear the filter"))
	default:
		b.WriteString(RenderEntryList(m.visible, m.services.Log.Location(), m.styles, EntryRenderOptions{
			Width:  m.width,
			Cursor: m.cursor,
			Offset: m.offset,
			Limit:  m.listHeight(),
		}))
		if len(m.visible) != len(m.entries) {
			b.WriteString(m.styles.Hint.Render(fmt.Sprintf("Showing %d of %d %s",
				len(m.visible), len(m.entries), pluralize("entry", len(m.entries)))))
			b.WriteString("\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Success.Render(m.status))
	}

	return b.String()
}

// renderTotals renders the running totals of the whole log
func (m LogModel) renderTotals() string {
	label := fmt.Sprintf("Total (%d %s):", len(m.entries), pluralize("entry", len(m.entries)))
	return m.styles.CardLabel.Render(label) + " " +
		m.styles.CardValue.Render(formatCalories(m.totals.Calories)) + "  " +
		m.styles.EntryMacros.Render(formatMacros(m.totals))
}

// renderFilterBar renders the search text and the category filter
func (m LogModel) renderFilterBar() string {
	var b strings.Builder

	b.WriteString(m.styles.FilterLabel.Render("Search: "))
	switch {
	case m.mode == logModeSearch:
		b.WriteString(m.searchInput.View())
	case m.query.Search != "":
		b.WriteString(m.styles.FilterActive.Render(m.query.Search))
	default:
		b.WriteString(m.styles.Hint.Render("(press /)"))
	}

	b.WriteString("   ")
	b.WriteString(m.styles.FilterLabel.Render("Category: "))
	category := string(m.query.Category)
	if category == "" {
		category = string(food.CategoryAll)
	}
	if m.query.Category != food.CategoryAll && m.query.Category != "" {
		b.WriteString(m.styles.FilterActive.Render(category))
	} else {
		b.WriteString(m.styles.Hint.Render(category))
	}

	return b.String()
}

// renderForm renders the new entry form
func (m LogModel) renderForm() string {
	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render("Log Food"))
	b.WriteString("\n\n")

	for f := range formFieldCount {
		label := formLabels[f]
		if f == m.focus {
			label = "▸ " + label
		} else {
			label = "  " + label
		}
		var value string
		if f == fieldCategory {
			value = fmt.Sprintf("◂ %s ▸", m.category)
		} else {
			value = m.inputs[f].View()
		}
		box := m.styles.Input
		if f == m.focus {
			box = m.styles.InputFocused
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center,
			m.styles.FieldLabel.Render(label), " ", box.Render(value)))
		b.WriteString("\n")
	}

	if m.formErr != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(m.formErr))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Hint.Render("Tab/↑↓ move between fields  ←/→ change category  Enter log  Esc cancel"))
	return b.String()
}

// renderDeleteConfirm renders the delete confirmation dialog
func (m LogModel) renderDeleteConfirm() string {
	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render("Delete Entry"))
	b.WriteString("\n\n")

	if m.cursor < len(m.visible) {
		e := m.visible[m.cursor]
		b.WriteString(m.styles.Warning.Render("Are you sure you want to delete this entry?"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.StatLabel.Render("Name:"))
		b.WriteString(m.styles.StatValue.Render(e.Name))
		b.WriteString("\n")
		b.WriteString(m.styles.StatLabel.Render("Category:"))
		b.WriteString(m.styles.StatValue.Render(string(e.Category)))
		b.WriteString("\n")
		b.WriteString(m.styles.StatLabel.Render("Calories:"))
		b.WriteString(m.styles.StatValue.Render(formatCalories(e.Calories)))
		b.WriteString("\n\n")
	}

	b.WriteString(m.styles.Hint.Render("Press Y to confirm, N or Esc to cancel"))
	return b.String()
}

// SetSize sets the view dimensions
func (m *LogModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.scrollToCursor()
}

// Query returns the active filter
func (m LogModel) Query() filter.Query {
	return m.query
}

// Visible returns the entries currently shown
func (m LogModel) Visible() []food.Entry {
	return m.visible
}

// IsSearching returns true while the search box has focus
func (m LogModel) IsSearching() bool {
	return m.mode == logModeSearch
}

// IsInputMode returns true when the view is capturing keyboard input
func (m LogModel) IsInputMode() bool {
	return m.mode == logModeForm || m.mode == logModeSearch
}

func (m LogModel) load(status string) logLoadedMsg {
	result, err := m.services.Log.List(filter.Query{})
	if err != nil {
		return logLoadedMsg{err: err}
	}
	return logLoadedMsg{
		entries: result.Entries,
		totals:  result.Totals,
		status:  status,
	}
}

// loadLog creates a command to load the log
func (m LogModel) loadLog() tea.Cmd {
	return func() tea.Msg {
		return m.load("")
	}
}

// addEntry creates a command that submits fields and reloads the log
func (m LogModel) addEntry(fields form.Fields) tea.Cmd {
	return func() tea.Msg {
		e, err := m.services.Log.Add(fields)
		if err != nil {
			return entryAddedMsg{err: err}
		}
		return entryAddedMsg{entry: e, loaded: m.load("")}
	}
}

// deleteEntry creates a command to delete an entry and reload the log
func (m LogModel) deleteEntry(e food.Entry) tea.Cmd {
	return func() tea.Msg {
		if _, _, err := m.services.Log.DeleteByID(e.ID); err != nil {
			return logLoadedMsg{err: err}
		}
		return m.load(fmt.Sprintf("Deleted %s", e.Name))
	}
}
