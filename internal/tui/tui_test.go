package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/xolan/nutritrack/internal/config"
	"github.com/xolan/nutritrack/internal/form"
	"github.com/xolan/nutritrack/internal/service"
	"github.com/xolan/nutritrack/internal/storage"
	"github.com/xolan/nutritrack/internal/tui/ui"
)

func setupTestServices(t *testing.T) *service.Services {
	t.Helper()
	dir := t.TempDir()
	kv, err := storage.NewFileKV(dir)
	if err != nil {
		t.Fatal(err)
	}

	services, err := service.NewServicesWithKV(kv, dir, filepath.Join(dir, config.ConfigFile), config.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	return services
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sized(t *testing.T, model Model) Model {
	t.Helper()
	newModel, _ := model.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return newModel.(Model)
}

func TestNew(t *testing.T) {
	model := New(setupTestServices(t))

	if model.activeTab != TabLog {
		t.Errorf("expected initial tab to be Log, got %d", model.activeTab)
	}
	if model.services == nil {
		t.Error("expected services to be set")
	}
	if model.showHelp {
		t.Error("expected showHelp to be false initially")
	}
	if model.themeProvider.CurrentName() != config.DefaultTheme {
		t.Errorf("expected theme %q, got %q", config.DefaultTheme, model.themeProvider.CurrentName())
	}
}

func TestNew_ConfiguredTheme(t *testing.T) {
	services := setupTestServices(t)
	cfg := services.Config.Get()
	cfg.Theme = "nord"
	if err := services.Config.Update(cfg); err != nil {
		t.Fatal(err)
	}

	model := New(services)
	if model.themeProvider.CurrentName() != "nord" {
		t.Errorf("expected theme nord, got %q", model.themeProvider.CurrentName())
	}
}

func TestInit(t *testing.T) {
	model := New(setupTestServices(t))

	if model.Init() == nil {
		t.Error("expected Init to return a command")
	}
}

func TestUpdate_WindowSizeMsg(t *testing.T) {
	m := sized(t, New(setupTestServices(t)))

	if m.width != 100 {
		t.Errorf("expected width 100, got %d", m.width)
	}
	if m.height != 30 {
		t.Errorf("expected height 30, got %d", m.height)
	}
}

func TestUpdate_QuitKeys(t *testing.T) {
	model := New(setupTestServices(t))

	for _, msg := range []tea.KeyMsg{keyRunes("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := model.Update(msg)
		if cmd == nil {
			t.Fatalf("expected quit command for %q", msg.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("expected tea.QuitMsg for %q", msg.String())
		}
	}
}

func TestUpdate_HelpKey(t *testing.T) {
	model := sized(t, New(setupTestServices(t)))

	newModel, _ := model.Update(keyRunes("?"))
	m := newModel.(Model)
	if !m.showHelp {
		t.Error("expected showHelp to be true after pressing ?")
	}
	if view := m.View(); !strings.Contains(view, "Keyboard Shortcuts") || !strings.Contains(view, "Log food") {
		t.Errorf("expected log help, got %q", view)
	}

	newModel, _ = m.Update(keyRunes("?"))
	m = newModel.(Model)
	if m.showHelp {
		t.Error("expected showHelp to be false after pressing ? again")
	}
}

func TestUpdate_TabNavigation(t *testing.T) {
	model := New(setupTestServices(t))

	newModel, cmd := model.Update(tea.KeyMsg{Type: tea.KeyTab})
	m := newModel.(Model)

	if m.activeTab != TabTotals {
		t.Errorf("expected Totals after pressing tab, got %d", m.activeTab)
	}
	if cmd == nil {
		t.Error("expected switching tabs to load the view")
	}
}

func TestUpdate_DirectTabKeys(t *testing.T) {
	model := New(setupTestServices(t))

	tests := []struct {
		key      string
		expected Tab
	}{
		{"2", TabTotals},
		{"3", TabConfig},
		{"1", TabLog},
	}

	for _, tt := range tests {
		newModel, _ := model.Update(keyRunes(tt.key))
		m := newModel.(Model)

		if m.activeTab != tt.expected {
			t.Errorf("pressing %s: expected tab %d, got %d", tt.key, tt.expected, m.activeTab)
		}
	}
}

func TestUpdate_TabWraparound(t *testing.T) {
	model := New(setupTestServices(t))

	newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m := newModel.(Model); m.activeTab != TabConfig {
		t.Errorf("expected Config after shift+tab from Log, got %d", m.activeTab)
	}

	model.activeTab = TabConfig
	newModel, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m := newModel.(Model); m.activeTab != TabLog {
		t.Errorf("expected Log after tab from Config, got %d", m.activeTab)
	}
}

func TestView_Loading(t *testing.T) {
	model := New(setupTestServices(t))

	if view := model.View(); !strings.Contains(view, "Loading") {
		t.Errorf("expected 'Loading...' when width is 0, got %q", view)
	}
}

func TestView_AllTabs(t *testing.T) {
	m := sized(t, New(setupTestServices(t)))

	titles := map[Tab]string{
		TabLog:    "Food Log",
		TabTotals: "Totals for All Time",
		TabConfig: "Configuration",
	}
	for tab, title := range titles {
		m.activeTab = tab
		newModel, _ := m.Update(m.initCurrentView()())
		m = newModel.(Model)

		view := m.View()
		if !strings.Contains(view, title) {
			t.Errorf("expected %q in view for tab %d, got %q", title, tab, view)
		}
		for _, name := range tabNames {
			if !strings.Contains(view, name) {
				t.Errorf("expected tab name %q in view", name)
			}
		}
	}
}

func TestRenderStatusBar(t *testing.T) {
	model := New(setupTestServices(t))
	model.width = 100

	tests := []struct {
		tab  Tab
		want []string
	}{
		{TabLog, []string{"new", "delete", "search", "category"}},
		{TabTotals, []string{"all", "today", "week"}},
		{TabConfig, []string{"themes"}},
	}

	for _, tt := range tests {
		model.activeTab = tt.tab
		statusBar := model.renderStatusBar()
		for _, want := range append(tt.want, "1-3", "help", "quit") {
			if !strings.Contains(statusBar, want) {
				t.Errorf("tab %d: expected %q in status bar, got %q", tt.tab, want, statusBar)
			}
		}
	}
}

func TestRenderKeyHelp(t *testing.T) {
	model := New(setupTestServices(t))

	help := model.renderKeyHelp("q", "quit")
	if !strings.Contains(help, "q") || !strings.Contains(help, "quit") {
		t.Errorf("unexpected key help %q", help)
	}
}

func TestInitCurrentView_InvalidTab(t *testing.T) {
	model := New(setupTestServices(t))
	model.activeTab = Tab(999)

	if cmd := model.initCurrentView(); cmd != nil {
		t.Error("expected nil command for invalid tab")
	}
}

func TestTabNames(t *testing.T) {
	expected := []string{"Log", "Totals", "Config"}

	if len(tabNames) != len(expected) {
		t.Fatalf("expected %d tab names, got %d", len(expected), len(tabNames))
	}
	for i, name := range expected {
		if tabNames[i] != name {
			t.Errorf("expected tab name %d to be %s, got %s", i, name, tabNames[i])
		}
	}
}

func TestUpdate_FormBlocksGlobalKeys(t *testing.T) {
	m := sized(t, New(setupTestServices(t)))

	newModel, _ := m.Update(keyRunes("n"))
	m = newModel.(Model)
	if !m.isModalInputMode() {
		t.Fatal("expected 'n' to open the form")
	}

	// Digits, q and tab belong to the form
	for _, msg := range []tea.KeyMsg{keyRunes("2"), keyRunes("q"), {Type: tea.KeyTab}} {
		newModel, _ = m.Update(msg)
		m = newModel.(Model)
		if m.activeTab != TabLog {
			t.Fatalf("expected to stay on Log after %q, got %d", msg.String(), m.activeTab)
		}
	}

	if view := m.View(); !strings.Contains(view, "next field") {
		t.Errorf("expected form hints in status bar, got %q", view)
	}

	// ctrl+c still quits
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected ctrl+c to quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestUpdate_LogFormEndToEnd(t *testing.T) {
	services := setupTestServices(t)
	m := sized(t, New(services))
	newModel, _ := m.Update(m.Init()())
	m = newModel.(Model)

	steps := []tea.KeyMsg{
		keyRunes("n"),
		keyRunes("Eggs"),
		{Type: tea.KeyTab},
		{Type: tea.KeyRight}, // Protein
		{Type: tea.KeyTab},
		keyRunes("155"),
	}
	for _, msg := range steps {
		newModel, _ = m.Update(msg)
		m = newModel.(Model)
	}

	newModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = newModel.(Model)
	if cmd == nil {
		t.Fatal("expected submit command")
	}
	newModel, _ = m.Update(cmd())
	m = newModel.(Model)

	entries, err := services.Log.Entries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name != "Eggs" || entries[0].Calories != 155 {
		t.Fatalf("unexpected entries %+v", entries)
	}
	if view := m.View(); !strings.Contains(view, "Eggs") || !strings.Contains(view, "155 kcal") {
		t.Errorf("expected new entry in view, got %q", view)
	}
}

func TestUpdate_TotalsTabReflectsLog(t *testing.T) {
	services := setupTestServices(t)
	if _, err := services.Log.Add(form.Fields{Name: "Apple", Category: "Fruit", Calories: "200"}); err != nil {
		t.Fatal(err)
	}
	m := sized(t, New(services))

	newModel, cmd := m.Update(keyRunes("2"))
	m = newModel.(Model)
	newModel, _ = m.Update(cmd())
	m = newModel.(Model)

	if view := m.View(); !strings.Contains(view, "200 kcal") {
		t.Errorf("expected totals in view, got %q", view)
	}
}

func TestUpdate_ThemeChangeRequest(t *testing.T) {
	services := setupTestServices(t)
	m := sized(t, New(services))

	newModel, cmd := m.Update(ui.ThemeChangeRequestMsg{ThemeName: "nord"})
	m = newModel.(Model)

	if m.themeProvider.CurrentName() != "nord" {
		t.Errorf("expected theme nord, got %q", m.themeProvider.CurrentName())
	}
	if cmd == nil {
		t.Fatal("expected a save command")
	}
	newModel, _ = m.Update(cmd())
	m = newModel.(Model)

	if m.err != nil {
		t.Fatalf("unexpected save error: %v", m.err)
	}
	if services.Config.Get().Theme != "nord" {
		t.Errorf("expected saved theme nord, got %q", services.Config.Get().Theme)
	}
	cfg, err := config.Load(services.Config.GetPath())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Theme != "nord" {
		t.Errorf("expected theme nord on disk, got %q", cfg.Theme)
	}
}
