package ui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func TestDefaultKeyMap(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
	}{
		{"Up", keys.Up},
		{"Down", keys.Down},
		{"Left", keys.Left},
		{"Right", keys.Right},
		{"NextTab", keys.NextTab},
		{"PrevTab", keys.PrevTab},
		{"Tab1", keys.Tab1},
		{"Tab2", keys.Tab2},
		{"Tab3", keys.Tab3},
		{"Select", keys.Select},
		{"Back", keys.Back},
		{"Quit", keys.Quit},
		{"ForceQuit", keys.ForceQuit},
		{"Help", keys.Help},
		{"Refresh", keys.Refresh},
		{"New", keys.New},
		{"Delete", keys.Delete},
		{"Search", keys.Search},
		{"NextCategory", keys.NextCategory},
		{"PrevCategory", keys.PrevCategory},
		{"ClearFilter", keys.ClearFilter},
		{"NextField", keys.NextField},
		{"PrevField", keys.PrevField},
		{"AllTime", keys.AllTime},
		{"Today", keys.Today},
		{"LastWeek", keys.LastWeek},
		{"Themes", keys.Themes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.binding.Keys()) == 0 {
				t.Errorf("expected %s to have at least one key", tt.name)
			}
			if tt.binding.Help().Key == "" {
				t.Errorf("expected %s to have help text", tt.name)
			}
		})
	}
}

func TestKeyMap_Matches(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name    string
		msg     tea.KeyMsg
		binding key.Binding
	}{
		{"j moves down", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}, keys.Down},
		{"arrow moves up", tea.KeyMsg{Type: tea.KeyUp}, keys.Up},
		{"slash searches", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")}, keys.Search},
		{"c cycles category", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")}, keys.NextCategory},
		{"C cycles back", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("C")}, keys.PrevCategory},
		{"tab next field", tea.KeyMsg{Type: tea.KeyTab}, keys.NextField},
		{"shift+tab prev field", tea.KeyMsg{Type: tea.KeyShiftTab}, keys.PrevField},
		{"ctrl+c force quits", tea.KeyMsg{Type: tea.KeyCtrlC}, keys.ForceQuit},
		{"space cycles right", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}, keys.Right},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !key.Matches(tt.msg, tt.binding) {
				t.Errorf("expected %q to match", tt.msg.String())
			}
		})
	}
}

func TestKeyMap_QuitIsNotCtrlC(t *testing.T) {
	keys := DefaultKeyMap()
	if key.Matches(tea.KeyMsg{Type: tea.KeyCtrlC}, keys.Quit) {
		t.Error("ctrl+c is handled by ForceQuit so it works inside inputs")
	}
}
