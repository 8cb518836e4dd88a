package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pinball-madness/internal/core"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		key      string
		want     core.Action
		wantQuit bool
	}{
		{"a", core.ActionFlipLeft, false},
		{"left", core.ActionFlipLeft, false},
		{"z", core.ActionFlipLeft, false},
		{"d", core.ActionFlipRight, false},
		{"right", core.ActionFlipRight, false},
		{"/", core.ActionFlipRight, false},
		{",", core.ActionPistonLeft, false},
		{".", core.ActionPistonRight, false},
		{" ", core.ActionTapBall, false},
		{"u", core.ActionUndo, false},
		{"p", core.ActionPause, false},
		{"r", core.ActionRestart, false},
		{"esc", core.ActionBack, false},
		{"q", core.ActionQuit, true},
		{"ctrl+c", core.ActionQuit, true},
		{"x", core.ActionNone, false},
	}

	for _, tt := range tests {
		got, quit := km.MapKey(keyMsg(tt.key))
		if got != tt.want || quit != tt.wantQuit {
			t.Errorf("MapKey(%q) = %v, %v; expected %v, %v", tt.key, got, quit, tt.want, tt.wantQuit)
		}
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		key  string
		want MenuAction
	}{
		{"k", MenuActionUp},
		{"j", MenuActionDown},
		{"left", MenuActionLeft},
		{"l", MenuActionRight},
		{"enter", MenuActionSelect},
		{"esc", MenuActionBack},
		{"tab", MenuActionStats},
		{"q", MenuActionQuit},
		{"x", MenuActionNone},
	}
	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(keyMsg(tt.key)); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.key, got, tt.want)
		}
	}
}
