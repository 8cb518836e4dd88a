package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pinball-madness/internal/progress"
)

func send(m SessionModel, msgs ...tea.Msg) (SessionModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(SessionModel)
	}
	return m, cmd
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	m := NewSessionModel(nil, nil, nil, testConfig())

	m, _ = send(m, keyMsg("enter"))
	if m.screen != screenGame {
		t.Fatalf("screen = %v, expected the game", m.screen)
	}
	if m.game.game.Session().Skin() != "classic" {
		t.Errorf("skin = %q, expected the saved default", m.game.game.Session().Skin())
	}

	m, _ = send(m, TickMsg{Gen: m.game.gen}, keyMsg("p"), TickMsg{Gen: m.game.gen}, keyMsg("esc"))
	if m.screen != screenMenu {
		t.Errorf("screen = %v, expected the menu after back", m.screen)
	}
	if m.quitting {
		t.Error("returning to the menu must not quit")
	}
}

func TestSessionStatsScreen(t *testing.T) {
	m := NewSessionModel(nil, nil, nil, testConfig())

	m, _ = send(m, keyMsg("tab"))
	if m.screen != screenStats {
		t.Fatalf("screen = %v, expected stats", m.screen)
	}
	m, _ = send(m, keyMsg("esc"))
	if m.screen != screenMenu {
		t.Errorf("screen = %v, expected the menu", m.screen)
	}
}

func TestSessionQuit(t *testing.T) {
	m := NewSessionModel(nil, nil, nil, testConfig())
	m, cmd := send(m, keyMsg("q"))
	if !m.quitting || cmd == nil {
		t.Fatal("q should quit the session")
	}
	if m.View() != "" {
		t.Error("View() after quit should be empty")
	}
}

func TestMenuCyclesSkinAndDifficulty(t *testing.T) {
	tracker, _ := progress.NewTracker(nil, nil)
	m := NewMenuModel(nil, tracker, testConfig())

	step := func(key string) {
		next, _ := m.Update(keyMsg(key))
		m = next.(MenuModel)
	}

	step("down") // skin
	step("right")
	if got := m.settings.Get().BallSkin; got != "nuclear" {
		t.Errorf("skin = %q, expected nuclear", got)
	}
	// Locked skins are skipped.
	step("right")
	if got := m.settings.Get().BallSkin; got != "classic" {
		t.Errorf("skin = %q, expected to wrap to classic", got)
	}

	step("down") // difficulty
	step("left")
	if got := m.settings.Get().Difficulty; got != "easy" {
		t.Errorf("difficulty = %q, expected easy", got)
	}
	step("enter")
	if got := m.settings.Get().Difficulty; got != "normal" {
		t.Errorf("difficulty = %q, expected normal", got)
	}
	if m.Choice() != ChoiceNone {
		t.Error("changing a setting should not leave the menu")
	}
}

func TestStatsWithoutStore(t *testing.T) {
	m := NewStatsModel(nil, nil, 80, 30)
	if view := m.View(); view == "" {
		t.Fatal("View() should render")
	}

	next, _ := m.Update(keyMsg("tab"))
	m = next.(StatsModel)
	if m.tab != tabAchievements {
		t.Errorf("tab = %v, expected achievements", m.tab)
	}
	if rows := len(m.table.Rows()); rows != len(progress.All) {
		t.Errorf("achievement rows = %d, expected %d", rows, len(progress.All))
	}
}
