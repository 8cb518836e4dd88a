package pinball

import (
	"strings"
	"testing"

	"github.com/vovakirdan/pinball-madness/internal/core"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 40, TickRate: 60, Seed: 7})
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestGameFlipperHold(t *testing.T) {
	g := newTestGame(t)
	left := g.Session().Board().flippers[SideLeft]

	g.Step(frame(core.ActionFlipLeft))
	if !left.held {
		t.Fatal("flipper should be held after its key")
	}

	hold := int(holdSeconds * 60)
	for range hold - 1 {
		g.Step(frame())
	}
	if !left.held {
		t.Error("flipper released before the hold ran out")
	}
	g.Step(frame())
	if left.held {
		t.Error("flipper should release once the key stops repeating")
	}
}

func TestGamePauseToggle(t *testing.T) {
	g := newTestGame(t)
	g.Step(frame())
	tick := g.Session().Board().State().Tick

	res := g.Step(frame(core.ActionPause))
	if !res.State.Paused {
		t.Fatal("expected paused state")
	}
	for range 10 {
		g.Step(frame())
	}
	if got := g.Session().Board().State().Tick; got != tick {
		t.Errorf("tick = %d while paused, expected %d", got, tick)
	}

	res = g.Step(frame(core.ActionPause))
	if res.State.Paused {
		t.Error("second pause should resume")
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(t)
	screen := core.NewScreen(80, 40)
	g.Render(screen)

	out := screen.String()
	if !strings.Contains(out, "TIME 5:00") {
		t.Error("HUD should show the starting timer")
	}
	if !strings.Contains(out, "Get ready") {
		t.Error("countdown overlay should be visible before play")
	}
}

func TestGameRestartAfterRoundOver(t *testing.T) {
	g := newTestGame(t)
	b := g.Session().Board()
	b.state.Timer = 0.001
	for range 240 {
		g.Step(frame())
	}
	if !g.State().GameOver {
		t.Fatal("round should be over")
	}
	if g.State().Score != 0 {
		t.Errorf("score = %d, expected 0 after losing on the first tick", g.State().Score)
	}

	g.Step(frame(core.ActionRestart))
	if g.State().GameOver {
		t.Error("restart should begin a new round")
	}
	if g.Session().Board().State().Timer != g.cfg.Round.InitialTimer {
		t.Error("restart should reset the timer")
	}
}

func TestGameIdentity(t *testing.T) {
	g := New()
	if g.ID() != "pinball" || g.Title() != "Pinball Madness" {
		t.Errorf("ID/Title = %q/%q", g.ID(), g.Title())
	}
	if g.State() != (core.GameState{}) {
		t.Error("State() before Reset should be zero")
	}
}

func TestGameOverrides(t *testing.T) {
	g := newTestGame(t)
	g.SetSkin("shark")
	if got := g.Session().Skin(); got != "shark" {
		t.Errorf("running round skin = %q, expected shark", got)
	}

	g.SetPreset("hard")
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 40, TickRate: 60, Seed: 9})
	st := g.Session().Board().State()
	if st.Timer != 180 {
		t.Errorf("hard timer = %f, expected 180", st.Timer)
	}
	if g.Session().Skin() != "shark" {
		t.Error("skin override should survive Reset")
	}
	if g.Seed() != 9 {
		t.Errorf("Seed() = %d, expected 9", g.Seed())
	}
}
