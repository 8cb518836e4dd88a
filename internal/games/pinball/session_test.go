package pinball

import (
	"testing"

	"github.com/vovakirdan/pinball-madness/internal/config"
	"github.com/vovakirdan/pinball-madness/internal/core"
)

func TestSessionBossVictoryResume(t *testing.T) {
	cfg := calmConfig()
	s := NewSession(cfg, 1, WithManualBoss())

	if !s.EnterBossFight("shark", false) {
		t.Fatal("EnterBossFight() should start a fight")
	}
	if s.EnterBossFight("shark", false) {
		t.Error("a second fight must not start")
	}
	if s.Mode() != ModeBossFight || s.Skin() != "shark" {
		t.Errorf("mode = %v, skin = %q", s.Mode(), s.Skin())
	}

	s.boss.damageBoss(cfg.Boss.BossHealth)
	events := s.Step()

	if countEvents(events, core.EventRoundWon, true) != 1 {
		t.Error("expected RoundWon")
	}
	if s.Boss() != nil {
		t.Fatal("fight should be over")
	}
	if s.Mode() != ModeNormal {
		t.Errorf("mode = %v, expected normal", s.Mode())
	}
	want := cfg.Round.InitialTimer + cfg.Boss.ResumeTimerDelta
	if s.board.state.Timer != want {
		t.Errorf("timer = %f, expected %f", s.board.state.Timer, want)
	}
	if g := s.board.world.Gravity().Y; g != cfg.Boss.ResumeGravity {
		t.Errorf("gravity = %f, expected resume gravity %f", g, cfg.Boss.ResumeGravity)
	}
	if s.BossWins() != 1 {
		t.Errorf("BossWins() = %d, expected 1", s.BossWins())
	}

	for range s.board.ticks(cfg.Boss.ResumeWindow) {
		s.Step()
	}
	if g := s.board.world.Gravity().Y; g != cfg.Board.Gravity {
		t.Errorf("gravity = %f, expected %f after the resume window", g, cfg.Board.Gravity)
	}
}

func TestSessionBossDefeatResume(t *testing.T) {
	cfg := calmConfig()
	s := NewSession(cfg, 1, WithManualBoss())
	s.board.state.Timer = 100

	s.EnterBossFight("", false)
	s.boss.damagePlayer(cfg.Boss.PlayerHealth)
	events := s.Step()

	if countEvents(events, core.EventBossFightLost, true) != 1 {
		t.Error("expected BossFightLost")
	}
	if want := 100 - cfg.Boss.ResumeTimerDelta; s.board.state.Timer != want {
		t.Errorf("timer = %f, expected %f", s.board.state.Timer, want)
	}
	if s.BossWins() != 0 {
		t.Error("a defeat is not a win")
	}
}

func TestSessionDefeatCanEndRound(t *testing.T) {
	cfg := calmConfig()
	s := NewSession(cfg, 1, WithManualBoss())
	s.board.state.Timer = cfg.Boss.ResumeTimerDelta / 2

	s.EnterBossFight("", false)
	s.ExitBossFight(OutcomePending)
	events := s.Step()

	if countEvents(events, core.EventRoundLost, true) != 1 {
		t.Error("expected RoundLost once the penalty empties the timer")
	}
	if !s.Over() {
		t.Error("round should be over")
	}
}

func TestSessionExitWithOutcome(t *testing.T) {
	cfg := calmConfig()
	s := NewSession(cfg, 1, WithManualBoss())

	s.EnterBossFight("", false)
	s.ExitBossFight(OutcomeVictory)

	if s.Boss() != nil {
		t.Fatal("fight should be over")
	}
	if s.BossWins() != 1 {
		t.Errorf("BossWins() = %d, expected 1", s.BossWins())
	}
	if want := cfg.Round.InitialTimer + cfg.Boss.ResumeTimerDelta; s.board.state.Timer != want {
		t.Errorf("timer = %f, expected %f", s.board.state.Timer, want)
	}

	// leaving with no fight running is a no-op
	s.ExitBossFight(OutcomeDefeat)
	if s.BossWins() != 1 {
		t.Errorf("BossWins() = %d after a stray exit, expected 1", s.BossWins())
	}
}

func TestSessionStartRoundUsesConfig(t *testing.T) {
	s := NewSession(calmConfig(), 1, WithManualBoss())
	s.EnterBossFight("", false)
	s.boss.damageBoss(s.cfg.Boss.BossHealth)
	s.Step()

	cfg := calmConfig()
	cfg.Round.InitialTimer = 90
	cfg.BallSkin = "shark"
	s.StartRound(cfg)

	if s.BossWins() != 0 || s.Boss() != nil {
		t.Errorf("BossWins() = %d, fight running = %v after a new round", s.BossWins(), s.Boss() != nil)
	}
	if s.board.state.Timer != 90 {
		t.Errorf("timer = %f, expected 90", s.board.state.Timer)
	}
	if s.Skin() != "shark" {
		t.Errorf("Skin() = %q, expected shark", s.Skin())
	}
	if s.board.state.Tick != 0 || s.Over() {
		t.Error("round should start fresh")
	}
}

func TestSessionDuplicateLostInFight(t *testing.T) {
	cfg := calmConfig()
	s := NewSession(cfg, 1, WithManualBoss())
	give(s.board, ItemDuplicate)
	s.Step()

	s.EnterBossFight("", true)
	s.boss.ents.removeAll(s.boss.world, KindDuplicateBall)
	s.boss.damageBoss(cfg.Boss.BossHealth)
	s.Step()
	events := s.Step()

	if s.board.state.DuplicateActive || s.board.duplicate() != nil {
		t.Error("duplicate lost in the fight should leave the board too")
	}
	if countEvents(events, core.EventDuplicateBallStateChanged, false) != 1 {
		t.Error("expected the duplicate off event")
	}
}

func TestSessionAutoBoss(t *testing.T) {
	s := NewSession(calmConfig(), 1)
	give(s.board, ItemBoss)

	events := s.Step()
	if countEvents(events, core.EventBossEncounterRequested, true) != 1 {
		t.Fatal("expected BossEncounterRequested")
	}
	if s.Boss() == nil {
		t.Error("the fight should start on its own")
	}
	if !s.board.state.Powers.Boss {
		t.Error("boss power should be recorded")
	}
}

func TestSessionPause(t *testing.T) {
	s := NewSession(calmConfig(), 1)
	s.Pause()
	for range 30 {
		s.Step()
	}
	if s.board.state.Tick != 0 {
		t.Errorf("tick = %d while paused, expected 0", s.board.state.Tick)
	}
	if s.TapBall() {
		t.Error("commands should be ignored while paused")
	}
	s.Resume()
	s.Step()
	if s.board.state.Tick != 1 {
		t.Errorf("tick = %d after resume, expected 1", s.board.state.Tick)
	}
}

func TestSessionDeterminism(t *testing.T) {
	run := func() uint64 {
		s := NewSession(config.DefaultPinballConfig(), 12345)
		for i := range 3000 {
			switch {
			case i%90 == 0:
				s.PressFlipper(SideLeft)
			case i%90 == 12:
				s.ReleaseFlipper(SideLeft)
			case i%70 == 5:
				s.PressFlipper(SideRight)
			case i%70 == 17:
				s.ReleaseFlipper(SideRight)
			case i%400 == 200:
				s.TapBall()
			}
			s.Step()
		}
		snap := s.Snapshot()
		return snap.Hash()
	}

	if h1, h2 := run(), run(); h1 != h2 {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", h1, h2)
	}
}
