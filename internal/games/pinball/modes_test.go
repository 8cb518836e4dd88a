package pinball

import (
	"testing"

	"github.com/vovakirdan/pinball-madness/internal/core"
	"github.com/vovakirdan/pinball-madness/internal/physics"
)

func TestRotaChallengeCompleted(t *testing.T) {
	cfg := calmConfig()
	b := NewBoard(cfg, 3, nil)
	give(b, ItemRota)

	if b.state.Mode != ModeRotaChallenge {
		t.Fatalf("mode = %v, expected rota", b.state.Mode)
	}
	checks := b.ents.all(KindRotaCheck)
	if len(checks) != cfg.Rota.Targets {
		t.Fatalf("checks = %d, expected %d", len(checks), cfg.Rota.Targets)
	}

	timer := b.state.Timer
	ball := b.ball()
	for _, ch := range checks {
		if ch.Removed() {
			continue
		}
		ball.SetPosition(ch.Position())
		ball.SetVelocity(physics.Vec{})
		b.Step()
	}

	if b.state.Mode != ModeNormal {
		t.Errorf("mode = %v, expected normal after the challenge", b.state.Mode)
	}
	if !b.state.UndoAvailable {
		t.Error("completing the challenge should grant the undo reward")
	}
	if n := b.ents.count(KindRotaCheck); n != 0 {
		t.Errorf("leftover checks = %d, expected 0", n)
	}
	if b.state.Rota.Collected != cfg.Rota.Targets {
		t.Errorf("collected = %d, expected %d", b.state.Rota.Collected, cfg.Rota.Targets)
	}
	// frozen for every tick but the one that ended the challenge
	if !near(b.state.Timer, timer-1.0/60, 1e-9) {
		t.Errorf("timer = %f, expected %f", b.state.Timer, timer-1.0/60)
	}
}

func TestRotaChallengeExpires(t *testing.T) {
	cfg := calmConfig()
	b := NewBoard(cfg, 3, nil)
	b.ball().SetPosition(physics.V(195, 150))
	give(b, ItemRota)

	stepN(b, int(b.ticks(cfg.Rota.TimeLimit))-1)
	if b.state.Mode != ModeRotaChallenge {
		t.Fatalf("mode = %v, expected rota before the limit", b.state.Mode)
	}
	if b.state.Timer != cfg.Round.InitialTimer {
		t.Errorf("timer = %f, expected frozen at %f", b.state.Timer, cfg.Round.InitialTimer)
	}
	if left := b.RotaRemaining(); !near(left, 1.0/60, 1e-9) {
		t.Errorf("RotaRemaining() = %f, expected one tick", left)
	}

	b.Step()
	if b.state.Mode != ModeNormal {
		t.Errorf("mode = %v, expected normal after expiry", b.state.Mode)
	}
	if b.state.UndoAvailable {
		t.Error("an expired challenge grants nothing")
	}
	if n := b.ents.count(KindRotaCheck); n != 0 {
		t.Errorf("leftover checks = %d, expected 0", n)
	}
	if b.queue.Pending(groupSpawn) != 1 {
		t.Error("item spawning should resume")
	}
}

func TestFistCombat(t *testing.T) {
	cfg := calmConfig()
	b := NewBoard(cfg, 1, nil)
	give(b, ItemFist)

	if b.state.Mode != ModeFistCombat {
		t.Fatalf("mode = %v, expected fist", b.state.Mode)
	}
	if b.flippers[SideLeft] != nil || b.ents.count(KindFlipperLeft, KindFlipperRight) != 0 {
		t.Error("flippers should be replaced")
	}
	if n := b.ents.count(KindPistonLeft, KindPistonRight); n != 2 {
		t.Errorf("pistons = %d, expected 2", n)
	}

	if !b.TapPiston(SideLeft) {
		t.Fatal("TapPiston() should fire")
	}
	if b.TapPiston(SideLeft) {
		t.Error("TapPiston() should be refused while busy")
	}
	if n := b.ents.count(KindFistProjectileLeft); n != 1 {
		t.Errorf("projectiles = %d, expected 1", n)
	}

	stepN(b, int(b.ticks(cfg.Items.PistonBusy)))
	if b.state.Pistons[SideLeft].Busy {
		t.Error("piston should be ready again")
	}

	timer := b.state.Timer
	stepN(b, int(b.ticks(cfg.Items.FistDuration)))
	if b.state.Mode != ModeNormal {
		t.Fatalf("mode = %v, expected normal after fist combat", b.state.Mode)
	}
	if b.flippers[SideLeft] == nil || b.flippers[SideRight] == nil {
		t.Error("flippers should be restored")
	}
	if n := b.ents.count(KindPistonLeft, KindPistonRight, KindFistProjectileLeft, KindFistProjectileRight); n != 0 {
		t.Errorf("fist bodies left = %d, expected 0", n)
	}
	// only the tick that ended combat and those after it count down
	elapsed := float64(b.ticks(cfg.Items.PistonBusy)+1) / 60
	if !near(b.state.Timer, timer-elapsed, 1e-9) {
		t.Errorf("timer = %f, expected %f", b.state.Timer, timer-elapsed)
	}
}

func TestProjectileKnocksBall(t *testing.T) {
	b := NewBoard(calmConfig(), 1, nil)
	give(b, ItemFist)
	b.TapPiston(SideLeft)

	proj := b.ents.first(KindFistProjectileLeft)
	ball := b.ball()
	ball.SetPosition(proj.Position().Add(physics.V(20, 20)))
	ball.SetVelocity(physics.Vec{})
	b.Step()

	if !proj.Removed() {
		t.Error("projectile should be consumed by the hit")
	}
	if v := ball.Velocity(); v.X <= 0 || v.Y <= 0 {
		t.Errorf("ball velocity = %v, expected knocked up and right", v)
	}
}

func TestGravityFlipWindow(t *testing.T) {
	cfg := calmConfig()
	cfg.Board.Gravity = -600
	b := NewBoard(cfg, 1, nil)
	b.ball().Freeze(true)
	give(b, ItemGravity)

	window := int(cfg.Items.GravityFlipWindow * 60)
	events := stepN(b, window/2)
	if !b.state.GravityFlipped {
		t.Fatal("board should be flipped")
	}
	if g := b.world.Gravity().Y; !near(g, 600*cfg.Items.GravityFlipWeaken, 1e-9) {
		t.Errorf("gravity = %f halfway, expected %f", g, 600*cfg.Items.GravityFlipWeaken)
	}
	if b.canSpawn(&b.state) {
		t.Error("spawning should be suspended")
	}

	events = append(events, stepN(b, window-window/2)...)
	if b.state.GravityFlipped {
		t.Error("flip should be over")
	}
	if g := b.world.Gravity().Y; g != -600 {
		t.Errorf("gravity = %f, expected -600", g)
	}
	if countEvents(events, core.EventGravityFlipToggled, true) != 1 ||
		countEvents(events, core.EventGravityFlipToggled, false) != 1 {
		t.Error("expected one toggle on and one toggle off")
	}
}
