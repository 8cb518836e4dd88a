package pinball

import (
	"testing"

	"github.com/vovakirdan/pinball-madness/internal/config"
	"github.com/vovakirdan/pinball-madness/internal/core"
	"github.com/vovakirdan/pinball-madness/internal/physics"
)

func TestChooseItem(t *testing.T) {
	none := itemContext{gravityEnabled: true}
	tests := []struct {
		name  string
		roll  int
		split int
		ctx   itemContext
		want  ItemKind
	}{
		{"fist first", 0, 0, none, ItemFist},
		{"fist busy falls to duplicate", 0, 0, itemContext{fist: true}, ItemDuplicate},
		{"fist and duplicate busy", 0, 0, itemContext{fist: true, duplicate: true}, ItemBoss},
		{"duplicate first", 1, 0, none, ItemDuplicate},
		{"duplicate busy split fist", 1, 0, itemContext{duplicate: true}, ItemFist},
		{"duplicate busy split rota", 1, 1, itemContext{duplicate: true}, ItemRota},
		{"duplicate busy split rota with undo", 1, 1, itemContext{duplicate: true, undo: true}, ItemBoss},
		{"duplicate busy split boss", 1, 2, itemContext{duplicate: true}, ItemBoss},
		{"rota first", 2, 0, none, ItemRota},
		{"rota blocked by undo", 2, 0, itemContext{undo: true}, ItemFist},
		{"rota blocked by fist", 2, 0, itemContext{fist: true}, ItemDuplicate},
		{"everything busy", 2, 0, itemContext{fist: true, duplicate: true, undo: true}, ItemBoss},
		{"boss", 3, 0, none, ItemBoss},
		{"gravity", 4, 0, none, ItemGravity},
		{"gravity running", 4, 0, itemContext{gravity: true, gravityEnabled: true}, ItemBoss},
		{"gravity disabled", 4, 0, itemContext{}, ItemBoss},
	}

	for _, tt := range tests {
		if got := chooseItem(tt.roll, tt.split, tt.ctx); got != tt.want {
			t.Errorf("%s: chooseItem() = %v, expected %v", tt.name, got, tt.want)
		}
	}
}

func TestItemSpawnsAwayFromBallAndTimesOut(t *testing.T) {
	cfg := calmConfig()
	b := NewBoard(cfg, 7, nil)
	b.spawnItem(&b.state)

	if b.state.LiveItem == ItemNone {
		t.Fatal("an item should be live")
	}
	items := b.ents.all(itemKinds...)
	if len(items) != 1 {
		t.Fatalf("item bodies = %d, expected 1", len(items))
	}
	if d := items[0].Position().Distance(b.ball().Position()); d < cfg.Items.SpawnMinDistance {
		t.Errorf("item spawned %f from the ball, expected at least %f", d, cfg.Items.SpawnMinDistance)
	}

	// a second spawn while one is live is refused
	b.spawnItem(&b.state)
	if n := b.ents.count(itemKinds...); n != 1 {
		t.Errorf("item bodies = %d after second spawn, expected 1", n)
	}

	stepN(b, int(b.ticks(cfg.Items.Timeout)))
	if b.state.LiveItem != ItemNone {
		t.Errorf("live item = %v after timeout, expected none", b.state.LiveItem)
	}
	if n := b.ents.count(itemKinds...); n != 0 {
		t.Errorf("item bodies = %d after timeout, expected 0", n)
	}
	if b.queue.Pending(groupSpawn) != 1 {
		t.Errorf("pending spawns = %d, expected 1", b.queue.Pending(groupSpawn))
	}
}

func TestAtMostOneItemLive(t *testing.T) {
	b := NewBoard(config.DefaultPinballConfig(), 99, nil)

	for i := range 20000 {
		if i%40 < 6 {
			b.PressFlipper(SideLeft)
			b.PressFlipper(SideRight)
		} else {
			b.ReleaseFlipper(SideLeft)
			b.ReleaseFlipper(SideRight)
		}
		b.Step()
		if n := b.ents.count(itemKinds...); n > 1 {
			t.Fatalf("tick %d: %d items live", i, n)
		}
		if b.state.RoundOver {
			break
		}
	}
}

func TestDuplicateExpiresWithBonus(t *testing.T) {
	cfg := calmConfig()
	b := NewBoard(cfg, 1, nil)
	give(b, ItemDuplicate)

	if b.duplicate() == nil || !b.state.DuplicateActive {
		t.Fatal("duplicate ball should be on the board")
	}

	events := stepN(b, int(b.ticks(cfg.Items.DuplicateDuration)))

	if n := countEvents(events, core.EventDuplicateBallStateChanged, true); n != 1 {
		t.Errorf("duplicate on events = %d, expected 1", n)
	}
	if n := countEvents(events, core.EventDuplicateBallStateChanged, false); n != 1 {
		t.Errorf("duplicate off events = %d, expected 1", n)
	}
	if b.duplicate() != nil || b.state.DuplicateActive {
		t.Error("duplicate should be gone")
	}
	want := cfg.Round.InitialTimer - cfg.Items.DuplicateDuration + cfg.Items.DuplicateBonus
	if !near(b.state.Timer, want, 1e-6) {
		t.Errorf("timer = %f, expected %f", b.state.Timer, want)
	}

	// the bonus is not granted twice
	stepN(b, 60)
	if !near(b.state.Timer, want-1, 1e-6) {
		t.Errorf("timer = %f a second later, expected %f", b.state.Timer, want-1)
	}
}

func TestDuplicatePromotedWhenPrimaryDrains(t *testing.T) {
	b := NewBoard(calmConfig(), 1, nil)
	give(b, ItemDuplicate)
	dupPos := b.duplicate().Position()

	b.ball().SetPosition(physics.V(195, 15))
	events := stepN(b, 2)

	if n := countEvents(events, core.EventRoundLost, true); n != 0 {
		t.Error("round must not be lost while a duplicate remains")
	}
	if n := countEvents(events, core.EventDuplicateBallStateChanged, false); n != 1 {
		t.Errorf("duplicate off events = %d, expected 1", n)
	}
	ball := b.ball()
	if ball == nil {
		t.Fatal("duplicate should become the primary ball")
	}
	if ball.Position().Distance(dupPos) > 1 {
		t.Errorf("primary at %v, expected the duplicate's spot %v", ball.Position(), dupPos)
	}
	if b.duplicate() != nil {
		t.Error("no duplicate should remain")
	}
}

func TestDuplicateDrainKeepsSpawnDelay(t *testing.T) {
	b := NewBoard(calmConfig(), 1, nil)
	give(b, ItemDuplicate)

	before, ok := b.queue.Remaining(groupSpawn)
	if !ok {
		t.Fatal("a spawn should be pending")
	}
	if b.queue.Pending(groupDuplicate) != 1 {
		t.Fatalf("pending expiries = %d, expected 1", b.queue.Pending(groupDuplicate))
	}

	b.duplicate().SetPosition(physics.V(195, 15))
	events := stepN(b, 2)

	if n := countEvents(events, core.EventDuplicateBallStateChanged, false); n != 1 {
		t.Fatalf("duplicate off events = %d, expected 1", n)
	}
	if b.state.RoundOver {
		t.Fatal("losing the duplicate must not end the round")
	}
	if n := b.queue.Pending(groupDuplicate); n != 0 {
		t.Errorf("pending expiries = %d after the duplicate drained, expected 0", n)
	}
	after, ok := b.queue.Remaining(groupSpawn)
	if !ok || after != before-2 {
		t.Errorf("spawn due in %d ticks (pending %v), expected %d", after, ok, before-2)
	}
	if n := b.queue.Pending(groupSpawn); n != 1 {
		t.Errorf("pending spawns = %d, expected 1", n)
	}
}

func TestFullyPoweredOnce(t *testing.T) {
	b := NewBoard(calmConfig(), 1, nil)
	give(b, ItemDuplicate)
	give(b, ItemBoss)
	give(b, ItemRota)
	give(b, ItemFist)
	give(b, ItemBoss)

	events := b.Step()
	if n := countEvents(events, core.EventFullyPoweredAchieved, true); n != 1 {
		t.Errorf("FullyPoweredAchieved emitted %d times, expected 1", n)
	}
	if !b.state.FullyPowered {
		t.Error("FullyPowered should be set")
	}
	if n := countEvents(events, core.EventBossEncounterRequested, true); n != 2 {
		t.Errorf("BossEncounterRequested emitted %d times, expected 2", n)
	}
}
