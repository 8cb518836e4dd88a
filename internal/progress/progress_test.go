package progress

import (
	"path/filepath"
	"testing"

	"github.com/vovakirdan/pinball-madness/internal/core"
	"github.com/vovakirdan/pinball-madness/internal/storage"
)

func ids(list []Achievement) []string {
	out := make([]string, len(list))
	for i, a := range list {
		out[i] = a.ID
	}
	return out
}

func TestEventAchievements(t *testing.T) {
	tr, err := NewTracker(nil, nil)
	if err != nil {
		t.Fatalf("NewTracker() failed: %v", err)
	}

	tests := []struct {
		name   string
		events []core.Event
		want   []string
	}{
		{"nothing", []core.Event{core.On(core.EventGravityFlipToggled)}, nil},
		{"fully powered", []core.Event{core.On(core.EventFullyPoweredAchieved)}, []string{FullyPowered}},
		{"repeat", []core.Event{core.On(core.EventFullyPoweredAchieved)}, nil},
		{"untouchable", []core.Event{core.On(core.EventRoundWon), core.On(core.EventBossVictoryNoDamageTaken)}, []string{Untouchable}},
	}
	for _, tt := range tests {
		got, err := tr.Observe(tt.events, 0)
		if err != nil {
			t.Fatalf("%s: Observe() failed: %v", tt.name, err)
		}
		if g := ids(got); len(g) != len(tt.want) || (len(g) > 0 && g[0] != tt.want[0]) {
			t.Errorf("%s: unlocked %v, expected %v", tt.name, g, tt.want)
		}
	}
	if tr.BossWins() != 1 {
		t.Errorf("BossWins() = %d, expected 1", tr.BossWins())
	}
}

func TestBossSlayer(t *testing.T) {
	tr, _ := NewTracker(nil, nil)
	for i := range bossSlayerWins {
		got, _ := tr.Observe([]core.Event{core.On(core.EventRoundWon)}, 0)
		unlocked := len(got) == 1 && got[0].ID == BossSlayer
		if last := i == bossSlayerWins-1; unlocked != last {
			t.Errorf("win %d: boss slayer unlocked = %v, expected %v", i+1, unlocked, last)
		}
	}
}

func TestPlayTimeAchievements(t *testing.T) {
	tr, _ := NewTracker(nil, nil)

	if got, _ := tr.EndRun(100); len(got) != 0 {
		t.Errorf("EndRun(100) unlocked %v", ids(got))
	}
	// The running round counts before it ends.
	got, _ := tr.Observe(nil, 80)
	if len(got) != 1 || got[0].ID != Survivor {
		t.Errorf("Observe() unlocked %v, expected survivor", ids(got))
	}
	got, _ = tr.EndRun(80)
	if len(got) != 0 {
		t.Errorf("EndRun(80) unlocked %v again", ids(got))
	}
	got, _ = tr.EndRun(180)
	if len(got) != 1 || got[0].ID != Veteran {
		t.Errorf("EndRun(180) unlocked %v, expected veteran", ids(got))
	}
	if tr.PlayTime() != 360 {
		t.Errorf("PlayTime() = %f, expected 360", tr.PlayTime())
	}
}

func TestSkinUnlocks(t *testing.T) {
	tr, _ := NewTracker(nil, nil)

	tests := []struct {
		achievements []string
		skin         string
		want         bool
	}{
		{nil, "classic", true},
		{nil, "nuclear", true},
		{nil, "shark", false},
		{[]string{FullyPowered, Untouchable, Survivor}, "shark", true},
		{[]string{FullyPowered, Untouchable, Survivor}, "special", false},
		{[]string{FullyPowered, Untouchable, Survivor, Veteran, BossSlayer}, "special", true},
		{nil, "missing", false},
	}
	for _, tt := range tests {
		tr.unlock(tt.achievements)
		if got := tr.SkinAvailable(tt.skin); got != tt.want {
			t.Errorf("SkinAvailable(%q) with %d achievements = %v, expected %v", tt.skin, tr.Count(), got, tt.want)
		}
	}
	if n := len(tr.AvailableSkins()); n != 4 {
		t.Errorf("AvailableSkins() = %d skins, expected 4", n)
	}
}

func TestTrackerPersists(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "progress.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveRun(storage.Run{Survived: 170, BossWins: 4, Outcome: storage.OutcomeTimeUp})

	tr, err := NewTracker(store, nil)
	if err != nil {
		t.Fatalf("NewTracker() failed: %v", err)
	}
	got, err := tr.Observe([]core.Event{core.On(core.EventRoundWon)}, 15)
	if err != nil {
		t.Fatalf("Observe() failed: %v", err)
	}
	if len(got) != 2 || got[0].ID != BossSlayer || got[1].ID != Survivor {
		t.Errorf("Observe() unlocked %v, expected boss slayer and survivor", ids(got))
	}

	again, err := NewTracker(store, nil)
	if err != nil {
		t.Fatalf("NewTracker() failed: %v", err)
	}
	if !again.Unlocked(BossSlayer) || !again.Unlocked(Survivor) {
		t.Error("unlocks should be loaded from the store")
	}
}
