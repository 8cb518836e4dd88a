// Package progress turns simulation events and finished runs into
// achievements and skin unlocks that persist across rounds.
package progress

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pinball-madness/internal/core"
	"github.com/vovakirdan/pinball-madness/internal/games/pinball"
)

// Achievement IDs.
const (
	FullyPowered = "fully_powered"
	BossSlayer   = "boss_slayer"
	Survivor     = "survivor"
	Veteran      = "veteran"
	Untouchable  = "untouchable"
)

// Thresholds for the cumulative achievements.
const (
	bossSlayerWins  = 5
	survivorSeconds = 180
	veteranSeconds  = 360
)

// Achievement describes an unlockable.
type Achievement struct {
	ID          string
	Title       string
	Description string
}

// All lists every achievement in display order.
var All = []Achievement{
	{FullyPowered, "Fully Powered", "Collect every kind of power in one round"},
	{BossSlayer, "Boss Slayer", fmt.Sprintf("Win %d boss fights", bossSlayerWins)},
	{Survivor, "Survivor", fmt.Sprintf("Play for %d seconds in total", survivorSeconds)},
	{Veteran, "Veteran", fmt.Sprintf("Play for %d seconds in total", veteranSeconds)},
	{Untouchable, "Untouchable", "Beat a boss without taking damage"},
}

// ByID returns the achievement with the given ID.
func ByID(id string) (Achievement, bool) {
	for _, a := range All {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

// Store persists unlocks and exposes the totals of earlier runs.
// storage.Store satisfies it.
type Store interface {
	UnlockedAchievements() ([]string, error)
	Unlock(id string) (bool, error)
	TotalPlayTime() (float64, error)
	TotalBossWins() (int, error)
}

// Tracker accumulates progress for one player. A nil store keeps
// everything in memory.
type Tracker struct {
	store    Store
	log      *log.Logger
	unlocked map[string]bool
	playTime float64 // Seconds from finished runs
	bossWins int     // Boss victories from finished runs and the current one
}

// NewTracker loads earlier progress from store.
func NewTracker(store Store, logger *log.Logger) (*Tracker, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	t := &Tracker{store: store, log: logger, unlocked: make(map[string]bool)}
	if store == nil {
		return t, nil
	}

	ids, err := store.UnlockedAchievements()
	if err != nil {
		return nil, fmt.Errorf("progress: cannot load achievements: %w", err)
	}
	for _, id := range ids {
		t.unlocked[id] = true
	}
	if t.playTime, err = store.TotalPlayTime(); err != nil {
		return nil, fmt.Errorf("progress: cannot load play time: %w", err)
	}
	if t.bossWins, err = store.TotalBossWins(); err != nil {
		return nil, fmt.Errorf("progress: cannot load boss wins: %w", err)
	}
	return t, nil
}

// Observe consumes the events of one step. survived is the current run's
// time so far. Returns achievements unlocked by this call.
func (t *Tracker) Observe(events []core.Event, survived float64) ([]Achievement, error) {
	var ids []string
	for _, e := range events {
		switch e.Kind {
		case core.EventFullyPoweredAchieved:
			ids = append(ids, FullyPowered)
		case core.EventBossVictoryNoDamageTaken:
			ids = append(ids, Untouchable)
		case core.EventRoundWon:
			t.bossWins++
		}
	}
	ids = append(ids, t.thresholds(t.playTime+survived)...)
	return t.unlock(ids)
}

// EndRun folds a finished run into the totals. Returns achievements
// unlocked by it.
func (t *Tracker) EndRun(survived float64) ([]Achievement, error) {
	t.playTime += survived
	return t.unlock(t.thresholds(t.playTime))
}

func (t *Tracker) thresholds(play float64) []string {
	var ids []string
	if t.bossWins >= bossSlayerWins {
		ids = append(ids, BossSlayer)
	}
	if play >= survivorSeconds {
		ids = append(ids, Survivor)
	}
	if play >= veteranSeconds {
		ids = append(ids, Veteran)
	}
	return ids
}

func (t *Tracker) unlock(ids []string) ([]Achievement, error) {
	var fresh []Achievement
	for _, id := range ids {
		if t.unlocked[id] {
			continue
		}
		if t.store != nil {
			if _, err := t.store.Unlock(id); err != nil {
				return fresh, fmt.Errorf("progress: cannot unlock %s: %w", id, err)
			}
		}
		t.unlocked[id] = true
		a, _ := ByID(id)
		t.log.Info("achievement unlocked", "id", id)
		fresh = append(fresh, a)
	}
	return fresh, nil
}

// Unlocked reports whether an achievement has been earned.
func (t *Tracker) Unlocked(id string) bool {
	return t.unlocked[id]
}

// Count returns the number of achievements earned.
func (t *Tracker) Count() int {
	return len(t.unlocked)
}

// PlayTime returns the seconds played in finished runs.
func (t *Tracker) PlayTime() float64 {
	return t.playTime
}

// BossWins returns the boss victories recorded so far.
func (t *Tracker) BossWins() int {
	return t.bossWins
}

// SkinAvailable reports whether a skin may be selected.
func (t *Tracker) SkinAvailable(id string) bool {
	for _, s := range pinball.Skins {
		if s.ID == id {
			return t.Count() >= s.Unlock
		}
	}
	return false
}

// AvailableSkins lists the skins unlocked so far.
func (t *Tracker) AvailableSkins() []pinball.Skin {
	var out []pinball.Skin
	for _, s := range pinball.Skins {
		if t.Count() >= s.Unlock {
			out = append(out, s)
		}
	}
	return out
}
