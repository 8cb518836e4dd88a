package pinball

import (
	"github.com/vovakirdan/pinball-madness/internal/config"
	"github.com/vovakirdan/pinball-madness/internal/core"
	"github.com/vovakirdan/pinball-madness/internal/physics"
)

// calmConfig starts play immediately on a board without gravity, so the
// ball stays where it is put.
func calmConfig() config.PinballConfig {
	cfg := config.DefaultPinballConfig()
	cfg.Round.CountdownSteps = 0
	cfg.Board.Gravity = 0
	cfg.Boss.Gravity = 0
	return cfg
}

// give collects an item as if the primary ball had touched it.
func give(b *Board, k ItemKind) {
	item := b.addStatic(k.bodyKind(), physics.V(300, 300), true, 0, physics.Circle(10, physics.V(0, 0)))
	b.state.LiveItem = k
	b.pickup(&b.state, item)
}

func stepN(b *Board, n int) []core.Event {
	var all []core.Event
	for range n {
		all = append(all, b.Step()...)
	}
	return all
}

func countEvents(events []core.Event, kind core.EventKind, active bool) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind && e.Active == active {
			n++
		}
	}
	return n
}

func near(a, b, eps float64) bool {
	d := a - b
	return d < eps && d > -eps
}
