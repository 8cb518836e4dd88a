package pinball

import (
	"math"
	"sort"
)

// Snapshot is a flat view of the round for traces and determinism checks.
// Positions are in board points, times in seconds.
type Snapshot struct {
	Tick         uint64  `msgpack:"tick"`
	Mode         string  `msgpack:"mode"`
	Timer        float64 `msgpack:"timer"`
	TimeSurvived float64 `msgpack:"survived"`
	Flipped      bool    `msgpack:"flipped"`
	LiveItem     string  `msgpack:"item"`
	Duplicate    bool    `msgpack:"duplicate"`
	Undo         bool    `msgpack:"undo"`
	Powers       Powers  `msgpack:"powers"`
	RoundOver    bool    `msgpack:"over"`

	// Bodies flattened as kind, x, y, vx, vy, ordered by kind then creation
	Bodies []float64 `msgpack:"bodies"`

	BossHealth   int `msgpack:"boss_health,omitempty"`
	PlayerHealth int `msgpack:"player_health,omitempty"`

	RNGState []byte `msgpack:"rng"`
}

// Snapshot captures the active playfield.
func (s *Session) Snapshot() Snapshot {
	b := s.board
	st := b.state
	snap := Snapshot{
		Tick:         st.Tick,
		Mode:         st.Mode.String(),
		Timer:        st.Timer,
		TimeSurvived: st.TimeSurvived,
		Flipped:      st.GravityFlipped,
		LiveItem:     st.LiveItem.String(),
		Duplicate:    st.DuplicateActive,
		Undo:         st.UndoAvailable,
		Powers:       st.Powers,
		RoundOver:    st.RoundOver,
		RNGState:     b.rng.state(),
	}
	a := b.arena
	if s.boss != nil {
		a = s.boss.arena
		snap.BossHealth = s.boss.state.BossHealth
		snap.PlayerHealth = s.boss.state.PlayerHealth
	}
	snap.Bodies = flattenBodies(a)
	return snap
}

func flattenBodies(a *arena) []float64 {
	var kinds []BodyKind
	for k := range a.ents.byKind {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	var out []float64
	for _, body := range a.ents.all(kinds...) {
		p, v := body.Position(), body.Velocity()
		out = append(out, float64(KindOf(body)), p.X, p.Y, v.X, v.Y)
	}
	return out
}

// Hash folds the snapshot into one value for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + math.Float64bits(snap.Timer)
	h = h*31 + math.Float64bits(snap.TimeSurvived)
	for _, c := range snap.Mode + snap.LiveItem {
		h = h*31 + uint64(c) //#nosec G115 -- hash computation
	}
	for _, flag := range []bool{snap.Flipped, snap.Duplicate, snap.Undo, snap.RoundOver,
		snap.Powers.Duplicate, snap.Powers.Fist, snap.Powers.Rota, snap.Powers.Boss} {
		h *= 31
		if flag {
			h++
		}
	}
	for _, v := range snap.Bodies {
		h = h*31 + math.Float64bits(v)
	}
	h = h*31 + uint64(snap.BossHealth)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PlayerHealth) //#nosec G115 -- hash computation
	for _, c := range snap.RNGState {
		h = h*31 + uint64(c)
	}
	return h
}
