package pinball

import (
	"github.com/vovakirdan/pinball-madness/internal/physics"
	"github.com/vovakirdan/pinball-madness/internal/schedule"
)

// actionKind identifies a deferred board action.
type actionKind int

const (
	actCountdownStep actionKind = iota
	actSpawnItem
	actItemTimeout
	actDuplicateExpire
	actFistEnd
	actPistonRestore
	actPistonReady
	actProjectileExpire
	actRotaExpire
	actGravityWeaken
	actGravityRestore
	actFlipperSettle
	actObstacleStop
	actObstacleStart
	actResumeGravityEnd
)

// action is a deferred board action. Only the fields its kind needs are set.
type action struct {
	kind actionKind
	side Side
	body *physics.Body
	row  int
}

// Deferred action groups. Ending a phase cancels its group so nothing it
// scheduled fires afterwards.
const (
	groupCountdown schedule.Group = "countdown"
	groupSpawn     schedule.Group = "spawn"
	groupItem      schedule.Group = "item"
	groupDuplicate schedule.Group = "duplicate"
	groupFist      schedule.Group = "fist"
	groupPiston    schedule.Group = "piston"
	groupRota      schedule.Group = "rota"
	groupGravity   schedule.Group = "gravity"
	groupFlipper   schedule.Group = "flipper"
	groupObstacle  schedule.Group = "obstacle"
	groupResume    schedule.Group = "resume"
)

// run executes one deferred action.
func (b *Board) run(st *SimulationState, a action) {
	switch a.kind {
	case actCountdownStep:
		b.countdownStep(st)
	case actSpawnItem:
		b.spawnItem(st)
	case actItemTimeout:
		b.expireItem(st)
	case actDuplicateExpire:
		b.expireDuplicate(st)
	case actFistEnd:
		b.endFist(st)
	case actPistonRestore:
		st.Pistons[a.side].Compressed = false
	case actPistonReady:
		st.Pistons[a.side].Busy = false
	case actProjectileExpire:
		b.world.Remove(a.body)
	case actRotaExpire:
		if st.Mode == ModeRotaChallenge {
			b.endRota(st, false)
		}
	case actGravityWeaken:
		b.world.SetGravity(physics.V(0, -b.cfg.Board.Gravity*b.cfg.Items.GravityFlipWeaken))
	case actGravityRestore:
		b.endGravityFlip(st)
	case actFlipperSettle:
		for _, f := range b.flippers {
			if f != nil && !f.held {
				f.kick(-b.cfg.Flipper.SettleImpulse)
			}
		}
	case actObstacleStop:
		b.stopObstacle(a.row)
	case actObstacleStart:
		b.startObstacle(a.row)
	case actResumeGravityEnd:
		if !st.GravityFlipped {
			b.world.SetGravity(physics.V(0, b.cfg.Board.Gravity))
		}
	}
}
