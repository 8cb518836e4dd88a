package pinball

import (
	"github.com/vovakirdan/pinball-madness/internal/core"
	"github.com/vovakirdan/pinball-madness/internal/physics"
)

var itemKinds = []BodyKind{KindItemDuplicate, KindItemFist, KindItemGravity, KindItemRota, KindItemBoss}

// itemContext is what the spawn policy needs to know about the board.
type itemContext struct {
	fist           bool // Fist combat running
	duplicate      bool // Duplicate ball on the board
	undo           bool // Undo reward held
	gravity        bool // Gravity flip running
	gravityEnabled bool // Gravity item allowed at all
}

// chooseItem runs the spawn cascade. roll picks the branch, split breaks
// the tie inside the duplicate branch. Kinds whose effect is already active
// are skipped; the boss item is always available as the last resort.
func chooseItem(roll, split int, ctx itemContext) ItemKind {
	fistFirst := func() ItemKind {
		if !ctx.fist {
			return ItemFist
		}
		if !ctx.duplicate {
			return ItemDuplicate
		}
		return ItemBoss
	}
	rotaAllowed := !ctx.undo && !ctx.fist

	switch roll {
	case 0:
		return fistFirst()
	case 1:
		if !ctx.duplicate {
			return ItemDuplicate
		}
		switch split {
		case 0:
			return fistFirst()
		case 1:
			if rotaAllowed {
				return ItemRota
			}
		}
		return ItemBoss
	case 2:
		if rotaAllowed {
			return ItemRota
		}
		if !ctx.fist {
			return ItemFist
		}
		if !ctx.duplicate {
			return ItemDuplicate
		}
		return ItemBoss
	case 4:
		if ctx.gravityEnabled && !ctx.gravity {
			return ItemGravity
		}
		return ItemBoss
	default:
		return ItemBoss
	}
}

// canSpawn reports whether a new item may be scheduled or placed.
func (b *Board) canSpawn(st *SimulationState) bool {
	if st.RoundOver || st.LiveItem != ItemNone || st.GravityFlipped {
		return false
	}
	return st.Mode == ModeNormal || st.Mode == ModeFistCombat
}

// scheduleSpawn arms the next item after a random delay. At most one spawn
// is ever pending.
func (b *Board) scheduleSpawn(st *SimulationState) {
	if !b.canSpawn(st) {
		return
	}
	c := b.cfg.Items
	b.queue.CancelGroup(groupSpawn)
	delay := c.SpawnDelayUnit * float64(b.rng.intBetween(c.SpawnDelayMin, c.SpawnDelayMax))
	b.queue.After(b.ticks(delay), groupSpawn, action{kind: actSpawnItem})
}

// resumeSpawn arms a spawn unless one is already pending or an item is live.
func (b *Board) resumeSpawn(st *SimulationState) {
	if b.queue.Pending(groupSpawn) > 0 {
		return
	}
	b.scheduleSpawn(st)
}

func (b *Board) spawnItem(st *SimulationState) {
	if !b.canSpawn(st) {
		// whoever ends the blocking phase schedules again
		return
	}
	rolls := 4
	if b.cfg.Items.GravityFlipEnable {
		rolls = 5
	}
	kind := chooseItem(b.rng.intn(rolls), b.rng.intn(3), itemContext{
		fist:           st.Mode == ModeFistCombat,
		duplicate:      st.DuplicateActive,
		undo:           st.UndoAvailable,
		gravity:        st.GravityFlipped,
		gravityEnabled: b.cfg.Items.GravityFlipEnable,
	})
	c := b.cfg.Items
	pos := b.place(c.SpawnMinX, c.SpawnMaxX, c.SpawnMinY, c.SpawnMaxY, c.SpawnAttempts, func(p physics.Vec) bool {
		ball := b.ball()
		return ball == nil || p.Distance(ball.Position()) >= c.SpawnMinDistance
	})
	bk := kind.bodyKind()
	b.addStatic(bk, pos, true, 0, physics.Circle(c.Radius, physics.V(0, 0)))
	st.LiveItem = kind
	b.queue.After(b.ticks(c.Timeout), groupItem, action{kind: actItemTimeout})
	b.log.Debug("item spawned", "item", kind, "x", pos.X, "y", pos.Y, "tick", st.Tick)
}

// place samples positions in the rectangle until ok accepts one. After the
// last attempt the last candidate is used anyway.
func (b *Board) place(minX, maxX, minY, maxY float64, attempts int, ok func(physics.Vec) bool) physics.Vec {
	var p physics.Vec
	for range max(attempts, 1) {
		p = physics.V(b.rng.between(minX, maxX), b.rng.between(minY, maxY))
		if ok(p) {
			break
		}
	}
	return p
}

func (b *Board) clearItems(st *SimulationState) {
	b.ents.removeAll(b.world, itemKinds...)
	b.queue.CancelGroup(groupItem)
	st.LiveItem = ItemNone
}

// expireItem removes an item nobody collected.
func (b *Board) expireItem(st *SimulationState) {
	if st.LiveItem == ItemNone {
		return
	}
	b.clearItems(st)
	b.scheduleSpawn(st)
}

// pickup applies an item the primary ball touched.
func (b *Board) pickup(st *SimulationState, item *physics.Body) {
	kind := itemFromBody(KindOf(item))
	b.clearItems(st)
	b.log.Debug("item collected", "item", kind, "tick", st.Tick)

	switch kind {
	case ItemDuplicate:
		st.Powers.Duplicate = true
		b.startDuplicate(st)
	case ItemFist:
		st.Powers.Fist = true
		b.startFist(st)
	case ItemGravity:
		b.startGravityFlip(st)
	case ItemRota:
		st.Powers.Rota = true
		b.startRota(st)
	case ItemBoss:
		st.Powers.Boss = true
		st.emit(core.On(core.EventBossEncounterRequested))
		b.scheduleSpawn(st)
	}

	if st.Powers.All() && !st.FullyPowered {
		st.FullyPowered = true
		st.emit(core.On(core.EventFullyPoweredAchieved))
	}
}

// startDuplicate adds the second ball. It expires after the configured
// duration, granting the timer bonus if it is still alive.
func (b *Board) startDuplicate(st *SimulationState) {
	if b.duplicate() == nil {
		b.addBall(KindDuplicateBall, b.duplicateStart(), physics.Vec{})
	}
	if !st.DuplicateActive {
		st.DuplicateActive = true
		st.emit(core.On(core.EventDuplicateBallStateChanged))
	}
	b.queue.Cancel(b.dupExpire)
	b.dupExpire = b.queue.After(b.ticks(b.cfg.Items.DuplicateDuration), groupDuplicate, action{kind: actDuplicateExpire})
}

func (b *Board) expireDuplicate(st *SimulationState) {
	b.dupExpire = 0
	if !st.DuplicateActive {
		return
	}
	b.ents.removeAll(b.world, KindDuplicateBall)
	st.Timer += b.cfg.Items.DuplicateBonus
	b.log.Debug("duplicate expired", "bonus", b.cfg.Items.DuplicateBonus, "tick", st.Tick)
	b.dropDuplicate(st)
}
