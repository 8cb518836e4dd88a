package pinball

import (
	"github.com/vovakirdan/pinball-madness/internal/core"
	"github.com/vovakirdan/pinball-madness/internal/physics"
)

var pistonKinds = [2]BodyKind{KindPistonLeft, KindPistonRight}

var projectileKinds = [2]BodyKind{KindFistProjectileLeft, KindFistProjectileRight}

// startFist swaps the flippers for pistons.
func (b *Board) startFist(st *SimulationState) {
	if st.Mode != ModeNormal {
		return
	}
	b.setMode(st, ModeFistCombat)
	b.removeFlippers()
	f := b.cfg.Flipper
	for _, s := range []Side{SideLeft, SideRight} {
		x := f.LeftPivotX + f.Length/3
		if s == SideRight {
			x = f.RightPivotX - f.Length/3
		}
		b.addStatic(pistonKinds[s], physics.V(x, f.PivotY), false, 0.3,
			physics.Box(physics.V(0, 0), f.Length*0.8, 2*f.Radius))
	}
	st.Pistons = [2]PistonState{}
	b.queue.After(b.ticks(b.cfg.Items.FistDuration), groupFist, action{kind: actFistEnd})
}

// endFist restores the flippers and flicks them once so a ball resting
// on the pistons is not left dead.
func (b *Board) endFist(st *SimulationState) {
	if st.Mode != ModeFistCombat {
		return
	}
	b.queue.CancelGroup(groupFist)
	b.queue.CancelGroup(groupPiston)
	b.ents.removeAll(b.world, pistonKinds[0], pistonKinds[1], projectileKinds[0], projectileKinds[1])
	st.Pistons = [2]PistonState{}

	b.addFlippers()
	for _, f := range b.flippers {
		f.kick(b.cfg.Flipper.LaunchImpulse)
	}
	b.queue.After(b.ticks(b.cfg.Flipper.LaunchSettle), groupFlipper, action{kind: actFlipperSettle})

	b.setMode(st, ModeNormal)
	b.scheduleSpawn(st)
}

// TapPiston fires a projectile from one piston. Returns false when the
// piston cannot fire.
func (b *Board) TapPiston(s Side) bool {
	st := &b.state
	if st.RoundOver || st.Mode != ModeFistCombat || st.Pistons[s].Busy {
		return false
	}
	piston := b.ents.first(pistonKinds[s])
	if piston == nil {
		return false
	}
	c := b.cfg.Items
	st.Pistons[s] = PistonState{Busy: true, Compressed: true}

	kind := projectileKinds[s]
	d := s.dir()
	proj := b.ents.add(kind, b.world.Add(physics.BodyDef{
		Type:      physics.Dynamic,
		Position:  piston.Position().Add(physics.V(0, 2*b.cfg.Flipper.Radius+c.ProjectileRadius)),
		Velocity:  physics.V(d*c.ProjectileSpeed, c.ProjectileSpeed),
		Mass:      0.1,
		Shapes:    []physics.Shape{physics.Circle(c.ProjectileRadius, physics.V(0, 0))},
		Filter:    filterFor(kind),
		NoGravity: true,
		Tag:       kind,
	}))
	b.queue.After(b.ticks(c.PistonRestore), groupPiston, action{kind: actPistonRestore, side: s})
	b.queue.After(b.ticks(c.PistonBusy), groupPiston, action{kind: actPistonReady, side: s})
	b.queue.After(b.ticks(c.ProjectileLife), groupPiston, action{kind: actProjectileExpire, body: proj})
	return true
}

// startRota replaces items with check-targets the ball must collect before
// the time limit.
func (b *Board) startRota(st *SimulationState) {
	if st.Mode != ModeNormal {
		return
	}
	b.setMode(st, ModeRotaChallenge)
	b.queue.CancelGroup(groupSpawn)
	b.clearItems(st)

	c := b.cfg.Rota
	st.Rota = RotaState{Target: c.Targets}
	var placed []physics.Vec
	for range c.Targets {
		p := b.place(c.AreaMinX, c.AreaMaxX, c.AreaMinY, c.AreaMaxY, c.Attempts, func(p physics.Vec) bool {
			if ball := b.ball(); ball != nil && p.Distance(ball.Position()) < c.MinFromBall {
				return false
			}
			for _, q := range placed {
				if p.Distance(q) < c.MinSeparation {
					return false
				}
			}
			return true
		})
		placed = append(placed, p)
		b.addStatic(KindRotaCheck, p, true, 0, physics.Circle(c.CheckRadius, physics.V(0, 0)))
	}
	b.queue.After(b.ticks(c.TimeLimit), groupRota, action{kind: actRotaExpire})
}

func (b *Board) collectCheck(st *SimulationState, check *physics.Body) {
	if st.Mode != ModeRotaChallenge {
		return
	}
	b.world.Remove(check)
	st.Rota.Collected++
	if st.Rota.Collected >= st.Rota.Target {
		b.endRota(st, true)
	}
}

// endRota leaves the challenge. Winning grants the single undo reward.
func (b *Board) endRota(st *SimulationState, won bool) {
	b.queue.CancelGroup(groupRota)
	b.ents.removeAll(b.world, KindRotaCheck)
	if won {
		st.UndoAvailable = true
	}
	b.log.Debug("rota finished", "won", won, "collected", st.Rota.Collected, "tick", st.Tick)
	b.setMode(st, ModeNormal)
	b.scheduleSpawn(st)
}

// startGravityFlip turns the board upside down. The view flips at once;
// halfway through the window gravity reverses at reduced strength.
func (b *Board) startGravityFlip(st *SimulationState) {
	if st.GravityFlipped {
		return
	}
	st.GravityFlipped = true
	st.emit(core.On(core.EventGravityFlipToggled))
	b.queue.CancelGroup(groupSpawn)
	window := b.cfg.Items.GravityFlipWindow
	b.queue.After(b.ticks(window/2), groupGravity, action{kind: actGravityWeaken})
	b.queue.After(b.ticks(window), groupGravity, action{kind: actGravityRestore})
}

func (b *Board) endGravityFlip(st *SimulationState) {
	if !st.GravityFlipped {
		return
	}
	b.queue.CancelGroup(groupGravity)
	b.world.SetGravity(physics.V(0, b.cfg.Board.Gravity))
	st.GravityFlipped = false
	st.emit(core.Event{Kind: core.EventGravityFlipToggled})
	b.scheduleSpawn(st)
}

// PressFlipper raises a flipper. Ignored once the round is over.
func (b *Board) PressFlipper(s Side) {
	if b.state.RoundOver || b.state.Mode == ModeBossFight {
		return
	}
	b.pressFlipper(s)
}

// ReleaseFlipper drops a flipper.
func (b *Board) ReleaseFlipper(s Side) {
	if b.state.Mode == ModeBossFight {
		return
	}
	b.releaseFlipper(s)
}

// TapBall fires the jump boost toward the board center. The boost is
// re-armed when a ball touches a flipper.
func (b *Board) TapBall() bool {
	st := &b.state
	if !st.BoostArmed || st.RoundOver || st.Mode == ModeCountdown || st.Mode == ModeBossFight {
		return false
	}
	c := b.cfg.Ball
	for _, ball := range b.ents.all(KindBall, KindDuplicateBall) {
		d := 1.0
		if ball.Position().X > b.cfg.Board.Width/2 {
			d = -1
		}
		m := ball.Mass()
		ball.ApplyImpulse(physics.V(d*c.BoostX*m, c.BoostY*m))
	}
	st.BoostArmed = false
	return true
}

// TapUndoButton spends the undo reward, sending the primary ball back to
// where it was at the start of the history window.
func (b *Board) TapUndoButton() bool {
	st := &b.state
	if !st.UndoAvailable || st.RoundOver || st.Mode == ModeBossFight {
		return false
	}
	ball := b.ball()
	s, ok := b.history.oldest()
	if ball == nil || !ok {
		return false
	}
	ball.SetPosition(s.pos)
	ball.SetVelocity(s.vel)
	st.UndoAvailable = false
	b.history.reset()
	return true
}

// enterBoss suspends the board while a boss fight runs.
func (b *Board) enterBoss() {
	st := &b.state
	b.prevMode = st.Mode
	for _, f := range b.flippers {
		if f != nil {
			f.held = false
		}
	}
	b.setMode(st, ModeBossFight)
}

// resumeFromBoss applies the fight's outcome and restarts play with
// weakened gravity for a moment so the ball does not drop straight through.
func (b *Board) resumeFromBoss(res BossResult) {
	st := &b.state
	if st.Mode != ModeBossFight {
		return
	}
	b.setMode(st, b.prevMode)
	c := b.cfg.Boss

	st.TimeSurvived += res.TimeSurvived
	if res.Outcome == OutcomeVictory {
		st.Timer += c.ResumeTimerDelta
	} else {
		st.Timer -= c.ResumeTimerDelta
	}
	if st.DuplicateActive && !res.DuplicateSurvived {
		b.ents.removeAll(b.world, KindDuplicateBall)
		b.dropDuplicate(st)
	}
	for _, f := range b.flippers {
		if f != nil {
			f.settle()
		}
	}
	st.BoostArmed = true

	if st.Timer <= 0 {
		b.lose(st)
		return
	}
	if !st.GravityFlipped {
		b.world.SetGravity(physics.V(0, c.ResumeGravity))
		b.queue.CancelGroup(groupResume)
		b.queue.After(b.ticks(c.ResumeWindow), groupResume, action{kind: actResumeGravityEnd})
	}
	b.scheduleSpawn(st)
}
