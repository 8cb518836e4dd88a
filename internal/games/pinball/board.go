package pinball

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pinball-madness/internal/config"
	"github.com/vovakirdan/pinball-madness/internal/core"
	"github.com/vovakirdan/pinball-madness/internal/physics"
	"github.com/vovakirdan/pinball-madness/internal/schedule"
)

// obstacle is a kinematic bar sweeping across one row.
type obstacle struct {
	body       *physics.Body
	minX, maxX float64
	dir        float64 // +1 heading right, -1 heading left
}

// Board is the main playfield simulation. It is single-threaded: commands
// and Step must be called from the same goroutine.
type Board struct {
	*arena

	state     SimulationState
	queue     schedule.Queue[action]
	history   history
	obstacles []*obstacle
	prevMode  Mode        // Mode to restore after a boss fight
	dupExpire schedule.ID // Pending duplicate expiry, 0 when none
}

// NewBoard builds a fresh board in the countdown phase.
func NewBoard(cfg config.PinballConfig, seed int64, logger *log.Logger) *Board {
	if logger == nil {
		logger = discardLogger()
	}
	b := &Board{
		arena:   newArena(cfg, cfg.Board.Gravity, seed, logger),
		history: history{window: cfg.Ball.HistoryWindow},
	}
	b.build()
	return b
}

// Layout of the fixed bumpers, relative to the board size.
func bumperLayout(w float64) []struct {
	kind BodyKind
	x, y float64
} {
	return []struct {
		kind BodyKind
		x, y float64
	}{
		{KindBumperLeft, w * 0.2, 680},
		{KindBumperRight, w * 0.8, 680},
		{KindBumperCenter, w / 2, 520},
		{KindBumper, w / 2, 760},
	}
}

func (b *Board) build() {
	cfg := b.cfg
	b.addWalls()
	for _, bp := range bumperLayout(cfg.Board.Width) {
		b.addBumper(bp.kind, bp.x, bp.y)
	}
	b.addFlippers()
	b.addObstacles()
	b.addLoseBox()
	ball := b.addBall(KindBall, b.startPosition(), physics.Vec{})

	b.state = SimulationState{
		Mode:       ModeCountdown,
		Timer:      cfg.Round.InitialTimer,
		Countdown:  cfg.Round.CountdownSteps,
		BoostArmed: true,
	}
	if cfg.Round.CountdownSteps > 0 {
		ball.Freeze(true)
		b.queue.After(b.ticks(cfg.Round.CountdownStep), groupCountdown, action{kind: actCountdownStep})
		return
	}
	b.startPlay(&b.state)
}

func (b *Board) addObstacles() {
	c := b.cfg.Board
	half := c.ObstacleWidth / 2
	for i, y := range c.ObstacleRows {
		o := &obstacle{
			minX: c.WallThickness + half,
			maxX: c.Width - c.WallThickness - half,
			dir:  1,
		}
		x := o.minX
		if i%2 == 1 {
			x, o.dir = o.maxX, -1
		}
		o.body = b.ents.add(KindObstacle, b.world.Add(physics.BodyDef{
			Type:       physics.Kinematic,
			Position:   physics.V(x, y),
			Shapes:     []physics.Shape{physics.Box(physics.V(0, 0), c.ObstacleWidth, 10)},
			Filter:     filterFor(KindObstacle),
			Elasticity: 0.6,
			Friction:   0.3,
			Tag:        KindObstacle,
		}))
		b.obstacles = append(b.obstacles, o)
	}
}

func (b *Board) startObstacle(row int) {
	o := b.obstacles[row]
	speed := (o.maxX - o.minX) / b.cfg.Board.ObstacleSweep
	o.body.SetVelocity(physics.V(o.dir*speed, 0))
	b.queue.After(b.ticks(b.cfg.Board.ObstacleSweep), groupObstacle, action{kind: actObstacleStop, row: row})
}

// stopObstacle parks the bar exactly on the edge it was heading to and turns
// it around after the pause.
func (b *Board) stopObstacle(row int) {
	o := b.obstacles[row]
	o.body.SetVelocity(physics.Vec{})
	edge := o.maxX
	if o.dir < 0 {
		edge = o.minX
	}
	o.body.SetPosition(physics.V(edge, o.body.Position().Y))
	o.dir = -o.dir
	b.queue.After(b.ticks(b.cfg.Board.ObstaclePause), groupObstacle, action{kind: actObstacleStart, row: row})
}

func (b *Board) countdownStep(st *SimulationState) {
	if st.Mode != ModeCountdown {
		return
	}
	st.Countdown--
	if st.Countdown > 0 {
		b.queue.After(b.ticks(b.cfg.Round.CountdownStep), groupCountdown, action{kind: actCountdownStep})
		return
	}
	b.startPlay(st)
}

// startPlay ends the countdown: the ball is released, the obstacles start
// moving and the first item is scheduled.
func (b *Board) startPlay(st *SimulationState) {
	b.setMode(st, ModeNormal)
	st.Countdown = 0
	if ball := b.ball(); ball != nil {
		ball.Freeze(false)
	}
	for i := range b.obstacles {
		b.startObstacle(i)
	}
	b.scheduleSpawn(st)
}

func (b *Board) setMode(st *SimulationState, m Mode) {
	if st.Mode == m {
		return
	}
	b.log.Debug("mode change", "from", st.Mode, "to", m, "tick", st.Tick)
	st.Mode = m
}

// Step advances the board by one tick and returns the events it produced.
// Order: deferred actions, physics, contact handlers, flipper control,
// speed governor, out-of-bounds recovery, undo history, round timer.
func (b *Board) Step() []core.Event {
	st := &b.state
	if st.RoundOver || st.Mode == ModeBossFight {
		return st.drain()
	}
	st.Tick++

	for _, a := range b.queue.Advance() {
		if st.RoundOver {
			break
		}
		b.run(st, a)
	}

	for _, c := range b.world.Step(b.dt) {
		b.dispatch(st, c)
	}
	if st.RoundOver {
		return st.drain()
	}

	b.controlFlippers()
	b.govern(b.cfg.Ball.MaxSpeed, b.cfg.Ball.DuplicateMax)
	b.recover(st)
	if ball := b.ball(); ball != nil {
		b.history.record(st.TimeSurvived, ball.Position(), ball.Velocity())
	}
	b.advanceRound(st)
	return st.drain()
}

// recover respawns balls that escaped the board sideways.
func (b *Board) recover(st *SimulationState) {
	if ball := b.ball(); ball != nil && b.outOfBounds(ball) {
		b.log.Debug("ball out of bounds", "x", ball.Position().X, "tick", st.Tick)
		b.world.Remove(ball)
		b.ents.forget(KindBall)
		b.addBall(KindBall, b.startPosition(), physics.Vec{})
		b.history.reset()
	}
	if dup := b.duplicate(); dup != nil && b.outOfBounds(dup) {
		b.world.Remove(dup)
		b.ents.forget(KindDuplicateBall)
		b.addBall(KindDuplicateBall, b.duplicateStart(), physics.Vec{})
	}
}

// advanceRound runs the round clocks. Time survived grows every live tick;
// the survival timer only counts down in normal play.
func (b *Board) advanceRound(st *SimulationState) {
	st.TimeSurvived += b.dt
	if !st.Mode.freezesTimer() {
		st.Timer -= b.dt
	}
	if st.Timer <= 0 {
		b.lose(st)
	}
}

// lose ends the round. RoundLost is emitted once; everything pending is
// dropped and the balls stop.
func (b *Board) lose(st *SimulationState) {
	if st.RoundOver {
		return
	}
	if st.Timer < 0 {
		st.Timer = 0
	}
	st.RoundOver = true
	st.Lost = true
	b.log.Debug("dropping deferred actions", "pending", b.queue.Len(), "bodies", b.world.Len())
	b.queue.Reset()
	b.dupExpire = 0
	for _, ball := range b.ents.all(KindBall, KindDuplicateBall) {
		ball.Freeze(true)
	}
	b.log.Info("round lost", "survived", st.TimeSurvived, "tick", st.Tick)
	st.emit(core.On(core.EventRoundLost))
}

// loseBall handles a ball reaching the lose box.
func (b *Board) loseBall(st *SimulationState, ball *physics.Body) {
	if KindOf(ball) == KindDuplicateBall {
		b.world.Remove(ball)
		b.ents.forget(KindDuplicateBall)
		b.dropDuplicate(st)
		return
	}
	if b.promoteDuplicate() {
		b.log.Debug("duplicate promoted", "tick", st.Tick)
		b.history.reset()
		b.dropDuplicate(st)
		return
	}
	b.lose(st)
}

// dropDuplicate clears the duplicate flag after its ball is gone. A pending
// expiry is cancelled and the item cascade picks up again.
func (b *Board) dropDuplicate(st *SimulationState) {
	if !st.DuplicateActive {
		return
	}
	b.queue.Cancel(b.dupExpire)
	b.dupExpire = 0
	st.DuplicateActive = false
	st.emit(core.Event{Kind: core.EventDuplicateBallStateChanged})
	b.resumeSpawn(st)
}

// Band classifies the survival timer for display.
func (b *Board) Band() TimerBand {
	switch t := b.state.Timer; {
	case t <= b.cfg.Round.CriticalBelow:
		return BandCritical
	case t <= b.cfg.Round.WarningBelow:
		return BandWarning
	default:
		return BandNormal
	}
}

// State returns a copy of the simulation state without pending events.
func (b *Board) State() SimulationState {
	s := b.state
	s.Events = nil
	return s
}

// RotaRemaining returns the seconds left in the rota challenge.
func (b *Board) RotaRemaining() float64 {
	left, ok := b.queue.Remaining(groupRota)
	if !ok {
		return 0
	}
	return float64(left) * b.dt
}

// FistRemaining returns the seconds left in fist combat.
func (b *Board) FistRemaining() float64 {
	if b.state.Mode != ModeFistCombat {
		return 0
	}
	left, ok := b.queue.Remaining(groupFist)
	if !ok {
		return 0
	}
	return float64(left) * b.dt
}

// Ball returns the primary ball.
func (b *Board) Ball() *physics.Body {
	return b.ball()
}

// Config returns the configuration the board was built with.
func (b *Board) Config() config.PinballConfig {
	return b.cfg
}
