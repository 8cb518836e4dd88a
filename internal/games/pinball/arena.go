package pinball

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pinball-madness/internal/config"
	"github.com/vovakirdan/pinball-madness/internal/physics"
)

// arena is the playfield shared by the board and the boss fight: a physics
// world with its walls, flippers, bumpers, balls and lose box.
type arena struct {
	cfg      config.PinballConfig
	world    *physics.World
	ents     *entities
	rng      *rng
	log      *log.Logger
	dt       float64
	flippers [2]*flipper
}

func newArena(cfg config.PinballConfig, gravity float64, seed int64, logger *log.Logger) *arena {
	return &arena{
		cfg:   cfg,
		world: physics.NewWorld(physics.V(0, gravity), cfg.Board.Iterations),
		ents:  newEntities(),
		rng:   newRNG(seed),
		log:   logger,
		dt:    1 / float64(cfg.Round.TickRate),
	}
}

// ticks converts seconds to a tick delay, never less than one tick.
func (a *arena) ticks(seconds float64) uint64 {
	n := math.Round(seconds * float64(a.cfg.Round.TickRate))
	if n < 1 {
		return 1
	}
	return uint64(n)
}

func (a *arena) addStatic(kind BodyKind, pos physics.Vec, sensor bool, elasticity float64, shapes ...physics.Shape) *physics.Body {
	return a.ents.add(kind, a.world.Add(physics.BodyDef{
		Type:       physics.Static,
		Position:   pos,
		Shapes:     shapes,
		Filter:     filterFor(kind),
		Sensor:     sensor,
		Elasticity: elasticity,
		Friction:   0.5,
		Tag:        kind,
	}))
}

// wallSegments returns the side and top boundary plus the two slingshot
// guides that funnel the ball onto the flippers. The bottom is open.
func wallSegments(cfg config.PinballConfig) [][2]physics.Vec {
	b := cfg.Board
	f := cfg.Flipper
	guideTop := f.PivotY + 90
	return [][2]physics.Vec{
		{physics.V(0, 0), physics.V(0, b.Height)},
		{physics.V(b.Width, 0), physics.V(b.Width, b.Height)},
		{physics.V(0, b.Height), physics.V(b.Width, b.Height)},
		{physics.V(0, guideTop), physics.V(f.LeftPivotX, f.PivotY)},
		{physics.V(b.Width, guideTop), physics.V(f.RightPivotX, f.PivotY)},
	}
}

func (a *arena) addWalls() {
	var shapes []physics.Shape
	for _, seg := range wallSegments(a.cfg) {
		shapes = append(shapes, physics.Segment(seg[0], seg[1], a.cfg.Board.WallThickness))
	}
	a.addStatic(KindWall, physics.V(0, 0), false, 0.4, shapes...)
}

// addLoseBox places the drain sensor across the bottom of the board.
func (a *arena) addLoseBox() *physics.Body {
	b := a.cfg.Board
	return a.addStatic(KindLoseBox, physics.V(b.Width/2, b.LoseBoxHeight/2), true, 0,
		physics.Box(physics.V(0, 0), b.Width, b.LoseBoxHeight))
}

func (a *arena) addBumper(kind BodyKind, x, y float64) *physics.Body {
	return a.addStatic(kind, physics.V(x, y), false, a.cfg.Bumpers.Elasticity,
		physics.Circle(a.cfg.Bumpers.Radius, physics.V(0, 0)))
}

func (a *arena) addFlippers() {
	a.flippers[SideLeft] = newFlipper(a.world, a.ents, a.cfg.Flipper, SideLeft)
	a.flippers[SideRight] = newFlipper(a.world, a.ents, a.cfg.Flipper, SideRight)
}

func (a *arena) removeFlippers() {
	a.ents.removeAll(a.world, KindFlipperLeft, KindFlipperRight)
	a.flippers = [2]*flipper{}
}

// addBall spawns the primary ball or the duplicate at pos.
func (a *arena) addBall(kind BodyKind, pos, vel physics.Vec) *physics.Body {
	c := a.cfg.Ball
	damping := c.LinearDamping
	if kind == KindDuplicateBall {
		damping = c.DuplicateDamping
	}
	return a.ents.add(kind, a.world.Add(physics.BodyDef{
		Type:          physics.Dynamic,
		Position:      pos,
		Velocity:      vel,
		Mass:          c.Mass,
		Shapes:        []physics.Shape{physics.Circle(c.Radius, physics.V(0, 0))},
		Filter:        filterFor(kind),
		Elasticity:    c.Elasticity,
		Friction:      c.Friction,
		LinearDamping: damping,
		Tag:           kind,
	}))
}

func (a *arena) ball() *physics.Body {
	return a.ents.first(KindBall)
}

func (a *arena) duplicate() *physics.Body {
	return a.ents.first(KindDuplicateBall)
}

// promoteDuplicate replaces a lost primary ball with the duplicate, keeping
// the duplicate's motion. Returns false when there is no duplicate.
func (a *arena) promoteDuplicate() bool {
	dup := a.duplicate()
	if dup == nil {
		return false
	}
	pos, vel := dup.Position(), dup.Velocity()
	a.ents.removeAll(a.world, KindBall, KindDuplicateBall)
	a.addBall(KindBall, pos, vel)
	return true
}

// pressFlipper and releaseFlipper ignore sides whose flipper is not on the
// board, which happens while pistons replace them.
func (a *arena) pressFlipper(s Side) {
	if f := a.flippers[s]; f != nil {
		f.press(a.cfg.Flipper)
	}
}

func (a *arena) releaseFlipper(s Side) {
	if f := a.flippers[s]; f != nil && f.held {
		f.release(a.cfg.Flipper)
	}
}

// controlFlippers applies the PD torque to both flippers.
func (a *arena) controlFlippers() {
	for _, f := range a.flippers {
		if f != nil {
			f.control(a.cfg.Flipper)
		}
	}
}

// govern clamps both balls to their speed caps.
func (a *arena) govern(primaryMax, duplicateMax float64) {
	if b := a.ball(); b != nil {
		b.LimitSpeed(primaryMax)
	}
	if d := a.duplicate(); d != nil {
		d.LimitSpeed(duplicateMax)
	}
}

// bump applies a bumper's response to a ball. incoming is the ball velocity
// before the solver resolved the hit.
func (a *arena) bump(ball *physics.Body, bumper BodyKind, incoming physics.Vec) {
	c := a.cfg.Bumpers
	m := ball.Mass()
	switch bumper {
	case KindBumperLeft:
		ball.ApplyImpulse(physics.V(c.SidePush*m, c.UpPush*m))
	case KindBumperRight:
		ball.ApplyImpulse(physics.V(-c.SidePush*m, c.UpPush*m))
	case KindBumperCenter:
		if incoming.LengthSq() == 0 {
			ball.ApplyImpulse(physics.V(0, c.UpPush*m))
			return
		}
		ball.SetVelocity(incoming.Mult(-c.Reflect))
	default:
		ball.ApplyImpulse(physics.V(0, c.UpPush*m))
	}
}

// outOfBounds reports whether a ball escaped the board horizontally.
func (a *arena) outOfBounds(b *physics.Body) bool {
	x := b.Position().X
	return x < a.cfg.Board.OutOfBoundsMin || x > a.cfg.Board.OutOfBoundsMax
}

func (a *arena) startPosition() physics.Vec {
	return physics.V(a.cfg.Round.StartPositionX, a.cfg.Round.StartPositionY)
}

func (a *arena) duplicateStart() physics.Vec {
	return physics.V(a.cfg.Round.DuplicateStartX, a.cfg.Round.DuplicateStartY)
}
