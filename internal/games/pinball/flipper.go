package pinball

import (
	"math"

	"github.com/vovakirdan/pinball-madness/internal/config"
	"github.com/vovakirdan/pinball-madness/internal/physics"
)

// ShortestAngle returns the signed rotation from a to b, in (-pi, pi].
func ShortestAngle(a, b float64) float64 {
	d := math.Mod(b-a, 2*math.Pi)
	if d < 0 {
		d += 2 * math.Pi
	}
	if d > math.Pi {
		d -= 2 * math.Pi
	}
	return d
}

// flipper is a pinned paddle driven toward its rest or pressed angle by a
// PD controller. The right flipper mirrors the left one.
type flipper struct {
	side    Side
	body    *physics.Body
	rest    float64
	pressed float64
	held    bool
}

func newFlipper(w *physics.World, ents *entities, cfg config.FlipperConfig, side Side) *flipper {
	d := side.dir()
	pivot := physics.V(cfg.LeftPivotX, cfg.PivotY)
	kind := KindFlipperLeft
	if side == SideRight {
		pivot = physics.V(cfg.RightPivotX, cfg.PivotY)
		kind = KindFlipperRight
	}
	f := &flipper{
		side:    side,
		rest:    d * cfg.RestAngle,
		pressed: d * cfg.PressedAngle,
	}

	// Thick root, thin tip. The blade points toward the board center.
	tip := physics.V(d*cfg.Length, 0)
	root := physics.V(d*cfg.Length*0.6, 0)
	f.body = ents.add(kind, w.Add(physics.BodyDef{
		Type:     physics.Dynamic,
		Position: pivot,
		Angle:    f.rest,
		Mass:     cfg.Mass,
		Moment:   cfg.Moment,
		Shapes: []physics.Shape{
			physics.Segment(physics.V(0, 0), root, cfg.Radius),
			physics.Segment(physics.V(0, 0), tip, cfg.Radius*0.6),
		},
		Filter:         filterFor(kind),
		Elasticity:     cfg.Elasticity,
		Friction:       0.8,
		NoGravity:      true,
		AngularDamping: cfg.AngularDamping,
		Tag:            kind,
	}))
	w.Pin(f.body, pivot)
	w.LimitAngle(f.body, math.Min(f.rest, f.pressed), math.Max(f.rest, f.pressed))
	return f
}

// press raises the flipper with an angular kick.
func (f *flipper) press(cfg config.FlipperConfig) {
	f.held = true
	d := f.side.dir()
	if f.body.AngularVelocity()*d < 0 {
		f.body.SetAngularVelocity(0)
	}
	f.body.ApplyAngularImpulse(d * cfg.PressImpulse)
}

// release drops the flipper. Motion still heading up is discarded first so
// the release kick never fights leftover press momentum.
func (f *flipper) release(cfg config.FlipperConfig) {
	f.held = false
	d := f.side.dir()
	if f.body.AngularVelocity()*d > 0 {
		f.body.SetAngularVelocity(0)
	}
	f.body.ApplyAngularImpulse(-d * cfg.ReleaseImpulse)
}

// control sets the corrective torque for the next step.
func (f *flipper) control(cfg config.FlipperConfig) float64 {
	target, gains := f.rest, cfg.Rest
	if f.held {
		target, gains = f.pressed, cfg.Press
	}
	e := ShortestAngle(f.body.Angle(), target)
	torque := gains.Kp*e - gains.Kd*f.body.AngularVelocity()
	torque = math.Max(-gains.MaxTorque, math.Min(gains.MaxTorque, torque))
	f.body.SetTorque(torque)
	return torque
}

// settle snaps the flipper back to rest with no motion.
func (f *flipper) settle() {
	f.held = false
	f.body.SetAngle(f.rest)
	f.body.SetAngularVelocity(0)
}

// kick applies an angular impulse in the raising direction (negative drops).
func (f *flipper) kick(j float64) {
	f.body.ApplyAngularImpulse(f.side.dir() * j)
}
