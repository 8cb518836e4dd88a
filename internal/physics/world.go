// Package physics wraps the chipmunk rigid-body engine with the pieces the
// pinball simulation needs: category-based collision and contact masks,
// per-step contact lists, angle-limited revolute pins, per-body gravity
// opt-out and damping.
package physics

import (
	"github.com/jakecoffman/cp"
)

// every shape shares one collision type so a single handler sees all pairs.
const contactType cp.CollisionType = 1

// World owns a chipmunk space and every body added to it.
type World struct {
	space    *cp.Space
	bodies   map[*cp.Body]*Body
	byShape  map[*cp.Shape]*Body
	nextID   uint64
	contacts []Contact
}

// NewWorld creates a world with the given gravity and solver iterations.
func NewWorld(gravity Vec, iterations int) *World {
	space := cp.NewSpace()
	if iterations > 0 {
		space.Iterations = uint(iterations)
	}
	space.SetGravity(gravity)

	w := &World{
		space:   space,
		bodies:  make(map[*cp.Body]*Body),
		byShape: make(map[*cp.Shape]*Body),
	}

	handler := space.NewCollisionHandler(contactType, contactType)
	handler.UserData = w
	handler.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok || world == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		a, okA := world.byShape[shapeA]
		b, okB := world.byShape[shapeB]
		if !okA || !okB || a == b {
			return false
		}
		if a.filter.Reports(b.filter) && !world.recorded(a, b) {
			world.contacts = append(world.contacts, Contact{
				A:         a,
				B:         b,
				VelocityA: a.body.Velocity(),
				VelocityB: b.body.Velocity(),
			})
		}
		return a.filter.Solid(b.filter)
	}

	return w
}

// recorded reports whether the pair already began touching this step.
// Compound bodies touch through several shapes at once.
func (w *World) recorded(a, b *Body) bool {
	for _, c := range w.contacts {
		if (c.A == a && c.B == b) || (c.A == b && c.B == a) {
			return true
		}
	}
	return false
}

// Gravity returns the current gravity vector.
func (w *World) Gravity() Vec {
	return w.space.Gravity()
}

// SetGravity replaces the gravity vector.
func (w *World) SetGravity(g Vec) {
	w.space.SetGravity(g)
}

// Len returns the number of live bodies.
func (w *World) Len() int {
	return len(w.bodies)
}

// Add creates a body from def and inserts it into the world.
func (w *World) Add(def BodyDef) *Body {
	var cb *cp.Body
	switch def.Type {
	case Static:
		cb = cp.NewStaticBody()
	case Kinematic:
		cb = cp.NewKinematicBody()
	default:
		mass := def.Mass
		if mass <= 0 {
			mass = 1
		}
		moment := def.Moment
		if moment <= 0 {
			moment = momentFor(mass, def.Shapes)
		}
		cb = cp.NewBody(mass, moment)
	}

	cb.SetPosition(def.Position)
	cb.SetAngle(def.Angle)
	if def.Type != Static {
		cb.SetVelocityVector(def.Velocity)
	}

	w.nextID++
	b := &Body{
		ID:             w.nextID,
		Tag:            def.Tag,
		body:           cb,
		filter:         def.Filter,
		kind:           def.Type,
		noGravity:      def.NoGravity,
		linearDamping:  def.LinearDamping,
		angularDamping: def.AngularDamping,
	}
	if def.Type == Dynamic {
		cb.SetVelocityUpdateFunc(b.updateVelocity)
	}
	w.space.AddBody(cb)

	for _, s := range def.Shapes {
		shape := newShape(cb, s)
		shape.SetSensor(def.Sensor)
		shape.SetElasticity(def.Elasticity)
		shape.SetFriction(def.Friction)
		shape.SetCollisionType(contactType)
		w.space.AddShape(shape)
		b.shapes = append(b.shapes, shape)
		w.byShape[shape] = b
	}

	w.bodies[cb] = b
	return b
}

func newShape(body *cp.Body, s Shape) *cp.Shape {
	switch s.Kind {
	case ShapeCircle:
		return cp.NewCircle(body, s.Radius, s.Offset)
	case ShapeBox:
		bb := cp.BB{
			L: s.Offset.X - s.Width/2,
			B: s.Offset.Y - s.Height/2,
			R: s.Offset.X + s.Width/2,
			T: s.Offset.Y + s.Height/2,
		}
		return cp.NewBox2(body, bb, 0)
	default:
		return cp.NewSegment(body, s.A, s.B, s.Radius)
	}
}

// momentFor approximates the moment of inertia of a compound body.
func momentFor(mass float64, shapes []Shape) float64 {
	if len(shapes) == 1 {
		s := shapes[0]
		switch s.Kind {
		case ShapeCircle:
			return cp.MomentForCircle(mass, 0, s.Radius, s.Offset)
		case ShapeBox:
			return cp.MomentForBox(mass, s.Width, s.Height)
		}
	}
	r := 1.0
	for _, s := range shapes {
		if e := s.extent(); e > r {
			r = e
		}
	}
	return cp.MomentForCircle(mass, 0, r, cp.Vector{})
}

// Pin attaches b to the static world at pivot (world coordinates).
func (w *World) Pin(b *Body, pivot Vec) {
	if b.removed {
		return
	}
	joint := cp.NewPivotJoint(b.body, w.space.StaticBody, pivot)
	w.space.AddConstraint(joint)
	b.joints = append(b.joints, joint)
}

// LimitAngle keeps b's rotation relative to the world within [min, max]
// with a rotary limit joint. The joint only pushes back once a bound is
// crossed, so angular velocity that would carry the body past a bound is
// also trimmed before each step and again after the solver runs.
func (w *World) LimitAngle(b *Body, min, max float64) {
	if b.removed {
		return
	}
	b.trim = func(dt float64) {
		if dt <= 0 {
			return
		}
		a, av := b.body.Angle(), b.body.AngularVelocity()
		switch {
		case a+av*dt > max:
			b.body.SetAngularVelocity((max - a) / dt)
		case a+av*dt < min:
			b.body.SetAngularVelocity((min - a) / dt)
		}
	}
	joint := cp.NewRotaryLimitJoint(w.space.StaticBody, b.body, min, max)
	joint.PostSolve = func(_ *cp.Constraint, space *cp.Space) {
		b.trim(space.TimeStep())
	}
	w.space.AddConstraint(joint)
	b.joints = append(b.joints, joint)
}

// Remove takes b and its joints out of the world. Removing twice is a no-op.
// Must not be called while Step is running.
func (w *World) Remove(b *Body) {
	if b == nil || b.removed {
		return
	}
	for _, j := range b.joints {
		w.space.RemoveConstraint(j)
	}
	for _, s := range b.shapes {
		w.space.RemoveShape(s)
		delete(w.byShape, s)
	}
	w.space.RemoveBody(b.body)
	delete(w.bodies, b.body)
	b.joints = nil
	b.shapes = nil
	b.trim = nil
	b.removed = true
}

// Clear removes every body.
func (w *World) Clear() {
	for _, b := range w.bodies {
		w.Remove(b)
	}
}

// Step advances the world by dt and returns the contacts that began during
// this step. The returned slice is reused by the next call.
func (w *World) Step(dt float64) []Contact {
	w.contacts = w.contacts[:0]
	for _, b := range w.bodies {
		if b.trim != nil {
			b.trim(dt)
		}
	}
	w.space.Step(dt)
	for _, b := range w.bodies {
		if b.frozen {
			b.body.SetVelocity(0, 0)
		}
	}
	return w.contacts
}
