package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Vec is a 2D vector. It is the chipmunk vector, so Add, Sub, Mult, Length,
// Normalize and Distance are available on every value.
type Vec = cp.Vector

// V is shorthand for building a Vec.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// BodyType controls how a body participates in integration.
type BodyType int

const (
	Dynamic   BodyType = iota // Moved by forces, gravity and contacts
	Static                    // Never moves
	Kinematic                 // Moved only by its own velocity, pushes dynamic bodies
)

// ShapeKind identifies a collision primitive.
type ShapeKind int

const (
	ShapeCircle ShapeKind = iota
	ShapeBox
	ShapeSegment
)

// Shape is a collision primitive in body-local coordinates.
type Shape struct {
	Kind   ShapeKind
	Radius float64 // Circle radius, or segment thickness
	Offset Vec     // Circle or box center
	Width  float64 // Box
	Height float64 // Box
	A, B   Vec     // Segment endpoints
}

// Circle returns a circle shape centered at offset.
func Circle(radius float64, offset Vec) Shape {
	return Shape{Kind: ShapeCircle, Radius: radius, Offset: offset}
}

// Box returns an axis-aligned box centered at offset.
func Box(offset Vec, w, h float64) Shape {
	return Shape{Kind: ShapeBox, Offset: offset, Width: w, Height: h}
}

// Segment returns a capsule from a to b with the given thickness.
func Segment(a, b Vec, radius float64) Shape {
	return Shape{Kind: ShapeSegment, A: a, B: b, Radius: radius}
}

// extent returns the distance from the body origin to the far edge of the shape.
func (s Shape) extent() float64 {
	switch s.Kind {
	case ShapeCircle:
		return s.Offset.Length() + s.Radius
	case ShapeBox:
		return s.Offset.Length() + math.Hypot(s.Width, s.Height)/2
	default:
		return math.Max(s.A.Length(), s.B.Length()) + s.Radius
	}
}

// BodyDef describes a body to add to a World.
type BodyDef struct {
	Type     BodyType
	Position Vec
	Angle    float64
	Velocity Vec
	Mass     float64 // Dynamic only
	Moment   float64 // Dynamic only; derived from the shapes when zero
	Shapes   []Shape
	Filter   Filter
	// Sensor shapes report contacts but are never solid.
	Sensor     bool
	Elasticity float64
	Friction   float64
	// NoGravity excludes the body from the world gravity.
	NoGravity bool
	// Damping is the fraction of velocity removed per second.
	LinearDamping  float64
	AngularDamping float64
	Tag            any
}

// Body is a rigid body owned by a World.
type Body struct {
	ID  uint64
	Tag any

	body   *cp.Body
	shapes []*cp.Shape
	joints []*cp.Constraint
	filter Filter
	kind   BodyType

	noGravity      bool
	linearDamping  float64
	angularDamping float64
	frozen         bool
	removed        bool

	// trim caps angular velocity so the next position update stays inside
	// the angle limit. Nil when the body is unlimited.
	trim func(dt float64)
}

// Category returns the body's category bits.
func (b *Body) Category() Category {
	return b.filter.Category
}

// Filter returns the body's collision and contact masks.
func (b *Body) Filter() Filter {
	return b.filter
}

// Type returns the body type.
func (b *Body) Type() BodyType {
	return b.kind
}

// Removed reports whether the body has been taken out of its world.
func (b *Body) Removed() bool {
	return b.removed
}

// Position returns the body origin in world coordinates.
func (b *Body) Position() Vec {
	return b.body.Position()
}

// SetPosition teleports the body.
func (b *Body) SetPosition(p Vec) {
	b.body.SetPosition(p)
}

// Velocity returns the linear velocity.
func (b *Body) Velocity() Vec {
	return b.body.Velocity()
}

// SetVelocity replaces the linear velocity.
func (b *Body) SetVelocity(v Vec) {
	b.body.SetVelocityVector(v)
}

// Speed returns the magnitude of the linear velocity.
func (b *Body) Speed() float64 {
	return b.body.Velocity().Length()
}

// Angle returns the rotation in radians.
func (b *Body) Angle() float64 {
	return b.body.Angle()
}

// SetAngle replaces the rotation.
func (b *Body) SetAngle(a float64) {
	b.body.SetAngle(a)
}

// AngularVelocity returns the angular velocity in radians per second.
func (b *Body) AngularVelocity() float64 {
	return b.body.AngularVelocity()
}

// SetAngularVelocity replaces the angular velocity.
func (b *Body) SetAngularVelocity(w float64) {
	b.body.SetAngularVelocity(w)
}

// Mass returns the body mass.
func (b *Body) Mass() float64 {
	return b.body.Mass()
}

// Moment returns the moment of inertia.
func (b *Body) Moment() float64 {
	return b.body.Moment()
}

// ApplyImpulse changes momentum at the body's center.
func (b *Body) ApplyImpulse(j Vec) {
	if b.kind != Dynamic || b.frozen {
		return
	}
	b.body.ApplyImpulseAtWorldPoint(j, b.body.Position())
}

// ApplyAngularImpulse changes angular momentum by j.
func (b *Body) ApplyAngularImpulse(j float64) {
	if b.kind != Dynamic || b.frozen {
		return
	}
	b.body.SetAngularVelocity(b.body.AngularVelocity() + j/b.body.Moment())
}

// ApplyForce adds a force at the body's center for the next step.
func (b *Body) ApplyForce(f Vec) {
	if b.kind != Dynamic || b.frozen {
		return
	}
	b.body.ApplyForceAtWorldPoint(f, b.body.Position())
}

// SetTorque sets the torque applied during the next step.
func (b *Body) SetTorque(t float64) {
	if b.kind != Dynamic {
		return
	}
	b.body.SetTorque(t)
}

// LimitSpeed scales the velocity down to max if it is faster.
// Returns true when the velocity was changed.
func (b *Body) LimitSpeed(max float64) bool {
	v := b.body.Velocity()
	speed := v.Length()
	if speed <= max || speed == 0 {
		return false
	}
	b.body.SetVelocityVector(v.Mult(max / speed))
	return true
}

// Freeze stops integrating the body while keeping it in the world.
func (b *Body) Freeze(frozen bool) {
	b.frozen = frozen
	if frozen {
		b.body.SetVelocity(0, 0)
		b.body.SetAngularVelocity(0)
	}
}

// Frozen reports whether the body is frozen.
func (b *Body) Frozen() bool {
	return b.frozen
}

// updateVelocity integrates gravity, forces and damping for dynamic bodies.
func (b *Body) updateVelocity(body *cp.Body, gravity cp.Vector, damping, dt float64) {
	if b.frozen {
		body.SetVelocity(0, 0)
		body.SetAngularVelocity(0)
		return
	}
	if b.noGravity {
		gravity = cp.Vector{}
	}
	cp.BodyUpdateVelocity(body, gravity, damping, dt)

	if b.linearDamping > 0 {
		body.SetVelocityVector(body.Velocity().Mult(math.Exp(-b.linearDamping * dt)))
	}
	if b.angularDamping > 0 {
		body.SetAngularVelocity(body.AngularVelocity() * math.Exp(-b.angularDamping*dt))
	}
}
