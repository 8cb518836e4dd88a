package physics

// Category is a bit flag identifying a body's gameplay role.
type Category uint32

// Filter decides how two bodies interact. Collision and contact are
// independent: a pair can report contacts without ever being solid.
type Filter struct {
	Category    Category // Bits of this body
	CollideWith Category // Categories this body is solid against
	ContactWith Category // Categories that produce contact events with this body
}

// Solid reports whether the pair is physically resolved.
func (f Filter) Solid(o Filter) bool {
	return f.Category&o.CollideWith != 0 || o.Category&f.CollideWith != 0
}

// Reports reports whether the pair generates a contact event.
func (f Filter) Reports(o Filter) bool {
	return f.Category&o.ContactWith != 0 || o.Category&f.ContactWith != 0
}

// Contact is a pair of bodies that started touching during the last step.
// VelocityA and VelocityB are the velocities before the solver resolved the
// impact.
type Contact struct {
	A, B                 *Body
	VelocityA, VelocityB Vec
}

// VelocityOf returns the pre-impact velocity recorded for b.
func (c Contact) VelocityOf(b *Body) Vec {
	if b == c.B {
		return c.VelocityB
	}
	return c.VelocityA
}

// Match returns the body in the pair whose category intersects mask, and the
// other body. ok is false when neither body matches. When both match, A wins.
func (c Contact) Match(mask Category) (self, other *Body, ok bool) {
	switch {
	case c.A.Category()&mask != 0:
		return c.A, c.B, true
	case c.B.Category()&mask != 0:
		return c.B, c.A, true
	default:
		return nil, nil, false
	}
}

// Live reports whether both bodies are still in their world.
func (c Contact) Live() bool {
	return !c.A.Removed() && !c.B.Removed()
}
