package pinball

import "github.com/vovakirdan/pinball-madness/internal/physics"

// ballContact splits a contact into a ball (primary or duplicate) and the
// body it touched, when the other body is one of kinds.
func ballContact(c physics.Contact, kinds ...BodyKind) (ball, other *physics.Body, ok bool) {
	ball, other, ok = c.Match(catAnyBall)
	if !ok {
		return nil, nil, false
	}
	ok = isKind(other, kinds...)
	if !ok && other.Category()&catAnyBall != 0 {
		// ball on ball: B may be the one we want
		ball, other = other, ball
		ok = isKind(other, kinds...)
	}
	return ball, other, ok
}

func isKind(b *physics.Body, kinds ...BodyKind) bool {
	k := KindOf(b)
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}

var bumperKinds = []BodyKind{KindBumperLeft, KindBumperRight, KindBumperCenter, KindBumper}

type boardHandler func(b *Board, st *SimulationState, c physics.Contact)

// boardHandlers run in order for every contact. Each is a no-op unless the
// pair is the one it handles; later handlers see the effects of earlier ones.
var boardHandlers = []boardHandler{
	(*Board).onBumper,
	(*Board).onFlipper,
	(*Board).onItem,
	(*Board).onRotaCheck,
	(*Board).onProjectile,
	(*Board).onLoseBox,
}

func (b *Board) dispatch(st *SimulationState, c physics.Contact) {
	for _, h := range boardHandlers {
		if st.RoundOver || !c.Live() {
			return
		}
		h(b, st, c)
	}
}

func (b *Board) onBumper(_ *SimulationState, c physics.Contact) {
	if ball, bumper, ok := ballContact(c, bumperKinds...); ok {
		b.bump(ball, KindOf(bumper), c.VelocityOf(ball))
	}
}

func (b *Board) onFlipper(st *SimulationState, c physics.Contact) {
	if _, _, ok := ballContact(c, KindFlipperLeft, KindFlipperRight); ok {
		st.BoostArmed = true
	}
}

func (b *Board) onItem(st *SimulationState, c physics.Contact) {
	ball, item, ok := ballContact(c, itemKinds...)
	if ok && KindOf(ball) == KindBall {
		b.pickup(st, item)
	}
}

func (b *Board) onRotaCheck(st *SimulationState, c physics.Contact) {
	ball, check, ok := ballContact(c, KindRotaCheck)
	if ok && KindOf(ball) == KindBall {
		b.collectCheck(st, check)
	}
}

// onProjectile knocks the ball when a fist projectile reaches it. A
// projectile hitting anything else just disappears.
func (b *Board) onProjectile(_ *SimulationState, c physics.Contact) {
	proj, other, ok := c.Match(catProjectile)
	if !ok {
		return
	}
	if KindOf(other) == KindBall {
		d := 1.0
		if KindOf(proj) == KindFistProjectileRight {
			d = -1
		}
		m := other.Mass()
		k := b.cfg.Items
		other.ApplyImpulse(physics.V(d*k.FistKnockX*m, k.FistKnockY*m))
	}
	b.world.Remove(proj)
}

func (b *Board) onLoseBox(st *SimulationState, c physics.Contact) {
	if ball, _, ok := ballContact(c, KindLoseBox); ok {
		b.loseBall(st, ball)
	}
}
