package physics

import (
	"math"
	"testing"
)

const (
	catBall  Category = 1 << 0
	catFloor Category = 1 << 1
	catItem  Category = 1 << 2
)

func ballDef(x, y float64) BodyDef {
	return BodyDef{
		Type:     Dynamic,
		Position: V(x, y),
		Mass:     1,
		Shapes:   []Shape{Circle(10, V(0, 0))},
		Filter: Filter{
			Category:    catBall,
			CollideWith: catFloor,
			ContactWith: catFloor | catItem,
		},
	}
}

func TestFilterSolidAndReports(t *testing.T) {
	ball := Filter{Category: catBall, CollideWith: catFloor, ContactWith: catItem}
	floor := Filter{Category: catFloor}
	item := Filter{Category: catItem}

	tests := []struct {
		name        string
		a, b        Filter
		wantSolid   bool
		wantReports bool
	}{
		{"ball-floor", ball, floor, true, false},
		{"floor-ball", floor, ball, true, false},
		{"ball-item", ball, item, false, true},
		{"item-ball", item, ball, false, true},
		{"floor-item", floor, item, false, false},
	}

	for _, tt := range tests {
		if got := tt.a.Solid(tt.b); got != tt.wantSolid {
			t.Errorf("%s: Solid() = %v, expected %v", tt.name, got, tt.wantSolid)
		}
		if got := tt.a.Reports(tt.b); got != tt.wantReports {
			t.Errorf("%s: Reports() = %v, expected %v", tt.name, got, tt.wantReports)
		}
	}
}

func TestGravityIntegration(t *testing.T) {
	w := NewWorld(V(0, -100), 10)
	ball := w.Add(ballDef(0, 1000))
	floating := w.Add(BodyDef{
		Type:      Dynamic,
		Position:  V(100, 1000),
		Mass:      1,
		Shapes:    []Shape{Circle(5, V(0, 0))},
		NoGravity: true,
	})

	for range 60 {
		w.Step(1.0 / 60)
	}

	if vy := ball.Velocity().Y; math.Abs(vy+100) > 1e-6 {
		t.Errorf("ball vy = %f, expected -100", vy)
	}
	if ball.Position().Y >= 1000 {
		t.Errorf("ball should have fallen, y = %f", ball.Position().Y)
	}
	if floating.Position().Y != 1000 {
		t.Errorf("NoGravity body moved to y = %f", floating.Position().Y)
	}
}

func TestSensorContactReportedOnce(t *testing.T) {
	w := NewWorld(V(0, -500), 10)
	ball := w.Add(ballDef(0, 100))
	item := w.Add(BodyDef{
		Type:     Static,
		Position: V(0, 40),
		Shapes:   []Shape{Circle(10, V(0, 0))},
		Sensor:   true,
		Filter:   Filter{Category: catItem},
	})

	hits := 0
	for range 60 {
		for _, c := range w.Step(1.0 / 60) {
			if _, other, ok := c.Match(catBall); ok && other == item {
				hits++
			}
		}
	}

	if hits != 1 {
		t.Errorf("item contacts = %d, expected 1", hits)
	}
	if ball.Position().Y > 0 {
		t.Errorf("ball should pass through the item, y = %f", ball.Position().Y)
	}
}

func TestSolidContactStopsBall(t *testing.T) {
	w := NewWorld(V(0, -500), 10)
	ball := w.Add(ballDef(0, 100))
	w.Add(BodyDef{
		Type:     Static,
		Position: V(0, 0),
		Shapes:   []Shape{Box(V(0, 0), 200, 20)},
		Filter:   Filter{Category: catFloor},
	})

	hits := 0
	for range 120 {
		hits += len(w.Step(1.0 / 60))
	}

	if hits == 0 {
		t.Error("expected a floor contact")
	}
	// Floor top is y=10, ball radius 10
	if y := ball.Position().Y; y < 18 || y > 22 {
		t.Errorf("ball resting y = %f, expected about 20", y)
	}
}

func TestAngleLimit(t *testing.T) {
	w := NewWorld(V(0, 0), 10)
	bar := w.Add(BodyDef{
		Type:     Dynamic,
		Position: V(0, 0),
		Mass:     1,
		Moment:   10,
		Shapes:   []Shape{Segment(V(0, 0), V(50, 0), 4)},
	})
	w.Pin(bar, V(0, 0))
	w.LimitAngle(bar, -0.5, 0.5)

	for range 60 {
		bar.SetTorque(1000)
		w.Step(1.0 / 60)
		if bar.Angle() > 0.5+1e-9 {
			t.Fatalf("angle %f exceeded limit", bar.Angle())
		}
	}

	if math.Abs(bar.Angle()-0.5) > 1e-9 {
		t.Errorf("angle = %f, expected to rest on the 0.5 limit", bar.Angle())
	}
	if math.Abs(bar.AngularVelocity()) > 1e-6 {
		t.Errorf("angular velocity = %f, expected 0 at the limit", bar.AngularVelocity())
	}
}

func TestAngleLimitStopsFastSpin(t *testing.T) {
	w := NewWorld(V(0, 0), 10)
	bar := w.Add(BodyDef{
		Type:   Dynamic,
		Mass:   1,
		Moment: 10,
		Shapes: []Shape{Segment(V(0, 0), V(50, 0), 4)},
	})
	w.Pin(bar, V(0, 0))
	w.LimitAngle(bar, -0.5, 0.5)

	// 40 rad/s covers the whole range in under two ticks.
	bar.ApplyAngularImpulse(-400)
	for i := range 30 {
		w.Step(1.0 / 60)
		if a := bar.Angle(); a < -0.5-1e-9 || a > 0.5+1e-9 {
			t.Fatalf("tick %d: angle %f outside [-0.5, 0.5]", i, a)
		}
	}
	if math.Abs(bar.Angle()+0.5) > 1e-9 {
		t.Errorf("angle = %f, expected to stop on the -0.5 limit", bar.Angle())
	}

	w.Remove(bar)
	if n := w.Len(); n != 0 {
		t.Errorf("Len() = %d after removing the limited body", n)
	}
}

func TestAngularImpulse(t *testing.T) {
	w := NewWorld(V(0, 0), 10)
	bar := w.Add(BodyDef{
		Type:   Dynamic,
		Mass:   1,
		Moment: 20,
		Shapes: []Shape{Segment(V(0, 0), V(50, 0), 4)},
	})

	bar.ApplyAngularImpulse(100)
	if w := bar.AngularVelocity(); math.Abs(w-5) > 1e-9 {
		t.Errorf("angular velocity = %f, expected 5", w)
	}
}

func TestFrozenBodyHoldsPosition(t *testing.T) {
	w := NewWorld(V(0, -500), 10)
	ball := w.Add(ballDef(10, 200))
	ball.Freeze(true)
	ball.ApplyImpulse(V(100, 100))

	for range 30 {
		w.Step(1.0 / 60)
	}
	if p := ball.Position(); p.X != 10 || p.Y != 200 {
		t.Errorf("frozen ball moved to %v", p)
	}

	// Positions move with the previous step's velocity, so the first
	// step after thawing only picks up speed.
	ball.Freeze(false)
	w.Step(1.0 / 60)
	if vy := ball.Velocity().Y; vy >= 0 {
		t.Errorf("unfrozen ball velocity y = %f, expected to fall", vy)
	}
	w.Step(1.0 / 60)
	if ball.Position().Y >= 200 {
		t.Error("unfrozen ball should fall")
	}
}

func TestLimitSpeed(t *testing.T) {
	w := NewWorld(V(0, 0), 10)
	ball := w.Add(ballDef(0, 0))
	ball.SetVelocity(V(300, 400))

	if !ball.LimitSpeed(100) {
		t.Fatal("LimitSpeed() should report a change")
	}
	v := ball.Velocity()
	if math.Abs(v.Length()-100) > 1e-9 {
		t.Errorf("speed = %f, expected 100", v.Length())
	}
	if math.Abs(v.X/v.Y-0.75) > 1e-9 {
		t.Errorf("direction changed: %v", v)
	}
	if ball.LimitSpeed(200) {
		t.Error("LimitSpeed() should not change a slower ball")
	}
}

func TestRemove(t *testing.T) {
	w := NewWorld(V(0, 0), 10)
	a := w.Add(ballDef(0, 0))
	w.Add(ballDef(100, 0))

	if w.Len() != 2 {
		t.Fatalf("Len() = %d, expected 2", w.Len())
	}

	w.Remove(a)
	w.Remove(a)
	if !a.Removed() {
		t.Error("Removed() should be true")
	}
	if w.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", w.Len())
	}

	w.Clear()
	if w.Len() != 0 {
		t.Errorf("Len() after Clear() = %d, expected 0", w.Len())
	}
}

func TestContactMatch(t *testing.T) {
	w := NewWorld(V(0, 0), 10)
	ball := w.Add(ballDef(0, 0))
	item := w.Add(BodyDef{Type: Static, Shapes: []Shape{Circle(5, V(0, 0))}, Filter: Filter{Category: catItem}})

	c := Contact{A: item, B: ball}
	self, other, ok := c.Match(catBall)
	if !ok || self != ball || other != item {
		t.Errorf("Match(catBall) = %v, %v, %v", self, other, ok)
	}
	if _, _, ok := c.Match(catFloor); ok {
		t.Error("Match(catFloor) should fail")
	}

	w.Remove(item)
	if c.Live() {
		t.Error("Live() should be false after removal")
	}
}
