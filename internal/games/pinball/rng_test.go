package pinball

import (
	"bytes"
	"testing"
)

func TestRNGSeeded(t *testing.T) {
	a, b := newRNG(42), newRNG(42)
	if !bytes.Equal(a.state(), b.state()) {
		t.Fatal("same seed should give the same state")
	}
	before := a.state()

	for i := range 100 {
		x, y := a.intBetween(1, 3), b.intBetween(1, 3)
		if x != y {
			t.Fatalf("draw %d: %d vs %d", i, x, y)
		}
		if x < 1 || x > 3 {
			t.Fatalf("draw %d: %d outside [1, 3]", i, x)
		}
		if f := a.between(-2, 2); f < -2 || f >= 2 {
			t.Fatalf("draw %d: %f outside [-2, 2)", i, f)
		}
		b.between(-2, 2)
	}

	if bytes.Equal(a.state(), before) {
		t.Error("state should advance with every draw")
	}
	if !bytes.Equal(a.state(), b.state()) {
		t.Error("streams with the same draws should stay in step")
	}
	if bytes.Equal(newRNG(1).state(), newRNG(2).state()) {
		t.Error("different seeds should give different states")
	}
	if n := newRNG(7).intn(0); n != 0 {
		t.Errorf("intn(0) = %d, expected 0", n)
	}
}
