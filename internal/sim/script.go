package sim

import (
	"github.com/vovakirdan/pinball-madness/internal/core"
	"github.com/vovakirdan/pinball-madness/internal/games/pinball"
)

// tapInterval is the minimum number of ticks between jump boosts.
const tapInterval = 90

// reach is how far above the flipper pivots the ball must be for a flip.
const reach = 40.0

// driver turns the session state into one input frame per tick.
type driver struct {
	script   Script
	sinceTap int
}

func newDriver(s Script) *driver {
	return &driver{script: s, sinceTap: tapInterval}
}

func (d *driver) frame(s *pinball.Session) core.InputFrame {
	in := core.NewInputFrame()
	if d.script != ScriptAuto {
		return in
	}
	d.sinceTap++

	ball := s.ActiveBall()
	if ball == nil {
		return in
	}
	cfg := s.Board().Config()
	p, v := ball.Position(), ball.Velocity()

	low := p.Y < cfg.Flipper.PivotY+reach
	if low && v.Y < 0 {
		if p.X < cfg.Board.Width/2 {
			in.Set(core.ActionFlipLeft)
		} else {
			in.Set(core.ActionFlipRight)
		}
	}
	// Below the flippers: a rewind is the only way back.
	if p.Y < cfg.Flipper.PivotY-reach/2 {
		in.Set(core.ActionUndo)
	}
	if low && d.sinceTap >= tapInterval {
		in.Set(core.ActionTapBall)
		d.sinceTap = 0
	}
	return in
}
