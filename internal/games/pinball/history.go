package pinball

import "github.com/vovakirdan/pinball-madness/internal/physics"

type sample struct {
	at  float64
	pos physics.Vec
	vel physics.Vec
}

// history keeps the primary ball's recent motion for the undo reward.
type history struct {
	window  float64
	samples []sample
}

// record appends a sample and drops those older than the window.
func (h *history) record(at float64, pos, vel physics.Vec) {
	h.samples = append(h.samples, sample{at: at, pos: pos, vel: vel})
	i := 0
	for i < len(h.samples)-1 && h.samples[i].at < at-h.window {
		i++
	}
	if i > 0 {
		h.samples = append(h.samples[:0], h.samples[i:]...)
	}
}

// oldest returns the sample furthest back in the window.
func (h *history) oldest() (sample, bool) {
	if len(h.samples) == 0 {
		return sample{}, false
	}
	return h.samples[0], true
}

func (h *history) reset() {
	h.samples = h.samples[:0]
}
