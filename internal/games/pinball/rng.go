package pinball

import "math/rand/v2"

// rng draws every random choice in a round from one PCG stream seeded from
// the runtime seed, so a seed and an input sequence fully determine a run.
type rng struct {
	src *rand.PCG
	r   *rand.Rand
}

// stream keeps seeds 0 and 1 from sharing a sequence prefix.
const stream = 0x9e3779b97f4a7c15

func newRNG(seed int64) *rng {
	src := rand.NewPCG(uint64(seed), stream) //#nosec G115 -- intentional conversion for RNG seeding
	return &rng{src: src, r: rand.New(src)}
}

// intn returns a value in [0, n).
func (r *rng) intn(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// float64 returns a value in [0, 1).
func (r *rng) float64() float64 {
	return r.r.Float64()
}

// between returns a value in [lo, hi).
func (r *rng) between(lo, hi float64) float64 {
	return lo + (hi-lo)*r.float64()
}

// intBetween returns a value in [lo, hi].
func (r *rng) intBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.intn(hi-lo+1)
}

// state returns the encoded generator state.
func (r *rng) state() []byte {
	b, _ := r.src.MarshalBinary() // PCG encoding cannot fail
	return b
}
