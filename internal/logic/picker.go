package logic

import "math/rand"

// Picker draws random hold durations from a DurationRange. The generator is
// owned by the picker and seeded exactly once, at construction, so tests can
// build deterministic pickers from a fixed seed.
type Picker struct {
	rng *rand.Rand
}

// NewPicker creates a Picker seeded from the given value. The caller is
// expected to derive the seed from a high-entropy source (see cmd's
// entropySeed, which mixes the wall clock with an unrelated analog sample).
func NewPicker(seed int64) *Picker {
	return &Picker{rng: rand.New(rand.NewSource(seed))}
}

// Pick returns a uniformly distributed integer in [r.Low, r.High] inclusive.
// When the bounds are equal the result is deterministically that value.
func (p *Picker) Pick(r DurationRange) int {
	if r.High <= r.Low {
		return r.Low
	}
	return r.Low + p.rng.Intn(r.High-r.Low+1)
}
