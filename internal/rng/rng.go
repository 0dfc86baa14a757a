// Package rng provides the random source capability consumed by the glyph
// sampler and the rain engine.
package rng

import "math/rand/v2"

// Rand is the subset of *rand.Rand the engine needs. IntN returns a value in
// [0, n) and may panic when n <= 0, so callers guard their ranges.
type Rand interface {
	IntN(n int) int
}

// New creates a deterministic generator seeded with seed.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// Range is a half-open integer interval [Min, Max).
type Range struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// Draw returns a uniform value in [Min, Max). A degenerate range (Max <= Min)
// always yields Min without consuming randomness.
func (r Range) Draw(src Rand) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + src.IntN(r.Max-r.Min)
}

// Contains reports whether v lies in [Min, Max), treating a degenerate range
// as the single value Min.
func (r Range) Contains(v int) bool {
	if r.Max <= r.Min {
		return v == r.Min
	}
	return v >= r.Min && v < r.Max
}

// Sequence replays a fixed list of values, wrapping each into [0, n). It is
// meant for tests that need to script the engine's choices.
type Sequence struct {
	values []int
	pos    int
}

// NewSequence returns a Sequence over values. An empty Sequence always
// returns 0.
func NewSequence(values ...int) *Sequence {
	return &Sequence{values: values}
}

// IntN returns the next scripted value modulo n.
func (s *Sequence) IntN(n int) int {
	if len(s.values) == 0 || n <= 0 {
		return 0
	}
	v := s.values[s.pos%len(s.values)]
	s.pos++
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
