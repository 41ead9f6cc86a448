// Package random provides the seeded sample stream that drives plant growth.
package random

import "math/rand/v2"

// Stream is a seeded, resettable source of floats in [0,1).
// One Stream is shared by every node of a plant, so the order in which
// nodes draw from it determines the plant's shape.
type Stream struct {
	seed  uint64
	src   *rand.PCG
	r     *rand.Rand
	draws int
}

// NewStream creates a stream positioned at the start of the sequence for seed.
func NewStream(seed int64) *Stream {
	src := rand.NewPCG(uint64(seed), pcgIncrement(uint64(seed)))
	return &Stream{
		seed: uint64(seed),
		src:  src,
		r:    rand.New(src),
	}
}

// Next returns the next sample in [0,1).
func (s *Stream) Next() float64 {
	s.draws++
	return s.r.Float64()
}

// Reset rewinds the stream to the state it had right after construction.
func (s *Stream) Reset() {
	s.src.Seed(s.seed, pcgIncrement(s.seed))
	s.draws = 0
}

// Seed returns the seed the stream was created with.
func (s *Stream) Seed() int64 {
	return int64(s.seed)
}

// Draws returns how many samples were taken since construction or the last Reset.
func (s *Stream) Draws() int {
	return s.draws
}

// pcgIncrement derives the second PCG word so nearby seeds do not share a stream.
func pcgIncrement(seed uint64) uint64 {
	return seed*0x9e3779b97f4a7c15 + 0x632be59bd9b4e019
}

// InRange maps position onto [r[0], r[1]] with an affine map.
// Positions outside [0,1) extrapolate linearly.
func InRange(position float64, r [2]float64) float64 {
	return r[0] + (r[1]-r[0])*position
}
