package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamSameSeedSameSequence(t *testing.T) {
	a := NewStream(7)
	b := NewStream(7)

	for i := 0; i < 500; i++ {
		require.Equal(t, a.Next(), b.Next(), "draw %d diverged", i)
	}
}

func TestStreamDifferentSeeds(t *testing.T) {
	a := NewStream(1)
	b := NewStream(2)

	same := 0
	for i := 0; i < 100; i++ {
		if a.Next() == b.Next() {
			same++
		}
	}
	assert.Less(t, same, 5)
}

func TestStreamRange(t *testing.T) {
	s := NewStream(99)
	for i := 0; i < 10000; i++ {
		v := s.Next()
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
	}
}

func TestStreamReset(t *testing.T) {
	s := NewStream(42)

	first := make([]float64, 64)
	for i := range first {
		first[i] = s.Next()
	}
	assert.Equal(t, 64, s.Draws())

	s.Reset()
	assert.Equal(t, 0, s.Draws())
	assert.Equal(t, int64(42), s.Seed())

	for i := range first {
		assert.Equal(t, first[i], s.Next(), "draw %d after reset", i)
	}
}

func TestStreamResetMidSequence(t *testing.T) {
	s := NewStream(3)
	want := s.Next()
	s.Next()
	s.Next()
	s.Reset()
	assert.Equal(t, want, s.Next())
}

func TestInRange(t *testing.T) {
	tests := []struct {
		name string
		pos  float64
		r    [2]float64
		want float64
	}{
		{"start", 0, [2]float64{2, 4}, 2},
		{"middle", 0.5, [2]float64{2, 4}, 3},
		{"near end", 0.999, [2]float64{0, 1}, 0.999},
		{"degenerate range", 0.7, [2]float64{5, 5}, 5},
		{"extrapolate above", 2, [2]float64{0, 1}, 2},
		{"extrapolate below", -1, [2]float64{1, 3}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, InRange(tt.pos, tt.r), 1e-12)
		})
	}
}
