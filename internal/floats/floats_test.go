package floats

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSquaredL2(t *testing.T) {
	scratch := make([]float32, 3)

	a := []float32{1, 2, 3}
	b := []float32{4, 6, 3}

	assert.InDelta(t, 25.0, SquaredL2(a, b, scratch), 1e-6)
	assert.InDelta(t, 0.0, SquaredL2(a, a, scratch), 1e-6)
}

func TestSquaredL2_MatchesNaive(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for _, dim := range []int{1, 3, 8, 17, 64, 129} {
		a := make([]float32, dim)
		b := make([]float32, dim)
		for i := range a {
			a[i] = rng.Float32()*2 - 1
			b[i] = rng.Float32()*2 - 1
		}

		var naive float64
		for i := range a {
			d := float64(a[i]) - float64(b[i])
			naive += d * d
		}

		got := SquaredL2(a, b, make([]float32, dim))
		assert.InDelta(t, naive, float64(got), 1e-4*(1+naive), "dim=%d", dim)
	}
}

func TestSqrt(t *testing.T) {
	assert.Equal(t, float32(0), Sqrt(0))
	assert.Equal(t, float32(3), Sqrt(9))

	// Cancellation can leave a tiny negative squared distance.
	assert.Equal(t, float32(0), Sqrt(-1e-12))

	assert.True(t, math.IsInf(float64(Sqrt(float32(math.Inf(1)))), 1))
}
