// Package floats provides the float32 kernels shared by the clustering
// engines. Hot-loop arithmetic goes through vek, which dispatches to SIMD
// implementations when available.
package floats

import (
	"math"

	"github.com/viterin/vek/vek32"
)

// SquaredL2 returns the squared Euclidean distance between a and b.
// scratch must hold at least len(a) values and is overwritten.
//
// SAFETY: assumes len(a) == len(b); no bounds checks are performed.
func SquaredL2(a, b, scratch []float32) float32 {
	diff := vek32.Sub_Into(scratch[:len(a)], a, b)
	return vek32.Dot(diff, diff)
}

// Sqrt returns the square root of d2. Tiny negative values produced by
// floating-point cancellation are clamped to zero.
func Sqrt(d2 float32) float32 {
	if d2 <= 0 {
		return 0
	}
	return float32(math.Sqrt(float64(d2)))
}
