// Package engine implements the assignment-and-update engines behind the
// public kmeans API: a plain full-scan Lloyd engine and a bound-tracking
// engine that prunes most exact distance evaluations per iteration using
// cached upper/lower bounds and a group-level filtering hierarchy.
package engine

import (
	"context"
	"math"
	"math/rand"

	"github.com/hupe1980/kmeans/internal/floats"
	"github.com/hupe1980/kmeans/internal/parallel"
)

var inf32 = float32(math.Inf(1))

// Config carries the shared inputs of both engines. Data is a read-only
// row-major matrix of n points of Dim values each. Centroids is the initial
// centroid matrix (K rows of Dim); the engine takes ownership and mutates it
// in place across iterations.
type Config struct {
	Data      []float32
	Dim       int
	K         int
	Centroids []float32
	Threads   int

	// Group construction (bound-tracking engine only). When AutoGroups is
	// set the group count is max(1, K/GroupDivider); otherwise a single
	// group spans all centroids.
	AutoGroups   bool
	GroupDivider int

	// Rand drives the sub-clustering used for group construction.
	Rand *rand.Rand
}

// Engine is one assignment-and-update strategy. Init runs the initial full
// assignment pass, Step runs one update+assignment phase; both return the
// total bound sum the driver uses as its convergence proxy.
type Engine interface {
	Init(ctx context.Context) (float64, error)
	Step(ctx context.Context) (float64, error)
	Labels() []int
	Centroids() []float32

	// Inertia computes the exact sum of squared distances from every point
	// to its assigned centroid by a full scan, independent of any cached
	// bounds.
	Inertia(ctx context.Context) (float64, error)

	// DistanceEvals reports the number of exact point-to-centroid distance
	// evaluations performed so far, excluding the final Inertia scan.
	DistanceEvals() int64
}

// accumulator holds running centroid sums and assignment counts. Each worker
// owns one; they are merged elementwise outside the parallel phases. Sums are
// kept in float64 so incremental add/remove cycles stay close to a fresh
// recomputation.
type accumulator struct {
	sums   []float64 // k*dim
	counts []int64   // k
}

func newAccumulator(k, dim int) *accumulator {
	return &accumulator{
		sums:   make([]float64, k*dim),
		counts: make([]int64, k),
	}
}

func (a *accumulator) reset() {
	clear(a.sums)
	clear(a.counts)
}

func (a *accumulator) add(x []float32, c int) {
	row := a.sums[c*len(x) : (c+1)*len(x)]
	for d, v := range x {
		row[d] += float64(v)
	}
	a.counts[c]++
}

func (a *accumulator) remove(x []float32, c int) {
	row := a.sums[c*len(x) : (c+1)*len(x)]
	for d, v := range x {
		row[d] -= float64(v)
	}
	a.counts[c]--
}

// merge overwrites a with the elementwise sum of the given accumulators.
func (a *accumulator) merge(parts []*accumulator) {
	a.reset()
	for _, p := range parts {
		for i, v := range p.sums {
			a.sums[i] += v
		}
		for i, v := range p.counts {
			a.counts[i] += v
		}
	}
}

// moveCenters overwrites centroids with the merged accumulator means and, if
// drift is non-nil, records each centroid's displacement in it. A centroid
// with no assigned points keeps its previous position and reports zero
// drift; it stays a fixed point until the filter assigns points back to it.
// old and diff are dim-sized scratch buffers, only needed when drift is set.
func moveCenters(centroids []float32, dim int, acc *accumulator, drift, old, diff []float32) {
	for c := range acc.counts {
		if acc.counts[c] == 0 {
			if drift != nil {
				drift[c] = 0
			}
			continue
		}

		row := centroids[c*dim : (c+1)*dim]
		if drift != nil {
			copy(old, row)
		}

		inv := 1 / float64(acc.counts[c])
		for d := 0; d < dim; d++ {
			row[d] = float32(acc.sums[c*dim+d] * inv)
		}

		if drift != nil {
			drift[c] = floats.Sqrt(floats.SquaredL2(old, row, diff))
		}
	}
}

// exactInertia computes the exact sum of squared distances from every point
// to its assigned centroid by a parallel full scan.
func exactInertia(ctx context.Context, data []float32, dim int, centroids []float32, labels []int, threads int) (float64, error) {
	n := len(data) / dim
	partial := make([]float64, len(parallel.Split(n, threads)))

	err := parallel.Run(ctx, n, threads, func(w, lo, hi int) error {
		diff := make([]float32, dim)
		var sum float64
		for i := lo; i < hi; i++ {
			x := data[i*dim : (i+1)*dim]
			c := labels[i]
			sum += float64(floats.SquaredL2(x, centroids[c*dim:(c+1)*dim], diff))
		}
		partial[w] = sum
		return nil
	})
	if err != nil {
		return 0, err
	}

	var total float64
	for _, p := range partial {
		total += p
	}

	return total, nil
}
