package engine

import (
	"math/rand"
	"sort"

	"github.com/hupe1980/kmeans/internal/floats"
)

// Sub-clustering for group construction only needs a rough partition, so the
// iteration cap and tolerance are deliberately loose.
const (
	groupIters = 10
	groupTol   = 1e-4
)

// span is a half-open centroid index range [lo, hi).
type span struct {
	lo, hi int
}

// groups is the fixed two-level partition of centroid indices: an ordered
// list of contiguous ranges plus the centroid-to-group reverse lookup. Built
// once per run and never mutated.
type groups struct {
	spans  []span
	member []int // centroid index -> group id
}

func (g groups) count() int { return len(g.spans) }

// buildGroups partitions the k centroids into at most t groups of
// geometrically close centroids by sub-clustering the centroids themselves.
// Centroid rows are permuted in place so that every group ends up a
// contiguous index range. Empty sub-clusters (possible with duplicate
// centroid positions) simply yield fewer effective groups.
func buildGroups(centroids []float32, dim, k, t int, rng *rand.Rand) groups {
	if t <= 1 || k <= 1 {
		return groups{
			spans:  []span{{lo: 0, hi: k}},
			member: make([]int, k),
		}
	}
	if t > k {
		t = k
	}

	assign := subCluster(centroids, dim, k, t, rng)

	// Sort centroid indices by sub-cluster id so each group becomes a
	// contiguous range, then apply the permutation to the centroid rows.
	perm := make([]int, k)
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(a, b int) bool { return assign[perm[a]] < assign[perm[b]] })

	tmp := make([]float32, len(centroids))
	copy(tmp, centroids)
	for to, from := range perm {
		copy(centroids[to*dim:(to+1)*dim], tmp[from*dim:(from+1)*dim])
	}

	member := make([]int, k)
	var spans []span
	lo := 0
	for i := 1; i <= k; i++ {
		if i == k || assign[perm[i]] != assign[perm[lo]] {
			id := len(spans)
			for c := lo; c < i; c++ {
				member[c] = id
			}
			spans = append(spans, span{lo: lo, hi: i})
			lo = i
		}
	}

	return groups{spans: spans, member: member}
}

// subCluster runs a short sequential Lloyd pass that groups the k centroids
// into at most t clusters. Empty sub-clusters keep their previous position,
// so degenerate inputs (all centroids identical) terminate without ever
// separating the groups.
func subCluster(points []float32, dim, k, t int, rng *rand.Rand) []int {
	cents := make([]float32, t*dim)
	for i, p := range rng.Perm(k)[:t] {
		copy(cents[i*dim:(i+1)*dim], points[p*dim:(p+1)*dim])
	}

	assign := make([]int, k)
	sums := make([]float64, t*dim)
	counts := make([]int64, t)
	diff := make([]float32, dim)
	old := make([]float32, dim)

	for iter := 0; iter < groupIters; iter++ {
		changed := false
		for i := 0; i < k; i++ {
			x := points[i*dim : (i+1)*dim]
			best, bestD := 0, inf32
			for c := 0; c < t; c++ {
				d := floats.SquaredL2(x, cents[c*dim:(c+1)*dim], diff)
				if d < bestD {
					best, bestD = c, d
				}
			}
			if assign[i] != best {
				assign[i] = best
				changed = true
			}
		}
		if !changed {
			break
		}

		clear(sums)
		clear(counts)
		for i := 0; i < k; i++ {
			row := sums[assign[i]*dim : (assign[i]+1)*dim]
			for d, v := range points[i*dim : (i+1)*dim] {
				row[d] += float64(v)
			}
			counts[assign[i]]++
		}

		var maxShift float32
		for c := 0; c < t; c++ {
			if counts[c] == 0 {
				continue
			}
			row := cents[c*dim : (c+1)*dim]
			copy(old, row)
			inv := 1 / float64(counts[c])
			for d := 0; d < dim; d++ {
				row[d] = float32(sums[c*dim+d] * inv)
			}
			if shift := floats.SquaredL2(old, row, diff); shift > maxShift {
				maxShift = shift
			}
		}
		if maxShift <= groupTol {
			break
		}
	}

	return assign
}
