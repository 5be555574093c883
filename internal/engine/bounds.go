package engine

import (
	"github.com/hupe1980/kmeans/internal/floats"
)

// initChunk computes each point's nearest centroid, its upper bound, and one
// lower bound per group, and seeds the worker's accumulator. For the group
// holding the winner the lower bound is the second-best distance in that
// group; the best one is owned by the upper bound.
func (e *Yinyang) initChunk(w *yyWorker, lo, hi int) {
	n, dim, t := e.n, e.dim, e.grp.count()
	w.sum = 0

	for i := lo; i < hi; i++ {
		x := e.data[i*dim : (i+1)*dim]
		best, bestD2 := 0, inf32

		for g := 0; g < t; g++ {
			sp := e.grp.spans[g]
			g1, g2 := inf32, inf32
			gi := sp.lo

			for c := sp.lo; c < sp.hi; c++ {
				d2 := floats.SquaredL2(x, e.centroids[c*dim:(c+1)*dim], w.diff)
				if d2 < g1 {
					g2, g1, gi = g1, d2, c
				} else if d2 < g2 {
					g2 = d2
				}
			}
			w.evals += int64(sp.hi - sp.lo)

			w.best1[g], w.best2[g] = g1, g2

			// Groups are scanned in index order, so a strict comparison
			// keeps the first-encountered centroid on exact ties, matching
			// the full-scan baseline.
			if g1 < bestD2 {
				best, bestD2 = gi, g1
			}
		}

		home := e.grp.member[best]
		for g := 0; g < t; g++ {
			if g == home {
				e.lb[g*n+i] = floats.Sqrt(w.best2[g])
			} else {
				e.lb[g*n+i] = floats.Sqrt(w.best1[g])
			}
		}

		ub := floats.Sqrt(bestD2)
		e.labels[i] = best
		e.ub[i] = ub
		w.acc.add(x, best)
		w.sum += float64(ub)
	}
}
