package engine

import (
	"github.com/hupe1980/kmeans/internal/floats"
)

// filterChunk runs the escalating global/group/local filters over the
// worker's point range, updating labels, bounds, and the worker-local
// accumulator in place. All comparisons happen in distance space because
// the drift-adjusted bounds live there; each exact evaluation takes one
// square root, which doubles as the value's bound contribution.
func (e *Yinyang) filterChunk(w *yyWorker, lo, hi int) {
	n, dim, t := e.n, e.dim, e.grp.count()
	w.sum = 0

	for i := lo; i < hi; i++ {
		lab := e.labels[i]

		// Relax bounds for drift: the upper bound can only have grown and
		// every group's lower bound can only have shrunk since the
		// centroids moved.
		ub := e.ub[i] + e.drift[lab]
		lbx := inf32
		for g := 0; g < t; g++ {
			v := e.lb[g*n+i] - e.gdrift[g]
			e.lb[g*n+i] = v
			if v < lbx {
				lbx = v
			}
		}

		// Global filter: no centroid anywhere can beat the current label.
		// Equality falls through: a centroid at exactly ub may win the
		// lowest-index tie-break.
		if ub < lbx {
			e.ub[i] = ub
			w.sum += float64(ub)
			continue
		}

		// Tighten and retest: the bound may have been loose, not wrong.
		x := e.data[i*dim : (i+1)*dim]
		ub = floats.Sqrt(floats.SquaredL2(x, e.centroids[lab*dim:(lab+1)*dim], w.diff))
		w.evals++
		if ub < lbx {
			e.ub[i] = ub
			w.sum += float64(ub)
			continue
		}

		w.visited[lab] = true
		bestD, bestIdx := ub, lab
		home := e.grp.member[lab]
		w.scanned = w.scanned[:0]

		// Home group first: it usually still holds the winner, and a tight
		// best early makes the remaining filters stronger.
		for gg := -1; gg < t; gg++ {
			g := gg
			if gg < 0 {
				g = home
			} else if gg == home {
				continue
			}

			// Group filter: nothing in g can beat the current best. A group
			// whose bound equals the best may hold a tied lower-index
			// centroid, so only a strictly larger bound skips.
			lbg := e.lb[g*n+i]
			if bestD < lbg {
				continue
			}

			// lbOld is the group's bound against the pre-move centroids;
			// the relaxation above subtracted this phase's group drift.
			lbOld := lbg + e.gdrift[g]
			sp := e.grp.spans[g]
			e1, e2 := inf32, inf32

			for c := sp.lo; c < sp.hi; c++ {
				var d float32
				switch {
				case w.visited[c]:
					// Already distance-checked this pass; only the current
					// label is premarked and its exact distance is ub.
					d = ub
				case bestD < lbOld-e.drift[c]:
					// Local filter: c moved too little to catch up. Keep
					// the per-centroid underestimate so the group bound
					// stays as tight as what we know.
					d = lbOld - e.drift[c]
					if d < e1 {
						e2, e1 = e1, d
					} else if d < e2 {
						e2 = d
					}
					continue
				default:
					d = floats.Sqrt(floats.SquaredL2(x, e.centroids[c*dim:(c+1)*dim], w.diff))
					w.evals++
				}

				// Exact ties resolve to the lowest centroid index, same as
				// the full-scan baseline.
				if d < bestD || (d == bestD && c < bestIdx) {
					bestD, bestIdx = d, c
				}
				if d < e1 {
					e2, e1 = e1, d
				} else if d < e2 {
					e2 = d
				}
			}

			w.best1[g], w.best2[g] = e1, e2
			w.scanned = append(w.scanned, g)
		}

		// Commit the scanned groups' bounds. The winner's group gives up
		// its best estimate to the upper bound and keeps the second-best;
		// a group that lost the winner mid-scan falls back to its full
		// minimum, which includes the previous best's exact distance.
		bg := e.grp.member[bestIdx]
		homeScanned := false
		for _, g := range w.scanned {
			if g == home {
				homeScanned = true
			}
			if g == bg {
				e.lb[g*n+i] = w.best2[g]
			} else {
				e.lb[g*n+i] = w.best1[g]
			}
		}

		// If the winner left a home group that was never scanned, the old
		// label stops being the upper-bound owner and its exact distance
		// becomes the home group's bound: the displaced group is corrected
		// to the previous best, not merely a second-best.
		if bg != home && !homeScanned && ub < e.lb[home*n+i] {
			e.lb[home*n+i] = ub
		}

		e.ub[i] = bestD
		w.sum += float64(bestD)
		w.visited[lab] = false

		if bestIdx != lab {
			w.acc.remove(x, lab)
			w.acc.add(x, bestIdx)
			e.labels[i] = bestIdx
		}
	}
}
