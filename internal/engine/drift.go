package engine

// updateCentroids merges the worker accumulators, replaces every centroid
// with its new mean, and records per-centroid and per-group drift. It runs
// strictly between assignment phases: drift and gdrift are read-only inputs
// to the following filter pass.
func (e *Yinyang) updateCentroids() {
	e.merged.merge(e.accs)
	moveCenters(e.centroids, e.dim, e.merged, e.drift, e.old, e.diff)

	for g, sp := range e.grp.spans {
		var m float32
		for c := sp.lo; c < sp.hi; c++ {
			if e.drift[c] > m {
				m = e.drift[c]
			}
		}
		e.gdrift[g] = m
	}
}
