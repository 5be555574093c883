package kmeans

// Result is the outcome of a clustering run.
type Result struct {
	// Centroids is the final centroid matrix, k rows of dim values.
	Centroids []float32

	// Labels assigns each point the index of its centroid.
	Labels []int

	// Inertia is the exact sum of squared distances from every point to its
	// assigned centroid, computed by a full scan after the run rather than
	// from the lazily maintained bounds.
	Inertia float64

	// Iterations is the number of update phases executed.
	Iterations int

	// Converged reports whether the run met the tolerance before the
	// iteration cap. Running out of iterations is not an error.
	Converged bool

	// DistanceEvals counts the exact point-to-centroid distance evaluations
	// the engine performed, excluding the final inertia scan. Useful to
	// gauge how much work the bound tracking avoided.
	DistanceEvals int64
}
