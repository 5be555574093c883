// Package kmeans provides Lloyd-style k-means clustering for dense float32
// data, with a bound-tracking engine that avoids most exact distance
// evaluations per iteration.
//
// # Quick Start
//
//	ctx := context.Background()
//	res, err := kmeans.Train(ctx, data, dim, 8)
//	if err != nil {
//		...
//	}
//	fmt.Println(res.Labels, res.Inertia)
//
// # Engines
//
// Two engines produce the same clustering. The exact engine (AlgorithmLloyd)
// evaluates every point/centroid pair each iteration. The default
// bound-tracking engine (AlgorithmYinyang) partitions the centroids into
// groups of nearby centroids and caches one upper bound per point plus one
// lower bound per point and group. Each iteration the bounds are relaxed by
// how far the centroids moved; a point whose upper bound still undercuts
// every group's lower bound keeps its assignment without a single distance
// evaluation. Points that fail the cheap tests fall through to increasingly
// precise group-level and centroid-level checks.
//
// Result.DistanceEvals reports how many exact evaluations the run needed,
// which for clustered data is typically a small fraction of n*k per
// iteration.
//
// # Determinism
//
// Seeding and group construction draw from the source set via WithRand;
// fixing it (together with WithThreads) makes runs reproducible. Exact
// distance ties always resolve to the lowest centroid index, in both engines.
package kmeans
