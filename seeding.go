package kmeans

import (
	"math/rand"

	"github.com/hupe1980/kmeans/internal/floats"
)

// seedPlusPlus selects k initial centroids by k-means++ sampling: each next
// centroid is drawn with probability proportional to the squared distance to
// the nearest centroid chosen so far. Degenerate inputs with zero spread
// fall back to uniform picks.
func seedPlusPlus(data []float32, dim, k int, rng *rand.Rand) []float32 {
	n := len(data) / dim
	centroids := make([]float32, k*dim)
	diff := make([]float32, dim)

	first := rng.Intn(n)
	copy(centroids[:dim], data[first*dim:(first+1)*dim])

	minDist := make([]float64, n)
	var total float64
	for i := 0; i < n; i++ {
		d := float64(floats.SquaredL2(data[i*dim:(i+1)*dim], centroids[:dim], diff))
		minDist[i] = d
		total += d
	}

	for c := 1; c < k; c++ {
		pick := n - 1
		if total > 0 {
			target := rng.Float64() * total
			var acc float64
			for i := 0; i < n; i++ {
				acc += minDist[i]
				if acc >= target {
					pick = i
					break
				}
			}
		} else {
			pick = rng.Intn(n)
		}

		row := centroids[c*dim : (c+1)*dim]
		copy(row, data[pick*dim:(pick+1)*dim])

		total = 0
		for i := 0; i < n; i++ {
			if d := float64(floats.SquaredL2(data[i*dim:(i+1)*dim], row, diff)); d < minDist[i] {
				minDist[i] = d
			}
			total += minDist[i]
		}
	}

	return centroids
}
