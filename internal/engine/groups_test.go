package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requirePartition checks that the group spans are ordered, disjoint, cover
// [0, k) exactly once, and agree with the membership map.
func requirePartition(t *testing.T, g groups, k int) {
	t.Helper()

	lo := 0
	for id, sp := range g.spans {
		require.Equal(t, lo, sp.lo)
		require.Greater(t, sp.hi, sp.lo)
		for c := sp.lo; c < sp.hi; c++ {
			require.Equal(t, id, g.member[c])
		}
		lo = sp.hi
	}
	require.Equal(t, k, lo)
	require.Len(t, g.member, k)
}

func TestBuildGroups_SingleGroup(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	centroids := genBlobs(rng, 8, 2, 8, 0)

	g := buildGroups(centroids, 2, 8, 1, rng)
	require.Equal(t, 1, g.count())
	requirePartition(t, g, 8)
}

func TestBuildGroups_Partition(t *testing.T) {
	rng := rand.New(rand.NewSource(2))

	for _, tt := range []struct{ k, t int }{
		{k: 20, t: 3},
		{k: 7, t: 2},
		{k: 50, t: 7},
		{k: 5, t: 5},
		{k: 3, t: 9}, // more groups than centroids
	} {
		centroids := genBlobs(rng, tt.k, 4, tt.k, 0)
		g := buildGroups(centroids, 4, tt.k, tt.t, rng)

		requirePartition(t, g, tt.k)
		assert.LessOrEqual(t, g.count(), tt.t)
		assert.GreaterOrEqual(t, g.count(), 1)
	}
}

func TestBuildGroups_KeepsNearbyCentroidsTogether(t *testing.T) {
	// Three tight triplets far apart; sub-clustering into 3 groups should
	// recover them.
	centroids := []float32{
		0, 0, 0.1, 0, 0, 0.1,
		50, 50, 50.1, 50, 50, 50.1,
		100, 0, 100.1, 0, 100, 0.1,
	}
	rng := rand.New(rand.NewSource(3))

	g := buildGroups(centroids, 2, 9, 3, rng)
	requirePartition(t, g, 9)
	require.Equal(t, 3, g.count())
	for _, sp := range g.spans {
		assert.Equal(t, 3, sp.hi-sp.lo)
	}
}

func TestBuildGroups_DuplicateCentroids(t *testing.T) {
	// All centroids at the same position: the sub-clustering cannot
	// separate them, but the partition must still be total.
	centroids := make([]float32, 6*2)
	for i := range centroids {
		centroids[i] = 3.5
	}
	rng := rand.New(rand.NewSource(4))

	var g groups
	require.NotPanics(t, func() {
		g = buildGroups(centroids, 2, 6, 4, rng)
	})
	requirePartition(t, g, 6)
	assert.LessOrEqual(t, g.count(), 4)
}

func TestNewYinyang_AutoGroupCount(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	// k=10 with the default divider 7 collapses to a single group:
	// 10/7 == 1 in integer division.
	data := genBlobs(rng, 40, 2, 10, 0.5)
	cfg := Config{
		Data:         data,
		Dim:          2,
		K:            10,
		Centroids:    seedFromPoints(rng, data, 2, 10),
		Threads:      2,
		AutoGroups:   true,
		GroupDivider: 7,
		Rand:         rng,
	}
	e := NewYinyang(cfg)
	assert.Equal(t, 1, e.grp.count())
	requirePartition(t, e.grp, 10)

	// k=21 allows up to three groups.
	data = genBlobs(rng, 63, 2, 21, 0.5)
	cfg = Config{
		Data:         data,
		Dim:          2,
		K:            21,
		Centroids:    seedFromPoints(rng, data, 2, 21),
		Threads:      2,
		AutoGroups:   true,
		GroupDivider: 7,
		Rand:         rng,
	}
	e = NewYinyang(cfg)
	assert.LessOrEqual(t, e.grp.count(), 3)
	requirePartition(t, e.grp, 21)

	// AutoGroups off always yields one group.
	cfg.AutoGroups = false
	cfg.Centroids = seedFromPoints(rng, data, 2, 21)
	e = NewYinyang(cfg)
	assert.Equal(t, 1, e.grp.count())
}
