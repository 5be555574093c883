package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLloyd_TwoClusters(t *testing.T) {
	ctx := context.Background()

	// Two tight clusters around (0,0) and (10,10).
	data := []float32{
		0, 0, 0, 1, 1, 0,
		10, 10, 10, 11, 11, 10,
	}
	initial := []float32{0, 0, 10, 10}

	l := NewLloyd(Config{
		Data:      data,
		Dim:       2,
		K:         2,
		Centroids: append([]float32(nil), initial...),
		Threads:   2,
	})

	_, err := l.Init(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 1, 1, 1}, l.Labels())

	for i := 0; i < 3; i++ {
		_, err = l.Step(ctx)
		require.NoError(t, err)
	}

	assert.Equal(t, []int{0, 0, 0, 1, 1, 1}, l.Labels())
	assert.InDelta(t, 1.0/3, l.Centroids()[0], 1e-5)
	assert.InDelta(t, 1.0/3, l.Centroids()[1], 1e-5)
	assert.InDelta(t, 10+1.0/3, l.Centroids()[2], 1e-5)
	assert.InDelta(t, 10+1.0/3, l.Centroids()[3], 1e-5)

	inertia, err := l.Inertia(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 8.0/3, inertia, 1e-4)
}

func TestLloyd_EmptyClusterStaysFrozen(t *testing.T) {
	ctx := context.Background()

	data := []float32{
		0, 0, 0, 1,
		10, 10, 10, 11,
	}
	// The third centroid is far from every point and never wins one.
	initial := []float32{0, 0, 10, 10, 100, 100}

	l := NewLloyd(Config{
		Data:      data,
		Dim:       2,
		K:         3,
		Centroids: append([]float32(nil), initial...),
		Threads:   1,
	})

	_, err := l.Init(ctx)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		_, err = l.Step(ctx)
		require.NoError(t, err)
	}

	assert.Equal(t, float32(100), l.Centroids()[4])
	assert.Equal(t, float32(100), l.Centroids()[5])
	assert.NotContains(t, l.Labels(), 2)
}

func TestLloyd_TieBreaksToLowestIndex(t *testing.T) {
	ctx := context.Background()

	// The point is equidistant from both centroids; the first-encountered
	// one in index order must win.
	data := []float32{5, 0}
	l := NewLloyd(Config{
		Data:      data,
		Dim:       2,
		K:         1,
		Centroids: []float32{5, 0},
		Threads:   1,
	})
	_, err := l.Init(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, l.Labels())

	data = []float32{
		0, 0,
		10, 0,
		5, 0, // equidistant
	}
	l = NewLloyd(Config{
		Data:      data,
		Dim:       2,
		K:         2,
		Centroids: []float32{0, 0, 10, 0},
		Threads:   1,
	})
	_, err = l.Init(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, l.Labels()[2])
}
