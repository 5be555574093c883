package kmeans

import (
	"context"
	"math"
	"slices"

	"github.com/hupe1980/kmeans/internal/engine"
)

// Algorithm selects the assignment-and-update engine.
type Algorithm int

const (
	// AlgorithmYinyang is the bound-tracking engine (default). It caches
	// per-point distance bounds and a group-level filtering hierarchy so
	// most points are reassigned without any exact distance evaluation.
	AlgorithmYinyang Algorithm = iota

	// AlgorithmLloyd is the exact full-scan engine: every iteration
	// evaluates every point/centroid pair.
	AlgorithmLloyd
)

// Trainer clusters dense float32 points into k clusters.
type Trainer struct {
	k    int
	opts options
}

// New creates a Trainer for k clusters.
func New(k int, optFns ...Option) (*Trainer, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}

	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Trainer{k: k, opts: opts}, nil
}

// Train clusters data into k clusters with default or given options. It is
// shorthand for New followed by Fit.
func Train(ctx context.Context, data []float32, dim, k int, optFns ...Option) (*Result, error) {
	t, err := New(k, optFns...)
	if err != nil {
		return nil, err
	}
	return t.Fit(ctx, data, dim)
}

// Fit runs the clustering until the convergence tolerance or the iteration
// cap is reached. data is a row-major matrix of n points of dim values each
// and is never written to.
func (t *Trainer) Fit(ctx context.Context, data []float32, dim int) (*Result, error) {
	if dim <= 0 {
		return nil, &ErrInvalidDimension{Dimension: dim}
	}
	if len(data) == 0 {
		return nil, ErrEmptyDataset
	}
	if len(data)%dim != 0 {
		return nil, &ErrRaggedData{Len: len(data), Dim: dim}
	}

	n := len(data) / dim
	if n < t.k {
		return nil, &ErrInsufficientPoints{Points: n, K: t.k}
	}

	var centroids []float32
	if init := t.opts.initial; init != nil {
		if len(init) != t.k*dim {
			return nil, &ErrDimensionMismatch{Expected: t.k * dim, Actual: len(init)}
		}
		centroids = slices.Clone(init)
	} else {
		centroids = seedPlusPlus(data, dim, t.k, t.opts.rng)
	}

	cfg := engine.Config{
		Data:         data,
		Dim:          dim,
		K:            t.k,
		Centroids:    centroids,
		Threads:      t.opts.threads,
		AutoGroups:   t.opts.autoGroups,
		GroupDivider: t.opts.groupDivider,
		Rand:         t.opts.rng,
	}

	var eng engine.Engine
	switch t.opts.algorithm {
	case AlgorithmLloyd:
		eng = engine.NewLloyd(cfg)
	default:
		eng = engine.NewYinyang(cfg)
	}

	bound, err := eng.Init(ctx)
	if err != nil {
		return nil, err
	}

	logger := t.opts.logger
	converged := false
	iters := 0

	for iter := 1; iter <= t.opts.maxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		next, err := eng.Step(ctx)
		if err != nil {
			return nil, err
		}
		iters = iter

		logger.Debug("kmeans iteration",
			"iteration", iter,
			"bound_sum", next,
			"distance_evals", eng.DistanceEvals(),
		)

		// The proxy sums raw upper bounds, not the squared objective; the
		// multiply form avoids dividing by a zero proxy on degenerate data.
		if next == 0 || math.Abs(bound-next) <= t.opts.tolerance*next {
			converged = true
			bound = next
			break
		}
		bound = next
	}

	inertia, err := eng.Inertia(ctx)
	if err != nil {
		return nil, err
	}

	return &Result{
		Centroids:     eng.Centroids(),
		Labels:        eng.Labels(),
		Inertia:       inertia,
		Iterations:    iters,
		Converged:     converged,
		DistanceEvals: eng.DistanceEvals(),
	}, nil
}
