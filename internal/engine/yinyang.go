package engine

import (
	"context"
	"math/rand"

	"github.com/hupe1980/kmeans/internal/parallel"
)

// Yinyang is the bound-tracking engine. It maintains one upper bound per
// point and one lower bound per (group, point) pair, relaxes them by the
// centroid drift each iteration, and only evaluates exact distances for
// points whose bounds cannot prove the current assignment optimal.
type Yinyang struct {
	data      []float32
	n, dim, k int
	threads   int

	centroids []float32
	grp       groups
	labels    []int

	ub     []float32 // n: overestimate of distance to the assigned centroid
	lb     []float32 // t*n: lb[g*n+i] underestimates the nearest distance in group g
	drift  []float32 // k: centroid displacement of the last update step
	gdrift []float32 // t: max displacement per group

	workers []*yyWorker
	accs    []*accumulator
	merged  *accumulator
	old     []float32 // dim scratch for the update step
	diff    []float32 // dim scratch for the update step
}

// yyWorker is the per-worker scratch state. The accumulator is exclusively
// owned: the worker that assigned a point is the only one that ever moves
// its contribution.
type yyWorker struct {
	acc     *accumulator
	visited []bool    // k: marks centroids already distance-checked this point
	diff    []float32 // dim
	best1   []float32 // t: smallest sound per-centroid estimate in a scanned group
	best2   []float32 // t: second-smallest
	scanned []int     // groups scanned for the current point
	sum     float64   // partial bound sum for the phase
	evals   int64
}

// NewYinyang creates the bound-tracking engine from cfg. The initial
// centroid rows are permuted in place during group construction so that each
// group is a contiguous index range; cluster identity is otherwise
// unchanged.
func NewYinyang(cfg Config) *Yinyang {
	n := len(cfg.Data) / cfg.Dim

	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(1))
	}

	t := 1
	if cfg.AutoGroups && cfg.GroupDivider > 0 {
		if t = cfg.K / cfg.GroupDivider; t < 1 {
			t = 1
		}
	}

	grp := buildGroups(cfg.Centroids, cfg.Dim, cfg.K, t, cfg.Rand)
	t = grp.count()

	e := &Yinyang{
		data:      cfg.Data,
		n:         n,
		dim:       cfg.Dim,
		k:         cfg.K,
		threads:   cfg.Threads,
		centroids: cfg.Centroids,
		grp:       grp,
		labels:    make([]int, n),
		ub:        make([]float32, n),
		lb:        make([]float32, t*n),
		drift:     make([]float32, cfg.K),
		gdrift:    make([]float32, t),
		merged:    newAccumulator(cfg.K, cfg.Dim),
		old:       make([]float32, cfg.Dim),
		diff:      make([]float32, cfg.Dim),
	}

	for range parallel.Split(n, cfg.Threads) {
		w := &yyWorker{
			acc:     newAccumulator(cfg.K, cfg.Dim),
			visited: make([]bool, cfg.K),
			diff:    make([]float32, cfg.Dim),
			best1:   make([]float32, t),
			best2:   make([]float32, t),
			scanned: make([]int, 0, t),
		}
		e.workers = append(e.workers, w)
		e.accs = append(e.accs, w.acc)
	}

	return e
}

// Init computes every point's label and bounds by one exact full scan and
// seeds the worker accumulators.
func (e *Yinyang) Init(ctx context.Context) (float64, error) {
	err := parallel.Run(ctx, e.n, e.threads, func(w, lo, hi int) error {
		e.initChunk(e.workers[w], lo, hi)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return e.boundSum(), nil
}

// Step moves the centroids to their new means, records drift, and runs the
// bound-guided reassignment over all points. The update runs alone; the
// filter workers read the drift arrays only.
func (e *Yinyang) Step(ctx context.Context) (float64, error) {
	e.updateCentroids()

	err := parallel.Run(ctx, e.n, e.threads, func(w, lo, hi int) error {
		e.filterChunk(e.workers[w], lo, hi)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return e.boundSum(), nil
}

func (e *Yinyang) boundSum() float64 {
	var total float64
	for _, w := range e.workers {
		total += w.sum
	}
	return total
}

// Labels returns the current assignment; the caller must not mutate it.
func (e *Yinyang) Labels() []int { return e.labels }

// Centroids returns the current centroid matrix; the caller must not mutate
// it.
func (e *Yinyang) Centroids() []float32 { return e.centroids }

// Inertia implements Engine.
func (e *Yinyang) Inertia(ctx context.Context) (float64, error) {
	return exactInertia(ctx, e.data, e.dim, e.centroids, e.labels, e.threads)
}

// DistanceEvals implements Engine.
func (e *Yinyang) DistanceEvals() int64 {
	var total int64
	for _, w := range e.workers {
		total += w.evals
	}
	return total
}
