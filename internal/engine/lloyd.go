package engine

import (
	"context"

	"github.com/hupe1980/kmeans/internal/floats"
	"github.com/hupe1980/kmeans/internal/parallel"
)

// Lloyd is the exact full-scan engine: every assignment phase evaluates
// every point/centroid pair. It doubles as the correctness baseline for the
// bound-tracking engine.
type Lloyd struct {
	data      []float32
	n, dim, k int
	threads   int

	centroids []float32
	labels    []int

	workers []*lloydWorker
	accs    []*accumulator
	merged  *accumulator
}

type lloydWorker struct {
	acc   *accumulator
	diff  []float32
	sum   float64
	evals int64
}

// NewLloyd creates the exact engine from cfg. See Config for ownership
// rules.
func NewLloyd(cfg Config) *Lloyd {
	n := len(cfg.Data) / cfg.Dim

	l := &Lloyd{
		data:      cfg.Data,
		n:         n,
		dim:       cfg.Dim,
		k:         cfg.K,
		threads:   cfg.Threads,
		centroids: cfg.Centroids,
		labels:    make([]int, n),
		merged:    newAccumulator(cfg.K, cfg.Dim),
	}

	for range parallel.Split(n, cfg.Threads) {
		w := &lloydWorker{
			acc:  newAccumulator(cfg.K, cfg.Dim),
			diff: make([]float32, cfg.Dim),
		}
		l.workers = append(l.workers, w)
		l.accs = append(l.accs, w.acc)
	}

	return l
}

// Init runs the initial assignment pass.
func (l *Lloyd) Init(ctx context.Context) (float64, error) {
	return l.assign(ctx)
}

// Step recomputes the centroids from the current assignment and reassigns
// every point by full scan.
func (l *Lloyd) Step(ctx context.Context) (float64, error) {
	l.merged.merge(l.accs)
	moveCenters(l.centroids, l.dim, l.merged, nil, nil, nil)
	return l.assign(ctx)
}

func (l *Lloyd) assign(ctx context.Context) (float64, error) {
	err := parallel.Run(ctx, l.n, l.threads, func(w, lo, hi int) error {
		lw := l.workers[w]
		lw.acc.reset()
		lw.sum = 0

		for i := lo; i < hi; i++ {
			x := l.data[i*l.dim : (i+1)*l.dim]
			best, bestD2 := 0, inf32

			// Ties keep the first-encountered centroid in index order.
			for c := 0; c < l.k; c++ {
				d2 := floats.SquaredL2(x, l.centroids[c*l.dim:(c+1)*l.dim], lw.diff)
				if d2 < bestD2 {
					best, bestD2 = c, d2
				}
			}
			lw.evals += int64(l.k)

			l.labels[i] = best
			lw.acc.add(x, best)
			lw.sum += float64(floats.Sqrt(bestD2))
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	var total float64
	for _, w := range l.workers {
		total += w.sum
	}

	return total, nil
}

// Labels returns the current assignment; the caller must not mutate it.
func (l *Lloyd) Labels() []int { return l.labels }

// Centroids returns the current centroid matrix; the caller must not mutate
// it.
func (l *Lloyd) Centroids() []float32 { return l.centroids }

// Inertia implements Engine.
func (l *Lloyd) Inertia(ctx context.Context) (float64, error) {
	return exactInertia(ctx, l.data, l.dim, l.centroids, l.labels, l.threads)
}

// DistanceEvals implements Engine.
func (l *Lloyd) DistanceEvals() int64 {
	var total int64
	for _, w := range l.workers {
		total += w.evals
	}
	return total
}
