package kmeans

import (
	"math/rand"
	"runtime"
	"time"
)

const defaultGroupDivider = 7

type options struct {
	maxIterations int
	tolerance     float64
	threads       int
	algorithm     Algorithm
	autoGroups    bool
	groupDivider  int
	rng           *rand.Rand
	initial       []float32
	logger        *Logger
}

func defaultOptions() options {
	return options{
		maxIterations: 300,
		tolerance:     1e-6,
		threads:       runtime.GOMAXPROCS(0),
		algorithm:     AlgorithmYinyang,
		autoGroups:    true,
		groupDivider:  defaultGroupDivider,
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:        NoopLogger(),
	}
}

// Option configures a Trainer.
type Option func(*options)

// WithMaxIterations caps the number of update phases. Reaching the cap
// without convergence is reported via Result.Converged, not as an error.
// Values below 1 fall back to 1.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.maxIterations = n
	}
}

// WithTolerance sets the relative change of the bound-sum convergence proxy
// below which a run counts as converged. Negative values fall back to 0,
// which requires an exact fixed point.
func WithTolerance(tol float64) Option {
	return func(o *options) {
		if tol < 0 {
			tol = 0
		}
		o.tolerance = tol
	}
}

// WithThreads sets the number of worker goroutines for the parallel phases.
// Values below 1 fall back to 1.
func WithThreads(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.threads = n
	}
}

// WithAlgorithm selects the assignment-and-update engine. Both engines
// produce the same clustering; the bound-tracking one avoids most distance
// evaluations once k grows.
func WithAlgorithm(a Algorithm) Option {
	return func(o *options) {
		o.algorithm = a
	}
}

// WithGroups configures centroid grouping for the bound-tracking engine.
// When auto is true the group count is max(1, k/divider); otherwise a single
// group spans all centroids. Divider values below 1 fall back to the default
// of 7.
func WithGroups(auto bool, divider int) Option {
	return func(o *options) {
		if divider < 1 {
			divider = defaultGroupDivider
		}
		o.autoGroups = auto
		o.groupDivider = divider
	}
}

// WithRand sets the random source used for seeding and group construction,
// for reproducible runs. A nil value keeps the time-seeded default.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		if rng != nil {
			o.rng = rng
		}
	}
}

// WithInitialCentroids provides the starting centroid matrix (k*dim values,
// row-major) instead of k-means++ seeding. The slice is copied.
func WithInitialCentroids(centroids []float32) Option {
	return func(o *options) {
		o.initial = centroids
	}
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}
