// Package parallel provides the chunked fan-out primitive used by the
// clustering engines: a point index range is split into contiguous chunks,
// each owned by exactly one worker for the duration of a phase. Splitting is
// deterministic, so a worker owns the same chunk in every phase of a run.
package parallel

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Chunk is a half-open index range [Lo, Hi) owned by a single worker.
type Chunk struct {
	Lo, Hi int
}

// Split partitions [0, n) into at most workers contiguous chunks of
// near-equal size. Chunks are disjoint and cover the range exactly once.
func Split(n, workers int) []Chunk {
	if n <= 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	chunks := make([]Chunk, 0, workers)
	size := n / workers
	rem := n % workers
	lo := 0

	for w := 0; w < workers; w++ {
		hi := lo + size
		if w < rem {
			hi++
		}
		chunks = append(chunks, Chunk{Lo: lo, Hi: hi})
		lo = hi
	}

	return chunks
}

// Run invokes fn once per chunk with a distinct worker id and blocks until
// every worker has finished. The first error cancels the remaining workers.
func Run(ctx context.Context, n, workers int, fn func(worker, lo, hi int) error) error {
	g, ctx := errgroup.WithContext(ctx)

	for w, c := range Split(n, workers) {
		w, c := w, c
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(w, c.Lo, c.Hi)
		})
	}

	return g.Wait()
}
