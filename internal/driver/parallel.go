package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// forEachIndexed runs fn for 0..n-1 on at most jobs goroutines. fn writes
// its own slot of a preallocated result slice, so no locking is needed.
// The first error (or cancellation) stops scheduling of the rest.
func forEachIndexed(ctx context.Context, n, jobs int, fn func(ctx context.Context, i int) error) error {
	if n == 0 {
		return ctx.Err()
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, n))
	for i := range n {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			return fn(gctx, i)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
