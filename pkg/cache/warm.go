package cache

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Warm pre-builds the named documents into the cache, at most
// concurrency builds in flight at once. Per-document failures (missing
// or malformed documents) do not abort the batch; they are collected
// and returned alongside the count of successful builds. Only context
// cancellation stops warming early, in which case the returned error is
// non-nil.
func (c *PageCache) Warm(ctx context.Context, names []string, concurrency int64) (int, map[string]error, error) {
	if concurrency < 1 {
		concurrency = 1
	}
	sem := semaphore.NewWeighted(concurrency)
	g, ctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	built := 0
	failures := make(map[string]error)

	for _, name := range names {
		g.Go(func() error {
			if err := sem.Acquire(ctx, 1); err != nil {
				return err // Context canceled
			}
			defer sem.Release(1)

			_, err := c.GetPage(ctx, name)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures[name] = err
				return nil
			}
			built++
			return nil
		})
	}

	err := g.Wait()
	c.log.Infof("Cache warm complete: built %d, failed %d (of %d)", built, len(failures), len(names))
	return built, failures, err
}
