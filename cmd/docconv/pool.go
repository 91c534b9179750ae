package main

import (
	"context"
	"runtime"
	"sync"
)

// maxAutoPoolSize caps the automatic pool size. An explicit --workers value
// may exceed it up to config.MaxWorkers.
const maxAutoPoolSize = 8

// resolvePoolSize determines the optimal pool size.
// Priority: explicit flag > GOMAXPROCS-based calculation.
func resolvePoolSize(flagWorkers int) int {
	// Explicit flag takes priority
	if flagWorkers > 0 {
		return flagWorkers
	}

	// Auto-calculate based on GOMAXPROCS (adjusted by automaxprocs for containers)
	n := runtime.GOMAXPROCS(0) / 2

	// Minimum 1, maximum 8
	return min(max(n, 1), maxAutoPoolSize)
}

// runPool calls fn for every index in [0, jobs) using at most size
// goroutines. Jobs not started before ctx is done are passed to skip.
// The engine is safe for concurrent use, so workers share it and the pool
// only bounds concurrency.
func runPool(ctx context.Context, size, jobs int, fn func(ctx context.Context, i int), skip func(i int, err error)) {
	if jobs == 0 {
		return
	}
	size = min(max(size, 1), jobs)

	queue := make(chan int, jobs)
	for i := range jobs {
		queue <- i
	}
	close(queue)

	var wg sync.WaitGroup
	for range size {
		wg.Go(func() {
			for i := range queue {
				if err := ctx.Err(); err != nil {
					skip(i, err)
					continue
				}
				fn(ctx, i)
			}
		})
	}
	wg.Wait()
}
