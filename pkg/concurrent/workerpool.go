// Copyright The Kontur Meeting Extension contributors.
// SPDX-License-Identifier: MIT

// Package concurrent provides a small bounded worker pool used for fanning
// out independent lookups, such as resolving participant profiles.
package concurrent

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// WorkerPool limits how many of the submitted functions run at once.
type WorkerPool struct {
	workerCount int
}

// NewWorkerPool creates a new worker pool with the specified number of workers
func NewWorkerPool(workerCount int) *WorkerPool {
	if workerCount <= 0 {
		workerCount = 1
	}
	return &WorkerPool{
		workerCount: workerCount,
	}
}

// Run executes all functions using an errgroup with goroutine limiting.
// It returns the first error encountered and cancels remaining work.
func (wp *WorkerPool) Run(ctx context.Context, functions ...func() error) error {
	if len(functions) == 0 {
		return nil
	}

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(wp.workerCount)

	for _, fn := range functions {
		g.Go(func() error {
			select {
			case <-groupCtx.Done():
				return groupCtx.Err()
			default:
			}

			return fn()
		})
	}

	return g.Wait()
}
