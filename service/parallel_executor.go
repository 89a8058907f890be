package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ludo-technologies/godscn/domain"
)

var _ domain.ParallelExecutor = (*ParallelExecutorImpl)(nil)

// ParallelExecutorImpl runs indexed jobs on an errgroup limited to a fixed
// number of workers
type ParallelExecutorImpl struct {
	workers int
	timeout time.Duration
}

// NewParallelExecutor creates an executor running at most workers jobs at a
// time (0 means unbounded). A positive timeout bounds the whole run.
func NewParallelExecutor(workers int, timeout time.Duration) *ParallelExecutorImpl {
	if workers < 0 {
		workers = 0
	}
	return &ParallelExecutorImpl{workers: workers, timeout: timeout}
}

// ForEach implements domain.ParallelExecutor
func (pe *ParallelExecutorImpl) ForEach(ctx context.Context, n int, job func(ctx context.Context, i int) error) error {
	if n <= 0 {
		return nil
	}
	if pe.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, pe.timeout)
		defer cancel()
	}

	g, gctx := errgroup.WithContext(ctx)
	if pe.workers > 0 {
		g.SetLimit(pe.workers)
	}
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return job(gctx, i)
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("parallel execution timed out after %v: %w", pe.timeout, err)
	}
	return err
}
