package workers

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Pool runs tasks with a steady-state concurrency limit.
type Pool struct {
	group *errgroup.Group
	ctx   context.Context
}

// NewPool returns a pool bound to ctx that runs at most limit tasks at a
// time. A non-positive limit means no limit.
func NewPool(ctx context.Context, limit int) *Pool {
	group, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		group.SetLimit(limit)
	}

	return &Pool{group: group, ctx: gctx}
}

// Context returns the pool context. It is cancelled when a task fails or
// the parent context is done.
func (p *Pool) Context() context.Context {
	return p.ctx
}

// Go schedules a task, blocking while the pool is full. Tasks scheduled
// after the pool context is done are not run.
func (p *Pool) Go(task Task) {
	p.group.Go(func() error {
		if err := p.ctx.Err(); err != nil {
			return err
		}
		return task(p.ctx)
	})
}

// Wait blocks until every scheduled task has returned and reports the
// first error.
func (p *Pool) Wait() error {
	return p.group.Wait()
}
