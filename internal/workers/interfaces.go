// Package workers provides a bounded pool for running block transfer
// tasks concurrently.
// A Pool runs at most a fixed number of tasks at a time; the first task
// error cancels the pool context and is returned from Wait.
package workers

import "context"

// Task is a unit of work run by a Pool. It must return promptly once ctx
// is cancelled.
//
// Example implementation:
//
//	pool.Go(func(ctx context.Context) error {
//	    return upload(ctx, block)
//	})
type Task func(ctx context.Context) error
