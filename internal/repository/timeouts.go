package repository

import (
	"context"
	"time"
)

// Query timeouts. Writes are bounded so a stalled database cannot hold the
// manager mutex indefinitely; list queries get a longer bound because
// rehydration reads the whole prospect table.
const (
	writeTimeout = 10 * time.Second
	listTimeout  = 30 * time.Second
)

// WithWriteTimeout bounds a single-row write.
func WithWriteTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return boundedContext(ctx, writeTimeout)
}

// WithListQueryTimeout bounds a full-table read.
func WithListQueryTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return boundedContext(ctx, listTimeout)
}

// boundedContext applies the timeout unless the caller's deadline is
// already sooner.
func boundedContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}
