package routerports

import "context"

// Cache memoizes completions keyed by prompt and bound functions.
type Cache interface {
	Get(ctx context.Context, key string) (value []byte, ok bool)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}

// RateLimiter gates model calls per key. The returned release func must be
// called once the call finishes.
type RateLimiter interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// Tracer emits spans and events for a chain invocation.
type Tracer interface {
	StartSpan(ctx context.Context, name string, attrs map[string]any) (context.Context, func(err error))
	Event(ctx context.Context, name string, attrs map[string]any)
}
