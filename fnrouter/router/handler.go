package router

import (
	"context"
	"maps"
)

// Handler performs the work for one named function.
type Handler interface {
	Invoke(ctx context.Context, args Arguments) (any, error)
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(ctx context.Context, args Arguments) (any, error)

func (f HandlerFunc) Invoke(ctx context.Context, args Arguments) (any, error) {
	return f(ctx, args)
}

// StringHandler builds a handler that reads one string field and returns fn's result.
func StringHandler(key string, fn func(string) string) Handler {
	return HandlerFunc(func(_ context.Context, args Arguments) (any, error) {
		v, err := args.String(key)
		if err != nil {
			return nil, err
		}
		return fn(v), nil
	})
}

// Registry maps function names to handlers.
type Registry map[string]Handler

// Clone returns a shallow copy of the registry.
func (r Registry) Clone() Registry {
	out := make(Registry, len(r))
	maps.Copy(out, r)
	return out
}

var _ Handler = HandlerFunc(nil)
