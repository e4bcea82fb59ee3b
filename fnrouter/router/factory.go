package router

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/fnrouter/fnrouter/config"
	"github.com/ZanzyTHEbar/fnrouter/fnrouter/router/adapters"
	ports "github.com/ZanzyTHEbar/fnrouter/fnrouter/router/ports"
	"github.com/rs/zerolog"
)

// Factory creates and wires router components from configuration.
type Factory struct {
	cfg    *config.Config
	logger zerolog.Logger
}

// NewFactory creates a new factory.
func NewFactory(cfg *config.Config, logger zerolog.Logger) *Factory {
	return &Factory{cfg: cfg, logger: logger}
}

// CreateRouter builds a router from the configured declarations and the given
// handlers. Handlers are not required for every declaration.
func (f *Factory) CreateRouter(handlers Registry) (*Router, error) {
	decls, err := f.cfg.Router.Declarations()
	if err != nil {
		return nil, fmt.Errorf("invalid router functions: %w", err)
	}
	return f.CreateRouterWith(decls, handlers)
}

// CreateRouterWith builds a router from explicit declarations with the
// configured passthrough policy.
func (f *Factory) CreateRouterWith(decls []ports.FunctionDeclaration, handlers Registry) (*Router, error) {
	policy, err := ParsePassthroughPolicy(f.cfg.Router.Passthrough)
	if err != nil {
		return nil, err
	}

	for _, decl := range decls {
		if _, ok := handlers[decl.Name]; !ok {
			f.logger.Warn().Str("function", decl.Name).Msg("declared function has no handler")
		}
	}

	return New(decls, handlers,
		WithPassthrough(policy),
		WithLogger(f.logger.With().Str("component", "router").Logger()),
	), nil
}

// CreateChain wires a chain around provider and router from config.
func (f *Factory) CreateChain(provider ports.Provider, router *Router) *Chain {
	ttl := 0
	if f.cfg.Chain.CacheEnabled {
		ttl = f.cfg.Chain.CacheTTLSeconds
	}

	return NewChain(provider, router, f.createCache(), f.createRateLimiter(), f.createTracer(), ChainOptions{
		System: f.cfg.Chain.System,
		Model: ports.Options{
			MaxNewTokens:   f.cfg.LLM.MaxNewTokens,
			Temperature:    f.cfg.LLM.Temperature,
			TopP:           f.cfg.LLM.TopP,
			FunctionChoice: f.cfg.Chain.FunctionChoice,
		},
		TextDirectives:  f.cfg.LLM.TextDirectives,
		CacheTTLSeconds: ttl,
	})
}

// createCache creates a cache adapter from config.
func (f *Factory) createCache() ports.Cache {
	if !f.cfg.Chain.CacheEnabled {
		return &noOpCache{}
	}
	return adapters.NewLRUCache(f.cfg.Chain.CacheCapacity)
}

// createRateLimiter creates a rate limiter adapter from config.
func (f *Factory) createRateLimiter() ports.RateLimiter {
	if !f.cfg.Chain.RateLimitEnabled {
		return &noOpRateLimiter{}
	}
	return adapters.NewTokenBucket(f.cfg.Chain.RateLimitCapacity, f.cfg.Chain.RateLimitRefillRate)
}

// createTracer creates a tracer adapter from config.
func (f *Factory) createTracer() ports.Tracer {
	if !f.cfg.Chain.EnableTracing {
		return &noOpTracer{}
	}
	return adapters.NewZerologTracer(f.logger.With().Str("component", "chain").Logger())
}

// noOpCache implements Cache with no-op behavior for a disabled cache.
type noOpCache struct{}

func (c *noOpCache) Get(ctx context.Context, key string) ([]byte, bool) { return nil, false }
func (c *noOpCache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	return nil
}
func (c *noOpCache) Delete(ctx context.Context, key string) error { return nil }

// noOpRateLimiter implements RateLimiter with no-op behavior.
type noOpRateLimiter struct{}

func (r *noOpRateLimiter) Acquire(ctx context.Context, key string) (release func(), err error) {
	return func() {}, nil
}

// noOpTracer implements Tracer with no-op behavior.
type noOpTracer struct{}

func (t *noOpTracer) StartSpan(ctx context.Context, name string, attrs map[string]any) (context.Context, func(err error)) {
	return ctx, func(err error) {}
}

func (t *noOpTracer) Event(ctx context.Context, name string, attrs map[string]any) {}

var (
	_ ports.Cache       = (*noOpCache)(nil)
	_ ports.RateLimiter = (*noOpRateLimiter)(nil)
	_ ports.Tracer      = (*noOpTracer)(nil)
)
