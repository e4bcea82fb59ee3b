package router

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"

	ports "github.com/ZanzyTHEbar/fnrouter/fnrouter/router/ports"
	"github.com/google/uuid"
)

// ChainOptions controls how a Chain prompts the model.
type ChainOptions struct {
	System          string        // system prompt sent with every call
	Model           ports.Options // sampling and function-choice options
	TextDirectives  bool          // parse function calls out of reply text when the provider returns none
	CacheTTLSeconds int           // TTL for cached completions; <= 0 disables caching
}

// Chain binds a router's functions to a model: one model call per input, the
// reply routed through the router.
type Chain struct {
	provider ports.Provider
	router   *Router
	builder  *PromptBuilder
	parser   *TextParser
	cache    ports.Cache
	limiter  ports.RateLimiter
	tracer   ports.Tracer
	opts     ChainOptions
}

// NewChain creates a chain. Nil cache, limiter or tracer disable that feature.
func NewChain(
	provider ports.Provider,
	router *Router,
	cache ports.Cache,
	limiter ports.RateLimiter,
	tracer ports.Tracer,
	opts ChainOptions,
) *Chain {
	if cache == nil {
		cache = &noOpCache{}
	}
	if limiter == nil {
		limiter = &noOpRateLimiter{}
	}
	if tracer == nil {
		tracer = &noOpTracer{}
	}
	return &Chain{
		provider: provider,
		router:   router,
		builder:  NewPromptBuilder(opts.TextDirectives),
		parser:   NewTextParser(),
		cache:    cache,
		limiter:  limiter,
		tracer:   tracer,
		opts:     opts,
	}
}

// Router returns the router the chain dispatches to.
func (c *Chain) Router() *Router { return c.router }

// Invoke prompts the model with input and the router's functions, then routes
// the reply. The router's result and handler errors are returned untouched.
func (c *Chain) Invoke(ctx context.Context, input string) (any, error) {
	if c.provider == nil {
		return nil, fmt.Errorf("chain has no model provider")
	}

	release, err := c.limiter.Acquire(ctx, "chain")
	if err != nil {
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}
	defer release()

	functions := c.router.Functions()
	ctx, finish := c.tracer.StartSpan(ctx, "chain_invoke", map[string]any{
		"invocation_id":  uuid.NewString(),
		"function_count": len(functions),
	})

	result, err := c.invoke(ctx, input, functions)
	finish(err)
	return result, err
}

func (c *Chain) invoke(ctx context.Context, input string, functions []ports.FunctionDeclaration) (any, error) {
	prompt := c.builder.Build(c.opts.System, input, functions, map[string]string{
		"function_count": fmt.Sprintf("%d", len(functions)),
	})

	completion, err := c.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	msg := completion.Message()
	if _, plain := msg.(ports.PlainMessage); plain && c.opts.TextDirectives {
		msg = c.parser.Parse(completion.Text)
		if fc, ok := msg.(ports.FunctionCallMessage); ok {
			c.tracer.Event(ctx, "text_directive", map[string]any{"function": fc.Call.Name})
		}
	}

	return c.router.Route(ctx, msg)
}

// complete returns a cached completion for prompt or calls the provider.
func (c *Chain) complete(ctx context.Context, prompt ports.PromptInput) (ports.Completion, error) {
	cacheKey, keyErr := c.buildCacheKey(prompt)
	caching := c.opts.CacheTTLSeconds > 0 && keyErr == nil

	if caching {
		if cached, ok := c.cache.Get(ctx, cacheKey); ok {
			var completion ports.Completion
			if err := json.Unmarshal(cached, &completion); err == nil {
				c.tracer.Event(ctx, "cache_hit", map[string]any{"key": cacheKey})
				return completion, nil
			}
			_ = c.cache.Delete(ctx, cacheKey)
		}
	}

	ctx, spanFinish := c.tracer.StartSpan(ctx, "provider_call", map[string]any{
		"function_choice": c.opts.Model.FunctionChoice,
	})
	completion, err := c.provider.Complete(ctx, prompt, c.opts.Model)
	spanFinish(err)
	if err != nil {
		return ports.Completion{}, fmt.Errorf("model call failed: %w", err)
	}

	if caching {
		if raw, err := json.Marshal(completion); err == nil {
			if err := c.cache.Set(ctx, cacheKey, raw, c.opts.CacheTTLSeconds); err != nil {
				c.tracer.Event(ctx, "cache_error", map[string]any{"error": err.Error()})
			}
		}
	}

	return completion, nil
}

// buildCacheKey derives a deterministic key from everything sent to the model.
func (c *Chain) buildCacheKey(prompt ports.PromptInput) (string, error) {
	payload, err := json.Marshal(struct {
		System    string
		Messages  []ports.PromptMessage
		Functions []ports.FunctionDeclaration
		Options   ports.Options
	}{prompt.System, prompt.Messages, prompt.Functions, c.opts.Model})
	if err != nil {
		return "", err
	}

	h := fnv.New64a()
	_, _ = h.Write(payload)
	return fmt.Sprintf("chain:%x", h.Sum64()), nil
}
