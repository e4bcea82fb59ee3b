package router

import (
	"context"
	"fmt"
	"strings"
	"time"

	ports "github.com/ZanzyTHEbar/fnrouter/fnrouter/router/ports"
	"github.com/rs/zerolog"
)

// PassthroughPolicy decides what Route does with a reply that carries no
// function call.
type PassthroughPolicy int

const (
	// PassthroughIdentity returns the message unchanged.
	PassthroughIdentity PassthroughPolicy = iota
	// PassthroughReject fails with ErrNoDirective.
	PassthroughReject
)

func (p PassthroughPolicy) String() string {
	switch p {
	case PassthroughIdentity:
		return "identity"
	case PassthroughReject:
		return "reject"
	default:
		return fmt.Sprintf("PassthroughPolicy(%d)", int(p))
	}
}

// ParsePassthroughPolicy maps a config value to a policy. Empty means identity.
func ParsePassthroughPolicy(s string) (PassthroughPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "identity":
		return PassthroughIdentity, nil
	case "reject":
		return PassthroughReject, nil
	default:
		return PassthroughIdentity, fmt.Errorf("unknown passthrough policy %q", s)
	}
}

// Option configures a Router.
type Option func(*Router)

// WithPassthrough sets the policy for replies without a function call.
func WithPassthrough(p PassthroughPolicy) Option {
	return func(r *Router) { r.passthrough = p }
}

// WithLogger sets the router logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Router) { r.logger = logger }
}

// Router dispatches model function calls to registered handlers.
//
// The declarations and handlers are fixed at construction; a Router is safe
// for concurrent use.
type Router struct {
	functions   []ports.FunctionDeclaration
	handlers    Registry
	passthrough PassthroughPolicy
	logger      zerolog.Logger
}

// New creates a router. Declarations and handlers are not cross-checked: a
// declared function without a handler only fails when a call names it.
func New(functions []ports.FunctionDeclaration, handlers Registry, opts ...Option) *Router {
	r := &Router{
		functions:   ports.CloneDeclarations(functions),
		handlers:    handlers.Clone(),
		passthrough: PassthroughIdentity,
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Functions returns the declarations to advertise to the model, in
// construction order.
func (r *Router) Functions() []ports.FunctionDeclaration {
	return ports.CloneDeclarations(r.functions)
}

// Has reports whether a handler is registered for name.
func (r *Router) Has(name string) bool {
	h, ok := r.handlers[name]
	return ok && h != nil
}

// Passthrough returns the configured passthrough policy.
func (r *Router) Passthrough() PassthroughPolicy {
	return r.passthrough
}

// Route invokes the handler named by msg's function call and returns its
// result as-is. Handler errors are returned unwrapped.
func (r *Router) Route(ctx context.Context, msg ports.Message) (any, error) {
	switch m := msg.(type) {
	case ports.FunctionCallMessage:
		return r.dispatch(ctx, m.Call)
	case *ports.FunctionCallMessage:
		if m != nil {
			return r.dispatch(ctx, m.Call)
		}
	}
	return r.passThrough(msg)
}

// Call decodes and dispatches a single directive.
func (r *Router) Call(ctx context.Context, call ports.FunctionCall) (any, error) {
	return r.dispatch(ctx, call)
}

func (r *Router) passThrough(msg ports.Message) (any, error) {
	if r.passthrough == PassthroughReject {
		r.logger.Debug().Msg("rejecting reply without function call")
		return nil, ErrNoDirective
	}
	return msg, nil
}

func (r *Router) dispatch(ctx context.Context, call ports.FunctionCall) (any, error) {
	args, err := DecodeArguments(call.Arguments)
	if err != nil {
		r.logger.Warn().Str("function", call.Name).Err(err).Msg("malformed function arguments")
		return nil, &MalformedArgumentsError{Function: call.Name, Arguments: call.Arguments, Err: err}
	}

	handler, ok := r.handlers[call.Name]
	if !ok || handler == nil {
		r.logger.Warn().Str("function", call.Name).Msg("no handler registered for function")
		return nil, &UnknownFunctionError{Name: call.Name}
	}

	start := time.Now()
	result, err := handler.Invoke(ctx, args)
	r.logger.Debug().
		Str("function", call.Name).
		Dur("duration", time.Since(start)).
		Err(err).
		Msg("function dispatched")

	return result, err
}
