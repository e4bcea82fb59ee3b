package providers

import (
	"context"
	"errors"
	"sync"

	ports "github.com/ZanzyTHEbar/fnrouter/fnrouter/router/ports"
)

// ScriptedResponse configures one model reply in a scripted sequence.
type ScriptedResponse struct {
	Completion ports.Completion
	Err        error
}

// Scripted is a deterministic chat model: it returns its responses in order
// and keeps repeating the last one once the script runs out.
type Scripted struct {
	mu        sync.Mutex
	index     int
	responses []ScriptedResponse
	prompts   []ports.PromptInput
}

// NewScripted creates a scripted provider.
func NewScripted(responses ...ScriptedResponse) *Scripted {
	cloned := make([]ScriptedResponse, len(responses))
	copy(cloned, responses)
	return &Scripted{responses: cloned}
}

// NewFunctionCalling returns a scripted provider that always asks for name
// with the given argument text.
func NewFunctionCalling(name, arguments string) *Scripted {
	return NewScripted(ScriptedResponse{Completion: ports.Completion{
		FunctionCall: &ports.FunctionCall{Name: name, Arguments: arguments},
	}})
}

func (s *Scripted) Complete(ctx context.Context, in ports.PromptInput, _ ports.Options) (ports.Completion, error) {
	if err := ctx.Err(); err != nil {
		return ports.Completion{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.prompts = append(s.prompts, in)

	if len(s.responses) == 0 {
		return ports.Completion{}, errors.New("scripted provider has no responses")
	}
	current := s.responses[min(s.index, len(s.responses)-1)]
	s.index++
	if current.Err != nil {
		return ports.Completion{}, current.Err
	}

	completion := current.Completion
	if completion.FunctionCall != nil {
		call := *completion.FunctionCall
		completion.FunctionCall = &call
	}
	return completion, nil
}

// Prompts returns the prompts received so far.
func (s *Scripted) Prompts() []ports.PromptInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ports.PromptInput, len(s.prompts))
	copy(out, s.prompts)
	return out
}

var _ ports.Provider = (*Scripted)(nil)
