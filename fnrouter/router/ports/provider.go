package routerports

import (
	"context"
)

// PromptMessage represents a single chat message used to build prompts.
type PromptMessage struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

// PromptInput aggregates everything the provider needs to produce a completion.
type PromptInput struct {
	System    string                // high-level system instructions
	Messages  []PromptMessage       // ordered chat messages
	Functions []FunctionDeclaration // functions bound to the request
	Meta      map[string]string     // lightweight metadata for tracing/caching keys
}

// Options controls sampling and function preferences.
type Options struct {
	MaxNewTokens int
	Temperature  float32
	TopP         float32
	// FunctionChoice: "auto" | "none" | a specific function name
	FunctionChoice string
}

// Usage captures token accounting for telemetry.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Completion is the provider's response.
type Completion struct {
	Text         string        `json:"text"`
	FunctionCall *FunctionCall `json:"function_call,omitempty"`
	Usage        *Usage        `json:"usage,omitempty"`
}

// Message converts the completion into the tagged message variant.
func (c Completion) Message() Message {
	return NewMessage(c.Text, c.FunctionCall)
}

// Provider is the abstraction for chat model backends.
type Provider interface {
	Complete(ctx context.Context, in PromptInput, opts Options) (Completion, error)
}
