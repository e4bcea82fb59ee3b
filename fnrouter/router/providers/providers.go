// Package providers adapts chat model backends to the router's Provider port.
package providers

import (
	"context"
	"fmt"
	"os"
	"strings"

	internal "github.com/ZanzyTHEbar/fnrouter/fnrouter"
	"github.com/ZanzyTHEbar/fnrouter/fnrouter/config"
	ports "github.com/ZanzyTHEbar/fnrouter/fnrouter/router/ports"
)

// New creates the provider selected by cfg.Provider. The scripted provider
// starts with an empty script and is only useful for wiring checks.
func New(ctx context.Context, cfg config.LLMConfig) (ports.Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		if apiKey == "" && cfg.BaseURL == "" {
			return nil, fmt.Errorf("openai provider requires llm.api_key or OPENAI_API_KEY")
		}
		model := cfg.Model
		if model == "" {
			model = internal.DefaultOpenAIModel
		}
		return NewOpenAI(NewOpenAIClient(apiKey, cfg.BaseURL), model), nil

	case "gemini":
		client, err := NewGeminiClient(ctx, cfg.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		model := cfg.Model
		if model == "" {
			model = internal.DefaultGeminiModel
		}
		return NewGemini(client.Models, model), nil

	case "scripted", "":
		return NewScripted(), nil

	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
