package providers

import (
	"context"
	"errors"
	"fmt"

	ports "github.com/ZanzyTHEbar/fnrouter/fnrouter/router/ports"
	"github.com/sashabaranov/go-openai"
)

// ChatCompleter is the subset of *openai.Client used here; it is easy to mock in tests.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAI adapts an OpenAI-compatible chat completion API. Functions are sent
// in the "functions" field and the reply's "function_call" (or first tool
// call) becomes the directive.
type OpenAI struct {
	client ChatCompleter
	model  string
}

// NewOpenAI creates a provider around client.
func NewOpenAI(client ChatCompleter, model string) *OpenAI {
	return &OpenAI{client: client, model: model}
}

// NewOpenAIClient builds a client for apiKey and an optional base URL.
func NewOpenAIClient(apiKey, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cfg)
}

func (p *OpenAI) Complete(ctx context.Context, in ports.PromptInput, opts ports.Options) (ports.Completion, error) {
	req, err := p.buildRequest(in, opts)
	if err != nil {
		return ports.Completion{}, err
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return ports.Completion{}, fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return ports.Completion{}, errors.New("openai chat completion: empty response")
	}

	msg := resp.Choices[0].Message
	completion := ports.Completion{
		Text: msg.Content,
		Usage: &ports.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}

	switch {
	case msg.FunctionCall != nil:
		completion.FunctionCall = &ports.FunctionCall{
			Name:      msg.FunctionCall.Name,
			Arguments: msg.FunctionCall.Arguments,
		}
	case len(msg.ToolCalls) > 0:
		completion.FunctionCall = &ports.FunctionCall{
			Name:      msg.ToolCalls[0].Function.Name,
			Arguments: msg.ToolCalls[0].Function.Arguments,
		}
	}

	return completion, nil
}

func (p *OpenAI) buildRequest(in ports.PromptInput, opts ports.Options) (openai.ChatCompletionRequest, error) {
	req := openai.ChatCompletionRequest{
		Model:       p.model,
		MaxTokens:   opts.MaxNewTokens,
		Temperature: opts.Temperature,
		TopP:        opts.TopP,
	}

	if in.System != "" {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: in.System,
		})
	}
	for _, m := range in.Messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	for _, decl := range in.Functions {
		params, err := decl.Parameters.Map()
		if err != nil {
			return req, fmt.Errorf("function %q: %w", decl.Name, err)
		}
		req.Functions = append(req.Functions, openai.FunctionDefinition{
			Name:        decl.Name,
			Description: decl.Description,
			Parameters:  params,
		})
	}

	if len(req.Functions) > 0 {
		switch opts.FunctionChoice {
		case "", "auto":
		case "none":
			req.FunctionCall = "none"
		default:
			req.FunctionCall = map[string]string{"name": opts.FunctionChoice}
		}
	}

	return req, nil
}

var _ ports.Provider = (*OpenAI)(nil)
