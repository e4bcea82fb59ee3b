package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	ports "github.com/ZanzyTHEbar/fnrouter/fnrouter/router/ports"
	"google.golang.org/genai"
)

// ContentGenerator is the subset of *genai.Models used here.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini adapts the Gemini API. The first FunctionCall part of the reply
// becomes the directive, its Args re-encoded as JSON text.
type Gemini struct {
	models ContentGenerator
	model  string
}

// NewGemini creates a provider around models.
func NewGemini(models ContentGenerator, model string) *Gemini {
	return &Gemini{models: models, model: model}
}

// NewGeminiClient builds a Gemini API client. An empty apiKey lets the SDK
// read GEMINI_API_KEY or GOOGLE_API_KEY.
func NewGeminiClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
}

func (p *Gemini) Complete(ctx context.Context, in ports.PromptInput, opts ports.Options) (ports.Completion, error) {
	contents := make([]*genai.Content, 0, len(in.Messages))
	for _, m := range in.Messages {
		role := genai.Role(genai.RoleUser)
		if m.Role == "assistant" {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}

	config, err := p.buildConfig(in, opts)
	if err != nil {
		return ports.Completion{}, err
	}

	resp, err := p.models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		return ports.Completion{}, fmt.Errorf("gemini generate content: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return ports.Completion{}, errors.New("gemini generate content: empty response")
	}

	var (
		text       strings.Builder
		completion ports.Completion
	)
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil {
			continue
		}
		text.WriteString(part.Text)
		if part.FunctionCall != nil && completion.FunctionCall == nil {
			args, err := json.Marshal(part.FunctionCall.Args)
			if err != nil {
				return ports.Completion{}, fmt.Errorf("gemini function call %q: %w", part.FunctionCall.Name, err)
			}
			if part.FunctionCall.Args == nil {
				args = []byte("{}")
			}
			completion.FunctionCall = &ports.FunctionCall{
				Name:      part.FunctionCall.Name,
				Arguments: string(args),
			}
		}
	}
	completion.Text = text.String()

	if usage := resp.UsageMetadata; usage != nil {
		completion.Usage = &ports.Usage{
			PromptTokens:     int(usage.PromptTokenCount),
			CompletionTokens: int(usage.CandidatesTokenCount),
			TotalTokens:      int(usage.TotalTokenCount),
		}
	}

	return completion, nil
}

func (p *Gemini) buildConfig(in ports.PromptInput, opts ports.Options) (*genai.GenerateContentConfig, error) {
	config := &genai.GenerateContentConfig{}
	if in.System != "" {
		config.SystemInstruction = genai.NewContentFromText(in.System, genai.RoleUser)
	}
	if opts.MaxNewTokens > 0 {
		config.MaxOutputTokens = int32(opts.MaxNewTokens)
	}
	if opts.Temperature > 0 {
		config.Temperature = ptr(opts.Temperature)
	}
	if opts.TopP > 0 {
		config.TopP = ptr(opts.TopP)
	}

	if len(in.Functions) == 0 {
		return config, nil
	}

	decls := make([]*genai.FunctionDeclaration, 0, len(in.Functions))
	for _, decl := range in.Functions {
		params, err := decl.Parameters.Map()
		if err != nil {
			return nil, fmt.Errorf("function %q: %w", decl.Name, err)
		}
		decls = append(decls, &genai.FunctionDeclaration{
			Name:                 decl.Name,
			Description:          decl.Description,
			ParametersJsonSchema: params,
		})
	}
	config.Tools = []*genai.Tool{{FunctionDeclarations: decls}}

	switch opts.FunctionChoice {
	case "", "auto":
	case "none":
		config.ToolConfig = &genai.ToolConfig{FunctionCallingConfig: &genai.FunctionCallingConfig{
			Mode: genai.FunctionCallingConfigModeNone,
		}}
	default:
		config.ToolConfig = &genai.ToolConfig{FunctionCallingConfig: &genai.FunctionCallingConfig{
			Mode:                 genai.FunctionCallingConfigModeAny,
			AllowedFunctionNames: []string{opts.FunctionChoice},
		}}
	}

	return config, nil
}

func ptr[T any](v T) *T { return &v }

var _ ports.Provider = (*Gemini)(nil)
