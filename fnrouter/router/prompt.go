package router

import (
	"strings"
	"text/template"

	ports "github.com/ZanzyTHEbar/fnrouter/fnrouter/router/ports"
)

// directiveTemplate tells a text-only model how to write a function call that
// TextParser understands.
const directiveTemplate = `{{if .System}}{{.System}}

{{end}}You can call one of the following functions:
{{range .Functions}}
- {{.Name}}: {{.Description}}
  parameters: {{schema .Parameters}}
{{end}}
To call a function, reply with only a JSON object of the form
{"name": "<function name>", "arguments": {<arguments>}}`

var directivePrompt = template.Must(template.New("directives").Funcs(template.FuncMap{
	"schema": func(s ports.Schema) string {
		raw, err := s.JSON()
		if err != nil {
			return "{}"
		}
		return string(raw)
	},
}).Parse(directiveTemplate))

// PromptBuilder assembles a single-turn provider input from system text, the
// user input and the bound functions.
type PromptBuilder struct {
	// TextDirectives appends a function catalog and call format to the system
	// prompt, for models without native function calling.
	TextDirectives bool
}

// NewPromptBuilder creates a builder; textDirectives enables the function catalog.
func NewPromptBuilder(textDirectives bool) *PromptBuilder {
	return &PromptBuilder{TextDirectives: textDirectives}
}

// Build normalizes text and returns the PromptInput for one model call.
func (b *PromptBuilder) Build(system, input string, functions []ports.FunctionDeclaration, meta map[string]string) ports.PromptInput {
	// Normalize newlines and trim whitespace to keep cache keys stable
	norm := func(s string) string { return strings.TrimSpace(strings.ReplaceAll(s, "\r\n", "\n")) }

	system = norm(system)
	if b.TextDirectives && len(functions) > 0 {
		system = b.renderDirectives(system, functions)
	}

	return ports.PromptInput{
		System:    system,
		Messages:  []ports.PromptMessage{{Role: "user", Content: norm(input)}},
		Functions: functions,
		Meta:      meta,
	}
}

func (b *PromptBuilder) renderDirectives(system string, functions []ports.FunctionDeclaration) string {
	var sb strings.Builder
	err := directivePrompt.Execute(&sb, struct {
		System    string
		Functions []ports.FunctionDeclaration
	}{system, functions})
	if err != nil {
		return system
	}
	return strings.TrimSpace(sb.String())
}
