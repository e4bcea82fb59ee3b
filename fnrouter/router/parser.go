package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	ports "github.com/ZanzyTHEbar/fnrouter/fnrouter/router/ports"
)

// wireFunctionCall accepts arguments either as JSON text or as an inline object.
type wireFunctionCall struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

type wireMessage struct {
	Content          *string           `json:"content"`
	FunctionCall     *wireFunctionCall `json:"function_call"`
	AdditionalKwargs *struct {
		FunctionCall *wireFunctionCall `json:"function_call"`
	} `json:"additional_kwargs"`
	ToolCalls []struct {
		Function *wireFunctionCall `json:"function"`
	} `json:"tool_calls"`
}

// ParseMessage decodes an upstream chat message into a Message. It understands
// a top-level "function_call", the "additional_kwargs.function_call" nesting
// and the first "tool_calls" entry, in that order.
func ParseMessage(raw []byte) (ports.Message, error) {
	var wire wireMessage
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode message: %w", err)
	}

	content := ""
	if wire.Content != nil {
		content = *wire.Content
	}

	fc := wire.FunctionCall
	if fc == nil && wire.AdditionalKwargs != nil {
		fc = wire.AdditionalKwargs.FunctionCall
	}
	if fc == nil {
		for _, tc := range wire.ToolCalls {
			if tc.Function != nil {
				fc = tc.Function
				break
			}
		}
	}
	if fc == nil {
		return ports.PlainMessage{Content: content}, nil
	}

	return ports.FunctionCallMessage{
		Content: content,
		Call: ports.FunctionCall{
			Name:      fc.Name,
			Arguments: argumentText(fc.Arguments),
		},
	}, nil
}

// argumentText unwraps a JSON string holding the arguments, or keeps any other
// JSON value verbatim so the router can judge it.
func argumentText(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ""
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	}
	return string(trimmed)
}

// TextParser extracts function calls that text-only models write into their
// reply instead of using a native function-call field.
type TextParser struct {
	patterns []textPattern
}

// textPattern locates the function name and the opening brace of the
// arguments; the object itself is read with a JSON decoder so nesting is kept.
type textPattern struct {
	re *regexp.Regexp
	// closer must follow the arguments object, if set.
	closer byte
}

// NewTextParser creates a parser with patterns for the common conventions.
func NewTextParser() *TextParser {
	return &TextParser{
		patterns: []textPattern{
			// JSON object format, bare or inside an array: {"name": "fn", "arguments": {...}}
			{re: regexp.MustCompile(`\{\s*"name"\s*:\s*"([^"]+)"\s*,\s*"arguments"\s*:\s*(\{)`)},
			// Call format: fn({"arg": "value"})
			{re: regexp.MustCompile(`\b([A-Za-z_]\w*)\s*\(\s*(\{)`), closer: ')'},
		},
	}
}

// Parse returns a FunctionCallMessage for the first call found in text, or a
// PlainMessage holding text. Arguments that do not decode as JSON are kept as
// the rest of the text; the router reports them as malformed.
func (p *TextParser) Parse(text string) ports.Message {
	for _, pattern := range p.patterns {
		for _, loc := range pattern.re.FindAllStringSubmatchIndex(text, -1) {
			name := strings.TrimSpace(text[loc[2]:loc[3]])
			args, end, ok := readObject(text, loc[4])
			if pattern.closer != 0 && (!ok || !followedBy(text[end:], pattern.closer)) {
				continue
			}
			return ports.FunctionCallMessage{
				Content: text,
				Call:    ports.FunctionCall{Name: name, Arguments: args},
			}
		}
	}
	return ports.PlainMessage{Content: text}
}

// readObject decodes one JSON value starting at text[start] and returns its
// text and end offset. On failure it returns the trimmed remainder.
func readObject(text string, start int) (string, int, bool) {
	dec := json.NewDecoder(strings.NewReader(text[start:]))
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return strings.TrimSpace(text[start:]), len(text), false
	}
	return string(raw), start + int(dec.InputOffset()), true
}

func followedBy(rest string, c byte) bool {
	rest = strings.TrimSpace(rest)
	return rest != "" && rest[0] == c
}

// ParseText is a convenience wrapper around a default TextParser.
func ParseText(text string) ports.Message {
	return NewTextParser().Parse(text)
}
