package router

import (
	"context"
	"testing"

	ports "github.com/ZanzyTHEbar/fnrouter/fnrouter/router/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMessage(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want ports.Message
	}{
		{
			name: "top-level function call",
			raw:  `{"content":"","function_call":{"name":"accept","arguments":"{\"draft\": \"turtles\"}"}}`,
			want: ports.FunctionCallMessage{Call: ports.FunctionCall{Name: "accept", Arguments: `{"draft": "turtles"}`}},
		},
		{
			name: "additional kwargs",
			raw:  `{"content":"ok","additional_kwargs":{"function_call":{"name":"revise","arguments":"{\"notes\":\"tighten intro\"}"}}}`,
			want: ports.FunctionCallMessage{Content: "ok", Call: ports.FunctionCall{Name: "revise", Arguments: `{"notes":"tighten intro"}`}},
		},
		{
			name: "tool calls",
			raw:  `{"content":null,"tool_calls":[{"id":"call_1","type":"function","function":{"name":"accept","arguments":"{}"}}]}`,
			want: ports.FunctionCallMessage{Call: ports.FunctionCall{Name: "accept", Arguments: `{}`}},
		},
		{
			name: "inline object arguments",
			raw:  `{"function_call":{"name":"revise","arguments":{"notes":"tighten intro"}}}`,
			want: ports.FunctionCallMessage{Call: ports.FunctionCall{Name: "revise", Arguments: `{"notes":"tighten intro"}`}},
		},
		{
			name: "plain",
			raw:  `{"content":"Nothing to do."}`,
			want: ports.PlainMessage{Content: "Nothing to do."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMessage([]byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseMessage([]byte(`not json`))
	assert.Error(t, err)
}

func TestParseMessage_RoutesThroughRouter(t *testing.T) {
	msg, err := ParseMessage([]byte(`{"function_call":{"name":"revise","arguments":{"notes":"tighten intro"}}}`))
	require.NoError(t, err)

	got, err := newEditorialRouter().Route(t.Context(), msg)
	require.NoError(t, err)
	assert.Equal(t, "Revised draft: tighten intro!", got)

	// Non-object arguments survive decoding so the router can reject them
	msg, err = ParseMessage([]byte(`{"function_call":{"name":"accept","arguments":["turtles"]}}`))
	require.NoError(t, err)
	_, err = newEditorialRouter().Route(t.Context(), msg)
	assert.ErrorIs(t, err, ErrMalformedArguments)
}

func TestParseText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantName string
		wantArgs string
	}{
		{
			name:     "json object",
			text:     `I'll accept it. {"name": "accept", "arguments": {"draft": "turtles"}}`,
			wantName: "accept",
			wantArgs: `{"draft": "turtles"}`,
		},
		{
			name:     "json array",
			text:     `[{"name":"revise","arguments":{"notes":"tighten intro"}}]`,
			wantName: "revise",
			wantArgs: `{"notes":"tighten intro"}`,
		},
		{
			name:     "nested object",
			text:     `{"name": "save", "arguments": {"doc": {"title": "x", "tags": ["a"]}}}`,
			wantName: "save",
			wantArgs: `{"doc": {"title": "x", "tags": ["a"]}}`,
		},
		{
			name:     "nested call syntax",
			text:     `Calling save({"doc": {"title": "x"}}) now.`,
			wantName: "save",
			wantArgs: `{"doc": {"title": "x"}}`,
		},
		{
			name:     "call syntax",
			text:     `accept({"draft": "turtles"})`,
			wantName: "accept",
			wantArgs: `{"draft": "turtles"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := ParseText(tt.text)
			fc, ok := msg.(ports.FunctionCallMessage)
			require.True(t, ok, "expected a function call, got %T", msg)
			assert.Equal(t, tt.wantName, fc.Call.Name)
			assert.JSONEq(t, tt.wantArgs, fc.Call.Arguments)
			assert.Equal(t, tt.text, fc.Text())
		})
	}

	// Braces in prose are not mistaken for a call
	msg := ParseText(`Try rewrite({draft}) before sending.`)
	assert.IsType(t, ports.PlainMessage{}, msg)

	msg = ParseText("The draft looks fine to me.")
	assert.Equal(t, ports.PlainMessage{Content: "The draft looks fine to me."}, msg)
}

func TestParseText_NestedArgumentsRoute(t *testing.T) {
	var saved map[string]any
	r := New(nil, Registry{
		"save": HandlerFunc(func(_ context.Context, args Arguments) (any, error) {
			saved = args
			return "saved", nil
		}),
	})

	got, err := r.Route(t.Context(), ParseText(`{"name": "save", "arguments": {"doc": {"title": "x"}}}`))
	require.NoError(t, err)
	assert.Equal(t, "saved", got)
	assert.Equal(t, map[string]any{"doc": map[string]any{"title": "x"}}, saved)

	// A truncated object is kept so the router can report it
	_, err = r.Route(t.Context(), ParseText(`{"name": "save", "arguments": {"doc": `))
	assert.ErrorIs(t, err, ErrMalformedArguments)
}
