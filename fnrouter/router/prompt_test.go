package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromptBuilder_Build(t *testing.T) {
	decls := editorialDeclarations()
	in := NewPromptBuilder(false).Build(" Be brief.\r\n", "Something about turtles?\r\n", decls, map[string]string{"k": "v"})

	assert.Equal(t, "Be brief.", in.System)
	if assert.Len(t, in.Messages, 1) {
		assert.Equal(t, "user", in.Messages[0].Role)
		assert.Equal(t, "Something about turtles?", in.Messages[0].Content)
	}
	assert.Equal(t, decls, in.Functions)
	assert.Equal(t, "v", in.Meta["k"])
}

func TestPromptBuilder_TextDirectives(t *testing.T) {
	b := NewPromptBuilder(true)
	in := b.Build("Be brief.", "hello", editorialDeclarations(), nil)

	assert.Contains(t, in.System, "Be brief.")
	assert.Contains(t, in.System, "- revise: Sends the draft for revision.")
	assert.Contains(t, in.System, "- accept: Accepts the draft.")
	assert.Contains(t, in.System, `"required":["draft"]`)
	assert.Contains(t, in.System, `{"name": "<function name>", "arguments": {<arguments>}}`)

	// Nothing to advertise without functions
	in = b.Build("Be brief.", "hello", nil, nil)
	assert.Equal(t, "Be brief.", in.System)
}
