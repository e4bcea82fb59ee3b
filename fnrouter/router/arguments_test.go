package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeArguments(t *testing.T) {
	args, err := DecodeArguments("{\n  \"draft\": \"turtles\"\n}")
	require.NoError(t, err)
	assert.Equal(t, Arguments{"draft": "turtles"}, args)

	args, err = DecodeArguments(` {} `)
	require.NoError(t, err)
	assert.NotNil(t, args)
	assert.Empty(t, args)

	for _, raw := range []string{"", "null", "[1]", `"x"`, "{", "{}garbage"} {
		_, err := DecodeArguments(raw)
		assert.Error(t, err, "input %q", raw)
	}
}

func TestArguments_Accessors(t *testing.T) {
	args, err := DecodeArguments(`{"name":"turtle","count":3,"ratio":1.5,"ok":true}`)
	require.NoError(t, err)

	s, err := args.String("name")
	require.NoError(t, err)
	assert.Equal(t, "turtle", s)

	n, err := args.Int("count")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	b, err := args.Bool("ok")
	require.NoError(t, err)
	assert.True(t, b)

	var argErr *ArgumentError

	_, err = args.String("count")
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "count", argErr.Key)

	_, err = args.Int("ratio")
	assert.ErrorContains(t, err, "expected integer")

	huge, err := DecodeArguments(`{"big":1e300,"small":-1e300,"edge":9223372036854775808}`)
	require.NoError(t, err)
	for _, key := range []string{"big", "small", "edge"} {
		_, err = huge.Int(key)
		require.ErrorAs(t, err, &argErr, key)
		assert.Contains(t, argErr.Reason, "out of range")
	}

	_, err = args.Bool("missing")
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "missing", argErr.Reason)
}

func TestArguments_Decode(t *testing.T) {
	args, err := DecodeArguments(`{"notes":"tighten intro","priority":2}`)
	require.NoError(t, err)

	var typed struct {
		Notes    string `json:"notes"`
		Priority int    `json:"priority"`
	}
	require.NoError(t, args.Decode(&typed))
	assert.Equal(t, "tighten intro", typed.Notes)
	assert.Equal(t, 2, typed.Priority)

	var wrong struct {
		Notes int `json:"notes"`
	}
	assert.Error(t, args.Decode(&wrong))
}
