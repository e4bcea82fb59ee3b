package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	internal "github.com/ZanzyTHEbar/fnrouter/fnrouter"
	ports "github.com/ZanzyTHEbar/fnrouter/fnrouter/router/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// ConfigTestSuite tests the config package functionality
type ConfigTestSuite struct {
	suite.Suite
	tempDir string
	origDir string
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) SetupTest() {
	var err error
	suite.origDir, err = os.Getwd()
	require.NoError(suite.T(), err)

	suite.tempDir = suite.T().TempDir()

	// Run from an empty directory so no stray config.yaml is picked up
	err = os.Chdir(suite.tempDir)
	require.NoError(suite.T(), err)
}

func (suite *ConfigTestSuite) TearDownTest() {
	if suite.origDir != "" {
		os.Chdir(suite.origDir)
	}
}

func (suite *ConfigTestSuite) writeConfig(name, content string) string {
	path := filepath.Join(suite.tempDir, name)
	require.NoError(suite.T(), os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (suite *ConfigTestSuite) TestLoadConfigWithDefaults() {
	cfg, err := LoadConfig("")

	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), cfg)

	assert.Equal(suite.T(), internal.DefaultPassthrough, cfg.Router.Passthrough)
	assert.Empty(suite.T(), cfg.Router.Functions)

	assert.Equal(suite.T(), "auto", cfg.Chain.FunctionChoice)
	assert.False(suite.T(), cfg.Chain.CacheEnabled)
	assert.Equal(suite.T(), 256, cfg.Chain.CacheCapacity)
	assert.Equal(suite.T(), 3600, cfg.Chain.CacheTTLSeconds)
	assert.Equal(suite.T(), time.Second, cfg.Chain.RateLimitRefillRate)
	assert.True(suite.T(), cfg.Chain.EnableTracing)

	assert.Equal(suite.T(), internal.DefaultLLMProvider, cfg.LLM.Provider)
	assert.Equal(suite.T(), 512, cfg.LLM.MaxNewTokens)
	assert.False(suite.T(), cfg.LLM.TextDirectives)
}

func (suite *ConfigTestSuite) TestLoadConfigWithFile() {
	configFile := suite.writeConfig("config.yaml", `
router:
  passthrough: reject
  functions:
    - name: revise
      description: Sends the draft for revision.
      parameters:
        type: object
        properties:
          notes:
            type: string
            description: The editor's notes to guide the revision.
    - name: accept
      description: Accepts the draft.
      parameters:
        type: object
        properties:
          draft:
            type: string
            description: The draft to accept.
        required: [draft]
chain:
  system: "You are an editor."
  cache_enabled: true
  rate_limit_refill_rate: 250ms
llm:
  provider: openai
  model: gpt-4o-mini
  temperature: 0.2
  text_directives: true
`)

	cfg, err := LoadConfig(configFile)
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), "reject", cfg.Router.Passthrough)
	assert.Equal(suite.T(), "You are an editor.", cfg.Chain.System)
	assert.True(suite.T(), cfg.Chain.CacheEnabled)
	assert.Equal(suite.T(), 250*time.Millisecond, cfg.Chain.RateLimitRefillRate)
	assert.Equal(suite.T(), "openai", cfg.LLM.Provider)
	assert.Equal(suite.T(), "gpt-4o-mini", cfg.LLM.Model)
	assert.InDelta(suite.T(), 0.2, cfg.LLM.Temperature, 1e-6)
	assert.True(suite.T(), cfg.LLM.TextDirectives)

	decls, err := cfg.Router.Declarations()
	require.NoError(suite.T(), err)
	require.Len(suite.T(), decls, 2)

	// Order is preserved
	assert.Equal(suite.T(), "revise", decls[0].Name)
	assert.Equal(suite.T(), "accept", decls[1].Name)
	assert.Equal(suite.T(), "Accepts the draft.", decls[1].Description)
	assert.Equal(suite.T(), "object", decls[1].Parameters.Type)
	require.Contains(suite.T(), decls[1].Parameters.Properties, "draft")
	assert.Equal(suite.T(), "string", decls[1].Parameters.Properties["draft"].Type)
	assert.Equal(suite.T(), []string{"draft"}, decls[1].Parameters.Required)
}

func (suite *ConfigTestSuite) TestLoadConfigFromEnvironment() {
	suite.T().Setenv("LLM_PROVIDER", "gemini")
	suite.T().Setenv("ROUTER_PASSTHROUGH", "reject")

	cfg, err := LoadConfig("")
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), "gemini", cfg.LLM.Provider)
	assert.Equal(suite.T(), "reject", cfg.Router.Passthrough)
}

func (suite *ConfigTestSuite) TestLoadConfigInvalidFile() {
	// An explicit path that does not exist is an error
	cfg, err := LoadConfig("/nonexistent/path/config.yaml")

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), cfg)
}

func (suite *ConfigTestSuite) TestLoadConfigMalformedFile() {
	configFile := suite.writeConfig("malformed.yaml", `
router:
  passthrough: identity
  functions: [unclosed bracket
`)

	cfg, err := LoadConfig(configFile)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), cfg)
}

func (suite *ConfigTestSuite) TestLoadConfigRejectsDuplicateFunctions() {
	configFile := suite.writeConfig("dupes.yaml", `
router:
  functions:
    - name: accept
    - name: accept
`)

	cfg, err := LoadConfig(configFile)

	require.Error(suite.T(), err)
	assert.Nil(suite.T(), cfg)
	assert.Contains(suite.T(), err.Error(), "declared more than once")
}

func TestValidateDeclarations(t *testing.T) {
	valid := ports.FunctionDeclaration{
		Name:        "accept",
		Description: "Accepts the draft.",
		Parameters: ports.ObjectSchema(map[string]*ports.Schema{
			"draft": {Type: "string", Description: "The draft to accept."},
		}),
	}

	tests := []struct {
		name    string
		decls   []ports.FunctionDeclaration
		wantErr string
	}{
		{name: "valid", decls: []ports.FunctionDeclaration{valid}},
		{name: "no parameters", decls: []ports.FunctionDeclaration{{Name: "ping"}}},
		{name: "empty", decls: nil},
		{
			name:    "empty name",
			decls:   []ports.FunctionDeclaration{{Description: "nameless"}},
			wantErr: "name cannot be empty",
		},
		{
			name:    "duplicate",
			decls:   []ports.FunctionDeclaration{valid, valid},
			wantErr: "declared more than once",
		},
		{
			name: "non-object parameters",
			decls: []ports.FunctionDeclaration{{
				Name:       "bad",
				Parameters: ports.Schema{Type: "string"},
			}},
			wantErr: "must be an object schema",
		},
		{
			name: "unknown property type",
			decls: []ports.FunctionDeclaration{{
				Name: "bad",
				Parameters: ports.ObjectSchema(map[string]*ports.Schema{
					"draft": {Type: "text"},
				}),
			}},
			wantErr: "invalid parameter schema",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDeclarations(tt.decls)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// BenchmarkLoadConfig benchmarks config loading performance
func BenchmarkLoadConfig(b *testing.B) {
	for b.Loop() {
		cfg, err := LoadConfig("")
		if err != nil {
			b.Fatal(err)
		}
		_ = cfg
	}
}
