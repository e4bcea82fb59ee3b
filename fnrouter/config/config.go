package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	internal "github.com/ZanzyTHEbar/fnrouter/fnrouter"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	Router RouterConfig `mapstructure:"router"`
	Chain  ChainConfig  `mapstructure:"chain"`
	LLM    LLMConfig    `mapstructure:"llm"`
}

// FunctionConfig declares one function in config. Parameters is a JSON Schema
// object. Viper lowercases map keys, so property names should be lowercase.
type FunctionConfig struct {
	Name        string         `mapstructure:"name"`
	Description string         `mapstructure:"description"`
	Parameters  map[string]any `mapstructure:"parameters"`
}

// RouterConfig stores router behavior and the declared functions.
type RouterConfig struct {
	Passthrough string           `mapstructure:"passthrough"` // "identity" | "reject"
	Functions   []FunctionConfig `mapstructure:"functions"`
}

// ChainConfig stores settings for the model → router chain.
type ChainConfig struct {
	System         string `mapstructure:"system"`          // System prompt
	FunctionChoice string `mapstructure:"function_choice"` // "auto" | "none" | function name

	// Cache settings
	CacheEnabled    bool `mapstructure:"cache_enabled"`     // Enable completion caching
	CacheCapacity   int  `mapstructure:"cache_capacity"`    // LRU cache capacity
	CacheTTLSeconds int  `mapstructure:"cache_ttl_seconds"` // Cache entry TTL

	// Rate limiting
	RateLimitEnabled    bool          `mapstructure:"rate_limit_enabled"`     // Enable rate limiting
	RateLimitCapacity   int           `mapstructure:"rate_limit_capacity"`    // Token bucket capacity
	RateLimitRefillRate time.Duration `mapstructure:"rate_limit_refill_rate"` // Refill rate

	// Telemetry
	EnableTracing bool `mapstructure:"enable_tracing"` // Enable structured logging/tracing
}

// LLMConfig stores chat model configurations.
type LLMConfig struct {
	Provider       string  `mapstructure:"provider"`        // "openai" | "gemini" | "scripted"
	Model          string  `mapstructure:"model"`           // Model name
	APIKey         string  `mapstructure:"api_key"`         // Falls back to the provider's env var
	BaseURL        string  `mapstructure:"base_url"`        // Optional OpenAI-compatible endpoint
	MaxNewTokens   int     `mapstructure:"max_new_tokens"`  // Max tokens to generate
	Temperature    float32 `mapstructure:"temperature"`     // Sampling temperature
	TopP           float32 `mapstructure:"top_p"`           // Nucleus sampling
	TextDirectives bool    `mapstructure:"text_directives"` // Parse function calls from reply text
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("..")
		v.AddConfigPath(filepath.Join("etc", internal.DefaultAppName))
		v.AddConfigPath(internal.DefaultConfigPath)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	setDefaults(v)

	v.AutomaticEnv()
	// Replace dots with underscores in env var names e.g. llm.api_key becomes LLM_API_KEY
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found; defaults and environment apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if _, err := cfg.Router.Declarations(); err != nil {
		return nil, fmt.Errorf("invalid router functions: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Router defaults
	v.SetDefault("router.passthrough", internal.DefaultPassthrough)

	// Chain defaults
	v.SetDefault("chain.system", "")
	v.SetDefault("chain.function_choice", "auto")
	v.SetDefault("chain.cache_enabled", false)
	v.SetDefault("chain.cache_capacity", 256)
	v.SetDefault("chain.cache_ttl_seconds", 3600) // 1 hour
	v.SetDefault("chain.rate_limit_enabled", false)
	v.SetDefault("chain.rate_limit_capacity", 10)
	v.SetDefault("chain.rate_limit_refill_rate", "1s")
	v.SetDefault("chain.enable_tracing", true)

	// LLM defaults
	v.SetDefault("llm.provider", internal.DefaultLLMProvider)
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.max_new_tokens", 512)
	v.SetDefault("llm.temperature", 0.0)
	v.SetDefault("llm.top_p", 1.0)
	v.SetDefault("llm.text_directives", false)
}
