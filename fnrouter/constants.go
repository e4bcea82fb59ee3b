package fnrouter

import (
	"os"
	"path/filepath"
)

const (
	DefaultAppName = "fnrouter"

	// DefaultPassthrough is the policy applied to replies that carry no function call.
	DefaultPassthrough = "identity"

	DefaultLLMProvider = "scripted"
	DefaultOpenAIModel = "gpt-4o-mini"
	DefaultGeminiModel = "gemini-2.5-flash"
)

var (
	DefaultConfigPath = filepath.Join(userConfigDir(), DefaultAppName)
)

func userConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config")
	}
	return "."
}
