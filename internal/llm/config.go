package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all model provider configuration.
type Config struct {
	// Provider selects which model provider to use.
	// Values: "gemini", "openai", "anthropic", "mock"
	Provider string

	Gemini    GeminiConfig
	OpenAI    OpenAIConfig
	Anthropic AnthropicConfig

	// Timeout is the maximum duration for a single model request.
	// Default: 120s. Exam papers are long generations.
	Timeout time.Duration
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	// KeyFile is a local file holding the API key, read once at startup.
	// Used when APIKey is empty. Default: "api_key.txt".
	KeyFile string
	Model   string // Default: "gemini-pro"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for OpenAI-compatible APIs.
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// DefaultConfig returns a Config with sensible defaults.
// Gemini is the default provider; the tool was built around it.
func DefaultConfig() Config {
	return Config{
		Provider: "gemini",
		Gemini: GeminiConfig{
			KeyFile: "api_key.txt",
			Model:   "gemini-pro",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		Timeout: 120 * time.Second,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values. The Gemini key may also come from a local
// key file; ResolveCredentials handles that.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("PAPERGEN_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	if k := os.Getenv("PAPERGEN_GEMINI_API_KEY"); k != "" {
		cfg.Gemini.APIKey = k
	} else if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Gemini.APIKey = k
	}
	if f := os.Getenv("PAPERGEN_GEMINI_KEY_FILE"); f != "" {
		cfg.Gemini.KeyFile = f
	}
	if m := os.Getenv("PAPERGEN_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}

	if k := os.Getenv("PAPERGEN_OPENAI_API_KEY"); k != "" {
		cfg.OpenAI.APIKey = k
	} else if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.OpenAI.APIKey = k
	}
	if m := os.Getenv("PAPERGEN_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("PAPERGEN_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	if k := os.Getenv("PAPERGEN_ANTHROPIC_API_KEY"); k != "" {
		cfg.Anthropic.APIKey = k
	} else if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Anthropic.APIKey = k
	}
	if m := os.Getenv("PAPERGEN_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}

	return cfg
}

// ResolveCredentials fills in the Gemini API key from the local key file
// when no key was set through the environment. A missing or unreadable
// key file is a permanent condition for the process: generation stays
// disabled until the operator fixes the credential.
func (c *Config) ResolveCredentials() error {
	if c.Provider != "gemini" || c.Gemini.APIKey != "" {
		return nil
	}
	if c.Gemini.KeyFile == "" {
		return fmt.Errorf("no Gemini API key configured")
	}
	data, err := os.ReadFile(c.Gemini.KeyFile)
	if err != nil {
		return fmt.Errorf("read API key file %s: %w", c.Gemini.KeyFile, err)
	}
	key := strings.TrimSpace(string(data))
	if key == "" {
		return fmt.Errorf("API key file %s is empty", c.Gemini.KeyFile)
	}
	c.Gemini.APIKey = key
	return nil
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("PAPERGEN_GEMINI_API_KEY or %s is required for the gemini provider", c.Gemini.KeyFile)
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("PAPERGEN_OPENAI_API_KEY is required for the openai provider")
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("PAPERGEN_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown model provider: %q", c.Provider)
	}
	return nil
}
