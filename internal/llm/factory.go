package llm

import (
	"context"
	"fmt"
)

// NewProvider creates a Provider from configuration.
// When sink is non-nil the provider is wrapped with request logging.
//
// A configuration or credential failure here is permanent for the process:
// callers report it once and run with generation disabled.
func NewProvider(ctx context.Context, cfg Config, sink RequestSink) (Provider, error) {
	if err := cfg.ResolveCredentials(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown model provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if sink != nil {
		return WithLogging(base, sink), nil
	}
	return base, nil
}

// NewProviderFromEnv builds a Provider from environment configuration.
func NewProviderFromEnv(ctx context.Context, sink RequestSink) (Provider, error) {
	return NewProvider(ctx, ConfigFromEnv(), sink)
}
