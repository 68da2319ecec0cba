// Package ai talks to the text generation backends and turns their replies
// into structured marketing data.
package ai

import (
	"context"
	"time"

	"adcraft/internal/common/config"
	"adcraft/internal/common/errors"
	commonhttp "adcraft/internal/common/http"
	"adcraft/internal/common/logger"
)

// GenerationRequest carries one prompt to a backend.
type GenerationRequest struct {
	Prompt       string
	SystemPrompt string
	Temperature  float64
	JSONMode     bool
}

// Provider is a single text generation backend.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req GenerationRequest) (string, error)
}

// NewProvider constructs the backend selected by cfg.Provider. Unknown
// providers and missing credentials are configuration errors.
func NewProvider(cfg config.AIConfig, log logger.Logger) (Provider, error) {
	timeout := cfg.AITimeout()
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	client := commonhttp.NewClient(timeout)

	switch cfg.Provider {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, errors.NewConfigurationInvalidError("openai provider requires an API key")
		}
		return newOpenAIProvider(cfg.OpenAIAPIKey, cfg.Model, client, log), nil
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			return nil, errors.NewConfigurationInvalidError("anthropic provider requires an API key")
		}
		return newAnthropicProvider(cfg.AnthropicAPIKey, cfg.Model, client, log), nil
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, errors.NewConfigurationInvalidError("gemini provider requires an API key")
		}
		return newGeminiProvider(cfg.GeminiAPIKey, cfg.Model, client, log), nil
	case "ollama":
		return newOllamaProvider(cfg.OllamaBaseURL, cfg.Model, client, log), nil
	case "groq":
		if cfg.GroqAPIKey == "" {
			return nil, errors.NewConfigurationInvalidError("groq provider requires an API key")
		}
		return newGroqProvider(cfg.GroqAPIKey, cfg.Model, client, log), nil
	default:
		return nil, errors.NewConfigurationInvalidError("unknown ai provider: " + cfg.Provider)
	}
}
