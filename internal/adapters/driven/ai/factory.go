// Package ai provides factory functions for creating LLM service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	geminillm "github.com/crestline-labs/advisor-cli/internal/adapters/driven/llm/gemini"
	ollamallm "github.com/crestline-labs/advisor-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/crestline-labs/advisor-cli/internal/adapters/driven/llm/openai"
	"github.com/crestline-labs/advisor-cli/internal/core/domain"
	"github.com/crestline-labs/advisor-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateLLMService creates an LLM service from settings.
// Returns (nil, nil) when the provider is not configured: prose synthesis
// is optional and the caller falls back to structured rendering.
func CreateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOpenAI:
		return openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})
	case domain.AIProviderGemini:
		return geminillm.NewLLMService(geminillm.LLMConfig{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})
	case domain.AIProviderOllama:
		return ollamallm.NewLLMService(ollamallm.LLMConfig{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", settings.Provider)
	}
}

// CreateAndValidateLLMService creates an LLM service and validates connectivity.
// Returns the service if successful, or an error with guidance.
func CreateAndValidateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	svc, err := CreateLLMService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'advisor config' to fix", domain.ErrLLMUnavailable, err)
	}
	if svc == nil {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		_ = svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'advisor config' to fix",
			domain.ErrLLMUnavailable, err)
	}

	return svc, nil
}
