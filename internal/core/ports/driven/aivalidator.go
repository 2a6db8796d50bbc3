package driven

import "github.com/crestline-labs/advisor-cli/internal/core/domain"

// AIConfigValidator validates LLM provider configurations.
// Implementations verify a configuration by testing connectivity to the
// underlying service.
type AIConfigValidator interface {
	// ValidateLLM validates an LLM configuration by pinging the provider.
	// Returns nil if the configuration is valid or not configured.
	ValidateLLM(config *domain.LLMSettings) error
}
