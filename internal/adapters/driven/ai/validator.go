package ai

import (
	"github.com/crestline-labs/advisor-cli/internal/core/domain"
	"github.com/crestline-labs/advisor-cli/internal/core/ports/driven"
)

// Ensure ConfigValidator implements the interface.
var _ driven.AIConfigValidator = (*ConfigValidator)(nil)

// ConfigValidator validates LLM configurations by pinging the provider.
type ConfigValidator struct{}

// NewConfigValidator creates a new AI config validator.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// ValidateLLM validates an LLM configuration.
func (v *ConfigValidator) ValidateLLM(config *domain.LLMSettings) error {
	svc, err := CreateAndValidateLLMService(config)
	if err != nil {
		return err
	}
	if svc != nil {
		_ = svc.Close()
	}
	return nil
}
