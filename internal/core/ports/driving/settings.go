package driving

import "github.com/crestline-labs/advisor-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetStoreBackend updates the incident store backend.
	SetStoreBackend(backend domain.StoreBackend) error

	// SetLLMProvider configures the LLM provider for prose synthesis.
	SetLLMProvider(provider domain.AIProvider, model, apiKey string) error

	// Validate checks if current settings are usable.
	Validate() error

	// ValidateLLMConfig validates the current LLM configuration by
	// pinging the provider.
	ValidateLLMConfig() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
