package services

import (
	"fmt"

	"github.com/crestline-labs/advisor-cli/internal/core/domain"
	"github.com/crestline-labs/advisor-cli/internal/core/ports/driven"
	"github.com/crestline-labs/advisor-cli/internal/core/ports/driving"
)

// Configuration keys recognised in the config store.
const (
	keyDataDir          = "data.dir"
	keyStoreBackend     = "data.store"
	keyMaxFeatures      = "index.max_features"
	keyNgramMin         = "index.ngram_min"
	keyNgramMax         = "index.ngram_max"
	keySearchTextFields = "index.search_text_fields"
	keyExtraStopWords   = "index.extra_stop_words"
	keyThreshold        = "search.threshold"
	keyTopN             = "search.top_n"
	keyLLMProvider      = "llm.provider"
	keyLLMModel         = "llm.model"
	keyLLMBaseURL       = "llm.base_url"
	keyLLMAPIKey        = "llm.api_key"
)

// LoadSettings builds application settings from the config store,
// applying defaults for anything unset. A nil store yields the defaults.
func LoadSettings(cfg driven.ConfigStore) domain.AppSettings {
	settings := domain.DefaultAppSettings()
	if cfg == nil {
		return settings
	}

	if v := cfg.GetString(keyDataDir); v != "" {
		settings.DataDir = v
	}
	if backend := domain.StoreBackend(cfg.GetString(keyStoreBackend)); backend.IsValid() {
		settings.Store = backend
	}

	if v := cfg.GetInt(keyMaxFeatures); v > 0 {
		settings.Index.MaxFeatures = v
	}
	if v := cfg.GetInt(keyNgramMin); v > 0 {
		settings.Index.NgramMin = v
	}
	if v := cfg.GetInt(keyNgramMax); v > 0 {
		settings.Index.NgramMax = v
	}
	if v := cfg.GetStringSlice(keySearchTextFields); len(v) > 0 {
		settings.Index.SearchTextFields = v
	}
	if v := cfg.GetStringSlice(keyExtraStopWords); len(v) > 0 {
		settings.Index.ExtraStopWords = v
	}

	if v := cfg.GetFloat(keyThreshold); v > 0 {
		settings.Search.Threshold = v
	}
	if v := cfg.GetInt(keyTopN); v > 0 {
		settings.Search.TopN = v
	}

	if provider := domain.AIProvider(cfg.GetString(keyLLMProvider)); provider.IsValid() {
		settings.LLM.Provider = provider
		settings.LLM.Model = cfg.GetString(keyLLMModel)
		settings.LLM.BaseURL = cfg.GetString(keyLLMBaseURL)
		settings.LLM.APIKey = cfg.GetString(keyLLMAPIKey)
	}

	return settings
}

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// SettingsService manages application settings on top of the config
// store.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	settings := LoadSettings(s.configStore)
	return &settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings.DataDir != "" {
		if err := s.configStore.Set(keyDataDir, settings.DataDir); err != nil {
			return fmt.Errorf("save data dir: %w", err)
		}
	}
	if err := s.configStore.Set(keyStoreBackend, settings.Store.String()); err != nil {
		return fmt.Errorf("save store backend: %w", err)
	}

	if err := s.configStore.Set(keyMaxFeatures, settings.Index.MaxFeatures); err != nil {
		return fmt.Errorf("save max features: %w", err)
	}
	if err := s.configStore.Set(keyNgramMin, settings.Index.NgramMin); err != nil {
		return fmt.Errorf("save ngram min: %w", err)
	}
	if err := s.configStore.Set(keyNgramMax, settings.Index.NgramMax); err != nil {
		return fmt.Errorf("save ngram max: %w", err)
	}

	if err := s.configStore.Set(keyThreshold, settings.Search.Threshold); err != nil {
		return fmt.Errorf("save threshold: %w", err)
	}
	if err := s.configStore.Set(keyTopN, settings.Search.TopN); err != nil {
		return fmt.Errorf("save top n: %w", err)
	}

	if err := s.configStore.Set(keyLLMProvider, settings.LLM.Provider.String()); err != nil {
		return fmt.Errorf("save llm provider: %w", err)
	}
	if err := s.configStore.Set(keyLLMModel, settings.LLM.Model); err != nil {
		return fmt.Errorf("save llm model: %w", err)
	}
	if err := s.configStore.Set(keyLLMBaseURL, settings.LLM.BaseURL); err != nil {
		return fmt.Errorf("save llm base_url: %w", err)
	}
	if settings.LLM.APIKey != "" {
		if err := s.configStore.Set(keyLLMAPIKey, settings.LLM.APIKey); err != nil {
			return fmt.Errorf("save llm api_key: %w", err)
		}
	}

	return nil
}

// SetStoreBackend updates the incident store backend.
func (s *SettingsService) SetStoreBackend(backend domain.StoreBackend) error {
	if !backend.IsValid() {
		return fmt.Errorf("invalid store backend: %s", backend)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Store = backend
	return s.Save(settings)
}

// SetLLMProvider configures the LLM provider for prose synthesis.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider

	if model != "" {
		settings.LLM.Model = model
	} else if defaultModel, ok := domain.DefaultLLMModels()[provider]; ok {
		settings.LLM.Model = defaultModel
	}

	if provider.IsLocal() {
		if settings.LLM.BaseURL == "" {
			settings.LLM.BaseURL = "http://localhost:11434"
		}
	} else {
		settings.LLM.BaseURL = ""
	}

	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// Validate checks if current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.Store.IsValid() {
		return fmt.Errorf("invalid store backend: %s", settings.Store)
	}
	if settings.Index.MaxFeatures <= 0 {
		return fmt.Errorf("index max features must be positive, got %d", settings.Index.MaxFeatures)
	}
	if settings.Index.NgramMin < 1 || settings.Index.NgramMax < settings.Index.NgramMin {
		return fmt.Errorf("invalid ngram range %d..%d", settings.Index.NgramMin, settings.Index.NgramMax)
	}
	if settings.Search.Threshold < 0 || settings.Search.Threshold > 1 {
		return fmt.Errorf("search threshold must be in [0,1], got %g", settings.Search.Threshold)
	}
	if settings.Search.TopN <= 0 {
		return fmt.Errorf("search top n must be positive, got %d", settings.Search.TopN)
	}

	return nil
}

// ValidateLLMConfig validates the current LLM configuration by pinging
// the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}
