package domain

// StoreBackend identifies the incident store implementation.
type StoreBackend string

// Available store backends.
const (
	// StoreBackendCSV is the append-only reports.csv/actions.csv pair.
	StoreBackendCSV StoreBackend = "csv"

	// StoreBackendSQLite is a single SQLite database file.
	StoreBackendSQLite StoreBackend = "sqlite"
)

// IsValid returns true if the backend is recognised.
func (b StoreBackend) IsValid() bool {
	switch b {
	case StoreBackendCSV, StoreBackendSQLite:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StoreBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StoreBackend) Description() string {
	switch b {
	case StoreBackendCSV:
		return "CSV files (append-only reports.csv + actions.csv)"
	case StoreBackendSQLite:
		return "SQLite (single database file)"
	default:
		return unknownDescription
	}
}

// AllStoreBackends returns all store backends in display order.
func AllStoreBackends() []StoreBackend {
	return []StoreBackend{StoreBackendCSV, StoreBackendSQLite}
}

// AIProvider identifies an LLM provider for prose synthesis.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderGemini is the Google Gemini cloud API.
	AIProviderGemini AIProvider = "gemini"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderGemini:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderGemini
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderGemini:
		return "Gemini (cloud)"
	default:
		return unknownDescription
	}
}

// AllAIProviders returns all AI providers in display order.
func AllAIProviders() []AIProvider {
	return []AIProvider{AIProviderOllama, AIProviderOpenAI, AIProviderGemini}
}

// DefaultLLMModels maps each provider to its default model.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama: "llama3.2",
		AIProviderOpenAI: "gpt-4o-mini",
		AIProviderGemini: "gemini-1.5-flash",
	}
}

// IndexSettings holds text index configuration.
type IndexSettings struct {
	// MaxFeatures caps the vocabulary size. Default 5000.
	MaxFeatures int

	// NgramMin and NgramMax bound the n-gram range. Default 1..2
	// (unigrams and bigrams).
	NgramMin int
	NgramMax int

	// SearchTextFields is the ordered list of incident fields composing
	// the derived search text.
	SearchTextFields []string

	// ExtraStopWords extends the built-in English stop-word set.
	ExtraStopWords []string
}

// SearchSettings holds similarity search configuration.
type SearchSettings struct {
	// Threshold is the minimum similarity for a result to be considered
	// relevant. Default 0.1.
	Threshold float64

	// TopN is the default number of results. Default 5.
	TopN int
}

// LLMSettings holds LLM provider configuration for prose synthesis.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI/Gemini).
	APIKey string
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// AppSettings holds all application settings.
type AppSettings struct {
	// DataDir is where the incident store lives.
	DataDir string

	// Store selects the incident store backend.
	Store StoreBackend

	// Index holds text index settings.
	Index IndexSettings

	// Search holds similarity search settings.
	Search SearchSettings

	// LLM holds prose synthesis settings. Unconfigured by default;
	// structured rendering is always available without it.
	LLM LLMSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// The LLM is left unconfigured: users opt in explicitly.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Store: StoreBackendCSV,
		Index: IndexSettings{
			MaxFeatures:      5000,
			NgramMin:         1,
			NgramMax:         2,
			SearchTextFields: DefaultSearchTextFields,
		},
		Search: SearchSettings{
			Threshold: 0.1,
			TopN:      5,
		},
		LLM: LLMSettings{},
	}
}
