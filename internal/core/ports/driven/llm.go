package driven

import "context"

// LLMService provides language model operations for prose synthesis.
// This is an optional service - when nil, responses degrade gracefully to
// the deterministic structured rendering.
//
// Implementations may include:
//   - OpenAI (GPT-4o family)
//   - Google Gemini
//   - Ollama (local models)
type LLMService interface {
	// Generate produces text completion from a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// Synthesise rewrites a structured context block into prose that
	// answers the user's question. The context block is a deterministic
	// textual rendering of ranked incidents, actions and lessons.
	Synthesise(ctx context.Context, question, contextBlock string) (string, error)

	// ModelName returns the name of the LLM model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64

	// StopWords are sequences that stop generation when encountered.
	StopWords []string
}
