package driving

import (
	"context"

	"github.com/crestline-labs/advisor-cli/internal/core/domain"
)

// AdvisorService is the query surface exposed to the presentation layer.
//
// All query-path operations read an immutable corpus/index snapshot and
// are safe to call concurrently. Ingest is the one mutating operation;
// the index stays stale until Rebuild is called.
type AdvisorService interface {
	// Classify maps a raw user message to a request intent.
	Classify(message string) domain.Intent

	// Search returns ranked incidents similar to the query.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)

	// Recommendations returns ranked incidents plus their flattened
	// corrective actions with provenance.
	Recommendations(ctx context.Context, query string, topN int) (domain.Recommendations, error)

	// TrainingSuggestions returns lessons and good practices extracted
	// from ranked incidents.
	TrainingSuggestions(ctx context.Context, query string, topN int) (domain.TrainingSuggestions, error)

	// Statistics returns an aggregate breakdown of the corpus.
	Statistics(ctx context.Context) (domain.StatsReport, error)

	// Categories returns the sorted unique non-empty category values.
	Categories(ctx context.Context) []string

	// RiskLevels returns the sorted unique non-empty risk level values.
	RiskLevels(ctx context.Context) []string

	// Locations returns the sorted unique non-empty location values.
	Locations(ctx context.Context) []string

	// Ingest appends a new incident and its actions to the store and
	// returns the generated case id. The in-memory index is stale until
	// Rebuild is called.
	Ingest(ctx context.Context, report domain.IncidentDraft, actions []domain.ActionDraft) (string, error)

	// Rebuild reloads the store and atomically replaces the corpus/index
	// snapshot. Readers see either the old or the new snapshot, never a
	// partially built one.
	Rebuild(ctx context.Context) error
}

// Synthesiser turns structured advisor results into prose via an optional
// generative collaborator. Absence or failure of the collaborator must not
// block the structured result.
type Synthesiser interface {
	// Synthesise renders a prose answer for the question from the given
	// deterministic context block. Returns domain.ErrLLMUnavailable when
	// no provider is configured.
	Synthesise(ctx context.Context, question, contextBlock string) (string, error)
}
