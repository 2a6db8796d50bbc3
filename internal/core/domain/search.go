package domain

// SearchOptions configures a similarity search.
type SearchOptions struct {
	// TopN is the maximum number of results. Zero means the configured
	// default (5).
	TopN int

	// Filters restricts results to incidents whose named field contains
	// the value as a case-insensitive substring. Empty values impose no
	// constraint; unknown field names are ignored.
	Filters map[string]string
}

// SearchResult is an incident enriched with a similarity score.
// Results are ephemeral: produced per query, never persisted.
type SearchResult struct {
	// Incident is the matched incident.
	Incident Incident

	// Similarity is the cosine similarity to the query, in [0,1].
	Similarity float64
}

// RecommendedAction is a corrective action flattened out of a ranked
// incident, annotated with its provenance. Ordering follows the rank
// order of the owning incidents, so a consumer deduplicating by action
// text keeps the occurrence from the best-matching incident.
type RecommendedAction struct {
	// Action is the underlying corrective action.
	Action Action

	// CaseID identifies the owning incident.
	CaseID string

	// Title is the owning incident's title.
	Title string

	// Similarity is the owning incident's similarity score.
	Similarity float64
}

// Recommendations bundles ranked incidents with the flattened actions
// drawn from them. The engine does not cap or deduplicate the action
// list; that is a presentation concern.
type Recommendations struct {
	Incidents []SearchResult
	Actions   []RecommendedAction
}

// Lesson is a lessons-to-prevent entry extracted from a ranked incident.
type Lesson struct {
	Text       string
	CaseID     string
	Title      string
	RiskLevel  string
	Similarity float64
}

// GoodPractice is a what-went-well entry extracted from a ranked incident.
type GoodPractice struct {
	Text       string
	CaseID     string
	Title      string
	Similarity float64
}

// TrainingSuggestions bundles lessons and good practices extracted from
// ranked incidents, both in rank order.
type TrainingSuggestions struct {
	Lessons       []Lesson
	GoodPractices []GoodPractice
}
