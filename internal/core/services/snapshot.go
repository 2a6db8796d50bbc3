package services

import (
	"github.com/crestline-labs/advisor-cli/internal/core/domain"
	"github.com/crestline-labs/advisor-cli/internal/logger"
)

// Snapshot is an immutable corpus + fitted index pair. Readers capture a
// snapshot at the start of a request; rebuilds replace the whole value
// behind an atomic reference, never edit one in place.
type Snapshot struct {
	// Incidents is the full ordered corpus, each with SearchText derived.
	Incidents []domain.Incident

	// Index is the TF-IDF model fit over the corpus search texts.
	Index *Index
}

// BuildSnapshot derives search texts for the incidents and fits the
// index over them. The incidents slice is owned by the snapshot after
// this call.
func BuildSnapshot(incidents []domain.Incident, settings domain.IndexSettings) *Snapshot {
	fields := settings.SearchTextFields
	if len(fields) == 0 {
		fields = domain.DefaultSearchTextFields
	}

	searchTexts := make([]string, len(incidents))
	for i := range incidents {
		incidents[i].SearchText = domain.ComposeSearchText(incidents[i], fields)
		searchTexts[i] = incidents[i].SearchText
	}

	logger.Section("Snapshot Build")
	logger.Info("Corpus: %d incidents", len(incidents))

	return &Snapshot{
		Incidents: incidents,
		Index:     FitIndex(searchTexts, settings),
	}
}

// Empty reports whether the snapshot holds no incidents.
func (s *Snapshot) Empty() bool {
	return s == nil || len(s.Incidents) == 0
}
