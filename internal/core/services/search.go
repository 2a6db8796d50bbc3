package services

import (
	"sort"
	"strings"

	"github.com/crestline-labs/advisor-cli/internal/core/domain"
	"github.com/crestline-labs/advisor-cli/internal/logger"
)

// searchSnapshot ranks the snapshot's incidents against the query.
//
// Pipeline: vectorise the query through the fitted index, score every
// incident by cosine similarity, drop incidents failing a filter, drop
// scores strictly below the threshold, stable-sort by similarity
// descending (ties keep corpus order), truncate to topN.
//
// The result is deterministic for a fixed snapshot and never mutates it.
// Nothing clearing the threshold yields an empty slice, not an error.
func searchSnapshot(
	snap *Snapshot, query string, opts domain.SearchOptions, settings domain.SearchSettings,
) []domain.SearchResult {
	logger.Section("Similarity Search")
	logger.Debug("Query: %q", query)

	if snap.Empty() {
		logger.Debug("Empty corpus, returning no results")
		return []domain.SearchResult{}
	}

	topN := opts.TopN
	if topN <= 0 {
		topN = settings.TopN
	}
	if topN <= 0 {
		topN = 5
	}
	threshold := settings.Threshold

	sims := snap.Index.Similarities(snap.Index.Vectorise(query))

	results := make([]domain.SearchResult, 0, topN)
	for i := range snap.Incidents {
		if !matchesFilters(snap.Incidents[i], opts.Filters) {
			continue
		}
		if sims[i] < threshold {
			continue
		}
		results = append(results, domain.SearchResult{
			Incident:   snap.Incidents[i],
			Similarity: sims[i],
		})
	}

	// Stable keeps corpus order for equal scores, so results are
	// deterministic across runs.
	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Similarity > results[b].Similarity
	})

	if len(results) > topN {
		results = results[:topN]
	}

	logger.Info("Search results: %d (threshold %.2f, top %d)", len(results), threshold, topN)
	return results
}

// matchesFilters applies the case-insensitive substring filters. An
// empty filter value imposes no constraint, and a filter naming a field
// absent from the schema is a no-op so that malformed natural-language
// derived filters cannot break the query path.
func matchesFilters(incident domain.Incident, filters map[string]string) bool {
	for field, want := range filters {
		if want == "" {
			continue
		}
		val, ok := incident.Field(field)
		if !ok {
			logger.Debug("Unknown filter field %q, ignoring", field)
			continue
		}
		if !strings.Contains(strings.ToLower(val), strings.ToLower(want)) {
			return false
		}
	}
	return true
}
