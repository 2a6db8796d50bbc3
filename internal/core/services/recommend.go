package services

import (
	"strings"

	"github.com/crestline-labs/advisor-cli/internal/core/domain"
	"github.com/crestline-labs/advisor-cli/internal/logger"
)

// aggregateRecommendations flattens the corrective actions out of ranked
// results, annotating each with its owning incident's provenance. The
// action list is neither capped nor deduplicated here; rank-ordered
// provenance lets a consumer dedup deterministically with the occurrence
// from the higher-ranked incident winning.
func aggregateRecommendations(ranked []domain.SearchResult) domain.Recommendations {
	var actions []domain.RecommendedAction
	for _, res := range ranked {
		for _, act := range res.Incident.Actions {
			actions = append(actions, domain.RecommendedAction{
				Action:     act,
				CaseID:     res.Incident.CaseID,
				Title:      res.Incident.Title,
				Similarity: res.Similarity,
			})
		}
	}

	logger.Debug("Aggregated %d actions from %d incidents", len(actions), len(ranked))

	return domain.Recommendations{
		Incidents: ranked,
		Actions:   actions,
	}
}

// aggregateTraining extracts lessons-to-prevent and what-went-well
// entries from ranked results, in rank order, skipping incidents whose
// relevant field is empty or a null marker.
func aggregateTraining(ranked []domain.SearchResult) domain.TrainingSuggestions {
	var suggestions domain.TrainingSuggestions

	for _, res := range ranked {
		inc := res.Incident

		if !domain.IsNullText(inc.LessonsToPrevent) {
			suggestions.Lessons = append(suggestions.Lessons, domain.Lesson{
				Text:       strings.TrimSpace(inc.LessonsToPrevent),
				CaseID:     inc.CaseID,
				Title:      inc.Title,
				RiskLevel:  inc.RiskLevel,
				Similarity: res.Similarity,
			})
		}

		if !domain.IsNullText(inc.WhatWentWell) {
			suggestions.GoodPractices = append(suggestions.GoodPractices, domain.GoodPractice{
				Text:       strings.TrimSpace(inc.WhatWentWell),
				CaseID:     inc.CaseID,
				Title:      inc.Title,
				Similarity: res.Similarity,
			})
		}
	}

	logger.Debug("Aggregated %d lessons, %d good practices from %d incidents",
		len(suggestions.Lessons), len(suggestions.GoodPractices), len(ranked))

	return suggestions
}

// DedupActions collapses recommended actions with identical action text,
// keeping the first occurrence in rank order. Capping and deduplication
// are presentation concerns layered on top of the aggregator; this
// helper gives every presentation surface the same deterministic rule.
// A maxItems of zero or less means no cap.
func DedupActions(actions []domain.RecommendedAction, maxItems int) []domain.RecommendedAction {
	seen := make(map[string]struct{}, len(actions))
	deduped := make([]domain.RecommendedAction, 0, len(actions))

	for _, act := range actions {
		key := strings.TrimSpace(act.Action.Action)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, act)
		if maxItems > 0 && len(deduped) >= maxItems {
			break
		}
	}

	return deduped
}
