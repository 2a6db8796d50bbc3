package cli

import (
	"context"

	"github.com/crestline-labs/advisor-cli/internal/core/domain"
	"github.com/crestline-labs/advisor-cli/internal/core/ports/driving"
)

// stubAdvisor implements driving.AdvisorService with canned results for
// command tests.
type stubAdvisor struct {
	searchResults   []domain.SearchResult
	recommendations domain.Recommendations
	training        domain.TrainingSuggestions
	stats           domain.StatsReport
	categories      []string
	ingestedCaseID  string
	rebuilds        int
	err             error
}

var _ driving.AdvisorService = (*stubAdvisor)(nil)

func (s *stubAdvisor) Classify(_ string) domain.Intent { return domain.IntentRecommend }

func (s *stubAdvisor) Search(_ context.Context, _ string, _ domain.SearchOptions) ([]domain.SearchResult, error) {
	return s.searchResults, s.err
}

func (s *stubAdvisor) Recommendations(_ context.Context, _ string, _ int) (domain.Recommendations, error) {
	return s.recommendations, s.err
}

func (s *stubAdvisor) TrainingSuggestions(_ context.Context, _ string, _ int) (domain.TrainingSuggestions, error) {
	return s.training, s.err
}

func (s *stubAdvisor) Statistics(_ context.Context) (domain.StatsReport, error) {
	return s.stats, s.err
}

func (s *stubAdvisor) Categories(_ context.Context) []string { return s.categories }
func (s *stubAdvisor) RiskLevels(_ context.Context) []string { return nil }
func (s *stubAdvisor) Locations(_ context.Context) []string  { return nil }

func (s *stubAdvisor) Ingest(_ context.Context, _ domain.IncidentDraft, _ []domain.ActionDraft) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.ingestedCaseID, nil
}

func (s *stubAdvisor) Rebuild(_ context.Context) error {
	s.rebuilds++
	return s.err
}

// setupTestServices injects a stub advisor and returns a cleanup that
// restores the previous services.
func setupTestServices() func() {
	return setupTestAdvisor(&stubAdvisor{
		searchResults: []domain.SearchResult{
			{
				Incident: domain.Incident{
					CaseID:       "INC-001",
					Title:        "Relief valve failure",
					RiskLevel:    "High",
					WhatHappened: "Valve lifted early during startup.",
				},
				Similarity: 0.83,
			},
		},
		recommendations: domain.Recommendations{
			Incidents: []domain.SearchResult{
				{
					Incident:   domain.Incident{CaseID: "INC-001", Title: "Relief valve failure", RiskLevel: "High"},
					Similarity: 0.83,
				},
			},
			Actions: []domain.RecommendedAction{
				{
					Action: domain.Action{ActionNumber: 1, Action: "Inspect all relief valves", Owner: "Maintenance"},
					CaseID: "INC-001",
					Title:  "Relief valve failure",
				},
			},
		},
		training: domain.TrainingSuggestions{
			Lessons: []domain.Lesson{
				{Text: "Inspect valves before startup", CaseID: "INC-001", Title: "Relief valve failure", RiskLevel: "High"},
			},
		},
		stats: domain.StatsReport{
			TotalIncidents: 3,
			TotalActions:   5,
			ByRiskLevel:    map[string]int{"High": 2, "Low": 1},
		},
		categories:     []string{"Occupational Safety", "Process Safety"},
		ingestedCaseID: "INC-004",
	})
}

func setupTestAdvisor(stub *stubAdvisor) func() {
	previous := advisorService
	advisorService = stub
	return func() {
		advisorService = previous
	}
}
