package mcp

import (
	"context"

	"github.com/crestline-labs/advisor-cli/internal/core/domain"
)

// mockAdvisorService is a mock implementation of driving.AdvisorService.
type mockAdvisorService struct {
	searchResults   []domain.SearchResult
	recommendations domain.Recommendations
	training        domain.TrainingSuggestions
	stats           domain.StatsReport
	categories      []string
	riskLevels      []string
	locations       []string
	err             error
}

func (m *mockAdvisorService) Classify(_ string) domain.Intent {
	return domain.IntentRecommend
}

func (m *mockAdvisorService) Search(
	_ context.Context,
	_ string,
	_ domain.SearchOptions,
) ([]domain.SearchResult, error) {
	return m.searchResults, m.err
}

func (m *mockAdvisorService) Recommendations(
	_ context.Context,
	_ string,
	_ int,
) (domain.Recommendations, error) {
	return m.recommendations, m.err
}

func (m *mockAdvisorService) TrainingSuggestions(
	_ context.Context,
	_ string,
	_ int,
) (domain.TrainingSuggestions, error) {
	return m.training, m.err
}

func (m *mockAdvisorService) Statistics(_ context.Context) (domain.StatsReport, error) {
	return m.stats, m.err
}

func (m *mockAdvisorService) Categories(_ context.Context) []string { return m.categories }
func (m *mockAdvisorService) RiskLevels(_ context.Context) []string { return m.riskLevels }
func (m *mockAdvisorService) Locations(_ context.Context) []string  { return m.locations }

func (m *mockAdvisorService) Ingest(
	_ context.Context,
	_ domain.IncidentDraft,
	_ []domain.ActionDraft,
) (string, error) {
	return "", m.err
}

func (m *mockAdvisorService) Rebuild(_ context.Context) error { return m.err }
