package responder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crestline-labs/advisor-cli/internal/core/domain"
	"github.com/crestline-labs/advisor-cli/internal/core/ports/driving"
)

// mockAdvisor implements driving.AdvisorService with canned results.
type mockAdvisor struct {
	intent          domain.Intent
	searchResults   []domain.SearchResult
	searchOpts      domain.SearchOptions
	recommendations domain.Recommendations
	training        domain.TrainingSuggestions
	stats           domain.StatsReport
	err             error
}

var _ driving.AdvisorService = (*mockAdvisor)(nil)

func (m *mockAdvisor) Classify(message string) domain.Intent { return m.intent }

func (m *mockAdvisor) Search(_ context.Context, _ string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	m.searchOpts = opts
	return m.searchResults, m.err
}

func (m *mockAdvisor) Recommendations(_ context.Context, _ string, _ int) (domain.Recommendations, error) {
	return m.recommendations, m.err
}

func (m *mockAdvisor) TrainingSuggestions(_ context.Context, _ string, _ int) (domain.TrainingSuggestions, error) {
	return m.training, m.err
}

func (m *mockAdvisor) Statistics(_ context.Context) (domain.StatsReport, error) {
	return m.stats, m.err
}

func (m *mockAdvisor) Categories(_ context.Context) []string { return nil }
func (m *mockAdvisor) RiskLevels(_ context.Context) []string { return nil }
func (m *mockAdvisor) Locations(_ context.Context) []string  { return nil }

func (m *mockAdvisor) Ingest(_ context.Context, _ domain.IncidentDraft, _ []domain.ActionDraft) (string, error) {
	return "", nil
}

func (m *mockAdvisor) Rebuild(_ context.Context) error { return nil }

// mockSynth implements driving.Synthesiser.
type mockSynth struct {
	prose string
	err   error
}

func (m *mockSynth) Synthesise(_ context.Context, _, _ string) (string, error) {
	return m.prose, m.err
}

func result(caseID, title, risk string, sim float64) domain.SearchResult {
	return domain.SearchResult{
		Incident: domain.Incident{
			CaseID:       caseID,
			Title:        title,
			RiskLevel:    risk,
			WhatHappened: "Something went wrong at " + title,
			Setting:      "Workshop",
			Date:         "2024-03-10",
		},
		Similarity: sim,
	}
}

func TestRespond_HelpIntent(t *testing.T) {
	advisor := &mockAdvisor{
		intent: domain.IntentHelp,
		stats:  domain.StatsReport{TotalIncidents: 12, TotalActions: 30},
	}
	r := New(advisor, nil)

	resp, err := r.Respond(context.Background(), "what can you do?")
	require.NoError(t, err)
	assert.Contains(t, resp, "safety incident advisor")
	assert.Contains(t, resp, "12 historical incidents")
	assert.Contains(t, resp, "30 corrective actions")
}

func TestRespond_HelpIntent_EmptyCorpus(t *testing.T) {
	advisor := &mockAdvisor{intent: domain.IntentHelp}
	r := New(advisor, nil)

	resp, err := r.Respond(context.Background(), "help")
	require.NoError(t, err)
	assert.Contains(t, resp, "safety incident advisor")
	assert.NotContains(t, resp, "historical incidents")
}

func TestRespond_StatsIntent(t *testing.T) {
	advisor := &mockAdvisor{
		intent: domain.IntentStats,
		stats: domain.StatsReport{
			TotalIncidents: 3,
			TotalActions:   5,
			ByRiskLevel:    map[string]int{"High": 2, "Low": 1},
			ByCategory:     map[string]int{"Process Safety": 3},
		},
	}
	r := New(advisor, nil)

	resp, err := r.Respond(context.Background(), "show me stats")
	require.NoError(t, err)
	assert.Contains(t, resp, "Total incidents: 3")
	assert.Contains(t, resp, "Total corrective actions: 5")
	assert.Contains(t, resp, "🔴 High: 2")
	assert.Contains(t, resp, "🟢 Low: 1")
	assert.Contains(t, resp, "Process Safety: 3")
}

func TestRespond_StatsIntent_SortedByCountThenName(t *testing.T) {
	advisor := &mockAdvisor{
		intent: domain.IntentStats,
		stats: domain.StatsReport{
			TotalIncidents: 6,
			ByCategory:     map[string]int{"Beta": 2, "Alpha": 2, "Gamma": 3},
		},
	}
	r := New(advisor, nil)

	resp, err := r.Respond(context.Background(), "stats")
	require.NoError(t, err)

	gamma := strings.Index(resp, "Gamma: 3")
	alpha := strings.Index(resp, "Alpha: 2")
	beta := strings.Index(resp, "Beta: 2")
	assert.True(t, gamma < alpha, "highest count first")
	assert.True(t, alpha < beta, "name breaks count ties")
}

func TestRespond_SearchIntent(t *testing.T) {
	advisor := &mockAdvisor{
		intent: domain.IntentSearch,
		searchResults: []domain.SearchResult{
			result("INC-001", "Valve failure", "High", 0.83),
			result("INC-002", "Pressure release", "Medium", 0.42),
		},
	}
	r := New(advisor, nil)

	resp, err := r.Respond(context.Background(), "show me incidents with valves")
	require.NoError(t, err)
	assert.Contains(t, resp, "Found 2 incidents")
	assert.Contains(t, resp, "Valve failure (83% match)")
	assert.Contains(t, resp, "🔴 High | Workshop | 2024-03-10")
	assert.Contains(t, resp, "🟡 Medium")
	assert.Equal(t, 10, advisor.searchOpts.TopN)
}

func TestRespond_SearchIntent_ExtractsRiskFilter(t *testing.T) {
	tests := []struct {
		message string
		want    map[string]string
	}{
		{"show me high risk incidents", map[string]string{"risk_level": "high"}},
		{"list high-risk cases", map[string]string{"risk_level": "high"}},
		{"find medium risk events", map[string]string{"risk_level": "medium"}},
		{"any low risk slips?", map[string]string{"risk_level": "low"}},
		{"show me incidents with cranes", nil},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			advisor := &mockAdvisor{
				intent:        domain.IntentSearch,
				searchResults: []domain.SearchResult{result("INC-001", "t", "High", 0.5)},
			}
			r := New(advisor, nil)

			_, err := r.Respond(context.Background(), tt.message)
			require.NoError(t, err)
			assert.Equal(t, tt.want, advisor.searchOpts.Filters)
		})
	}
}

func TestRespond_SearchIntent_NoResults(t *testing.T) {
	advisor := &mockAdvisor{intent: domain.IntentSearch}
	r := New(advisor, nil)

	resp, err := r.Respond(context.Background(), "show me unicorn incidents")
	require.NoError(t, err)
	assert.Contains(t, resp, "No incidents found")
}

func TestRespond_RecommendIntent(t *testing.T) {
	advisor := &mockAdvisor{
		intent: domain.IntentRecommend,
		recommendations: domain.Recommendations{
			Incidents: []domain.SearchResult{
				result("INC-001", "Valve failure", "High", 0.83),
			},
			Actions: []domain.RecommendedAction{
				{Action: domain.Action{Action: "Inspect valves", Owner: "Maintenance", Timing: "30 days"}, CaseID: "INC-001"},
			},
		},
	}
	r := New(advisor, nil)

	resp, err := r.Respond(context.Background(), "valve lifted during startup")
	require.NoError(t, err)
	assert.Contains(t, resp, "Found 1 similar past incidents")
	assert.Contains(t, resp, "[INC-001] Valve failure (83% match) 🔴")
	assert.Contains(t, resp, "Recommended actions")
	assert.Contains(t, resp, "Inspect valves")
	assert.Contains(t, resp, "Owner: Maintenance | Timing: 30 days | From: INC-001")
}

func TestRespond_RecommendIntent_DedupsAndCapsActions(t *testing.T) {
	recs := domain.Recommendations{
		Incidents: []domain.SearchResult{result("INC-001", "t", "High", 0.9)},
	}
	// Same action text from two incidents, plus enough unique ones to
	// overflow the display cap.
	recs.Actions = append(recs.Actions,
		domain.RecommendedAction{Action: domain.Action{Action: "Inspect valves"}, CaseID: "INC-001"},
		domain.RecommendedAction{Action: domain.Action{Action: "Inspect valves"}, CaseID: "INC-002"},
	)
	for i := 0; i < 15; i++ {
		recs.Actions = append(recs.Actions, domain.RecommendedAction{
			Action: domain.Action{Action: fmt.Sprintf("Unique action %02d", i)},
			CaseID: "INC-003",
		})
	}

	advisor := &mockAdvisor{intent: domain.IntentRecommend, recommendations: recs}
	r := New(advisor, nil)

	resp, err := r.Respond(context.Background(), "valve problem")
	require.NoError(t, err)

	assert.Contains(t, resp, "From: INC-001")
	assert.NotContains(t, resp, "From: INC-002", "duplicate keeps first provenance")
	assert.Contains(t, resp, "Unique action 08")
	assert.NotContains(t, resp, "Unique action 09", "list capped at ten")
}

func TestRespond_RecommendIntent_NoMatches(t *testing.T) {
	advisor := &mockAdvisor{intent: domain.IntentRecommend}
	r := New(advisor, nil)

	resp, err := r.Respond(context.Background(), "something nobody has seen")
	require.NoError(t, err)
	assert.Contains(t, resp, "couldn't find similar past incidents")
}

func TestRespond_TrainingIntent(t *testing.T) {
	advisor := &mockAdvisor{
		intent: domain.IntentTraining,
		training: domain.TrainingSuggestions{
			Lessons: []domain.Lesson{
				{Text: "Inspect valves before startup", CaseID: "INC-001", Title: "Valve failure", RiskLevel: "High"},
			},
			GoodPractices: []domain.GoodPractice{
				{Text: "Unit isolated quickly", CaseID: "INC-001", Title: "Valve failure"},
			},
		},
	}
	r := New(advisor, nil)

	resp, err := r.Respond(context.Background(), "training for valve work")
	require.NoError(t, err)
	assert.Contains(t, resp, "Training & Prevention Recommendations")
	assert.Contains(t, resp, "Lessons from similar incidents")
	assert.Contains(t, resp, "Inspect valves before startup")
	assert.Contains(t, resp, "What went well")
	assert.Contains(t, resp, "Unit isolated quickly")
}

func TestRespond_TrainingIntent_NoSuggestions(t *testing.T) {
	advisor := &mockAdvisor{intent: domain.IntentTraining}
	r := New(advisor, nil)

	resp, err := r.Respond(context.Background(), "training for underwater welding")
	require.NoError(t, err)
	assert.Contains(t, resp, "couldn't find specific training recommendations")
}

func TestRespond_PrefersSynthesisedProse(t *testing.T) {
	advisor := &mockAdvisor{
		intent: domain.IntentRecommend,
		recommendations: domain.Recommendations{
			Incidents: []domain.SearchResult{result("INC-001", "Valve failure", "High", 0.83)},
		},
	}
	synth := &mockSynth{prose: "Based on INC-001, inspect the relief valves first."}
	r := New(advisor, synth)

	resp, err := r.Respond(context.Background(), "valve lifted during startup")
	require.NoError(t, err)
	assert.Equal(t, "Based on INC-001, inspect the relief valves first.", resp)
}

func TestRespond_SynthesisFailureFallsBack(t *testing.T) {
	advisor := &mockAdvisor{
		intent: domain.IntentRecommend,
		recommendations: domain.Recommendations{
			Incidents: []domain.SearchResult{result("INC-001", "Valve failure", "High", 0.83)},
		},
	}
	synth := &mockSynth{err: errors.New("connection refused")}
	r := New(advisor, synth)

	resp, err := r.Respond(context.Background(), "valve lifted during startup")
	require.NoError(t, err)
	assert.Contains(t, resp, "Found 1 similar past incidents")
}

func TestRespond_AdvisorErrorPropagates(t *testing.T) {
	advisor := &mockAdvisor{
		intent: domain.IntentStats,
		err:    errors.New("store unavailable"),
	}
	r := New(advisor, nil)

	_, err := r.Respond(context.Background(), "stats")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store unavailable")
}

func TestRiskMarker(t *testing.T) {
	assert.Equal(t, "🔴", riskMarker("High"))
	assert.Equal(t, "🔴", riskMarker("Very High"))
	assert.Equal(t, "🟡", riskMarker("medium"))
	assert.Equal(t, "🟢", riskMarker("Low"))
	assert.Equal(t, "🟢", riskMarker(""))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcde...", truncate("abcdefgh", 5))
	assert.Equal(t, "trimmed", truncate("  trimmed  ", 10))

	// Cutting inside a multibyte rune backs up to the previous boundary.
	got := truncate(strings.Repeat("é", 10), 5)
	assert.Equal(t, "éé...", got)
	assert.True(t, utf8.ValidString(got))
}

func TestOrNA(t *testing.T) {
	assert.Equal(t, "N/A", orNA(""))
	assert.Equal(t, "N/A", orNA("nan"))
	assert.Equal(t, "Plant A", orNA("Plant A"))
}
