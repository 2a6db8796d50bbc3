package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/crestline-labs/advisor-cli/internal/adapters/driven/storage/memory"
	"github.com/crestline-labs/advisor-cli/internal/core/domain"
)

// testCorpus returns a small, varied incident corpus. The first two
// incidents share valve/pressure vocabulary so similarity rankings are
// predictable; the third is about an unrelated topic.
func testCorpus() []domain.Incident {
	return []domain.Incident{
		{
			CaseID:           "INC-001",
			Title:            "Relief valve failure during startup",
			WhatHappened:     "The pressure relief valve stuck closed during unit startup causing overpressure",
			WhyDidItHappen:   "Valve had not been serviced since installation",
			CausalFactors:    "Missed maintenance interval on relief valve",
			LessonsToPrevent: "Inspect relief valves before every startup",
			WhatWentWell:     "Operator isolated the unit quickly",
			Category:         "Process Safety",
			RiskLevel:        "High",
			Location:         "Plant A",
			Severity:         "Major",
			Date:             "2024-03-10",
			Actions: []domain.Action{
				{ActionNumber: 1, Action: "Inspect all relief valves", Owner: "Maintenance", Timing: "2 weeks"},
				{ActionNumber: 2, Action: "Update startup checklist", Owner: "Operations", Timing: "1 month"},
			},
		},
		{
			CaseID:           "INC-002",
			Title:            "Unexpected pressure release from isolation valve",
			WhatHappened:     "Residual pressure released when an isolation valve was opened for maintenance",
			WhyDidItHappen:   "Line was not fully depressurised before valve work",
			LessonsToPrevent: "Verify zero pressure before breaking containment",
			Category:         "Process Safety",
			RiskLevel:        "Medium",
			Location:         "Plant B",
			Severity:         "Minor",
			Date:             "2024-05-22",
			Actions: []domain.Action{
				{ActionNumber: 1, Action: "Inspect all relief valves", Owner: "Maintenance", Timing: "1 week"},
				{ActionNumber: 2, Action: "Add depressurisation step to permit", Owner: "HSE", Timing: "2 weeks"},
			},
		},
		{
			CaseID:       "INC-003",
			Title:        "Slip on wet walkway",
			WhatHappened: "A contractor slipped on a wet walkway near the loading bay",
			WhatWentWell: "First aid was administered immediately",
			Category:     "Occupational Safety",
			RiskLevel:    "Low",
			Location:     "Plant A",
			Severity:     "Minor",
			Date:         "2024-06-01",
			Actions: []domain.Action{
				{ActionNumber: 1, Action: "Install anti-slip matting", Owner: "Facilities", Timing: "1 month"},
			},
		},
	}
}

// newTestAdvisor builds an advisor over an in-memory store seeded with
// the test corpus, with the index already built.
func newTestAdvisor(t *testing.T, incidents ...domain.Incident) (*AdvisorService, *memory.IncidentStore) {
	t.Helper()

	if incidents == nil {
		incidents = testCorpus()
	}
	store := memory.NewIncidentStore(incidents...)
	svc := NewAdvisorService(store, domain.DefaultAppSettings())
	svc.now = func() time.Time { return time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC) }
	require.NoError(t, svc.Rebuild(context.Background()))
	return svc, store
}
