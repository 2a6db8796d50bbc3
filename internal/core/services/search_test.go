package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crestline-labs/advisor-cli/internal/adapters/driven/storage/memory"
	"github.com/crestline-labs/advisor-cli/internal/core/domain"
)

func TestSearch_RanksByRelevance(t *testing.T) {
	svc, _ := newTestAdvisor(t)

	results, err := svc.Search(context.Background(),
		"pressure relief valve stuck during startup", domain.SearchOptions{})
	require.NoError(t, err)
	require.NotEmpty(t, results)

	// The relief valve incident is the closest match, and the valve
	// results outrank anything else that clears the threshold.
	assert.Equal(t, "INC-001", results[0].Incident.CaseID)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Similarity, results[i].Similarity)
	}
}

func TestSearch_ThresholdCutsWeakMatches(t *testing.T) {
	svc, _ := newTestAdvisor(t)

	results, err := svc.Search(context.Background(),
		"valve pressure", domain.SearchOptions{})
	require.NoError(t, err)

	for _, res := range results {
		assert.GreaterOrEqual(t, res.Similarity, 0.1)
		assert.NotEqual(t, "INC-003", res.Incident.CaseID,
			"the walkway incident shares no vocabulary with the query")
	}
}

func TestSearch_NoMatchesReturnsEmptyNotError(t *testing.T) {
	svc, _ := newTestAdvisor(t)

	results, err := svc.Search(context.Background(),
		"zzz qqq xxx", domain.SearchOptions{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_TopNCapsResults(t *testing.T) {
	svc, _ := newTestAdvisor(t)

	results, err := svc.Search(context.Background(),
		"valve pressure maintenance", domain.SearchOptions{TopN: 1})
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestSearch_Filters(t *testing.T) {
	svc, _ := newTestAdvisor(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		filters map[string]string
		wantIDs []string
	}{
		{
			name:    "risk level filter",
			filters: map[string]string{"risk_level": "high"},
			wantIDs: []string{"INC-001"},
		},
		{
			name:    "case-insensitive substring",
			filters: map[string]string{"location": "plant b"},
			wantIDs: []string{"INC-002"},
		},
		{
			name:    "empty filter value is a no-op",
			filters: map[string]string{"risk_level": ""},
			wantIDs: []string{"INC-001", "INC-002"},
		},
		{
			name:    "unknown field is a no-op",
			filters: map[string]string{"not_a_field": "whatever"},
			wantIDs: []string{"INC-001", "INC-002"},
		},
		{
			name:    "non-matching filter removes everything",
			filters: map[string]string{"location": "plant z"},
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := svc.Search(ctx, "valve pressure",
				domain.SearchOptions{Filters: tt.filters})
			require.NoError(t, err)

			ids := make([]string, 0, len(results))
			for _, res := range results {
				ids = append(ids, res.Incident.CaseID)
			}
			assert.ElementsMatch(t, tt.wantIDs, ids)
		})
	}
}

func TestSearch_Deterministic(t *testing.T) {
	svc, _ := newTestAdvisor(t)
	ctx := context.Background()

	first, err := svc.Search(ctx, "pressure release", domain.SearchOptions{})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := svc.Search(ctx, "pressure release", domain.SearchOptions{})
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestSearch_EmptyCorpus(t *testing.T) {
	store := memory.NewIncidentStore()
	svc := NewAdvisorService(store, domain.DefaultAppSettings())
	require.NoError(t, svc.Rebuild(context.Background()))

	results, err := svc.Search(context.Background(), "valve", domain.SearchOptions{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_SnapshotStableUntilRebuild(t *testing.T) {
	svc, store := newTestAdvisor(t)
	ctx := context.Background()

	before, err := svc.Search(ctx, "forklift collision in warehouse", domain.SearchOptions{})
	require.NoError(t, err)
	assert.Empty(t, before)

	_, err = svc.Ingest(ctx, domain.IncidentDraft{
		Title:        "Forklift collision",
		WhatHappened: "A forklift collided with warehouse racking during reversing",
	}, nil)
	require.NoError(t, err)

	// Still absent: the snapshot is stale until an explicit rebuild.
	stale, err := svc.Search(ctx, "forklift collision in warehouse", domain.SearchOptions{})
	require.NoError(t, err)
	assert.Empty(t, stale)

	require.NoError(t, svc.Rebuild(ctx))

	after, err := svc.Search(ctx, "forklift collision in warehouse", domain.SearchOptions{})
	require.NoError(t, err)
	require.NotEmpty(t, after)
	assert.Equal(t, "Forklift collision", after[0].Incident.Title)

	ids, err := store.CaseIDs(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, "INC-004")
}
