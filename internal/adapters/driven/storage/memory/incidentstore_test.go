package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crestline-labs/advisor-cli/internal/core/domain"
)

func TestIncidentStore_SeedAndLoad(t *testing.T) {
	store := NewIncidentStore(
		domain.Incident{CaseID: "INC-001", Title: "First"},
		domain.Incident{CaseID: "INC-002", Title: "Second"},
	)

	loaded, err := store.LoadIncidents(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "INC-001", loaded[0].CaseID)
	assert.Equal(t, "INC-002", loaded[1].CaseID)
}

func TestIncidentStore_LoadReturnsCopy(t *testing.T) {
	store := NewIncidentStore(domain.Incident{CaseID: "INC-001", Title: "Original"})
	ctx := context.Background()

	loaded, err := store.LoadIncidents(ctx)
	require.NoError(t, err)
	loaded[0].Title = "Mutated"

	again, err := store.LoadIncidents(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Original", again[0].Title)
}

func TestIncidentStore_AppendIncident_DropsInlineActions(t *testing.T) {
	store := NewIncidentStore()
	ctx := context.Background()

	err := store.AppendIncident(ctx, domain.Incident{
		CaseID:  "INC-001",
		Actions: []domain.Action{{ActionNumber: 1, Action: "should not persist"}},
	})
	require.NoError(t, err)

	loaded, err := store.LoadIncidents(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Empty(t, loaded[0].Actions)
}

func TestIncidentStore_AppendActions(t *testing.T) {
	store := NewIncidentStore(domain.Incident{CaseID: "INC-001"})
	ctx := context.Background()

	err := store.AppendActions(ctx, "INC-001", []domain.Action{
		{ActionNumber: 1, Action: "Inspect valves"},
		{ActionNumber: 2, Action: "Update checklist"},
	})
	require.NoError(t, err)

	loaded, err := store.LoadIncidents(ctx)
	require.NoError(t, err)
	require.Len(t, loaded[0].Actions, 2)
	assert.Equal(t, "Inspect valves", loaded[0].Actions[0].Action)
}

func TestIncidentStore_AppendActions_UnknownCase(t *testing.T) {
	store := NewIncidentStore()

	err := store.AppendActions(context.Background(), "INC-404", []domain.Action{{ActionNumber: 1}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIncidentStore_FailAppend(t *testing.T) {
	boom := errors.New("disk full")
	store := NewIncidentStore()
	store.FailAppend = boom

	ctx := context.Background()
	assert.ErrorIs(t, store.AppendIncident(ctx, domain.Incident{CaseID: "INC-001"}), boom)
	assert.ErrorIs(t, store.AppendActions(ctx, "INC-001", []domain.Action{{ActionNumber: 1}}), boom)
}

func TestIncidentStore_CaseIDs(t *testing.T) {
	store := NewIncidentStore(
		domain.Incident{CaseID: "INC-001"},
		domain.Incident{CaseID: "INC-002"},
	)

	ids, err := store.CaseIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"INC-001", "INC-002"}, ids)
}

func TestIncidentStore_PathAndClose(t *testing.T) {
	store := NewIncidentStore()
	assert.Equal(t, ":memory:", store.Path())
	assert.NoError(t, store.Close())
}
