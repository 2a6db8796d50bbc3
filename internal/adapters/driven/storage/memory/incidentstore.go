// Package memory provides an in-memory IncidentStore, used by tests and
// for demo corpora that never touch disk.
package memory

import (
	"context"
	"sync"

	"github.com/crestline-labs/advisor-cli/internal/core/domain"
	"github.com/crestline-labs/advisor-cli/internal/core/ports/driven"
)

// Ensure IncidentStore implements the interface.
var _ driven.IncidentStore = (*IncidentStore)(nil)

// IncidentStore is an in-memory implementation of driven.IncidentStore.
type IncidentStore struct {
	mu        sync.RWMutex
	incidents []domain.Incident

	// FailAppend forces append operations to fail, for error-path tests.
	FailAppend error
}

// NewIncidentStore creates a new in-memory incident store.
func NewIncidentStore(seed ...domain.Incident) *IncidentStore {
	return &IncidentStore{incidents: seed}
}

// LoadIncidents returns a copy of all incidents in store order.
func (s *IncidentStore) LoadIncidents(_ context.Context) ([]domain.Incident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Incident, len(s.incidents))
	copy(out, s.incidents)
	return out, nil
}

// CaseIDs returns all existing case ids in store order.
func (s *IncidentStore) CaseIDs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, len(s.incidents))
	for i := range s.incidents {
		ids[i] = s.incidents[i].CaseID
	}
	return ids, nil
}

// AppendIncident appends one incident row. Actions on the value are
// ignored; they arrive through AppendActions, mirroring the two-table
// store contract.
func (s *IncidentStore) AppendIncident(_ context.Context, incident domain.Incident) error {
	if s.FailAppend != nil {
		return s.FailAppend
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	incident.Actions = nil
	s.incidents = append(s.incidents, incident)
	return nil
}

// AppendActions attaches action rows to the stored incident.
func (s *IncidentStore) AppendActions(_ context.Context, caseID string, actions []domain.Action) error {
	if s.FailAppend != nil {
		return s.FailAppend
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.incidents {
		if s.incidents[i].CaseID == caseID {
			s.incidents[i].Actions = append(s.incidents[i].Actions, actions...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// Path returns a fixed marker; there is no backing file.
func (s *IncidentStore) Path() string {
	return ":memory:"
}

// Close releases resources.
func (s *IncidentStore) Close() error {
	return nil
}
