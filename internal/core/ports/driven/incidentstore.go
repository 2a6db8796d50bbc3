package driven

import (
	"context"

	"github.com/crestline-labs/advisor-cli/internal/core/domain"
)

// IncidentStore persists incident reports and their corrective actions.
//
// The store holds two logical tables: reports (one row per incident) and
// actions (one row per action, keyed by case_id). Loading returns reports
// already joined with their actions grouped by case_id; an incident with
// no matching action rows gets an empty list, never an error.
//
// Appends are independent per row: each either fully succeeds or reports
// a failure with no partial record written.
type IncidentStore interface {
	// LoadIncidents returns all incidents in stable store order, each
	// with its actions attached in action-number order. SearchText is
	// left empty; the corpus builder derives it.
	LoadIncidents(ctx context.Context) ([]domain.Incident, error)

	// CaseIDs returns all existing case ids in store order.
	CaseIDs(ctx context.Context) ([]string, error)

	// AppendIncident appends exactly one report row.
	AppendIncident(ctx context.Context, incident domain.Incident) error

	// AppendActions appends one row per action for the given case id.
	AppendActions(ctx context.Context, caseID string, actions []domain.Action) error

	// Path returns the location of the backing store, for diagnostics
	// and file watching.
	Path() string

	// Close releases resources.
	Close() error
}
