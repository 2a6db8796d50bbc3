// Package sqlite implements the incident store over a single SQLite
// database file, as an alternative to the CSV pair for larger corpora.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/crestline-labs/advisor-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/crestline-labs/advisor-cli/internal/core/domain"
	"github.com/crestline-labs/advisor-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.IncidentStore = (*Store)(nil)

// Store is a SQLite-based implementation of driven.IncidentStore.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.advisor/data/incidents.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".advisor", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "incidents.db")

	// WAL keeps concurrent readers working during an append.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// migrate applies any pending .up.sql migrations in version order.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("applying migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// LoadIncidents returns all incidents in insertion order, each with its
// actions attached in action-number order.
func (s *Store) LoadIncidents(ctx context.Context) ([]domain.Incident, error) {
	actionRows, err := s.db.QueryContext(ctx, `
		SELECT case_id, action_number, action, owner, timing, verification
		FROM actions ORDER BY case_id, action_number
	`)
	if err != nil {
		return nil, fmt.Errorf("querying actions: %w", err)
	}
	defer actionRows.Close()

	actionsByCase := make(map[string][]domain.Action)
	for actionRows.Next() {
		var caseID string
		var act domain.Action
		if err := actionRows.Scan(&caseID, &act.ActionNumber, &act.Action, &act.Owner, &act.Timing, &act.Verification); err != nil {
			return nil, fmt.Errorf("scanning action: %w", err)
		}
		actionsByCase[caseID] = append(actionsByCase[caseID], act)
	}
	if err := actionRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating actions: %w", err)
	}

	reportRows, err := s.db.QueryContext(ctx, `
		SELECT case_id, title, what_happened, why_did_it_happen, causal_factors,
		       lessons_to_prevent, what_went_well, what_could_have_happened,
		       category, risk_level, location, setting, injury_category,
		       severity, primary_classification, date
		FROM reports ORDER BY rowid_order
	`)
	if err != nil {
		return nil, fmt.Errorf("querying reports: %w", err)
	}
	defer reportRows.Close()

	var incidents []domain.Incident
	for reportRows.Next() {
		var inc domain.Incident
		if err := reportRows.Scan(
			&inc.CaseID, &inc.Title, &inc.WhatHappened, &inc.WhyDidItHappen,
			&inc.CausalFactors, &inc.LessonsToPrevent, &inc.WhatWentWell,
			&inc.WhatCouldHaveHappened, &inc.Category, &inc.RiskLevel,
			&inc.Location, &inc.Setting, &inc.InjuryCategory, &inc.Severity,
			&inc.PrimaryClassification, &inc.Date,
		); err != nil {
			return nil, fmt.Errorf("scanning report: %w", err)
		}
		inc.Actions = actionsByCase[inc.CaseID]
		incidents = append(incidents, inc)
	}
	if err := reportRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reports: %w", err)
	}

	return incidents, nil
}

// CaseIDs returns all existing case ids in insertion order.
func (s *Store) CaseIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT case_id FROM reports ORDER BY rowid_order")
	if err != nil {
		return nil, fmt.Errorf("querying case ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning case id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// AppendIncident inserts exactly one report row.
func (s *Store) AppendIncident(ctx context.Context, incident domain.Incident) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reports (
			case_id, title, what_happened, why_did_it_happen, causal_factors,
			lessons_to_prevent, what_went_well, what_could_have_happened,
			category, risk_level, location, setting, injury_category,
			severity, primary_classification, date
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		incident.CaseID, incident.Title, incident.WhatHappened,
		incident.WhyDidItHappen, incident.CausalFactors,
		incident.LessonsToPrevent, incident.WhatWentWell,
		incident.WhatCouldHaveHappened, incident.Category,
		incident.RiskLevel, incident.Location, incident.Setting,
		incident.InjuryCategory, incident.Severity,
		incident.PrimaryClassification, incident.Date,
	)
	if err != nil {
		return fmt.Errorf("inserting report %s: %w", incident.CaseID, err)
	}
	return nil
}

// AppendActions inserts one row per action inside a transaction, so a
// failure leaves no partial set of action rows.
func (s *Store) AppendActions(ctx context.Context, caseID string, actions []domain.Action) error {
	if len(actions) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	for _, act := range actions {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO actions (case_id, action_number, action, owner, timing, verification)
			VALUES (?, ?, ?, ?, ?, ?)
		`, caseID, act.ActionNumber, act.Action, act.Owner, act.Timing, act.Verification); err != nil {
			tx.Rollback()
			return fmt.Errorf("inserting action %d for %s: %w", act.ActionNumber, caseID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing actions for %s: %w", caseID, err)
	}
	return nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
