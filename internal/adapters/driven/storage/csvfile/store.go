package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"github.com/crestline-labs/advisor-cli/internal/core/domain"
	"github.com/crestline-labs/advisor-cli/internal/core/ports/driven"
	"github.com/crestline-labs/advisor-cli/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.IncidentStore = (*Store)(nil)

// Canonical column layouts for freshly created files.
var (
	reportColumns = []string{
		"case_id", "title", "what_happened", "why_did_it_happen",
		"causal_factors", "lessons_to_prevent", "what_went_well",
		"what_could_have_happened", "category", "risk_level", "location",
		"setting", "injury_category", "severity",
		"primary_classification", "date",
	}
	actionColumns = []string{
		"case_id", "action_number", "action", "owner", "timing",
		"verification",
	}
)

// Store is a CSV-file-backed implementation of driven.IncidentStore.
type Store struct {
	mu          sync.Mutex
	reportsPath string
	actionsPath string
}

// NewStore opens (or creates) the reports.csv/actions.csv pair under
// dataDir. If dataDir is empty, defaults to ~/.advisor/data.
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

	s := &Store{
		reportsPath: filepath.Join(dataDir, "reports.csv"),
		actionsPath: filepath.Join(dataDir, "actions.csv"),
	}

	if err := ensureFile(s.reportsPath, reportColumns); err != nil {
		return nil, fmt.Errorf("preparing reports file: %w", err)
	}
	if err := ensureFile(s.actionsPath, actionColumns); err != nil {
		return nil, fmt.Errorf("preparing actions file: %w", err)
	}

	return s, nil
}

// ensureFile creates the file with a header row if it does not exist.
func ensureFile(path string, header []string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0600)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadIncidents reads both files and returns reports joined with their
// actions grouped by case_id, in reports-file order. A report with no
// matching action rows gets an empty list, never an error.
func (s *Store) LoadIncidents(ctx context.Context) ([]domain.Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reportRows, err := readTable(s.reportsPath)
	if err != nil {
		return nil, fmt.Errorf("read reports: %w", err)
	}
	actionRows, err := readTable(s.actionsPath)
	if err != nil {
		return nil, fmt.Errorf("read actions: %w", err)
	}

	actionsByCase := make(map[string][]domain.Action)
	for _, row := range actionRows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		caseID := row["case_id"]
		num, convErr := strconv.Atoi(row["action_number"])
		if convErr != nil {
			logger.Warn("Skipping action row with bad action_number %q (case %s)", row["action_number"], caseID)
			continue
		}
		actionsByCase[caseID] = append(actionsByCase[caseID], domain.Action{
			ActionNumber: num,
			Action:       row["action"],
			Owner:        row["owner"],
			Timing:       row["timing"],
			Verification: row["verification"],
		})
	}
	for _, actions := range actionsByCase {
		sort.Slice(actions, func(a, b int) bool {
			return actions[a].ActionNumber < actions[b].ActionNumber
		})
	}

	incidents := make([]domain.Incident, 0, len(reportRows))
	for _, row := range reportRows {
		caseID := row["case_id"]
		incidents = append(incidents, domain.Incident{
			CaseID:                caseID,
			Title:                 row["title"],
			WhatHappened:          row["what_happened"],
			WhyDidItHappen:        row["why_did_it_happen"],
			CausalFactors:         row["causal_factors"],
			LessonsToPrevent:      row["lessons_to_prevent"],
			WhatWentWell:          row["what_went_well"],
			WhatCouldHaveHappened: row["what_could_have_happened"],
			Category:              row["category"],
			RiskLevel:             row["risk_level"],
			Location:              row["location"],
			Setting:               row["setting"],
			InjuryCategory:        row["injury_category"],
			Severity:              row["severity"],
			PrimaryClassification: row["primary_classification"],
			Date:                  row["date"],
			Actions:               actionsByCase[caseID],
		})
	}

	logger.Debug("Loaded %d reports, %d action rows", len(incidents), len(actionRows))
	return incidents, nil
}

// CaseIDs returns all existing case ids in reports-file order.
func (s *Store) CaseIDs(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := readTable(s.reportsPath)
	if err != nil {
		return nil, fmt.Errorf("read reports: %w", err)
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row["case_id"])
	}
	return ids, nil
}

// AppendIncident appends exactly one report row, laid out per the file's
// header.
func (s *Store) AppendIncident(_ context.Context, incident domain.Incident) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	header, err := readHeader(s.reportsPath)
	if err != nil {
		return fmt.Errorf("read reports header: %w", err)
	}

	row := make([]string, len(header))
	for i, col := range header {
		val, _ := incident.Field(col)
		row[i] = val
	}

	if err := appendRows(s.reportsPath, [][]string{row}); err != nil {
		return fmt.Errorf("append report row: %w", err)
	}
	return nil
}

// AppendActions appends one row per action for the given case id.
func (s *Store) AppendActions(_ context.Context, caseID string, actions []domain.Action) error {
	if len(actions) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	header, err := readHeader(s.actionsPath)
	if err != nil {
		return fmt.Errorf("read actions header: %w", err)
	}

	rows := make([][]string, 0, len(actions))
	for _, act := range actions {
		row := make([]string, len(header))
		for i, col := range header {
			switch col {
			case "case_id":
				row[i] = caseID
			case "action_number":
				row[i] = strconv.Itoa(act.ActionNumber)
			case "action":
				row[i] = act.Action
			case "owner":
				row[i] = act.Owner
			case "timing":
				row[i] = act.Timing
			case "verification":
				row[i] = act.Verification
			}
		}
		rows = append(rows, row)
	}

	if err := appendRows(s.actionsPath, rows); err != nil {
		return fmt.Errorf("append action rows: %w", err)
	}
	return nil
}

// Path returns the directory holding both files.
func (s *Store) Path() string {
	return filepath.Dir(s.reportsPath)
}

// Close releases resources. Files are opened per operation, so there is
// nothing to release.
func (s *Store) Close() error {
	return nil
}

// readTable reads a CSV file into one map per row, keyed by header.
// Short rows leave their trailing columns empty.
func readTable(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var rows []map[string]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// readHeader reads just the header row of a CSV file.
func readHeader(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	header, err := csv.NewReader(f).Read()
	if err != nil {
		return nil, err
	}
	return header, nil
}

// appendRows appends complete CSV rows, repairing a missing trailing
// newline first so an append never merges into the previous record.
func appendRows(path string, rows [][]string) error {
	if err := ensureTrailingNewline(path); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ensureTrailingNewline makes sure the file ends with a newline.
func ensureTrailingNewline(path string) error {
	f, err := os.OpenFile(path, os.O_RDWR, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.Size() == 0 {
		return nil
	}

	buf := make([]byte, 1)
	if _, err := f.ReadAt(buf, info.Size()-1); err != nil {
		return err
	}
	if buf[0] == '\n' {
		return nil
	}

	_, err = f.WriteAt([]byte{'\n'}, info.Size())
	return err
}
