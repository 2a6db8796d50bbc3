package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/crestline-labs/advisor-cli/internal/core/domain"
	"github.com/crestline-labs/advisor-cli/internal/core/ports/driven"
	"github.com/crestline-labs/advisor-cli/internal/core/ports/driving"
	"github.com/crestline-labs/advisor-cli/internal/logger"
)

// Ensure AdvisorService implements the interface.
var _ driving.AdvisorService = (*AdvisorService)(nil)

// AdvisorService owns the current corpus/index snapshot and routes all
// query-path operations through it. Queries are read-only against the
// snapshot captured at call time, so concurrent reads need no locking;
// ingestion is serialised by a mutex and Rebuild swaps the snapshot
// atomically.
type AdvisorService struct {
	store    driven.IncidentStore
	settings domain.AppSettings

	snapshot atomic.Pointer[Snapshot]
	ingestMu sync.Mutex

	// now is injected for tests; defaults to time.Now.
	now func() time.Time
}

// NewAdvisorService creates an advisor over the given store. The initial
// snapshot is empty; call Rebuild to load the corpus.
func NewAdvisorService(store driven.IncidentStore, settings domain.AppSettings) *AdvisorService {
	s := &AdvisorService{
		store:    store,
		settings: settings,
		now:      time.Now,
	}
	s.snapshot.Store(BuildSnapshot(nil, settings.Index))
	return s
}

// Rebuild reloads the store and atomically replaces the corpus/index
// snapshot. Readers see either the old or the new snapshot, never a
// partially built one.
func (s *AdvisorService) Rebuild(ctx context.Context) error {
	if s.store == nil {
		return domain.ErrStoreUnavailable
	}

	incidents, err := s.store.LoadIncidents(ctx)
	if err != nil {
		return fmt.Errorf("load incidents: %w", err)
	}

	s.snapshot.Store(BuildSnapshot(incidents, s.settings.Index))
	logger.Info("Snapshot rebuilt: %d incidents", len(incidents))
	return nil
}

// current returns the snapshot captured for this request.
func (s *AdvisorService) current() *Snapshot {
	return s.snapshot.Load()
}

// Classify maps a raw user message to a request intent.
func (s *AdvisorService) Classify(message string) domain.Intent {
	return ClassifyIntent(message)
}

// Search returns ranked incidents similar to the query.
func (s *AdvisorService) Search(
	_ context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	return searchSnapshot(s.current(), query, opts, s.settings.Search), nil
}

// Recommendations returns ranked incidents plus their flattened
// corrective actions with provenance.
func (s *AdvisorService) Recommendations(
	ctx context.Context, query string, topN int,
) (domain.Recommendations, error) {
	ranked, err := s.Search(ctx, query, domain.SearchOptions{TopN: topN})
	if err != nil {
		return domain.Recommendations{}, err
	}
	return aggregateRecommendations(ranked), nil
}

// TrainingSuggestions returns lessons and good practices extracted from
// ranked incidents.
func (s *AdvisorService) TrainingSuggestions(
	ctx context.Context, query string, topN int,
) (domain.TrainingSuggestions, error) {
	ranked, err := s.Search(ctx, query, domain.SearchOptions{TopN: topN})
	if err != nil {
		return domain.TrainingSuggestions{}, err
	}
	return aggregateTraining(ranked), nil
}

// Statistics returns an aggregate breakdown of the corpus.
func (s *AdvisorService) Statistics(_ context.Context) (domain.StatsReport, error) {
	return computeStatistics(s.current().Incidents), nil
}

// Categories returns the sorted unique non-empty category values.
func (s *AdvisorService) Categories(_ context.Context) []string {
	return uniqueFieldValues(s.current().Incidents, "category")
}

// RiskLevels returns the sorted unique non-empty risk level values.
func (s *AdvisorService) RiskLevels(_ context.Context) []string {
	return uniqueFieldValues(s.current().Incidents, "risk_level")
}

// Locations returns the sorted unique non-empty location values.
func (s *AdvisorService) Locations(_ context.Context) []string {
	return uniqueFieldValues(s.current().Incidents, "location")
}

// Ingest appends a new incident and its actions to the store and returns
// the generated case id. Ingestions are serialised relative to each
// other; the in-memory snapshot stays stale until Rebuild is called.
func (s *AdvisorService) Ingest(
	ctx context.Context, report domain.IncidentDraft, actions []domain.ActionDraft,
) (string, error) {
	if s.store == nil {
		return "", domain.ErrStoreUnavailable
	}

	s.ingestMu.Lock()
	defer s.ingestMu.Unlock()

	existing, err := s.store.CaseIDs(ctx)
	if err != nil {
		return "", fmt.Errorf("read existing case ids: %w", err)
	}

	caseID := GenerateCaseID(existing)
	incident := buildIncident(caseID, report, actions, s.now())

	logger.Section("Ingest")
	logger.Info("New incident %s with %d actions", caseID, len(incident.Actions))

	if err := s.store.AppendIncident(ctx, incident); err != nil {
		return "", fmt.Errorf("append incident %s: %w", caseID, err)
	}
	if err := s.store.AppendActions(ctx, caseID, incident.Actions); err != nil {
		return "", fmt.Errorf("append actions for %s: %w", caseID, err)
	}

	return caseID, nil
}
