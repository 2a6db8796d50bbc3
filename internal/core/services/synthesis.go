package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/crestline-labs/advisor-cli/internal/core/domain"
	"github.com/crestline-labs/advisor-cli/internal/core/ports/driven"
	"github.com/crestline-labs/advisor-cli/internal/core/ports/driving"
	"github.com/crestline-labs/advisor-cli/internal/logger"
)

// Ensure SynthesisService implements the interface.
var _ driving.Synthesiser = (*SynthesisService)(nil)

// SynthesisService hands a deterministic context block to an optional
// generative collaborator and returns prose. The collaborator is
// advisory only: when it is unconfigured or fails, callers fall back to
// the structured rendering.
type SynthesisService struct {
	llm     driven.LLMService
	limiter *rate.Limiter
}

// NewSynthesisService creates a synthesis service. The llm may be nil,
// in which case Synthesise always reports domain.ErrLLMUnavailable.
// Calls are rate limited to keep a chatty session within provider
// quotas.
func NewSynthesisService(llm driven.LLMService) *SynthesisService {
	return &SynthesisService{
		llm:     llm,
		limiter: rate.NewLimiter(rate.Limit(1), 2),
	}
}

// Synthesise renders a prose answer for the question from the given
// context block.
func (s *SynthesisService) Synthesise(ctx context.Context, question, contextBlock string) (string, error) {
	if s.llm == nil {
		return "", domain.ErrLLMUnavailable
	}

	requestID := uuid.NewString()
	logger.Section("Synthesis")
	logger.Debug("Request %s: question=%q, context=%d bytes", requestID, question, len(contextBlock))

	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("synthesis rate limit: %w", err)
	}

	prose, err := s.llm.Synthesise(ctx, question, contextBlock)
	if err != nil {
		logger.Warn("Request %s: synthesis failed: %v", requestID, err)
		return "", fmt.Errorf("synthesise: %w", err)
	}

	logger.Debug("Request %s: %d bytes of prose", requestID, len(prose))
	return strings.TrimSpace(prose), nil
}

// RenderRecommendationContext produces the deterministic textual
// rendering of ranked incidents and actions that is handed to the
// generative collaborator, and that doubles as the structured fallback
// payload.
func RenderRecommendationContext(recs domain.Recommendations) string {
	var b strings.Builder

	b.WriteString("Similar past incidents:\n")
	for i, res := range recs.Incidents {
		fmt.Fprintf(&b, "%d. [%s] %s (similarity %.2f, risk %s)\n",
			i+1, res.Incident.CaseID, res.Incident.Title, res.Similarity, res.Incident.RiskLevel)
		if !domain.IsNullText(res.Incident.WhatHappened) {
			fmt.Fprintf(&b, "   What happened: %s\n", strings.TrimSpace(res.Incident.WhatHappened))
		}
	}

	b.WriteString("\nCorrective actions from those incidents:\n")
	for _, act := range recs.Actions {
		fmt.Fprintf(&b, "- %s (owner: %s, from %s)\n", act.Action.Action, act.Action.Owner, act.CaseID)
	}

	return b.String()
}

// RenderTrainingContext produces the deterministic textual rendering of
// training suggestions.
func RenderTrainingContext(t domain.TrainingSuggestions) string {
	var b strings.Builder

	b.WriteString("Lessons to prevent recurrence:\n")
	for _, l := range t.Lessons {
		fmt.Fprintf(&b, "- %s (from %s, risk %s)\n", l.Text, l.CaseID, l.RiskLevel)
	}

	b.WriteString("\nGood practices observed:\n")
	for _, g := range t.GoodPractices {
		fmt.Fprintf(&b, "- %s (from %s)\n", g.Text, g.CaseID)
	}

	return b.String()
}
