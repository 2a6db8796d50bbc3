// Package responder turns advisor results into chat-ready text. It is
// the presentation layer shared by the ask command and the chat TUI:
// classify the message, call the matching advisor operation, format the
// outcome. Deduplication and capping of recommended actions happen
// here, on top of the aggregator's provenance-ordered output.
package responder

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/crestline-labs/advisor-cli/internal/core/domain"
	"github.com/crestline-labs/advisor-cli/internal/core/ports/driving"
	"github.com/crestline-labs/advisor-cli/internal/core/services"
	"github.com/crestline-labs/advisor-cli/internal/logger"
)

// maxDisplayedActions caps the recommended-action list in a response.
const maxDisplayedActions = 10

// snippetLength bounds narrative excerpts in formatted output.
const snippetLength = 150

// Responder routes chat messages through the advisor and formats the
// results. The synthesiser is optional; without it (or when it fails)
// responses use the deterministic structured rendering.
type Responder struct {
	advisor driving.AdvisorService
	synth   driving.Synthesiser
}

// New creates a responder. synth may be nil.
func New(advisor driving.AdvisorService, synth driving.Synthesiser) *Responder {
	return &Responder{advisor: advisor, synth: synth}
}

// Respond processes one user message: detect intent, call the matching
// advisor operation, format the response. It never returns an error for
// an unhelpful query, only for infrastructure failures.
func (r *Responder) Respond(ctx context.Context, message string) (string, error) {
	intent := r.advisor.Classify(message)
	logger.Debug("Message classified as %s", intent)

	switch intent {
	case domain.IntentHelp:
		return r.helpResponse(ctx), nil
	case domain.IntentStats:
		return r.statsResponse(ctx)
	case domain.IntentTraining:
		return r.trainingResponse(ctx, message)
	case domain.IntentSearch:
		return r.searchResponse(ctx, message)
	default:
		return r.recommendResponse(ctx, message)
	}
}

// helpResponse describes what the advisor can do.
func (r *Responder) helpResponse(ctx context.Context) string {
	stats, err := r.advisor.Statistics(ctx)
	corpusNote := ""
	if err == nil && stats.TotalIncidents > 0 {
		corpusNote = fmt.Sprintf(
			"\nI have %d historical incidents and %d corrective actions to draw on.",
			stats.TotalIncidents, stats.TotalActions)
	}

	return `Hi! I'm your safety incident advisor. Here's what I can do:

- Describe an incident and I'll find similar past cases and recommend actions
- Ask for recommendations, e.g. "What should we do about a chemical spill?"
- Ask for training suggestions, e.g. "What training for confined space work?"
- Ask for statistics, e.g. "How many high-risk incidents do we have?"
- Search incidents, e.g. "Show me incidents involving pressure release"
` + corpusNote
}

// statsResponse formats the corpus overview.
func (r *Responder) statsResponse(ctx context.Context) (string, error) {
	stats, err := r.advisor.Statistics(ctx)
	if err != nil {
		return "", fmt.Errorf("statistics: %w", err)
	}

	var b strings.Builder
	b.WriteString("Incident Database Overview\n\n")
	fmt.Fprintf(&b, "Total incidents: %d\n", stats.TotalIncidents)
	fmt.Fprintf(&b, "Total corrective actions: %d\n", stats.TotalActions)

	writeBreakdown(&b, "By risk level", stats.ByRiskLevel, riskMarker)
	writeBreakdown(&b, "By category", stats.ByCategory, nil)
	writeBreakdown(&b, "By severity", stats.BySeverity, nil)
	writeBreakdown(&b, "By location", stats.ByLocation, nil)

	return b.String(), nil
}

// trainingResponse formats lessons and good practices for the query.
func (r *Responder) trainingResponse(ctx context.Context, message string) (string, error) {
	suggestions, err := r.advisor.TrainingSuggestions(ctx, message, 0)
	if err != nil {
		return "", fmt.Errorf("training suggestions: %w", err)
	}

	if len(suggestions.Lessons) == 0 && len(suggestions.GoodPractices) == 0 {
		return "I couldn't find specific training recommendations for that topic. " +
			"Try being more specific about the type of work or hazard.", nil
	}

	if prose, ok := r.synthesise(ctx, message, services.RenderTrainingContext(suggestions)); ok {
		return prose, nil
	}

	var b strings.Builder
	b.WriteString("Training & Prevention Recommendations\n")

	if len(suggestions.Lessons) > 0 {
		b.WriteString("\nLessons from similar incidents:\n")
		for i, l := range suggestions.Lessons {
			fmt.Fprintf(&b, "%d. [%s] %s %s\n   %s\n",
				i+1, l.CaseID, l.Title, riskMarker(l.RiskLevel), truncate(l.Text, 300))
		}
	}

	if len(suggestions.GoodPractices) > 0 {
		b.WriteString("\nWhat went well (good practices to reinforce):\n")
		for i, g := range suggestions.GoodPractices {
			fmt.Fprintf(&b, "%d. [%s] %s\n   %s\n",
				i+1, g.CaseID, g.Title, truncate(g.Text, 300))
		}
	}

	return b.String(), nil
}

// searchResponse formats ranked incidents, extracting risk-level
// filters mentioned in the message.
func (r *Responder) searchResponse(ctx context.Context, message string) (string, error) {
	opts := domain.SearchOptions{
		TopN:    10,
		Filters: extractFilters(message),
	}

	results, err := r.advisor.Search(ctx, message, opts)
	if err != nil {
		return "", fmt.Errorf("search: %w", err)
	}

	if len(results) == 0 {
		return "No incidents found matching your search. Try different keywords.", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d incidents:\n\n", len(results))
	for i, res := range results {
		inc := res.Incident
		fmt.Fprintf(&b, "%d. %s (%d%% match)\n", i+1, inc.Title, int(res.Similarity*100))
		fmt.Fprintf(&b, "   %s %s | %s | %s\n", riskMarker(inc.RiskLevel), orNA(inc.RiskLevel), orNA(inc.Setting), orNA(inc.Date))
		if !domain.IsNullText(inc.WhatHappened) {
			fmt.Fprintf(&b, "   > %s\n", truncate(inc.WhatHappened, snippetLength))
		}
		b.WriteString("\n")
	}

	return b.String(), nil
}

// recommendResponse formats similar incidents and their deduplicated
// corrective actions, preferring prose synthesis when available.
func (r *Responder) recommendResponse(ctx context.Context, message string) (string, error) {
	recs, err := r.advisor.Recommendations(ctx, message, 0)
	if err != nil {
		return "", fmt.Errorf("recommendations: %w", err)
	}

	if len(recs.Incidents) == 0 {
		return "I couldn't find similar past incidents for that description. " +
			"Try adding more detail about what happened.", nil
	}

	if prose, ok := r.synthesise(ctx, message, services.RenderRecommendationContext(recs)); ok {
		return prose, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d similar past incidents:\n\n", len(recs.Incidents))
	for i, res := range recs.Incidents {
		inc := res.Incident
		fmt.Fprintf(&b, "%d. [%s] %s (%d%% match) %s\n",
			i+1, inc.CaseID, inc.Title, int(res.Similarity*100), riskMarker(inc.RiskLevel))
	}

	deduped := services.DedupActions(recs.Actions, maxDisplayedActions)
	if len(deduped) > 0 {
		b.WriteString("\nRecommended actions (from similar past incidents):\n")
		for i, act := range deduped {
			fmt.Fprintf(&b, "%d. %s\n   Owner: %s | Timing: %s | From: %s\n",
				i+1, act.Action.Action, orNA(act.Action.Owner), orNA(act.Action.Timing), act.CaseID)
		}
	}

	return b.String(), nil
}

// synthesise attempts prose synthesis; a failure degrades silently to
// the structured rendering.
func (r *Responder) synthesise(ctx context.Context, question, contextBlock string) (string, bool) {
	if r.synth == nil {
		return "", false
	}
	prose, err := r.synth.Synthesise(ctx, question, contextBlock)
	if err != nil {
		logger.Warn("Synthesis unavailable, using structured response: %v", err)
		return "", false
	}
	return prose, true
}

// extractFilters pulls risk-level constraints mentioned in the message.
func extractFilters(message string) map[string]string {
	msg := strings.ToLower(message)
	switch {
	case strings.Contains(msg, "high risk") || strings.Contains(msg, "high-risk"):
		return map[string]string{"risk_level": "high"}
	case strings.Contains(msg, "medium risk") || strings.Contains(msg, "medium-risk"):
		return map[string]string{"risk_level": "medium"}
	case strings.Contains(msg, "low risk") || strings.Contains(msg, "low-risk"):
		return map[string]string{"risk_level": "low"}
	default:
		return nil
	}
}

// writeBreakdown appends a sorted count section. marker may be nil.
func writeBreakdown(b *strings.Builder, heading string, counts map[string]int, marker func(string) string) {
	if len(counts) == 0 {
		return
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	// Highest count first, then name, so output is stable.
	sort.Slice(keys, func(a, b int) bool {
		if counts[keys[a]] != counts[keys[b]] {
			return counts[keys[a]] > counts[keys[b]]
		}
		return keys[a] < keys[b]
	})

	fmt.Fprintf(b, "\n%s:\n", heading)
	for _, k := range keys {
		if marker != nil {
			fmt.Fprintf(b, "  %s %s: %d\n", marker(k), k, counts[k])
		} else {
			fmt.Fprintf(b, "  %s: %d\n", k, counts[k])
		}
	}
}

// riskMarker maps a risk level to a display tier marker.
func riskMarker(riskLevel string) string {
	lower := strings.ToLower(riskLevel)
	switch {
	case strings.Contains(lower, "high"):
		return "🔴"
	case strings.Contains(lower, "medium"):
		return "🟡"
	default:
		return "🟢"
	}
}

// truncate shortens text to max bytes with an ellipsis, never
// splitting a multibyte rune.
func truncate(text string, max int) string {
	text = strings.TrimSpace(text)
	if len(text) <= max {
		return text
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}

// orNA substitutes a placeholder for missing values.
func orNA(val string) string {
	if domain.IsNullText(val) {
		return "N/A"
	}
	return val
}
