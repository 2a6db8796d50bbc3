package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/crestline-labs/advisor-cli/internal/core/domain"
)

// SearchInput is the input schema for the search_incidents tool.
type SearchInput struct {
	Query   string            `json:"query" jsonschema:"text describing the incident to find similar past cases for"`
	TopN    int               `json:"top_n,omitempty" jsonschema:"maximum number of results to return (default 5)"`
	Filters map[string]string `json:"filters,omitempty" jsonschema:"substring filters keyed by incident field, e.g. {\"risk_level\": \"high\"}"`
}

// SearchOutput is the output schema for the search_incidents tool.
type SearchOutput struct {
	Results []IncidentOutput `json:"results"`
	Count   int              `json:"count"`
}

// IncidentOutput represents a single ranked incident.
type IncidentOutput struct {
	CaseID       string  `json:"case_id"`
	Title        string  `json:"title"`
	Similarity   float64 `json:"similarity"`
	RiskLevel    string  `json:"risk_level,omitempty"`
	Category     string  `json:"category,omitempty"`
	Location     string  `json:"location,omitempty"`
	Date         string  `json:"date,omitempty"`
	WhatHappened string  `json:"what_happened,omitempty"`
}

// RecommendInput is the input schema for the recommend_actions tool.
type RecommendInput struct {
	Description string `json:"description" jsonschema:"description of the incident or situation to get recommendations for"`
	TopN        int    `json:"top_n,omitempty" jsonschema:"maximum number of similar incidents to draw from (default 5)"`
}

// RecommendOutput is the output schema for the recommend_actions tool.
type RecommendOutput struct {
	Incidents []IncidentOutput `json:"incidents"`
	Actions   []ActionOutput   `json:"actions"`
}

// ActionOutput represents a recommended corrective action with provenance.
type ActionOutput struct {
	Action string `json:"action"`
	Owner  string `json:"owner,omitempty"`
	Timing string `json:"timing,omitempty"`
	CaseID string `json:"case_id"`
	Title  string `json:"title,omitempty"`
}

// TrainingInput is the input schema for the training_suggestions tool.
type TrainingInput struct {
	Topic string `json:"topic" jsonschema:"the work type or hazard to suggest training for"`
	TopN  int    `json:"top_n,omitempty" jsonschema:"maximum number of similar incidents to draw from (default 5)"`
}

// TrainingOutput is the output schema for the training_suggestions tool.
type TrainingOutput struct {
	Lessons       []LessonOutput `json:"lessons"`
	GoodPractices []LessonOutput `json:"good_practices"`
}

// LessonOutput represents one lesson or good practice entry.
type LessonOutput struct {
	Text   string `json:"text"`
	CaseID string `json:"case_id"`
	Title  string `json:"title,omitempty"`
}

// StatsOutput is the output schema for the incident_stats tool.
type StatsOutput struct {
	TotalIncidents int            `json:"total_incidents"`
	TotalActions   int            `json:"total_actions"`
	ByRiskLevel    map[string]int `json:"by_risk_level,omitempty"`
	ByCategory     map[string]int `json:"by_category,omitempty"`
	BySeverity     map[string]int `json:"by_severity,omitempty"`
	ByLocation     map[string]int `json:"by_location,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_incidents",
		Description: "Search historical safety incidents by text similarity",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "recommend_actions",
		Description: "Recommend corrective actions based on similar past incidents",
	}, s.handleRecommend)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "training_suggestions",
		Description: "Suggest training topics from lessons learned in similar incidents",
	}, s.handleTraining)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "incident_stats",
		Description: "Aggregate statistics over the incident corpus",
	}, s.handleStats)
}

// handleSearch handles the search_incidents tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	opts := domain.SearchOptions{
		TopN:    input.TopN,
		Filters: input.Filters,
	}

	results, err := s.ports.Advisor.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]IncidentOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		output.Results[i] = incidentOutput(results[i])
	}

	return nil, output, nil
}

// handleRecommend handles the recommend_actions tool invocation.
func (s *Server) handleRecommend(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RecommendInput,
) (*mcp.CallToolResult, RecommendOutput, error) {
	recs, err := s.ports.Advisor.Recommendations(ctx, input.Description, input.TopN)
	if err != nil {
		return nil, RecommendOutput{}, err
	}

	output := RecommendOutput{
		Incidents: make([]IncidentOutput, len(recs.Incidents)),
		Actions:   make([]ActionOutput, len(recs.Actions)),
	}

	for i := range recs.Incidents {
		output.Incidents[i] = incidentOutput(recs.Incidents[i])
	}
	for i, act := range recs.Actions {
		output.Actions[i] = ActionOutput{
			Action: act.Action.Action,
			Owner:  act.Action.Owner,
			Timing: act.Action.Timing,
			CaseID: act.CaseID,
			Title:  act.Title,
		}
	}

	return nil, output, nil
}

// handleTraining handles the training_suggestions tool invocation.
func (s *Server) handleTraining(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TrainingInput,
) (*mcp.CallToolResult, TrainingOutput, error) {
	suggestions, err := s.ports.Advisor.TrainingSuggestions(ctx, input.Topic, input.TopN)
	if err != nil {
		return nil, TrainingOutput{}, err
	}

	output := TrainingOutput{
		Lessons:       make([]LessonOutput, len(suggestions.Lessons)),
		GoodPractices: make([]LessonOutput, len(suggestions.GoodPractices)),
	}

	for i, l := range suggestions.Lessons {
		output.Lessons[i] = LessonOutput{Text: l.Text, CaseID: l.CaseID, Title: l.Title}
	}
	for i, g := range suggestions.GoodPractices {
		output.GoodPractices[i] = LessonOutput{Text: g.Text, CaseID: g.CaseID, Title: g.Title}
	}

	return nil, output, nil
}

// handleStats handles the incident_stats tool invocation.
func (s *Server) handleStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, StatsOutput, error) {
	report, err := s.ports.Advisor.Statistics(ctx)
	if err != nil {
		return nil, StatsOutput{}, err
	}

	output := StatsOutput{
		TotalIncidents: report.TotalIncidents,
		TotalActions:   report.TotalActions,
		ByRiskLevel:    report.ByRiskLevel,
		ByCategory:     report.ByCategory,
		BySeverity:     report.BySeverity,
		ByLocation:     report.ByLocation,
	}

	return nil, output, nil
}

// incidentOutput flattens a search result for tool output.
func incidentOutput(res domain.SearchResult) IncidentOutput {
	inc := res.Incident
	return IncidentOutput{
		CaseID:       inc.CaseID,
		Title:        inc.Title,
		Similarity:   res.Similarity,
		RiskLevel:    inc.RiskLevel,
		Category:     inc.Category,
		Location:     inc.Location,
		Date:         inc.Date,
		WhatHappened: inc.WhatHappened,
	}
}
