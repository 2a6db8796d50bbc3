package mcp

import (
	"github.com/crestline-labs/advisor-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Advisor provides search, recommendation, and statistics
	// capabilities over the incident corpus.
	Advisor driving.AdvisorService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Advisor == nil {
		return ErrMissingAdvisorService
	}
	return nil
}
