package tui

import (
	"errors"

	"github.com/crestline-labs/advisor-cli/internal/core/ports/driving"
	"github.com/crestline-labs/advisor-cli/internal/responder"
)

// ErrMissingResponder is returned when the responder is not provided.
var ErrMissingResponder = errors.New("tui: responder is required")

// Ports aggregates the dependencies required by the chat interface.
type Ports struct {
	// Responder formats advisor results into chat replies.
	Responder *responder.Responder

	// Advisor provides corpus metadata for the status line. Optional.
	Advisor driving.AdvisorService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Responder == nil {
		return ErrMissingResponder
	}
	return nil
}
