// Package mcp provides an MCP (Model Context Protocol) server adapter
// for the advisor. It lets AI assistants query the incident corpus for
// similar cases, recommended actions, and training suggestions.
package mcp

import "errors"

// ErrMissingAdvisorService is returned when the advisor service is not provided.
var ErrMissingAdvisorService = errors.New("mcp: advisor service is required")
