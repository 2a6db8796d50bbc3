package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for advisor resources.
	uriScheme = "advisor://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "categories",
		Name:        "categories",
		Description: "Distinct incident categories in the corpus",
		MIMEType:    "application/json",
	}, s.handleValuesResource(func(ctx context.Context) []string {
		return s.ports.Advisor.Categories(ctx)
	}))

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "risk-levels",
		Name:        "risk-levels",
		Description: "Distinct risk levels in the corpus",
		MIMEType:    "application/json",
	}, s.handleValuesResource(func(ctx context.Context) []string {
		return s.ports.Advisor.RiskLevels(ctx)
	}))

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "locations",
		Name:        "locations",
		Description: "Distinct incident locations in the corpus",
		MIMEType:    "application/json",
	}, s.handleValuesResource(func(ctx context.Context) []string {
		return s.ports.Advisor.Locations(ctx)
	}))
}

// handleValuesResource builds a handler serving a JSON string array.
func (s *Server) handleValuesResource(fetch func(context.Context) []string) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		values := fetch(ctx)
		if values == nil {
			values = []string{}
		}

		data, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshalling values: %w", err)
		}

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(data),
			}},
		}, nil
	}
}
