package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleValuesResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns values as JSON array", func(t *testing.T) {
		mockAdvisor := &mockAdvisorService{
			categories: []string{"Occupational Safety", "Process Safety"},
		}
		server, err := NewServer(&Ports{Advisor: mockAdvisor})
		require.NoError(t, err)

		handler := server.handleValuesResource(func(ctx context.Context) []string {
			return server.ports.Advisor.Categories(ctx)
		})

		req := makeReadResourceRequest("advisor://categories")
		result, err := handler(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "advisor://categories", result.Contents[0].URI)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, "Occupational Safety")
		assert.Contains(t, result.Contents[0].Text, "Process Safety")
	})

	t.Run("nil values yield empty array", func(t *testing.T) {
		server, err := NewServer(&Ports{Advisor: &mockAdvisorService{}})
		require.NoError(t, err)

		handler := server.handleValuesResource(func(_ context.Context) []string {
			return nil
		})

		req := makeReadResourceRequest("advisor://risk-levels")
		result, err := handler(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})
}
