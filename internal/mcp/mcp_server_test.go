package mcp_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderscope/orderscope/internal/contract"
	mcp_internal "github.com/orderscope/orderscope/internal/mcp"
	"github.com/orderscope/orderscope/schema"
)

const sampleExport = `Name,Created at,Lineitem quantity,Lineitem name,Total
#1001,2024-01-05 10:00:00,2,Widget A,50.00
#1002,2024-02-10 12:30:00,3,Widget A,90.00
#1003,2024-02-11 09:00:00,1,Gadget B,25.00
`

func writeSampleExport(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orders.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleExport), 0o644))
	return path
}

func baseConfig() *contract.Config {
	return &contract.Config{
		RowLimit: contract.DefaultRowLimit,
		Output:   schema.JSONOut,
		Aliases:  schema.DefaultAliases(),
	}
}

func TestMCPServerHandlers(t *testing.T) {
	s := mcp_internal.NewMCPServer(baseConfig())
	ctx := context.Background()
	exportPath := writeSampleExport(t)

	t.Run("analyze_product returns report", func(t *testing.T) {
		tool := s.GetTool("analyze_product")
		require.NotNil(t, tool, "Tool analyze_product should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "analyze_product",
				Arguments: map[string]any{
					"file":    exportPath,
					"keyword": "widget",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.False(t, res.IsError)
		text := res.Content[0].(mcp.TextContent).Text
		assert.Contains(t, text, "#1001")
		assert.Contains(t, text, `"total_orders": 2`)
	})

	t.Run("analyze_product with month filter", func(t *testing.T) {
		tool := s.GetTool("analyze_product")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "analyze_product",
				Arguments: map[string]any{
					"file":    exportPath,
					"keyword": "widget",
					"months":  "2024-02",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.False(t, res.IsError)
		text := res.Content[0].(mcp.TextContent).Text
		assert.Contains(t, text, "#1002")
		assert.NotContains(t, text, "#1001")
	})

	t.Run("compare_months returns comparison", func(t *testing.T) {
		tool := s.GetTool("compare_months")
		require.NotNil(t, tool, "Tool compare_months should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "compare_months",
				Arguments: map[string]any{
					"file":    exportPath,
					"keyword": "widget",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.False(t, res.IsError)
		text := res.Content[0].(mcp.TextContent).Text
		assert.Contains(t, text, "2024-01")
		assert.Contains(t, text, "2024-02")
	})

	t.Run("list_products honors limit", func(t *testing.T) {
		tool := s.GetTool("list_products")
		require.NotNil(t, tool, "Tool list_products should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "list_products",
				Arguments: map[string]any{
					"file":  exportPath,
					"limit": 1.0,
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.False(t, res.IsError)
		text := res.Content[0].(mcp.TextContent).Text
		assert.Contains(t, text, "Gadget B")
		assert.NotContains(t, text, "Widget A")
	})
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	s := mcp_internal.NewMCPServer(baseConfig())
	ctx := context.Background()
	exportPath := writeSampleExport(t)

	t.Run("analyze_product missing keyword", func(t *testing.T) {
		tool := s.GetTool("analyze_product")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "analyze_product",
				Arguments: map[string]any{
					"file":    exportPath,
					"keyword": "", // Missing required
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "--keyword is required")
	})

	t.Run("analyze_product invalid months", func(t *testing.T) {
		tool := s.GetTool("analyze_product")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "analyze_product",
				Arguments: map[string]any{
					"file":    exportPath,
					"keyword": "widget",
					"months":  "not-a-month", // Invalid
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid month")
	})

	t.Run("compare_months missing file", func(t *testing.T) {
		tool := s.GetTool("compare_months")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "compare_months",
				Arguments: map[string]any{
					"keyword": "widget",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
	})
}
