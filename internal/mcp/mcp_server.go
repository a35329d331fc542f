// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/orderscope/orderscope/internal/contract"
)

// NewMCPServer initializes and configures the Orderscope MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"Orderscope Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{baseCfg: baseCfg}

	// --- 1. Tool: analyze_product ---
	s.AddTool(mcp.NewTool("analyze_product",
		mcp.WithDescription("Analyze an order export for a product keyword: matched orders, quantity distribution and average order value."),
		mcp.WithString("file", mcp.Description("Path to the order export (.csv or .xlsx)."), mcp.Required()),
		mcp.WithString("keyword", mcp.Description("Case-insensitive product name filter."), mcp.Required()),
		mcp.WithString("months", mcp.Description("Comma-separated month filter (YYYY-MM or 'unknown').")),
	), h.handleAnalyzeProduct)

	// --- 2. Tool: compare_months ---
	s.AddTool(mcp.NewTool("compare_months",
		mcp.WithDescription("Compare a product's quantity distribution month over month, with percentage-point deltas."),
		mcp.WithString("file", mcp.Description("Path to the order export (.csv or .xlsx)."), mcp.Required()),
		mcp.WithString("keyword", mcp.Description("Case-insensitive product name filter."), mcp.Required()),
		mcp.WithString("months", mcp.Description("Comma-separated month filter (YYYY-MM or 'unknown').")),
	), h.handleCompareMonths)

	// --- 3. Tool: list_products ---
	s.AddTool(mcp.NewTool("list_products",
		mcp.WithDescription("List the distinct product names found in an order export."),
		mcp.WithString("file", mcp.Description("Path to the order export (.csv or .xlsx)."), mcp.Required()),
		mcp.WithNumber("limit", mcp.Description("Limit the number of names returned.")),
	), h.handleListProducts)

	return s
}

// StartMCPServer starts the Orderscope MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
