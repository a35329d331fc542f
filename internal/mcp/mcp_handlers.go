package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/orderscope/orderscope/core"
	"github.com/orderscope/orderscope/internal/contract"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

// applyCommonArgs copies the file/keyword/months arguments onto a cloned config.
func (h *toolHandler) applyCommonArgs(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	// Progress bars would corrupt the stdio transport.
	cfg.Progress = false

	if f := request.GetString("file", ""); f != "" {
		cfg.InputFile = f
	}
	if k := request.GetString("keyword", ""); k != "" {
		cfg.Keyword = strings.TrimSpace(k)
	}
	if m := request.GetString("months", ""); m != "" {
		if err := contract.RevalidateMonths(cfg, m); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func (h *toolHandler) handleAnalyzeProduct(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.applyCommonArgs(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	report, _, err := core.GetReportResults(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleCompareMonths(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.applyCommonArgs(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	comparison, _, _, err := core.GetMonthlyResults(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(comparison, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListProducts(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.applyCommonArgs(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	names, err := core.GetProductResults(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing failed: %v", err)), nil
	}
	if l := request.GetInt("limit", 0); l > 0 && l < len(names) {
		names = names[:l]
	}

	jsonData, _ := json.MarshalIndent(names, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
