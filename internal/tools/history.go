package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/govassess/internal/assessment"
	"github.com/HendryAvila/govassess/internal/report"
)

// HistoryTool handles the assess_history MCP tool.
// It lists past exports, or shows one export in full when given an ID.
type HistoryTool struct {
	svc *assessment.Service
}

// NewHistoryTool creates a HistoryTool.
func NewHistoryTool(svc *assessment.Service) *HistoryTool {
	return &HistoryTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *HistoryTool) Definition() mcp.Tool {
	return mcp.NewTool("assess_history",
		mcp.WithDescription(
			"List previously exported reports, newest first, to track how scores change over time. "+
				"Pass an id to show one stored report in full.",
		),
		mcp.WithString("module",
			mcp.Description("Only list exports of this module (default: all modules)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of entries (default: 10)"),
		),
		mcp.WithString("id",
			mcp.Description("History entry ID to show in full"),
		),
	)
}

// Handle processes the assess_history tool call.
func (t *HistoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if id := strings.TrimSpace(req.GetString("id", "")); id != "" {
		return t.show(id)
	}

	limit, err := intArg(req, "limit", report.DefaultHistoryLimit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	module := strings.TrimSpace(req.GetString("module", ""))

	entries, err := t.svc.History(module, limit)
	if err != nil {
		return errorResult(err)
	}
	if len(entries) == 0 {
		return mcp.NewToolResultText("No exported reports yet. Use assess_export to create one."), nil
	}

	now := timeNow()
	var sb strings.Builder
	sb.WriteString("# Export History\n\n")
	for _, e := range entries {
		fmt.Fprintf(&sb, "- **%s** %d%% (%s), %s, exported %s\n  id: `%s`\n",
			e.Title, e.OverallScore, e.ComplianceLevel, e.Format,
			humanize.RelTime(e.CreatedAt, now, "ago", "from now"), e.ID,
		)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (t *HistoryTool) show(id string) (*mcp.CallToolResult, error) {
	e, err := t.svc.HistoryEntry(id)
	if errors.Is(err, report.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("no history entry with id %q", id)), nil
	}
	if err != nil {
		return errorResult(err)
	}
	return mcp.NewToolResultText(e.Body), nil
}
