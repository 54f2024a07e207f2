package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/govassess/internal/assessment"
)

// ModulesTool handles the assess_modules MCP tool.
// It lists every questionnaire with progress and current score.
type ModulesTool struct {
	svc *assessment.Service
}

// NewModulesTool creates a ModulesTool.
func NewModulesTool(svc *assessment.Service) *ModulesTool {
	return &ModulesTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *ModulesTool) Definition() mcp.Tool {
	return mcp.NewTool("assess_modules",
		mcp.WithDescription(
			"List all assessment modules with answer progress, score and compliance level. "+
				"Call this first to pick a module ID for the other assess_* tools.",
		),
	)
}

// Handle processes the assess_modules tool call.
func (t *ModulesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var sb strings.Builder
	sb.WriteString("# Assessment Modules\n\n")
	sb.WriteString("| ID | Module | Answered | Score | Level |\n")
	sb.WriteString("|----|--------|----------|-------|-------|\n")

	for _, row := range t.svc.Overview() {
		fmt.Fprintf(&sb, "| `%s` | %s | %d/%d %s | %d%% | %s |\n",
			row.ID, row.Title,
			row.Progress.Answered, row.Progress.Total, progressBar(row.Progress.Percentage),
			row.Score, row.Compliance.Label,
		)
	}

	sb.WriteString("\nScores count answered questions only.\n")
	return mcp.NewToolResultText(sb.String()), nil
}
