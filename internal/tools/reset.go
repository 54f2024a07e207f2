package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/govassess/internal/assessment"
)

// ResetTool handles the assess_reset MCP tool.
type ResetTool struct {
	svc *assessment.Service
}

// NewResetTool creates a ResetTool.
func NewResetTool(svc *assessment.Service) *ResetTool {
	return &ResetTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *ResetTool) Definition() mcp.Tool {
	return mcp.NewTool("assess_reset",
		mcp.WithDescription(
			"Clear every recorded answer for one module. Other modules are not affected. "+
				"This cannot be undone; confirm with the user first.",
		),
		mcp.WithString("module",
			mcp.Required(),
			mcp.Description("Module ID to reset"),
		),
	)
}

// Handle processes the assess_reset tool call.
func (t *ResetTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	module, errRes := requireModule(req)
	if errRes != nil {
		return errRes, nil
	}
	if err := t.svc.Reset(module); err != nil {
		return errorResult(err)
	}
	return mcp.NewToolResultText(fmt.Sprintf("All answers for %q have been cleared.", module)), nil
}
