package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/govassess/internal/assessment"
)

// GuideTool handles the assess_guide MCP tool.
// It returns the reference guide that accompanies a questionnaire.
type GuideTool struct {
	svc *assessment.Service
}

// NewGuideTool creates a GuideTool.
func NewGuideTool(svc *assessment.Service) *GuideTool {
	return &GuideTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *GuideTool) Definition() mcp.Tool {
	return mcp.NewTool("assess_guide",
		mcp.WithDescription(
			"Show the reference guide for a module: the framework sections and key points "+
				"the questionnaire is built on. Useful before answering.",
		),
		mcp.WithString("module",
			mcp.Required(),
			mcp.Description("Module ID"),
		),
	)
}

// Handle processes the assess_guide tool call.
func (t *GuideTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	module, errRes := requireModule(req)
	if errRes != nil {
		return errRes, nil
	}
	m, err := t.svc.Module(module)
	if err != nil {
		return errorResult(err)
	}

	var sb strings.Builder
	title := m.GuideTitle
	if title == "" {
		title = m.Title
	}
	fmt.Fprintf(&sb, "# %s\n\n%s\n\n", title, m.Description)

	if len(m.Guide) == 0 {
		sb.WriteString("This module has no reference guide. Its categories are:\n\n")
		for _, c := range m.Categories() {
			fmt.Fprintf(&sb, "- %s\n", c)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}

	for _, section := range m.Guide {
		fmt.Fprintf(&sb, "## %s\n\n", section.Title)
		for _, item := range section.Items {
			fmt.Fprintf(&sb, "- %s\n", item)
		}
		sb.WriteString("\n")
	}
	return mcp.NewToolResultText(sb.String()), nil
}
