package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/govassess/internal/assessment"
)

// RecommendModelsTool handles the assess_recommend_models MCP tool.
type RecommendModelsTool struct {
	svc *assessment.Service
}

// NewRecommendModelsTool creates a RecommendModelsTool.
func NewRecommendModelsTool(svc *assessment.Service) *RecommendModelsTool {
	return &RecommendModelsTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *RecommendModelsTool) Definition() mcp.Tool {
	return mcp.NewTool("assess_recommend_models",
		mcp.WithDescription(
			"Suggest model families and libraries from the AI model mapping answers. "+
				"Needs the first four mapping questions (data modality, task, learning paradigm, "+
				"interpretability) answered; otherwise returns guidance on what to answer.",
		),
	)
}

// Handle processes the assess_recommend_models tool call.
func (t *RecommendModelsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(formatModels(t.svc.RecommendModels())), nil
}
