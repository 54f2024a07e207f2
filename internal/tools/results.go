package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/govassess/internal/assessment"
	"github.com/HendryAvila/govassess/internal/recommend"
)

// ResultsTool handles the assess_results MCP tool.
// It reports the module score, per-category breakdown and gap advice.
type ResultsTool struct {
	svc *assessment.Service
}

// NewResultsTool creates a ResultsTool.
func NewResultsTool(svc *assessment.Service) *ResultsTool {
	return &ResultsTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *ResultsTool) Definition() mcp.Tool {
	return mcp.NewTool("assess_results",
		mcp.WithDescription(
			"Score a module from the recorded answers: overall percentage, compliance level, "+
				"per-category scores and advice for categories below 70%. "+
				"For the AI model mapping module, model recommendations are included.",
		),
		mcp.WithString("module",
			mcp.Required(),
			mcp.Description("Module ID to score"),
		),
	)
}

// Handle processes the assess_results tool call.
func (t *ResultsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	module, errRes := requireModule(req)
	if errRes != nil {
		return errRes, nil
	}
	res, err := t.svc.Results(module)
	if err != nil {
		return errorResult(err)
	}
	return mcp.NewToolResultText(formatResults(res)), nil
}

func formatResults(res *assessment.Results) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s Results\n\n", res.Title)
	fmt.Fprintf(&sb, "**Overall**: %d%% (%d/%d points) %s\n", res.Score.Percentage, res.Score.Score, res.Score.MaxScore, progressBar(res.Score.Percentage))
	fmt.Fprintf(&sb, "**Compliance level**: %s\n", res.Compliance.Label)
	fmt.Fprintf(&sb, "**Answered**: %d/%d\n\n", res.Progress.Answered, res.Progress.Total)

	sb.WriteString("## Categories\n\n")
	if len(res.Categories) == 0 {
		sb.WriteString("No questions answered yet.\n\n")
	} else {
		for _, c := range res.Categories {
			fmt.Fprintf(&sb, "- **%s**: %d%% %s (%d/%d answered)\n",
				c.Category, c.Percentage, progressBar(c.Percentage), c.Answered, c.Questions)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Recommendations\n\n")
	sb.WriteString(res.Advice)
	sb.WriteString("\n")

	if res.Models != nil {
		sb.WriteString("\n")
		sb.WriteString(formatModels(*res.Models))
	}
	return sb.String()
}

func formatModels(rec recommend.Record) string {
	var sb strings.Builder
	sb.WriteString("## Model Recommendations\n\n")
	for _, r := range rec.Recommendations {
		fmt.Fprintf(&sb, "- %s\n", r)
	}
	if rec.Libraries != "" {
		fmt.Fprintf(&sb, "\n**Libraries**: %s\n", rec.Libraries)
	}
	return sb.String()
}
