package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/govassess/internal/assessment"
)

// QuestionsTool handles the assess_questions MCP tool.
// It shows one page of a module's questionnaire with the recorded answers.
type QuestionsTool struct {
	svc     *assessment.Service
	perPage int
}

// NewQuestionsTool creates a QuestionsTool showing perPage questions per page.
func NewQuestionsTool(svc *assessment.Service, perPage int) *QuestionsTool {
	return &QuestionsTool{svc: svc, perPage: perPage}
}

// Definition returns the MCP tool definition for registration.
func (t *QuestionsTool) Definition() mcp.Tool {
	return mcp.NewTool("assess_questions",
		mcp.WithDescription(
			"Show a page of questions for an assessment module. Each question lists its "+
				"absolute question_index, category and options, ordered from most to least compliant. "+
				"Already answered questions are marked.",
		),
		mcp.WithString("module",
			mcp.Required(),
			mcp.Description("Module ID (see assess_modules)"),
		),
		mcp.WithNumber("page",
			mcp.Description("Zero-based page number (default: 0)"),
		),
	)
}

// Handle processes the assess_questions tool call.
func (t *QuestionsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	module, errRes := requireModule(req)
	if errRes != nil {
		return errRes, nil
	}
	pageNum, err := intArg(req, "page", 0)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	m, err := t.svc.Module(module)
	if err != nil {
		return errorResult(err)
	}
	page, err := m.Page(pageNum, t.perPage)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	set, err := t.svc.Answers(module)
	if err != nil {
		return errorResult(err)
	}

	var sb strings.Builder
	title := m.QuestionnaireTitle
	if title == "" {
		title = m.Title
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "Page %d of %d (questions %d-%d of %d)\n\n",
		page.Page+1, page.TotalPages, page.Start, page.Start+len(page.Questions)-1, len(m.Questions))

	for i, q := range page.Questions {
		idx := page.Start + i
		current, answered := set[idx]
		mark := " "
		if answered {
			mark = "x"
		}
		fmt.Fprintf(&sb, "### [%s] %d. %s\n", mark, idx, q.Text)
		fmt.Fprintf(&sb, "_Category: %s_\n\n", q.Category)
		for n, opt := range q.Options {
			marker := ""
			if answered && opt == current {
				marker = " <- selected"
			}
			fmt.Fprintf(&sb, "%d. %s%s\n", n+1, opt, marker)
		}
		sb.WriteString("\n")
	}

	if page.Page+1 < page.TotalPages {
		fmt.Fprintf(&sb, "Next: assess_questions(module=%q, page=%d)\n", module, page.Page+1)
	} else {
		fmt.Fprintf(&sb, "Last page. See scores with assess_results(module=%q).\n", module)
	}
	return mcp.NewToolResultText(sb.String()), nil
}
