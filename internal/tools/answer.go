package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cast"

	"github.com/HendryAvila/govassess/internal/assessment"
	"github.com/HendryAvila/govassess/internal/catalog"
)

// AnswerTool handles the assess_answer MCP tool.
// It records (or clears) the answer to one question.
type AnswerTool struct {
	svc *assessment.Service
}

// NewAnswerTool creates an AnswerTool.
func NewAnswerTool(svc *assessment.Service) *AnswerTool {
	return &AnswerTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *AnswerTool) Definition() mcp.Tool {
	return mcp.NewTool("assess_answer",
		mcp.WithDescription(
			"Record the answer to one question. The option must be one of the question's "+
				"choices, given either as its exact text or as its 1-based number from assess_questions. "+
				"Answering again replaces the previous answer. Set clear=true to remove an answer.",
		),
		mcp.WithString("module",
			mcp.Required(),
			mcp.Description("Module ID (see assess_modules)"),
		),
		mcp.WithNumber("question_index",
			mcp.Required(),
			mcp.Description("Zero-based question index as shown by assess_questions"),
		),
		mcp.WithString("option",
			mcp.Description("Selected option text, or its 1-based number"),
		),
		mcp.WithBoolean("clear",
			mcp.Description("Remove the recorded answer instead of setting one"),
		),
	)
}

// Handle processes the assess_answer tool call.
func (t *AnswerTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	module, errRes := requireModule(req)
	if errRes != nil {
		return errRes, nil
	}
	if _, ok := req.GetArguments()["question_index"]; !ok {
		return mcp.NewToolResultError("'question_index' is required"), nil
	}
	index, err := intArg(req, "question_index", -1)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if boolArg(req, "clear", false) {
		if err := t.svc.Unanswer(module, index); err != nil {
			return errorResult(err)
		}
		return t.summary(module, fmt.Sprintf("Cleared answer to question %d.", index))
	}

	option := strings.TrimSpace(req.GetString("option", ""))
	if option == "" {
		return mcp.NewToolResultError("'option' is required unless clear=true"), nil
	}

	m, err := t.svc.Module(module)
	if err != nil {
		return errorResult(err)
	}
	option = resolveOption(m, index, option)

	if err := t.svc.Answer(module, index, option); err != nil {
		return errorResult(err)
	}
	return t.summary(module, fmt.Sprintf("Recorded question %d: %s", index, option))
}

// resolveOption maps a 1-based option number to its text. Anything else is
// returned unchanged for validation by the service.
func resolveOption(m *catalog.Module, index int, option string) string {
	if index < 0 || index >= len(m.Questions) {
		return option
	}
	q := &m.Questions[index]
	if q.Rank(option) >= 0 {
		return option
	}
	n, err := cast.ToIntE(option)
	if err != nil || n < 1 || n > len(q.Options) {
		return option
	}
	return q.Options[n-1]
}

func (t *AnswerTool) summary(module, headline string) (*mcp.CallToolResult, error) {
	res, err := t.svc.Results(module)
	if err != nil {
		return errorResult(err)
	}
	return mcp.NewToolResultText(fmt.Sprintf(
		"%s\n\nProgress: %d/%d %s\nCurrent score: %d%% (%s)",
		headline,
		res.Progress.Answered, res.Progress.Total, progressBar(res.Progress.Percentage),
		res.Score.Percentage, res.Compliance.Label,
	)), nil
}
