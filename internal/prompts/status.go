package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// StatusPrompt handles the assess-status MCP prompt.
// It instructs the AI to summarize progress across every module.
type StatusPrompt struct{}

// NewStatusPrompt creates a StatusPrompt.
func NewStatusPrompt() *StatusPrompt {
	return &StatusPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StatusPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("assess-status",
		mcp.WithPromptDescription(
			"Check your assessment progress. "+
				"Shows which modules are started, their scores and compliance levels, "+
				"and what to do next.",
		),
	)
}

// Handle processes the assess-status prompt request.
func (p *StatusPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Assessment Status",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Please run `assess_modules` to check my assessment progress.\n\n" +
						"Then:\n" +
						"1. Show me which modules are complete, in progress or not started\n" +
						"2. For started modules, run `assess_results` and highlight categories below 70%\n" +
						"3. Tell me which module to work on next and why\n" +
						"4. If I have exported reports, run `assess_history` and point out score changes",
				),
			},
		},
	}, nil
}
