// Package prompts implements MCP prompt handlers for the assessments.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/govassess/internal/catalog"
)

// StartPrompt handles the assess-start MCP prompt.
// It walks the AI through running one questionnaire end to end.
type StartPrompt struct {
	cat *catalog.Catalog
}

// NewStartPrompt creates a StartPrompt.
func NewStartPrompt(cat *catalog.Catalog) *StartPrompt {
	return &StartPrompt{cat: cat}
}

// Definition returns the MCP prompt definition for registration.
func (p *StartPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("assess-start",
		mcp.WithPromptDescription(
			"Start (or continue) an AI governance assessment. "+
				"The assistant asks each question in turn, records your answers "+
				"and shows your score when you are done.",
		),
		mcp.WithArgument("module",
			mcp.ArgumentDescription(fmt.Sprintf(
				"Module to assess: %s. Default: %s",
				strings.Join(p.cat.IDs(), ", "), catalog.ModuleMapping,
			)),
		),
	)
}

// Handle processes the assess-start prompt request.
func (p *StartPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	module := catalog.ModuleMapping
	if args := req.Params.Arguments; args != nil {
		if m, ok := args["module"]; ok && m != "" {
			module = m
		}
	}

	m, ok := p.cat.Module(module)
	if !ok {
		return nil, fmt.Errorf("unknown module %q (known: %s)", module, strings.Join(p.cat.IDs(), ", "))
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Start assessment: %s", m.Title),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"I want to complete the '%s' assessment (module ID `%s`, %d questions).\n\n"+
						"Please:\n"+
						"1. Call `assess_guide` with module='%s' and give me a short overview\n"+
						"2. Call `assess_questions` with module='%s', page=0\n"+
						"3. Ask me each question one at a time, listing the options exactly as written\n"+
						"4. Record each answer with `assess_answer` (skip any question I choose not to answer)\n"+
						"5. Continue with the next page until all questions are covered\n"+
						"6. Call `assess_results` and explain my weakest categories\n"+
						"7. Offer to export the report with `assess_export`\n\n"+
						"Never choose an answer for me.",
					m.Title, m.ID, len(m.Questions), m.ID, m.ID,
				)),
			},
		},
	}, nil
}
