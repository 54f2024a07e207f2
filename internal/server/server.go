// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates concrete implementations and
// injects them into the tools, prompts and resources that depend on them.
// No business logic lives here, only wiring.
package server

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/HendryAvila/govassess/internal/answers"
	"github.com/HendryAvila/govassess/internal/assessment"
	"github.com/HendryAvila/govassess/internal/catalog"
	"github.com/HendryAvila/govassess/internal/config"
	"github.com/HendryAvila/govassess/internal/prompts"
	"github.com/HendryAvila/govassess/internal/recommend"
	"github.com/HendryAvila/govassess/internal/report"
	"github.com/HendryAvila/govassess/internal/resources"
	"github.com/HendryAvila/govassess/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// NewService builds the assessment service from configuration.
//
// Report history is an optional subsystem: if it fails to open, the
// service keeps working without it and a warning is logged. The returned
// cleanup is always non-nil.
func NewService(cfg config.Config, logger *zap.Logger) (*assessment.Service, func(), error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	cat, err := catalog.Default()
	if err != nil {
		return nil, noop, fmt.Errorf("loading question catalog: %w", err)
	}
	table, err := recommend.DefaultTable()
	if err != nil {
		return nil, noop, fmt.Errorf("loading recommendation table: %w", err)
	}

	if mapping, ok := cat.Module(catalog.ModuleMapping); ok {
		for _, k := range table.Unreachable(mapping) {
			logger.Warn("recommendation entry can never match the mapping questionnaire",
				zap.String("key", k.String()),
			)
		}
	}

	store := answers.NewFileStore(cfg.AnswersPath(), logger, cat.IDs()...)
	svc, err := assessment.New(cat, table, store, logger)
	if err != nil {
		return nil, noop, err
	}

	cleanup := noop
	if path := cfg.HistoryPath(); path == "" {
		logger.Info("report history disabled by configuration")
	} else if history, err := report.OpenHistory(path); err != nil {
		logger.Warn("report history disabled", zap.String("path", path), zap.Error(err))
	} else {
		svc.SetHistory(history)
		cleanup = func() {
			if err := history.Close(); err != nil {
				logger.Warn("report history close", zap.Error(err))
			}
		}
	}

	logger.Info("assessment service ready",
		zap.String("answers", cfg.AnswersPath()),
		zap.Int("modules", len(cat.Modules())),
		zap.Int("recommendations", table.Len()),
	)
	return svc, cleanup, nil
}

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. This is the single place where all
// dependencies are resolved.
//
// The returned cleanup function closes the history database and must be
// called on shutdown (typically via defer).
func New(cfg config.Config, logger *zap.Logger) (*server.MCPServer, func(), error) {
	svc, cleanup, err := NewService(cfg, logger)
	if err != nil {
		return nil, noop, err
	}

	s := server.NewMCPServer(
		"govassess",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register assessment tools ---

	modulesTool := tools.NewModulesTool(svc)
	s.AddTool(modulesTool.Definition(), modulesTool.Handle)

	questionsTool := tools.NewQuestionsTool(svc, cfg.QuestionsPerPage)
	s.AddTool(questionsTool.Definition(), questionsTool.Handle)

	answerTool := tools.NewAnswerTool(svc)
	s.AddTool(answerTool.Definition(), answerTool.Handle)

	resetTool := tools.NewResetTool(svc)
	s.AddTool(resetTool.Definition(), resetTool.Handle)

	resultsTool := tools.NewResultsTool(svc)
	s.AddTool(resultsTool.Definition(), resultsTool.Handle)

	recommendTool := tools.NewRecommendModelsTool(svc)
	s.AddTool(recommendTool.Definition(), recommendTool.Handle)

	exportTool := tools.NewExportTool(svc, cfg.ExportPath())
	s.AddTool(exportTool.Definition(), exportTool.Handle)

	historyTool := tools.NewHistoryTool(svc)
	s.AddTool(historyTool.Definition(), historyTool.Handle)

	guideTool := tools.NewGuideTool(svc)
	s.AddTool(guideTool.Definition(), guideTool.Handle)

	// --- Register prompts ---

	startPrompt := prompts.NewStartPrompt(svc.Catalog())
	s.AddPrompt(startPrompt.Definition(), startPrompt.Handle)

	statusPrompt := prompts.NewStatusPrompt()
	s.AddPrompt(statusPrompt.Definition(), statusPrompt.Handle)

	// --- Register resources ---

	rh := resources.NewHandler(svc)
	s.AddResource(rh.AnswersResource(), rh.HandleAnswers)
	s.AddResource(rh.CatalogResource(), rh.HandleCatalog)

	return s, cleanup, nil
}

func noop() {}

func serverInstructions() string {
	return `govassess runs AI governance self-assessments: multiple-choice questionnaires
scored per category, classified into compliance levels, and exported as reports.

## Modules
- ai-mapping: match ML model families to data, task and constraints (includes model recommendations)
- ai-regulation: regulatory compliance
- responsible-ai: responsible AI practices
- ai-risk: NIST AI Risk Management Framework
- omb-m-25-21: OMB memorandum M-25-21
- eo-14179: Executive Order 14179
- title-13: Title 13 data protection
- cipsea: CIPSEA confidentiality

## Workflow
1. assess_modules to see progress across modules
2. assess_guide for background on a module
3. assess_questions page by page; ask the user each question
4. assess_answer to record the option the user picked (exact text or 1-based number)
5. assess_results for scores, compliance level and gap advice
6. assess_export to produce the JSON, Markdown or HTML report
7. assess_history to compare with earlier exports

## Scoring
- Options are ordered from most to least compliant
- Only answered questions count toward a score
- 90% or more is High Compliance, 70% or more is Moderate, otherwise Low
- Categories below 70% are named in the advice

## Important Rules
- NEVER answer on the user's behalf; record only what the user chose
- Present options exactly as written
- assess_reset is destructive; confirm with the user first`
}
