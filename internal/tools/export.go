package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/govassess/internal/assessment"
	"github.com/HendryAvila/govassess/internal/report"
)

// ExportTool handles the assess_export MCP tool.
// It renders the module report and optionally writes it to the export
// directory. Every export is recorded in history when history is enabled.
type ExportTool struct {
	svc       *assessment.Service
	exportDir string
}

// NewExportTool creates an ExportTool writing files under exportDir.
func NewExportTool(svc *assessment.Service, exportDir string) *ExportTool {
	return &ExportTool{svc: svc, exportDir: exportDir}
}

// Definition returns the MCP tool definition for registration.
func (t *ExportTool) Definition() mcp.Tool {
	return mcp.NewTool("assess_export",
		mcp.WithDescription(
			"Export the assessment report for a module as JSON (default), Markdown or HTML. "+
				"The JSON form has the fields module, date, overallScore, complianceLevel, "+
				"categoryScores and recommendations. Set write=true to save it as "+
				"<Module_Title>_Assessment_<date>.<ext> in the export directory.",
		),
		mcp.WithString("module",
			mcp.Required(),
			mcp.Description("Module ID to export"),
		),
		mcp.WithString("format",
			mcp.Description("Output format"),
			mcp.Enum(string(report.FormatJSON), string(report.FormatMarkdown), string(report.FormatHTML)),
		),
		mcp.WithBoolean("write",
			mcp.Description("Write the report to the export directory (default: false)"),
		),
	)
}

// Handle processes the assess_export tool call.
func (t *ExportTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	module, errRes := requireModule(req)
	if errRes != nil {
		return errRes, nil
	}
	format, err := report.ParseFormat(req.GetString("format", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	r, err := t.svc.Export(module, timeNow())
	if err != nil {
		return errorResult(err)
	}
	body, err := r.Render(format)
	if err != nil {
		return nil, err
	}

	t.svc.Archive(r, format, body)

	if !boolArg(req, "write", false) {
		return mcp.NewToolResultText(string(body)), nil
	}

	path := filepath.Join(t.exportDir, r.FilenameFor(format))
	if err := os.MkdirAll(t.exportDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return nil, fmt.Errorf("writing report: %w", err)
	}
	return mcp.NewToolResultText(fmt.Sprintf(
		"Report written to %s\n\nOverall: %d%% (%s)", path, r.OverallScore, r.ComplianceLevel,
	)), nil
}
