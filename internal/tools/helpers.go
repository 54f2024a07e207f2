// Package tools implements the MCP tool handlers for the assessment
// questionnaires.
//
// Each tool is a struct holding its dependencies, with Definition()
// returning the mcp.Tool schema and Handle() processing a call. Mistakes
// the user can fix (unknown module, bad index, bad option) come back as
// tool-result errors; failures of the machinery underneath (disk, database)
// are returned as Go errors.
package tools

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cast"

	"github.com/HendryAvila/govassess/internal/assessment"
)

// timeNow is a package-level var to allow test injection.
var timeNow = time.Now

// intArg extracts an integer argument. JSON numbers arrive as float64 and
// some hosts send numeric strings; both are accepted. A missing key yields
// defaultVal.
func intArg(req mcp.CallToolRequest, key string, defaultVal int) (int, error) {
	raw, ok := req.GetArguments()[key]
	if !ok || raw == nil {
		return defaultVal, nil
	}
	v, err := cast.ToIntE(raw)
	if err != nil {
		return 0, fmt.Errorf("'%s' must be an integer, got %v", key, raw)
	}
	return v, nil
}

// boolArg extracts a boolean argument, accepting "true"/"false" strings.
func boolArg(req mcp.CallToolRequest, key string, defaultVal bool) bool {
	raw, ok := req.GetArguments()[key]
	if !ok || raw == nil {
		return defaultVal
	}
	v, err := cast.ToBoolE(raw)
	if err != nil {
		return defaultVal
	}
	return v
}

// requireModule reads the required 'module' argument.
func requireModule(req mcp.CallToolRequest) (string, *mcp.CallToolResult) {
	module := strings.TrimSpace(req.GetString("module", ""))
	if module == "" {
		return "", mcp.NewToolResultError("'module' is required")
	}
	return module, nil
}

// isUserError reports whether err is a validation failure the caller can
// correct.
func isUserError(err error) bool {
	return errors.Is(err, assessment.ErrUnknownModule) ||
		errors.Is(err, assessment.ErrQuestionOutOfRange) ||
		errors.Is(err, assessment.ErrInvalidOption) ||
		errors.Is(err, assessment.ErrHistoryDisabled)
}

// errorResult turns a service error into a tool result or a Go error.
func errorResult(err error) (*mcp.CallToolResult, error) {
	if isUserError(err) {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return nil, err
}

// progressBar renders a ten-cell text bar for a percentage.
func progressBar(percentage int) string {
	if percentage < 0 {
		percentage = 0
	}
	if percentage > 100 {
		percentage = 100
	}
	filled := percentage / 10
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", 10-filled) + "]"
}
