// Package resources implements MCP resource handlers for the assessments.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (assess://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/govassess/internal/assessment"
)

const (
	AnswersURI = "assess://session/answers"
	CatalogURI = "assess://catalog/modules"
)

// Handler manages assessment resource endpoints.
type Handler struct {
	svc *assessment.Service
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(svc *assessment.Service) *Handler {
	return &Handler{svc: svc}
}

// AnswersResource returns the MCP resource definition for the saved answers.
func (h *Handler) AnswersResource() mcp.Resource {
	return mcp.NewResource(
		AnswersURI,
		"Recorded Answers",
		mcp.WithResourceDescription("Every recorded answer, keyed by module ID then question index"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleAnswers returns the session in its persisted JSON layout.
func (h *Handler) HandleAnswers(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(req.Params.URI, h.svc.Session().Modules)
}

// CatalogResource returns the MCP resource definition for the module catalog.
func (h *Handler) CatalogResource() mcp.Resource {
	return mcp.NewResource(
		CatalogURI,
		"Assessment Modules",
		mcp.WithResourceDescription("All modules with their questions, categories, options and guides"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleCatalog returns the full catalog as JSON.
func (h *Handler) HandleCatalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(req.Params.URI, h.svc.Catalog().Modules())
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
