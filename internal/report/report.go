// Package report builds the exportable assessment document for one module
// and renders it as JSON, Markdown or HTML.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/HendryAvila/govassess/internal/answers"
	"github.com/HendryAvila/govassess/internal/catalog"
	"github.com/HendryAvila/govassess/internal/scoring"
)

// DateLayout is the calendar date format used in reports and filenames.
const DateLayout = "2006-01-02"

// Format is an export encoding.
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ParseFormat accepts a format name, defaulting to JSON when empty.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	case FormatHTML:
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("report: unknown format %q (use json, markdown or html)", s)
	}
}

// Extension returns the file extension, including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatHTML:
		return ".html"
	default:
		return ".json"
	}
}

// CategoryRow is one category line of the report. Score is the category
// percentage.
type CategoryRow struct {
	Category  string `json:"category"`
	Score     int    `json:"score"`
	Questions int    `json:"questions"`
	Answered  int    `json:"answered"`
}

// Report is the exported document. Field names in JSON are part of the
// file format.
type Report struct {
	ModuleID        string        `json:"-"`
	Module          string        `json:"module"`
	Date            string        `json:"date"`
	OverallScore    int           `json:"overallScore"`
	ComplianceLevel string        `json:"complianceLevel"`
	CategoryScores  []CategoryRow `json:"categoryScores"`
	Recommendations string        `json:"recommendations"`
}

// Build scores set against module and assembles the report dated now.
func Build(module *catalog.Module, set answers.Set, now time.Time) Report {
	score := scoring.ComputeModuleScore(set, module.Questions)
	categories := scoring.ComputeCategoryScores(set, module.Questions)

	rows := make([]CategoryRow, len(categories))
	for i, c := range categories {
		rows[i] = CategoryRow{
			Category:  c.Category,
			Score:     c.Percentage,
			Questions: c.Questions,
			Answered:  c.Answered,
		}
	}

	return Report{
		ModuleID:        module.ID,
		Module:          module.Title,
		Date:            now.Format(DateLayout),
		OverallScore:    score.Percentage,
		ComplianceLevel: scoring.Classify(score.Percentage).Label,
		CategoryScores:  rows,
		Recommendations: scoring.AdviseOnGaps(categories, module.ID),
	}
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Filename returns the JSON export name for a module title and date.
func Filename(title, date string) string {
	return whitespaceRun.ReplaceAllString(title, "_") + "_Assessment_" + date + FormatJSON.Extension()
}

// FilenameFor returns the export name for r in format f.
func (r Report) FilenameFor(f Format) string {
	name := Filename(r.Module, r.Date)
	return strings.TrimSuffix(name, FormatJSON.Extension()) + f.Extension()
}

// JSON encodes the report with two-space indentation.
func (r Report) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("report: encoding json: %w", err)
	}
	return data, nil
}

// Markdown renders the report as a Markdown document.
func (r Report) Markdown() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s Assessment\n\n", r.Module)
	fmt.Fprintf(&sb, "- **Date**: %s\n", r.Date)
	fmt.Fprintf(&sb, "- **Overall score**: %d%%\n", r.OverallScore)
	fmt.Fprintf(&sb, "- **Compliance level**: %s\n\n", r.ComplianceLevel)

	sb.WriteString("## Category Scores\n\n")
	if len(r.CategoryScores) == 0 {
		sb.WriteString("_No questions answered yet._\n\n")
	} else {
		sb.WriteString("| Category | Score | Answered |\n")
		sb.WriteString("|----------|------:|---------:|\n")
		for _, c := range r.CategoryScores {
			fmt.Fprintf(&sb, "| %s | %d%% | %d/%d |\n", escapeCell(c.Category), c.Score, c.Answered, c.Questions)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Recommendations\n\n")
	sb.WriteString(r.Recommendations)
	sb.WriteString("\n")

	return sb.String()
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// HTML renders the Markdown form to a standalone HTML page.
func (r Report) HTML() ([]byte, error) {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(r.Markdown()), &body); err != nil {
		return nil, fmt.Errorf("report: rendering html: %w", err)
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&page, "<title>%s</title>\n", htmlEscaper.Replace(r.FilenameFor(FormatHTML)))
	page.WriteString("</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}

// Render encodes r in format f.
func (r Report) Render(f Format) ([]byte, error) {
	switch f {
	case FormatMarkdown:
		return []byte(r.Markdown()), nil
	case FormatHTML:
		return r.HTML()
	default:
		return r.JSON()
	}
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
