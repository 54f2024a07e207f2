package report

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/HendryAvila/govassess/internal/answers"
	"github.com/HendryAvila/govassess/internal/catalog"
	"github.com/HendryAvila/govassess/internal/scoring"
)

func testModule() *catalog.Module {
	return &catalog.Module{
		ID:    catalog.ModuleRisk,
		Title: "AI Risk  Management",
		Questions: []catalog.Question{
			{Text: "Q0", Category: "Data", Weight: 1, Options: []string{"a", "b", "c"}},
			{Text: "Q1", Category: "Data", Weight: 1, Options: []string{"a", "b"}},
			{Text: "Q2", Category: "Ethics", Weight: 1, Options: []string{"x", "y", "z", "w"}},
		},
	}
}

var testNow = time.Date(2026, 10, 18, 15, 4, 5, 0, time.UTC)

// --- Build ---

func TestBuild(t *testing.T) {
	set := answers.Set{0: "a", 1: "b", 2: "z"}
	r := Build(testModule(), set, testNow)

	if r.Module != "AI Risk  Management" || r.ModuleID != catalog.ModuleRisk {
		t.Errorf("module = %q (%s)", r.Module, r.ModuleID)
	}
	if r.Date != "2026-10-18" {
		t.Errorf("Date = %s, want 2026-10-18", r.Date)
	}
	// 6 of 9 points.
	if r.OverallScore != 67 {
		t.Errorf("OverallScore = %d, want 67", r.OverallScore)
	}
	if r.ComplianceLevel != "Low Compliance" {
		t.Errorf("ComplianceLevel = %s, want Low Compliance", r.ComplianceLevel)
	}

	want := []CategoryRow{
		{Category: "Data", Score: 80, Questions: 2, Answered: 2},
		{Category: "Ethics", Score: 50, Questions: 1, Answered: 1},
	}
	if len(r.CategoryScores) != len(want) {
		t.Fatalf("got %d category rows, want %d", len(r.CategoryScores), len(want))
	}
	for i := range want {
		if r.CategoryScores[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, r.CategoryScores[i], want[i])
		}
	}

	if r.Recommendations != scoring.AdviseOnGaps(scoring.ComputeCategoryScores(set, testModule().Questions), catalog.ModuleRisk) {
		t.Errorf("Recommendations = %q", r.Recommendations)
	}
	if !strings.Contains(r.Recommendations, "Ethics") || strings.Contains(r.Recommendations, "Data") {
		t.Errorf("advice should name only the gap category: %q", r.Recommendations)
	}
}

func TestBuild_NoAnswers(t *testing.T) {
	r := Build(testModule(), answers.Set{}, testNow)
	if r.OverallScore != 0 || r.ComplianceLevel != "Low Compliance" {
		t.Errorf("empty report = %d %s", r.OverallScore, r.ComplianceLevel)
	}
	if r.CategoryScores == nil || len(r.CategoryScores) != 0 {
		t.Errorf("CategoryScores = %#v, want empty non-nil", r.CategoryScores)
	}
	if r.Recommendations != scoring.WellAlignedAdvice {
		t.Errorf("Recommendations = %q", r.Recommendations)
	}
}

// --- Filenames ---

func TestFilename(t *testing.T) {
	tests := []struct {
		title, date, want string
	}{
		{"AI Model Mapping", "2026-10-18", "AI_Model_Mapping_Assessment_2026-10-18.json"},
		{"AI Risk  Management", "2026-01-02", "AI_Risk_Management_Assessment_2026-01-02.json"},
		{"CIPSEA", "2026-03-04", "CIPSEA_Assessment_2026-03-04.json"},
	}
	for _, tt := range tests {
		if got := Filename(tt.title, tt.date); got != tt.want {
			t.Errorf("Filename(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestFilenameFor(t *testing.T) {
	r := Build(testModule(), answers.Set{}, testNow)
	tests := map[Format]string{
		FormatJSON:     "AI_Risk_Management_Assessment_2026-10-18.json",
		FormatMarkdown: "AI_Risk_Management_Assessment_2026-10-18.md",
		FormatHTML:     "AI_Risk_Management_Assessment_2026-10-18.html",
	}
	for f, want := range tests {
		if got := r.FilenameFor(f); got != want {
			t.Errorf("FilenameFor(%s) = %q, want %q", f, got, want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"":         FormatJSON,
		"JSON":     FormatJSON,
		"markdown": FormatMarkdown,
		"md":       FormatMarkdown,
		"html":     FormatHTML,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %s, %v; want %s", in, got, err, want)
		}
	}
	if _, err := ParseFormat("pdf"); err == nil {
		t.Error("ParseFormat(pdf) should fail")
	}
}

// --- Renderers ---

func TestJSON_FieldNames(t *testing.T) {
	r := Build(testModule(), answers.Set{0: "a"}, testNow)
	data, err := r.JSON()
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	if !strings.Contains(string(data), "\n  \"module\"") {
		t.Errorf("expected two-space indentation:\n%s", data)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	for _, key := range []string{"module", "date", "overallScore", "complianceLevel", "categoryScores", "recommendations"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}
	if len(doc) != 6 {
		t.Errorf("got %d keys, want 6: %s", len(doc), data)
	}

	var rows []map[string]any
	if err := json.Unmarshal(doc["categoryScores"], &rows); err != nil {
		t.Fatalf("categoryScores: %v", err)
	}
	// Unanswered categories still get a row once anything is answered.
	if len(rows) != 2 || rows[0]["category"] != "Data" || rows[0]["answered"] != float64(1) {
		t.Errorf("categoryScores = %v", rows)
	}
	if rows[1]["category"] != "Ethics" || rows[1]["answered"] != float64(0) || rows[1]["score"] != float64(0) {
		t.Errorf("unanswered category row = %v", rows[1])
	}
}

func TestJSON_EmptyCategoriesIsArray(t *testing.T) {
	data, err := Build(testModule(), answers.Set{}, testNow).JSON()
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	if !strings.Contains(string(data), `"categoryScores": []`) {
		t.Errorf("expected empty array:\n%s", data)
	}
}

func TestMarkdown(t *testing.T) {
	r := Build(testModule(), answers.Set{0: "a", 1: "b", 2: "z"}, testNow)
	md := r.Markdown()

	for _, want := range []string{
		"# AI Risk  Management Assessment",
		"**Overall score**: 67%",
		"**Compliance level**: Low Compliance",
		"| Data | 80% | 2/2 |",
		"| Ethics | 50% | 1/1 |",
		"## Recommendations",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestMarkdown_NoAnswers(t *testing.T) {
	md := Build(testModule(), answers.Set{}, testNow).Markdown()
	if !strings.Contains(md, "No questions answered yet") {
		t.Errorf("expected empty notice:\n%s", md)
	}
}

func TestHTML(t *testing.T) {
	r := Build(testModule(), answers.Set{0: "a", 2: "x"}, testNow)
	page, err := r.HTML()
	if err != nil {
		t.Fatalf("HTML() error: %v", err)
	}
	out := string(page)
	for _, want := range []string{"<!DOCTYPE html>", "<h1>", "<table>", "<td>Ethics</td>", "</html>"} {
		if !strings.Contains(out, want) {
			t.Errorf("html missing %q", want)
		}
	}
}

func TestRender_DispatchesByFormat(t *testing.T) {
	r := Build(testModule(), answers.Set{0: "a"}, testNow)

	js, _ := r.Render(FormatJSON)
	if !strings.HasPrefix(string(js), "{") {
		t.Errorf("json render = %q", js)
	}
	md, _ := r.Render(FormatMarkdown)
	if !strings.HasPrefix(string(md), "# ") {
		t.Errorf("markdown render = %q", md)
	}
	html, _ := r.Render(FormatHTML)
	if !strings.HasPrefix(string(html), "<!DOCTYPE html>") {
		t.Errorf("html render = %q", html)
	}
}
