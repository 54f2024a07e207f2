package catalog

import (
	"strings"
	"testing"
	"testing/fstest"
)

// --- Default (embedded) catalog ---

func TestDefault_LoadsAllModules(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}

	want := []string{
		ModuleMapping, ModuleRegulation, ModuleResponsibleAI, ModuleRisk,
		ModuleOMB, ModuleEO14179, ModuleTitle13, ModuleCIPSEA,
	}
	got := c.IDs()
	if len(got) != len(want) {
		t.Fatalf("IDs() = %v, want %d modules", got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("IDs()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestDefault_MappingQuestionOrder(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	m, ok := c.Module(ModuleMapping)
	if !ok {
		t.Fatal("mapping module missing")
	}

	// Recommendation lookups depend on these four positions.
	wantCategories := []string{"Data Modality", "Machine Learning Task", "Learning Paradigm", "Constraints"}
	for i, cat := range wantCategories {
		if m.Questions[i].Category != cat {
			t.Errorf("question %d category = %q, want %q", i, m.Questions[i].Category, cat)
		}
	}
	if m.Questions[0].Options[0] != "Tabular data" {
		t.Errorf("first option = %q, want 'Tabular data'", m.Questions[0].Options[0])
	}
}

func TestDefault_AllWeightsNormalized(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	for _, m := range c.Modules() {
		for i, q := range m.Questions {
			if q.Weight < 1 {
				t.Errorf("%s question %d weight = %d, want >= 1", m.ID, i, q.Weight)
			}
		}
	}
}

func TestDefault_GuideContent(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	m, _ := c.Module(ModuleRisk)
	if len(m.Guide) == 0 {
		t.Error("risk module should carry guide sections")
	}
}

// --- Load validation ---

const validModule = `id: demo
order: 1
title: "Demo"
questions:
  - text: "Q1"
    category: "X"
    options: ["Alpha", "Beta", "Gamma"]
`

func TestLoad_Valid(t *testing.T) {
	c, err := Load(fstest.MapFS{"demo.yaml": {Data: []byte(validModule)}})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	m, ok := c.Module("demo")
	if !ok {
		t.Fatal("demo module missing")
	}
	if m.Questions[0].Weight != 1 {
		t.Errorf("default weight = %d, want 1", m.Questions[0].Weight)
	}
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"missing id", "title: x\nquestions:\n  - text: q\n    category: c\n    options: [a, b]\n", "module id is required"},
		{"no questions", "id: x\ntitle: x\nquestions: []\n", "at least one question"},
		{"one option", "id: x\ntitle: x\nquestions:\n  - text: q\n    category: c\n    options: [a]\n", "at least 2 options"},
		{"duplicate option", "id: x\ntitle: x\nquestions:\n  - text: q\n    category: c\n    options: [a, a]\n", "duplicate option"},
		{"negative weight", "id: x\ntitle: x\nquestions:\n  - text: q\n    category: c\n    weight: -2\n    options: [a, b]\n", "weight must be positive"},
		{"missing category", "id: x\ntitle: x\nquestions:\n  - text: q\n    options: [a, b]\n", "category is required"},
		{"unknown field", "id: x\ntitle: x\nbogus: 1\nquestions:\n  - text: q\n    category: c\n    options: [a, b]\n", "decoding"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(fstest.MapFS{"x.yaml": {Data: []byte(tt.doc)}})
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_DuplicateModuleID(t *testing.T) {
	_, err := Load(fstest.MapFS{
		"a.yaml": {Data: []byte(validModule)},
		"b.yaml": {Data: []byte(validModule)},
	})
	if err == nil || !strings.Contains(err.Error(), "duplicate module id") {
		t.Errorf("expected duplicate module error, got %v", err)
	}
}

func TestLoad_Empty(t *testing.T) {
	if _, err := Load(fstest.MapFS{}); err == nil {
		t.Error("expected error for empty filesystem")
	}
}

// --- Question.Rank ---

func TestQuestionRank(t *testing.T) {
	q := Question{Options: []string{"Alpha", "Beta", "Gamma"}}
	if got := q.Rank("Alpha"); got != 0 {
		t.Errorf("Rank(Alpha) = %d, want 0", got)
	}
	if got := q.Rank("Gamma"); got != 2 {
		t.Errorf("Rank(Gamma) = %d, want 2", got)
	}
	if got := q.Rank("Delta"); got != -1 {
		t.Errorf("Rank(Delta) = %d, want -1", got)
	}
}

// --- Categories ---

func TestModuleCategories_FirstSeenOrder(t *testing.T) {
	m := Module{Questions: []Question{
		{Category: "B"}, {Category: "A"}, {Category: "B"}, {Category: "C"},
	}}
	got := m.Categories()
	want := []string{"B", "A", "C"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
}

// --- Paging ---

func TestPage(t *testing.T) {
	m := &Module{ID: "p"}
	for i := 0; i < 23; i++ {
		m.Questions = append(m.Questions, Question{Text: "q"})
	}

	if got := m.TotalPages(10); got != 3 {
		t.Fatalf("TotalPages(10) = %d, want 3", got)
	}

	last, err := m.Page(2, 10)
	if err != nil {
		t.Fatalf("Page(2) error: %v", err)
	}
	if last.Start != 20 || len(last.Questions) != 3 {
		t.Errorf("Page(2) start=%d len=%d, want 20/3", last.Start, len(last.Questions))
	}

	if _, err := m.Page(3, 10); err == nil {
		t.Error("Page(3) should be out of range")
	}
	if _, err := m.Page(-1, 10); err == nil {
		t.Error("Page(-1) should be out of range")
	}
}

func TestPage_DefaultPerPage(t *testing.T) {
	m := &Module{ID: "p", Questions: make([]Question, 12)}
	p, err := m.Page(0, 0)
	if err != nil {
		t.Fatalf("Page error: %v", err)
	}
	if len(p.Questions) != DefaultPerPage || p.TotalPages != 2 {
		t.Errorf("got %d questions / %d pages, want %d / 2", len(p.Questions), p.TotalPages, DefaultPerPage)
	}
}
