package scoring

import (
	"strings"
	"testing"

	"github.com/HendryAvila/govassess/internal/answers"
	"github.com/HendryAvila/govassess/internal/catalog"
)

func abcQuestion(category string) catalog.Question {
	return catalog.Question{
		Text:     "q",
		Category: category,
		Weight:   1,
		Options:  []string{"Alpha", "Beta", "Gamma"},
	}
}

// --- ComputeModuleScore ---

func TestComputeModuleScore_FirstOptionIsFullMarks(t *testing.T) {
	qs := []catalog.Question{abcQuestion("X")}
	got := ComputeModuleScore(answers.Set{0: "Alpha"}, qs)
	want := ModuleScore{Score: 3, MaxScore: 3, Percentage: 100}
	if got != want {
		t.Errorf("ComputeModuleScore = %+v, want %+v", got, want)
	}
}

func TestComputeModuleScore_LastOptionScoresOne(t *testing.T) {
	qs := []catalog.Question{abcQuestion("X")}
	got := ComputeModuleScore(answers.Set{0: "Gamma"}, qs)
	want := ModuleScore{Score: 1, MaxScore: 3, Percentage: 33}
	if got != want {
		t.Errorf("ComputeModuleScore = %+v, want %+v", got, want)
	}
}

func TestComputeModuleScore_ZeroState(t *testing.T) {
	qs := []catalog.Question{abcQuestion("X"), abcQuestion("Y")}
	for name, set := range map[string]answers.Set{"nil": nil, "empty": {}} {
		t.Run(name, func(t *testing.T) {
			got := ComputeModuleScore(set, qs)
			if got != (ModuleScore{}) {
				t.Errorf("ComputeModuleScore(%s) = %+v, want zero", name, got)
			}
		})
	}
}

func TestComputeModuleScore_EmptyCatalog(t *testing.T) {
	got := ComputeModuleScore(answers.Set{0: "Alpha"}, nil)
	if got != (ModuleScore{}) {
		t.Errorf("ComputeModuleScore(nil catalog) = %+v, want zero", got)
	}
}

func TestComputeModuleScore_SkipsStaleAnswers(t *testing.T) {
	qs := []catalog.Question{abcQuestion("X")}
	set := answers.Set{
		0:  "Beta",    // valid: 2/3
		7:  "Alpha",   // index beyond catalog
		-1: "Alpha",   // negative index
		1:  "Unknown", // also beyond catalog
	}
	got := ComputeModuleScore(set, qs)
	want := ModuleScore{Score: 2, MaxScore: 3, Percentage: 67}
	if got != want {
		t.Errorf("ComputeModuleScore = %+v, want %+v", got, want)
	}

	got = ComputeModuleScore(answers.Set{0: "Delta"}, qs)
	if got != (ModuleScore{}) {
		t.Errorf("unknown option should be skipped, got %+v", got)
	}
}

func TestComputeModuleScore_WeightMultipliesBothSides(t *testing.T) {
	heavy := abcQuestion("X")
	heavy.Weight = 3
	qs := []catalog.Question{heavy, abcQuestion("X")}

	// heavy: Beta -> 2*3 of 3*3; light: Alpha -> 3 of 3.
	got := ComputeModuleScore(answers.Set{0: "Beta", 1: "Alpha"}, qs)
	want := ModuleScore{Score: 9, MaxScore: 12, Percentage: 75}
	if got != want {
		t.Errorf("ComputeModuleScore = %+v, want %+v", got, want)
	}
}

func TestComputeModuleScore_Idempotent(t *testing.T) {
	qs := []catalog.Question{abcQuestion("X"), abcQuestion("Y")}
	set := answers.Set{0: "Beta", 1: "Gamma"}
	first := ComputeModuleScore(set, qs)
	second := ComputeModuleScore(set, qs)
	if first != second {
		t.Errorf("results differ: %+v vs %+v", first, second)
	}
}

func TestComputeModuleScore_PercentageBounds(t *testing.T) {
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	for _, m := range c.Modules() {
		for rank := 0; rank < 4; rank++ {
			set := answers.Set{}
			for i, q := range m.Questions {
				r := rank
				if r >= len(q.Options) {
					r = len(q.Options) - 1
				}
				set[i] = q.Options[r]
			}
			got := ComputeModuleScore(set, m.Questions)
			if got.Percentage < 0 || got.Percentage > 100 {
				t.Errorf("%s rank %d: percentage %d out of bounds", m.ID, rank, got.Percentage)
			}
		}
	}
}

// --- OptionScore ---

func TestOptionScore_Monotonic(t *testing.T) {
	q := catalog.Question{Category: "X", Weight: 2, Options: []string{"a", "b", "c", "d", "e"}}
	qs := []catalog.Question{q}

	best, _, ok := OptionScore(qs, 0, "a")
	if !ok {
		t.Fatal("rank 0 should be valid")
	}
	for _, o := range q.Options[1:] {
		s, _, _ := OptionScore(qs, 0, o)
		if s > best {
			t.Errorf("option %q scored %d > rank-0 score %d", o, s, best)
		}
	}
}

func TestOptionScore_ZeroWeightTreatedAsOne(t *testing.T) {
	q := abcQuestion("X")
	q.Weight = 0
	s, max, ok := OptionScore([]catalog.Question{q}, 0, "Alpha")
	if !ok || s != 3 || max != 3 {
		t.Errorf("OptionScore = %d/%d ok=%v, want 3/3 true", s, max, ok)
	}
}

// --- ComputeCategoryScores ---

func TestComputeCategoryScores_PartiallyAnswered(t *testing.T) {
	four := catalog.Question{Category: "X", Weight: 1, Options: []string{"a", "b", "c", "d"}}
	other := catalog.Question{Category: "Y", Weight: 1, Options: []string{"a", "b", "c", "d"}}
	got := ComputeCategoryScores(answers.Set{0: "a"}, []catalog.Question{four, other})

	if len(got) != 2 {
		t.Fatalf("got %d categories, want 2", len(got))
	}
	x, y := got[0], got[1]
	if x.Category != "X" || x.Percentage != 100 || x.Answered != 1 || x.Questions != 1 {
		t.Errorf("X = %+v", x)
	}
	if y.Category != "Y" || y.Percentage != 0 || y.Answered != 0 || y.Questions != 1 || y.MaxScore != 0 {
		t.Errorf("Y = %+v", y)
	}
}

func TestComputeCategoryScores_EmptySetYieldsNoRows(t *testing.T) {
	qs := []catalog.Question{abcQuestion("X")}
	got := ComputeCategoryScores(answers.Set{}, qs)
	if got == nil {
		t.Fatal("want empty slice, got nil")
	}
	if len(got) != 0 {
		t.Errorf("got %d categories, want 0", len(got))
	}
}

func TestComputeCategoryScores_FirstSeenOrderAndCounts(t *testing.T) {
	qs := []catalog.Question{
		abcQuestion("B"), abcQuestion("A"), abcQuestion("B"), abcQuestion("C"),
	}
	got := ComputeCategoryScores(answers.Set{2: "Gamma", 1: "Alpha"}, qs)

	var names []string
	for _, c := range got {
		names = append(names, c.Category)
	}
	if strings.Join(names, ",") != "B,A,C" {
		t.Fatalf("order = %v, want B,A,C", names)
	}
	if got[0].Questions != 2 || got[0].Answered != 1 || got[0].Percentage != 33 {
		t.Errorf("B = %+v", got[0])
	}
	if got[1].Percentage != 100 {
		t.Errorf("A = %+v", got[1])
	}
}

func TestComputeCategoryScores_AllStaleStillListsCategories(t *testing.T) {
	qs := []catalog.Question{abcQuestion("X")}
	got := ComputeCategoryScores(answers.Set{9: "Alpha"}, qs)
	if len(got) != 1 || got[0].Answered != 0 || got[0].Percentage != 0 {
		t.Errorf("got %+v", got)
	}
}

func TestCategoryTotalsMatchModuleScore(t *testing.T) {
	qs := []catalog.Question{abcQuestion("A"), abcQuestion("B"), abcQuestion("A")}
	set := answers.Set{0: "Alpha", 1: "Beta", 2: "Gamma"}

	ms := ComputeModuleScore(set, qs)
	var score, max int
	for _, c := range ComputeCategoryScores(set, qs) {
		score += c.Score
		max += c.MaxScore
	}
	if score != ms.Score || max != ms.MaxScore {
		t.Errorf("category sums %d/%d != module %d/%d", score, max, ms.Score, ms.MaxScore)
	}
}

// --- ComputeProgress ---

func TestComputeProgress(t *testing.T) {
	qs := []catalog.Question{abcQuestion("X"), abcQuestion("X"), abcQuestion("X")}
	got := ComputeProgress(answers.Set{0: "Alpha", 2: "bogus", 5: "Alpha"}, qs)
	want := Progress{Answered: 1, Total: 3, Percentage: 33}
	if got != want {
		t.Errorf("ComputeProgress = %+v, want %+v", got, want)
	}
}

// --- Percent ---

func TestPercent(t *testing.T) {
	tests := []struct {
		part, whole, want int
	}{
		{0, 0, 0},
		{5, 0, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{1, 8, 13}, // 12.5 rounds half up
		{3, 8, 38}, // 37.5 rounds half up
		{3, 3, 100},
	}
	for _, tt := range tests {
		if got := Percent(tt.part, tt.whole); got != tt.want {
			t.Errorf("Percent(%d, %d) = %d, want %d", tt.part, tt.whole, got, tt.want)
		}
	}
}
