// Package scoring turns recorded answers into module and category scores.
//
// Every function here is pure: the answer set and the question list are
// parameters, nothing is read from the session store, and identical inputs
// always produce identical outputs.
//
// Scoring rule: options are ordered from most to least compliant. An answer
// at rank r of a question with n options earns (n - r) * weight out of a
// possible n * weight. Only answered questions count, so the percentage
// reflects answered questions rather than the whole catalog.
package scoring

import (
	"github.com/HendryAvila/govassess/internal/answers"
	"github.com/HendryAvila/govassess/internal/catalog"
)

// ModuleScore is the aggregate score for one module.
type ModuleScore struct {
	Score      int `json:"score"`
	MaxScore   int `json:"max_score"`
	Percentage int `json:"percentage"`
}

// CategoryScore is the score for one category within a module.
type CategoryScore struct {
	Category   string `json:"category"`
	Score      int    `json:"score"`
	MaxScore   int    `json:"max_score"`
	Percentage int    `json:"percentage"`
	Questions  int    `json:"questions"`
	Answered   int    `json:"answered"`
}

// Progress is how much of a module has been answered.
type Progress struct {
	Answered   int `json:"answered"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// OptionScore returns the weighted score and maximum for one answer. ok is
// false when the index has no question or the option is not one of its
// choices; such answers are stale (the catalog changed after they were
// recorded) and callers skip them.
func OptionScore(questions []catalog.Question, index int, option string) (score, max int, ok bool) {
	if index < 0 || index >= len(questions) {
		return 0, 0, false
	}
	q := &questions[index]
	rank := q.Rank(option)
	if rank < 0 {
		return 0, 0, false
	}

	weight := q.Weight
	if weight < 1 {
		weight = 1
	}
	n := len(q.Options)
	return (n - rank) * weight, n * weight, true
}

// ComputeModuleScore scores every valid answer in set against questions.
// An empty set or catalog yields a zero score.
func ComputeModuleScore(set answers.Set, questions []catalog.Question) ModuleScore {
	var ms ModuleScore
	if len(set) == 0 || len(questions) == 0 {
		return ms
	}

	for _, idx := range set.Indices() {
		score, max, ok := OptionScore(questions, idx, set[idx])
		if !ok {
			continue
		}
		ms.Score += score
		ms.MaxScore += max
	}
	ms.Percentage = Percent(ms.Score, ms.MaxScore)
	return ms
}

// ComputeCategoryScores scores answers per category, in the order the
// categories first appear in the catalog.
//
// An empty answer set returns no categories at all rather than zero-filled
// rows: results are only meaningful once something has been answered.
func ComputeCategoryScores(set answers.Set, questions []catalog.Question) []CategoryScore {
	if len(set) == 0 || len(questions) == 0 {
		return []CategoryScore{}
	}

	var out []CategoryScore
	pos := make(map[string]int)
	for _, q := range questions {
		i, ok := pos[q.Category]
		if !ok {
			i = len(out)
			pos[q.Category] = i
			out = append(out, CategoryScore{Category: q.Category})
		}
		out[i].Questions++
	}

	for _, idx := range set.Indices() {
		score, max, ok := OptionScore(questions, idx, set[idx])
		if !ok {
			continue
		}
		c := &out[pos[questions[idx].Category]]
		c.Score += score
		c.MaxScore += max
		c.Answered++
	}

	for i := range out {
		out[i].Percentage = Percent(out[i].Score, out[i].MaxScore)
	}
	return out
}

// ComputeProgress counts valid answers against the catalog size.
func ComputeProgress(set answers.Set, questions []catalog.Question) Progress {
	p := Progress{Total: len(questions)}
	for idx, option := range set {
		if _, _, ok := OptionScore(questions, idx, option); ok {
			p.Answered++
		}
	}
	p.Percentage = Percent(p.Answered, p.Total)
	return p
}

// Percent returns round-half-up(100 * part / whole), or 0 when whole is
// not positive. Integer arithmetic keeps .5 boundaries exact.
func Percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return (200*part + whole) / (2 * whole)
}
