package catalog

import "fmt"

// Page is a window of a module's questions. Start is the catalog index of
// the first question, so callers can address answers by absolute index.
type Page struct {
	Page       int        `json:"page"`
	TotalPages int        `json:"total_pages"`
	Start      int        `json:"start"`
	Questions  []Question `json:"questions"`
}

// TotalPages returns how many pages of perPage questions the module has.
func (m *Module) TotalPages(perPage int) int {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return (len(m.Questions) + perPage - 1) / perPage
}

// Page returns the zero-based page of questions.
func (m *Module) Page(page, perPage int) (Page, error) {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	total := m.TotalPages(perPage)
	if page < 0 || page >= total {
		return Page{}, fmt.Errorf("page %d out of range: module %q has %d pages", page, m.ID, total)
	}

	start := page * perPage
	end := start + perPage
	if end > len(m.Questions) {
		end = len(m.Questions)
	}
	return Page{
		Page:       page,
		TotalPages: total,
		Start:      start,
		Questions:  m.Questions[start:end],
	}, nil
}
