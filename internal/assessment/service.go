// Package assessment composes the catalog, the answer store and the
// scoring and recommendation engines into the operations exposed to
// clients.
//
// The Service owns the single in-memory Session. Every mutation is
// persisted as a whole blob before it becomes visible; a failed save
// leaves the previous answers in place.
package assessment

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/HendryAvila/govassess/internal/answers"
	"github.com/HendryAvila/govassess/internal/catalog"
	"github.com/HendryAvila/govassess/internal/recommend"
	"github.com/HendryAvila/govassess/internal/report"
	"github.com/HendryAvila/govassess/internal/scoring"
)

// User-facing validation errors. Callers check them with errors.Is.
var (
	ErrUnknownModule      = errors.New("unknown module")
	ErrQuestionOutOfRange = errors.New("question index out of range")
	ErrInvalidOption      = errors.New("option is not one of the question's choices")
	ErrHistoryDisabled    = errors.New("report history is not available")
)

// HistoryLog is the subset of report.History the service needs.
type HistoryLog interface {
	Save(r report.Report, format report.Format, body []byte) (*report.Entry, error)
	List(moduleID string, limit int) ([]report.Entry, error)
	Get(id string) (*report.Entry, error)
}

// Results is the full scored view of one module.
type Results struct {
	ModuleID   string                  `json:"module_id"`
	Title      string                  `json:"title"`
	Score      scoring.ModuleScore     `json:"score"`
	Categories []scoring.CategoryScore `json:"categories"`
	Compliance scoring.Compliance      `json:"compliance"`
	Advice     string                  `json:"advice"`
	Progress   scoring.Progress        `json:"progress"`
	// Models is set only for the model mapping module.
	Models *recommend.Record `json:"models,omitempty"`
}

// ModuleStatus is one row of the cross-module overview.
type ModuleStatus struct {
	ID         string             `json:"id"`
	Title      string             `json:"title"`
	Progress   scoring.Progress   `json:"progress"`
	Score      int                `json:"score"`
	Compliance scoring.Compliance `json:"compliance"`
}

// Service is safe for concurrent use.
type Service struct {
	cat     *catalog.Catalog
	table   *recommend.Table
	store   answers.Store
	log     *zap.Logger
	history HistoryLog

	mu      sync.Mutex
	session *answers.Session
}

// New loads the persisted session and returns a ready service.
func New(cat *catalog.Catalog, table *recommend.Table, store answers.Store, logger *zap.Logger) (*Service, error) {
	if cat == nil || table == nil || store == nil {
		return nil, errors.New("assessment: catalog, table and store are required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	session, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("assessment: loading answers: %w", err)
	}
	session.Ensure(cat.IDs()...)

	return &Service{
		cat:     cat,
		table:   table,
		store:   store,
		log:     logger,
		session: session,
	}, nil
}

// SetHistory enables report history. A nil log disables it.
func (s *Service) SetHistory(h HistoryLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = h
}

// Catalog returns the question catalog.
func (s *Service) Catalog() *catalog.Catalog {
	return s.cat
}

// Module looks up a module by ID.
func (s *Service) Module(id string) (*catalog.Module, error) {
	m, ok := s.cat.Module(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknownModule, id, s.cat.IDs())
	}
	return m, nil
}

// Answer records option as the answer to question index of module.
func (s *Service) Answer(module string, index int, option string) error {
	m, err := s.Module(module)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(m.Questions) {
		return fmt.Errorf("%w: %d (module %q has %d questions)", ErrQuestionOutOfRange, index, module, len(m.Questions))
	}
	if m.Questions[index].Rank(option) < 0 {
		return fmt.Errorf("%w: %q", ErrInvalidOption, option)
	}

	return s.mutate(func(sess *answers.Session) {
		sess.Set(module, index, option)
	})
}

// Unanswer removes the answer to question index of module.
func (s *Service) Unanswer(module string, index int) error {
	m, err := s.Module(module)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(m.Questions) {
		return fmt.Errorf("%w: %d (module %q has %d questions)", ErrQuestionOutOfRange, index, module, len(m.Questions))
	}
	return s.mutate(func(sess *answers.Session) {
		sess.Unset(module, index)
	})
}

// Reset clears every answer for module.
func (s *Service) Reset(module string) error {
	if _, err := s.Module(module); err != nil {
		return err
	}
	return s.mutate(func(sess *answers.Session) {
		sess.Reset(module)
	})
}

// mutate applies fn to a copy of the session, persists it and only then
// swaps it in.
func (s *Service) mutate(fn func(*answers.Session)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.session.Clone()
	fn(next)
	if err := s.store.Save(next); err != nil {
		return fmt.Errorf("assessment: saving answers: %w", err)
	}
	s.session = next
	return nil
}

// Answers returns a copy of the answers recorded for module.
func (s *Service) Answers(module string) (answers.Set, error) {
	if _, err := s.Module(module); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Answers(module), nil
}

// Session returns a copy of the whole session.
func (s *Service) Session() *answers.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Clone()
}

// Results scores module against the current answers.
func (s *Service) Results(module string) (*Results, error) {
	m, err := s.Module(module)
	if err != nil {
		return nil, err
	}
	set, _ := s.Answers(module)

	score := scoring.ComputeModuleScore(set, m.Questions)
	categories := scoring.ComputeCategoryScores(set, m.Questions)
	res := &Results{
		ModuleID:   m.ID,
		Title:      m.Title,
		Score:      score,
		Categories: categories,
		Compliance: scoring.Classify(score.Percentage),
		Advice:     scoring.AdviseOnGaps(categories, m.ID),
		Progress:   scoring.ComputeProgress(set, m.Questions),
	}
	if m.ID == catalog.ModuleMapping {
		rec := s.table.Recommend(set)
		res.Models = &rec
	}
	return res, nil
}

// RecommendModels returns model suggestions from the mapping answers.
func (s *Service) RecommendModels() recommend.Record {
	s.mu.Lock()
	set := s.session.Answers(catalog.ModuleMapping)
	s.mu.Unlock()
	return s.table.Recommend(set)
}

// Overview summarizes progress and score for every module in catalog
// order.
func (s *Service) Overview() []ModuleStatus {
	s.mu.Lock()
	snapshot := s.session.Clone()
	s.mu.Unlock()

	modules := s.cat.Modules()
	out := make([]ModuleStatus, 0, len(modules))
	for _, m := range modules {
		set := snapshot.Answers(m.ID)
		score := scoring.ComputeModuleScore(set, m.Questions)
		out = append(out, ModuleStatus{
			ID:         m.ID,
			Title:      m.Title,
			Progress:   scoring.ComputeProgress(set, m.Questions),
			Score:      score.Percentage,
			Compliance: scoring.Classify(score.Percentage),
		})
	}
	return out
}

// Export builds the report for module dated now.
func (s *Service) Export(module string, now time.Time) (report.Report, error) {
	m, err := s.Module(module)
	if err != nil {
		return report.Report{}, err
	}
	set, _ := s.Answers(module)
	return report.Build(m, set, now), nil
}

// Archive records an exported report in history. Failures are logged and
// reported as a nil entry; exporting never fails because of history.
func (s *Service) Archive(r report.Report, format report.Format, body []byte) *report.Entry {
	s.mu.Lock()
	h := s.history
	s.mu.Unlock()
	if h == nil {
		return nil
	}

	entry, err := h.Save(r, format, body)
	if err != nil {
		s.log.Warn("report history unavailable, export not recorded",
			zap.String("module", r.ModuleID),
			zap.Error(err),
		)
		return nil
	}
	return entry
}

// History lists archived reports for module (all modules when empty).
func (s *Service) History(module string, limit int) ([]report.Entry, error) {
	if module != "" {
		if _, err := s.Module(module); err != nil {
			return nil, err
		}
	}
	s.mu.Lock()
	h := s.history
	s.mu.Unlock()
	if h == nil {
		return nil, ErrHistoryDisabled
	}
	entries, err := h.List(module, limit)
	if err != nil {
		return nil, fmt.Errorf("assessment: listing history: %w", err)
	}
	return entries, nil
}

// HistoryEntry returns one archived report including its body.
func (s *Service) HistoryEntry(id string) (*report.Entry, error) {
	s.mu.Lock()
	h := s.history
	s.mu.Unlock()
	if h == nil {
		return nil, ErrHistoryDisabled
	}
	return h.Get(id)
}
