// Package answers owns the user's recorded answers.
//
// A Session is an explicit value passed to the scoring and recommendation
// engines; nothing in this repository reads answers from global state.
// Persistence is a single JSON blob shaped as
// {"<module>": {"<question index>": "<option>"}}, overwritten whole on
// every change.
package answers

import "sort"

// Set maps a question index to the selected option for one module.
type Set map[int]string

// Indices returns the answered question indices in ascending order.
func (s Set) Indices() []int {
	idx := make([]int, 0, len(s))
	for i := range s {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	return idx
}

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Session holds one answer set per module.
type Session struct {
	Modules map[string]Set
}

// NewSession creates a session with an empty set for each module ID.
func NewSession(moduleIDs ...string) *Session {
	s := &Session{Modules: make(map[string]Set, len(moduleIDs))}
	for _, id := range moduleIDs {
		s.Modules[id] = Set{}
	}
	return s
}

// Ensure adds empty sets for any module IDs the session does not know yet.
func (s *Session) Ensure(moduleIDs ...string) {
	if s.Modules == nil {
		s.Modules = make(map[string]Set, len(moduleIDs))
	}
	for _, id := range moduleIDs {
		if s.Modules[id] == nil {
			s.Modules[id] = Set{}
		}
	}
}

// Set records option as the answer to question index of module,
// replacing any previous answer.
func (s *Session) Set(module string, index int, option string) {
	s.Ensure(module)
	s.Modules[module][index] = option
}

// Unset removes a single answer. It is a no-op if none was recorded.
func (s *Session) Unset(module string, index int) {
	if set := s.Modules[module]; set != nil {
		delete(set, index)
	}
}

// Reset clears every answer recorded for module.
func (s *Session) Reset(module string) {
	s.Ensure(module)
	s.Modules[module] = Set{}
}

// Answers returns a copy of the answers recorded for module. Unknown
// modules yield an empty set.
func (s *Session) Answers(module string) Set {
	return s.Modules[module].Clone()
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() *Session {
	out := &Session{Modules: make(map[string]Set, len(s.Modules))}
	for id, set := range s.Modules {
		out.Modules[id] = set.Clone()
	}
	return out
}
