// Package recommend suggests model families for the AI model mapping
// questionnaire.
//
// Suggestions come from a static table keyed by four mapping answers: data
// modality, task, learning paradigm and interpretability preference
// (question indices 0-3 by catalog convention). Lookup is an exact match
// on the typed key, falling back to a single default record.
package recommend

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/HendryAvila/govassess/internal/answers"
	"github.com/HendryAvila/govassess/internal/catalog"
)

// Positional contract with the mapping catalog.
const (
	DataModalityIndex     = 0
	TaskIndex             = 1
	ParadigmIndex         = 2
	InterpretabilityIndex = 3

	// RequiredAnswers is how many mapping answers must exist before a
	// table lookup is attempted.
	RequiredAnswers = 4
)

//go:embed data/recommendations.yaml
var embeddedTable []byte

// Key identifies one table entry.
type Key struct {
	DataModality     string `yaml:"data_modality" json:"data_modality"`
	Task             string `yaml:"task" json:"task"`
	Paradigm         string `yaml:"paradigm" json:"paradigm"`
	Interpretability string `yaml:"interpretability" json:"interpretability"`
}

// String renders the key in the dash-joined display form.
func (k Key) String() string {
	return strings.Join([]string{k.DataModality, k.Task, k.Paradigm, k.Interpretability}, "-")
}

func (k Key) validate() error {
	fields := []struct{ name, value string }{
		{"data_modality", k.DataModality},
		{"task", k.Task},
		{"paradigm", k.Paradigm},
		{"interpretability", k.Interpretability},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%s is required", f.name)
		}
	}
	return nil
}

// Record is a set of model suggestions.
type Record struct {
	Recommendations []string `yaml:"recommendations" json:"recommendations"`
	Libraries       string   `yaml:"libraries,omitempty" json:"libraries,omitempty"`
}

// Placeholder is returned while fewer than RequiredAnswers mapping
// questions have been answered.
func Placeholder() Record {
	return Record{Recommendations: []string{
		"Complete more questionnaire fields for tailored recommendations",
		"At minimum, specify data type, task, learning paradigm, and interpretability needs",
		"Additional specificity will result in more targeted recommendations",
	}}
}

// Table is the validated recommendation lookup table.
type Table struct {
	entries map[Key]Record
	keys    []Key
	def     Record
}

type tableFile struct {
	Entries []struct {
		Key    `yaml:",inline"`
		Record `yaml:",inline"`
	} `yaml:"entries"`
	Default *Record `yaml:"default"`
}

// LoadTable decodes and validates a YAML recommendation table.
func LoadTable(data []byte) (*Table, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f tableFile
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("recommend: empty table")
		}
		return nil, fmt.Errorf("recommend: decoding table: %w", err)
	}

	if f.Default == nil || len(f.Default.Recommendations) == 0 {
		return nil, errors.New("recommend: default record is required")
	}

	t := &Table{entries: make(map[Key]Record, len(f.Entries)), def: *f.Default}
	for i, e := range f.Entries {
		if err := e.Key.validate(); err != nil {
			return nil, fmt.Errorf("recommend: entry %d: %w", i, err)
		}
		if len(e.Recommendations) == 0 {
			return nil, fmt.Errorf("recommend: entry %d (%s): no recommendations", i, e.Key)
		}
		if _, dup := t.entries[e.Key]; dup {
			return nil, fmt.Errorf("recommend: entry %d: duplicate key %s", i, e.Key)
		}
		t.entries[e.Key] = e.Record
		t.keys = append(t.keys, e.Key)
	}
	return t, nil
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
	defaultErr   error
)

// DefaultTable returns the table embedded in the binary. It is loaded once.
func DefaultTable() (*Table, error) {
	defaultOnce.Do(func() {
		defaultTable, defaultErr = LoadTable(embeddedTable)
	})
	return defaultTable, defaultErr
}

// Len returns the number of keyed entries, excluding the default.
func (t *Table) Len() int {
	return len(t.entries)
}

// Keys returns the entry keys in table order.
func (t *Table) Keys() []Key {
	out := make([]Key, len(t.keys))
	copy(out, t.keys)
	return out
}

// Default returns the fallback record.
func (t *Table) Default() Record {
	return t.def.clone()
}

// Lookup returns the record for an exact key match.
func (t *Table) Lookup(k Key) (Record, bool) {
	r, ok := t.entries[k]
	if !ok {
		return Record{}, false
	}
	return r.clone(), true
}

// KeyFromAnswers builds a lookup key from mapping answers. ok is false
// when fewer than RequiredAnswers answers have been recorded.
func KeyFromAnswers(set answers.Set) (Key, bool) {
	if len(set) < RequiredAnswers {
		return Key{}, false
	}
	return Key{
		DataModality:     set[DataModalityIndex],
		Task:             set[TaskIndex],
		Paradigm:         set[ParadigmIndex],
		Interpretability: set[InterpretabilityIndex],
	}, true
}

// Recommend returns model suggestions for the given mapping answers. It
// never fails: too few answers yield the placeholder, an unknown
// combination yields the default record.
func (t *Table) Recommend(set answers.Set) Record {
	key, ok := KeyFromAnswers(set)
	if !ok {
		return Placeholder()
	}
	if r, found := t.Lookup(key); found {
		return r
	}
	return t.Default()
}

// Unreachable lists keys that can never match because a field is not one
// of the options of the corresponding mapping question.
func (t *Table) Unreachable(mapping *catalog.Module) []Key {
	if mapping == nil || len(mapping.Questions) < RequiredAnswers {
		return t.Keys()
	}

	var out []Key
	for _, k := range t.keys {
		fields := [RequiredAnswers]string{k.DataModality, k.Task, k.Paradigm, k.Interpretability}
		for i, v := range fields {
			if mapping.Questions[i].Rank(v) < 0 {
				out = append(out, k)
				break
			}
		}
	}
	return out
}

func (r Record) clone() Record {
	out := Record{Libraries: r.Libraries}
	out.Recommendations = append([]string(nil), r.Recommendations...)
	return out
}
