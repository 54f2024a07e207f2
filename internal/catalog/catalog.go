// Package catalog holds the static questionnaire definitions for every
// assessment module.
//
// The catalog is pure configuration: module files are YAML documents
// embedded in the binary and validated once at load time. A malformed
// catalog is rejected here, so scoring never has to defend against a
// question with one option or a zero weight.
package catalog

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Known module identifiers.
const (
	ModuleMapping       = "ai-mapping"
	ModuleRegulation    = "ai-regulation"
	ModuleResponsibleAI = "responsible-ai"
	ModuleRisk          = "ai-risk"
	ModuleOMB           = "omb-m-25-21"
	ModuleEO14179       = "eo-14179"
	ModuleTitle13       = "title-13"
	ModuleCIPSEA        = "cipsea"
)

// DefaultPerPage is the number of questions shown per questionnaire page.
const DefaultPerPage = 10

//go:embed data/*.yaml
var embedded embed.FS

// Question is a single multiple-choice question. Options are ordered from
// most compliant (rank 0) to least compliant.
type Question struct {
	Text     string   `yaml:"text" json:"text"`
	Category string   `yaml:"category" json:"category"`
	Weight   int      `yaml:"weight,omitempty" json:"weight"`
	Options  []string `yaml:"options" json:"options"`
}

// Rank returns the zero-based position of option, or -1 if the option is
// not one of the question's choices.
func (q *Question) Rank(option string) int {
	for i, o := range q.Options {
		if o == option {
			return i
		}
	}
	return -1
}

// GuideSection is one titled block of reference material for a module.
type GuideSection struct {
	Title string   `yaml:"title" json:"title"`
	Items []string `yaml:"items" json:"items"`
}

// Module is one independently scored questionnaire.
type Module struct {
	ID                 string         `yaml:"id" json:"id"`
	Order              int            `yaml:"order" json:"order"`
	Title              string         `yaml:"title" json:"title"`
	Description        string         `yaml:"description" json:"description"`
	GuideTitle         string         `yaml:"guide_title" json:"guide_title"`
	QuestionnaireTitle string         `yaml:"questionnaire_title" json:"questionnaire_title"`
	Color              string         `yaml:"color" json:"color"`
	Questions          []Question     `yaml:"questions" json:"questions"`
	Guide              []GuideSection `yaml:"guide,omitempty" json:"guide,omitempty"`
}

// Categories returns the distinct category names in first-seen order.
func (m *Module) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, q := range m.Questions {
		if !seen[q.Category] {
			seen[q.Category] = true
			out = append(out, q.Category)
		}
	}
	return out
}

// Catalog is the ordered, validated set of modules.
type Catalog struct {
	modules []*Module
	byID    map[string]*Module
}

// Modules returns the modules in display order.
func (c *Catalog) Modules() []*Module {
	out := make([]*Module, len(c.modules))
	copy(out, c.modules)
	return out
}

// Module looks up a module by ID.
func (c *Catalog) Module(id string) (*Module, bool) {
	m, ok := c.byID[id]
	return m, ok
}

// IDs returns the module identifiers in display order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.modules))
	for i, m := range c.modules {
		ids[i] = m.ID
	}
	return ids
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog embedded in the binary. It is loaded once.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(embedded, "data")
		if err != nil {
			defaultErr = fmt.Errorf("catalog: embedded data: %w", err)
			return
		}
		defaultCatalog, defaultErr = Load(sub)
	})
	return defaultCatalog, defaultErr
}

// Load reads every *.yaml file at the root of fsys as one module and
// validates the result.
func Load(fsys fs.FS) (*Catalog, error) {
	files, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, fmt.Errorf("catalog: listing module files: %w", err)
	}
	if len(files) == 0 {
		return nil, errors.New("catalog: no module files found")
	}

	c := &Catalog{byID: make(map[string]*Module, len(files))}
	for _, name := range files {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("catalog: reading %s: %w", name, err)
		}
		m, err := decodeModule(data)
		if err != nil {
			return nil, fmt.Errorf("catalog: %s: %w", path.Base(name), err)
		}
		if _, dup := c.byID[m.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate module id %q in %s", m.ID, name)
		}
		c.byID[m.ID] = m
		c.modules = append(c.modules, m)
	}

	sort.SliceStable(c.modules, func(i, j int) bool {
		if c.modules[i].Order != c.modules[j].Order {
			return c.modules[i].Order < c.modules[j].Order
		}
		return c.modules[i].ID < c.modules[j].ID
	})
	return c, nil
}

func decodeModule(data []byte) (*Module, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var m Module
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty module file")
		}
		return nil, fmt.Errorf("decoding: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// validate enforces the catalog schema and normalizes default weights.
func (m *Module) validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return errors.New("module id is required")
	}
	if strings.TrimSpace(m.Title) == "" {
		return fmt.Errorf("module %q: title is required", m.ID)
	}
	if len(m.Questions) == 0 {
		return fmt.Errorf("module %q: at least one question is required", m.ID)
	}

	for i := range m.Questions {
		q := &m.Questions[i]
		if strings.TrimSpace(q.Text) == "" {
			return fmt.Errorf("module %q question %d: text is required", m.ID, i)
		}
		if strings.TrimSpace(q.Category) == "" {
			return fmt.Errorf("module %q question %d: category is required", m.ID, i)
		}
		if len(q.Options) < 2 {
			return fmt.Errorf("module %q question %d: need at least 2 options, got %d", m.ID, i, len(q.Options))
		}
		seen := make(map[string]bool, len(q.Options))
		for _, o := range q.Options {
			if strings.TrimSpace(o) == "" {
				return fmt.Errorf("module %q question %d: empty option", m.ID, i)
			}
			if seen[o] {
				return fmt.Errorf("module %q question %d: duplicate option %q", m.ID, i, o)
			}
			seen[o] = true
		}
		switch {
		case q.Weight < 0:
			return fmt.Errorf("module %q question %d: weight must be positive, got %d", m.ID, i, q.Weight)
		case q.Weight == 0:
			q.Weight = 1
		}
	}
	return nil
}
