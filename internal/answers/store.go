package answers

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Store defines persistence for the answer session.
// Abstracted so the assessment service can be tested without disk I/O.
type Store interface {
	Load() (*Session, error)
	Save(s *Session) error
}

// FileStore persists the session as a single JSON file.
type FileStore struct {
	path    string
	modules []string
	log     *zap.Logger
}

// NewFileStore creates a store backed by the file at path. moduleIDs are
// the modules every loaded session is guaranteed to contain.
func NewFileStore(path string, logger *zap.Logger, moduleIDs ...string) *FileStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStore{path: path, modules: moduleIDs, log: logger}
}

// Path returns the location of the answers file.
func (fs *FileStore) Path() string {
	return fs.path
}

// Load reads the session. A missing file yields an empty session. A
// malformed file is logged and also yields an empty session: losing saved
// answers is preferable to refusing to start.
func (fs *FileStore) Load() (*Session, error) {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewSession(fs.modules...), nil
		}
		return nil, fmt.Errorf("reading answers file: %w", err)
	}

	var blob map[string]Set
	if err := json.Unmarshal(data, &blob); err != nil {
		fs.log.Warn("malformed answers file, starting with empty answers",
			zap.String("path", fs.path),
			zap.Error(err),
		)
		return NewSession(fs.modules...), nil
	}

	s := &Session{Modules: blob}
	s.Ensure(fs.modules...)
	return s, nil
}

// Save overwrites the answers file with the full session. The file is
// written to a temporary sibling and renamed so a crash never leaves a
// truncated blob behind.
func (fs *FileStore) Save(s *Session) error {
	data, err := json.MarshalIndent(s.Modules, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling answers: %w", err)
	}

	dir := filepath.Dir(fs.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating answers directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".answers-*.json")
	if err != nil {
		return fmt.Errorf("creating temp answers file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing answers: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("closing answers file: %w", err)
	}
	if err := os.Rename(tmpName, fs.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replacing answers file: %w", err)
	}
	return nil
}

// MemoryStore keeps the session in memory only. Useful for tests and for
// one-shot CLI runs that must not touch the saved profile.
type MemoryStore struct {
	session *Session
	saves   int
}

// NewMemoryStore creates an in-memory store seeded with s (may be nil).
func NewMemoryStore(s *Session) *MemoryStore {
	return &MemoryStore{session: s}
}

// Load returns a copy of the stored session, or an empty one.
func (m *MemoryStore) Load() (*Session, error) {
	if m.session == nil {
		return NewSession(), nil
	}
	return m.session.Clone(), nil
}

// Save stores a copy of s.
func (m *MemoryStore) Save(s *Session) error {
	m.session = s.Clone()
	m.saves++
	return nil
}

// Saves reports how many times Save was called.
func (m *MemoryStore) Saves() int {
	return m.saves
}
