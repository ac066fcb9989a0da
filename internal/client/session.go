package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/marcodesign21/chaset-tracker/internal/models"
)

// SessionStore persists the logged-in user between runs.
// Load returns (nil, nil) when nothing is stored.
type SessionStore interface {
	Load() (*models.SessionUser, error)
	Save(u models.SessionUser) error
	Clear() error
}

// FileSessionStore keeps {id, username} as JSON in a single file.
type FileSessionStore struct {
	path string
}

func NewFileSessionStore(path string) *FileSessionStore {
	return &FileSessionStore{path: path}
}

func (s *FileSessionStore) Load() (*models.SessionUser, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	var u models.SessionUser
	if err := json.Unmarshal(b, &u); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", s.path, err)
	}
	if u.ID <= 0 {
		return nil, fmt.Errorf("decode session %s: missing user id", s.path)
	}
	return &u, nil
}

// Save writes through a temp file so a crash never leaves a torn session.
func (s *FileSessionStore) Save(u models.SessionUser) error {
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("create session file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace session: %w", err)
	}
	return nil
}

func (s *FileSessionStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// MemorySessionStore is a SessionStore for tests and ephemeral clients.
type MemorySessionStore struct {
	mu   sync.Mutex
	user *models.SessionUser
}

func (m *MemorySessionStore) Load() (*models.SessionUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil, nil
	}
	u := *m.user
	return &u, nil
}

func (m *MemorySessionStore) Save(u models.SessionUser) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = &u
	return nil
}

func (m *MemorySessionStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = nil
	return nil
}
