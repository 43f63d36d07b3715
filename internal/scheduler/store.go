package scheduler

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Entry is a named recurring run: a model reference plus input, fired on a
// cron schedule.
type Entry struct {
	Name     string         `json:"name"`
	Ref      string         `json:"ref"`
	Schedule string         `json:"schedule"`
	Input    map[string]any `json:"input"`
	Enabled  bool           `json:"enabled"`
}

// Store is a JSON-file-backed store for schedule entries.
type Store struct {
	path string
	mu   sync.RWMutex
}

// NewStore creates a file-backed Store at the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// List returns all entries. Returns an empty slice if the file doesn't exist.
func (s *Store) List() ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := s.load()
	if err != nil {
		return nil, err
	}
	if entries == nil {
		return []*Entry{}, nil
	}
	return entries, nil
}

// Get finds an entry by name. Returns an error if not found.
func (s *Store) Get(name string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if entry.Name == name {
			return entry, nil
		}
	}
	return nil, fmt.Errorf("schedule not found: %s", name)
}

// Add appends an entry. Returns an error if one with the same name exists.
func (s *Store) Add(entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	for _, existing := range entries {
		if existing.Name == entry.Name {
			return fmt.Errorf("schedule already exists: %s", entry.Name)
		}
	}

	entries = append(entries, entry)
	return s.save(entries)
}

// Remove deletes an entry by name. Returns an error if not found.
func (s *Store) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	for i, entry := range entries {
		if entry.Name == name {
			entries = append(entries[:i], entries[i+1:]...)
			return s.save(entries)
		}
	}
	return fmt.Errorf("schedule not found: %s", name)
}

// SetEnabled toggles the enabled flag for an entry. Returns an error if not
// found.
func (s *Store) SetEnabled(name string, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.Name == name {
			entry.Enabled = enabled
			return s.save(entries)
		}
	}
	return fmt.Errorf("schedule not found: %s", name)
}

// load reads the JSON file. Returns nil if the file doesn't exist.
func (s *Store) load() ([]*Entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read schedules file: %w", err)
	}

	var entries []*Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("unmarshal schedules: %w", err)
	}
	return entries, nil
}

// save writes the entries to disk using atomic write (temp file + rename).
func (s *Store) save(entries []*Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schedules: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create schedules dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp schedules file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp schedules file: %w", err)
	}
	return nil
}
