package updater

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// State is the persisted update schedule.
type State struct {
	LastUpdate time.Time `json:"last_update"`
	NextUpdate time.Time `json:"next_update"`
}

// StateFile keeps the update schedule in a JSON file.
type StateFile struct {
	path string

	mu      sync.RWMutex
	current State
}

// OpenStateFile reads the schedule at path. A missing file yields a zero
// State, which makes the first scheduled update run immediately.
func OpenStateFile(path string) (*StateFile, error) {
	f := &StateFile{path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read update state: %w", err)
	}
	if err := json.Unmarshal(data, &f.current); err != nil {
		return nil, fmt.Errorf("failed to decode update state %s: %w", path, err)
	}
	return f, nil
}

// Path returns the file location.
func (f *StateFile) Path() string {
	return f.path
}

// Current returns the last loaded or saved state.
func (f *StateFile) Current() State {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.current
}

// Save writes s and makes it current.
func (f *StateFile) Save(s State) error {
	data, err := json.MarshalIndent(stateJSON{
		LastUpdate: s.LastUpdate.Format(time.RFC3339),
		NextUpdate: s.NextUpdate.Format(time.RFC3339),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal update state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("failed to create update state directory: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write update state: %w", err)
	}

	f.mu.Lock()
	f.current = s
	f.mu.Unlock()
	return nil
}

// stateJSON pins the on-disk timestamps to RFC 3339 without fractional seconds.
type stateJSON struct {
	LastUpdate string `json:"last_update"`
	NextUpdate string `json:"next_update"`
}
