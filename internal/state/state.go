// Package state provides a persistent JSON log of recent analysis runs,
// so `sceval history` works even without a configured database.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/YassineDev91/smart-contract-eval/internal/types"
)

// maxRuns caps the log size; older entries are dropped on Append.
const maxRuns = 50

// Store persists run summaries to a JSON file on disk.
type Store struct {
	mu   sync.RWMutex
	Runs []types.RunSummary `json:"runs"`
	path string
}

// New creates a new Store backed by the given file path.
func New(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the default run log path (~/.sceval/runs.json).
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sceval/runs.json"
	}
	return filepath.Join(home, ".sceval", "runs.json")
}

// Load reads the run log from disk. If the file doesn't exist, the store
// starts empty (no error). Symlinks are rejected.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, err := os.Lstat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("run log is a symlink (rejected for security): %s", s.path)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	return json.Unmarshal(data, s)
}

// Save writes the run log to disk, creating parent directories if needed.
// Directories are created with 0o700, files with 0o600 (owner-only).
// Symlinks are rejected.
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Reject symlinks before writing
	if info, err := os.Lstat(s.path); err == nil {
		if info.Mode()&os.ModeSymlink != 0 {
			return fmt.Errorf("run log is a symlink (rejected for security): %s", s.path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0o600)
}

// Append adds a run to the log, dropping the oldest entries beyond the cap.
func (s *Store) Append(run types.RunSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Runs = append(s.Runs, run)
	if len(s.Runs) > maxRuns {
		s.Runs = s.Runs[len(s.Runs)-maxRuns:]
	}
}

// Recent returns up to n runs, newest first. n <= 0 returns all runs.
func (s *Store) Recent(n int) []types.RunSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 || n > len(s.Runs) {
		n = len(s.Runs)
	}
	result := make([]types.RunSummary, 0, n)
	for i := len(s.Runs) - 1; i >= len(s.Runs)-n; i-- {
		result = append(result, s.Runs[i])
	}
	return result
}

// Len returns the number of logged runs.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.Runs)
}

// Path returns the file path of this store.
func (s *Store) Path() string {
	return s.path
}
