// Package state persists the auto-reflection toggle and run statistics.
//
// The state file is owned by the user: it is read fresh on every run and,
// when changed, rewritten in full. A missing or unreadable file means
// disabled with zero counters.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// ErrInvalidState indicates the state file exists but cannot be decoded.
var ErrInvalidState = errors.New("invalid state file")

// State is the persisted toggle and statistics.
type State struct {
	Enabled          bool       `json:"enabled"`
	LastReflection   *time.Time `json:"lastReflection"`
	TotalReflections int        `json:"totalReflections"`
}

// Store reads and writes one state file.
type Store struct {
	path string
}

// NewStore returns a store for path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the state file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the state. A missing file yields the zero State and no error.
// An unreadable or malformed file yields the zero State and an error, which
// callers may log and otherwise ignore.
func (s *Store) Load() (State, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return State{}, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("reading state %s: %w", s.path, err)
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}, fmt.Errorf("%w: %s: %v", ErrInvalidState, s.path, err)
	}
	if st.TotalReflections < 0 {
		st.TotalReflections = 0
	}
	return st, nil
}

// Save rewrites the state file, creating its directory on demand. The new
// content is written to a temporary file and renamed into place.
func (s *Store) Save(st State) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return fmt.Errorf("creating temp state file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing state: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod state: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replacing state: %w", err)
	}
	return nil
}

// Enabled reports whether auto-reflection is on. Any load error means off.
func (s *Store) Enabled() bool {
	st, err := s.Load()
	return err == nil && st.Enabled
}

// SetEnabled flips the toggle, keeping the statistics. A malformed file is
// replaced by a fresh state.
func (s *Store) SetEnabled(enabled bool) (State, error) {
	st, err := s.Load()
	if err != nil && !errors.Is(err, ErrInvalidState) {
		return State{}, err
	}
	st.Enabled = enabled
	return st, s.Save(st)
}

// RecordReflection sets lastReflection to at and adds n to the total.
func (s *Store) RecordReflection(n int, at time.Time) (State, error) {
	st, err := s.Load()
	if err != nil && !errors.Is(err, ErrInvalidState) {
		return State{}, err
	}
	at = at.UTC()
	st.LastReflection = &at
	st.TotalReflections += n
	return st, s.Save(st)
}
