// Package state persists the timestamp of the last successful run.
package state

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// FileName is the last-run file kept in the data directory.
const FileName = "last_exec.txt"

// State is the document stored in FileName.
type State struct {
	LastRun int64 `toml:"last_run"`

	path string
}

// New creates an empty state stored at path.
func New(path string) *State {
	return &State{path: path}
}

// Load reads the state at path. A missing or empty file yields a zero
// LastRun.
func Load(path string) (*State, error) {
	s := New(path)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return s, nil
	}

	if _, err := toml.Decode(string(data), s); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}

	return s, nil
}

// Save writes the state, creating its directory when needed.
func (s *State) Save() error {
	if s.path == "" {
		return fmt.Errorf("state path not set")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	if err := os.WriteFile(s.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	return nil
}

// LastRunTime returns LastRun as a time. The zero LastRun is the Unix epoch.
func (s *State) LastRunTime() time.Time {
	return time.Unix(s.LastRun, 0)
}

// MarkRun records t as the last run.
func (s *State) MarkRun(t time.Time) {
	s.LastRun = t.Unix()
}

func (s *State) Path() string {
	return s.path
}
