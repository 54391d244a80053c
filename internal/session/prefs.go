package session

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"redlytics/internal/core"
)

// FileStore persists the session token and preference cache in a JSON state
// file, the terminal analog of the browser's local storage.
type FileStore struct {
	Env *core.Config

	path string
}

func (s *FileStore) Init(_ context.Context) error {
	s.path = s.Env.StatePath()
	return nil
}

// Load reads the stored state. A missing file is an empty state, not an
// error.
func (s *FileStore) Load() (core.StoredState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return core.StoredState{}, nil
		}
		return core.StoredState{}, err
	}

	var state core.StoredState
	if err := json.Unmarshal(data, &state); err != nil {
		return core.StoredState{}, err
	}
	return state, nil
}

func (s *FileStore) Save(state core.StoredState) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	// The file holds a bearer token.
	return os.WriteFile(s.path, data, 0o600)
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
