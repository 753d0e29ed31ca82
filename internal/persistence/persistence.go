// Package persistence provides simple game state backends: an in-process
// store and a JSON file.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/abhisek/konnektoren/internal/controller"
	"github.com/abhisek/konnektoren/internal/game"
)

// Memory keeps a deep copy of the last saved state.
type Memory struct {
	mu    sync.Mutex
	state *game.State
	saves int
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) SaveGameState(_ context.Context, s *game.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = s.Clone()
	m.saves++
	return nil
}

func (m *Memory) LoadGameState(_ context.Context) (*game.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return nil, controller.ErrNoSavedState
	}
	return m.state.Clone(), nil
}

// Saves returns how many times the state was saved.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// File stores the state as JSON at Path.
type File struct {
	Path string
}

func NewFile(path string) *File { return &File{Path: path} }

// SaveGameState writes the state to a temp file and renames it over Path.
func (f *File) SaveGameState(_ context.Context, s *game.State) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close state: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		return fmt.Errorf("replace state: %w", err)
	}
	return nil
}

func (f *File) LoadGameState(_ context.Context) (*game.State, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, controller.ErrNoSavedState
	}
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	var s game.State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode state %s: %w", f.Path, err)
	}
	if s.Game == nil {
		return nil, fmt.Errorf("decode state %s: missing game", f.Path)
	}
	return &s, nil
}
