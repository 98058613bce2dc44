package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrNoSnapshot is returned by a Snapshotter when the slot has never been written
var ErrNoSnapshot = errors.New("no snapshot")

// Snapshotter persists a single serialized document under a named key
type Snapshotter interface {
	ReadSnapshot(ctx context.Context, key string) ([]byte, error)
	WriteSnapshot(ctx context.Context, key string, data []byte) error
}

// FileSnapshot stores each key as <Dir>/<key>.json
type FileSnapshot struct {
	Dir string
}

// NewFileSnapshot creates a file-backed snapshotter rooted at dir
func NewFileSnapshot(dir string) *FileSnapshot {
	return &FileSnapshot{Dir: dir}
}

func (f *FileSnapshot) path(key string) string {
	return filepath.Join(f.Dir, key+".json")
}

// ReadSnapshot reads the slot file
func (f *FileSnapshot) ReadSnapshot(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("failed to read snapshot %s: %w", key, err)
	}
	return data, nil
}

// WriteSnapshot replaces the slot file atomically via rename
func (f *FileSnapshot) WriteSnapshot(_ context.Context, key string, data []byte) error {
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot dir: %w", err)
	}

	tmp, err := os.CreateTemp(f.Dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write snapshot %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close snapshot %s: %w", key, err)
	}
	if err := os.Rename(tmpPath, f.path(key)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace snapshot %s: %w", key, err)
	}
	return nil
}

// MemorySnapshot keeps slots in memory. Used by tests and ephemeral sessions.
type MemorySnapshot struct {
	mu    sync.Mutex
	slots map[string][]byte
}

// NewMemorySnapshot creates an empty in-memory snapshotter
func NewMemorySnapshot() *MemorySnapshot {
	return &MemorySnapshot{slots: make(map[string][]byte)}
}

// ReadSnapshot returns a copy of the slot
func (m *MemorySnapshot) ReadSnapshot(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.slots[key]
	if !ok {
		return nil, ErrNoSnapshot
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// WriteSnapshot stores a copy of data
func (m *MemorySnapshot) WriteSnapshot(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	m.slots[key] = stored
	return nil
}
