package shortcut

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// bindingRecord is the on-disk layout of the binding file.
type bindingRecord struct {
	Flags uint64 `json:"flags"`
	Key   int    `json:"key"`
}

// Store persists the active binding as a small JSON file.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Load returns the persisted binding. A missing file yields the default
// binding and no error. Unreadable or invalid content yields the default
// binding together with the reason.
func (s *Store) Load() (KeyBinding, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultBinding(), nil
	}
	if err != nil {
		return DefaultBinding(), fmt.Errorf("read binding: %w", err)
	}

	var rec bindingRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return DefaultBinding(), fmt.Errorf("parse binding %s: %w", s.path, err)
	}
	if rec.Key < 0 || rec.Key > 0xffff {
		return DefaultBinding(), fmt.Errorf("%w: key %d out of range", ErrInvalidBinding, rec.Key)
	}

	b := KeyBinding{
		Modifiers: Modifier(rec.Flags) & ModifierMask,
		Code:      normalizeCode(KeyCode(rec.Key)),
	}
	if err := b.Valid(); err != nil {
		return DefaultBinding(), err
	}
	return b, nil
}

// Save writes b atomically. Failures are returned as *PersistenceError.
func (s *Store) Save(b KeyBinding) error {
	if err := b.Valid(); err != nil {
		return &PersistenceError{Path: s.path, Err: err}
	}

	data, err := json.MarshalIndent(bindingRecord{
		Flags: uint64(b.Modifiers & ModifierMask),
		Key:   int(b.Code),
	}, "", "  ")
	if err != nil {
		return &PersistenceError{Path: s.path, Err: err}
	}

	if err := writeFileAtomic(s.path, data); err != nil {
		return &PersistenceError{Path: s.path, Err: err}
	}
	return nil
}

// Reset removes the binding file so the next Load yields the default.
func (s *Store) Reset() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &PersistenceError{Path: s.path, Err: err}
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".binding-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
