// Package jsonstore is a file-backed slot. One human-readable file per key;
// writes go through a temp file and a rename under an exclusive file lock.
package jsonstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

const fileExt = ".json"

// Slot stores each key as <dir>/<key>.json.
type Slot struct {
	dir string
}

// Open prepares dir for use, creating it when missing.
func Open(dir string) (*Slot, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("open: empty data dir")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	return &Slot{dir: dir}, nil
}

// Path returns the file backing key.
func (s *Slot) Path(key string) string {
	return filepath.Join(s.dir, key+fileExt)
}

func (s *Slot) Get(key string) ([]byte, bool, error) {
	if err := checkKey(key); err != nil {
		return nil, false, err
	}
	p := s.Path(key)
	lk := flock.New(p + ".lock")
	if err := lk.RLock(); err != nil {
		return nil, false, fmt.Errorf("lock: %w", err)
	}
	defer func() { _ = lk.Unlock() }()

	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read file: %w", err)
	}
	return b, true, nil
}

func (s *Slot) Put(key string, data []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	p := s.Path(key)
	lk := flock.New(p + ".lock")
	if err := lk.Lock(); err != nil {
		return fmt.Errorf("lock: %w", err)
	}
	defer func() { _ = lk.Unlock() }()

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// Close is a no-op; locks are held only for the duration of a call.
func (s *Slot) Close() error { return nil }

func checkKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("invalid key %q", key)
	}
	return nil
}
