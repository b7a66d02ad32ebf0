// Package storage implements the app's key-value persistence gateway.
//
// Values are stored as one JSON file per key in the data directory, with
// every file name carrying a fixed application prefix so the gateway can
// never collide with unrelated files in the same directory. The gateway is
// strictly best-effort: reads degrade to "absent" and writes report success
// as a boolean. No failure ever propagates to callers as an error value or
// panic; failures are logged and swallowed.
package storage

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"studydesk/internal/fsutil"
)

const (
	dataDirPerm  os.FileMode = 0700
	dataFilePerm os.FileMode = 0600

	// keyPrefix namespaces every file the gateway owns.
	keyPrefix = "studydesk-"

	// maxValueBytes caps the serialized size of a single value. The store
	// is a local cache, not a database; anything this large is a bug.
	maxValueBytes = 5 << 20
)

// Store is a namespaced, best-effort key-value store backed by JSON files.
// It holds no state beyond the underlying directory and is safe to share
// across call sites in a single-threaded event loop.
type Store struct {
	dir  string
	logf func(format string, args ...any)
}

// Option configures a Store.
type Option func(*Store)

// WithLogger overrides where the store reports swallowed failures.
func WithLogger(logf func(format string, args ...any)) Option {
	return func(s *Store) {
		if logf != nil {
			s.logf = logf
		}
	}
}

// New creates a Store rooted at dataDir, creating the directory if needed.
func New(dataDir string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(dataDir, dataDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	s := &Store{dir: dataDir, logf: log.Printf}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Dir returns the path to the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// Get reads and deserializes the value stored under key. The second return
// is false when the key is missing or the stored data cannot be read or
// parsed; corrupt data is treated exactly like a cache miss.
func Get[T any](s *Store, key string) (T, bool) {
	var zero T
	path, ok := s.path(key)
	if !ok {
		return zero, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logf("storage: read %s: %v", key, err)
		}
		return zero, false
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		s.logf("storage: parse %s: %v", key, err)
		return zero, false
	}
	return v, true
}

// Set serializes value and writes it under key. It reports success; on any
// failure (serialization, oversize value, write error) it logs, leaves the
// previous value untouched, and returns false.
func Set[T any](s *Store, key string, value T) bool {
	path, ok := s.path(key)
	if !ok {
		return false
	}

	data, err := json.Marshal(value)
	if err != nil {
		s.logf("storage: serialize %s: %v", key, err)
		return false
	}
	if len(data) > maxValueBytes {
		s.logf("storage: value for %s too large (%d bytes)", key, len(data))
		return false
	}

	if err := fsutil.WriteFileAtomic(path, data, dataFilePerm); err != nil {
		s.logf("storage: write %s: %v", key, err)
		return false
	}
	return true
}

// Remove deletes the value stored under key. Failures are logged only.
func (s *Store) Remove(key string) {
	path, ok := s.path(key)
	if !ok {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logf("storage: remove %s: %v", key, err)
	}
}

// ClearAll deletes every key under the application namespace. Files in the
// data directory that do not carry the prefix are left alone.
func (s *Store) ClearAll() {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.logf("storage: clear: %v", err)
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, keyPrefix) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
			s.logf("storage: clear %s: %v", name, err)
		}
	}
}

// path maps a key to its namespaced file, rejecting keys that would escape
// the data directory or produce awkward file names.
func (s *Store) path(key string) (string, bool) {
	if key == "" || !validKey(key) {
		s.logf("storage: invalid key %q", key)
		return "", false
	}
	return filepath.Join(s.dir, keyPrefix+key+".json"), true
}

func validKey(key string) bool {
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.':
		default:
			return false
		}
	}
	return true
}
