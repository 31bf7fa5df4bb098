// Package blobstore provides a small key-value store for named JSON blobs.
//
// The store mirrors browser local storage semantics: a flat namespace of
// string keys, whole-value reads and writes, a single logical writer. Writes
// are atomic with respect to readers in the same process (read-your-writes);
// no cross-process coordination is attempted.
package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-faster/errors"
)

// Store is the persistence contract handed to each repository. Implementations
// must make a completed Put visible to every subsequent Get.
type Store interface {
	// Get returns the blob stored under key. The boolean reports whether the
	// key exists; a missing key is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Put stores the blob under key, replacing any previous value.
	Put(ctx context.Context, key string, data []byte) error
	// Delete removes the key. Deleting a missing key is a no-op.
	Delete(ctx context.Context, key string) error
}

var _ Store = (*FileStore)(nil)

// FileStore keeps each blob in its own file under a single directory.
// Writes go through a temp file followed by rename, so readers never observe
// a partially written blob.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed and returns a store over it.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create store directory")
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, errors.Wrapf(err, "read blob %q", key)
	}
	return data, true, nil
}

func (s *FileStore) Put(_ context.Context, key string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, sanitizeKey(key)+".tmp-")
	if err != nil {
		return errors.Wrapf(err, "create temp file for %q", key)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "write blob %q", key)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "sync blob %q", key)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "close blob %q", key)
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		return errors.Wrapf(err, "publish blob %q", key)
	}
	return nil
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "delete blob %q", key)
	}
	return nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, sanitizeKey(key)+".json")
}

// sanitizeKey maps a blob key to a safe file name. Keys contain user-derived
// segments (per-user cart keys), so anything outside a conservative charset
// is replaced.
func sanitizeKey(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, key)
}

var _ Store = (*MemStore)(nil)

// MemStore is an in-memory Store used by tests.
type MemStore struct {
	mu sync.Mutex
	m  map[string][]byte
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{m: make(map[string][]byte)}
}

func (s *MemStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.m[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, true, nil
}

func (s *MemStore) Put(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	s.m[key] = cp
	return nil
}

func (s *MemStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}
