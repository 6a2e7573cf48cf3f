// Package cachestore persists fetched corpus text on the local filesystem.
//
// The store is read-through with no eviction: source texts are static, so an
// entry is written at most once per text and reused indefinitely. Each entry
// is one plain-text file named by the text identifier, with no header or
// versioning. A BLAKE3 digest is computed on write and kept in memory for
// diagnostics.
package cachestore

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/CedarVerse/core/errors"
)

// Store is a filesystem-backed cache keyed by text identifier.
type Store struct {
	root string

	mu      sync.Mutex
	digests map[string]string // key -> hex BLAKE3 digest of stored content
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "creating cache directory %s", dir)
	}
	return &Store{
		root:    dir,
		digests: make(map[string]string),
	}, nil
}

// Root returns the cache directory.
func (s *Store) Root() string {
	return s.root
}

// path maps a key to its cache file. Keys are canonical text identifiers;
// anything resembling a path separator is rejected by validateKey first.
func (s *Store) path(key string) string {
	return filepath.Join(s.root, key)
}

func validateKey(key string) error {
	if key == "" {
		return errors.NewValidation("key", "cache key must not be empty")
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return errors.NewValidation("key", "cache key must not contain path separators: "+key)
	}
	return nil
}

// Has reports whether an entry exists for key without reading it.
func (s *Store) Has(key string) bool {
	if validateKey(key) != nil {
		return false
	}
	info, err := os.Stat(s.path(key))
	return err == nil && !info.IsDir()
}

// Get returns the cached content for key. ok is false when no entry exists;
// err is non-nil only for real I/O failures.
func (s *Store) Get(key string) (content string, ok bool, err error) {
	if err := validateKey(key); err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, errors.Wrapf(err, "reading cache entry %s", key)
	}

	s.recordDigest(key, data)
	return string(data), true, nil
}

// Put stores content under key and returns the hex BLAKE3 digest of the
// content. The write is atomic: content goes to a temp file in the cache
// directory and is renamed into place.
func (s *Store) Put(key, content string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}

	tempFile, err := os.CreateTemp(s.root, ".entry-*")
	if err != nil {
		return "", errors.Wrapf(err, "creating temp file for %s", key)
	}
	tempPath := tempFile.Name()

	if _, err := tempFile.WriteString(content); err != nil {
		tempFile.Close()
		os.Remove(tempPath)
		return "", errors.Wrapf(err, "writing cache entry %s", key)
	}
	if err := tempFile.Close(); err != nil {
		os.Remove(tempPath)
		return "", errors.Wrapf(err, "closing cache entry %s", key)
	}
	if err := os.Rename(tempPath, s.path(key)); err != nil {
		os.Remove(tempPath)
		return "", errors.Wrapf(err, "committing cache entry %s", key)
	}

	return s.recordDigest(key, []byte(content)), nil
}

// Digest returns the hex BLAKE3 digest of the stored content for key, if the
// entry has been read or written during this process.
func (s *Store) Digest(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.digests[key]
	return d, ok
}

func (s *Store) recordDigest(key string, data []byte) string {
	sum := blake3.Sum256(data)
	digest := hex.EncodeToString(sum[:])

	s.mu.Lock()
	s.digests[key] = digest
	s.mu.Unlock()
	return digest
}
