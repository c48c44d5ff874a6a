package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

var (
	// ErrKeyNotFound is returned by KV.Get for a missing key.
	ErrKeyNotFound = errors.New("key not found")

	// ErrCorrupt is returned by JSONKV reads when the backing file cannot be
	// parsed. Writes replace such a file with a fresh store.
	ErrCorrupt = errors.New("corrupt store")
)

// KV is a small string key/value store for session state.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

// JSONKV implements KV using a single JSON object file.
type JSONKV struct {
	path string
}

// NewJSONKV creates a new JSONKV with the given file path.
func NewJSONKV(path string) *JSONKV {
	return &JSONKV{path: path}
}

// Path returns the storage file path.
func (s *JSONKV) Path() string {
	return s.path
}

// Get returns the value for key or ErrKeyNotFound.
func (s *JSONKV) Get(key string) (string, error) {
	entries, err := s.load()
	if err != nil {
		return "", err
	}
	value, ok := entries[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return value, nil
}

// Set stores value under key.
func (s *JSONKV) Set(key, value string) error {
	entries, _, err := s.loadForWrite()
	if err != nil {
		return err
	}
	entries[key] = value
	return s.save(entries)
}

// Delete removes key. Deleting a missing key is not an error.
func (s *JSONKV) Delete(key string) error {
	entries, corrupt, err := s.loadForWrite()
	if err != nil {
		return err
	}
	if _, ok := entries[key]; !ok && !corrupt {
		return nil
	}
	delete(entries, key)
	return s.save(entries)
}

// Keys returns the stored keys in sorted order.
func (s *JSONKV) Keys() ([]string, error) {
	entries, err := s.load()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

// Close is a no-op; the file is not held open.
func (s *JSONKV) Close() error {
	return nil
}

// load reads the JSON file. A missing file is an empty store.
func (s *JSONKV) load() (map[string]string, error) {
	entries := make(map[string]string)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return entries, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrCorrupt, s.path, err)
	}
	if entries == nil {
		entries = make(map[string]string)
	}
	return entries, nil
}

// loadForWrite is load for mutations: a corrupt file yields an empty store
// and corrupt=true so the next save overwrites it.
func (s *JSONKV) loadForWrite() (entries map[string]string, corrupt bool, err error) {
	entries, err = s.load()
	if errors.Is(err, ErrCorrupt) {
		return make(map[string]string), true, nil
	}
	return entries, false, err
}

// save writes the JSON file.
// Creates the directory if it doesn't exist.
func (s *JSONKV) save(entries map[string]string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0600)
}

// OpenKV opens the configured auth backend at its default location.
func OpenKV(backend string) (KV, error) {
	path, err := DefaultAuthPath(backend)
	if err != nil {
		return nil, err
	}
	if backend == AuthBackendSQLite {
		return NewSQLiteKV(path)
	}
	return NewJSONKV(path), nil
}
