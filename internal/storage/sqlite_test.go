package storage_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/nikbrunner/stash/internal/storage"
)

func openSQLite(t *testing.T) *storage.SQLiteKV {
	t.Helper()
	s, err := storage.NewSQLiteKV(filepath.Join(t.TempDir(), "auth.db"))
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteKV_SetAndGet(t *testing.T) {
	s := openSQLite(t)

	if err := s.Set("currentUser", `{"id":"u1"}`); err != nil {
		t.Fatalf("failed to set: %v", err)
	}

	value, err := s.Get("currentUser")
	if err != nil {
		t.Fatalf("failed to get: %v", err)
	}
	if value != `{"id":"u1"}` {
		t.Errorf("unexpected value %q", value)
	}

	// Overwrite
	if err := s.Set("currentUser", `{"id":"u2"}`); err != nil {
		t.Fatalf("failed to overwrite: %v", err)
	}
	value, _ = s.Get("currentUser")
	if value != `{"id":"u2"}` {
		t.Errorf("expected overwritten value, got %q", value)
	}
}

func TestSQLiteKV_MissingKey(t *testing.T) {
	s := openSQLite(t)

	if _, err := s.Get("nope"); !errors.Is(err, storage.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got: %v", err)
	}
	if _, err := s.UpdatedAt("nope"); !errors.Is(err, storage.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got: %v", err)
	}
	if err := s.Delete("nope"); err != nil {
		t.Fatalf("unexpected delete error: %v", err)
	}
}

func TestSQLiteKV_Delete(t *testing.T) {
	s := openSQLite(t)

	if err := s.Set("currentUser", "x"); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete("currentUser"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get("currentUser"); !errors.Is(err, storage.ErrKeyNotFound) {
		t.Errorf("expected key to be gone, got: %v", err)
	}
}

func TestSQLiteKV_UpdatedAt(t *testing.T) {
	s := openSQLite(t)
	before := time.Now().Add(-time.Second)

	if err := s.Set("k", "v"); err != nil {
		t.Fatal(err)
	}

	updated, err := s.UpdatedAt("k")
	if err != nil {
		t.Fatalf("failed to read updated_at: %v", err)
	}
	if updated.Before(before.Truncate(time.Second)) {
		t.Errorf("updated_at %v is older than %v", updated, before)
	}
}

func TestSQLiteKV_CreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "auth.db")

	s, err := storage.NewSQLiteKV(dbPath)
	if err != nil {
		t.Fatalf("failed to create storage with nested dir: %v", err)
	}
	defer s.Close()

	if s.Path() != dbPath {
		t.Errorf("expected path %q, got %q", dbPath, s.Path())
	}
}

func TestSQLiteKV_ReopenKeepsDataAndSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "auth.db")

	s, err := storage.NewSQLiteKV(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set("currentUser", "persisted"); err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Migrations must be idempotent on reopen
	s, err = storage.NewSQLiteKV(dbPath)
	if err != nil {
		t.Fatalf("failed to reopen: %v", err)
	}
	defer s.Close()

	version, err := s.SchemaVersion()
	if err != nil {
		t.Fatal(err)
	}
	if version != 2 {
		t.Errorf("expected schema version 2, got %d", version)
	}

	value, err := s.Get("currentUser")
	if err != nil || value != "persisted" {
		t.Errorf("expected persisted value, got %q (%v)", value, err)
	}
}

func TestKV_BackendsAgree(t *testing.T) {
	backends := map[string]storage.KV{
		"json":   storage.NewJSONKV(filepath.Join(t.TempDir(), "auth.json")),
		"sqlite": openSQLite(t),
	}

	for name, kv := range backends {
		t.Run(name, func(t *testing.T) {
			if err := kv.Set("a", "1"); err != nil {
				t.Fatal(err)
			}
			if v, err := kv.Get("a"); err != nil || v != "1" {
				t.Errorf("get a: %q %v", v, err)
			}
			if err := kv.Delete("a"); err != nil {
				t.Fatal(err)
			}
			if _, err := kv.Get("a"); !errors.Is(err, storage.ErrKeyNotFound) {
				t.Errorf("expected ErrKeyNotFound, got %v", err)
			}
		})
	}
}
