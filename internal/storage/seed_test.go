package storage_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nikbrunner/stash/internal/model"
	"github.com/nikbrunner/stash/internal/storage"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpenSeed_EmptyPathUsesSampleData(t *testing.T) {
	store, err := storage.OpenSeed("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.Collections) == 0 || len(store.Bookmarks) == 0 {
		t.Error("expected sample collections and bookmarks")
	}
}

func TestOpenSeed_JSON(t *testing.T) {
	path := writeFile(t, "seed.json", `{
  "collections": [{"id": "coll_1", "name": "Development", "icon": "Code", "count": 1}],
  "bookmarks": [
    {"id": 1, "title": "Go", "url": "https://go.dev", "tags": ["go"], "collection": "coll_1",
     "isFavorite": true, "createdAt": "2025-01-15T10:30:00Z", "userOrder": 0},
    {"id": 2, "title": "No tags", "url": "https://example.com", "createdAt": "2025-01-16T10:30:00Z"}
  ]
}`)

	store, err := storage.OpenSeed(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(store.Collections) != 1 || store.Collections[0].Name != "Development" {
		t.Errorf("unexpected collections %+v", store.Collections)
	}
	if len(store.Bookmarks) != 2 {
		t.Fatalf("expected 2 bookmarks, got %d", len(store.Bookmarks))
	}
	first := store.Bookmarks[0]
	if !first.IsFavorite || first.UserOrder == nil || *first.UserOrder != 0 {
		t.Errorf("unexpected first bookmark %+v", first)
	}
	if store.Bookmarks[1].Tags == nil {
		t.Error("expected missing tags to be normalized to empty")
	}
	if store.Bookmarks[1].UserOrder != nil {
		t.Error("expected missing userOrder to stay nil")
	}
}

func TestOpenSeed_YAML(t *testing.T) {
	path := writeFile(t, "seed.yml", `collections:
  - id: coll_3
    name: Reading
    icon: BookOpen
bookmarks:
  - id: 7
    title: Effective Go
    url: https://go.dev/doc/effective_go
    tags: [go, reference]
    collection: coll_3
    createdAt: "2025-02-01T09:00:00Z"
`)

	store, err := storage.OpenSeed(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(store.Bookmarks) != 1 {
		t.Fatalf("expected 1 bookmark, got %d", len(store.Bookmarks))
	}
	b := store.Bookmarks[0]
	if b.ID != 7 || b.Collection != "coll_3" || strings.Join(b.Tags, ",") != "go,reference" {
		t.Errorf("unexpected bookmark %+v", b)
	}
	if _, ok := b.Created(); !ok {
		t.Error("expected readable createdAt")
	}
}

func TestOpenSeed_HTML(t *testing.T) {
	path := writeFile(t, "bookmarks.html", `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><H3>Tools</H3>
    <DL><p>
        <DT><A HREF="https://jqlang.github.io/jq/" ADD_DATE="1700000000">jq</A>
    </DL><p>
</DL><p>`)

	store, err := storage.OpenSeed(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.Collections) != 1 || len(store.Bookmarks) != 1 {
		t.Fatalf("expected 1 collection and 1 bookmark, got %d/%d", len(store.Collections), len(store.Bookmarks))
	}
	if store.Bookmarks[0].Collection != store.Collections[0].ID {
		t.Error("expected bookmark in the imported collection")
	}
}

func TestOpenSeed_Errors(t *testing.T) {
	if _, err := storage.OpenSeed(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for a missing seed file")
	}

	unsupported := writeFile(t, "seed.toml", "x = 1")
	if _, err := storage.OpenSeed(unsupported); !errors.Is(err, storage.ErrUnsupportedSeedFormat) {
		t.Errorf("expected ErrUnsupportedSeedFormat, got %v", err)
	}

	broken := writeFile(t, "seed.json", "{")
	if _, err := storage.OpenSeed(broken); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestOpenSeed_EmptyYAML(t *testing.T) {
	store, err := storage.OpenSeed(writeFile(t, "empty.yaml", ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.Bookmarks) != 0 || store.Collections == nil {
		t.Errorf("expected an empty normalized store, got %+v", store)
	}
}

func TestSaveSeed_RoundTrip(t *testing.T) {
	order := 2
	store := &model.Store{
		Collections: []model.Collection{{ID: "c", Name: "C", Icon: "Folder"}},
		Bookmarks: []model.Bookmark{
			{ID: 3, Title: "T", URL: "https://t", Tags: []string{"a"}, Collection: "c", CreatedAt: "2025-01-01T00:00:00Z", UserOrder: &order},
		},
	}

	for _, name := range []string{"out.json", "out.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			if err := storage.SaveSeed(path, store); err != nil {
				t.Fatalf("failed to save: %v", err)
			}

			loaded, err := storage.OpenSeed(path)
			if err != nil {
				t.Fatalf("failed to load: %v", err)
			}
			got := loaded.Bookmarks[0]
			if got.ID != 3 || got.Title != "T" || got.UserOrder == nil || *got.UserOrder != 2 {
				t.Errorf("unexpected bookmark after round trip: %+v", got)
			}
			if loaded.Collections[0].Name != "C" {
				t.Errorf("unexpected collections after round trip: %+v", loaded.Collections)
			}
		})
	}

	if err := storage.SaveSeed(filepath.Join(t.TempDir(), "out.html"), store); !errors.Is(err, storage.ErrUnsupportedSeedFormat) {
		t.Errorf("expected ErrUnsupportedSeedFormat, got %v", err)
	}
}
