package importer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/nikbrunner/stash/internal/importer"
	"github.com/nikbrunner/stash/internal/model"
)

func parse(t *testing.T, src string) *model.Store {
	t.Helper()
	store, err := importer.ParseHTMLBookmarks(strings.NewReader(src), importer.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return store
}

func TestParseHTML_SingleBookmark(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
    <DT><A HREF="https://example.com" ADD_DATE="1234567890">Example Site</A>
</DL><p>`

	store := parse(t, html)

	if len(store.Collections) != 0 {
		t.Errorf("expected 0 collections, got %d", len(store.Collections))
	}
	if len(store.Bookmarks) != 1 {
		t.Fatalf("expected 1 bookmark, got %d", len(store.Bookmarks))
	}

	b := store.Bookmarks[0]
	if b.Title != "Example Site" {
		t.Errorf("expected title 'Example Site', got %q", b.Title)
	}
	if b.URL != "https://example.com" {
		t.Errorf("expected URL 'https://example.com', got %q", b.URL)
	}
	if b.Collection != "" {
		t.Errorf("expected no collection, got %q", b.Collection)
	}
	if b.ID != 1 {
		t.Errorf("expected ID 1, got %d", b.ID)
	}
	if b.Tags == nil {
		t.Error("expected non-nil tags")
	}
}

func TestParseHTML_NestedFolders(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><H3 ADD_DATE="1234567890">Development</H3>
    <DL><p>
        <DT><H3 ADD_DATE="1234567890">React</H3>
        <DL><p>
            <DT><A HREF="https://react.dev" ADD_DATE="1234567890">React Docs</A>
        </DL><p>
        <DT><A HREF="https://github.com" ADD_DATE="1234567890">GitHub</A>
    </DL><p>
    <DT><A HREF="https://google.com" ADD_DATE="1234567890">Google</A>
</DL><p>`

	store := parse(t, html)

	if len(store.Collections) != 2 {
		t.Fatalf("expected 2 collections, got %d", len(store.Collections))
	}

	byName := make(map[string]model.Collection)
	for _, c := range store.Collections {
		byName[c.Name] = c
	}
	dev, ok := byName["Development"]
	if !ok {
		t.Fatal("Development collection not found")
	}
	react, ok := byName["Development / React"]
	if !ok {
		t.Fatalf("nested collection should be named by path, got %v", store.Collections)
	}
	if dev.ID == react.ID {
		t.Error("collections need distinct IDs")
	}

	if len(store.Bookmarks) != 3 {
		t.Fatalf("expected 3 bookmarks, got %d", len(store.Bookmarks))
	}

	want := map[string]string{
		"React Docs": react.ID,
		"GitHub":     dev.ID,
		"Google":     "",
	}
	for _, b := range store.Bookmarks {
		if b.Collection != want[b.Title] {
			t.Errorf("%s: expected collection %q, got %q", b.Title, want[b.Title], b.Collection)
		}
	}

	if dev.Count != 1 || react.Count != 1 {
		t.Errorf("expected counts 1/1, got %d/%d", dev.Count, react.Count)
	}
}

func TestParseHTML_SequentialIDs(t *testing.T) {
	html := `<DL><p>
    <DT><A HREF="https://a.com">A</A>
    <DT><A HREF="https://b.com">B</A>
    <DT><A HREF="https://c.com">C</A>
</DL><p>`

	store, err := importer.ParseHTMLBookmarks(strings.NewReader(html), importer.Options{FirstID: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, b := range store.Bookmarks {
		if b.ID != 10+i {
			t.Errorf("bookmark %d: expected ID %d, got %d", i, 10+i, b.ID)
		}
	}
}

func TestParseHTML_EmptyFile(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
</DL><p>`

	store := parse(t, html)

	if len(store.Collections) != 0 {
		t.Errorf("expected 0 collections, got %d", len(store.Collections))
	}
	if len(store.Bookmarks) != 0 {
		t.Errorf("expected 0 bookmarks, got %d", len(store.Bookmarks))
	}
}

func TestParseHTML_Timestamps(t *testing.T) {
	// 1234567890 = Fri Feb 13 2009 23:31:30 UTC
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><A HREF="https://example.com" ADD_DATE="1234567890">Test</A>
    <DT><A HREF="https://undated.com">Undated</A>
</DL><p>`

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store, err := importer.ParseHTMLBookmarks(strings.NewReader(html), importer.Options{
		Now: func() time.Time { return now },
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(store.Bookmarks) != 2 {
		t.Fatalf("expected 2 bookmarks, got %d", len(store.Bookmarks))
	}

	created, ok := store.Bookmarks[0].Created()
	if !ok || !created.Equal(time.Unix(1234567890, 0)) {
		t.Errorf("expected CreatedAt %v, got %q", time.Unix(1234567890, 0), store.Bookmarks[0].CreatedAt)
	}

	created, ok = store.Bookmarks[1].Created()
	if !ok || !created.Equal(now) {
		t.Errorf("expected fallback CreatedAt %v, got %q", now, store.Bookmarks[1].CreatedAt)
	}
}

func TestParseHTML_TagsAndDescription(t *testing.T) {
	html := `<DL><p>
    <DT><A HREF="https://go.dev" TAGS="go, docs,,reference">Go</A>
    <DD>The Go programming language
    <DT><A HREF="https://plain.dev">Plain</A>
</DL><p>`

	store := parse(t, html)

	if len(store.Bookmarks) != 2 {
		t.Fatalf("expected 2 bookmarks, got %d", len(store.Bookmarks))
	}

	goDev := store.Bookmarks[0]
	if strings.Join(goDev.Tags, "|") != "go|docs|reference" {
		t.Errorf("unexpected tags %v", goDev.Tags)
	}
	if goDev.Description != "The Go programming language" {
		t.Errorf("unexpected description %q", goDev.Description)
	}

	plain := store.Bookmarks[1]
	if len(plain.Tags) != 0 || plain.Description != "" {
		t.Errorf("expected no tags or description, got %v %q", plain.Tags, plain.Description)
	}
}

func TestParseHTML_MissingHref(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><A ADD_DATE="1234567890">No URL</A>
    <DT><A HREF="https://valid.com" ADD_DATE="1234567890">Valid</A>
</DL><p>`

	store := parse(t, html)

	// Should skip bookmark without HREF, keep valid one
	if len(store.Bookmarks) != 1 {
		t.Fatalf("expected 1 bookmark (skip missing href), got %d", len(store.Bookmarks))
	}
	if store.Bookmarks[0].Title != "Valid" {
		t.Errorf("expected 'Valid' bookmark, got %q", store.Bookmarks[0].Title)
	}
}
