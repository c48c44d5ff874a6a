package exporter

import (
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/stash/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/stash-export-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("stash-export-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML exports the store to Netscape bookmark HTML format.
func ExportHTML(store *model.Store) string {
	var b strings.Builder
	_ = WriteHTML(&b, store)
	return b.String()
}

// WriteHTML writes the store as Netscape bookmark HTML. Each collection is
// a top-level folder; bookmarks without a known collection go to the root.
func WriteHTML(w io.Writer, store *model.Store) error {
	var b strings.Builder

	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	prefix := "    "
	for _, c := range store.Collections {
		fmt.Fprintf(&b, "%s<DT><H3>%s</H3>\n", prefix, html.EscapeString(c.Name))
		fmt.Fprintf(&b, "%s<DL><p>\n", prefix)
		writeBookmarks(&b, store.GetBookmarksInCollection(c.ID), prefix+"    ")
		fmt.Fprintf(&b, "%s</DL><p>\n", prefix)
	}

	var root []model.Bookmark
	for _, bm := range store.Bookmarks {
		if store.GetCollectionByID(bm.Collection) == nil {
			root = append(root, bm)
		}
	}
	writeBookmarks(&b, root, prefix)

	b.WriteString("</DL><p>\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeBookmarks(b *strings.Builder, bookmarks []model.Bookmark, prefix string) {
	for _, bookmark := range bookmarks {
		var attrs strings.Builder
		fmt.Fprintf(&attrs, " HREF=\"%s\"", html.EscapeString(bookmark.URL))
		if created, ok := bookmark.Created(); ok {
			fmt.Fprintf(&attrs, " ADD_DATE=\"%d\"", created.Unix())
		}
		if len(bookmark.Tags) > 0 {
			fmt.Fprintf(&attrs, " TAGS=\"%s\"", html.EscapeString(strings.Join(bookmark.Tags, ",")))
		}

		fmt.Fprintf(b, "%s<DT><A%s>%s</A>\n", prefix, attrs.String(), html.EscapeString(bookmark.Title))
		if bookmark.Description != "" {
			fmt.Fprintf(b, "%s<DD>%s\n", prefix, html.EscapeString(bookmark.Description))
		}
	}
}
