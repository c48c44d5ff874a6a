// Package sampledata provides the built-in collections and bookmarks used
// when no seed file is configured.
package sampledata

import (
	"time"

	"github.com/nikbrunner/stash/internal/model"
)

// Store returns a fresh copy of the sample data. CreatedAt values are
// spread backwards from now so the date range filters have something to
// show.
func Store() *model.Store {
	return At(time.Now())
}

// At is Store with a fixed reference time.
func At(now time.Time) *model.Store {
	ago := func(d time.Duration) string {
		return model.FormatTimestamp(now.Add(-d))
	}
	const day = 24 * time.Hour

	store := &model.Store{
		Collections: []model.Collection{
			{ID: "coll_1", Name: "Development", Icon: "Code", Count: 5},
			{ID: "coll_2", Name: "Design", Icon: "Palette", Count: 3},
			{ID: "coll_3", Name: "Reading", Icon: "BookOpen", Count: 2},
			{ID: "coll_4", Name: "Tools", Icon: "Wrench", Count: 2},
		},
		Bookmarks: []model.Bookmark{
			{
				ID: 1, Title: "Go by Example", URL: "https://gobyexample.com",
				Description: "Hands-on introduction to Go using annotated example programs",
				Tags:        []string{"go", "learning"}, Collection: "coll_1",
				IsPublic: true, IsFavorite: true, Favicon: "https://gobyexample.com/favicon.ico",
				CreatedAt: ago(2 * time.Hour),
			},
			{
				ID: 2, Title: "Bubble Tea", URL: "https://github.com/charmbracelet/bubbletea",
				Description: "A powerful little TUI framework",
				Tags:        []string{"go", "tui"}, Collection: "coll_1",
				IsPublic: true, CreatedAt: ago(1 * day),
			},
			{
				ID: 3, Title: "TanStack Router", URL: "https://tanstack.com/router",
				Description: "Type-safe routing for React applications",
				Tags:        []string{"react", "routing", "typescript"}, Collection: "coll_1",
				CreatedAt: ago(3 * day),
			},
			{
				ID: 4, Title: "The Rust Programming Language", URL: "https://doc.rust-lang.org/book/",
				Description: "The official Rust book",
				Tags:        []string{"rust", "learning"}, Collection: "coll_3",
				IsPublic: true, IsFavorite: true, CreatedAt: ago(5 * day),
			},
			{
				ID: 5, Title: "Figma", URL: "https://figma.com",
				Description: "Collaborative interface design tool",
				Tags:        []string{"design", "ui"}, Collection: "coll_2",
				CreatedAt: ago(9 * day),
			},
			{
				ID: 6, Title: "Tailwind CSS", URL: "https://tailwindcss.com",
				Description: "Utility-first CSS framework",
				Tags:        []string{"css", "ui"}, Collection: "coll_2",
				IsFavorite: true, CreatedAt: ago(12 * day),
			},
			{
				ID: 7, Title: "Effective Go", URL: "https://go.dev/doc/effective_go",
				Description: "Tips for writing clear, idiomatic Go code",
				Tags:        []string{"go", "reference"}, Collection: "coll_3",
				IsPublic: true, CreatedAt: ago(18 * day),
			},
			{
				ID: 8, Title: "Coolors", URL: "https://coolors.co",
				Description: "Color palette generator",
				Tags:        []string{"design", "color"}, Collection: "coll_2",
				CreatedAt: ago(25 * day),
			},
			{
				ID: 9, Title: "SQLite", URL: "https://sqlite.org",
				Description: "Small, fast, self-contained SQL database engine",
				Tags:        []string{"database", "reference"}, Collection: "coll_1",
				CreatedAt: ago(40 * day),
			},
			{
				ID: 10, Title: "jq Manual", URL: "https://jqlang.github.io/jq/manual/",
				Description: "Command-line JSON processor",
				Tags:        []string{"cli", "json"}, Collection: "coll_4",
				IsFavorite: true, CreatedAt: ago(60 * day),
			},
			{
				ID: 11, Title: "ripgrep", URL: "https://github.com/BurntSushi/ripgrep",
				Description: "Recursively search directories for a regex pattern",
				Tags:        []string{"cli", "search"}, Collection: "coll_4",
				IsPublic: true, CreatedAt: ago(75 * day),
			},
			{
				ID: 12, Title: "MDN Web Docs", URL: "https://developer.mozilla.org",
				Description: "Resources for developers, by developers",
				Tags:        []string{"reference", "web"}, Collection: "coll_1",
				CreatedAt: ago(120 * day),
			},
		},
	}
	store.Normalize()
	return store
}
