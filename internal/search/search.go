package search

import (
	"github.com/nikbrunner/stash/internal/model"
	"github.com/sahilm/fuzzy"
)

// SearchResult represents a fuzzy search match.
type SearchResult struct {
	Bookmark       model.Bookmark
	MatchedIndexes []int // byte offsets into Bookmark.Title
	Score          int
}

// bookmarkTitles implements fuzzy.Source for a bookmark slice.
type bookmarkTitles []model.Bookmark

func (bt bookmarkTitles) String(i int) string {
	return bt[i].Title
}

func (bt bookmarkTitles) Len() int {
	return len(bt)
}

// FuzzySearchBookmarks searches bookmarks by title using fuzzy matching.
// Returns results sorted by match score (best first).
func FuzzySearchBookmarks(bookmarks []model.Bookmark, query string) []SearchResult {
	if query == "" {
		return nil
	}

	source := bookmarkTitles(bookmarks)
	matches := fuzzy.FindFrom(query, source)

	results := make([]SearchResult, len(matches))
	for i, m := range matches {
		results[i] = SearchResult{
			Bookmark:       source[m.Index].Clone(),
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}

// FuzzyFilterTags returns the tags matching query, best first. An empty
// query returns tags unchanged.
func FuzzyFilterTags(tags []string, query string) []string {
	if query == "" {
		return tags
	}
	matches := fuzzy.Find(query, tags)
	result := make([]string, len(matches))
	for i, m := range matches {
		result[i] = m.Str
	}
	return result
}

// Highlight splits s into runs, marking the runs whose bytes are in
// matched. Renderers use it to style fuzzy-matched characters.
func Highlight(s string, matched []int) []Run {
	if len(matched) == 0 {
		return []Run{{Text: s}}
	}
	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}

	var runs []Run
	for i, r := range s {
		m := hit[i]
		if n := len(runs); n > 0 && runs[n-1].Matched == m {
			runs[n-1].Text += string(r)
			continue
		}
		runs = append(runs, Run{Text: string(r), Matched: m})
	}
	return runs
}

// Run is a piece of highlighted text.
type Run struct {
	Text    string
	Matched bool
}
