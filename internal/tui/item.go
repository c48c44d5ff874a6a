package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/stash/internal/model"
	"github.com/nikbrunner/stash/internal/search"
)

// collectionGlyphs maps collection icon names to sidebar glyphs.
var collectionGlyphs = map[string]string{
	"Archive":  "≡",
	"Heart":    "♥",
	"Clock":    "◷",
	"Code":     "λ",
	"Palette":  "◐",
	"BookOpen": "¶",
	"Wrench":   "⚒",
	"Folder":   "□",
}

// collectionGlyph returns the glyph for an icon name, "·" when unknown.
func collectionGlyph(icon string) string {
	if g, ok := collectionGlyphs[icon]; ok {
		return g
	}
	return "·"
}

// bookmarkPrefix returns the gutter drawn before a bookmark title: a
// checkbox in bulk mode, then the favorite star.
func bookmarkPrefix(b model.Bookmark, bulk, selected bool) string {
	var prefix string
	if bulk {
		if selected {
			prefix = "[x] "
		} else {
			prefix = "[ ] "
		}
	}
	if b.IsFavorite {
		return prefix + "★ "
	}
	return prefix + "  "
}

// termMatchIndexes returns the byte offsets of the runes in the first
// case-insensitive occurrence of term in text, or nil.
func termMatchIndexes(text, term string) []int {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}

	starts := make([]int, 0, len(text)+1)
	for i := range text {
		starts = append(starts, i)
	}
	starts = append(starts, len(text))

	n := len([]rune(term))
	for i := 0; i+n < len(starts); i++ {
		if strings.EqualFold(text[starts[i]:starts[i+n]], term) {
			return append([]int(nil), starts[i:i+n]...)
		}
	}
	return nil
}

// highlightTerm styles the first occurrence of term inside text.
func highlightTerm(text, term string, base, match lipgloss.Style) string {
	var b strings.Builder
	for _, run := range search.Highlight(text, termMatchIndexes(text, term)) {
		if run.Matched {
			b.WriteString(match.Render(run.Text))
		} else {
			b.WriteString(base.Render(run.Text))
		}
	}
	return b.String()
}

// formatTags renders tags as "#a #b".
func formatTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return "#" + strings.Join(tags, " #")
}
