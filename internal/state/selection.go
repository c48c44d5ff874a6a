package state

import (
	"slices"

	"github.com/nikbrunner/stash/internal/logger"
)

// IsBulkSelectMode reports whether selection mode is active.
func (s *Store) IsBulkSelectMode() bool { return s.bulkMode }

// ToggleBulkSelectMode enters or leaves selection mode. Leaving clears the
// selection.
func (s *Store) ToggleBulkSelectMode() {
	s.bulkMode = !s.bulkMode
	if !s.bulkMode {
		s.ClearSelection()
	}
}

// ToggleBookmarkSelection adds or removes id from the selection. Ignored
// outside selection mode and for unknown IDs.
func (s *Store) ToggleBookmarkSelection(id int) {
	if !s.bulkMode || s.indexOf(id) < 0 {
		return
	}
	if s.selected[id] {
		delete(s.selected, id)
	} else {
		s.selected[id] = true
	}
}

// SelectAllVisible replaces the selection with the given IDs, skipping
// unknown ones. Ignored outside selection mode.
func (s *Store) SelectAllVisible(ids []int) {
	if !s.bulkMode {
		return
	}
	s.selected = make(map[int]bool, len(ids))
	for _, id := range ids {
		if s.indexOf(id) >= 0 {
			s.selected[id] = true
		}
	}
}

// ClearSelection empties the selection.
func (s *Store) ClearSelection() {
	s.selected = make(map[int]bool)
}

// IsSelected returns true if the bookmark is selected.
func (s *Store) IsSelected(id int) bool {
	return s.selected[id]
}

// SelectedBookmarkIDs returns the selected IDs in ascending order.
func (s *Store) SelectedBookmarkIDs() []int {
	ids := make([]int, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// DeleteSelectedBookmarks removes every selected bookmark and clears the
// selection. Selection mode stays on.
func (s *Store) DeleteSelectedBookmarks() {
	ids := s.SelectedBookmarkIDs()
	s.ClearSelection()
	if len(ids) == 0 {
		return
	}
	s.DeleteBookmarks(ids)
	s.log.Debug("selection deleted", logger.Int("count", len(ids)))
}

// === Pagination ===

// VisibleBookmarksCount returns the size of the pagination window.
func (s *Store) VisibleBookmarksCount() int { return s.visibleCount }

// LoadMoreBookmarks grows the pagination window by one page.
func (s *Store) LoadMoreBookmarks() {
	s.visibleCount += s.pageSize
}

// HasMore reports whether the window hides part of the filtered list.
func (s *Store) HasMore() bool {
	return s.FilteredTotal() > s.visibleCount
}
