package state

import (
	"slices"
	"time"

	"github.com/nikbrunner/stash/internal/model"
)

// View is everything the presentation layer may read or call.
type View interface {
	// Derived, read-only
	FilteredBookmarks() []model.Bookmark
	FilteredTotal() int
	HasMore() bool
	CollectionData() map[string]CollectionView
	Collections() []CollectionView
	AvailableTags() []string
	VisibleBookmarksCount() int
	SelectedBookmarkIDs() []int
	IsSelected(id int) bool
	IsBulkSelectMode() bool
	IsAuthenticated() bool

	// Raw state
	Bookmarks() []model.Bookmark
	StaticCollections() []model.Collection
	GetBookmarkByID(id int) (model.Bookmark, bool)
	ActiveCollection() string
	SearchTerm() string
	SelectedTag() string
	SelectedDateRange() DateRange

	// Mutations
	AddBookmark(params model.NewBookmarkParams) model.Bookmark
	ToggleFavorite(id int)
	DeleteBookmark(id int)
	DeleteBookmarks(ids []int)
	ReorderBookmarks(movedID int, targetID *int)
	SetActiveCollection(id string)
	SetSearchTerm(term string)
	SetSelectedTag(tag string)
	SetSelectedDateRange(r DateRange)
	ToggleBulkSelectMode()
	ToggleBookmarkSelection(id int)
	SelectAllVisible(ids []int)
	ClearSelection()
	DeleteSelectedBookmarks()
	LoadMoreBookmarks()
}

var _ View = (*Store)(nil)

type filteredKey struct {
	data, view    uint64
	authenticated bool
	day           time.Time
}

type collectionKey struct {
	data          uint64
	authenticated bool
}

// derivedCache memoizes the pipeline outputs between mutations.
type derivedCache struct {
	filteredValid bool
	filteredKey   filteredKey
	filtered      []model.Bookmark

	collectionsValid bool
	collectionsKey   collectionKey
	collections      map[string]CollectionView

	tagsValid bool
	tagsData  uint64
	tags      []string
}

// filter snapshots the current view configuration.
func (s *Store) filter() Filter {
	return Filter{
		Collection:    s.activeCollection,
		Search:        s.searchTerm,
		Tag:           s.selectedTag,
		DateRange:     s.dateRange,
		Authenticated: s.IsAuthenticated(),
		Now:           s.now(),
	}
}

func (s *Store) derived() []model.Bookmark {
	f := s.filter()
	key := filteredKey{
		data:          s.dataVersion,
		view:          s.viewVersion,
		authenticated: f.Authenticated,
		day:           time.Date(f.Now.Year(), f.Now.Month(), f.Now.Day(), 0, 0, 0, 0, f.Now.Location()),
	}
	if !s.cache.filteredValid || s.cache.filteredKey != key {
		s.cache.filtered = Derive(s.bookmarks, f)
		s.cache.filteredKey = key
		s.cache.filteredValid = true
	}
	return s.cache.filtered
}

// FilteredBookmarks returns the current page of the derived view.
func (s *Store) FilteredBookmarks() []model.Bookmark {
	return slices.Clone(Paginate(s.derived(), s.visibleCount))
}

// FilteredTotal returns the length of the derived view before pagination.
func (s *Store) FilteredTotal() int {
	return len(s.derived())
}

// CollectionData returns every collection keyed by ID with computed members.
// The map is shared with the cache and must not be modified.
func (s *Store) CollectionData() map[string]CollectionView {
	key := collectionKey{data: s.dataVersion, authenticated: s.IsAuthenticated()}
	if !s.cache.collectionsValid || s.cache.collectionsKey != key {
		s.cache.collections = BuildCollectionData(s.bookmarks, s.collections, key.authenticated, s.recentLimit)
		s.cache.collectionsKey = key
		s.cache.collectionsValid = true
	}
	return s.cache.collections
}

// Collections returns the sidebar listing: all, favorites (only while
// authenticated), recently added, then the static collections in seed order.
func (s *Store) Collections() []CollectionView {
	data := s.CollectionData()
	ids := []string{model.CollectionAll}
	if s.IsAuthenticated() {
		ids = append(ids, model.CollectionFavorites)
	}
	ids = append(ids, model.CollectionRecentlyAdded)
	for _, c := range s.collections {
		ids = append(ids, c.ID)
	}

	result := make([]CollectionView, 0, len(ids))
	for _, id := range ids {
		result = append(result, data[id])
	}
	return result
}

// AvailableTags returns all tags in use, sorted and de-duplicated.
func (s *Store) AvailableTags() []string {
	if !s.cache.tagsValid || s.cache.tagsData != s.dataVersion {
		s.cache.tags = AvailableTags(s.bookmarks)
		s.cache.tagsData = s.dataVersion
		s.cache.tagsValid = true
	}
	return slices.Clone(s.cache.tags)
}
