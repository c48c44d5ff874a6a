// Package state holds the bookmark store: the single source of truth for
// bookmarks and the current view configuration, plus the derived view the
// UI renders.
//
// A Store is not safe for concurrent use. All mutations are expected to run
// on the UI event loop.
package state

import (
	"slices"
	"time"

	"github.com/nikbrunner/stash/internal/logger"
	"github.com/nikbrunner/stash/internal/model"
)

const (
	DefaultPageSize    = 12
	DefaultRecentLimit = 10
)

// AuthFlag is the part of the auth provider the store consults.
type AuthFlag interface {
	IsAuthenticated() bool
	Identity() string // display identity, "" when logged out
}

// Params holds parameters for creating a new Store.
type Params struct {
	Seed        *model.Store     // copied; nil = empty
	Auth        AuthFlag         // optional, nil = always guest
	Logger      logger.Logger    // optional
	PageSize    int              // optional, DefaultPageSize if <= 0
	RecentLimit int              // optional, DefaultRecentLimit if <= 0
	Now         func() time.Time // optional, time.Now if nil
}

// Store owns bookmark records and the user's view configuration.
type Store struct {
	bookmarks   []model.Bookmark
	collections []model.Collection

	nextID    int
	nextOrder int

	activeCollection string
	searchTerm       string
	selectedTag      string
	dateRange        DateRange

	pageSize     int
	recentLimit  int
	visibleCount int

	bulkMode bool
	selected map[int]bool

	auth AuthFlag
	log  logger.Logger
	now  func() time.Time

	// Bumped on bookmark mutations and view changes respectively; used as
	// memoization keys for the derived view.
	dataVersion uint64
	viewVersion uint64
	cache       derivedCache
}

// New creates a Store seeded from params.Seed.
func New(params Params) *Store {
	s := &Store{
		activeCollection: model.CollectionAll,
		pageSize:         params.PageSize,
		recentLimit:      params.RecentLimit,
		selected:         make(map[int]bool),
		auth:             params.Auth,
		log:              params.Logger,
		now:              params.Now,
	}
	if s.pageSize <= 0 {
		s.pageSize = DefaultPageSize
	}
	if s.recentLimit <= 0 {
		s.recentLimit = DefaultRecentLimit
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.visibleCount = s.pageSize

	seed := model.NewStore()
	if params.Seed != nil {
		seed = params.Seed.Clone()
		seed.Normalize()
	}
	s.collections = seed.Collections
	s.bookmarks = seed.Bookmarks
	s.initCounters()

	return s
}

// initCounters seeds the ID and order counters from the seed data and
// re-IDs any duplicate seed IDs so that IDs are unique from the start.
func (s *Store) initCounters() {
	s.nextID = 1
	for _, b := range s.bookmarks {
		if b.ID >= s.nextID {
			s.nextID = b.ID + 1
		}
	}

	seen := make(map[int]bool, len(s.bookmarks))
	for i := range s.bookmarks {
		b := &s.bookmarks[i]
		if b.ID <= 0 || seen[b.ID] {
			oldID := b.ID
			b.ID = s.nextID
			s.nextID++
			s.log.Warn("seed bookmark id reassigned",
				logger.Int("old_id", oldID), logger.Int("new_id", b.ID))
		}
		seen[b.ID] = true
	}

	// Pin the list-position fallback to the seed index so that prepending
	// new bookmarks does not shift seed bookmarks.
	for i := range s.bookmarks {
		if s.bookmarks[i].UserOrder == nil {
			order := i
			s.bookmarks[i].UserOrder = &order
		}
	}

	for _, b := range s.bookmarks {
		if *b.UserOrder >= s.nextOrder {
			s.nextOrder = *b.UserOrder + 1
		}
	}
}

// === Read access ===

// Bookmarks returns the raw bookmark list in storage order (newest additions first).
func (s *Store) Bookmarks() []model.Bookmark {
	return slices.Clone(s.bookmarks)
}

// StaticCollections returns the seeded, user-defined collections.
func (s *Store) StaticCollections() []model.Collection {
	return slices.Clone(s.collections)
}

// GetBookmarkByID returns a copy of the bookmark, or false if it does not exist.
func (s *Store) GetBookmarkByID(id int) (model.Bookmark, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.bookmarks[i], true
	}
	return model.Bookmark{}, false
}

// ActiveCollection returns the ID of the active collection.
func (s *Store) ActiveCollection() string { return s.activeCollection }

// SearchTerm returns the current free-text search.
func (s *Store) SearchTerm() string { return s.searchTerm }

// SelectedTag returns the active tag filter, "" when none.
func (s *Store) SelectedTag() string { return s.selectedTag }

// SelectedDateRange returns the active date range, "" when none.
func (s *Store) SelectedDateRange() DateRange { return s.dateRange }

// PageSize returns the pagination step.
func (s *Store) PageSize() int { return s.pageSize }

// IsAuthenticated reports the auth collaborator's flag.
func (s *Store) IsAuthenticated() bool {
	return s.auth != nil && s.auth.IsAuthenticated()
}

// === Mutations ===

// AddBookmark creates a bookmark from params and prepends it to the list.
// Duplicate URLs are allowed.
func (s *Store) AddBookmark(params model.NewBookmarkParams) model.Bookmark {
	b := model.NewBookmark(params, s.nextID, s.nextOrder, s.now())
	s.nextID++
	s.nextOrder++

	s.bookmarks = append([]model.Bookmark{b}, s.bookmarks...)
	s.touchData()

	if s.IsAuthenticated() {
		s.log.Info("bookmark added",
			logger.Int("id", b.ID),
			logger.String("url", b.URL),
			logger.String("user", s.auth.Identity()))
	} else {
		s.log.Info("bookmark added for guest",
			logger.Int("id", b.ID),
			logger.String("url", b.URL))
	}

	return b
}

// ToggleFavorite flips IsFavorite. Unknown IDs are ignored.
func (s *Store) ToggleFavorite(id int) {
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.bookmarks[i].IsFavorite = !s.bookmarks[i].IsFavorite
	s.touchData()
}

// DeleteBookmark removes a single bookmark. Unknown IDs are ignored.
func (s *Store) DeleteBookmark(id int) {
	s.DeleteBookmarks([]int{id})
}

// DeleteBookmarks removes every bookmark whose ID is in ids and drops them
// from the selection. Surviving UserOrder values are left as they are.
func (s *Store) DeleteBookmarks(ids []int) {
	if len(ids) == 0 {
		return
	}
	remove := make(map[int]bool, len(ids))
	for _, id := range ids {
		remove[id] = true
	}

	kept := make([]model.Bookmark, 0, len(s.bookmarks))
	var removed []int
	for _, b := range s.bookmarks {
		if remove[b.ID] {
			removed = append(removed, b.ID)
			continue
		}
		kept = append(kept, b)
	}
	if len(removed) == 0 {
		return
	}

	s.bookmarks = kept
	for _, id := range removed {
		delete(s.selected, id)
	}
	s.touchData()
	s.log.Info("bookmarks deleted", logger.Ints("ids", removed))
}

// ReorderBookmarks moves movedID to just before targetID, or to the end when
// targetID is nil, then rewrites UserOrder for every bookmark as its new
// position. Unknown IDs are ignored.
func (s *Store) ReorderBookmarks(movedID int, targetID *int) {
	if s.indexOf(movedID) < 0 {
		return
	}
	if targetID != nil && (*targetID == movedID || s.indexOf(*targetID) < 0) {
		return
	}

	ordered := sortByUserOrder(s.bookmarks)
	from := slices.IndexFunc(ordered, func(b model.Bookmark) bool { return b.ID == movedID })
	moved := ordered[from]
	ordered = slices.Delete(ordered, from, from+1)

	to := len(ordered)
	if targetID != nil {
		to = slices.IndexFunc(ordered, func(b model.Bookmark) bool { return b.ID == *targetID })
	}
	ordered = slices.Insert(ordered, to, moved)

	for i := range ordered {
		order := i
		ordered[i].UserOrder = &order
	}

	s.bookmarks = ordered
	s.nextOrder = len(ordered)
	s.touchData()
	s.log.Debug("bookmark reordered", logger.Int("id", movedID), logger.Int("position", to))
}

// === View configuration ===

// SetActiveCollection switches the active collection and resets pagination.
func (s *Store) SetActiveCollection(id string) {
	if id == "" {
		id = model.CollectionAll
	}
	s.activeCollection = id
	s.touchView()
}

// SetSearchTerm sets the free-text search and resets pagination.
func (s *Store) SetSearchTerm(term string) {
	s.searchTerm = term
	s.touchView()
}

// SetSelectedTag sets the tag filter ("" clears it) and resets pagination.
func (s *Store) SetSelectedTag(tag string) {
	s.selectedTag = tag
	s.touchView()
}

// SetSelectedDateRange sets the date range ("" or DateRangeAll clears it)
// and resets pagination.
func (s *Store) SetSelectedDateRange(r DateRange) {
	if r == DateRangeAll {
		r = ""
	}
	s.dateRange = r
	s.touchView()
}

// === Helpers ===

func (s *Store) indexOf(id int) int {
	return slices.IndexFunc(s.bookmarks, func(b model.Bookmark) bool { return b.ID == id })
}

func (s *Store) touchData() {
	s.dataVersion++
}

// touchView invalidates the derived view and resets the pagination window.
func (s *Store) touchView() {
	s.viewVersion++
	s.visibleCount = s.pageSize
}
