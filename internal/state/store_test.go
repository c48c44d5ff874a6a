package state_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/nikbrunner/stash/internal/logger"
	"github.com/nikbrunner/stash/internal/model"
	"github.com/nikbrunner/stash/internal/state"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

// fakeAuth is a settable auth flag.
type fakeAuth struct {
	email string
}

func (f *fakeAuth) IsAuthenticated() bool { return f.email != "" }
func (f *fakeAuth) Identity() string      { return f.email }

var fixedNow = time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func intPtr(i int) *int { return &i }

func ids(bookmarks []model.Bookmark) []int {
	result := make([]int, len(bookmarks))
	for i, b := range bookmarks {
		result[i] = b.ID
	}
	return result
}

func orders(bookmarks []model.Bookmark) []int {
	result := make([]int, len(bookmarks))
	for i, b := range bookmarks {
		if b.UserOrder == nil {
			result[i] = -1
			continue
		}
		result[i] = *b.UserOrder
	}
	return result
}

func seedOf(n int) *model.Store {
	seed := model.NewStore()
	seed.Collections = []model.Collection{{ID: "c1", Name: "One", Icon: "Folder"}}
	for i := 1; i <= n; i++ {
		seed.Bookmarks = append(seed.Bookmarks, model.Bookmark{
			ID:         i,
			Title:      fmt.Sprintf("Bookmark %d", i),
			URL:        fmt.Sprintf("https://example.com/%d", i),
			Collection: "c1",
			CreatedAt:  model.FormatTimestamp(fixedNow.Add(-time.Duration(i) * time.Hour)),
			UserOrder:  intPtr(i - 1),
		})
	}
	return seed
}

func newStore(seed *model.Store) *state.Store {
	return state.New(state.Params{Seed: seed, Now: clock})
}

func TestNew_DoesNotAliasSeed(t *testing.T) {
	seed := seedOf(2)
	s := newStore(seed)

	s.ToggleFavorite(1)
	assert.Check(t, !seed.Bookmarks[0].IsFavorite, "seed must stay untouched")
}

func TestNew_ReassignsDuplicateSeedIDs(t *testing.T) {
	seed := model.NewStore()
	seed.Bookmarks = []model.Bookmark{{ID: 3}, {ID: 3}, {ID: 0}}

	s := newStore(seed)
	got := ids(s.Bookmarks())
	assert.DeepEqual(t, got, []int{3, 4, 5})
}

func TestAddBookmark_EmptyStore(t *testing.T) {
	s := newStore(nil)

	b := s.AddBookmark(model.NewBookmarkParams{
		Title:       "X",
		URL:         "http://x",
		Description: "",
		Tags:        []string{},
		Collection:  "c1",
	})

	assert.Equal(t, b.ID, 1)
	assert.Check(t, is.Len(s.Bookmarks(), 1))

	created, ok := b.Created()
	assert.Assert(t, ok)
	assert.Check(t, created.Equal(fixedNow))

	all := s.CollectionData()[model.CollectionAll]
	assert.Assert(t, is.Len(all.Items, 1))
	assert.Equal(t, all.Items[0].ID, 1)
}

func TestAddBookmark_PrependsAndAppearsFirstInAll(t *testing.T) {
	s := newStore(seedOf(3))

	b := s.AddBookmark(model.NewBookmarkParams{Title: "New", URL: "https://new.dev"})

	assert.Equal(t, s.Bookmarks()[0].ID, b.ID)
	assert.Equal(t, s.CollectionData()[model.CollectionAll].Items[0].ID, b.ID)
	assert.Equal(t, *b.UserOrder, 3, "sorts after all existing items")
}

func TestAddBookmark_SortsAfterSeedWithoutOrders(t *testing.T) {
	seed := seedOf(3)
	for i := range seed.Bookmarks {
		seed.Bookmarks[i].UserOrder = nil
	}
	s := newStore(seed)

	s.AddBookmark(model.NewBookmarkParams{Title: "Fourth", URL: "https://four.dev"})
	s.AddBookmark(model.NewBookmarkParams{Title: "Fifth", URL: "https://five.dev"})

	assert.Check(t, is.DeepEqual(ids(s.FilteredBookmarks()), []int{1, 2, 3, 4, 5}),
		"seed keeps its list order and new bookmarks follow it")
	assert.Check(t, is.DeepEqual(orders(s.Bookmarks()), []int{4, 3, 0, 1, 2}))
}

func TestAddBookmark_IDsUnique(t *testing.T) {
	s := newStore(seedOf(3))
	seen := make(map[int]bool)
	for _, b := range s.Bookmarks() {
		seen[b.ID] = true
	}

	for i := 0; i < 20; i++ {
		b := s.AddBookmark(model.NewBookmarkParams{Title: "dup", URL: "https://same.url"})
		assert.Check(t, !seen[b.ID], "id %d reused", b.ID)
		seen[b.ID] = true

		// Deleting the newest must not let the next add reuse its ID.
		if i%3 == 0 {
			s.DeleteBookmark(b.ID)
		}
	}
}

func TestAddBookmark_AllowsDuplicateURLs(t *testing.T) {
	s := newStore(nil)
	s.AddBookmark(model.NewBookmarkParams{URL: "https://a"})
	s.AddBookmark(model.NewBookmarkParams{URL: "https://a"})
	assert.Check(t, is.Len(s.Bookmarks(), 2))
}

func TestAddBookmark_LogsIdentity(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	auth := &fakeAuth{}
	s := state.New(state.Params{Auth: auth, Logger: logger.FromZap(zap.New(core)), Now: clock})

	s.AddBookmark(model.NewBookmarkParams{URL: "https://guest"})
	auth.email = "me@example.com"
	s.AddBookmark(model.NewBookmarkParams{URL: "https://user"})

	assert.Check(t, is.Len(logs.FilterMessage("bookmark added for guest").All(), 1))
	user := logs.FilterMessage("bookmark added").All()
	assert.Assert(t, is.Len(user, 1))
	assert.Equal(t, user[0].ContextMap()["user"], "me@example.com")
}

func TestToggleFavorite(t *testing.T) {
	s := newStore(seedOf(2))

	s.ToggleFavorite(2)
	b, ok := s.GetBookmarkByID(2)
	assert.Assert(t, ok)
	assert.Check(t, b.IsFavorite)

	s.ToggleFavorite(2)
	b, _ = s.GetBookmarkByID(2)
	assert.Check(t, !b.IsFavorite)

	s.ToggleFavorite(999) // no-op
	assert.Check(t, is.Len(s.Bookmarks(), 2))
}

func TestDeleteBookmarks(t *testing.T) {
	s := newStore(seedOf(4))

	s.DeleteBookmark(2)
	assert.DeepEqual(t, ids(s.Bookmarks()), []int{1, 3, 4})

	s.DeleteBookmarks([]int{1, 4, 42})
	assert.DeepEqual(t, ids(s.Bookmarks()), []int{3})

	s.DeleteBookmark(42)
	assert.Check(t, is.Len(s.Bookmarks(), 1))
}

func TestDeleteBookmarks_KeepsUserOrderGaps(t *testing.T) {
	s := newStore(seedOf(3))
	s.DeleteBookmark(2)
	assert.DeepEqual(t, orders(s.Bookmarks()), []int{0, 2})
}

func TestReorderBookmarks_MoveBeforeTarget(t *testing.T) {
	seed := model.NewStore()
	seed.Bookmarks = []model.Bookmark{
		{ID: 1, UserOrder: intPtr(0)},
		{ID: 2, UserOrder: intPtr(1)},
		{ID: 3, UserOrder: intPtr(2)},
	}
	s := newStore(seed)

	s.ReorderBookmarks(3, intPtr(1))

	got := s.FilteredBookmarks()
	assert.DeepEqual(t, ids(got), []int{3, 1, 2})
	assert.DeepEqual(t, orders(got), []int{0, 1, 2})
}

func TestReorderBookmarks_ToEnd(t *testing.T) {
	s := newStore(seedOf(4))

	s.ReorderBookmarks(1, nil)

	got := s.FilteredBookmarks()
	assert.DeepEqual(t, ids(got), []int{2, 3, 4, 1})
	assert.DeepEqual(t, orders(got), []int{0, 1, 2, 3})
}

func TestReorderBookmarks_DenseAfterGaps(t *testing.T) {
	s := newStore(seedOf(5))
	s.DeleteBookmarks([]int{2, 4})
	added := s.AddBookmark(model.NewBookmarkParams{Title: "new"})

	s.ReorderBookmarks(added.ID, intPtr(1))

	got := s.FilteredBookmarks()
	assert.DeepEqual(t, ids(got), []int{added.ID, 1, 3, 5})
	assert.DeepEqual(t, orders(got), []int{0, 1, 2, 3})
}

func TestReorderBookmarks_FallsBackToListPosition(t *testing.T) {
	seed := model.NewStore()
	seed.Bookmarks = []model.Bookmark{{ID: 10}, {ID: 20}, {ID: 30}}
	s := newStore(seed)

	s.ReorderBookmarks(10, intPtr(30))

	assert.DeepEqual(t, ids(s.FilteredBookmarks()), []int{20, 10, 30})
}

func TestReorderBookmarks_UnknownIDsAreNoOps(t *testing.T) {
	s := newStore(seedOf(3))

	s.ReorderBookmarks(99, nil)
	s.ReorderBookmarks(1, intPtr(99))
	s.ReorderBookmarks(2, intPtr(2))

	assert.DeepEqual(t, ids(s.FilteredBookmarks()), []int{1, 2, 3})
}

func TestReorderBookmarks_Property(t *testing.T) {
	for moved := 1; moved <= 5; moved++ {
		for target := 0; target <= 5; target++ {
			if target == moved {
				continue
			}
			t.Run(fmt.Sprintf("%d_before_%d", moved, target), func(t *testing.T) {
				s := newStore(seedOf(5))
				var targetID *int
				if target != 0 {
					targetID = intPtr(target)
				}

				s.ReorderBookmarks(moved, targetID)
				got := s.FilteredBookmarks()

				assert.DeepEqual(t, orders(got), []int{0, 1, 2, 3, 4})
				pos := indexOfID(got, moved)
				if targetID == nil {
					assert.Equal(t, pos, len(got)-1)
				} else {
					assert.Equal(t, got[pos+1].ID, target)
				}
			})
		}
	}
}

func indexOfID(bookmarks []model.Bookmark, id int) int {
	for i, b := range bookmarks {
		if b.ID == id {
			return i
		}
	}
	return -1
}
