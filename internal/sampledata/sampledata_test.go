package sampledata_test

import (
	"testing"
	"time"

	"github.com/nikbrunner/stash/internal/model"
	"github.com/nikbrunner/stash/internal/sampledata"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestStore_Consistent(t *testing.T) {
	store := sampledata.Store()

	assert.Check(t, is.Len(store.Collections, 4))
	assert.Check(t, len(store.Bookmarks) >= 10)

	ids := make(map[int]bool)
	for _, b := range store.Bookmarks {
		assert.Check(t, !ids[b.ID], "duplicate id %d", b.ID)
		ids[b.ID] = true

		assert.Check(t, store.GetCollectionByID(b.Collection) != nil, "bookmark %d has unknown collection %q", b.ID, b.Collection)
		_, ok := b.Created()
		assert.Check(t, ok, "bookmark %d has unreadable createdAt", b.ID)
	}
}

func TestStore_FreshCopy(t *testing.T) {
	a := sampledata.Store()
	a.Bookmarks[0].Title = "changed"

	b := sampledata.Store()
	assert.Check(t, b.Bookmarks[0].Title != "changed")
}

func TestAt_SpreadsDates(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	store := sampledata.At(now)

	var today, older int
	for _, b := range store.Bookmarks {
		created, _ := b.Created()
		if created.After(now.Add(-24 * time.Hour)) {
			today++
		}
		if created.Before(now.AddDate(0, 0, -30)) {
			older++
		}
	}
	assert.Check(t, today > 0)
	assert.Check(t, older > 0)
	assert.Equal(t, store.GetBookmarkByID(1).Collection, "coll_1")
	assert.Check(t, !model.IsSyntheticCollection(store.Collections[0].ID))
}
