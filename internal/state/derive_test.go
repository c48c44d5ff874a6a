package state

import (
	"testing"
	"time"

	"github.com/nikbrunner/stash/internal/model"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestPaginate(t *testing.T) {
	list := []model.Bookmark{{ID: 1}, {ID: 2}, {ID: 3}}

	assert.Check(t, is.Len(Paginate(list, 2), 2))
	assert.Check(t, is.Len(Paginate(list, 10), 3))
	assert.Check(t, is.Len(Paginate(list, -1), 0))
	assert.Check(t, is.Len(Paginate(nil, 5), 0))
}

func TestDateCutoff(t *testing.T) {
	now := time.Date(2025, 6, 15, 23, 59, 0, 0, time.UTC)

	cutoff, ok := dateCutoff(DateRangeToday, now)
	assert.Assert(t, ok)
	assert.Check(t, cutoff.Equal(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)))

	cutoff, ok = dateCutoff(DateRangeLast7Days, now)
	assert.Assert(t, ok)
	assert.Check(t, cutoff.Equal(time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)))

	_, ok = dateCutoff(DateRangeAll, now)
	assert.Check(t, !ok)
	_, ok = dateCutoff("", now)
	assert.Check(t, !ok)
}

func TestSortByCreatedDesc_UnreadableLast(t *testing.T) {
	list := []model.Bookmark{
		{ID: 1, CreatedAt: "garbage"},
		{ID: 2, CreatedAt: "2025-01-01T00:00:00Z"},
		{ID: 3, CreatedAt: "2025-03-01T00:00:00Z"},
	}

	sorted := sortByCreatedDesc(list)
	assert.DeepEqual(t, []int{sorted[0].ID, sorted[1].ID, sorted[2].ID}, []int{3, 2, 1})
	assert.Equal(t, list[0].ID, 1, "input untouched")
}

func TestDateRange_Label(t *testing.T) {
	assert.Equal(t, DateRangeToday.Label(), "Today")
	assert.Equal(t, DateRange("").Label(), "Anytime")
	assert.Check(t, is.Len(DateRanges, 4))
}
