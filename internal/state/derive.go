package state

import (
	"slices"
	"strings"
	"time"

	"github.com/nikbrunner/stash/internal/model"
)

// DateRange restricts the view to recently created bookmarks.
type DateRange string

const (
	DateRangeAll        DateRange = "all"
	DateRangeToday      DateRange = "today"
	DateRangeLast7Days  DateRange = "last7days"
	DateRangeLast30Days DateRange = "last30days"
)

// DateRanges lists the selectable ranges in display order.
var DateRanges = []DateRange{DateRangeAll, DateRangeToday, DateRangeLast7Days, DateRangeLast30Days}

// Label returns a human readable name for the range.
func (r DateRange) Label() string {
	switch r {
	case DateRangeToday:
		return "Today"
	case DateRangeLast7Days:
		return "Last 7 days"
	case DateRangeLast30Days:
		return "Last 30 days"
	default:
		return "Anytime"
	}
}

// Filter is the view configuration the pipeline runs against.
type Filter struct {
	Collection    string
	Search        string
	Tag           string    // "" = any tag
	DateRange     DateRange // "" or DateRangeAll = any date
	Authenticated bool
	Now           time.Time
}

// CollectionView is a collection together with its computed members.
type CollectionView struct {
	ID    string
	Name  string
	Icon  string
	Count int
	Items []model.Bookmark
}

// Derive sorts and filters bookmarks for display. The result is not
// paginated; see Paginate.
func Derive(bookmarks []model.Bookmark, f Filter) []model.Bookmark {
	var sorted []model.Bookmark
	if f.Collection == model.CollectionRecentlyAdded {
		sorted = sortByCreatedDesc(bookmarks)
	} else {
		sorted = sortByUserOrder(bookmarks)
	}

	search := strings.ToLower(strings.TrimSpace(f.Search))
	cutoff, hasCutoff := dateCutoff(f.DateRange, f.Now)

	result := make([]model.Bookmark, 0, len(sorted))
	for _, b := range sorted {
		if !inCollection(b, f.Collection, f.Authenticated) {
			continue
		}
		if !matchesSearch(b, search) {
			continue
		}
		if f.Tag != "" && !b.HasTag(f.Tag) {
			continue
		}
		if hasCutoff && !createdSince(b, cutoff) {
			continue
		}
		result = append(result, b)
	}
	return result
}

// Paginate returns the first n entries of list.
func Paginate(list []model.Bookmark, n int) []model.Bookmark {
	if n < 0 {
		n = 0
	}
	if n > len(list) {
		n = len(list)
	}
	return list[:n]
}

// BuildCollectionData computes every synthetic and static collection keyed
// by ID. Items are newest first. Favorites is empty unless authenticated.
func BuildCollectionData(bookmarks []model.Bookmark, collections []model.Collection, authenticated bool, recentLimit int) map[string]CollectionView {
	newest := sortByCreatedDesc(bookmarks)
	data := make(map[string]CollectionView, len(collections)+3)

	data[model.CollectionAll] = CollectionView{
		ID:    model.CollectionAll,
		Name:  "All Bookmarks",
		Icon:  "Archive",
		Items: newest,
		Count: len(newest),
	}

	favorites := []model.Bookmark{}
	if authenticated {
		for _, b := range newest {
			if b.IsFavorite {
				favorites = append(favorites, b)
			}
		}
	}
	data[model.CollectionFavorites] = CollectionView{
		ID:    model.CollectionFavorites,
		Name:  "Favorites",
		Icon:  "Heart",
		Items: favorites,
		Count: len(favorites),
	}

	recent := newest[:min(len(newest), max(recentLimit, 0))]
	data[model.CollectionRecentlyAdded] = CollectionView{
		ID:    model.CollectionRecentlyAdded,
		Name:  "Recently Added",
		Icon:  "Clock",
		Items: recent,
		Count: len(recent),
	}

	for _, c := range collections {
		items := []model.Bookmark{}
		for _, b := range newest {
			if b.Collection == c.ID {
				items = append(items, b)
			}
		}
		data[c.ID] = CollectionView{
			ID:    c.ID,
			Name:  c.Name,
			Icon:  c.Icon,
			Items: items,
			Count: len(items),
		}
	}

	return data
}

// AvailableTags returns every tag in use, de-duplicated and sorted.
func AvailableTags(bookmarks []model.Bookmark) []string {
	seen := make(map[string]bool)
	tags := []string{}
	for _, b := range bookmarks {
		for _, tag := range b.Tags {
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	slices.Sort(tags)
	return tags
}

// effectiveOrders maps bookmark ID to its UserOrder, falling back to its
// position in the list.
func effectiveOrders(bookmarks []model.Bookmark) map[int]int {
	orders := make(map[int]int, len(bookmarks))
	for i, b := range bookmarks {
		if b.UserOrder != nil {
			orders[b.ID] = *b.UserOrder
		} else {
			orders[b.ID] = i
		}
	}
	return orders
}

func sortByUserOrder(bookmarks []model.Bookmark) []model.Bookmark {
	orders := effectiveOrders(bookmarks)
	sorted := slices.Clone(bookmarks)
	slices.SortStableFunc(sorted, func(a, b model.Bookmark) int {
		return orders[a.ID] - orders[b.ID]
	})
	return sorted
}

// sortByCreatedDesc puts unparseable timestamps last.
func sortByCreatedDesc(bookmarks []model.Bookmark) []model.Bookmark {
	sorted := slices.Clone(bookmarks)
	slices.SortStableFunc(sorted, func(a, b model.Bookmark) int {
		ta, _ := a.Created()
		tb, _ := b.Created()
		return tb.Compare(ta)
	})
	return sorted
}

func inCollection(b model.Bookmark, collection string, authenticated bool) bool {
	switch collection {
	case "", model.CollectionAll, model.CollectionRecentlyAdded:
		return true
	case model.CollectionFavorites:
		return authenticated && b.IsFavorite
	default:
		return b.Collection == collection
	}
}

// matchesSearch expects a lowercased term.
func matchesSearch(b model.Bookmark, term string) bool {
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(b.Title), term) {
		return true
	}
	if b.Description != "" && strings.Contains(strings.ToLower(b.Description), term) {
		return true
	}
	for _, tag := range b.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

func dateCutoff(r DateRange, now time.Time) (time.Time, bool) {
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch r {
	case DateRangeToday:
		return startOfToday, true
	case DateRangeLast7Days:
		return startOfToday.AddDate(0, 0, -7), true
	case DateRangeLast30Days:
		return startOfToday.AddDate(0, 0, -30), true
	default:
		return time.Time{}, false
	}
}

// createdSince fails open: a bookmark without a readable timestamp is kept.
func createdSince(b model.Bookmark, cutoff time.Time) bool {
	created, ok := b.Created()
	if !ok {
		return true
	}
	return !created.Before(cutoff)
}
