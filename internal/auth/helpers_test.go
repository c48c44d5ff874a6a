package auth_test

import "github.com/nikbrunner/stash/internal/model"

func storeWithFavorite() *model.Store {
	store := model.NewStore()
	store.Bookmarks = []model.Bookmark{
		{ID: 1, Title: "Loved", IsFavorite: true, Tags: []string{}},
		{ID: 2, Title: "Meh", Tags: []string{}},
	}
	return store
}
