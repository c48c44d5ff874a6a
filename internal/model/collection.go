package model

// IDs of the synthetic collections. These are computed from bookmark state
// and never stored.
const (
	CollectionAll           = "all"
	CollectionFavorites     = "favorites"
	CollectionRecentlyAdded = "recently_added"
)

// Collection is a named, iconed grouping of bookmarks.
type Collection struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Icon  string `json:"icon" yaml:"icon"`
	Count int    `json:"count" yaml:"count"` // seed count; displayed counts are computed
}

// NewCollectionParams holds parameters for creating a new Collection.
type NewCollectionParams struct {
	Name string
	Icon string
}

// NewCollection creates a Collection with generated UUID.
func NewCollection(params NewCollectionParams) Collection {
	icon := params.Icon
	if icon == "" {
		icon = "Folder"
	}
	return Collection{
		ID:   GenerateUUID(),
		Name: params.Name,
		Icon: icon,
	}
}

// IsSyntheticCollection reports whether id names one of the computed collections.
func IsSyntheticCollection(id string) bool {
	switch id {
	case CollectionAll, CollectionFavorites, CollectionRecentlyAdded:
		return true
	}
	return false
}
