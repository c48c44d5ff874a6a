package model

// Store holds seed collections and bookmarks.
type Store struct {
	Collections []Collection `json:"collections" yaml:"collections"`
	Bookmarks   []Bookmark   `json:"bookmarks" yaml:"bookmarks"`
}

// NewStore creates an empty Store with initialized slices.
func NewStore() *Store {
	return &Store{
		Collections: []Collection{},
		Bookmarks:   []Bookmark{},
	}
}

// GetCollectionByID finds a collection by ID, returns nil if not found.
func (s *Store) GetCollectionByID(id string) *Collection {
	for i := range s.Collections {
		if s.Collections[i].ID == id {
			return &s.Collections[i]
		}
	}
	return nil
}

// GetBookmarkByID finds a bookmark by ID, returns nil if not found.
func (s *Store) GetBookmarkByID(id int) *Bookmark {
	for i := range s.Bookmarks {
		if s.Bookmarks[i].ID == id {
			return &s.Bookmarks[i]
		}
	}
	return nil
}

// GetBookmarksInCollection returns bookmarks whose Collection matches id.
func (s *Store) GetBookmarksInCollection(id string) []Bookmark {
	var result []Bookmark
	for _, b := range s.Bookmarks {
		if b.Collection == id {
			result = append(result, b)
		}
	}
	return result
}

// MaxBookmarkID returns the largest bookmark ID, or 0 for an empty store.
func (s *Store) MaxBookmarkID() int {
	maxID := 0
	for _, b := range s.Bookmarks {
		if b.ID > maxID {
			maxID = b.ID
		}
	}
	return maxID
}

// Normalize replaces nil slices with empty ones.
func (s *Store) Normalize() {
	if s.Collections == nil {
		s.Collections = []Collection{}
	}
	if s.Bookmarks == nil {
		s.Bookmarks = []Bookmark{}
	}
	for i := range s.Bookmarks {
		if s.Bookmarks[i].Tags == nil {
			s.Bookmarks[i].Tags = []string{}
		}
	}
}

// Clone returns a deep copy of the store.
func (s *Store) Clone() *Store {
	c := &Store{
		Collections: make([]Collection, len(s.Collections)),
		Bookmarks:   make([]Bookmark, len(s.Bookmarks)),
	}
	copy(c.Collections, s.Collections)
	for i, b := range s.Bookmarks {
		c.Bookmarks[i] = b.Clone()
	}
	return c
}
