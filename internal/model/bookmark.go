package model

import (
	"slices"
	"time"
)

// Bookmark represents a saved URL with metadata.
type Bookmark struct {
	ID          int      `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	URL         string   `json:"url" yaml:"url"`
	Description string   `json:"description" yaml:"description"`
	Tags        []string `json:"tags" yaml:"tags"`
	Collection  string   `json:"collection" yaml:"collection"` // static collection ID
	IsPublic    bool     `json:"isPublic" yaml:"isPublic"`
	IsFavorite  bool     `json:"isFavorite" yaml:"isFavorite"`
	Favicon     string   `json:"favicon" yaml:"favicon"`
	CreatedAt   string   `json:"createdAt" yaml:"createdAt"`                     // ISO-8601
	UserOrder   *int     `json:"userOrder,omitempty" yaml:"userOrder,omitempty"` // nil = list position
}

// NewBookmarkParams holds the user-supplied fields of a new Bookmark.
// ID, CreatedAt and UserOrder are assigned by the owner of the list.
type NewBookmarkParams struct {
	Title       string
	URL         string
	Description string
	Tags        []string
	Collection  string
	IsPublic    bool
	IsFavorite  bool
	Favicon     string
}

// NewBookmark creates a Bookmark with the given identity and ordering.
func NewBookmark(params NewBookmarkParams, id, userOrder int, createdAt time.Time) Bookmark {
	tags := params.Tags
	if tags == nil {
		tags = []string{}
	}

	order := userOrder
	return Bookmark{
		ID:          id,
		Title:       params.Title,
		URL:         params.URL,
		Description: params.Description,
		Tags:        slices.Clone(tags),
		Collection:  params.Collection,
		IsPublic:    params.IsPublic,
		IsFavorite:  params.IsFavorite,
		Favicon:     params.Favicon,
		CreatedAt:   FormatTimestamp(createdAt),
		UserOrder:   &order,
	}
}

// Created parses CreatedAt. The second return value is false when the
// timestamp is missing or malformed.
func (b Bookmark) Created() (time.Time, bool) {
	if b.CreatedAt == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, b.CreatedAt)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// HasTag reports whether the bookmark carries the tag (exact match).
func (b Bookmark) HasTag(tag string) bool {
	return slices.Contains(b.Tags, tag)
}

// Clone returns a deep copy of the bookmark.
func (b Bookmark) Clone() Bookmark {
	c := b
	c.Tags = slices.Clone(b.Tags)
	if b.UserOrder != nil {
		order := *b.UserOrder
		c.UserOrder = &order
	}
	return c
}

// FormatTimestamp renders t the way CreatedAt stores it.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
