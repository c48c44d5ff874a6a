package importer

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nikbrunner/stash/internal/model"
	"golang.org/x/net/html"
)

// Options tunes ParseHTMLBookmarks.
type Options struct {
	FirstID int              // ID of the first bookmark, 1 if <= 0
	Now     func() time.Time // fallback CreatedAt when ADD_DATE is missing
}

// ParseHTMLBookmarks parses Netscape bookmark HTML into a seed store.
// Every H3 folder becomes a flat collection; nested folders are named by
// their path ("Development / React"). Bookmarks outside any folder have no
// collection. Bookmark IDs are sequential.
func ParseHTMLBookmarks(r io.Reader, opts Options) (*model.Store, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	if opts.FirstID <= 0 {
		opts.FirstID = 1
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	store := model.NewStore()
	nextID := opts.FirstID

	// Stack of enclosing folders; pendingFolder waits for its DL.
	var folderStack []model.Collection
	var pendingFolder *model.Collection
	// Index of the bookmark a following DD describes, -1 when none.
	lastBookmark := -1

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				name := getTextContent(n)
				lastBookmark = -1
				if name == "" {
					return
				}
				if len(folderStack) > 0 {
					name = folderStack[len(folderStack)-1].Name + " / " + name
				}
				folder := model.NewCollection(model.NewCollectionParams{Name: name})
				store.Collections = append(store.Collections, folder)
				pendingFolder = &folder
				return

			case "a":
				href := getAttr(n, "href")
				if href == "" {
					lastBookmark = -1
					return
				}

				title := getTextContent(n)
				if title == "" {
					title = href
				}

				var collection string
				if len(folderStack) > 0 {
					collection = folderStack[len(folderStack)-1].ID
				}

				createdAt := opts.Now()
				if addDate := getAttr(n, "add_date"); addDate != "" {
					if ts, err := strconv.ParseInt(addDate, 10, 64); err == nil {
						createdAt = time.Unix(ts, 0)
					}
				}

				store.Bookmarks = append(store.Bookmarks, model.Bookmark{
					ID:         nextID,
					Title:      title,
					URL:        href,
					Tags:       parseTags(getAttr(n, "tags")),
					Collection: collection,
					Favicon:    getAttr(n, "icon_uri"),
					CreatedAt:  model.FormatTimestamp(createdAt),
				})
				nextID++
				lastBookmark = len(store.Bookmarks) - 1
				return

			case "dd":
				if lastBookmark >= 0 {
					store.Bookmarks[lastBookmark].Description = getOwnText(n)
					lastBookmark = -1
				}

			case "dl":
				lastBookmark = -1
				pushed := false
				if pendingFolder != nil {
					folderStack = append(folderStack, *pendingFolder)
					pendingFolder = nil
					pushed = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushed {
					folderStack = folderStack[:len(folderStack)-1]
				}
				lastBookmark = -1
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)

	for i := range store.Collections {
		c := &store.Collections[i]
		c.Count = len(store.GetBookmarksInCollection(c.ID))
	}
	return store, nil
}

// parseTags splits the comma-separated TAGS attribute some browsers write.
func parseTags(raw string) []string {
	tags := []string{}
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getOwnText returns only the direct text children of a node.
func getOwnText(n *html.Node) string {
	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			text.WriteString(c.Data)
		}
	}
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
