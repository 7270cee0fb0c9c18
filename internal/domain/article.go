package domain

import (
	"fmt"
	"time"
)

// Article is a stored blog article. The store owns persistence; the UI only
// ever sees articles after conversion to Item.
type Article struct {
	ID          int64
	GUID        string
	Title       string
	Author      string
	Summary     string // markdown
	Tags        []string
	PublishedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ArticleNotFoundError indicates that no article exists for the given GUID.
type ArticleNotFoundError struct {
	GUID string
}

func (e *ArticleNotFoundError) Error() string {
	return fmt.Sprintf("article not found: %s", e.GUID)
}

// Item field names used by the article renderers.
const (
	FieldTitle     = "title"
	FieldAuthor    = "author"
	FieldSummary   = "summary"
	FieldTags      = "tags"
	FieldPublished = "published_at"
)

// Item converts the article to the opaque record shape the collection view
// consumes. The article's GUID becomes the item ID.
func (a Article) Item() Item {
	return NewItem(a.GUID, map[string]any{
		FieldTitle:     a.Title,
		FieldAuthor:    a.Author,
		FieldSummary:   a.Summary,
		FieldTags:      a.Tags,
		FieldPublished: a.PublishedAt.Format("2006-01-02"),
	})
}

// Items converts a slice of articles preserving order.
func Items(articles []Article) []Item {
	items := make([]Item, len(articles))
	for i, a := range articles {
		items[i] = a.Item()
	}
	return items
}
