// Package renderers contains curio's built-in renderer types and the keys
// they are registered under. The host passes these keys to the collection
// view; anything else satisfying the renderer contracts can be registered
// alongside them.
package renderers

import (
	"fmt"

	"curio/internal/domain"
	"curio/internal/ui/collectionview"
)

// Registry keys for the built-in renderers.
const (
	HeaderKey  = "collection-header"
	ArticleKey = "article-card"
)

// Event names emitted by the built-in renderers. EventTitleClicked carries
// the title, EventArticleOpened the bound article GUID, and
// EventArticleStarred the new star state as a bool.
const (
	EventRefreshRequested = "refresh-requested"
	EventTitleClicked     = "title-clicked"
	EventArticleOpened    = "article-opened"
	EventArticleStarred   = "article-starred"
)

// SummaryFunc renders an article summary for display at the given width.
// The article card falls back to plain word-wrapping when it is nil or
// returns an error.
type SummaryFunc func(item domain.Item, width int) (string, error)

// Config carries the shared dependencies renderer instances close over.
type Config struct {
	// Title is the collection title shown by the header renderer.
	Title string

	// Count supplies the live collection size for the header. May be nil.
	Count func() int

	// Summary renders article summaries (typically glamour behind the
	// read-through cache). May be nil.
	Summary SummaryFunc
}

// Register wires the built-in renderers into a registry.
func Register(reg *collectionview.Registry, cfg Config) error {
	err := reg.RegisterHeader(HeaderKey, func() collectionview.HeaderRenderer {
		return newHeader(cfg)
	})
	if err != nil {
		return fmt.Errorf("registering header renderer: %w", err)
	}

	err = reg.RegisterItem(ArticleKey, func(item domain.Item) collectionview.ItemRenderer {
		return newArticleCard(cfg, item)
	})
	if err != nil {
		return fmt.Errorf("registering article renderer: %w", err)
	}
	return nil
}
