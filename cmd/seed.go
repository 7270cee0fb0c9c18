package cmd

import (
	"time"

	"curio/internal/domain"
)

// sampleArticles returns the starter content a fresh database is seeded with.
func sampleArticles() []domain.Article {
	day := func(offset int) time.Time {
		return time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
	}

	return []domain.Article{
		{
			GUID:        "welcome-to-curio",
			Title:       "Welcome to Curio",
			Author:      "The Curio Authors",
			Summary:     "Curio renders your article collection as **cards** you can page through.\n\nUse the arrow keys to flip pages, `r` to refresh, and `+`/`-` to resize pages.",
			Tags:        []string{"meta", "getting-started"},
			PublishedAt: day(0),
		},
		{
			GUID:        "customizing-renderers",
			Title:       "Customizing Renderers",
			Author:      "The Curio Authors",
			Summary:     "Every card on screen is produced by a *renderer* registered under a key. Register your own renderer types to change how articles are drawn without touching the collection machinery.",
			Tags:        []string{"renderers", "guide"},
			PublishedAt: day(1),
		},
		{
			GUID:        "theming",
			Title:       "Theming Curio",
			Author:      "The Curio Authors",
			Summary:     "Colors adapt to light and dark terminals automatically. Override individual tokens in `config.yaml` under `theme.colors`, for example `text.primary: \"#FFFFFF\"`.",
			Tags:        []string{"theme"},
			PublishedAt: day(2),
		},
		{
			GUID:        "auto-refresh",
			Title:       "Auto-Refresh",
			Author:      "The Curio Authors",
			Summary:     "Curio watches the database file and reloads the current page when it changes. Disable it with `--no-auto-refresh` or `auto_refresh: false`.",
			Tags:        []string{"watcher", "guide"},
			PublishedAt: day(3),
		},
	}
}
