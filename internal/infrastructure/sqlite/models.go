package sqlite

import (
	"encoding/json"
	"time"

	"curio/internal/domain"
)

// ArticleModel represents the database row for the articles table.
// Fields map directly to SQL columns with Unix timestamps for time values.
type ArticleModel struct {
	ID          int64
	GUID        string
	Title       string
	Author      *string // nullable
	Summary     *string // nullable
	Tags        *string // nullable, JSON encoded
	PublishedAt *int64  // Unix timestamp, nullable
	CreatedAt   int64   // Unix timestamp
	UpdatedAt   int64   // Unix timestamp
}

// toArticleModel converts a domain Article to a database ArticleModel.
func toArticleModel(a domain.Article) *ArticleModel {
	m := &ArticleModel{
		ID:        a.ID,
		GUID:      a.GUID,
		Title:     a.Title,
		CreatedAt: a.CreatedAt.Unix(),
		UpdatedAt: a.UpdatedAt.Unix(),
	}
	if a.Author != "" {
		author := a.Author
		m.Author = &author
	}
	if a.Summary != "" {
		summary := a.Summary
		m.Summary = &summary
	}
	if len(a.Tags) > 0 {
		tagsJSON, err := json.Marshal(a.Tags)
		if err == nil {
			tags := string(tagsJSON)
			m.Tags = &tags
		}
	}
	if !a.PublishedAt.IsZero() {
		publishedAt := a.PublishedAt.Unix()
		m.PublishedAt = &publishedAt
	}
	return m
}

// toDomain converts a database ArticleModel to a domain Article.
func (m *ArticleModel) toDomain() domain.Article {
	a := domain.Article{
		ID:        m.ID,
		GUID:      m.GUID,
		Title:     m.Title,
		CreatedAt: time.Unix(m.CreatedAt, 0),
		UpdatedAt: time.Unix(m.UpdatedAt, 0),
	}
	if m.Author != nil {
		a.Author = *m.Author
	}
	if m.Summary != nil {
		a.Summary = *m.Summary
	}
	if m.Tags != nil {
		_ = json.Unmarshal([]byte(*m.Tags), &a.Tags)
	}
	if m.PublishedAt != nil {
		a.PublishedAt = time.Unix(*m.PublishedAt, 0)
	}
	return a
}
