package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"curio/internal/domain"
)

// articleColumns is the list of columns to select for article queries.
const articleColumns = `id, guid, title, author, summary, tags, published_at, created_at, updated_at`

// ArticleRepository provides access to stored articles.
type ArticleRepository struct {
	db *sql.DB
}

// newArticleRepository creates a new ArticleRepository instance.
func newArticleRepository(db *sql.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// scanArticle scans a row into an ArticleModel.
func scanArticle(scanner interface{ Scan(...any) error }) (*ArticleModel, error) {
	var model ArticleModel
	err := scanner.Scan(
		&model.ID, &model.GUID, &model.Title, &model.Author, &model.Summary,
		&model.Tags, &model.PublishedAt, &model.CreatedAt, &model.UpdatedAt,
	)
	return &model, err
}

// List returns a page of articles ordered by published_at descending
// (newest first), with unpublished articles last.
func (r *ArticleRepository) List(offset, limit int) ([]domain.Article, error) {
	rows, err := r.db.Query(
		`SELECT `+articleColumns+` FROM articles
		 ORDER BY published_at IS NULL, published_at DESC, id DESC
		 LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var articles []domain.Article
	for rows.Next() {
		model, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article row: %w", err)
		}
		articles = append(articles, model.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating article rows: %w", err)
	}
	return articles, nil
}

// Count returns the total number of stored articles.
func (r *ArticleRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM articles`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count articles: %w", err)
	}
	return count, nil
}

// Get retrieves an article by its GUID.
// Returns ArticleNotFoundError if no matching article exists.
func (r *ArticleRepository) Get(guid string) (domain.Article, error) {
	row := r.db.QueryRow(
		`SELECT `+articleColumns+` FROM articles WHERE guid = ?`,
		guid,
	)
	model, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Article{}, &domain.ArticleNotFoundError{GUID: guid}
	}
	if err != nil {
		return domain.Article{}, fmt.Errorf("failed to get article: %w", err)
	}
	return model.toDomain(), nil
}

// Save persists an article.
// For new articles (ID == 0), inserts a new row and returns the article with
// its assigned ID. For existing articles, updates the row in place.
func (r *ArticleRepository) Save(a domain.Article) (domain.Article, error) {
	now := time.Now()
	a.UpdatedAt = now
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	model := toArticleModel(a)

	if a.ID == 0 {
		result, err := r.db.Exec(
			`INSERT INTO articles (guid, title, author, summary, tags, published_at, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			model.GUID, model.Title, model.Author, model.Summary, model.Tags,
			model.PublishedAt, model.CreatedAt, model.UpdatedAt,
		)
		if err != nil {
			return domain.Article{}, fmt.Errorf("failed to insert article: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return domain.Article{}, fmt.Errorf("failed to get last insert id: %w", err)
		}
		a.ID = id
		return a, nil
	}

	_, err := r.db.Exec(
		`UPDATE articles SET
			title = ?, author = ?, summary = ?, tags = ?, published_at = ?, updated_at = ?
		 WHERE id = ?`,
		model.Title, model.Author, model.Summary, model.Tags,
		model.PublishedAt, model.UpdatedAt, model.ID,
	)
	if err != nil {
		return domain.Article{}, fmt.Errorf("failed to update article: %w", err)
	}
	return a, nil
}

// Seed inserts articles only when the table is empty. It is used to populate
// a fresh database with starter content.
func (r *ArticleRepository) Seed(articles []domain.Article) error {
	count, err := r.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, a := range articles {
		if _, err := r.Save(a); err != nil {
			return err
		}
	}
	return nil
}
