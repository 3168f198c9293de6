package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/tenerify/tenerify/internal/domain"
)

// ArticleStorage persists articles and bookmarks in PostgreSQL.
type ArticleStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewArticleStorage(db *sqlx.DB, logger *slog.Logger) *ArticleStorage {
	return &ArticleStorage{db: db, logger: logger}
}

// CreateArticle inserts an article and fills in its id and creation time.
func (s *ArticleStorage) CreateArticle(ctx context.Context, article *domain.Article) error {
	start := time.Now()

	query := `
	INSERT INTO articles (title, slug, content, excerpt, category, image_url, image_slug,
	                      images, structured_content, author_id, is_published)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		article.Title, article.Slug, article.Content, article.Excerpt,
		article.Category, article.ImageURL, article.ImageSlug,
		article.Images, article.StructuredContent,
		article.AuthorID, article.IsPublished,
	).Scan(&article.ID, &article.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			s.logger.Warn("duplicate article slug", "slug", article.Slug)
			return fmt.Errorf("%w: slug already exists", domain.ErrInvalidInput)
		}
		s.logger.Error("failed to insert article", "slug", article.Slug, "error", err)
		return fmt.Errorf("insert article: %w", err)
	}

	s.logger.Info("article created successfully",
		"article_id", article.ID,
		"slug", article.Slug,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// GetArticleByID returns an article by id or domain.ErrNotFound.
func (s *ArticleStorage) GetArticleByID(ctx context.Context, id int64) (*domain.Article, error) {
	var article domain.Article
	err := s.db.GetContext(ctx, &article, `SELECT * FROM articles WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		s.logger.Error("failed to get article by id", "article_id", id, "error", err)
		return nil, fmt.Errorf("select article by id: %w", err)
	}
	return &article, nil
}

// GetArticleBySlug returns an article by slug or domain.ErrNotFound.
func (s *ArticleStorage) GetArticleBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	var article domain.Article
	err := s.db.GetContext(ctx, &article, `SELECT * FROM articles WHERE slug = $1`, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		s.logger.Error("failed to get article by slug", "slug", slug, "error", err)
		return nil, fmt.Errorf("select article by slug: %w", err)
	}
	return &article, nil
}

// ListArticles returns all articles with offset pagination, regardless of
// publication status.
func (s *ArticleStorage) ListArticles(ctx context.Context, skip, limit int) ([]domain.Article, error) {
	start := time.Now()

	var articles []domain.Article
	q := `SELECT * FROM articles ORDER BY id LIMIT $1 OFFSET $2`
	if err := s.db.SelectContext(ctx, &articles, q, limit, skip); err != nil {
		s.logger.Error("failed to list articles", "skip", skip, "limit", limit, "error", err)
		return nil, fmt.Errorf("select articles: %w", err)
	}

	s.logger.Info("articles listed",
		"count", len(articles),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return articles, nil
}

// ListPublishedArticles returns only articles marked as published.
func (s *ArticleStorage) ListPublishedArticles(ctx context.Context) ([]domain.Article, error) {
	var articles []domain.Article
	q := `SELECT * FROM articles WHERE is_published = TRUE ORDER BY id`
	if err := s.db.SelectContext(ctx, &articles, q); err != nil {
		s.logger.Error("failed to list published articles", "error", err)
		return nil, fmt.Errorf("select published articles: %w", err)
	}
	return articles, nil
}

// ListCategories returns the distinct non-empty article categories.
func (s *ArticleStorage) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	q := `SELECT DISTINCT category FROM articles WHERE category <> '' ORDER BY category`
	if err := s.db.SelectContext(ctx, &categories, q); err != nil {
		s.logger.Error("failed to list categories", "error", err)
		return nil, fmt.Errorf("select categories: %w", err)
	}
	return categories, nil
}

// UpdateArticle overwrites the mutable columns of an existing article.
func (s *ArticleStorage) UpdateArticle(ctx context.Context, article *domain.Article) error {
	start := time.Now()

	query := `
	UPDATE articles
	SET title = :title, slug = :slug, content = :content, excerpt = :excerpt,
	    category = :category, image_url = :image_url, image_slug = :image_slug,
	    images = :images, structured_content = :structured_content,
	    is_published = :is_published
	WHERE id = :id
	`

	res, err := s.db.NamedExecContext(ctx, query, article)
	if err != nil {
		s.logger.Error("failed to update article", "article_id", article.ID, "error", err)
		return fmt.Errorf("update article: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}

	s.logger.Info("article updated successfully",
		"article_id", article.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// UpdateStructuredContent replaces only the AI-generated structure of an
// article. Used by the restructure worker.
func (s *ArticleStorage) UpdateStructuredContent(ctx context.Context, id int64, structured domain.JSONMap) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE articles SET structured_content = $1 WHERE id = $2`, structured, id)
	if err != nil {
		s.logger.Error("failed to update structured content", "article_id", id, "error", err)
		return fmt.Errorf("update structured content: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteArticle hard-deletes an article and its bookmarks.
func (s *ArticleStorage) DeleteArticle(ctx context.Context, id int64) error {
	start := time.Now()

	res, err := s.db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		s.logger.Error("failed to delete article", "article_id", id, "error", err)
		return fmt.Errorf("delete article: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM saved_articles WHERE article_id = $1`, id); err != nil {
		s.logger.Error("failed to delete article bookmarks", "article_id", id, "error", err)
		return fmt.Errorf("delete article bookmarks: %w", err)
	}

	s.logger.Info("article deleted",
		"article_id", id,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// GetSavedArticle returns the bookmark for a (user, article) pair or
// domain.ErrNotFound.
func (s *ArticleStorage) GetSavedArticle(ctx context.Context, userID, articleID int64) (*domain.SavedArticle, error) {
	var saved domain.SavedArticle
	q := `SELECT * FROM saved_articles WHERE user_id = $1 AND article_id = $2 LIMIT 1`
	err := s.db.GetContext(ctx, &saved, q, userID, articleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		s.logger.Error("failed to get saved article", "user_id", userID, "article_id", articleID, "error", err)
		return nil, fmt.Errorf("select saved article: %w", err)
	}
	return &saved, nil
}

// CreateSavedArticle inserts a bookmark row.
func (s *ArticleStorage) CreateSavedArticle(ctx context.Context, saved *domain.SavedArticle) error {
	query := `
	INSERT INTO saved_articles (user_id, article_id)
	VALUES ($1, $2)
	RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query, saved.UserID, saved.ArticleID).Scan(&saved.ID)
	if err != nil {
		s.logger.Error("failed to insert saved article",
			"user_id", saved.UserID, "article_id", saved.ArticleID, "error", err)
		return fmt.Errorf("insert saved article: %w", err)
	}

	s.logger.Info("article saved", "user_id", saved.UserID, "article_id", saved.ArticleID)
	return nil
}

// DeleteSavedArticle removes a bookmark or returns domain.ErrNotFound when
// the pair was never saved.
func (s *ArticleStorage) DeleteSavedArticle(ctx context.Context, userID, articleID int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM saved_articles WHERE user_id = $1 AND article_id = $2`, userID, articleID)
	if err != nil {
		s.logger.Error("failed to delete saved article",
			"user_id", userID, "article_id", articleID, "error", err)
		return fmt.Errorf("delete saved article: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}

	s.logger.Info("article unsaved", "user_id", userID, "article_id", articleID)
	return nil
}

// ListSavedArticles returns every bookmark belonging to a user.
func (s *ArticleStorage) ListSavedArticles(ctx context.Context, userID int64) ([]domain.SavedArticle, error) {
	var saved []domain.SavedArticle
	q := `SELECT * FROM saved_articles WHERE user_id = $1 ORDER BY id`
	if err := s.db.SelectContext(ctx, &saved, q, userID); err != nil {
		s.logger.Error("failed to list saved articles", "user_id", userID, "error", err)
		return nil, fmt.Errorf("select saved articles: %w", err)
	}
	return saved, nil
}
