package usecase

import (
	"context"

	"github.com/tenerify/tenerify/internal/domain"
)

// ArticleStorage is the content-store port consumed by the blog use case.
type ArticleStorage interface {
	CreateArticle(ctx context.Context, article *domain.Article) error
	GetArticleByID(ctx context.Context, id int64) (*domain.Article, error)
	GetArticleBySlug(ctx context.Context, slug string) (*domain.Article, error)
	ListArticles(ctx context.Context, skip, limit int) ([]domain.Article, error)
	ListPublishedArticles(ctx context.Context) ([]domain.Article, error)
	ListCategories(ctx context.Context) ([]string, error)
	UpdateArticle(ctx context.Context, article *domain.Article) error
	UpdateStructuredContent(ctx context.Context, id int64, structured domain.JSONMap) error
	DeleteArticle(ctx context.Context, id int64) error

	GetSavedArticle(ctx context.Context, userID, articleID int64) (*domain.SavedArticle, error)
	CreateSavedArticle(ctx context.Context, saved *domain.SavedArticle) error
	DeleteSavedArticle(ctx context.Context, userID, articleID int64) error
	ListSavedArticles(ctx context.Context, userID int64) ([]domain.SavedArticle, error)
}

// ArticleStructurer turns raw article text into the structured-content
// document rendered by the frontend.
type ArticleStructurer interface {
	StructureArticle(ctx context.Context, title, content string) (domain.JSONMap, error)
}

// ArticleInput carries article creation data.
type ArticleInput struct {
	Title             string            `json:"title"`
	Slug              string            `json:"slug"`
	Content           string            `json:"content"`
	Excerpt           string            `json:"excerpt"`
	Category          string            `json:"category"`
	ImageURL          string            `json:"image_url"`
	ImageSlug         string            `json:"image_slug"`
	Images            domain.StringList `json:"images"`
	StructuredContent domain.JSONMap    `json:"structured_content"`
	IsPublished       bool              `json:"is_published"`
}

// BlogUseCase is the article and bookmark business logic.
type BlogUseCase interface {
	// CreateArticle creates an article and runs AI structuring over its
	// content. A structuring failure does not fail the creation; the
	// article is stored without structured content.
	CreateArticle(ctx context.Context, in ArticleInput) (*domain.Article, error)

	// CreateArticleSimple creates an article without AI structuring and
	// records the author.
	CreateArticleSimple(ctx context.Context, in ArticleInput, authorID int64) (*domain.Article, error)

	GetArticle(ctx context.Context, id int64) (*domain.Article, error)
	GetArticleBySlug(ctx context.Context, slug string) (*domain.Article, error)
	ListArticles(ctx context.Context, skip, limit int) ([]domain.Article, error)
	ListPublishedArticles(ctx context.Context) ([]domain.Article, error)
	ListCategories(ctx context.Context) ([]string, error)

	// UpdateArticle applies a partial update; nil fields stay unchanged.
	UpdateArticle(ctx context.Context, id int64, upd domain.ArticleUpdate) (*domain.Article, error)
	DeleteArticle(ctx context.Context, id int64) error

	// SaveArticle bookmarks an article for a user. Saving an already
	// bookmarked article returns the existing record.
	SaveArticle(ctx context.Context, userID, articleID int64) (*domain.SavedArticle, error)
	UnsaveArticle(ctx context.Context, userID, articleID int64) error
	ListSavedArticles(ctx context.Context, userID int64) ([]domain.SavedArticle, error)

	// RestructureArticle regenerates the structured content of a stored
	// article. Invoked by the queue worker.
	RestructureArticle(ctx context.Context, articleID int64) error
}
