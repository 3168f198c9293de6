package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tenerify/tenerify/internal/domain"
)

// BlogInteractor implements BlogUseCase.
type BlogInteractor struct {
	articles   ArticleStorage
	structurer ArticleStructurer
	logger     *slog.Logger
}

func NewBlogInteractor(articles ArticleStorage, structurer ArticleStructurer, logger *slog.Logger) *BlogInteractor {
	return &BlogInteractor{articles: articles, structurer: structurer, logger: logger}
}

// Slugify derives a URL-safe slug from a title: lowercase, spaces become
// dashes, apostrophes are dropped.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = strings.ReplaceAll(slug, "'", "")
	return slug
}

// MakeExcerpt produces a listing summary from the article body when none
// was provided. The cut is made on runes so multi-byte text stays valid
// UTF-8.
func MakeExcerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= 200 {
		return content + "..."
	}
	return string(runes[:200]) + "..."
}

func (i *BlogInteractor) newArticle(in ArticleInput) *domain.Article {
	slug := in.Slug
	if slug == "" {
		slug = Slugify(in.Title)
	}

	excerpt := in.Excerpt
	if excerpt == "" {
		excerpt = MakeExcerpt(in.Content)
	}

	images := in.Images
	if images == nil && in.ImageURL != "" {
		images = domain.StringList{in.ImageURL}
	}

	return &domain.Article{
		Title:             in.Title,
		Slug:              slug,
		Content:           in.Content,
		Excerpt:           excerpt,
		Category:          in.Category,
		ImageURL:          in.ImageURL,
		ImageSlug:         in.ImageSlug,
		Images:            images,
		StructuredContent: in.StructuredContent,
		IsPublished:       in.IsPublished,
	}
}

// CreateArticle builds the article, asks the structurer to organize its
// content and stores the result. The article is created even when the
// structurer fails.
func (i *BlogInteractor) CreateArticle(ctx context.Context, in ArticleInput) (*domain.Article, error) {
	if in.Title == "" || in.Content == "" {
		return nil, fmt.Errorf("%w: title and content are required", domain.ErrInvalidInput)
	}

	article := i.newArticle(in)

	structured, err := i.structurer.StructureArticle(ctx, in.Title, in.Content)
	if err != nil {
		i.logger.Error("failed to structure article content", "title", in.Title, "error", err)
	} else {
		article.StructuredContent = structured
	}

	if err := i.articles.CreateArticle(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

// CreateArticleSimple stores the article as-is and records the author.
func (i *BlogInteractor) CreateArticleSimple(ctx context.Context, in ArticleInput, authorID int64) (*domain.Article, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}

	article := i.newArticle(in)
	article.AuthorID = &authorID

	if err := i.articles.CreateArticle(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

func (i *BlogInteractor) GetArticle(ctx context.Context, id int64) (*domain.Article, error) {
	return i.articles.GetArticleByID(ctx, id)
}

func (i *BlogInteractor) GetArticleBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	return i.articles.GetArticleBySlug(ctx, slug)
}

func (i *BlogInteractor) ListArticles(ctx context.Context, skip, limit int) ([]domain.Article, error) {
	if limit <= 0 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}
	return i.articles.ListArticles(ctx, skip, limit)
}

func (i *BlogInteractor) ListPublishedArticles(ctx context.Context) ([]domain.Article, error) {
	return i.articles.ListPublishedArticles(ctx)
}

func (i *BlogInteractor) ListCategories(ctx context.Context) ([]string, error) {
	return i.articles.ListCategories(ctx)
}

// UpdateArticle loads the article, applies the non-nil fields and writes it
// back.
func (i *BlogInteractor) UpdateArticle(ctx context.Context, id int64, upd domain.ArticleUpdate) (*domain.Article, error) {
	article, err := i.articles.GetArticleByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		article.Title = *upd.Title
	}
	if upd.Content != nil {
		article.Content = *upd.Content
	}
	if upd.Excerpt != nil {
		article.Excerpt = *upd.Excerpt
	}
	if upd.Category != nil {
		article.Category = *upd.Category
	}
	if upd.ImageURL != nil {
		article.ImageURL = *upd.ImageURL
	}
	if upd.IsPublished != nil {
		article.IsPublished = *upd.IsPublished
	}

	if err := i.articles.UpdateArticle(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

func (i *BlogInteractor) DeleteArticle(ctx context.Context, id int64) error {
	return i.articles.DeleteArticle(ctx, id)
}

// SaveArticle bookmarks an article. The check-then-insert keeps a second
// save idempotent; the narrow race between two concurrent first saves is
// accepted and produces a duplicate row rather than an error.
func (i *BlogInteractor) SaveArticle(ctx context.Context, userID, articleID int64) (*domain.SavedArticle, error) {
	if _, err := i.articles.GetArticleByID(ctx, articleID); err != nil {
		return nil, err
	}

	existing, err := i.articles.GetSavedArticle(ctx, userID, articleID)
	if err == nil {
		return existing, nil
	}
	if err != domain.ErrNotFound {
		return nil, err
	}

	saved := &domain.SavedArticle{UserID: userID, ArticleID: articleID}
	if err := i.articles.CreateSavedArticle(ctx, saved); err != nil {
		return nil, err
	}
	return saved, nil
}

func (i *BlogInteractor) UnsaveArticle(ctx context.Context, userID, articleID int64) error {
	return i.articles.DeleteSavedArticle(ctx, userID, articleID)
}

func (i *BlogInteractor) ListSavedArticles(ctx context.Context, userID int64) ([]domain.SavedArticle, error) {
	return i.articles.ListSavedArticles(ctx, userID)
}

// RestructureArticle regenerates the AI structure for a stored article.
func (i *BlogInteractor) RestructureArticle(ctx context.Context, articleID int64) error {
	article, err := i.articles.GetArticleByID(ctx, articleID)
	if err != nil {
		return err
	}

	structured, err := i.structurer.StructureArticle(ctx, article.Title, article.Content)
	if err != nil {
		return fmt.Errorf("structure article %d: %w", articleID, err)
	}

	if err := i.articles.UpdateStructuredContent(ctx, articleID, structured); err != nil {
		return err
	}

	i.logger.Info("article restructured", "article_id", articleID)
	return nil
}
