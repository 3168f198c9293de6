package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tenerify/tenerify/internal/core/ports"
	"github.com/tenerify/tenerify/internal/domain"
	"github.com/tenerify/tenerify/internal/messaging/payloads"
	"github.com/tenerify/tenerify/internal/usecase"
)

// BlogHandler serves the article CRUD, bookmark and image-upload endpoints.
type BlogHandler struct {
	blogUseCase        usecase.BlogUseCase
	fileStorage        ports.FileStorage
	structurePublisher ports.StructureJobPublisher
	logger             *slog.Logger
}

func NewBlogHandler(
	uc usecase.BlogUseCase,
	files ports.FileStorage,
	publisher ports.StructureJobPublisher,
	logger *slog.Logger,
) *BlogHandler {
	return &BlogHandler{
		blogUseCase:        uc,
		fileStorage:        files,
		structurePublisher: publisher,
		logger:             logger,
	}
}

func (h *BlogHandler) requireAdmin(w http.ResponseWriter, r *http.Request, action string) (*domain.User, bool) {
	user, ok := userFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated", h.logger)
		return nil, false
	}
	if !user.IsAdmin {
		respondWithError(w, http.StatusForbidden, fmt.Sprintf("Only admins can %s", action), h.logger)
		return nil, false
	}
	return user, true
}

func articleIDParam(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

// ListPublished returns published articles only. Public endpoint.
func (h *BlogHandler) ListPublished(w http.ResponseWriter, r *http.Request) {
	articles, err := h.blogUseCase.ListPublishedArticles(r.Context())
	if err != nil {
		h.logger.Error("failed to list published articles", "error", err)
		respondWithDomainError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, articles, h.logger)
}

// ListArticles returns all articles with skip/limit pagination.
func (h *BlogHandler) ListArticles(w http.ResponseWriter, r *http.Request) {
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	articles, err := h.blogUseCase.ListArticles(r.Context(), skip, limit)
	if err != nil {
		h.logger.Error("failed to list articles", "error", err)
		respondWithDomainError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, articles, h.logger)
}

// ListCategories returns the distinct non-empty article categories.
func (h *BlogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.blogUseCase.ListCategories(r.Context())
	if err != nil {
		h.logger.Error("failed to list categories", "error", err)
		respondWithDomainError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, categories, h.logger)
}

// CreateArticle creates an article with AI content structuring. Admin only.
func (h *BlogHandler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireAdmin(w, r, "create articles"); !ok {
		return
	}

	var in usecase.ArticleInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	article, err := h.blogUseCase.CreateArticle(r.Context(), in)
	if err != nil {
		h.logger.Error("failed to create article", "title", in.Title, "error", err)
		respondWithDomainError(w, err, h.logger)
		return
	}

	h.logger.Info("article created", "article_id", article.ID, "slug", article.Slug)
	respondWithJSON(w, http.StatusOK, article, h.logger)
}

// CreateArticleSimple creates an article without AI structuring, recording
// the caller as the author. Admin only.
func (h *BlogHandler) CreateArticleSimple(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireAdmin(w, r, "create articles")
	if !ok {
		return
	}

	var in usecase.ArticleInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	article, err := h.blogUseCase.CreateArticleSimple(r.Context(), in, user.ID)
	if err != nil {
		h.logger.Error("failed to create article", "title", in.Title, "error", err)
		respondWithDomainError(w, err, h.logger)
		return
	}

	h.logger.Info("article created", "article_id", article.ID, "author_id", user.ID)
	respondWithJSON(w, http.StatusOK, article, h.logger)
}

// GetArticle returns one article by its numeric id.
func (h *BlogHandler) GetArticle(w http.ResponseWriter, r *http.Request) {
	id, err := articleIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid article id", h.logger)
		return
	}

	article, err := h.blogUseCase.GetArticle(r.Context(), id)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, article, h.logger)
}

// GetArticleBySlug returns one article by its slug.
func (h *BlogHandler) GetArticleBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	article, err := h.blogUseCase.GetArticleBySlug(r.Context(), slug)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, article, h.logger)
}

// UpdateArticle applies a partial update. Admin only.
func (h *BlogHandler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireAdmin(w, r, "update articles"); !ok {
		return
	}

	id, err := articleIDParam(r, "articleID")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid article id", h.logger)
		return
	}

	var upd domain.ArticleUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	article, err := h.blogUseCase.UpdateArticle(r.Context(), id, upd)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}

	h.logger.Info("article updated", "article_id", id)
	respondWithJSON(w, http.StatusOK, article, h.logger)
}

// DeleteArticle permanently removes an article. Admin only.
func (h *BlogHandler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireAdmin(w, r, "delete articles"); !ok {
		return
	}

	id, err := articleIDParam(r, "articleID")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid article id", h.logger)
		return
	}

	if err := h.blogUseCase.DeleteArticle(r.Context(), id); err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}

	h.logger.Info("article deleted", "article_id", id)
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Article deleted successfully"}, h.logger)
}

// UploadImage stores a blog image and returns its public URL. Admin only.
func (h *BlogHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireAdmin(w, r, "upload images"); !ok {
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "File is required", h.logger)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		respondWithError(w, http.StatusBadRequest, "File must be an image", h.logger)
		return
	}

	// Short random prefix keeps repeated uploads of the same filename apart.
	prefix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	key := fmt.Sprintf("%s-%s", prefix, header.Filename)

	url, err := h.fileStorage.UploadFile(r.Context(), key, file, contentType)
	if err != nil {
		h.logger.Error("failed to upload image", "key", key, "error", err)
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to save file: %v", err), h.logger)
		return
	}

	h.logger.Info("image uploaded", "key", key)
	respondWithJSON(w, http.StatusOK, map[string]string{"image_url": url}, h.logger)
}

// SaveArticle bookmarks an article for the caller. Saving twice returns the
// existing bookmark.
func (h *BlogHandler) SaveArticle(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated", h.logger)
		return
	}

	articleID, err := articleIDParam(r, "articleID")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid article id", h.logger)
		return
	}

	saved, err := h.blogUseCase.SaveArticle(r.Context(), user.ID, articleID)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}

	h.logger.Info("article saved", "user_id", user.ID, "article_id", articleID)
	respondWithJSON(w, http.StatusOK, saved, h.logger)
}

// UnsaveArticle removes a bookmark.
func (h *BlogHandler) UnsaveArticle(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated", h.logger)
		return
	}

	articleID, err := articleIDParam(r, "articleID")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid article id", h.logger)
		return
	}

	if err := h.blogUseCase.UnsaveArticle(r.Context(), user.ID, articleID); err != nil {
		if err == domain.ErrNotFound {
			respondWithError(w, http.StatusNotFound, "Saved article not found", h.logger)
			return
		}
		respondWithDomainError(w, err, h.logger)
		return
	}

	h.logger.Info("article unsaved", "user_id", user.ID, "article_id", articleID)
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Article removed from saved"}, h.logger)
}

// ListSaved returns the caller's bookmarks.
func (h *BlogHandler) ListSaved(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated", h.logger)
		return
	}

	saved, err := h.blogUseCase.ListSavedArticles(r.Context(), user.ID)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, saved, h.logger)
}

// RestructureArticle enqueues an async regeneration of the article's
// structured content. Admin only.
func (h *BlogHandler) RestructureArticle(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireAdmin(w, r, "restructure articles"); !ok {
		return
	}

	id, err := articleIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid article id", h.logger)
		return
	}

	// The article must exist before a job is queued for it.
	if _, err := h.blogUseCase.GetArticle(r.Context(), id); err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}

	payload := payloads.ArticleStructurePayload{ArticleID: id}
	if err := h.structurePublisher.PublishStructureRequest(r.Context(), payload); err != nil {
		h.logger.Error("failed to publish restructure job", "article_id", id, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to queue restructure job", h.logger)
		return
	}

	h.logger.Info("restructure job queued", "article_id", id)
	respondWithJSON(w, http.StatusAccepted, map[string]string{"message": "Article restructure queued"}, h.logger)
}
