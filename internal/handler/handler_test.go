package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenerify/tenerify/internal/domain"
	"github.com/tenerify/tenerify/internal/messaging/payloads"
	"github.com/tenerify/tenerify/internal/usecase"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeAuth implements usecase.AuthUseCase over a static token table.
type fakeAuth struct {
	usersByToken map[string]*domain.User
	loginToken   string
	loginErr     error
	registerErr  error
}

func (f *fakeAuth) Register(_ context.Context, reg domain.UserRegistration) (*domain.User, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &domain.User{ID: 1, Email: reg.Email, FullName: reg.FullName, IsActive: true, Language: "it"}, nil
}

func (f *fakeAuth) Login(_ context.Context, _, _ string) (string, error) {
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return f.loginToken, nil
}

func (f *fakeAuth) Authenticate(_ context.Context, token string) (*domain.User, error) {
	user, ok := f.usersByToken[token]
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	return user, nil
}

// fakeBlog implements usecase.BlogUseCase with canned values.
type fakeBlog struct {
	article    *domain.Article
	articleErr error
	saved      *domain.SavedArticle
	unsaveErr  error
}

func (f *fakeBlog) CreateArticle(_ context.Context, in usecase.ArticleInput) (*domain.Article, error) {
	return &domain.Article{ID: 1, Title: in.Title, Slug: usecase.Slugify(in.Title)}, nil
}

func (f *fakeBlog) CreateArticleSimple(_ context.Context, in usecase.ArticleInput, authorID int64) (*domain.Article, error) {
	return &domain.Article{ID: 1, Title: in.Title, AuthorID: &authorID}, nil
}

func (f *fakeBlog) GetArticle(_ context.Context, _ int64) (*domain.Article, error) {
	return f.article, f.articleErr
}

func (f *fakeBlog) GetArticleBySlug(_ context.Context, _ string) (*domain.Article, error) {
	return f.article, f.articleErr
}

func (f *fakeBlog) ListArticles(_ context.Context, _, _ int) ([]domain.Article, error) {
	return nil, nil
}

func (f *fakeBlog) ListPublishedArticles(_ context.Context) ([]domain.Article, error) {
	return nil, nil
}

func (f *fakeBlog) ListCategories(_ context.Context) ([]string, error) {
	return []string{"Natura"}, nil
}

func (f *fakeBlog) UpdateArticle(_ context.Context, _ int64, _ domain.ArticleUpdate) (*domain.Article, error) {
	return f.article, f.articleErr
}

func (f *fakeBlog) DeleteArticle(_ context.Context, _ int64) error {
	return f.articleErr
}

func (f *fakeBlog) SaveArticle(_ context.Context, _, _ int64) (*domain.SavedArticle, error) {
	return f.saved, f.articleErr
}

func (f *fakeBlog) UnsaveArticle(_ context.Context, _, _ int64) error {
	return f.unsaveErr
}

func (f *fakeBlog) ListSavedArticles(_ context.Context, _ int64) ([]domain.SavedArticle, error) {
	return nil, nil
}

func (f *fakeBlog) RestructureArticle(_ context.Context, _ int64) error {
	return nil
}

// fakeSearch implements usecase.SearchUseCase.
type fakeSearch struct {
	response *domain.SearchResponse
}

func (f *fakeSearch) ProcessQuery(_ context.Context, _ domain.SearchRequest) (*domain.SearchResponse, error) {
	return f.response, nil
}

// fakeFiles implements ports.FileStorage.
type fakeFiles struct {
	lastKey string
}

func (f *fakeFiles) UploadFile(_ context.Context, key string, _ io.Reader, _ string) (string, error) {
	f.lastKey = key
	return "http://minio/blog-images/" + key, nil
}

func (f *fakeFiles) DeleteFile(_ context.Context, _ string) error { return nil }

// fakePublisher records published restructure jobs.
type fakePublisher struct {
	published []payloads.ArticleStructurePayload
}

func (f *fakePublisher) PublishStructureRequest(_ context.Context, payload payloads.ArticleStructurePayload) error {
	f.published = append(f.published, payload)
	return nil
}

type testEnv struct {
	router    *chi.Mux
	auth      *fakeAuth
	blog      *fakeBlog
	files     *fakeFiles
	publisher *fakePublisher
}

func newTestEnv() *testEnv {
	logger := discardLogger()

	auth := &fakeAuth{
		usersByToken: map[string]*domain.User{
			"user-token":  {ID: 1, Email: "user@x.com", IsActive: true},
			"admin-token": {ID: 2, Email: "admin@x.com", IsActive: true, IsAdmin: true},
		},
		loginToken: "user-token",
	}
	blog := &fakeBlog{
		article: &domain.Article{ID: 1, Title: "T", Slug: "t"},
		saved:   &domain.SavedArticle{ID: 1, UserID: 1, ArticleID: 1},
	}
	files := &fakeFiles{}
	publisher := &fakePublisher{}

	authHandler := NewAuthHandler(auth, logger)
	blogHandler := NewBlogHandler(blog, files, publisher, logger)
	searchHandler := NewSearchHandler(&fakeSearch{response: &domain.SearchResponse{
		Results: []domain.ActivityResult{{Title: "Teide"}},
	}}, logger)

	authenticated := Authenticator(auth, logger)

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.With(authenticated).Get("/me", authHandler.Me)
		})
		r.Route("/search", func(r chi.Router) {
			r.With(authenticated).Post("/", searchHandler.Search)
		})
		r.Route("/blog", func(r chi.Router) {
			r.Get("/", blogHandler.ListPublished)
			r.Get("/articles/{id}", blogHandler.GetArticle)
			r.Group(func(r chi.Router) {
				r.Use(authenticated)
				r.Post("/articles", blogHandler.CreateArticle)
				r.Post("/articles/{id}/restructure", blogHandler.RestructureArticle)
				r.Post("/upload-image", blogHandler.UploadImage)
				r.Post("/save/{articleID}", blogHandler.SaveArticle)
				r.Delete("/unsave/{articleID}", blogHandler.UnsaveArticle)
				r.Post("/{articleID}/save", blogHandler.SaveArticle)
				r.Delete("/{articleID}/unsave", blogHandler.UnsaveArticle)
				r.Delete("/{articleID}", blogHandler.DeleteArticle)
			})
		})
	})

	return &testEnv{router: r, auth: auth, blog: blog, files: files, publisher: publisher}
}

func (e *testEnv) do(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var body map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

// Missing Authorization header is a 401; a present but invalid token is a
// 403. Both codes are part of the public contract.
func TestMe_MissingVersusInvalidToken(t *testing.T) {
	t.Parallel()
	env := newTestEnv()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec, _ := env.do(t, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer bogus-token")
	rec, body := env.do(t, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Could not validate credentials", body["detail"])
}

// A header carrying the wrong scheme counts as a missing credential, not an
// invalid token. The scheme itself is matched case-insensitively.
func TestMe_AuthorizationScheme(t *testing.T) {
	t.Parallel()
	env := newTestEnv()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwdw==")
	rec, body := env.do(t, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Not authenticated", body["detail"])

	req = httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "bearer user-token")
	rec, body = env.do(t, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user@x.com", body["email"])
}

func TestMe_ValidToken(t *testing.T) {
	t.Parallel()
	env := newTestEnv()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer user-token")
	rec, body := env.do(t, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user@x.com", body["email"])
	assert.NotContains(t, body, "hashed_password")
}

func TestLogin_FormEncodedTokenResponse(t *testing.T) {
	t.Parallel()
	env := newTestEnv()

	form := url.Values{"username": {"user@x.com"}, "password": {"pw"}}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec, body := env.do(t, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-token", body["access_token"])
	assert.Equal(t, "bearer", body["token_type"])
}

func TestLogin_InvalidCredentials(t *testing.T) {
	t.Parallel()
	env := newTestEnv()
	env.auth.loginErr = domain.ErrInvalidCredentials

	form := url.Values{"username": {"a@x.com"}, "password": {"wrong"}}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec, body := env.do(t, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["detail"], "Incorrect")
}

func TestLogin_InactiveUser(t *testing.T) {
	t.Parallel()
	env := newTestEnv()
	env.auth.loginErr = domain.ErrInactiveUser

	form := url.Values{"username": {"sleepy@x.com"}, "password": {"right"}}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec, body := env.do(t, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["detail"], "Inactive")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()
	env := newTestEnv()
	env.auth.registerErr = domain.ErrDuplicateEmail

	payload := `{"email":"dup@x.com","password":"pw","full_name":"Dup"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(payload))
	rec, body := env.do(t, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "The user with this username already exists in the system.", body["detail"])
}

func TestCreateArticle_AdminOnly(t *testing.T) {
	t.Parallel()
	env := newTestEnv()

	payload := `{"title":"Nuovo","content":"Testo"}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/blog/articles", strings.NewReader(payload))
	req.Header.Set("Authorization", "Bearer user-token")
	rec, body := env.do(t, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Only admins can create articles", body["detail"])

	req = httptest.NewRequest(http.MethodPost, "/api/v1/blog/articles", strings.NewReader(payload))
	req.Header.Set("Authorization", "Bearer admin-token")
	rec, body = env.do(t, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nuovo", body["slug"])
}

func TestDeleteArticle_AdminOnly(t *testing.T) {
	t.Parallel()
	env := newTestEnv()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/blog/1", nil)
	req.Header.Set("Authorization", "Bearer user-token")
	rec, body := env.do(t, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Only admins can delete articles", body["detail"])

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/blog/1", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	rec, body = env.do(t, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Article deleted successfully", body["message"])
}

func TestSaveArticle_Authenticated(t *testing.T) {
	t.Parallel()
	env := newTestEnv()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/blog/save/1", nil)
	req.Header.Set("Authorization", "Bearer user-token")
	rec, body := env.do(t, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["article_id"])
}

// Both route spellings resolve the same bookmark handlers.
func TestBookmarks_AlternateRoutes(t *testing.T) {
	t.Parallel()
	env := newTestEnv()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/blog/1/save", nil)
	req.Header.Set("Authorization", "Bearer user-token")
	rec, body := env.do(t, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["article_id"])

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/blog/1/unsave", nil)
	req.Header.Set("Authorization", "Bearer user-token")
	rec, body = env.do(t, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Article removed from saved", body["message"])
}

func TestUnsaveArticle_NotFound(t *testing.T) {
	t.Parallel()
	env := newTestEnv()
	env.blog.unsaveErr = domain.ErrNotFound

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/blog/unsave/1", nil)
	req.Header.Set("Authorization", "Bearer user-token")
	rec, body := env.do(t, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Saved article not found", body["detail"])
}

func TestGetArticle_NotFound(t *testing.T) {
	t.Parallel()
	env := newTestEnv()
	env.blog.article = nil
	env.blog.articleErr = domain.ErrNotFound

	req := httptest.NewRequest(http.MethodGet, "/api/v1/blog/articles/404", nil)
	rec, body := env.do(t, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Article not found", body["detail"])
}

func multipartBody(t *testing.T, fieldName, fileName, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(map[string][]string)
	header["Content-Disposition"] = []string{`form-data; name="` + fieldName + `"; filename="` + fileName + `"`}
	header["Content-Type"] = []string{contentType}
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}

func TestUploadImage(t *testing.T) {
	t.Parallel()
	env := newTestEnv()

	body, contentType := multipartBody(t, "file", "photo.jpg", "image/jpeg", []byte("jpeg-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/blog/upload-image", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer admin-token")
	rec, respBody := env.do(t, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	imageURL, _ := respBody["image_url"].(string)
	assert.True(t, strings.HasSuffix(imageURL, "-photo.jpg"))
	assert.True(t, strings.HasSuffix(env.files.lastKey, "-photo.jpg"))
	assert.Len(t, strings.SplitN(env.files.lastKey, "-", 2)[0], 8)
}

func TestUploadImage_RejectsNonImage(t *testing.T) {
	t.Parallel()
	env := newTestEnv()

	body, contentType := multipartBody(t, "file", "notes.txt", "text/plain", []byte("hello"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/blog/upload-image", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer admin-token")
	rec, respBody := env.do(t, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "File must be an image", respBody["detail"])
}

func TestRestructureArticle_QueuesJob(t *testing.T) {
	t.Parallel()
	env := newTestEnv()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/blog/articles/1/restructure", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	rec, _ := env.do(t, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, env.publisher.published, 1)
	assert.Equal(t, int64(1), env.publisher.published[0].ArticleID)
}

func TestSearch_RequiresAuthentication(t *testing.T) {
	t.Parallel()
	env := newTestEnv()

	payload := `{"query":"spiagge","language":"it"}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/search/", strings.NewReader(payload))
	rec, _ := env.do(t, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/search/", strings.NewReader(payload))
	req.Header.Set("Authorization", "Bearer user-token")
	rec, body := env.do(t, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	results, ok := body["results"].([]any)
	require.True(t, ok)
	assert.Len(t, results, 1)
}
