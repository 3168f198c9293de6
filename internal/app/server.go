package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tenerify/tenerify/internal/handler"
)

// runServer starts the HTTP API and blocks until the context is cancelled.
func (a *App) runServer(ctx context.Context) error {
	authHandler := handler.NewAuthHandler(a.authUseCase, a.logger)
	blogHandler := handler.NewBlogHandler(a.blogUseCase, a.fileStorage, a.structurePublisher, a.logger)
	searchHandler := handler.NewSearchHandler(a.searchUseCase, a.logger)

	authenticated := handler.Authenticator(a.authUseCase, a.logger)

	r := chi.NewRouter()
	r.Use(handler.RequestLogger(a.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(a.Config.RequestTimeout))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Welcome to Tenerify API"}`))
	})

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
			r.Get("/categories", blogHandler.ListCategories)
			r.Get("/articles", blogHandler.ListArticles)
			r.Get("/articles/{id}", blogHandler.GetArticle)
			r.Get("/articles/slug/{slug}", blogHandler.GetArticleBySlug)

			r.Group(func(r chi.Router) {
				r.Use(authenticated)

				r.Post("/", blogHandler.CreateArticleSimple)
				r.Post("/articles", blogHandler.CreateArticle)
				r.Post("/articles/{id}/restructure", blogHandler.RestructureArticle)
				r.Post("/upload-image", blogHandler.UploadImage)

				r.Post("/save/{articleID}", blogHandler.SaveArticle)
				r.Delete("/unsave/{articleID}", blogHandler.UnsaveArticle)
				r.Post("/unsave/{articleID}", blogHandler.UnsaveArticle)
				r.Post("/{articleID}/save", blogHandler.SaveArticle)
				r.Delete("/{articleID}/unsave", blogHandler.UnsaveArticle)
				r.Get("/saved", blogHandler.ListSaved)

				r.Put("/{articleID}", blogHandler.UpdateArticle)
				r.Delete("/{articleID}", blogHandler.DeleteArticle)
			})

			// Catch-all slug read stays last so fixed routes win.
			r.Get("/{slug}", blogHandler.GetArticleBySlug)
		})
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", a.Config.ServerPort),
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("shutting down http server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	a.logger.Info("http server stopped")
	return nil
}
