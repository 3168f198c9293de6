package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/tenerify/tenerify/internal/domain"
	"github.com/tenerify/tenerify/internal/usecase"
)

type contextKey string

const userContextKey contextKey = "current_user"

// RequestLogger logs every HTTP request with its status and duration.
func RequestLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Wrap the ResponseWriter to capture the status code.
			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(ww, r)

			duration := time.Since(start)
			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.statusCode,
				"duration_ms", duration.Milliseconds(),
			)
		})
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Authenticator resolves the bearer token to a user and stores it in the
// request context. A missing header or a non-bearer scheme is a 401; a
// present bearer token that fails validation is a 403. Both codes are part
// of the public contract. The scheme comparison is case-insensitive.
func Authenticator(auth usecase.AuthUseCase, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			scheme, token, _ := strings.Cut(header, " ")
			if header == "" || !strings.EqualFold(scheme, "Bearer") {
				respondWithError(w, http.StatusUnauthorized, "Not authenticated", logger)
				return
			}

			user, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				respondWithDomainError(w, err, logger)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// userFromContext returns the authenticated user placed there by
// Authenticator.
func userFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userContextKey).(*domain.User)
	return user, ok
}
