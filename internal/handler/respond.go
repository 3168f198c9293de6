package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tenerify/tenerify/internal/domain"
)

// respondWithJSON writes a JSON response.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error("failed to marshal JSON response", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		logger.Error("failed to write HTTP response", "error", err)
	}
}

// respondWithError writes an error body. The "detail" key is part of the
// public contract consumed by the frontend.
func respondWithError(w http.ResponseWriter, code int, message string, logger *slog.Logger) {
	respondWithJSON(w, code, map[string]string{"detail": message}, logger)
}

// respondWithDomainError maps a domain error to its HTTP status and public
// message. Unknown errors become a generic 500.
func respondWithDomainError(w http.ResponseWriter, err error, logger *slog.Logger) {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		respondWithError(w, http.StatusBadRequest, "Incorrect email or password", logger)
	case errors.Is(err, domain.ErrInactiveUser):
		respondWithError(w, http.StatusBadRequest, "Inactive user", logger)
	case errors.Is(err, domain.ErrDuplicateEmail):
		respondWithError(w, http.StatusBadRequest, "The user with this username already exists in the system.", logger)
	case errors.Is(err, domain.ErrInvalidToken):
		respondWithError(w, http.StatusForbidden, "Could not validate credentials", logger)
	case errors.Is(err, domain.ErrUserNotFound):
		respondWithError(w, http.StatusNotFound, "User not found", logger)
	case errors.Is(err, domain.ErrAdminRequired):
		respondWithError(w, http.StatusForbidden, "Requires administrator privileges", logger)
	case errors.Is(err, domain.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Article not found", logger)
	case errors.Is(err, domain.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, err.Error(), logger)
	default:
		respondWithError(w, http.StatusInternalServerError, "Internal server error", logger)
	}
}
