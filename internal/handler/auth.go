package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tenerify/tenerify/internal/domain"
	"github.com/tenerify/tenerify/internal/usecase"
)

// AuthHandler serves registration, login and the current-user endpoint.
type AuthHandler struct {
	authUseCase usecase.AuthUseCase
	logger      *slog.Logger
}

func NewAuthHandler(uc usecase.AuthUseCase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{authUseCase: uc, logger: logger}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register creates a new account from a JSON body.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var reg domain.UserRegistration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	user, err := h.authUseCase.Register(r.Context(), reg)
	if err != nil {
		h.logger.Error("registration failed", "email", reg.Email, "error", err)
		respondWithDomainError(w, err, h.logger)
		return
	}

	h.logger.Info("user registered", "user_id", user.ID)
	respondWithJSON(w, http.StatusOK, user, h.logger)
}

// Login exchanges form-encoded credentials for a bearer token. The form
// field is named "username" but carries the email, an OAuth2 password-flow
// convention kept for client compatibility.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid form data", h.logger)
		return
	}

	email := r.PostFormValue("username")
	password := r.PostFormValue("password")

	token, err := h.authUseCase.Login(r.Context(), email, password)
	if err != nil {
		h.logger.Warn("login failed", "email", email)
		respondWithDomainError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	}, h.logger)
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated", h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, user, h.logger)
}
