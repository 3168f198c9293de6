package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tenerify/tenerify/internal/domain"
	"github.com/tenerify/tenerify/internal/usecase"
)

// SearchHandler serves the AI activity search endpoint.
type SearchHandler struct {
	searchUseCase usecase.SearchUseCase
	logger        *slog.Logger
}

func NewSearchHandler(uc usecase.SearchUseCase, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{searchUseCase: uc, logger: logger}
}

// Search runs the activity search pipeline for an authenticated user.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req domain.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}
	if req.Query == "" {
		respondWithError(w, http.StatusBadRequest, "Query is required", h.logger)
		return
	}
	if req.Language == "" {
		req.Language = "es"
	}

	h.logger.Info("processing search query",
		"query", req.Query,
		"is_suggestion", req.IsSuggestion,
		"language", req.Language,
	)

	response, err := h.searchUseCase.ProcessQuery(r.Context(), req)
	if err != nil {
		h.logger.Error("search failed", "query", req.Query, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Search failed", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, response, h.logger)
}
