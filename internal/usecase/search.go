package usecase

import (
	"context"

	"github.com/tenerify/tenerify/internal/domain"
)

// WebSearcher is the web-search port consumed by the search use case.
type WebSearcher interface {
	// Enabled reports whether the provider is configured with an API key.
	Enabled() bool

	// SearchContext runs a web search and returns the results formatted as
	// a text context block.
	SearchContext(ctx context.Context, query string) (string, error)

	// SearchImage returns the URL of the most relevant image for the query,
	// or an empty string when none was found.
	SearchImage(ctx context.Context, query string) (string, error)
}

// SearchUseCase answers activity queries about Tenerife.
type SearchUseCase interface {
	// ProcessQuery runs the full pipeline: relevance check, web search,
	// AI structuring and image enrichment. Off-topic queries return an
	// empty result set with a localized message. Works without API keys
	// by degrading to mock data.
	ProcessQuery(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error)
}
