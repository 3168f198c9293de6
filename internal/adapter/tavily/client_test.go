package tavily

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient("test-key")
	client.baseURL = server.URL
	return client
}

func TestEnabled(t *testing.T) {
	t.Parallel()

	assert.True(t, NewClient("key").Enabled())
	assert.False(t, NewClient("").Enabled())
}

func TestSearchContext_FormatsResults(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)

		var req searchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-key", req.APIKey)
		assert.Equal(t, "basic", req.SearchDepth)
		assert.False(t, req.IncludeImages)

		json.NewEncoder(w).Encode(SearchResponse{
			Results: []SearchResult{
				{Title: "Teide Tour", URL: "https://a", Content: "Volcano tour"},
				{Title: "Siam Park", URL: "https://b", Content: "Water park"},
			},
		})
	})

	context, err := client.SearchContext(context.Background(), "tenerife activities")
	require.NoError(t, err)

	expected := "Title: Teide Tour\nURL: https://a\nContent: Volcano tour\n\n" +
		"Title: Siam Park\nURL: https://b\nContent: Water park\n\n"
	assert.Equal(t, expected, context)
}

func TestSearchContext_APIError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	_, err := client.SearchContext(context.Background(), "query")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestSearchImage_ReturnsFirstImage(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req searchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, req.IncludeImages)
		assert.Equal(t, 3, req.MaxResults)

		json.NewEncoder(w).Encode(SearchResponse{
			Images: []string{"https://img/first.jpg", "https://img/second.jpg"},
		})
	})

	url, err := client.SearchImage(context.Background(), "Tenerife Teide")
	require.NoError(t, err)
	assert.Equal(t, "https://img/first.jpg", url)
}

func TestSearchImage_NoImages(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(SearchResponse{})
	})

	url, err := client.SearchImage(context.Background(), "query")
	require.NoError(t, err)
	assert.Empty(t, url)
}
