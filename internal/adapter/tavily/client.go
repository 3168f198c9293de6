package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.tavily.com"

// Client talks to the Tavily web-search API.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

// NewClient creates a Tavily API client. An empty apiKey produces a disabled
// client; callers are expected to check Enabled and fall back to mock data.
func NewClient(apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

func (c *Client) search(ctx context.Context, body searchRequest) (*SearchResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("tavily API returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var searchResponse SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResponse); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return &searchResponse, nil
}

// SearchContext runs a basic web search and formats the results as a text
// context block for the language model.
func (c *Client) SearchContext(ctx context.Context, query string) (string, error) {
	resp, err := c.search(ctx, searchRequest{
		APIKey:        c.apiKey,
		Query:         query,
		SearchDepth:   "basic",
		IncludeImages: false,
	})
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, result := range resp.Results {
		fmt.Fprintf(&sb, "Title: %s\nURL: %s\nContent: %s\n\n", result.Title, result.URL, result.Content)
	}
	return sb.String(), nil
}

// SearchImage runs an image-enabled search and returns the first image URL,
// or an empty string when nothing was found.
func (c *Client) SearchImage(ctx context.Context, query string) (string, error) {
	searchCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	resp, err := c.search(searchCtx, searchRequest{
		APIKey:        c.apiKey,
		Query:         query,
		SearchDepth:   "basic",
		IncludeImages: true,
		MaxResults:    3,
	})
	if err != nil {
		return "", err
	}

	if len(resp.Images) == 0 {
		return "", nil
	}
	return resp.Images[0], nil
}
