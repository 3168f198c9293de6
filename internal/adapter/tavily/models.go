package tavily

// searchRequest is the Tavily /search request body.
type searchRequest struct {
	APIKey        string `json:"api_key"`
	Query         string `json:"query"`
	SearchDepth   string `json:"search_depth"`
	IncludeImages bool   `json:"include_images"`
	MaxResults    int    `json:"max_results,omitempty"`
}

// SearchResult is one web result returned by Tavily.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// SearchResponse is the Tavily /search response.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
	Images  []string       `json:"images"`
}
