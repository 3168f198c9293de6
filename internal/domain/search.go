package domain

// SearchRequest is a natural-language activity query.
type SearchRequest struct {
	Query        string `json:"query"`
	IsSuggestion bool   `json:"is_suggestion"`
	Language     string `json:"language"`
}

// ActivityResult is one activity extracted from web search results.
type ActivityResult struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Duration    string `json:"duration"`
	Rating      string `json:"rating"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url"`
	Link        string `json:"link"`
}

// SearchResponse is the structured answer to a search request. OffTopic is
// set when the query is about a destination other than Tenerife.
type SearchResponse struct {
	Results  []ActivityResult `json:"results"`
	OffTopic bool             `json:"off_topic"`
	Message  string           `json:"message,omitempty"`
}
