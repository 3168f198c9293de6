package payloads

// ArticleStructurePayload is the queue message asking the worker to
// regenerate the structured content of one article.
type ArticleStructurePayload struct {
	ArticleID int64 `json:"article_id"`
}
