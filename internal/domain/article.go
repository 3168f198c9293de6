package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Article represents a blog post,
// maps to the 'articles' table in the database.
type Article struct {
	ID                int64      `json:"id" db:"id"`
	Title             string     `json:"title" db:"title"`
	Slug              string     `json:"slug" db:"slug"`
	Content           string     `json:"content" db:"content"`
	Excerpt           string     `json:"excerpt" db:"excerpt"`
	Category          string     `json:"category" db:"category"`
	ImageURL          string     `json:"image_url" db:"image_url"`
	ImageSlug         string     `json:"image_slug" db:"image_slug"`
	Images            StringList `json:"images" db:"images"`
	StructuredContent JSONMap    `json:"structured_content" db:"structured_content"`
	AuthorID          *int64     `json:"author_id" db:"author_id"`
	IsPublished       bool       `json:"is_published" db:"is_published"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
}

// SavedArticle is the user-article bookmark relation,
// maps to the 'saved_articles' table. Pair uniqueness is enforced at the
// application level: saving twice returns the existing record.
type SavedArticle struct {
	ID        int64 `json:"id" db:"id"`
	UserID    int64 `json:"user_id" db:"user_id"`
	ArticleID int64 `json:"article_id" db:"article_id"`
}

// ArticleUpdate carries a partial update. Nil fields are left unchanged.
type ArticleUpdate struct {
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	Excerpt     *string `json:"excerpt"`
	Category    *string `json:"category"`
	ImageURL    *string `json:"image_url"`
	IsPublished *bool   `json:"is_published"`
}

// StringList stores a JSON array of strings in a jsonb column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(src any) error {
	if src == nil {
		*l = nil
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
	return json.Unmarshal(b, l)
}

// JSONMap stores an arbitrary JSON object in a jsonb column. Used for the
// AI-generated structured content.
type JSONMap map[string]any

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(src any) error {
	if src == nil {
		*m = nil
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into JSONMap", src)
	}
	return json.Unmarshal(b, m)
}
