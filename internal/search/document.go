// Package search provides full-text search over archived signals using Bleve.
package search

import "github.com/signaldeck/signaldeck-server/internal/domain"

// PostDocument is the indexed form of an archived post.
type PostDocument struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Content      string `json:"content"`
	AuthorName   string `json:"author_name"`
	AuthorHandle string `json:"author_handle"`
	Likes        int    `json:"likes"`
	Replies      int    `json:"replies"`
	SourceURL    string `json:"source_url,omitempty"`
}

// NewPostDocument builds the index document for p.
func NewPostDocument(p domain.Post) *PostDocument {
	return &PostDocument{
		ID:           p.ID,
		Type:         string(p.Type),
		Content:      p.Content,
		AuthorName:   p.AuthorName,
		AuthorHandle: p.AuthorHandle,
		Likes:        p.Likes,
		Replies:      p.Replies,
		SourceURL:    p.SourceURL,
	}
}

// ToMap converts the document to a map keyed by the mapping's field names.
func (d *PostDocument) ToMap() map[string]any {
	m := map[string]any{
		"id":            d.ID,
		"type":          d.Type,
		"content":       d.Content,
		"author_name":   d.AuthorName,
		"author_handle": d.AuthorHandle,
		"likes":         float64(d.Likes),
		"replies":       float64(d.Replies),
	}
	if d.SourceURL != "" {
		m["source_url"] = d.SourceURL
	}
	return m
}
