package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Article is a single feed item after fetching and text cleanup.
// Immutable once created; scoring produces a ScoredArticle instead of
// mutating it.
type Article struct {
	ContentID    string     `json:"content_id"`
	Source       string     `json:"source"`
	Title        string     `json:"title"`
	Link         string     `json:"link"`
	PubDate      *time.Time `json:"pub_date,omitempty"`
	CombinedText string     `json:"combined_text"`
}

// DedupKey identifies an article within a batch. The link is the identity
// key; items without one fall back to title plus publication time.
func (a Article) DedupKey() string {
	if a.Link != "" {
		return a.Link
	}
	pub := ""
	if a.PubDate != nil {
		pub = a.PubDate.UTC().Format(time.RFC3339)
	}
	return a.Title + "|" + pub
}

// GenerateContentID generates a unique ID for an article using the title, source, and url
func GenerateContentID(title, source, url string) string {
	raw := fmt.Sprintf("%s:%s:%s", title, source, url)
	hash := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(hash[:])
}
