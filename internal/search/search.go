package search

import (
	"context"
	"errors"
)

// ErrPageNotFound is returned by Content when the provider has no article
// with the requested title.
var ErrPageNotFound = errors.New("page not found")

// Result represents a single search hit from any provider.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
	Source  string `json:"-"` // provider name for observability
}

// Provider is the article content source: keyword search, random pick, and
// plain-text page content.
type Provider interface {
	Search(ctx context.Context, query string, limit int) ([]Result, error)
	Random(ctx context.Context) (string, error)
	Content(ctx context.Context, title string) (string, error)
	Name() string
}

// Titles returns the result titles in order.
func Titles(results []Result) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Title)
	}
	return out
}
