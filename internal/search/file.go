package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"
)

// FileProvider serves articles from a local JSON file for offline/testing use.
// The JSON file format is an array of objects:
// {"title": "...", "url": "...", "snippet": "...", "content": "..."}.
type FileProvider struct {
	Path string

	articles []fileArticle
}

type fileArticle struct {
	Result
	Content string `json:"content"`
}

func (f *FileProvider) Name() string { return "file" }

func (f *FileProvider) load() ([]fileArticle, error) {
	if f.articles != nil {
		return f.articles, nil
	}
	if strings.TrimSpace(f.Path) == "" {
		return nil, errors.New("file provider path is empty")
	}
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, err
	}
	var raw []fileArticle
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.Path, err)
	}
	out := make([]fileArticle, 0, len(raw))
	for _, a := range raw {
		if strings.TrimSpace(a.Title) == "" {
			continue
		}
		a.Source = f.Name()
		out = append(out, a)
	}
	f.articles = out
	return out, nil
}

func (f *FileProvider) Search(_ context.Context, query string, limit int) ([]Result, error) {
	articles, err := f.load()
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Result, 0, len(articles))
	for _, a := range articles {
		if q == "" || strings.Contains(strings.ToLower(a.Title), q) || strings.Contains(strings.ToLower(a.Snippet), q) {
			out = append(out, a.Result)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

// Random returns the title of a uniformly chosen article, or "" when the
// file holds none.
func (f *FileProvider) Random(_ context.Context) (string, error) {
	articles, err := f.load()
	if err != nil {
		return "", err
	}
	if len(articles) == 0 {
		return "", nil
	}
	return articles[rand.Intn(len(articles))].Title, nil
}

func (f *FileProvider) Content(_ context.Context, title string) (string, error) {
	articles, err := f.load()
	if err != nil {
		return "", err
	}
	for _, a := range articles {
		if strings.EqualFold(a.Title, strings.TrimSpace(title)) {
			return a.Content, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrPageNotFound, title)
}
