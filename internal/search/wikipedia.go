package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
)

// Getter is the subset of fetch.Client used by Wikipedia.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, string, error)
}

// Wikipedia implements Provider against the MediaWiki action API of one
// language edition.
type Wikipedia struct {
	// Language selects <lang>.wikipedia.org when BaseURL is empty.
	Language string
	// BaseURL overrides the api.php endpoint, e.g. for a mirror or tests.
	BaseURL string
	Fetcher Getter
}

func (w *Wikipedia) Name() string { return "wikipedia" }

// Endpoint returns the api.php URL queried by this provider.
func (w *Wikipedia) Endpoint() string {
	if strings.TrimSpace(w.BaseURL) != "" {
		return strings.TrimSpace(w.BaseURL)
	}
	lang := strings.TrimSpace(w.Language)
	if lang == "" {
		lang = DefaultLanguage
	}
	return "https://" + lang + ".wikipedia.org/w/api.php"
}

func (w *Wikipedia) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("empty search query")
	}
	if limit <= 0 {
		limit = 10
	}
	params := url.Values{}
	params.Set("list", "search")
	params.Set("srsearch", query)
	params.Set("srlimit", fmt.Sprintf("%d", limit))
	params.Set("srprop", "snippet")
	var resp apiResponse
	if err := w.query(ctx, params, &resp); err != nil {
		return nil, err
	}
	out := make([]Result, 0, len(resp.Query.Search))
	for _, r := range resp.Query.Search {
		title := strings.TrimSpace(r.Title)
		if title == "" {
			continue
		}
		out = append(out, Result{
			Title:   title,
			URL:     w.pageURL(title),
			Snippet: stripSearchMatch(r.Snippet),
			Source:  w.Name(),
		})
		if len(out) >= limit {
			break
		}
	}
	log.Debug().Str("query", query).Int("results", len(out)).Msg("wikipedia search")
	return out, nil
}

func (w *Wikipedia) Random(ctx context.Context) (string, error) {
	params := url.Values{}
	params.Set("list", "random")
	params.Set("rnnamespace", "0")
	params.Set("rnlimit", "1")
	var resp apiResponse
	if err := w.query(ctx, params, &resp); err != nil {
		return "", err
	}
	if len(resp.Query.Random) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Query.Random[0].Title), nil
}

// Content returns the plain-text extract of the article, following redirects.
func (w *Wikipedia) Content(ctx context.Context, title string) (string, error) {
	params := url.Values{}
	params.Set("prop", "extracts")
	params.Set("explaintext", "1")
	params.Set("redirects", "1")
	params.Set("titles", title)
	var resp apiResponse
	if err := w.query(ctx, params, &resp); err != nil {
		return "", err
	}
	for _, p := range resp.Query.Pages {
		if p.Missing != nil || p.Invalid != nil {
			continue
		}
		return p.Extract, nil
	}
	return "", fmt.Errorf("%w: %q", ErrPageNotFound, title)
}

func (w *Wikipedia) query(ctx context.Context, params url.Values, dst *apiResponse) error {
	if w.Fetcher == nil {
		return errors.New("wikipedia fetcher not configured")
	}
	u, err := url.Parse(w.Endpoint())
	if err != nil {
		return fmt.Errorf("parse endpoint: %w", err)
	}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("formatversion", "1")
	u.RawQuery = params.Encode()

	body, _, err := w.Fetcher.Get(ctx, u.String())
	if err != nil {
		return fmt.Errorf("wikipedia %s: %w", params.Get("list")+params.Get("prop"), err)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode wikipedia response: %w", err)
	}
	if dst.Error != nil {
		return fmt.Errorf("wikipedia api error %s: %s", dst.Error.Code, dst.Error.Info)
	}
	return nil
}

func (w *Wikipedia) pageURL(title string) string {
	u, err := url.Parse(w.Endpoint())
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host + "/wiki/" + url.PathEscape(strings.ReplaceAll(title, " ", "_"))
}

var searchMatchRe = regexp.MustCompile(`</?span[^>]*>`)

// stripSearchMatch removes the highlight spans MediaWiki puts into snippets.
func stripSearchMatch(s string) string {
	return strings.TrimSpace(searchMatchRe.ReplaceAllString(s, ""))
}

type apiResponse struct {
	Error *struct {
		Code string `json:"code"`
		Info string `json:"info"`
	} `json:"error"`
	Query struct {
		Search []struct {
			Title   string `json:"title"`
			Snippet string `json:"snippet"`
		} `json:"search"`
		Random []struct {
			Title string `json:"title"`
		} `json:"random"`
		Pages map[string]struct {
			Title   string  `json:"title"`
			Extract string  `json:"extract"`
			Missing *string `json:"missing"`
			Invalid *string `json:"invalid"`
		} `json:"pages"`
	} `json:"query"`
}
