package search

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hyperifyio/w2w/internal/fetch"
)

func newWikiServer(t *testing.T, handle func(q map[string]string) any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := map[string]string{}
		for k := range r.URL.Query() {
			q[k] = r.URL.Query().Get(k)
		}
		if q["action"] != "query" || q["format"] != "json" {
			t.Errorf("unexpected query %v", q)
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(handle(q))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newWiki(srv *httptest.Server) *Wikipedia {
	return &Wikipedia{
		BaseURL: srv.URL + "/w/api.php",
		Fetcher: &fetch.Client{HTTPClient: srv.Client(), MaxAttempts: 1, PerRequestTimeout: 2 * time.Second},
	}
}

func TestWikipedia_SearchParsesResults(t *testing.T) {
	srv := newWikiServer(t, func(q map[string]string) any {
		if q["list"] != "search" || q["srsearch"] != "paris" || q["srlimit"] != "5" {
			t.Errorf("unexpected search params %v", q)
		}
		return map[string]any{"query": map[string]any{"search": []map[string]any{
			{"title": "Paris", "snippet": `<span class="searchmatch">Paris</span> is the capital`},
			{"title": " ", "snippet": "blank"},
			{"title": "Paris (disambiguation)", "snippet": ""},
		}}}
	})
	got, err := newWiki(srv).Search(context.Background(), "paris", 5)
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 valid results, got %d", len(got))
	}
	if got[0].Snippet != "Paris is the capital" {
		t.Fatalf("snippet not cleaned: %q", got[0].Snippet)
	}
	if !strings.HasSuffix(got[1].URL, "/wiki/Paris_%28disambiguation%29") {
		t.Fatalf("unexpected url %q", got[1].URL)
	}
}

func TestWikipedia_Random(t *testing.T) {
	srv := newWikiServer(t, func(q map[string]string) any {
		if q["list"] != "random" || q["rnnamespace"] != "0" {
			t.Errorf("unexpected random params %v", q)
		}
		return map[string]any{"query": map[string]any{"random": []map[string]any{{"id": 1, "ns": 0, "title": "Lyon"}}}}
	})
	got, err := newWiki(srv).Random(context.Background())
	if err != nil || got != "Lyon" {
		t.Fatalf("got %q, %v", got, err)
	}
}

func TestWikipedia_ContentAndMissing(t *testing.T) {
	srv := newWikiServer(t, func(q map[string]string) any {
		if q["prop"] != "extracts" || q["explaintext"] != "1" {
			t.Errorf("unexpected content params %v", q)
		}
		if q["titles"] == "Nowhere" {
			return map[string]any{"query": map[string]any{"pages": map[string]any{
				"-1": map[string]any{"ns": 0, "title": "Nowhere", "missing": ""},
			}}}
		}
		return map[string]any{"query": map[string]any{"pages": map[string]any{
			"22989": map[string]any{"pageid": 22989, "title": "Paris", "extract": "Paris is the capital of France."},
		}}}
	})
	w := newWiki(srv)
	got, err := w.Content(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("content: %v", err)
	}
	if got != "Paris is the capital of France." {
		t.Fatalf("unexpected extract %q", got)
	}
	if _, err := w.Content(context.Background(), "Nowhere"); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound, got %v", err)
	}
}

func TestWikipedia_APIErrorSurfaces(t *testing.T) {
	srv := newWikiServer(t, func(map[string]string) any {
		return map[string]any{"error": map[string]any{"code": "badvalue", "info": "nope"}}
	})
	_, err := newWiki(srv).Search(context.Background(), "x", 1)
	if err == nil || !strings.Contains(err.Error(), "badvalue") {
		t.Fatalf("expected api error, got %v", err)
	}
}

func TestWikipedia_EndpointFromLanguage(t *testing.T) {
	if got := (&Wikipedia{Language: "fi"}).Endpoint(); got != "https://fi.wikipedia.org/w/api.php" {
		t.Fatalf("unexpected endpoint %q", got)
	}
	if got := (&Wikipedia{}).Endpoint(); got != "https://en.wikipedia.org/w/api.php" {
		t.Fatalf("unexpected default endpoint %q", got)
	}
}
