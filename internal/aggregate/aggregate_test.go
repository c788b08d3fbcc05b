package aggregate

import (
	"testing"

	"github.com/hyperifyio/w2w/internal/search"
)

func TestCandidates_DedupByURL_TrimUTM(t *testing.T) {
	groups := [][]search.Result{
		{
			{Title: "Paris", URL: "https://en.wikipedia.org/wiki/Paris?utm_source=x&utm_medium=y"},
		},
		{
			{Title: "Paris, France", URL: "https://EN.wikipedia.org/wiki/Paris#History"},
		},
	}
	out := Candidates(groups...)
	if len(out) != 1 {
		t.Fatalf("expected 1 after dedup, got %d", len(out))
	}
	if out[0].URL != "https://en.wikipedia.org/wiki/Paris" {
		t.Fatalf("unexpected normalized url: %q", out[0].URL)
	}
}

func TestCandidates_DedupByCanonicalTitle(t *testing.T) {
	in := []search.Result{
		{Title: "New York City"},
		{Title: "  "},
		{Title: "new_York  City"},
		{Title: "New York (state)"},
	}
	out := Candidates(in)
	if len(out) != 2 {
		t.Fatalf("expected 2 candidates, got %d: %+v", len(out), out)
	}
	if out[0].Title != "New York City" || out[1].Title != "New York (state)" {
		t.Fatalf("unexpected order or titles: %+v", out)
	}
}

func TestCanonicalTitle(t *testing.T) {
	cases := map[string]string{
		"paris":            "Paris",
		"new_york_city":    "New york city",
		"  Ünter  den ":    "Ünter den",
		"":                 "",
		"iPhone":           "IPhone",
	}
	for in, want := range cases {
		if got := CanonicalTitle(in); got != want {
			t.Fatalf("CanonicalTitle(%q)=%q want %q", in, got, want)
		}
	}
}
