package aggregate

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hyperifyio/w2w/internal/search"
)

// Candidates merges result groups into one menu-ready list. Results with a
// blank title are dropped, titles are trimmed, and a result is skipped when
// its canonical title or canonical URL was already seen. Order is kept.
func Candidates(groups ...[]search.Result) []search.Result {
	seenTitle := map[string]struct{}{}
	seenURL := map[string]struct{}{}
	out := make([]search.Result, 0, 16)
	for _, g := range groups {
		for _, r := range g {
			r.Title = strings.TrimSpace(r.Title)
			if r.Title == "" {
				continue
			}
			key := CanonicalTitle(r.Title)
			if _, ok := seenTitle[key]; ok {
				continue
			}
			if r.URL != "" {
				if u, err := url.Parse(r.URL); err == nil {
					normalizeURL(u)
					if _, ok := seenURL[u.String()]; ok {
						continue
					}
					r.URL = u.String()
					seenURL[r.URL] = struct{}{}
				}
			}
			seenTitle[key] = struct{}{}
			out = append(out, r)
		}
	}
	return out
}

// CanonicalTitle folds a title the way MediaWiki compares them: underscores
// and runs of spaces become one space and the first letter is upper case.
func CanonicalTitle(title string) string {
	t := strings.Join(strings.Fields(strings.ReplaceAll(title, "_", " ")), " ")
	r, size := utf8.DecodeRuneInString(t)
	if r == utf8.RuneError {
		return t
	}
	return string(unicode.ToUpper(r)) + t[size:]
}

func normalizeURL(u *url.URL) {
	u.Fragment = ""
	u.Host = strings.ToLower(u.Host)
	q := u.Query()
	for _, p := range []string{"utm_source", "utm_medium", "utm_campaign", "utm_term", "utm_content", "utm_id", "gclid", "fbclid"} {
		q.Del(p)
	}
	u.RawQuery = q.Encode()
}
