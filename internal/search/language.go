package search

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is used when no language is configured.
const DefaultLanguage = "en"

// ErrInvalidLanguage is returned for identifiers that cannot name a wiki.
var ErrInvalidLanguage = errors.New("invalid language")

// wiki codes that are not BCP 47 tags (simple, zh-yue, be-tarask) still have
// to be usable as a host label.
var wikiCodeRe = regexp.MustCompile(`^[a-z]{2,12}(-[a-z0-9]{1,12})*$`)

// wikiCodes are subdomains that look like BCP 47 tags with a region but
// name a separate wiki.
var wikiCodes = map[string]bool{"nds-nl": true}

// NormalizeLanguage turns a user supplied language into a wiki subdomain.
// BCP 47 tags are reduced to their base language with deprecated codes
// replaced ("pt-BR" -> "pt", "iw" -> "he", "in" -> "id"); other wiki codes
// pass through.
func NormalizeLanguage(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultLanguage, nil
	}
	parts := strings.Split(s, "-")
	if !wikiCodes[s] && onlyScriptOrRegion(parts[1:]) {
		if tag, err := language.Deprecated.Parse(s); err == nil {
			if base, conf := tag.Base(); conf == language.Exact {
				s = base.String()
			}
		}
	}
	if !wikiCodeRe.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidLanguage, s)
	}
	return s, nil
}

func onlyScriptOrRegion(subtags []string) bool {
	for _, st := range subtags {
		switch {
		case len(st) == 4 && isLetters(st): // script
		case len(st) == 2 && isLetters(st): // region
		case len(st) == 3 && isDigits(st): // UN M.49 region
		default:
			return false
		}
	}
	return true
}

func isLetters(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
