package wordlist

import (
	"sort"
	"strings"
)

// Policy selects which whitespace tokens qualify for the wordlist.
type Policy int

const (
	// PolicySymbolBearing keeps a token only when it is long enough AND carries at
	// least one character outside [0-9A-Za-z]. Plain words never qualify.
	PolicySymbolBearing Policy = iota
	// PolicyAnyLong keeps every token that is long enough.
	PolicyAnyLong
)

// DefaultMinLength is the minimum raw token length in bytes.
const DefaultMinLength = 5

// ParsePolicy maps the CLI/config names "symbol" and "any" to a Policy.
func ParsePolicy(s string) (Policy, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "symbol", "strict":
		return PolicySymbolBearing, true
	case "any", "relaxed":
		return PolicyAnyLong, true
	}
	return PolicySymbolBearing, false
}

func (p Policy) String() string {
	if p == PolicyAnyLong {
		return "any"
	}
	return "symbol"
}

// Options configures Build.
type Options struct {
	// MaxCount truncates the final list. Zero or negative means unbounded.
	MaxCount int
	// MinLength is the minimum raw token length. Zero means DefaultMinLength.
	MinLength int
	Policy    Policy
}

// Build turns raw article text into the final wordlist: tokens are split on
// whitespace, filtered, stripped to ASCII alphanumerics, sorted, deduplicated
// case-insensitively, and optionally truncated.
func Build(content string, opt Options) []string {
	minLen := opt.MinLength
	if minLen <= 0 {
		minLen = DefaultMinLength
	}
	words := make([]string, 0, 256)
	for _, tok := range strings.Fields(content) {
		if !keep(tok, minLen, opt.Policy) {
			continue
		}
		w := Normalize(tok)
		if w == "" {
			continue
		}
		words = append(words, w)
	}

	sort.Strings(words)
	words = dedupFold(words)

	if opt.MaxCount > 0 && len(words) > opt.MaxCount {
		words = words[:opt.MaxCount]
	}
	return words
}

func keep(tok string, minLen int, p Policy) bool {
	if len(tok) < minLen {
		return false
	}
	if p == PolicyAnyLong {
		return true
	}
	return hasNonAlnum(tok)
}

// Normalize strips every byte outside [0-9A-Za-z]. Multi-byte runes are
// removed entirely since none of their bytes are ASCII.
func Normalize(tok string) string {
	var b strings.Builder
	b.Grow(len(tok))
	for i := 0; i < len(tok); i++ {
		if isAlnum(tok[i]) {
			b.WriteByte(tok[i])
		}
	}
	return b.String()
}

func hasNonAlnum(tok string) bool {
	for i := 0; i < len(tok); i++ {
		if !isAlnum(tok[i]) {
			return true
		}
	}
	return false
}

func isAlnum(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// dedupFold walks a sorted slice and keeps the first word of every
// case-insensitive group. Output order is unchanged, so the result stays sorted.
func dedupFold(sorted []string) []string {
	seen := make(map[string]struct{}, len(sorted))
	out := sorted[:0]
	for _, w := range sorted {
		key := strings.ToLower(w)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, w)
	}
	return out
}
