package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hyperifyio/w2w/internal/search"
	"github.com/hyperifyio/w2w/internal/wordlist"
)

// ErrConfig wraps every configuration validation failure.
var ErrConfig = errors.New("config")

const (
	DefaultUserAgent   = "w2w/1.0 (+https://github.com/hyperifyio/w2w)"
	DefaultSearchLimit = 10
)

// Config holds runtime configuration for the application.
type Config struct {
	// Article selection; exactly one must be set.
	Search string
	Title  string
	Random bool

	Language   string
	OutputPath string

	// Wordlist
	MaxWords  int
	MinLength int
	Filter    string

	// Provider
	SearchLimit int
	SearchFile  string
	APIURL      string
	UserAgent   string

	// Cache
	CacheDir         string
	CacheMaxAge      time.Duration
	CacheClear       bool
	CacheStrictPerms bool

	Verbose bool
}

// DefaultConfig returns the values used when neither flags, env, nor a
// config file say otherwise.
func DefaultConfig() Config {
	return Config{
		Language:    search.DefaultLanguage,
		MinLength:   wordlist.DefaultMinLength,
		Filter:      wordlist.PolicySymbolBearing.String(),
		SearchLimit: DefaultSearchLimit,
		UserAgent:   DefaultUserAgent,
	}
}

// WordlistOptions maps the config onto wordlist.Options. Call ValidateConfig
// first; an unknown filter falls back to the default policy.
func (c Config) WordlistOptions() wordlist.Options {
	p, _ := wordlist.ParsePolicy(c.Filter)
	return wordlist.Options{MaxCount: c.MaxWords, MinLength: c.MinLength, Policy: p}
}

// ValidateConfig checks the settings a run cannot do without.
func ValidateConfig(cfg Config) error {
	modes := 0
	if strings.TrimSpace(cfg.Search) != "" {
		modes++
	}
	if strings.TrimSpace(cfg.Title) != "" {
		modes++
	}
	if cfg.Random {
		modes++
	}
	if modes != 1 {
		return fmt.Errorf("%w: exactly one of -search, -title or -random is required", ErrConfig)
	}
	if strings.TrimSpace(cfg.OutputPath) == "" {
		return fmt.Errorf("%w: output path is required", ErrConfig)
	}
	if cfg.MaxWords < 0 || cfg.MinLength < 0 || cfg.SearchLimit < 0 {
		return fmt.Errorf("%w: negative limits are not allowed", ErrConfig)
	}
	if _, ok := wordlist.ParsePolicy(cfg.Filter); !ok {
		return fmt.Errorf("%w: unknown filter %q (want symbol or any)", ErrConfig, cfg.Filter)
	}
	if _, err := search.NormalizeLanguage(cfg.Language); err != nil {
		return fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return nil
}
