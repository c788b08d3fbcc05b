package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/w2w/internal/aggregate"
	"github.com/hyperifyio/w2w/internal/cache"
	"github.com/hyperifyio/w2w/internal/fetch"
	"github.com/hyperifyio/w2w/internal/search"
	sel "github.com/hyperifyio/w2w/internal/select"
	"github.com/hyperifyio/w2w/internal/wordlist"
)

type App struct {
	cfg       Config
	provider  search.Provider
	selector  *sel.Selector
	out       io.Writer
	httpCache *cache.HTTPCache
}

// New wires the provider, cache, and selector for one run. in and out carry
// the operator dialogue.
func New(cfg Config, in io.Reader, out io.Writer) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	lang, _ := search.NormalizeLanguage(cfg.Language)

	a := &App{cfg: cfg, selector: sel.New(in, out), out: out}
	if cfg.CacheDir != "" {
		if cfg.CacheClear {
			if err := cache.ClearDir(cfg.CacheDir); err != nil {
				log.Warn().Err(err).Str("dir", cfg.CacheDir).Msg("cache clear failed")
			}
		}
		if cfg.CacheMaxAge > 0 {
			// Best effort; a stale entry only costs a revalidation.
			if n, err := cache.PurgeHTTPCacheByAge(cfg.CacheDir, cfg.CacheMaxAge); err != nil {
				log.Warn().Err(err).Msg("cache purge failed")
			} else if n > 0 {
				log.Debug().Int("removed", n).Msg("purged expired cache entries")
			}
		}
		a.httpCache = &cache.HTTPCache{Dir: cfg.CacheDir, StrictPerms: cfg.CacheStrictPerms}
	}

	if strings.TrimSpace(cfg.SearchFile) != "" {
		a.provider = &search.FileProvider{Path: cfg.SearchFile}
	} else {
		a.provider = &search.Wikipedia{
			Language: lang,
			BaseURL:  cfg.APIURL,
			Fetcher: &fetch.Client{
				HTTPClient:        newAPIHTTPClient(),
				UserAgent:         cfg.UserAgent,
				MaxAttempts:       3,
				PerRequestTimeout: 15 * time.Second,
				Cache:             a.httpCache,
				RedirectMaxHops:   5,
				BypassCache:       cfg.CacheClear,
			},
		}
	}
	log.Debug().Str("provider", a.provider.Name()).Str("lang", lang).Msg("provider ready")
	return a, nil
}

// WithProvider replaces the content provider, mainly for tests.
func (a *App) WithProvider(p search.Provider) *App {
	a.provider = p
	return a
}

// Run resolves one article, fetches its text, and writes the wordlist.
// selecter.ErrNoResults is returned as is so callers can exit cleanly.
func (a *App) Run(ctx context.Context) error {
	title, err := a.resolveTitle(ctx)
	if err != nil {
		return err
	}

	content, err := a.provider.Content(ctx, title)
	if err != nil {
		return fmt.Errorf("fetch content for %q: %w", title, err)
	}
	log.Debug().Str("title", title).Int("bytes", len(content)).Msg("fetched article")

	opts := a.cfg.WordlistOptions()
	var n int
	if a.cfg.OutputPath == wordlist.StdoutPath {
		// Words go to out; the summary stays in the log only.
		n, err = wordlist.GenerateTo(wordlist.NewWriterSink(a.stdout()), content, opts)
	} else {
		n, err = wordlist.Generate(a.cfg.OutputPath, content, opts)
	}
	if err != nil {
		return err
	}
	if a.cfg.OutputPath != wordlist.StdoutPath {
		a.printf("Wrote %d words to %s\n", n, a.cfg.OutputPath)
	}
	log.Info().
		Str("title", title).
		Str("out", a.cfg.OutputPath).
		Int("words", n).
		Str("filter", opts.Policy.String()).
		Msg("wrote wordlist")
	return nil
}

func (a *App) resolveTitle(ctx context.Context) (string, error) {
	switch {
	case strings.TrimSpace(a.cfg.Title) != "":
		return a.selector.ResolveDirect(strings.TrimSpace(a.cfg.Title)), nil
	case a.cfg.Random:
		a.printf("Picking a random article...\n")
		title, err := a.selector.ResolveRandom(ctx, a.provider)
		if err != nil && err != sel.ErrNoResults {
			return "", fmt.Errorf("random article: %w", err)
		}
		return title, err
	default:
		a.printf("Searching for %q...\n", a.cfg.Search)
		results, err := a.provider.Search(ctx, a.cfg.Search, a.cfg.SearchLimit)
		if err != nil {
			return "", fmt.Errorf("search %q: %w", a.cfg.Search, err)
		}
		candidates := aggregate.Candidates(results)
		log.Debug().Int("results", len(results)).Int("candidates", len(candidates)).Msg("search done")
		return a.selector.ResolveFromCandidates(search.Titles(candidates))
	}
}

func (a *App) stdout() io.Writer {
	if a.out == nil {
		return io.Discard
	}
	return a.out
}

func (a *App) printf(format string, args ...any) {
	if a.out == nil {
		return
	}
	_, _ = fmt.Fprintf(a.out, format, args...)
}
