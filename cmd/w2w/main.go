package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/w2w/internal/app"
	sel "github.com/hyperifyio/w2w/internal/select"
	"github.com/hyperifyio/w2w/internal/wordlist"
)

const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

// baseLogger is the process logger before any per-run fields are added.
var baseLogger = log.Logger

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	baseLogger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Logger = baseLogger

	os.Exit(realMain(os.Args[1:], os.Stdin, os.Stdout))
}

type cliOptions struct {
	configPath  string
	envPath     string
	showVersion bool
}

// parseFlags fills a Config from args and reports which flags were set
// explicitly, so that only those override file and env values.
func parseFlags(args []string, out io.Writer) (app.Config, map[string]bool, cliOptions, error) {
	fs := flag.NewFlagSet("w2w", flag.ContinueOnError)
	fs.SetOutput(out)

	var opts cliOptions
	fl := app.DefaultConfig()

	fs.StringVar(&fl.Search, "search", "", "Search Wikipedia by keyword")
	fs.StringVar(&fl.Search, "s", "", "Shorthand for -search")
	fs.StringVar(&fl.Title, "title", "", "Use this exact article title (no search)")
	fs.BoolVar(&fl.Random, "random", false, "Use a random article")
	fs.StringVar(&fl.Language, "lang", fl.Language, "Article language, e.g. 'en', 'fi', 'simple'")
	fs.StringVar(&fl.Language, "l", fl.Language, "Shorthand for -lang")
	fs.StringVar(&fl.OutputPath, "output", "", "Path of the wordlist file to create ('-' writes to stdout)")
	fs.StringVar(&fl.OutputPath, "o", "", "Shorthand for -output")
	fs.IntVar(&fl.MaxWords, "max", 0, "Maximum number of words to write (0 = no limit)")
	fs.IntVar(&fl.MinLength, "min.length", fl.MinLength, "Minimum raw token length in bytes")
	fs.StringVar(&fl.Filter, "filter", fl.Filter, "Token filter: 'symbol' keeps only tokens with punctuation to strip, 'any' keeps every long token")
	fs.IntVar(&fl.SearchLimit, "search.limit", fl.SearchLimit, "Maximum number of search candidates")
	fs.StringVar(&fl.SearchFile, "search.file", "", "Path to JSON file for the offline article provider")
	fs.StringVar(&fl.APIURL, "api.url", "", "MediaWiki api.php URL (default derived from -lang)")
	fs.StringVar(&fl.UserAgent, "ua", fl.UserAgent, "User-Agent for API requests")
	fs.StringVar(&fl.CacheDir, "cache.dir", "", "HTTP cache directory (empty disables caching)")
	fs.DurationVar(&fl.CacheMaxAge, "cache.maxAge", 0, "Max age for cache entries before purge (e.g. 24h); 0 disables")
	fs.BoolVar(&fl.CacheClear, "cache.clear", false, "Clear cache directory before run")
	fs.BoolVar(&fl.CacheStrictPerms, "cache.strictPerms", false, "Restrict cache permissions (0700 dirs, 0600 files)")
	fs.BoolVar(&fl.Verbose, "v", false, "Verbose logging")
	fs.StringVar(&opts.configPath, "config", "", "Path to YAML or JSON config file")
	fs.StringVar(&opts.envPath, "env", ".env", "Path to dotenv file (missing file is ignored)")
	fs.BoolVar(&opts.showVersion, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return fl, nil, opts, err
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return fl, set, opts, nil
}

func realMain(args []string, stdin io.Reader, stdout io.Writer) int {
	fl, set, opts, err := parseFlags(args, stdout)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if opts.showVersion {
		fmt.Fprintf(stdout, "w2w %s (%s)\n", app.BuildVersion, app.BuildCommit)
		return exitOK
	}

	if err := app.LoadEnvFiles(opts.envPath); err != nil {
		log.Warn().Err(err).Str("path", opts.envPath).Msg("dotenv load failed")
	}
	cfg, err := resolveConfig(opts.configPath, fl, set)
	if err != nil {
		log.Error().Err(err).Msg("config")
		return exitUsage
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Logger = baseLogger.With().Str("run", ulid.Make().String()).Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return exitCode(run(ctx, cfg, stdin, stdout), stdout)
}

// resolveConfig layers defaults < config file < env < explicit flags.
func resolveConfig(configPath string, fl app.Config, set map[string]bool) (app.Config, error) {
	cfg := app.DefaultConfig()
	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config %s: %w", configPath, err)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	app.ApplyEnvOverrides(&cfg)
	if picksMode(fl, set) {
		cfg.Search, cfg.Title, cfg.Random = "", "", false
	}
	for name := range set {
		if apply, ok := flagFields[name]; ok {
			apply(&cfg, fl)
		}
	}
	return cfg, nil
}

// picksMode reports whether an explicit flag selects an article mode, in
// which case it replaces the mode from the file and env.
func picksMode(fl app.Config, set map[string]bool) bool {
	return ((set["search"] || set["s"]) && fl.Search != "") ||
		(set["title"] && fl.Title != "") ||
		(set["random"] && fl.Random)
}

var flagFields = map[string]func(dst *app.Config, src app.Config){
	"search":            func(d *app.Config, s app.Config) { d.Search = s.Search },
	"s":                 func(d *app.Config, s app.Config) { d.Search = s.Search },
	"title":             func(d *app.Config, s app.Config) { d.Title = s.Title },
	"random":            func(d *app.Config, s app.Config) { d.Random = s.Random },
	"lang":              func(d *app.Config, s app.Config) { d.Language = s.Language },
	"l":                 func(d *app.Config, s app.Config) { d.Language = s.Language },
	"output":            func(d *app.Config, s app.Config) { d.OutputPath = s.OutputPath },
	"o":                 func(d *app.Config, s app.Config) { d.OutputPath = s.OutputPath },
	"max":               func(d *app.Config, s app.Config) { d.MaxWords = s.MaxWords },
	"min.length":        func(d *app.Config, s app.Config) { d.MinLength = s.MinLength },
	"filter":            func(d *app.Config, s app.Config) { d.Filter = s.Filter },
	"search.limit":      func(d *app.Config, s app.Config) { d.SearchLimit = s.SearchLimit },
	"search.file":       func(d *app.Config, s app.Config) { d.SearchFile = s.SearchFile },
	"api.url":           func(d *app.Config, s app.Config) { d.APIURL = s.APIURL },
	"ua":                func(d *app.Config, s app.Config) { d.UserAgent = s.UserAgent },
	"cache.dir":         func(d *app.Config, s app.Config) { d.CacheDir = s.CacheDir },
	"cache.maxAge":      func(d *app.Config, s app.Config) { d.CacheMaxAge = s.CacheMaxAge },
	"cache.clear":       func(d *app.Config, s app.Config) { d.CacheClear = s.CacheClear },
	"cache.strictPerms": func(d *app.Config, s app.Config) { d.CacheStrictPerms = s.CacheStrictPerms },
	"v":                 func(d *app.Config, s app.Config) { d.Verbose = s.Verbose },
}

func run(ctx context.Context, cfg app.Config, stdin io.Reader, stdout io.Writer) error {
	a, err := app.New(cfg, stdin, stdout)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	return a.Run(ctx)
}

// exitCode maps run errors to the process exit status. No results is a
// reported outcome, not a failure.
func exitCode(err error, stdout io.Writer) int {
	if err == nil {
		return exitOK
	}
	if errors.Is(err, sel.ErrNoResults) {
		fmt.Fprintln(stdout, "No results found")
		return exitOK
	}
	if errors.Is(err, app.ErrConfig) {
		log.Error().Err(err).Msg("invalid configuration")
		return exitUsage
	}
	var ioErr *wordlist.IOError
	if errors.As(err, &ioErr) {
		log.Error().Err(ioErr.Err).Str("op", ioErr.Op).Str("path", ioErr.Path).Msg("cannot write wordlist")
		return exitFail
	}
	log.Error().Err(err).Msg("run failed")
	return exitFail
}
