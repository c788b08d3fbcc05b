package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hyperifyio/w2w/internal/search"
	sel "github.com/hyperifyio/w2w/internal/select"
	"github.com/hyperifyio/w2w/internal/wordlist"
)

const articles = `[
 {"title": "Paris", "snippet": "capital of France", "content": "Paris, officially the City of Paris, is the capital (and largest city) of France."},
 {"title": "Paris (disambiguation)", "snippet": "may refer to", "content": "Paris may refer to: Paris, France; Paris, Texas."},
 {"title": "Lyon", "snippet": "city", "content": "Lyon's \"traboules\" are passageways."}
]`

func fixtureConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, "articles.json")
	if err := os.WriteFile(p, []byte(articles), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	cfg := DefaultConfig()
	cfg.SearchFile = p
	cfg.OutputPath = filepath.Join(dir, "words.txt")
	return cfg
}

func runApp(t *testing.T, cfg Config, stdin string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	a, err := New(cfg, strings.NewReader(stdin), &out)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	runErr := a.Run(context.Background())
	return out.String(), runErr
}

func TestRun_SearchWithDisambiguation(t *testing.T) {
	cfg := fixtureConfig(t)
	cfg.Search = "paris"
	out, err := runApp(t, cfg, "abc\n5\n2\n")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.Count(out, "Invalid selection") != 2 {
		t.Fatalf("expected two re-prompts, got output %q", out)
	}
	b, err := os.ReadFile(cfg.OutputPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	// "Paris," "France;" "Texas." qualify; plain words and "to:" do not.
	if string(b) != "France\nParis\nTexas\n" {
		t.Fatalf("unexpected wordlist %q", string(b))
	}
}

func TestRun_SingleResultNoPrompt(t *testing.T) {
	cfg := fixtureConfig(t)
	cfg.Search = "lyon"
	cfg.Filter = "any"
	out, err := runApp(t, cfg, "")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.Contains(out, "Select an article") {
		t.Fatalf("singleton result must not prompt: %q", out)
	}
	b, _ := os.ReadFile(cfg.OutputPath)
	if string(b) != "Lyons\npassageways\ntraboules\n" {
		t.Fatalf("unexpected wordlist %q", string(b))
	}
}

func TestRun_NoResultsLeavesNoFile(t *testing.T) {
	cfg := fixtureConfig(t)
	cfg.Search = "berlin"
	_, err := runApp(t, cfg, "")
	if !errors.Is(err, sel.ErrNoResults) {
		t.Fatalf("expected ErrNoResults, got %v", err)
	}
	if _, err := os.Stat(cfg.OutputPath); !os.IsNotExist(err) {
		t.Fatalf("expected no output file, stat err=%v", err)
	}
}

func TestRun_DirectTitleWithMax(t *testing.T) {
	cfg := fixtureConfig(t)
	cfg.Title = "Paris"
	cfg.Filter = "any"
	cfg.MaxWords = 2
	if _, err := runApp(t, cfg, ""); err != nil {
		t.Fatalf("run: %v", err)
	}
	b, _ := os.ReadFile(cfg.OutputPath)
	if string(b) != "France\nParis\n" {
		t.Fatalf("unexpected wordlist %q", string(b))
	}
}

func TestRun_Random(t *testing.T) {
	cfg := fixtureConfig(t)
	cfg.Random = true
	if _, err := runApp(t, cfg, ""); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := os.Stat(cfg.OutputPath); err != nil {
		t.Fatalf("expected output file: %v", err)
	}
}

func TestRun_MissingTitlePropagatesProviderError(t *testing.T) {
	cfg := fixtureConfig(t)
	cfg.Title = "Atlantis"
	_, err := runApp(t, cfg, "")
	if !errors.Is(err, search.ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound, got %v", err)
	}
}

func TestRun_UnwritableOutputIsIOError(t *testing.T) {
	cfg := fixtureConfig(t)
	cfg.Title = "Paris"
	cfg.OutputPath = filepath.Join(t.TempDir(), "nope", "words.txt")
	_, err := runApp(t, cfg, "")
	var ioErr *wordlist.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected *wordlist.IOError, got %T %v", err, err)
	}
	if ioErr.Path != cfg.OutputPath {
		t.Fatalf("error should carry the output path, got %q", ioErr.Path)
	}
}

func TestRun_DashWritesToOut(t *testing.T) {
	cfg := fixtureConfig(t)
	cfg.Title = "Paris"
	cfg.OutputPath = "-"
	out, err := runApp(t, cfg, "")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasSuffix(out, "France\nParis\ncity\n") {
		t.Fatalf("expected wordlist on out, got %q", out)
	}
	if strings.Contains(out, "Wrote ") {
		t.Fatalf("summary must not be mixed into the wordlist: %q", out)
	}
	if _, err := os.Stat("-"); !os.IsNotExist(err) {
		t.Fatalf("no file named - expected, stat err=%v", err)
	}
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	if _, err := New(DefaultConfig(), nil, nil); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
}

type emptyRandom struct{ *search.FileProvider }

func (emptyRandom) Random(context.Context) (string, error) { return "", nil }

func TestRun_RandomEmptyIsNoResults(t *testing.T) {
	cfg := fixtureConfig(t)
	cfg.Random = true
	a, err := New(cfg, nil, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	a.WithProvider(emptyRandom{&search.FileProvider{Path: cfg.SearchFile}})
	if err := a.Run(context.Background()); !errors.Is(err, sel.ErrNoResults) {
		t.Fatalf("expected ErrNoResults, got %v", err)
	}
}
