package selecter

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog/log"
)

var (
	// ErrNoResults means there was nothing to choose from. Callers report it
	// and exit cleanly.
	ErrNoResults = errors.New("no results found")
	// ErrInputClosed means operator input ended before a valid selection.
	ErrInputClosed = errors.New("selection input closed")
)

// State is a step of the disambiguation loop.
type State int

const (
	Prompting State = iota
	Validating
	Resolved
)

func (s State) String() string {
	switch s {
	case Prompting:
		return "prompting"
	case Validating:
		return "validating"
	case Resolved:
		return "resolved"
	}
	return "unknown"
}

// RandomPicker returns the title of a random article.
type RandomPicker interface {
	Random(ctx context.Context) (string, error)
}

// Selector resolves exactly one article title, asking the operator only when
// a search returned more than one candidate.
type Selector struct {
	In  io.Reader
	Out io.Writer
	// MenuWidth caps the display width of a menu entry. Zero means 72 columns.
	MenuWidth int

	r *bufio.Reader
}

func New(in io.Reader, out io.Writer) *Selector {
	return &Selector{In: in, Out: out}
}

// ResolveDirect returns the title the caller already knows.
func (s *Selector) ResolveDirect(title string) string {
	s.printf("Using article: %s\n", title)
	return title
}

// ResolveFromCandidates picks one entry from list. The list is never reordered.
func (s *Selector) ResolveFromCandidates(list []string) (string, error) {
	switch len(list) {
	case 0:
		return "", ErrNoResults
	case 1:
		s.printf("Using the only result: %s\n", list[0])
		return list[0], nil
	}
	s.printf("Found %d results\n", len(list))
	idx, err := s.choose(list)
	if err != nil {
		return "", err
	}
	s.printf("Selected: %s\n", list[idx])
	return list[idx], nil
}

// ResolveRandom asks rp for a random title. Provider errors are returned
// unchanged.
func (s *Selector) ResolveRandom(ctx context.Context, rp RandomPicker) (string, error) {
	title, err := rp.Random(ctx)
	if err != nil {
		return "", err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrNoResults
	}
	s.printf("Selected: %s\n", title)
	return title, nil
}

// choose runs the Prompting -> Validating -> Resolved machine. Invalid input
// goes back to Prompting with no retry limit.
func (s *Selector) choose(list []string) (int, error) {
	state := Prompting
	var line string
	var idx int
	for {
		switch state {
		case Prompting:
			s.menu(list)
			s.printf("Select an article [1-%d]: ", len(list))
			l, err := s.readLine()
			if err != nil {
				return 0, err
			}
			line = l
			state = Validating
		case Validating:
			n, err := parseChoice(line, len(list))
			if err != nil {
				shown := runewidth.Truncate(line, 32, "…")
				log.Debug().Str("input", shown).Err(err).Msg("rejected selection")
				s.printf("Invalid selection %q: %v\n", shown, err)
				state = Prompting
				continue
			}
			idx = n - 1
			state = Resolved
			log.Debug().Stringer("state", state).Int("choice", n).Msg("selection accepted")
		case Resolved:
			return idx, nil
		}
	}
}

func parseChoice(line string, k int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, errors.New("not a number")
	}
	if n < 1 || n > k {
		return 0, fmt.Errorf("must be between 1 and %d", k)
	}
	return n, nil
}

func (s *Selector) menu(list []string) {
	width := s.MenuWidth
	if width <= 0 {
		width = 72
	}
	digits := len(strconv.Itoa(len(list)))
	for i, title := range list {
		s.printf("%*d. %s\n", digits, i+1, runewidth.Truncate(title, width, "…"))
	}
}

// readLine returns the next input line without its line ending. Lines of
// any length are accepted; a final unterminated line still counts.
func (s *Selector) readLine() (string, error) {
	if s.In == nil {
		return "", ErrInputClosed
	}
	if s.r == nil {
		s.r = bufio.NewReader(s.In)
	}
	line, err := s.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrInputClosed
		}
		return "", fmt.Errorf("read selection: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (s *Selector) printf(format string, args ...any) {
	if s.Out == nil {
		return
	}
	_, _ = fmt.Fprintf(s.Out, format, args...)
}
