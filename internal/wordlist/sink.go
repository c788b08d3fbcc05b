package wordlist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// IOError reports a failure to create, write, flush, or close the output.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Sink is the sequential, buffered destination of a wordlist. Close must
// flush any buffered data before releasing the underlying resource.
type Sink interface {
	WriteWord(w string) error
	Close() error
}

// FileSink writes to a file created (or truncated) at open time.
type FileSink struct {
	path string
	f    *os.File
	bw   *bufio.Writer
}

// CreateFile opens path for writing, truncating any previous content.
func CreateFile(path string) (*FileSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, &IOError{Op: "create", Path: path, Err: err}
	}
	return &FileSink{path: path, f: f, bw: bufio.NewWriter(f)}, nil
}

func (s *FileSink) WriteWord(w string) error {
	if _, err := s.bw.WriteString(w); err != nil {
		return &IOError{Op: "write", Path: s.path, Err: err}
	}
	if err := s.bw.WriteByte('\n'); err != nil {
		return &IOError{Op: "write", Path: s.path, Err: err}
	}
	return nil
}

// Close flushes and closes the file. It is safe to call more than once.
func (s *FileSink) Close() error {
	if s.f == nil {
		return nil
	}
	ferr := s.bw.Flush()
	cerr := s.f.Close()
	s.f = nil
	if ferr != nil {
		return &IOError{Op: "flush", Path: s.path, Err: ferr}
	}
	if cerr != nil {
		return &IOError{Op: "close", Path: s.path, Err: cerr}
	}
	return nil
}

// WriterSink adapts any io.Writer, mainly for stdout and tests.
type WriterSink struct {
	bw *bufio.Writer
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{bw: bufio.NewWriter(w)}
}

func (s *WriterSink) WriteWord(w string) error {
	if _, err := s.bw.WriteString(w + "\n"); err != nil {
		return &IOError{Op: "write", Path: "-", Err: err}
	}
	return nil
}

func (s *WriterSink) Close() error {
	if err := s.bw.Flush(); err != nil {
		return &IOError{Op: "flush", Path: "-", Err: err}
	}
	return nil
}

// Write streams words to sink in order and always closes it. The first error
// wins; a close error is reported only when every write succeeded.
func Write(sink Sink, words []string) (err error) {
	defer func() {
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	for _, w := range words {
		if err := sink.WriteWord(w); err != nil {
			return err
		}
	}
	return nil
}

// StdoutPath is the output path that selects standard output.
const StdoutPath = "-"

// Generate builds the wordlist from content and writes it to a fresh file at
// path. It returns the number of words written.
func Generate(path string, content string, opt Options) (int, error) {
	if path == "" {
		return 0, &IOError{Op: "create", Path: path, Err: errors.New("empty output path")}
	}
	words := Build(content, opt)
	sink, err := CreateFile(path)
	if err != nil {
		return 0, err
	}
	if err := Write(sink, words); err != nil {
		return 0, err
	}
	return len(words), nil
}

// GenerateTo builds the wordlist from content and writes it to sink, which
// is closed before returning.
func GenerateTo(sink Sink, content string, opt Options) (int, error) {
	words := Build(content, opt)
	if err := Write(sink, words); err != nil {
		return 0, err
	}
	return len(words), nil
}
