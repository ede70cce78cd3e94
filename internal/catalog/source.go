package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Source produces the raw rows of a catalog. Rows must return everything or
// an error; a Source that cannot be reached at all reports a
// *SourceUnavailableError so callers can offer a different one.
type Source interface {
	Name() string
	Rows(ctx context.Context) ([][]string, error)
}

// FileSource reads a CSV catalog from disk.
type FileSource struct {
	Path    string
	MaxSize int64 // bytes; <= 0 means no cap
}

// Name returns the file's base name.
func (s FileSource) Name() string {
	return filepath.Base(s.Path)
}

// Rows opens and parses the file.
func (s FileSource) Rows(ctx context.Context) ([][]string, error) {
	if strings.TrimSpace(s.Path) == "" {
		return nil, ErrNoSource
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, &SourceUnavailableError{Source: s.Name(), Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, &SourceUnavailableError{Source: s.Name(), Err: err}
	}
	if info.IsDir() {
		return nil, &SourceUnavailableError{Source: s.Name(), Err: errors.New("is a directory")}
	}
	if s.MaxSize > 0 && info.Size() > s.MaxSize {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit %d", ErrFileTooLarge, s.Name(), info.Size(), s.MaxSize)
	}

	return ReadRows(WrapForReading(f, s.MaxSize))
}

// ReaderSource parses a CSV catalog from an io.Reader, such as an HTTP
// request body. It can be read only once.
type ReaderSource struct {
	Label   string
	Reader  io.Reader
	MaxSize int64
}

// Name returns the label given to the source.
func (s ReaderSource) Name() string {
	return s.Label
}

// Rows parses the reader.
func (s ReaderSource) Rows(ctx context.Context) ([][]string, error) {
	if s.Reader == nil {
		return nil, ErrNoSource
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadRows(WrapForReading(s.Reader, s.MaxSize))
}

// RowsSource serves rows already in memory.
type RowsSource struct {
	Label string
	Data  [][]string
}

// Name returns the label given to the source.
func (s RowsSource) Name() string {
	return s.Label
}

// Rows returns the rows as given.
func (s RowsSource) Rows(ctx context.Context) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.Data, nil
}
