package catalog

// streaming.go wraps catalog input before it reaches the CSV parser:
//
//   - a byte-order mark at the start of the stream is dropped (Windows
//     editors add one to UTF-8 files; a UTF-16 BOM switches decoding)
//   - invalid UTF-8 is replaced with U+FFFD instead of failing the parse
//   - an optional size cap aborts oversized input with ErrFileTooLarge
//
// The size cap counts raw bytes, so it sits underneath the decoder.

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrFileTooLarge is returned when a source exceeds its configured size cap.
var ErrFileTooLarge = errors.New("file too large")

// countingReader tracks bytes read and fails once more than limit bytes
// have been seen. A limit of zero or less disables the cap.
type countingReader struct {
	reader    io.Reader
	limit     int64
	BytesRead int64
}

func newCountingReader(r io.Reader, limit int64) *countingReader {
	return &countingReader{reader: r, limit: limit}
}

// Read implements io.Reader.
func (r *countingReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.BytesRead += int64(n)
	if r.limit > 0 && r.BytesRead > r.limit {
		return n, fmt.Errorf("%w: exceeds %d bytes", ErrFileTooLarge, r.limit)
	}
	return n, err
}

// NewDecodingReader strips a leading BOM and sanitizes UTF-8.
func NewDecodingReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}

// WrapForReading applies the size cap and then decoding. Pass maxSize <= 0
// for no cap.
func WrapForReading(r io.Reader, maxSize int64) io.Reader {
	return NewDecodingReader(newCountingReader(r, maxSize))
}
