// Package source extracts ordered records from JSON, CSV and plain-text files.
package source

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ZaguanLabs/transly"
)

// Format is a supported input file format.
type Format string

const (
	// FormatJSON is a flat JSON object; keys become record IDs.
	FormatJSON Format = "json"
	// FormatCSV is comma-separated rows; each row becomes one record.
	FormatCSV Format = "csv"
	// FormatTXT is plain text; each line becomes one record.
	FormatTXT Format = "txt"
)

// Options tunes how records are extracted.
type Options struct {
	// CSVHeader treats the first CSV row as a header and skips it.
	CSVHeader bool
}

// Option is a functional option for File.
type Option func(*Options)

// WithCSVHeader skips the first row of CSV input.
func WithCSVHeader(enabled bool) Option {
	return func(o *Options) {
		o.CSVHeader = enabled
	}
}

// ForPath returns the format selected by path's extension, case-insensitively.
func ForPath(path string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch Format(ext) {
	case FormatJSON, FormatCSV, FormatTXT:
		return Format(ext), nil
	default:
		return "", &transly.UnsupportedFormatError{Path: path, Ext: ext}
	}
}

// Read extracts records from r in the given format.
func Read(r io.Reader, format Format, opts Options) ([]transly.Record, error) {
	r = skipBOM(r)
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatCSV:
		return ReadCSV(r, opts.CSVHeader)
	case FormatTXT:
		return ReadTXT(r)
	default:
		return nil, &transly.UnsupportedFormatError{Ext: string(format)}
	}
}

// ReadFile extracts the records of the file at path. Unsupported extensions
// fail with *transly.UnsupportedFormatError before the file is opened; any
// other failure is a *transly.RecordSourceError.
func ReadFile(path string, opts Options) ([]transly.Record, error) {
	format, err := ForPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path) // #nosec G304 -- user-specified input file
	if err != nil {
		return nil, &transly.RecordSourceError{Path: path, Message: "cannot open file", Cause: err}
	}
	defer f.Close()

	records, err := Read(f, format, opts)
	if err != nil {
		return nil, &transly.RecordSourceError{Path: path, Message: "invalid " + strings.ToUpper(string(format)), Cause: err}
	}
	return records, nil
}

// FileSource is a transly.RecordSource backed by a file on disk.
type FileSource struct {
	Path    string
	Options Options
}

// File creates a RecordSource for path.
func File(path string, opts ...Option) *FileSource {
	s := &FileSource{Path: path}
	for _, opt := range opts {
		opt(&s.Options)
	}
	return s
}

// Records implements transly.RecordSource.
func (s *FileSource) Records(ctx context.Context) ([]transly.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadFile(s.Path, s.Options)
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		br.Discard(len(utf8BOM))
	}
	return br
}

func lineID(i int) string {
	return "line_" + strconv.Itoa(i)
}

var _ transly.RecordSource = (*FileSource)(nil)
