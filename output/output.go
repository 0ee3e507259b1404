// Package output writes table rows as TAB-separated text or as an HTML table
package output

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/mgijax/tabletools"
	"github.com/mgijax/tabletools/datasource"
	"github.com/mgijax/tabletools/errors"
	"github.com/mgijax/tabletools/internal/compress"
)

// Supported output formats
const (
	FormatTSV  = "tsv"
	FormatHTML = "html"
)

// Writer writes Rows to a destination. The row number (Row[0]) is never written.
type Writer interface {
	Write(row tabletools.Row) error // Write writes the data columns of row
	Name() string                   // Name returns the name of the destination, for diagnostics
	Close() error                   // Close flushes buffered output and closes the destination
}

// Options configures the Writers made by Create and New
type Options struct {
	Format string      // tsv (default) or html
	HTML   HTMLOptions // Used by the html format only
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// Create opens a Writer on a file, or on stdout when name is empty or "-". Files ending
// in .lz4, .zst or .gz are compressed. Closing the Writer never closes stdout.
func Create(name string, opts Options, stdout io.Writer) (Writer, error) {
	var dest io.WriteCloser
	display := name
	if datasource.IsStdin(name) {
		if stdout == nil {
			stdout = os.Stdout
		}
		dest = nopWriteCloser{stdout}
		display = "<stdout>"
	} else {
		if dir := filepath.Dir(name); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, err
			}
		}
		f, err := os.Create(name)
		if err != nil {
			return nil, err
		}
		dest, err = compress.NewWriter(f, compress.ForFile(name))
		if err != nil {
			f.Close()
			return nil, err
		}
	}
	w, err := New(dest, display, opts)
	if err != nil {
		dest.Close()
		return nil, err
	}
	return w, nil
}

// New creates a Writer of the configured format on dest
func New(dest io.WriteCloser, name string, opts Options) (Writer, error) {
	switch strings.ToLower(opts.Format) {
	case "", FormatTSV, "tab":
		return NewTSV(dest, name), nil
	case FormatHTML:
		return NewHTML(dest, name, opts.HTML), nil
	}
	return nil, errors.UnrecognizedFormatError{Format: opts.Format}
}

// TSVWriter writes rows as lines of TAB-separated columns
type TSVWriter struct {
	name string
	dest io.WriteCloser
	buf  *bufio.Writer
}

// NewTSV creates a TSVWriter
func NewTSV(dest io.WriteCloser, name string) *TSVWriter {
	return &TSVWriter{name: name, dest: dest, buf: bufio.NewWriter(dest)}
}

// Write writes the data columns of row
func (w *TSVWriter) Write(row tabletools.Row) error {
	for i, c := range row.Data() {
		if i > 0 {
			if err := w.buf.WriteByte('\t'); err != nil {
				return err
			}
		}
		if _, err := w.buf.WriteString(c); err != nil {
			return err
		}
	}
	return w.buf.WriteByte('\n')
}

// Name returns the name of the destination
func (w *TSVWriter) Name() string {
	return w.name
}

// Close flushes buffered output and closes the destination
func (w *TSVWriter) Close() error {
	var multierr *multierror.Error
	if err := w.buf.Flush(); err != nil {
		multierr = multierror.Append(multierr, err)
	}
	if err := w.dest.Close(); err != nil {
		multierr = multierror.Append(multierr, err)
	}
	return multierr.ErrorOrNil()
}
