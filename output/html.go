package output

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/mgijax/tabletools"
)

// HTMLOptions configures an HTMLWriter
type HTMLOptions struct {
	Title   string   // Rendered as the table caption when set
	Heading []string // Column headings, if any
	Colors  []string // Row background colors, cycled. Defaults to white.
	Border  int      // Defaults to 2
}

// HTMLWriter writes rows as an HTML table. Cell text is escaped, and newlines within a
// cell become <br> tags. The opening tags are written with the first row.
type HTMLWriter struct {
	name    string
	dest    io.WriteCloser
	buf     *bufio.Writer
	opts    HTMLOptions
	started bool
	nrows   int
}

// NewHTML creates an HTMLWriter
func NewHTML(dest io.WriteCloser, name string, opts HTMLOptions) *HTMLWriter {
	if len(opts.Colors) == 0 {
		opts.Colors = []string{"#ffffff"}
	}
	if opts.Border == 0 {
		opts.Border = 2
	}
	return &HTMLWriter{name: name, dest: dest, buf: bufio.NewWriter(dest), opts: opts}
}

func cell(s string) string {
	return strings.ReplaceAll(html.EscapeString(strings.TrimSpace(s)), "\n", "<br>")
}

func (w *HTMLWriter) start() error {
	w.started = true
	if _, err := fmt.Fprintf(w.buf, "<table border=%d cellpadding=1 cellspacing=1 width=\"100%%\">\n", w.opts.Border); err != nil {
		return err
	}
	if w.opts.Title != "" {
		if _, err := fmt.Fprintf(w.buf, "<caption><strong>%s</strong></caption>\n", cell(w.opts.Title)); err != nil {
			return err
		}
	}
	if len(w.opts.Heading) > 0 {
		w.buf.WriteString("<tr align=center valign=top>")
		for _, h := range w.opts.Heading {
			w.buf.WriteString("<th>" + cell(h) + "</th>")
		}
		if _, err := w.buf.WriteString("</tr>\n"); err != nil {
			return err
		}
	}
	return nil
}

// Write writes the data columns of row as a table row
func (w *HTMLWriter) Write(row tabletools.Row) error {
	if !w.started {
		if err := w.start(); err != nil {
			return err
		}
	}
	color := w.opts.Colors[w.nrows%len(w.opts.Colors)]
	w.nrows++
	fmt.Fprintf(w.buf, "<tr valign=top bgcolor=\"%s\">", color)
	for _, c := range row.Data() {
		w.buf.WriteString("<td>" + cell(c) + "</td>")
	}
	_, err := w.buf.WriteString("</tr>\n")
	return err
}

// Name returns the name of the destination
func (w *HTMLWriter) Name() string {
	return w.name
}

// Close ends the table, flushes buffered output and closes the destination
func (w *HTMLWriter) Close() error {
	var multierr *multierror.Error
	if !w.started {
		if err := w.start(); err != nil {
			multierr = multierror.Append(multierr, err)
		}
	}
	if _, err := w.buf.WriteString("</table>\n"); err != nil {
		multierr = multierror.Append(multierr, err)
	}
	if err := w.buf.Flush(); err != nil {
		multierr = multierror.Append(multierr, err)
	}
	if err := w.dest.Close(); err != nil {
		multierr = multierror.Append(multierr, err)
	}
	return multierr.ErrorOrNil()
}
