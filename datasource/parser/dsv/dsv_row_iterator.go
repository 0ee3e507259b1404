package dsv

import (
	"bufio"
	"io"
	"strings"

	"github.com/mgijax/tabletools"
	log "github.com/sirupsen/logrus"
)

// Reader streams the Rows of a delimited text table. Blank lines and comment lines are
// skipped. The first Row fixes the table width; later lines with a different number of
// columns are reported as warnings and skipped. Rows are numbered from 1, counting only
// the Rows actually returned.
type Reader struct {
	parser  *Parser
	src     io.ReadCloser
	in      *bufio.Reader
	name    string
	size    int64
	log     *log.Entry
	ncols   int
	lineNum int
	rowNum  int
	done    bool
}

// Next returns the next Row, or io.EOF when there are none left
func (r *Reader) Next() (tabletools.Row, error) {
	for !r.done {
		line, err := r.in.ReadString('\n')
		if err == io.EOF {
			r.done = true
			if line == "" {
				break
			}
		} else if err != nil {
			return nil, err
		}
		r.lineNum++
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		if line == "" || strings.HasPrefix(line, r.parser.conf.Comment) {
			continue
		}
		cols := strings.Split(line, r.parser.conf.Separator)
		if r.ncols == 0 {
			r.ncols = len(cols)
		} else if len(cols) != r.ncols {
			r.log.WithFields(log.Fields{
				"line":     r.lineNum,
				"columns":  len(cols),
				"expected": r.ncols,
			}).Warnf("wrong number of columns, skipping: %s", line)
			continue
		}
		r.rowNum++
		return tabletools.NewRow(r.rowNum, cols...), nil
	}
	return nil, io.EOF
}

// NCols returns the table width, fixed by the first Row read (0 before that)
func (r *Reader) NCols() int {
	return r.ncols
}

// LineNum returns the number of lines consumed so far
func (r *Reader) LineNum() int {
	return r.lineNum
}

// FileName returns the name of the stream being read
func (r *Reader) FileName() string {
	return r.name
}

// FileSize returns the size of the stream being read, or -1 if it is not known
func (r *Reader) FileSize() int64 {
	return r.size
}

// Close closes the underlying stream
func (r *Reader) Close() error {
	r.done = true
	return r.src.Close()
}
