package jsonl

import (
	"bufio"
	"io"
	"strings"

	"github.com/mgijax/tabletools"
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// Reader streams Rows from JSON lines. Each non-blank, non-comment line must be a JSON
// document; lines which are not valid JSON are reported as warnings and skipped.
type Reader struct {
	parser  *Parser
	src     io.ReadCloser
	in      *bufio.Reader
	name    string
	size    int64
	log     *log.Entry
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
		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, r.parser.conf.Comment) {
			continue
		}
		if !gjson.Valid(line) {
			r.log.WithField("line", r.lineNum).Warnf("invalid JSON, skipping: %s", line)
			continue
		}
		r.rowNum++
		return ParseJSONRow(r.rowNum, r.parser.conf.Fields, line), nil
	}
	return nil, io.EOF
}

// ParseJSONRow extracts the given gjson paths from a JSON document into a numbered Row.
// Missing values become empty strings.
func ParseJSONRow(num int, fields []string, json string) tabletools.Row {
	results := gjson.GetMany(json, fields...)
	cols := make([]string, len(results))
	for i, res := range results {
		if res.Exists() && res.Type != gjson.Null {
			cols[i] = res.String()
		}
	}
	return tabletools.NewRow(num, cols...)
}

// NCols returns the number of configured fields
func (r *Reader) NCols() int {
	return len(r.parser.conf.Fields)
}

// LineNum returns the number of lines consumed so far
func (r *Reader) LineNum() int {
	return r.lineNum
}

// FileName returns the name of the stream being read
func (r *Reader) FileName() string {
	return r.name
}

// FileSize returns the size of the stream being read, or -1 if unknown
func (r *Reader) FileSize() int64 {
	return r.size
}

// Close closes the underlying stream
func (r *Reader) Close() error {
	r.done = true
	return r.src.Close()
}
