package jsonl

import (
	"bufio"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
)

// ParserConf configures a JSONL Parser, suitable for JSON lines data
type ParserConf struct {
	Fields  []string   // gjson paths of the values which make up the columns of each Row, in order. Required.
	Comment string     // Lines beginning with this string are ignored. Defaults to #.
	Logger  *log.Entry // Receives warnings about malformed lines. Defaults to the standard logrus logger.
}

// Parser produces RowIterators from JSONL data
type Parser struct {
	conf *ParserConf
}

// CreateParser returns a new JSONL Parser. Columns are extracted lazily from each line of JSON using their
// gjson path. Values within the JSON which do not correspond to a field are ignored.
func CreateParser(conf *ParserConf) (*Parser, error) {
	if len(conf.Fields) == 0 {
		return nil, fmt.Errorf("jsonl input requires at least one field path")
	}
	if conf.Comment == "" {
		conf.Comment = "#"
	}
	if conf.Logger == nil {
		conf.Logger = log.NewEntry(log.StandardLogger())
	}
	return &Parser{conf: conf}, nil
}

// Fields returns the gjson paths used to build columns
func (p *Parser) Fields() []string {
	return p.conf.Fields
}

// Parse starts parsing JSONL data from r. Closing the returned Reader closes r.
func (p *Parser) Parse(r io.ReadCloser, name string, size int64) *Reader {
	return &Reader{
		parser: p,
		src:    r,
		in:     bufio.NewReader(r),
		name:   name,
		size:   size,
		log:    p.conf.Logger.WithField("file", name),
	}
}
