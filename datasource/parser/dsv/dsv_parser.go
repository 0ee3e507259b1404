package dsv

import (
	"bufio"
	"io"

	log "github.com/sirupsen/logrus"
)

// ParserConf configures a DSV Parser
type ParserConf struct {
	Separator string     // The string separating columns. Defaults to TAB.
	Comment   string     // Lines beginning with this string are ignored. Defaults to #.
	Logger    *log.Entry // Receives warnings about malformed lines. Defaults to the standard logrus logger.
}

// Parser produces RowIterators from DSV data
type Parser struct {
	conf *ParserConf
}

// CreateParser returns a new DSV Parser
func CreateParser(conf *ParserConf) *Parser {
	if conf.Separator == "" {
		conf.Separator = "\t"
	}
	if conf.Comment == "" {
		conf.Comment = "#"
	}
	if conf.Logger == nil {
		conf.Logger = log.NewEntry(log.StandardLogger())
	}
	return &Parser{conf: conf}
}

// Separator returns the column separator used by this Parser
func (p *Parser) Separator() string {
	return p.conf.Separator
}

// Parse starts parsing DSV data from r. name and size describe the stream, for diagnostics
// and for operators which pick strategies based on input size; size is -1 when unknown.
// Closing the returned Reader closes r.
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
