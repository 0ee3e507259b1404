package file

import (
	"io"

	"github.com/mgijax/tabletools"
	"github.com/mgijax/tabletools/datasource"
	"github.com/mgijax/tabletools/datasource/parser/dsv"
	"github.com/mgijax/tabletools/datasource/parser/jsonl"
	"github.com/mgijax/tabletools/errors"
	log "github.com/sirupsen/logrus"
)

// Supported input formats
const (
	FormatTSV   = "tsv"
	FormatJSONL = "jsonl"
)

// Source describes a table stored in a file (or on stdin)
type Source struct {
	Name      string     // Path of the file. Empty or "-" reads stdin.
	Format    string     // FormatTSV (default) or FormatJSONL
	Separator string     // Column separator for tsv input. Defaults to TAB.
	Comment   string     // Comment line prefix. Defaults to #.
	Fields    []string   // gjson paths of the columns for jsonl input
	Logger    *log.Entry // Receives row-level warnings
}

// Open starts reading the table. stdin is used when the Source names standard input.
func (s *Source) Open(stdin io.Reader) (tabletools.RowIterator, error) {
	var it tabletools.RowIterator
	switch s.Format {
	case "", FormatTSV, "dsv":
		parser := dsv.CreateParser(&dsv.ParserConf{
			Separator: s.Separator,
			Comment:   s.Comment,
			Logger:    s.Logger,
		})
		r, size, err := datasource.Open(s.Name, stdin)
		if err != nil {
			return nil, err
		}
		it = parser.Parse(r, s.DisplayName(), size)
	case FormatJSONL:
		parser, err := jsonl.CreateParser(&jsonl.ParserConf{
			Fields:  s.Fields,
			Comment: s.Comment,
			Logger:  s.Logger,
		})
		if err != nil {
			return nil, err
		}
		r, size, err := datasource.Open(s.Name, stdin)
		if err != nil {
			return nil, err
		}
		it = parser.Parse(r, s.DisplayName(), size)
	default:
		return nil, errors.UnrecognizedFormatError{Format: s.Format}
	}
	return it, nil
}

// DisplayName returns the name used in diagnostics for this Source
func (s *Source) DisplayName() string {
	if datasource.IsStdin(s.Name) {
		return datasource.StdinName
	}
	return s.Name
}
