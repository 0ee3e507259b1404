package dsv

import (
	"io"
	"strings"
	"testing"

	"github.com/mgijax/tabletools"
	"github.com/mgijax/tabletools/logging"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, r *Reader) []tabletools.Row {
	var rows []tabletools.Row
	for {
		row, err := r.Next()
		if err == io.EOF {
			break
		}
		require.Nil(t, err)
		rows = append(rows, row)
	}
	return rows
}

func TestDSVParserSkipsCommentsAndBlanks(t *testing.T) {
	data := "# header comment\nJohn\tM\t1\n\nMary\tF\t2\n#another\nJean\tF\t1"
	parser := CreateParser(&ParserConf{Logger: logging.Discard()})
	reader := parser.Parse(io.NopCloser(strings.NewReader(data)), "students", int64(len(data)))
	defer reader.Close()

	rows := readAll(t, reader)
	require.Equal(t, 3, len(rows))
	require.Equal(t, tabletools.Row{"1", "John", "M", "1"}, rows[0])
	require.Equal(t, tabletools.Row{"2", "Mary", "F", "2"}, rows[1])
	// a final line without a newline keeps its last character
	require.Equal(t, tabletools.Row{"3", "Jean", "F", "1"}, rows[2])
	require.Equal(t, 3, reader.NCols())
	require.Equal(t, 6, reader.LineNum())
	require.EqualValues(t, len(data), reader.FileSize())
	require.Equal(t, "students", reader.FileName())
}

func TestDSVParserSkipsRaggedRows(t *testing.T) {
	data := "a\tb\nc\td\te\nf\tg\n"
	parser := CreateParser(&ParserConf{Logger: logging.Discard()})
	reader := parser.Parse(io.NopCloser(strings.NewReader(data)), "ragged", -1)

	rows := readAll(t, reader)
	require.Equal(t, 2, len(rows))
	require.Equal(t, tabletools.Row{"1", "a", "b"}, rows[0])
	// row numbers stay dense when a line is skipped
	require.Equal(t, tabletools.Row{"2", "f", "g"}, rows[1])
	require.Equal(t, 3, reader.LineNum())
}

func TestDSVParserCustomSeparatorAndComment(t *testing.T) {
	data := "//skip\r\nx::y\r\nz::w\r\n"
	parser := CreateParser(&ParserConf{Separator: "::", Comment: "//", Logger: logging.Discard()})
	reader := parser.Parse(io.NopCloser(strings.NewReader(data)), "custom", -1)

	rows := readAll(t, reader)
	require.Equal(t, []tabletools.Row{{"1", "x", "y"}, {"2", "z", "w"}}, rows)
	require.Equal(t, "::", parser.Separator())
}

func TestDSVParserEmptyInput(t *testing.T) {
	parser := CreateParser(&ParserConf{Logger: logging.Discard()})
	reader := parser.Parse(io.NopCloser(strings.NewReader("")), "empty", 0)
	_, err := reader.Next()
	require.Equal(t, io.EOF, err)
	require.Equal(t, 0, reader.NCols())
}
