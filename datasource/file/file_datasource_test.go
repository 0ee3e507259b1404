package file

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/mgijax/tabletools"
	"github.com/mgijax/tabletools/errors"
	"github.com/mgijax/tabletools/logging"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, it tabletools.RowIterator) []tabletools.Row {
	var rows []tabletools.Row
	for {
		row, err := it.Next()
		if err == io.EOF {
			break
		}
		require.Nil(t, err)
		rows = append(rows, row)
	}
	require.Nil(t, it.Close())
	return rows
}

func TestFileSourceReadsPlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genes.txt")
	require.Nil(t, os.WriteFile(path, []byte("Pax6\t2\nKit\t5\n"), 0644))

	src := &Source{Name: path, Logger: logging.Discard()}
	it, err := src.Open(nil)
	require.Nil(t, err)
	require.EqualValues(t, 13, it.FileSize())
	require.Equal(t, path, it.FileName())
	require.Equal(t, []tabletools.Row{{"1", "Pax6", "2"}, {"2", "Kit", "5"}}, drain(t, it))
}

func TestFileSourceReadsGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genes.txt.gz")
	f, err := os.Create(path)
	require.Nil(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte("a,b\nc,d\n"))
	require.Nil(t, err)
	require.Nil(t, zw.Close())
	require.Nil(t, f.Close())

	src := &Source{Name: path, Separator: ",", Logger: logging.Discard()}
	it, err := src.Open(nil)
	require.Nil(t, err)
	require.Equal(t, []tabletools.Row{{"1", "a", "b"}, {"2", "c", "d"}}, drain(t, it))
}

func TestFileSourceReadsStdin(t *testing.T) {
	src := &Source{Name: "-", Format: FormatJSONL, Fields: []string{"id"}, Logger: logging.Discard()}
	it, err := src.Open(strings.NewReader("{\"id\": \"MGI:1\"}\n"))
	require.Nil(t, err)
	require.Equal(t, "<stdin>", it.FileName())
	require.EqualValues(t, -1, it.FileSize())
	require.Equal(t, []tabletools.Row{{"1", "MGI:1"}}, drain(t, it))
}

func TestFileSourceRejectsUnknownFormat(t *testing.T) {
	src := &Source{Name: "-", Format: "xml"}
	_, err := src.Open(strings.NewReader(""))
	require.Equal(t, errors.UnrecognizedFormatError{Format: "xml"}, err)
}
