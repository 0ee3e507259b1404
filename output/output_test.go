package output

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/mgijax/tabletools"
	"github.com/mgijax/tabletools/datasource"
	"github.com/mgijax/tabletools/errors"
	"github.com/stretchr/testify/require"
)

func TestTSVToStdout(t *testing.T) {
	var out bytes.Buffer
	w, err := Create("-", Options{Format: FormatTSV}, &out)
	require.Nil(t, err)
	require.Nil(t, w.Write(tabletools.Row{"1", "a", "b"}))
	require.Nil(t, w.Write(tabletools.Row{"2", "", "c"}))
	require.Nil(t, w.Close())
	require.Equal(t, "a\tb\n\tc\n", out.String())
	require.Equal(t, "<stdout>", w.Name())
}

func TestHTML(t *testing.T) {
	var out bytes.Buffer
	w := NewHTML(nopWriteCloser{&out}, "x", HTMLOptions{Heading: []string{"id", "symbol"}, Colors: []string{"#fff", "#eee"}})
	require.Nil(t, w.Write(tabletools.Row{"1", "MGI:1", "a<b"}))
	require.Nil(t, w.Write(tabletools.Row{"2", "MGI:2", "x\ny"}))
	require.Nil(t, w.Close())
	require.Equal(t, "<table border=2 cellpadding=1 cellspacing=1 width=\"100%\">\n"+
		"<tr align=center valign=top><th>id</th><th>symbol</th></tr>\n"+
		"<tr valign=top bgcolor=\"#fff\"><td>MGI:1</td><td>a&lt;b</td></tr>\n"+
		"<tr valign=top bgcolor=\"#eee\"><td>MGI:2</td><td>x<br>y</td></tr>\n"+
		"</table>\n", out.String())
}

func TestCreateHTMLWithOptions(t *testing.T) {
	var out bytes.Buffer
	w, err := Create("-", Options{Format: FormatHTML, HTML: HTMLOptions{Title: "Genes & alleles", Colors: []string{"#eee"}}}, &out)
	require.Nil(t, err)
	require.Nil(t, w.Write(tabletools.Row{"1", "Kit"}))
	require.Nil(t, w.Close())
	require.Equal(t, "<table border=2 cellpadding=1 cellspacing=1 width=\"100%\">\n"+
		"<caption><strong>Genes &amp; alleles</strong></caption>\n"+
		"<tr valign=top bgcolor=\"#eee\"><td>Kit</td></tr>\n"+
		"</table>\n", out.String())
}

func TestCreateCompressedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "out.tsv.zst")
	w, err := Create(path, Options{Format: FormatTSV}, nil)
	require.Nil(t, err)
	require.Nil(t, w.Write(tabletools.Row{"1", "Pax6"}))
	require.Nil(t, w.Close())

	info, err := os.Stat(path)
	require.Nil(t, err)
	require.True(t, info.Size() > 0)

	r, _, err := datasource.Open(path, nil)
	require.Nil(t, err)
	data, err := io.ReadAll(r)
	require.Nil(t, err)
	require.Nil(t, r.Close())
	require.Equal(t, "Pax6\n", string(data))
}

func TestUnknownFormat(t *testing.T) {
	_, err := Create("-", Options{Format: "xml"}, &bytes.Buffer{})
	require.Equal(t, errors.UnrecognizedFormatError{Format: "xml"}, err)
}
