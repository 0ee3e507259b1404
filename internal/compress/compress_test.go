package compress

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

type bufferCloser struct {
	bytes.Buffer
	closed bool
}

func (b *bufferCloser) Close() error {
	b.closed = true
	return nil
}

func TestForFile(t *testing.T) {
	require.Equal(t, LZ4, ForFile("out.lz4"))
	require.Equal(t, Zstd, ForFile("/tmp/a.tsv.ZST"))
	require.Equal(t, Gzip, ForFile("a.gz"))
	require.Equal(t, None, ForFile("a.txt"))
	require.Equal(t, "zst", Zstd.String())
}

func TestCodecsRoundTrip(t *testing.T) {
	text := "MGI:1\tPax6\nMGI:2\tKit\n"
	for _, codec := range []Codec{None, LZ4, Zstd, Gzip} {
		t.Run(codec.String(), func(t *testing.T) {
			buf := &bufferCloser{}
			w, err := NewWriter(buf, codec)
			require.Nil(t, err)
			_, err = io.WriteString(w, text)
			require.Nil(t, err)
			require.Nil(t, w.Close())
			require.True(t, buf.closed)

			r, err := NewReader(io.NopCloser(bytes.NewReader(buf.Bytes())), codec)
			require.Nil(t, err)
			out, err := io.ReadAll(r)
			require.Nil(t, err)
			require.Nil(t, r.Close())
			require.Equal(t, text, string(out))
		})
	}
}
