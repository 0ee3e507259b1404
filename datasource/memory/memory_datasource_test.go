package memory

import (
	"io"
	"testing"

	"github.com/mgijax/tabletools"
	"github.com/stretchr/testify/require"
)

func TestMemoryIterator(t *testing.T) {
	var it tabletools.RowIterator = CreateIterator([][]string{{"a", "b"}, {"c", "d"}})
	row, err := it.Next()
	require.Nil(t, err)
	require.Equal(t, tabletools.Row{"1", "a", "b"}, row)
	require.Equal(t, 2, it.NCols())
	row, err = it.Next()
	require.Nil(t, err)
	require.Equal(t, 2, row.Num())
	_, err = it.Next()
	require.Equal(t, io.EOF, err)
	require.EqualValues(t, -1, it.FileSize())
}
