package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/mgijax/tabletools/config"
	"github.com/stretchr/testify/require"
)

func TestMultiCallArgs(t *testing.T) {
	require.Equal(t, []string{"tj", "--k1", "1"}, multiCallArgs("/usr/local/bin/tj", []string{"--k1", "1"}))
	require.Equal(t, []string{"ta", "-g1"}, multiCallArgs("tabletools", []string{"ta", "-g1"}))
}

func TestCommandTree(t *testing.T) {
	root := NewRootCommand(StdEnv())
	for _, name := range append(ToolNames, "batch", "config") {
		cmd, _, err := root.Find([]string{name})
		require.Nil(t, err)
		require.Equal(t, name, cmd.Name())
	}
	tj, _, err := root.Find([]string{"tj"})
	require.Nil(t, err)
	for _, flag := range []string{"file1", "file2", "separator2", "comment2", "out-file", "left-outer", "right-outer", "null-string", "k1", "k2", "exec-file", "expr-file"} {
		require.NotNil(t, tj.Flags().Lookup(flag), flag)
	}
	tb, _, err := root.Find([]string{"tb"})
	require.Nil(t, err)
	require.Nil(t, tb.Flags().Lookup("out-file"))
	require.Equal(t, "output-dir", tb.Flags().ShorthandLookup("o").Name)
}

func TestParseBatch(t *testing.T) {
	b, err := parseBatch(strings.NewReader(`
workers: 3
jobs:
  - name: agg
    op: ta
    args: ["-1", "${DATA}/in.txt", "-g1"]
    timeout: 90s
  - command: ["ls", "${DATA}"]
`))
	require.Nil(t, err)
	require.Equal(t, 3, b.Workers)

	cfg := config.New()
	cfg.Set("DATA", "/data")
	specs, err := b.specs(cfg)
	require.Nil(t, err)
	require.Len(t, specs, 2)
	require.Equal(t, "agg", specs[0].Name)
	require.Equal(t, []string{"-1", "/data/in.txt", "-g1"}, specs[0].Args)
	require.Equal(t, 90*time.Second, specs[0].Timeout)
	require.Equal(t, "job2", specs[1].Name)
	require.Equal(t, []string{"ls", "/data"}, specs[1].Command)
}

func TestBatchValidation(t *testing.T) {
	for _, src := range []string{
		"jobs:\n  - op: nope\n",
		"jobs:\n  - name: empty\n",
		"jobs:\n  - op: ta\n    command: [ls]\n",
		"jobs:\n  - op: ta\n    timeout: soon\n",
	} {
		b, err := parseBatch(strings.NewReader(src))
		require.Nil(t, err, src)
		_, err = b.specs(nil)
		require.NotNil(t, err, src)
	}
	_, err := parseBatch(strings.NewReader("jobz: []\n"))
	require.NotNil(t, err)
}
