package testing

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAggregateCommand(t *testing.T) {
	res, err := RunTool(context.Background(), "x\t1\nx\t3\ny\t5\n", "ta", "-g1", "-acount", "-asum:2", "-alist:2:[,]")
	require.Nil(t, err)
	require.Equal(t, []string{"x\t2\t4\t[1,3]", "y\t1\t5\t[5]"}, Lines(res.Stdout))
}

func TestFilterCommandExpressions(t *testing.T) {
	res, err := RunTool(context.Background(), "a\t1\nb\t2\nc\t3\n", "tf", "?atoi(IN[2]) > 1", "IN[2]", "IN[1]")
	require.Nil(t, err)
	require.Equal(t, []string{"2\tb", "3\tc"}, Lines(res.Stdout))
}

func TestJoinCommand(t *testing.T) {
	dir := t.TempDir()
	t1 := filepath.Join(dir, "genes.txt")
	t2 := filepath.Join(dir, "alleles.txt")
	require.Nil(t, os.WriteFile(t1, []byte("# id\tsymbol\nMGI:1\tPax6\nMGI:2\tKit\n"), 0644))
	require.Nil(t, os.WriteFile(t2, []byte("MGI:1,Pax6<Sey>\nMGI:1,Pax6<tm1>\nMGI:3,Shh<tm1>\n"), 0644))

	res, err := RunTool(context.Background(), "", "tj", "-1", t1, "-2", t2, "-S", ",",
		"--k1", "1", "--k2", "1", "--left-outer", "-n", "-", "IN1[2]", "IN2[2]")
	require.Nil(t, err)
	require.Equal(t, []string{"Pax6\tPax6<Sey>", "Pax6\tPax6<tm1>", "Kit\t-"}, Lines(res.Stdout))
}

func TestJSONLInput(t *testing.T) {
	in := `{"id":"MGI:1","marker":{"symbol":"Pax6"}}` + "\n" + `{"id":"MGI:2"}` + "\n"
	res, err := RunTool(context.Background(), in, "tf", "--format", "jsonl", "--fields", "id,marker.symbol")
	require.Nil(t, err)
	require.Equal(t, []string{"MGI:1\tPax6", "MGI:2\t"}, Lines(res.Stdout))
}

func TestHTMLOutput(t *testing.T) {
	res, err := RunTool(context.Background(), "a<b\t1\n", "tf", "--out-format", "html")
	require.Nil(t, err)
	require.Contains(t, res.Stdout, "<table")
	require.Contains(t, res.Stdout, "<td>a&lt;b</td>")
	require.True(t, strings.HasSuffix(strings.TrimSpace(res.Stdout), "</table>"))

	res, err = RunTool(context.Background(), "Kit\t1\nPax6\t2\n", "tf", "--out-format", "html",
		"--html-title", "Genes", "--html-heading", "symbol,count", "--html-colors", "#fff,#eee")
	require.Nil(t, err)
	require.Contains(t, res.Stdout, "<caption><strong>Genes</strong></caption>")
	require.Contains(t, res.Stdout, "<th>symbol</th><th>count</th>")
	require.Contains(t, res.Stdout, "<tr valign=top bgcolor=\"#fff\"><td>Kit</td>")
	require.Contains(t, res.Stdout, "<tr valign=top bgcolor=\"#eee\"><td>Pax6</td>")
}

func TestCommandErrors(t *testing.T) {
	_, err := RunTool(context.Background(), "x\t1\n", "ta", "-amedian:2")
	require.NotNil(t, err)

	_, err = RunTool(context.Background(), "x\t1\n", "tf", "IN[")
	require.NotNil(t, err)

	_, err = RunTool(context.Background(), "", "td", "--k1", "1", "--k2", "1,2", "-1", "a", "-2", "b")
	require.NotNil(t, err)
}

func TestLogFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "tt.log")
	_, err := RunTool(context.Background(), "a\n", "tf", "-v", "-l", logFile)
	require.Nil(t, err)
	logged, err := os.ReadFile(logFile)
	require.Nil(t, err)
	require.Contains(t, string(logged), "finished")
	require.Contains(t, string(logged), "tool=tf")
}

func TestConfigCommand(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "test.cfg")
	require.Nil(t, os.WriteFile(cfg, []byte("ROOT\t/data\nIN\t${ROOT}/in\n"), 0644))
	res, err := RunTool(context.Background(), "", "config", cfg, "csh")
	require.Nil(t, err)
	require.Equal(t, []string{"#format: csh", `setenv IN "/data/in"`, `setenv ROOT "/data"`}, Lines(res.Stdout))
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	require.Nil(t, os.WriteFile(filepath.Join(dir, "in.txt"), []byte("b\t2\na\t1\n"), 0644))
	cfg := filepath.Join(dir, "batch.cfg")
	require.Nil(t, os.WriteFile(cfg, []byte("#format: sh\nDIR="+dir+"\n"), 0644))
	jobs := filepath.Join(dir, "jobs.yaml")
	require.Nil(t, os.WriteFile(jobs, []byte(`
workers: 2
jobs:
  - name: sort
    op: ts
    args: ["-1", "${DIR}/in.txt", "-k", "1", "-o", "${DIR}/sorted.txt"]
    timeout: 1m
  - name: echo
    command: ["sh", "-c", "echo hello"]
`), 0644))

	res, err := RunTool(context.Background(), "", "batch", jobs, "--config", cfg)
	require.Nil(t, err)
	require.Contains(t, res.Stdout, "hello\n")
	sorted, err := os.ReadFile(filepath.Join(dir, "sorted.txt"))
	require.Nil(t, err)
	require.Equal(t, "a\t1\nb\t2\n", string(sorted))
}

func TestBatchCommandFailure(t *testing.T) {
	jobs := filepath.Join(t.TempDir(), "jobs.yaml")
	require.Nil(t, os.WriteFile(jobs, []byte(`
jobs:
  - op: ta
    args: ["-1", "/no/such/file.txt"]
  - command: ["sh", "-c", "exit 0"]
`), 0644))
	res, err := RunTool(context.Background(), "", "batch", jobs)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "job1")
	require.Contains(t, res.Stderr, "job failed")
}
