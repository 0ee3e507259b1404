// Package testing runs table tools in-process against in-memory inputs
package testing

import (
	"bytes"
	"context"
	"strings"

	"github.com/mgijax/tabletools/cli"
)

// Result holds the output of one in-process run
type Result struct {
	Stdout string
	Stderr string
}

// RunTool runs a tabletools command line (without the program name), such as
// "tj --k1 1 --k2 1 -1 a.txt -2 b.txt", with stdin as its standard input
func RunTool(ctx context.Context, stdin string, args ...string) (result *Result, err error) {
	var stdout, stderr bytes.Buffer
	// handle panics
	defer func() {
		if r := recover(); r != nil {
			if anErr, ok := r.(error); ok {
				err = anErr
			} else {
				panic(r)
			}
		}
		result = &Result{Stdout: stdout.String(), Stderr: stderr.String()}
	}()
	env := cli.Env{Stdin: strings.NewReader(stdin), Stdout: &stdout, Stderr: &stderr}
	err = cli.Execute(ctx, env, args)
	return
}

// Lines splits tool output into lines, without the trailing newline
func Lines(out string) []string {
	out = strings.TrimSuffix(out, "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}
