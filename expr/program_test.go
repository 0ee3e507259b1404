package expr

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mgijax/tabletools"
	"github.com/stretchr/testify/require"
)

var john = tabletools.Row{"1", "John", "M", "1"}
var mary = tabletools.Row{"2", "Mary", "F", "2"}

func TestDefaultGenerator(t *testing.T) {
	p, err := Compile(nil, Options{Arity: 1})
	require.Nil(t, err)
	out, ok, err := p.Apply(7, john)
	require.Nil(t, err)
	require.True(t, ok)
	require.Equal(t, tabletools.Row{"7", "John", "M", "1"}, out)

	p, err = Compile(nil, Options{Arity: 2})
	require.Nil(t, err)
	out, ok, err = p.Apply(1, john, mary)
	require.Nil(t, err)
	require.True(t, ok)
	require.Equal(t, tabletools.Row{"1", "John", "M", "1", "Mary", "F", "2"}, out)
}

func TestFilterOnlyKeepsDefaultGenerator(t *testing.T) {
	p, err := Compile([]string{`?IN[2] == "F"`}, Options{Arity: 1})
	require.Nil(t, err)
	require.Equal(t, 1, p.NumFilters())

	_, ok, err := p.Apply(1, john)
	require.Nil(t, err)
	require.False(t, ok)

	out, ok, err := p.Apply(1, mary)
	require.Nil(t, err)
	require.True(t, ok)
	require.Equal(t, tabletools.Row{"1", "Mary", "F", "2"}, out)
}

func TestGenerators(t *testing.T) {
	p, err := Compile([]string{
		`IN[1]`,
		`strings.ToUpper(IN[2])`,
		`num(IN[3]) * 1.5`,
		`cols(len(OUT), IN[0])`,
		`?atoi(IN[3]) > 1`,
		`[]string{"x", "y"}`,
	}, Options{Arity: 1})
	require.Nil(t, err)

	_, ok, err := p.Apply(1, john)
	require.Nil(t, err)
	require.False(t, ok)

	out, ok, err := p.Apply(3, mary)
	require.Nil(t, err)
	require.True(t, ok)
	require.Equal(t, tabletools.Row{"3", "Mary", "F", "3", "4", "2", "x", "y"}, out)
}

func TestBinaryBindings(t *testing.T) {
	p, err := Compile([]string{`IN1[1] + "/" + IN2[1]`, `?IN[1] == IN1[1]`}, Options{Arity: 2})
	require.Nil(t, err)
	out, ok, err := p.Apply(1, john, mary)
	require.Nil(t, err)
	require.True(t, ok)
	require.Equal(t, tabletools.Row{"1", "John/Mary"}, out)
}

func TestExecFile(t *testing.T) {
	src := `package main

import "unicode/utf8"

func initial(s string) string {
	r, _ := utf8.DecodeRuneInString(s)
	return string(r)
}
`
	p, err := Compile([]string{`initial(IN[1])`}, Options{Arity: 1, ExecName: "helpers.go", ExecSrc: src})
	require.Nil(t, err)
	out, _, err := p.Apply(1, john)
	require.Nil(t, err)
	require.Equal(t, tabletools.Row{"1", "J"}, out)
}

func TestCompileErrors(t *testing.T) {
	_, err := Compile([]string{`IN[1] +`}, Options{Arity: 1})
	require.NotNil(t, err)
	_, err = Compile([]string{`?IN[1]`}, Options{Arity: 1})
	require.NotNil(t, err)
	_, err = Compile(nil, Options{Arity: 3})
	require.NotNil(t, err)
}

func TestRuntimePanicBecomesError(t *testing.T) {
	p, err := Compile([]string{`IN[9]`}, Options{Arity: 1})
	require.Nil(t, err)
	_, ok, err := p.Apply(1, john)
	require.False(t, ok)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "IN[9]")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exprs.txt")
	require.Nil(t, os.WriteFile(path, []byte("# comment\nIN[1]\n\n  ?IN[2] == \"M\"\n"), 0644))
	exprs, err := LoadFile(path)
	require.Nil(t, err)
	require.Equal(t, []string{"IN[1]", `?IN[2] == "M"`}, exprs)
}
