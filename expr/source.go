package expr

import (
	"bufio"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"strconv"
	"strings"
)

type importSpec struct {
	name string
	path string
}

func (s importSpec) String() string {
	if s.name == "" {
		return strconv.Quote(s.path)
	}
	return s.name + " " + strconv.Quote(s.path)
}

// splitSource separates the imports of a Go source file from its declarations. The
// package clause is optional.
func splitSource(name, src string) ([]importSpec, string, error) {
	if !strings.HasPrefix(strings.TrimSpace(stripComments(src)), "package") {
		src = "package main\n" + src
	}
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, name, src, parser.ParseComments)
	if err != nil {
		return nil, "", err
	}
	var imports []importSpec
	bodyStart := fset.Position(file.Name.End()).Offset
	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.IMPORT {
			continue
		}
		for _, spec := range gd.Specs {
			is := spec.(*ast.ImportSpec)
			path, err := strconv.Unquote(is.Path.Value)
			if err != nil {
				return nil, "", err
			}
			imp := importSpec{path: path}
			if is.Name != nil {
				imp.name = is.Name.Name
			}
			imports = append(imports, imp)
		}
		if end := fset.Position(gd.End()).Offset; end > bodyStart {
			bodyStart = end
		}
	}
	return imports, src[bodyStart:], nil
}

// stripComments drops leading line comments, so that a file starting with a comment
// block still has its package clause recognized
func stripComments(src string) string {
	for {
		s := strings.TrimSpace(src)
		if !strings.HasPrefix(s, "//") {
			return s
		}
		nl := strings.IndexByte(s, '\n')
		if nl < 0 {
			return ""
		}
		src = s[nl+1:]
	}
}

// header builds the source evaluated before any expression: the merged imports of the
// prelude and the exec file, the prelude, then the exec file's declarations
func header(execName, execSrc string) (string, error) {
	imports := append([]importSpec{}, preludeImports...)
	body := ""
	if strings.TrimSpace(execSrc) != "" {
		execImports, execBody, err := splitSource(execName, execSrc)
		if err != nil {
			return "", fmt.Errorf("unable to parse %s: %w", execName, err)
		}
		for _, imp := range execImports {
			if !containsImport(imports, imp) {
				imports = append(imports, imp)
			}
		}
		body = execBody
	}
	var b strings.Builder
	b.WriteString("package main\n\nimport (\n")
	for _, imp := range imports {
		fmt.Fprintf(&b, "\t%s\n", imp)
	}
	b.WriteString(")\n")
	b.WriteString(prelude)
	b.WriteString("\n")
	b.WriteString(body)
	return b.String(), nil
}

func containsImport(imports []importSpec, imp importSpec) bool {
	for _, i := range imports {
		if i == imp {
			return true
		}
	}
	return false
}

// LoadFile reads expressions from a file, one per line. Blank lines and lines starting
// with # are ignored.
func LoadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var exprs []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 4096), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		exprs = append(exprs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return exprs, nil
}
