package expr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mgijax/tabletools"
	"github.com/mgijax/tabletools/internal/util"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// FilterPrefix marks an expression as a filter
const FilterPrefix = "?"

type filterFunc = func(IN, IN1, IN2, OUT []string) bool
type generatorFunc = func(IN, IN1, IN2, OUT []string) interface{}

// Options configures compilation of a Program
type Options struct {
	Arity    int    // 1 for unary tools, 2 for binary tools
	ExecName string // Name of the exec file, for error messages
	ExecSrc  string // Go source evaluated before the expressions, usually helper functions
}

// Program is a compiled sequence of filter and generator expressions
type Program struct {
	arity    int
	steps    []tabletools.GeneratorOperation
	sources  []string
	nFilters int
}

// IsFilter returns true iff expression e is a filter
func IsFilter(e string) bool {
	return strings.HasPrefix(strings.TrimSpace(e), FilterPrefix)
}

// Compile compiles expressions, in order. If none of them is a generator, the default
// generator is appended: all of IN's columns for unary tools, all of IN1's then IN2's
// columns for binary tools.
func Compile(exprs []string, opts Options) (*Program, error) {
	if opts.Arity != 1 && opts.Arity != 2 {
		return nil, fmt.Errorf("unsupported expression arity %d", opts.Arity)
	}
	p := &Program{arity: opts.Arity}
	hasGenerator := false
	for _, e := range exprs {
		if !IsFilter(e) {
			hasGenerator = true
		}
	}
	needsInterp := len(exprs) > 0 || strings.TrimSpace(opts.ExecSrc) != ""
	var i *interp.Interpreter
	if needsInterp {
		i = interp.New(interp.Options{})
		if err := i.Use(stdlib.Symbols); err != nil {
			return nil, fmt.Errorf("failed to load stdlib: %w", err)
		}
		src, err := header(opts.ExecName, opts.ExecSrc)
		if err != nil {
			return nil, err
		}
		if _, err := i.Eval(src); err != nil {
			if opts.ExecName != "" {
				return nil, fmt.Errorf("unable to evaluate %s: %w", opts.ExecName, err)
			}
			return nil, fmt.Errorf("unable to evaluate expression prelude: %w", err)
		}
	}
	for n, e := range exprs {
		step, err := compileOne(i, n, e)
		if err != nil {
			return nil, err
		}
		p.steps = append(p.steps, util.SafeGeneratorOperation(e, step))
		p.sources = append(p.sources, e)
		if IsFilter(e) {
			p.nFilters++
		}
	}
	if !hasGenerator {
		p.steps = append(p.steps, defaultGenerator)
		p.sources = append(p.sources, "")
	}
	return p, nil
}

func compileOne(i *interp.Interpreter, n int, e string) (tabletools.GeneratorOperation, error) {
	e = strings.TrimSpace(e)
	name := "F" + strconv.Itoa(n)
	if IsFilter(e) {
		body := strings.TrimSpace(strings.TrimPrefix(e, FilterPrefix))
		src := fmt.Sprintf("func %s(IN, IN1, IN2, OUT []string) bool {\n\treturn (%s)\n}", name, body)
		if _, err := i.Eval(src); err != nil {
			return nil, fmt.Errorf("unable to compile filter %q: %w", e, err)
		}
		v, err := i.Eval("main." + name)
		if err != nil {
			return nil, fmt.Errorf("unable to compile filter %q: %w", e, err)
		}
		fn, ok := v.Interface().(filterFunc)
		if !ok {
			return nil, fmt.Errorf("filter %q does not produce a bool", e)
		}
		return func(out tabletools.Row, in ...tabletools.Row) (tabletools.Row, bool, error) {
			in0, in1, in2 := bind(in)
			return out, fn(in0, in1, in2, out), nil
		}, nil
	}
	src := fmt.Sprintf("func %s(IN, IN1, IN2, OUT []string) interface{} {\n\treturn (%s)\n}", name, e)
	if _, err := i.Eval(src); err != nil {
		return nil, fmt.Errorf("unable to compile expression %q: %w", e, err)
	}
	v, err := i.Eval("main." + name)
	if err != nil {
		return nil, fmt.Errorf("unable to compile expression %q: %w", e, err)
	}
	fn, ok := v.Interface().(generatorFunc)
	if !ok {
		return nil, fmt.Errorf("expression %q has an unexpected type %T", e, v.Interface())
	}
	return func(out tabletools.Row, in ...tabletools.Row) (tabletools.Row, bool, error) {
		in0, in1, in2 := bind(in)
		return appendValue(out, fn(in0, in1, in2, out)), true, nil
	}, nil
}

// bind maps input rows onto IN, IN1 and IN2
func bind(in []tabletools.Row) (in0, in1, in2 []string) {
	if len(in) > 0 {
		in0, in1 = in[0], in[0]
	}
	if len(in) > 1 {
		in2 = in[1]
	}
	return
}

// appendValue appends a generator result to a row. Slices contribute one column per element.
func appendValue(out tabletools.Row, v interface{}) tabletools.Row {
	switch val := v.(type) {
	case []string:
		return append(out, val...)
	case tabletools.Row:
		return append(out, val...)
	case []interface{}:
		for _, x := range val {
			out = append(out, tabletools.FormatValue(x))
		}
		return out
	default:
		return append(out, tabletools.FormatValue(val))
	}
}

func defaultGenerator(out tabletools.Row, in ...tabletools.Row) (tabletools.Row, bool, error) {
	for _, r := range in {
		out = append(out, r.Data()...)
	}
	return out, true, nil
}

// NumFilters returns the number of filter expressions in this Program
func (p *Program) NumFilters() int {
	return p.nFilters
}

// Apply evaluates the Program against input rows. The output row starts as just the row
// number outNum; a false filter stops evaluation and returns ok=false.
func (p *Program) Apply(outNum int, in ...tabletools.Row) (tabletools.Row, bool, error) {
	if len(in) != p.arity {
		return nil, false, fmt.Errorf("expected %d input rows, got %d", p.arity, len(in))
	}
	out := tabletools.Row{strconv.Itoa(outNum)}
	for _, step := range p.steps {
		var ok bool
		var err error
		out, ok, err = step(out, in...)
		if err != nil || !ok {
			return nil, false, err
		}
	}
	return out, true, nil
}
