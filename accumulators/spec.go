package accumulators

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mgijax/tabletools"
	"github.com/mgijax/tabletools/errors"
)

// Aggregation function names which are not statistics
const (
	FuncCount = "count"
	FuncList  = "list"
	FuncFirst = "first"
	FuncLast  = "last"
)

// Spec is a parsed aggregation specifier of the form FCN[:COL[:XTRA]]
type Spec struct {
	Func   string
	Column int // 0 when no column was given
	Xtra   string
	// HasXtra distinguishes an empty XTRA ("list:3:") from a missing one ("list:3")
	HasXtra bool
}

// ParseSpec parses an aggregation specifier
func ParseSpec(s string) (Spec, error) {
	tokens := strings.SplitN(s, ":", 3)
	spec := Spec{Func: tokens[0]}
	if len(tokens) > 1 {
		col, err := strconv.Atoi(strings.TrimSpace(tokens[1]))
		if err != nil || col < 1 {
			return spec, fmt.Errorf("invalid column in aggregation specifier %q", s)
		}
		spec.Column = col
	}
	if len(tokens) > 2 {
		spec.Xtra, spec.HasXtra = tokens[2], true
	}
	switch {
	case spec.Func == FuncCount:
	case spec.Func == FuncList, spec.Func == FuncFirst, spec.Func == FuncLast, IsStatistic(spec.Func):
		if spec.Column == 0 {
			return spec, fmt.Errorf("aggregation %q requires a column", spec.Func)
		}
	default:
		return spec, errors.UnknownAggregateError{Name: spec.Func}
	}
	return spec, nil
}

// output describes where one aggregate output column comes from
type output struct {
	acc   int
	field string
}

// Plan turns a list of Specs into per-partition Accumulators and output columns.
// Statistical Specs on the same column share one Statistics Accumulator.
type Plan struct {
	factories []tabletools.AccumulatorFactory
	outputs   []output
}

// NewPlan builds a Plan from aggregation specifiers
func NewPlan(specs ...Spec) *Plan {
	p := &Plan{}
	statsByCol := make(map[int]int)
	for _, s := range specs {
		if IsStatistic(s.Func) {
			idx, ok := statsByCol[s.Column]
			if !ok {
				idx = len(p.factories)
				statsByCol[s.Column] = idx
				p.factories = append(p.factories, Statisticker(s.Column))
			}
			p.outputs = append(p.outputs, output{acc: idx, field: s.Func})
			continue
		}
		var f tabletools.AccumulatorFactory
		switch s.Func {
		case FuncCount:
			if s.Column == 0 {
				f = Counter
			} else {
				f = DistinctCounter(s.Column)
			}
		case FuncList:
			pss := DefaultListPSS
			if s.HasXtra {
				pss = ParsePSS(s.Xtra)
			}
			f = Lister(s.Column, pss)
		case FuncFirst:
			f = Firster(s.Column)
		case FuncLast:
			f = Laster(s.Column)
		}
		p.outputs = append(p.outputs, output{acc: len(p.factories)})
		p.factories = append(p.factories, f)
	}
	return p
}

// NumOutputs returns the number of aggregate columns this Plan produces
func (p *Plan) NumOutputs() int {
	return len(p.outputs)
}

// Create returns a fresh set of Accumulators for one partition
func (p *Plan) Create() *Composed {
	return Compose(p.factories...)().(*Composed)
}

// Results renders the aggregate columns of a partition's Accumulators
func (p *Plan) Results(c *Composed) []string {
	accs := c.GetResults()
	res := make([]string, len(p.outputs))
	for i, o := range p.outputs {
		if o.field != "" {
			res[i] = accs[o.acc].(*Statistics).ResultOf(o.field)
		} else {
			res[i] = accs[o.acc].Result()
		}
	}
	return res
}
