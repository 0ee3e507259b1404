package transform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mgijax/tabletools"
	"github.com/mgijax/tabletools/accumulators"
	"github.com/mgijax/tabletools/errors"
	iutil "github.com/mgijax/tabletools/internal/util"
)

// DefaultExpandPSS is the list format expected by Expand when none is given
const DefaultExpandPSS = "[,]"

// FlatMap wraps a FlatMapOperation so that panics become errors
func FlatMap(fn tabletools.FlatMapOperation) tabletools.FlatMapOperation {
	return iutil.SafeFlatMapOperation(fn)
}

// ExpandSpec names a list-valued column and its list format
type ExpandSpec struct {
	Column int
	PSS    accumulators.PSS
}

// ParseExpandSpec parses COL[:PSS]. An empty or missing PSS means DefaultExpandPSS.
func ParseExpandSpec(s string) (ExpandSpec, error) {
	tokens := strings.SplitN(s, ":", 2)
	col, err := strconv.Atoi(strings.TrimSpace(tokens[0]))
	if err != nil || col < 1 {
		return ExpandSpec{}, fmt.Errorf("invalid expand specifier %q", s)
	}
	pss := DefaultExpandPSS
	if len(tokens) == 2 && tokens[1] != "" {
		pss = tokens[1]
	}
	return ExpandSpec{Column: col, PSS: accumulators.ParsePSS(pss)}, nil
}

// SplitList decodes a list-valued cell
func SplitList(value string, pss accumulators.PSS) ([]string, error) {
	if len(value) < len(pss.Prefix)+len(pss.Suffix) ||
		!strings.HasPrefix(value, pss.Prefix) || !strings.HasSuffix(value, pss.Suffix) {
		return nil, errors.ExpandSyntaxError{Value: value, Prefix: pss.Prefix, Suffix: pss.Suffix}
	}
	inner := value[len(pss.Prefix) : len(value)-len(pss.Suffix)]
	if pss.Separator == "" {
		return []string{inner}, nil
	}
	return strings.Split(inner, pss.Separator), nil
}

// Expand returns a FlatMapOperation which expands list-valued columns in parallel: the
// i-th output Row holds the i-th element of every expanded column, or the empty string
// where a list is shorter than the longest one. Output Rows keep the input row number.
func Expand(specs []ExpandSpec) tabletools.FlatMapOperation {
	return FlatMap(func(row tabletools.Row) ([]tabletools.Row, error) {
		lists := make([][]string, len(specs))
		n := 1
		for i, s := range specs {
			v, err := row.Col(s.Column)
			if err != nil {
				return nil, err
			}
			if lists[i], err = SplitList(v, s.PSS); err != nil {
				return nil, err
			}
			if len(lists[i]) > n {
				n = len(lists[i])
			}
		}
		out := make([]tabletools.Row, n)
		for j := range out {
			xrow := row.Clone()
			for i, s := range specs {
				if j < len(lists[i]) {
					xrow[s.Column] = lists[i][j]
				} else {
					xrow[s.Column] = ""
				}
			}
			out[j] = xrow
		}
		return out, nil
	})
}
