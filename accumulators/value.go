package accumulators

import (
	"strings"

	"github.com/mgijax/tabletools"
)

// Firster returns a factory for First Accumulators over column col
func Firster(col int) tabletools.AccumulatorFactory {
	return func() tabletools.Accumulator {
		return &First{col: col}
	}
}

// First keeps the first value of a column
type First struct {
	col   int
	value string
	seen  bool
}

// Accumulate adds a row to this Accumulator
func (a *First) Accumulate(row tabletools.Row) error {
	if a.seen {
		return nil
	}
	v, err := row.Col(a.col)
	if err != nil {
		return err
	}
	a.value, a.seen = v, true
	return nil
}

// Result returns the first value
func (a *First) Result() string {
	return a.value
}

// Laster returns a factory for Last Accumulators over column col
func Laster(col int) tabletools.AccumulatorFactory {
	return func() tabletools.Accumulator {
		return &Last{col: col}
	}
}

// Last keeps the most recent value of a column
type Last struct {
	col   int
	value string
}

// Accumulate adds a row to this Accumulator
func (a *Last) Accumulate(row tabletools.Row) error {
	v, err := row.Col(a.col)
	if err != nil {
		return err
	}
	a.value = v
	return nil
}

// Result returns the last value
func (a *Last) Result() string {
	return a.value
}

// PSS is a list format: prefix, separator and suffix
type PSS struct {
	Prefix    string
	Separator string
	Suffix    string
}

// ParsePSS interprets a list format string. Its length decides its meaning:
// 0 means no separator at all, 1 is the separator, 2 is prefix and suffix with no
// separator, and 3 is prefix, separator and suffix. Anything longer is ignored and the
// list is separated by commas.
func ParsePSS(pss string) PSS {
	r := []rune(pss)
	switch len(r) {
	case 0:
		return PSS{}
	case 1:
		return PSS{Separator: pss}
	case 2:
		return PSS{Prefix: string(r[0]), Suffix: string(r[1])}
	case 3:
		return PSS{Prefix: string(r[0]), Separator: string(r[1]), Suffix: string(r[2])}
	default:
		return DefaultListPSS
	}
}

// DefaultListPSS is the list format used by the list aggregate when none is given
var DefaultListPSS = PSS{Separator: ","}

// Format renders vals as a list
func (p PSS) Format(vals []string) string {
	return p.Prefix + strings.Join(vals, p.Separator) + p.Suffix
}

// Lister returns a factory for List Accumulators over column col
func Lister(col int, pss PSS) tabletools.AccumulatorFactory {
	return func() tabletools.Accumulator {
		return &List{col: col, pss: pss}
	}
}

// List concatenates the values of a column, in input order
type List struct {
	col    int
	pss    PSS
	values []string
}

// Accumulate adds a row to this Accumulator
func (a *List) Accumulate(row tabletools.Row) error {
	v, err := row.Col(a.col)
	if err != nil {
		return err
	}
	a.values = append(a.values, v)
	return nil
}

// Result returns the collected values as a list
func (a *List) Result() string {
	return a.pss.Format(a.values)
}
