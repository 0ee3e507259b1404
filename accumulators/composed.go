package accumulators

import (
	"github.com/mgijax/tabletools"
)

// Compose returns a new Composed Accumulator
func Compose(faccs ...tabletools.AccumulatorFactory) tabletools.AccumulatorFactory {
	return func() tabletools.Accumulator {
		accs := make([]tabletools.Accumulator, len(faccs))
		for i, f := range faccs {
			accs[i] = f()
		}
		return &Composed{accs: accs}
	}
}

// Composed composes other Accumulators
type Composed struct {
	accs []tabletools.Accumulator
}

// GetResults returns the contained Accumulators, so that their results may be accessed
func (c *Composed) GetResults() []tabletools.Accumulator {
	return c.accs
}

// Accumulate adds a row to all contained Accumulators
func (c *Composed) Accumulate(row tabletools.Row) error {
	for _, a := range c.accs {
		err := a.Accumulate(row)
		if err != nil {
			return err
		}
	}
	return nil
}

// Result returns the results of the contained Accumulators, separated by TABs
func (c *Composed) Result() string {
	res := ""
	for i, a := range c.accs {
		if i > 0 {
			res += "\t"
		}
		res += a.Result()
	}
	return res
}
