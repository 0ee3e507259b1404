package transform

import (
	"github.com/mgijax/tabletools"
	iutil "github.com/mgijax/tabletools/internal/util"
)

// KeyBy returns a KeyingOperation which extracts the given columns from a Row
func KeyBy(cols []int) tabletools.KeyingOperation {
	return iutil.SafeKeyingOperation(func(row tabletools.Row) ([]string, error) {
		return row.Key(cols)
	})
}

// KeyByNullable is KeyBy, except that a key containing the null string is reported as
// absent (nil, nil)
func KeyByNullable(cols []int, null string) tabletools.KeyingOperation {
	return iutil.SafeKeyingOperation(func(row tabletools.Row) ([]string, error) {
		key, err := row.Key(cols)
		if err != nil {
			return nil, err
		}
		for _, k := range key {
			if k == null {
				return nil, nil
			}
		}
		return key, nil
	})
}
