package transform

import (
	"github.com/mgijax/tabletools"
	iutil "github.com/mgijax/tabletools/internal/util"
)

// KeySet is a set of key tuples
type KeySet interface {
	Has(key []string) bool
}

// Filter wraps a FilterOperation so that panics become errors
func Filter(fn tabletools.FilterOperation) tabletools.FilterOperation {
	return iutil.SafeFilterOperation(fn)
}

// KeyIn returns a FilterOperation which keeps Rows whose key is in set
func KeyIn(kfn tabletools.KeyingOperation, set KeySet) tabletools.FilterOperation {
	return Filter(func(row tabletools.Row) (bool, error) {
		key, err := kfn(row)
		if err != nil {
			return false, err
		}
		return set.Has(key), nil
	})
}

// KeyNotIn returns a FilterOperation which keeps Rows whose key is not in set
func KeyNotIn(kfn tabletools.KeyingOperation, set KeySet) tabletools.FilterOperation {
	return Filter(func(row tabletools.Row) (bool, error) {
		key, err := kfn(row)
		if err != nil {
			return false, err
		}
		return !set.Has(key), nil
	})
}
