package transform

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mgijax/tabletools"
	iutil "github.com/mgijax/tabletools/internal/util"
)

// SortKey is one level of a multi-key sort
type SortKey struct {
	Column       int
	Reverse      bool // r: descending
	Numeric      bool // n: compare as numbers
	Nomenclature bool // s: case-insensitive, digit runs compared as numbers
}

// ParseSortKey parses COL[:FLAGS] or COLFLAGS, e.g. "3", "3r", "3:r", "2:nr" or "4:s"
func ParseSortKey(s string) (SortKey, error) {
	s = strings.TrimSpace(s)
	col, flags := s, ""
	if i := strings.IndexByte(s, ':'); i >= 0 {
		col, flags = s[:i], s[i+1:]
	} else {
		i := 0
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		col, flags = s[:i], s[i:]
	}
	n, err := strconv.Atoi(col)
	if err != nil || n < 1 {
		return SortKey{}, fmt.Errorf("invalid sort key %q", s)
	}
	key := SortKey{Column: n}
	for _, f := range flags {
		switch f {
		case 'r':
			key.Reverse = true
		case 'n':
			key.Numeric = true
		case 's':
			key.Nomenclature = true
		default:
			return SortKey{}, fmt.Errorf("invalid flag %q in sort key %q", f, s)
		}
	}
	if key.Numeric && key.Nomenclature {
		return SortKey{}, fmt.Errorf("sort key %q cannot be both numeric and nomenclature", s)
	}
	return key, nil
}

func compareNumeric(a, b string) int {
	fa, erra := strconv.ParseFloat(strings.TrimSpace(a), 64)
	fb, errb := strconv.ParseFloat(strings.TrimSpace(b), 64)
	switch {
	case erra != nil && errb != nil:
		return strings.Compare(a, b)
	case erra != nil:
		// numbers sort before text
		return 1
	case errb != nil:
		return -1
	case fa < fb || (math.IsNaN(fa) && !math.IsNaN(fb)):
		return -1
	case fa > fb || (math.IsNaN(fb) && !math.IsNaN(fa)):
		return 1
	}
	return 0
}

// Compare orders two Rows by this key
func (k SortKey) Compare(a, b tabletools.Row) (int, error) {
	va, err := a.Col(k.Column)
	if err != nil {
		return 0, err
	}
	vb, err := b.Col(k.Column)
	if err != nil {
		return 0, err
	}
	var c int
	switch {
	case k.Numeric:
		c = compareNumeric(va, vb)
	case k.Nomenclature:
		c = iutil.NomenCompare(va, vb)
	default:
		c = strings.Compare(va, vb)
	}
	if k.Reverse {
		c = -c
	}
	return c, nil
}

// CompareAll orders two Rows by a list of keys, the first being the most significant
func CompareAll(keys []SortKey, a, b tabletools.Row) (int, error) {
	for _, k := range keys {
		c, err := k.Compare(a, b)
		if err != nil || c != 0 {
			return c, err
		}
	}
	return 0, nil
}
