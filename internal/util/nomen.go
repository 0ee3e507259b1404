package util

import (
	"math/big"
	"strings"
)

// nomenPiece is one run of a symbol: either all digits or no digits
type nomenPiece struct {
	text    string
	number  *big.Int
	isDigit bool
}

func splitNomen(s string) []nomenPiece {
	s = strings.ToLower(s)
	var pieces []nomenPiece
	start := 0
	for i := 1; i <= len(s); i++ {
		if i < len(s) && isDigit(s[i]) == isDigit(s[start]) {
			continue
		}
		p := nomenPiece{text: s[start:i], isDigit: isDigit(s[start])}
		if p.isDigit {
			p.number, _ = new(big.Int).SetString(p.text, 10)
		}
		pieces = append(pieces, p)
		start = i
	}
	return pieces
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// NomenCompare compares two gene/marker symbols the way curators expect: case-insensitively,
// with embedded digit runs compared as numbers, so that "Abc9" sorts before "Abc10" and
// "Ren1" before "ren2". Numbers sort before text at the same position.
func NomenCompare(a, b string) int {
	pa, pb := splitNomen(a), splitNomen(b)
	for i := 0; i < len(pa) && i < len(pb); i++ {
		x, y := pa[i], pb[i]
		switch {
		case x.isDigit && y.isDigit:
			if c := x.number.Cmp(y.number); c != 0 {
				return c
			}
		case x.isDigit:
			return -1
		case y.isDigit:
			return 1
		default:
			if c := strings.Compare(x.text, y.text); c != 0 {
				return c
			}
		}
	}
	switch {
	case len(pa) < len(pb):
		return -1
	case len(pa) > len(pb):
		return 1
	}
	return 0
}
