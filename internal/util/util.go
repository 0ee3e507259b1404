package util

import (
	"fmt"
	"regexp"
	"runtime"
	"strconv"
	"strings"
)

// GetTrace produces the string representation of a stack trace
func GetTrace() string {
	var name, file string
	var line int
	var pc [16]uintptr
	var res strings.Builder
	n := runtime.Callers(3, pc[:])
	for _, pc := range pc[:n] {
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}
		file, line = fn.FileLine(pc)
		name = fn.Name()
		if !strings.HasPrefix(name, "runtime.") {
			fmt.Fprintf(&res, "%s\n\t%s:%d\n", name, file, line)
		}
	}
	return res.String()
}

var (
	listSeparators = regexp.MustCompile(`[, ]+`)
	nonDigits      = regexp.MustCompile(`[^0-9]+`)
)

// ParseIntList parses a list of column numbers separated by commas and/or spaces. Repeated flag
// values are joined before parsing, so ParseIntList([]string{"1,2", "3"}) is [1 2 3].
func ParseIntList(vals []string) ([]int, error) {
	joined := strings.Join(vals, ", ")
	var result []int
	for _, f := range listSeparators.Split(joined, -1) {
		if f == "" {
			continue
		}
		i, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid column number %q: %w", f, err)
		}
		result = append(result, i)
	}
	return result, nil
}

// ParseDigitRuns extracts every run of digits from s as a column number, so "1:2|3" is [1 2 3].
// Duplicates are dropped, keeping the first occurrence.
func ParseDigitRuns(vals []string) []int {
	seen := make(map[int]bool)
	var result []int
	for _, v := range vals {
		for _, f := range nonDigits.Split(v, -1) {
			if f == "" {
				continue
			}
			i, err := strconv.Atoi(f)
			if err != nil || seen[i] {
				continue
			}
			seen[i] = true
			result = append(result, i)
		}
	}
	return result
}
