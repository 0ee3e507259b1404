package expr

// preludeImports are available to every expression
var preludeImports = []importSpec{
	{path: "fmt"},
	{path: "math"},
	{path: "regexp"},
	{path: "strconv"},
	{path: "strings"},
}

// prelude declares the helper functions available to every expression
const prelude = `
var (
	_ = fmt.Sprint
	_ = math.Abs
	_ = regexp.MustCompile
	_ = strconv.Itoa
	_ = strings.TrimSpace
)

// num converts a column value to a number. Values which are not numbers are 0.
func num(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

// atoi converts a column value to an int. Values which are not integers are 0.
func atoi(s string) int {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return i
}

func str(v interface{}) string {
	return fmt.Sprint(v)
}

// cols builds several output columns at once
func cols(vs ...interface{}) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = fmt.Sprint(v)
	}
	return out
}

func empty(s string) bool {
	return strings.TrimSpace(s) == ""
}
`
