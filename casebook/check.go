package casebook

import (
	"fmt"
	"strings"

	gfn "github.com/panyam/goutils/fn"
	"github.com/panyam/pminus/decl"
	"github.com/panyam/pminus/loader"
)

// Check compares a validated file against every assertion of c and returns
// one message per mismatch. An empty result means the case passed.
func Check(c Case, status *loader.FileStatus) (mismatches []string) {
	for _, a := range c.Assertions {
		var expected, actual []string
		switch a.Type {
		case FenceErrors:
			expected = lines(a.Content)
			actual = gfn.Map(status.Errors(), func(e *loader.SemanticError) string { return e.Error() })
		case FenceTree:
			expected = lines(a.Content)
			actual = lines(decl.TreeString(status.Adjusted()))
		case FenceSymbols:
			expected = gfn.Map(lines(a.Content), func(l string) string { return strings.Join(strings.Fields(l), " ") })
			actual = gfn.Map(status.Symbols, symbolLine)
		}
		mismatches = append(mismatches, compare(a.Type, expected, actual)...)
	}
	return
}

// Run analyzes the case source with l and checks the result. The error is
// only for programs that fail to parse.
func Run(l *loader.Loader, c Case) ([]string, error) {
	status, err := l.AnalyzeSource(c.Name, c.Source)
	if err != nil {
		return nil, err
	}
	return Check(c, status), nil
}

func symbolLine(s *loader.Symbol) string {
	initialized := "nao"
	if s.Initialized {
		initialized = "sim"
	}
	return fmt.Sprintf("%s %s %d %d %s", s.Name, s.Type, s.Offset, s.Size, initialized)
}

// lines splits text into lines without trailing blanks or empty lines at
// the end.
func lines(text string) []string {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return nil
	}
	out := strings.Split(text, "\n")
	for i, l := range out {
		out[i] = strings.TrimRight(l, " \t\r")
	}
	return out
}

func compare(kind FenceType, expected, actual []string) (out []string) {
	n := max(len(expected), len(actual))
	for i := 0; i < n; i++ {
		switch {
		case i >= len(expected):
			out = append(out, fmt.Sprintf("%s: unexpected line %d: %q", kind, i+1, actual[i]))
		case i >= len(actual):
			out = append(out, fmt.Sprintf("%s: missing line %d: %q", kind, i+1, expected[i]))
		case expected[i] != actual[i]:
			out = append(out, fmt.Sprintf("%s: line %d: expected %q, got %q", kind, i+1, expected[i], actual[i]))
		}
	}
	return
}
