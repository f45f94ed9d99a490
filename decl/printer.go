package decl

import (
	"fmt"
	"io"
	"strings"
)

// codePrinter writes lines prefixed with two spaces per indent level.
type codePrinter struct {
	indent int
	atBOL  bool
	out    io.Writer
	err    error
}

func (c *codePrinter) write(s string) {
	if c.err == nil {
		_, c.err = io.WriteString(c.out, s)
	}
}

func (c *codePrinter) Print(str string) {
	lines := strings.SplitAfter(str, "\n")
	for _, l := range lines {
		if l == "" {
			continue
		}
		if c.atBOL {
			c.write(strings.Repeat("  ", c.indent))
		}
		c.write(l)
		c.atBOL = strings.HasSuffix(l, "\n")
	}
}

func (c *codePrinter) Printf(format string, args ...any) {
	c.Print(fmt.Sprintf(format, args...))
}

// PrintTree dumps the forest rooted at root, one node per line as
// "L<line>: <label>", children indented one level below their parent.
func PrintTree(w io.Writer, root *Node) error {
	cp := &codePrinter{out: w, atBOL: true}
	Walk(root, func(n *Node, depth int) bool {
		cp.indent = depth
		cp.Printf("L%d: %s\n", n.Line, n.Label())
		return true
	})
	return cp.err
}

// TreeString is PrintTree into a string.
func TreeString(root *Node) string {
	var sb strings.Builder
	PrintTree(&sb, root)
	return sb.String()
}
