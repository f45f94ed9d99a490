package loader

import (
	"fmt"
	"io"
)

// DefaultMaxErrors is how many diagnostics a collector keeps unless told otherwise.
const DefaultMaxErrors = 100

// ErrorKind classifies a semantic diagnostic.
type ErrorKind int

const (
	UndeclaredVariable ErrorKind = iota + 1
	DuplicateDeclaration
	SymbolTableFull
	UninitializedVariable
	IncompatibleAssignment
	RelationalOperandNotNumeric
	LogicalOperandNotBoolean
	ArithmeticOperandNotNumeric
	NonBooleanCondition
	NonNumericReadWriteOperand
	InvalidDeclarationType
)

var errorKindNames = map[ErrorKind]string{
	UndeclaredVariable:          "UndeclaredVariable",
	DuplicateDeclaration:        "DuplicateDeclaration",
	SymbolTableFull:             "SymbolTableFull",
	UninitializedVariable:       "UninitializedVariable",
	IncompatibleAssignment:      "IncompatibleAssignment",
	RelationalOperandNotNumeric: "RelationalOperandNotNumeric",
	LogicalOperandNotBoolean:    "LogicalOperandNotBoolean",
	ArithmeticOperandNotNumeric: "ArithmeticOperandNotNumeric",
	NonBooleanCondition:         "NonBooleanCondition",
	NonNumericReadWriteOperand:  "NonNumericReadWriteOperand",
	InvalidDeclarationType:      "InvalidDeclarationType",
}

func (k ErrorKind) String() string {
	if n, ok := errorKindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// SemanticError is a single diagnostic found during analysis.
type SemanticError struct {
	Line int
	Kind ErrorKind
	Msg  string
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("Linha %d: %s", e.Line, e.Msg)
}

// ErrorCollector accumulates diagnostics in the order they are found.
// Once MaxErrors are held further reports are dropped and only counted.
type ErrorCollector struct {
	errors  []*SemanticError
	dropped int

	// <= 0 => DefaultMaxErrors
	MaxErrors int
}

func (c *ErrorCollector) limit() int {
	if c.MaxErrors <= 0 {
		return DefaultMaxErrors
	}
	return c.MaxErrors
}

func (c *ErrorCollector) HasErrors() bool {
	return len(c.errors) > 0
}

// Errors returns the recorded diagnostics in detection order.
func (c *ErrorCollector) Errors() []*SemanticError {
	return c.errors
}

// Dropped is the number of reports discarded after the collector filled up.
func (c *ErrorCollector) Dropped() int {
	return c.dropped
}

func (c *ErrorCollector) PrintErrors(w io.Writer) {
	for _, err := range c.errors {
		fmt.Fprintln(w, err)
	}
	if c.dropped > 0 {
		fmt.Fprintf(w, "(%d more errors not shown)\n", c.dropped)
	}
}

// Report records err unless the collector is full.
func (c *ErrorCollector) Report(err *SemanticError) {
	if len(c.errors) >= c.limit() {
		c.dropped++
		return
	}
	c.errors = append(c.errors, err)
}

// Errorf records a diagnostic and returns false so checks can `return c.Errorf(...)`.
func (c *ErrorCollector) Errorf(line int, kind ErrorKind, format string, args ...any) bool {
	c.Report(&SemanticError{Line: line, Kind: kind, Msg: fmt.Sprintf(format, args...)})
	return false
}
