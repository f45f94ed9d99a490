package decl

import "fmt"

// ValueType is the static type carried by expressions and symbols.
type ValueType int

const (
	Void ValueType = iota
	Integer
	Real
	Boolean
)

func (t ValueType) String() string {
	switch t {
	case Void:
		return "void"
	case Integer:
		return "inteiro"
	case Real:
		return "real"
	case Boolean:
		return "booleano"
	}
	return fmt.Sprintf("ValueType(%d)", int(t))
}

// IsNumeric is true for Integer and Real.
func (t ValueType) IsNumeric() bool {
	return t == Integer || t == Real
}

// Size is the storage footprint in bytes of a variable of this type.
// Only numeric types can be declared so everything else is 0.
func (t ValueType) Size() int {
	switch t {
	case Integer:
		return 4
	case Real:
		return 8
	}
	return 0
}

// Operator identifies the binary operator of an Op expression.
type Operator int

const (
	OpInvalid Operator = iota
	OpAnd
	OpOr
	OpLT
	OpGT
	OpLTE
	OpGTE
	OpEQ
	OpNEQ
	OpAdd
	OpSub
	OpMul
	OpDiv
)

var operatorSymbols = map[Operator]string{
	OpAnd: "&&",
	OpOr:  "||",
	OpLT:  "<",
	OpGT:  ">",
	OpLTE: "<=",
	OpGTE: ">=",
	OpEQ:  "==",
	OpNEQ: "!=",
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
}

// Symbol returns the source text of the operator, "unknown" if it has none.
func (o Operator) Symbol() string {
	if s, ok := operatorSymbols[o]; ok {
		return s
	}
	return "unknown"
}

func (o Operator) String() string { return o.Symbol() }

// OperatorFromSymbol is the inverse of Symbol.
func OperatorFromSymbol(sym string) (Operator, bool) {
	for op, s := range operatorSymbols {
		if s == sym {
			return op, true
		}
	}
	return OpInvalid, false
}

func (o Operator) IsArithmetic() bool {
	return o == OpAdd || o == OpSub || o == OpMul || o == OpDiv
}

func (o Operator) IsRelational() bool {
	return o >= OpLT && o <= OpNEQ
}

func (o Operator) IsLogical() bool {
	return o == OpAnd || o == OpOr
}
