package decl

import (
	"fmt"
	"strings"
)

// MaxChildren is the fixed number of child slots on every node.
const MaxChildren = 3

// NodeCategory separates statements from expressions.
type NodeCategory int

const (
	StmtCategory NodeCategory = iota
	ExprCategory
)

// NodeKind is the discriminant selecting how a node's payload and children are read.
// Statement and expression kinds share one space so a Node needs a single tag.
type NodeKind int

const (
	InvalidKind NodeKind = iota

	// Statements
	IfKind
	RepeatKind
	WhileKind
	AssignKind
	ReadKind
	WriteKind
	DeclareKind

	// Expressions
	OpKind
	ConstKind
	IdKind
	ConversionKind
)

var kindNames = map[NodeKind]string{
	IfKind:         "If",
	RepeatKind:     "Repeat",
	WhileKind:      "While",
	AssignKind:     "Assign",
	ReadKind:       "Read",
	WriteKind:      "Write",
	DeclareKind:    "Declare",
	OpKind:         "Op",
	ConstKind:      "Const",
	IdKind:         "Id",
	ConversionKind: "Conversion",
}

func (k NodeKind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// NodeInfo embeddable struct for position tracking.
type NodeInfo struct{ Line int }

func (n *NodeInfo) Pos() int { return n.Line }

// Literal is the payload of a Const node.
type Literal struct {
	Type ValueType
	Int  int64
	Real float64
}

func (l Literal) String() string {
	if l.Type == Real {
		return fmt.Sprintf("%f", l.Real)
	}
	return fmt.Sprintf("%d", l.Int)
}

// Node is a single AST node. Statement lists are chained through Next.
//
// Child slots by kind:
//
//	If         cond, then-list, else-list
//	While      cond, body
//	Repeat     body, until-cond
//	Assign     value
//	Write      value
//	Op         left, right
//	Conversion wrapped
type Node struct {
	NodeInfo
	Category NodeCategory
	Kind     NodeKind
	Children [MaxChildren]*Node
	Next     *Node

	// Payload, meaningful per Kind
	Op       Operator
	Name     string
	Literal  Literal
	DeclType ValueType

	// Set during analysis
	Type    ValueType
	Visited bool
}

// NewStmtNode creates a statement node with empty children.
func NewStmtNode(kind NodeKind, line int) *Node {
	return &Node{NodeInfo: NodeInfo{Line: line}, Category: StmtCategory, Kind: kind}
}

// NewExpNode creates an expression node whose type is not yet resolved.
func NewExpNode(kind NodeKind, line int) *Node {
	return &Node{NodeInfo: NodeInfo{Line: line}, Category: ExprCategory, Kind: kind, Type: Void}
}

func NewOpNode(op Operator, left, right *Node, line int) *Node {
	n := NewExpNode(OpKind, line)
	n.Op = op
	n.Children[0] = left
	n.Children[1] = right
	return n
}

func NewIntConst(v int64, line int) *Node {
	n := NewExpNode(ConstKind, line)
	n.Literal = Literal{Type: Integer, Int: v}
	return n
}

func NewRealConst(v float64, line int) *Node {
	n := NewExpNode(ConstKind, line)
	n.Literal = Literal{Type: Real, Real: v}
	return n
}

func NewIdNode(name string, line int) *Node {
	n := NewExpNode(IdKind, line)
	n.Name = name
	return n
}

func NewDeclNode(name string, typ ValueType, line int) *Node {
	n := NewStmtNode(DeclareKind, line)
	n.Name = name
	n.DeclType = typ
	return n
}

func NewAssignNode(name string, value *Node, line int) *Node {
	n := NewStmtNode(AssignKind, line)
	n.Name = name
	n.Children[0] = value
	return n
}

func NewReadNode(name string, line int) *Node {
	n := NewStmtNode(ReadKind, line)
	n.Name = name
	return n
}

func NewWriteNode(value *Node, line int) *Node {
	n := NewStmtNode(WriteKind, line)
	n.Children[0] = value
	return n
}

func NewIfNode(cond, then, otherwise *Node, line int) *Node {
	n := NewStmtNode(IfKind, line)
	n.Children[0] = cond
	n.Children[1] = then
	n.Children[2] = otherwise
	return n
}

func NewWhileNode(cond, body *Node, line int) *Node {
	n := NewStmtNode(WhileKind, line)
	n.Children[0] = cond
	n.Children[1] = body
	return n
}

func NewRepeatNode(body, cond *Node, line int) *Node {
	n := NewStmtNode(RepeatKind, line)
	n.Children[0] = body
	n.Children[1] = cond
	return n
}

// NewConversionNode wraps an Integer expression so it is read as Real.
// The wrapper keeps the source line of the expression it wraps.
func NewConversionNode(inner *Node) *Node {
	n := NewExpNode(ConversionKind, inner.Line)
	n.Children[0] = inner
	n.Type = Real
	n.Visited = true
	return n
}

// Append links node at the end of the sibling list starting at list and
// returns the head of the list.
func Append(list, node *Node) *Node {
	if list == nil {
		return node
	}
	last := list
	for last.Next != nil {
		last = last.Next
	}
	last.Next = node
	return list
}

// Label is the node-specific text used in tree dumps.
func (n *Node) Label() string {
	switch n.Kind {
	case IfKind:
		return "If"
	case RepeatKind:
		return "Repeat"
	case WhileKind:
		return "While"
	case AssignKind:
		return "Assign to: " + n.Name
	case ReadKind:
		return "Read: " + n.Name
	case WriteKind:
		return "Write"
	case DeclareKind:
		return "Decl: " + n.Name
	case OpKind:
		return "Op: " + n.Op.Symbol()
	case ConstKind:
		return "Const: " + n.Literal.String()
	case IdKind:
		return "Id: " + n.Name
	case ConversionKind:
		return "Conversion: integer to real"
	}
	if n.Category == StmtCategory {
		return "Unknown statement node"
	}
	return "Unknown expression node"
}

// String renders a single node without its children, mostly for logs and test failures.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "L%d: %s", n.Line, n.Label())
	if n.Category == ExprCategory && n.Type != Void {
		fmt.Fprintf(&sb, " <%s>", n.Type)
	}
	return sb.String()
}
