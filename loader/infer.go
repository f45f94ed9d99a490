package loader

import (
	"log/slog"

	"github.com/panyam/pminus/decl"
)

// Inference holds the state of one analysis run over a program: its symbol
// table and the diagnostics found so far. Nothing is shared between runs.
type Inference struct {
	ErrorCollector
	Symbols *SymbolTable

	filePath string
	root     *decl.Node
	logger   *slog.Logger
}

func NewInference(filePath string, root *decl.Node, opts Options) *Inference {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Inference{
		ErrorCollector: ErrorCollector{MaxErrors: opts.MaxErrors},
		Symbols:        NewSymbolTable(opts.MaxSymbols),
		filePath:       filePath,
		root:           root,
		logger:         logger.With("file", filePath),
	}
}

// Eval runs declaration collection over the whole program and then checks
// every statement in order. Returns true if no diagnostics were recorded.
func (i *Inference) Eval() bool {
	i.logger.Debug("collecting declarations")
	i.CollectDeclarations(i.root)
	i.logger.Debug("checking statements", "symbols", i.Symbols.Len())
	i.CheckStatements(i.root)
	i.logger.Debug("analysis done", "errors", len(i.Errors()), "dropped", i.Dropped())
	return !i.HasErrors()
}

func typeOf(n *decl.Node) decl.ValueType {
	if n == nil {
		return decl.Void
	}
	return n.Type
}

// Resolve computes the type of an expression bottom up, annotating every
// node below it. Integer operands that meet a Real are wrapped in place.
// Nodes already visited are not looked at again, so calling Resolve twice on
// the same tree adds no diagnostics and no conversions.
func (i *Inference) Resolve(expr *decl.Node) decl.ValueType {
	if expr == nil || expr.Category != decl.ExprCategory {
		return decl.Void
	}
	if expr.Visited {
		return expr.Type
	}

	type frame struct {
		node     *decl.Node
		expanded bool
	}
	stack := []frame{{node: expr}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		n := top.node
		if n.Visited {
			stack = stack[:len(stack)-1]
			continue
		}
		if n.Kind == decl.OpKind && !top.expanded {
			top.expanded = true
			// right first so the left operand is resolved (and reported) first
			for c := 1; c >= 0; c-- {
				if child := n.Children[c]; child != nil && !child.Visited {
					stack = append(stack, frame{node: child})
				}
			}
			continue
		}
		stack = stack[:len(stack)-1]
		n.Type = i.evalNode(n)
		n.Visited = true
	}
	return expr.Type
}

// evalNode types a single node whose children are already resolved.
func (i *Inference) evalNode(n *decl.Node) decl.ValueType {
	switch n.Kind {
	case decl.IdKind:
		return i.EvalForIdentifierExpr(n)
	case decl.ConstKind:
		return n.Literal.Type
	case decl.OpKind:
		return i.EvalForBinaryExpr(n)
	case decl.ConversionKind:
		return decl.Real
	}
	return decl.Void
}

func (i *Inference) EvalForIdentifierExpr(n *decl.Node) decl.ValueType {
	sym, ok := i.Symbols.Lookup(n.Name)
	if !ok {
		i.Errorf(n.Line, UndeclaredVariable, "Variavel '%s' nao declarada", n.Name)
		return decl.Void
	}
	if !sym.Initialized {
		i.Errorf(n.Line, UninitializedVariable, "Variavel '%s' usada sem ser inicializada", n.Name)
	}
	return sym.Type
}

// EvalForBinaryExpr types an operator node from its operand types. A Void
// operand means an error was already reported below, so the result is Void
// and nothing more is said about it.
func (i *Inference) EvalForBinaryExpr(n *decl.Node) decl.ValueType {
	lt, rt := typeOf(n.Children[0]), typeOf(n.Children[1])
	if lt == decl.Void || rt == decl.Void {
		return decl.Void
	}
	switch {
	case n.Op.IsLogical():
		if lt != decl.Boolean || rt != decl.Boolean {
			i.Errorf(n.Line, LogicalOperandNotBoolean, "Operador logico requer operandos booleanos")
		}
		return decl.Boolean
	case n.Op.IsRelational():
		if !lt.IsNumeric() || !rt.IsNumeric() {
			i.Errorf(n.Line, RelationalOperandNotNumeric, "Operador relacional requer operandos numericos")
			return decl.Boolean
		}
		i.unifyOperands(n)
		return decl.Boolean
	case n.Op.IsArithmetic():
		if !lt.IsNumeric() || !rt.IsNumeric() {
			i.Errorf(n.Line, ArithmeticOperandNotNumeric, "Operador aritmetico requer operandos numericos")
			return decl.Void
		}
		return i.unifyOperands(n)
	}
	return decl.Void
}

// unifyOperands brings both numeric operands of n to a common type.
func (i *Inference) unifyOperands(n *decl.Node) decl.ValueType {
	if typeOf(n.Children[0]) == decl.Real || typeOf(n.Children[1]) == decl.Real {
		n.Children[0] = i.Coerce(n.Children[0], decl.Real)
		n.Children[1] = i.Coerce(n.Children[1], decl.Real)
		return decl.Real
	}
	return decl.Integer
}

// Coerce returns the node to store in place of expr so it reads as target.
// Only Integer to Real needs a conversion; any other pair returns expr as is.
func (i *Inference) Coerce(expr *decl.Node, target decl.ValueType) *decl.Node {
	if expr == nil || target != decl.Real || expr.Type != decl.Integer {
		return expr
	}
	i.logger.Debug("inserted conversion", "line", expr.Line, "node", expr.Label())
	return decl.NewConversionNode(expr)
}
