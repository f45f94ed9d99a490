package loader

import (
	"errors"

	"github.com/panyam/pminus/decl"
)

// CollectDeclarations enters every declaration in the program into the
// symbol table, wherever it is nested. Expressions are not visited.
func (i *Inference) CollectDeclarations(root *decl.Node) {
	decl.Walk(root, func(n *decl.Node, _ int) bool {
		if n.Category == decl.ExprCategory {
			return false
		}
		if n.Kind == decl.DeclareKind && !n.Visited {
			n.Visited = true
			i.declare(n)
		}
		return true
	})
}

func (i *Inference) declare(n *decl.Node) {
	sym, err := i.Symbols.Declare(n.Name, n.DeclType, n.Line)
	switch {
	case err == nil:
		i.logger.Debug("declared", "name", sym.Name, "type", sym.Type, "offset", sym.Offset)
	case errors.Is(err, ErrDuplicateDeclaration):
		i.Errorf(n.Line, DuplicateDeclaration, "Variavel '%s' ja declarada", n.Name)
	case errors.Is(err, ErrSymbolTableFull):
		i.Errorf(n.Line, SymbolTableFull, "Tabela de simbolos cheia")
	default:
		i.Errorf(n.Line, InvalidDeclarationType, "Tipo invalido na declaracao de '%s'", n.Name)
	}
}

// CheckStatements walks the statement list in program order, resolving
// every expression and checking each statement against the symbol table.
// Nested bodies are handled with an explicit stack.
func (i *Inference) CheckStatements(root *decl.Node) {
	type task struct {
		node *decl.Node
		// check the until condition of a repeat once its body is done
		untilOf *decl.Node
	}
	stack := []task{{node: root}}
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if t.untilOf != nil {
			i.checkCondition(t.untilOf, 1)
			continue
		}
		n := t.node
		if n == nil {
			continue
		}
		// the sibling runs after this statement and everything nested in it
		stack = append(stack, task{node: n.Next})
		// declarations were handled when collecting
		if n.Category != decl.StmtCategory || n.Kind == decl.DeclareKind || n.Visited {
			continue
		}
		n.Visited = true

		switch n.Kind {
		case decl.AssignKind:
			i.EvalForAssignStmt(n)
		case decl.ReadKind:
			i.EvalForReadStmt(n)
		case decl.WriteKind:
			i.EvalForWriteStmt(n)
		case decl.IfKind:
			i.checkCondition(n, 0)
			stack = append(stack, task{node: n.Children[2]}, task{node: n.Children[1]})
		case decl.WhileKind:
			i.checkCondition(n, 0)
			stack = append(stack, task{node: n.Children[1]})
		case decl.RepeatKind:
			stack = append(stack, task{untilOf: n}, task{node: n.Children[0]})
		}
	}
}

// checkCondition requires the expression in the given slot of n to be Boolean.
func (i *Inference) checkCondition(n *decl.Node, slot int) {
	t := i.Resolve(n.Children[slot])
	if t != decl.Boolean && t != decl.Void {
		i.Errorf(n.Line, NonBooleanCondition, "Condicao deve ser booleana")
	}
}

func (i *Inference) EvalForAssignStmt(n *decl.Node) {
	rhs := i.Resolve(n.Children[0])
	sym, ok := i.Symbols.Lookup(n.Name)
	if !ok {
		i.Errorf(n.Line, UndeclaredVariable, "Variavel '%s' nao declarada", n.Name)
		return
	}
	switch {
	case rhs == decl.Void || rhs == sym.Type:
	case sym.Type == decl.Real && rhs == decl.Integer:
		n.Children[0] = i.Coerce(n.Children[0], decl.Real)
	case sym.Type == decl.Integer && rhs == decl.Real:
		i.Errorf(n.Line, IncompatibleAssignment, "Atribuicao incompativel: variavel '%s' eh inteiro, expressao eh real", n.Name)
		return
	default:
		i.Errorf(n.Line, IncompatibleAssignment, "Atribuicao incompativel: tipos incompativeis")
		return
	}
	i.Symbols.MarkInitialized(n.Name)
}

func (i *Inference) EvalForReadStmt(n *decl.Node) {
	sym, ok := i.Symbols.Lookup(n.Name)
	if !ok {
		i.Errorf(n.Line, UndeclaredVariable, "Variavel '%s' nao declarada", n.Name)
		return
	}
	if !sym.Type.IsNumeric() {
		i.Errorf(n.Line, NonNumericReadWriteOperand, "Leitura so permitida para variaveis numericas")
		return
	}
	i.Symbols.MarkInitialized(n.Name)
}

func (i *Inference) EvalForWriteStmt(n *decl.Node) {
	t := i.Resolve(n.Children[0])
	if t != decl.Void && !t.IsNumeric() {
		i.Errorf(n.Line, NonNumericReadWriteOperand, "Escrita so permitida para expressoes numericas")
	}
}
