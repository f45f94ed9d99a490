package loader

import (
	"errors"
	"fmt"

	"github.com/panyam/pminus/decl"
)

// DefaultMaxSymbols bounds the number of variables a program may declare.
const DefaultMaxSymbols = 1000

var (
	ErrDuplicateDeclaration = errors.New("duplicate declaration")
	ErrSymbolTableFull      = errors.New("symbol table full")
	ErrInvalidSymbolType    = errors.New("only inteiro and real variables can be declared")
)

// Symbol is a declared variable and its storage slot.
type Symbol struct {
	Name         string
	Type         decl.ValueType
	DeclaredLine int
	Offset       int
	Size         int
	Initialized  bool
}

func (s *Symbol) String() string {
	return fmt.Sprintf("%s:%s@%d", s.Name, s.Type, s.Offset)
}

// SymbolTable is the single flat namespace of a program. Variables are laid
// out one after another in declaration order.
type SymbolTable struct {
	byName map[string]*Symbol
	order  []*Symbol
	next   int

	// <= 0 => DefaultMaxSymbols
	MaxSymbols int
}

func NewSymbolTable(maxSymbols int) *SymbolTable {
	return &SymbolTable{byName: map[string]*Symbol{}, MaxSymbols: maxSymbols}
}

func (t *SymbolTable) limit() int {
	if t.MaxSymbols <= 0 {
		return DefaultMaxSymbols
	}
	return t.MaxSymbols
}

// Declare adds name at the next free offset. A name that already exists is
// left untouched and ErrDuplicateDeclaration is returned along with the
// existing symbol.
func (t *SymbolTable) Declare(name string, typ decl.ValueType, line int) (*Symbol, error) {
	if existing, ok := t.byName[name]; ok {
		return existing, fmt.Errorf("%w: '%s' first declared at line %d", ErrDuplicateDeclaration, name, existing.DeclaredLine)
	}
	if !typ.IsNumeric() {
		return nil, fmt.Errorf("%w: '%s' has type %s", ErrInvalidSymbolType, name, typ)
	}
	if len(t.order) >= t.limit() {
		return nil, fmt.Errorf("%w: cannot declare '%s'", ErrSymbolTableFull, name)
	}
	sym := &Symbol{
		Name:         name,
		Type:         typ,
		DeclaredLine: line,
		Offset:       t.next,
		Size:         typ.Size(),
	}
	t.next += sym.Size
	t.byName[name] = sym
	t.order = append(t.order, sym)
	return sym, nil
}

func (t *SymbolTable) Lookup(name string) (*Symbol, bool) {
	sym, ok := t.byName[name]
	return sym, ok
}

// MarkInitialized flags name as assigned. Unknown names are ignored.
func (t *SymbolTable) MarkInitialized(name string) {
	if sym, ok := t.byName[name]; ok {
		sym.Initialized = true
	}
}

// Symbols returns every symbol in declaration order.
func (t *SymbolTable) Symbols() []*Symbol {
	return t.order
}

func (t *SymbolTable) Len() int { return len(t.order) }

// NextOffset is where the next declared variable would be placed.
func (t *SymbolTable) NextOffset() int { return t.next }
