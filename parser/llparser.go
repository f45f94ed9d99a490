package parser

import (
	"fmt"
	"strings"

	gfn "github.com/panyam/goutils/fn"
	"github.com/panyam/pminus/decl"
)

// MaxNesting is how deep blocks and parentheses may nest before parsing
// stops with a SyntaxError.
const MaxNesting = 256

// LLParser is a hand written recursive descent parser for P- programs.
// Blocks and parenthesised expressions recurse, at most MaxNesting deep.
type LLParser struct {
	lexer            *Lexer
	peekedTokenValue *SymType
	peekedToken      int
	nesting          int

	PanicOnError bool
}

func NewLLParser(lexer *Lexer) *LLParser {
	return &LLParser{lexer: lexer}
}

// Parse reads a whole program and returns its statement list.
func (p *LLParser) Parse() (*decl.Node, error) {
	stmts, err := p.ParseStmtList(eof)
	if err != nil {
		return nil, err
	}
	if p.lexer.lastError != nil {
		return nil, p.lexer.lastError
	}
	return stmts, nil
}

func (p *LLParser) Errorf(format string, args ...any) error {
	s := fmt.Sprintf(format, args...)
	p.lexer.Error(s)
	if p.PanicOnError {
		panic(p.lexer.lastError)
	}
	return p.lexer.lastError
}

func (p *LLParser) Advance() int {
	p.PeekToken()
	last := p.peekedToken
	p.peekedTokenValue = nil
	p.peekedToken = -1
	return last
}

func (p *LLParser) PeekToken() int {
	if p.peekedTokenValue == nil {
		p.peekedTokenValue = &SymType{}
		p.peekedToken = p.lexer.Lex(p.peekedTokenValue)
	}
	return p.peekedToken
}

// Expect checks if the current peeked token is one of the expected tokens.
// It does NOT advance.
func (p *LLParser) Expect(tokensIn ...int) (foundToken int, err error) {
	peekedToken := p.PeekToken()
	for _, tok := range tokensIn {
		if tok == peekedToken {
			return tok, nil
		}
	}
	if peekedToken == ILLEGAL && p.lexer.lastError != nil {
		return -1, p.lexer.lastError
	}
	var errMsg string
	if len(tokensIn) == 1 {
		errMsg = fmt.Sprintf("expected %s, found: %s", TokenString(tokensIn[0]), TokenString(peekedToken))
	} else {
		expectedStrings := gfn.Map(tokensIn, func(t int) string { return TokenString(t) })
		errMsg = fmt.Sprintf("expected one of: [%s], found: %s", strings.Join(expectedStrings, ", "), TokenString(peekedToken))
	}
	return -1, p.Errorf("%s", errMsg)
}

// AdvanceIf expects one of the given tokens and advances if found.
// Returns the matched token type and its semantic value.
func (p *LLParser) AdvanceIf(tokensIn ...int) (foundToken int, tokenValue *SymType, err error) {
	if _, err = p.Expect(tokensIn...); err != nil {
		return -1, nil, err
	}
	foundToken = p.peekedToken
	tokenValue = p.peekedTokenValue
	p.Advance()
	return
}

// ParseStmtList parses statements until one of closingTokens is peeked.
// The closing token is not consumed.
func (p *LLParser) ParseStmtList(closingTokens ...int) (stmts *decl.Node, err error) {
	for {
		peeked := p.PeekToken()
		for _, ct := range closingTokens {
			if peeked == ct {
				return stmts, nil
			}
		}
		if peeked == eof {
			_, err = p.Expect(closingTokens...)
			return nil, err
		}
		stmt, err := p.ParseStmt()
		if err != nil {
			return nil, err
		}
		stmts = decl.Append(stmts, stmt)
	}
}

// enter is paired with a deferred leave around every recursive construct.
func (p *LLParser) enter() error {
	p.nesting++
	if p.nesting > MaxNesting {
		return p.Errorf("nesting deeper than %d levels", MaxNesting)
	}
	return nil
}

func (p *LLParser) leave() { p.nesting-- }

// ParseBlock parses "{" stmt* "}".
func (p *LLParser) ParseBlock() (*decl.Node, error) {
	defer p.leave()
	if err := p.enter(); err != nil {
		return nil, err
	}
	if _, _, err := p.AdvanceIf(LBRACE); err != nil {
		return nil, err
	}
	body, err := p.ParseStmtList(RBRACE)
	if err != nil {
		return nil, err
	}
	if _, _, err := p.AdvanceIf(RBRACE); err != nil {
		return nil, err
	}
	return body, nil
}

// ParseStmt parses a single statement. Declarations of several names
// produce one Declare node per name, linked as siblings.
func (p *LLParser) ParseStmt() (*decl.Node, error) {
	switch p.PeekToken() {
	case INTEIRO, REAL:
		return p.ParseDeclStmt()
	case SE:
		return p.ParseIfStmt()
	case ENQUANTO:
		return p.ParseWhileStmt()
	case REPITA:
		return p.ParseRepeatStmt()
	case LER:
		return p.ParseReadStmt()
	case MOSTRAR:
		return p.ParseWriteStmt()
	case IDENTIFIER:
		return p.ParseAssignment()
	}
	_, err := p.Expect(INTEIRO, REAL, SE, ENQUANTO, REPITA, LER, MOSTRAR, IDENTIFIER)
	return nil, err
}

// decl := ("inteiro"|"real") ID ("," ID)* ";"
func (p *LLParser) ParseDeclStmt() (out *decl.Node, err error) {
	typeTok, _, err := p.AdvanceIf(INTEIRO, REAL)
	if err != nil {
		return nil, err
	}
	declType := decl.Integer
	if typeTok == REAL {
		declType = decl.Real
	}
	for {
		_, ident, err := p.AdvanceIf(IDENTIFIER)
		if err != nil {
			return nil, err
		}
		out = decl.Append(out, decl.NewDeclNode(ident.text, declType, ident.line))
		if p.PeekToken() != COMMA {
			break
		}
		p.Advance()
	}
	if _, _, err = p.AdvanceIf(SEMICOLON); err != nil {
		return nil, err
	}
	return out, nil
}

// if := "se" expr "entao" block ["senao" block]
func (p *LLParser) ParseIfStmt() (*decl.Node, error) {
	_, kw, err := p.AdvanceIf(SE)
	if err != nil {
		return nil, err
	}
	cond, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if _, _, err = p.AdvanceIf(ENTAO); err != nil {
		return nil, err
	}
	then, err := p.ParseBlock()
	if err != nil {
		return nil, err
	}
	var otherwise *decl.Node
	if p.PeekToken() == SENAO {
		p.Advance()
		if otherwise, err = p.ParseBlock(); err != nil {
			return nil, err
		}
	}
	return decl.NewIfNode(cond, then, otherwise, kw.line), nil
}

// while := "enquanto" expr block
func (p *LLParser) ParseWhileStmt() (*decl.Node, error) {
	_, kw, err := p.AdvanceIf(ENQUANTO)
	if err != nil {
		return nil, err
	}
	cond, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.ParseBlock()
	if err != nil {
		return nil, err
	}
	return decl.NewWhileNode(cond, body, kw.line), nil
}

// repeat := "repita" block "ate" expr ";"
func (p *LLParser) ParseRepeatStmt() (*decl.Node, error) {
	_, kw, err := p.AdvanceIf(REPITA)
	if err != nil {
		return nil, err
	}
	body, err := p.ParseBlock()
	if err != nil {
		return nil, err
	}
	if _, _, err = p.AdvanceIf(ATE); err != nil {
		return nil, err
	}
	cond, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if _, _, err = p.AdvanceIf(SEMICOLON); err != nil {
		return nil, err
	}
	return decl.NewRepeatNode(body, cond, kw.line), nil
}

// read := "ler" "(" ID ")" ";"
func (p *LLParser) ParseReadStmt() (*decl.Node, error) {
	_, kw, err := p.AdvanceIf(LER)
	if err != nil {
		return nil, err
	}
	if _, _, err = p.AdvanceIf(LPAREN); err != nil {
		return nil, err
	}
	_, ident, err := p.AdvanceIf(IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, _, err = p.AdvanceIf(RPAREN); err != nil {
		return nil, err
	}
	if _, _, err = p.AdvanceIf(SEMICOLON); err != nil {
		return nil, err
	}
	return decl.NewReadNode(ident.text, kw.line), nil
}

// write := "mostrar" "(" expr ")" ";"
func (p *LLParser) ParseWriteStmt() (*decl.Node, error) {
	_, kw, err := p.AdvanceIf(MOSTRAR)
	if err != nil {
		return nil, err
	}
	if _, _, err = p.AdvanceIf(LPAREN); err != nil {
		return nil, err
	}
	value, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if _, _, err = p.AdvanceIf(RPAREN); err != nil {
		return nil, err
	}
	if _, _, err = p.AdvanceIf(SEMICOLON); err != nil {
		return nil, err
	}
	return decl.NewWriteNode(value, kw.line), nil
}

// assign := ID "=" expr ";"
func (p *LLParser) ParseAssignment() (*decl.Node, error) {
	_, ident, err := p.AdvanceIf(IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, _, err = p.AdvanceIf(ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if _, _, err = p.AdvanceIf(SEMICOLON); err != nil {
		return nil, err
	}
	return decl.NewAssignNode(ident.text, value, ident.line), nil
}

func (p *LLParser) ParseExpression() (*decl.Node, error) {
	return p.ParseOrExpr()
}

// Helper for parsing left-associative binary expressions
func (p *LLParser) parseBinaryExpr(
	parseHigherPrecedenceOperand func() (*decl.Node, error),
	operators ...int) (*decl.Node, error) {

	left, err := parseHigherPrecedenceOperand()
	if err != nil {
		return nil, err
	}

	for {
		currentPeekedToken := p.PeekToken()
		isCurrentLevelOperator := false
		for _, opToken := range operators {
			if currentPeekedToken == opToken {
				isCurrentLevelOperator = true
				break
			}
		}
		if !isCurrentLevelOperator {
			break
		}

		opTokenVal := p.peekedTokenValue
		p.Advance()

		right, err := parseHigherPrecedenceOperand()
		if err != nil {
			return nil, err
		}
		op, _ := decl.OperatorFromSymbol(opTokenVal.text)
		left = decl.NewOpNode(op, left, right, opTokenVal.line)
	}
	return left, nil
}

// OrExpr: AndExpr ( OR AndExpr )*
func (p *LLParser) ParseOrExpr() (*decl.Node, error) {
	return p.parseBinaryExpr(p.ParseAndExpr, OR)
}

// AndExpr: CmpExpr ( AND CmpExpr )*
func (p *LLParser) ParseAndExpr() (*decl.Node, error) {
	return p.parseBinaryExpr(p.ParseCmpExpr, AND)
}

// CmpExpr: AddExpr ( (EQ|NEQ|LT|LTE|GT|GTE) AddExpr )?
// Comparisons do not chain, `a < b < c` is an error.
func (p *LLParser) ParseCmpExpr() (*decl.Node, error) {
	left, err := p.ParseAddExpr()
	if err != nil {
		return nil, err
	}
	switch p.PeekToken() {
	case EQ, NEQ, LT, LTE, GT, GTE:
		opTokenVal := p.peekedTokenValue
		p.Advance()
		right, err := p.ParseAddExpr()
		if err != nil {
			return nil, err
		}
		switch p.PeekToken() {
		case EQ, NEQ, LT, LTE, GT, GTE:
			return nil, p.Errorf("comparison operators cannot be chained")
		}
		op, _ := decl.OperatorFromSymbol(opTokenVal.text)
		return decl.NewOpNode(op, left, right, opTokenVal.line), nil
	}
	return left, nil
}

// AddExpr: MulExpr ( (PLUS|MINUS) MulExpr )*
func (p *LLParser) ParseAddExpr() (*decl.Node, error) {
	return p.parseBinaryExpr(p.ParseMulExpr, PLUS, MINUS)
}

// MulExpr: PrimaryExpr ( (MUL|DIV) PrimaryExpr )*
func (p *LLParser) ParseMulExpr() (*decl.Node, error) {
	return p.parseBinaryExpr(p.ParsePrimaryExpr, MUL, DIV)
}

// PrimaryExpr: INT | REAL | "-" (INT|REAL) | ID | "(" Expr ")"
func (p *LLParser) ParsePrimaryExpr() (*decl.Node, error) {
	switch p.PeekToken() {
	case INT_LITERAL, REAL_LITERAL:
		return p.parseLiteral(false)
	case MINUS:
		p.Advance()
		if tok := p.PeekToken(); tok != INT_LITERAL && tok != REAL_LITERAL {
			return nil, p.Errorf("unary minus is only allowed before a number, found: %s", TokenString(tok))
		}
		return p.parseLiteral(true)
	case IDENTIFIER:
		val := p.peekedTokenValue
		p.Advance()
		return decl.NewIdNode(val.text, val.line), nil
	case LPAREN:
		defer p.leave()
		if err := p.enter(); err != nil {
			return nil, err
		}
		p.Advance()
		expr, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		if _, _, err = p.AdvanceIf(RPAREN); err != nil {
			return nil, err
		}
		return expr, nil
	}
	_, err := p.Expect(INT_LITERAL, REAL_LITERAL, IDENTIFIER, LPAREN)
	return nil, err
}

func (p *LLParser) parseLiteral(negate bool) (*decl.Node, error) {
	tok, val, err := p.AdvanceIf(INT_LITERAL, REAL_LITERAL)
	if err != nil {
		return nil, err
	}
	if tok == INT_LITERAL {
		v := val.intVal
		if negate {
			v = -v
		}
		return decl.NewIntConst(v, val.line), nil
	}
	v := val.realVal
	if negate {
		v = -v
	}
	return decl.NewRealConst(v, val.line), nil
}
