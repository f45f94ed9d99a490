package parser

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"unicode"
)

// SymType carries the semantic value of the last token.
type SymType struct {
	text    string
	line    int
	intVal  int64
	realVal float64
}

// Lexer structure
type Lexer struct {
	lookaheadRunes  []rune
	lookaheadWidths []int
	reader          *bufio.Reader
	buf             bytes.Buffer // Temporary buffer for scanned text
	lastError       error

	// Position tracking for the current token
	tokenStartLine int
	tokenStartCol  int
	tokenText      string

	// Current line and column (rune-based) in the input
	line int
	col  int
}

// NewLexer creates a new lexer instance
func NewLexer(r io.Reader) *Lexer {
	return &Lexer{
		reader: bufio.NewReader(r),
		line:   1,
		col:    1,
	}
}

// Error records an error at the current token.
func (l *Lexer) Error(s string) {
	l.lastError = &SyntaxError{Line: l.tokenStartLine, Col: l.tokenStartCol, Near: l.tokenText, Msg: s}
}

// LastError returns the most recent lexing or parsing error.
func (l *Lexer) LastError() error { return l.lastError }

// Text returns the raw text of the most recently lexed token.
func (l *Lexer) Text() string {
	return l.tokenText
}

// Position returns the line and column where the current token started.
func (l *Lexer) Position() (line, col int) {
	return l.tokenStartLine, l.tokenStartCol
}

// --- Rune Reading Helpers (with line/col tracking) ---
func (l *Lexer) read() (r rune, width int) {
	if l.peek() == eof {
		return eof, 0
	}
	r, width = l.lookaheadRunes[0], l.lookaheadWidths[0]
	l.lookaheadRunes, l.lookaheadWidths = l.lookaheadRunes[1:], l.lookaheadWidths[1:]
	l.updatePosition(r)
	return r, width
}

func (l *Lexer) updatePosition(r rune) {
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
}

func (l *Lexer) peekN(nthchar int) rune {
	l.ensureLookAhead(nthchar + 1)
	if nthchar >= len(l.lookaheadRunes) {
		return eof
	}
	return l.lookaheadRunes[nthchar]
}

func (l *Lexer) peek() rune {
	return l.peekN(0)
}

func (l *Lexer) ensureLookAhead(numchars int) int {
	for len(l.lookaheadRunes) < numchars {
		r, width, err := l.reader.ReadRune()
		if err != nil {
			break
		}
		l.lookaheadRunes = append(l.lookaheadRunes, r)
		l.lookaheadWidths = append(l.lookaheadWidths, width)
	}
	return len(l.lookaheadRunes)
}

func (l *Lexer) hasPrefix(prefix string) bool {
	runes := []rune(prefix)
	if l.ensureLookAhead(len(runes)) < len(runes) {
		return false
	}
	for i, r := range runes {
		if l.lookaheadRunes[i] != r {
			return false
		}
	}
	return true
}

func (l *Lexer) readTill(stop rune) (foundeof bool) {
	for {
		r := l.peek()
		if r == eof {
			return true
		}
		l.read()
		if r == stop {
			return false
		}
	}
}

// --- Scanning Functions ---
func (l *Lexer) skipWhitespace() bool {
	for {
		firstChar := l.peek()
		if firstChar == eof {
			return true
		}
		if unicode.IsSpace(firstChar) {
			l.read()
		} else if l.hasPrefix("//") {
			l.readTill('\n')
		} else if l.hasPrefix("/*") {
			l.tokenStartLine, l.tokenStartCol, l.tokenText = l.line, l.col, "/*"
			l.read()
			l.read()
			for {
				if l.peek() == eof {
					l.Error("unterminated block comment")
					return true
				}
				if l.hasPrefix("*/") {
					l.read()
					l.read()
					break
				}
				l.read()
			}
		} else {
			return false
		}
	}
}

func isIdentStart(r rune) bool { return unicode.IsLetter(r) || r == '_' }

func isIdentPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.Is(unicode.Mn, r)
}

func (l *Lexer) scanIdentifierOrKeyword() (tok int, text string) {
	l.buf.Reset()
	for r := l.peek(); r != eof && isIdentPart(r); r = l.peek() {
		l.read()
		l.buf.WriteRune(r)
	}
	text = l.buf.String()
	return lookupKeyword(text), text
}

func (l *Lexer) scanNumber() (tok int, text string) {
	l.buf.Reset()
	hasDecimal := false
	for r := l.peek(); r != eof; r = l.peek() {
		if unicode.IsDigit(r) {
			l.read()
			l.buf.WriteRune(r)
		} else if r == '.' && !hasDecimal {
			if !unicode.IsDigit(l.peekN(1)) {
				break
			}
			l.read()
			hasDecimal = true
			l.buf.WriteRune(r)
		} else {
			break
		}
	}
	text = l.buf.String()
	if hasDecimal {
		return REAL_LITERAL, text
	}
	return INT_LITERAL, text
}

var singleCharTokens = map[rune]int{
	';': SEMICOLON,
	',': COMMA,
	'(': LPAREN,
	')': RPAREN,
	'{': LBRACE,
	'}': RBRACE,
	'+': PLUS,
	'-': MINUS,
	'*': MUL,
	'/': DIV,
	'<': LT,
	'>': GT,
	'=': ASSIGN,
}

var doubleCharTokens = map[string]int{
	"&&": AND,
	"||": OR,
	"<=": LTE,
	">=": GTE,
	"==": EQ,
	"!=": NEQ,
}

// Lex returns the next token and fills lval with its value.
func (l *Lexer) Lex(lval *SymType) int {
	if l.skipWhitespace() {
		l.tokenStartLine, l.tokenStartCol, l.tokenText = l.line, l.col, ""
		lval.text, lval.line = "", l.line
		return eof
	}

	l.tokenStartLine = l.line
	l.tokenStartCol = l.col
	l.tokenText = ""
	lval.line = l.line

	r := l.peek()
	if isIdentStart(r) {
		tok, text := l.scanIdentifierOrKeyword()
		l.tokenText = text
		lval.text = text
		return tok
	}

	if unicode.IsDigit(r) {
		tok, text := l.scanNumber()
		l.tokenText = text
		lval.text = text
		var err error
		if tok == INT_LITERAL {
			lval.intVal, err = strconv.ParseInt(text, 10, 64)
		} else {
			lval.realVal, err = strconv.ParseFloat(text, 64)
		}
		if err != nil {
			l.Error(fmt.Sprintf("invalid number: %s", text))
			return ILLEGAL
		}
		return tok
	}

	for text, tok := range doubleCharTokens {
		if l.hasPrefix(text) {
			l.read()
			l.read()
			l.tokenText = text
			lval.text = text
			return tok
		}
	}

	l.read()
	l.tokenText = string(r)
	lval.text = l.tokenText
	if tok, ok := singleCharTokens[r]; ok {
		return tok
	}
	l.Error(fmt.Sprintf("unexpected character %q", r))
	return ILLEGAL
}

// SyntaxError is a lexing or parsing failure at a source position.
type SyntaxError struct {
	Line int
	Col  int
	Near string
	Msg  string
}

func (e *SyntaxError) Error() string {
	if e.Near == "" {
		return fmt.Sprintf("Error at Line %d, Col %d: %s", e.Line, e.Col, e.Msg)
	}
	return fmt.Sprintf("Error at Line %d, Col %d near '%s': %s", e.Line, e.Col, e.Near, e.Msg)
}
