package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/panyam/pminus/decl"
)

// Parse reads a complete P- program from input.
func Parse(input io.Reader) (*decl.Node, error) {
	return NewLLParser(NewLexer(input)).Parse()
}

// ParseString is Parse over an in-memory program.
func ParseString(src string) (*decl.Node, error) {
	return Parse(strings.NewReader(src))
}

// SourceParser adapts Parse to loaders that name their inputs.
type SourceParser struct{}

func (SourceParser) Parse(input io.Reader, sourceName string) (*decl.Node, error) {
	root, err := Parse(input)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sourceName, err)
	}
	return root, nil
}

// Token is a single scanned token, as reported by Tokenize.
type Token struct {
	Kind int
	Text string
	Line int
	Col  int

	// Set on the token where the lexer reported a problem
	Err error
}

func (t Token) String() string {
	if t.Kind == eof {
		return fmt.Sprintf("Linha %d: %s", t.Line, TokenClass(t.Kind))
	}
	return fmt.Sprintf("Linha %d: %s [%s]", t.Line, TokenClass(t.Kind), t.Text)
}

// Tokenize scans input to the end. Lexical errors show up as ILLEGAL tokens
// carrying the error and scanning carries on after them; the final token is
// always EOF.
func Tokenize(input io.Reader) []Token {
	lexer := NewLexer(input)
	var out []Token
	var reported error
	for {
		lval := &SymType{}
		tok := lexer.Lex(lval)
		line, col := lexer.Position()
		t := Token{Kind: tok, Text: lval.text, Line: line, Col: col}
		if err := lexer.LastError(); err != nil && err != reported {
			t.Err, reported = err, err
		}
		out = append(out, t)
		if tok == eof {
			return out
		}
	}
}

// IsEOF reports whether tok is the end-of-input token.
func IsEOF(tok int) bool { return tok == eof }
