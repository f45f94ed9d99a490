package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper struct for expected token properties
type expectedToken struct {
	tok       int    // Token kind
	text      string // Raw token text as scanned by lexer
	startLine int
	startCol  int
}

// Helper function to run lexer tests
func runLexerTest(t *testing.T, input string, expectedTokens []expectedToken) (lexer *Lexer) {
	t.Helper()
	lexer = NewLexer(strings.NewReader(input))
	lval := &SymType{}

	for i, exp := range expectedTokens {
		tok := lexer.Lex(lval)
		line, col := lexer.Position()
		assert.Equal(t, TokenString(exp.tok), TokenString(tok), "Test %d: token kind mismatch ('%s')", i, lexer.Text())
		assert.Equal(t, exp.text, lexer.Text(), "Test %d: token text mismatch", i)
		assert.Equal(t, exp.startLine, line, "Test %d: startLine mismatch", i)
		if exp.startCol > 0 {
			assert.Equal(t, exp.startCol, col, "Test %d: startCol mismatch", i)
		}
		if tok == eof {
			require.Equal(t, len(expectedTokens)-1, i, "Lexer returned EOF prematurely at token %d", i)
			break
		}
	}

	finalTok := lexer.Lex(lval)
	assert.Equal(t, eof, finalTok, "Expected EOF after all tokens, got %s ('%s')", TokenString(finalTok), lexer.Text())
	return
}

func TestLexerDeclarations(t *testing.T) {
	runLexerTest(t, "inteiro x, y;\nreal z;", []expectedToken{
		{INTEIRO, "inteiro", 1, 1},
		{IDENTIFIER, "x", 1, 9},
		{COMMA, ",", 1, 10},
		{IDENTIFIER, "y", 1, 12},
		{SEMICOLON, ";", 1, 13},
		{REAL, "real", 2, 1},
		{IDENTIFIER, "z", 2, 6},
		{SEMICOLON, ";", 2, 7},
	})
}

func TestLexerOperators(t *testing.T) {
	runLexerTest(t, "&& || <= >= == != < > + - * / =", []expectedToken{
		{AND, "&&", 1, 1},
		{OR, "||", 1, 4},
		{LTE, "<=", 1, 7},
		{GTE, ">=", 1, 10},
		{EQ, "==", 1, 13},
		{NEQ, "!=", 1, 16},
		{LT, "<", 1, 19},
		{GT, ">", 1, 21},
		{PLUS, "+", 1, 23},
		{MINUS, "-", 1, 25},
		{MUL, "*", 1, 27},
		{DIV, "/", 1, 29},
		{ASSIGN, "=", 1, 31},
	})
}

func TestLexerNumbers(t *testing.T) {
	lexer := NewLexer(strings.NewReader("42 3.25 7."))
	lval := &SymType{}

	assert.Equal(t, INT_LITERAL, lexer.Lex(lval))
	assert.Equal(t, int64(42), lval.intVal)

	assert.Equal(t, REAL_LITERAL, lexer.Lex(lval))
	assert.Equal(t, 3.25, lval.realVal)

	// a trailing dot is not part of the number
	assert.Equal(t, INT_LITERAL, lexer.Lex(lval))
	assert.Equal(t, "7", lexer.Text())
	assert.Equal(t, ILLEGAL, lexer.Lex(lval))
	assert.Error(t, lexer.LastError())
}

func TestLexerKeywordsWithAccents(t *testing.T) {
	runLexerTest(t, "se entao senao então senão até ate repita enquanto ler mostrar", []expectedToken{
		{SE, "se", 1, 0},
		{ENTAO, "entao", 1, 0},
		{SENAO, "senao", 1, 0},
		{ENTAO, "então", 1, 0},
		{SENAO, "senão", 1, 0},
		{ATE, "até", 1, 0},
		{ATE, "ate", 1, 0},
		{REPITA, "repita", 1, 0},
		{ENQUANTO, "enquanto", 1, 0},
		{LER, "ler", 1, 0},
		{MOSTRAR, "mostrar", 1, 0},
	})
}

func TestLexerAccentedIdentifiersStayIdentifiers(t *testing.T) {
	runLexerTest(t, "preço = 1;", []expectedToken{
		{IDENTIFIER, "preço", 1, 1},
		{ASSIGN, "=", 1, 7},
		{INT_LITERAL, "1", 1, 9},
		{SEMICOLON, ";", 1, 10},
	})
}

func TestLexerComments(t *testing.T) {
	input := `// line comment
x /* block
comment */ = 1;`
	runLexerTest(t, input, []expectedToken{
		{IDENTIFIER, "x", 2, 1},
		{ASSIGN, "=", 3, 12},
		{INT_LITERAL, "1", 3, 14},
		{SEMICOLON, ";", 3, 15},
	})
}

func TestLexerUnterminatedComment(t *testing.T) {
	lexer := NewLexer(strings.NewReader("x /* never closed"))
	lval := &SymType{}
	assert.Equal(t, IDENTIFIER, lexer.Lex(lval))
	assert.Equal(t, eof, lexer.Lex(lval))
	require.Error(t, lexer.LastError())
	assert.Contains(t, lexer.LastError().Error(), "unterminated block comment")
}

func TestLexerIllegalCharacter(t *testing.T) {
	lexer := NewLexer(strings.NewReader("x @ y"))
	lval := &SymType{}
	assert.Equal(t, IDENTIFIER, lexer.Lex(lval))
	assert.Equal(t, ILLEGAL, lexer.Lex(lval))
	assert.Equal(t, "@", lexer.Text())
	assert.Equal(t, IDENTIFIER, lexer.Lex(lval))
}

func TestTokenize(t *testing.T) {
	toks := Tokenize(strings.NewReader("ler(x);\nmostrar(x + 1.5);"))
	var lines []string
	for _, tok := range toks {
		lines = append(lines, tok.String())
	}
	assert.Equal(t, []string{
		"Linha 1: PALAVRA_CHAVE [ler]",
		"Linha 1: ABRE_PARENTESES [(]",
		"Linha 1: IDENTIFICADOR [x]",
		"Linha 1: FECHA_PARENTESES [)]",
		"Linha 1: PONTO_VIRGULA [;]",
		"Linha 2: PALAVRA_CHAVE [mostrar]",
		"Linha 2: ABRE_PARENTESES [(]",
		"Linha 2: IDENTIFICADOR [x]",
		"Linha 2: OP_SOMA [+]",
		"Linha 2: NUMERO_REAL [1.5]",
		"Linha 2: FECHA_PARENTESES [)]",
		"Linha 2: PONTO_VIRGULA [;]",
		"Linha 2: FIM_DE_ARQUIVO",
	}, lines)
	assert.True(t, IsEOF(toks[len(toks)-1].Kind))
}

func TestTokenizeReportsLexicalErrors(t *testing.T) {
	toks := Tokenize(strings.NewReader("x = 1;\n  y @ 2;\n/* aberto"))
	var withErr []Token
	for _, tok := range toks {
		if tok.Err != nil {
			withErr = append(withErr, tok)
		}
	}
	require.Len(t, withErr, 2)

	assert.Equal(t, ILLEGAL, withErr[0].Kind)
	assert.Equal(t, 2, withErr[0].Line)
	assert.Equal(t, 5, withErr[0].Col)
	assert.Contains(t, withErr[0].Err.Error(), "unexpected character '@'")

	assert.True(t, IsEOF(withErr[1].Kind))
	assert.Contains(t, withErr[1].Err.Error(), "unterminated block comment")
}
