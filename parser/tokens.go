package parser

import "fmt"

// Token kinds produced by the Lexer.
const (
	eof = 0

	ILLEGAL = iota + 57345
	IDENTIFIER
	INT_LITERAL
	REAL_LITERAL

	// Keywords
	INTEIRO
	REAL
	SE
	ENTAO
	SENAO
	ENQUANTO
	REPITA
	ATE
	LER
	MOSTRAR

	// Operators
	PLUS
	MINUS
	MUL
	DIV
	AND
	OR
	LT
	LTE
	GT
	GTE
	EQ
	NEQ
	ASSIGN

	// Punctuation
	SEMICOLON
	COMMA
	LPAREN
	RPAREN
	LBRACE
	RBRACE
)

var keywords = map[string]int{
	"inteiro":  INTEIRO,
	"real":     REAL,
	"se":       SE,
	"entao":    ENTAO,
	"senao":    SENAO,
	"enquanto": ENQUANTO,
	"repita":   REPITA,
	"ate":      ATE,
	"ler":      LER,
	"mostrar":  MOSTRAR,
}

var tokenNames = map[int]string{
	eof:          "EOF",
	ILLEGAL:      "ILLEGAL",
	IDENTIFIER:   "IDENTIFIER",
	INT_LITERAL:  "INT_LITERAL",
	REAL_LITERAL: "REAL_LITERAL",
	INTEIRO:      "'inteiro'",
	REAL:         "'real'",
	SE:           "'se'",
	ENTAO:        "'entao'",
	SENAO:        "'senao'",
	ENQUANTO:     "'enquanto'",
	REPITA:       "'repita'",
	ATE:          "'ate'",
	LER:          "'ler'",
	MOSTRAR:      "'mostrar'",
	PLUS:         "'+'",
	MINUS:        "'-'",
	MUL:          "'*'",
	DIV:          "'/'",
	AND:          "'&&'",
	OR:           "'||'",
	LT:           "'<'",
	LTE:          "'<='",
	GT:           "'>'",
	GTE:          "'>='",
	EQ:           "'=='",
	NEQ:          "'!='",
	ASSIGN:       "'='",
	SEMICOLON:    "';'",
	COMMA:        "','",
	LPAREN:       "'('",
	RPAREN:       "')'",
	LBRACE:       "'{'",
	RBRACE:       "'}'",
}

// TokenString returns a readable name for a token kind, used in parse errors.
func TokenString(tok int) string {
	if s, ok := tokenNames[tok]; ok {
		return s
	}
	return fmt.Sprintf("Token(%d)", tok)
}

// TokenClass is the scanner class name printed by the token dump,
// e.g. PALAVRA_CHAVE or OP_MENOR_IGUAL.
func TokenClass(tok int) string {
	if _, ok := tokenClasses[tok]; ok {
		return tokenClasses[tok]
	}
	if tok >= INTEIRO && tok <= MOSTRAR {
		return "PALAVRA_CHAVE"
	}
	return "TOKEN_DESCONHECIDO"
}

var tokenClasses = map[int]string{
	eof:          "FIM_DE_ARQUIVO",
	ILLEGAL:      "ERRO_LEXICO",
	IDENTIFIER:   "IDENTIFICADOR",
	INT_LITERAL:  "NUMERO_INTEIRO",
	REAL_LITERAL: "NUMERO_REAL",
	PLUS:         "OP_SOMA",
	MINUS:        "OP_SUB",
	MUL:          "OP_MULT",
	DIV:          "OP_DIV",
	AND:          "OP_E",
	OR:           "OP_OU",
	LT:           "OP_MENOR",
	LTE:          "OP_MENOR_IGUAL",
	GT:           "OP_MAIOR",
	GTE:          "OP_MAIOR_IGUAL",
	EQ:           "OP_IGUAL",
	NEQ:          "OP_DIFERENTE",
	ASSIGN:       "OP_ATRIBUICAO",
	SEMICOLON:    "PONTO_VIRGULA",
	COMMA:        "VIRGULA",
	LPAREN:       "ABRE_PARENTESES",
	RPAREN:       "FECHA_PARENTESES",
	LBRACE:       "ABRE_CHAVES",
	RBRACE:       "FECHA_CHAVES",
}
