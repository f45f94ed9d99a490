package parser

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldAccents strips combining marks so "então" and "entao" read the same.
// Only keyword matching uses the folded form; identifiers keep their text.
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// lookupKeyword returns the keyword token for text, or IDENTIFIER.
func lookupKeyword(text string) int {
	if tok, ok := keywords[text]; ok {
		return tok
	}
	if tok, ok := keywords[foldAccents(text)]; ok {
		return tok
	}
	return IDENTIFIER
}
