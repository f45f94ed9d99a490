// Package report renders the result of a semantic analysis run as the fixed
// four section text report and saves it next to the analyzed program.
package report

import (
	"bytes"
	"fmt"
	"io"

	gfn "github.com/panyam/goutils/fn"
	"github.com/panyam/pminus/decl"
	"github.com/panyam/pminus/loader"
)

// DefaultSuffix is appended to the input path to name the report file.
const DefaultSuffix = "_semantic_report.txt"

const rule = "----------------------------------------\n"

// Render writes the report for a validated file.
func Render(w io.Writer, fs *loader.FileStatus) error {
	var buf bytes.Buffer
	buf.WriteString("=== RELATORIO DE ANALISE SEMANTICA ===\n\n")

	buf.WriteString("1. ARVORE SINTATICA ORIGINAL:\n")
	buf.WriteString(rule)
	decl.PrintTree(&buf, fs.Original)

	buf.WriteString("\n2. ARVORE APOS AJUSTES SEMANTICOS:\n")
	buf.WriteString(rule)
	decl.PrintTree(&buf, fs.Adjusted())

	buf.WriteString("\n3. TABELA DE SIMBOLOS:\n")
	buf.WriteString(rule)
	fmt.Fprintf(&buf, "%-15s %-10s %-10s %-10s %s\n", "Nome", "Tipo", "Endereco", "Tamanho", "Inicializada")
	buf.WriteString(rule)
	for _, row := range SymbolRows(fs.Symbols) {
		buf.WriteString(row)
		buf.WriteByte('\n')
	}

	buf.WriteString("\n4. ERROS SEMANTICOS:\n")
	buf.WriteString(rule)
	if !fs.HasErrors() {
		buf.WriteString("Nenhum erro semantico encontrado.\n")
	}
	for _, err := range fs.Errors() {
		buf.WriteString(err.Error())
		buf.WriteByte('\n')
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// SymbolRows formats one fixed width line per symbol, in declaration order.
func SymbolRows(symbols []*loader.Symbol) []string {
	return gfn.Map(symbols, func(s *loader.Symbol) string {
		initialized := "nao"
		if s.Initialized {
			initialized = "sim"
		}
		return fmt.Sprintf("%-15s %-10s %-10d %-10d %s", s.Name, s.Type, s.Offset, s.Size, initialized)
	})
}

// String is Render into a string.
func String(fs *loader.FileStatus) string {
	var buf bytes.Buffer
	Render(&buf, fs)
	return buf.String()
}

// PathFor names the report file for an input path.
func PathFor(inputPath, suffix string) string {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	return inputPath + suffix
}

// Write renders the report for fs to out and saves the same bytes to
// PathFor(fs.FullPath, suffix) in files. Returns the path written.
func Write(fs *loader.FileStatus, out io.Writer, files loader.FileSystem, suffix string) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, fs); err != nil {
		return "", err
	}
	path := PathFor(fs.FullPath, suffix)
	if err := files.WriteFile(path, buf.Bytes()); err != nil {
		return "", fmt.Errorf("cannot write report '%s': %w", path, err)
	}
	if out != nil {
		if _, err := out.Write(buf.Bytes()); err != nil {
			return path, err
		}
	}
	return path, nil
}
