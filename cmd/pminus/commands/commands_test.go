package commands

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/panyam/pminus/config"
	"github.com/panyam/pminus/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func writeProgram(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))
	return path
}

func TestRunCheckWritesReport(t *testing.T) {
	cfg = config.Default()
	dir := t.TempDir()
	path := writeProgram(t, dir, "ok.pm", "inteiro x;\nreal y;\nx = 5;\ny = x + 1.5;\n")

	var out, errOut strings.Builder
	require.NoError(t, runCheck(&out, &errOut, []string{path}))
	assert.Contains(t, out.String(), "=== RELATORIO DE ANALISE SEMANTICA ===")
	assert.Contains(t, errOut.String(), "OK "+path)

	saved, err := os.ReadFile(path + "_semantic_report.txt")
	require.NoError(t, err)
	assert.Equal(t, out.String(), string(saved))
}

func TestRunCheckFailures(t *testing.T) {
	cfg = config.Default()
	dir := t.TempDir()
	writeProgram(t, dir, "good.pm", "inteiro a;\nler(a);\n")
	writeProgram(t, dir, "bad.pm", "mostrar(b);\n")
	writeProgram(t, dir, "broken.pm", "se {\n")
	writeProgram(t, dir, "notes.txt", "not a program")

	var out, errOut strings.Builder
	err := runCheck(&out, &errOut, []string{dir})
	var f *failure
	require.True(t, errors.As(err, &f))
	assert.Equal(t, 2, f.failed)
	assert.Equal(t, 3, f.total)
	assert.Contains(t, errOut.String(), "bad.pm: 1 semantic error(s)")
	assert.Contains(t, errOut.String(), "broken.pm")

	// broken programs get no report, the others do
	_, statErr := os.Stat(filepath.Join(dir, "broken.pm_semantic_report.txt"))
	assert.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(filepath.Join(dir, "bad.pm_semantic_report.txt"))
	assert.NoError(t, statErr)
}

func TestRunCheckNoSources(t *testing.T) {
	cfg = config.Default()
	var out, errOut strings.Builder
	err := runCheck(&out, &errOut, []string{t.TempDir()})
	assert.ErrorContains(t, err, "no .pm files found")
}

func TestSessionKeepsProgram(t *testing.T) {
	cfg = config.Default()
	s := newSession()

	fresh, err := s.add("inteiro x;")
	require.NoError(t, err)
	assert.Empty(t, fresh)

	fresh, err = s.add("mostrar(x);")
	require.NoError(t, err)
	require.Len(t, fresh, 1)
	assert.Equal(t, "Linha 2: Variavel 'x' usada sem ser inicializada", fresh[0].Error())

	// older diagnostics are not repeated
	fresh, err = s.add("ler(x);\nmostrar(x);")
	require.NoError(t, err)
	assert.Empty(t, fresh)
	assert.Len(t, s.status.Errors(), 1)

	_, err = s.add("x = ;")
	assert.Error(t, err)
	assert.Equal(t, "inteiro x;\nmostrar(x);\nler(x);\nmostrar(x);", s.source)
}

func TestIncompleteInput(t *testing.T) {
	_, err := parser.ParseString("se 1 < 2 entao {")
	assert.True(t, incompleteInput(err))
	_, err = parser.ParseString("/* open")
	assert.True(t, incompleteInput(err))
	_, err = parser.ParseString("x = ) ;")
	assert.False(t, incompleteInput(err))
	assert.False(t, incompleteInput(errors.New("other")))
}

func TestNegativeLimitFlagsRejected(t *testing.T) {
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.PersistentFlags().Set("max-errors", "0")
		rootCmd.PersistentFlags().Set("max-symbols", "0")
		cfg = config.Default()
	}()
	for flag, want := range map[string]string{"--max-errors=-1": "max errors", "--max-symbols=-7": "max symbols"} {
		rootCmd.PersistentFlags().Set("max-errors", "0")
		rootCmd.PersistentFlags().Set("max-symbols", "0")
		var out strings.Builder
		rootCmd.SetOut(&out)
		rootCmd.SetErr(&out)
		rootCmd.SetArgs([]string{flag, "version"})
		err := rootCmd.Execute()
		assert.ErrorContains(t, err, want, flag)
	}
}

func TestRunCheckProgramWithoutStatements(t *testing.T) {
	cfg = config.Default()
	dir := t.TempDir()
	path := writeProgram(t, dir, "vazio.pm", "// so comentarios\n")

	var out, errOut strings.Builder
	err := runCheck(&out, &errOut, []string{path})
	var f *failure
	require.True(t, errors.As(err, &f))
	assert.Equal(t, 1, f.failed)
	assert.Contains(t, errOut.String(), "nao foi possivel construir a arvore sintatica")
	assert.Empty(t, out.String())

	_, statErr := os.Stat(path + "_semantic_report.txt")
	assert.True(t, os.IsNotExist(statErr))
}
