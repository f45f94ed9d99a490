package loader

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/panyam/pminus/decl"
	"github.com/panyam/pminus/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingParser records how often it was asked to parse.
type countingParser struct {
	calls int
}

func (c *countingParser) Parse(input io.Reader, sourceName string) (*decl.Node, error) {
	c.calls++
	return parser.SourceParser{}.Parse(input, sourceName)
}

func newMemLoader(files map[string]string) (*Loader, *MemFS, *countingParser) {
	fs := NewMemFS(files)
	p := &countingParser{}
	return NewLoader(p, fs, Options{}), fs, p
}

func TestLoaderValidatesFile(t *testing.T) {
	l, _, _ := newMemLoader(map[string]string{
		"progs/ok.pm": "inteiro x;\nreal y;\nx = 5;\ny = x + 1.5;\n",
	})
	fs, err := l.LoadAndValidate("progs/ok.pm")
	require.NoError(t, err)
	assert.False(t, fs.HasErrors())
	assert.True(t, fs.IsValidated())
	require.Len(t, fs.Symbols, 2)
	assert.Equal(t, "y", fs.Symbols[1].Name)

	// the snapshot is what the parser produced, the root carries the rewrite
	assert.Equal(t, 0, countConversions(fs.Original))
	assert.Equal(t, 1, countConversions(fs.Adjusted()))
}

func TestLoaderCachesParsedFiles(t *testing.T) {
	l, _, p := newMemLoader(map[string]string{"a.pm": "inteiro a;\na = 1;"})
	first, err := l.LoadFile("a.pm")
	require.NoError(t, err)
	second, err := l.LoadFile("a.pm")
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, p.calls)

	// validation reuses the cached tree too
	third, err := l.LoadAndValidate("a.pm")
	require.NoError(t, err)
	assert.Same(t, first, third)
	assert.Equal(t, 1, p.calls)
}

func TestValidateRunsOnce(t *testing.T) {
	l, _, _ := newMemLoader(map[string]string{"bad.pm": "x = 1;"})
	fs, err := l.LoadAndValidate("bad.pm")
	require.NoError(t, err)
	require.Len(t, fs.Errors(), 1)

	assert.False(t, l.Validate(fs))
	assert.Len(t, fs.Errors(), 1)
}

func TestLoaderMissingFile(t *testing.T) {
	l, _, _ := newMemLoader(nil)
	_, err := l.LoadFile("nope.pm")
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), "cannot open 'nope.pm'")
}

func TestLoaderParseError(t *testing.T) {
	l, _, _ := newMemLoader(map[string]string{"broken.pm": "inteiro ;"})
	_, err := l.LoadFile("broken.pm")
	require.Error(t, err)
	var serr *parser.SyntaxError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 1, serr.Line)
	assert.True(t, strings.HasPrefix(err.Error(), "broken.pm: "))
}

func TestLoaderOptionsReachInference(t *testing.T) {
	fs := NewMemFS(map[string]string{"many.pm": "a = 1;\nb = 1;\nc = 1;"})
	l := NewLoader(nil, fs, Options{MaxErrors: 1})
	status, err := l.LoadAndValidate("many.pm")
	require.NoError(t, err)
	assert.Len(t, status.Errors(), 1)
	assert.Equal(t, 2, status.Dropped())
}

func TestAnalyzeSource(t *testing.T) {
	l := NewLoader(nil, NewMemFS(nil), Options{})
	fs, err := l.AnalyzeSource("<repl>", "real r;\nr = 2;")
	require.NoError(t, err)
	assert.False(t, fs.HasErrors())
	assert.Equal(t, 1, countConversions(fs.Adjusted()))

	_, err = l.AnalyzeSource("<repl>", "r = ;")
	assert.Error(t, err)
}

func TestLoadFilesAndValidate(t *testing.T) {
	l, _, _ := newMemLoader(map[string]string{
		"good.pm": "inteiro a;\nler(a);",
		"bad.pm":  "mostrar(b);",
	})
	type outcome struct {
		path   string
		errors int
		failed bool
	}
	var seen []outcome
	visit := func(path string, fs *FileStatus, err error) error {
		if err != nil {
			seen = append(seen, outcome{path: path, failed: true})
			return nil
		}
		seen = append(seen, outcome{path: path, errors: len(fs.Errors())})
		return nil
	}

	failed, err := l.LoadFilesAndValidate(visit, "good.pm", "bad.pm", "missing.pm")
	require.NoError(t, err)
	assert.Equal(t, 2, failed)
	assert.Equal(t, []outcome{
		{path: "good.pm"},
		{path: "bad.pm", errors: 1},
		{path: "missing.pm", failed: true},
	}, seen)

	failed, err = l.LoadFilesAndValidate(nil, "good.pm")
	require.NoError(t, err)
	assert.Zero(t, failed)
}

func TestLoadFilesAndValidateStopsOnVisitError(t *testing.T) {
	l, _, _ := newMemLoader(map[string]string{"a.pm": "inteiro a;", "b.pm": "inteiro b;"})
	stop := errors.New("disk full")
	var visited []string
	failed, err := l.LoadFilesAndValidate(func(path string, _ *FileStatus, _ error) error {
		visited = append(visited, path)
		return stop
	}, "a.pm", "b.pm")
	assert.ErrorIs(t, err, stop)
	assert.Zero(t, failed)
	assert.Equal(t, []string{"a.pm"}, visited)
}

func TestExpandSourcesMemory(t *testing.T) {
	l, _, _ := newMemLoader(map[string]string{
		"progs/a.pm":      "",
		"progs/b.pm":      "",
		"progs/notes.txt": "",
		"progs/sub/c.pm":  "",
		"single.pm":       "",
	})
	got := l.ExpandSources([]string{"progs", "single.pm"}, ".pm")
	assert.Equal(t, []string{"progs/a.pm", "progs/b.pm", "single.pm"}, got)
}

func TestDiskFS(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "progs"), 0755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "progs", "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "progs", ".hidden.pm"), nil, 0644))
	fs := NewDiskFS(dir)

	require.NoError(t, fs.WriteFile("progs/prog.pm", []byte("inteiro x;")))
	data, err := fs.ReadFile(filepath.Join(dir, "progs", "prog.pm"))
	require.NoError(t, err)
	assert.Equal(t, "inteiro x;", string(data))

	// rewriting replaces the file and leaves no temp file behind
	require.NoError(t, fs.WriteFile("progs/prog.pm", []byte("real y;")))
	data, err = fs.ReadFile("progs/prog.pm")
	require.NoError(t, err)
	assert.Equal(t, "real y;", string(data))
	info, err := os.Stat(filepath.Join(dir, "progs", "prog.pm"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	files, err := fs.ListFiles("progs")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("progs", "prog.pm")}, files)

	entries, err := os.ReadDir(filepath.Join(dir, "progs"))
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	l := NewLoader(nil, fs, Options{})
	assert.Equal(t, []string{filepath.Join("progs", "prog.pm")}, l.ExpandSources([]string{"progs"}, ".pm"))
}

func TestDiskFSWriteNeedsDirectory(t *testing.T) {
	dir := t.TempDir()
	fs := NewDiskFS(dir)
	err := fs.WriteFile("nested/report.txt", []byte("x"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, statErr := os.Stat(filepath.Join(dir, "nested"))
	assert.True(t, os.IsNotExist(statErr))

	_, err = fs.ListFiles("nested")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMemFS(t *testing.T) {
	fs := NewMemFS(map[string]string{
		"progs/a.pm":     "inteiro a;",
		"./progs/b.pm":   "real b;",
		"progs/sub/c.pm": "",
	})

	data, err := fs.ReadFile("progs/b.pm")
	require.NoError(t, err)
	assert.Equal(t, "real b;", string(data))
	_, err = fs.ReadFile("progs/z.pm")
	assert.ErrorIs(t, err, os.ErrNotExist)

	// reports land next to an existing program, never in a new directory
	require.NoError(t, fs.WriteFile("progs/a.pm_semantic_report.txt", []byte("r")))
	require.NoError(t, fs.WriteFile("top.txt", []byte("r")))
	assert.ErrorIs(t, fs.WriteFile("other/a.txt", []byte("r")), os.ErrNotExist)

	files, err := fs.ListFiles("progs/")
	require.NoError(t, err)
	assert.Equal(t, []string{"progs/a.pm", "progs/a.pm_semantic_report.txt", "progs/b.pm"}, files)

	_, err = fs.ListFiles("progs/a.pm")
	assert.ErrorContains(t, err, "not a directory")
	_, err = fs.ListFiles("other")
	assert.ErrorIs(t, err, os.ErrNotExist)

	// callers get their own copy
	data[0] = 'X'
	again, _ := fs.ReadFile("progs/b.pm")
	assert.Equal(t, "real b;", string(again))
}

func TestLoaderRejectsProgramWithoutStatements(t *testing.T) {
	l, _, _ := newMemLoader(map[string]string{
		"blank.pm":    "",
		"comments.pm": "// nada aqui\n/* nem aqui */\n",
	})
	for _, name := range []string{"blank.pm", "comments.pm"} {
		_, err := l.LoadAndValidate(name)
		assert.ErrorIs(t, err, ErrNoTree, name)
		assert.ErrorContains(t, err, name+": nao foi possivel construir a arvore sintatica")
	}

	_, err := l.AnalyzeSource("<repl>", "  \n")
	assert.ErrorIs(t, err, ErrNoTree)
}
