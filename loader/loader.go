package loader

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panyam/pminus/decl"
	"github.com/panyam/pminus/parser"
)

// ErrNoTree is returned for a program without a single statement.
var ErrNoTree = errors.New("nao foi possivel construir a arvore sintatica")

// FileStatus is everything known about one program: its parsed tree and,
// once validated, the adjusted tree, symbols and diagnostics.
type FileStatus struct {
	FullPath string

	// Parsed statement list. Validate rewrites it in place.
	Root *decl.Node

	// Snapshot of Root taken just before the rewrite
	Original *decl.Node

	Symbols []*Symbol
	ErrorCollector

	LastParsed    time.Time
	LastValidated time.Time
}

// Adjusted is the tree after conversions were inserted.
func (fs *FileStatus) Adjusted() *decl.Node { return fs.Root }

// IsValidated reports whether Validate has run on this status.
func (fs *FileStatus) IsValidated() bool { return !fs.LastValidated.IsZero() }

// Loader reads, parses and validates P- programs, keeping the results per path.
type Loader struct {
	parser Parser
	fs     FileSystem
	opts   Options

	mutex       sync.Mutex
	loadedFiles map[string]*FileStatus
}

// NewLoader creates a loader. A nil parser uses the P- parser and a nil
// fs reads relative to the working directory.
func NewLoader(p Parser, fs FileSystem, opts Options) *Loader {
	if p == nil {
		p = parser.SourceParser{}
	}
	if fs == nil {
		fs = NewDiskFS(".")
	}
	return &Loader{
		parser:      p,
		fs:          fs,
		opts:        opts,
		loadedFiles: make(map[string]*FileStatus),
	}
}

// FileSystem is where the loader reads programs from.
func (l *Loader) FileSystem() FileSystem { return l.fs }

// LoadFile reads and parses path. A previously loaded path is returned
// from the cache without being read again.
func (l *Loader) LoadFile(path string) (*FileStatus, error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if fs, ok := l.loadedFiles[path]; ok {
		return fs, nil
	}
	contents, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open '%s': %w", path, err)
	}
	fs, err := l.parse(path, contents)
	if err != nil {
		return nil, err
	}
	l.loadedFiles[path] = fs
	return fs, nil
}

func (l *Loader) parse(path string, contents []byte) (*FileStatus, error) {
	root, err := l.parser.Parse(bytes.NewReader(contents), path)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrNoTree)
	}
	return &FileStatus{FullPath: path, Root: root, LastParsed: time.Now()}, nil
}

// Validate runs semantic analysis on a loaded file. It is a no-op on a file
// that was already validated.
func (l *Loader) Validate(fs *FileStatus) bool {
	if fs.IsValidated() {
		return !fs.HasErrors()
	}
	fs.Original = decl.Clone(fs.Root)
	inf := NewInference(fs.FullPath, fs.Root, l.opts)
	inf.Eval()
	fs.Symbols = inf.Symbols.Symbols()
	fs.ErrorCollector = inf.ErrorCollector
	fs.LastValidated = time.Now()
	return !fs.HasErrors()
}

// LoadAndValidate is LoadFile followed by Validate.
func (l *Loader) LoadAndValidate(path string) (*FileStatus, error) {
	fs, err := l.LoadFile(path)
	if err != nil {
		return nil, err
	}
	l.Validate(fs)
	return fs, nil
}

// AnalyzeSource parses and validates a program held in memory. The result
// is not cached.
func (l *Loader) AnalyzeSource(name, src string) (*FileStatus, error) {
	fs, err := l.parse(name, []byte(src))
	if err != nil {
		return nil, err
	}
	l.Validate(fs)
	return fs, nil
}

// ExpandSources replaces every directory in paths with the files in it that
// end in one of the given extensions.
func (l *Loader) ExpandSources(paths []string, exts ...string) (out []string) {
	for _, p := range paths {
		files, err := l.fs.ListFiles(p)
		if err != nil {
			// not a directory, take it as is
			out = append(out, p)
			continue
		}
		for _, f := range files {
			for _, ext := range exts {
				if strings.HasSuffix(f, ext) {
					out = append(out, f)
					break
				}
			}
		}
	}
	return out
}
