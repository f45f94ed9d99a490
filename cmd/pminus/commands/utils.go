package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/panyam/pminus/loader"
	"github.com/panyam/pminus/parser"
)

// SourceExt is the extension directories are scanned for.
const SourceExt = ".pm"

var (
	okMark   = color.New(color.FgGreen).SprintFunc()
	failMark = color.New(color.FgRed, color.Bold).SprintFunc()
	dim      = color.New(color.Faint).SprintFunc()
)

func newLoader() *loader.Loader {
	return loader.NewLoader(nil, nil, cfg.Options())
}

// sources expands directories in args into the P- files inside them.
func sources(l *loader.Loader, args []string) ([]string, error) {
	files := l.ExpandSources(args, SourceExt)
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s files found in %s", SourceExt, strings.Join(args, ", "))
	}
	return files, nil
}

func openSource(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open '%s': %w", path, err)
	}
	return f, nil
}

// incompleteInput reports whether err came from running out of input, so
// more lines could still make the program valid.
func incompleteInput(err error) bool {
	var serr *parser.SyntaxError
	if !errors.As(err, &serr) {
		return false
	}
	return serr.Near == "" || strings.Contains(serr.Msg, "unterminated")
}

// failure is returned by commands that already printed their diagnostics;
// Execute still needs a non-nil error to exit with status 1.
type failure struct {
	failed, total int
	what          string
}

func (f *failure) Error() string {
	return fmt.Sprintf("%d of %d %s failed", f.failed, f.total, f.what)
}
