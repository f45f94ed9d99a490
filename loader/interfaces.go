package loader

import (
	"io"
	"log/slog"

	"github.com/panyam/pminus/decl"
)

// Parser turns program text into the statement list the analyzer works on.
type Parser interface {
	// Parse reads from the input reader and returns the first statement.
	// sourceName is used for context in error messages (e.g., file path).
	Parse(input io.Reader, sourceName string) (*decl.Node, error)
}

// Options tune an analysis run.
type Options struct {
	// Diagnostics kept before further ones are dropped. <= 0 => DefaultMaxErrors.
	MaxErrors int

	// Variables a program may declare. <= 0 => DefaultMaxSymbols.
	MaxSymbols int

	// Defaults to slog.Default()
	Logger *slog.Logger
}
