package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/panyam/pminus/decl"
	"github.com/panyam/pminus/loader"
	"github.com/panyam/pminus/parser"
	"github.com/panyam/pminus/report"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

const (
	historyFile = ".pminus_history"
	promptMain  = "pm> "
	promptCont  = "... "
	replHelp    = `
Enter P- statements; they are analyzed together with everything entered before.
  :help            Show this help
  :quit / :exit    Leave the REPL
  :reset           Forget the program entered so far
  :load <file>     Append the statements of a file to the session
  :symbols         Show the symbol table
  :tree            Show the adjusted tree
  :report          Show the full semantic report
  :source          Show the session program
`
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive session that analyzes statements as they are typed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRepl(cmd.OutOrStdout())
	},
}

func init() {
	AddCommand(replCmd)
}

// session is the program typed so far and its most recent analysis.
type session struct {
	loader *loader.Loader
	source string
	status *loader.FileStatus
}

func newSession() *session {
	return &session{loader: newLoader()}
}

// add analyzes the session program extended by src. On success the
// extension is kept and the diagnostics it introduced are returned.
func (s *session) add(src string) ([]*loader.SemanticError, error) {
	candidate := s.source
	if candidate != "" && !strings.HasSuffix(candidate, "\n") {
		candidate += "\n"
	}
	firstNew := strings.Count(candidate, "\n") + 1
	candidate += src

	status, err := s.loader.AnalyzeSource("<repl>", candidate)
	if err != nil {
		return nil, err
	}
	s.source, s.status = candidate, status

	var fresh []*loader.SemanticError
	for _, e := range status.Errors() {
		if e.Line >= firstNew {
			fresh = append(fresh, e)
		}
	}
	return fresh, nil
}

func runRepl(out io.Writer) error {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	fmt.Fprintln(out, "pminus REPL. Ctrl+D to exit, :help for commands.")
	s := newSession()
	for {
		code, ok := readStatement(ln)
		if !ok {
			fmt.Fprintln(out)
			return nil
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(code)
		if strings.HasPrefix(trimmed, ":") {
			if s.command(out, trimmed) {
				return nil
			}
			continue
		}
		s.eval(out, code)
	}
}

func (s *session) eval(out io.Writer, code string) {
	fresh, err := s.add(code)
	if err != nil {
		fmt.Fprintf(out, "%s %v\n", failMark("syntax:"), err)
		return
	}
	if len(fresh) == 0 {
		fmt.Fprintln(out, okMark("ok"))
		return
	}
	for _, e := range fresh {
		fmt.Fprintln(out, failMark(e.Error()))
	}
}

// command runs a ':' command and reports whether the REPL should exit.
func (s *session) command(out io.Writer, line string) (exit bool) {
	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case ":help":
		fmt.Fprint(out, replHelp)
	case ":quit", ":exit":
		return true
	case ":reset":
		*s = *newSession()
		fmt.Fprintln(out, "session reset.")
	case ":load":
		if len(fields) < 2 {
			fmt.Fprintln(out, "usage: :load <file>")
			return false
		}
		src, err := os.ReadFile(fields[1])
		if err != nil {
			fmt.Fprintf(out, "cannot read %s: %v\n", fields[1], err)
			return false
		}
		s.eval(out, string(src))
	case ":symbols":
		if s.status == nil {
			return false
		}
		for _, row := range report.SymbolRows(s.status.Symbols) {
			fmt.Fprintln(out, row)
		}
	case ":tree":
		if s.status != nil {
			decl.PrintTree(out, s.status.Adjusted())
		}
	case ":report":
		if s.status != nil {
			report.Render(out, s.status)
		}
	case ":source":
		fmt.Fprintln(out, s.source)
	default:
		fmt.Fprintf(out, "unknown command %s, try :help\n", fields[0])
	}
	return false
}

// readStatement reads lines until they parse on their own or fail for a
// reason more input cannot fix. Commands are always a single line.
func readStatement(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl+C drops the pending input
			return "", true
		}
		if b.Len() == 0 && strings.HasPrefix(strings.TrimSpace(line), ":") {
			return line, true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if _, perr := parser.ParseString(src); perr != nil && incompleteInput(perr) {
			continue
		}
		return src, true
	}
}
