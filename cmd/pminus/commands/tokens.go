package commands

import (
	"fmt"

	"github.com/panyam/pminus/parser"
	"github.com/spf13/cobra"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <file|->",
	Short: "Lists the tokens of a P- program",
	Long: `The tokens command runs only the scanner and prints one token per line as
"Linha <n>: <CLASS> [<lexeme>]". Lexical errors are listed as ERRO_LEXICO
tokens, their messages go to stderr, and they make the command exit with
status 1.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := openSource(args[0])
		if err != nil {
			return err
		}
		defer in.Close()

		out := cmd.OutOrStdout()
		toks := parser.Tokenize(in)
		illegal := 0
		for _, tok := range toks {
			if tok.Err == nil {
				fmt.Fprintln(out, tok)
				continue
			}
			illegal++
			if tok.Kind == parser.ILLEGAL {
				fmt.Fprintln(out, failMark(tok.String()))
			} else {
				fmt.Fprintln(out, tok)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %s:%d:%d: %v\n", failMark("erro lexico"), args[0], tok.Line, tok.Col, tok.Err)
		}
		if illegal > 0 {
			return &failure{failed: illegal, total: len(toks), what: "tokens"}
		}
		return nil
	},
}

func init() {
	AddCommand(tokensCmd)
}
