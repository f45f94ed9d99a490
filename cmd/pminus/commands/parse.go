package commands

import (
	"fmt"

	"github.com/panyam/pminus/decl"
	"github.com/panyam/pminus/loader"
	"github.com/panyam/pminus/parser"
	"github.com/spf13/cobra"
)

var parseAdjusted bool

var parseCmd = &cobra.Command{
	Use:   "parse <file|->",
	Short: "Prints the syntax tree of a P- program",
	Long: `The parse command prints the syntax tree, one node per line, in the same
format as the semantic report. With --adjusted the program is analyzed first
and the tree is printed with its conversions; diagnostics go to stderr.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := openSource(args[0])
		if err != nil {
			return err
		}
		defer in.Close()

		root, err := parser.SourceParser{}.Parse(in, args[0])
		if err != nil {
			return err
		}
		if root == nil {
			return fmt.Errorf("%s: %w", args[0], loader.ErrNoTree)
		}
		if parseAdjusted {
			inf := loader.NewInference(args[0], root, cfg.Options())
			if !inf.Eval() {
				inf.PrintErrors(cmd.ErrOrStderr())
			}
		}
		return decl.PrintTree(cmd.OutOrStdout(), root)
	},
}

func init() {
	parseCmd.Flags().BoolVarP(&parseAdjusted, "adjusted", "a", false, "Analyze the program and print the adjusted tree")
	AddCommand(parseCmd)
}
