package commands

import (
	"fmt"
	"os"

	"github.com/panyam/pminus/casebook"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <cases.md>...",
	Short: "Runs the analyzer cases written in Markdown documents",
	Long: `The verify command extracts every "Case: <name>" section from the given
Markdown files, analyzes its pminus fence and compares the outcome with the
errors, tree and symbols fences of the case.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		l := newLoader()
		total, failed := 0, 0
		for _, path := range args {
			md, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("cannot open '%s': %w", path, err)
			}
			cases, err := casebook.Extract(string(md))
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			for _, c := range cases {
				total++
				mismatches, err := casebook.Run(l, c)
				if err != nil {
					mismatches = []string{err.Error()}
				}
				if len(mismatches) == 0 {
					fmt.Fprintf(out, "%s %s\n", okMark("PASS"), c.Name)
					continue
				}
				failed++
				fmt.Fprintf(out, "%s %s %s\n", failMark("FAIL"), c.Name, dim(fmt.Sprintf("(%s:%d)", path, c.Line)))
				for _, m := range mismatches {
					fmt.Fprintf(out, "    %s\n", m)
				}
			}
		}
		if failed > 0 {
			return &failure{failed: failed, total: total, what: "cases"}
		}
		fmt.Fprintf(out, "%d cases passed\n", total)
		return nil
	},
}

func init() {
	AddCommand(verifyCmd)
}
