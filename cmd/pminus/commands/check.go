package commands

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/panyam/pminus/loader"
	"github.com/panyam/pminus/report"
	"github.com/spf13/cobra"
)

var (
	checkNoSave bool
	checkQuiet  bool
)

var checkCmd = &cobra.Command{
	Use:   "check <file|dir>...",
	Short: "Analyzes P- programs and writes their semantic reports",
	Long: `The check command parses each program, runs the semantic analysis and prints
the four section report. The report is also saved next to the program as
<file>_semantic_report.txt (see PMINUS_REPORT_SUFFIX). Directories are scanned
for .pm files. Exits with status 1 if any program could not be read, failed
to parse or has semantic errors.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd.OutOrStdout(), cmd.ErrOrStderr(), args)
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkNoSave, "no-save", false, "Print the report without writing the report file")
	checkCmd.Flags().BoolVarP(&checkQuiet, "quiet", "q", false, "Only print the per file summary")
	AddCommand(checkCmd)
}

func runCheck(out, errOut io.Writer, args []string) error {
	l := newLoader()
	files, err := sources(l, args)
	if err != nil {
		return err
	}

	failed, err := l.LoadFilesAndValidate(func(path string, fs *loader.FileStatus, err error) error {
		if err != nil {
			fmt.Fprintf(errOut, "%s %v\n", failMark("FAIL"), err)
			return nil
		}

		reportOut := out
		if checkQuiet {
			reportOut = nil
		}
		if checkNoSave {
			if reportOut != nil {
				if err := report.Render(reportOut, fs); err != nil {
					return err
				}
			}
		} else {
			saved, err := report.Write(fs, reportOut, l.FileSystem(), cfg.ReportSuffix)
			if err != nil {
				return err
			}
			slog.Debug("report saved", "file", path, "report", saved)
		}

		if fs.HasErrors() {
			fmt.Fprintf(errOut, "%s %s: %d semantic error(s)\n", failMark("FAIL"), path, len(fs.Errors())+fs.Dropped())
		} else {
			fmt.Fprintf(errOut, "%s %s %s\n", okMark("OK"), path, dim(fmt.Sprintf("(%d symbols)", len(fs.Symbols))))
		}
		return nil
	}, files...)
	if err != nil {
		return err
	}
	if failed > 0 {
		return &failure{failed: failed, total: len(files), what: "programs"}
	}
	return nil
}
