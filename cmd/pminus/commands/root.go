package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/panyam/pminus/config"
	"github.com/panyam/pminus/logging"
	"github.com/spf13/cobra"
)

// Settings shared by every command, filled in before any of them runs.
var cfg = config.Default()

var (
	envFiles   []string
	logLevel   string
	maxErrors  int
	maxSymbols int
	noColor    bool
)

var rootCmd = &cobra.Command{
	Use:   "pminus",
	Short: "Semantic analyzer for the P- language",
	Long: `pminus parses P- programs, checks declarations and types, inserts the
implicit integer to real conversions and writes a semantic report per program.`,
	SilenceUsage:      true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return loadConfig(cmd) },
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringSliceVar(&envFiles, "env-file", nil, "Env files to read settings from (default .env)")
	flags.StringVar(&logLevel, "log-level", "", "debug, info, warn, error or off (default PMINUS_LOG_LEVEL or info)")
	flags.IntVar(&maxErrors, "max-errors", 0, "Diagnostics kept per program, 0 for the default (default PMINUS_MAX_ERRORS or 100)")
	flags.IntVar(&maxSymbols, "max-symbols", 0, "Variables a program may declare, 0 for the default (default PMINUS_MAX_SYMBOLS or 1000)")
	flags.BoolVar(&noColor, "no-color", false, "Disable colored output")
}

// AddCommand allows adding subcommands from other files.
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

// loadConfig reads env files and the environment, then applies the flags
// that were given explicitly.
func loadConfig(cmd *cobra.Command) error {
	loaded, err := config.Load(envFiles...)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		loaded.LogLevel = logLevel
	}
	if flags.Changed("max-errors") {
		loaded.MaxErrors = maxErrors
	}
	if flags.Changed("max-symbols") {
		loaded.MaxSymbols = maxSymbols
	}
	if flags.Changed("no-color") {
		loaded.NoColor = noColor
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	level, err := logging.ParseLevel(loaded.LogLevel)
	if err != nil {
		return err
	}
	if loaded.NoColor {
		color.NoColor = true
	}
	logging.Setup(cmd.ErrOrStderr(), level, loaded.NoColor)
	cfg = loaded
	return nil
}
