package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"golang.org/x/term"

	"cfparse/internal/version"
)

// errIssuesFound makes the process exit with 1 after the issues have been
// printed; it is not reported itself.
var errIssuesFound = errors.New("issues found")

var log = commonlog.GetLogger("cfparse.cli")

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cfparse",
		Short:         "CFML front end: dialect detection, parsing and lowering",
		Long:          `cfparse parses CFML markup templates, script files and components into a typed AST and reports every issue found on the way`,
		Version:       version.Number,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := setupLogging(cmd); err != nil {
				return err
			}
			colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
			if err != nil {
				return fmt.Errorf("failed to get color flag: %w", err)
			}
			if _, err := parseSwitch("color", colorFlag); err != nil {
				return err
			}
			color.NoColor = !useColor(cmd, os.Stdout)
			return nil
		},
	}

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newTokensCmd())
	rootCmd.AddCommand(newDetectCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newLSPCmd())
	rootCmd.AddCommand(newVersionCmd())

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.CountP("verbose", "v", "increase log verbosity (repeatable)")
	pf.String("log-file", "", "write logs to this file instead of stderr")
	pf.String("config", "", "path to cfparse.toml (default: search upwards)")
	pf.Int("max-issues", 0, "maximum number of issues kept per file (0 = config value)")
	pf.Bool("timings", false, "show timing information")
	pf.String("cpu-profile", "", "write a CPU profile of check to this file")
	pf.String("mem-profile", "", "write a heap profile of check to this file")
	pf.String("runtime-trace", "", "write a runtime trace of check to this file")
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errIssuesFound) {
			fmt.Fprintf(os.Stderr, "cfparse: %v\n", err)
		}
		os.Exit(1)
	}
}

func setupLogging(cmd *cobra.Command) error {
	verbosity, err := cmd.Root().PersistentFlags().GetCount("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	logFile, err := cmd.Root().PersistentFlags().GetString("log-file")
	if err != nil {
		return fmt.Errorf("failed to get log-file flag: %w", err)
	}
	var path *string
	if logFile != "" {
		path = &logFile
	}
	commonlog.Configure(verbosity, path)
	return nil
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
