package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cfparse/internal/diagfmt"
	"cfparse/internal/driver"
)

func newTokensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens [flags] <file>",
		Short: "Print the token stream of a CFML file",
		Long:  `Tokens runs the lexer of the detected dialect and prints every token with its leading trivia`,
		Args:  cobra.ExactArgs(1),
		RunE:  runTokens,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runTokens(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	_, opts, err := loadConfig(cmd, args[0])
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(args[0], opts)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	if len(result.Issues) > 0 {
		diagfmt.Pretty(cmd.ErrOrStderr(), result.Issues, result.FileSet, diagfmt.PrettyOpts{
			Color:   useColor(cmd, os.Stderr),
			Context: 1,
		})
	}

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens, result.File)
	case "json":
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens, result.File)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
