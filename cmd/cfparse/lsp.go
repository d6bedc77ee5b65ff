package main

import (
	"time"

	"github.com/spf13/cobra"

	"cfparse/internal/driver"
	"cfparse/internal/lsp"
	"cfparse/internal/version"
)

func newLSPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Run the cfparse language server over stdio",
		Long:  `Lsp serves parse issues of open documents as diagnostics. The cfparse.toml of the workspace root is applied on initialize.`,
		Args:  cobra.NoArgs,
		RunE:  runLSP,
	}
	cmd.Flags().Duration("debounce", 200*time.Millisecond, "delay analysis after an edit (0 = analyze immediately)")
	return cmd
}

func runLSP(cmd *cobra.Command, _ []string) error {
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return err
	}
	maxIssues, err := cmd.Root().PersistentFlags().GetInt("max-issues")
	if err != nil {
		return err
	}
	server := lsp.NewServer(version.Number, lsp.ServerOptions{
		Debounce: debounce,
		Parse:    driver.Options{MaxIssues: maxIssues},
	})
	return server.RunStdio()
}
