package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cfparse/internal/ast"
	"cfparse/internal/diagfmt"
	"cfparse/internal/dialect"
	"cfparse/internal/driver"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] <file>",
		Short: "Parse a CFML file and print its AST",
		Long: `Parse detects the dialect of a file, parses and lowers it, and prints the resulting tree.
With --expr or --stmt the argument is parsed as a single script expression or statement instead.`,
		Args: cobra.ExactArgs(1),
		RunE: runParse,
	}
	cmd.Flags().String("format", "tree", "output format (tree|json|sexpr)")
	cmd.Flags().String("dialect", "", "force the dialect (script|markup) instead of detecting it")
	cmd.Flags().Bool("expr", false, "treat the argument as a script expression")
	cmd.Flags().Bool("stmt", false, "treat the argument as a script statement")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "tree", "json", "sexpr":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	dialectName, err := cmd.Flags().GetString("dialect")
	if err != nil {
		return fmt.Errorf("failed to get dialect flag: %w", err)
	}
	asExpr, err := cmd.Flags().GetBool("expr")
	if err != nil {
		return fmt.Errorf("failed to get expr flag: %w", err)
	}
	asStmt, err := cmd.Flags().GetBool("stmt")
	if err != nil {
		return fmt.Errorf("failed to get stmt flag: %w", err)
	}
	if asExpr && asStmt {
		return fmt.Errorf("--expr and --stmt cannot be used together")
	}
	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	target := args[0]
	fromFile := !asExpr && !asStmt
	cfgTarget := ""
	if fromFile {
		cfgTarget = target
	}
	_, opts, err := loadConfig(cmd, cfgTarget)
	if err != nil {
		return err
	}

	var res *driver.Result
	switch {
	case asExpr:
		res, err = driver.ParseExpression(target, opts)
	case asStmt:
		res, err = driver.ParseStatement(target, opts)
	default:
		if dialectName != "" {
			if opts.Dialect, err = dialect.ParseKind(dialectName); err != nil {
				return err
			}
		}
		res, err = driver.ParseFile(target, opts)
	}
	if err != nil {
		return err
	}

	if len(res.Issues) > 0 {
		diagfmt.Pretty(cmd.ErrOrStderr(), res.Issues, res.FileSet, diagfmt.PrettyOpts{
			Color:   useColor(cmd, os.Stderr),
			Context: 1,
		})
	}

	out := cmd.OutOrStdout()
	switch format {
	case "tree":
		err = diagfmt.FormatASTPretty(out, res.Root, res.File)
	case "json":
		err = diagfmt.FormatASTJSON(out, res.Root)
	case "sexpr":
		if res.Root == nil {
			_, err = fmt.Fprintln(out, "<no tree>")
		} else {
			err = ast.Fprint(out, res.Root)
		}
	}
	if err != nil {
		return err
	}
	if timings {
		res.Timings.Format(cmd.ErrOrStderr(), res.File.Path)
	}
	if res.HasErrors() {
		return errIssuesFound
	}
	return nil
}
