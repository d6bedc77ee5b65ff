package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type detectPayload struct {
	Path     string `json:"path"`
	Dialect  string `json:"dialect"`
	Evidence string `json:"evidence"`
}

func newDetectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect [flags] <file>...",
		Short: "Report the dialect of CFML files",
		Long:  `Detect classifies each file as script or markup and explains which extension or line decided it`,
		Args:  cobra.MinimumNArgs(1),
		RunE:  runDetect,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runDetect(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	_, opts, err := loadConfig(cmd, args[0])
	if err != nil {
		return err
	}

	payloads := make([]detectPayload, 0, len(args))
	for _, path := range args {
		// #nosec G304 -- path is a CLI argument
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		kind, ev, err := opts.Detector.Detect(path, content)
		if err != nil {
			return err
		}
		payloads = append(payloads, detectPayload{Path: path, Dialect: kind.String(), Evidence: ev.String()})
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(payloads)
	}
	for _, p := range payloads {
		fmt.Fprintf(out, "%s: %s (%s)\n", p.Path, p.Dialect, p.Evidence)
	}
	return nil
}
