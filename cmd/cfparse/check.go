package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"cfparse/internal/diag"
	"cfparse/internal/diagfmt"
	"cfparse/internal/driver"
	"cfparse/internal/project"
	"cfparse/internal/version"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] <file|directory>",
		Short: "Parse CFML sources and report their issues",
		Long: `Check parses a single file, or every source file below a directory, and prints the issues found.
The exit status is 1 when any file has an error or cannot be parsed at all.`,
		Args: cobra.ExactArgs(1),
		RunE: runCheck,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	cmd.Flags().String("ui", "off", "progress view for directories (auto|on|off)")
	cmd.Flags().Bool("cache", false, "reuse issues of unchanged files from the disk cache")
	cmd.Flags().String("cache-dir", "", "disk cache directory (default: config or user cache dir)")
	cmd.Flags().Bool("clear-cache", false, "drop the disk cache before checking")
	cmd.Flags().Bool("with-notes", false, "include issue notes in output")
	cmd.Flags().String("paths", "auto", "file path style (auto|absolute|relative|basename)")
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	target := args[0]
	flags := cmd.Flags()

	format, err := flags.GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "short", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiFlag, err := flags.GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := parseSwitch("ui", uiFlag)
	if err != nil {
		return err
	}
	withNotes, err := flags.GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	pathsFlag, err := flags.GetString("paths")
	if err != nil {
		return fmt.Errorf("failed to get paths flag: %w", err)
	}
	pathMode, ok := diagfmt.ParsePathMode(pathsFlag)
	if !ok {
		return fmt.Errorf("invalid --paths value %q", pathsFlag)
	}
	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	cfg, opts, err := loadConfig(cmd, target)
	if err != nil {
		return err
	}
	if opts.Cache, err = openCache(cmd, cfg); err != nil {
		return err
	}

	session, err := startProfiling(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if err := session.Stop(); err != nil {
			log.Errorf("profiling: %s", err)
		}
	}()

	files := []string{target}
	if st.IsDir() {
		if files, err = driver.ListFiles(target, opts.Detector); err != nil {
			return err
		}
	}
	dirOpts := driver.DirOptions{Options: opts, Jobs: jobs}

	var results []driver.FileResult
	if st.IsDir() && shouldUseTUI(mode, len(files)) {
		results, err = runCheckWithUI(cmd.Context(), "check "+target, files, dirOpts)
	} else {
		results, err = driver.ParseFiles(cmd.Context(), files, dirOpts)
	}
	if err != nil {
		return err
	}

	baseDir, _ := os.Getwd()
	failed := false
	units := make([]diagfmt.Unit, 0, len(results))
	errOut := cmd.ErrOrStderr()
	for _, fr := range results {
		if fr.Err != nil {
			failed = true
			fmt.Fprintf(errOut, "%s: %v\n", fr.Path, fr.Err)
			continue
		}
		if fr.Result.HasErrors() {
			failed = true
		}
		units = append(units, diagfmt.Unit{FileSet: fr.Result.FileSet, Issues: fr.Result.Issues})
		if fr.Result.Dropped > 0 {
			log.Warningf("%s: %d issues dropped", fr.Path, fr.Result.Dropped)
		}
		if timings && !fr.Result.Cached {
			fr.Result.Timings.Format(errOut, fr.Path)
		}
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		err = diagfmt.JSON(out, units, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			BaseDir:          baseDir,
			IncludeNotes:     withNotes,
		})
		if err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	case "short":
		for _, u := range units {
			if err := diag.WriteShort(out, u.Issues, u.FileSet, withNotes); err != nil {
				return fmt.Errorf("failed to format diagnostics: %w", err)
			}
		}
	default:
		prettyOpts := diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stdout),
			Context:   1,
			PathMode:  pathMode,
			BaseDir:   baseDir,
			ShowNotes: withNotes,
		}
		total := 0
		for _, u := range units {
			diagfmt.Pretty(out, u.Issues, u.FileSet, prettyOpts)
			total += len(u.Issues)
		}
		fmt.Fprintf(errOut, "%d files, %d issues\n", len(results), total)
	}

	if failed {
		return errIssuesFound
	}
	return nil
}

// openCache returns the disk cache selected by flags and config, or nil
// when caching is off.
func openCache(cmd *cobra.Command, cfg *project.Config) (*driver.DiskCache, error) {
	flags := cmd.Flags()
	enabled, err := flags.GetBool("cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache flag: %w", err)
	}
	dir, err := flags.GetString("cache-dir")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache-dir flag: %w", err)
	}
	clearCache, err := flags.GetBool("clear-cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	if dir == "" {
		dir = cfg.CacheDir()
	}
	if dir != "" {
		enabled = true
	}
	if !enabled && !clearCache {
		return nil, nil
	}

	maxIssues, _ := cmd.Root().PersistentFlags().GetInt("max-issues")
	if maxIssues == 0 {
		maxIssues = cfg.Parser.MaxIssues
	}
	cache, err := driver.OpenDiskCache(dir, cacheSalt(cfg, maxIssues))
	if err != nil {
		return nil, err
	}
	if clearCache {
		if err := cache.DropAll(); err != nil {
			return nil, err
		}
		log.Infof("dropped cache %s", cache.Dir())
	}
	if !enabled {
		return nil, nil
	}
	return cache, nil
}

// cacheSalt covers every setting that changes the issues of a file.
func cacheSalt(cfg *project.Config, maxIssues int) string {
	parts := []string{version.Number, "max=" + strconv.Itoa(maxIssues)}
	for _, p := range cfg.Tags.Registry {
		parts = append(parts, "tags="+filepath.ToSlash(p))
	}
	return strings.Join(parts, ";")
}
