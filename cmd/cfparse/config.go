package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"cfparse/internal/driver"
	"cfparse/internal/project"
)

// loadConfig finds the configuration for target: --config when given,
// otherwise the cfparse.toml above target. Flags override config values.
func loadConfig(cmd *cobra.Command, target string) (*project.Config, driver.Options, error) {
	configPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, driver.Options{}, fmt.Errorf("failed to get config flag: %w", err)
	}

	var cfg *project.Config
	if configPath != "" {
		cfg, err = project.Load(configPath)
	} else {
		cfg, err = project.Discover(startDirFor(target))
	}
	if err != nil {
		return nil, driver.Options{}, err
	}
	if cfg.Root != "" {
		log.Debugf("config: %s", filepath.Join(cfg.Root, "cfparse.toml"))
	}

	det, err := cfg.Detector()
	if err != nil {
		return nil, driver.Options{}, err
	}
	reg, err := cfg.Registry()
	if err != nil {
		return nil, driver.Options{}, err
	}
	opts := driver.Options{
		MaxIssues: cfg.Parser.MaxIssues,
		Registry:  reg,
		Detector:  det,
	}

	maxIssues, err := cmd.Root().PersistentFlags().GetInt("max-issues")
	if err != nil {
		return nil, driver.Options{}, fmt.Errorf("failed to get max-issues flag: %w", err)
	}
	if maxIssues < 0 {
		return nil, driver.Options{}, fmt.Errorf("--max-issues must not be negative")
	}
	if maxIssues > 0 {
		opts.MaxIssues = maxIssues
	}
	return cfg, opts, nil
}

func startDirFor(target string) string {
	if target == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
		return "."
	}
	if st, err := os.Stat(target); err == nil && st.IsDir() {
		return target
	}
	return filepath.Dir(target)
}
