package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ConfigName is the project file looked up by FindConfig.
const ConfigName = "cfparse.toml"

// HiddenConfigName is accepted when ConfigName is absent from a directory.
const HiddenConfigName = ".cfparse.toml"

// FindConfig walks up from startDir and returns the first project file it
// meets. Directories named like a config file are ignored.
func FindConfig(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("resolve %q: %w", startDir, err)
	}
	for {
		for _, name := range [...]string{ConfigName, HiddenConfigName} {
			candidate := filepath.Join(dir, name)
			info, err := os.Stat(candidate)
			switch {
			case err == nil && info.Mode().IsRegular():
				return candidate, true, nil
			case err != nil && !errors.Is(err, os.ErrNotExist):
				return "", false, fmt.Errorf("stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}
