package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// switchMode is the value of an auto|on|off flag (--color, --ui).
type switchMode string

const (
	modeAuto switchMode = "auto"
	modeOn   switchMode = "on"
	modeOff  switchMode = "off"
)

func parseSwitch(flag, value string) (switchMode, error) {
	switch m := switchMode(strings.ToLower(strings.TrimSpace(value))); m {
	case "":
		return modeAuto, nil
	case modeAuto, modeOn, modeOff:
		return m, nil
	}
	return "", fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
}

// enabled resolves the mode; auto is decided by detect.
func (m switchMode) enabled(detect func() bool) bool {
	switch m {
	case modeOn:
		return true
	case modeOff:
		return false
	}
	return detect()
}

// shouldUseTUI decides on the progress view. Auto needs an interactive
// stderr and more than one file.
func shouldUseTUI(mode switchMode, files int) bool {
	return mode.enabled(func() bool { return files > 1 && isTerminal(os.Stderr) })
}

// useColor resolves --color for output written to f.
func useColor(cmd *cobra.Command, f *os.File) bool {
	value, _ := cmd.Root().PersistentFlags().GetString("color")
	mode, err := parseSwitch("color", value)
	if err != nil {
		return false
	}
	return mode.enabled(func() bool { return isTerminal(f) })
}
