package dialect

import (
	"fmt"
	"strings"
)

// Kind is one of the two concrete syntaxes.
type Kind uint8

const (
	Unknown Kind = iota
	Script
	Markup
)

func (k Kind) String() string {
	switch k {
	case Script:
		return "script"
	case Markup:
		return "markup"
	default:
		return "unknown"
	}
}

func (k Kind) GoString() string {
	return fmt.Sprintf("dialect.Kind(%s)", k.String())
}

// ParseKind maps a user-facing name back to a Kind. It accepts the
// canonical names and the usual aliases ("cfscript", "template", ...).
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "script", "cfscript", "cfs":
		return Script, nil
	case "markup", "template", "tag", "cfm", "cfml":
		return Markup, nil
	}
	return Unknown, fmt.Errorf("unknown dialect %q (want script or markup)", name)
}
