package dialect

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnknownExtension is returned for a path whose extension maps to no
// dialect.
var ErrUnknownExtension = errors.New("unknown source file extension")

// sniffed marks the class-file extension: its dialect comes from content.
const sniffed Kind = 0xff

var builtinExtensions = map[string]Kind{
	"cfs":  Script,
	"cfm":  Markup,
	"cfml": Markup,
	"cfc":  sniffed,
}

// Detector maps file extensions to dialects. The zero value knows the
// built-in extensions only.
type Detector struct {
	// Extra maps additional extensions (without the dot, lower case) to a
	// dialect. Built-in extensions cannot be overridden.
	Extra map[string]Kind
}

// Detect picks the dialect of path with the built-in extension table.
func Detect(path string, content []byte) (Kind, error) {
	k, _, err := Detector{}.Detect(path, content)
	return k, err
}

// Detect picks the dialect of path. content is only read for class files.
func (d Detector) Detect(path string, content []byte) (Kind, *Evidence, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	k, ok := builtinExtensions[ext]
	if !ok {
		k, ok = d.Extra[ext]
	}
	if !ok || k == Unknown {
		return Unknown, nil, fmt.Errorf("%w: %q", ErrUnknownExtension, path)
	}
	ev := &Evidence{Extension: ext}
	if k != sniffed {
		return k, ev, nil
	}
	ev.Sniffed = true
	ev.Hint = Sniff(content)
	return ev.Hint.Dialect, ev, nil
}

// Handles reports whether path has an extension d knows.
func (d Detector) Handles(path string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if _, ok := builtinExtensions[ext]; ok {
		return true
	}
	k, ok := d.Extra[ext]
	return ok && k != Unknown
}

type lineSignal struct {
	prefix   string
	contains string // must also appear somewhere on the line
	dialect  Kind
}

// checked in order; the first matching line decides
var lineSignals = []lineSignal{
	{prefix: "component", dialect: Script},
	{prefix: "interface", dialect: Script},
	{prefix: "abstract", contains: "component", dialect: Script},
	{prefix: "final", contains: "component", dialect: Script},
	{prefix: "<cfcomponent", dialect: Markup},
	{prefix: "<cfinterface", dialect: Markup},
	{prefix: "<cfscript", dialect: Markup},
}

// Sniff guesses the dialect of a class file from its lines. Lines starting
// with `//` and lines inside `/* */` or `<!--- --->` comments are skipped;
// with no decisive line the file is script.
func Sniff(content []byte) Hint {
	content = bytes.TrimPrefix(content, []byte("\uFEFF"))
	sc := bufio.NewScanner(bytes.NewReader(content))
	sc.Buffer(make([]byte, 0, 64*1024), len(content)+1)
	inComment := false
	for n := 1; sc.Scan(); n++ {
		line := strings.ToLower(strings.TrimSpace(sc.Text()))
		if strings.HasPrefix(line, "//") {
			continue
		}
		if strings.Contains(line, "<!---") || strings.Contains(line, "/*") {
			inComment = true
		}
		// a comment closed on the same line still lets the line decide
		if strings.Contains(line, "--->") || strings.Contains(line, "*/") {
			inComment = false
		}
		if inComment {
			continue
		}
		for _, sig := range lineSignals {
			if strings.HasPrefix(line, sig.prefix) && strings.Contains(line, sig.contains) {
				return Hint{Dialect: sig.dialect, Line: n, Reason: "starts with " + sig.prefix}
			}
		}
	}
	return Hint{Dialect: Script, Reason: "no component marker, defaulting to script"}
}
