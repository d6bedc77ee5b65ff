package diag

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"cfparse/internal/source"
)

// WriteShort prints one line per issue, in emission order:
//
//	error SYN2004 path:line:col message
//
// With notes set, each note follows its issue as a "note" line carrying the
// parent's code. Multi-line messages are folded onto one line.
func WriteShort(w io.Writer, issues []*Diagnostic, fs *source.FileSet, notes bool) error {
	bw := bufio.NewWriter(w)
	line := func(label string, code Code, sp source.Span, msg string) {
		path, pos := "?", source.LineCol{}
		if fs != nil && int(sp.File) < fs.Len() {
			path = fs.Get(sp.File).Path
			pos, _ = fs.Resolve(sp)
		}
		fmt.Fprintf(bw, "%s %s %s:%d:%d %s\n", label, code.ID(), path, pos.Line, pos.Col, strings.Join(strings.Fields(msg), " "))
	}
	for _, d := range issues {
		line(strings.ToLower(d.Severity.String()), d.Code, d.Primary, d.Message)
		if !notes {
			continue
		}
		for _, n := range d.Notes {
			line("note", d.Code, n.Span, n.Msg)
		}
	}
	return bw.Flush()
}
