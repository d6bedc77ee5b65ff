package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"cfparse/internal/diag"
	"cfparse/internal/source"
)

const tabWidth = 4

type palette struct {
	sev    map[diag.Severity]*color.Color
	code   *color.Color
	path   *color.Color
	gutter *color.Color
	caret  *color.Color
	note   *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevError:   color.New(color.FgRed, color.Bold),
			diag.SevWarning: color.New(color.FgYellow, color.Bold),
			diag.SevInfo:    color.New(color.FgCyan, color.Bold),
		},
		code:   color.New(color.FgMagenta),
		path:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgCyan),
	}
	all := []*color.Color{p.code, p.path, p.gutter, p.caret, p.note}
	for _, c := range p.sev {
		all = append(all, c)
	}
	for _, c := range all {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty форматирует диагностики в человекочитаемый вид, в порядке выдачи.
// Для каждой печатает:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем строку исходника с подчёркиванием ^~~~ по Span и, по опции, Notes.
func Pretty(w io.Writer, issues []*diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for _, d := range issues {
		file := fs.Get(d.Primary.File)
		start := file.Position(d.Primary.Start)
		sevColor, ok := p.sev[d.Severity]
		if !ok {
			sevColor = p.sev[diag.SevError]
		}
		fmt.Fprintf(w, "%s: %s %s: %s\n",
			p.path.Sprintf("%s:%d:%d", formatPath(file.Path, opts.PathMode, opts.BaseDir), start.Line, start.Col),
			sevColor.Sprint(d.Severity.String()),
			p.code.Sprint(d.Code.ID()),
			d.Message)
		writeSnippet(w, file, d.Primary, int(opts.Context), p)

		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			nf := fs.Get(n.Span.File)
			pos := nf.Position(n.Span.Start)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", p.note.Sprint("note:"),
				formatPath(nf.Path, opts.PathMode, opts.BaseDir), pos.Line, pos.Col, n.Msg)
		}
	}
}

func writeSnippet(w io.Writer, file *source.File, sp source.Span, context int, p palette) {
	start := file.Position(sp.Start)
	end := file.Position(sp.End)
	first := max(int(start.Line)-context, 1)

	gutterWidth := len(fmt.Sprint(start.Line))
	for ln := first; ln <= int(start.Line); ln++ {
		line := expandTabs(strings.TrimRight(file.GetLine(uint32(ln)), "\r"))
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, ln), line)
	}

	raw := strings.TrimRight(file.GetLine(start.Line), "\r")
	col := min(int(start.Col)-1, len(raw))
	lead := runewidth.StringWidth(expandTabs(raw[:col]))

	// подчёркиваем только первую строку спана
	endCol := len(raw)
	if end.Line == start.Line {
		endCol = min(int(end.Col)-1, len(raw))
	}
	width := 1
	if endCol > col {
		width = max(runewidth.StringWidth(expandTabs(raw[col:endCol])), 1)
	}
	marker := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprintf("%*s |", gutterWidth, ""), strings.Repeat(" ", lead), p.caret.Sprint(marker))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
