// Package doc lowers `/** ... */` comments into Documentation nodes.
//
// The comment body is a free-text description followed by block tags:
//
//	/**
//	 * Adds two numbers.
//	 * @a the first operand
//	 * @return the sum
//	 */
//
// Every node produced here carries the span of the whole comment; doc
// comments are metadata and finer positions are not tracked.
package doc

import (
	"strings"

	"cfparse/internal/ast"
	"cfparse/internal/source"
)

// Parse lowers the raw comment text found at span.
func Parse(text string, span source.Span) *ast.Documentation {
	base := ast.At(span, text)
	d := &ast.Documentation{Base: base}

	var desc []string
	var cur *block
	var blocks []*block
	for _, line := range bodyLines(text) {
		if name, rest, ok := blockTag(line); ok {
			cur = &block{name: name, lines: []string{rest}}
			blocks = append(blocks, cur)
			continue
		}
		if cur != nil {
			cur.lines = append(cur.lines, line)
			continue
		}
		desc = append(desc, line)
	}

	d.Description = strings.TrimSpace(strings.Join(desc, "\n"))
	for _, b := range blocks {
		d.Annotations = append(d.Annotations, &ast.DocAnnotation{
			Base:  base,
			Key:   &ast.FQN{Base: base, Value: b.name},
			Value: &ast.StringLit{Base: base, Value: strings.TrimSpace(strings.Join(b.lines, "\n"))},
		})
	}
	return d
}

type block struct {
	name  string
	lines []string
}

// bodyLines strips the comment delimiters and the leading `*` of each line.
func bodyLines(text string) []string {
	text = strings.TrimPrefix(text, "/**")
	text = strings.TrimSuffix(text, "*/")
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if strings.HasPrefix(l, "*") {
			l = strings.TrimSpace(l[1:])
		}
		out = append(out, l)
	}
	return out
}

// blockTag splits `@name rest`. Names may be dotted (`@arg.hint`).
func blockTag(line string) (name, rest string, ok bool) {
	if !strings.HasPrefix(line, "@") || len(line) < 2 {
		return "", "", false
	}
	line = line[1:]
	end := strings.IndexFunc(line, func(r rune) bool { return r == ' ' || r == '\t' })
	if end < 0 {
		return line, "", true
	}
	return line[:end], strings.TrimSpace(line[end:]), true
}
