// Package testkit holds invariant checks shared by package tests and the
// fuzz harness.
package testkit

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"cfparse/internal/ast"
	"cfparse/internal/source"
)

// CheckSpanInvariants walks a lowered tree and checks that every node:
// 1) has Start <= End within the file content
// 2) points into sf
// 3) has SourceText equal to the content covered by its span; synthetic
// nodes are zero-width with empty text
func CheckSpanInvariants(root ast.Node, sf *source.File) error {
	if root == nil || sf == nil {
		return fmt.Errorf("nil root or file")
	}
	size, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("file too large: %w", err)
	}
	var first error
	ast.Inspect(root, func(n ast.Node) bool {
		if first != nil {
			return false
		}
		sp := n.Span()
		switch {
		case sp.Start > sp.End:
			first = fmt.Errorf("%s: inverted span %v", ast.KindName(n), sp)
		case sp.End > size:
			first = fmt.Errorf("%s: span %v past end of file (%d bytes)", ast.KindName(n), sp, size)
		case sp.File != sf.ID:
			first = fmt.Errorf("%s: span points to file %d, want %d", ast.KindName(n), sp.File, sf.ID)
		case n.SourceText() != string(sf.Content[sp.Start:sp.End]):
			first = fmt.Errorf("%s at %v: source text %q, file has %q",
				ast.KindName(n), sp, n.SourceText(), sf.Content[sp.Start:sp.End])
		}
		return true
	})
	return first
}

// Shape renders the node kinds and spans of a tree, one node per line. Two
// parses of the same input must give the same shape.
func Shape(root ast.Node) string {
	var b strings.Builder
	ast.Inspect(root, func(n ast.Node) bool {
		sp := n.Span()
		fmt.Fprintf(&b, "%s[%d,%d)\n", ast.KindName(n), sp.Start, sp.End)
		return true
	})
	return b.String()
}
