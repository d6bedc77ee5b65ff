package parser

import (
	"fmt"
	"strings"
	"testing"

	"cfparse/internal/cst"
	"cfparse/internal/diag"
	"cfparse/internal/source"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func newTestFile(name, src string) *source.File {
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual(name, []byte(src)))
}

// parseScriptSource - хелпер: разбирает скрипт целиком
func parseScriptSource(t *testing.T, src string) (*cst.Node, *diag.Bag) {
	t.Helper()
	file := newTestFile("test.cfs", src)
	bag := diag.NewBag(100)
	res := ParseScript(file, 0, file.Len(), Options{Reporter: diag.BagReporter{Bag: bag}})
	if res.Root == nil {
		t.Fatalf("nil root for %q", src)
	}
	return res.Root, bag
}

func parseExprSource(t *testing.T, src string) (*cst.Node, *diag.Bag) {
	t.Helper()
	file := newTestFile("test.cfs", src)
	bag := diag.NewBag(100)
	res := ParseScriptExpression(file, 0, file.Len(), Options{Reporter: diag.BagReporter{Bag: bag}})
	return res.Root, bag
}

func parseTemplateSource(t *testing.T, src string) (Result, *diag.Bag) {
	t.Helper()
	file := newTestFile("test.cfm", src)
	bag := diag.NewBag(100)
	return ParseTemplate(file, Options{Reporter: diag.BagReporter{Bag: bag}}), bag
}

// sexpr renders a compact one-line form of the tree. Leaf token text is
// printed only for nodes without children.
func sexpr(n *cst.Node) string {
	var b strings.Builder
	writeSexpr(&b, n)
	return b.String()
}

func writeSexpr(b *strings.Builder, n *cst.Node) {
	b.WriteString("(" + n.Kind.String())
	switch {
	case n.Value != "":
		b.WriteString(" " + n.Value)
	case n.Tok != nil && len(n.Children) == 0:
		b.WriteString(" " + n.Tok.Text)
	}
	for _, c := range n.Children {
		b.WriteByte(' ')
		writeSexpr(b, c)
	}
	b.WriteByte(')')
}

func expectNoDiagnostics(t *testing.T, bag *diag.Bag) {
	t.Helper()
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
}
