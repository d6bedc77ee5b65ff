package lower_test

import (
	"fmt"
	"strings"
	"testing"

	"cfparse/internal/ast"
	"cfparse/internal/diag"
	"cfparse/internal/lower"
	"cfparse/internal/parser"
	"cfparse/internal/source"
	"cfparse/internal/testkit"
)

func diagnosticsSummary(bag *diag.Bag) string {
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

type lowered struct {
	file *source.File
	root ast.Node
	bag  *diag.Bag
}

// lowerScript parses and lowers a whole script unit and checks span
// invariants on the result.
func lowerScript(t *testing.T, src string) lowered {
	t.Helper()
	file := newTestFile("test.cfs", src)
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	res := parser.ParseScript(file, 0, file.Len(), parser.Options{Reporter: rep})
	root, err := lower.Script(file, res.Root, lower.Options{Reporter: rep})
	if err != nil {
		t.Fatalf("lower %q: %v", src, err)
	}
	checkSpans(t, root, file)
	return lowered{file: file, root: root, bag: bag}
}

func lowerTemplate(t *testing.T, src string) lowered {
	t.Helper()
	file := newTestFile("test.cfm", src)
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	res := parser.ParseTemplate(file, parser.Options{Reporter: rep})
	if res.ModeFailure {
		t.Fatalf("mode failure for %q: %s", src, diagnosticsSummary(bag))
	}
	root, err := lower.Template(file, res.Root, lower.Options{Reporter: rep})
	if err != nil {
		t.Fatalf("lower %q: %v", src, err)
	}
	checkSpans(t, root, file)
	return lowered{file: file, root: root, bag: bag}
}

func lowerExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	file := newTestFile("test.cfs", src)
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	res := parser.ParseScriptExpression(file, 0, file.Len(), parser.Options{Reporter: rep})
	expr, err := lower.Expression(file, res.Root, lower.Options{Reporter: rep})
	if err != nil {
		t.Fatalf("lower %q: %v", src, err)
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics for %q: %s", src, diagnosticsSummary(bag))
	}
	checkSpans(t, expr, file)
	return expr
}

func checkSpans(t *testing.T, root ast.Node, file *source.File) {
	t.Helper()
	if err := testkit.CheckSpanInvariants(root, file); err != nil {
		t.Fatalf("span invariant: %v", err)
	}
}

func expectNoDiagnostics(t *testing.T, bag *diag.Bag) {
	t.Helper()
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
}

// statements returns the statement list of a Script or Template root.
func statements(t *testing.T, root ast.Node) []ast.Stmt {
	t.Helper()
	switch r := root.(type) {
	case *ast.Script:
		return r.Statements
	case *ast.Template:
		return r.Statements
	}
	t.Fatalf("root is %T, want Script or Template", root)
	return nil
}

// kinds lists the node kinds of a statement list, skipping blank output.
func kinds(stmts []ast.Stmt) string {
	var out []string
	for _, s := range stmts {
		if b, ok := s.(*ast.BufferOutputStmt); ok {
			if lit, ok := b.X.(*ast.StringLit); ok && strings.TrimSpace(lit.Value) == "" {
				continue
			}
		}
		out = append(out, ast.KindName(s))
	}
	return strings.Join(out, " ")
}

// as fails the test unless n has type T.
func as[T ast.Node](t *testing.T, n ast.Node) T {
	t.Helper()
	v, ok := n.(T)
	if !ok {
		var zero T
		t.Fatalf("node is %T, want %T", n, zero)
	}
	return v
}
