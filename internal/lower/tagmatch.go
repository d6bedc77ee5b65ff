package lower

import (
	"fmt"

	"cfparse/internal/ast"
	"cfparse/internal/cst"
	"cfparse/internal/diag"
	"cfparse/internal/tags"
)

// tagList builds one markup statement list. Generic open tags stay pending
// until a close tag resolves them; the close tag pulls every sibling after
// the open tag into its body.
type tagList struct {
	l     *lowerer
	stmts []ast.Stmt
	// matched keeps the tags resolved in this pass; their bodies are
	// statement lists of this pass too.
	matched []*ast.ComponentStmt
}

func (t *tagList) add(s ...ast.Stmt) {
	t.stmts = append(t.stmts, s...)
}

// close pairs a close tag with the nearest pending open tag of the same
// name, scanning backwards.
func (t *tagList) close(n *cst.Node) {
	l := t.l
	name := tags.Fold(n.Value)
	desc, known := l.reg.Lookup(n.Value)
	for i := len(t.stmts) - 1; i >= 0; i-- {
		c, ok := t.stmts[i].(*ast.ComponentStmt)
		if !ok || !c.Pending() || tags.Fold(c.Name) != name {
			continue
		}
		if known && !desc.AllowsBody {
			break
		}
		body := make([]ast.Stmt, len(t.stmts)-i-1)
		copy(body, t.stmts[i+1:])
		c.Resolve(body, n.Span, l.file.Text(c.Span().Cover(n.Span)))
		t.stmts = t.stmts[:i+1]
		t.matched = append(t.matched, c)
		return
	}
	if known && !desc.AllowsBody {
		l.report(diag.TagBodyNotAllowed, n.Span, fmt.Sprintf("The [%s] component does not allow a body", n.Value))
		return
	}
	l.report(diag.TagUnmatchedClose, n.Span, fmt.Sprintf("Found end component [%s] without matching start component", n.Value))
}

// finish settles every tag still pending: one that requires a body is
// reported and left pending, any other has no body.
func (t *tagList) finish() []ast.Stmt {
	settle := func(stmts []ast.Stmt) {
		for _, s := range stmts {
			c, ok := s.(*ast.ComponentStmt)
			if !ok || !c.Pending() {
				continue
			}
			if c.RequiresBody {
				t.l.report(diag.TagRequiresBody, c.Span(), fmt.Sprintf("Component [%s] requires a body.", c.Name))
				continue
			}
			c.Resolve(nil, c.Span(), c.SourceText())
		}
	}
	settle(t.stmts)
	for _, c := range t.matched {
		settle(c.Statements())
	}
	if t.stmts == nil {
		return []ast.Stmt{}
	}
	return t.stmts
}
