package lower

import (
	"strings"

	"cfparse/internal/ast"
	"cfparse/internal/cst"
)

// templateRoot lowers a markup document. A document holding a
// <cfcomponent> or <cfinterface> is a class; text around it must be blank.
func (l *lowerer) templateRoot(n *cst.Node) ast.Root {
	for _, c := range n.Children {
		if c.Kind == cst.KindTagBlock && (c.Value == "component" || c.Value == "interface") {
			return l.templateClass(n, c)
		}
	}
	return &ast.Template{Base: l.base(n.Span), Statements: l.markupList(n.Children)}
}

func (l *lowerer) templateClass(root, decl *cst.Node) *ast.ClassDecl {
	var imports []*ast.ImportStmt
	var extra []ast.Stmt
	var class *ast.ClassDecl
	for _, c := range root.Children {
		if c == decl {
			class = l.tagClass(c)
			continue
		}
		for _, s := range l.markupList([]*cst.Node{c}) {
			switch s := s.(type) {
			case *ast.ImportStmt:
				imports = append(imports, s)
			case *ast.BufferOutputStmt:
				if isBlank(s) {
					continue
				}
				extra = append(extra, s)
			default:
				extra = append(extra, s)
			}
		}
	}
	class.Base = l.base(root.Span)
	class.Imports = imports
	class.Body = append(extra, class.Body...)
	return class
}

// markupList lowers one statement list, pairing generic tags with their
// close tags.
func (l *lowerer) markupList(nodes []*cst.Node) []ast.Stmt {
	t := &tagList{l: l}
	for _, n := range nodes {
		if n.Kind == cst.KindTagClose {
			t.close(n)
			continue
		}
		t.add(l.markupStmt(n)...)
	}
	return t.finish()
}

// body lowers the TagBody child of a structural tag.
func (l *lowerer) body(n *cst.Node) []ast.Stmt {
	b := n.FirstOfKind(cst.KindTagBody)
	if b == nil {
		return []ast.Stmt{}
	}
	return l.markupList(b.Children)
}

func (l *lowerer) markupStmt(n *cst.Node) []ast.Stmt {
	switch n.Kind {
	case cst.KindError:
		return nil
	case cst.KindText:
		return []ast.Stmt{l.text(n)}
	case cst.KindTagStmt:
		return l.tagStmt(n)
	case cst.KindTagBlock:
		return []ast.Stmt{l.tagBlock(n)}
	}
	l.unimplemented("markup "+n.Kind.String(), n.Span)
	return nil
}

// text lowers a run of template text. Inside <cfoutput>, `##` is a literal
// hash and `#expr#` parts are expressions.
func (l *lowerer) text(n *cst.Node) *ast.BufferOutputStmt {
	output := n.Value == "output"
	literal := func(c *cst.Node) *ast.StringLit {
		s := c.Text()
		if output {
			s = strings.ReplaceAll(s, "##", "#")
		}
		return &ast.StringLit{Base: l.base(c.Span), Value: s}
	}
	st := &ast.BufferOutputStmt{Base: l.base(n.Span)}
	if len(n.Children) == 1 && n.Children[0].Kind == cst.KindTextPart {
		st.X = literal(n.Children[0])
		return st
	}
	interp := &ast.StringInterpolation{Base: l.base(n.Span)}
	for _, c := range n.Children {
		if c.Kind == cst.KindInterp && output && c.Span.Len() >= 2 {
			interp.Parts = append(interp.Parts, l.reparseExpr(c.Span.Start+1, c.Span.End-1))
			continue
		}
		interp.Parts = append(interp.Parts, literal(c))
	}
	st.X = interp
	return st
}

func isBlank(s *ast.BufferOutputStmt) bool {
	lit, ok := s.X.(*ast.StringLit)
	return ok && strings.TrimSpace(lit.Value) == ""
}

// genericTag lowers any tag without dedicated lowering. Its body stays
// pending until a close tag or the end of the list settles it; a tag that
// never takes a body is settled at once.
func (l *lowerer) genericTag(n *cst.Node) *ast.ComponentStmt {
	c := &ast.ComponentStmt{
		Base:       l.base(n.Span),
		Name:       n.Value,
		Attributes: l.attributes(n),
		Body:       &ast.PendingBody{},
	}
	desc, known := l.reg.Lookup(n.Value)
	c.RequiresBody = known && desc.RequiresBody
	if n.Has(cst.FlagSelfClosing) || (known && !desc.AllowsBody) {
		c.Resolve(nil, n.Span, c.SourceText())
	}
	return c
}

// blockComponent lowers a structural tag that keeps the generic shape, such
// as <cfoutput> or a non-conditional <cfloop>; its body is already known.
func (l *lowerer) blockComponent(n *cst.Node) *ast.ComponentStmt {
	c := &ast.ComponentStmt{
		Base:       l.base(n.Span),
		Name:       n.Value,
		Attributes: l.attributes(n),
		Body:       &ast.ResolvedBody{Statements: l.body(n)},
	}
	if desc, ok := l.reg.Lookup(n.Value); ok {
		c.RequiresBody = desc.RequiresBody
	}
	return c
}
