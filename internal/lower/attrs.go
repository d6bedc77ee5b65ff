package lower

import (
	"fmt"
	"strings"

	"cfparse/internal/ast"
	"cfparse/internal/cst"
	"cfparse/internal/diag"
	"cfparse/internal/lexer"
	"cfparse/internal/source"
)

type attrPolicy uint8

const (
	attrOptional attrPolicy = iota
	attrRequired
)

// attributes lowers the `name=value` pairs of a tag head into annotations,
// in source order.
func (l *lowerer) attributes(n *cst.Node) []*ast.Annotation {
	var out []*ast.Annotation
	for _, a := range n.OfKind(cst.KindAttr) {
		name := a.Child(0)
		anno := &ast.Annotation{
			Base: l.base(a.Span),
			Key:  &ast.FQN{Base: l.base(name.Span), Value: name.Text()},
		}
		if v := a.FirstOfKind(cst.KindAttrValue); v != nil {
			anno.Value = l.attrValue(v)
		} else {
			anno.Value = l.emptyString(a.Span.EndPoint())
		}
		out = append(out, anno)
	}
	return out
}

// attrValue lowers a raw attribute value. Quoted text may hold `#expr#`
// parts, each re-parsed as a script expression.
func (l *lowerer) attrValue(v *cst.Node) ast.Expr {
	start, end := v.Span.Start, v.Span.End
	var quote byte
	if raw := v.Text(); len(raw) >= 2 && (raw[0] == '"' || raw[0] == '\'') && raw[len(raw)-1] == raw[0] {
		quote = raw[0]
		start, end = start+1, end-1
	}
	segs := lexer.SplitHashes(l.file, start, end)
	interpolated := false
	for _, s := range segs {
		interpolated = interpolated || s.Expr
	}
	if !interpolated {
		return &ast.StringLit{Base: l.base(v.Span), Value: unescape(l.file.Text(l.span(start, end)), quote)}
	}
	interp := &ast.StringInterpolation{Base: l.base(v.Span)}
	for _, s := range segs {
		if s.Expr {
			interp.Parts = append(interp.Parts, l.reparseExpr(s.Span.Start, s.Span.End))
			continue
		}
		interp.Parts = append(interp.Parts, &ast.StringLit{Base: l.base(s.Span), Value: unescape(l.file.Text(s.Span), quote)})
	}
	return interp
}

// attrWindow returns the code inside a quoted attribute value, for
// attributes that hold a script expression such as `condition`.
func (l *lowerer) attrWindow(n *cst.Node, name string) (source.Span, bool) {
	for _, a := range n.OfKind(cst.KindAttr) {
		if !strings.EqualFold(a.Child(0).Text(), name) {
			continue
		}
		v := a.FirstOfKind(cst.KindAttrValue)
		if v == nil {
			return a.Span.EndPoint(), true
		}
		sp := v.Span
		if raw := v.Text(); len(raw) >= 2 && (raw[0] == '"' || raw[0] == '\'') && raw[len(raw)-1] == raw[0] {
			sp.Start++
			sp.End--
		}
		return sp, true
	}
	return source.Span{}, false
}

func lookupAnnotation(attrs []*ast.Annotation, name string) (*ast.Annotation, bool) {
	for _, a := range attrs {
		if strings.EqualFold(a.Key.Value, name) {
			return a, true
		}
	}
	return nil, false
}

// findAnnotation returns the value of the named attribute. A required
// attribute that is missing is reported and replaced with a NullLit; an
// optional one falls back to def.
func (l *lowerer) findAnnotation(attrs []*ast.Annotation, name string, policy attrPolicy, def ast.Expr, component string, at source.Span) ast.Expr {
	if a, ok := lookupAnnotation(attrs, name); ok {
		return a.Value
	}
	if policy == attrRequired {
		l.report(diag.TagMissingAttribute, at, fmt.Sprintf("Missing %s attribute on %s component", name, component))
		return l.null(at)
	}
	return def
}

// stringValue returns the named attribute as plain text. A value that is
// not a string literal is reported and read as "".
func (l *lowerer) stringValue(attrs []*ast.Annotation, name string, policy attrPolicy, allowEmpty bool, def, component string, at source.Span) string {
	a, ok := lookupAnnotation(attrs, name)
	if !ok {
		if policy == attrRequired {
			l.report(diag.TagMissingAttribute, at, fmt.Sprintf("Missing %s attribute on %s component", name, component))
			return ""
		}
		return def
	}
	s, ok := a.Value.(*ast.StringLit)
	if !ok {
		l.report(diag.TagAttributeShape, a.Span(), fmt.Sprintf("Attribute [%s] attribute must be a string literal", name))
		return ""
	}
	if s.Value == "" && !allowEmpty {
		l.report(diag.TagEmptyAttribute, a.Span(), fmt.Sprintf("Attribute [%s] cannot be empty", name))
	}
	return s.Value
}

// without drops the named attributes.
func without(attrs []*ast.Annotation, names ...string) []*ast.Annotation {
	var out []*ast.Annotation
next:
	for _, a := range attrs {
		for _, n := range names {
			if strings.EqualFold(a.Key.Value, n) {
				continue next
			}
		}
		out = append(out, a)
	}
	return out
}

// truthy reads a markup boolean attribute such as required="yes".
func truthy(e ast.Expr) bool {
	switch v := e.(type) {
	case *ast.BooleanLit:
		return v.Value
	case *ast.StringLit:
		switch strings.ToLower(strings.TrimSpace(v.Value)) {
		case "true", "yes", "1":
			return true
		}
	}
	return false
}
