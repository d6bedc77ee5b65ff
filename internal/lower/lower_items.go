package lower

import (
	"fmt"
	"strings"

	"cfparse/internal/ast"
	"cfparse/internal/cst"
	"cfparse/internal/diag"
	"cfparse/internal/doc"
	"cfparse/internal/token"
)

const (
	defaultReturnType = "any"
	defaultArgType    = "Any"
)

// functionDecl lowers a script function declaration. Annotations aimed at
// a parameter (`@arg hint` or `@arg.key value`, in code or in the doc
// comment) move onto that parameter.
func (l *lowerer) functionDecl(n *cst.Node) *ast.FunctionDecl {
	if n.Value == "constructor" {
		l.unimplemented("constructor declaration", n.Span)
	}
	fn := &ast.FunctionDecl{Base: l.base(n.Span), Access: ast.AccessPublic}
	var pre []*cst.Node
	nameAt := n.Span
	for _, c := range n.Children {
		switch c.Kind {
		case cst.KindPreAnnotation:
			pre = append(pre, c)
		case cst.KindModifier:
			if acc, ok := ast.ParseAccess(c.Value); ok {
				fn.Access = acc
			} else {
				fn.Modifiers = append(fn.Modifiers, c.Value)
			}
		case cst.KindTypeRef:
			fn.ReturnType = &ast.ReturnType{Base: l.base(c.Span), Type: c.Value}
		case cst.KindIdent:
			fn.Name = c.Text()
			nameAt = c.Span
		case cst.KindParams:
			fn.Args = l.params(c)
		case cst.KindBlock:
			fn.Body = l.block(c)
		}
	}
	if fn.ReturnType == nil {
		fn.ReturnType = &ast.ReturnType{Base: ast.Synthetic(nameAt), Type: defaultReturnType}
	}

	annos := l.preAnnotations(pre)
	annos = append(annos, l.postAnnotations(n.OfKind(cst.KindPostAnnotation))...)
	fn.Annotations = moveArgAnnotations(annos, fn.Args)
	if n.Doc != nil {
		fn.Documentation = l.documentation(n.Doc)
		fn.Documentation.Annotations = moveArgDocs(fn.Documentation.Annotations, fn.Args)
	}
	return fn
}

// params: [required] [type] name [= default] [annotations]
func (l *lowerer) params(n *cst.Node) []*ast.ArgumentDecl {
	out := []*ast.ArgumentDecl{}
	if n == nil {
		return out
	}
	for _, p := range n.Children {
		name := p.FirstOfKind(cst.KindIdent)
		if name == nil {
			// reported by the parser
			continue
		}
		arg := &ast.ArgumentDecl{Base: l.base(p.Span), Name: name.Text(), Type: defaultArgType}
		for _, c := range p.Children {
			switch c.Kind {
			case cst.KindModifier:
				arg.Required = true
			case cst.KindTypeRef:
				arg.Type = c.Value
			case cst.KindDefault:
				arg.Default = l.expr(c.Child(0))
			}
		}
		arg.Annotations = l.postAnnotations(p.OfKind(cst.KindPostAnnotation))
		if p.Doc != nil {
			arg.Documentation = l.documentation(p.Doc).Annotations
		}
		out = append(out, arg)
	}
	return out
}

// argTarget resolves `arg` or `arg.key` against the parameter list. A bare
// argument name stands for its hint.
func argTarget(key string, args []*ast.ArgumentDecl) (*ast.ArgumentDecl, string) {
	head, rest, dotted := strings.Cut(key, ".")
	for _, a := range args {
		if strings.EqualFold(a.Name, head) {
			if !dotted {
				return a, "hint"
			}
			return a, rest
		}
	}
	return nil, ""
}

func moveArgAnnotations(annos []*ast.Annotation, args []*ast.ArgumentDecl) []*ast.Annotation {
	kept := annos[:0]
	for _, a := range annos {
		arg, key := argTarget(a.Key.Value, args)
		if arg == nil {
			kept = append(kept, a)
			continue
		}
		arg.Annotations = append(arg.Annotations, &ast.Annotation{
			Base:  a.Base,
			Key:   &ast.FQN{Base: a.Key.Base, Value: key},
			Value: a.Value,
		})
	}
	return kept
}

func moveArgDocs(docs []*ast.DocAnnotation, args []*ast.ArgumentDecl) []*ast.DocAnnotation {
	kept := docs[:0]
	for _, d := range docs {
		arg, key := argTarget(d.Key.Value, args)
		if arg == nil {
			kept = append(kept, d)
			continue
		}
		arg.Documentation = append(arg.Documentation, &ast.DocAnnotation{
			Base:  d.Base,
			Key:   &ast.FQN{Base: d.Key.Base, Value: key},
			Value: d.Value,
		})
	}
	return kept
}

func (l *lowerer) documentation(t *token.Trivia) *ast.Documentation {
	return doc.Parse(t.Text, t.Span)
}

func (l *lowerer) fqn(n *cst.Node) *ast.FQN {
	return &ast.FQN{Base: l.base(n.Span), Value: n.Value}
}

// preAnnotations: `@key`, `@key value` or `@key v1 v2 ...` (an array).
func (l *lowerer) preAnnotations(nodes []*cst.Node) []*ast.Annotation {
	var out []*ast.Annotation
	for _, n := range nodes {
		a := &ast.Annotation{Base: l.base(n.Span), Key: l.fqn(n.Child(0))}
		switch values := n.Children[1:]; len(values) {
		case 0:
			a.Value = l.emptyString(n.Span.EndPoint())
		case 1:
			a.Value = l.expr(values[0])
		default:
			arr := &ast.ArrayLit{Base: l.base(values[0].Span.Cover(values[len(values)-1].Span))}
			for _, v := range values {
				arr.Items = append(arr.Items, l.expr(v))
			}
			a.Value = arr
		}
		out = append(out, a)
	}
	return out
}

// postAnnotations: `key`, `key=value`; a dotted or bare word value is a
// string.
func (l *lowerer) postAnnotations(nodes []*cst.Node) []*ast.Annotation {
	var out []*ast.Annotation
	for _, n := range nodes {
		a := &ast.Annotation{Base: l.base(n.Span), Key: l.fqn(n.Child(0))}
		switch v := n.Child(1); {
		case v == nil:
			a.Value = l.emptyString(n.Span.EndPoint())
		case v.Kind == cst.KindFQN:
			a.Value = &ast.StringLit{Base: l.base(v.Span), Value: v.Value}
		default:
			a.Value = l.expr(v)
		}
		out = append(out, a)
	}
	return out
}

// property lowers `property [type] name [annotations];`. The shorthand name
// and type become annotations of their own.
func (l *lowerer) property(n *cst.Node) *ast.PropertyDecl {
	annos := l.preAnnotations(n.OfKind(cst.KindPreAnnotation))
	shorthand := func(key string, c *cst.Node, value string) *ast.Annotation {
		return &ast.Annotation{
			Base:  l.base(c.Span),
			Key:   &ast.FQN{Base: ast.Synthetic(c.Span), Value: key},
			Value: &ast.StringLit{Base: l.base(c.Span), Value: value},
		}
	}
	if name := n.FirstOfKind(cst.KindIdent); name != nil {
		annos = append(annos, shorthand("name", name, name.Text()))
	}
	if typ := n.FirstOfKind(cst.KindTypeRef); typ != nil {
		annos = append(annos, shorthand("type", typ, typ.Value))
	}
	annos = append(annos, l.postAnnotations(n.OfKind(cst.KindPostAnnotation))...)
	p := &ast.PropertyDecl{Base: l.base(n.Span), Annotations: annos}
	if n.Doc != nil {
		p.Documentation = l.documentation(n.Doc)
	}
	return p
}

// classDecl lowers `component|interface [attrs] { ... }`. Modifiers such as
// abstract or final become valueless annotations.
func (l *lowerer) classDecl(n *cst.Node) *ast.ClassDecl {
	cd := &ast.ClassDecl{Base: l.base(n.Span), Interface: n.Value == "interface"}
	annos := l.preAnnotations(n.OfKind(cst.KindPreAnnotation))
	for _, m := range n.OfKind(cst.KindModifier) {
		annos = append(annos, &ast.Annotation{
			Base:  l.base(m.Span),
			Key:   l.fqn(m),
			Value: l.emptyString(m.Span.EndPoint()),
		})
	}
	cd.Annotations = append(annos, l.postAnnotations(n.OfKind(cst.KindPostAnnotation))...)
	cd.Body, cd.Properties = splitProperties(l.block(n.FirstOfKind(cst.KindBlock)))
	if n.Doc != nil {
		cd.Documentation = l.documentation(n.Doc)
	}
	return cd
}

// splitProperties moves property declarations out of a class body.
func splitProperties(stmts []ast.Stmt) ([]ast.Stmt, []*ast.PropertyDecl) {
	body := make([]ast.Stmt, 0, len(stmts))
	var props []*ast.PropertyDecl
	for _, s := range stmts {
		if p, ok := s.(*ast.PropertyDecl); ok {
			props = append(props, p)
			continue
		}
		body = append(body, s)
	}
	return body, props
}

// scriptComponent lowers `name attr=v ... [{ }]` and `cfname(attr=v) [{ }]`.
// A call-form statement naming an unknown tag is an ordinary function call.
func (l *lowerer) scriptComponent(n *cst.Node) ast.Stmt {
	name := n.Value
	desc, known := l.reg.Lookup(name)
	block := n.FirstOfKind(cst.KindBlock)
	argList := n.FirstOfKind(cst.KindArgs)
	if n.Has(cst.FlagCallForm) && block == nil && (!known || hasPositional(argList)) {
		call := &ast.FunctionInvocation{Base: l.base(n.Span), Name: n.Tok.Text, Args: l.args(argList)}
		return &ast.ExprStmt{Base: l.base(n.Span), X: call}
	}

	c := &ast.ComponentStmt{Base: l.base(n.Span), Name: name, RequiresBody: known && desc.RequiresBody}
	if n.Has(cst.FlagCallForm) {
		c.Attributes = l.argAttributes(name, argList)
	} else {
		c.Attributes = l.postAnnotations(n.OfKind(cst.KindPostAnnotation))
	}
	switch {
	case block != nil:
		if known && !desc.AllowsBody {
			l.report(diag.TagBodyNotAllowed, block.Span, fmt.Sprintf("The [%s] component does not allow a body", name))
		}
		c.Body = &ast.ResolvedBody{Statements: l.block(block)}
	case c.RequiresBody:
		l.report(diag.TagRequiresBody, n.Span, fmt.Sprintf("Component [%s] requires a body.", name))
		c.Body = &ast.PendingBody{}
	default:
		c.Body = &ast.ResolvedBody{Statements: []ast.Stmt{}}
	}
	return c
}

func hasPositional(args *cst.Node) bool {
	if args == nil {
		return false
	}
	for _, a := range args.Children {
		if !a.Has(cst.FlagNamed) {
			return true
		}
	}
	return false
}

// argAttributes turns the named arguments of `cfname(...)` into attributes.
func (l *lowerer) argAttributes(component string, argList *cst.Node) []*ast.Annotation {
	var out []*ast.Annotation
	for _, a := range l.args(argList) {
		var key *ast.FQN
		switch k := a.Name.(type) {
		case *ast.Identifier:
			key = &ast.FQN{Base: k.Base, Value: k.Name}
		case *ast.StringLit:
			key = &ast.FQN{Base: k.Base, Value: k.Value}
		default:
			l.report(diag.TagAttributeShape, a.Span(), fmt.Sprintf("Component [%s] attributes must be named", component))
			continue
		}
		out = append(out, &ast.Annotation{Base: a.Base, Key: key, Value: a.Value})
	}
	return out
}
