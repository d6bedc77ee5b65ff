package parser

import (
	"strings"

	"cfparse/internal/cst"
	"cfparse/internal/diag"
	"cfparse/internal/token"
)

var modifierWords = []string{"public", "private", "remote", "package", "static", "abstract", "final"}

func isModifier(tok token.Token) bool {
	return isWordIn(tok, modifierWords...)
}

// isFunctionDecl looks for `[modifiers] [type] function name (`.
func (p *parser) isFunctionDecl() bool {
	for i := 0; ; i++ {
		tok := p.peekN(i)
		switch {
		case tok.IsWord("function"):
			return p.peekN(i+1).Kind == token.Ident && p.peekN(i+2).Kind == token.LParen
		case tok.Kind == token.Ident, tok.Kind == token.Dot:
		case tok.Kind == token.LBracket && p.peekN(i+1).Kind == token.RBracket:
			i++
		default:
			return false
		}
	}
}

// parseFunctionDecl: [modifiers] [type] function name(params) [annotations] [{ body }]
func (p *parser) parseFunctionDecl(annos []*cst.Node) *cst.Node {
	first := p.peek()
	n := cst.New(cst.KindFunctionDecl, first.Span)
	attachDoc(n, first)
	for _, a := range annos {
		n.AddChild(a)
	}
	for isModifier(p.peek()) {
		mod := p.advance()
		m := cst.NewLeaf(cst.KindModifier, mod)
		m.Value = strings.ToLower(mod.Text)
		n.AddChild(m)
	}
	if !p.atWord("function") {
		n.AddChild(p.parseTypeRef())
	}
	p.advance() // function
	n.AddChild(cst.NewLeaf(cst.KindIdent, p.advance()))
	n.AddChild(p.parseParams())
	for _, a := range p.parsePostAnnotations(token.LBrace) {
		n.AddChild(a)
	}
	if p.at(token.LBrace) {
		n.AddChild(p.parseBlock())
		n.Span = p.spanFrom(first.Span.Start)
		return n
	}
	n.Span = p.spanFrom(first.Span.Start)
	p.endStatement()
	return n
}

// parseTypeRef: fqn [ [] ]
func (p *parser) parseTypeRef() *cst.Node {
	start := p.peek().Span.Start
	fqn := p.parseFQN(false)
	n := cst.New(cst.KindTypeRef, fqn.Span)
	n.Tok = fqn.Tok
	n.Value = fqn.Value
	if p.at(token.LBracket) && p.peekN(1).Kind == token.RBracket {
		p.advance()
		p.advance()
		n.Value += "[]"
	}
	n.Span = p.spanFrom(start)
	return n
}

// isTypedName reports whether a type reference precedes a name at the cursor.
// With withDefault set, `type name = value` counts as typed: a parameter
// reads two identifiers in a row as type and name whatever follows. A
// property has no default, so there `name key=value` stays untyped.
func (p *parser) isTypedName(withDefault bool) bool {
	i := 0
	if p.peekN(i).Kind != token.Ident {
		return false
	}
	for i++; p.peekN(i).Kind == token.Dot && p.peekN(i+1).Kind == token.Ident; i += 2 {
	}
	if p.peekN(i).Kind == token.LBracket && p.peekN(i+1).Kind == token.RBracket {
		i += 2
	}
	if p.peekN(i).Kind != token.Ident {
		return false
	}
	switch p.peekN(i + 1).Kind {
	case token.Colon:
		return false
	case token.Assign:
		return withDefault
	}
	return true
}

// parseParams: ( [param {, param}] )
func (p *parser) parseParams() *cst.Node {
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "Expected [(] to open parameter list, found "+p.describe())
	params := cst.New(cst.KindParams, open.Span)
	if !ok {
		return params
	}
	for !p.at(token.RParen) && !p.at(token.EOF) {
		check := p.mustProgress()
		params.AddChild(p.parseParam())
		if !p.at(token.Comma) {
			break
		}
		p.advance()
		if !check() {
			break
		}
	}
	p.expectClosing(token.RParen, open, diag.SynUnclosedParen, "Expected [)] to close parameter list, found "+p.describe())
	params.Span = p.spanFrom(open.Span.Start)
	return params
}

// parseParam: [required] [type] name [= default] [annotations]
func (p *parser) parseParam() *cst.Node {
	first := p.peek()
	n := cst.New(cst.KindParam, first.Span)
	attachDoc(n, first)
	if first.IsWord("required") && p.peekN(1).Kind == token.Ident {
		m := cst.NewLeaf(cst.KindModifier, p.advance())
		m.Value = "required"
		n.AddChild(m)
	}
	if p.isTypedName(true) {
		n.AddChild(p.parseTypeRef())
	}
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "Expected parameter name, found "+p.describe())
	if !ok {
		n.AddChild(cst.NewError("expected parameter name", p.diagSpan()))
		for !p.at(token.Comma) && !p.at(token.RParen) && !p.at(token.EOF) && !p.at(token.LBrace) {
			p.advance()
		}
		n.Span = p.spanFrom(first.Span.Start)
		return n
	}
	n.AddChild(cst.NewLeaf(cst.KindIdent, name))
	if p.at(token.Assign) {
		eq := p.advance()
		def := cst.New(cst.KindDefault, eq.Span)
		def.AddChild(p.parseExpression())
		def.Span = p.spanFrom(eq.Span.Start)
		n.AddChild(def)
	}
	for _, a := range p.parsePostAnnotations(token.Comma) {
		n.AddChild(a)
	}
	n.Span = p.spanFrom(first.Span.Start)
	return n
}

// parsePreAnnotations: { @fqn literal* }
func (p *parser) parsePreAnnotations() []*cst.Node {
	var out []*cst.Node
	for p.at(token.At) {
		at := p.advance()
		n := cst.New(cst.KindPreAnnotation, at.Span)
		n.AddChild(p.parseFQN(false))
		for p.startsAnnotationValue() {
			n.AddChild(p.parsePrimary())
		}
		n.Span = p.spanFrom(at.Span.Start)
		out = append(out, n)
	}
	return out
}

func (p *parser) startsAnnotationValue() bool {
	tok := p.peek()
	switch tok.Kind {
	case token.StringOpen, token.IntLit, token.FloatLit, token.LBracket:
		return true
	case token.LBrace:
		// a struct value, not a body
		k := p.peekN(1).Kind
		return k == token.RBrace || p.speculate(func() bool { p.advance(); return p.isKeyValueStart() })
	case token.Ident:
		return tok.IsWord("true") || tok.IsWord("false") || tok.IsWord("null")
	}
	return false
}

// parsePostAnnotations: { key[=value] } until stop or a non-word token.
func (p *parser) parsePostAnnotations(stop token.Kind) []*cst.Node {
	var out []*cst.Node
	for p.at(token.Ident) && !p.at(stop) {
		first := p.peek()
		n := cst.New(cst.KindPostAnnotation, first.Span)
		n.AddChild(p.parseFQN(false))
		if p.at(token.Assign) || p.at(token.Colon) {
			p.advance()
			n.AddChild(p.parseAnnotationValue())
		}
		n.Span = p.spanFrom(first.Span.Start)
		out = append(out, n)
	}
	return out
}

func (p *parser) parseAnnotationValue() *cst.Node {
	switch p.peek().Kind {
	case token.StringOpen:
		return p.parseString()
	case token.IntLit:
		return cst.NewLeaf(cst.KindInt, p.advance())
	case token.FloatLit:
		return cst.NewLeaf(cst.KindFloat, p.advance())
	case token.Ident:
		return p.parseFQN(false)
	case token.LBracket:
		return p.parseBracketLiteral()
	}
	p.err(diag.SynExpectExpression, "Expected annotation value, found "+p.describe())
	return cst.NewError("expected annotation value", p.diagSpan())
}

// parseProperty: property [type] name [annotations]; | property annotations;
func (p *parser) parseProperty(annos []*cst.Node) *cst.Node {
	kw := p.advance()
	n := cst.New(cst.KindProperty, kw.Span)
	n.Tok = &kw
	attachDoc(n, kw)
	for _, a := range annos {
		n.AddChild(a)
	}
	if p.at(token.Ident) && p.peekN(1).Kind != token.Assign && p.peekN(1).Kind != token.Colon {
		if p.isTypedName(false) {
			n.AddChild(p.parseTypeRef())
		}
		n.AddChild(cst.NewLeaf(cst.KindIdent, p.advance()))
	}
	for _, a := range p.parsePostAnnotations(token.Semicolon) {
		n.AddChild(a)
	}
	n.Span = p.spanFrom(kw.Span.Start)
	p.endStatement()
	return n
}

// isComponentDecl looks for `[@anno...] [modifiers] component|interface [attrs] {`.
func (p *parser) isComponentDecl() bool {
	return p.speculate(func() bool {
		p.parsePreAnnotations()
		for isModifier(p.peek()) {
			p.advance()
		}
		if !p.atWord("component") && !p.atWord("interface") {
			return false
		}
		k := p.peekN(1).Kind
		return k == token.LBrace || (k == token.Ident && p.peekN(2).Kind != token.LParen)
	})
}

// parseComponentDecl: [@anno...] [modifiers] component|interface [attrs] { body }
func (p *parser) parseComponentDecl() *cst.Node {
	first := p.peek()
	n := cst.New(cst.KindComponentDecl, first.Span)
	attachDoc(n, first)
	var annos []*cst.Node
	if p.at(token.At) {
		annos = p.parsePreAnnotations()
	}
	for isModifier(p.peek()) {
		mod := p.advance()
		m := cst.NewLeaf(cst.KindModifier, mod)
		m.Value = strings.ToLower(mod.Text)
		n.AddChild(m)
	}
	for _, a := range annos {
		n.AddChild(a)
	}
	kw := p.advance()
	n.Tok = &kw
	n.Value = strings.ToLower(kw.Text)
	if n.Doc == nil {
		attachDoc(n, kw)
	}
	for _, a := range p.parsePostAnnotations(token.LBrace) {
		n.AddChild(a)
	}
	n.AddChild(p.parseBlock())
	n.Span = p.spanFrom(first.Span.Start)
	return n
}

// isConstructorDecl looks for `[modifiers] constructor(...) {`.
func (p *parser) isConstructorDecl() bool {
	i := 0
	for isModifier(p.peekN(i)) {
		i++
	}
	if !p.peekN(i).IsWord("constructor") || p.peekN(i+1).Kind != token.LParen {
		return false
	}
	depth := 0
	for i++; ; i++ {
		switch p.peekN(i).Kind {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
			if depth == 0 {
				return p.peekN(i+1).Kind == token.LBrace
			}
		case token.EOF:
			return false
		}
	}
}

// parseConstructorDecl parses a constructor into a FunctionDecl node with
// Value "constructor" and no name.
func (p *parser) parseConstructorDecl() *cst.Node {
	first := p.peek()
	n := cst.New(cst.KindFunctionDecl, first.Span)
	n.Value = "constructor"
	attachDoc(n, first)
	for isModifier(p.peek()) {
		mod := p.advance()
		m := cst.NewLeaf(cst.KindModifier, mod)
		m.Value = strings.ToLower(mod.Text)
		n.AddChild(m)
	}
	p.advance() // constructor
	n.AddChild(p.parseParams())
	n.AddChild(p.parseBlock())
	n.Span = p.spanFrom(first.Span.Start)
	return n
}
