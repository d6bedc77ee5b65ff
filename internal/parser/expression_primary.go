package parser

import (
	"strings"

	"cfparse/internal/cst"
	"cfparse/internal/diag"
	"cfparse/internal/token"
)

func (p *parser) parsePrimary() *cst.Node {
	tok := p.peek()
	switch tok.Kind {
	case token.IntLit:
		return cst.NewLeaf(cst.KindInt, p.advance())
	case token.FloatLit:
		return cst.NewLeaf(cst.KindFloat, p.advance())
	case token.StringOpen:
		return p.parseString()
	case token.Hash:
		return p.parseHashExpr()
	case token.LParen:
		if p.isArrowParams() {
			return p.parseArrowFunction()
		}
		return p.parseParen()
	case token.LBracket:
		return p.parseBracketLiteral()
	case token.LBrace:
		return p.parseStruct(false)
	case token.Ident:
		next := p.peekN(1)
		switch {
		case tok.IsWord("true") || tok.IsWord("false"):
			return cst.NewLeaf(cst.KindBool, p.advance())
		case tok.IsWord("null"):
			return cst.NewLeaf(cst.KindNull, p.advance())
		case tok.IsWord("new") && (next.Kind == token.Ident || next.Kind == token.StringOpen):
			return p.parseNew()
		case tok.IsWord("function") && next.Kind == token.LParen:
			return p.parseClosure()
		case next.Kind == token.FatArrow || next.Kind == token.Arrow:
			return p.parseArrowFunction()
		}
		return cst.NewLeaf(cst.KindIdent, p.advance())
	}

	p.err(diag.SynExpectExpression, "Expected expression, found "+p.describe())
	n := cst.NewError("expected expression", p.diagSpan())
	switch tok.Kind {
	case token.Semicolon, token.RBrace, token.RParen, token.RBracket, token.Comma,
		token.Colon, token.Hash, token.StringClose, token.EOF:
	default:
		p.advance()
	}
	return n
}

func (p *parser) parseParen() *cst.Node {
	open := p.advance()
	inner := p.parseExpression()
	p.expectClosing(token.RParen, open, diag.SynUnclosedParen, "Expected [)] to close parenthesis, found "+p.describe())
	n := cst.New(cst.KindParen, p.spanFrom(open.Span.Start))
	n.AddChild(inner)
	return n
}

// parseString: open quote, text runs and `#expr#` parts, close quote.
func (p *parser) parseString() *cst.Node {
	open := p.advance()
	n := cst.New(cst.KindString, open.Span)
	n.Tok = &open
	for {
		switch p.peek().Kind {
		case token.StringText:
			n.AddChild(cst.NewLeaf(cst.KindStringPart, p.advance()))
		case token.Hash:
			hash := p.advance()
			interp := cst.New(cst.KindInterp, hash.Span)
			interp.AddChild(p.parseExpression())
			if !p.at(token.Hash) && !p.at(token.EOF) {
				p.err(diag.SynUnexpectedToken, "Expected [#] to close interpolation, found "+p.describe())
				for !p.at(token.Hash) && !p.at(token.StringClose) && !p.at(token.EOF) {
					p.advance()
				}
			}
			if p.at(token.Hash) {
				p.advance()
			}
			interp.Span = p.spanFrom(hash.Span.Start)
			n.AddChild(interp)
		case token.StringClose:
			p.advance()
			n.Span = p.spanFrom(open.Span.Start)
			return n
		default:
			// EOF: the lexer mode check reports the open quote
			n.Span = p.spanFrom(open.Span.Start)
			return n
		}
	}
}

// parseHashExpr: `#expr#` used as an expression.
func (p *parser) parseHashExpr() *cst.Node {
	open := p.advance()
	inner := p.parseExpression()
	p.expect(token.Hash, diag.SynUnexpectedToken, "Expected [#] to close expression, found "+p.describe())
	n := cst.New(cst.KindHashExpr, p.spanFrom(open.Span.Start))
	n.AddChild(inner)
	return n
}

// parseBracketLiteral: `[a, b]`, `[k: v]` or the empty ordered struct `[:]`.
func (p *parser) parseBracketLiteral() *cst.Node {
	if (p.peekN(1).Kind == token.Colon || p.peekN(1).Kind == token.Assign) && p.peekN(2).Kind == token.RBracket {
		open := p.advance()
		p.advance()
		p.advance()
		n := cst.New(cst.KindStruct, p.spanFrom(open.Span.Start))
		n.Flags |= cst.FlagOrdered
		return n
	}
	save := p.pos
	p.advance()
	ordered := p.isKeyValueStart()
	p.pos = save
	if ordered {
		return p.parseStruct(true)
	}

	open := p.advance()
	n := cst.New(cst.KindArray, open.Span)
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		progressed := p.mustProgress()
		n.AddChild(p.parseExpression())
		if !p.at(token.Comma) {
			break
		}
		p.advance()
		if !progressed() {
			break
		}
	}
	p.expectClosing(token.RBracket, open, diag.SynUnclosedBracket, "Expected []] to close array literal, found "+p.describe())
	n.Span = p.spanFrom(open.Span.Start)
	return n
}

func (p *parser) isKeyValueStart() bool {
	if p.at(token.IntLit) {
		k := p.peekN(1).Kind
		return k == token.Colon || k == token.Assign
	}
	return p.isNamedArg()
}

// parseStruct: `{k: v, k = v}` or, when ordered, `[k: v]`.
func (p *parser) parseStruct(ordered bool) *cst.Node {
	open := p.advance()
	closer, closeMsg := token.RBrace, "Expected [}] to close struct literal, found "
	if ordered {
		closer, closeMsg = token.RBracket, "Expected []] to close struct literal, found "
	}
	n := cst.New(cst.KindStruct, open.Span)
	if ordered {
		n.Flags |= cst.FlagOrdered
	}
	for !p.at(closer) && !p.at(token.EOF) {
		progressed := p.mustProgress()
		n.AddChild(p.parseStructEntry())
		if !p.at(token.Comma) {
			break
		}
		p.advance()
		if !progressed() {
			break
		}
	}
	code := diag.SynUnclosedBrace
	if ordered {
		code = diag.SynUnclosedBracket
	}
	p.expect(closer, code, closeMsg+p.describe())
	n.Span = p.spanFrom(open.Span.Start)
	return n
}

func (p *parser) parseStructEntry() *cst.Node {
	start := p.peek().Span.Start
	entry := cst.New(cst.KindStructEntry, p.peek().Span)
	switch p.peek().Kind {
	case token.Ident:
		entry.AddChild(cst.NewLeaf(cst.KindIdent, p.advance()))
	case token.IntLit:
		entry.AddChild(cst.NewLeaf(cst.KindInt, p.advance()))
	case token.StringOpen:
		entry.AddChild(p.parseString())
	default:
		entry.AddChild(p.parsePrimary())
	}
	if p.at(token.Colon) || p.at(token.Assign) {
		p.advance()
	} else {
		p.err(diag.SynExpectColon, "Expected [:] or [=] after struct key, found "+p.describe())
	}
	entry.AddChild(p.parseExpression())
	entry.Span = p.spanFrom(start)
	return entry
}

// parseNew: new [prefix:]fqn(args) | new "fqn"(args)
func (p *parser) parseNew() *cst.Node {
	kw := p.advance()
	n := cst.New(cst.KindNew, kw.Span)
	n.Tok = &kw
	if p.at(token.Ident) && p.peekN(1).Kind == token.Colon {
		n.Value = p.advance().Text
		p.advance()
	}
	if p.at(token.StringOpen) {
		n.AddChild(p.parseString())
	} else {
		n.AddChild(p.parseFQN(false))
	}
	if p.at(token.LParen) {
		n.AddChild(p.parseArgs())
	} else {
		n.AddChild(cst.New(cst.KindArgs, p.peek().Span.StartPoint()))
	}
	n.Span = p.spanFrom(kw.Span.Start)
	return n
}

// parseFQN: ident {. ident} [.*]
func (p *parser) parseFQN(allowStar bool) *cst.Node {
	first, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "Expected identifier, found "+p.describe())
	if !ok {
		return cst.NewError("expected identifier", first.Span)
	}
	parts := []string{first.Text}
	for p.at(token.Dot) {
		next := p.peekN(1)
		if next.Kind == token.Ident {
			p.advance()
			parts = append(parts, p.advance().Text)
			continue
		}
		if allowStar && next.Kind == token.Star {
			p.advance()
			p.advance()
			parts = append(parts, "*")
		}
		break
	}
	n := cst.New(cst.KindFQN, p.spanFrom(first.Span.Start))
	n.Tok = &first
	n.Value = strings.Join(parts, ".")
	return n
}

// isArrowParams checks for `( ... ) =>` or `( ... ) ->`.
func (p *parser) isArrowParams() bool {
	depth := 0
	for i := 0; ; i++ {
		switch p.peekN(i).Kind {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
			if depth == 0 {
				k := p.peekN(i + 1).Kind
				return k == token.FatArrow || k == token.Arrow
			}
		case token.EOF, token.Semicolon, token.LBrace:
			return false
		}
	}
}

// parseArrowFunction: (params) => body | x -> body
func (p *parser) parseArrowFunction() *cst.Node {
	start := p.peek().Span.Start
	var params *cst.Node
	if p.at(token.Ident) {
		name := p.advance()
		params = cst.New(cst.KindParams, name.Span)
		param := cst.New(cst.KindParam, name.Span)
		param.AddChild(cst.NewLeaf(cst.KindIdent, name))
		params.AddChild(param)
	} else {
		params = p.parseParams()
	}
	arrow := p.advance()
	n := cst.New(cst.KindLambda, arrow.Span)
	n.Tok = &arrow
	n.Value = arrow.Text
	n.AddChild(params)
	if p.at(token.LBrace) {
		n.AddChild(p.parseBlock())
	} else {
		n.AddChild(p.parseAssign())
	}
	n.Span = p.spanFrom(start)
	return n
}

// parseClosure: function(params) [annotations] { body }
func (p *parser) parseClosure() *cst.Node {
	kw := p.advance()
	n := cst.New(cst.KindClosure, kw.Span)
	n.Tok = &kw
	n.AddChild(p.parseParams())
	for _, a := range p.parsePostAnnotations(token.LBrace) {
		n.AddChild(a)
	}
	n.AddChild(p.parseBlock())
	n.Span = p.spanFrom(kw.Span.Start)
	return n
}
