package parser

import (
	"cfparse/internal/cst"
	"cfparse/internal/diag"
	"cfparse/internal/token"
)

// parseCondition: ( expr )
func (p *parser) parseCondition(what string) *cst.Node {
	p.expect(token.LParen, diag.SynUnexpectedToken, "Expected [(] after "+what+", found "+p.describe())
	cond := p.parseExpression()
	p.expect(token.RParen, diag.SynUnclosedParen, "Expected [)] to close "+what+" condition, found "+p.describe())
	return cond
}

func (p *parser) parseIf() *cst.Node {
	kw := p.advance()
	n := cst.New(cst.KindIf, kw.Span)
	n.Tok = &kw
	n.AddChild(p.parseCondition("if"))
	n.AddChild(p.parseBody())
	if p.atWord("else") {
		p.advance()
		n.AddChild(p.parseBody())
	}
	n.Span = p.spanFrom(kw.Span.Start)
	return n
}

func (p *parser) parseWhile() *cst.Node {
	kw := p.advance()
	n := cst.New(cst.KindWhile, kw.Span)
	n.Tok = &kw
	n.AddChild(p.parseCondition("while"))
	n.AddChild(p.parseBody())
	n.Span = p.spanFrom(kw.Span.Start)
	return n
}

// parseDoWhile: do body while (cond);
func (p *parser) parseDoWhile() *cst.Node {
	kw := p.advance()
	n := cst.New(cst.KindDoWhile, kw.Span)
	n.Tok = &kw
	n.AddChild(p.parseBody())
	if !p.atWord("while") {
		p.err(diag.SynUnexpectedToken, "Expected [while] after do body, found "+p.describe())
		n.Span = p.spanFrom(kw.Span.Start)
		return n
	}
	p.advance()
	n.AddChild(p.parseCondition("while"))
	n.Span = p.spanFrom(kw.Span.Start)
	p.endStatement()
	return n
}

// parseFor picks between `for (x in y)` and `for (init; cond; step)`.
func (p *parser) parseFor() *cst.Node {
	kw := p.advance()
	p.advance() // (
	isIn := p.speculate(func() bool {
		if p.atWord("var") {
			p.advance()
		}
		p.parsePostfix(p.parsePrimary())
		return p.atWord("in")
	})
	if isIn {
		return p.parseForIn(kw)
	}
	return p.parseForIndex(kw)
}

func (p *parser) parseForIn(kw token.Token) *cst.Node {
	n := cst.New(cst.KindForIn, kw.Span)
	n.Tok = &kw
	if p.atWord("var") {
		p.advance()
		n.Flags |= cst.FlagVar
	}
	n.AddChild(p.parsePostfix(p.parsePrimary()))
	p.advance() // in
	n.AddChild(p.parseExpression())
	p.expect(token.RParen, diag.SynForBadHeader, "Expected [)] to close for-in header, found "+p.describe())
	n.AddChild(p.parseBody())
	n.Span = p.spanFrom(kw.Span.Start)
	return n
}

// parseForIndex: every clause may be omitted and is then an Empty node.
func (p *parser) parseForIndex(kw token.Token) *cst.Node {
	n := cst.New(cst.KindForIndex, kw.Span)
	n.Tok = &kw
	clause := func(stop token.Kind) *cst.Node {
		if p.at(stop) {
			return cst.New(cst.KindEmpty, p.peek().Span.StartPoint())
		}
		return p.parseExpression()
	}
	n.AddChild(clause(token.Semicolon))
	p.expect(token.Semicolon, diag.SynForBadHeader, "Expected [;] in for header, found "+p.describe())
	n.AddChild(clause(token.Semicolon))
	p.expect(token.Semicolon, diag.SynForBadHeader, "Expected [;] in for header, found "+p.describe())
	n.AddChild(clause(token.RParen))
	p.expect(token.RParen, diag.SynForBadHeader, "Expected [)] to close for header, found "+p.describe())
	n.AddChild(p.parseBody())
	n.Span = p.spanFrom(kw.Span.Start)
	return n
}

// parseSwitch: switch (expr) { case v: ... default: ... }
func (p *parser) parseSwitch() *cst.Node {
	kw := p.advance()
	n := cst.New(cst.KindSwitch, kw.Span)
	n.Tok = &kw
	n.AddChild(p.parseCondition("switch"))
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "Expected [{] to open switch body, found "+p.describe()); !ok {
		n.Span = p.spanFrom(kw.Span.Start)
		return n
	}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if !p.atWord("case") && !p.atWord("default") {
			p.err(diag.SynUnexpectedToken, "Expected [case] or [default] in switch body, found "+p.describe())
			p.syncStmt()
			if p.at(token.RBrace) {
				break
			}
			continue
		}
		n.AddChild(p.parseCase())
	}
	p.expect(token.RBrace, diag.SynUnclosedBrace, "Expected [}] to close switch body, found "+p.describe())
	n.Span = p.spanFrom(kw.Span.Start)
	return n
}

func (p *parser) parseCase() *cst.Node {
	kw := p.advance()
	c := cst.New(cst.KindCase, kw.Span)
	c.Tok = &kw
	if kw.IsWord("default") {
		c.Value = "default"
	} else {
		c.AddChild(p.parseTernary())
	}
	p.expect(token.Colon, diag.SynExpectColon, "Expected [:] after case value, found "+p.describe())
	body := cst.New(cst.KindBlock, p.peek().Span.StartPoint())
	bodyStart := p.peek().Span.Start
	for !p.at(token.RBrace) && !p.at(token.EOF) && !p.atCaseLabel() {
		check := p.mustProgress()
		body.AddChild(p.parseStatement())
		check()
	}
	if len(body.Children) > 0 {
		body.Span = p.spanFrom(bodyStart)
	}
	c.AddChild(body)
	c.Span = p.spanFrom(kw.Span.Start)
	return c
}

func (p *parser) atCaseLabel() bool {
	if p.atWord("case") {
		return !isAccessAfter(p.peekN(1))
	}
	return p.atWord("default") && p.peekN(1).Kind == token.Colon
}

// parseTry: try { } catch (Type | "type" e) { } finally { }
func (p *parser) parseTry() *cst.Node {
	kw := p.advance()
	n := cst.New(cst.KindTry, kw.Span)
	n.Tok = &kw
	n.AddChild(p.parseBlock())
	for p.atWord("catch") && p.peekN(1).Kind == token.LParen {
		n.AddChild(p.parseCatch())
	}
	if p.atWord("finally") {
		fin := p.advance()
		f := cst.New(cst.KindFinally, fin.Span)
		f.AddChild(p.parseBlock())
		f.Span = p.spanFrom(fin.Span.Start)
		n.AddChild(f)
	}
	n.Span = p.spanFrom(kw.Span.Start)
	return n
}

func (p *parser) parseCatch() *cst.Node {
	kw := p.advance()
	p.advance() // (
	c := cst.New(cst.KindCatch, kw.Span)
	c.Tok = &kw
	types := cst.New(cst.KindCatchTypes, p.peek().Span.StartPoint())
	typesStart := p.peek().Span.Start
	for {
		if p.at(token.StringOpen) {
			types.AddChild(p.parseString())
		} else {
			types.AddChild(p.parseFQN(false))
		}
		if !p.at(token.Pipe) {
			break
		}
		p.advance()
	}
	types.Span = p.spanFrom(typesStart)

	// `catch (e)` names only the variable
	if p.at(token.RParen) && len(types.Children) == 1 {
		only := types.Children[0]
		if only.Kind == cst.KindFQN && only.Tok != nil && only.Value == only.Tok.Text {
			types.Children = nil
			types.Span = only.Span.StartPoint()
			c.AddChild(types)
			c.AddChild(cst.NewLeaf(cst.KindIdent, *only.Tok))
			p.advance()
			c.AddChild(p.parseBlock())
			c.Span = p.spanFrom(kw.Span.Start)
			return c
		}
	}
	c.AddChild(types)
	if name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "Expected catch variable name, found "+p.describe()); ok {
		c.AddChild(cst.NewLeaf(cst.KindIdent, name))
	}
	p.expect(token.RParen, diag.SynUnclosedParen, "Expected [)] to close catch header, found "+p.describe())
	c.AddChild(p.parseBlock())
	c.Span = p.spanFrom(kw.Span.Start)
	return c
}

// parseThrow: throw; | throw expr; | throw(message=..., type=...);
func (p *parser) parseThrow() *cst.Node {
	kw := p.advance()
	n := cst.New(cst.KindThrow, kw.Span)
	n.Tok = &kw
	switch {
	case p.at(token.LParen) && p.speculate(func() bool { p.advance(); return p.isNamedArg() }):
		n.AddChild(p.parseArgs())
	case !p.atStatementEnd():
		n.AddChild(p.parseExpression())
	}
	n.Span = p.spanFrom(kw.Span.Start)
	p.endStatement()
	return n
}

func (p *parser) parseReturn() *cst.Node {
	kw := p.advance()
	n := cst.New(cst.KindReturn, kw.Span)
	n.Tok = &kw
	if !p.atStatementEnd() {
		n.AddChild(p.parseExpression())
	}
	n.Span = p.spanFrom(kw.Span.Start)
	p.endStatement()
	return n
}

// parseKeywordStmt handles rethrow, break, continue and assert.
func (p *parser) parseKeywordStmt(kind cst.Kind, withExpr bool) *cst.Node {
	kw := p.advance()
	n := cst.New(kind, kw.Span)
	n.Tok = &kw
	if withExpr {
		n.AddChild(p.parseExpression())
	} else if kind == cst.KindBreak || kind == cst.KindContinue {
		// optional label
		if p.at(token.Ident) && !p.atStatementEnd() {
			n.AddChild(cst.NewLeaf(cst.KindIdent, p.advance()))
		}
	}
	n.Span = p.spanFrom(kw.Span.Start)
	p.endStatement()
	return n
}

// parseInclude: include "path"; | include template="path";
func (p *parser) parseInclude() *cst.Node {
	kw := p.advance()
	n := cst.New(cst.KindInclude, kw.Span)
	n.Tok = &kw
	if p.at(token.Ident) && p.peekN(1).Kind == token.Assign {
		for _, a := range p.parsePostAnnotations(token.Semicolon) {
			n.AddChild(a)
		}
	} else {
		n.AddChild(p.parseExpression())
	}
	n.Span = p.spanFrom(kw.Span.Start)
	p.endStatement()
	return n
}

func (p *parser) atStatementEnd() bool {
	switch p.peek().Kind {
	case token.Semicolon, token.RBrace, token.EOF:
		return true
	}
	return false
}
