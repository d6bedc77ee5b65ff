package parser

import (
	"cfparse/internal/cst"
	"cfparse/internal/diag"
	"cfparse/internal/token"
)

// parseScriptUnit: import* [component-decl] statement*
func (p *parser) parseScriptUnit() *cst.Node {
	start := p.peek().Span.Start
	root := cst.New(cst.KindScript, p.peek().Span.StartPoint())
	for p.atWord("import") {
		root.AddChild(p.parseImport())
	}
	if p.isComponentDecl() {
		root.AddChild(p.parseComponentDecl())
	}
	p.parseStatementsInto(root)
	root.Span = p.spanFrom(start)
	return root
}

// parseStatementsInto parses statements until `}` or EOF.
func (p *parser) parseStatementsInto(parent *cst.Node) {
	for !p.at(token.EOF) && !p.at(token.RBrace) {
		check := p.mustProgress()
		parent.AddChild(p.parseStatement())
		check()
	}
}

// parseBlock: { statement* }
func (p *parser) parseBlock() *cst.Node {
	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "Expected [{], found "+p.describe())
	if !ok {
		return cst.New(cst.KindBlock, open.Span.StartPoint())
	}
	block := cst.New(cst.KindBlock, open.Span)
	p.parseStatementsInto(block)
	p.expectClosing(token.RBrace, open, diag.SynUnclosedBrace, "Expected [}] to close block, found "+p.describe())
	block.Span = p.spanFrom(open.Span.Start)
	return block
}

// parseBody parses the statement governed by if/while/for; an empty `;`
// becomes an Empty node.
func (p *parser) parseBody() *cst.Node {
	at := p.peek().Span
	if st := p.parseStatement(); st != nil {
		return st
	}
	return cst.New(cst.KindEmpty, at)
}

// parseStatement returns nil for an empty statement.
func (p *parser) parseStatement() *cst.Node {
	tok := p.peek()
	switch tok.Kind {
	case token.Semicolon:
		p.advance()
		return nil
	case token.LBrace:
		return p.parseBlock()
	case token.At:
		return p.parseAnnotatedDecl()
	case token.Ident:
	default:
		return p.parseExprStmt()
	}

	next := p.peekN(1)
	switch {
	case tok.IsWord("if") && next.Kind == token.LParen:
		return p.parseIf()
	case tok.IsWord("while") && next.Kind == token.LParen:
		return p.parseWhile()
	case tok.IsWord("do") && (next.Kind == token.LBrace || next.Kind == token.Ident):
		return p.parseDoWhile()
	case tok.IsWord("for") && next.Kind == token.LParen:
		return p.parseFor()
	case tok.IsWord("switch") && next.Kind == token.LParen:
		return p.parseSwitch()
	case tok.IsWord("try") && next.Kind == token.LBrace:
		return p.parseTry()
	case tok.IsWord("throw") && !isAccessAfter(next):
		return p.parseThrow()
	case tok.IsWord("rethrow") && !isAccessAfter(next):
		return p.parseKeywordStmt(cst.KindRethrow, false)
	case tok.IsWord("assert") && !isAccessAfter(next):
		return p.parseKeywordStmt(cst.KindAssert, true)
	case tok.IsWord("break") && !isAccessAfter(next):
		return p.parseKeywordStmt(cst.KindBreak, false)
	case tok.IsWord("continue") && !isAccessAfter(next):
		return p.parseKeywordStmt(cst.KindContinue, false)
	case tok.IsWord("return") && !isAccessAfter(next):
		return p.parseReturn()
	case tok.IsWord("include") && !isAccessAfter(next):
		return p.parseInclude()
	case tok.IsWord("import") && next.Kind == token.Ident:
		return p.parseImport()
	case tok.IsWord("property") && next.Kind == token.Ident:
		return p.parseProperty(nil)
	case p.isConstructorDecl():
		return p.parseConstructorDecl()
	case p.isFunctionDecl():
		return p.parseFunctionDecl(nil)
	case p.isComponentDecl():
		return p.parseComponentDecl()
	case p.isScriptComponent():
		return p.parseScriptComponent()
	}
	return p.parseExprStmt()
}

// isAccessAfter reports whether next makes a keyword-looking word an ordinary
// identifier, e.g. `return.x` or `include = 1`.
func isAccessAfter(next token.Token) bool {
	switch next.Kind {
	case token.Dot, token.QuestionDot, token.Assign, token.LBracket, token.PlusAssign,
		token.MinusAssign, token.StarAssign, token.SlashAssign, token.AmpAssign, token.PercentAssign:
		return true
	}
	return false
}

func (p *parser) parseExprStmt() *cst.Node {
	start := p.peek().Span.Start
	expr := p.parseExpression()
	n := cst.New(cst.KindExprStmt, p.spanFrom(start))
	n.AddChild(expr)
	p.endStatement()
	return n
}

// endStatement consumes `;`. It may be omitted before `}` or at end of input.
func (p *parser) endStatement() {
	switch p.peek().Kind {
	case token.Semicolon:
		p.advance()
	case token.RBrace, token.EOF:
	default:
		p.err(diag.SynExpectSemicolon, "Expected [;], found "+p.describe())
		p.syncStmt()
	}
}

// parseAnnotatedDecl handles `@anno ... function|property|component`.
func (p *parser) parseAnnotatedDecl() *cst.Node {
	if p.isComponentDecl() {
		return p.parseComponentDecl()
	}
	first := p.peek()
	annos := p.parsePreAnnotations()
	var n *cst.Node
	switch {
	case p.atWord("property"):
		n = p.parseProperty(annos)
	case p.isFunctionDecl():
		n = p.parseFunctionDecl(annos)
	default:
		p.err(diag.SynUnexpectedToken, "Expected declaration after annotation, found "+p.describe())
		n = cst.NewError("dangling annotation", p.spanFrom(first.Span.Start))
		p.syncStmt()
		return n
	}
	n.Span = p.spanFrom(first.Span.Start)
	attachDoc(n, first)
	return n
}

// isScriptComponent: `name {`, `name attr=...`, `name attr=... {` or `cfname(`.
func (p *parser) isScriptComponent() bool {
	tok, next := p.peek(), p.peekN(1)
	if token.IsKeyword(tok.Text) || token.IsScope(tok.Text) {
		return false
	}
	switch next.Kind {
	case token.LBrace:
		return true
	case token.Ident:
		k := p.peekN(2).Kind
		return k == token.Assign || k == token.Colon
	case token.LParen:
		return len(tok.Text) > 2 && (tok.Text[0] == 'c' || tok.Text[0] == 'C') &&
			(tok.Text[1] == 'f' || tok.Text[1] == 'F')
	}
	return false
}

// parseScriptComponent: name attr* [{ body }] | cfname(args) [{ body }]
func (p *parser) parseScriptComponent() *cst.Node {
	nameTok := p.advance()
	n := cst.New(cst.KindScriptComponent, nameTok.Span)
	n.Tok = &nameTok
	n.Value = nameTok.Text
	if p.at(token.LParen) {
		n.Flags |= cst.FlagCallForm
		n.Value = nameTok.Text[2:]
		n.AddChild(p.parseArgs())
	} else {
		for _, a := range p.parsePostAnnotations(token.LBrace) {
			n.AddChild(a)
		}
	}
	if p.at(token.LBrace) {
		n.AddChild(p.parseBlock())
		n.Span = p.spanFrom(nameTok.Span.Start)
		return n
	}
	n.Span = p.spanFrom(nameTok.Span.Start)
	p.endStatement()
	return n
}
