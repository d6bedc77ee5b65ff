package parser

import (
	"cfparse/internal/cst"
	"cfparse/internal/diag"
	"cfparse/internal/token"
)

// parseImport: import [prefix:]fqn[.*] [as alias]; | import "fqn";
func (p *parser) parseImport() *cst.Node {
	kw := p.advance()
	n := cst.New(cst.KindImport, kw.Span)
	n.Tok = &kw
	switch {
	case p.at(token.StringOpen):
		n.AddChild(p.parseString())
	case p.at(token.Ident):
		if p.peekN(1).Kind == token.Colon {
			n.Value = p.advance().Text
			p.advance()
		}
		n.AddChild(p.parseFQN(true))
	default:
		p.err(diag.SynExpectIdentifier, "Expected import path, found "+p.describe())
	}
	if p.atWord("as") {
		p.advance()
		if alias, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "Expected import alias, found "+p.describe()); ok {
			n.AddChild(cst.NewLeaf(cst.KindIdent, alias))
		}
	}
	n.Span = p.spanFrom(kw.Span.Start)
	p.endStatement()
	return n
}
