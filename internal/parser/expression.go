package parser

import (
	"strings"

	"cfparse/internal/cst"
	"cfparse/internal/diag"
	"cfparse/internal/token"
)

// parseExpression - главная точка входа для парсинга выражений
func (p *parser) parseExpression() *cst.Node {
	return p.parseAssign()
}

// parseAssign: [var] target (= | += | ...) value, right-associative.
func (p *parser) parseAssign() *cst.Node {
	start := p.peek().Span.Start
	isVar := false
	if p.atWord("var") && (p.peekN(1).Kind == token.Ident || p.peekN(1).Kind == token.StringOpen) {
		p.advance()
		isVar = true
	}
	left := p.parseTernary()
	if !p.peek().IsAssign() {
		if isVar {
			n := cst.New(cst.KindVarDecl, p.spanFrom(start))
			n.AddChild(left)
			return n
		}
		return left
	}
	opTok := p.advance()
	right := p.parseAssign()
	n := cst.New(cst.KindAssign, p.spanFrom(start))
	n.Tok = &opTok
	n.Value = opTok.Text
	if isVar {
		n.Flags |= cst.FlagVar
	}
	n.AddChild(left)
	n.AddChild(right)
	return n
}

// parseTernary: cond ? a : b
func (p *parser) parseTernary() *cst.Node {
	start := p.peek().Span.Start
	cond := p.parseBinary(precElvis)
	if !p.at(token.Question) {
		return cond
	}
	p.advance()
	then := p.parseAssign()
	p.expect(token.Colon, diag.SynExpectColon, "Expected [:] in ternary expression, found "+p.describe())
	els := p.parseAssign()
	n := cst.New(cst.KindTernary, p.spanFrom(start))
	n.AddChild(cond)
	n.AddChild(then)
	n.AddChild(els)
	return n
}

// parseBinary реализует Pratt parsing для бинарных операторов
func (p *parser) parseBinary(minPrec int) *cst.Node {
	start := p.peek().Span.Start
	var left *cst.Node
	if p.isNotPrefix() {
		opTok := p.advance()
		operand := p.parseBinary(precNot + 1)
		left = cst.New(cst.KindUnary, p.spanFrom(start))
		left.Tok = &opTok
		left.Value = "NOT"
		left.AddChild(operand)
	} else {
		left = p.parseUnary()
	}

	for {
		op, n, ok := p.peekBinaryOp()
		if !ok || op.prec < minPrec {
			return left
		}
		opTok := p.peek()
		for range n {
			p.advance()
		}
		next := op.prec + 1
		if op.rightAssoc {
			next = op.prec
		}
		right := p.parseBinary(next)
		bin := cst.New(cst.KindBinary, p.spanFrom(start))
		bin.Tok = &opTok
		bin.Value = op.value
		bin.AddChild(left)
		bin.AddChild(right)
		left = bin
	}
}

// parseUnary: prefix - + ++ --. The operand is a postfix expression, so
// `-a^b` groups as `(-a)^b`.
func (p *parser) parseUnary() *cst.Node {
	start := p.peek().Span.Start
	switch p.peek().Kind {
	case token.Minus, token.Plus:
		opTok := p.advance()
		n := cst.New(cst.KindUnary, opTok.Span)
		n.Tok = &opTok
		n.Value = opTok.Text
		n.AddChild(p.parseUnary())
		n.Span = p.spanFrom(start)
		return n
	case token.PlusPlus, token.MinusMinus:
		opTok := p.advance()
		n := cst.New(cst.KindUnary, opTok.Span)
		n.Tok = &opTok
		n.Value = "pre" + opTok.Text
		n.AddChild(p.parseUnary())
		n.Span = p.spanFrom(start)
		return n
	case token.Bang:
		opTok := p.advance()
		n := cst.New(cst.KindUnary, opTok.Span)
		n.Tok = &opTok
		n.Value = "NOT"
		n.AddChild(p.parseUnary())
		n.Span = p.spanFrom(start)
		return n
	}
	return p.parsePostfix(p.parsePrimary())
}

// parsePostfix handles member access, indexing, calls and ++/--.
func (p *parser) parsePostfix(left *cst.Node) *cst.Node {
	start := left.Span.Start
	for {
		switch p.peek().Kind {
		case token.Dot, token.QuestionDot:
			dot := p.advance()
			if p.at(token.LBracket) && dot.Kind == token.QuestionDot {
				left = p.parseIndex(left, start, true)
				continue
			}
			name := p.peek()
			if name.Kind != token.Ident && name.Kind != token.IntLit {
				p.err(diag.SynExpectIdentifier, "Expected identifier after ["+dot.Text+"], found "+p.describe())
				return left
			}
			p.advance()
			n := cst.New(cst.KindDot, p.spanFrom(start))
			if dot.Kind == token.QuestionDot {
				n.Flags |= cst.FlagSafe
			}
			n.AddChild(left)
			n.AddChild(cst.NewLeaf(cst.KindIdent, name))
			left = n
		case token.LBracket:
			left = p.parseIndex(left, start, false)
		case token.LParen:
			args := p.parseArgs()
			n := cst.New(cst.KindCall, p.spanFrom(start))
			n.AddChild(left)
			n.AddChild(args)
			left = n
		case token.PlusPlus, token.MinusMinus:
			opTok := p.advance()
			n := cst.New(cst.KindPostfix, p.spanFrom(start))
			n.Tok = &opTok
			n.Value = opTok.Text
			n.AddChild(left)
			return n
		default:
			return left
		}
	}
}

func (p *parser) parseIndex(left *cst.Node, start uint32, safe bool) *cst.Node {
	open := p.advance()
	idx := p.parseExpression()
	p.expectClosing(token.RBracket, open, diag.SynUnclosedBracket, "Expected []] to close index, found "+p.describe())
	n := cst.New(cst.KindIndex, p.spanFrom(start))
	if safe {
		n.Flags |= cst.FlagSafe
	}
	n.AddChild(left)
	n.AddChild(idx)
	return n
}

// parseArgs: ( [arg {, arg}] )
func (p *parser) parseArgs() *cst.Node {
	open := p.advance()
	args := cst.New(cst.KindArgs, open.Span)
	for !p.at(token.RParen) && !p.at(token.EOF) {
		progressed := p.mustProgress()
		args.AddChild(p.parseArg())
		if !p.at(token.Comma) {
			break
		}
		p.advance()
		if !progressed() {
			break
		}
	}
	p.expectClosing(token.RParen, open, diag.SynUnclosedParen, "Expected [)] to close argument list, found "+p.describe())
	args.Span = p.spanFrom(open.Span.Start)
	return args
}

func (p *parser) parseArg() *cst.Node {
	start := p.peek().Span.Start
	arg := cst.New(cst.KindArg, p.peek().Span)
	if p.isNamedArg() {
		arg.Flags |= cst.FlagNamed
		if p.at(token.StringOpen) {
			arg.AddChild(p.parseString())
		} else {
			arg.AddChild(cst.NewLeaf(cst.KindIdent, p.advance()))
		}
		p.advance() // = or :
	}
	arg.AddChild(p.parseExpression())
	arg.Span = p.spanFrom(start)
	return arg
}

// isNamedArg: ident (= | :) value, or "string" (= | :) value
func (p *parser) isNamedArg() bool {
	switch p.peek().Kind {
	case token.Ident:
		k := p.peekN(1).Kind
		return k == token.Assign || k == token.Colon
	case token.StringOpen:
		i := 1
		for ; p.peekN(i).Kind == token.StringText; i++ {
		}
		if p.peekN(i).Kind != token.StringClose {
			return false
		}
		k := p.peekN(i + 1).Kind
		return k == token.Assign || k == token.Colon
	}
	return false
}

func isWordIn(tok token.Token, words ...string) bool {
	if tok.Kind != token.Ident {
		return false
	}
	for _, w := range words {
		if strings.EqualFold(tok.Text, w) {
			return true
		}
	}
	return false
}
