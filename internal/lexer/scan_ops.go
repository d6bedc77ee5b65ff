package lexer

import (
	"cfparse/internal/token"
)

type opSpelling struct {
	text string
	kind token.Kind
}

// Жадность: сначала 3-символьные, затем 2-символьные.
var multiOps = []opSpelling{
	{"===", token.EqEqEq},
	{"==", token.EqEq},
	{"!=", token.BangEq},
	{"<>", token.LtGt},
	{"<=", token.LtEq},
	{">=", token.GtEq},
	{"->", token.Arrow},
	{"=>", token.FatArrow},
	{"&&", token.AndAnd},
	{"||", token.OrOr},
	{"++", token.PlusPlus},
	{"--", token.MinusMinus},
	{"+=", token.PlusAssign},
	{"-=", token.MinusAssign},
	{"*=", token.StarAssign},
	{"/=", token.SlashAssign},
	{"%=", token.PercentAssign},
	{"&=", token.AmpAssign},
	{"?:", token.QuestionColon},
}

var singleOps = map[byte]token.Kind{
	'+': token.Plus, '-': token.Minus, '*': token.Star, '/': token.Slash,
	'\\': token.Backslash, '^': token.Caret, '%': token.Percent, '&': token.Amp,
	'|': token.Pipe, '!': token.Bang, '=': token.Assign, '<': token.Lt,
	'>': token.Gt, '?': token.Question, ':': token.Colon, ';': token.Semicolon,
	',': token.Comma, '.': token.Dot, '@': token.At, '(': token.LParen,
	')': token.RParen, '{': token.LBrace, '}': token.RBrace, '[': token.LBracket,
	']': token.RBracket,
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	// `?.` is safe navigation unless a digit follows (`a?.5:1` is a ternary)
	if lx.cursor.Peek() == '?' && lx.cursor.PeekAt(1) == '.' && !isDec(lx.cursor.PeekAt(2)) {
		lx.cursor.BumpN(2)
		return lx.emit(token.QuestionDot, start)
	}
	for _, op := range multiOps {
		if lx.cursor.HasPrefixFold(op.text) {
			lx.cursor.BumpN(uint32(len(op.text))) // #nosec G115 -- short literals
			return lx.emit(op.kind, start)
		}
	}
	if k, ok := singleOps[lx.cursor.Peek()]; ok {
		lx.cursor.Bump()
		return lx.emit(k, start)
	}
	return lx.scanUnknown()
}
