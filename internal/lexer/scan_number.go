package lexer

import (
	"cfparse/internal/diag"
	"cfparse/internal/token"
)

// Поддержка: 123, 1.5, .5, 1e3, 1.5E-3.
// Точка без цифры после неё не входит в число: `a.1.b` не бывает, а `1.` это IntLit и Dot.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		kind = token.FloatLit
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		next := lx.cursor.PeekAt(1)
		digitAt := uint32(1)
		if next == '+' || next == '-' {
			digitAt = 2
		}
		if isDec(lx.cursor.PeekAt(digitAt)) {
			kind = token.FloatLit
			lx.cursor.BumpN(digitAt)
			for isDec(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
		}
	}
	if isIdentStartByte(lx.cursor.Peek()) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		tok := lx.emit(token.Invalid, start)
		report(lx.opts, diag.LexBadNumber, tok.Span, "Malformed number ["+tok.Text+"]")
		return tok
	}
	return lx.emit(kind, start)
}
