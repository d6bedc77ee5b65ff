package lexer

import (
	"cfparse/internal/token"
)

// openString emits the opening quote and enters string mode.
func (lx *Lexer) openString(q byte) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	tok := lx.emit(token.StringOpen, start)
	lx.push(Frame{Mode: ModeString, Quote: q, Open: tok.Span})
	return tok
}

// scanStringPart scans inside quotes: a text run, a '#' entering hash mode,
// or the closing quote. A doubled quote and `##` stay inside the text run;
// unescaping them is up to the consumer.
func (lx *Lexer) scanStringPart() token.Token {
	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}
	q := lx.modes[len(lx.modes)-1].Quote
	start := lx.cursor.Mark()

	switch b := lx.cursor.Peek(); {
	case b == q && lx.cursor.PeekAt(1) != q:
		lx.cursor.Bump()
		lx.pop()
		return lx.emit(token.StringClose, start)
	case b == '#' && lx.cursor.PeekAt(1) != '#':
		lx.cursor.Bump()
		tok := lx.emit(token.Hash, start)
		lx.push(Frame{Mode: ModeHash, Open: tok.Span})
		return tok
	}

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == q || b == '#' {
			if lx.cursor.PeekAt(1) != b {
				break
			}
			lx.cursor.BumpN(2)
			continue
		}
		lx.cursor.Bump()
	}
	return lx.emit(token.StringText, start)
}
