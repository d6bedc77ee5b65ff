package lexer

import (
	"cfparse/internal/diag"
	"cfparse/internal/source"
	"cfparse/internal/token"
)

// Mode is a script lexer mode.
type Mode uint8

const (
	ModeDefault Mode = iota
	// ModeString is active between a string's quotes.
	ModeString
	// ModeHash is an interpolation `#...#` inside a string.
	ModeHash
)

func (m Mode) String() string {
	switch m {
	case ModeString:
		return "quotesMode"
	case ModeHash:
		return "hashMode"
	}
	return "DEFAULT_MODE"
}

// Frame is one entry of a lexer mode stack.
type Frame struct {
	Mode  Mode
	Quote byte        // only for ModeString
	Open  source.Span // token that pushed the mode
}

// Lexer tokenizes the script dialect.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	hold   []token.Trivia // накопленные leading trivia
	modes  []Frame
	last   token.Token
}

// New creates a lexer over the whole file.
func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// NewWindow creates a lexer over file bytes [start, end).
// Spans stay absolute, so nested parses report real file positions.
func NewWindow(file *source.File, start, end uint32, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewWindowCursor(file, start, end),
		opts:   opts,
	}
}

// Tokenize returns every token up to and including EOF.
func (lx *Lexer) Tokenize() []token.Token {
	out := make([]token.Token, 0, 64)
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

// Unpopped returns the modes still open when the input ran out.
func (lx *Lexer) Unpopped() []Frame {
	return lx.modes
}

// Last returns the last non-EOF token produced.
func (lx *Lexer) Last() token.Token {
	return lx.last
}

func (lx *Lexer) mode() Mode {
	if len(lx.modes) == 0 {
		return ModeDefault
	}
	return lx.modes[len(lx.modes)-1].Mode
}

func (lx *Lexer) push(f Frame) { lx.modes = append(lx.modes, f) }

func (lx *Lexer) pop() {
	if len(lx.modes) > 0 {
		lx.modes = lx.modes[:len(lx.modes)-1]
	}
}

// Next возвращает следующий **значимый** токен с уже собранным Leading.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	var tok token.Token
	if lx.mode() == ModeString {
		tok = lx.scanStringPart()
	} else {
		lx.collectLeadingTrivia()
		if lx.cursor.EOF() {
			return token.Token{Kind: token.EOF, Span: lx.emptySpan(), Leading: lx.takeHold()}
		}
		tok = lx.scanToken()
		tok.Leading = lx.takeHold()
	}
	if tok.Kind != token.EOF {
		lx.last = tok
	}
	return tok
}

func (lx *Lexer) takeHold() []token.Trivia {
	h := lx.hold
	lx.hold = nil
	return h
}

func (lx *Lexer) scanToken() token.Token {
	ch := lx.cursor.Peek()
	switch {
	case isIdentStartByte(ch):
		return lx.scanIdent()
	case ch >= utf8RuneSelf:
		if r, _ := lx.cursor.peekRune(); isIdentStartRune(r) {
			return lx.scanIdent()
		}
		return lx.scanUnknown()
	case isDec(ch), ch == '.' && isDec(lx.cursor.PeekAt(1)):
		return lx.scanNumber()
	case ch == '"' || ch == '\'':
		return lx.openString(ch)
	case ch == '#':
		start := lx.cursor.Mark()
		lx.cursor.Bump()
		if lx.mode() == ModeHash {
			lx.pop()
		}
		return lx.emit(token.Hash, start)
	}
	return lx.scanOperatorOrPunct()
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: k, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) scanIdent() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r, sz := lx.cursor.peekRune()
		if !isIdentContinueRune(r) {
			break
		}
		lx.cursor.BumpN(sz)
	}
	return lx.emit(token.Ident, start)
}

func (lx *Lexer) scanUnknown() token.Token {
	start := lx.cursor.Mark()
	_, sz := lx.cursor.peekRune()
	lx.cursor.BumpN(max(sz, 1))
	tok := lx.emit(token.Invalid, start)
	report(lx.opts, diag.LexUnknownChar, tok.Span, "Unexpected character ["+tok.Text+"]")
	return tok
}
