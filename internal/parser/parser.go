package parser

import (
	"cfparse/internal/cst"
	"cfparse/internal/diag"
	"cfparse/internal/lexer"
	"cfparse/internal/source"
	"cfparse/internal/token"
)

type Options struct {
	Reporter diag.Reporter
}

// Result is the outcome of one grammar pass.
type Result struct {
	Root *cst.Node
	// ModeFailure is set when the markup lexer finished with unpopped modes;
	// such a tree must not be lowered.
	ModeFailure bool
}

// parser - состояние парсера на одно окно исходника
type parser struct {
	file *source.File
	toks []token.Token
	pos  int
	opts Options

	// markup state
	outputDepth  int
	quietEndTags bool
}

// ParseScript parses file bytes [start, end) as a full script unit.
func ParseScript(file *source.File, start, end uint32, opts Options) Result {
	p, lx := newScriptParser(file, start, end, opts)
	root := p.parseScriptUnit()
	// корень покрывает всё окно, включая ведущие doc-комментарии и пробелы
	root.Span = windowSpan(file, start, end)
	p.finishScript(lx)
	return Result{Root: root}
}

// ParseScriptExpression parses file bytes [start, end) as one expression.
func ParseScriptExpression(file *source.File, start, end uint32, opts Options) Result {
	p, lx := newScriptParser(file, start, end, opts)
	root := p.parseExpression()
	p.finishScript(lx)
	return Result{Root: root}
}

// ParseScriptStatement parses file bytes [start, end) as one statement.
func ParseScriptStatement(file *source.File, start, end uint32, opts Options) Result {
	p, lx := newScriptParser(file, start, end, opts)
	root := p.parseStatement()
	if root == nil {
		root = cst.New(cst.KindEmpty, p.peek().Span.StartPoint())
	}
	p.finishScript(lx)
	return Result{Root: root}
}

func windowSpan(file *source.File, start, end uint32) source.Span {
	end = min(end, file.Len())
	return source.Span{File: file.ID, Start: min(start, end), End: end}
}

func newScriptParser(file *source.File, start, end uint32, opts Options) (*parser, *lexer.Lexer) {
	lx := lexer.NewWindow(file, start, end, lexer.Options{Reporter: opts.Reporter})
	return &parser{file: file, toks: lx.Tokenize(), opts: opts}, lx
}

func (p *parser) peek() token.Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos]
}

func (p *parser) peekN(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *parser) atWord(w string) bool {
	return p.peek().IsWord(w)
}

func (p *parser) advance() token.Token {
	tok := p.peek()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return tok
}

// prevEnd is the end offset of the last consumed token.
func (p *parser) prevEnd() uint32 {
	if p.pos == 0 {
		return p.peek().Span.Start
	}
	return p.toks[p.pos-1].Span.End
}

// spanFrom covers from start up to the last consumed token.
func (p *parser) spanFrom(start uint32) source.Span {
	end := max(p.prevEnd(), start)
	return source.Span{File: p.file.ID, Start: start, End: end}
}

// expect - ожидаем конкретный токен. Если нет - репортим и возвращаем false.
func (p *parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.err(code, msg)
	return p.peek(), false
}

// expectClosing is expect for a bracket pair; the issue points back at open.
func (p *parser) expectClosing(k token.Kind, open token.Token, code diag.Code, msg string) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	if p.opts.Reporter != nil {
		diag.ReportError(p.opts.Reporter, code, p.diagSpan(), msg).
			WithNote(open.Span, "["+open.Text+"] opened here").
			Emit()
	}
	return false
}

// репортует ошибку на текущем токене
func (p *parser) err(code diag.Code, msg string) {
	p.report(code, p.diagSpan(), msg)
}

func (p *parser) report(code diag.Code, sp source.Span, msg string) {
	if p.opts.Reporter != nil {
		diag.ReportError(p.opts.Reporter, code, sp, msg).Emit()
	}
}

// diagSpan - лучший span для диагностики: на EOF это позиция после последнего токена
func (p *parser) diagSpan() source.Span {
	tok := p.peek()
	if tok.Kind == token.EOF && p.pos > 0 {
		end := p.toks[p.pos-1].Span.End
		return source.Span{File: p.file.ID, Start: end, End: end}
	}
	return tok.Span
}

// describe renders the current token for messages.
func (p *parser) describe() string {
	tok := p.peek()
	if tok.Kind == token.EOF {
		return "end of input"
	}
	return "[" + tok.Text + "]"
}

// mustProgress returns a check that forces at least one token of progress.
func (p *parser) mustProgress() func() bool {
	saved := p.pos
	return func() bool {
		if p.pos == saved {
			if !p.at(token.EOF) {
				p.advance()
			}
			return false
		}
		return true
	}
}

// syncStmt skips to the next statement boundary without consuming `}`.
func (p *parser) syncStmt() {
	for !p.at(token.EOF) {
		switch p.peek().Kind {
		case token.Semicolon:
			p.advance()
			return
		case token.RBrace:
			return
		}
		p.advance()
	}
}

// speculate runs fn with reporting muted, then rewinds.
func (p *parser) speculate(fn func() bool) bool {
	saved, rep := p.pos, p.opts.Reporter
	p.opts.Reporter = nil
	ok := fn()
	p.pos, p.opts.Reporter = saved, rep
	return ok
}

// attachDoc copies the doc comment in front of tok onto n.
func attachDoc(n *cst.Node, tok token.Token) {
	if doc, ok := tok.Doc(); ok {
		n.Doc = &doc
	}
}
