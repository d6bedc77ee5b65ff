package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"cfparse/internal/diag"
	"cfparse/internal/lexer"
	"cfparse/internal/source"
	"cfparse/internal/token"
)

const extraPreviewLimit = 100

// finishScript runs the end-of-parse checks for a script window.
func (p *parser) finishScript(lx *lexer.Lexer) {
	if frames := lx.Unpopped(); len(frames) > 0 {
		p.reportScriptModes(frames)
		return
	}
	p.checkExtraChars()
}

func (p *parser) reportScriptModes(frames []lexer.Frame) {
	for i := len(frames) - 1; i >= 0; i-- {
		if frames[i].Mode == lexer.ModeHash {
			p.report(diag.LexUnterminatedHash, frames[i].Open, "Unterminated hash expression inside of string literal.")
			return
		}
	}
	f := frames[len(frames)-1]
	msg := "Unterminated quote expression."
	if f.Quote == '\'' {
		msg = "Unterminated single quote expression."
	}
	p.report(diag.LexUnterminatedString, f.Open, msg)
}

// checkExtraChars reports unconsumed tokens as one issue with a bounded preview.
func (p *parser) checkExtraChars() {
	tok := p.peek()
	if tok.Kind == token.EOF {
		return
	}
	last := p.toks[len(p.toks)-1]
	end := last.Span.Start
	if len(p.toks) > 1 {
		end = max(end, p.toks[len(p.toks)-2].Span.End)
	}
	preview := previewText(p.file, tok.Span.Start, end)
	p.report(diag.SynExtraChars, tok.Span, fmt.Sprintf("Extra char(s) [%s] at the end of parsing.", preview))
}

func previewText(file *source.File, start, end uint32) string {
	text := string(file.Content[start:end])
	if len(text) <= extraPreviewLimit {
		return strings.TrimSpace(text)
	}
	cut := extraPreviewLimit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return strings.TrimSpace(text[:cut])
}
