package parser

import (
	"fmt"
	"strings"

	"cfparse/internal/cst"
	"cfparse/internal/diag"
	"cfparse/internal/lexer"
	"cfparse/internal/source"
	"cfparse/internal/token"
)

// structural tags are parsed together with their bodies; every other tag is a
// flat statement and is paired with its end tag later.
var structuralTags = map[string]bool{
	"if": true, "elseif": true, "else": true,
	"try": true, "catch": true, "finally": true,
	"switch": true, "case": true, "defaultcase": true,
	"function": true, "component": true, "interface": true,
	"output": true, "while": true, "loop": true, "script": true,
}

// ParseTemplate parses a whole file in the markup dialect.
func ParseTemplate(file *source.File, opts Options) Result {
	lx := lexer.NewMarkup(file, lexer.Options{Reporter: opts.Reporter})
	toks := lx.Tokenize()
	frames := lx.Unpopped()
	p := &parser{file: file, toks: toks, opts: opts, quietEndTags: len(frames) > 0}

	root := cst.New(cst.KindTemplate, file.FullSpan())
	p.parseMarkupList(root)

	if len(frames) > 0 {
		p.reportMarkupModes(frames)
		return Result{Root: root, ModeFailure: true}
	}
	p.checkExtraChars()
	return Result{Root: root}
}

// reportMarkupModes emits one issue describing the innermost problem.
func (p *parser) reportMarkupModes(frames []lexer.MarkupFrame) {
	for _, f := range frames {
		if f.Mode == lexer.ModeOutput {
			line := p.file.Position(f.Open.Start).Line
			p.report(diag.LexUnclosedOutput, f.Open, fmt.Sprintf("Unclosed output tag on line %d", line))
			return
		}
	}
	for i := len(frames) - 1; i >= 0; i-- {
		if f := frames[i]; f.Mode == lexer.ModeComponent {
			line := p.file.Position(f.Open.Start).Line
			p.report(diag.LexMalformedTag, f.Open, fmt.Sprintf("Unclosed tag [%s] starting on line %d", f.Name, line))
			return
		}
	}
	names := make([]string, len(frames))
	for i, f := range frames {
		names[i] = f.Mode.String()
	}
	p.report(diag.LexUnpoppedMode, frames[len(frames)-1].Open,
		fmt.Sprintf("Invalid Syntax. (Unpopped modes) [%s]", strings.Join(names, ", ")))
}

// atListEnd reports whether the markup statement list must stop here.
func (p *parser) atListEnd() bool {
	tok := p.peek()
	switch tok.Kind {
	case token.EOF:
		return true
	case token.TagClose:
		return structuralTags[tok.Text]
	case token.TagOpen:
		switch tok.Text {
		case "elseif", "else", "catch", "finally":
			return true
		}
	}
	return false
}

func (p *parser) parseMarkupList(parent *cst.Node) {
	for !p.atListEnd() {
		check := p.mustProgress()
		parent.AddChild(p.parseMarkupStmt())
		check()
	}
}

// parseMarkupStmt returns nil for comments.
func (p *parser) parseMarkupStmt() *cst.Node {
	tok := p.peek()
	switch tok.Kind {
	case token.MarkupComment:
		p.advance()
		return nil
	case token.Text, token.Interp:
		return p.parseText()
	case token.TagClose:
		p.advance()
		n := cst.NewLeaf(cst.KindTagClose, tok)
		n.Value = tok.Text
		return n
	case token.TagOpen:
		if structuralTags[tok.Text] {
			return p.parseTagBlock()
		}
		return p.parseTagStmt()
	}
	p.advance()
	p.report(diag.SynUnexpectedToken, tok.Span, "Unexpected ["+tok.Text+"]")
	return cst.NewError("unexpected token", tok.Span)
}

// parseText merges adjacent text runs and `#expr#` parts.
func (p *parser) parseText() *cst.Node {
	start := p.peek().Span.Start
	n := cst.New(cst.KindText, p.peek().Span)
	if p.outputDepth > 0 {
		n.Value = "output"
	}
	for p.at(token.Text) || p.at(token.Interp) {
		tok := p.advance()
		if tok.Kind == token.Text {
			n.AddChild(cst.NewLeaf(cst.KindTextPart, tok))
		} else {
			n.AddChild(cst.NewLeaf(cst.KindInterp, tok))
		}
	}
	n.Span = p.spanFrom(start)
	return n
}

// parseTagHead consumes attributes or the raw expression up to `>` or `/>`.
func (p *parser) parseTagHead(n *cst.Node) {
	for {
		switch p.peek().Kind {
		case token.TagEnd:
			p.advance()
			return
		case token.TagSelfEnd:
			p.advance()
			n.Flags |= cst.FlagSelfClosing
			return
		case token.TagExpr:
			n.AddChild(cst.NewLeaf(cst.KindTagExpr, p.advance()))
		case token.AttrName:
			name := p.advance()
			attr := cst.New(cst.KindAttr, name.Span)
			attr.AddChild(cst.NewLeaf(cst.KindAttrName, name))
			if p.at(token.Assign) {
				p.advance()
				if p.at(token.AttrValue) {
					attr.AddChild(cst.NewLeaf(cst.KindAttrValue, p.advance()))
				}
			}
			attr.Span = p.spanFrom(name.Span.Start)
			n.AddChild(attr)
		default:
			// input ended inside the tag; the mode check reports it
			return
		}
	}
}

// parseTagStmt parses a flat tag such as <cfset ...> or <cflock ...>.
func (p *parser) parseTagStmt() *cst.Node {
	open := p.advance()
	n := cst.New(cst.KindTagStmt, open.Span)
	n.Tok = &open
	n.Value = open.Text
	p.parseTagHead(n)
	n.Span = p.spanFrom(open.Span.Start)
	return n
}

// parseTagBlock parses a structural tag with its body and end tag.
func (p *parser) parseTagBlock() *cst.Node {
	open := p.advance()
	n := cst.New(cst.KindTagBlock, open.Span)
	n.Tok = &open
	n.Value = open.Text
	p.parseTagHead(n)
	if n.Has(cst.FlagSelfClosing) {
		n.Span = p.spanFrom(open.Span.Start)
		return n
	}

	switch open.Text {
	case "script":
		if p.at(token.ScriptBody) {
			n.AddChild(cst.NewLeaf(cst.KindScriptIsland, p.advance()))
		}
	case "elseif", "else":
		n.AddChild(p.parseTagBody())
		n.Span = p.spanFrom(open.Span.Start)
		return n
	case "output":
		p.outputDepth++
		n.AddChild(p.parseTagBody())
		p.outputDepth--
	default:
		n.AddChild(p.parseTagBody())
	}

	switch open.Text {
	case "if":
		for p.at(token.TagOpen) && (p.peek().Text == "elseif" || p.peek().Text == "else") {
			n.AddChild(p.parseTagBlock())
		}
	case "try":
		for {
			p.skipBlankText("catch", "finally", "try")
			if !p.at(token.TagOpen) || (p.peek().Text != "catch" && p.peek().Text != "finally") {
				break
			}
			n.AddChild(p.parseTagBlock())
		}
	}
	p.expectEndTag(n, open)
	n.Span = p.spanFrom(open.Span.Start)
	return n
}

func (p *parser) parseTagBody() *cst.Node {
	start := p.peek().Span.Start
	body := cst.New(cst.KindTagBody, p.peek().Span.StartPoint())
	p.parseMarkupList(body)
	if len(body.Children) > 0 {
		body.Span = p.spanFrom(start)
	}
	return body
}

func (p *parser) expectEndTag(n *cst.Node, open token.Token) {
	if tok := p.peek(); tok.Kind == token.TagClose && tok.Text == open.Text {
		p.advance()
		n.Flags |= cst.FlagClosed
		return
	}
	if !p.quietEndTags {
		p.report(diag.SynMissingEndTag, open.Span,
			fmt.Sprintf("Tag [cf%s] is missing its end tag [</cf%s>]", open.Text, open.Text))
	}
}

// skipBlankText drops whitespace-only text in front of one of the named tags,
// e.g. the line break between </cfcatch> and </cftry>.
func (p *parser) skipBlankText(names ...string) {
	i := 0
	for tok := p.peekN(i); tok.Kind == token.Text && strings.TrimSpace(tok.Text) == ""; tok = p.peekN(i) {
		i++
	}
	if i == 0 {
		return
	}
	tok := p.peekN(i)
	if tok.Kind != token.TagOpen && tok.Kind != token.TagClose {
		return
	}
	for _, name := range names {
		if tok.Text == name {
			for range i {
				p.advance()
			}
			return
		}
	}
}
