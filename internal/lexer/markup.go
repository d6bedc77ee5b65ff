package lexer

import (
	"strings"

	"cfparse/internal/diag"
	"cfparse/internal/source"
	"cfparse/internal/token"
)

// MarkupMode is a markup lexer mode.
type MarkupMode uint8

const (
	// ModeComponent is active inside a tag, between `<cfNAME` and `>`.
	ModeComponent MarkupMode = iota
	// ModeOutput is active between <cfoutput> and </cfoutput>; it enables `#expr#` in text.
	ModeOutput
	ModeComment
	ModeScript
	// ModeExpression captures the raw expression of cfset/cfif/cfelseif/cfreturn.
	ModeExpression
	ModeQuote
	ModeHashExpr
)

var markupModeNames = [...]string{
	ModeComponent:  "COMPONENT_MODE",
	ModeOutput:     "OUTPUT_MODE",
	ModeComment:    "COMMENT_MODE",
	ModeScript:     "SCRIPT_MODE",
	ModeExpression: "EXPRESSION_MODE",
	ModeQuote:      "QUOTE_MODE",
	ModeHashExpr:   "HASH_MODE",
}

func (m MarkupMode) String() string { return markupModeNames[m] }

// MarkupFrame is one entry of the markup mode stack.
type MarkupFrame struct {
	Mode MarkupMode
	Name string      // tag name for ModeComponent
	Open source.Span // token that pushed the mode
}

// tags whose content up to `>` is a raw script expression
var expressionTags = map[string]bool{"set": true, "if": true, "elseif": true, "return": true}

// MarkupLexer tokenizes the markup dialect.
type MarkupLexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	modes  []MarkupFrame
	toks   []token.Token
}

// NewMarkup creates a markup lexer over the whole file.
func NewMarkup(file *source.File, opts Options) *MarkupLexer {
	return &MarkupLexer{file: file, cursor: NewCursor(file), opts: opts}
}

// Unpopped returns the modes still open when the input ran out.
func (lx *MarkupLexer) Unpopped() []MarkupFrame {
	return lx.modes
}

func (lx *MarkupLexer) push(f MarkupFrame) { lx.modes = append(lx.modes, f) }

func (lx *MarkupLexer) pop() {
	if len(lx.modes) > 0 {
		lx.modes = lx.modes[:len(lx.modes)-1]
	}
}

func (lx *MarkupLexer) inOutput() bool {
	for i := len(lx.modes) - 1; i >= 0; i-- {
		if lx.modes[i].Mode == ModeOutput {
			return true
		}
	}
	return false
}

func (lx *MarkupLexer) add(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	tok := token.Token{Kind: k, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	lx.toks = append(lx.toks, tok)
	return tok
}

// Tokenize scans the whole file and returns its tokens followed by EOF.
func (lx *MarkupLexer) Tokenize() []token.Token {
	for !lx.cursor.EOF() {
		switch {
		case lx.cursor.HasPrefixFold("<!---"):
			lx.scanComment()
		case lx.cursor.HasPrefixFold("</cf") && isIdentStartByte(lx.cursor.PeekAt(4)):
			lx.scanCloseTag()
		case lx.cursor.HasPrefixFold("<cf") && isIdentStartByte(lx.cursor.PeekAt(3)):
			lx.scanTag()
		case lx.cursor.Peek() == '#' && lx.cursor.PeekAt(1) != '#' && lx.inOutput():
			lx.scanInterp()
		default:
			lx.scanText()
		}
	}
	lx.toks = append(lx.toks, token.Token{
		Kind: token.EOF,
		Span: source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off},
	})
	return lx.toks
}

func (lx *MarkupLexer) scanText() {
	start := lx.cursor.Mark()
	output := lx.inOutput()
	for !lx.cursor.EOF() {
		if lx.cursor.Peek() == '<' &&
			(lx.cursor.HasPrefixFold("<!---") ||
				lx.cursor.HasPrefixFold("<cf") && isIdentStartByte(lx.cursor.PeekAt(3)) ||
				lx.cursor.HasPrefixFold("</cf") && isIdentStartByte(lx.cursor.PeekAt(4))) {
			break
		}
		if output && lx.cursor.Peek() == '#' {
			if lx.cursor.PeekAt(1) != '#' {
				break
			}
			lx.cursor.Bump()
		}
		lx.cursor.Bump()
	}
	lx.add(token.Text, start)
}

func (lx *MarkupLexer) scanInterp() {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.push(MarkupFrame{Mode: ModeHashExpr, Open: lx.cursor.SpanFrom(start)})
	end, ok := scanHashBody(lx.file.Content, lx.cursor.Off, lx.cursor.Limit)
	lx.cursor.Off = end
	if ok {
		lx.cursor.Bump()
		lx.pop()
	}
	lx.add(token.Interp, start)
}

// comments nest: `<!--- a <!--- b ---> c --->` is one comment
func (lx *MarkupLexer) scanComment() {
	start := lx.cursor.Mark()
	depth := 0
	for !lx.cursor.EOF() {
		if lx.cursor.HasPrefixFold("<!---") {
			lx.push(MarkupFrame{Mode: ModeComment, Open: source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off + 5}})
			lx.cursor.BumpN(5)
			depth++
			continue
		}
		if lx.cursor.HasPrefixFold("--->") {
			lx.cursor.BumpN(4)
			lx.pop()
			depth--
			if depth == 0 {
				break
			}
			continue
		}
		lx.cursor.Bump()
	}
	lx.add(token.MarkupComment, start)
}

func (lx *MarkupLexer) scanTagName() string {
	start := lx.cursor.Off
	for b := lx.cursor.Peek(); isIdentContinueByte(b) || b == '-'; b = lx.cursor.Peek() {
		lx.cursor.Bump()
	}
	return strings.ToLower(string(lx.file.Content[start:lx.cursor.Off]))
}

func (lx *MarkupLexer) scanTag() {
	start := lx.cursor.Mark()
	lx.cursor.BumpN(3)
	name := lx.scanTagName()
	open := lx.cursor.SpanFrom(start)
	lx.toks = append(lx.toks, token.Token{Kind: token.TagOpen, Span: open, Text: name})
	lx.push(MarkupFrame{Mode: ModeComponent, Name: name, Open: open})

	if expressionTags[name] {
		lx.scanTagExpression()
	} else {
		lx.scanAttributes()
	}
	if lx.cursor.EOF() && (len(lx.toks) == 0 || !isTagEnd(lx.toks[len(lx.toks)-1].Kind)) {
		return
	}
	lx.pop()

	if lx.toks[len(lx.toks)-1].Kind != token.TagEnd {
		return
	}
	switch name {
	case "script":
		lx.scanScriptBody(open)
	case "output":
		lx.push(MarkupFrame{Mode: ModeOutput, Name: name, Open: open})
	}
}

func isTagEnd(k token.Kind) bool { return k == token.TagEnd || k == token.TagSelfEnd }

func (lx *MarkupLexer) skipSpace() {
	for isSpace(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}

// scanTagEnd consumes `>` or `/>` if present.
func (lx *MarkupLexer) scanTagEnd() bool {
	start := lx.cursor.Mark()
	if lx.cursor.Eat('>') {
		lx.add(token.TagEnd, start)
		return true
	}
	if lx.cursor.Peek() == '/' && lx.cursor.PeekAt(1) == '>' {
		lx.cursor.BumpN(2)
		lx.add(token.TagSelfEnd, start)
		return true
	}
	return false
}

func (lx *MarkupLexer) scanAttributes() {
	for {
		lx.skipSpace()
		if lx.cursor.EOF() || lx.scanTagEnd() {
			return
		}
		start := lx.cursor.Mark()
		if !isAttrNameByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			report(lx.opts, diag.LexUnknownChar, sp, "Unexpected character ["+string(lx.file.Content[sp.Start:sp.End])+"] inside tag")
			continue
		}
		for isAttrNameByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		lx.add(token.AttrName, start)

		lx.skipSpace()
		eq := lx.cursor.Mark()
		if !lx.cursor.Eat('=') {
			continue
		}
		lx.add(token.Assign, eq)
		lx.skipSpace()
		lx.scanAttrValue()
	}
}

func isAttrNameByte(b byte) bool {
	return isIdentContinueByte(b) || b == '-' || b == ':' || b == '.'
}

func (lx *MarkupLexer) scanAttrValue() {
	start := lx.cursor.Mark()
	switch b := lx.cursor.Peek(); {
	case b == '"' || b == '\'':
		lx.push(MarkupFrame{Mode: ModeQuote, Open: source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off + 1}})
		end, ok := skipQuoted(lx.file.Content, lx.cursor.Off, lx.cursor.Limit)
		lx.cursor.Off = end
		if ok {
			lx.pop()
		}
	default:
		for b := lx.cursor.Peek(); !lx.cursor.EOF() && !isSpace(b) && b != '>' && b != '"' && b != '\''; b = lx.cursor.Peek() {
			if b == '/' && lx.cursor.PeekAt(1) == '>' {
				break
			}
			lx.cursor.Bump()
		}
	}
	if lx.cursor.Off > uint32(start) {
		lx.add(token.AttrValue, start)
	}
}

// scanTagExpression captures everything up to the first `>` outside quotes
// and brackets. A trailing `/` before `>` belongs to `/>`.
func (lx *MarkupLexer) scanTagExpression() {
	lx.skipSpace()
	exprStart := lx.cursor.Off
	lx.push(MarkupFrame{Mode: ModeExpression, Open: source.Span{File: lx.file.ID, Start: exprStart, End: exprStart}})
	depth := 0
	content := lx.file.Content
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '>' && depth == 0 {
			break
		}
		switch b {
		case '"', '\'':
			end, ok := skipQuoted(content, lx.cursor.Off, lx.cursor.Limit)
			lx.cursor.Off = end
			if !ok {
				lx.push(MarkupFrame{Mode: ModeQuote})
			}
			continue
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth > 0 {
				depth--
			}
		}
		lx.cursor.Bump()
	}
	exprEnd := lx.cursor.Off
	if lx.cursor.EOF() {
		lx.emitExpr(exprStart, exprEnd)
		return
	}
	lx.pop()
	selfClose := false
	for exprEnd > exprStart && isSpace(content[exprEnd-1]) {
		exprEnd--
	}
	if exprEnd > exprStart && content[exprEnd-1] == '/' {
		exprEnd--
		selfClose = true
	}
	lx.emitExpr(exprStart, exprEnd)
	if selfClose {
		// `/` is followed by optional spaces and `>`
		start := Mark(exprEnd)
		lx.cursor.Bump()
		lx.add(token.TagSelfEnd, start)
		return
	}
	lx.scanTagEnd()
}

func (lx *MarkupLexer) emitExpr(start, end uint32) {
	for end > start && isSpace(lx.file.Content[end-1]) {
		end--
	}
	if end == start {
		return
	}
	sp := source.Span{File: lx.file.ID, Start: start, End: end}
	lx.toks = append(lx.toks, token.Token{Kind: token.TagExpr, Span: sp, Text: string(lx.file.Content[start:end])})
}

// scanScriptBody captures raw script up to `</cfscript`.
func (lx *MarkupLexer) scanScriptBody(open source.Span) {
	start := lx.cursor.Mark()
	lx.push(MarkupFrame{Mode: ModeScript, Name: "script", Open: open})
	for !lx.cursor.EOF() && !lx.cursor.HasPrefixFold("</cfscript") {
		lx.cursor.Bump()
	}
	lx.add(token.ScriptBody, start)
	if !lx.cursor.EOF() {
		lx.pop()
	}
}

func (lx *MarkupLexer) scanCloseTag() {
	start := lx.cursor.Mark()
	lx.cursor.BumpN(4)
	name := lx.scanTagName()
	lx.skipSpace()
	if !lx.cursor.Eat('>') {
		report(lx.opts, diag.LexMalformedTag, lx.cursor.SpanFrom(start), "Expected [>] to close end tag [cf"+name+"]")
	}
	sp := lx.cursor.SpanFrom(start)
	lx.toks = append(lx.toks, token.Token{Kind: token.TagClose, Span: sp, Text: name})
	if name == "output" {
		for i := len(lx.modes) - 1; i >= 0; i-- {
			if lx.modes[i].Mode == ModeOutput {
				lx.modes = append(lx.modes[:i], lx.modes[i+1:]...)
				break
			}
		}
	}
}
