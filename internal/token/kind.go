package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident covers every word, keywords included: the script grammar is
	// contextual and case-insensitive, so the parser decides what a word means.
	Ident
	IntLit
	FloatLit

	// StringOpen is the opening quote; Text holds the quote character.
	StringOpen
	// StringText is a raw run of string content between quotes and hashes.
	StringText
	// StringClose is the closing quote.
	StringClose
	// Hash is '#', either around an interpolation inside a string or
	// wrapping an expression in script code.
	Hash

	Plus          // +
	Minus         // -
	Star          // *
	Slash         // /
	Backslash     // \
	Caret         // ^
	Percent       // %
	Amp           // &
	Pipe          // |
	AndAnd        // &&
	OrOr          // ||
	Bang          // !
	PlusPlus      // ++
	MinusMinus    // --
	Assign        // =
	PlusAssign    // +=
	MinusAssign   // -=
	StarAssign    // *=
	SlashAssign   // /=
	PercentAssign // %=
	AmpAssign     // &=
	EqEq          // ==
	EqEqEq        // ===
	BangEq        // !=
	LtGt          // <>
	Lt            // <
	LtEq          // <=
	Gt            // >
	GtEq          // >=
	Question      // ?
	QuestionColon // ?:
	QuestionDot   // ?.
	Colon         // :
	Semicolon     // ;
	Comma         // ,
	Dot           // .
	Arrow         // ->
	FatArrow      // =>
	At            // @
	LParen        // (
	RParen        // )
	LBrace        // {
	RBrace        // }
	LBracket      // [
	RBracket      // ]

	// Markup dialect.

	// Text is literal template content outside tags.
	Text
	// Interp is a `#expr#` region of template text inside <cfoutput>;
	// the span covers both hashes.
	Interp
	// TagOpen is `<cfNAME`; Text holds the lower-cased NAME.
	TagOpen
	// TagClose is a whole `</cfNAME>`; Text holds the lower-cased NAME.
	TagClose
	AttrName
	// AttrValue is a quoted or bare attribute value; quotes are part of the span.
	AttrValue
	// TagExpr is the raw expression of cfset/cfif/cfelseif/cfreturn.
	TagExpr
	TagEnd     // >
	TagSelfEnd // />
	// ScriptBody is the raw content between <cfscript> and </cfscript>.
	ScriptBody
	// MarkupComment is a whole, possibly nested, `<!--- --->` comment.
	MarkupComment
)

var kindNames = [...]string{
	Invalid:       "Invalid",
	EOF:           "EOF",
	Ident:         "Ident",
	IntLit:        "IntLit",
	FloatLit:      "FloatLit",
	StringOpen:    "StringOpen",
	StringText:    "StringText",
	StringClose:   "StringClose",
	Hash:          "Hash",
	Plus:          "Plus",
	Minus:         "Minus",
	Star:          "Star",
	Slash:         "Slash",
	Backslash:     "Backslash",
	Caret:         "Caret",
	Percent:       "Percent",
	Amp:           "Amp",
	Pipe:          "Pipe",
	AndAnd:        "AndAnd",
	OrOr:          "OrOr",
	Bang:          "Bang",
	PlusPlus:      "PlusPlus",
	MinusMinus:    "MinusMinus",
	Assign:        "Assign",
	PlusAssign:    "PlusAssign",
	MinusAssign:   "MinusAssign",
	StarAssign:    "StarAssign",
	SlashAssign:   "SlashAssign",
	PercentAssign: "PercentAssign",
	AmpAssign:     "AmpAssign",
	EqEq:          "EqEq",
	EqEqEq:        "EqEqEq",
	BangEq:        "BangEq",
	LtGt:          "LtGt",
	Lt:            "Lt",
	LtEq:          "LtEq",
	Gt:            "Gt",
	GtEq:          "GtEq",
	Question:      "Question",
	QuestionColon: "QuestionColon",
	QuestionDot:   "QuestionDot",
	Colon:         "Colon",
	Semicolon:     "Semicolon",
	Comma:         "Comma",
	Dot:           "Dot",
	Arrow:         "Arrow",
	FatArrow:      "FatArrow",
	At:            "At",
	LParen:        "LParen",
	RParen:        "RParen",
	LBrace:        "LBrace",
	RBrace:        "RBrace",
	LBracket:      "LBracket",
	RBracket:      "RBracket",
	Text:          "Text",
	Interp:        "Interp",
	TagOpen:       "TagOpen",
	TagClose:      "TagClose",
	AttrName:      "AttrName",
	AttrValue:     "AttrValue",
	TagExpr:       "TagExpr",
	TagEnd:        "TagEnd",
	TagSelfEnd:    "TagSelfEnd",
	ScriptBody:    "ScriptBody",
	MarkupComment: "MarkupComment",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
