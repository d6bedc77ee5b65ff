package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedHash         Code = 1005
	LexUnpoppedMode             Code = 1006
	LexUnclosedOutput           Code = 1007
	LexMalformedTag             Code = 1008

	// Парсерные
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynExpectExpression Code = 2002
	SynExpectIdentifier Code = 2003
	SynExpectSemicolon  Code = 2004
	SynUnclosedParen    Code = 2005
	SynUnclosedBrace    Code = 2006
	SynUnclosedBracket  Code = 2007
	SynExtraChars       Code = 2008
	SynMissingEndTag    Code = 2009
	SynExpectColon      Code = 2010
	SynForBadHeader     Code = 2011
	SynExpectString     Code = 2012

	// Структура тегов (markup)
	TagInfo             Code = 3000
	TagUnmatchedClose   Code = 3001
	TagRequiresBody     Code = 3002
	TagBodyNotAllowed   Code = 3003
	TagMissingAttribute Code = 3004
	TagEmptyAttribute   Code = 3005
	TagAttributeShape   Code = 3006
	TagSwitchBody       Code = 3007

	// Lowering
	LowInfo           Code = 4000
	LowMixedArguments Code = 4001
	LowNestedFatal    Code = 4002
	LowUnexpectedRoot Code = 4003
	LowInvalidTarget  Code = 4004
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Malformed number literal",
	LexUnterminatedHash:         "Unterminated hash expression",
	LexUnpoppedMode:             "Unpopped lexer modes",
	LexUnclosedOutput:           "Unclosed output tag",
	LexMalformedTag:             "Malformed tag",

	SynInfo:             "Syntax information",
	SynUnexpectedToken:  "Unexpected token",
	SynExpectExpression: "Expected expression",
	SynExpectIdentifier: "Expected identifier",
	SynExpectSemicolon:  "Expected semicolon",
	SynUnclosedParen:    "Unclosed parenthesis",
	SynUnclosedBrace:    "Unclosed brace",
	SynUnclosedBracket:  "Unclosed bracket",
	SynExtraChars:       "Extra characters at the end of parsing",
	SynMissingEndTag:    "Missing end tag",
	SynExpectColon:      "Expected colon",
	SynForBadHeader:     "Malformed for header",
	SynExpectString:     "Expected string literal",

	TagInfo:             "Tag information",
	TagUnmatchedClose:   "End tag without matching start tag",
	TagRequiresBody:     "Tag requires a body",
	TagBodyNotAllowed:   "Tag does not allow a body",
	TagMissingAttribute: "Missing required attribute",
	TagEmptyAttribute:   "Attribute cannot be empty",
	TagAttributeShape:   "Attribute must be a string literal",
	TagSwitchBody:       "Invalid switch body",

	LowInfo:           "Lowering information",
	LowMixedArguments: "Mixed named and positional arguments",
	LowNestedFatal:    "Unsupported construct in nested parse",
	LowUnexpectedRoot: "Unexpected root node in script island",
	LowInvalidTarget:  "Invalid declaration target",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("TAG%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("LOW%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
