package token

import (
	"cfparse/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token starts a literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringOpen:
		return true
	default:
		return false
	}
}

// IsAssign reports whether the token is one of the assignment operators.
func (t Token) IsAssign() bool {
	switch t.Kind {
	case Assign, PlusAssign, MinusAssign, StarAssign, SlashAssign, PercentAssign, AmpAssign:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is a word.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsWord reports whether the token is the given word, ignoring case.
func (t Token) IsWord(w string) bool {
	return t.Kind == Ident && equalFold(t.Text, w)
}

// Doc returns the last doc comment among the leading trivia, if any.
func (t Token) Doc() (Trivia, bool) {
	for i := len(t.Leading) - 1; i >= 0; i-- {
		if t.Leading[i].Kind == TriviaDocBlock {
			return t.Leading[i], true
		}
	}
	return Trivia{}, false
}
