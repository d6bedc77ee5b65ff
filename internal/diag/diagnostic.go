package diag

import (
	"cfparse/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one Issue: a message anchored at a source span.
// It is never mutated after it enters a Bag.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}
