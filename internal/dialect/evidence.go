package dialect

import "strconv"

// Hint is the line that settled a content sniff.
type Hint struct {
	Dialect Kind
	Line    int // 1-based; 0 when nothing matched
	Reason  string
}

// Evidence explains a detection result, e.g. for `cfparse detect`.
type Evidence struct {
	Extension string
	Sniffed   bool
	Hint      Hint
}

func (e *Evidence) String() string {
	if e == nil {
		return ""
	}
	if !e.Sniffed {
		return "extension ." + e.Extension
	}
	if e.Hint.Line == 0 {
		return e.Hint.Reason
	}
	return e.Hint.Reason + " on line " + strconv.Itoa(e.Hint.Line)
}

