package source

import "fmt"

// Span is a half-open byte range [Start, End) of one file. Every token,
// tree node and diagnostic location is a Span.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

func (s Span) Len() uint32 { return s.End - s.Start }

// String prints file:start-end, used by golden dumps.
func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover widens s to include other. A span of another file leaves s as is.
func (s Span) Cover(other Span) Span {
	if s.File == other.File {
		s.Start = min(s.Start, other.Start)
		s.End = max(s.End, other.End)
	}
	return s
}

func (s Span) Contains(other Span) bool {
	return s.File == other.File && s.Start <= other.Start && other.End <= s.End
}

// StartPoint and EndPoint are the empty spans at either edge of s; the
// parser anchors "missing X" reports to them.
func (s Span) StartPoint() Span { return Span{File: s.File, Start: s.Start, End: s.Start} }

func (s Span) EndPoint() Span { return Span{File: s.File, Start: s.End, End: s.End} }
