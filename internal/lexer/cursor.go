package lexer

import (
	"fmt"
	"unicode/utf8"

	"cfparse/internal/source"

	"fortio.org/safecast"
)

// Cursor walks the bytes of one lexing window. Off never passes Limit, so a
// nested lexer over an attribute or island cannot read its neighbours.
type Cursor struct {
	File  *source.File
	Off   uint32
	Limit uint32
}

// NewCursor covers the whole file.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{File: f, Limit: limit}
}

// NewWindowCursor covers [start, end) of the file, clamped to its size.
func NewWindowCursor(f *source.File, start, end uint32) Cursor {
	c := NewCursor(f)
	c.Limit = min(end, c.Limit)
	c.Off = min(start, c.Limit)
	return c
}

func (c *Cursor) EOF() bool { return c.Off >= c.Limit }

// Peek returns the current byte, 0 at the end of the window.
func (c *Cursor) Peek() byte { return c.PeekAt(0) }

// PeekAt returns the byte n positions ahead, 0 past the window.
func (c *Cursor) PeekAt(n uint32) byte {
	if c.Off+n >= c.Limit {
		return 0
	}
	return c.File.Content[c.Off+n]
}

// Bump consumes one byte and returns it.
func (c *Cursor) Bump() byte {
	b := c.Peek()
	if !c.EOF() {
		c.Off++
	}
	return b
}

// BumpN skips n bytes, stopping at the limit.
func (c *Cursor) BumpN(n uint32) {
	c.Off = min(c.Off+n, c.Limit)
}

// Eat consumes b if it is next.
func (c *Cursor) Eat(b byte) bool {
	if c.EOF() || c.File.Content[c.Off] != b {
		return false
	}
	c.Off++
	return true
}

// Mark - начало текущего токена; SpanFrom замыкает его.
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.Off) }

func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}

// HasPrefixFold reports whether the upcoming bytes equal s, ignoring ASCII
// case. Tag names and word operators are matched this way.
func (c *Cursor) HasPrefixFold(s string) bool {
	n := uint32(len(s)) // #nosec G115 -- literal prefixes only
	if c.Off+n > c.Limit {
		return false
	}
	for i := range n {
		if lowerASCII(c.File.Content[c.Off+i]) != lowerASCII(s[i]) {
			return false
		}
	}
	return true
}

// peekRune decodes the rune at the cursor; size is 0 at the end.
func (c *Cursor) peekRune() (r rune, size uint32) {
	if c.EOF() {
		return utf8.RuneError, 0
	}
	if b := c.Peek(); b < utf8.RuneSelf {
		return rune(b), 1
	}
	r, sz := utf8.DecodeRune(c.File.Content[c.Off:c.Limit])
	return r, uint32(sz) // #nosec G115 -- rune size is at most 4
}
