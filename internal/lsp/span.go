package lsp

import (
	"unicode/utf16"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"cfparse/internal/source"
)

// lspLine is the 0-based line holding off.
func lspLine(file *source.File, off uint32) uint32 {
	return file.Position(min(off, file.Len())).Line - 1
}

// positionForOffset converts a byte offset to an LSP position. The client
// counts characters in UTF-16 code units, so astral runes take two.
func positionForOffset(file *source.File, off uint32) protocol.Position {
	if file == nil {
		return protocol.Position{}
	}
	off = min(off, file.Len())
	lc := file.Position(off)
	var units uint32
	for rest := file.Content[off-(lc.Col-1) : off]; len(rest) > 0; {
		r, size := utf8.DecodeRune(rest)
		rest = rest[size:]
		if n := utf16.RuneLen(r); n > 0 {
			units += uint32(n) // #nosec G115 -- 1 or 2
		} else {
			units++
		}
	}
	return protocol.Position{Line: protocol.UInteger(lc.Line - 1), Character: protocol.UInteger(units)}
}

func rangeForSpan(file *source.File, span source.Span) protocol.Range {
	return protocol.Range{
		Start: positionForOffset(file, span.Start),
		End:   positionForOffset(file, span.End),
	}
}
