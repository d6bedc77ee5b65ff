package source

import (
	"path/filepath"
	"sort"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// StripBOM removes a leading UTF-8 byte-order mark.
func StripBOM(content []byte) ([]byte, bool) {
	if len(content) < len(utf8BOM) {
		return content, false
	}
	if content[0] == utf8BOM[0] && content[1] == utf8BOM[1] && content[2] == utf8BOM[2] {
		return content[3:], true
	}
	return content, false
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content)/32)
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i)) // #nosec G115 -- Add checks len(content) fits uint32
		}
	}
	return out
}

// toLineCol maps a byte offset to a 1-based line/column.
// The '\n' itself belongs to the line it terminates.
func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// число переводов строки строго перед off
	n := sort.Search(len(lineIdx), func(i int) bool { return lineIdx[i] >= off })
	if n == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}
	start := lineIdx[n-1] + 1
	return LineCol{Line: uint32(n + 1), Col: off - start + 1} // #nosec G115 -- n <= len(lineIdx)
}

// fromLineCol is the inverse of toLineCol; out-of-range positions clamp to limit.
func fromLineCol(lineIdx []uint32, pos LineCol, limit uint32) uint32 {
	if pos.Line <= 1 {
		return min(pos.Col-1, limit)
	}
	idx := int(pos.Line) - 2
	if idx >= len(lineIdx) {
		return limit
	}
	return min(lineIdx[idx]+1+pos.Col-1, limit)
}

func normalizePath(p string) string {
	if p == InlineName {
		return p
	}
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}
