package lexer

import (
	"cfparse/internal/source"
)

// scanHashBody starts right after an opening '#' and returns the offset of
// the matching closing '#'. Quoted strings inside the expression may contain
// their own '#' pairs. ok is false when the input ends first.
func scanHashBody(content []byte, i, limit uint32) (end uint32, ok bool) {
	for i < limit {
		switch b := content[i]; b {
		case '#':
			return i, true
		case '"', '\'':
			i, ok = skipQuoted(content, i, limit)
			if !ok {
				return limit, false
			}
		default:
			i++
		}
	}
	return limit, false
}

// skipQuoted starts at an opening quote and returns the offset after its
// closing quote. Doubled quotes are escapes; nested `#...#` is skipped whole.
func skipQuoted(content []byte, i, limit uint32) (uint32, bool) {
	q := content[i]
	i++
	for i < limit {
		b := content[i]
		switch {
		case b == q && i+1 < limit && content[i+1] == q:
			i += 2
		case b == q:
			return i + 1, true
		case b == '#' && i+1 < limit && content[i+1] == '#':
			i += 2
		case b == '#':
			end, ok := scanHashBody(content, i+1, limit)
			if !ok {
				return limit, false
			}
			i = end + 1
		default:
			i++
		}
	}
	return limit, false
}

// Segment is a piece of interpolated text.
type Segment struct {
	// Span covers literal text, or the expression between the hashes.
	Span source.Span
	Expr bool
}

// SplitHashes splits file bytes [start, end) into literal runs and `#expr#`
// expressions. `##` stays inside literal runs. An unterminated '#' is kept
// as literal text.
func SplitHashes(file *source.File, start, end uint32) []Segment {
	content := file.Content
	var out []Segment
	lit := start
	i := start
	for i < end {
		if content[i] != '#' {
			i++
			continue
		}
		if i+1 < end && content[i+1] == '#' {
			i += 2
			continue
		}
		close, ok := scanHashBody(content, i+1, end)
		if !ok {
			break
		}
		if i > lit {
			out = append(out, Segment{Span: source.Span{File: file.ID, Start: lit, End: i}})
		}
		out = append(out, Segment{Span: source.Span{File: file.ID, Start: i + 1, End: close}, Expr: true})
		i = close + 1
		lit = i
	}
	if lit < end {
		out = append(out, Segment{Span: source.Span{File: file.ID, Start: lit, End: end}})
	}
	return out
}
