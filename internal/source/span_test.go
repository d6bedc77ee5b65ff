package source

import (
	"testing"
)

func TestSpan_Cover(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want Span
	}{
		{"overlap", Span{File: 1, Start: 4, End: 8}, Span{File: 1, Start: 6, End: 12}, Span{File: 1, Start: 4, End: 12}},
		{"inside", Span{File: 1, Start: 0, End: 20}, Span{File: 1, Start: 5, End: 6}, Span{File: 1, Start: 0, End: 20}},
		{"before", Span{File: 1, Start: 10, End: 12}, Span{File: 1, Start: 2, End: 3}, Span{File: 1, Start: 2, End: 12}},
		{"other file", Span{File: 1, Start: 4, End: 8}, Span{File: 2, Start: 0, End: 100}, Span{File: 1, Start: 4, End: 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.want {
				t.Errorf("Cover = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpan_ContainsAndPoints(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 6, End: 12}
	c := a.Cover(b)
	if !c.Contains(a) || !c.Contains(b) || a.Contains(b) {
		t.Fatalf("Contains mismatch for %v, %v, %v", a, b, c)
	}
	if z := c.EndPoint(); z.Len() != 0 || z.Start != 12 {
		t.Fatalf("EndPoint = %+v", z)
	}
	if z := c.StartPoint(); z.Len() != 0 || z.Start != 4 {
		t.Fatalf("StartPoint = %+v", z)
	}
	if s := c.String(); s != "1:4-12" {
		t.Fatalf("String = %q", s)
	}
}
