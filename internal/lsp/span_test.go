package lsp

import (
	"testing"

	"cfparse/internal/source"
)

func TestPositionForOffset(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.cfs", []byte("s = \"😀\";\nbé c\n")))

	tests := []struct {
		off        uint32
		line, char uint32
	}{
		{0, 0, 0},
		{4, 0, 4},
		{9, 0, 7}, // суррогатная пара занимает две единицы
		{11, 1, 0},
		{15, 1, 3},
		{1000, 2, 0},
	}
	for _, tt := range tests {
		pos := positionForOffset(file, tt.off)
		if uint32(pos.Line) != tt.line || uint32(pos.Character) != tt.char {
			t.Errorf("offset %d: got %d:%d, want %d:%d", tt.off, pos.Line, pos.Character, tt.line, tt.char)
		}
	}
}

func TestURIToPath(t *testing.T) {
	tests := []struct {
		uri, want string
	}{
		{"file:///work/a%20b.cfm", "/work/a b.cfm"},
		{"/work/x.cfs", "/work/x.cfs"},
		{"untitled:Untitled-1", "Untitled-1"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := uriToPath(tt.uri); got != tt.want {
			t.Errorf("uriToPath(%q) = %q, want %q", tt.uri, got, tt.want)
		}
	}
}
