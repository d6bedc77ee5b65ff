package lsp

import (
	"strings"
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"cfparse/internal/dialect"
	"cfparse/internal/driver"
)

func foldingFor(t *testing.T, name, src string) []protocol.FoldingRange {
	t.Helper()
	res, err := driver.ParseSource(name, []byte(src), dialect.Unknown, driver.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return buildFoldingRanges(res)
}

func hasFoldingRange(ranges []protocol.FoldingRange, start, end protocol.UInteger) bool {
	for _, rng := range ranges {
		if rng.StartLine == start && rng.EndLine == end {
			return true
		}
	}
	return false
}

func TestFoldingRanges_Script(t *testing.T) {
	src := strings.Join([]string{
		"function f(a) {",
		"    if (a) {",
		"        return 1;",
		"    }",
		"    return 2;",
		"}",
		"x = 1;",
		"",
	}, "\n")
	ranges := foldingFor(t, "a.cfs", src)
	if !hasFoldingRange(ranges, 0, 5) {
		t.Errorf("missing function range: %+v", ranges)
	}
	if !hasFoldingRange(ranges, 1, 3) {
		t.Errorf("missing if range: %+v", ranges)
	}
	if len(ranges) != 2 {
		t.Errorf("ranges = %+v", ranges)
	}
}

func TestFoldingRanges_Markup(t *testing.T) {
	src := "<cfif a>\n  yes\n</cfif>\n<cfset x = 1>\n"
	ranges := foldingFor(t, "a.cfm", src)
	if !hasFoldingRange(ranges, 0, 2) {
		t.Errorf("missing cfif range: %+v", ranges)
	}
}

func TestFoldingRanges_NoTree(t *testing.T) {
	if got := buildFoldingRanges(nil); len(got) != 0 {
		t.Fatalf("ranges = %+v", got)
	}
	ranges := foldingFor(t, "a.cfm", "<cfoutput>x")
	if ranges == nil || len(ranges) != 0 {
		t.Fatalf("ranges = %+v", ranges)
	}
}
