package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
	maxFuzzInput = 1 << 16  // 64 KiB
)

var snippetSeeds = []string{
	"",
	"x = 1;",
	"x = 1\ny = 2;",
	"a = b ? c : d ?: e;",
	"s = \"#a##b#\" & 'it''s';",
	"f = function(a, b = 2) { return a + b; };",
	"if (a IS NOT b) { x++; } else if (c) {} else { y--; }",
	"for (var i = 0; i < 10; i++) { continue; }",
	"do { x = x MOD 2; } while (x GT 0);",
	"component { property name=\"x\"; function f() {} }",
	"<cfoutput>#x#</cfoutput>",
	"<cfif a><cfelseif b><cfelse></cfif>",
	"<cfscript>x = [1, {a: 2}];</cfscript>",
	"<cfoutput>x",
	"<cfset x = \"unterminated>",
	"<!--- <!--- nested ---> --->",
	"<cflock name=\"n\">body",
	"{ { { { } } } }",
	"x = ((((1)))",
}

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	for _, s := range snippetSeeds {
		f.Add([]byte(s))
	}
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".cfm", ".cfml", ".cfc", ".cfs":
		default:
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
