package driver_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cfparse/internal/ast"
	"cfparse/internal/diag"
	"cfparse/internal/dialect"
	"cfparse/internal/driver"
	"cfparse/internal/lower"
	"cfparse/internal/testkit"
)

func issuesSummary(issues []*diag.Diagnostic) string {
	if len(issues) == 0 {
		return "<none>"
	}
	lines := make([]string, len(issues))
	for i, d := range issues {
		lines[i] = fmt.Sprintf("[%s] %s @%d", d.Code.ID(), d.Message, d.Primary.Start)
	}
	return strings.Join(lines, "; ")
}

func mustParse(t *testing.T, name, src string) *driver.Result {
	t.Helper()
	res, err := driver.ParseSource(name, []byte(src), dialect.Unknown, driver.Options{})
	if err != nil {
		t.Fatalf("ParseSource(%s): %v", name, err)
	}
	if res.Root != nil {
		if err := testkit.CheckSpanInvariants(res.Root, res.File); err != nil {
			t.Fatal(err)
		}
	}
	return res
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

var sources = []struct {
	name string
	src  string
}{
	{"page.cfs", "x = 1;\nif (x) { y = 2; } else { z = 'a#x#b'; }\n"},
	{"broken.cfs", "x = 1\ny = 2;\n"},
	{"page.cfm", "<p>#x#</p>\n<cfoutput>#x#</cfoutput>\n<cfif a><cfset b = 1><cfelse>c</cfif>\n"},
	{"Thing.cfc", "<cfcomponent>\n<cffunction name=\"f\"><cfreturn 1></cffunction>\n</cfcomponent>\n"},
	{"Other.cfc", "component extends=\"Base\" {\n  function f() { return 1; }\n}\n"},
}

func TestParseSource_BOMIsInvisible(t *testing.T) {
	for _, tt := range sources {
		t.Run(tt.name, func(t *testing.T) {
			plain := mustParse(t, tt.name, tt.src)
			bom := mustParse(t, tt.name, "\uFEFF"+tt.src)
			if plain.Dialect != bom.Dialect {
				t.Fatalf("dialect %s vs %s", plain.Dialect, bom.Dialect)
			}
			if a, b := testkit.Shape(plain.Root), testkit.Shape(bom.Root); a != b {
				t.Fatalf("shapes differ:\n%s\nvs\n%s", a, b)
			}
			if a, b := issuesSummary(plain.Issues), issuesSummary(bom.Issues); a != b {
				t.Fatalf("issues differ: %s vs %s", a, b)
			}
		})
	}
}

func TestParseSource_Idempotent(t *testing.T) {
	for _, tt := range sources {
		t.Run(tt.name, func(t *testing.T) {
			first := mustParse(t, tt.name, tt.src)
			second := mustParse(t, tt.name, tt.src)
			if a, b := testkit.Shape(first.Root), testkit.Shape(second.Root); a != b {
				t.Fatalf("shapes differ:\n%s\nvs\n%s", a, b)
			}
			if a, b := issuesSummary(first.Issues), issuesSummary(second.Issues); a != b {
				t.Fatalf("issues differ: %s vs %s", a, b)
			}
		})
	}
}

func TestParseSource_Dialects(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want dialect.Kind
		root string
	}{
		{"a.cfs", "x = 1;", dialect.Script, "Script"},
		{"a.cfm", "hello", dialect.Markup, "Template"},
		{"A.cfc", "component {}", dialect.Script, "ClassDecl"},
		{"B.cfc", "<cfcomponent></cfcomponent>", dialect.Markup, "ClassDecl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := mustParse(t, tt.name, tt.src)
			if res.Dialect != tt.want {
				t.Fatalf("dialect = %s, want %s", res.Dialect, tt.want)
			}
			if got := ast.KindName(res.Root); got != tt.root {
				t.Fatalf("root = %s, want %s", got, tt.root)
			}
		})
	}
}

func TestParseSource_ForcedDialect(t *testing.T) {
	res, err := driver.ParseSource("notes.txt", []byte("<cfset x = 1>"), dialect.Markup, driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := res.Root.(*ast.Template); !ok {
		t.Fatalf("root = %s", ast.KindName(res.Root))
	}
}

func TestParseSource_UnknownExtension(t *testing.T) {
	_, err := driver.ParseSource("notes.txt", []byte("x"), dialect.Unknown, driver.Options{})
	if !errors.Is(err, dialect.ErrUnknownExtension) {
		t.Fatalf("err = %v", err)
	}
}

func TestParseSource_ScriptIssuePosition(t *testing.T) {
	res := mustParse(t, "a.cfs", "x = 1\ny = 2;")
	if len(res.Issues) != 1 || res.Issues[0].Code != diag.SynExpectSemicolon {
		t.Fatalf("issues = %s", issuesSummary(res.Issues))
	}
	if pos := res.File.Position(res.Issues[0].Primary.Start); pos.Line != 2 || pos.Col != 1 {
		t.Fatalf("issue at %d:%d, want 2:1", pos.Line, pos.Col)
	}
	if !res.HasErrors() {
		t.Fatal("HasErrors = false")
	}
}

func TestParseSource_ScriptIslandPosition(t *testing.T) {
	res := mustParse(t, "a.cfm", "<p>\n<cfscript>\n  x = 1\n  y = 2;\n</cfscript>")
	if len(res.Issues) != 1 {
		t.Fatalf("issues = %s", issuesSummary(res.Issues))
	}
	if pos := res.File.Position(res.Issues[0].Primary.Start); pos.Line != 4 || pos.Col != 3 {
		t.Fatalf("issue at %d:%d, want 4:3", pos.Line, pos.Col)
	}
}

func TestParseSource_MarkupModeFailure(t *testing.T) {
	res := mustParse(t, "a.cfm", "<cfoutput>x")
	if res.Root != nil {
		t.Fatal("root of a mode failure must be nil")
	}
	if len(res.Issues) != 1 || res.Issues[0].Message != "Unclosed output tag on line 1" {
		t.Fatalf("issues = %s", issuesSummary(res.Issues))
	}
}

func TestParseSource_Unimplemented(t *testing.T) {
	_, err := driver.ParseSource("A.cfc", []byte("component { public constructor() {} }"), dialect.Unknown, driver.Options{})
	if !errors.Is(err, lower.ErrUnimplemented) {
		t.Fatalf("err = %v", err)
	}
}

func TestParseSource_MaxIssues(t *testing.T) {
	res, err := driver.ParseSource("a.cfs", []byte("a = 1\nb = 2;\nc = 3\nd = 4;"), dialect.Unknown, driver.Options{MaxIssues: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Issues) != 1 || res.Dropped == 0 {
		t.Fatalf("issues=%d dropped=%d", len(res.Issues), res.Dropped)
	}
}

func TestParseExpressionAndStatement(t *testing.T) {
	res, err := driver.ParseExpression("1 + 2", driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := res.Root.(*ast.BinaryOp); !ok {
		t.Fatalf("expression root = %s", ast.KindName(res.Root))
	}

	res, err = driver.ParseStatement("a = 1;", driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := res.Root.(*ast.ExprStmt); !ok {
		t.Fatalf("statement root = %s", ast.KindName(res.Root))
	}
	if len(res.Timings.Phases) != 2 {
		t.Fatalf("phases = %+v", res.Timings.Phases)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.cfm")
	writeFile(t, path, "<cfset x = 1>")
	res, err := driver.ParseFile(path, driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Dialect != dialect.Markup || res.Evidence.String() != "extension .cfm" {
		t.Fatalf("dialect %s, evidence %q", res.Dialect, res.Evidence)
	}
	if _, err := driver.ParseFile(filepath.Join(t.TempDir(), "missing.cfm"), driver.Options{}); err == nil {
		t.Fatal("missing file parsed")
	}
}
