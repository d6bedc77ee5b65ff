package parser

import (
	"testing"

	"cfparse/internal/cst"
)

func TestParseTemplate_Shapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"if chain", `<cfif a><p>x</p><cfelseif b>y<cfelse>z</cfif>`,
			"(Template (TagBlock if (TagExpr a) (TagBody (Text (TextPart <p>x</p>))) (TagBlock elseif (TagExpr b) (TagBody (Text (TextPart y)))) (TagBlock else (TagBody (Text (TextPart z))))))"},
		{"output text", `<cfoutput>#x#y##</cfoutput>`,
			"(Template (TagBlock output (TagBody (Text output (Interp #x#) (TextPart y##)))))"},
		{"generic tag", `<cflock name="x">a</cflock>`,
			`(Template (TagStmt lock (Attr (AttrName name) (AttrValue "x"))) (Text (TextPart a)) (TagClose lock))`},
		{"script island", `<cfscript>x = 1;</cfscript>`,
			"(Template (TagBlock script (ScriptIsland x = 1;)))"},
		{"comment dropped", `<!--- c --->a`, "(Template (Text (TextPart a)))"},
		{"nested comment", `<!--- a <!--- b ---> c --->z`, "(Template (Text (TextPart z)))"},
		{"self-closing set", `<cfset x = 1 />`, "(Template (TagStmt set (TagExpr x = 1)))"},
		{"try catch", `<cftry>a<cfcatch type="any">b</cfcatch></cftry>`,
			`(Template (TagBlock try (TagBody (Text (TextPart a))) (TagBlock catch (Attr (AttrName type) (AttrValue "any")) (TagBody (Text (TextPart b))))))`},
		{"blank text between try parts", "<cftry>a<cfcatch>b</cfcatch>\n<cffinally>c</cffinally>\n</cftry>",
			"(Template (TagBlock try (TagBody (Text (TextPart a))) (TagBlock catch (TagBody (Text (TextPart b)))) (TagBlock finally (TagBody (Text (TextPart c))))))"},
		{"bare attribute", `<cfdump var=x>`, "(Template (TagStmt dump (Attr (AttrName var) (AttrValue x))))"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, bag := parseTemplateSource(t, tt.input)
			expectNoDiagnostics(t, bag)
			if res.ModeFailure {
				t.Fatal("unexpected mode failure")
			}
			if got := sexpr(res.Root); got != tt.want {
				t.Fatalf("input %q\n got: %s\nwant: %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseTemplate_ClosedFlag(t *testing.T) {
	res, bag := parseTemplateSource(t, `<cfif a>x</cfif>`)
	expectNoDiagnostics(t, bag)
	block := res.Root.FirstOfKind(cst.KindTagBlock)
	if block == nil || !block.Has(cst.FlagClosed) {
		t.Fatalf("if block not closed: %s", sexpr(res.Root))
	}
}

func TestParseTemplate_Errors(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        string
		modeFailure bool
	}{
		{"missing end tag", `<cfif a>x`, "[SYN2009] Tag [cfif] is missing its end tag [</cfif>]", false},
		{"unclosed output", "<cfoutput>x", "[LEX1007] Unclosed output tag on line 1", true},
		{"unclosed output line", "a\nb\n<cfoutput>\n<cfif a>x", "[LEX1007] Unclosed output tag on line 3", true},
		{"stray structural close", `a</cfif>b`, "[SYN2008] Extra char(s) [</cfif>b] at the end of parsing.", false},
		{"stray else", `a<cfelse>b`, "[SYN2008] Extra char(s) [<cfelse>b] at the end of parsing.", false},
		{"unclosed tag", `<cfset x = 1`, "[LEX1008] Unclosed tag [set] starting on line 1", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, bag := parseTemplateSource(t, tt.input)
			if got := diagnosticsSummary(bag); got != tt.want {
				t.Fatalf("input %q\n got: %s\nwant: %s", tt.input, got, tt.want)
			}
			if res.ModeFailure != tt.modeFailure {
				t.Fatalf("ModeFailure = %v, want %v", res.ModeFailure, tt.modeFailure)
			}
		})
	}
}
