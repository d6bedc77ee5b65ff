package lower_test

import (
	"strings"
	"testing"

	"cfparse/internal/ast"
	"cfparse/internal/diag"
)

func TestLowerTemplate_Statements(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"text", "hello", "BufferOutputStmt"},
		{"set", `<cfset x = 1>`, "ExprStmt"},
		{"if", `<cfif a>x<cfelse>y</cfif>`, "IfStmt"},
		{"try", `<cftry>a<cfcatch>b</cfcatch></cftry>`, "TryStmt"},
		{"output", `<cfoutput>#x#</cfoutput>`, "ComponentStmt"},
		{"loop condition", `<cfloop condition="i LT 3">x</cfloop>`, "WhileStmt"},
		{"loop array", `<cfloop array="#a#" item="i">x</cfloop>`, "ComponentStmt"},
		{"script", `<cfscript>a = 1;</cfscript>`, "ScriptIslandStmt"},
		{"flat tags", `<cfreturn><cfrethrow><cfbreak><cfcontinue>`, "ReturnStmt RethrowStmt BreakStmt ContinueStmt"},
		{"import", `<cfimport prefix="ui" taglib="/tags">`, "ImportStmt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := lowerTemplate(t, tt.input)
			expectNoDiagnostics(t, res.bag)
			if got := kinds(statements(t, res.root)); got != tt.want {
				t.Fatalf("input %q\n got: %s\nwant: %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestLowerTemplate_TagMatching(t *testing.T) {
	src := `<cflock name="x">X</cflock>`
	res := lowerTemplate(t, src)
	expectNoDiagnostics(t, res.bag)
	stmts := statements(t, res.root)
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(stmts))
	}
	lock := as[*ast.ComponentStmt](t, stmts[0])
	if lock.Pending() {
		t.Fatal("lock left pending")
	}
	if lock.SourceText() != src {
		t.Fatalf("lock text = %q, want the open tag through the close tag", lock.SourceText())
	}
	body := lock.Statements()
	if len(body) != 1 || as[*ast.StringLit](t, as[*ast.BufferOutputStmt](t, body[0]).X).Value != "X" {
		t.Fatal("lock body is not the text X")
	}
	if len(lock.Attributes) != 1 || lock.Attributes[0].Key.Value != "name" {
		t.Fatal("lock attributes lost")
	}
	if as[*ast.StringLit](t, lock.Attributes[0].Value).Value != "x" {
		t.Fatal("attribute value keeps its quotes")
	}
}

func TestLowerTemplate_NestedSameName(t *testing.T) {
	res := lowerTemplate(t, `<cflock name="a"><cflock name="b">in</cflock>mid</cflock>`)
	expectNoDiagnostics(t, res.bag)
	outer := as[*ast.ComponentStmt](t, statements(t, res.root)[0])
	body := outer.Statements()
	if len(body) != 2 {
		t.Fatalf("outer body = %d statements, want 2", len(body))
	}
	inner := as[*ast.ComponentStmt](t, body[0])
	if inner.Pending() || len(inner.Statements()) != 1 {
		t.Fatal("inner lock not resolved")
	}
}

func TestLowerTemplate_UnmatchedClose(t *testing.T) {
	res := lowerTemplate(t, `a</cflock>b`)
	if res.bag.Len() != 1 {
		t.Fatalf("want exactly one issue, got %s", diagnosticsSummary(res.bag))
	}
	if got := diagnosticsSummary(res.bag); got != "[TAG3001] Found end component [lock] without matching start component" {
		t.Fatalf("diagnostics = %s", got)
	}
	for _, s := range statements(t, res.root) {
		if _, ok := s.(*ast.ComponentStmt); ok {
			t.Fatal("unmatched close produced a component")
		}
	}
}

func TestLowerTemplate_RequiredBody(t *testing.T) {
	res := lowerTemplate(t, `<cflock name="x">`)
	if res.bag.Len() != 1 {
		t.Fatalf("want exactly one issue, got %s", diagnosticsSummary(res.bag))
	}
	if got := diagnosticsSummary(res.bag); got != "[TAG3002] Component [lock] requires a body." {
		t.Fatalf("diagnostics = %s", got)
	}
	lock := as[*ast.ComponentStmt](t, statements(t, res.root)[0])
	if !lock.Pending() {
		t.Fatal("lock body was resolved")
	}
}

func TestLowerTemplate_OptionalBodyResolvesEmpty(t *testing.T) {
	res := lowerTemplate(t, `<cfhttp url="x">after`)
	expectNoDiagnostics(t, res.bag)
	stmts := statements(t, res.root)
	http := as[*ast.ComponentStmt](t, stmts[0])
	if http.Pending() || len(http.Statements()) != 0 {
		t.Fatal("unclosed http should have an empty body")
	}
	if len(stmts) != 2 {
		t.Fatalf("text after the tag was swallowed: %d statements", len(stmts))
	}
}

func TestLowerTemplate_BodylessTag(t *testing.T) {
	res := lowerTemplate(t, `<cfparam name="x"></cfparam>`)
	if got := diagnosticsSummary(res.bag); got != "[TAG3003] The [param] component does not allow a body" {
		t.Fatalf("diagnostics = %s", got)
	}
	param := as[*ast.ComponentStmt](t, statements(t, res.root)[0])
	if param.Pending() {
		t.Fatal("param left pending")
	}
}

func TestLowerTemplate_IfChain(t *testing.T) {
	res := lowerTemplate(t, `<cfif a>x<cfelseif b>y<cfelse>z</cfif>`)
	expectNoDiagnostics(t, res.bag)
	outer := as[*ast.IfStmt](t, statements(t, res.root)[0])
	as[*ast.Identifier](t, outer.Cond)
	if len(outer.Else) != 1 {
		t.Fatalf("outer else = %d statements", len(outer.Else))
	}
	inner := as[*ast.IfStmt](t, outer.Else[0])
	if as[*ast.Identifier](t, inner.Cond).Name != "b" {
		t.Fatal("elseif condition lost")
	}
	if len(inner.Else) != 1 {
		t.Fatal("else branch lost")
	}
}

func TestLowerTemplate_Try(t *testing.T) {
	src := "<cftry>a<cfcatch type=\"foo.Bar\">b</cfcatch>\n<cfcatch>c</cfcatch>\n<cffinally>d</cffinally>\n</cftry>"
	res := lowerTemplate(t, src)
	expectNoDiagnostics(t, res.bag)
	try := as[*ast.TryStmt](t, statements(t, res.root)[0])
	if len(try.Catches) != 2 || len(try.Finally) != 1 {
		t.Fatalf("catches=%d finally=%d", len(try.Catches), len(try.Finally))
	}
	if as[*ast.FQN](t, try.Catches[0].Types[0]).Value != "foo.Bar" {
		t.Fatal("catch type lost")
	}
	if as[*ast.FQN](t, try.Catches[1].Types[0]).Value != "any" {
		t.Fatal("default catch type is not any")
	}
	if try.Catches[1].Var.Name != "cfcatch" {
		t.Fatal("catch variable is not cfcatch")
	}
}

func TestLowerTemplate_Switch(t *testing.T) {
	src := "<cfswitch expression=\"#x#\">\n<cfcase value=\"1\">one</cfcase>\n<cfdefaultcase>other</cfdefaultcase>\n</cfswitch>"
	res := lowerTemplate(t, src)
	expectNoDiagnostics(t, res.bag)
	sw := as[*ast.SwitchStmt](t, statements(t, res.root)[0])
	if len(sw.Cases) != 2 {
		t.Fatalf("cases = %d, want 2", len(sw.Cases))
	}
	for i, c := range sw.Cases {
		last := c.Body[len(c.Body)-1]
		if br := as[*ast.BreakStmt](t, last); br.Span().Len() != 0 {
			t.Fatalf("case %d: implicit break is not synthetic", i)
		}
	}
	if sw.Cases[1].Value != nil {
		t.Fatal("default case has a value")
	}
}

func TestLowerTemplate_SwitchBodyRejectsText(t *testing.T) {
	res := lowerTemplate(t, `<cfswitch expression="x">oops<cfcase value="1">a</cfcase></cfswitch>`)
	if got := diagnosticsSummary(res.bag); got != "[TAG3007] Switch body can only contain case statements - text" {
		t.Fatalf("diagnostics = %s", got)
	}
}

func TestLowerTemplate_Output(t *testing.T) {
	res := lowerTemplate(t, `<cfoutput>Hi #name#! ##1</cfoutput>`)
	expectNoDiagnostics(t, res.bag)
	out := as[*ast.ComponentStmt](t, statements(t, res.root)[0])
	buf := as[*ast.BufferOutputStmt](t, out.Statements()[0])
	interp := as[*ast.StringInterpolation](t, buf.X)
	if len(interp.Parts) != 3 {
		t.Fatalf("parts = %d, want 3", len(interp.Parts))
	}
	if as[*ast.Identifier](t, interp.Parts[1]).Name != "name" {
		t.Fatal("interpolated expression lost")
	}
	if as[*ast.StringLit](t, interp.Parts[2]).Value != "! #1" {
		t.Fatalf("escaped hash = %q", interp.Parts[2].(*ast.StringLit).Value)
	}
}

func TestLowerTemplate_HashOutsideOutputIsText(t *testing.T) {
	res := lowerTemplate(t, `a #b# c`)
	expectNoDiagnostics(t, res.bag)
	buf := as[*ast.BufferOutputStmt](t, statements(t, res.root)[0])
	if as[*ast.StringLit](t, buf.X).Value != "a #b# c" {
		t.Fatal("text outside cfoutput was interpolated")
	}
}

func TestLowerTemplate_Function(t *testing.T) {
	src := `<cffunction name="add" access="private" returntype="numeric" output="false">` +
		`<cfargument name="a" type="numeric" required="true">` +
		`<cfargument name="b" default="2">` +
		`<cfreturn a + b>` +
		`</cffunction>`
	res := lowerTemplate(t, src)
	expectNoDiagnostics(t, res.bag)
	fn := as[*ast.FunctionDecl](t, statements(t, res.root)[0])
	if fn.Name != "add" || fn.Access != ast.AccessPrivate || fn.ReturnType.Type != "numeric" {
		t.Fatalf("function %q access %s returns %s", fn.Name, fn.Access, fn.ReturnType.Type)
	}
	if len(fn.Args) != 2 || !fn.Args[0].Required || fn.Args[1].Required || fn.Args[1].Type != "Any" {
		t.Fatal("arguments lowered wrong")
	}
	if len(fn.Annotations) != 1 || fn.Annotations[0].Key.Value != "output" {
		t.Fatalf("annotations = %d", len(fn.Annotations))
	}
	ret := as[*ast.ReturnStmt](t, fn.Body[0])
	as[*ast.BinaryOp](t, ret.X)
}

func TestLowerTemplate_AttributeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"missing function name", `<cffunction></cffunction>`, "[TAG3004] Missing name attribute on function component"},
		{"empty function name", `<cffunction name=""></cffunction>`, "[TAG3005] Attribute [name] cannot be empty"},
		{"dynamic function name", `<cffunction name="#n#"></cffunction>`, "[TAG3006] Attribute [name] attribute must be a string literal"},
		{"bad access", `<cffunction name="f" access="secret"></cffunction>`, "[TAG3006] Attribute [access] has an unknown value [secret]"},
		{"missing switch expression", `<cfswitch></cfswitch>`, "[TAG3004] Missing expression attribute on switch component"},
		{"missing loop condition", `<cfwhile>x</cfwhile>`, "[TAG3004] Missing condition attribute on while component"},
		{"empty set", `<cfset>`, "[SYN2002] Expected expression in [cfset]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := lowerTemplate(t, tt.input)
			if got := diagnosticsSummary(res.bag); got != tt.want {
				t.Fatalf("input %q\n got: %s\nwant: %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestLowerTemplate_ScriptIslandIssuePosition(t *testing.T) {
	src := "<p>\n<cfscript>\n  x = 1\n  y = 2;\n</cfscript>"
	res := lowerTemplate(t, src)
	if res.root == nil {
		t.Fatal("root is nil")
	}
	items := res.bag.Items()
	if len(items) != 1 {
		t.Fatalf("want one issue, got %s", diagnosticsSummary(res.bag))
	}
	d := items[0]
	if d.Code != diag.SynExpectSemicolon {
		t.Fatalf("code = %s", d.Code.ID())
	}
	pos := res.file.Position(d.Primary.Start)
	if pos.Line != 4 || pos.Col != 3 {
		t.Fatalf("issue at %d:%d, want 4:3", pos.Line, pos.Col)
	}
	island := as[*ast.ScriptIslandStmt](t, statements(t, res.root)[1])
	if len(island.Body) == 0 {
		t.Fatal("island body is empty")
	}
}

func TestLowerTemplate_ScriptIslandSpansAreAbsolute(t *testing.T) {
	src := "<cfset a = 1><cfscript>b = 2;</cfscript>"
	res := lowerTemplate(t, src)
	expectNoDiagnostics(t, res.bag)
	island := as[*ast.ScriptIslandStmt](t, statements(t, res.root)[1])
	st := as[*ast.ExprStmt](t, island.Body[0])
	if want := uint32(strings.Index(src, "b = 2")); st.Span().Start != want {
		t.Fatalf("statement starts at %d, want %d", st.Span().Start, want)
	}
	if got := island.SourceText(); got != "b = 2;" {
		t.Fatalf("island covers %q, want the body only", got)
	}
}

func TestLowerTemplate_Component(t *testing.T) {
	src := "<cfimport prefix=\"ui\" taglib=\"/tags\">\n<cfcomponent extends=\"Base\">\n" +
		"<cfproperty name=\"x\">\n<cffunction name=\"f\"></cffunction>\n</cfcomponent>\n"
	res := lowerTemplate(t, src)
	expectNoDiagnostics(t, res.bag)
	class := as[*ast.ClassDecl](t, res.root)
	if class.Span().Start != 0 || int(class.Span().End) != len(src) {
		t.Fatalf("class span %v does not cover the file", class.Span())
	}
	if len(class.Imports) != 1 || len(class.Properties) != 1 {
		t.Fatalf("imports=%d properties=%d", len(class.Imports), len(class.Properties))
	}
	var fns int
	for _, s := range class.Body {
		if _, ok := s.(*ast.FunctionDecl); ok {
			fns++
		}
	}
	if fns != 1 {
		t.Fatalf("functions = %d, want 1", fns)
	}
	if len(class.Annotations) != 1 || class.Annotations[0].Key.Value != "extends" {
		t.Fatal("component attributes lost")
	}
}
