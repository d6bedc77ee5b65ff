package lower_test

import (
	"errors"
	"strings"
	"testing"

	"cfparse/internal/ast"
	"cfparse/internal/diag"
	"cfparse/internal/lower"
	"cfparse/internal/parser"
)

func TestLowerScript_Statements(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"if else", "if (a) { b(); } else c();", "IfStmt"},
		{"loops", "while (a) b++; do { a(); } while (b); for (var k in s) {} for (i = 1; ; i++) {}",
			"WhileStmt DoWhileStmt ForInStmt ForIndexStmt"},
		{"blocks flatten", "{ a(); { b(); } }", "ExprStmt ExprStmt"},
		{"jumps", "while (true) { break; continue; } return;", "WhileStmt ReturnStmt"},
		{"var decl", "var x; var y = 1;", "ExprStmt ExprStmt"},
		{"imports first", "import foo.bar.*; a();", "ImportStmt ExprStmt"},
		{"throw rethrow", `throw "x"; rethrow;`, "ThrowStmt RethrowStmt"},
		{"include", `include "a.cfm";`, "IncludeStmt"},
		{"function", "function f() {}", "FunctionDecl"},
		{"component stmt", `lock name="x" { a = 1; }`, "ComponentStmt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := lowerScript(t, tt.input)
			expectNoDiagnostics(t, res.bag)
			if got := kinds(statements(t, res.root)); got != tt.want {
				t.Fatalf("input %q\n got: %s\nwant: %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestLowerScript_IfElseSpan(t *testing.T) {
	src := "x = 1;\nif (a) {\n  b();\n} else {\n  c();\n}"
	res := lowerScript(t, src)
	expectNoDiagnostics(t, res.bag)
	stmts := statements(t, res.root)
	if len(stmts) != 2 {
		t.Fatalf("got %d statements, want 2", len(stmts))
	}
	ifs := as[*ast.IfStmt](t, stmts[1])
	text := ifs.SourceText()
	if text[:2] != "if" || text[len(text)-1] != '}' {
		t.Fatalf("if statement text = %q", text)
	}
	if len(ifs.Then) != 1 || len(ifs.Else) != 1 {
		t.Fatalf("then=%d else=%d", len(ifs.Then), len(ifs.Else))
	}
}

func TestLowerScript_ElseIfNests(t *testing.T) {
	res := lowerScript(t, "if (a) x(); else if (b) y(); else z();")
	expectNoDiagnostics(t, res.bag)
	outer := as[*ast.IfStmt](t, statements(t, res.root)[0])
	inner := as[*ast.IfStmt](t, outer.Else[0])
	if len(inner.Else) != 1 {
		t.Fatalf("inner else = %d statements", len(inner.Else))
	}
}

func TestLowerScript_Jumps(t *testing.T) {
	res := lowerScript(t, "while (true) { break; continue; } return;")
	stmts := statements(t, res.root)
	loop := as[*ast.WhileStmt](t, stmts[0])
	if as[*ast.BreakStmt](t, loop.Body[0]).Label != "" {
		t.Fatal("bare break has a label")
	}
	as[*ast.ContinueStmt](t, loop.Body[1])
	if as[*ast.ReturnStmt](t, stmts[1]).X != nil {
		t.Fatal("bare return has a value")
	}
}

func TestLowerScript_Switch(t *testing.T) {
	res := lowerScript(t, "switch (x) { case 1: a(); break; case 'b': default: b(); }")
	expectNoDiagnostics(t, res.bag)
	sw := as[*ast.SwitchStmt](t, statements(t, res.root)[0])
	if len(sw.Cases) != 3 {
		t.Fatalf("cases = %d, want 3", len(sw.Cases))
	}
	if len(sw.Cases[0].Body) != 2 {
		t.Fatalf("first case body = %d statements", len(sw.Cases[0].Body))
	}
	if sw.Cases[2].Value != nil {
		t.Fatal("default case has a value")
	}
}

func TestLowerScript_Try(t *testing.T) {
	res := lowerScript(t, `try { a(); } catch (foo.Bar | "baz" e) {} catch (e) {} finally { c(); }`)
	expectNoDiagnostics(t, res.bag)
	try := as[*ast.TryStmt](t, statements(t, res.root)[0])
	if len(try.Catches) != 2 || len(try.Finally) != 1 {
		t.Fatalf("catches=%d finally=%d", len(try.Catches), len(try.Finally))
	}
	union := try.Catches[0]
	if len(union.Types) != 2 || union.Var.Name != "e" {
		t.Fatalf("union catch: %d types, var %q", len(union.Types), union.Var.Name)
	}
	bare := try.Catches[1]
	if fqn := as[*ast.FQN](t, bare.Types[0]); fqn.Value != "any" || fqn.Span().Len() != 0 {
		t.Fatalf("default catch type = %q over %v", fqn.Value, fqn.Span())
	}
}

func TestLowerScript_Throw(t *testing.T) {
	res := lowerScript(t, `throw(message="m", type="t", detail="d");`)
	expectNoDiagnostics(t, res.bag)
	th := as[*ast.ThrowStmt](t, statements(t, res.root)[0])
	if as[*ast.StringLit](t, th.Message).Value != "m" || as[*ast.StringLit](t, th.Type).Value != "t" {
		t.Fatal("throw lost message or type")
	}
	if th.X != nil || th.Detail == nil {
		t.Fatal("throw attributes misplaced")
	}

	bad := lowerScript(t, `throw(message="m", colour="red");`)
	if got := diagnosticsSummary(bad.bag); got != "[TAG3006] Unknown throw attribute [colour]" {
		t.Fatalf("diagnostics = %s", got)
	}
}

func TestLowerScript_MixedArguments(t *testing.T) {
	res := lowerScript(t, "f(1, b = 2, 3);")
	if got := diagnosticsSummary(res.bag); got != "[LOW4001] You cannot mix named and positional arguments" {
		t.Fatalf("diagnostics = %s", got)
	}
	call := as[*ast.FunctionInvocation](t, as[*ast.ExprStmt](t, statements(t, res.root)[0]).X)
	if len(call.Args) != 3 {
		t.Fatalf("args = %d, want 3", len(call.Args))
	}
}

func TestLowerScript_InvalidAssignmentTarget(t *testing.T) {
	res := lowerScript(t, "f() = 1;")
	if got := diagnosticsSummary(res.bag); got != "[LOW4004] Invalid assignment target [f()]" {
		t.Fatalf("diagnostics = %s", got)
	}
}

func TestLowerScript_Functions(t *testing.T) {
	src := "/**\n * Adds.\n * @a the first\n */\n" +
		`private numeric function add(required numeric a, b = 2) output=false a.deprecated="yes" { return a + b; }`
	res := lowerScript(t, src)
	expectNoDiagnostics(t, res.bag)
	fn := as[*ast.FunctionDecl](t, statements(t, res.root)[0])
	if fn.Name != "add" || fn.Access != ast.AccessPrivate || fn.ReturnType.Type != "numeric" {
		t.Fatalf("function %q access %s returns %s", fn.Name, fn.Access, fn.ReturnType.Type)
	}
	if len(fn.Args) != 2 {
		t.Fatalf("args = %d", len(fn.Args))
	}
	a, b := fn.Args[0], fn.Args[1]
	if !a.Required || a.Type != "numeric" || b.Required || b.Type != "Any" || b.Default == nil {
		t.Fatalf("args lowered wrong: %+v %+v", a, b)
	}
	if len(fn.Annotations) != 1 || fn.Annotations[0].Key.Value != "output" {
		t.Fatalf("function annotations = %d", len(fn.Annotations))
	}
	if len(a.Annotations) != 1 || a.Annotations[0].Key.Value != "deprecated" {
		t.Fatal("a.deprecated was not moved onto the argument")
	}
	if fn.Documentation == nil || fn.Documentation.Description != "Adds." {
		t.Fatal("doc comment not attached")
	}
	if len(fn.Documentation.Annotations) != 0 || len(a.Documentation) != 1 || a.Documentation[0].Key.Value != "hint" {
		t.Fatal("@a doc was not moved onto the argument as its hint")
	}
}

func TestLowerScript_DefaultReturnType(t *testing.T) {
	res := lowerScript(t, "function f() {}")
	fn := as[*ast.FunctionDecl](t, statements(t, res.root)[0])
	if fn.ReturnType.Type != "any" || fn.ReturnType.Span().Len() != 0 {
		t.Fatalf("return type %q over %v", fn.ReturnType.Type, fn.ReturnType.Span())
	}
}

func TestLowerScript_Component(t *testing.T) {
	src := "import foo.*;\n/** A thing. */\n@singleton \"yes\" component extends=\"Base\" {\n  property string name;\n  function init() {}\n}"
	res := lowerScript(t, src)
	expectNoDiagnostics(t, res.bag)
	class := as[*ast.ClassDecl](t, res.root)
	if class.Span().Start != 0 || int(class.Span().End) != len(src) {
		t.Fatalf("class span %v does not cover the file", class.Span())
	}
	if len(class.Imports) != 1 || len(class.Properties) != 1 || len(class.Body) != 1 {
		t.Fatalf("imports=%d properties=%d body=%d", len(class.Imports), len(class.Properties), len(class.Body))
	}
	if len(class.Annotations) != 2 {
		t.Fatalf("annotations = %d, want 2", len(class.Annotations))
	}
	prop := class.Properties[0]
	if len(prop.Annotations) != 2 || prop.Annotations[0].Key.Value != "name" || prop.Annotations[1].Key.Value != "type" {
		t.Fatal("property shorthand not expanded")
	}
	if class.Documentation == nil {
		t.Fatal("class doc comment not attached")
	}
}

func TestLowerScript_Interface(t *testing.T) {
	res := lowerScript(t, "interface { function f(); }")
	class := as[*ast.ClassDecl](t, res.root)
	if !class.Interface {
		t.Fatal("interface lowered as component")
	}
}

func TestLowerScript_ScriptComponents(t *testing.T) {
	res := lowerScript(t, `lock name="x" { a = 1; } param name="y"; cflock(name="z") {} cfwhatever(1);`)
	expectNoDiagnostics(t, res.bag)
	stmts := statements(t, res.root)
	if got := kinds(stmts); got != "ComponentStmt ComponentStmt ComponentStmt ExprStmt" {
		t.Fatalf("kinds = %s", got)
	}
	lock := as[*ast.ComponentStmt](t, stmts[0])
	if lock.Pending() || len(lock.Statements()) != 1 || !lock.RequiresBody {
		t.Fatal("lock body not resolved")
	}
	param := as[*ast.ComponentStmt](t, stmts[1])
	if param.Pending() || len(param.Statements()) != 0 {
		t.Fatal("param should resolve with an empty body")
	}
	call := as[*ast.ComponentStmt](t, stmts[2])
	if call.Name != "lock" || len(call.Attributes) != 1 || call.Attributes[0].Key.Value != "name" {
		t.Fatal("call form attributes not lowered")
	}
	fn := as[*ast.FunctionInvocation](t, as[*ast.ExprStmt](t, stmts[3]).X)
	if fn.Name != "cfwhatever" {
		t.Fatalf("unknown call form name = %q", fn.Name)
	}
}

func TestLowerScript_ComponentBodyRules(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		diag    string
		pending bool
	}{
		{"required body missing", `lock name="x";`, "[TAG3002] Component [lock] requires a body.", true},
		{"body not allowed", `param name="x" {}`, "[TAG3003] The [param] component does not allow a body", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := lowerScript(t, tt.input)
			if got := diagnosticsSummary(res.bag); got != tt.diag {
				t.Fatalf("diagnostics = %s", got)
			}
			c := as[*ast.ComponentStmt](t, statements(t, res.root)[0])
			if c.Pending() != tt.pending {
				t.Fatalf("pending = %v, want %v", c.Pending(), tt.pending)
			}
		})
	}
}

func TestLowerScript_ConstructorIsUnimplemented(t *testing.T) {
	file := newTestFile("test.cfs", "component { public constructor() {} }")
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	res := parser.ParseScript(file, 0, file.Len(), parser.Options{Reporter: rep})
	root, err := lower.Script(file, res.Root, lower.Options{Reporter: rep})
	if !errors.Is(err, lower.ErrUnimplemented) {
		t.Fatalf("err = %v, want ErrUnimplemented", err)
	}
	var ue *lower.UnimplementedError
	if !errors.As(err, &ue) || ue.What != "constructor declaration" {
		t.Fatalf("err = %#v", err)
	}
	if root != nil {
		t.Fatalf("root = %T, want nil", root)
	}
}

func TestLowerStatement_Entry(t *testing.T) {
	lowerOne := func(src string) ast.Node {
		t.Helper()
		file := newTestFile("test.cfs", src)
		bag := diag.NewBag(0)
		rep := diag.BagReporter{Bag: bag}
		res := parser.ParseScriptStatement(file, 0, file.Len(), parser.Options{Reporter: rep})
		n, err := lower.Statement(file, res.Root, lower.Options{Reporter: rep})
		if err != nil {
			t.Fatalf("lower %q: %v", src, err)
		}
		checkSpans(t, n, file)
		return n
	}
	as[*ast.ExprStmt](t, lowerOne("a = 1;"))
	multi := as[*ast.Script](t, lowerOne("{ a = 1; b = 2; }"))
	if len(multi.Statements) != 2 {
		t.Fatalf("statements = %d", len(multi.Statements))
	}
}

func TestLowerScript_ParamForms(t *testing.T) {
	type wantArg struct {
		required    bool
		typ, name   string
		def         string // literal value, "" for none
		annotations []string
	}
	tests := []struct {
		name string
		src  string
		want []wantArg
	}{
		{"typed with default", `function g(string a = "x", b = 2) {}`, []wantArg{
			{typ: "string", name: "a", def: "x"},
			{typ: "Any", name: "b", def: "2"},
		}},
		{"required typed default then annotation", `function g(required string name='Brad' inject="svc") {}`, []wantArg{
			{required: true, typ: "string", name: "name", def: "Brad", annotations: []string{"inject=svc"}},
		}},
		{"numeric default with annotation", `function g(numeric p=42 luis="majano") {}`, []wantArg{
			{typ: "numeric", name: "p", def: "42", annotations: []string{"luis=majano"}},
		}},
		{"required typed default and hint", `function g(required numeric a=1 hint="h") {}`, []wantArg{
			{required: true, typ: "numeric", name: "a", def: "1", annotations: []string{"hint=h"}},
		}},
		{"closure param", `f = function(string a = 1){};`, []wantArg{
			{typ: "string", name: "a", def: "1"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := lowerScript(t, tt.src)
			expectNoDiagnostics(t, res.bag)
			var args []*ast.ArgumentDecl
			switch s := statements(t, res.root)[0].(type) {
			case *ast.FunctionDecl:
				args = s.Args
			case *ast.ExprStmt:
				assign := as[*ast.Assignment](t, s.X)
				args = as[*ast.Closure](t, assign.Right).Args
			default:
				t.Fatalf("statement is %T", s)
			}
			if len(args) != len(tt.want) {
				t.Fatalf("args = %d, want %d", len(args), len(tt.want))
			}
			for i, w := range tt.want {
				a := args[i]
				if a.Required != w.required || a.Type != w.typ || a.Name != w.name {
					t.Errorf("arg %d = required %v type %q name %q, want %v %q %q", i, a.Required, a.Type, a.Name, w.required, w.typ, w.name)
				}
				if got := literalText(a.Default); got != w.def {
					t.Errorf("arg %d default = %q, want %q", i, got, w.def)
				}
				var annos []string
				for _, an := range a.Annotations {
					annos = append(annos, an.Key.Value+"="+literalText(an.Value))
				}
				if strings.Join(annos, ",") != strings.Join(w.annotations, ",") {
					t.Errorf("arg %d annotations = %v, want %v", i, annos, w.annotations)
				}
			}
		})
	}
}

func literalText(e ast.Expr) string {
	switch v := e.(type) {
	case *ast.StringLit:
		return v.Value
	case *ast.IntegerLit:
		return v.Value
	}
	return ""
}

func TestLowerScript_RootCoversLeadingDoc(t *testing.T) {
	src := "/** Adds one. */\nfunction f(a) { return a + 1; }\n"
	res := lowerScript(t, src)
	expectNoDiagnostics(t, res.bag)
	root := res.root.Span()
	if root.Start != 0 || int(root.End) != len(src) {
		t.Fatalf("root span %v, want the whole file", root)
	}
	fn := as[*ast.FunctionDecl](t, statements(t, res.root)[0])
	if fn.Documentation == nil || !root.Contains(fn.Documentation.Span()) {
		t.Fatalf("documentation outside the root: %v", fn.Documentation)
	}
	ast.Inspect(res.root, func(n ast.Node) bool {
		if !root.Contains(n.Span()) {
			t.Errorf("%s %v lies outside the root", ast.KindName(n), n.Span())
		}
		return true
	})
}
