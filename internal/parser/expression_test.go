package parser

import "testing"

func TestParseExpression_Shapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"precedence", "a + b * c", "(Binary + (Ident a) (Binary * (Ident b) (Ident c)))"},
		{"left assoc", "a - b - c", "(Binary - (Binary - (Ident a) (Ident b)) (Ident c))"},
		{"unary binds before power", "-a^b", "(Binary ^ (Unary - (Ident a)) (Ident b))"},
		{"concat chain", "a & b & c", "(Binary & (Binary & (Ident a) (Ident b)) (Ident c))"},
		{"concat below additive", "a & b + c", "(Binary & (Ident a) (Binary + (Ident b) (Ident c)))"},
		{"multi-word comparator", "a greater than or equal to b", "(Binary GTE (Ident a) (Ident b))"},
		{"does not contain", "a does not contain b", "(Binary NOT CONTAINS (Ident a) (Ident b))"},
		{"is not", "a is not b", "(Binary NEQ (Ident a) (Ident b))"},
		{"not binds tighter than and", "not a and b", "(Binary AND (Unary NOT (Ident a)) (Ident b))"},
		{"bang", "!a || b", "(Binary OR (Unary NOT (Ident a)) (Ident b))"},
		{"mod word", "a mod b", "(Binary MOD (Ident a) (Ident b))"},
		{"assign right assoc", "x = y = 1", "(Assign = (Ident x) (Assign = (Ident y) (Int 1)))"},
		{"compound assign", "x &= 'a'", "(Assign &= (Ident x) (String (StringPart a)))"},
		{"elvis", "a ?: b", "(Binary ?: (Ident a) (Ident b))"},
		{"ternary", "c ? 1 : 2", "(Ternary (Ident c) (Int 1) (Int 2))"},
		{"postfix", "i++", "(Postfix ++ (Ident i))"},
		{"prefix", "++i", "(Unary pre++ (Ident i))"},
		{"member call", "obj?.foo.bar(1, name=2)",
			"(Call (Dot (Dot (Ident obj) (Ident foo)) (Ident bar)) (Args (Arg (Int 1)) (Arg (Ident name) (Int 2))))"},
		{"index", "a[1]", "(Index (Ident a) (Int 1))"},
		{"paren", "(a)", "(Paren (Ident a))"},
		{"array", "[1, 2]", "(Array (Int 1) (Int 2))"},
		{"ordered struct", "[a: 1]", "(Struct (StructEntry (Ident a) (Int 1)))"},
		{"empty ordered struct", "[:]", "(Struct)"},
		{"struct", `{a = 1, "b": 2}`, "(Struct (StructEntry (Ident a) (Int 1)) (StructEntry (String (StringPart b)) (Int 2)))"},
		{"new", "new foo.Bar(1)", "(New (FQN foo.Bar) (Args (Arg (Int 1))))"},
		{"new with prefix", "new java:Foo()", "(New java (FQN Foo) (Args))"},
		{"lambda params", "(x, y) => x + y", "(Lambda => (Params (Param (Ident x)) (Param (Ident y))) (Binary + (Ident x) (Ident y)))"},
		{"lambda single", "x -> x", "(Lambda -> (Params (Param (Ident x))) (Ident x))"},
		{"closure", "function(a) { return a; }", "(Closure (Params (Param (Ident a))) (Block (Return (Ident a))))"},
		{"closure typed default", "function(string a = 1) {}", "(Closure (Params (Param (TypeRef string) (Ident a) (Default (Int 1)))) (Block))"},
		{"interpolated string", `"a#b#c"`, "(String (StringPart a) (Interp (Ident b)) (StringPart c))"},
		{"hash expression", "#a#", "(HashExpr (Ident a))"},
		{"literals", "[true, null, 1.5]", "(Array (Bool true) (Null null) (Float 1.5))"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, bag := parseExprSource(t, tt.input)
			expectNoDiagnostics(t, bag)
			if got := sexpr(root); got != tt.want {
				t.Fatalf("input %q\n got: %s\nwant: %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseExpression_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"unterminated double quote", `"abc`, "[LEX1002] Unterminated quote expression."},
		{"unterminated single quote", `'abc`, "[LEX1002] Unterminated single quote expression."},
		{"unterminated hash", `"a #b`, "[LEX1005] Unterminated hash expression inside of string literal."},
		{"extra chars", "a b", "[SYN2008] Extra char(s) [b] at the end of parsing."},
		{"missing operand", "a +", "[SYN2002] Expected expression, found end of input"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, bag := parseExprSource(t, tt.input)
			if got := diagnosticsSummary(bag); got != tt.want {
				t.Fatalf("input %q\n got: %s\nwant: %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseExpression_SpansAreAbsolute(t *testing.T) {
	file := newTestFile("test.cfs", "xx a + b yy")
	res := ParseScriptExpression(file, 3, 8, Options{})
	if res.Root.Span.Start != 3 || res.Root.Span.End != 8 {
		t.Fatalf("root span = %s, want 3..8", res.Root.Span)
	}
	right := res.Root.Child(1)
	if got := file.Text(right.Span); got != "b" {
		t.Fatalf("right operand text = %q", got)
	}
}
