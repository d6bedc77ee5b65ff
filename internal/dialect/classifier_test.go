package dialect_test

import (
	"errors"
	"testing"

	"cfparse/internal/dialect"
)

func TestDetect_Extensions(t *testing.T) {
	tests := []struct {
		path string
		want dialect.Kind
	}{
		{"a/b/index.cfm", dialect.Markup},
		{"page.CFML", dialect.Markup},
		{"lib.cfs", dialect.Script},
		{"Empty.cfc", dialect.Script},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := dialect.Detect(tt.path, nil)
			if err != nil {
				t.Fatalf("Detect(%q): %v", tt.path, err)
			}
			if got != tt.want {
				t.Fatalf("Detect(%q) = %s, want %s", tt.path, got, tt.want)
			}
		})
	}
}

func TestDetect_UnknownExtension(t *testing.T) {
	for _, path := range []string{"readme.txt", "noext", "x.inc"} {
		if _, err := dialect.Detect(path, nil); !errors.Is(err, dialect.ErrUnknownExtension) {
			t.Errorf("Detect(%q) err = %v, want ErrUnknownExtension", path, err)
		}
	}
}

func TestDetector_Extra(t *testing.T) {
	d := dialect.Detector{Extra: map[string]dialect.Kind{"inc": dialect.Markup, "cfm": dialect.Script}}
	if k, _, err := d.Detect("header.inc", nil); err != nil || k != dialect.Markup {
		t.Fatalf("inc = %s, %v", k, err)
	}
	if k, _, _ := d.Detect("page.cfm", nil); k != dialect.Markup {
		t.Fatal("built-in extension was overridden")
	}
}

func TestSniff(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    dialect.Kind
		line    int
	}{
		{"script component", "component {\n}", dialect.Script, 1},
		{"script interface", "\n\nInterface {}", dialect.Script, 3},
		{"abstract component", "abstract component extends=\"x\" {}", dialect.Script, 1},
		{"final component", "final  component {}", dialect.Script, 1},
		{"abstract without component", "abstract\n<cfcomponent>", dialect.Markup, 2},
		{"tag component", "<cfcomponent output=\"false\">\n</cfcomponent>", dialect.Markup, 1},
		{"tag interface", "  <CFINTERFACE>", dialect.Markup, 1},
		{"script island", "<cfscript>\ncomponent {}", dialect.Markup, 1},
		{"line comment skipped", "// component\n<cfcomponent>", dialect.Markup, 2},
		{"block comment skipped", "/*\ncomponent\n*/\n<cfcomponent>", dialect.Markup, 4},
		{"tag comment skipped", "<!---\n<cfcomponent>\n--->\ncomponent {}", dialect.Script, 4},
		{"one-line doc comment", "/** hint */\ncomponent {}", dialect.Script, 2},
		{"bom", "\uFEFF<cfcomponent>", dialect.Markup, 1},
		{"no marker", "x = 1;\n", dialect.Script, 0},
		{"empty", "", dialect.Script, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := dialect.Sniff([]byte(tt.content))
			if h.Dialect != tt.want || h.Line != tt.line {
				t.Fatalf("Sniff = %s on line %d (%s), want %s on line %d", h.Dialect, h.Line, h.Reason, tt.want, tt.line)
			}
		})
	}
}

func TestDetect_Evidence(t *testing.T) {
	_, ev, err := dialect.Detector{}.Detect("x.cfc", []byte("<cfcomponent>"))
	if err != nil {
		t.Fatal(err)
	}
	if got := ev.String(); got != "starts with <cfcomponent on line 1" {
		t.Fatalf("evidence = %q", got)
	}
	_, ev, _ = dialect.Detector{}.Detect("x.cfm", nil)
	if got := ev.String(); got != "extension .cfm" {
		t.Fatalf("evidence = %q", got)
	}
}

func TestParseKind(t *testing.T) {
	for name, want := range map[string]dialect.Kind{"script": dialect.Script, "MARKUP": dialect.Markup, "template": dialect.Markup} {
		if got, err := dialect.ParseKind(name); err != nil || got != want {
			t.Errorf("ParseKind(%q) = %s, %v", name, got, err)
		}
	}
	if _, err := dialect.ParseKind("rust"); err == nil {
		t.Error("ParseKind(rust) succeeded")
	}
}

func TestDetector_Handles(t *testing.T) {
	d := dialect.Detector{Extra: map[string]dialect.Kind{"inc": dialect.Markup}}
	for path, want := range map[string]bool{"a.cfc": true, "B.CFM": true, "h.inc": true, "x.txt": false, "Makefile": false} {
		if got := d.Handles(path); got != want {
			t.Errorf("Handles(%q) = %v, want %v", path, got, want)
		}
	}
}
