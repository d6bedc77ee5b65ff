package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cfparse/internal/dialect"
)

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
[parser]
max_issues = 50

[dialects]
".inc" = "markup"

[cache]
enabled = true
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Parser.MaxIssues != 50 {
		t.Fatalf("max_issues = %d", cfg.Parser.MaxIssues)
	}
	det, err := cfg.Detector()
	if err != nil {
		t.Fatal(err)
	}
	if k, _, err := det.Detect("header.inc", nil); err != nil || k != dialect.Markup {
		t.Fatalf("inc = %s, %v", k, err)
	}
	if cfg.CacheDir() != ".cfparse-cache" {
		t.Fatalf("cache dir = %q", cfg.CacheDir())
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"unknown key", "[parser]\nmax_errors = 1\n", "unknown config keys: parser.max_errors"},
		{"bad dialect", "[dialects]\ninc = \"rust\"\n", "dialects.inc"},
		{"negative limit", "[parser]\nmax_issues = -1\n", "must not be negative"},
		{"syntax", "[parser\n", "decode config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	tagFile := filepath.Join(root, "tags.yaml")
	if err := os.WriteFile(tagFile, []byte("tags:\n  - name: widget\n    requires_body: true\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	conf := "[tags]\nregistry = [\"tags.yaml\"]\n"
	if err := os.WriteFile(filepath.Join(root, ConfigName), []byte(conf), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Discover(nested)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	reg, err := cfg.Registry()
	if err != nil {
		t.Fatalf("Registry: %v", err)
	}
	if d, ok := reg.Lookup("WIDGET"); !ok || !d.RequiresBody {
		t.Fatal("custom tag not loaded")
	}
	if _, ok := reg.Lookup("lock"); !ok {
		t.Fatal("built-in tags lost")
	}
}

func TestDiscover_Default(t *testing.T) {
	cfg, err := Discover(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.CacheDir() != "" || cfg.Parser.MaxIssues != 0 {
		t.Fatalf("default config = %+v", cfg)
	}
}

func TestFindConfig(t *testing.T) {
	root := t.TempDir()
	inner := filepath.Join(root, "inner")
	// каталог с именем конфига не считается конфигом
	if err := os.MkdirAll(filepath.Join(inner, ConfigName), 0o755); err != nil {
		t.Fatal(err)
	}
	hidden := filepath.Join(root, HiddenConfigName)
	if err := os.WriteFile(hidden, []byte("[parser]\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	path, ok, err := FindConfig(inner)
	if err != nil || !ok || path != hidden {
		t.Fatalf("FindConfig = %q, %v, %v", path, ok, err)
	}

	visible := filepath.Join(root, ConfigName)
	if err := os.WriteFile(visible, []byte("[parser]\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if path, _, _ := FindConfig(inner); path != visible {
		t.Fatalf("FindConfig = %q, want %q", path, visible)
	}
}
