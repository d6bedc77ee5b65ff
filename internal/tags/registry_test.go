package tags

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltinLookupIgnoresCase(t *testing.T) {
	reg := Builtin()
	tests := []struct {
		name     string
		requires bool
		allows   bool
	}{
		{"lock", true, true},
		{"LOCK", true, true},
		{"SaveContent", true, true},
		{"thread", false, true},
		{"param", false, false},
	}
	for _, tt := range tests {
		d, ok := reg.Lookup(tt.name)
		if !ok {
			t.Fatalf("%s: not found", tt.name)
		}
		if d.RequiresBody != tt.requires || d.AllowsBody != tt.allows {
			t.Errorf("%s: got requires=%v allows=%v", tt.name, d.RequiresBody, d.AllowsBody)
		}
	}
	if _, ok := reg.Lookup("nosuchtag"); ok {
		t.Fatal("unexpected hit for unknown tag")
	}
}

func TestLoadTOMLAndYAML(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "tags.toml")
	yamlPath := filepath.Join(dir, "tags.yaml")
	if err := os.WriteFile(tomlPath, []byte("[[tag]]\nname = \"Widget\"\nrequires_body = true\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(yamlPath, []byte("tags:\n  - name: gadget\n    allows_body: true\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	reg := NewTable()
	for _, p := range []string{tomlPath, yamlPath} {
		if err := reg.LoadFile(p); err != nil {
			t.Fatalf("load %s: %v", p, err)
		}
	}
	if d, ok := reg.Lookup("widget"); !ok || !d.RequiresBody || !d.AllowsBody {
		t.Fatalf("widget = %+v, %v", d, ok)
	}
	if d, ok := reg.Lookup("GADGET"); !ok || d.RequiresBody || !d.AllowsBody {
		t.Fatalf("gadget = %+v, %v", d, ok)
	}
	if reg.Len() != 2 {
		t.Fatalf("len = %d", reg.Len())
	}
}

func TestLoadRejectsNamelessEntry(t *testing.T) {
	if err := NewTable().LoadTOML([]byte("[[tag]]\nrequires_body = true\n")); err == nil {
		t.Fatal("expected error")
	}
}

func TestChainOrder(t *testing.T) {
	override := NewTable(Descriptor{Name: "lock"})
	chain := Chain{override, Builtin()}
	d, ok := chain.Lookup("lock")
	if !ok || d.RequiresBody {
		t.Fatalf("override not applied: %+v", d)
	}
	if _, ok := chain.Lookup("savecontent"); !ok {
		t.Fatal("fallback registry not consulted")
	}
}
