package tags

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// fileFormat is the on-disk shape of a tag metadata file:
//
//	[[tag]]
//	name = "mytag"
//	requires_body = true
type fileFormat struct {
	Tags []Descriptor `toml:"tag" yaml:"tags"`
}

// LoadFile reads a TOML or YAML tag file (chosen by extension) into t.
func (t *Table) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read tag file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return t.LoadTOML(data)
	case ".yaml", ".yml":
		return t.LoadYAML(data)
	default:
		return fmt.Errorf("tag file %s: unsupported extension", path)
	}
}

func (t *Table) LoadTOML(data []byte) error {
	var f fileFormat
	if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&f); err != nil {
		return fmt.Errorf("decode tag toml: %w", err)
	}
	return t.addAll(f.Tags)
}

func (t *Table) LoadYAML(data []byte) error {
	var f fileFormat
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return fmt.Errorf("decode tag yaml: %w", err)
	}
	return t.addAll(f.Tags)
}

func (t *Table) addAll(ds []Descriptor) error {
	for i, d := range ds {
		if strings.TrimSpace(d.Name) == "" {
			return fmt.Errorf("tag entry %d: missing name", i)
		}
		t.Add(d)
	}
	return nil
}
