// Package tags provides tag metadata for markup lowering: whether a generic
// tag must, may or must not have a body.
package tags

import (
	"sort"
	"sync"

	"golang.org/x/text/cases"
)

// Descriptor describes one tag.
type Descriptor struct {
	Name         string `toml:"name" yaml:"name"`
	RequiresBody bool   `toml:"requires_body" yaml:"requires_body"`
	AllowsBody   bool   `toml:"allows_body" yaml:"allows_body"`
}

// Registry looks up tag metadata by name, case-insensitively.
type Registry interface {
	Lookup(name string) (Descriptor, bool)
}

// Table is a Registry backed by a map. The zero value is empty and usable.
type Table struct {
	mu      sync.RWMutex
	entries map[string]Descriptor
}

var folder = sync.Pool{New: func() any { c := cases.Fold(); return &c }}

// Fold case-folds a tag name for comparison.
func Fold(name string) string {
	c := folder.Get().(*cases.Caser)
	defer folder.Put(c)
	return c.String(name)
}

// NewTable builds a table from descriptors; later entries win.
func NewTable(ds ...Descriptor) *Table {
	t := &Table{}
	for _, d := range ds {
		t.Add(d)
	}
	return t
}

// Add registers or replaces a descriptor. A tag that requires a body also
// allows one.
func (t *Table) Add(d Descriptor) {
	if d.RequiresBody {
		d.AllowsBody = true
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.entries == nil {
		t.entries = make(map[string]Descriptor)
	}
	t.entries[Fold(d.Name)] = d
}

func (t *Table) Lookup(name string) (Descriptor, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	d, ok := t.entries[Fold(name)]
	return d, ok
}

// Len returns the number of registered tags.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Names returns the registered names in sorted order.
func (t *Table) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]string, 0, len(t.entries))
	for _, d := range t.entries {
		out = append(out, d.Name)
	}
	sort.Strings(out)
	return out
}

// Chain consults registries in order; the first hit wins.
type Chain []Registry

func (c Chain) Lookup(name string) (Descriptor, bool) {
	for _, r := range c {
		if r == nil {
			continue
		}
		if d, ok := r.Lookup(name); ok {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Empty knows no tags.
type Empty struct{}

func (Empty) Lookup(string) (Descriptor, bool) { return Descriptor{}, false }
