package driver_test

import (
	"path/filepath"
	"testing"

	"cfparse/internal/driver"
)

func TestDiskCache_RoundTrip(t *testing.T) {
	cache, err := driver.OpenDiskCache(filepath.Join(t.TempDir(), "cache"), "registry-v1")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "a.cfs")
	writeFile(t, path, "x = 1\ny = 2;")
	opts := driver.Options{Cache: cache}

	first, err := driver.ParseFile(path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Cached || first.Root == nil {
		t.Fatal("first parse came from the cache")
	}

	second, err := driver.ParseFile(path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.Cached || second.Root != nil {
		t.Fatalf("second parse: cached=%v", second.Cached)
	}
	if a, b := issuesSummary(first.Issues), issuesSummary(second.Issues); a != b {
		t.Fatalf("cached issues differ: %s vs %s", a, b)
	}
	if second.Issues[0].Primary.File != second.File.ID {
		t.Fatal("cached issue points to another file")
	}

	// другое содержимое - другой ключ
	writeFile(t, path, "x = 1;")
	third, err := driver.ParseFile(path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.Cached || len(third.Issues) != 0 {
		t.Fatalf("stale cache entry: cached=%v issues=%s", third.Cached, issuesSummary(third.Issues))
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	fourth, err := driver.ParseFile(path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if fourth.Cached {
		t.Fatal("cache survived DropAll")
	}
}

func TestDiskCache_SaltChangesKey(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	path := filepath.Join(t.TempDir(), "a.cfm")
	writeFile(t, path, "<cfset x = 1>")

	a, err := driver.OpenDiskCache(dir, "a")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := driver.ParseFile(path, driver.Options{Cache: a}); err != nil {
		t.Fatal(err)
	}
	b, err := driver.OpenDiskCache(dir, "b")
	if err != nil {
		t.Fatal(err)
	}
	res, err := driver.ParseFile(path, driver.Options{Cache: b})
	if err != nil {
		t.Fatal(err)
	}
	if res.Cached {
		t.Fatal("salted cache served another salt's entry")
	}
}

func TestDiskCache_Nil(t *testing.T) {
	var c *driver.DiskCache
	var p driver.DiskPayload
	if ok, err := c.Get([32]byte{}, &p); ok || err != nil {
		t.Fatalf("nil cache Get = %v, %v", ok, err)
	}
	if err := c.Put([32]byte{}, &p); err != nil {
		t.Fatal(err)
	}
}
