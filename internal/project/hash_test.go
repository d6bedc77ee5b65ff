package project

import (
	"crypto/sha256"
	"testing"
)

func TestCacheKey(t *testing.T) {
	content := Digest(sha256.Sum256([]byte("<cfset x = 1>")))

	if CacheKey(content, "markup", "r1") != CacheKey(content, "markup", "r1") {
		t.Fatal("key is not stable")
	}
	distinct := []Digest{
		CacheKey(content, "markup", "r1"),
		CacheKey(content, "script", "r1"),
		CacheKey(content, "ab", "c"),
		CacheKey(content, "a", "bc"),
		CacheKey(Digest{}, "markup", "r1"),
	}
	seen := make(map[Digest]int)
	for i, d := range distinct {
		if j, dup := seen[d]; dup {
			t.Fatalf("keys %d and %d collide: %s", j, i, d)
		}
		seen[d] = i
	}
	if s := content.String(); len(s) != 64 {
		t.Fatalf("String() = %q", s)
	}
}
