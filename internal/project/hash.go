package project

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// Digest is a SHA-256 sum; source.File.Hash converts to it directly.
type Digest [32]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// CacheKey mixes a content digest with the inputs that change the parse of
// identical bytes, such as the dialect and the tag registry. Parts are
// length-prefixed, so ("ab", "c") and ("a", "bc") give different keys.
func CacheKey(content Digest, parts ...string) Digest {
	buf := append(make([]byte, 0, 64), content[:]...)
	for _, p := range parts {
		buf = binary.AppendUvarint(buf, uint64(len(p)))
		buf = append(buf, p...)
	}
	return sha256.Sum256(buf)
}
