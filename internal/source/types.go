package source

// FileID indexes a File inside its FileSet, starting at zero.
type FileID uint32

// FileFlags records how a File entered the set.
type FileFlags uint8

const (
	FileVirtual FileFlags = 1 << iota // added from memory: stdin, inline snippets, tests
	FileHadBOM                        // a UTF-8 BOM was dropped from Content
)

// InlineName is the path given to sources parsed from a string.
const InlineName = "<inline>"

// File is one source text. Spans index Content, which never starts with a
// BOM; LineIdx holds the offset of every '\n' and drives line/column lookup.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a 1-based position. Col counts bytes, not characters.
type LineCol struct {
	Line uint32
	Col  uint32
}
