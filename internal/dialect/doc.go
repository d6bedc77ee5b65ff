// Package dialect decides which concrete syntax a source file uses.
//
// The choice is made from the file extension; class files (.cfc) are shared
// by both dialects and need a look at their content. Detection never reads
// past the first decisive line and never reports Issues: an unknown
// extension is a fatal error, anything else picks a dialect.
package dialect
