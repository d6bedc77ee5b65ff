package fuzztests

import (
	"testing"

	"cfparse/internal/diag"
	"cfparse/internal/lexer"
	"cfparse/internal/source"
	"cfparse/internal/token"
)

func checkTokens(t *testing.T, toks []token.Token, size uint32) {
	t.Helper()
	for i, tok := range toks {
		if tok.Span.Start > tok.Span.End || tok.Span.End > size {
			t.Fatalf("token %d (%s) has span %d-%d in %d bytes", i, tok.Kind, tok.Span.Start, tok.Span.End, size)
		}
	}
}

func FuzzScriptLexer(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.cfs", clampInput(input)))

		bag := diag.NewBag(64)
		toks := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}}).Tokenize()
		checkTokens(t, toks, file.Len())
	})
}

func FuzzMarkupLexer(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.cfm", clampInput(input)))

		bag := diag.NewBag(64)
		toks := lexer.NewMarkup(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}}).Tokenize()
		checkTokens(t, toks, file.Len())
	})
}
