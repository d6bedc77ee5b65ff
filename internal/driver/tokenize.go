package driver

import (
	"fmt"

	"cfparse/internal/diag"
	"cfparse/internal/dialect"
	"cfparse/internal/lexer"
	"cfparse/internal/source"
	"cfparse/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Dialect dialect.Kind
	Tokens  []token.Token
	Issues  []*diag.Diagnostic
}

// Tokenize runs only the lexer of the detected dialect over path. Script
// islands inside markup stay single tokens.
func Tokenize(path string, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	file := fs.Get(fileID)

	kind := opts.Dialect
	if kind == dialect.Unknown {
		kind, _, err = opts.Detector.Detect(file.Path, file.Content)
		if err != nil {
			return nil, err
		}
	}

	bag := diag.NewBag(opts.MaxIssues)
	lopts := lexer.Options{Reporter: diag.BagReporter{Bag: bag}}

	var tokens []token.Token
	switch kind {
	case dialect.Markup:
		tokens = lexer.NewMarkup(file, lopts).Tokenize()
	default:
		tokens = lexer.New(file, lopts).Tokenize()
	}

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Dialect: kind,
		Tokens:  tokens,
		Issues:  bag.Items(),
	}, nil
}
