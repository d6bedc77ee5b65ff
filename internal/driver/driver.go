// Package driver is the entry point of the front end: it detects the dialect
// of a source, runs the grammar pass and lowering, and hands back the AST
// together with every issue reported on the way.
package driver

import (
	"fmt"

	"github.com/tliron/commonlog"

	"cfparse/internal/ast"
	"cfparse/internal/diag"
	"cfparse/internal/dialect"
	"cfparse/internal/lower"
	"cfparse/internal/observ"
	"cfparse/internal/parser"
	"cfparse/internal/source"
	"cfparse/internal/tags"
)

var log = commonlog.GetLogger("cfparse.driver")

// Options configures a parse call.
type Options struct {
	// MaxIssues caps the issue list; 0 keeps everything.
	MaxIssues int
	// Registry supplies tag metadata; nil means the built-in table.
	Registry tags.Registry
	// Detector maps file names to dialects.
	Detector dialect.Detector
	// Dialect forces a dialect. Unknown means detect it from the name.
	Dialect dialect.Kind
	// Cache, when set, serves the issues of unchanged files without
	// parsing them. Cached results carry no Root.
	Cache *DiskCache
}

// Result is the outcome of one parse call. Root is nil when the markup
// grammar pass failed to balance its modes; Issues then explains why.
type Result struct {
	Root     ast.Node
	Issues   []*diag.Diagnostic
	Dropped  int
	Dialect  dialect.Kind
	Evidence *dialect.Evidence
	FileSet  *source.FileSet
	File     *source.File
	Timings  observ.Report
	Cached   bool
}

// HasErrors reports whether any issue has error severity.
func (r *Result) HasErrors() bool {
	for _, d := range r.Issues {
		if d.Severity >= diag.SevError {
			return true
		}
	}
	return false
}

// ParseFile reads path from disk and parses it in the dialect its name
// selects.
func ParseFile(path string, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return parseFile(fs, fs.Get(id), opts)
}

// ParseSource parses an in-memory source. name is the source identity used
// in positions and, unless kind is set, for dialect detection.
func ParseSource(name string, src []byte, kind dialect.Kind, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(name, src))
	if kind != dialect.Unknown {
		opts.Dialect = kind
	}
	return parseFile(fs, file, opts)
}

// ParseExpression parses src as one script expression.
func ParseExpression(src string, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(source.InlineName, []byte(src)))
	timer := observ.NewTimer()
	bag := diag.NewBag(opts.MaxIssues)
	rep := diag.BagReporter{Bag: bag}

	end := timer.Track("parse")
	res := parser.ParseScriptExpression(file, 0, file.Len(), parser.Options{Reporter: rep})
	end("")

	end = timer.Track("lower")
	root, err := lower.Expression(file, res.Root, lower.Options{Registry: opts.Registry, Reporter: rep})
	end("")
	if err != nil {
		return nil, fmt.Errorf("expression: %w", err)
	}
	return newResult(fs, file, dialect.Script, nil, root, bag, timer), nil
}

// ParseStatement parses src as one script statement. A block yields a
// Script root holding its statements.
func ParseStatement(src string, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(source.InlineName, []byte(src)))
	timer := observ.NewTimer()
	bag := diag.NewBag(opts.MaxIssues)
	rep := diag.BagReporter{Bag: bag}

	end := timer.Track("parse")
	res := parser.ParseScriptStatement(file, 0, file.Len(), parser.Options{Reporter: rep})
	end("")

	end = timer.Track("lower")
	root, err := lower.Statement(file, res.Root, lower.Options{Registry: opts.Registry, Reporter: rep})
	end("")
	if err != nil {
		return nil, fmt.Errorf("statement: %w", err)
	}
	return newResult(fs, file, dialect.Script, nil, root, bag, timer), nil
}

func parseFile(fs *source.FileSet, file *source.File, opts Options) (*Result, error) {
	timer := observ.NewTimer()

	kind := opts.Dialect
	var evidence *dialect.Evidence
	if kind == dialect.Unknown {
		end := timer.Track("detect")
		k, ev, err := opts.Detector.Detect(file.Path, file.Content)
		if err != nil {
			return nil, err
		}
		kind, evidence = k, ev
		end(ev.String())
	}

	if opts.Cache != nil {
		if res, ok := cachedResult(fs, file, kind, evidence, opts.Cache); ok {
			return res, nil
		}
	}

	bag := diag.NewBag(opts.MaxIssues)
	rep := diag.BagReporter{Bag: bag}
	lopts := lower.Options{Registry: opts.Registry, Reporter: rep}

	var root ast.Node
	switch kind {
	case dialect.Script:
		end := timer.Track("parse")
		res := parser.ParseScript(file, 0, file.Len(), parser.Options{Reporter: rep})
		end("")
		end = timer.Track("lower")
		r, err := lower.Script(file, res.Root, lopts)
		end("")
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file.Path, err)
		}
		root = r
	case dialect.Markup:
		end := timer.Track("parse")
		res := parser.ParseTemplate(file, parser.Options{Reporter: rep})
		end("")
		if res.ModeFailure {
			log.Debugf("%s: markup modes left open, lowering skipped", file.Path)
			break
		}
		end = timer.Track("lower")
		r, err := lower.Template(file, res.Root, lopts)
		end("")
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file.Path, err)
		}
		root = r
	default:
		return nil, fmt.Errorf("%s: no parser for dialect %s", file.Path, kind)
	}

	result := newResult(fs, file, kind, evidence, root, bag, timer)
	if opts.Cache != nil {
		if err := opts.Cache.Put(opts.Cache.Key(file, kind), resultToPayload(result)); err != nil {
			log.Warningf("%s: cache write: %s", file.Path, err)
		}
	}
	log.Debugf("%s: %s, %d issue(s) in %.2f ms", file.Path, kind, len(result.Issues), result.Timings.TotalMS)
	return result, nil
}

func newResult(fs *source.FileSet, file *source.File, kind dialect.Kind, ev *dialect.Evidence, root ast.Node, bag *diag.Bag, timer *observ.Timer) *Result {
	return &Result{
		Root:     root,
		Issues:   bag.Items(),
		Dropped:  bag.Dropped(),
		Dialect:  kind,
		Evidence: ev,
		FileSet:  fs,
		File:     file,
		Timings:  timer.Report(),
	}
}

func cachedResult(fs *source.FileSet, file *source.File, kind dialect.Kind, ev *dialect.Evidence, cache *DiskCache) (*Result, bool) {
	var payload DiskPayload
	ok, err := cache.Get(cache.Key(file, kind), &payload)
	if err != nil {
		log.Warningf("%s: cache read: %s", file.Path, err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	log.Debugf("%s: cache hit", file.Path)
	return &Result{
		Issues:   payloadIssues(&payload, file),
		Dropped:  payload.Dropped,
		Dialect:  kind,
		Evidence: ev,
		FileSet:  fs,
		File:     file,
		Cached:   true,
	}, true
}
