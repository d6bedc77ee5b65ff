package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"cfparse/internal/dialect"
)

// FileResult is the outcome of one file of a directory parse. Err holds a
// fatal condition for that file only; the other files are still parsed.
type FileResult struct {
	Path   string
	Result *Result
	Err    error
}

// DirOptions configures ParseDir.
type DirOptions struct {
	Options
	// Jobs bounds the number of files parsed at once; <= 0 means GOMAXPROCS.
	Jobs int
	// Progress, if set, is called after each file from the worker that
	// parsed it. done counts finished files.
	Progress func(done, total int, fr FileResult)
}

// ListFiles returns the sorted paths under dir whose extension det knows.
// Hidden directories are skipped.
func ListFiles(dir string, det dialect.Detector) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if det.Handles(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// ParseDir parses every known source file under dir in parallel. Each file
// gets its own FileSet and issue list. Results are ordered by path.
func ParseDir(ctx context.Context, dir string, opts DirOptions) ([]FileResult, error) {
	files, err := ListFiles(dir, opts.Detector)
	if err != nil {
		return nil, err
	}
	return ParseFiles(ctx, files, opts)
}

// ParseFiles parses the given paths in parallel; results keep the order of
// paths.
func ParseFiles(ctx context.Context, paths []string, opts DirOptions) ([]FileResult, error) {
	results := make([]FileResult, len(paths))
	if len(paths) == 0 {
		return results, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	var done atomic.Int64
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := ParseFile(path, opts.Options)
			results[i] = FileResult{Path: path, Result: res, Err: err}
			if opts.Progress != nil {
				opts.Progress(int(done.Add(1)), len(paths), results[i])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
