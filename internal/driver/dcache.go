package driver

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"cfparse/internal/diag"
	"cfparse/internal/dialect"
	"cfparse/internal/project"
	"cfparse/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит результаты проверки файлов на диске, ключ - хеш содержимого.
// Only issues are stored: a hit lets `check` skip parsing an unchanged file.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu   sync.RWMutex
	dir  string
	salt string
}

// DiskPayload is the cached outcome of parsing one file.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Path        string
	Dialect     uint8
	ContentHash project.Digest
	HasRoot     bool
	Dropped     int
	Issues      []CachedIssue
}

// CachedIssue is a diag.Diagnostic with file-relative offsets.
type CachedIssue struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
	Notes    []CachedNote
}

type CachedNote struct {
	Start uint32
	End   uint32
	Msg   string
}

// OpenDiskCache opens the cache in dir, creating it if needed. An empty dir
// selects $XDG_CACHE_HOME/cfparse. salt is mixed into every key; callers pass
// whatever else changes the issues of unchanged bytes (the tag registry
// files, for instance).
func OpenDiskCache(dir, salt string) (*DiskCache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, "cfparse")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir, salt: salt}, nil
}

// Dir returns the cache directory.
func (c *DiskCache) Dir() string { return c.dir }

// Key derives the cache key of a file parsed as kind.
func (c *DiskCache) Key(file *source.File, kind dialect.Kind) project.Digest {
	return project.CacheKey(project.Digest(file.Hash), kind.String(), c.salt)
}

func (c *DiskCache) pathFor(key project.Digest) string {
	// Для удобства очистки - подкаталог "files".
	return filepath.Join(c.dir, "files", key.String()+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache. A payload of
// another schema version is a miss.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

func resultToPayload(r *Result) *DiskPayload {
	payload := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Path:        r.File.Path,
		Dialect:     uint8(r.Dialect),
		ContentHash: project.Digest(r.File.Hash),
		HasRoot:     r.Root != nil,
		Dropped:     r.Dropped,
		Issues:      make([]CachedIssue, len(r.Issues)),
	}
	for i, d := range r.Issues {
		ci := CachedIssue{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			ci.Notes = append(ci.Notes, CachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		payload.Issues[i] = ci
	}
	return payload
}

// payloadIssues rebuilds the issues of payload against file.
func payloadIssues(payload *DiskPayload, file *source.File) []*diag.Diagnostic {
	out := make([]*diag.Diagnostic, len(payload.Issues))
	for i, ci := range payload.Issues {
		d := &diag.Diagnostic{
			Severity: diag.Severity(ci.Severity),
			Code:     diag.Code(ci.Code),
			Message:  ci.Message,
			Primary:  source.Span{File: file.ID, Start: ci.Start, End: ci.End},
		}
		for _, n := range ci.Notes {
			d.Notes = append(d.Notes, diag.Note{
				Span: source.Span{File: file.ID, Start: n.Start, End: n.End},
				Msg:  n.Msg,
			})
		}
		out[i] = d
	}
	return out
}
