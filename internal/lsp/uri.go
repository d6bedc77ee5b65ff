package lsp

import (
	"net/url"
	"path/filepath"
)

// uriToPath maps a document URI to the name the dialect detector sees.
// Non-file schemes (untitled:, notebook cells) keep their opaque part,
// which still ends with the extension the editor assigned.
func uriToPath(uri string) string {
	u, err := url.Parse(uri)
	switch {
	case uri == "" || err != nil:
		return ""
	case u.Scheme == "":
		return absPath(uri)
	case u.Scheme == "file":
		return absPath(u.Path)
	case u.Opaque != "":
		return u.Opaque
	}
	return u.Path
}

func absPath(p string) string {
	p = filepath.FromSlash(p)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
