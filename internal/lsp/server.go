// Package lsp is a language server that reports parse issues of open
// documents as LSP diagnostics.
package lsp

import (
	"sync"
	"time"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"cfparse/internal/driver"
	"cfparse/internal/project"
)

const lsName = "cfparse"

var log = commonlog.GetLogger("cfparse.lsp")

// ServerOptions configures LSP server behavior.
type ServerOptions struct {
	// Debounce delays analysis after an edit; 0 analyzes synchronously.
	Debounce time.Duration
	// Parse is used until initialize finds a cfparse.toml.
	Parse driver.Options
}

// Server handles stdio JSON-RPC for the cfparse language server.
type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string

	mu       sync.Mutex
	docs     map[protocol.DocumentUri]*document
	debounce time.Duration
	opts     driver.Options
}

type document struct {
	text    string
	version protocol.Integer
	timer   *time.Timer
	// last parse result; nil until the first analysis finishes
	result *driver.Result
}

// NewServer constructs a new LSP server.
func NewServer(version string, opts ServerOptions) *Server {
	s := &Server{
		version:  version,
		docs:     make(map[protocol.DocumentUri]*document),
		debounce: opts.Debounce,
		opts:     opts.Parse,
	}
	s.handler = protocol.Handler{
		Initialize:               s.initialize,
		Initialized:              s.initialized,
		Shutdown:                 s.shutdown,
		SetTrace:                 s.setTrace,
		TextDocumentDidOpen:      s.textDocumentDidOpen,
		TextDocumentDidChange:    s.textDocumentDidChange,
		TextDocumentDidClose:     s.textDocumentDidClose,
		TextDocumentDidSave:      s.textDocumentDidSave,
		TextDocumentFoldingRange: s.textDocumentFoldingRange,
	}
	s.server = server.NewServer(&s.handler, lsName, false)
	return s
}

// RunStdio serves until the client disconnects.
func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := ""
	if params.RootURI != nil && *params.RootURI != "" {
		rootDir = uriToPath(*params.RootURI)
	} else if params.RootPath != nil {
		rootDir = *params.RootPath
	}
	if rootDir != "" {
		s.applyConfig(rootDir)
	}

	capabilities := s.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &s.version,
		},
	}, nil
}

// applyConfig switches to the cfparse.toml governing rootDir, if any.
func (s *Server) applyConfig(rootDir string) {
	cfg, err := project.Discover(rootDir)
	if err != nil {
		log.Warningf("config: %s", err)
		return
	}
	det, err := cfg.Detector()
	if err != nil {
		log.Warningf("config: %s", err)
		return
	}
	reg, err := cfg.Registry()
	if err != nil {
		log.Warningf("config: %s", err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts.Detector = det
	s.opts.Registry = reg
	s.opts.MaxIssues = cfg.Parser.MaxIssues
	if cfg.Root != "" {
		log.Infof("using %s", cfg.Root)
	}
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doc := range s.docs {
		if doc.timer != nil {
			doc.timer.Stop()
		}
	}
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	doc := params.TextDocument
	s.update(ctx.Notify, doc.URI, doc.Version, doc.Text)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	// полная синхронизация: важен только последний снимок
	change := params.ContentChanges[len(params.ContentChanges)-1]
	whole, ok := change.(protocol.TextDocumentContentChangeEventWhole)
	if !ok {
		log.Warningf("%s: incremental change ignored", params.TextDocument.URI)
		return nil
	}
	s.update(ctx.Notify, params.TextDocument.URI, params.TextDocument.Version, whole.Text)
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	s.mu.Lock()
	if doc, ok := s.docs[uri]; ok && doc.timer != nil {
		doc.timer.Stop()
	}
	delete(s.docs, uri)
	s.mu.Unlock()

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	uri := params.TextDocument.URI
	s.mu.Lock()
	doc, ok := s.docs[uri]
	var version protocol.Integer
	text := ""
	if ok {
		version, text = doc.version, doc.text
	}
	s.mu.Unlock()
	if params.Text != nil {
		text = *params.Text
	} else if !ok {
		return nil
	}
	s.update(ctx.Notify, uri, version, text)
	return nil
}

func (s *Server) textDocumentFoldingRange(ctx *glsp.Context, params *protocol.FoldingRangeParams) ([]protocol.FoldingRange, error) {
	s.mu.Lock()
	doc, ok := s.docs[params.TextDocument.URI]
	var res *driver.Result
	if ok {
		res = doc.result
	}
	s.mu.Unlock()
	if res == nil {
		return []protocol.FoldingRange{}, nil
	}
	return buildFoldingRanges(res), nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
