package lsp

import (
	"errors"
	"time"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"cfparse/internal/diag"
	"cfparse/internal/dialect"
	"cfparse/internal/driver"
)

// update stores the new text of uri and schedules its analysis.
func (s *Server) update(notify glsp.NotifyFunc, uri protocol.DocumentUri, version protocol.Integer, text string) {
	s.mu.Lock()
	doc, ok := s.docs[uri]
	if !ok {
		doc = &document{}
		s.docs[uri] = doc
	}
	doc.text, doc.version = text, version
	if doc.timer != nil {
		doc.timer.Stop()
		doc.timer = nil
	}
	delay := s.debounce
	if delay > 0 {
		doc.timer = time.AfterFunc(delay, func() { s.analyzeAndPublish(notify, uri) })
	}
	s.mu.Unlock()

	if delay <= 0 {
		s.analyzeAndPublish(notify, uri)
	}
}

func (s *Server) analyzeAndPublish(notify glsp.NotifyFunc, uri protocol.DocumentUri) {
	s.mu.Lock()
	doc, ok := s.docs[uri]
	if !ok {
		s.mu.Unlock()
		return
	}
	text, version, opts := doc.text, doc.version, s.opts
	s.mu.Unlock()

	res, diags := analyze(uri, text, opts)

	s.mu.Lock()
	// документ мог измениться или закрыться, пока шёл разбор
	if cur, ok := s.docs[uri]; !ok || cur.version != version || cur.text != text {
		s.mu.Unlock()
		return
	}
	doc.result = res
	s.mu.Unlock()

	params := protocol.PublishDiagnosticsParams{URI: uri, Diagnostics: diags}
	if version > 0 {
		v := protocol.UInteger(version)
		params.Version = &v
	}
	notify(protocol.ServerTextDocumentPublishDiagnostics, params)
}

// analyze parses text as the document at uri. Files with an extension the
// detector does not know get no diagnostics; a fatal lowering error becomes
// one diagnostic at the start of the document.
func analyze(uri protocol.DocumentUri, text string, opts driver.Options) (*driver.Result, []protocol.Diagnostic) {
	path := uriToPath(uri)
	res, err := driver.ParseSource(path, []byte(text), dialect.Unknown, opts)
	switch {
	case errors.Is(err, dialect.ErrUnknownExtension):
		log.Debugf("%s: not a source file", path)
		return nil, []protocol.Diagnostic{}
	case err != nil:
		log.Infof("%s: %s", path, err)
		return nil, []protocol.Diagnostic{{
			Severity: severityPtr(protocol.DiagnosticSeverityError),
			Source:   strPtr(lsName),
			Message:  err.Error(),
		}}
	}

	out := make([]protocol.Diagnostic, 0, len(res.Issues))
	for _, d := range res.Issues {
		out = append(out, toProtocol(uri, res, d))
	}
	return res, out
}

func toProtocol(uri protocol.DocumentUri, res *driver.Result, d *diag.Diagnostic) protocol.Diagnostic {
	pd := protocol.Diagnostic{
		Range:    rangeForSpan(res.File, d.Primary),
		Severity: severityPtr(severityFor(d.Severity)),
		Code:     &protocol.IntegerOrString{Value: d.Code.ID()},
		Source:   strPtr(lsName),
		Message:  d.Message,
	}
	for _, n := range d.Notes {
		pd.RelatedInformation = append(pd.RelatedInformation, protocol.DiagnosticRelatedInformation{
			Location: protocol.Location{URI: uri, Range: rangeForSpan(res.FileSet.Get(n.Span.File), n.Span)},
			Message:  n.Msg,
		})
	}
	return pd
}

func severityFor(s diag.Severity) protocol.DiagnosticSeverity {
	switch s {
	case diag.SevWarning:
		return protocol.DiagnosticSeverityWarning
	case diag.SevInfo:
		return protocol.DiagnosticSeverityInformation
	default:
		return protocol.DiagnosticSeverityError
	}
}

func severityPtr(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func strPtr(s string) *string {
	return &s
}
