package diagfmt

import (
	"encoding/json"
	"io"

	"github.com/google/uuid"

	"cfparse/internal/diag"
	"cfparse/internal/source"
)

// Unit is the issue list of one parse call with the files its spans point to.
type Unit struct {
	FileSet *source.FileSet
	Issues  []*diag.Diagnostic
}

// Location is a span in JSON form. Line and column fields are 1-based and
// stay zero unless JSONOpts.IncludePositions is set.
type Location struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

type NoteJSON struct {
	Message  string   `json:"message"`
	Location Location `json:"location"`
}

type IssueJSON struct {
	Severity string     `json:"severity"`
	Code     string     `json:"code"`
	Message  string     `json:"message"`
	Location Location   `json:"location"`
	Notes    []NoteJSON `json:"notes,omitempty"`
}

// Report is the document written by `check --format json`.
type Report struct {
	RunID       string      `json:"run_id"`
	Diagnostics []IssueJSON `json:"diagnostics"`
	Count       int         `json:"count"`
	Files       int         `json:"files"`
}

type locator struct {
	fs   *source.FileSet
	opts JSONOpts
}

func (l locator) at(sp source.Span) Location {
	loc := Location{
		File:      formatPath(l.fs.Get(sp.File).Path, l.opts.PathMode, l.opts.BaseDir),
		StartByte: sp.Start,
		EndByte:   sp.End,
	}
	if l.opts.IncludePositions {
		from, to := l.fs.Resolve(sp)
		loc.StartLine, loc.StartCol = from.Line, from.Col
		loc.EndLine, loc.EndCol = to.Line, to.Col
	}
	return loc
}

func (l locator) issue(d *diag.Diagnostic) IssueJSON {
	out := IssueJSON{
		Severity: d.Severity.String(),
		Code:     d.Code.ID(),
		Message:  d.Message,
		Location: l.at(d.Primary),
	}
	if l.opts.IncludeNotes {
		for _, n := range d.Notes {
			out.Notes = append(out.Notes, NoteJSON{Message: n.Msg, Location: l.at(n.Span)})
		}
	}
	return out
}

// BuildReport flattens units in order. Opts.Max caps the whole report, not
// each unit; Diagnostics is never nil so it encodes as [].
func BuildReport(units []Unit, opts JSONOpts) Report {
	r := Report{RunID: opts.RunID, Diagnostics: []IssueJSON{}, Files: len(units)}
	if r.RunID == "" {
		r.RunID = uuid.NewString()
	}
	for _, u := range units {
		l := locator{fs: u.FileSet, opts: opts}
		for _, d := range u.Issues {
			if opts.Max > 0 && len(r.Diagnostics) == opts.Max {
				r.Count = len(r.Diagnostics)
				return r
			}
			r.Diagnostics = append(r.Diagnostics, l.issue(d))
		}
	}
	r.Count = len(r.Diagnostics)
	return r
}

func JSON(w io.Writer, units []Unit, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildReport(units, opts))
}
