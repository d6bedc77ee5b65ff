// Package observ measures the phases of one parse call.
package observ

import (
	"fmt"
	"io"
	"time"
)

type phase struct {
	name string
	took time.Duration
	note string
}

// Timer collects phase durations (detect, parse, lower) for a single file.
// Parallel drivers keep one Timer per file; a nil Timer records nothing.
type Timer struct {
	phases []phase
	now    func() time.Time
}

func NewTimer() *Timer { return &Timer{now: time.Now} }

// Track opens a phase and returns the func that closes it with a note.
//
//	end := timer.Track("lower")
//	defer end("")
func (t *Timer) Track(name string) func(note string) {
	if t == nil {
		return func(string) {}
	}
	started := t.now()
	return func(note string) {
		t.phases = append(t.phases, phase{name: name, took: t.now().Sub(started), note: note})
	}
}

// PhaseReport is one closed phase in milliseconds.
type PhaseReport struct {
	Name       string  `json:"name" msgpack:"name"`
	DurationMS float64 `json:"duration_ms" msgpack:"duration_ms"`
	Note       string  `json:"note,omitempty" msgpack:"note,omitempty"`
}

// Report - снимок таймера, который уходит в Result и JSON-вывод.
type Report struct {
	TotalMS float64       `json:"total_ms" msgpack:"total_ms"`
	Phases  []PhaseReport `json:"phases" msgpack:"phases"`
}

func (t *Timer) Report() Report {
	var r Report
	if t == nil {
		return r
	}
	var total time.Duration
	for _, p := range t.phases {
		total += p.took
		r.Phases = append(r.Phases, PhaseReport{Name: p.name, DurationMS: millis(p.took), Note: p.note})
	}
	r.TotalMS = millis(total)
	return r
}

// Format writes the phases as an aligned table under label.
// An empty report writes nothing.
func (r Report) Format(w io.Writer, label string) {
	if len(r.Phases) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:\n", label)
	for _, p := range r.Phases {
		fmt.Fprintf(w, "  %-8s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			fmt.Fprintf(w, "  (%s)", p.Note)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "  %-8s %7.2f ms\n", "total", r.TotalMS)
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
