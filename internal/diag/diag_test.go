package diag

import (
	"strings"
	"testing"

	"cfparse/internal/source"
)

func TestWriteShort_KeepsEmissionOrder(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.AddVirtual("sample.cfm", []byte("a\nb\n"))

	bag := NewBag(0)
	r := BagReporter{Bag: bag}
	ReportError(r, TagRequiresBody, source.Span{File: file, Start: 2, End: 3}, "second line\nfirst").
		WithNote(source.Span{File: file, Start: 0, End: 1}, "opened here").
		Emit()
	r.Report(SynExtraChars, SevWarning, source.Span{File: file, Start: 0, End: 1}, "first line", nil)

	expected := "error TAG3002 sample.cfm:2:1 second line first\n" +
		"note TAG3002 sample.cfm:1:1 opened here\n" +
		"warning SYN2008 sample.cfm:1:1 first line\n"

	var b strings.Builder
	if err := WriteShort(&b, bag.Items(), fs, true); err != nil {
		t.Fatal(err)
	}
	if got := b.String(); got != expected {
		t.Fatalf("unexpected diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestBag_LimitCountsDropped(t *testing.T) {
	bag := NewBag(1)
	bag.Add(NewError(SynUnexpectedToken, source.Span{}, "one"))
	if bag.Add(NewError(SynUnexpectedToken, source.Span{}, "two")) {
		t.Fatalf("expected second add to be refused")
	}
	if bag.Len() != 1 || bag.Dropped() != 1 {
		t.Fatalf("len=%d dropped=%d", bag.Len(), bag.Dropped())
	}

	other := NewBag(0)
	other.Add(NewError(LowMixedArguments, source.Span{}, "x"))
	merged := NewBag(0)
	merged.Merge(bag)
	merged.Merge(other)
	if merged.Len() != 2 || merged.Items()[1].Code != LowMixedArguments {
		t.Fatalf("merge must keep order, got %d items", merged.Len())
	}
}

func TestReportBuilder_EmitsOnce(t *testing.T) {
	bag := NewBag(0)
	b := ReportError(BagReporter{Bag: bag}, SynUnclosedBrace, source.Span{}, "x").
		WithNote(source.Span{Start: 1, End: 2}, "[{] opened here")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 || len(bag.Items()[0].Notes) != 1 {
		t.Fatalf("bag = %+v", bag.Items())
	}
	// nil reporter: no panic
	ReportError(nil, SynUnclosedBrace, source.Span{}, "x").Emit()
}
