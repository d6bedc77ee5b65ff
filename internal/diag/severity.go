package diag

// Severity ranks an Issue. Every grammar and structure problem is an error;
// the lower levels exist for registry-driven checks and tooling.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityLabels = [...]string{
	SevInfo:    "INFO",
	SevWarning: "WARNING",
	SevError:   "ERROR",
}

func (s Severity) String() string {
	if int(s) < len(severityLabels) {
		return severityLabels[s]
	}
	return "UNKNOWN"
}
