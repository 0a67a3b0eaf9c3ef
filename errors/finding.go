package errors

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Finding describes one keyword mismatch: the keyword that failed, a
// human-readable message, the instance location and the schema evaluation path.
// Findings are normal validation output, not errors.
type Finding struct {
	Keyword         string
	Message         string
	InstancePointer string
	SchemaPointer   string
}

// NewFinding builds a Finding.
func NewFinding(keyword, message, instancePointer, schemaPointer string) Finding {
	return Finding{
		Keyword:         keyword,
		Message:         message,
		InstancePointer: instancePointer,
		SchemaPointer:   schemaPointer,
	}
}

// String formats the finding for display, including keyword, message and locations.
func (f Finding) String() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s] %s", f.Keyword, f.Message))
	if f.InstancePointer != "" {
		b.WriteString(fmt.Sprintf(" at %s", f.InstancePointer))
	} else {
		b.WriteString(" at (root)")
	}
	if f.SchemaPointer != "" {
		b.WriteString(fmt.Sprintf(" (schema: %s)", f.SchemaPointer))
	}
	return b.String()
}

// Record is the external form of a finding.
type Record struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Record renders the finding: double quotes are stripped from the message and
// the leading separator from the instance pointer. Field stays empty for the
// document root.
func (f Finding) Record() Record {
	return Record{
		Message: strings.ReplaceAll(f.Message, `"`, ""),
		Field:   strings.TrimPrefix(f.InstancePointer, "/"),
	}
}

// Report is the ordered result of one validation call. Findings appear in
// evaluation order. A Report is never an error: an empty Report means valid.
type Report struct {
	findings []Finding
}

// NewReport takes ownership of findings.
func NewReport(findings []Finding) Report {
	return Report{findings: findings}
}

// Valid reports whether the report has no findings.
func (r Report) Valid() bool {
	return len(r.findings) == 0
}

// Len returns the number of findings.
func (r Report) Len() int {
	return len(r.findings)
}

// Findings returns a copy of the findings in evaluation order.
func (r Report) Findings() []Finding {
	if len(r.findings) == 0 {
		return nil
	}
	out := make([]Finding, len(r.findings))
	copy(out, r.findings)
	return out
}

// At returns the i-th finding.
func (r Report) At(i int) Finding {
	return r.findings[i]
}

// Keywords returns the keyword of each finding in order.
func (r Report) Keywords() []string {
	out := make([]string, len(r.findings))
	for i, f := range r.findings {
		out[i] = f.Keyword
	}
	return out
}

// Records renders every finding to its external form.
func (r Report) Records() []Record {
	out := make([]Record, len(r.findings))
	for i, f := range r.findings {
		out[i] = f.Record()
	}
	return out
}

// MarshalJSON encodes the report as an array of records.
func (r Report) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Records())
}

// String returns one finding per line.
func (r Report) String() string {
	if len(r.findings) == 0 {
		return "valid"
	}
	lines := make([]string, len(r.findings))
	for i, f := range r.findings {
		lines[i] = f.String()
	}
	return strings.Join(lines, "\n")
}
