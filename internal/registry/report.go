package registry

import (
	"fmt"
	"io"
)

// ErrorKind identifies the category of a single validation finding.
type ErrorKind string

const (
	// KindMalformedDocument indicates the document is not syntactically valid JSON.
	// This is the only fatal kind: no other checks run after it.
	KindMalformedDocument ErrorKind = "MalformedDocument"

	// KindMissingField indicates a required field is absent or empty.
	KindMissingField ErrorKind = "MissingField"

	// KindWrongType indicates a field (or the document/record itself) has the wrong type.
	KindWrongType ErrorKind = "WrongType"

	// KindInvalidNameFormat indicates a name that is not in 'owner/repo' form.
	KindInvalidNameFormat ErrorKind = "InvalidNameFormat"

	// KindURLNameMismatch indicates a URL that is malformed or inconsistent with the entry name.
	KindURLNameMismatch ErrorKind = "UrlNameMismatch"

	// KindDuplicateEntry indicates a name already used by an earlier entry (case-insensitive).
	KindDuplicateEntry ErrorKind = "DuplicateEntry"

	// KindUnknownField indicates an unrecognized field, most likely a typo. Warning only.
	KindUnknownField ErrorKind = "UnknownField"

	// KindExistingEntryModified indicates a change touched an entry that already
	// existed in the accepted registry. Warning only: legitimate corrections happen.
	KindExistingEntryModified ErrorKind = "ExistingEntryModified"
)

// Severity classifies whether a finding blocks acceptance.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// SeverityOf returns the severity associated with an ErrorKind.
func SeverityOf(kind ErrorKind) Severity {
	switch kind {
	case KindUnknownField, KindExistingEntryModified:
		return SeverityWarning
	default:
		return SeverityError
	}
}

// DocumentIndex is the record index used for findings that concern the whole
// document rather than one record.
const DocumentIndex = -1

// Violation is a single validation finding against one record (or the whole
// document when Index is DocumentIndex).
type Violation struct {
	Index    int       `json:"index" yaml:"index"`
	Kind     ErrorKind `json:"kind" yaml:"kind"`
	Severity Severity  `json:"severity" yaml:"severity"`
	Message  string    `json:"message" yaml:"message"`
}

func (v Violation) String() string {
	prefix := ""
	if v.Index != DocumentIndex {
		prefix = fmt.Sprintf("[%d] ", v.Index)
	}
	if v.Severity == SeverityWarning {
		return fmt.Sprintf("%swarning: %s: %s", prefix, v.Kind, v.Message)
	}
	return fmt.Sprintf("%s%s: %s", prefix, v.Kind, v.Message)
}

// Report is the complete, ordered set of findings for one candidate document.
type Report struct {
	Violations []Violation `json:"violations" yaml:"violations"`
}

// IsAcceptable reports whether the candidate can be merged: true iff the
// report contains no error-level violations. Warnings never block acceptance.
func (r Report) IsAcceptable() bool {
	for _, v := range r.Violations {
		if v.Severity == SeverityError {
			return false
		}
	}
	return true
}

// Errors returns only the error-level violations.
func (r Report) Errors() []Violation {
	return r.filter(SeverityError)
}

// Warnings returns only the warning-level violations.
func (r Report) Warnings() []Violation {
	return r.filter(SeverityWarning)
}

func (r Report) filter(severity Severity) []Violation {
	var out []Violation
	for _, v := range r.Violations {
		if v.Severity == severity {
			out = append(out, v)
		}
	}
	return out
}

// Write renders the report as human-readable text, one violation per line.
func (r Report) Write(w io.Writer) {
	for _, v := range r.Violations {
		_, _ = fmt.Fprintln(w, v.String())
	}
}

func (r *Report) add(index int, kind ErrorKind, format string, args ...any) {
	r.Violations = append(r.Violations, Violation{
		Index:    index,
		Kind:     kind,
		Severity: SeverityOf(kind),
		Message:  fmt.Sprintf(format, args...),
	})
}
