package registry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
)

// nameFormat is the accepted shape for entry names: a GitHub 'owner/repo'
// identifier with exactly one separating slash and non-empty segments.
var nameFormat = regexp.MustCompile(`^[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+$`)

// Validate checks a candidate repositories.json document against the full
// merge-gate rule set and returns the complete report of findings.
//
// A syntactically malformed document produces a single fatal
// MalformedDocument violation and short-circuits every other check. All
// remaining checks accumulate: a finding against one entry never suppresses
// other checks on the same entry, so a contributor sees every problem in one
// pass. Validation is a pure function of the input text; repeated calls on
// the same document return identical reports.
func Validate(data []byte) Report {
	var report Report

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		report.add(DocumentIndex, KindMalformedDocument, "%s", syntaxMessage(data, err))
		return report
	}

	report.Violations = append(report.Violations, structuralViolations(data)...)
	report.Violations = append(report.Violations, semanticViolations(doc)...)

	// Group findings by record, preserving per-record check order.
	sort.SliceStable(report.Violations, func(i, j int) bool {
		return report.Violations[i].Index < report.Violations[j].Index
	})

	return report
}

// semanticViolations enforces the rules the schema cannot express: name
// shape, URL well-formedness and consistency, and case-insensitive name
// uniqueness. Fields with the wrong type are skipped here since the schema
// already reported them.
func semanticViolations(doc any) []Violation {
	records, ok := doc.([]any)
	if !ok {
		return nil
	}

	var report Report
	firstSeen := make(map[string]int, len(records))

	for i, record := range records {
		fields, ok := record.(map[string]any)
		if !ok {
			continue
		}

		name, hasName := fields["name"].(string)
		if hasName {
			if !nameFormat.MatchString(name) {
				report.add(i, KindInvalidNameFormat, "name '%s' is not in 'owner/repo' format", name)
			}

			key := strings.ToLower(name)
			if first, dup := firstSeen[key]; dup {
				report.add(i, KindDuplicateEntry, "duplicate name '%s' (first seen at index %d)", name, first)
			} else {
				firstSeen[key] = i
			}
		}

		rawURL, hasURL := fields["url"].(string)
		if !hasURL {
			continue
		}

		if !isWellFormedURL(rawURL) {
			report.add(i, KindURLNameMismatch, "url '%s' is not a well-formed URL", rawURL)
			continue
		}
		if hasName && rawURL != GitHubURLPrefix+name {
			report.add(i, KindURLNameMismatch, "url '%s' does not match expected '%s%s'", rawURL, GitHubURLPrefix, name)
		}
	}

	return report.Violations
}

func isWellFormedURL(raw string) bool {
	parsed, err := url.Parse(raw)
	return err == nil && parsed.Scheme != "" && parsed.Host != ""
}

// syntaxMessage augments a JSON parse error with the line and column of the
// failure when the decoder reports a byte offset.
func syntaxMessage(data []byte, err error) string {
	var syntaxErr *json.SyntaxError
	if !errors.As(err, &syntaxErr) {
		return err.Error()
	}

	line, col := offsetToLineCol(data, syntaxErr.Offset)
	return fmt.Sprintf("%s at line %d, column %d", syntaxErr.Error(), line, col)
}

func offsetToLineCol(data []byte, offset int64) (line, col int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	prefix := data[:offset]
	line = bytes.Count(prefix, []byte("\n")) + 1
	col = int(offset) - (bytes.LastIndexByte(prefix, '\n') + 1)
	if col == 0 {
		col = 1
	}
	return line, col
}
