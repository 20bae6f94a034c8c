package registry

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(violations []Violation) []ErrorKind {
	out := make([]ErrorKind, 0, len(violations))
	for _, v := range violations {
		out = append(out, v.Kind)
	}
	return out
}

func TestValidate_AcceptableDocuments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "empty registry",
			doc:  `[]`,
		},
		{
			name: "single well-formed entry",
			doc:  `[{"name":"Acme/Mod","custom_name":"Acme Mod","url":"https://github.com/Acme/Mod"}]`,
		},
		{
			name: "entry with optional description",
			doc: `[{"name":"Acme/Mod","custom_name":"Acme Mod","description":"A mod.",` +
				`"url":"https://github.com/Acme/Mod"}]`,
		},
		{
			name: "multiple unique entries",
			doc: `[{"name":"Acme/Mod","custom_name":"A","url":"https://github.com/Acme/Mod"},` +
				`{"name":"Acme/Other","custom_name":"B","url":"https://github.com/Acme/Other"}]`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			report := Validate([]byte(tc.doc))

			assert.True(t, report.IsAcceptable())
			assert.Empty(t, report.Errors())
			assert.Empty(t, report.Violations)
		})
	}
}

func TestValidate_MalformedDocument(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "unterminated string",
			doc:  `[{"name":"Acme/Mod]`,
		},
		{
			name: "trailing comma",
			doc:  `[{"name":"Acme/Mod","custom_name":"A","url":"https://github.com/Acme/Mod"},]`,
		},
		{
			name: "empty input",
			doc:  ``,
		},
		{
			name: "unbalanced brackets",
			doc:  `[{"name":"Acme/Mod"`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			report := Validate([]byte(tc.doc))

			// The fatal parse failure is the only violation: everything else short-circuits.
			require.Len(t, report.Violations, 1)
			assert.Equal(t, KindMalformedDocument, report.Violations[0].Kind)
			assert.Equal(t, DocumentIndex, report.Violations[0].Index)
			assert.False(t, report.IsAcceptable())
		})
	}
}

func TestValidate_MalformedDocument_LineAndColumn(t *testing.T) {
	t.Parallel()

	doc := "[\n  {\"name\": }\n]"
	report := Validate([]byte(doc))

	require.Len(t, report.Violations, 1)
	assert.Equal(t, KindMalformedDocument, report.Violations[0].Kind)
	assert.Contains(t, report.Violations[0].Message, "line 2")
}

func TestValidate_MissingFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		doc      string
		index    int
		expected string
	}{
		{
			name:     "missing custom_name",
			doc:      `[{"name":"Acme/Mod","url":"https://github.com/Acme/Mod"}]`,
			index:    0,
			expected: "custom_name",
		},
		{
			name:     "missing url",
			doc:      `[{"name":"Acme/Mod","custom_name":"Acme Mod"}]`,
			index:    0,
			expected: "url",
		},
		{
			name: "missing name on second record",
			doc: `[{"name":"Acme/Mod","custom_name":"A","url":"https://github.com/Acme/Mod"},` +
				`{"custom_name":"B","url":"https://github.com/Acme/Other"}]`,
			index:    1,
			expected: "name",
		},
		{
			name:     "empty custom_name",
			doc:      `[{"name":"Acme/Mod","custom_name":"","url":"https://github.com/Acme/Mod"}]`,
			index:    0,
			expected: "custom_name",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			report := Validate([]byte(tc.doc))

			errors := report.Errors()
			require.Len(t, errors, 1)
			assert.Equal(t, KindMissingField, errors[0].Kind)
			assert.Equal(t, tc.index, errors[0].Index)
			assert.Contains(t, errors[0].Message, tc.expected)
			assert.False(t, report.IsAcceptable())
		})
	}
}

func TestValidate_WrongTypes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		doc   string
		index int
	}{
		{
			name:  "numeric custom_name",
			doc:   `[{"name":"Acme/Mod","custom_name":42,"url":"https://github.com/Acme/Mod"}]`,
			index: 0,
		},
		{
			name:  "record is not an object",
			doc:   `["Acme/Mod"]`,
			index: 0,
		},
		{
			name:  "document is not an array",
			doc:   `{"name":"Acme/Mod"}`,
			index: DocumentIndex,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			report := Validate([]byte(tc.doc))

			require.NotEmpty(t, report.Errors())
			assert.Contains(t, kinds(report.Errors()), KindWrongType)
			assert.Equal(t, tc.index, report.Errors()[0].Index)
			assert.False(t, report.IsAcceptable())
		})
	}
}

func TestValidate_InvalidNameFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		entryName string
	}{
		{name: "no slash", entryName: "AcmeMod"},
		{name: "two slashes", entryName: "Acme/Mod/Extra"},
		{name: "empty owner", entryName: "/Mod"},
		{name: "empty repo", entryName: "Acme/"},
		{name: "empty name", entryName: ""},
		{name: "whitespace in owner", entryName: "Acme Inc/Mod"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			doc := fmt.Sprintf(
				`[{"name":%q,"custom_name":"A","url":"https://github.com/%s"}]`,
				tc.entryName, tc.entryName,
			)
			report := Validate([]byte(doc))

			assert.Contains(t, kinds(report.Errors()), KindInvalidNameFormat)
			assert.False(t, report.IsAcceptable())
		})
	}
}

func TestValidate_URLNameMismatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
	}{
		{name: "different repository", url: "https://github.com/Acme/Other"},
		{name: "case mismatch", url: "https://github.com/acme/mod"},
		{name: "trailing slash", url: "https://github.com/Acme/Mod/"},
		{name: "not github", url: "https://gitlab.com/Acme/Mod"},
		{name: "malformed url", url: "://not-a-url"},
		{name: "missing host", url: "https:///Acme/Mod"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			doc := fmt.Sprintf(`[{"name":"Acme/Mod","custom_name":"A","url":%q}]`, tc.url)
			report := Validate([]byte(doc))

			errors := report.Errors()
			require.Len(t, errors, 1)
			assert.Equal(t, KindURLNameMismatch, errors[0].Kind)
			assert.Equal(t, 0, errors[0].Index)
			assert.False(t, report.IsAcceptable())
		})
	}
}

func TestValidate_URLMismatchDoesNotSuppressOtherChecks(t *testing.T) {
	t.Parallel()

	// Bad URL and bad name on the same entry: both must be reported.
	doc := `[{"name":"AcmeMod","custom_name":"A","url":"https://gitlab.com/AcmeMod"}]`
	report := Validate([]byte(doc))

	assert.Contains(t, kinds(report.Errors()), KindInvalidNameFormat)
	assert.Contains(t, kinds(report.Errors()), KindURLNameMismatch)
}

func TestValidate_DuplicateEntries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		doc             string
		expectedIndexes []int
	}{
		{
			name: "exact duplicate",
			doc: `[{"name":"Acme/Mod","custom_name":"A","url":"https://github.com/Acme/Mod"},` +
				`{"name":"Acme/Mod","custom_name":"B","url":"https://github.com/Acme/Mod"}]`,
			expectedIndexes: []int{1},
		},
		{
			name: "case-insensitive duplicate",
			doc: `[{"name":"Acme/Mod","custom_name":"A","url":"https://github.com/Acme/Mod"},` +
				`{"name":"acme/mod","custom_name":"B","url":"https://github.com/acme/mod"}]`,
			expectedIndexes: []int{1},
		},
		{
			name: "every occurrence after the first",
			doc: `[{"name":"Acme/Mod","custom_name":"A","url":"https://github.com/Acme/Mod"},` +
				`{"name":"acme/mod","custom_name":"B","url":"https://github.com/acme/mod"},` +
				`{"name":"ACME/MOD","custom_name":"C","url":"https://github.com/ACME/MOD"}]`,
			expectedIndexes: []int{1, 2},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			report := Validate([]byte(tc.doc))

			errors := report.Errors()
			require.Len(t, errors, len(tc.expectedIndexes))
			for i, v := range errors {
				assert.Equal(t, KindDuplicateEntry, v.Kind)
				assert.Equal(t, tc.expectedIndexes[i], v.Index)
			}
			assert.False(t, report.IsAcceptable())
		})
	}
}

func TestValidate_UnknownFieldIsWarningOnly(t *testing.T) {
	t.Parallel()

	doc := `[{"name":"Acme/Mod","custom_name":"A","url":"https://github.com/Acme/Mod","autor":"x"}]`
	report := Validate([]byte(doc))

	require.Len(t, report.Warnings(), 1)
	assert.Equal(t, KindUnknownField, report.Warnings()[0].Kind)
	assert.Contains(t, report.Warnings()[0].Message, "autor")

	// Warnings never flip acceptability.
	assert.Empty(t, report.Errors())
	assert.True(t, report.IsAcceptable())
}

func TestValidate_Idempotent(t *testing.T) {
	t.Parallel()

	doc := `[{"name":"Acme/Mod","custom_name":"","url":"https://gitlab.com/x","extra":1},` +
		`{"custom_name":"B","url":"https://github.com/Acme/Mod"},` +
		`{"name":"acme mod","custom_name":7,"url":"https://github.com/acme mod"}]`

	first := Validate([]byte(doc))
	second := Validate([]byte(doc))

	require.Equal(t, first, second)
}

func TestValidate_ViolationsGroupedByRecordIndex(t *testing.T) {
	t.Parallel()

	doc := `[{"name":"Acme/Mod","custom_name":"A","url":"https://gitlab.com/Acme/Mod"},` +
		`{"custom_name":"B","url":"https://github.com/Acme/Other"}]`
	report := Validate([]byte(doc))

	previous := DocumentIndex
	for _, v := range report.Violations {
		assert.GreaterOrEqual(t, v.Index, previous)
		previous = v.Index
	}
}

func TestViolation_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		violation Violation
		expected  string
	}{
		{
			name: "error with record index",
			violation: Violation{
				Index:    3,
				Kind:     KindDuplicateEntry,
				Severity: SeverityError,
				Message:  "duplicate name 'acme/mod' (first seen at index 0)",
			},
			expected: "[3] DuplicateEntry: duplicate name 'acme/mod' (first seen at index 0)",
		},
		{
			name: "warning with record index",
			violation: Violation{
				Index:    0,
				Kind:     KindUnknownField,
				Severity: SeverityWarning,
				Message:  "unknown field 'autor'",
			},
			expected: "[0] warning: UnknownField: unknown field 'autor'",
		},
		{
			name: "document-level error",
			violation: Violation{
				Index:    DocumentIndex,
				Kind:     KindMalformedDocument,
				Severity: SeverityError,
				Message:  "unexpected end of JSON input at line 1, column 1",
			},
			expected: "MalformedDocument: unexpected end of JSON input at line 1, column 1",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, tc.violation.String())
		})
	}
}
