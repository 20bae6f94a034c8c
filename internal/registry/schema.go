package registry

import (
	"sort"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// registrySchema is the structural contract for repositories.json: an array of
// records carrying the four recognized string fields. Semantic rules (name
// shape, URL consistency, uniqueness) are enforced separately in validate.go.
const registrySchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "array",
	"items": {
		"type": "object",
		"required": ["name", "custom_name", "url"],
		"properties": {
			"name": {"type": "string"},
			"custom_name": {"type": "string", "minLength": 1},
			"description": {"type": "string"},
			"url": {"type": "string"}
		},
		"additionalProperties": false
	}
}`

var schemaLoader = gojsonschema.NewStringLoader(registrySchema)

// structuralViolations runs the JSON Schema over the candidate document and
// maps each schema finding onto the registry error taxonomy, keyed by record
// index. Results are sorted so repeated validation of the same document always
// yields an identical report.
func structuralViolations(data []byte) []Violation {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		// Syntax errors are caught before this point, so this is unexpected.
		return []Violation{{
			Index:    DocumentIndex,
			Kind:     KindMalformedDocument,
			Severity: SeverityError,
			Message:  err.Error(),
		}}
	}

	var violations []Violation
	for _, resultErr := range result.Errors() {
		index := recordIndex(resultErr.Field())

		switch resultErr.Type() {
		case "required":
			violations = append(violations, Violation{
				Index:    index,
				Kind:     KindMissingField,
				Severity: SeverityError,
				Message:  "missing required field '" + detailProperty(resultErr) + "'",
			})
		case "string_gte":
			// minLength failures only occur for custom_name.
			violations = append(violations, Violation{
				Index:    index,
				Kind:     KindMissingField,
				Severity: SeverityError,
				Message:  "field '" + fieldName(resultErr.Field()) + "' must not be empty",
			})
		case "invalid_type":
			violations = append(violations, Violation{
				Index:    index,
				Kind:     KindWrongType,
				Severity: SeverityError,
				Message:  describeField(resultErr.Field()) + ": " + resultErr.Description(),
			})
		case "additional_property_not_allowed":
			violations = append(violations, Violation{
				Index:    index,
				Kind:     KindUnknownField,
				Severity: SeverityWarning,
				Message:  "unknown field '" + detailProperty(resultErr) + "'",
			})
		default:
			violations = append(violations, Violation{
				Index:    index,
				Kind:     KindWrongType,
				Severity: SeverityError,
				Message:  describeField(resultErr.Field()) + ": " + resultErr.Description(),
			})
		}
	}

	// gojsonschema iterates object properties in map order.
	sort.Slice(violations, func(i, j int) bool {
		a, b := violations[i], violations[j]
		if a.Index != b.Index {
			return a.Index < b.Index
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.Message < b.Message
	})

	return violations
}

// recordIndex extracts the top-level record index from a schema field path
// such as "2.custom_name" or "2". Document-level findings ("(root)") map to
// DocumentIndex.
func recordIndex(field string) int {
	segment, _, _ := strings.Cut(field, ".")
	index, err := strconv.Atoi(segment)
	if err != nil {
		return DocumentIndex
	}
	return index
}

// fieldName returns the last segment of a schema field path.
func fieldName(field string) string {
	if i := strings.LastIndex(field, "."); i >= 0 {
		return field[i+1:]
	}
	return field
}

// describeField renders a schema field path for a violation message,
// normalizing document-level paths.
func describeField(field string) string {
	if field == gojsonschema.STRING_CONTEXT_ROOT || field == "(root)" {
		return "document"
	}
	name := fieldName(field)
	if _, err := strconv.Atoi(name); err == nil {
		return "record"
	}
	return "field '" + name + "'"
}

func detailProperty(resultErr gojsonschema.ResultError) string {
	if p, ok := resultErr.Details()["property"].(string); ok {
		return p
	}
	return fieldName(resultErr.Field())
}
