package schema

import (
	"fmt"
	"strings"
)

// SchemaNotFoundError means that no schema could be selected for an operation: either the
// operation name is not in the mapping table, or no schema file exists for its family.
type SchemaNotFoundError struct {
	Operation string
	// Family is empty if the operation itself was not mapped.
	Family string
}

func (e *SchemaNotFoundError) Error() string {
	if e.Family == "" {
		return fmt.Sprintf("no schema is mapped for operation %q", e.Operation)
	}
	return fmt.Sprintf("%q schema not found (family %q)", e.Operation, e.Family)
}

// SchemaParseError means that a schema file was found but is not valid JSON, or is not a
// well-formed JSON Schema document of a supported draft.
type SchemaParseError struct {
	Family string
	File   string
	Err    error
}

func (e *SchemaParseError) Error() string {
	return fmt.Sprintf("invalid schema file %q for family %q: %s", e.File, e.Family, e.Err)
}

func (e *SchemaParseError) Unwrap() error {
	return e.Err
}

// AmbiguousSchemaError is returned when building a Registry if more than one file in the schema
// directory belongs to the same family.
type AmbiguousSchemaError struct {
	Family string
	Files  []string
}

func (e *AmbiguousSchemaError) Error() string {
	return fmt.Sprintf("more than one schema file for family %q: %s", e.Family, strings.Join(e.Files, ", "))
}

// Violation is a single schema constraint that the payload did not satisfy.
type Violation struct {
	// InstanceLocation is a JSON pointer to the offending value; it is empty for the root.
	InstanceLocation string
	// KeywordLocation is a JSON pointer to the schema keyword that failed.
	KeywordLocation string
	Message         string
}

func (v Violation) String() string {
	location := v.InstanceLocation
	if location == "" {
		location = "(root)"
	}
	return location + ": " + v.Message
}

// ValidationFailure means that the payload does not conform to the schema. It carries every
// violation found, not only the first one.
type ValidationFailure struct {
	Operation  string
	Violations []Violation
}

func (e *ValidationFailure) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return "JSON Schema Validation Error: " + strings.Join(parts, "; ")
}
