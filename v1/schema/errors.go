package schema

import (
	"errors"
	"fmt"
)

// Common schema errors
var (
	// ErrUnsupportedType is returned when a schema type other than AVRO or
	// JSON is requested.
	ErrUnsupportedType = errors.New("schema: unsupported schema type")

	// ErrNotAvro is returned by Avro-only operations on a JSON schema.
	ErrNotAvro = errors.New("schema: operation requires an Avro schema")
)

// ParseError is returned when a schema definition cannot be parsed.
// It is always a local failure; retrying cannot succeed.
type ParseError struct {
	// Type is the schema language that was being parsed.
	Type Type

	// Err is the underlying cause from the parser.
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("schema: parse %s schema: %v", e.Type, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
