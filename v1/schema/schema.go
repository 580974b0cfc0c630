package schema

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/linkedin/goavro/v2"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Type identifies the schema language of a Schema. The values match the
// schemaType strings understood by the registry REST API.
type Type string

const (
	// TypeAvro identifies an Avro schema.
	TypeAvro Type = "AVRO"

	// TypeJSON identifies a JSON Schema (draft-07) schema.
	TypeJSON Type = "JSON"
)

func (t Type) String() string {
	return string(t)
}

// Schema wraps a raw Avro or JSON Schema definition together with its
// canonical form and a stable fingerprint.
//
// Two Schema values are considered equal when their canonical forms serialize
// identically; formatting and key-order differences in the raw definition do
// not affect equality. A Schema is immutable after construction.
type Schema struct {
	raw         string
	canonical   string
	typ         Type
	fingerprint string
	name        string

	// codec is set for Avro schemas only.
	codec *goavro.Codec

	// validator is set for JSON schemas only.
	validator *jsonschema.Schema

	expandOnce sync.Once
	expanded   *Schema
	expandErr  error
}

// Parse builds a Schema from its textual definition.
// It fails with a *ParseError if the definition is not valid for the given
// type: for Avro that includes references to undefined named types, for JSON
// that includes failing the draft-07 meta-schema check.
func Parse(raw string, typ Type) (*Schema, error) {
	switch typ {
	case TypeAvro:
		return ParseAvro(raw)
	case TypeJSON:
		return ParseJSON(raw)
	default:
		return nil, fmt.Errorf("%w: %q (supported types are AVRO and JSON)", ErrUnsupportedType, typ)
	}
}

// ParseAvro builds a Schema from an Avro schema definition.
func ParseAvro(raw string) (*Schema, error) {
	codec, err := goavro.NewCodec(raw)
	if err != nil {
		return nil, &ParseError{Type: TypeAvro, Err: err}
	}

	canonical, doc, err := canonicalize(raw)
	if err != nil {
		return nil, &ParseError{Type: TypeAvro, Err: err}
	}

	return &Schema{
		raw:         raw,
		canonical:   canonical,
		typ:         TypeAvro,
		fingerprint: fingerprint(canonical),
		name:        avroName(doc),
		codec:       codec,
	}, nil
}

// ParseJSON builds a Schema from a JSON Schema definition.
// The definition itself is validated against the draft-07 meta-schema unless
// it declares another draft via $schema.
func ParseJSON(raw string) (*Schema, error) {
	validator, err := compileJSONSchema(raw)
	if err != nil {
		return nil, &ParseError{Type: TypeJSON, Err: err}
	}

	canonical, doc, err := canonicalize(raw)
	if err != nil {
		return nil, &ParseError{Type: TypeJSON, Err: err}
	}

	return &Schema{
		raw:         raw,
		canonical:   canonical,
		typ:         TypeJSON,
		fingerprint: fingerprint(canonical),
		name:        jsonName(doc),
		validator:   validator,
	}, nil
}

// Load reads a schema definition from a file and parses it.
func Load(path string, typ Type) (*Schema, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", path, err)
	}
	return Parse(string(content), typ)
}

// Type returns the schema language of this schema.
func (s *Schema) Type() Type {
	return s.typ
}

// Raw returns the original textual definition as supplied by the caller.
func (s *Schema) Raw() string {
	return s.raw
}

// Canonical returns the canonical form of the schema: the definition
// reparsed and re-serialized compactly with object keys sorted. This is the
// form sent to the registry and the form fingerprints are computed over.
func (s *Schema) Canonical() string {
	return s.canonical
}

// Fingerprint returns the hex-encoded SHA-256 hash of the canonical form.
// It is deterministic and stable across process restarts, which makes it
// safe to compare against re-hashed server round-trips.
func (s *Schema) Fingerprint() string {
	return s.fingerprint
}

// Name returns the schema's declared name: the top-level record name for
// Avro, the title (falling back to $id and then $ref) for JSON Schema.
// It returns the empty string when the schema declares none.
func (s *Schema) Name() string {
	return s.name
}

// Equal reports whether two schemas have identical canonical forms.
func (s *Schema) Equal(other *Schema) bool {
	if other == nil {
		return false
	}
	return s.fingerprint == other.fingerprint
}

// String returns the canonical form.
func (s *Schema) String() string {
	return s.canonical
}

// Codec returns the compiled Avro codec, or nil for JSON schemas.
func (s *Schema) Codec() *goavro.Codec {
	return s.codec
}

// JSONValidator returns the compiled JSON Schema validator, or nil for Avro
// schemas. The argument to its Validate method must be a decoded JSON value
// (map[string]interface{}, []interface{}, float64, string, bool or nil).
func (s *Schema) JSONValidator() *jsonschema.Schema {
	return s.validator
}

// canonicalize reparses a schema definition and re-serializes it compactly.
// encoding/json marshals map keys in sorted order, so the result collapses
// whitespace and key-order differences while preserving every attribute,
// defaults included.
func canonicalize(raw string) (string, interface{}, error) {
	var doc interface{}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return "", nil, fmt.Errorf("invalid JSON document: %w", err)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return "", nil, err
	}
	return string(out), doc, nil
}

func fingerprint(canonical string) string {
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}

func avroName(doc interface{}) string {
	m, ok := doc.(map[string]interface{})
	if !ok {
		return ""
	}
	name, _ := m["name"].(string)
	return name
}

func jsonName(doc interface{}) string {
	m, ok := doc.(map[string]interface{})
	if !ok {
		return ""
	}
	for _, key := range []string{"title", "$id", "$ref"} {
		if v, ok := m[key].(string); ok {
			return v
		}
	}
	return ""
}
