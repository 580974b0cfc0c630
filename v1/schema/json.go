package schema

import (
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// compileJSONSchema validates a JSON Schema document against its meta-schema
// and returns the compiled validator. Documents that do not declare a draft
// via $schema are checked against draft-07, matching the registry server's
// default.
func compileJSONSchema(raw string) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7

	if err := compiler.AddResource("schema.json", strings.NewReader(raw)); err != nil {
		return nil, err
	}
	return compiler.Compile("schema.json")
}
