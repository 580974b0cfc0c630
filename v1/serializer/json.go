package serializer

import (
	"encoding/json"
	"fmt"

	"github.com/streamkit-io/schemaregistry/v1/schema"
)

// JSON payloads are validated against the schema on both encode and decode,
// so invalid documents never reach the wire and never leave it.

func jsonEncoder(s *schema.Schema) encodeFunc {
	validator := s.JSONValidator()
	return func(record interface{}) ([]byte, error) {
		payload, err := json.Marshal(record)
		if err != nil {
			return nil, fmt.Errorf("serializer: marshal record: %w", err)
		}
		var doc interface{}
		if err := json.Unmarshal(payload, &doc); err != nil {
			return nil, fmt.Errorf("serializer: remarshal record: %w", err)
		}
		if err := validator.Validate(doc); err != nil {
			return nil, err
		}
		return payload, nil
	}
}

func jsonDecoder(s *schema.Schema) decodeFunc {
	validator := s.JSONValidator()
	return func(payload []byte) (interface{}, error) {
		var doc interface{}
		if err := json.Unmarshal(payload, &doc); err != nil {
			return nil, fmt.Errorf("serializer: unmarshal payload: %w", err)
		}
		if err := validator.Validate(doc); err != nil {
			return nil, err
		}
		return doc, nil
	}
}
