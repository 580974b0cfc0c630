package serializer

import (
	"encoding/json"
	"fmt"

	"github.com/streamkit-io/schemaregistry/v1/schema"
)

func avroEncoder(s *schema.Schema) encodeFunc {
	codec := s.Codec()
	return func(record interface{}) ([]byte, error) {
		return codec.BinaryFromNative(nil, record)
	}
}

// avroDecoder builds a decoder for a writer schema. When reader is non-nil
// the writer-decoded record is projected onto the reader's fields: fields the
// writer did not produce take the reader's defaults, fields the reader does
// not declare are dropped.
func avroDecoder(s *schema.Schema, reader *schema.Schema) (decodeFunc, error) {
	codec := s.Codec()
	if reader == nil {
		return func(payload []byte) (interface{}, error) {
			native, _, err := codec.NativeFromBinary(payload)
			return native, err
		}, nil
	}

	fields, err := readerFields(reader)
	if err != nil {
		return nil, err
	}
	return func(payload []byte) (interface{}, error) {
		native, _, err := codec.NativeFromBinary(payload)
		if err != nil {
			return nil, err
		}
		return projectRecord(native, fields)
	}, nil
}

type readerField struct {
	name       string
	def        interface{}
	hasDefault bool
}

func readerFields(reader *schema.Schema) ([]readerField, error) {
	var doc struct {
		Fields []map[string]interface{} `json:"fields"`
	}
	if err := json.Unmarshal([]byte(reader.Canonical()), &doc); err != nil {
		return nil, fmt.Errorf("serializer: parse reader schema: %w", err)
	}
	if len(doc.Fields) == 0 {
		return nil, fmt.Errorf("serializer: reader schema %q is not a record", reader.Name())
	}

	fields := make([]readerField, 0, len(doc.Fields))
	for _, raw := range doc.Fields {
		name, _ := raw["name"].(string)
		def, hasDefault := raw["default"]
		fields = append(fields, readerField{
			name:       name,
			def:        def,
			hasDefault: hasDefault,
		})
	}
	return fields, nil
}

func projectRecord(native interface{}, fields []readerField) (interface{}, error) {
	record, ok := native.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("serializer: reader schema set but payload is not a record")
	}

	projected := make(map[string]interface{}, len(fields))
	for _, field := range fields {
		if value, ok := record[field.name]; ok {
			projected[field.name] = value
			continue
		}
		if !field.hasDefault {
			return nil, fmt.Errorf("serializer: reader field %q absent from payload and has no default", field.name)
		}
		projected[field.name] = field.def
	}
	return projected, nil
}
