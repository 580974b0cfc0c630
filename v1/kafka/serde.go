package kafka

import (
	"context"

	"github.com/streamkit-io/schemaregistry/v1/schema"
	"github.com/streamkit-io/schemaregistry/v1/serializer"
)

// RegistrySerializer is a Serializer that frames every value in Confluent
// wire format under a fixed subject and schema. The first Serialize call
// registers the schema (or reuses an existing registration); later calls are
// served from the serializer's caches.
type RegistrySerializer struct {
	serializer *serializer.MessageSerializer
	subject    string
	schema     *schema.Schema
}

// NewRegistrySerializer creates a Serializer producing wire format messages
// for one subject.
func NewRegistrySerializer(ms *serializer.MessageSerializer, subject string, s *schema.Schema) *RegistrySerializer {
	return &RegistrySerializer{
		serializer: ms,
		subject:    subject,
		schema:     s,
	}
}

// Serialize implements Serializer.
func (r *RegistrySerializer) Serialize(ctx context.Context, value interface{}) ([]byte, error) {
	return r.serializer.EncodeWithSchema(ctx, r.subject, r.schema, value)
}

// RegistryDeserializer is a Deserializer that decodes Confluent wire format
// messages, resolving each message's schema id through the registry.
type RegistryDeserializer struct {
	serializer *serializer.MessageSerializer
}

// NewRegistryDeserializer creates a Deserializer for wire format messages.
func NewRegistryDeserializer(ms *serializer.MessageSerializer) *RegistryDeserializer {
	return &RegistryDeserializer{serializer: ms}
}

// Deserialize implements Deserializer. Tombstones (nil values) decode to nil.
func (r *RegistryDeserializer) Deserialize(ctx context.Context, data []byte) (interface{}, error) {
	return r.serializer.Decode(ctx, data)
}
