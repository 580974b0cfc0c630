package serializer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/streamkit-io/schemaregistry/v1/observability"
	"github.com/streamkit-io/schemaregistry/v1/schema"
)

// Registry is the subset of the registry client the serializer needs.
// *registry.Client satisfies it.
type Registry interface {
	Register(ctx context.Context, subject string, s *schema.Schema) (int, error)
	GetByID(ctx context.Context, id int) (*schema.Schema, error)
}

type (
	encodeFunc func(record interface{}) ([]byte, error)
	decodeFunc func(payload []byte) (interface{}, error)
)

// Config configures a MessageSerializer.
type Config struct {
	// Registry resolves schema ids. Required.
	Registry Registry

	// ReaderSchema, when set, is the Avro schema decoded records are
	// projected onto regardless of the writer schema the message carries.
	ReaderSchema *schema.Schema

	// Logger defaults to a no-op logger.
	Logger *zap.Logger

	// Observer receives one observation per encode and decode. Defaults to
	// a no-op observer.
	Observer observability.Observer
}

// MessageSerializer converts between Go values and Confluent wire format
// messages. Encoders and decoders are built once per schema id and memoized
// for the lifetime of the serializer.
//
// A MessageSerializer is safe for concurrent use.
type MessageSerializer struct {
	registry Registry
	reader   *schema.Schema
	log      *zap.Logger
	observer observability.Observer

	mu       sync.RWMutex
	encoders map[int]encodeFunc
	decoders map[int]decodeFunc
}

// New creates a MessageSerializer.
func New(cfg Config) (*MessageSerializer, error) {
	if cfg.Registry == nil {
		return nil, fmt.Errorf("serializer: Registry is required")
	}
	if cfg.ReaderSchema != nil && cfg.ReaderSchema.Type() != schema.TypeAvro {
		return nil, fmt.Errorf("serializer: reader schema must be Avro, got %s", cfg.ReaderSchema.Type())
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Observer == nil {
		cfg.Observer = observability.NoopObserver{}
	}

	return &MessageSerializer{
		registry: cfg.Registry,
		reader:   cfg.ReaderSchema,
		log:      cfg.Logger,
		observer: cfg.Observer,
		encoders: make(map[int]encodeFunc),
		decoders: make(map[int]decodeFunc),
	}, nil
}

// Encode serializes a record under an already-registered schema id. The
// first call for an id fetches the schema from the registry; later calls
// reuse the memoized encoder.
func (m *MessageSerializer) Encode(ctx context.Context, schemaID int, record interface{}) ([]byte, error) {
	start := time.Now()
	msg, err := m.encode(ctx, schemaID, record)
	m.observe("encode", schemaID, start, err, int64(len(msg)))
	return msg, err
}

func (m *MessageSerializer) encode(ctx context.Context, schemaID int, record interface{}) ([]byte, error) {
	encode, ok := m.cachedEncoder(schemaID)
	if !ok {
		s, err := m.registry.GetByID(ctx, schemaID)
		if err != nil {
			return nil, err
		}
		if s == nil {
			return nil, fmt.Errorf("%w: id %d", ErrSchemaNotFound, schemaID)
		}
		encode, err = m.storeEncoder(schemaID, s)
		if err != nil {
			return nil, err
		}
	}

	payload, err := encode(record)
	if err != nil {
		return nil, err
	}

	msg := appendHeader(make([]byte, 0, headerSize+len(payload)), schemaID)
	return append(msg, payload...), nil
}

// EncodeWithSchema registers the schema under a subject (or reuses an
// existing registration) and serializes the record under the resulting id.
func (m *MessageSerializer) EncodeWithSchema(ctx context.Context, subject string, s *schema.Schema, record interface{}) ([]byte, error) {
	id, err := m.registry.Register(ctx, subject, s)
	if err != nil {
		return nil, err
	}

	// The schema is in hand, so build the encoder directly instead of
	// letting Encode fetch it back from the registry.
	if _, ok := m.cachedEncoder(id); !ok {
		if _, err := m.storeEncoder(id, s); err != nil {
			return nil, err
		}
	}
	return m.Encode(ctx, id, record)
}

// Decode deserializes a wire format message. A nil message decodes to a nil
// value: Kafka tombstones pass through unchanged.
func (m *MessageSerializer) Decode(ctx context.Context, msg []byte) (interface{}, error) {
	if msg == nil {
		return nil, nil
	}

	start := time.Now()
	record, schemaID, err := m.decode(ctx, msg)
	m.observe("decode", schemaID, start, err, int64(len(msg)))
	return record, err
}

func (m *MessageSerializer) decode(ctx context.Context, msg []byte) (interface{}, int, error) {
	schemaID, payload, err := splitHeader(msg)
	if err != nil {
		return nil, 0, err
	}

	decode, ok := m.cachedDecoder(schemaID)
	if !ok {
		s, err := m.registry.GetByID(ctx, schemaID)
		if err != nil {
			return nil, schemaID, err
		}
		if s == nil {
			return nil, schemaID, fmt.Errorf("%w: id %d", ErrSchemaNotFound, schemaID)
		}
		decode, err = m.storeDecoder(schemaID, s)
		if err != nil {
			return nil, schemaID, err
		}
	}

	record, err := decode(payload)
	return record, schemaID, err
}

func (m *MessageSerializer) cachedEncoder(schemaID int) (encodeFunc, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	encode, ok := m.encoders[schemaID]
	return encode, ok
}

func (m *MessageSerializer) cachedDecoder(schemaID int) (decodeFunc, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	decode, ok := m.decoders[schemaID]
	return decode, ok
}

func (m *MessageSerializer) storeEncoder(schemaID int, s *schema.Schema) (encodeFunc, error) {
	encode, err := buildEncoder(s)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.encoders[schemaID]; ok {
		return existing, nil
	}
	m.encoders[schemaID] = encode
	return encode, nil
}

func (m *MessageSerializer) storeDecoder(schemaID int, s *schema.Schema) (decodeFunc, error) {
	decode, err := buildDecoder(s, m.reader)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.decoders[schemaID]; ok {
		return existing, nil
	}
	m.decoders[schemaID] = decode
	return decode, nil
}

func buildEncoder(s *schema.Schema) (encodeFunc, error) {
	switch s.Type() {
	case schema.TypeAvro:
		return avroEncoder(s), nil
	case schema.TypeJSON:
		return jsonEncoder(s), nil
	default:
		return nil, fmt.Errorf("%w: %s", schema.ErrUnsupportedType, s.Type())
	}
}

func buildDecoder(s *schema.Schema, reader *schema.Schema) (decodeFunc, error) {
	switch s.Type() {
	case schema.TypeAvro:
		return avroDecoder(s, reader)
	case schema.TypeJSON:
		return jsonDecoder(s), nil
	default:
		return nil, fmt.Errorf("%w: %s", schema.ErrUnsupportedType, s.Type())
	}
}

func (m *MessageSerializer) observe(operation string, schemaID int, start time.Time, err error, size int64) {
	m.observer.ObserveOperation(observability.OperationContext{
		Component: "serializer",
		Operation: operation,
		Duration:  time.Since(start),
		Error:     err,
		Size:      size,
		Metadata:  map[string]interface{}{"schema_id": schemaID},
	})
}
