package serializer

import (
	"context"
	"encoding/binary"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamkit-io/schemaregistry/v1/schema"
)

const userAvroSchema = `{
	"type": "record",
	"name": "User",
	"namespace": "example.users",
	"fields": [
		{"name": "name", "type": "string"},
		{"name": "age", "type": "int"}
	]
}`

const userJSONSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"title": "User",
	"type": "object",
	"properties": {
		"name": {"type": "string"},
		"age": {"type": "integer"}
	},
	"required": ["name", "age"]
}`

// stubRegistry is an in-memory Registry counting calls, so tests can assert
// that encoders and decoders are memoized.
type stubRegistry struct {
	mu            sync.Mutex
	registerCalls int
	getByIDCalls  int

	nextID  int
	byFP    map[string]int
	schemas map[int]*schema.Schema
}

func newStubRegistry() *stubRegistry {
	return &stubRegistry{
		nextID:  1,
		byFP:    make(map[string]int),
		schemas: make(map[int]*schema.Schema),
	}
}

func (r *stubRegistry) seed(s *schema.Schema) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.add(s)
}

func (r *stubRegistry) add(s *schema.Schema) int {
	if id, ok := r.byFP[s.Fingerprint()]; ok {
		return id
	}
	id := r.nextID
	r.nextID++
	r.byFP[s.Fingerprint()] = id
	r.schemas[id] = s
	return id
}

func (r *stubRegistry) Register(ctx context.Context, subject string, s *schema.Schema) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.registerCalls++
	return r.add(s), nil
}

func (r *stubRegistry) GetByID(ctx context.Context, id int) (*schema.Schema, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.getByIDCalls++
	return r.schemas[id], nil
}

func newTestSerializer(t *testing.T, cfg Config) (*MessageSerializer, *stubRegistry) {
	t.Helper()
	reg := newStubRegistry()
	cfg.Registry = reg
	ser, err := New(cfg)
	require.NoError(t, err)
	return ser, reg
}

func mustParse(t *testing.T, raw string, typ schema.Type) *schema.Schema {
	t.Helper()
	s, err := schema.Parse(raw, typ)
	require.NoError(t, err)
	return s
}

func TestEncodeDecode_AvroRoundTrip(t *testing.T) {
	ser, _ := newTestSerializer(t, Config{})
	s := mustParse(t, userAvroSchema, schema.TypeAvro)
	ctx := context.Background()

	msg, err := ser.EncodeWithSchema(ctx, "users-value", s, map[string]interface{}{
		"name": "John Doe",
		"age":  30,
	})
	require.NoError(t, err)

	record, err := ser.Decode(ctx, msg)
	require.NoError(t, err)

	decoded, ok := record.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "John Doe", decoded["name"])
	assert.Equal(t, int32(30), decoded["age"])
}

func TestEncodeDecode_JSONRoundTrip(t *testing.T) {
	ser, _ := newTestSerializer(t, Config{})
	s := mustParse(t, userJSONSchema, schema.TypeJSON)
	ctx := context.Background()

	msg, err := ser.EncodeWithSchema(ctx, "users-value", s, map[string]interface{}{
		"name": "Alice",
		"age":  28,
	})
	require.NoError(t, err)

	record, err := ser.Decode(ctx, msg)
	require.NoError(t, err)

	decoded, ok := record.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Alice", decoded["name"])
	assert.Equal(t, float64(28), decoded["age"])
}

func TestEncode_WireLayout(t *testing.T) {
	ser, reg := newTestSerializer(t, Config{})
	s := mustParse(t, userAvroSchema, schema.TypeAvro)
	id := reg.seed(s)
	ctx := context.Background()

	msg, err := ser.Encode(ctx, id, map[string]interface{}{
		"name": "x",
		"age":  1,
	})
	require.NoError(t, err)

	require.Greater(t, len(msg), headerSize)
	assert.Equal(t, byte(0x0), msg[0])
	assert.Equal(t, uint32(id), binary.BigEndian.Uint32(msg[1:5]))
}

func TestDecode_NilTombstonePassesThrough(t *testing.T) {
	ser, reg := newTestSerializer(t, Config{})

	record, err := ser.Decode(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, record)
	assert.Zero(t, reg.getByIDCalls)
}

func TestDecode_TooShort(t *testing.T) {
	ser, _ := newTestSerializer(t, Config{})

	_, err := ser.Decode(context.Background(), []byte{0x0, 0x0, 0x0})
	assert.ErrorIs(t, err, ErrTooShort)

	// Empty but non-nil is a malformed message, not a tombstone.
	_, err = ser.Decode(context.Background(), []byte{})
	assert.ErrorIs(t, err, ErrTooShort)
}

func TestDecode_BadMagicByte(t *testing.T) {
	ser, _ := newTestSerializer(t, Config{})

	_, err := ser.Decode(context.Background(), []byte{0x1, 0x0, 0x0, 0x0, 0x1, 0xff})
	assert.ErrorIs(t, err, ErrBadMagicByte)
}

func TestEncode_UnknownSchemaID(t *testing.T) {
	ser, _ := newTestSerializer(t, Config{})

	_, err := ser.Encode(context.Background(), 42, map[string]interface{}{})
	assert.ErrorIs(t, err, ErrSchemaNotFound)
}

func TestDecode_UnknownSchemaID(t *testing.T) {
	ser, _ := newTestSerializer(t, Config{})

	msg := appendHeader(nil, 42)
	msg = append(msg, 0x02)
	_, err := ser.Decode(context.Background(), msg)
	assert.ErrorIs(t, err, ErrSchemaNotFound)
}

func TestDecode_MemoizesDecoder(t *testing.T) {
	ser, reg := newTestSerializer(t, Config{})
	s := mustParse(t, userAvroSchema, schema.TypeAvro)
	ctx := context.Background()

	msg, err := ser.EncodeWithSchema(ctx, "users-value", s, map[string]interface{}{
		"name": "a",
		"age":  1,
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := ser.Decode(ctx, msg)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, reg.getByIDCalls, "decoder should be built once per schema id")
}

func TestEncodeWithSchema_SkipsSchemaFetch(t *testing.T) {
	ser, reg := newTestSerializer(t, Config{})
	s := mustParse(t, userAvroSchema, schema.TypeAvro)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := ser.EncodeWithSchema(ctx, "users-value", s, map[string]interface{}{
			"name": "a",
			"age":  i,
		})
		require.NoError(t, err)
	}

	assert.Equal(t, 3, reg.registerCalls)
	assert.Zero(t, reg.getByIDCalls, "the schema is in hand, no fetch needed")
}

func TestEncode_AvroFieldErrorPropagates(t *testing.T) {
	ser, reg := newTestSerializer(t, Config{})
	s := mustParse(t, userAvroSchema, schema.TypeAvro)
	id := reg.seed(s)

	_, err := ser.Encode(context.Background(), id, map[string]interface{}{
		"name": "x",
		"age":  "not a number",
	})
	assert.Error(t, err)
}

func TestEncode_JSONValidationFailure(t *testing.T) {
	ser, reg := newTestSerializer(t, Config{})
	s := mustParse(t, userJSONSchema, schema.TypeJSON)
	id := reg.seed(s)

	_, err := ser.Encode(context.Background(), id, map[string]interface{}{
		"name": "x",
		// age missing, schema requires it
	})
	assert.Error(t, err)
}

func TestDecode_JSONValidationFailure(t *testing.T) {
	ser, reg := newTestSerializer(t, Config{})
	s := mustParse(t, userJSONSchema, schema.TypeJSON)
	id := reg.seed(s)

	msg := appendHeader(nil, id)
	msg = append(msg, []byte(`{"name": "x"}`)...)
	_, err := ser.Decode(context.Background(), msg)
	assert.Error(t, err)
}

func TestDecode_ReaderSchemaAppliesDefaults(t *testing.T) {
	reader := mustParse(t, `{
		"type": "record",
		"name": "User",
		"namespace": "example.users",
		"fields": [
			{"name": "name", "type": "string"},
			{"name": "age", "type": "int"},
			{"name": "email", "type": "string", "default": "unknown@example.com"}
		]
	}`, schema.TypeAvro)

	ser, _ := newTestSerializer(t, Config{ReaderSchema: reader})
	writer := mustParse(t, userAvroSchema, schema.TypeAvro)
	ctx := context.Background()

	msg, err := ser.EncodeWithSchema(ctx, "users-value", writer, map[string]interface{}{
		"name": "John",
		"age":  30,
	})
	require.NoError(t, err)

	record, err := ser.Decode(ctx, msg)
	require.NoError(t, err)

	decoded := record.(map[string]interface{})
	assert.Equal(t, "John", decoded["name"])
	assert.Equal(t, "unknown@example.com", decoded["email"])
}

func TestDecode_ReaderSchemaDropsUnknownFields(t *testing.T) {
	reader := mustParse(t, `{
		"type": "record",
		"name": "User",
		"namespace": "example.users",
		"fields": [
			{"name": "name", "type": "string"}
		]
	}`, schema.TypeAvro)

	ser, _ := newTestSerializer(t, Config{ReaderSchema: reader})
	writer := mustParse(t, userAvroSchema, schema.TypeAvro)
	ctx := context.Background()

	msg, err := ser.EncodeWithSchema(ctx, "users-value", writer, map[string]interface{}{
		"name": "John",
		"age":  30,
	})
	require.NoError(t, err)

	record, err := ser.Decode(ctx, msg)
	require.NoError(t, err)

	decoded := record.(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"name": "John"}, decoded)
}

func TestDecode_ReaderFieldWithoutDefaultFails(t *testing.T) {
	reader := mustParse(t, `{
		"type": "record",
		"name": "User",
		"namespace": "example.users",
		"fields": [
			{"name": "name", "type": "string"},
			{"name": "ssn", "type": "string"}
		]
	}`, schema.TypeAvro)

	ser, _ := newTestSerializer(t, Config{ReaderSchema: reader})
	writer := mustParse(t, userAvroSchema, schema.TypeAvro)
	ctx := context.Background()

	msg, err := ser.EncodeWithSchema(ctx, "users-value", writer, map[string]interface{}{
		"name": "John",
		"age":  30,
	})
	require.NoError(t, err)

	_, err = ser.Decode(ctx, msg)
	assert.Error(t, err)
}

func TestNew_RequiresRegistry(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestNew_RejectsJSONReaderSchema(t *testing.T) {
	reader := mustParse(t, userJSONSchema, schema.TypeJSON)
	_, err := New(Config{Registry: newStubRegistry(), ReaderSchema: reader})
	assert.Error(t, err)
}

func TestEncodeDecode_ConcurrentUse(t *testing.T) {
	ser, reg := newTestSerializer(t, Config{})
	s := mustParse(t, userAvroSchema, schema.TypeAvro)
	id := reg.seed(s)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			msg, err := ser.Encode(ctx, id, map[string]interface{}{
				"name": "x",
				"age":  i,
			})
			assert.NoError(t, err)
			_, err = ser.Decode(ctx, msg)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()
}
