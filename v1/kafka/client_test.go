package kafka

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamkit-io/schemaregistry/v1/schema"
	"github.com/streamkit-io/schemaregistry/v1/serializer"
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

// stubRegistry satisfies serializer.Registry without a network.
type stubRegistry struct {
	mu      sync.Mutex
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

func (r *stubRegistry) Register(ctx context.Context, subject string, s *schema.Schema) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.byFP[s.Fingerprint()]; ok {
		return id, nil
	}
	id := r.nextID
	r.nextID++
	r.byFP[s.Fingerprint()] = id
	r.schemas[id] = s
	return id, nil
}

func (r *stubRegistry) GetByID(ctx context.Context, id int) (*schema.Schema, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.schemas[id], nil
}

func newTestMessageSerializer(t *testing.T) *serializer.MessageSerializer {
	t.Helper()
	ms, err := serializer.New(serializer.Config{Registry: newStubRegistry()})
	require.NoError(t, err)
	return ms
}

func TestNewClient_RequiresBrokersAndTopic(t *testing.T) {
	_, err := NewClient(Config{Topic: "users"})
	assert.Error(t, err)

	_, err = NewClient(Config{Brokers: []string{"localhost:9092"}})
	assert.Error(t, err)
}

func TestProduce_OnConsumerFails(t *testing.T) {
	client, err := NewClient(Config{
		Brokers:    []string{"localhost:9092"},
		Topic:      "users",
		GroupID:    "g",
		IsConsumer: true,
	})
	require.NoError(t, err)
	defer client.GracefulShutdown()

	err = client.Produce(context.Background(), nil, []byte("x"))
	assert.ErrorIs(t, err, ErrNotProducer)
}

func TestConsume_OnProducerFails(t *testing.T) {
	client, err := NewClient(Config{
		Brokers: []string{"localhost:9092"},
		Topic:   "users",
	})
	require.NoError(t, err)
	defer client.GracefulShutdown()

	err = client.Consume(context.Background(), func(ctx context.Context, msg Message) error {
		return nil
	})
	assert.ErrorIs(t, err, ErrNotConsumer)
}

func TestProduce_NonBytesWithoutSerializerFails(t *testing.T) {
	client, err := NewClient(Config{
		Brokers: []string{"localhost:9092"},
		Topic:   "users",
	})
	require.NoError(t, err)
	defer client.GracefulShutdown()

	err = client.Produce(context.Background(), nil, map[string]interface{}{"name": "x"})
	assert.ErrorIs(t, err, ErrNoSerializer)
}

func TestProduce_AfterShutdownFails(t *testing.T) {
	client, err := NewClient(Config{
		Brokers: []string{"localhost:9092"},
		Topic:   "users",
	})
	require.NoError(t, err)
	require.NoError(t, client.GracefulShutdown())

	err = client.Produce(context.Background(), nil, []byte("x"))
	assert.ErrorIs(t, err, ErrClosed)
}

func TestGracefulShutdown_Idempotent(t *testing.T) {
	client, err := NewClient(Config{
		Brokers: []string{"localhost:9092"},
		Topic:   "users",
	})
	require.NoError(t, err)

	assert.NoError(t, client.GracefulShutdown())
	assert.NoError(t, client.GracefulShutdown())
}

func TestSerialize_NilIsTombstone(t *testing.T) {
	client, err := NewClient(Config{
		Brokers: []string{"localhost:9092"},
		Topic:   "users",
	})
	require.NoError(t, err)
	defer client.GracefulShutdown()

	payload, err := client.serialize(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, payload)
}

func TestSerialize_BytesPassThrough(t *testing.T) {
	client, err := NewClient(Config{
		Brokers: []string{"localhost:9092"},
		Topic:   "users",
	})
	require.NoError(t, err)
	defer client.GracefulShutdown()

	payload, err := client.serialize(context.Background(), []byte{0x1, 0x2})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x1, 0x2}, payload)
}

func TestDeserialize_PassThroughWithoutDeserializer(t *testing.T) {
	client, err := NewClient(Config{
		Brokers:    []string{"localhost:9092"},
		Topic:      "users",
		GroupID:    "g",
		IsConsumer: true,
	})
	require.NoError(t, err)
	defer client.GracefulShutdown()

	value, err := client.deserialize(context.Background(), []byte{0x1, 0x2})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x1, 0x2}, value)
}

func TestRegistrySerde_RoundTrip(t *testing.T) {
	ms := newTestMessageSerializer(t)
	s, err := schema.ParseAvro(userAvroSchema)
	require.NoError(t, err)
	ctx := context.Background()

	ser := NewRegistrySerializer(ms, "users-value", s)
	payload, err := ser.Serialize(ctx, map[string]interface{}{
		"name": "John",
		"age":  30,
	})
	require.NoError(t, err)
	assert.Equal(t, byte(0x0), payload[0])

	de := NewRegistryDeserializer(ms)
	value, err := de.Deserialize(ctx, payload)
	require.NoError(t, err)

	record, ok := value.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "John", record["name"])
	assert.Equal(t, int32(30), record["age"])
}

func TestRegistryDeserializer_TombstonePassesThrough(t *testing.T) {
	de := NewRegistryDeserializer(newTestMessageSerializer(t))

	value, err := de.Deserialize(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, value)
}
