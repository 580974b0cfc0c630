package kafka

import (
	"context"
	"time"
)

// Serializer encodes a value into the bytes placed in a Kafka message.
type Serializer interface {
	Serialize(ctx context.Context, value interface{}) ([]byte, error)
}

// Deserializer decodes the bytes of a Kafka message into a value.
type Deserializer interface {
	Deserialize(ctx context.Context, data []byte) (interface{}, error)
}

// Message is a consumed Kafka message with its value already deserialized.
type Message struct {
	Topic     string
	Partition int
	Offset    int64
	Key       []byte
	Value     interface{}
	Time      time.Time
}

// Handler processes one consumed message. Returning an error stops the
// consume loop and surfaces the error to the caller.
type Handler func(ctx context.Context, msg Message) error

// Client is the interface implemented by KafkaClient.
type Client interface {
	// Produce serializes value and publishes it under key.
	Produce(ctx context.Context, key []byte, value interface{}) error

	// Consume reads messages and passes them to handler until ctx is
	// cancelled, the client shuts down, or handler returns an error.
	Consume(ctx context.Context, handler Handler) error

	// GracefulShutdown stops the client and releases its connections.
	GracefulShutdown() error
}
