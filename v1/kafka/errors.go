package kafka

import "errors"

var (
	// ErrNotProducer is returned by Produce on a client configured as a
	// consumer.
	ErrNotProducer = errors.New("kafka: client is not configured as a producer")

	// ErrNotConsumer is returned by Consume on a client configured as a
	// producer.
	ErrNotConsumer = errors.New("kafka: client is not configured as a consumer")

	// ErrClosed is returned by operations on a client after
	// GracefulShutdown.
	ErrClosed = errors.New("kafka: client is closed")

	// ErrNoSerializer is returned when a non-[]byte value is produced
	// without a serializer configured.
	ErrNoSerializer = errors.New("kafka: no serializer configured for non-byte value")
)
