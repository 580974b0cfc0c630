package kafka

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/streamkit-io/schemaregistry/v1/observability"
)

// Produce serializes value with the configured Serializer and publishes it
// under key. A []byte value with no serializer configured is published as-is;
// a nil value is published as a tombstone.
func (k *KafkaClient) Produce(ctx context.Context, key []byte, value interface{}) error {
	if k.writer == nil {
		return ErrNotProducer
	}
	select {
	case <-k.shutdownSignal:
		return ErrClosed
	default:
	}

	payload, err := k.serialize(ctx, value)
	if err != nil {
		return err
	}

	start := time.Now()
	err = k.writer.WriteMessages(ctx, kafka.Message{
		Key:   key,
		Value: payload,
	})
	k.observe("produce", start, err, int64(len(payload)))

	if err != nil {
		return fmt.Errorf("kafka: write message: %w", err)
	}
	return nil
}

func (k *KafkaClient) serialize(ctx context.Context, value interface{}) ([]byte, error) {
	if value == nil {
		return nil, nil
	}
	if k.serializer != nil {
		return k.serializer.Serialize(ctx, value)
	}
	if raw, ok := value.([]byte); ok {
		return raw, nil
	}
	return nil, ErrNoSerializer
}

// Consume reads messages, deserializes their values and passes them to
// handler. It returns when ctx is cancelled, GracefulShutdown is called, or
// handler returns an error.
func (k *KafkaClient) Consume(ctx context.Context, handler Handler) error {
	if k.reader == nil {
		return ErrNotConsumer
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-k.shutdownSignal:
			cancel()
		case <-ctx.Done():
		}
	}()

	for {
		start := time.Now()
		raw, err := k.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("kafka: read message: %w", err)
		}

		value, err := k.deserialize(ctx, raw.Value)
		k.observe("consume", start, err, int64(len(raw.Value)))
		if err != nil {
			k.log.Error("failed to deserialize message",
				zap.String("topic", raw.Topic),
				zap.Int("partition", raw.Partition),
				zap.Int64("offset", raw.Offset),
				zap.Error(err),
			)
			return err
		}

		msg := Message{
			Topic:     raw.Topic,
			Partition: raw.Partition,
			Offset:    raw.Offset,
			Key:       raw.Key,
			Value:     value,
			Time:      raw.Time,
		}
		if err := handler(ctx, msg); err != nil {
			return err
		}
	}
}

func (k *KafkaClient) deserialize(ctx context.Context, data []byte) (interface{}, error) {
	if k.deserializer != nil {
		return k.deserializer.Deserialize(ctx, data)
	}
	return data, nil
}

// GracefulShutdown stops the client and closes its writer or reader. It is
// safe to call more than once.
func (k *KafkaClient) GracefulShutdown() error {
	k.closeShutdownOnce.Do(func() {
		close(k.shutdownSignal)
	})

	var err error
	if k.writer != nil {
		err = k.writer.Close()
	}
	if k.reader != nil {
		if closeErr := k.reader.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}
	return err
}

func (k *KafkaClient) observe(operation string, start time.Time, err error, size int64) {
	k.observer.ObserveOperation(observability.OperationContext{
		Component: "kafka",
		Operation: operation,
		Resource:  k.cfg.Topic,
		Duration:  time.Since(start),
		Error:     err,
		Size:      size,
	})
}
