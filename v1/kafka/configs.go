package kafka

import (
	"time"

	"go.uber.org/zap"

	"github.com/streamkit-io/schemaregistry/v1/observability"
)

// Default configuration values applied by NewClient when the corresponding
// Config field is zero.
const (
	DefaultMinBytes       = 10e3 // 10KB
	DefaultMaxBytes       = 10e6 // 10MB
	DefaultMaxWait        = 500 * time.Millisecond
	DefaultCommitInterval = time.Second
	DefaultStartOffset    = FirstOffset
	DefaultPartition      = -1
	DefaultRequiredAcks   = -1 // wait for all in-sync replicas
	DefaultBatchSize      = 100
	DefaultBatchTimeout   = time.Second
	DefaultMaxAttempts    = 10
	DefaultWriteTimeout   = 10 * time.Second
)

// Offsets a consumer without committed group offsets can start from.
const (
	FirstOffset int64 = -2
	LastOffset  int64 = -1
)

// Config holds the configuration for a Kafka client.
type Config struct {
	// Brokers is the list of broker addresses. Required.
	Brokers []string

	// Topic to produce to or consume from. Required.
	Topic string

	// GroupID is the consumer group id. Consumers without a group read a
	// single partition.
	GroupID string

	// IsConsumer selects between a consumer (true) and a producer (false).
	IsConsumer bool

	// Serializer encodes values before they are produced. Optional; without
	// one only []byte values can be produced.
	Serializer Serializer

	// Deserializer decodes values after they are consumed. Optional;
	// without one consumed values are the raw message bytes.
	Deserializer Deserializer

	// Consumer tuning.
	MinBytes         int
	MaxBytes         int
	MaxWait          time.Duration
	StartOffset      int64
	Partition        int
	EnableAutoCommit bool
	CommitInterval   time.Duration

	// Producer tuning.
	RequiredAcks     int
	Async            bool
	BatchSize        int
	BatchTimeout     time.Duration
	MaxAttempts      int
	WriteTimeout     time.Duration
	CompressionCodec string // "gzip", "snappy", "lz4" or "zstd"

	// TLS configures transport encryption.
	TLS TLSConfig

	// SASL configures broker authentication.
	SASL SASLConfig

	// Logger defaults to a no-op logger.
	Logger *zap.Logger

	// Observer receives one observation per produce and consume. Defaults
	// to a no-op observer.
	Observer observability.Observer
}

// TLSConfig holds TLS settings for broker connections.
type TLSConfig struct {
	Enabled            bool
	CACertPath         string
	ClientCertPath     string
	ClientKeyPath      string
	InsecureSkipVerify bool
}

// SASLConfig holds SASL authentication settings.
type SASLConfig struct {
	Enabled   bool
	Mechanism string // "PLAIN", "SCRAM-SHA-256" or "SCRAM-SHA-512"
	Username  string
	Password  string
}
