package kafka

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/streamkit-io/schemaregistry/v1/observability"
)

// FXModule is an fx.Module that provides and configures the Kafka client.
//
// Usage:
//
//	app := fx.New(
//	    kafka.FXModule,
//	    fx.Provide(
//	        func() kafka.Config {
//	            return kafka.Config{
//	                Brokers: []string{"localhost:9092"},
//	                Topic:   "users",
//	            }
//	        },
//	    ),
//	)
var FXModule = fx.Module("kafka",
	fx.Provide(
		NewClientWithDI,
	),
	fx.Invoke(RegisterKafkaLifecycle),
)

// KafkaParams groups the dependencies needed to create a Kafka client
type KafkaParams struct {
	fx.In

	Config   Config
	Logger   *zap.Logger            `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewClientWithDI creates a new Kafka client using dependency injection.
func NewClientWithDI(params KafkaParams) (*KafkaClient, error) {
	cfg := params.Config
	if cfg.Logger == nil {
		cfg.Logger = params.Logger
	}
	if cfg.Observer == nil {
		cfg.Observer = params.Observer
	}
	return NewClient(cfg)
}

// KafkaLifecycleParams groups the dependencies needed for Kafka client
// lifecycle management
type KafkaLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Client    *KafkaClient
}

// RegisterKafkaLifecycle ties the client's shutdown to the fx lifecycle so
// buffered writes are flushed and the group membership is released on stop.
func RegisterKafkaLifecycle(params KafkaLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return params.Client.GracefulShutdown()
		},
	})
}
