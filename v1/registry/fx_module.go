package registry

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/streamkit-io/schemaregistry/v1/observability"
)

// FXModule is an fx.Module that provides and configures the registry client.
// This module registers the client with the Fx dependency injection
// framework, making it available to other components in the application.
//
// The module:
// 1. Provides the registry client factory function
// 2. Invokes the lifecycle registration to manage the client's lifecycle
//
// Usage:
//
//	app := fx.New(
//	    registry.FXModule,
//	    fx.Provide(
//	        func() registry.Config {
//	            return registry.Config{
//	                URL:      "http://localhost:8081",
//	                Username: "user",
//	                Password: "pass",
//	            }
//	        },
//	    ),
//	)
var FXModule = fx.Module("registry",
	fx.Provide(
		NewClientWithDI,
	),
	fx.Invoke(RegisterClientLifecycle),
)

// ClientParams groups the dependencies needed to create a registry client
type ClientParams struct {
	fx.In

	Config   Config
	Logger   *zap.Logger            `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewClientWithDI creates a new registry client using dependency injection.
// This function is designed to be used with Uber's fx dependency injection
// framework where dependencies are automatically provided via the
// ClientParams struct.
//
// Parameters:
//   - params: A ClientParams struct that contains the Config instance
//     required to initialize the registry client, plus an optional logger.
//     This struct embeds fx.In to enable automatic injection of these
//     dependencies.
//
// Returns:
//   - *Client: A fully initialized registry client ready for use.
func NewClientWithDI(params ClientParams) (*Client, error) {
	cfg := params.Config
	if cfg.Logger == nil {
		cfg.Logger = params.Logger
	}
	if cfg.Observer == nil {
		cfg.Observer = params.Observer
	}
	return NewClient(cfg)
}

// ClientLifecycleParams groups the dependencies needed for registry client
// lifecycle management
type ClientLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Client    *Client
	Logger    *zap.Logger `optional:"true"`
}

// RegisterClientLifecycle registers the registry client with the fx
// lifecycle system. The client itself holds no connections that need
// tearing down; the hooks exist so startup and shutdown are visible in the
// application log and future cleanup logic has a home.
func RegisterClientLifecycle(params ClientLifecycleParams) {
	log := params.Logger
	if log == nil {
		log = zap.NewNop()
	}
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("schema registry client initialized")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("schema registry client shutdown")
			return nil
		},
	})
}
