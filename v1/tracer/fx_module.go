package tracer

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// FXModule provides a Uber FX module that configures distributed tracing for
// the application. The registry client traces every REST call through the
// global provider this module installs.
//
// The module:
// 1. Provides the tracer client through the NewClient constructor
// 2. Registers shutdown hooks that flush pending spans on termination
//
// Usage:
//
//	app := fx.New(
//	    tracer.FXModule,
//	    fx.Provide(func() tracer.Config {
//	        return tracer.Config{
//	            Enabled:     true,
//	            Endpoint:    "localhost:4318",
//	            ServiceName: "user-pipeline",
//	        }
//	    }),
//	    // other modules...
//	)
var FXModule = fx.Module("tracer",
	fx.Provide(
		NewClient,
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// TracerLifecycleParams groups the dependencies needed for tracer lifecycle
// management
type TracerLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Tracer    *Tracer
	Logger    *zap.Logger `optional:"true"`
}

// RegisterTracerLifecycle registers an OnStop hook that shuts the tracer
// provider down, flushing any pending spans to the exporter.
func RegisterTracerLifecycle(params TracerLifecycleParams) {
	log := params.Logger
	if log == nil {
		log = zap.NewNop()
	}
	params.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down tracer")
			return params.Tracer.Shutdown(ctx)
		},
	})
}
