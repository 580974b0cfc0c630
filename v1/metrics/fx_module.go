package metrics

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/streamkit-io/schemaregistry/v1/observability"
)

// FXModule defines the Fx module for the metrics package.
//
// The module:
//  1. Provides the NewMetrics factory function to the dependency injection
//     container
//  2. Provides *Metrics as the observability.Observer other modules consume,
//     so registry, serializer and kafka operations are measured automatically
//  3. Invokes RegisterMetricsLifecycle to manage startup and graceful
//     shutdown of the Prometheus HTTP server
//
// Usage:
//
//	app := fx.New(
//	    metrics.FXModule,
//	    fx.Provide(func() metrics.Config {
//	        return metrics.Config{
//	            Address:     ":9090",
//	            ServiceName: "user-pipeline",
//	        }
//	    }),
//	    // other modules...
//	)
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
		func(m *Metrics) observability.Observer { return m },
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

// MetricsLifecycleParams groups the dependencies needed for metrics server
// lifecycle management
type MetricsLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Metrics   *Metrics
	Logger    *zap.Logger `optional:"true"`
}

// RegisterMetricsLifecycle manages the startup and shutdown lifecycle of the
// Prometheus metrics HTTP server.
//
// OnStart launches the server in a background goroutine; OnStop shuts it
// down gracefully so in-flight scrapes complete.
func RegisterMetricsLifecycle(params MetricsLifecycleParams) {
	log := params.Logger
	if log == nil {
		log = zap.NewNop()
	}
	m := params.Metrics

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("starting prometheus metrics server", zap.String("address", m.Server.Addr))
				if err := m.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("prometheus metrics server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down prometheus metrics server")
			return m.Server.Shutdown(ctx)
		},
	})
}
