package logger

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// FXModule defines the Fx module for the logger package.
//
// The module:
//  1. Provides the NewLoggerClient factory function to the dependency
//     injection container
//  2. Provides the underlying *zap.Logger for components that take zap
//     directly (the registry, serializer and kafka modules do)
//  3. Invokes RegisterLoggerLifecycle to flush buffered entries on shutdown
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    fx.Provide(
//	        func() logger.Config {
//	            return logger.Config{Level: logger.Info, ServiceName: "my-service"}
//	        },
//	    ),
//	    // other modules...
//	)
var FXModule = fx.Module("logger",
	fx.Provide(
		NewLoggerClient,
		func(l *Logger) *zap.Logger { return l.Zap },
	),
	fx.Invoke(RegisterLoggerLifecycle),
)

// RegisterLoggerLifecycle registers a shutdown hook that flushes any
// buffered log entries before the application terminates.
func RegisterLoggerLifecycle(lc fx.Lifecycle, client *Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Zap.Sync()
		},
	})
}
