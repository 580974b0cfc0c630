// Package logger provides structured logging for the schema registry
// client and the applications embedding it.
//
// The package wraps Uber's Zap with a small surface: leveled logging with
// key-value fields, a service name and pid stamped on every entry, and
// optional distributed tracing integration that extracts trace and span ids
// from the context passed to each call.
//
// Direct Usage:
//
//	log := logger.NewLoggerClient(logger.Config{
//	    Level:         logger.Info,
//	    ServiceName:   "user-pipeline",
//	    EnableTracing: true,
//	})
//
//	log.Info("schema registered", ctx, map[string]interface{}{
//	    "subject":   "users-value",
//	    "schema_id": 42,
//	})
//
// Using with FX:
//
//	app := fx.New(
//	    logger.FXModule,
//	    fx.Provide(
//	        func() logger.Config {
//	            return logger.Config{Level: logger.Info, ServiceName: "user-pipeline"}
//	        },
//	    ),
//	    registry.FXModule, // receives the *zap.Logger the module provides
//	)
//
// The FX module also provides the raw *zap.Logger, which the registry,
// serializer and kafka modules consume for their internal logging.
package logger
