// Package metrics provides Prometheus-based monitoring for the schema
// registry client library.
//
// The package exposes an isolated Prometheus registry behind a /metrics HTTP
// endpoint and implements the observability.Observer contract: plugged into
// the registry client, serializer or kafka client, it turns every operation
// into a counter increment, a duration observation and a payload size
// observation.
//
// Built-in metrics:
//   - schemaregistry_operations_total{component, operation, status}
//   - schemaregistry_operation_duration_seconds{component, operation}
//   - schemaregistry_payload_bytes{component, operation}
//
// Direct Usage:
//
//	m := metrics.NewMetrics(metrics.Config{
//	    Address:     ":9090",
//	    ServiceName: "user-pipeline",
//	})
//	go m.Server.ListenAndServe()
//
//	client, err := registry.NewClient(registry.Config{
//	    URL:      "http://localhost:8081",
//	    Observer: m,
//	})
//
// Using with FX:
//
//	app := fx.New(
//	    metrics.FXModule,
//	    registry.FXModule,
//	    fx.Provide(
//	        func() metrics.Config { return metrics.Config{Address: ":9090"} },
//	        func() registry.Config { return registry.Config{URL: "http://localhost:8081"} },
//	    ),
//	)
//
// The FX module provides *Metrics as the observability.Observer consumed by
// the other modules, so wiring is automatic.
//
// Custom metrics can be registered through CreateCounter, CreateHistogram
// and CreateGauge; they share the registry and the /metrics endpoint.
package metrics
