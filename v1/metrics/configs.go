package metrics

// Config holds the configuration for the metrics server.
type Config struct {
	// Address the /metrics HTTP server listens on, e.g. ":9090".
	Address string

	// ServiceName is added as a constant "service" label on every metric.
	ServiceName string

	// EnableDefaultCollectors registers the standard Go runtime, process
	// and build info collectors.
	EnableDefaultCollectors bool
}
