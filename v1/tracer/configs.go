package tracer

// DefaultSampleRatio samples every trace. Lower it in high-volume services.
const DefaultSampleRatio = 1.0

// Config holds the configuration for the tracer.
type Config struct {
	// Enabled turns tracing on. When false, NewClient returns an inert
	// tracer and the global provider is left untouched.
	Enabled bool

	// Endpoint is the OTLP/HTTP collector endpoint, e.g. "localhost:4318".
	Endpoint string

	// ServiceName identifies this process in trace backends.
	ServiceName string

	// Insecure disables TLS on the exporter connection.
	Insecure bool

	// SampleRatio is the fraction of traces to sample, in (0, 1]. Defaults
	// to DefaultSampleRatio.
	SampleRatio float64
}
