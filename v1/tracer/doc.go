// Package tracer configures OpenTelemetry distributed tracing.
//
// NewClient builds an OTLP/HTTP exporter and a sampling tracer provider and
// installs it as the process-global provider. Instrumented components pick
// it up automatically: the registry client, for example, wraps every REST
// call in a client span, so schema registrations and lookups appear in
// traces alongside the application's own spans.
//
// With Enabled false the package is inert; span creation goes through the
// default no-op provider and nothing is exported. This keeps tracing a
// one-flag decision for applications that embed the library.
package tracer
