package observability

import "time"

// OperationContext carries the details of a single operation performed by one
// of the library's clients. It is handed to the configured Observer after the
// operation completes, successfully or not.
type OperationContext struct {
	// Component is the package that performed the operation,
	// e.g. "registry" or "serializer".
	Component string

	// Operation is the name of the operation, e.g. "register" or "decode".
	Operation string

	// Resource is the primary resource the operation touched,
	// e.g. a subject name.
	Resource string

	// SubResource is additional context, e.g. a schema id or version.
	SubResource string

	// Duration is how long the operation took.
	Duration time.Duration

	// Error is the error returned by the operation, nil on success.
	Error error

	// Size is the payload size in bytes where applicable, 0 otherwise.
	Size int64

	// Metadata holds any extra operation-specific values.
	Metadata map[string]interface{}
}

// Observer receives operation notifications from the library's clients.
// Implementations must be safe for concurrent use; they are called inline
// on the caller's goroutine and should return quickly.
//
// The metrics package provides a Prometheus-backed implementation.
type Observer interface {
	ObserveOperation(op OperationContext)
}

// NoopObserver is an Observer that discards all notifications.
// It is the default when no observer is configured.
type NoopObserver struct{}

// ObserveOperation implements Observer.
func (NoopObserver) ObserveOperation(OperationContext) {}
