package registry

import (
	"errors"
	"fmt"
)

// Common registry errors. Responses from the registry are classified into
// these sentinels and wrapped in an *APIError, so callers can match with
// errors.Is while still reaching the HTTP status and response body.
var (
	// ErrUnauthorized is returned on HTTP 401/403. Not retried; fix the
	// credentials.
	ErrUnauthorized = errors.New("registry: unauthorized access")

	// ErrIncompatibleSchema is returned on HTTP 409: the registry's
	// compatibility check rejected the schema. The caller must change the
	// schema; retrying cannot succeed.
	ErrIncompatibleSchema = errors.New("registry: incompatible schema")

	// ErrInvalidSchema is returned on HTTP 422 during registration.
	ErrInvalidSchema = errors.New("registry: invalid schema")

	// ErrRegistrationFailed is returned for any other non-2xx response to
	// a register call.
	ErrRegistrationFailed = errors.New("registry: unable to register schema")

	// ErrLookupFailed is returned for unexpected non-2xx responses to any
	// read, delete or config call.
	ErrLookupFailed = errors.New("registry: request failed")

	// ErrInvalidCompatibilityLevel is returned when a compatibility level
	// is not one of the values the registry understands.
	ErrInvalidCompatibilityLevel = errors.New("registry: invalid compatibility level")
)

// APIError is a hard failure from the registry REST API. It carries the HTTP
// status code and the raw response body so operators can tell a transient 503
// from a permanent 422.
type APIError struct {
	// StatusCode is the HTTP status returned by the registry.
	StatusCode int

	// Body is the raw server response, useful for diagnostics.
	Body string

	err error
}

func newAPIError(kind error, statusCode int, body []byte) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Body:       string(body),
		err:        kind,
	}
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%v (HTTP %d): %s", e.err, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%v (HTTP %d)", e.err, e.StatusCode)
}

func (e *APIError) Unwrap() error {
	return e.err
}
