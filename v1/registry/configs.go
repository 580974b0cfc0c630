package registry

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/streamkit-io/schemaregistry/v1/observability"
)

// DefaultTimeout is applied when Config.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// Config holds configuration for the schema registry client.
type Config struct {
	// URL is the schema registry endpoint (e.g., "http://localhost:8081").
	// Required.
	URL string

	// Username for basic auth (optional).
	Username string

	// Password for basic auth (optional).
	Password string

	// Timeout for HTTP requests.
	// Default: 10 seconds. Per-call deadlines can additionally be set via
	// the context passed to each operation.
	Timeout time.Duration

	// ExtraHeaders are added to every request (optional).
	ExtraHeaders map[string]string

	// TLS configures transport security (optional).
	TLS TLSConfig

	// HTTPClient overrides the HTTP client used for all requests.
	// When set, Timeout and TLS are ignored. Mainly useful for tests.
	HTTPClient *http.Client

	// Logger used for soft outcomes like 404 responses.
	// Default: a no-op logger.
	Logger *zap.Logger

	// Observer receives per-operation notifications (optional).
	Observer observability.Observer
}

// TLSConfig configures TLS for the registry connection.
type TLSConfig struct {
	// Enabled turns TLS configuration on.
	Enabled bool

	// CACertPath is the path to CA certificate(s) for verifying the
	// registry's certificate (optional).
	CACertPath string

	// ClientCertPath is the path to the client certificate used for
	// mutual TLS (optional).
	ClientCertPath string

	// ClientKeyPath is the path to the client private key (optional).
	ClientKeyPath string

	// InsecureSkipVerify disables server certificate verification.
	// Only for development.
	InsecureSkipVerify bool
}
