package registry

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/streamkit-io/schemaregistry/v1/observability"
	"github.com/streamkit-io/schemaregistry/v1/schema"
)

const (
	contentType  = "application/vnd.schemaregistry.v1+json"
	acceptHeader = "application/vnd.schemaregistry.v1+json, application/vnd.schemaregistry+json, application/json"
)

// httpGateway is the REST implementation of Gateway. It owns URL
// construction, auth headers, TLS and the HTTP connection pool; every call is
// a single attempt with no retries.
type httpGateway struct {
	baseURL      string
	httpClient   *http.Client
	username     string
	password     string
	extraHeaders map[string]string

	log      *zap.Logger
	observer observability.Observer
	tracer   trace.Tracer
}

func newHTTPGateway(cfg Config) (*httpGateway, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("registry: URL is required")
	}
	if _, err := url.Parse(cfg.URL); err != nil {
		return nil, fmt.Errorf("registry: invalid URL %q: %w", cfg.URL, err)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Observer == nil {
		cfg.Observer = observability.NoopObserver{}
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		if cfg.TLS.Enabled {
			tlsConfig, err := createTLSConfig(cfg.TLS)
			if err != nil {
				return nil, err
			}
			transport.TLSClientConfig = tlsConfig
		}
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		}
	}

	return &httpGateway{
		baseURL:      cfg.URL,
		httpClient:   httpClient,
		username:     cfg.Username,
		password:     cfg.Password,
		extraHeaders: cfg.ExtraHeaders,
		log:          cfg.Logger,
		observer:     cfg.Observer,
		tracer:       otel.Tracer("github.com/streamkit-io/schemaregistry/v1/registry"),
	}, nil
}

// createTLSConfig creates a TLS configuration from the provided config.
func createTLSConfig(cfg TLSConfig) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		InsecureSkipVerify: cfg.InsecureSkipVerify,
	}

	if cfg.CACertPath != "" {
		caCert, err := os.ReadFile(cfg.CACertPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA cert: %w", err)
		}
		caCertPool := x509.NewCertPool()
		if !caCertPool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("failed to parse CA cert")
		}
		tlsConfig.RootCAs = caCertPool
	}

	if cfg.ClientCertPath != "" && cfg.ClientKeyPath != "" {
		cert, err := tls.LoadX509KeyPair(cfg.ClientCertPath, cfg.ClientKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load client cert: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return tlsConfig, nil
}

// schemaPayload is the request body for register, check-version and
// compatibility calls.
type schemaPayload struct {
	Schema     string `json:"schema"`
	SchemaType string `json:"schemaType"`
}

func newSchemaPayload(s *schema.Schema) schemaPayload {
	return schemaPayload{
		Schema:     s.Canonical(),
		SchemaType: s.Type().String(),
	}
}

// do performs one HTTP call and returns the response body and status code.
// Transport-level failures are returned as errors; HTTP error statuses are
// not, interpretation is left to the caller.
func (g *httpGateway) do(ctx context.Context, operation, method, path string, body interface{}) ([]byte, int, error) {
	ctx, span := g.tracer.Start(ctx, "registry."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		),
	)
	defer span.End()

	start := time.Now()
	respBody, statusCode, err := g.roundTrip(ctx, method, path, body)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.Int("http.response.status_code", statusCode))
	}

	g.observer.ObserveOperation(observability.OperationContext{
		Component: "registry",
		Operation: operation,
		Resource:  path,
		Duration:  time.Since(start),
		Error:     err,
		Size:      int64(len(respBody)),
		Metadata:  map[string]interface{}{"status_code": statusCode},
	})

	return respBody, statusCode, err
}

func (g *httpGateway) roundTrip(ctx context.Context, method, path string, body interface{}) ([]byte, int, error) {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("registry: marshal request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("registry: create request: %w", err)
	}

	req.Header.Set("Accept", acceptHeader)
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if g.username != "" {
		req.SetBasicAuth(g.username, g.password)
	}
	for key, value := range g.extraHeaders {
		req.Header.Set(key, value)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("registry: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("registry: read response: %w", err)
	}

	return respBody, resp.StatusCode, nil
}

func isSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}

func isClientError(statusCode int) bool {
	return statusCode >= 400 && statusCode < 500
}

func subjectPath(subject string) string {
	return "/subjects/" + url.PathEscape(subject)
}

func configPath(subject string) string {
	if subject == "" {
		return "/config"
	}
	return "/config/" + url.PathEscape(subject)
}

// Register implements Gateway.
func (g *httpGateway) Register(ctx context.Context, subject string, s *schema.Schema) (int, error) {
	body, statusCode, err := g.do(ctx, "register", http.MethodPost,
		subjectPath(subject)+"/versions", newSchemaPayload(s))
	if err != nil {
		return 0, err
	}

	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return 0, newAPIError(ErrUnauthorized, statusCode, body)
	case statusCode == http.StatusConflict:
		return 0, newAPIError(ErrIncompatibleSchema, statusCode, body)
	case statusCode == http.StatusUnprocessableEntity:
		return 0, newAPIError(ErrInvalidSchema, statusCode, body)
	case !isSuccess(statusCode):
		return 0, newAPIError(ErrRegistrationFailed, statusCode, body)
	}

	var result struct {
		ID int `json:"id"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return 0, fmt.Errorf("registry: decode register response: %w", err)
	}
	return result.ID, nil
}

// CheckVersion implements Gateway.
func (g *httpGateway) CheckVersion(ctx context.Context, subject string, s *schema.Schema) (*SchemaVersion, error) {
	body, statusCode, err := g.do(ctx, "check_version", http.MethodPost,
		subjectPath(subject), newSchemaPayload(s))
	if err != nil {
		return nil, err
	}

	if statusCode == http.StatusNotFound {
		g.log.Info("schema not registered under subject",
			zap.String("subject", subject),
			zap.String("schema", s.Name()),
		)
		return nil, nil
	}
	if !isSuccess(statusCode) {
		return nil, newAPIError(ErrLookupFailed, statusCode, body)
	}

	var result struct {
		ID      int `json:"id"`
		Version int `json:"version"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("registry: decode check-version response: %w", err)
	}

	return &SchemaVersion{
		Subject:  subject,
		SchemaID: result.ID,
		Version:  result.Version,
		Schema:   s,
	}, nil
}

// GetByID implements Gateway.
func (g *httpGateway) GetByID(ctx context.Context, id int) (*schema.Schema, error) {
	body, statusCode, err := g.do(ctx, "get_by_id", http.MethodGet,
		"/schemas/ids/"+strconv.Itoa(id), nil)
	if err != nil {
		return nil, err
	}

	if statusCode == http.StatusNotFound {
		g.log.Info("schema id not found", zap.Int("schema_id", id))
		return nil, nil
	}
	if !isSuccess(statusCode) {
		return nil, newAPIError(ErrLookupFailed, statusCode, body)
	}

	return schemaFromResponse(body)
}

// schemaFromResponse parses a {schema, schemaType} response body. A missing
// schemaType means AVRO, matching the server's behavior.
func schemaFromResponse(body []byte) (*schema.Schema, error) {
	var result struct {
		Schema     string `json:"schema"`
		SchemaType string `json:"schemaType"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("registry: decode schema response: %w", err)
	}
	if result.SchemaType == "" {
		result.SchemaType = schema.TypeAvro.String()
	}
	return schema.Parse(result.Schema, schema.Type(result.SchemaType))
}

// GetVersion implements Gateway.
func (g *httpGateway) GetVersion(ctx context.Context, subject, version string) (*SchemaVersion, error) {
	body, statusCode, err := g.do(ctx, "get_schema", http.MethodGet,
		subjectPath(subject)+"/versions/"+url.PathEscape(version), nil)
	if err != nil {
		return nil, err
	}

	switch {
	case statusCode == http.StatusNotFound:
		g.log.Info("subject version not found",
			zap.String("subject", subject),
			zap.String("version", version),
		)
		return nil, nil
	case statusCode == http.StatusUnprocessableEntity:
		g.log.Info("invalid version",
			zap.String("subject", subject),
			zap.String("version", version),
		)
		return nil, nil
	case !isSuccess(statusCode):
		return nil, newAPIError(ErrLookupFailed, statusCode, body)
	}

	var result struct {
		ID         int    `json:"id"`
		Version    int    `json:"version"`
		Schema     string `json:"schema"`
		SchemaType string `json:"schemaType"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("registry: decode version response: %w", err)
	}
	if result.SchemaType == "" {
		result.SchemaType = schema.TypeAvro.String()
	}

	parsed, err := schema.Parse(result.Schema, schema.Type(result.SchemaType))
	if err != nil {
		return nil, err
	}

	return &SchemaVersion{
		Subject:  subject,
		SchemaID: result.ID,
		Version:  result.Version,
		Schema:   parsed,
	}, nil
}

// GetVersions implements Gateway.
func (g *httpGateway) GetVersions(ctx context.Context, subject string) ([]int, error) {
	body, statusCode, err := g.do(ctx, "get_versions", http.MethodGet,
		subjectPath(subject)+"/versions", nil)
	if err != nil {
		return nil, err
	}

	if statusCode == http.StatusNotFound {
		g.log.Info("subject not found", zap.String("subject", subject))
		return []int{}, nil
	}
	if !isSuccess(statusCode) {
		return nil, newAPIError(ErrLookupFailed, statusCode, body)
	}

	var versions []int
	if err := json.Unmarshal(body, &versions); err != nil {
		return nil, fmt.Errorf("registry: decode versions response: %w", err)
	}
	return versions, nil
}

// GetSubjects implements Gateway.
func (g *httpGateway) GetSubjects(ctx context.Context) ([]string, error) {
	body, statusCode, err := g.do(ctx, "get_subjects", http.MethodGet, "/subjects", nil)
	if err != nil {
		return nil, err
	}
	if !isSuccess(statusCode) {
		return nil, newAPIError(ErrLookupFailed, statusCode, body)
	}

	var subjects []string
	if err := json.Unmarshal(body, &subjects); err != nil {
		return nil, fmt.Errorf("registry: decode subjects response: %w", err)
	}
	return subjects, nil
}

// GetSubjectVersionsByID implements Gateway.
func (g *httpGateway) GetSubjectVersionsByID(ctx context.Context, id int) ([]SubjectVersion, error) {
	body, statusCode, err := g.do(ctx, "get_schema_subject_versions", http.MethodGet,
		"/schemas/ids/"+strconv.Itoa(id)+"/versions", nil)
	if err != nil {
		return nil, err
	}

	if statusCode == http.StatusNotFound {
		g.log.Warn("schema id not found", zap.Int("schema_id", id))
		return nil, nil
	}
	if !isSuccess(statusCode) {
		return nil, newAPIError(ErrLookupFailed, statusCode, body)
	}

	var pairs []SubjectVersion
	if err := json.Unmarshal(body, &pairs); err != nil {
		return nil, fmt.Errorf("registry: decode subject-versions response: %w", err)
	}
	return pairs, nil
}

// DeleteVersion implements Gateway.
func (g *httpGateway) DeleteVersion(ctx context.Context, subject, version string) (int, error) {
	body, statusCode, err := g.do(ctx, "delete_version", http.MethodDelete,
		subjectPath(subject)+"/versions/"+url.PathEscape(version), nil)
	if err != nil {
		return 0, err
	}

	if isClientError(statusCode) {
		g.log.Info("version not deleted",
			zap.String("subject", subject),
			zap.String("version", version),
			zap.Int("status_code", statusCode),
		)
		return 0, nil
	}
	if !isSuccess(statusCode) {
		return 0, newAPIError(ErrLookupFailed, statusCode, body)
	}

	var deleted int
	if err := json.Unmarshal(body, &deleted); err != nil {
		return 0, fmt.Errorf("registry: decode delete-version response: %w", err)
	}
	return deleted, nil
}

// DeleteSubject implements Gateway.
func (g *httpGateway) DeleteSubject(ctx context.Context, subject string) ([]int, error) {
	body, statusCode, err := g.do(ctx, "delete_subject", http.MethodDelete,
		subjectPath(subject), nil)
	if err != nil {
		return nil, err
	}

	if statusCode == http.StatusNotFound {
		return []int{}, nil
	}
	if !isSuccess(statusCode) {
		return nil, newAPIError(ErrLookupFailed, statusCode, body)
	}

	var versions []int
	if err := json.Unmarshal(body, &versions); err != nil {
		return nil, fmt.Errorf("registry: decode delete-subject response: %w", err)
	}
	return versions, nil
}

// TestCompatibility implements Gateway.
func (g *httpGateway) TestCompatibility(ctx context.Context, subject, version string, s *schema.Schema) (bool, error) {
	body, statusCode, err := g.do(ctx, "test_compatibility", http.MethodPost,
		"/compatibility"+subjectPath(subject)+"/versions/"+url.PathEscape(version), newSchemaPayload(s))
	if err != nil {
		return false, err
	}

	switch {
	case statusCode == http.StatusNotFound:
		g.log.Info("subject or version not found",
			zap.String("subject", subject),
			zap.String("version", version),
		)
		return false, nil
	case statusCode == http.StatusUnprocessableEntity:
		g.log.Info("invalid subject or schema",
			zap.String("subject", subject),
			zap.Int("status_code", statusCode),
		)
		return false, nil
	case !isSuccess(statusCode):
		return false, newAPIError(ErrLookupFailed, statusCode, body)
	}

	var result struct {
		IsCompatible bool `json:"is_compatible"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return false, fmt.Errorf("registry: decode compatibility response: %w", err)
	}
	return result.IsCompatible, nil
}

// UpdateCompatibility implements Gateway.
func (g *httpGateway) UpdateCompatibility(ctx context.Context, level CompatibilityLevel, subject string) error {
	body, statusCode, err := g.do(ctx, "update_compatibility", http.MethodPut,
		configPath(subject), map[string]string{"compatibility": string(level)})
	if err != nil {
		return err
	}
	if !isSuccess(statusCode) {
		return newAPIError(ErrLookupFailed, statusCode, body)
	}
	return nil
}

// GetCompatibility implements Gateway.
func (g *httpGateway) GetCompatibility(ctx context.Context, subject string) (CompatibilityLevel, error) {
	body, statusCode, err := g.do(ctx, "get_compatibility", http.MethodGet,
		configPath(subject), nil)
	if err != nil {
		return "", err
	}
	if !isSuccess(statusCode) {
		return "", newAPIError(ErrLookupFailed, statusCode, body)
	}

	var result struct {
		CompatibilityLevel CompatibilityLevel `json:"compatibilityLevel"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("registry: decode compatibility response: %w", err)
	}
	if !result.CompatibilityLevel.Valid() {
		return "", newAPIError(ErrInvalidCompatibilityLevel, statusCode, body)
	}
	return result.CompatibilityLevel, nil
}
