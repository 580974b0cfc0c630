package registry

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/streamkit-io/schemaregistry/v1/cache"
	"github.com/streamkit-io/schemaregistry/v1/schema"
)

// Client is a schema registry client that caches schemas, ids and versions
// to minimize network calls. It wraps a Gateway (the raw HTTP surface) with
// the register-or-reuse protocol: once a (subject, schema) pair has been
// resolved, repeated Register calls are served from the cache with zero
// network traffic.
//
// A Client is safe for concurrent use. Each Client instance owns its caches;
// they live for the lifetime of the instance and are never evicted.
type Client struct {
	gateway Gateway
	cache   *cache.Cache
	log     *zap.Logger

	// group collapses concurrent registrations of the same
	// (subject, schema) pair into a single network call.
	group singleflight.Group
}

// NewClient creates a client backed by the HTTP gateway described by cfg.
func NewClient(cfg Config) (*Client, error) {
	gateway, err := newHTTPGateway(cfg)
	if err != nil {
		return nil, err
	}
	return NewClientWithGateway(gateway, cfg.Logger), nil
}

// NewClientWithGateway creates a client on top of an existing Gateway.
// A nil logger defaults to a no-op logger.
func NewClientWithGateway(gateway Gateway, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		gateway: gateway,
		cache:   cache.New(),
		log:     log,
	}
}

// Register obtains the registry id for a schema under a subject, registering
// it if necessary.
//
// The resolution order is designed to avoid redundant network writes:
//
//  1. A cached (subject, schema) id is returned immediately, no network call.
//  2. CheckVersion asks whether the schema is already registered, possibly
//     by another process. This keeps read-only registry deployments working:
//     production code with read-only credentials can still resolve schemas
//     that CI/CD registered.
//  3. Only then is the schema submitted for registration.
//
// Concurrent Register calls for the same (subject, schema) pair within one
// Client are collapsed into a single network exchange. No cross-process
// locking is attempted; the registry assigns ids idempotently, so two
// processes racing to register the same schema receive the same id.
func (c *Client) Register(ctx context.Context, subject string, s *schema.Schema) (int, error) {
	if id, ok := c.cache.LookupID(subject, s); ok {
		return id, nil
	}

	key := subject + "\x00" + s.Fingerprint()
	id, err, _ := c.group.Do(key, func() (interface{}, error) {
		// A concurrent flight may have resolved it already.
		if id, ok := c.cache.LookupID(subject, s); ok {
			return id, nil
		}

		if sv, err := c.CheckVersion(ctx, subject, s); err != nil {
			return 0, err
		} else if sv != nil {
			return sv.SchemaID, nil
		}

		id, err := c.gateway.Register(ctx, subject, s)
		if err != nil {
			return 0, err
		}

		// register does not report a version, so only the id is cached.
		c.cache.RecordSubject(s, id, subject)
		c.log.Debug("schema registered",
			zap.String("subject", subject),
			zap.Int("schema_id", id),
		)
		return id, nil
	})
	if err != nil {
		return 0, err
	}
	return id.(int), nil
}

// CheckVersion reports whether a schema is already registered under a
// subject, returning its id and version if so and nil if not. Cached pairs
// are answered without a network call.
func (c *Client) CheckVersion(ctx context.Context, subject string, s *schema.Schema) (*SchemaVersion, error) {
	id, idCached := c.cache.LookupID(subject, s)
	version, versionCached := c.cache.LookupVersion(subject, s)
	if idCached && versionCached {
		return &SchemaVersion{
			Subject:  subject,
			SchemaID: id,
			Version:  version,
			Schema:   s,
		}, nil
	}

	sv, err := c.gateway.CheckVersion(ctx, subject, s)
	if err != nil || sv == nil {
		return nil, err
	}

	sv.Schema = c.cache.RecordVersion(s, sv.SchemaID, subject, sv.Version)
	return sv, nil
}

// GetByID returns the schema registered under a global id, or nil if the
// registry knows no such id. Results are cached; repeated lookups of the
// same id return the same Schema instance.
func (c *Client) GetByID(ctx context.Context, id int) (*schema.Schema, error) {
	if s, ok := c.cache.LookupSchema(id); ok {
		return s, nil
	}

	s, err := c.gateway.GetByID(ctx, id)
	if err != nil || s == nil {
		return nil, err
	}
	return c.cache.Record(s, id), nil
}

// GetSchema returns one version of a subject's schema, or nil if the subject
// or version does not exist. Use Latest for the most recent version.
func (c *Client) GetSchema(ctx context.Context, subject, version string) (*SchemaVersion, error) {
	sv, err := c.gateway.GetVersion(ctx, subject, version)
	if err != nil || sv == nil {
		return nil, err
	}

	sv.Schema = c.cache.RecordVersion(sv.Schema, sv.SchemaID, subject, sv.Version)
	return sv, nil
}

// GetLatestSchema returns the most recent schema registered under a subject,
// or nil if the subject does not exist.
func (c *Client) GetLatestSchema(ctx context.Context, subject string) (*SchemaVersion, error) {
	return c.GetSchema(ctx, subject, Latest)
}

// GetVersions lists the versions registered under a subject. An unknown
// subject yields an empty list, not an error.
func (c *Client) GetVersions(ctx context.Context, subject string) ([]int, error) {
	return c.gateway.GetVersions(ctx, subject)
}

// GetSubjects lists all registered subjects.
func (c *Client) GetSubjects(ctx context.Context) ([]string, error) {
	return c.gateway.GetSubjects(ctx)
}

// GetSubjectVersionsByID lists the (subject, version) pairs referencing a
// schema id, or nil if the id is unknown.
func (c *Client) GetSubjectVersionsByID(ctx context.Context, id int) ([]SubjectVersion, error) {
	return c.gateway.GetSubjectVersionsByID(ctx, id)
}

// DeleteVersion deletes one version of a subject and returns the deleted
// version number, or 0 when the subject or version does not exist.
//
// Local caches are deliberately left untouched: the registry keeps the
// schema id valid after version deletion, so previously encoded messages
// stay decodable.
func (c *Client) DeleteVersion(ctx context.Context, subject, version string) (int, error) {
	return c.gateway.DeleteVersion(ctx, subject, version)
}

// DeleteSubject deletes a subject and returns the versions removed. Caches
// are left untouched, see DeleteVersion.
func (c *Client) DeleteSubject(ctx context.Context, subject string) ([]int, error) {
	return c.gateway.DeleteSubject(ctx, subject)
}

// TestCompatibility checks a candidate schema against a registered version
// of a subject, Latest by default.
func (c *Client) TestCompatibility(ctx context.Context, subject, version string, s *schema.Schema) (bool, error) {
	return c.gateway.TestCompatibility(ctx, subject, version, s)
}

// UpdateCompatibility sets the compatibility level for a subject, or
// globally when subject is empty. The level is validated locally before any
// network call.
func (c *Client) UpdateCompatibility(ctx context.Context, level CompatibilityLevel, subject string) error {
	if !level.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCompatibilityLevel, level)
	}
	return c.gateway.UpdateCompatibility(ctx, level, subject)
}

// GetCompatibility reads the compatibility level for a subject, or the
// global one when subject is empty.
func (c *Client) GetCompatibility(ctx context.Context, subject string) (CompatibilityLevel, error) {
	return c.gateway.GetCompatibility(ctx, subject)
}
