package registry

import (
	"context"

	"github.com/streamkit-io/schemaregistry/v1/schema"
)

// Latest addresses the most recent version registered under a subject.
const Latest = "latest"

// CompatibilityLevel is a schema compatibility level understood by the
// registry's config endpoints.
type CompatibilityLevel string

// Compatibility levels supported by the registry.
const (
	Backward           CompatibilityLevel = "BACKWARD"
	BackwardTransitive CompatibilityLevel = "BACKWARD_TRANSITIVE"
	Forward            CompatibilityLevel = "FORWARD"
	ForwardTransitive  CompatibilityLevel = "FORWARD_TRANSITIVE"
	Full               CompatibilityLevel = "FULL"
	FullTransitive     CompatibilityLevel = "FULL_TRANSITIVE"
	None               CompatibilityLevel = "NONE"
)

// Valid reports whether the level is one the registry accepts.
func (l CompatibilityLevel) Valid() bool {
	switch l {
	case Backward, BackwardTransitive, Forward, ForwardTransitive, Full, FullTransitive, None:
		return true
	}
	return false
}

// SchemaVersion describes one schema as registered under a subject.
type SchemaVersion struct {
	// Subject the schema is registered under.
	Subject string

	// SchemaID is the registry-assigned global identifier.
	SchemaID int

	// Version of the schema within the subject's history.
	Version int

	// Schema is the parsed schema.
	Schema *schema.Schema
}

// SubjectVersion is one (subject, version) pair referencing a schema id.
type SubjectVersion struct {
	Subject string `json:"subject"`
	Version int    `json:"version"`
}

// Gateway is the raw HTTP surface of a schema registry. It performs single
// network calls with no caching and no retries; HTTP 404 is reported as
// absence (nil or zero results with a nil error), every other non-2xx status
// is returned as an *APIError carrying the status code and response body.
//
// The default implementation is created by NewClient from a Config. Tests
// and alternative transports can supply their own and wrap it with
// NewClientWithGateway.
type Gateway interface {
	// Register submits a schema under a subject and returns its global id.
	// POST /subjects/{subject}/versions
	Register(ctx context.Context, subject string, s *schema.Schema) (int, error)

	// CheckVersion asks whether a schema is already registered under a
	// subject; nil means it is not.
	// POST /subjects/{subject}
	CheckVersion(ctx context.Context, subject string, s *schema.Schema) (*SchemaVersion, error)

	// GetByID fetches the schema for a global id; nil means no such id.
	// GET /schemas/ids/{id}
	GetByID(ctx context.Context, id int) (*schema.Schema, error)

	// GetVersion fetches one version of a subject ("latest" allowed);
	// nil means the subject or version does not exist.
	// GET /subjects/{subject}/versions/{version}
	GetVersion(ctx context.Context, subject, version string) (*SchemaVersion, error)

	// GetVersions lists the versions registered under a subject; an
	// unknown subject yields an empty list.
	// GET /subjects/{subject}/versions
	GetVersions(ctx context.Context, subject string) ([]int, error)

	// GetSubjects lists every registered subject.
	// GET /subjects
	GetSubjects(ctx context.Context) ([]string, error)

	// GetSubjectVersionsByID lists the (subject, version) pairs that
	// reference a schema id; nil means no such id.
	// GET /schemas/ids/{id}/versions
	GetSubjectVersionsByID(ctx context.Context, id int) ([]SubjectVersion, error)

	// DeleteVersion deletes one version of a subject and returns the
	// deleted version number, or 0 when the subject or version does not
	// exist. The schema id survives deletion and remains decodable.
	// DELETE /subjects/{subject}/versions/{version}
	DeleteVersion(ctx context.Context, subject, version string) (int, error)

	// DeleteSubject deletes a subject and returns the versions removed;
	// an unknown subject yields an empty list.
	// DELETE /subjects/{subject}
	DeleteSubject(ctx context.Context, subject string) ([]int, error)

	// TestCompatibility checks a candidate schema against one registered
	// version ("latest" allowed). An unknown subject or version reports
	// false.
	// POST /compatibility/subjects/{subject}/versions/{version}
	TestCompatibility(ctx context.Context, subject, version string, s *schema.Schema) (bool, error)

	// UpdateCompatibility sets the compatibility level for a subject, or
	// globally when subject is empty.
	// PUT /config/{subject}
	UpdateCompatibility(ctx context.Context, level CompatibilityLevel, subject string) error

	// GetCompatibility reads the compatibility level for a subject, or the
	// global one when subject is empty.
	// GET /config/{subject}
	GetCompatibility(ctx context.Context, subject string) (CompatibilityLevel, error)
}
