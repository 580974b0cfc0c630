// Package registry provides a caching client for Confluent Schema Registry.
//
// The client resolves schemas to registry-assigned ids and back again, and
// manages subjects, versions and compatibility levels over the registry's
// REST API. All lookups and registrations are cached in-memory for the
// lifetime of the client, so steady-state producers and consumers generate
// no registry traffic at all.
//
// Core Features:
//   - Schema registration with register-or-reuse semantics
//   - Schema retrieval by id, by subject version, or latest
//   - Subject and version listing and deletion
//   - Compatibility testing and per-subject compatibility configuration
//   - Basic auth, TLS and custom header support
//
// Basic Usage:
//
//	import (
//	    "github.com/streamkit-io/schemaregistry/v1/registry"
//	    "github.com/streamkit-io/schemaregistry/v1/schema"
//	)
//
//	client, err := registry.NewClient(registry.Config{
//	    URL:      "http://localhost:8081",
//	    Username: "user",     // Optional
//	    Password: "password", // Optional
//	    Timeout:  10 * time.Second,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	userSchema, err := schema.ParseAvro(`{
//	    "type": "record",
//	    "name": "User",
//	    "fields": [
//	        {"name": "name", "type": "string"},
//	        {"name": "age", "type": "int"}
//	    ]
//	}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Register the schema. Repeated calls with the same subject and
//	// schema are served from the cache.
//	id, err := client.Register(ctx, "users-value", userSchema)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Resolve an id observed on the wire back to its schema.
//	s, err := client.GetByID(ctx, id)
//
//	// Check whether a changed schema would be accepted.
//	ok, err := client.TestCompatibility(ctx, "users-value", registry.Latest, changed)
//
// Using with FX:
//
//	app := fx.New(
//	    registry.FXModule,
//	    fx.Provide(
//	        func() registry.Config {
//	            return registry.Config{
//	                URL:      os.Getenv("SCHEMA_REGISTRY_URL"),
//	                Username: os.Getenv("SCHEMA_REGISTRY_USER"),
//	                Password: os.Getenv("SCHEMA_REGISTRY_PASSWORD"),
//	            }
//	        },
//	    ),
//	    // Your application code that uses *registry.Client
//	)
//
// Absence vs failure:
//
// Lookup operations distinguish "does not exist" from "could not find out".
// An unknown id, subject or version yields a nil result (or an empty list)
// and a nil error; transport failures and non-404 registry errors yield a
// non-nil error. Callers never need to inspect errors to detect absence.
//
// Schema Caching:
//
// The client caches schemas by id and by (subject, schema) pair to minimize
// network calls. Caches are thread-safe, append-only and maintained
// in-memory for the lifetime of the client. Deleting a subject or version
// does not invalidate cached entries: the registry keeps schema ids
// resolvable after deletion, so messages already on the wire stay
// decodable.
package registry
