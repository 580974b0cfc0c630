package cache

import (
	"sync"

	"github.com/streamkit-io/schemaregistry/v1/schema"
)

// subjectKey identifies a schema within one subject. Schemas are keyed by
// fingerprint so that textual variations of the same schema share an entry.
type subjectKey struct {
	subject     string
	fingerprint string
}

// Cache holds the three schema maps shared by one client instance:
// id to schema, (subject, schema) to id and (subject, schema) to version.
//
// The id map is append-only with first-write-wins semantics: the registry
// guarantees that an id maps to one immutable schema, so once an id is
// cached the stored Schema is never replaced. That also keeps LookupSchema
// reference-stable for repeated calls.
//
// Entries are never evicted. Registries hold a bounded, human-managed set of
// schemas, so process-lifetime growth is accepted.
//
// All methods are safe for concurrent use.
type Cache struct {
	mu sync.RWMutex

	idToSchema             map[int]*schema.Schema
	subjectSchemaToID      map[subjectKey]int
	subjectSchemaToVersion map[subjectKey]int
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		idToSchema:             make(map[int]*schema.Schema),
		subjectSchemaToID:      make(map[subjectKey]int),
		subjectSchemaToVersion: make(map[subjectKey]int),
	}
}

// LookupID returns the cached schema id for a (subject, schema) pair.
func (c *Cache) LookupID(subject string, s *schema.Schema) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.subjectSchemaToID[subjectKey{subject, s.Fingerprint()}]
	return id, ok
}

// LookupVersion returns the cached version for a (subject, schema) pair.
func (c *Cache) LookupVersion(subject string, s *schema.Schema) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	version, ok := c.subjectSchemaToVersion[subjectKey{subject, s.Fingerprint()}]
	return version, ok
}

// LookupSchema returns the cached schema for an id.
func (c *Cache) LookupSchema(id int) (*schema.Schema, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.idToSchema[id]
	return s, ok
}

// Record caches a schema under its registry id.
// It returns the schema actually stored: when the id is already cached the
// existing Schema is kept and returned, avoiding two in-memory copies of the
// same logical schema.
func (c *Cache) Record(s *schema.Schema, id int) *schema.Schema {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.record(s, id)
}

// RecordSubject caches a schema under its id and additionally records the
// (subject, schema) to id association. The id entry is written first so the
// subject entry never references an unknown id.
func (c *Cache) RecordSubject(s *schema.Schema, id int, subject string) *schema.Schema {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := c.record(s, id)
	c.subjectSchemaToID[subjectKey{subject, stored.Fingerprint()}] = id
	return stored
}

// RecordVersion caches a schema under its id and records both the id and the
// version for the (subject, schema) pair.
func (c *Cache) RecordVersion(s *schema.Schema, id int, subject string, version int) *schema.Schema {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := c.record(s, id)
	key := subjectKey{subject, stored.Fingerprint()}
	c.subjectSchemaToID[key] = id
	c.subjectSchemaToVersion[key] = version
	return stored
}

// record must be called with the write lock held.
func (c *Cache) record(s *schema.Schema, id int) *schema.Schema {
	if existing, ok := c.idToSchema[id]; ok {
		return existing
	}
	c.idToSchema[id] = s
	return s
}
