// Package cache implements the in-memory schema cache shared by the registry
// client and the serializers.
//
// The cache models the registry server's own guarantees: a schema id maps to
// exactly one immutable schema for all time, so id entries follow
// first-write-wins semantics and are never evicted. Deleting a subject or
// version on the server does not purge cache entries either; the id remains
// decodable by design.
//
// All state is process-lifetime and scoped to one client instance.
package cache
