package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamkit-io/schemaregistry/v1/schema"
)

func avroRecord(t *testing.T, name string) *schema.Schema {
	t.Helper()
	s, err := schema.ParseAvro(fmt.Sprintf(
		`{"type":"record","name":%q,"fields":[{"name":"country","type":"string"}]}`, name))
	require.NoError(t, err)
	return s
}

func TestLookup_EmptyCache(t *testing.T) {
	c := New()
	s := avroRecord(t, "Country")

	_, ok := c.LookupID("countries", s)
	assert.False(t, ok)
	_, ok = c.LookupVersion("countries", s)
	assert.False(t, ok)
	_, ok = c.LookupSchema(1)
	assert.False(t, ok)
}

func TestRecord_IDOnly(t *testing.T) {
	c := New()
	s := avroRecord(t, "Country")

	c.Record(s, 7)

	got, ok := c.LookupSchema(7)
	require.True(t, ok)
	assert.Same(t, s, got)

	// No subject entry was written.
	_, ok = c.LookupID("countries", s)
	assert.False(t, ok)
}

func TestRecordSubject(t *testing.T) {
	c := New()
	s := avroRecord(t, "Country")

	c.RecordSubject(s, 7, "countries")

	id, ok := c.LookupID("countries", s)
	require.True(t, ok)
	assert.Equal(t, 7, id)

	// register never returns a version, so none is cached.
	_, ok = c.LookupVersion("countries", s)
	assert.False(t, ok)
}

func TestRecordVersion(t *testing.T) {
	c := New()
	s := avroRecord(t, "Country")

	c.RecordVersion(s, 7, "countries", 3)

	id, ok := c.LookupID("countries", s)
	require.True(t, ok)
	assert.Equal(t, 7, id)

	version, ok := c.LookupVersion("countries", s)
	require.True(t, ok)
	assert.Equal(t, 3, version)
}

func TestRecord_FirstWriteWinsPerID(t *testing.T) {
	c := New()
	first := avroRecord(t, "First")
	second := avroRecord(t, "Second")
	require.NotEqual(t, first.Fingerprint(), second.Fingerprint())

	c.Record(first, 7)
	stored := c.Record(second, 7)

	// The id entry keeps the first schema; the second write is discarded.
	assert.Same(t, first, stored)
	got, ok := c.LookupSchema(7)
	require.True(t, ok)
	assert.Same(t, first, got)
}

func TestRecord_ReusesCachedInstance(t *testing.T) {
	c := New()
	s := avroRecord(t, "Country")

	c.Record(s, 7)

	// A second parse of the same definition is a distinct pointer with the
	// same fingerprint; the cache keeps the original instance.
	duplicate := avroRecord(t, "Country")
	stored := c.RecordSubject(duplicate, 7, "countries")
	assert.Same(t, s, stored)

	id, ok := c.LookupID("countries", duplicate)
	require.True(t, ok)
	assert.Equal(t, 7, id)
}

func TestRecord_SameSchemaTwoSubjects(t *testing.T) {
	c := New()
	s := avroRecord(t, "Country")

	c.RecordSubject(s, 7, "subject-a")
	c.RecordSubject(s, 7, "subject-b")

	idA, ok := c.LookupID("subject-a", s)
	require.True(t, ok)
	idB, ok := c.LookupID("subject-b", s)
	require.True(t, ok)
	assert.Equal(t, idA, idB)
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := New()
	s := avroRecord(t, "Country")

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.RecordVersion(s, 7, "countries", 1)
			_, _ = c.LookupID("countries", s)
			_, _ = c.LookupSchema(7)
		}(i)
	}
	wg.Wait()

	got, ok := c.LookupSchema(7)
	require.True(t, ok)
	assert.Same(t, s, got)
}
