package schema

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const deploymentAvro = `{
	"type": "record",
	"name": "AvroDeployment",
	"namespace": "com.kubertenes",
	"fields": [
		{"name": "image", "type": "string"},
		{"name": "replicas", "type": "int"},
		{"name": "port", "type": "int"}
	]
}`

const deploymentJSON = `{
	"type": "object",
	"title": "JsonDeployment",
	"properties": {
		"image": {"type": "string"},
		"replicas": {"type": "integer"},
		"port": {"type": "integer"}
	},
	"required": ["image", "replicas", "port"]
}`

func TestParseAvro(t *testing.T) {
	s, err := ParseAvro(deploymentAvro)
	require.NoError(t, err)

	assert.Equal(t, TypeAvro, s.Type())
	assert.Equal(t, "AvroDeployment", s.Name())
	assert.Equal(t, deploymentAvro, s.Raw())
	assert.NotNil(t, s.Codec())
	assert.Nil(t, s.JSONValidator())
	assert.Len(t, s.Fingerprint(), 64)
}

func TestParseJSON(t *testing.T) {
	s, err := ParseJSON(deploymentJSON)
	require.NoError(t, err)

	assert.Equal(t, TypeJSON, s.Type())
	assert.Equal(t, "JsonDeployment", s.Name())
	assert.NotNil(t, s.JSONValidator())
	assert.Nil(t, s.Codec())
}

func TestParse_UnsupportedType(t *testing.T) {
	_, err := Parse(deploymentAvro, Type("PROTOBUF"))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestParseAvro_InvalidSchema(t *testing.T) {
	_, err := ParseAvro(`{"type": "record", "name": "Broken"}`)
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, TypeAvro, parseErr.Type)
}

func TestParseAvro_UnknownNamedType(t *testing.T) {
	_, err := ParseAvro(`{
		"type": "record",
		"name": "UsesUnknown",
		"fields": [{"name": "ref", "type": "NoSuchType"}]
	}`)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
}

func TestParseJSON_FailsMetaSchema(t *testing.T) {
	// "type" must be a string or array of strings per the meta-schema.
	_, err := ParseJSON(`{"type": 42}`)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, TypeJSON, parseErr.Type)
}

func TestFingerprint_IgnoresFormatting(t *testing.T) {
	a, err := ParseAvro(`{"type":"record","name":"C","fields":[{"name":"country","type":"string"}]}`)
	require.NoError(t, err)

	// Same schema with different whitespace and key order.
	b, err := ParseAvro(`{
		"fields": [ {"type": "string", "name": "country"} ],
		"name": "C",
		"type": "record"
	}`)
	require.NoError(t, err)

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Canonical(), b.Canonical())
}

func TestFingerprint_PreservesDefaults(t *testing.T) {
	a, err := ParseAvro(`{"type":"record","name":"C","fields":[{"name":"n","type":"int","default":1}]}`)
	require.NoError(t, err)
	b, err := ParseAvro(`{"type":"record","name":"C","fields":[{"name":"n","type":"int","default":2}]}`)
	require.NoError(t, err)

	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
	assert.False(t, a.Equal(b))
}

func TestEqual_Nil(t *testing.T) {
	s, err := ParseAvro(deploymentAvro)
	require.NoError(t, err)
	assert.False(t, s.Equal(nil))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deployment.avsc")
	require.NoError(t, os.WriteFile(path, []byte(deploymentAvro), 0o600))

	s, err := Load(path, TypeAvro)
	require.NoError(t, err)
	assert.Equal(t, "AvroDeployment", s.Name())

	_, err = Load(filepath.Join(dir, "missing.avsc"), TypeAvro)
	assert.Error(t, err)
}

func TestExpand_InlinesNamedTypes(t *testing.T) {
	s, err := ParseAvro(`{
		"type": "record",
		"name": "Outer",
		"fields": [
			{"name": "first", "type": {
				"type": "record",
				"name": "Inner",
				"fields": [{"name": "x", "type": "int"}]
			}},
			{"name": "second", "type": "Inner"}
		]
	}`)
	require.NoError(t, err)

	expanded, err := s.Expand()
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(expanded.Canonical()), &doc))

	fields := doc["fields"].([]interface{})
	second := fields[1].(map[string]interface{})

	inner, ok := second["type"].(map[string]interface{})
	require.True(t, ok, "reference to Inner should be replaced by its full definition")
	assert.Equal(t, "Inner", inner["name"])
	assert.Equal(t, "record", inner["type"])
}

func TestExpand_NamespacedReference(t *testing.T) {
	s, err := ParseAvro(`{
		"type": "record",
		"name": "Outer",
		"namespace": "com.example",
		"fields": [
			{"name": "first", "type": {
				"type": "enum",
				"name": "Color",
				"symbols": ["RED", "GREEN"]
			}},
			{"name": "second", "type": "com.example.Color"}
		]
	}`)
	require.NoError(t, err)

	expanded, err := s.Expand()
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(expanded.Canonical()), &doc))

	fields := doc["fields"].([]interface{})
	second := fields[1].(map[string]interface{})

	enum, ok := second["type"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Color", enum["name"])
}

func TestExpand_Memoized(t *testing.T) {
	s, err := ParseAvro(deploymentAvro)
	require.NoError(t, err)

	first, err := s.Expand()
	require.NoError(t, err)
	second, err := s.Expand()
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestExpand_JSONSchema(t *testing.T) {
	s, err := ParseJSON(deploymentJSON)
	require.NoError(t, err)

	_, err = s.Expand()
	assert.ErrorIs(t, err, ErrNotAvro)
}
