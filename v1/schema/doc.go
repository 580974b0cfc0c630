// Package schema wraps raw Avro and JSON Schema definitions with a canonical
// form and a stable content fingerprint.
//
// The registry server round-trips schemas through its own canonical JSON
// representation, so client-side caches must compare schemas by content, not
// by surface text. A Schema computes its canonical form once at construction
// (the definition reparsed and re-serialized with sorted keys) and derives a
// SHA-256 fingerprint from it; two Schema values are equal exactly when their
// canonical forms serialize identically.
//
// Basic Usage:
//
//	import "github.com/streamkit-io/schemaregistry/v1/schema"
//
//	avroSchema, err := schema.ParseAvro(`{
//	    "type": "record",
//	    "name": "Deployment",
//	    "fields": [
//	        {"name": "image", "type": "string"},
//	        {"name": "replicas", "type": "int"}
//	    ]
//	}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(avroSchema.Name())        // "Deployment"
//	fmt.Println(avroSchema.Fingerprint()) // stable across restarts
//
// JSON schemas are validated against the draft-07 meta-schema:
//
//	jsonSchema, err := schema.ParseJSON(`{
//	    "type": "object",
//	    "title": "Deployment",
//	    "properties": {
//	        "image": {"type": "string"}
//	    }
//	}`)
//
// Avro schemas additionally support expansion of named-type references via
// Expand, which inlines every reference to a previously defined record, enum
// or fixed type.
package schema
