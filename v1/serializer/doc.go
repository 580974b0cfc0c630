// Package serializer converts Go values to and from Confluent wire format
// messages backed by a schema registry.
//
// Wire Format:
//
// Every message is framed as:
//
//	[magic_byte (1 byte)] [schema_id (4 bytes, big-endian)] [payload]
//
// The magic byte is always 0x0, followed by the registry-assigned schema id,
// then the schema-less payload: Avro binary for AVRO schemas, UTF-8 JSON for
// JSON schemas. The framing is bit-exact with the Confluent serializers, so
// messages interoperate with consumers and producers in other languages.
//
// Basic Usage:
//
//	client, err := registry.NewClient(registry.Config{URL: "http://localhost:8081"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ser, err := serializer.New(serializer.Config{Registry: client})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	userSchema, _ := schema.ParseAvro(`{
//	    "type": "record",
//	    "name": "User",
//	    "fields": [
//	        {"name": "name", "type": "string"},
//	        {"name": "age", "type": "int"}
//	    ]
//	}`)
//
//	// Register-and-encode in one call.
//	msg, err := ser.EncodeWithSchema(ctx, "users-value", userSchema, map[string]interface{}{
//	    "name": "John Doe",
//	    "age":  30,
//	})
//
//	// Decode resolves the schema id embedded in the message.
//	record, err := ser.Decode(ctx, msg)
//	user := record.(map[string]interface{})
//
// Tombstones:
//
// Decode(nil) returns (nil, nil). Kafka log-compaction tombstones carry no
// payload and are passed through rather than rejected.
//
// Reader Schemas:
//
// A consumer can pin its own Avro schema via Config.ReaderSchema. Decoded
// records are then projected onto the reader's fields: fields the writer did
// not produce take the reader's defaults, writer fields the reader does not
// declare are dropped, and a reader field with no value and no default is an
// error. This gives forward-compatible consumption without coordinating
// deployments.
//
// Caching:
//
// Encoders and decoders are built once per schema id and reused for the
// lifetime of the MessageSerializer. Steady-state encode and decode paths
// perform no registry calls and no schema parsing.
package serializer
