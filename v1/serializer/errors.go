package serializer

import "errors"

var (
	// ErrTooShort is returned when a message is shorter than the five-byte
	// wire format header.
	ErrTooShort = errors.New("serializer: message too short for wire format header")

	// ErrBadMagicByte is returned when a message does not start with the
	// wire format magic byte.
	ErrBadMagicByte = errors.New("serializer: unknown magic byte")

	// ErrSchemaNotFound is returned when the registry has no schema for the
	// id referenced by a message or an Encode call.
	ErrSchemaNotFound = errors.New("serializer: schema id not registered")
)
