package serializer

import (
	"encoding/binary"
	"fmt"
)

// Confluent wire format: one magic byte, then the schema id as a big-endian
// uint32, then the schema-less payload.
const (
	magicByte  = 0x0
	headerSize = 5
)

// appendHeader appends the five-byte wire format header to buf.
func appendHeader(buf []byte, schemaID int) []byte {
	var header [headerSize]byte
	header[0] = magicByte
	binary.BigEndian.PutUint32(header[1:], uint32(schemaID))
	return append(buf, header[:]...)
}

// splitHeader validates the wire format header and returns the schema id and
// the payload that follows it. The payload aliases msg, no copy is made.
func splitHeader(msg []byte) (int, []byte, error) {
	if len(msg) < headerSize {
		return 0, nil, fmt.Errorf("%w: expected at least %d bytes, got %d", ErrTooShort, headerSize, len(msg))
	}
	if msg[0] != magicByte {
		return 0, nil, fmt.Errorf("%w: expected 0x%x, got 0x%x", ErrBadMagicByte, magicByte, msg[0])
	}
	return int(binary.BigEndian.Uint32(msg[1:headerSize])), msg[headerSize:], nil
}
