package chat

import (
	"bytes"
	"encoding/binary"
)

// headerSize is the width of a MessageFrame's big-endian length
// prefix.
const headerSize = 4

// EncodeFrame renders payload (already trimmed) as one wire frame: a
// 4-byte big-endian length followed by the payload itself.
func EncodeFrame(payload []byte) []byte {
	out := make([]byte, headerSize+len(payload))
	binary.BigEndian.PutUint32(out, uint32(len(payload)))
	copy(out[headerSize:], payload)
	return out
}

// trimToken strips leading/trailing whitespace the same way the wire
// framing does before a payload is sent.
func trimToken(b []byte) []byte {
	return bytes.TrimSpace(b)
}
