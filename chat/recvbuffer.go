package chat

import "encoding/binary"

// recvStage is the state machine a connection's in-progress frame
// moves through.
type recvStage int

const (
	stageHeaderPending recvStage = iota
	stageBodyPending
)

// ReceiveBuffer accumulates one in-progress frame: the 4-byte header
// first, then exactly that many body bytes. Grounded on recv_buf.c,
// generalized to also own the header bytes (the original kept the
// header in a separate fixed buffer read by the caller).
type ReceiveBuffer struct {
	stage  recvStage
	header [headerSize]byte
	hpos   int

	body []byte
	pos  int
}

// NeedsBytes returns the slice the next non-blocking read should fill,
// and how many more bytes are needed to complete the current stage.
func (b *ReceiveBuffer) NeedsBytes() ([]byte, int) {
	switch b.stage {
	case stageHeaderPending:
		return b.header[b.hpos:], headerSize - b.hpos
	default:
		return b.body[b.pos:], len(b.body) - b.pos
	}
}

// RecordRead advances the buffer by n bytes read into the slice
// NeedsBytes last returned, transitioning HEADER_PENDING -> BODY_PENDING
// when the length prefix completes.
func (b *ReceiveBuffer) RecordRead(n int) {
	switch b.stage {
	case stageHeaderPending:
		b.hpos += n
		if b.hpos >= headerSize {
			length := binary.BigEndian.Uint32(b.header[:])
			b.body = make([]byte, length)
			b.pos = 0
			b.stage = stageBodyPending
		}
	default:
		b.pos += n
	}
}

// Ready reports whether a full frame body has been accumulated.
func (b *ReceiveBuffer) Ready() bool {
	return b.stage == stageBodyPending && b.pos >= len(b.body)
}

// Take returns the completed frame's payload and resets the buffer to
// HEADER_PENDING for the next frame.
func (b *ReceiveBuffer) Take() []byte {
	payload := b.body
	b.stage = stageHeaderPending
	b.hpos = 0
	b.body = nil
	b.pos = 0
	return payload
}
