// Package cmdqueue is the append-only typed command buffer that carries a
// frame from the renderer front end to the device.
//
// A record is an 8 byte header, the command id and the payload size as
// little-endian uint32, followed by the payload. A buffer always keeps room
// at its tail for the swap and end-of-list records that close a frame.
package cmdqueue

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const headerSize = 8

// ReservedTail is the space every buffer keeps for SwapBuffers and
// EndOfList.
var ReservedTail = headerSize + binary.Size(SwapBuffersCmd{}) + headerSize

var (
	// ErrOverflow is returned when a record does not fit in what is left
	// of the buffer.
	ErrOverflow = errors.New("command buffer overflow")
	// ErrBadSize is returned for requests larger than the usable buffer.
	ErrBadSize = errors.New("command larger than command buffer")
	// ErrSealed is returned when appending to a closed frame.
	ErrSealed = errors.New("command buffer sealed")
)

// Buffer is one frame's command storage.
type Buffer struct {
	data    []byte
	used    int
	reserve int
	sealed  bool
}

// NewBuffer returns a buffer of capacity bytes, ReservedTail of which are
// kept for closing the frame. Smaller capacities are raised to ReservedTail.
func NewBuffer(capacity int) *Buffer {
	capacity = max(capacity, ReservedTail)
	return &Buffer{data: make([]byte, capacity), reserve: ReservedTail}
}

// Cap returns the buffer capacity in bytes.
func (b *Buffer) Cap() int { return len(b.data) }

// Used returns the number of bytes written.
func (b *Buffer) Used() int { return b.used }

// Sealed reports whether the frame has been closed.
func (b *Buffer) Sealed() bool { return b.sealed }

// Bytes returns the written records.
func (b *Buffer) Bytes() []byte { return b.data[:b.used] }

// Reset empties the buffer for a new frame.
func (b *Buffer) Reset() {
	b.used = 0
	b.sealed = false
}

// Alloc returns n bytes at the end of the buffer. It fails without
// changing the buffer when used+n would reach into the reserved tail.
func (b *Buffer) Alloc(n int) ([]byte, error) {
	if b.sealed {
		return nil, ErrSealed
	}
	if n < 0 || n > len(b.data)-b.reserve {
		return nil, fmt.Errorf("%w: %d bytes, %d usable", ErrBadSize, n, len(b.data)-b.reserve)
	}
	if b.used+n+b.reserve > len(b.data) {
		return nil, ErrOverflow
	}
	p := b.data[b.used : b.used+n : b.used+n]
	b.used += n
	return p, nil
}

// Append encodes a record. payload must be a fixed size struct or nil.
func (b *Buffer) Append(id ID, payload any) error {
	size := 0
	if payload != nil {
		size = binary.Size(payload)
		if size < 0 {
			return fmt.Errorf("encoding %v: payload %T is not fixed size", id, payload)
		}
	}
	p, err := b.Alloc(headerSize + size)
	if err != nil {
		return err
	}
	encodeRecord(p, id, payload)
	return nil
}

// Seal writes SwapBuffers and EndOfList into the reserved tail and closes
// the buffer.
func (b *Buffer) Seal(frame int) error {
	if b.sealed {
		return ErrSealed
	}
	swap := SwapBuffersCmd{Frame: int32(frame)}
	n := headerSize + binary.Size(swap)
	encodeRecord(b.data[b.used:b.used+n], SwapBuffers, swap)
	b.used += n
	encodeRecord(b.data[b.used:b.used+headerSize], EndOfList, nil)
	b.used += headerSize
	b.sealed = true
	return nil
}

func encodeRecord(p []byte, id ID, payload any) {
	binary.LittleEndian.PutUint32(p[0:], uint32(id))
	binary.LittleEndian.PutUint32(p[4:], uint32(len(p)-headerSize))
	if payload != nil && len(p) > headerSize {
		// sizes were checked by the caller
		_, _ = binary.Encode(p[headerSize:], binary.LittleEndian, payload)
	}
}
