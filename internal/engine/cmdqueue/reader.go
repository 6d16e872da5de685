package cmdqueue

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrTruncated is returned for a record that runs past the end of the
// buffer.
var ErrTruncated = errors.New("truncated command record")

// Reader walks the records of a buffer in append order.
type Reader struct {
	data []byte
	off  int
}

// NewReader reads records from data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Next returns the next record. Running off the end reads as EndOfList.
func (r *Reader) Next() (ID, []byte, error) {
	if r.off+headerSize > len(r.data) {
		if r.off == len(r.data) {
			return EndOfList, nil, nil
		}
		return EndOfList, nil, ErrTruncated
	}
	id := ID(binary.LittleEndian.Uint32(r.data[r.off:]))
	size := int(binary.LittleEndian.Uint32(r.data[r.off+4:]))
	start := r.off + headerSize
	if start+size > len(r.data) {
		return id, nil, fmt.Errorf("%w: %v needs %d bytes", ErrTruncated, id, size)
	}
	r.off = start + size
	return id, r.data[start:r.off], nil
}

// Decode unpacks a payload into v, a pointer to a command struct.
func Decode(payload []byte, v any) error {
	if _, err := binary.Decode(payload, binary.LittleEndian, v); err != nil {
		return fmt.Errorf("decoding %T: %w", v, err)
	}
	return nil
}
