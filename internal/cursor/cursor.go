// Package cursor provides sequential reads of fixed-width big-endian
// integers from an in-memory byte slice, tracking the current position.
package cursor

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	// ErrTruncated is returned when fewer bytes remain than a read requires.
	ErrTruncated = errors.New("truncated input")

	// ErrOutOfRange is returned when a seek target lies outside the data.
	ErrOutOfRange = errors.New("offset out of range")
)

// Cursor is a sequential big-endian reader over a byte slice. It is not
// safe for concurrent use; give each goroutine its own Cursor.
type Cursor struct {
	data []byte
	pos  int
}

// New returns a Cursor positioned at the start of data.
func New(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Pos returns the current read position.
func (c *Cursor) Pos() int { return c.pos }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.data) - c.pos }

func (c *Cursor) need(n int) error {
	if c.Remaining() < n {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d",
			ErrTruncated, n, c.pos, c.Remaining())
	}
	return nil
}

// ReadU8 reads an unsigned 8-bit value.
func (c *Cursor) ReadU8() (uint8, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	v := c.data[c.pos]
	c.pos++
	return v, nil
}

// ReadU16 reads an unsigned big-endian 16-bit value.
func (c *Cursor) ReadU16() (uint16, error) {
	if err := c.need(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(c.data[c.pos:])
	c.pos += 2
	return v, nil
}

// ReadU32 reads an unsigned big-endian 32-bit value.
func (c *Cursor) ReadU32() (uint32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(c.data[c.pos:])
	c.pos += 4
	return v, nil
}

// ReadI16 reads a two's-complement big-endian 16-bit value.
func (c *Cursor) ReadI16() (int16, error) {
	v, err := c.ReadU16()
	return int16(v), err
}

// Seek repositions the cursor to an absolute offset. Seeking to the end
// of the data is allowed; any further read fails with ErrTruncated.
func (c *Cursor) Seek(offset int) error {
	if offset < 0 || offset > len(c.data) {
		return fmt.Errorf("%w: seek to %d in %d bytes", ErrOutOfRange, offset, len(c.data))
	}
	c.pos = offset
	return nil
}

// Slice returns the next length bytes and advances past them. The
// returned slice aliases the cursor's underlying data.
func (c *Cursor) Slice(length int) ([]byte, error) {
	if length < 0 {
		return nil, fmt.Errorf("%w: negative length %d", ErrOutOfRange, length)
	}
	if err := c.need(length); err != nil {
		return nil, err
	}
	b := c.data[c.pos : c.pos+length]
	c.pos += length
	return b, nil
}
