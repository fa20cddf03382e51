package cursor

import (
	"errors"
	"testing"
)

func TestReadWidths(t *testing.T) {
	c := New([]byte{0x12, 0x34, 0x56, 0x78, 0x9A, 0xBC, 0xDE, 0xF0, 0xFF})

	if v, err := c.ReadU8(); err != nil || v != 0x12 {
		t.Errorf("ReadU8 = 0x%02X, %v, want 0x12", v, err)
	}
	if v, err := c.ReadU16(); err != nil || v != 0x3456 {
		t.Errorf("ReadU16 = 0x%04X, %v, want 0x3456", v, err)
	}
	if v, err := c.ReadU32(); err != nil || v != 0x789ABCDE {
		t.Errorf("ReadU32 = 0x%08X, %v, want 0x789ABCDE", v, err)
	}
	if v, err := c.ReadI16(); err != nil || v != -3856 {
		// 0xF0FF as two's complement
		t.Errorf("ReadI16 = %d, %v, want -3856", v, err)
	}
	if c.Remaining() != 0 {
		t.Errorf("Remaining = %d, want 0", c.Remaining())
	}
}

func TestSignedRead(t *testing.T) {
	c := New([]byte{0xFF, 0xFF, 0x00, 0x05})
	if v, err := c.ReadI16(); err != nil || v != -1 {
		t.Errorf("ReadI16 = %d, %v, want -1", v, err)
	}
	if v, err := c.ReadI16(); err != nil || v != 5 {
		t.Errorf("ReadI16 = %d, %v, want 5", v, err)
	}
}

func TestTruncatedReads(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		read func(c *Cursor) error
	}{
		{"u8 empty", nil, func(c *Cursor) error { _, err := c.ReadU8(); return err }},
		{"u16 short", []byte{0x01}, func(c *Cursor) error { _, err := c.ReadU16(); return err }},
		{"u32 short", []byte{0x01, 0x02, 0x03}, func(c *Cursor) error { _, err := c.ReadU32(); return err }},
		{"i16 short", []byte{0x01}, func(c *Cursor) error { _, err := c.ReadI16(); return err }},
		{"slice short", []byte{0x01, 0x02}, func(c *Cursor) error { _, err := c.Slice(3); return err }},
	}
	for _, tt := range tests {
		err := tt.read(New(tt.data))
		if !errors.Is(err, ErrTruncated) {
			t.Errorf("%s: err = %v, want ErrTruncated", tt.name, err)
		}
	}
}

func TestTruncatedReadKeepsPosition(t *testing.T) {
	c := New([]byte{0x01})
	if _, err := c.ReadU16(); !errors.Is(err, ErrTruncated) {
		t.Fatalf("ReadU16 err = %v, want ErrTruncated", err)
	}
	if c.Pos() != 0 {
		t.Errorf("Pos after failed read = %d, want 0", c.Pos())
	}
	if v, err := c.ReadU8(); err != nil || v != 0x01 {
		t.Errorf("ReadU8 = 0x%02X, %v, want 0x01", v, err)
	}
}

func TestSeek(t *testing.T) {
	c := New([]byte{0xAA, 0xBB, 0xCC})

	if err := c.Seek(2); err != nil {
		t.Fatalf("Seek(2) failed: %v", err)
	}
	if v, _ := c.ReadU8(); v != 0xCC {
		t.Errorf("read after seek = 0x%02X, want 0xCC", v)
	}

	// Seeking to the very end is allowed.
	if err := c.Seek(3); err != nil {
		t.Errorf("Seek(3) failed: %v", err)
	}
	if _, err := c.ReadU8(); !errors.Is(err, ErrTruncated) {
		t.Errorf("read at end err = %v, want ErrTruncated", err)
	}

	if err := c.Seek(4); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Seek(4) err = %v, want ErrOutOfRange", err)
	}
	if err := c.Seek(-1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Seek(-1) err = %v, want ErrOutOfRange", err)
	}
}

func TestSlice(t *testing.T) {
	c := New([]byte{0x01, 0x02, 0x03, 0x04})

	b, err := c.Slice(2)
	if err != nil {
		t.Fatalf("Slice(2) failed: %v", err)
	}
	if len(b) != 2 || b[0] != 0x01 || b[1] != 0x02 {
		t.Errorf("Slice(2) = %v, want [01 02]", b)
	}
	if c.Pos() != 2 {
		t.Errorf("Pos = %d, want 2", c.Pos())
	}

	// Zero-length slice is valid anywhere, including at the end.
	c.Seek(4)
	if b, err := c.Slice(0); err != nil || len(b) != 0 {
		t.Errorf("Slice(0) = %v, %v, want empty", b, err)
	}
}
