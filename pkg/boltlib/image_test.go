package boltlib

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

// buildImagePayload assembles an image resource payload: the 16-byte
// header prefix, 8 reserved bytes, then pixel data at offset 0x18.
func buildImagePayload(compression uint8, offX, offY int16, w, h uint16, pixels []byte) []byte {
	buf := make([]byte, imagePixelOffset+len(pixels))
	buf[0] = compression
	buf[1] = 0x42
	binary.BigEndian.PutUint16(buf[2:], 0x1234)
	binary.BigEndian.PutUint16(buf[4:], 0x5678)
	binary.BigEndian.PutUint16(buf[6:], uint16(offX))
	binary.BigEndian.PutUint16(buf[8:], uint16(offY))
	binary.BigEndian.PutUint16(buf[10:], w)
	binary.BigEndian.PutUint16(buf[12:], h)
	copy(buf[imagePixelOffset:], pixels)
	return buf
}

func TestParseImageHeader(t *testing.T) {
	payload := buildImagePayload(CompressionRL7, -5, 17, 320, 200, nil)

	h, err := ParseImageHeader(payload)
	if err != nil {
		t.Fatalf("ParseImageHeader failed: %v", err)
	}
	if h.Compression != CompressionRL7 {
		t.Errorf("Compression = %d, want %d", h.Compression, CompressionRL7)
	}
	if h.Unk1 != 0x42 || h.Unk2 != 0x1234 || h.Unk4 != 0x5678 {
		t.Errorf("reserved fields = %02X %04X %04X", h.Unk1, h.Unk2, h.Unk4)
	}
	if h.OffsetX != -5 || h.OffsetY != 17 {
		t.Errorf("offsets = (%d, %d), want (-5, 17)", h.OffsetX, h.OffsetY)
	}
	if h.Width != 320 || h.Height != 200 {
		t.Errorf("dimensions = %dx%d, want 320x200", h.Width, h.Height)
	}
}

func TestParseImageHeaderTruncated(t *testing.T) {
	if _, err := ParseImageHeader(make([]byte, imageHeaderSize-1)); !errors.Is(err, ErrTruncatedInput) {
		t.Errorf("err = %v, want ErrTruncatedInput", err)
	}
}

// The canonical end-to-end case: one directory "MAIN" with a 40-byte
// CLUT7 image resource at offset 1024.
func TestLoadAndDecodeCLUT7Image(t *testing.T) {
	pixels := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	payload := buildImagePayload(CompressionCLUT7, 0, 0, 4, 2, pixels)
	if len(payload) != 40 {
		t.Fatalf("payload length = %d, want 40", len(payload))
	}

	// Lay the file out by hand to pin the payload at offset 1024.
	const payloadOff = 1024
	total := payloadOff + len(payload)
	data := make([]byte, total)
	binary.BigEndian.PutUint32(data[0:], magicBOLT)
	binary.BigEndian.PutUint16(data[4:], 0x0101)
	binary.BigEndian.PutUint16(data[6:], 1)
	binary.BigEndian.PutUint32(data[8:], uint32(total))

	copy(data[fileHeaderSize:], "MAIN")
	binary.BigEndian.PutUint32(data[fileHeaderSize+4:], 1)
	binary.BigEndian.PutUint32(data[fileHeaderSize+8:], 32)

	binary.BigEndian.PutUint16(data[32:], 0x0001)
	binary.BigEndian.PutUint16(data[34:], 8)
	binary.BigEndian.PutUint32(data[36:], payloadOff)
	binary.BigEndian.PutUint32(data[40:], uint32(len(payload)))
	copy(data[48:68], "BACKDROP")
	copy(data[payloadOff:], payload)

	ct, err := openBytes(t, data)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	res, got, err := ct.LoadResource(0x0001)
	if err != nil {
		t.Fatalf("LoadResource failed: %v", err)
	}
	if res.Type != 8 || len(got) != 40 {
		t.Fatalf("descriptor = %+v, payload %d bytes", res, len(got))
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("payload mismatch")
	}

	h, pix, err := DecodeImage(got)
	if err != nil {
		t.Fatalf("DecodeImage failed: %v", err)
	}
	if h.Width != 4 || h.Height != 2 {
		t.Errorf("dimensions = %dx%d, want 4x2", h.Width, h.Height)
	}
	if !bytes.Equal(pix, pixels) {
		t.Errorf("pixels = % X, want % X", pix, pixels)
	}
}

func TestDecodeImageCLUT7IsLiteralSlice(t *testing.T) {
	pixels := []byte{9, 8, 7, 6, 5, 4}
	payload := buildImagePayload(CompressionCLUT7, 0, 0, 3, 2, pixels)

	_, pix, err := DecodeImage(payload)
	if err != nil {
		t.Fatalf("DecodeImage failed: %v", err)
	}
	if !bytes.Equal(pix, payload[imagePixelOffset:imagePixelOffset+6]) {
		t.Errorf("pixels = % X, want literal slice % X", pix, pixels)
	}

	// The buffer is a fresh copy, not an alias into the payload.
	pix[0] = 0xEE
	if payload[imagePixelOffset] != 9 {
		t.Errorf("decode aliased the payload")
	}
}

func TestDecodeImageCLUT7Truncated(t *testing.T) {
	payload := buildImagePayload(CompressionCLUT7, 0, 0, 4, 2, []byte{1, 2, 3}) // needs 8

	if _, _, err := DecodeImage(payload); !errors.Is(err, ErrTruncatedInput) {
		t.Errorf("err = %v, want ErrTruncatedInput", err)
	}
}

func TestDecodeImageRL7(t *testing.T) {
	// 4x2: line 0 filled with 0x11, line 1 literal 1,2 then run of 3,3.
	stream := []byte{0x91, 0x00, 0x01, 0x02, 0x83, 0x02}
	payload := buildImagePayload(CompressionRL7, 0, 0, 4, 2, stream)

	h, pix, err := DecodeImage(payload)
	if err != nil {
		t.Fatalf("DecodeImage failed: %v", err)
	}
	if h.Compression != CompressionRL7 {
		t.Errorf("Compression = %d", h.Compression)
	}
	want := []byte{0x11, 0x11, 0x11, 0x11, 0x01, 0x02, 0x03, 0x03}
	if !bytes.Equal(pix, want) {
		t.Errorf("pixels = % X, want % X", pix, want)
	}
}

func TestDecodeImageRL7Truncated(t *testing.T) {
	// The compressed stream ends after the first line of two.
	payload := buildImagePayload(CompressionRL7, 0, 0, 4, 2, []byte{0x91, 0x00})

	_, _, err := DecodeImage(payload)
	if !errors.Is(err, ErrTruncatedStream) {
		t.Errorf("err = %v, want ErrTruncatedStream", err)
	}
}

func TestDecodeImageUnsupportedCompression(t *testing.T) {
	payload := buildImagePayload(9, 0, 0, 2, 2, []byte{0, 0, 0, 0})

	_, _, err := DecodeImage(payload)
	var uc *UnsupportedCompressionError
	if !errors.As(err, &uc) {
		t.Fatalf("err = %v, want *UnsupportedCompressionError", err)
	}
	if uc.Code != 9 {
		t.Errorf("Code = %d, want 9", uc.Code)
	}
}

func TestDecodeImageIdempotent(t *testing.T) {
	stream := []byte{0x91, 0x00, 0x92, 0x00}
	payload := buildImagePayload(CompressionRL7, 0, 0, 5, 2, stream)

	_, a, err := DecodeImage(payload)
	if err != nil {
		t.Fatalf("DecodeImage failed: %v", err)
	}
	_, b, err := DecodeImage(payload)
	if err != nil {
		t.Fatalf("DecodeImage failed: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Errorf("repeated decode differs")
	}
}

func TestCompressionName(t *testing.T) {
	if got := CompressionName(CompressionCLUT7); got != "CLUT7" {
		t.Errorf("CompressionName(0) = %q", got)
	}
	if got := CompressionName(CompressionRL7); got != "RL7" {
		t.Errorf("CompressionName(1) = %q", got)
	}
	if got := CompressionName(200); got != "Unknown" {
		t.Errorf("CompressionName(200) = %q", got)
	}
}
