package boltlib

import (
	"fmt"
	"image"
	"image/color"

	"github.com/beholdnec/bltview/internal/cursor"
)

// Image compression codes.
const (
	CompressionCLUT7 uint8 = 0 // uncompressed, one palette index per byte
	CompressionRL7   uint8 = 1 // run-length coded, see DecodeRL7
)

// CompressionName returns the display name for a compression code.
func CompressionName(code uint8) string {
	switch code {
	case CompressionCLUT7:
		return "CLUT7"
	case CompressionRL7:
		return "RL7"
	}
	return "Unknown"
}

// The parsed fields span 14 bytes of a 16-byte header prefix; pixel
// data begins at byte 0x18 regardless, leaving reserved bytes in
// between that must not be assumed contiguous with the parsed fields.
const (
	imageHeaderSize  = 16
	imagePixelOffset = 0x18
)

// ImageHeader is the fixed prefix of an image resource payload.
type ImageHeader struct {
	Compression uint8
	Unk1        uint8
	Unk2        uint16
	Unk4        uint16
	OffsetX     int16 // signed placement offsets
	OffsetY     int16
	Width       uint16
	Height      uint16
}

// ParseImageHeader parses the header prefix of an image payload.
func ParseImageHeader(payload []byte) (ImageHeader, error) {
	if len(payload) < imageHeaderSize {
		return ImageHeader{}, fmt.Errorf("%w: image header needs %d bytes, have %d",
			ErrTruncatedInput, imageHeaderSize, len(payload))
	}

	c := cursor.New(payload)
	var h ImageHeader
	h.Compression, _ = c.ReadU8()
	h.Unk1, _ = c.ReadU8()
	h.Unk2, _ = c.ReadU16()
	h.Unk4, _ = c.ReadU16()
	h.OffsetX, _ = c.ReadI16()
	h.OffsetY, _ = c.ReadI16()
	h.Width, _ = c.ReadU16()
	h.Height, _ = c.ReadU16()
	return h, nil
}

// DecodeImage parses an image resource payload and decodes its pixel
// data into a fresh buffer of Width*Height palette indices, row-major.
// The caller is expected to have identified the resource as an image
// via the type registry.
//
// Unknown compression codes fail with *UnsupportedCompressionError
// carrying the raw code.
func DecodeImage(payload []byte) (ImageHeader, []byte, error) {
	h, err := ParseImageHeader(payload)
	if err != nil {
		return ImageHeader{}, nil, err
	}

	switch h.Compression {
	case CompressionCLUT7:
		n := int(h.Width) * int(h.Height)
		if len(payload) < imagePixelOffset+n {
			return h, nil, fmt.Errorf("%w: CLUT7 pixel data needs %d bytes at offset %d, payload is %d",
				ErrTruncatedInput, n, imagePixelOffset, len(payload))
		}
		pix := make([]byte, n)
		copy(pix, payload[imagePixelOffset:])
		return h, pix, nil

	case CompressionRL7:
		if len(payload) < imagePixelOffset {
			return h, nil, fmt.Errorf("%w: RL7 pixel data starts at offset %d, payload is %d",
				ErrTruncatedInput, imagePixelOffset, len(payload))
		}
		pix, err := DecodeRL7(payload[imagePixelOffset:], int(h.Width), int(h.Height))
		if err != nil {
			return h, nil, err
		}
		return h, pix, nil

	default:
		return h, nil, &UnsupportedCompressionError{Code: h.Compression}
	}
}

// NewPaletted wraps a decoded pixel buffer as a stdlib paletted image
// for PNG export or display. The buffer is used directly, not copied.
func NewPaletted(h ImageHeader, pix []byte, pal color.Palette) *image.Paletted {
	return &image.Paletted{
		Pix:     pix,
		Stride:  int(h.Width),
		Rect:    image.Rect(0, 0, int(h.Width), int(h.Height)),
		Palette: pal,
	}
}
