package boltlib

import (
	"fmt"
	"image/color"

	"github.com/beholdnec/bltview/internal/cursor"
)

const paletteHeaderSize = 6

// Palette is a parsed palette resource: a 6-byte header followed by
// packed RGB triples. The header carries plane and color-count fields
// whose exact layout is unconfirmed; the raw bytes are kept for
// display.
type Palette struct {
	Header [paletteHeaderSize]byte
	Colors []color.RGBA
}

// ParsePalette parses a palette resource payload. Trailing bytes that
// do not form a full RGB triple are ignored.
func ParsePalette(payload []byte) (*Palette, error) {
	c := cursor.New(payload)
	hdr, err := c.Slice(paletteHeaderSize)
	if err != nil {
		return nil, fmt.Errorf("palette header: %w", err)
	}

	p := &Palette{}
	copy(p.Header[:], hdr)
	p.Colors = parseColors(c)
	return p, nil
}

// ParseColors parses a bare color-table resource: packed RGB triples
// with no header.
func ParseColors(payload []byte) []color.RGBA {
	return parseColors(cursor.New(payload))
}

func parseColors(c *cursor.Cursor) []color.RGBA {
	colors := make([]color.RGBA, 0, c.Remaining()/3)
	for c.Remaining() >= 3 {
		r, _ := c.ReadU8()
		g, _ := c.ReadU8()
		b, _ := c.ReadU8()
		colors = append(colors, color.RGBA{R: r, G: g, B: b, A: 0xFF})
	}
	return colors
}

// ColorTable returns a 256-entry palette for rendering, with the parsed
// colors loaded from index 0 and unset entries black.
func (p *Palette) ColorTable() color.Palette {
	pal := make(color.Palette, 256)
	for i := range pal {
		pal[i] = color.RGBA{A: 0xFF}
	}
	for i, cl := range p.Colors {
		if i >= len(pal) {
			break
		}
		pal[i] = cl
	}
	return pal
}

// TestPalette returns a generated RGB ramp usable when no palette
// resource has been loaded. The same 128-entry ramp fills both CLUT
// planes, so 7-bit indices resolve identically with either plane bit.
func TestPalette() color.Palette {
	pal := make(color.Palette, 256)
	for r := 0; r < 4; r++ {
		for g := 0; g < 8; g++ {
			for b := 0; b < 4; b++ {
				i := 8*4*r + 4*g + b
				pal[i] = color.RGBA{
					R: uint8(r * 255 / 3),
					G: uint8(g * 255 / 7),
					B: uint8(b * 255 / 3),
					A: 0xFF,
				}
			}
		}
	}
	copy(pal[128:], pal[:128])
	return pal
}
