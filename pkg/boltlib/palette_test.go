package boltlib

import (
	"errors"
	"image/color"
	"testing"
)

func TestParsePalette(t *testing.T) {
	payload := []byte{
		0x00, 0x01, 0x02, 0x03, 0x04, 0x05, // header
		0xFF, 0x00, 0x00,
		0x00, 0xFF, 0x00,
		0x00, 0x00, 0xFF,
		0x80, 0x80, // trailing partial triple ignored
	}

	p, err := ParsePalette(payload)
	if err != nil {
		t.Fatalf("ParsePalette failed: %v", err)
	}
	if p.Header != [6]byte{0, 1, 2, 3, 4, 5} {
		t.Errorf("header = % X", p.Header)
	}
	if len(p.Colors) != 3 {
		t.Fatalf("got %d colors, want 3", len(p.Colors))
	}
	want := []color.RGBA{
		{R: 0xFF, A: 0xFF},
		{G: 0xFF, A: 0xFF},
		{B: 0xFF, A: 0xFF},
	}
	for i, c := range p.Colors {
		if c != want[i] {
			t.Errorf("color %d = %+v, want %+v", i, c, want[i])
		}
	}
}

func TestParsePaletteTruncatedHeader(t *testing.T) {
	if _, err := ParsePalette([]byte{1, 2, 3}); !errors.Is(err, ErrTruncatedInput) {
		t.Errorf("err = %v, want ErrTruncatedInput", err)
	}
}

func TestParseColors(t *testing.T) {
	got := ParseColors([]byte{0x10, 0x20, 0x30, 0x40, 0x50, 0x60})
	if len(got) != 2 {
		t.Fatalf("got %d colors, want 2", len(got))
	}
	if got[1] != (color.RGBA{R: 0x40, G: 0x50, B: 0x60, A: 0xFF}) {
		t.Errorf("color 1 = %+v", got[1])
	}
}

func TestColorTable(t *testing.T) {
	p := &Palette{Colors: []color.RGBA{{R: 0xAA, A: 0xFF}}}
	pal := p.ColorTable()
	if len(pal) != 256 {
		t.Fatalf("len = %d, want 256", len(pal))
	}
	if pal[0] != (color.RGBA{R: 0xAA, A: 0xFF}) {
		t.Errorf("entry 0 = %+v", pal[0])
	}
	// Unset entries are opaque black.
	if pal[255] != (color.RGBA{A: 0xFF}) {
		t.Errorf("entry 255 = %+v", pal[255])
	}
}

func TestTestPalette(t *testing.T) {
	pal := TestPalette()
	if len(pal) != 256 {
		t.Fatalf("len = %d, want 256", len(pal))
	}
	if pal[0] != (color.RGBA{A: 0xFF}) {
		t.Errorf("entry 0 = %+v, want black", pal[0])
	}
	if pal[127] != (color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}) {
		t.Errorf("entry 127 = %+v, want white", pal[127])
	}
	// Both CLUT planes carry the same ramp.
	for i := 0; i < 128; i++ {
		if pal[i] != pal[i+128] {
			t.Fatalf("entry %d differs between planes: %+v vs %+v", i, pal[i], pal[i+128])
		}
	}
}
