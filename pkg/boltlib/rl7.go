package boltlib

import "fmt"

// DecodeRL7 decompresses an RL7-encoded indexed-color image into a
// buffer of exactly width*height palette indices, row-major with no
// padding between rows.
//
// RL7 is the CD-i run-length coding for 7-bit CLUTs, decoded one
// scanline at a time. The low 7 bits of a control byte are a palette
// index. If the high bit is set, the next byte is a run length, where
// zero means "fill to the end of the current line"; if clear, the byte
// encodes a single literal pixel. A run never crosses a line boundary;
// one that overshoots is clamped at the line end. Decoding stops once
// the final line is filled and any trailing input is ignored.
//
// If the input runs out before the buffer is filled the decode fails
// with ErrTruncatedStream; no partial buffer is returned.
func DecodeRL7(src []byte, width, height int) ([]byte, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("rl7: invalid dimensions %dx%d", width, height)
	}

	dst := make([]byte, width*height)
	pos := 0
	for y := 0; y < height; y++ {
		row := dst[y*width : (y+1)*width]
		x := 0
		for x < width {
			if pos >= len(src) {
				return nil, fmt.Errorf("%w: %d of %d pixels decoded",
					ErrTruncatedStream, y*width+x, width*height)
			}
			ctrl := src[pos]
			pos++

			color := ctrl & 0x7F
			n := 1
			if ctrl&0x80 != 0 {
				if pos >= len(src) {
					return nil, fmt.Errorf("%w: run length missing at input offset %d",
						ErrTruncatedStream, pos)
				}
				n = int(src[pos])
				pos++
				if n == 0 || n > width-x {
					n = width - x
				}
			}

			for i := 0; i < n; i++ {
				row[x+i] = color
			}
			x += n
		}
	}

	return dst, nil
}
