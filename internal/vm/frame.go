package vm

import "strings"

// Frame is the monochrome framebuffer, indexed by row and column.
type Frame [Height][Width]bool

// Clear turns off every pixel.
func (f *Frame) Clear() {
	*f = Frame{}
}

// Pixel returns whether the pixel at the given column and row is set.
// Coordinates wrap around the screen edges.
func (f *Frame) Pixel(col, row int) bool {
	return f[wrap(row, Height)][wrap(col, Width)]
}

// DrawSprite XORs the sprite onto the frame starting at the given column and
// row. Every sprite byte is one row of 8 pixels, most significant bit first.
// Start coordinates and every drawn pixel wrap around the screen edges, no
// pixel is ever clipped. It returns whether a set sprite bit turned off a
// previously set pixel.
func (f *Frame) DrawSprite(col, row uint8, sprite []byte) bool {
	startCol := int(col) % Width
	startRow := int(row) % Height

	collision := false
	for y, data := range sprite {
		r := (startRow + y) % Height
		for x := range 8 {
			if data&(0x80>>x) == 0 {
				continue
			}

			c := (startCol + x) % Width
			if f[r][c] {
				collision = true
			}
			f[r][c] = !f[r][c]
		}
	}
	return collision
}

// String renders the frame as text, one line per row, using '#' for set and
// '.' for unset pixels.
func (f *Frame) String() string {
	var sb strings.Builder
	sb.Grow(Height * (Width + 1))

	for row := range f {
		for _, set := range f[row] {
			if set {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func wrap(value, size int) int {
	value %= size
	if value < 0 {
		value += size
	}
	return value
}
