package chip8

// Display dimensions, in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// Display is the 64x32 monochrome framebuffer. One byte per pixel,
// row-major, 0 or 1. Sprites are combined into it with XOR; the only
// other mutation is a full clear.
//
// The host never writes to the display. It reads a copy through
// Snapshot, or individual pixels through Pixel, between steps.
type Display struct {
	pix [DisplayWidth * DisplayHeight]byte
}

// Pixel reports whether the pixel at (x, y) is lit. Coordinates wrap
// around the screen edges.
func (d *Display) Pixel(x, y int) bool {
	x &= DisplayWidth - 1
	y &= DisplayHeight - 1

	return d.pix[y*DisplayWidth+x] != 0
}

// Snapshot returns a copy of the framebuffer, one byte per pixel in
// row-major order.
func (d *Display) Snapshot() []byte {
	out := make([]byte, len(d.pix))
	copy(out, d.pix[:])

	return out
}

// clear turns every pixel off.
func (d *Display) clear() {
	d.pix = [DisplayWidth * DisplayHeight]byte{}
}

// blit XORs a sprite into the framebuffer at (x, y). Each sprite byte is
// one row of 8 pixels, MSB leftmost. Coordinates wrap modulo the screen
// size in both directions. Returns true if any lit pixel was turned off.
func (d *Display) blit(sprite []byte, x, y byte) bool {
	collision := false

	for row, bits := range sprite {
		py := (int(y) + row) % DisplayHeight

		for bit := 0; bit < 8; bit++ {
			if bits&(0x80>>uint(bit)) == 0 {
				continue
			}

			px := (int(x) + bit) % DisplayWidth
			i := py*DisplayWidth + px

			if d.pix[i] != 0 {
				collision = true
			}

			d.pix[i] ^= 1
		}
	}

	return collision
}
