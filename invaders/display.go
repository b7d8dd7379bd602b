package invaders

import (
	"image"
	"image/color"
)

// cyclesPerHalfFrame is 2,000,000 Hz / 120 Hz: the arcade ROM expects an
// interrupt every time the electron beam crosses the middle or the bottom
// of the screen, twice per 60 Hz frame.
const cyclesPerHalfFrame = 2000000 / 120

// displayTimer watches the cycle count the loop has accumulated since the
// last interrupt delivery and produces the pair of RST opcodes the arcade
// ROM's video refresh depends on.
type displayTimer struct{}

// rst1 (mid-frame) and rst2 (vblank) are the two single-byte RST
// instructions the timer enqueues.
const (
	rst1 = 0xCF
	rst2 = 0xD7
)

// tick reports whether cycles has crossed a half-frame boundary and, if so,
// the two interrupt opcodes to enqueue in order.
func (displayTimer) tick(cycles uint64) (ops [2]byte, fired bool) {
	if cycles < cyclesPerHalfFrame {
		return ops, false
	}
	return [2]byte{rst1, rst2}, true
}

// frameWidth and frameHeight are the dimensions of the rotated display; the
// cabinet's monitor is physically rotated 90° from the orientation VRAM is
// laid out in.
const (
	frameWidth  = 224
	frameHeight = 256
)

// on and off are the two pixel values the spec calls for: 1 = white pixel,
// 0 = black pixel.
var (
	on  = color.Gray{Y: 0xFF}
	off = color.Gray{Y: 0x00}
)

// framebuffer unpacks VRAM (0x2400-0x3FFF, 7168 bytes, one bit per pixel)
// into a 224x256 image, undoing the 90° rotation between how the hardware
// stores the bitmap and how it is displayed. VRAM is organized as 224
// memory-rows of 32 bytes (256 bits) each. For the byte at VRAM offset i,
// memory-row i/32 becomes screen column i/32, and its bit b (0 = LSB)
// lands on screen row (31-i%32)*8 + (7-b), so the first byte of a
// memory-row holds the bottom eight pixels of its column.
func (m *memory) framebuffer() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, frameWidth, frameHeight))

	for i := 0; i < vramEnd-vramStart; i++ {
		b := m[vramStart+i]
		row := i / 32
		x := row

		for bit := 0; bit < 8; bit++ {
			y := (31-i%32)*8 + (7 - bit)
			px := off
			if b&(1<<uint(bit)) != 0 {
				px = on
			}
			img.SetGray(x, y, px)
		}
	}

	return img
}
