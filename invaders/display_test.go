package invaders

import "testing"

func TestDisplayTimerThreshold(t *testing.T) {
	var d displayTimer

	if _, fired := d.tick(cyclesPerHalfFrame - 1); fired {
		t.Fatal("timer fired before reaching the half-frame threshold")
	}

	ops, fired := d.tick(cyclesPerHalfFrame)
	if !fired {
		t.Fatal("timer did not fire at the half-frame threshold")
	}
	if ops != [2]byte{rst1, rst2} {
		t.Fatalf("tick() ops = %v, want [CF D7]", ops)
	}
}

func TestFramebufferRotation(t *testing.T) {
	var m memory

	// Set bit 0 of the first VRAM byte: memory row 0, bit 0. Memory row 0
	// is screen column 0, and within that row byte 31 (index 31) holds
	// the topmost 8 pixels, so bit 0 of byte 0 lands at the bottom row.
	m.write(vramStart, 0x01)

	img := m.framebuffer()

	x := 0
	y := frameHeight - 1
	if got := img.GrayAt(x, y); got != on {
		t.Fatalf("pixel (%d,%d) = %v, want white", x, y, got)
	}
	if got := img.GrayAt(0, 0); got != off {
		t.Fatalf("pixel (0,0) = %v, want black", got)
	}
}
