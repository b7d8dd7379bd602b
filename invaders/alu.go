package invaders

// parity reports whether the number of set bits in the low 8 bits of v is
// even, which is how the 8080 defines its P flag.
func parity(v byte) bool {
	v ^= v >> 4
	v ^= v >> 2
	v ^= v >> 1
	return v&1 == 0
}

// setZSP updates Z, S and P from the low 8 bits of a result. Every ALU
// primitive except DAD and the rotates funnels through this.
func (r *registers) setZSP(v byte) {
	r.f.set(flagZ, v == 0)
	r.f.set(flagS, v&0x80 != 0)
	r.f.set(flagP, parity(v))
}

// add performs A = A + x + cin, setting CY, AC, Z, S, P. Used by ADD/ADI
// (cin=0) and ADC/ACI (cin=carry).
func (r *registers) add(x byte, cin byte) {
	a := uint16(r.a)
	xx := uint16(x)
	cc := uint16(cin)

	result := a + xx + cc
	r.f.set(flagCY, result > 0xFF)
	r.f.set(flagAC, (a&0xF)+(xx&0xF)+cc > 0xF)

	r.a = byte(result)
	r.setZSP(r.a)
}

// sub performs A = A - x - bin via two's-complement addition, the same way
// the reference implementation does: CY from the addition means "no
// borrow" and must be inverted before it is stored, since the 8080's carry
// flag after SUB/SBB means "borrow occurred".
func (r *registers) sub(x byte, bin byte) {
	a := uint16(r.a)
	tc := uint16((^x)&0xFF) + uint16(1-bin)

	result := a + tc
	r.f.set(flagCY, result <= 0xFF)
	r.f.set(flagAC, (a&0xF)+(tc&0xF) > 0xF)

	r.a = byte(result)
	r.setZSP(r.a)
}

func (r *registers) ana(x byte) {
	ac := (r.a | x) & 0x08
	r.a &= x
	r.f.set(flagCY, false)
	r.f.set(flagAC, ac != 0)
	r.setZSP(r.a)
}

func (r *registers) xra(x byte) {
	r.a ^= x
	r.f.set(flagCY, false)
	r.f.set(flagAC, false)
	r.setZSP(r.a)
}

func (r *registers) ora(x byte) {
	r.a |= x
	r.f.set(flagCY, false)
	r.f.set(flagAC, false)
	r.setZSP(r.a)
}

// cmp discards its result, updating flags as if SUB had run.
func (r *registers) cmp(x byte) {
	saved := r.a
	r.sub(x, 0)
	r.a = saved
}

// inr/dcr leave CY untouched, unlike every other arithmetic primitive.
func (r *registers) inr(v byte) byte {
	result := (v + 1) & 0xFF
	r.f.set(flagAC, v&0xF == 0xF)
	r.setZSP(result)
	return result
}

func (r *registers) dcr(v byte) byte {
	result := (v - 1) & 0xFF
	r.f.set(flagAC, v&0xF != 0)
	r.setZSP(result)
	return result
}

// dad adds a register pair into HL, touching only CY.
func (r *registers) dad(v uint16) {
	hl := uint32(r.hl())
	sum := hl + uint32(v)
	r.f.set(flagCY, sum > 0xFFFF)
	r.setHL(uint16(sum))
}

// daa implements the decimal-adjust-accumulator algorithm from the Intel
// 8080 Programmer's Manual: the low-nibble correction is applied (and AC
// recomputed) before the high-nibble correction is even considered.
func (r *registers) daa() {
	lsb := r.a & 0x0F
	if lsb > 9 || r.f.has(flagAC) {
		r.f.set(flagAC, lsb+0x06 > 0x0F)
		r.a = r.a + 0x06
	}

	msb := r.a >> 4
	if msb > 9 || r.f.has(flagCY) {
		r.f.set(flagCY, true)
		r.a = r.a + 0x60
	}

	r.setZSP(r.a)
}

func (r *registers) rlc() {
	carry := r.a&0x80 != 0
	r.a = (r.a << 1)
	if carry {
		r.a |= 0x01
	}
	r.f.set(flagCY, carry)
}

func (r *registers) rrc() {
	carry := r.a&0x01 != 0
	r.a = r.a >> 1
	if carry {
		r.a |= 0x80
	}
	r.f.set(flagCY, carry)
}

func (r *registers) ral() {
	carryIn := r.f.has(flagCY)
	carryOut := r.a&0x80 != 0
	r.a = r.a << 1
	if carryIn {
		r.a |= 0x01
	}
	r.f.set(flagCY, carryOut)
}

func (r *registers) rar() {
	carryIn := r.f.has(flagCY)
	carryOut := r.a&0x01 != 0
	r.a = r.a >> 1
	if carryIn {
		r.a |= 0x80
	}
	r.f.set(flagCY, carryOut)
}
