package invaders

// reg8 names the eight 8080 operand encodings used by MOV/MVI/ALU-with-reg
// opcodes. The ordering matches the 3-bit field in the opcode byte:
// 000=B 001=C 010=D 011=E 100=H 101=L 110=M 111=A.
type reg8 byte

const (
	regB reg8 = iota
	regC
	regD
	regE
	regH
	regL
	regM
	regA
)

// regPair names the four 16-bit register-pair encodings used by the 2-bit
// RP field: 00=BC 01=DE 10=HL 11=SP (or PSW for PUSH/POP).
type regPair byte

const (
	pairBC regPair = iota
	pairDE
	pairHL
	pairSP
)

// flags packs Z, S, P, CY and AC into a single byte using the 8080's PSW
// layout (LSB to MSB): CY, 1, P, 0, AC, 0, Z, S.
type flags byte

const (
	flagCY flags = 1 << 0
	flagP  flags = 1 << 2
	flagAC flags = 1 << 4
	flagZ  flags = 1 << 6
	flagS  flags = 1 << 7

	flagsAlwaysOne  flags = 1 << 1
	flagsAlwaysZero flags = (1 << 3) | (1 << 5)
)

func (f flags) has(bit flags) bool {
	return f&bit != 0
}

func (f *flags) set(bit flags, v bool) {
	if v {
		*f |= bit
	} else {
		*f &^= bit
	}
}

// registers is the architectural state of the 8080: the eight 8-bit
// registers (M is not stored here, it is memory at HL), SP, PC, the
// interrupt-enable latch and the condition word.
type registers struct {
	a, b, c, d, e, h, l byte
	sp, pc              uint16
	ie                  bool
	f                   flags
}

func (r *registers) bc() uint16 { return pack(r.b, r.c) }
func (r *registers) de() uint16 { return pack(r.d, r.e) }
func (r *registers) hl() uint16 { return pack(r.h, r.l) }

func (r *registers) setBC(v uint16) { r.b, r.c = unpack(v) }
func (r *registers) setDE(v uint16) { r.d, r.e = unpack(v) }
func (r *registers) setHL(v uint16) { r.h, r.l = unpack(v) }

// psw returns the packed Program Status Word: A in the high byte, flags in
// the low byte, with the fixed padding bits forced to their documented
// values.
func (r *registers) psw() uint16 {
	f := (r.f | flagsAlwaysOne) &^ flagsAlwaysZero
	return pack(r.a, byte(f))
}

func (r *registers) setPSW(v uint16) {
	a, f := unpack(v)
	r.a = a
	r.f = (flags(f) | flagsAlwaysOne) &^ flagsAlwaysZero
}

func (r *registers) pair(p regPair) uint16 {
	switch p {
	case pairBC:
		return r.bc()
	case pairDE:
		return r.de()
	case pairHL:
		return r.hl()
	case pairSP:
		return r.sp
	}
	panic("invaders: invalid register pair")
}

func (r *registers) setPair(p regPair, v uint16) {
	switch p {
	case pairBC:
		r.setBC(v)
	case pairDE:
		r.setDE(v)
	case pairHL:
		r.setHL(v)
	case pairSP:
		r.sp = v
	default:
		panic("invaders: invalid register pair")
	}
}

func pack(hi, lo byte) uint16 {
	return uint16(hi)<<8 | uint16(lo)
}

func unpack(v uint16) (hi, lo byte) {
	return byte(v >> 8), byte(v)
}
