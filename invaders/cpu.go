package invaders

import (
	"io"
)

// cpu is an Intel 8080 core: the register file, a pointer to its owning
// memory and I/O bus, and an optional instruction tracer. It has no notion
// of CP/M, ROMs, or video; those belong to the machine that wires it up.
type cpu struct {
	registers

	mem *memory
	bus *bus

	cycles     uint64
	trace      io.Writer
	traceLevel int
	traceN     uint64

	// halted is set by HLT. It is not an error: the loop is expected to
	// check it and stop cleanly.
	halted bool
}

func newCPU(mem *memory, b *bus) *cpu {
	return &cpu{mem: mem, bus: b}
}

func (c *cpu) reg(r reg8) byte {
	switch r {
	case regB:
		return c.b
	case regC:
		return c.c
	case regD:
		return c.d
	case regE:
		return c.e
	case regH:
		return c.h
	case regL:
		return c.l
	case regM:
		return c.mem.read(c.hl())
	case regA:
		return c.a
	}
	panic("invaders: invalid register")
}

func (c *cpu) setReg(r reg8, v byte) {
	switch r {
	case regB:
		c.b = v
	case regC:
		c.c = v
	case regD:
		c.d = v
	case regE:
		c.e = v
	case regH:
		c.h = v
	case regL:
		c.l = v
	case regM:
		c.mem.write(c.hl(), v)
	case regA:
		c.a = v
	}
}

func (c *cpu) push(v uint16) {
	hi, lo := unpack(v)
	c.mem.write(c.sp-1, hi)
	c.mem.write(c.sp-2, lo)
	c.sp -= 2
}

func (c *cpu) pop() uint16 {
	v := c.mem.readWord(c.sp)
	c.sp += 2
	return v
}

// condition reports whether the flag named by the CC field of a
// conditional jump/call/return opcode is currently true. The 3-bit field
// (opcode bits 5-3) is NZ,Z,NC,C,PO,PE,P,M in that order.
func (c *cpu) condition(cc byte) bool {
	switch cc {
	case 0:
		return !c.f.has(flagZ)
	case 1:
		return c.f.has(flagZ)
	case 2:
		return !c.f.has(flagCY)
	case 3:
		return c.f.has(flagCY)
	case 4:
		return !c.f.has(flagP)
	case 5:
		return c.f.has(flagP)
	case 6:
		return !c.f.has(flagS)
	case 7:
		return c.f.has(flagS)
	}
	panic("invaders: invalid condition code")
}

// step fetches and executes one instruction, returning the number of
// cycles it consumed. Unimplemented opcodes are a development backstop,
// not a runtime condition the core is expected to recover from, so
// reaching one is fatal.
func (c *cpu) step() uint64 {
	op := c.mem.read(c.pc)
	inst := instructions[op]

	if c.trace != nil {
		c.disassemble(op)
	}

	taken, jumped := c.execute(op)
	used := uint64(inst.cycles)
	if taken {
		used += uint64(inst.taken)
	}

	// execute() reports jumped=true for every jump/call/return/RST, since
	// those always set pc directly (even the not-taken conditional forms,
	// which still advance pc themselves rather than relying on inst.size).
	// Comparing pc against its pre-execute value would miss a jump whose
	// target is its own address ("JMP $", an ordinary idle-loop idiom).
	if !jumped {
		c.pc += uint16(inst.size)
	}

	c.cycles += used
	return used
}

// interrupt delivers opcode (one of the eight RST instructions, 0xC7 +
// 8*n) as a hardware interrupt rather than a fetched instruction: the
// return address is the current, unadvanced PC, since no instruction was
// actually read from program memory.
func (c *cpu) interrupt(opcode byte) {
	c.ie = false
	c.push(c.pc)
	c.pc = uint16(opcode&0x38) << 0
	c.cycles += 11
}

// execute dispatches a fetched opcode. It reports whether a conditional
// branch/call/return was taken (for cycle accounting in step) and whether
// it assigned pc directly. jumped must be true for every jump/call/return/
// RST, including the not-taken conditional forms, since those advance pc
// themselves (past the 2 or 3 operand bytes) rather than leaving it for
// step's generic inst.size advance; relying on "did pc change" instead
// would misfire on a jump whose target equals its own address.
func (c *cpu) execute(op byte) (taken, jumped bool) {
	arg1 := func() byte { return c.mem.read(c.pc + 1) }
	addr := func() uint16 { return pack(c.mem.read(c.pc+2), c.mem.read(c.pc+1)) }

	switch {
	case op == 0x76:
		c.halted = true
		return false, false

	case op >= 0x40 && op <= 0x7F:
		dst := reg8((op >> 3) & 0x07)
		src := reg8(op & 0x07)
		c.setReg(dst, c.reg(src))
		return false, false

	case op >= 0x80 && op <= 0x87:
		c.add(c.reg(reg8(op&0x07)), 0)
		return false, false
	case op >= 0x88 && op <= 0x8F:
		c.add(c.reg(reg8(op&0x07)), boolByte(c.f.has(flagCY)))
		return false, false
	case op >= 0x90 && op <= 0x97:
		c.sub(c.reg(reg8(op&0x07)), 0)
		return false, false
	case op >= 0x98 && op <= 0x9F:
		c.sub(c.reg(reg8(op&0x07)), boolByte(c.f.has(flagCY)))
		return false, false
	case op >= 0xA0 && op <= 0xA7:
		c.ana(c.reg(reg8(op & 0x07)))
		return false, false
	case op >= 0xA8 && op <= 0xAF:
		c.xra(c.reg(reg8(op & 0x07)))
		return false, false
	case op >= 0xB0 && op <= 0xB7:
		c.ora(c.reg(reg8(op & 0x07)))
		return false, false
	case op >= 0xB8 && op <= 0xBF:
		c.cmp(c.reg(reg8(op & 0x07)))
		return false, false
	}

	switch op {
	case 0x00, 0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38:
		// NOP and its undocumented duplicates.
		return false, false

	case 0x01, 0x11, 0x21, 0x31:
		c.setPair(regPair(op>>4), pack(c.mem.read(c.pc+2), c.mem.read(c.pc+1)))
		return false, false
	case 0x03, 0x13, 0x23, 0x33:
		p := regPair(op >> 4)
		c.setPair(p, c.pair(p)+1)
		return false, false
	case 0x0B, 0x1B, 0x2B, 0x3B:
		p := regPair(op >> 4)
		c.setPair(p, c.pair(p)-1)
		return false, false
	case 0x09, 0x19, 0x29, 0x39:
		c.dad(c.pair(regPair(op >> 4)))
		return false, false

	case 0x04, 0x0C, 0x14, 0x1C, 0x24, 0x2C, 0x34, 0x3C:
		r := reg8((op >> 3) & 0x07)
		c.setReg(r, c.inr(c.reg(r)))
		return false, false
	case 0x05, 0x0D, 0x15, 0x1D, 0x25, 0x2D, 0x35, 0x3D:
		r := reg8((op >> 3) & 0x07)
		c.setReg(r, c.dcr(c.reg(r)))
		return false, false
	case 0x06, 0x0E, 0x16, 0x1E, 0x26, 0x2E, 0x36, 0x3E:
		r := reg8((op >> 3) & 0x07)
		c.setReg(r, arg1())
		return false, false

	case 0x02:
		c.mem.write(c.bc(), c.a)
		return false, false
	case 0x12:
		c.mem.write(c.de(), c.a)
		return false, false
	case 0x0A:
		c.a = c.mem.read(c.bc())
		return false, false
	case 0x1A:
		c.a = c.mem.read(c.de())
		return false, false

	case 0x07:
		c.rlc()
		return false, false
	case 0x0F:
		c.rrc()
		return false, false
	case 0x17:
		c.ral()
		return false, false
	case 0x1F:
		c.rar()
		return false, false
	case 0x27:
		c.daa()
		return false, false
	case 0x2F:
		c.a = ^c.a
		return false, false
	case 0x37:
		c.f.set(flagCY, true)
		return false, false
	case 0x3F:
		c.f.set(flagCY, !c.f.has(flagCY))
		return false, false

	case 0x22:
		c.mem.writeWord(addr(), c.hl())
		return false, false
	case 0x2A:
		c.setHL(c.mem.readWord(addr()))
		return false, false
	case 0x32:
		c.mem.write(addr(), c.a)
		return false, false
	case 0x3A:
		c.a = c.mem.read(addr())
		return false, false

	case 0xC1, 0xD1, 0xE1:
		c.setPair(regPair((op>>4)&0x03), c.pop())
		return false, false
	case 0xF1:
		c.setPSW(c.pop())
		return false, false
	case 0xC5, 0xD5, 0xE5:
		c.push(c.pair(regPair((op >> 4) & 0x03)))
		return false, false
	case 0xF5:
		c.push(c.psw())
		return false, false

	case 0xC6:
		c.add(arg1(), 0)
		return false, false
	case 0xCE:
		c.add(arg1(), boolByte(c.f.has(flagCY)))
		return false, false
	case 0xD6:
		c.sub(arg1(), 0)
		return false, false
	case 0xDE:
		c.sub(arg1(), boolByte(c.f.has(flagCY)))
		return false, false
	case 0xE6:
		c.ana(arg1())
		return false, false
	case 0xEE:
		c.xra(arg1())
		return false, false
	case 0xF6:
		c.ora(arg1())
		return false, false
	case 0xFE:
		c.cmp(arg1())
		return false, false

	case 0xC3, 0xCB:
		c.pc = addr()
		return false, true
	case 0xC2, 0xCA, 0xD2, 0xDA, 0xE2, 0xEA, 0xF2, 0xFA:
		cc := (op >> 3) & 0x07
		if c.condition(cc) {
			c.pc = addr()
		} else {
			c.pc += 3
		}
		return false, true

	case 0xC9, 0xD9:
		c.pc = c.pop()
		return false, true
	case 0xC0, 0xC8, 0xD0, 0xD8, 0xE0, 0xE8, 0xF0, 0xF8:
		cc := (op >> 3) & 0x07
		if c.condition(cc) {
			c.pc = c.pop()
			return true, true
		}
		c.pc++
		return false, true

	case 0xCD, 0xDD, 0xED, 0xFD:
		ret := c.pc + 3
		c.push(ret)
		c.pc = addr()
		return false, true
	case 0xC4, 0xCC, 0xD4, 0xDC, 0xE4, 0xEC, 0xF4, 0xFC:
		cc := (op >> 3) & 0x07
		if c.condition(cc) {
			c.push(c.pc + 3)
			c.pc = addr()
			return true, true
		}
		c.pc += 3
		return false, true

	case 0xC7, 0xCF, 0xD7, 0xDF, 0xE7, 0xEF, 0xF7, 0xFF:
		ret := c.pc + 1
		c.push(ret)
		c.pc = uint16(op & 0x38)
		c.ie = false
		return false, true

	case 0xE3:
		lo := c.mem.read(c.sp)
		hi := c.mem.read(c.sp + 1)
		c.mem.write(c.sp, c.l)
		c.mem.write(c.sp+1, c.h)
		c.l, c.h = lo, hi
		return false, false
	case 0xE9:
		c.pc = c.hl()
		return false, true
	case 0xEB:
		h, l := c.h, c.l
		c.h, c.l = c.d, c.e
		c.d, c.e = h, l
		return false, false
	case 0xF9:
		c.sp = c.hl()
		return false, false

	case 0xD3:
		c.bus.out(arg1(), c.a)
		return false, false
	case 0xDB:
		c.a = c.bus.in(arg1())
		return false, false

	case 0xF3:
		c.ie = false
		return false, false
	case 0xFB:
		c.ie = true
		return false, false

	default:
		panic(&UnimplementedOpcodeError{Opcode: op, PC: c.pc})
	}
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
