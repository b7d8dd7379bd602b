package invaders

import "fmt"

// disassemble writes a trace line for the instruction about to execute.
// Verbosity is controlled by traceLevel: 1 prints address/bytes/mnemonic,
// 2 adds flags and registers, 3 additionally numbers the instruction.
func (c *cpu) disassemble(op byte) {
	inst := instructions[op]

	var operand string
	switch inst.size {
	case 2:
		operand = fmt.Sprintf("%02X", c.mem.read(c.pc+1))
	case 3:
		operand = fmt.Sprintf("%02X%02X", c.mem.read(c.pc+2), c.mem.read(c.pc+1))
	}

	illegal := " "
	if inst.illegal {
		illegal = "*"
	}

	fmt.Fprintf(c.trace, "%04X  %-6s %s%-8s", c.pc, operand, illegal, inst.name)

	if c.traceLevel >= 2 {
		fmt.Fprintf(c.trace, "  Z%d S%d P%d CY%d AC%d  A=%02X B=%02X C=%02X D=%02X E=%02X H=%02X L=%02X SP=%04X",
			boolByte(c.f.has(flagZ)), boolByte(c.f.has(flagS)), boolByte(c.f.has(flagP)),
			boolByte(c.f.has(flagCY)), boolByte(c.f.has(flagAC)),
			c.a, c.b, c.c, c.d, c.e, c.h, c.l, c.sp)
	}

	if c.traceLevel >= 3 {
		c.traceN++
		fmt.Fprintf(c.trace, "  #%d", c.traceN)
	}

	fmt.Fprintln(c.trace)
}
