package invaders

// instruction describes the static shape of one opcode: its mnemonic (for
// tracing), its size in bytes including the opcode itself, and its cycle
// cost. Conditional RET/CALL take extra cycles when the branch is taken;
// taken records that delta so the dispatcher doesn't need a parallel table.
type instruction struct {
	name    string
	size    byte
	cycles  byte
	taken   byte
	illegal bool
}

// instructions is indexed by opcode. Cycle counts are the Intel 8080
// datasheet values; undocumented opcodes (duplicate NOP/JMP/RET/CALL
// encodings) are marked illegal but still fully specified, since the arcade
// ROM uses several of them.
var instructions = [256]instruction{
	0x00: {name: "NOP", size: 1, cycles: 4},
	0x01: {name: "LXI B", size: 3, cycles: 10},
	0x02: {name: "STAX B", size: 1, cycles: 7},
	0x03: {name: "INX B", size: 1, cycles: 5},
	0x04: {name: "INR B", size: 1, cycles: 5},
	0x05: {name: "DCR B", size: 1, cycles: 5},
	0x06: {name: "MVI B", size: 2, cycles: 7},
	0x07: {name: "RLC", size: 1, cycles: 4},
	0x08: {name: "NOP*", size: 1, cycles: 4, illegal: true},
	0x09: {name: "DAD B", size: 1, cycles: 10},
	0x0A: {name: "LDAX B", size: 1, cycles: 7},
	0x0B: {name: "DCX B", size: 1, cycles: 5},
	0x0C: {name: "INR C", size: 1, cycles: 5},
	0x0D: {name: "DCR C", size: 1, cycles: 5},
	0x0E: {name: "MVI C", size: 2, cycles: 7},
	0x0F: {name: "RRC", size: 1, cycles: 4},
	0x10: {name: "NOP*", size: 1, cycles: 4, illegal: true},
	0x11: {name: "LXI D", size: 3, cycles: 10},
	0x12: {name: "STAX D", size: 1, cycles: 7},
	0x13: {name: "INX D", size: 1, cycles: 5},
	0x14: {name: "INR D", size: 1, cycles: 5},
	0x15: {name: "DCR D", size: 1, cycles: 5},
	0x16: {name: "MVI D", size: 2, cycles: 7},
	0x17: {name: "RAL", size: 1, cycles: 4},
	0x18: {name: "NOP*", size: 1, cycles: 4, illegal: true},
	0x19: {name: "DAD D", size: 1, cycles: 10},
	0x1A: {name: "LDAX D", size: 1, cycles: 7},
	0x1B: {name: "DCX D", size: 1, cycles: 5},
	0x1C: {name: "INR E", size: 1, cycles: 5},
	0x1D: {name: "DCR E", size: 1, cycles: 5},
	0x1E: {name: "MVI E", size: 2, cycles: 7},
	0x1F: {name: "RAR", size: 1, cycles: 4},
	0x20: {name: "NOP*", size: 1, cycles: 4, illegal: true},
	0x21: {name: "LXI H", size: 3, cycles: 10},
	0x22: {name: "SHLD", size: 3, cycles: 16},
	0x23: {name: "INX H", size: 1, cycles: 5},
	0x24: {name: "INR H", size: 1, cycles: 5},
	0x25: {name: "DCR H", size: 1, cycles: 5},
	0x26: {name: "MVI H", size: 2, cycles: 7},
	0x27: {name: "DAA", size: 1, cycles: 4},
	0x28: {name: "NOP*", size: 1, cycles: 4, illegal: true},
	0x29: {name: "DAD H", size: 1, cycles: 10},
	0x2A: {name: "LHLD", size: 3, cycles: 16},
	0x2B: {name: "DCX H", size: 1, cycles: 5},
	0x2C: {name: "INR L", size: 1, cycles: 5},
	0x2D: {name: "DCR L", size: 1, cycles: 5},
	0x2E: {name: "MVI L", size: 2, cycles: 7},
	0x2F: {name: "CMA", size: 1, cycles: 4},
	0x30: {name: "NOP*", size: 1, cycles: 4, illegal: true},
	0x31: {name: "LXI SP", size: 3, cycles: 10},
	0x32: {name: "STA", size: 3, cycles: 13},
	0x33: {name: "INX SP", size: 1, cycles: 5},
	0x34: {name: "INR M", size: 1, cycles: 10},
	0x35: {name: "DCR M", size: 1, cycles: 10},
	0x36: {name: "MVI M", size: 2, cycles: 10},
	0x37: {name: "STC", size: 1, cycles: 4},
	0x38: {name: "NOP*", size: 1, cycles: 4, illegal: true},
	0x39: {name: "DAD SP", size: 1, cycles: 10},
	0x3A: {name: "LDA", size: 3, cycles: 13},
	0x3B: {name: "DCX SP", size: 1, cycles: 5},
	0x3C: {name: "INR A", size: 1, cycles: 5},
	0x3D: {name: "DCR A", size: 1, cycles: 5},
	0x3E: {name: "MVI A", size: 2, cycles: 7},
	0x3F: {name: "CMC", size: 1, cycles: 4},

	// 0x40-0x7F: MOV r,r' and HLT. Moves touching (HL) cost 7 cycles.
	0x76: {name: "HLT", size: 1, cycles: 7},

	0x80: {name: "ADD B", size: 1, cycles: 4},
	0x81: {name: "ADD C", size: 1, cycles: 4},
	0x82: {name: "ADD D", size: 1, cycles: 4},
	0x83: {name: "ADD E", size: 1, cycles: 4},
	0x84: {name: "ADD H", size: 1, cycles: 4},
	0x85: {name: "ADD L", size: 1, cycles: 4},
	0x86: {name: "ADD M", size: 1, cycles: 7},
	0x87: {name: "ADD A", size: 1, cycles: 4},
	0x88: {name: "ADC B", size: 1, cycles: 4},
	0x89: {name: "ADC C", size: 1, cycles: 4},
	0x8A: {name: "ADC D", size: 1, cycles: 4},
	0x8B: {name: "ADC E", size: 1, cycles: 4},
	0x8C: {name: "ADC H", size: 1, cycles: 4},
	0x8D: {name: "ADC L", size: 1, cycles: 4},
	0x8E: {name: "ADC M", size: 1, cycles: 7},
	0x8F: {name: "ADC A", size: 1, cycles: 4},
	0x90: {name: "SUB B", size: 1, cycles: 4},
	0x91: {name: "SUB C", size: 1, cycles: 4},
	0x92: {name: "SUB D", size: 1, cycles: 4},
	0x93: {name: "SUB E", size: 1, cycles: 4},
	0x94: {name: "SUB H", size: 1, cycles: 4},
	0x95: {name: "SUB L", size: 1, cycles: 4},
	0x96: {name: "SUB M", size: 1, cycles: 7},
	0x97: {name: "SUB A", size: 1, cycles: 4},
	0x98: {name: "SBB B", size: 1, cycles: 4},
	0x99: {name: "SBB C", size: 1, cycles: 4},
	0x9A: {name: "SBB D", size: 1, cycles: 4},
	0x9B: {name: "SBB E", size: 1, cycles: 4},
	0x9C: {name: "SBB H", size: 1, cycles: 4},
	0x9D: {name: "SBB L", size: 1, cycles: 4},
	0x9E: {name: "SBB M", size: 1, cycles: 7},
	0x9F: {name: "SBB A", size: 1, cycles: 4},
	0xA0: {name: "ANA B", size: 1, cycles: 4},
	0xA1: {name: "ANA C", size: 1, cycles: 4},
	0xA2: {name: "ANA D", size: 1, cycles: 4},
	0xA3: {name: "ANA E", size: 1, cycles: 4},
	0xA4: {name: "ANA H", size: 1, cycles: 4},
	0xA5: {name: "ANA L", size: 1, cycles: 4},
	0xA6: {name: "ANA M", size: 1, cycles: 7},
	0xA7: {name: "ANA A", size: 1, cycles: 4},
	0xA8: {name: "XRA B", size: 1, cycles: 4},
	0xA9: {name: "XRA C", size: 1, cycles: 4},
	0xAA: {name: "XRA D", size: 1, cycles: 4},
	0xAB: {name: "XRA E", size: 1, cycles: 4},
	0xAC: {name: "XRA H", size: 1, cycles: 4},
	0xAD: {name: "XRA L", size: 1, cycles: 4},
	0xAE: {name: "XRA M", size: 1, cycles: 7},
	0xAF: {name: "XRA A", size: 1, cycles: 4},
	0xB0: {name: "ORA B", size: 1, cycles: 4},
	0xB1: {name: "ORA C", size: 1, cycles: 4},
	0xB2: {name: "ORA D", size: 1, cycles: 4},
	0xB3: {name: "ORA E", size: 1, cycles: 4},
	0xB4: {name: "ORA H", size: 1, cycles: 4},
	0xB5: {name: "ORA L", size: 1, cycles: 4},
	0xB6: {name: "ORA M", size: 1, cycles: 7},
	0xB7: {name: "ORA A", size: 1, cycles: 4},
	0xB8: {name: "CMP B", size: 1, cycles: 4},
	0xB9: {name: "CMP C", size: 1, cycles: 4},
	0xBA: {name: "CMP D", size: 1, cycles: 4},
	0xBB: {name: "CMP E", size: 1, cycles: 4},
	0xBC: {name: "CMP H", size: 1, cycles: 4},
	0xBD: {name: "CMP L", size: 1, cycles: 4},
	0xBE: {name: "CMP M", size: 1, cycles: 7},
	0xBF: {name: "CMP A", size: 1, cycles: 4},

	0xC0: {name: "RNZ", size: 1, cycles: 5, taken: 6},
	0xC1: {name: "POP B", size: 1, cycles: 10},
	0xC2: {name: "JNZ", size: 3, cycles: 10},
	0xC3: {name: "JMP", size: 3, cycles: 10},
	0xC4: {name: "CNZ", size: 3, cycles: 11, taken: 6},
	0xC5: {name: "PUSH B", size: 1, cycles: 11},
	0xC6: {name: "ADI", size: 2, cycles: 7},
	0xC7: {name: "RST 0", size: 1, cycles: 11},
	0xC8: {name: "RZ", size: 1, cycles: 5, taken: 6},
	0xC9: {name: "RET", size: 1, cycles: 10},
	0xCA: {name: "JZ", size: 3, cycles: 10},
	0xCB: {name: "JMP*", size: 3, cycles: 10, illegal: true},
	0xCC: {name: "CZ", size: 3, cycles: 11, taken: 6},
	0xCD: {name: "CALL", size: 3, cycles: 17},
	0xCE: {name: "ACI", size: 2, cycles: 7},
	0xCF: {name: "RST 1", size: 1, cycles: 11},
	0xD0: {name: "RNC", size: 1, cycles: 5, taken: 6},
	0xD1: {name: "POP D", size: 1, cycles: 10},
	0xD2: {name: "JNC", size: 3, cycles: 10},
	0xD3: {name: "OUT", size: 2, cycles: 10},
	0xD4: {name: "CNC", size: 3, cycles: 11, taken: 6},
	0xD5: {name: "PUSH D", size: 1, cycles: 11},
	0xD6: {name: "SUI", size: 2, cycles: 7},
	0xD7: {name: "RST 2", size: 1, cycles: 11},
	0xD8: {name: "RC", size: 1, cycles: 5, taken: 6},
	0xD9: {name: "RET*", size: 1, cycles: 10, illegal: true},
	0xDA: {name: "JC", size: 3, cycles: 10},
	0xDB: {name: "IN", size: 2, cycles: 10},
	0xDC: {name: "CC", size: 3, cycles: 11, taken: 6},
	0xDD: {name: "CALL*", size: 3, cycles: 17, illegal: true},
	0xDE: {name: "SBI", size: 2, cycles: 7},
	0xDF: {name: "RST 3", size: 1, cycles: 11},
	0xE0: {name: "RPO", size: 1, cycles: 5, taken: 6},
	0xE1: {name: "POP H", size: 1, cycles: 10},
	0xE2: {name: "JPO", size: 3, cycles: 10},
	0xE3: {name: "XTHL", size: 1, cycles: 18},
	0xE4: {name: "CPO", size: 3, cycles: 11, taken: 6},
	0xE5: {name: "PUSH H", size: 1, cycles: 11},
	0xE6: {name: "ANI", size: 2, cycles: 7},
	0xE7: {name: "RST 4", size: 1, cycles: 11},
	0xE8: {name: "RPE", size: 1, cycles: 5, taken: 6},
	0xE9: {name: "PCHL", size: 1, cycles: 5},
	0xEA: {name: "JPE", size: 3, cycles: 10},
	0xEB: {name: "XCHG", size: 1, cycles: 5},
	0xEC: {name: "CPE", size: 3, cycles: 11, taken: 6},
	0xED: {name: "CALL*", size: 3, cycles: 17, illegal: true},
	0xEE: {name: "XRI", size: 2, cycles: 7},
	0xEF: {name: "RST 5", size: 1, cycles: 11},
	0xF0: {name: "RP", size: 1, cycles: 5, taken: 6},
	0xF1: {name: "POP PSW", size: 1, cycles: 10},
	0xF2: {name: "JP", size: 3, cycles: 10},
	0xF3: {name: "DI", size: 1, cycles: 4},
	0xF4: {name: "CP", size: 3, cycles: 11, taken: 6},
	0xF5: {name: "PUSH PSW", size: 1, cycles: 11},
	0xF6: {name: "ORI", size: 2, cycles: 7},
	0xF7: {name: "RST 6", size: 1, cycles: 11},
	0xF8: {name: "RM", size: 1, cycles: 5, taken: 6},
	0xF9: {name: "SPHL", size: 1, cycles: 5},
	0xFA: {name: "JM", size: 3, cycles: 10},
	0xFB: {name: "EI", size: 1, cycles: 4},
	0xFC: {name: "CM", size: 3, cycles: 11, taken: 6},
	0xFD: {name: "CALL*", size: 3, cycles: 17, illegal: true},
	0xFE: {name: "CPI", size: 2, cycles: 7},
	0xFF: {name: "RST 7", size: 1, cycles: 11},
}

func init() {
	for op := 0x40; op <= 0x7F; op++ {
		if op == 0x76 {
			continue
		}
		dst := (op >> 3) & 0x07
		src := op & 0x07
		cycles := byte(5)
		if dst == int(regM) || src == int(regM) {
			cycles = 7
		}
		instructions[op] = instruction{name: "MOV", size: 1, cycles: cycles}
	}
}
