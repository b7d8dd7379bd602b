package invaders

import "testing"

func newTestCPU(program ...byte) *cpu {
	mem := &memory{}
	copy(mem[:], program)
	return newCPU(mem, newBus())
}

func TestCPUAddFlagsScenario(t *testing.T) {
	var r registers
	r.a = 0x3A
	r.add(0xC6, 0)

	if r.a != 0x00 {
		t.Fatalf("A = %02X, want 00", r.a)
	}
	if !r.f.has(flagZ) || r.f.has(flagS) || !r.f.has(flagP) || !r.f.has(flagCY) || !r.f.has(flagAC) {
		t.Fatalf("flags = Z%d S%d P%d CY%d AC%d, want Z1 S0 P1 CY1 AC1",
			boolByte(r.f.has(flagZ)), boolByte(r.f.has(flagS)), boolByte(r.f.has(flagP)),
			boolByte(r.f.has(flagCY)), boolByte(r.f.has(flagAC)))
	}
}

func TestCPUSubBorrowScenario(t *testing.T) {
	var r registers
	r.a = 0x3E
	r.sub(0x3E, 0)

	if r.a != 0x00 {
		t.Fatalf("A = %02X, want 00", r.a)
	}
	if !r.f.has(flagZ) || r.f.has(flagS) || !r.f.has(flagP) || r.f.has(flagCY) || !r.f.has(flagAC) {
		t.Fatalf("flags = Z%d S%d P%d CY%d AC%d, want Z1 S0 P1 CY0 AC1",
			boolByte(r.f.has(flagZ)), boolByte(r.f.has(flagS)), boolByte(r.f.has(flagP)),
			boolByte(r.f.has(flagCY)), boolByte(r.f.has(flagAC)))
	}
}

func TestCPUCPIScenario(t *testing.T) {
	var r registers
	r.a = 0x4A

	r.cmp(0x40)
	if r.a != 0x4A {
		t.Fatal("CPI must not modify A")
	}
	if r.f.has(flagZ) || r.f.has(flagCY) {
		t.Fatal("CPI 0x40 against A=0x4A: want Z=0 CY=0")
	}

	r.cmp(0x50)
	if r.f.has(flagZ) || !r.f.has(flagCY) {
		t.Fatal("CPI 0x50 against A=0x4A: want Z=0 CY=1")
	}
}

func TestCPUAddSetsFlags(t *testing.T) {
	// MVI A,6C ; MVI B,2E ; ADD B
	c := newTestCPU(0x3E, 0x6C, 0x06, 0x2E, 0x80)
	c.step()
	c.step()
	c.step()

	if c.a != 0x9A {
		t.Fatalf("A = %02X, want 9A", c.a)
	}
	if c.f.has(flagCY) {
		t.Error("CY should be clear")
	}
	if !c.f.has(flagAC) {
		t.Error("AC should be set")
	}
}

func TestCPUSubBorrow(t *testing.T) {
	// MVI A,00 ; SUI 01
	c := newTestCPU(0x3E, 0x00, 0xD6, 0x01)
	c.step()
	c.step()

	if c.a != 0xFF {
		t.Fatalf("A = %02X, want FF", c.a)
	}
	if !c.f.has(flagCY) {
		t.Error("CY should be set on borrow")
	}
}

func TestCPUCompareImmediate(t *testing.T) {
	// MVI A,0A ; CPI 0A
	c := newTestCPU(0x3E, 0x0A, 0xFE, 0x0A)
	c.step()
	c.step()

	if c.a != 0x0A {
		t.Fatal("CPI must not modify A")
	}
	if !c.f.has(flagZ) {
		t.Error("Z should be set: operands equal")
	}
}

func TestCPUPushPopIdentity(t *testing.T) {
	// LXI SP,2000 ; LXI B,1234 ; PUSH B ; POP D
	c := newTestCPU(
		0x31, 0x00, 0x20,
		0x01, 0x34, 0x12,
		0xC5,
		0xD1,
	)
	for i := 0; i < 4; i++ {
		c.step()
	}

	if c.de() != 0x1234 {
		t.Fatalf("DE after PUSH B/POP D = %04X, want 1234", c.de())
	}
	if c.sp != 0x2000 {
		t.Fatalf("SP after balanced push/pop = %04X, want 2000", c.sp)
	}
}

func TestCPUXchgIsInvolution(t *testing.T) {
	c := newTestCPU(0xEB, 0xEB)
	c.setHL(0x1111)
	c.setDE(0x2222)

	c.step()
	if c.hl() != 0x2222 || c.de() != 0x1111 {
		t.Fatalf("after one XCHG: HL=%04X DE=%04X", c.hl(), c.de())
	}

	c.step()
	if c.hl() != 0x1111 || c.de() != 0x2222 {
		t.Fatalf("after two XCHGs: HL=%04X DE=%04X, want original values back", c.hl(), c.de())
	}
}

func TestCPUCallRetStackDiscipline(t *testing.T) {
	// LXI SP,2000 ; CALL 0007 ; HLT ; (at 0007) RET
	c := newTestCPU(
		0x31, 0x00, 0x20,
		0xCD, 0x07, 0x00,
		0x76,
		0xC9,
	)
	c.step() // LXI SP
	c.step() // CALL 0007

	if c.pc != 0x0007 {
		t.Fatalf("PC after CALL = %04X, want 0007", c.pc)
	}
	if c.sp != 0x1FFE {
		t.Fatalf("SP after CALL = %04X, want 1FFE", c.sp)
	}

	c.step() // RET

	if c.pc != 0x0006 {
		t.Fatalf("PC after RET = %04X, want 0006 (return address pushed by CALL)", c.pc)
	}
	if c.sp != 0x2000 {
		t.Fatalf("SP after balanced CALL/RET = %04X, want 2000", c.sp)
	}
}

func TestCPUUndocumentedAliases(t *testing.T) {
	cases := []struct {
		name string
		op   byte
	}{
		{"NOP* 0x08", 0x08},
		{"NOP* 0x10", 0x10},
		{"NOP* 0x18", 0x18},
		{"NOP* 0x20", 0x20},
		{"NOP* 0x28", 0x28},
		{"NOP* 0x30", 0x30},
		{"NOP* 0x38", 0x38},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCPU(tt.op)
			c.step()
			if c.pc != 1 {
				t.Fatalf("PC after %s = %d, want 1", tt.name, c.pc)
			}
		})
	}
}

// TestCPUJumpToSelfLoopsForever guards against computing the auto-advance
// from "did pc change": JMP $ is an ordinary 8080 idle-loop idiom whose
// target equals its own address, so pc ends up unchanged by the jump even
// though the jump was taken.
func TestCPUJumpToSelfLoopsForever(t *testing.T) {
	c := newTestCPU(0xC3, 0x00, 0x00) // JMP 0000
	for i := 0; i < 5; i++ {
		c.step()
		if c.pc != 0x0000 {
			t.Fatalf("after step %d: PC = %04X, want 0000 (JMP $ must not fall through)", i, c.pc)
		}
	}
}

func TestCPUHaltSetsHaltedFlag(t *testing.T) {
	c := newTestCPU(0x76)
	c.step()
	if !c.halted {
		t.Fatal("HLT should set halted")
	}
}

func TestCPUInProgramRSTClearsIE(t *testing.T) {
	// RST 1 (0xCF) encountered as a normal fetched instruction.
	c := newTestCPU(0xCF)
	c.sp = 0x2000
	c.ie = true

	c.step()

	if c.ie {
		t.Fatal("executing RST in-program should clear the interrupt-enable latch")
	}
	if c.pc != 0x0008 {
		t.Fatalf("PC after RST 1 = %04X, want 0008", c.pc)
	}
	if c.mem.readWord(c.sp) != 0x0001 {
		t.Fatalf("pushed return address = %04X, want 0001 (PC+1 of the 1-byte RST)", c.mem.readWord(c.sp))
	}
}

func TestCPURST(t *testing.T) {
	c := newTestCPU()
	c.sp = 0x2000
	c.pc = 0x1234
	c.ie = true

	c.interrupt(0xCF) // RST 1 -> 0x0008

	if c.pc != 0x0008 {
		t.Fatalf("PC after RST 1 = %04X, want 0008", c.pc)
	}
	if c.ie {
		t.Error("interrupt delivery should clear IE")
	}
	if c.mem.readWord(c.sp) != 0x1234 {
		t.Fatalf("pushed return address = %04X, want 1234", c.mem.readWord(c.sp))
	}
}
