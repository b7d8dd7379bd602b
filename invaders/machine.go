package invaders

import (
	"fmt"
	"image"
	"io"
)

// diagOrigin and arcadeOrigin are the two load addresses the machine
// supports: 0x0000 for the arcade ROM, 0x0100 for CP/M-hosted diagnostic
// binaries (cpudiag, 8080PRE, 8080EX1, CPUTEST, TEST), which assume the
// CP/M convention of a warm-boot vector at 0x0000 and code starting at
// 0x0100.
const (
	arcadeOrigin = 0x0000
	diagOrigin   = 0x0100
)

// Machine wires together everything a Space Invaders cabinet owns: the
// 8080 core, the flat memory it executes out of, the I/O bus, and the
// three hardware devices attached to that bus. It is the one exported type
// the package needs; everything feeding it (window, keyboard, ROM file) is
// the hosting binary's job.
type Machine struct {
	cpu          *cpu
	mem          *memory
	bus          *bus
	shift        *shiftRegister
	controller   *controller
	timer        displayTimer
	sinceRefresh uint64
	pending      []byte

	diag bool
}

// NewMachine builds a machine with every device wired to its bus ports:
// port 2 (shift offset) and port 4 (shift data) out, port 3 (shift read)
// in, ports 1/2 in for the two controller registers.
func NewMachine() *Machine {
	mem := &memory{}
	b := newBus()
	m := &Machine{
		mem:        mem,
		bus:        b,
		shift:      &shiftRegister{},
		controller: newController(),
	}
	m.cpu = newCPU(mem, b)

	b.connectIn(0x01, m.controller.readP1)
	b.connectIn(0x02, m.controller.readP2)
	b.connectIn(0x03, m.shift.read)
	b.connectOut(0x02, m.shift.setOffset)
	b.connectOut(0x04, m.shift.shiftIn)

	return m
}

// LoadROM loads rom for arcade play: origin 0x0000, interrupts driven by
// the display timer.
func (m *Machine) LoadROM(rom []byte) {
	m.diag = false
	m.mem.loadROM(rom, arcadeOrigin)
	m.cpu.pc = arcadeOrigin
}

// LoadDiagnostic loads rom as a CP/M-hosted diagnostic binary: origin
// 0x0100, with memory[5] patched to RET so that a CALL 5 (the BIOS
// console-output/string-print entry point these programs use to report
// results) returns immediately to its caller. The harness that inspects
// register C and prints the requested message lives outside this package;
// this only guarantees CALL 5 doesn't crash into unmapped code.
func (m *Machine) LoadDiagnostic(rom []byte) {
	m.diag = true
	m.mem.loadROM(rom, diagOrigin)
	m.mem.write(0x0005, 0xC9)
	m.cpu.pc = diagOrigin
}

// Trace directs instruction-level tracing to w at the given verbosity
// (1, 2 or 3, matching the CLI's -d/-dd/-ddd flags). A nil w disables
// tracing.
func (m *Machine) Trace(w io.Writer, level int) {
	m.cpu.trace = w
	m.cpu.traceLevel = level
}

// PC reports the CPU's program counter, read by the CP/M call-5 harness to
// detect when execution has reached the BIOS entry point.
func (m *Machine) PC() uint16 { return m.cpu.pc }

// Reg reports the value of an 8-bit register, identified by the same
// encoding the opcode bytes use (000=B ... 111=A). Exported for tests in
// this package; external callers without access to that encoding should use
// C, E or DE below.
func (m *Machine) Reg(r reg8) byte { return m.cpu.reg(r) }

// C and E report the two registers the CP/M call-5 harness needs: C selects
// the BIOS function (2 or 9), E holds the character for function 2.
func (m *Machine) C() byte { return m.cpu.c }
func (m *Machine) E() byte { return m.cpu.e }

// DE reports the register pair used as the string pointer for BIOS
// function 9.
func (m *Machine) DE() uint16 { return m.cpu.de() }

// Memory reads a single byte, used by the call-5 harness to walk a
// DE-addressed string for function 9.
func (m *Machine) Memory(addr uint16) byte { return m.mem.read(addr) }

// Halted reports whether the core executed HLT.
func (m *Machine) Halted() bool { return m.cpu.halted }

// Step runs one unit of work: either delivery of a queued interrupt, or
// execution of one instruction, whichever the interrupt-enable latch and
// pending queue call for. It returns the number of clock cycles consumed.
func (m *Machine) Step() (cycles uint64, err error) {
	defer func() {
		if r := recover(); r != nil {
			uoe, ok := r.(*UnimplementedOpcodeError)
			if !ok {
				panic(r)
			}
			err = uoe
		}
	}()

	// A pair of RST opcodes queued by the same tick is drained back to back
	// regardless of the IE state left by the first one: the display timer
	// free-runs and latches the pair at the instant it fires, exactly as
	// spec scenario 5 describes (RST 1 then RST 2 in two consecutive
	// iterations, with no fetch between them).
	if len(m.pending) > 0 {
		op := m.pending[0]
		m.pending = m.pending[1:]
		m.cpu.interrupt(op)
		return 11, nil
	}

	cycles = m.cpu.step()

	if !m.diag {
		m.sinceRefresh += cycles
		if ops, fired := m.timer.tick(m.sinceRefresh); fired {
			m.sinceRefresh = 0
			if m.cpu.ie {
				m.pending = append(m.pending, ops[0], ops[1])
			}
		}
	}

	return cycles, nil
}

// Run drives Step until HLT, until stop returns true, or until an
// unimplemented opcode is hit. stop is polled once per instruction so the
// hosting binary can wire it to window-close or quit events; a nil stop
// runs to HLT only.
func (m *Machine) Run(stop func() bool) error {
	for !m.cpu.halted {
		if stop != nil && stop() {
			return nil
		}
		if _, err := m.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Press and Release forward cabinet input events to the controller device.
func (m *Machine) Press(in Input)   { m.controller.press(in) }
func (m *Machine) Release(in Input) { m.controller.release(in) }

// Buffer renders the current video RAM into a displayable frame.
func (m *Machine) Buffer() *image.Gray {
	return m.mem.framebuffer()
}

// UnimplementedOpcodeError is what Step (and so Run) returns when the
// dispatcher panics on an opcode it has no case for: Step recovers that
// panic itself and hands the hosting binary an error naming the offending
// opcode and address.
type UnimplementedOpcodeError struct {
	Opcode byte
	PC     uint16
}

func (e *UnimplementedOpcodeError) Error() string {
	return fmt.Sprintf("invaders: unimplemented opcode 0x%02X at 0x%04X", e.Opcode, e.PC)
}
