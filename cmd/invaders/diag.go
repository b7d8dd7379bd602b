package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/example/invaders80/invaders"
)

// diagHarness shims the two CP/M BIOS calls the 8080 diagnostic suites use
// to report results (cpudiag, 8080PRE, 8080EX1, CPUTEST, TEST): CALL 5 with
// C=9 prints a '$'-terminated string at DE, C=2 prints the single character
// in E. It is deliberately not part of the invaders package: the core only
// promises that CALL 5 returns harmlessly (memory[5] patched to RET), the
// BIOS semantics belong entirely to this hosting binary.
type diagHarness struct {
	out io.Writer
	buf strings.Builder
}

func newDiagHarness(out io.Writer) *diagHarness {
	return &diagHarness{out: out}
}

// check must be called once per Step, before the step runs. If the core is
// sitting at the BIOS entry point it prints the requested message and
// mirrors it into buf so the caller can later decide pass/fail.
func (d *diagHarness) check(m *invaders.Machine) {
	if m.PC() != 0x0005 {
		return
	}

	switch m.C() {
	case 9:
		d.printString(m)
	case 2:
		d.printChar(m)
	}
}

func (d *diagHarness) printChar(m *invaders.Machine) {
	c := m.E()
	fmt.Fprintf(d.out, "%c", c)
	d.buf.WriteByte(c)
}

func (d *diagHarness) printString(m *invaders.Machine) {
	addr := m.DE()
	for {
		b := m.Memory(addr)
		if b == '$' {
			return
		}
		fmt.Fprintf(d.out, "%c", b)
		d.buf.WriteByte(b)
		addr++
	}
}

// passed reports whether the accumulated BIOS output looks like a pass.
// The diagnostic suites are not uniform about their exact wording, but all
// of them print "ERROR" somewhere in a failing run and never do on a clean
// one.
func (d *diagHarness) passed() bool {
	return !strings.Contains(strings.ToUpper(d.buf.String()), "ERROR")
}
