package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/example/invaders80/cmd/internal/meter"
	"github.com/example/invaders80/invaders"
)

func init() {
	runtime.LockOSThread()
}

func loadROM(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open rom: %s", err)
	}
	return b, nil
}

// run wires a Machine up to the requested ROM and mode and drives it to
// completion, returning a non-nil error only for unimplemented-opcode or
// setup failures; a failed diagnostic run is reported via the returned exit
// code in main, not an error.
func run(romPath string, traceLevel int, headless, diag bool) (exitCode int, err error) {
	rom, err := loadROM(romPath)
	if err != nil {
		return 2, err
	}

	m := invaders.NewMachine()
	if traceLevel > 0 {
		m.Trace(os.Stderr, traceLevel)
	}

	if diag {
		m.LoadDiagnostic(rom)
		return runDiagnostic(m)
	}

	m.LoadROM(rom)
	if headless {
		return runHeadless(m)
	}
	return runWindowed(m)
}

// runDiagnostic steps the machine until either HLT (a failure: the CP/M
// diagnostics never intentionally halt) or a jump back to address 0x0000
// (the convention cpudiag/8080PRE/8080EX1/CPUTEST/TEST all use to signal
// they are done), then reports pass/fail from the BIOS call-5 output.
func runDiagnostic(m *invaders.Machine) (int, error) {
	harness := newDiagHarness(os.Stdout)
	pc := m.PC()

	for {
		harness.check(m)

		if _, err := m.Step(); err != nil {
			return 1, err
		}

		if m.Halted() {
			fmt.Fprintln(os.Stderr, "invaders: HLT reached during diagnostic run")
			return 1, nil
		}

		next := m.PC()
		if next == 0x0000 && pc != 0x0000 {
			if harness.passed() {
				return 0, nil
			}
			return 1, nil
		}
		pc = next
	}
}

func runHeadless(m *invaders.Machine) (int, error) {
	if err := m.Run(nil); err != nil {
		return 1, err
	}
	return 0, nil
}

func runWindowed(m *invaders.Machine) (int, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return 2, fmt.Errorf("unable to init sdl: %s", err)
	}
	defer sdl.Quit()

	win, err := newGameWindow(3, "invaders")
	if err != nil {
		return 2, err
	}
	defer win.Free()

	frameMeter := meter.New(30)
	stepMeter := meter.New(30)

	quit := false
	for !quit && !m.Halted() && win.Visible() {
		start := time.Now()

		for evt := sdl.PollEvent(); evt != nil; evt = sdl.PollEvent() {
			if _, ok := evt.(*sdl.QuitEvent); ok {
				quit = true
				break
			}
			win.Handle(evt, m)
		}

		stepStart := time.Now()
		// Run roughly one emulated frame's worth of cycles (two half-frames)
		// per host tick; the display timer inside Step fires the real
		// interrupts.
		var cycles uint64
		for cycles < cyclesPerFrame {
			used, err := m.Step()
			if err != nil {
				return 1, err
			}
			cycles += used
		}
		stepMeter.Record(time.Since(stepStart))

		if err := win.Render(m); err != nil {
			return 1, err
		}

		frameMeter.Record(time.Since(start))

		if remaining := time.Second/60 - time.Since(start); remaining > 0 {
			sdl.Delay(uint32(remaining / time.Millisecond))
		}
	}

	fmt.Fprintf(os.Stderr, "invaders: %d fps (%.2fms/frame, %.2fms/step)\n", frameMeter.Tps(), frameMeter.Ms(), stepMeter.Ms())

	return 0, nil
}

const cyclesPerFrame = 2 * 2000000 / 120 // both half-frame interrupts

func main() {
	d := flag.Bool("d", false, "disassemble each instruction to stderr")
	dd := flag.Bool("dd", false, "disassemble with flags and registers")
	ddd := flag.Bool("ddd", false, "disassemble with flags, registers and an instruction counter")
	headless := flag.Bool("headless", false, "run without a graphics surface")
	diag := flag.Bool("diag", false, "load as a CP/M-hosted diagnostic binary instead of an arcade ROM")

	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: invaders [-d|-dd|-ddd] [--headless] [--diag] <rom>")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	level := 0
	switch {
	case *ddd:
		level = 3
	case *dd:
		level = 2
	case *d:
		level = 1
	}

	code, err := run(flag.Arg(0), level, *headless, *diag)
	if err != nil {
		fmt.Fprintln(os.Stderr, strings.TrimSpace(err.Error()))
	}
	os.Exit(code)
}
