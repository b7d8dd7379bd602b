// Package meter reports host frame pacing (Step/Render wall-clock time),
// distinct from the emulated 60 Hz the core itself produces via its own
// cycle-counted half-frame interrupts.
package meter

import (
	"math"
	"time"
)

const DefaultBufferLen = 50

// Meter is a ring buffer of recent sample durations averaged into a rate
// (Tps) or a duration (Ms).
type Meter struct {
	times []float64
	head  int
}

func New(bufferLength int) *Meter {
	return &Meter{
		times: make([]float64, bufferLength),
	}
}

func (m *Meter) init() {
	if m.times == nil {
		m.times = make([]float64, DefaultBufferLen)
	}
}

func (m *Meter) Reset() {
	m.init()

	m.head = 0
	for i := range m.times {
		m.times[i] = 0
	}
}

// average returns the mean of the recorded samples, or of only the filled
// prefix while the ring hasn't wrapped yet.
func (m *Meter) average() float64 {
	m.init()

	var sum float64
	for _, t := range m.times {
		sum += t
	}
	divisor := len(m.times)
	if m.head < len(m.times) {
		divisor = m.head
	}
	avg := sum / float64(divisor)
	if avg < 0 {
		avg = 1
	}
	return avg
}

// Tps reports the recorded rate in ticks per second, rounded to the
// nearest integer.
func (m *Meter) Tps() int {
	fps := int(math.Round(1.0 / m.average()))
	if fps <= 0 {
		return 0
	}
	return fps
}

// Ms reports the average recorded sample duration in milliseconds.
func (m *Meter) Ms() float64 {
	return m.average() * 1000
}

func (m *Meter) Record(d time.Duration) {
	m.times[m.head%len(m.times)] = d.Seconds()
	m.head++
}
