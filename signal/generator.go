// Package signal produces periodic waveform samples for the panel DAC.
//
// The generator ticks on its own soft timer, one sample per tick, so the
// output frequency is set by the timer period: 1e6 / (SamplesPerCycle * hz).
package signal

import (
	"errors"
	"math"

	"frontpanel/core"
)

// Waveform selects the sample formula
type Waveform uint8

const (
	Sine Waveform = iota
	Triangle
	Sawtooth
	Square

	waveformCount
)

// String returns the display name used in status lines
func (w Waveform) String() string {
	switch w {
	case Sine:
		return "Sinusoidal"
	case Triangle:
		return "Triangular"
	case Sawtooth:
		return "Sawtooth"
	case Square:
		return "Square"
	default:
		return "Unknown"
	}
}

// Mode selects how samples are produced
type Mode uint8

const (
	// Table emits a precomputed cycle of SamplesPerCycle values
	Table Mode = iota
	// Continuous evaluates the formula at the elapsed time on every tick
	Continuous
)

const (
	SamplesPerCycle      = 16
	DefaultCalibrationMV = 500 // DAC zero-volt bias

	MaxFrequencyHz = core.TimerFreq / SamplesPerCycle
)

var (
	ErrInvalidFrequency = errors.New("frequency out of range")
	ErrInvalidWaveform  = errors.New("unknown waveform")
)

// Sink receives calibrated samples in millivolts. core.DAC implements it.
type Sink interface {
	SetValue(mV int32)
}

// Config holds the initial generator parameters
type Config struct {
	Waveform      Waveform
	Mode          Mode
	FrequencyHz   uint32
	AmplitudeMV   int32
	OffsetMV      int32
	CalibrationMV int32
	Enabled       bool
}

// Sample evaluates waveform kind at phase index t of an n-sample cycle.
// Linear shapes use integer arithmetic and truncate like the firmware.
// An empty cycle (n == 0) yields offset.
func Sample(kind Waveform, t, n uint32, amp, offset int32) int32 {
	if n == 0 {
		return offset
	}
	a := int64(amp)
	off := int64(offset)
	tt := int64(t)
	nn := int64(n)

	switch kind {
	case Sine:
		return offset + int32(math.Round(float64(amp)*math.Sin(2*math.Pi*float64(t)/float64(n))))
	case Triangle:
		if tt <= nn/2 {
			return int32(off + 4*a*tt/nn - a)
		}
		return int32(off - 4*a*tt/nn + 3*a)
	case Sawtooth:
		return int32(off + 2*a*tt/nn - a)
	case Square:
		if tt <= nn/2 {
			return offset + amp
		}
		return offset - amp
	default:
		return offset
	}
}

// Evaluate is Sample over a continuous phase in [0, 1)
func Evaluate(kind Waveform, phase float64, amp, offset int32) int32 {
	a := float64(amp)
	var v float64

	switch kind {
	case Sine:
		v = a * math.Sin(2*math.Pi*phase)
	case Triangle:
		if phase <= 0.5 {
			v = 4*a*phase - a
		} else {
			v = 3*a - 4*a*phase
		}
	case Sawtooth:
		v = 2*a*phase - a
	case Square:
		if phase <= 0.5 {
			v = a
		} else {
			v = -a
		}
	}
	return offset + int32(math.Round(v))
}

// periodFor returns the sample period for hz
func periodFor(hz uint32) (uint32, error) {
	if !core.InRange(hz, 1, MaxFrequencyHz) {
		return 0, ErrInvalidFrequency
	}
	return core.TimerFreq / (SamplesPerCycle * hz), nil
}

// Generator is the waveform state machine
type Generator struct {
	sink Sink

	kind Waveform
	mode Mode
	hz   uint32
	amp  int32
	off  int32
	cal  int32

	value int32  // Last calibrated sample
	index uint32 // Next table entry
	start uint32 // Continuous mode time origin

	table [SamplesPerCycle]int32
	dirty bool // Parameters changed since the table was built

	enabled bool
	timer   *core.SoftTimer
}

// New builds a generator. A nil clock selects the system clock; a nil sink
// discards samples.
func New(clock core.Clock, sink Sink, cfg Config) (*Generator, error) {
	if cfg.Waveform >= waveformCount {
		return nil, ErrInvalidWaveform
	}
	period, err := periodFor(cfg.FrequencyHz)
	if err != nil {
		return nil, err
	}

	timer, err := core.NewSoftTimer(clock, period, cfg.Enabled)
	if err != nil {
		return nil, err
	}

	g := &Generator{
		sink:    sink,
		kind:    cfg.Waveform,
		mode:    cfg.Mode,
		hz:      cfg.FrequencyHz,
		amp:     cfg.AmplitudeMV,
		off:     cfg.OffsetMV,
		cal:     cfg.CalibrationMV,
		dirty:   true,
		enabled: cfg.Enabled,
		timer:   timer,
	}
	g.start = timer.Now()
	g.rebuild()

	return g, nil
}

// rebuild recomputes the sample table for phase indexes 1..N
func (g *Generator) rebuild() {
	for i := range g.table {
		g.table[i] = Sample(g.kind, uint32(i+1), SamplesPerCycle, g.amp, g.off)
	}
	g.dirty = false
	core.RecordEvent(core.EvtTableRebuild, g.timer.Now(), uint32(g.kind), uint32(g.hz))
}

// Poll emits the next sample when the sample timer has fired
func (g *Generator) Poll() {
	if !g.enabled || !g.timer.Check() {
		return
	}
	g.timer.AdvanceByPeriod()

	var v int32
	switch g.mode {
	case Continuous:
		elapsed := uint64(g.timer.Now() - g.start)
		cycleUS := elapsed * uint64(g.hz) % core.TimerFreq
		v = Evaluate(g.kind, float64(cycleUS)/core.TimerFreq, g.amp, g.off)
	default:
		if g.dirty {
			g.rebuild()
		}
		v = g.table[g.index]
		g.index = (g.index + 1) % SamplesPerCycle
	}

	g.value = v - g.cal
	if g.sink != nil {
		g.sink.SetValue(g.value)
	}
}

// SetWaveform selects the waveform used from the next sample on
func (g *Generator) SetWaveform(w Waveform) error {
	if w >= waveformCount {
		return ErrInvalidWaveform
	}
	g.kind = w
	g.dirty = true
	return nil
}

// NextWaveform cycles Sine -> Triangle -> Sawtooth -> Square -> Sine
func (g *Generator) NextWaveform() Waveform {
	g.kind = (g.kind + 1) % waveformCount
	g.dirty = true
	return g.kind
}

// SetFrequency rescales the sample period. The table size never changes.
func (g *Generator) SetFrequency(hz uint32) error {
	period, err := periodFor(hz)
	if err != nil {
		return err
	}
	if err := g.timer.SetPeriod(period); err != nil {
		return err
	}
	g.hz = hz
	g.dirty = true
	return nil
}

// SetAmplitude takes effect on the next sample
func (g *Generator) SetAmplitude(mV int32) {
	g.amp = mV
	g.dirty = true
}

// SetOffset takes effect on the next sample
func (g *Generator) SetOffset(mV int32) {
	g.off = mV
	g.dirty = true
}

// SetMode switches between table and continuous sampling
func (g *Generator) SetMode(m Mode) {
	g.mode = m
	g.index = 0
	g.start = g.timer.Now()
}

// Enable starts sampling one period from now
func (g *Generator) Enable() {
	g.enabled = true
	g.timer.Restart()
}

// Disable stops sampling; the last value is kept
func (g *Generator) Disable() {
	g.enabled = false
	g.timer.Disable()
}

// Table returns the current cycle, rebuilding it if parameters changed
func (g *Generator) Table() [SamplesPerCycle]int32 {
	if g.dirty {
		g.rebuild()
	}
	return g.table
}

// Status formats the parameter summary shown on the console
func (g *Generator) Status() string {
	return g.kind.String() + "-> Amp: " + core.Itoa(int(g.amp)) +
		"mV, Offset: " + core.Itoa(int(g.off)) +
		"mV, Freq: " + core.Utoa(g.hz) + "Hz"
}

func (g *Generator) Waveform() Waveform     { return g.kind }
func (g *Generator) Mode() Mode             { return g.mode }
func (g *Generator) Frequency() uint32      { return g.hz }
func (g *Generator) Amplitude() int32       { return g.amp }
func (g *Generator) Offset() int32          { return g.off }
func (g *Generator) Calibration() int32     { return g.cal }
func (g *Generator) Value() int32           { return g.value }
func (g *Generator) Index() uint32          { return g.index }
func (g *Generator) Enabled() bool          { return g.enabled }
func (g *Generator) Timer() *core.SoftTimer { return g.timer }
