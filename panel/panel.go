// Package panel wires the keypad, button, LED, DAC and signal generator into
// one cooperative front panel with a line-oriented serial console.
package panel

import (
	"errors"

	"frontpanel/core"
	"frontpanel/panel/console"
	"frontpanel/signal"
)

var (
	ErrOutOfRange     = errors.New("value out of range")
	ErrNotInitialized = errors.New("panel not initialized")
	ErrLineTooLong    = errors.New("line too long")
)

const (
	maxLineLen   = 256
	maxDigits    = 7
	readyMessage = "Front panel ready\n"
)

// Panel coordinates all front panel components
type Panel struct {
	config *Config
	parser *console.Parser

	keypad *core.Keypad
	button *core.Button
	led    *core.LED
	dac    *core.DAC
	gen    *signal.Generator
	status *core.SoftTimer
	sched  core.Scheduler

	// Keypad parameter entry
	param  Param
	value  uint32
	digits int

	// Serial interface
	inputBuffer  []byte
	outputBuffer []byte

	// Status
	initialized bool
	running     bool
	stopped     bool // Stop disabled the generator
}

// NewPanel creates a panel for cfg; hardware is bound by Initialize
func NewPanel(cfg *Config) (*Panel, error) {
	if cfg == nil {
		return nil, errors.New("nil config")
	}

	return &Panel{
		config:       cfg,
		parser:       console.NewParser(),
		inputBuffer:  make([]byte, 0, maxLineLen),
		outputBuffer: make([]byte, 0, maxLineLen),
	}, nil
}

// Initialize builds every component on gpio and clock and registers their
// tick functions. A non-nil port drives the DAC when the config asks for PIO.
func (p *Panel) Initialize(gpio core.GPIODriver, clock core.Clock, port core.ParallelPort) error {
	if p.initialized {
		return errors.New("already initialized")
	}
	cfg := p.config

	var err error
	p.keypad, err = core.NewKeypad(gpio, clock, cfg.KeypadSettings())
	if err != nil {
		return err
	}
	p.button, err = core.NewButton(gpio, clock, cfg.ButtonSettings())
	if err != nil {
		return err
	}
	p.led, err = core.NewLED(gpio, cfg.LEDPin, false)
	if err != nil {
		return err
	}

	if port != nil && cfg.DAC.UsePIO {
		p.dac = core.NewDACPort(port, cfg.DACSettings())
	} else {
		p.dac, err = core.NewDAC(gpio, cfg.DACSettings())
		if err != nil {
			return err
		}
	}

	genCfg, err := cfg.GeneratorSettings()
	if err != nil {
		return err
	}
	p.gen, err = signal.New(clock, p.dac, genCfg)
	if err != nil {
		return err
	}

	statusUS := cfg.StatusUS
	if statusUS == 0 {
		statusUS = core.TimerFreq
	}
	p.status, err = core.NewSoftTimer(clock, statusUS, true)
	if err != nil {
		return err
	}

	if cfg.Debug {
		core.SetDebugWriter(func(s string) { p.SendResponse(s + "\n") })
		core.SetDebugEnabled(true)
	}

	p.sched.AddFunc("keypad", p.pollKeypad)
	p.sched.AddFunc("button", p.pollButton)
	p.sched.AddFunc("generator", p.gen.Poll)
	p.sched.AddFunc("status", p.pollStatus)

	p.initialized = true
	return nil
}

func (p *Panel) pollKeypad() {
	p.keypad.Poll()
	if p.keypad.KeyPending() {
		p.HandleKey(p.keypad.ConsumeKey())
	}
}

func (p *Panel) pollButton() {
	p.button.Poll()
	if p.button.ConsumePress() {
		p.gen.NextWaveform()
		p.SendResponse(p.gen.Status() + "\n")
	}
}

func (p *Panel) pollStatus() {
	if !p.status.Check() {
		return
	}
	p.status.AdvanceByPeriod()
	p.SendResponse(p.gen.Status() + "\n")
}

// Poll runs one pass over every component
func (p *Panel) Poll() {
	if !p.running {
		return
	}
	p.sched.RunOnce()
}

// HandleKey feeds one key into the parameter entry state machine.
// A/B/C start an entry, digits accumulate, D commits and "00" cancels.
func (p *Panel) HandleKey(k core.Key) {
	switch {
	case k <= 9:
		if p.param == ParamNone {
			return
		}
		if k == 0 && p.keypad.IsDoubleZero() {
			p.keypad.ClearDoubleZeroFlag()
			p.SendResponse(p.param.String() + " entry cancelled\n")
			p.endEntry()
			return
		}
		if k == 0 && p.digits == 0 {
			p.keypad.SetDoubleZeroFlag()
		} else {
			p.keypad.ClearDoubleZeroFlag()
		}
		if p.digits < maxDigits {
			p.value = p.value*10 + uint32(k)
			p.digits++
		}

	case k >= 0xA && k <= 0xC:
		p.keypad.ClearDoubleZeroFlag()
		if p.param != ParamNone {
			return
		}
		p.param = ParamAmplitude + Param(k-0xA)
		p.value = 0
		p.digits = 0
		p.led.Set()

	case k == 0xD:
		p.keypad.ClearDoubleZeroFlag()
		if p.param == ParamNone {
			return
		}
		if p.digits == 0 {
			p.reject(p.param, 0)
		} else if err := p.SetParam(p.param, int(p.value)); err != nil {
			p.SendResponse("error: " + p.param.String() + " " + err.Error() + "\n")
		} else {
			p.SendResponse(p.gen.Status() + "\n")
		}
		p.endEntry()

	default:
		p.keypad.ClearDoubleZeroFlag()
	}
}

func (p *Panel) endEntry() {
	p.param = ParamNone
	p.value = 0
	p.digits = 0
	p.led.Clear()
}

func (p *Panel) reject(param Param, v int) {
	core.RecordEvent(core.EvtParamRejected, p.status.Now(), uint32(param), uint32(v))
	core.DebugPrintln("[PANEL] reject " + param.String() + "=" + core.Itoa(v))
}

// SetParam applies a generator parameter if it is within its limits
func (p *Panel) SetParam(param Param, v int) error {
	lo, hi := param.Limits()
	if v < 0 || !core.InRange(uint32(v), lo, hi) {
		p.reject(param, v)
		return ErrOutOfRange
	}

	switch param {
	case ParamAmplitude:
		p.gen.SetAmplitude(int32(v))
	case ParamOffset:
		p.gen.SetOffset(int32(v))
	case ParamFrequency:
		if err := p.gen.SetFrequency(uint32(v)); err != nil {
			p.reject(param, v)
			return err
		}
	default:
		return ErrOutOfRange
	}

	core.RecordEvent(core.EvtParamSet, p.status.Now(), uint32(param), uint32(v))
	return nil
}

// ProcessLine executes one console command
func (p *Panel) ProcessLine(line string) error {
	if !p.initialized {
		return ErrNotInitialized
	}

	// Parse command
	cmd, err := p.parser.ParseLine(line)
	if err != nil {
		return err
	}
	if cmd == nil {
		return nil
	}

	switch cmd.Letter {
	case 'A':
		return p.SetParam(ParamAmplitude, cmd.Value)
	case 'B':
		return p.SetParam(ParamOffset, cmd.Value)
	case 'C':
		return p.SetParam(ParamFrequency, cmd.Value)
	case 'W':
		if !core.InRange(cmd.Value, 0, int(signal.Square)) {
			return ErrOutOfRange
		}
		if err := p.gen.SetWaveform(signal.Waveform(cmd.Value)); err != nil {
			return ErrOutOfRange
		}
	case 'K':
		if !core.InRange(cmd.Value, 0, 15) {
			return ErrOutOfRange
		}
		p.HandleKey(core.Key(cmd.Value))
	case 'S':
		p.SendResponse(p.gen.Status() + "\n")
	case 'E':
		switch cmd.Value {
		case 0:
			p.gen.Disable()
		case 1:
			p.gen.Enable()
		default:
			return ErrOutOfRange
		}
	}

	return nil
}

// ProcessByte processes a single byte of input (for serial streaming)
func (p *Panel) ProcessByte(b byte) error {
	if b != '\n' && b != '\r' {
		if len(p.inputBuffer) >= maxLineLen {
			p.inputBuffer = p.inputBuffer[:0]
			p.SendResponse("error: " + ErrLineTooLong.Error() + "\n")
			return ErrLineTooLong
		}
		p.inputBuffer = append(p.inputBuffer, b)
		return nil
	}

	// Process line
	line := string(p.inputBuffer)
	p.inputBuffer = p.inputBuffer[:0] // Clear buffer

	// Remove trailing whitespace
	for len(line) > 0 && (line[len(line)-1] == ' ' || line[len(line)-1] == '\t') {
		line = line[:len(line)-1]
	}
	if len(line) == 0 {
		return nil
	}

	if err := p.ProcessLine(line); err != nil {
		p.SendResponse("error: " + err.Error() + "\n")
		return err
	}

	// Send "ok" response
	p.SendResponse("ok\n")
	return nil
}

// SendResponse queues text for the host
func (p *Panel) SendResponse(response string) {
	p.outputBuffer = append(p.outputBuffer, response...)
}

// Output returns any pending output and clears the buffer
func (p *Panel) Output() []byte {
	if len(p.outputBuffer) == 0 {
		return nil
	}

	output := make([]byte, len(p.outputBuffer))
	copy(output, p.outputBuffer)
	p.outputBuffer = p.outputBuffer[:0]
	return output
}

// Start begins panel operation
func (p *Panel) Start() error {
	if !p.initialized {
		return ErrNotInitialized
	}

	if p.stopped && !p.config.Generator.Disabled {
		p.gen.Enable()
	}
	p.stopped = false
	p.running = true
	p.status.AdvanceFromNow()
	p.SendResponse(readyMessage)
	return nil
}

// Stop halts polling and silences the output
func (p *Panel) Stop() {
	p.running = false
	if !p.initialized {
		return
	}
	p.stopped = true
	p.gen.Disable()
	p.endEntry()
}

// IsRunning returns whether the panel is running
func (p *Panel) IsRunning() bool {
	return p.running
}

// Entry returns the parameter being entered and the digits so far
func (p *Panel) Entry() (Param, uint32) {
	return p.param, p.value
}

func (p *Panel) Keypad() *core.Keypad         { return p.keypad }
func (p *Panel) Button() *core.Button         { return p.button }
func (p *Panel) LED() *core.LED               { return p.led }
func (p *Panel) DAC() *core.DAC               { return p.dac }
func (p *Panel) Generator() *signal.Generator { return p.gen }
func (p *Panel) Scheduler() *core.Scheduler   { return &p.sched }
